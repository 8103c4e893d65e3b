package analyzer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document wraps a parsed HTML page and exposes the lookups the analyzer needs
type Document struct {
	doc *goquery.Document
}

// ParseDocument parses an HTML body into a queryable document. The html
// package tolerates malformed markup, so a parse error here means the body
// was not usable at all.
func ParseDocument(body []byte) (*Document, error) {
	node, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return &Document{doc: goquery.NewDocumentFromNode(node)}, nil
}

// Title returns the text of the document's title element, empty if absent
func (d *Document) Title() string {
	return strings.TrimSpace(d.doc.Find("title").First().Text())
}

// EachImage visits every img element carrying a src attribute, in document
// order, until fn returns false.
func (d *Document) EachImage(fn func(i int, src string, attrs ImageAttrs) bool) {
	d.doc.Find("img[src]").EachWithBreak(func(i int, s *goquery.Selection) bool {
		src, _ := s.Attr("src")
		attrs := ImageAttrs{}
		attrs.Alt, attrs.HasAltAttr = s.Attr("alt")
		attrs.Title, attrs.HasTitleAttr = s.Attr("title")
		attrs.Width, _ = s.Attr("width")
		attrs.Height, _ = s.Attr("height")
		return fn(i, src, attrs)
	})
}

// ImageCount returns the number of img elements with a src attribute
func (d *Document) ImageCount() int {
	return d.doc.Find("img[src]").Length()
}

// EachLink visits the href of every anchor element, in document order
func (d *Document) EachLink(fn func(href string)) {
	d.doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		if href, exists := s.Attr("href"); exists {
			fn(href)
		}
	})
}

// ImageAttrs holds the raw presentation attributes of an img element
type ImageAttrs struct {
	Alt          string
	HasAltAttr   bool
	Title        string
	HasTitleAttr bool
	Width        string
	Height       string
}
