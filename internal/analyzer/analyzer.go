package analyzer

import (
	"context"
	"strings"
	"time"

	"github.com/BenjaminSRussell/imgaudit/internal/inspector"
	"github.com/BenjaminSRussell/imgaudit/internal/types"
	"github.com/BenjaminSRussell/imgaudit/internal/urlutil"
)

// Options controls how much work Analyze does per page
type Options struct {
	MaxImagesPerPage int // types.UnlimitedImages means analyze all
	SizeAnalysis     bool
	AltAnalysis      bool
}

// Analyzer turns a fetched page into a PageResult
type Analyzer struct {
	inspector *inspector.Inspector
}

// New creates a page analyzer backed by the given image inspector
func New(in *inspector.Inspector) *Analyzer {
	return &Analyzer{inspector: in}
}

// Analyze extracts the image audit and same-origin links from one page.
// Individual malformed image sources are skipped; they never fail the page.
func (a *Analyzer) Analyze(ctx context.Context, pageURL string, doc *Document, statusCode int, opts Options) types.PageResult {
	result := types.PageResult{
		URL:              pageURL,
		Title:            doc.Title(),
		Domain:           urlutil.Host(pageURL),
		StatusCode:       statusCode,
		Images:           make([]types.ImageRecord, 0),
		ImagesWithoutAlt: make([]types.NoAltRef, 0),
		ImageTypes:       make(map[string]int),
		CrawledAt:        time.Now(),
	}

	result.TotalImagesFound = doc.ImageCount()

	// Analyze images in document order until the per-page cap is hit.
	// Images past the cap stay in TotalImagesFound but are not enriched.
	budget := result.TotalImagesFound
	if opts.MaxImagesPerPage != types.UnlimitedImages && opts.MaxImagesPerPage < budget {
		budget = opts.MaxImagesPerPage
	}

	doc.EachImage(func(i int, src string, attrs ImageAttrs) bool {
		if len(result.Images) >= budget {
			return false
		}

		record, err := a.inspector.Inspect(ctx, src, pageURL, opts.SizeAnalysis)
		if err != nil {
			// Malformed source, skip the element
			return true
		}

		record.Index = i + 1
		record.AltText = attrs.Alt
		record.TitleText = attrs.Title
		record.Width = attrs.Width
		record.Height = attrs.Height
		record.HasAlt = attrs.HasAltAttr && strings.TrimSpace(attrs.Alt) != ""
		record.HasTitle = attrs.HasTitleAttr && strings.TrimSpace(attrs.Title) != ""

		result.Images = append(result.Images, record)
		result.TotalImageSize += record.SizeBytes
		result.ImageTypes[subtype(record.ContentType)]++

		if opts.AltAnalysis && !record.HasAlt {
			result.ImagesWithoutAlt = append(result.ImagesWithoutAlt, types.NoAltRef{
				ImageURL: record.ImageURL,
				Index:    record.Index,
			})
		}

		return true
	})

	result.ImagesAnalyzed = len(result.Images)
	result.ImagesWithoutAltCount = len(result.ImagesWithoutAlt)
	result.ImagesWithAltCount = result.ImagesAnalyzed - result.ImagesWithoutAltCount
	if result.ImagesAnalyzed > 0 {
		result.AverageImageSize = (result.TotalImageSize + int64(result.ImagesAnalyzed)/2) / int64(result.ImagesAnalyzed)
	}

	result.InternalLinks = a.extractInternalLinks(doc, pageURL)

	return result
}

// extractInternalLinks resolves every anchor href and keeps the deduplicated
// same-origin subset, in document order.
func (a *Analyzer) extractInternalLinks(doc *Document, pageURL string) []string {
	links := make([]string, 0)
	seen := make(map[string]bool)

	doc.EachLink(func(href string) {
		resolved, err := urlutil.Resolve(href, pageURL)
		if err != nil {
			return
		}
		if !urlutil.SameOrigin(resolved, pageURL) {
			return
		}
		if !seen[resolved] {
			seen[resolved] = true
			links = append(links, resolved)
		}
	})

	return links
}

// subtype extracts the portion of a MIME type after the slash
func subtype(contentType string) string {
	if _, sub, ok := strings.Cut(contentType, "/"); ok && sub != "" {
		return sub
	}
	return "unknown"
}
