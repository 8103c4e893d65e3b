package analyzer

import (
	"context"
	"testing"
	"time"

	"github.com/BenjaminSRussell/imgaudit/internal/fetch"
	"github.com/BenjaminSRussell/imgaudit/internal/inspector"
)

func newTestAnalyzer() *Analyzer {
	return New(inspector.New(fetch.NewClient(fetch.Options{Timeout: 2 * time.Second})))
}

func mustParse(t *testing.T, html string) *Document {
	t.Helper()
	doc, err := ParseDocument([]byte(html))
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}
	return doc
}

func TestAnalyzeImageAudit(t *testing.T) {
	html := `
	<html>
		<head><title>Gallery</title></head>
		<body>
			<img src="/a.png" alt="">
			<img src="https://cdn.com/b.jpg" alt="logo">
		</body>
	</html>
	`

	doc := mustParse(t, html)
	result := newTestAnalyzer().Analyze(context.Background(), "https://example.com/", doc, 200, Options{
		AltAnalysis: true,
	})

	if result.Title != "Gallery" {
		t.Errorf("Title = %q, want Gallery", result.Title)
	}
	if result.Domain != "example.com" {
		t.Errorf("Domain = %q, want example.com", result.Domain)
	}
	if result.TotalImagesFound != 2 {
		t.Errorf("TotalImagesFound = %d, want 2", result.TotalImagesFound)
	}
	if result.ImagesAnalyzed != 2 {
		t.Errorf("ImagesAnalyzed = %d, want 2", result.ImagesAnalyzed)
	}
	if result.ImagesWithoutAltCount != 1 {
		t.Errorf("ImagesWithoutAltCount = %d, want 1", result.ImagesWithoutAltCount)
	}
	if result.ImagesWithAltCount != 1 {
		t.Errorf("ImagesWithAltCount = %d, want 1", result.ImagesWithAltCount)
	}
	if result.ImageTypes["png"] != 1 || result.ImageTypes["jpeg"] != 1 {
		t.Errorf("ImageTypes = %v, want png:1 jpeg:1", result.ImageTypes)
	}

	if len(result.ImagesWithoutAlt) != 1 {
		t.Fatalf("ImagesWithoutAlt length = %d, want 1", len(result.ImagesWithoutAlt))
	}
	if result.ImagesWithoutAlt[0].ImageURL != "https://example.com/a.png" {
		t.Errorf("ImagesWithoutAlt[0].ImageURL = %q, want https://example.com/a.png", result.ImagesWithoutAlt[0].ImageURL)
	}
	if result.ImagesWithoutAlt[0].Index != 1 {
		t.Errorf("ImagesWithoutAlt[0].Index = %d, want 1", result.ImagesWithoutAlt[0].Index)
	}
}

func TestAnalyzeAltCountsInvariant(t *testing.T) {
	html := `
	<html><body>
		<img src="/a.png" alt="first">
		<img src="/b.png" alt="  ">
		<img src="/c.png">
		<img src="/d.png" alt="fourth">
	</body></html>
	`

	doc := mustParse(t, html)
	result := newTestAnalyzer().Analyze(context.Background(), "https://example.com/", doc, 200, Options{
		AltAnalysis: true,
	})

	if result.ImagesWithAltCount+result.ImagesWithoutAltCount != result.ImagesAnalyzed {
		t.Errorf("with(%d) + without(%d) != analyzed(%d)",
			result.ImagesWithAltCount, result.ImagesWithoutAltCount, result.ImagesAnalyzed)
	}
	// Blank-after-trim alt counts as missing
	if result.ImagesWithoutAltCount != 2 {
		t.Errorf("ImagesWithoutAltCount = %d, want 2", result.ImagesWithoutAltCount)
	}
}

func TestAnalyzeImageCap(t *testing.T) {
	html := `
	<html><body>
		<img src="/1.png"><img src="/2.png"><img src="/3.png"><img src="/4.png"><img src="/5.png">
	</body></html>
	`

	doc := mustParse(t, html)
	result := newTestAnalyzer().Analyze(context.Background(), "https://example.com/", doc, 200, Options{
		MaxImagesPerPage: 3,
	})

	if result.TotalImagesFound != 5 {
		t.Errorf("TotalImagesFound = %d, want 5", result.TotalImagesFound)
	}
	if result.ImagesAnalyzed != 3 {
		t.Errorf("ImagesAnalyzed = %d, want 3", result.ImagesAnalyzed)
	}
	// Cap keeps document order
	if result.Images[2].ImageURL != "https://example.com/3.png" {
		t.Errorf("Images[2].ImageURL = %q, want https://example.com/3.png", result.Images[2].ImageURL)
	}
}

func TestAnalyzeSkipsMalformedSources(t *testing.T) {
	html := `
	<html><body>
		<img src="javascript:void(0)">
		<img src="/good.png">
	</body></html>
	`

	doc := mustParse(t, html)
	result := newTestAnalyzer().Analyze(context.Background(), "https://example.com/", doc, 200, Options{})

	if result.TotalImagesFound != 2 {
		t.Errorf("TotalImagesFound = %d, want 2", result.TotalImagesFound)
	}
	if result.ImagesAnalyzed != 1 {
		t.Errorf("ImagesAnalyzed = %d, want 1", result.ImagesAnalyzed)
	}
	if result.Images[0].ImageURL != "https://example.com/good.png" {
		t.Errorf("Images[0].ImageURL = %q, want https://example.com/good.png", result.Images[0].ImageURL)
	}
}

func TestAnalyzeInternalLinks(t *testing.T) {
	html := `
	<html><body>
		<a href="/about">About</a>
		<a href="https://example.com/contact">Contact</a>
		<a href="https://other.com/external">External</a>
		<a href="/about">Duplicate</a>
		<a href="mailto:hi@example.com">Mail</a>
	</body></html>
	`

	doc := mustParse(t, html)
	result := newTestAnalyzer().Analyze(context.Background(), "https://example.com/", doc, 200, Options{})

	want := []string{"https://example.com/about", "https://example.com/contact"}
	if len(result.InternalLinks) != len(want) {
		t.Fatalf("InternalLinks = %v, want %v", result.InternalLinks, want)
	}
	for i, link := range want {
		if result.InternalLinks[i] != link {
			t.Errorf("InternalLinks[%d] = %q, want %q", i, result.InternalLinks[i], link)
		}
	}
}

func TestAnalyzeAverageImageSize(t *testing.T) {
	// Data URIs give deterministic sizes without any network fetch
	html := `
	<html><body>
		<img src="data:image/png;base64,AAAAAAAA">
		<img src="data:image/png;base64,AAAA">
	</body></html>
	`

	doc := mustParse(t, html)
	result := newTestAnalyzer().Analyze(context.Background(), "https://example.com/", doc, 200, Options{
		SizeAnalysis: true,
	})

	// 8 chars -> 6 bytes, 4 chars -> 3 bytes
	if result.TotalImageSize != 9 {
		t.Errorf("TotalImageSize = %d, want 9", result.TotalImageSize)
	}
	// round(9 / 2) = 5
	if result.AverageImageSize != 5 {
		t.Errorf("AverageImageSize = %d, want 5", result.AverageImageSize)
	}
}

func TestAnalyzeEmptyPage(t *testing.T) {
	doc := mustParse(t, "<html><head></head><body></body></html>")
	result := newTestAnalyzer().Analyze(context.Background(), "https://example.com/", doc, 200, Options{AltAnalysis: true})

	if result.Title != "" {
		t.Errorf("Title = %q, want empty", result.Title)
	}
	if result.TotalImagesFound != 0 || result.ImagesAnalyzed != 0 {
		t.Errorf("expected no images, got found=%d analyzed=%d", result.TotalImagesFound, result.ImagesAnalyzed)
	}
	if result.AverageImageSize != 0 {
		t.Errorf("AverageImageSize = %d, want 0", result.AverageImageSize)
	}
}
