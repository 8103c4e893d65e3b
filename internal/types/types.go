package types

import (
	"time"
)

// UnlimitedImages disables the per-page image cap.
const UnlimitedImages = 0

// Config holds audit configuration
type Config struct {
	SeedURL          string
	CrawlEnabled     bool
	MaxPages         int
	MaxImagesPerPage int // UnlimitedImages means no cap
	SizeAnalysis     bool
	AltAnalysis      bool
	UserAgent        string
	Timeout          time.Duration
	MaxRedirects     int
	Workers          int
	DataDir          string

	// Advanced features
	EnableSQLite      bool
	UseHeaderRotation bool
	EnableTLS         bool
}

// ImageRecord contains everything learned about a single image reference.
// Records are immutable once built and owned by their PageResult.
type ImageRecord struct {
	ImageURL    string `json:"image_url"`
	Index       int    `json:"index"` // 1-based position on the page
	AltText     string `json:"alt_text"`
	TitleText   string `json:"title_text,omitempty"`
	Width       string `json:"width,omitempty"`
	Height      string `json:"height,omitempty"`
	HasAlt      bool   `json:"has_alt"`
	HasTitle    bool   `json:"has_title"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	StatusCode  int    `json:"status_code"`
	Error       string `json:"error,omitempty"`
}

// NoAltRef points at an analyzed image that lacks usable alt text
type NoAltRef struct {
	ImageURL string `json:"image_url"`
	Index    int    `json:"index"`
}

// PageResult contains the image audit of a single crawled page
type PageResult struct {
	URL                   string         `json:"url"`
	Title                 string         `json:"title"`
	Domain                string         `json:"domain"`
	StatusCode            int            `json:"status_code"`
	Images                []ImageRecord  `json:"images"`
	TotalImagesFound      int            `json:"total_images_found"`
	ImagesAnalyzed        int            `json:"images_analyzed"`
	ImagesWithAltCount    int            `json:"images_with_alt_count"`
	ImagesWithoutAlt      []NoAltRef     `json:"images_without_alt"`
	ImagesWithoutAltCount int            `json:"images_without_alt_count"`
	TotalImageSize        int64          `json:"total_image_size"`
	AverageImageSize      int64          `json:"average_image_size"`
	ImageTypes            map[string]int `json:"image_types"`
	CrawledAt             time.Time      `json:"crawled_at"`
	Error                 string         `json:"error,omitempty"`

	// Same-origin links discovered on the page. Feeds the frontier only;
	// never part of the external report.
	InternalLinks []string `json:"-"`
}

// DomainSummary aggregates image statistics across every crawled page
type DomainSummary struct {
	Domain                          string         `json:"domain"`
	PagesCrawled                    int            `json:"pages_crawled"`
	SuccessfulPages                 int            `json:"successful_pages"`
	ErrorPages                      int            `json:"error_pages"`
	TotalImagesFound                int            `json:"total_images_found"`
	TotalImagesAnalyzed             int            `json:"total_images_analyzed"`
	TotalImagesWithoutAlt           int            `json:"total_images_without_alt"`
	TotalImagesWithoutAltPercentage int            `json:"total_images_without_alt_percentage"`
	TotalImageSize                  int64          `json:"total_image_size"`
	AverageImagesPerPage            float64        `json:"average_images_per_page"`
	AverageImageSize                float64        `json:"average_image_size"`
	ImageTypes                      map[string]int `json:"image_types"`
	MostCommonImageType             string         `json:"most_common_image_type"`
	AltOptimizationNeeded           bool           `json:"alt_optimization_needed"`
	SizeOptimizationNeeded          bool           `json:"size_optimization_needed"`
}

// Meta describes a completed audit run
type Meta struct {
	TotalPagesProcessed int       `json:"total_pages_processed"`
	AnalyzedPages       int       `json:"analyzed_pages"`
	CompletedAt         time.Time `json:"completed_at"`
}

// Report is the external output of one audit invocation
type Report struct {
	Domain DomainSummary `json:"domain"`
	Pages  []PageResult  `json:"pages"`
	Meta   Meta          `json:"meta"`
}
