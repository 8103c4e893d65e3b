package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/BenjaminSRussell/imgaudit/internal/types"
)

func testReport() *types.Report {
	return &types.Report{
		Domain: types.DomainSummary{
			Domain:           "example.com",
			PagesCrawled:     1,
			TotalImagesFound: 2,
			ImageTypes:       map[string]int{"png": 1, "jpeg": 1},
		},
		Pages: []types.PageResult{
			{
				URL:        "https://example.com/",
				StatusCode: 200,
				Images: []types.ImageRecord{
					{ImageURL: "https://example.com/a.png", Index: 1, HasAlt: true, ContentType: "image/png", SizeBytes: 100, StatusCode: 200},
					{ImageURL: "https://example.com/b.jpg", Index: 2, ContentType: "image/jpeg", SizeBytes: 200, StatusCode: 200},
				},
				InternalLinks: []string{"https://example.com/hidden"},
			},
		},
		Meta: types.Meta{TotalPagesProcessed: 1, AnalyzedPages: 1},
	}
}

func TestExportJSON(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "report.json")

	if err := ExportJSON(testReport(), outputFile); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}

	data, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	for _, key := range []string{"domain", "pages", "meta"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("report JSON missing %q section", key)
		}
	}

	// Internal links are frontier bookkeeping, not report content
	pages := decoded["pages"].([]interface{})
	page := pages[0].(map[string]interface{})
	if _, ok := page["InternalLinks"]; ok {
		t.Error("report JSON must not contain internal links")
	}
}

func TestExportCSV(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "images.csv")

	count, err := ExportCSV(testReport().Pages, outputFile)
	if err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	file, err := os.Open(outputFile)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV: %v", err)
	}
	// Header plus one row per image
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}
	if rows[1][2] != "https://example.com/a.png" {
		t.Errorf("rows[1] image URL = %q, want https://example.com/a.png", rows[1][2])
	}
}

func TestExportCSVEmpty(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "images.csv")

	count, err := ExportCSV(nil, outputFile)
	if err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
}
