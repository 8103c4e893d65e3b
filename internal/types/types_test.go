package types

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestPageResultJSONShape(t *testing.T) {
	result := PageResult{
		URL:              "https://example.com/",
		StatusCode:       200,
		TotalImagesFound: 1,
		ImagesAnalyzed:   1,
		Images: []ImageRecord{
			{ImageURL: "https://example.com/a.png", Index: 1, ContentType: "image/png"},
		},
		ImageTypes:    map[string]int{"png": 1},
		InternalLinks: []string{"https://example.com/secret"},
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	s := string(data)
	for _, key := range []string{"total_images_found", "images_analyzed", "image_types", "status_code"} {
		if !strings.Contains(s, key) {
			t.Errorf("JSON missing key %q: %s", key, s)
		}
	}
	if strings.Contains(s, "secret") {
		t.Error("internal links leaked into JSON output")
	}
	// Absent error stays out of the payload
	if strings.Contains(s, `"error"`) {
		t.Error("empty error field serialized")
	}
}

func TestImageRecordOptionalFields(t *testing.T) {
	data, err := json.Marshal(ImageRecord{ImageURL: "https://example.com/a.png", Index: 1})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	s := string(data)
	for _, key := range []string{`"title_text"`, `"width"`, `"height"`, `"error"`} {
		if strings.Contains(s, key) {
			t.Errorf("absent field %s serialized: %s", key, s)
		}
	}
}
