package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/BenjaminSRussell/imgaudit/internal/types"
)

// ExportJSON writes the full audit report as indented JSON
func ExportJSON(report *types.Report, outputFile string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	return nil
}

// ExportCSV writes one row per analyzed image across all pages
func ExportCSV(pages []types.PageResult, outputFile string) (int, error) {
	file, err := os.Create(outputFile)
	if err != nil {
		return 0, fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{"PageURL", "Index", "ImageURL", "AltText", "HasAlt", "ContentType", "SizeBytes", "StatusCode", "Error"}
	if err := writer.Write(headers); err != nil {
		return 0, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	count := 0
	for _, page := range pages {
		for _, img := range page.Images {
			record := []string{
				page.URL,
				strconv.Itoa(img.Index),
				img.ImageURL,
				img.AltText,
				strconv.FormatBool(img.HasAlt),
				img.ContentType,
				strconv.FormatInt(img.SizeBytes, 10),
				strconv.Itoa(img.StatusCode),
				img.Error,
			}
			if err := writer.Write(record); err != nil {
				return count, fmt.Errorf("failed to write CSV record: %w", err)
			}
			count++
		}
	}

	return count, nil
}
