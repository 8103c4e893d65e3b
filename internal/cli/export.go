package cli

import (
	"fmt"

	"github.com/BenjaminSRussell/imgaudit/internal/export"
	"github.com/BenjaminSRussell/imgaudit/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportDataDir string
	exportFile    string
)

var exportCmd = &cobra.Command{
	Use:   "export-csv",
	Short: "Export saved image records to CSV",
	Long:  `Export the image records of a previous audit run to CSV, one row per image`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.New(exportDataDir)
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		defer store.Close()

		pages, err := store.LoadResults()
		if err != nil {
			return fmt.Errorf("failed to load results: %w", err)
		}

		count, err := export.ExportCSV(pages, exportFile)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		fmt.Printf("Successfully exported %d images from %d pages to %s\n", count, len(pages), exportFile)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportDataDir, "data-dir", "./data", "Data storage directory")
	exportCmd.Flags().StringVar(&exportFile, "output", "images.csv", "Output file path")
}
