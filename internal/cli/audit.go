package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/BenjaminSRussell/imgaudit/internal/crawler"
	"github.com/BenjaminSRussell/imgaudit/internal/export"
	"github.com/BenjaminSRussell/imgaudit/internal/types"
	"github.com/spf13/cobra"
)

var (
	seedURL          string
	crawlEnabled     bool
	maxPages         int
	maxImagesPerPage int
	sizeAnalysis     bool
	altAnalysis      bool
	userAgent        string
	timeout          int
	maxRedirects     int
	workers          int
	dataDir          string
	reportFile       string

	// Advanced features
	enableSQLite      bool
	useHeaderRotation bool
	enableTLS         bool
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit a website's images",
	Long:  `Crawl a site from a seed URL and report per-page and per-domain image statistics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config := types.Config{
			SeedURL:          seedURL,
			CrawlEnabled:     crawlEnabled,
			MaxPages:         maxPages,
			MaxImagesPerPage: maxImagesPerPage,
			SizeAnalysis:     sizeAnalysis,
			AltAnalysis:      altAnalysis,
			UserAgent:        userAgent,
			Timeout:          time.Duration(timeout) * time.Second,
			MaxRedirects:     maxRedirects,
			Workers:          workers,
			DataDir:          dataDir,

			// Advanced features
			EnableSQLite:      enableSQLite,
			UseHeaderRotation: useHeaderRotation,
			EnableTLS:         enableTLS,
		}

		engine, err := crawler.New(config)
		if err != nil {
			return fmt.Errorf("failed to create engine: %w", err)
		}

		report, err := engine.Run(context.Background())
		if err != nil {
			return fmt.Errorf("audit failed: %w", err)
		}

		if err := export.ExportJSON(report, reportFile); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}

		fmt.Printf("Audit completed!\n")
		fmt.Printf("Pages: %d processed, %d analyzed, %d with errors\n",
			report.Meta.TotalPagesProcessed, report.Meta.AnalyzedPages, report.Domain.ErrorPages)
		fmt.Printf("Images: %d found, %d analyzed, %d without alt text (%d%%)\n",
			report.Domain.TotalImagesFound, report.Domain.TotalImagesAnalyzed,
			report.Domain.TotalImagesWithoutAlt, report.Domain.TotalImagesWithoutAltPercentage)
		if report.Domain.MostCommonImageType != "" {
			fmt.Printf("Most common image type: %s\n", report.Domain.MostCommonImageType)
		}
		fmt.Printf("Report written to %s\n", reportFile)

		return nil
	},
}

func init() {
	auditCmd.Flags().StringVar(&seedURL, "url", "", "Seed URL (required)")
	auditCmd.Flags().BoolVar(&crawlEnabled, "crawl", true, "Follow same-domain links beyond the seed page")
	auditCmd.Flags().IntVar(&maxPages, "max-pages", 10, "Maximum number of pages to attempt")
	auditCmd.Flags().IntVar(&maxImagesPerPage, "max-images", 0, "Maximum images analyzed per page (0 = unlimited)")
	auditCmd.Flags().BoolVar(&sizeAnalysis, "size-analysis", true, "Fetch image metadata for content type and size")
	auditCmd.Flags().BoolVar(&altAnalysis, "alt-analysis", true, "Report images missing alt text")
	auditCmd.Flags().StringVar(&userAgent, "user-agent", "", "Override the User-Agent header")
	auditCmd.Flags().IntVar(&timeout, "timeout", 10, "Request timeout in seconds")
	auditCmd.Flags().IntVar(&maxRedirects, "max-redirects", 5, "Maximum redirects per request")
	auditCmd.Flags().IntVar(&workers, "workers", 1, "Number of concurrent page workers")
	auditCmd.Flags().StringVar(&dataDir, "data-dir", "./data", "Data storage directory")
	auditCmd.Flags().StringVar(&reportFile, "output", "report.json", "Report output path")

	// Advanced features
	auditCmd.Flags().BoolVar(&enableSQLite, "enable-sqlite", false, "Also store results in a queryable SQLite database")
	auditCmd.Flags().BoolVar(&useHeaderRotation, "use-header-rotation", false, "Rotate browser headers")
	auditCmd.Flags().BoolVar(&enableTLS, "enable-tls-fingerprint", false, "Enable TLS fingerprinting to mimic real browsers")

	auditCmd.MarkFlagRequired("url")
}
