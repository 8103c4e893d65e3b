package stats

import (
	"math"
	"net/http"

	"github.com/BenjaminSRussell/imgaudit/internal/types"
)

// Average image payloads above this flag the domain for size optimization
const sizeOptimizationThreshold = 100 * 1024

// Reduce folds the ordered page results of one crawl into a DomainSummary.
// It is a pure function of its inputs; page order does not change any total.
func Reduce(domain string, pages []types.PageResult) types.DomainSummary {
	summary := types.DomainSummary{
		Domain:       domain,
		PagesCrawled: len(pages),
		ImageTypes:   make(map[string]int),
	}

	for _, page := range pages {
		if page.Error == "" && page.StatusCode >= http.StatusOK && page.StatusCode < http.StatusMultipleChoices {
			summary.SuccessfulPages++
		}
		if page.Error != "" || page.StatusCode >= http.StatusBadRequest {
			summary.ErrorPages++
		}

		summary.TotalImagesFound += page.TotalImagesFound
		summary.TotalImagesAnalyzed += page.ImagesAnalyzed
		summary.TotalImagesWithoutAlt += page.ImagesWithoutAltCount
		summary.TotalImageSize += page.TotalImageSize

		for imageType, count := range page.ImageTypes {
			summary.ImageTypes[imageType] += count
		}
	}

	summary.TotalImagesWithoutAltPercentage = percent(summary.TotalImagesWithoutAlt, summary.TotalImagesAnalyzed)
	summary.AverageImagesPerPage = round2(ratio(summary.TotalImagesFound, summary.PagesCrawled))
	summary.AverageImageSize = round2(ratio64(summary.TotalImageSize, summary.TotalImagesAnalyzed))
	summary.MostCommonImageType = mostCommonType(summary.ImageTypes)
	summary.AltOptimizationNeeded = summary.TotalImagesWithoutAlt > 0
	summary.SizeOptimizationNeeded = summary.AverageImageSize > sizeOptimizationThreshold

	return summary
}

// mostCommonType returns the histogram key with the highest count.
// Ties break to the lexicographically smallest type so the result is
// deterministic regardless of map iteration order.
func mostCommonType(histogram map[string]int) string {
	best := ""
	bestCount := 0
	for imageType, count := range histogram {
		if count > bestCount || (count == bestCount && (best == "" || imageType < best)) {
			best = imageType
			bestCount = count
		}
	}
	return best
}

// percent computes a percentage rounded to the nearest integer, 0 when the
// denominator is 0.
func percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func ratio64(num int64, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
