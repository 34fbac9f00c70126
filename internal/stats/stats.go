// Package stats derives presentation statistics and score classifications
// from normalized result sets. All functions are pure; absent inputs are
// skipped, never treated as zero.
package stats

import (
	"fmt"
	"math"

	"inmoscope/server/internal/models"
)

// Score thresholds, inclusive on the lower bound of each band. The same
// bands classify properties and opportunities; they must never diverge.
const (
	highScoreThreshold   = 70
	mediumScoreThreshold = 50
)

// AverageOf averages the present values only. Returns 0 when no value is
// present; callers display that as "no data", it is not an error.
func AverageOf(values []*float64) float64 {
	var sum float64
	var count int
	for _, v := range values {
		if v == nil {
			continue
		}
		sum += *v
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// Classify maps an optional investment score to its presentation tier.
func Classify(score *float64) models.Tier {
	switch {
	case score == nil:
		return models.TierUnclassified
	case *score >= highScoreThreshold:
		return models.TierHigh
	case *score >= mediumScoreThreshold:
		return models.TierMedium
	default:
		return models.TierLow
	}
}

// PriceDifferenceLabel renders an optional price difference for display.
// A positive stored value means the listing is priced below the area average;
// the sign convention is intentional and must not be flipped.
func PriceDifferenceLabel(diff *float64) string {
	if diff == nil {
		return ""
	}
	if *diff > 0 {
		return fmt.Sprintf("%.1f%% below average", *diff)
	}
	return fmt.Sprintf("%.1f%% above average", math.Abs(*diff))
}

// Summarize computes the statistics block for a property page plus the
// matching opportunity count.
func Summarize(properties []models.Property, opportunityCount int) models.PropertyStats {
	prices := make([]*float64, 0, len(properties))
	perSqm := make([]*float64, 0, len(properties))
	for i := range properties {
		prices = append(prices, properties[i].Price)
		perSqm = append(perSqm, properties[i].PricePerSqm)
	}

	return models.PropertyStats{
		TotalProperties:    len(properties),
		AveragePrice:       AverageOf(prices),
		AveragePricePerSqm: AverageOf(perSqm),
		OpportunityCount:   opportunityCount,
	}
}
