package assessment

import (
	"errors"
	"fmt"
	"time"

	"go-structura/catalog"
	"go-structura/types"
)

const (
	// --- Severity Thresholds ---

	// Max total detections that still classify as Moderate when no
	// structural kind is present.
	moderateCountThreshold = 2

	maxHealthScore = 100
)

// Fallback precautions when no detected kind carries a template.
const (
	noActionPrecaution   = "No precautions required."
	monitoringPrecaution = "Monitor the surface regularly and schedule a professional inspection."
)

// ErrNegativeCount rejects malformed detector output. It is the only
// validation failure Build can report; everything else degrades gracefully.
var ErrNegativeCount = errors.New("detection count must not be negative")

// Classify maps detection counts to a severity tier. A single occurrence of a
// kind whose tier hint is Critical forces Critical regardless of the total:
// one structural crack matters more than two cosmetic stains.
func Classify(cat *catalog.Catalog, counts types.DetectionCounts) types.Severity {
	total := counts.Total()
	if total == 0 {
		return types.Good
	}

	for kind, count := range counts {
		if count > 0 && cat.TierHintOf(kind) == types.Critical {
			return types.Critical
		}
	}

	if total <= moderateCountThreshold {
		return types.Moderate
	}
	return types.Critical
}

// Score computes the 0-100 health score: start at 100 and subtract the
// catalog weight per occurrence, flooring at zero. Pure function of the
// counts and the catalog.
func Score(cat *catalog.Catalog, counts types.DetectionCounts) int {
	score := maxHealthScore
	for kind, count := range counts {
		score -= cat.WeightOf(kind) * count
	}
	if score < 0 {
		score = 0
	}
	return score
}

// Advise collects the precaution templates for every detected kind,
// de-duplicated and ordered by catalog declaration order rather than map
// iteration order. When nothing applies it falls back to a generic message
// picked by severity.
func Advise(cat *catalog.Catalog, severity types.Severity, counts types.DetectionCounts) []string {
	var precautions []string
	seen := make(map[string]bool)

	for _, kind := range cat.Kinds() {
		if counts[kind] <= 0 {
			continue
		}
		for _, p := range cat.PrecautionsFor(kind) {
			if !seen[p] {
				seen[p] = true
				precautions = append(precautions, p)
			}
		}
	}

	if len(precautions) == 0 {
		if severity == types.Good {
			return []string{noActionPrecaution}
		}
		return []string{monitoringPrecaution}
	}
	return precautions
}

// Build composes classification, scoring and advice into one frozen
// Assessment. The counts map is copied so later detector-side mutation cannot
// leak into the record. Negative counts are the only rejected input; unknown
// kinds and empty maps are valid.
func Build(cat *catalog.Catalog, id string, createdAt time.Time, counts types.DetectionCounts) (types.Assessment, error) {
	frozen := make(types.DetectionCounts, len(counts))
	for kind, count := range counts {
		if count < 0 {
			return types.Assessment{}, fmt.Errorf("%w: %s has count %d", ErrNegativeCount, kind, count)
		}
		frozen[kind] = count
	}

	severity := Classify(cat, frozen)

	return types.Assessment{
		ID:          id,
		CreatedAt:   createdAt,
		Counts:      frozen,
		Severity:    severity,
		HealthScore: Score(cat, frozen),
		Precautions: Advise(cat, severity, frozen),
	}, nil
}
