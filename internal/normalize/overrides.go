package normalize

import (
	"math"
	"strings"

	"mediashelf/internal/media"
)

// MaxRating is the top of the five-point scale.
const MaxRating = 5.0

// ApplyOverrides writes caller-chosen values over the pipeline's. Overrides go
// through the same normalization as scraped values, so a status label such as
// "看过" still becomes a canonical token.
func ApplyOverrides(candidate *media.ImportCandidate, overrides media.Overrides) {
	if candidate == nil || overrides.Empty() {
		return
	}
	if overrides.Title != nil {
		if title := strings.TrimSpace(*overrides.Title); title != "" {
			candidate.Title = title
			candidate.LowConfidence = false
		}
	}
	if overrides.Status != nil {
		candidate.Status = Status(candidate.Category, *overrides.Status)
	}
	if overrides.Rating != nil {
		candidate.NormalizedRating = clampRating(*overrides.Rating)
	}
	if overrides.Notes != nil {
		candidate.Notes = strings.TrimSpace(*overrides.Notes)
	}
	if overrides.Tags != nil {
		candidate.Tags = SplitTags(JoinTags(overrides.Tags))
	}
	if overrides.IsOwned != nil {
		candidate.IsOwned = *overrides.IsOwned
	}
}

func clampRating(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > MaxRating:
		return MaxRating
	default:
		return Round1(v)
	}
}
