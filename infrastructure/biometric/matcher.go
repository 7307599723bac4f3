package biometric

import (
	"fmt"
	"math"

	"lifex.health/infrastructure/biometric/types"
)

// DefaultTolerance is the 1:1 match tolerance used when a caller does
// not supply one.
const DefaultTolerance = 0.6

// CompareEncodings computes the Euclidean distance between two
// encodings and classifies the result against the tolerance.
func CompareEncodings(a, b types.FaceEncoding, tolerance float64) (types.MatchResult, error) {
	if len(a) != len(b) {
		return types.MatchResult{}, fmt.Errorf("encoding dimension mismatch: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return types.MatchResult{}, fmt.Errorf("cannot compare empty encodings")
	}

	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	distance := math.Sqrt(sum)

	return types.MatchResult{
		IsMatch:              distance <= tolerance,
		Distance:             distance,
		ConfidenceTier:       tierForDistance(distance),
		ConfidencePercentage: ConfidencePercentage(distance),
	}, nil
}

// ConfidencePercentage maps a distance to the 0-100 scale shown to
// users.
func ConfidencePercentage(distance float64) float64 {
	pct := (1 - distance) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func tierForDistance(distance float64) types.ConfidenceTier {
	switch {
	case distance <= 0.30:
		return types.ConfidenceVeryHigh
	case distance <= 0.40:
		return types.ConfidenceHigh
	case distance <= 0.50:
		return types.ConfidenceMedium
	case distance <= 0.60:
		return types.ConfidenceLow
	default:
		return types.ConfidenceVeryLow
	}
}

// AdaptiveThreshold tightens the match threshold as the enrolled
// population grows, compensating for the higher chance of an
// accidental close match in a larger 1:N scan. The breakpoints were
// empirically chosen and must not be retuned casually.
func AdaptiveThreshold(enrolledCount int) float64 {
	switch {
	case enrolledCount < 10:
		return 0.6
	case enrolledCount < 100:
		return 0.55
	case enrolledCount < 1000:
		return 0.5
	default:
		return 0.45
	}
}
