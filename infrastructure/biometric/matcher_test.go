package biometric

import (
	"math"
	"testing"

	"lifex.health/infrastructure/biometric/types"
)

func encodingWithDistance(distance float64) types.FaceEncoding {
	encoding := make(types.FaceEncoding, types.Dimensions)
	encoding[0] = distance
	return encoding
}

func TestCompareEncodings(t *testing.T) {
	zero := make(types.FaceEncoding, types.Dimensions)

	tests := []struct {
		name         string
		a            types.FaceEncoding
		b            types.FaceEncoding
		tolerance    float64
		wantMatch    bool
		wantDistance float64
		wantTier     types.ConfidenceTier
	}{
		{
			name:         "identical encodings",
			a:            zero,
			b:            zero,
			tolerance:    DefaultTolerance,
			wantMatch:    true,
			wantDistance: 0,
			wantTier:     types.ConfidenceVeryHigh,
		},
		{
			name:         "very high confidence boundary",
			a:            zero,
			b:            encodingWithDistance(0.30),
			tolerance:    DefaultTolerance,
			wantMatch:    true,
			wantDistance: 0.30,
			wantTier:     types.ConfidenceVeryHigh,
		},
		{
			name:         "high confidence",
			a:            zero,
			b:            encodingWithDistance(0.35),
			tolerance:    DefaultTolerance,
			wantMatch:    true,
			wantDistance: 0.35,
			wantTier:     types.ConfidenceHigh,
		},
		{
			name:         "medium confidence",
			a:            zero,
			b:            encodingWithDistance(0.45),
			tolerance:    DefaultTolerance,
			wantMatch:    true,
			wantDistance: 0.45,
			wantTier:     types.ConfidenceMedium,
		},
		{
			name:         "low confidence at tolerance boundary",
			a:            zero,
			b:            encodingWithDistance(0.60),
			tolerance:    DefaultTolerance,
			wantMatch:    true,
			wantDistance: 0.60,
			wantTier:     types.ConfidenceLow,
		},
		{
			name:         "beyond tolerance",
			a:            zero,
			b:            encodingWithDistance(0.61),
			tolerance:    DefaultTolerance,
			wantMatch:    false,
			wantDistance: 0.61,
			wantTier:     types.ConfidenceVeryLow,
		},
		{
			name:         "tighter caller tolerance",
			a:            zero,
			b:            encodingWithDistance(0.45),
			tolerance:    0.4,
			wantMatch:    false,
			wantDistance: 0.45,
			wantTier:     types.ConfidenceMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CompareEncodings(tt.a, tt.b, tt.tolerance)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.IsMatch != tt.wantMatch {
				t.Errorf("IsMatch = %v, want %v", result.IsMatch, tt.wantMatch)
			}
			if math.Abs(result.Distance-tt.wantDistance) > 1e-9 {
				t.Errorf("Distance = %v, want %v", result.Distance, tt.wantDistance)
			}
			if result.ConfidenceTier != tt.wantTier {
				t.Errorf("ConfidenceTier = %v, want %v", result.ConfidenceTier, tt.wantTier)
			}

			reversed, err := CompareEncodings(tt.b, tt.a, tt.tolerance)
			if err != nil {
				t.Fatalf("unexpected error on reversed compare: %v", err)
			}
			if math.Abs(result.Distance-reversed.Distance) > 1e-9 {
				t.Errorf("distance not symmetric: %v vs %v", result.Distance, reversed.Distance)
			}
		})
	}
}

func TestCompareEncodingsDimensionMismatch(t *testing.T) {
	a := make(types.FaceEncoding, types.Dimensions)
	b := make(types.FaceEncoding, types.Dimensions-1)
	if _, err := CompareEncodings(a, b, DefaultTolerance); err == nil {
		t.Fatal("expected error for mismatched dimensions")
	}
	if _, err := CompareEncodings(types.FaceEncoding{}, types.FaceEncoding{}, DefaultTolerance); err == nil {
		t.Fatal("expected error for empty encodings")
	}
}

func TestConfidencePercentage(t *testing.T) {
	tests := []struct {
		distance float64
		want     float64
	}{
		{0, 100},
		{0.25, 75},
		{0.6, 40},
		{1, 0},
		{1.5, 0},
		{-0.5, 100},
	}
	for _, tt := range tests {
		if got := ConfidencePercentage(tt.distance); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ConfidencePercentage(%v) = %v, want %v", tt.distance, got, tt.want)
		}
	}
}

func TestAdaptiveThreshold(t *testing.T) {
	tests := []struct {
		enrolled int
		want     float64
	}{
		{0, 0.6},
		{9, 0.6},
		{10, 0.55},
		{99, 0.55},
		{100, 0.5},
		{999, 0.5},
		{1000, 0.45},
		{50000, 0.45},
	}
	for _, tt := range tests {
		if got := AdaptiveThreshold(tt.enrolled); got != tt.want {
			t.Errorf("AdaptiveThreshold(%d) = %v, want %v", tt.enrolled, got, tt.want)
		}
	}

	prev := AdaptiveThreshold(0)
	for _, count := range []int{10, 100, 1000} {
		next := AdaptiveThreshold(count)
		if next > prev {
			t.Errorf("threshold loosened at population %d: %v > %v", count, next, prev)
		}
		prev = next
	}
}
