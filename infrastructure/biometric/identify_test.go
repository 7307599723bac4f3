package biometric

import (
	"context"
	"testing"

	"lifex.health/infrastructure/biometric/types"
)

type staticGallery struct {
	profiles []types.EnrolledFace
}

func (gallery *staticGallery) EligibleProfiles(ctx context.Context) ([]types.EnrolledFace, error) {
	return gallery.profiles, nil
}

func galleryAtDistances(distances ...float64) *staticGallery {
	gallery := &staticGallery{}
	for i, distance := range distances {
		gallery.profiles = append(gallery.profiles, types.EnrolledFace{
			UserID:   string(rune('a' + i)),
			Encoding: encodingWithDistance(distance),
		})
	}
	return gallery
}

func TestIdentifyEncoding(t *testing.T) {
	probe := make(types.FaceEncoding, types.Dimensions)

	tests := []struct {
		name       string
		gallery    *staticGallery
		wantStatus types.IdentifyStatus
		wantUserID string
	}{
		{
			name:       "clear best match",
			gallery:    galleryAtDistances(0.30, 0.55, 0.90),
			wantStatus: types.IdentifySuccess,
			wantUserID: "a",
		},
		{
			name:       "two candidates inside the margin",
			gallery:    galleryAtDistances(0.40, 0.45, 0.90),
			wantStatus: types.IdentifyAmbiguous,
		},
		{
			name:       "second candidate exactly at the margin",
			gallery:    galleryAtDistances(0.30, 0.40),
			wantStatus: types.IdentifySuccess,
			wantUserID: "a",
		},
		{
			name:       "nobody under the threshold",
			gallery:    galleryAtDistances(0.85, 0.92),
			wantStatus: types.IdentifyNoMatch,
		},
		{
			name:       "empty population",
			gallery:    &staticGallery{},
			wantStatus: types.IdentifyNoMatch,
		},
		{
			name:       "single enrolled match",
			gallery:    galleryAtDistances(0.25),
			wantStatus: types.IdentifySuccess,
			wantUserID: "a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identifier := &Identifier{Gallery: tt.gallery}
			result, err := identifier.IdentifyEncoding(context.Background(), probe)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Status != tt.wantStatus {
				t.Fatalf("Status = %v, want %v", result.Status, tt.wantStatus)
			}
			if tt.wantUserID != "" {
				if result.UserID == nil || *result.UserID != tt.wantUserID {
					t.Errorf("UserID = %v, want %v", result.UserID, tt.wantUserID)
				}
			} else if result.Status != types.IdentifySuccess && result.UserID != nil {
				t.Errorf("UserID should be nil on %v, got %v", result.Status, *result.UserID)
			}
		})
	}
}

func TestIdentifyEncodingRanksTopCandidates(t *testing.T) {
	gallery := galleryAtDistances(0.90, 0.20, 0.70, 0.55, 0.80)
	identifier := &Identifier{Gallery: gallery}

	result, err := identifier.IdentifyEncoding(context.Background(), make(types.FaceEncoding, types.Dimensions))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Candidates) != 3 {
		t.Fatalf("expected 3 ranked candidates, got %d", len(result.Candidates))
	}
	for i := 1; i < len(result.Candidates); i++ {
		if result.Candidates[i].Distance < result.Candidates[i-1].Distance {
			t.Errorf("candidates not sorted by distance: %v", result.Candidates)
		}
	}
	if result.Candidates[0].UserID != "b" {
		t.Errorf("best candidate = %q, want %q", result.Candidates[0].UserID, "b")
	}
	if result.BestDistance != result.Candidates[0].Distance {
		t.Errorf("BestDistance = %v, want %v", result.BestDistance, result.Candidates[0].Distance)
	}
}

func TestIdentifyEncodingThresholdOverride(t *testing.T) {
	gallery := galleryAtDistances(0.58)
	override := 0.5
	identifier := &Identifier{Gallery: gallery, ThresholdOverride: &override}

	result, err := identifier.IdentifyEncoding(context.Background(), make(types.FaceEncoding, types.Dimensions))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != types.IdentifyNoMatch {
		t.Fatalf("Status = %v, want %v with overridden threshold", result.Status, types.IdentifyNoMatch)
	}
}

func TestIdentifyEncodingAdaptiveThresholdTightens(t *testing.T) {
	// 12 enrolled profiles puts the adaptive threshold at 0.55, so a
	// 0.58 best match that would pass in a small population is refused.
	distances := []float64{0.58}
	for i := 0; i < 11; i++ {
		distances = append(distances, 0.95)
	}
	identifier := &Identifier{Gallery: galleryAtDistances(distances...)}

	result, err := identifier.IdentifyEncoding(context.Background(), make(types.FaceEncoding, types.Dimensions))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != types.IdentifyNoMatch {
		t.Fatalf("Status = %v, want %v at population 12", result.Status, types.IdentifyNoMatch)
	}
}
