package biometric

import (
	"image"
	"testing"

	"lifex.health/infrastructure/biometric/types"
)

func TestDetectAndEncodeVariants(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 200, 200))

	tests := []struct {
		name       string
		regions    []types.Region
		wantStatus types.DetectionStatus
	}{
		{
			name:       "no face",
			regions:    nil,
			wantStatus: types.DetectionNoFace,
		},
		{
			name:       "multiple faces",
			regions:    append(singleFace(120, 120), singleFace(110, 110)...),
			wantStatus: types.DetectionMultipleFaces,
		},
		{
			name:       "single face",
			regions:    singleFace(120, 120),
			wantStatus: types.DetectionFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &fixedEngine{regions: tt.regions}
			result, err := DetectAndEncode(engine, img)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Status != tt.wantStatus {
				t.Fatalf("Status = %v, want %v", result.Status, tt.wantStatus)
			}
			if tt.wantStatus == types.DetectionFound {
				if len(result.Encoding) != types.Dimensions {
					t.Errorf("encoding length = %d, want %d", len(result.Encoding), types.Dimensions)
				}
			} else if result.AsError() == nil {
				t.Error("expected AsError to report the failed detection")
			}
		})
	}
}

func TestCropWithPadding(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 200, 200))

	cropped := cropWithPadding(img, image.Rect(50, 50, 150, 150))
	bounds := cropped.Bounds()
	// 15% of a 100px box on each side.
	if bounds.Dx() != 130 || bounds.Dy() != 130 {
		t.Errorf("padded crop = %dx%d, want 130x130", bounds.Dx(), bounds.Dy())
	}

	// A box at the image edge clamps instead of reading outside.
	cropped = cropWithPadding(img, image.Rect(0, 0, 100, 100))
	bounds = cropped.Bounds()
	if bounds.Dx() != 115 || bounds.Dy() != 115 {
		t.Errorf("edge crop = %dx%d, want 115x115", bounds.Dx(), bounds.Dy())
	}
}
