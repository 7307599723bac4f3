package biometric

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"lifex.health/infrastructure/biometric/types"
)

// fixedEngine reports the same detections for every image.
type fixedEngine struct {
	regions []types.Region
}

func (engine *fixedEngine) DetectFaces(img image.Image) ([]types.Region, error) {
	return engine.regions, nil
}

func (engine *fixedEngine) Encode(face image.Image) (types.FaceEncoding, error) {
	return make(types.FaceEncoding, types.Dimensions), nil
}

func checkerboardImage(size int) image.Image {
	img := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x+y)%2 == 0 {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}

func uniformImage(size int, value uint8) image.Image {
	img := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetGray(x, y, color.Gray{Y: value})
		}
	}
	return img
}

func singleFace(width, height int) []types.Region {
	return []types.Region{{Rect: image.Rect(0, 0, width, height)}}
}

func TestValidateQuality(t *testing.T) {
	tests := []struct {
		name      string
		regions   []types.Region
		img       image.Image
		threshold float64
		wantOK    bool
		wantIssue string
	}{
		{
			name:      "sharp well lit face",
			regions:   singleFace(120, 120),
			img:       checkerboardImage(64),
			threshold: RegistrationBlurThreshold,
			wantOK:    true,
		},
		{
			name:      "no face",
			regions:   nil,
			img:       checkerboardImage(64),
			threshold: RegistrationBlurThreshold,
			wantOK:    false,
			wantIssue: "No face detected",
		},
		{
			name:      "multiple faces",
			regions:   append(singleFace(120, 120), singleFace(110, 110)...),
			img:       checkerboardImage(64),
			threshold: RegistrationBlurThreshold,
			wantOK:    false,
			wantIssue: "Multiple faces detected",
		},
		{
			name:      "face below minimum size",
			regions:   singleFace(50, 50),
			img:       checkerboardImage(64),
			threshold: RegistrationBlurThreshold,
			wantOK:    false,
			wantIssue: "Face too small",
		},
		{
			name:      "blurry image",
			regions:   singleFace(120, 120),
			img:       uniformImage(64, 127),
			threshold: RegistrationBlurThreshold,
			wantOK:    false,
			wantIssue: "too blurry",
		},
		{
			name:      "too dark",
			regions:   singleFace(120, 120),
			img:       uniformImage(64, 10),
			threshold: RegistrationBlurThreshold,
			wantOK:    false,
			wantIssue: "too dark",
		},
		{
			name:      "too bright",
			regions:   singleFace(120, 120),
			img:       uniformImage(64, 250),
			threshold: RegistrationBlurThreshold,
			wantOK:    false,
			wantIssue: "too bright",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &fixedEngine{regions: tt.regions}
			ok, issues, err := ValidateQuality(engine, tt.img, tt.threshold)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v (issues %v)", ok, tt.wantOK, issues)
			}
			if tt.wantIssue != "" {
				found := false
				for _, issue := range issues {
					if strings.Contains(issue, tt.wantIssue) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("issues %v missing %q", issues, tt.wantIssue)
				}
			}
		})
	}
}

// moderateSharpnessImage is a flat gray field with one bright pixel at
// the centre. Its Laplacian variance lands between the registration and
// login blur thresholds, so the same frame is sharp enough to enroll
// but not sharp enough to authenticate.
func moderateSharpnessImage(size int) image.Image {
	img := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetGray(x, y, color.Gray{Y: 127})
		}
	}
	img.SetGray(size/2, size/2, color.Gray{Y: 255})
	return img
}

func TestValidateQualityBlurThresholdSensitivity(t *testing.T) {
	img := moderateSharpnessImage(64)

	sharpness := laplacianVariance(grayscale(img))
	if sharpness <= RegistrationBlurThreshold || sharpness >= LoginBlurThreshold {
		t.Fatalf("sharpness = %.1f, want strictly between %.1f and %.1f", sharpness, RegistrationBlurThreshold, LoginBlurThreshold)
	}

	engine := &fixedEngine{regions: singleFace(120, 120)}

	ok, issues, err := ValidateQuality(engine, img, RegistrationBlurThreshold)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected registration threshold to accept the frame, issues %v", issues)
	}

	ok, issues, err = ValidateQuality(engine, img, LoginBlurThreshold)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected login threshold to reject the frame")
	}
	found := false
	for _, issue := range issues {
		if strings.Contains(issue, "too blurry") {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("issues %v missing blur rejection", issues)
	}
}

func TestValidateQualityAccumulatesIssues(t *testing.T) {
	engine := &fixedEngine{regions: singleFace(50, 50)}
	ok, issues, err := ValidateQuality(engine, uniformImage(64, 10), LoginBlurThreshold)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected validation to fail")
	}
	if len(issues) != 3 {
		t.Errorf("expected size, blur and brightness issues together, got %v", issues)
	}
}

func TestQualityError(t *testing.T) {
	if err := QualityError(nil); err != nil {
		t.Errorf("expected nil error for no issues, got %v", err)
	}
	err := QualityError([]string{"Image too blurry"})
	if err == nil {
		t.Fatal("expected an error for reported issues")
	}
	var qualityErr *types.FaceQualityError
	if !errors.As(err, &qualityErr) {
		t.Fatalf("expected *types.FaceQualityError, got %T", err)
	}
	if !strings.Contains(err.Error(), "blurry") {
		t.Errorf("error %q missing issue text", err.Error())
	}
}
