package biometric

import (
	"fmt"
	"image"
	"os"
	"strconv"

	"lifex.health/infrastructure/biometric/types"
)

const (
	// RegistrationBlurThreshold is lenient so enrollment completes on
	// ordinary phone cameras.
	RegistrationBlurThreshold = 70.0
	// LoginBlurThreshold is strict so low-quality spoof material is
	// rejected at authentication time.
	LoginBlurThreshold = 100.0

	defaultMinFaceSize = 100

	minBrightness = 30.0
	maxBrightness = 220.0
)

// ValidateQuality scores an image before it is accepted as enrollment
// or verification material. Zero or multiple faces return immediately;
// every other issue accumulates so the caller can show all of them at
// once.
func ValidateQuality(engine FaceEngine, img image.Image, blurThreshold float64) (bool, []string, error) {
	regions, err := engine.DetectFaces(img)
	if err != nil {
		return false, nil, err
	}

	if len(regions) == 0 {
		return false, []string{"No face detected in the image"}, nil
	}
	if len(regions) > 1 {
		return false, []string{"Multiple faces detected in the image"}, nil
	}

	var issues []string

	minSize := minFaceSize()
	face := regions[0].Rect
	if face.Dx() < minSize || face.Dy() < minSize {
		issues = append(issues, fmt.Sprintf("Face too small (%dx%d), minimum is %dx%d", face.Dx(), face.Dy(), minSize, minSize))
	}

	gray := grayscale(img)

	if sharpness := laplacianVariance(gray); sharpness < blurThreshold {
		issues = append(issues, fmt.Sprintf("Image too blurry (sharpness %.1f, minimum %.1f)", sharpness, blurThreshold))
	}

	if brightness := meanBrightness(gray); brightness < minBrightness {
		issues = append(issues, fmt.Sprintf("Image too dark (brightness %.1f)", brightness))
	} else if brightness > maxBrightness {
		issues = append(issues, fmt.Sprintf("Image too bright (brightness %.1f)", brightness))
	}

	return len(issues) == 0, issues, nil
}

// QualityError wraps accumulated issues for callers that want one
// error value instead of the issue list.
func QualityError(issues []string) error {
	if len(issues) == 0 {
		return nil
	}
	return &types.FaceQualityError{Issues: issues}
}

func minFaceSize() int {
	if raw := os.Getenv("MIN_FACE_SIZE"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultMinFaceSize
}
