package biometric

import (
	"image"
	"image/draw"

	"lifex.health/infrastructure/biometric/types"
)

// FaceEngine is the vision capability the rest of the subsystem is
// built on. Implementations must be safe for concurrent use.
type FaceEngine interface {
	// DetectFaces returns every face found in the image with its
	// bounding rectangle and 68-point landmarks.
	DetectFaces(img image.Image) ([]types.Region, error)
	// Encode produces a fixed-dimension embedding for a cropped face.
	Encode(face image.Image) (types.FaceEncoding, error)
}

// DefaultEngine is wired during startup; the service fails fast at
// boot when the vision models cannot be loaded.
var DefaultEngine FaceEngine

// cropPaddingRatio widens the detected bounding box before encoding so
// embeddings stay stable against tight detector crops.
const cropPaddingRatio = 0.15

// DetectAndEncode locates exactly one face and produces its encoding.
// Zero or multiple faces come back as variant statuses, not errors;
// the error return is reserved for engine failures.
func DetectAndEncode(engine FaceEngine, img image.Image) (types.DetectionResult, error) {
	regions, err := engine.DetectFaces(img)
	if err != nil {
		return types.DetectionResult{}, err
	}

	switch {
	case len(regions) == 0:
		return types.DetectionResult{Status: types.DetectionNoFace}, nil
	case len(regions) > 1:
		return types.DetectionResult{Status: types.DetectionMultipleFaces}, nil
	}

	region := regions[0]
	face := cropWithPadding(img, region.Rect)
	encoding, err := engine.Encode(face)
	if err != nil {
		return types.DetectionResult{}, err
	}

	return types.DetectionResult{
		Status:   types.DetectionFound,
		Encoding: encoding,
		Region:   region,
	}, nil
}

// cropWithPadding crops the face rectangle widened symmetrically by
// cropPaddingRatio of its dimensions, clamped to the image bounds.
func cropWithPadding(img image.Image, rect image.Rectangle) image.Image {
	padX := int(float64(rect.Dx()) * cropPaddingRatio)
	padY := int(float64(rect.Dy()) * cropPaddingRatio)

	padded := image.Rect(rect.Min.X-padX, rect.Min.Y-padY, rect.Max.X+padX, rect.Max.Y+padY)
	padded = padded.Intersect(img.Bounds())
	if padded.Empty() {
		padded = rect.Intersect(img.Bounds())
	}

	out := image.NewRGBA(image.Rect(0, 0, padded.Dx(), padded.Dy()))
	draw.Draw(out, out.Bounds(), img, padded.Min, draw.Src)
	return out
}
