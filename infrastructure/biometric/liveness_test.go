package biometric

import (
	"image"
	"math"
	"testing"

	"lifex.health/infrastructure/biometric/types"
)

// sequenceEngine returns one pre-built landmark set per DetectFaces
// call, in order, mimicking per-frame detection over a clip.
type sequenceEngine struct {
	regions [][]types.Region
	calls   int
}

func (engine *sequenceEngine) DetectFaces(img image.Image) ([]types.Region, error) {
	if engine.calls >= len(engine.regions) {
		return nil, nil
	}
	regions := engine.regions[engine.calls]
	engine.calls++
	return regions, nil
}

func (engine *sequenceEngine) Encode(face image.Image) (types.FaceEncoding, error) {
	return make(types.FaceEncoding, types.Dimensions), nil
}

// landmarksFor builds a 68-point set where both eyes read the given
// EAR and the nose tip sits at the given point. Eye corners are 20px
// apart, so the eyelid offset is 20*ear.
func landmarksFor(ear float64, nose image.Point) []image.Point {
	landmarks := make([]image.Point, landmarkCount)
	lid := int(math.Round(ear * 20))
	eye := func(originX int) []image.Point {
		return []image.Point{
			{X: originX, Y: 100},
			{X: originX + 5, Y: 100 + lid},
			{X: originX + 15, Y: 100 + lid},
			{X: originX + 20, Y: 100},
			{X: originX + 15, Y: 100},
			{X: originX + 5, Y: 100},
		}
	}
	copy(landmarks[leftEyeStart:], eye(40))
	copy(landmarks[rightEyeStart:], eye(90))
	landmarks[noseTipIndex] = nose
	return landmarks
}

func framesAndEngine(ears []float64, noses []image.Point) ([]image.Image, *sequenceEngine) {
	frames := make([]image.Image, len(ears))
	regions := make([][]types.Region, len(ears))
	for i := range ears {
		frames[i] = image.NewGray(image.Rect(0, 0, 64, 64))
		regions[i] = []types.Region{{
			Rect:      image.Rect(30, 80, 130, 180),
			Landmarks: landmarksFor(ears[i], noses[i]),
		}}
	}
	return frames, &sequenceEngine{regions: regions}
}

func staticNoses(n int) []image.Point {
	noses := make([]image.Point, n)
	for i := range noses {
		noses[i] = image.Point{X: 80, Y: 140}
	}
	return noses
}

func TestBlinkDetection(t *testing.T) {
	tests := []struct {
		name string
		ears []float64
		want bool
	}{
		{
			name: "full blink cycle",
			ears: []float64{0.35, 0.35, 0.20, 0.20, 0.35, 0.35},
			want: true,
		},
		{
			name: "eyes never close",
			ears: []float64{0.35, 0.35, 0.35, 0.35, 0.35, 0.35},
			want: false,
		},
		{
			name: "eyes close but never reopen",
			ears: []float64{0.35, 0.35, 0.35, 0.20, 0.20, 0.20},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames, engine := framesAndEngine(tt.ears, staticNoses(len(tt.ears)))
			result := CheckLiveness(engine, frames, LivenessOptions{RequireBlink: true})
			if result.Blink.Passed != tt.want {
				t.Errorf("Blink.Passed = %v, want %v (details %v)", result.Blink.Passed, tt.want, result.Blink.Details)
			}
			if result.IsLive != tt.want {
				t.Errorf("IsLive = %v, want %v", result.IsLive, tt.want)
			}
		})
	}
}

func TestHeadMovementDetection(t *testing.T) {
	moving := []image.Point{
		{X: 70, Y: 140}, {X: 78, Y: 140}, {X: 86, Y: 140},
		{X: 94, Y: 140}, {X: 102, Y: 140},
	}
	flatEars := []float64{0.35, 0.35, 0.35, 0.35, 0.35}

	frames, engine := framesAndEngine(flatEars, moving)
	result := CheckLiveness(engine, frames, LivenessOptions{RequireMovement: true})
	if !result.Movement.Passed {
		t.Errorf("expected movement to pass, details %v", result.Movement.Details)
	}
	if !result.IsLive {
		t.Error("expected IsLive with only the movement check required")
	}

	frames, engine = framesAndEngine(flatEars, staticNoses(len(flatEars)))
	result = CheckLiveness(engine, frames, LivenessOptions{RequireMovement: true})
	if result.Movement.Passed {
		t.Errorf("expected static head to fail movement, details %v", result.Movement.Details)
	}
}

func TestLivenessInsufficientFrames(t *testing.T) {
	ears := []float64{0.35, 0.20, 0.35}
	frames, engine := framesAndEngine(ears, staticNoses(len(ears)))

	result := CheckLiveness(engine, frames, LivenessOptions{RequireBlink: true, RequireMovement: true})
	if result.IsLive {
		t.Fatal("three frames must never pass the temporal checks")
	}
	if result.Blink.Passed || result.Movement.Passed {
		t.Errorf("temporal checks passed on short sequence: blink=%v movement=%v", result.Blink.Passed, result.Movement.Passed)
	}
}

func TestLivenessConfidenceIsFractionOfRequiredChecks(t *testing.T) {
	blink := []float64{0.35, 0.35, 0.20, 0.20, 0.35, 0.35}
	frames, engine := framesAndEngine(blink, staticNoses(len(blink)))

	result := CheckLiveness(engine, frames, LivenessOptions{RequireBlink: true, RequireMovement: true})
	if result.Confidence != 0.5 {
		t.Errorf("Confidence = %v, want 0.5 with one of two required checks passing", result.Confidence)
	}
	if result.IsLive {
		t.Error("IsLive must require every required check to pass")
	}
}

func TestPhotoAttackFlaggedOnFlatFrames(t *testing.T) {
	// Uniform gray frames have no texture at all, the strongest
	// signature of a flat reproduction.
	ears := []float64{0.35, 0.35, 0.35, 0.35, 0.35}
	frames, engine := framesAndEngine(ears, staticNoses(len(ears)))

	result := CheckLiveness(engine, frames, LivenessOptions{CheckPhotoAttack: true})
	if result.PhotoAttack.Passed {
		t.Errorf("uniform frames judged real, details %v", result.PhotoAttack.Details)
	}
	if result.IsLive {
		t.Error("IsLive must fail when the photo attack check is required and fails")
	}
}

func TestLivenessSkipsUndetectedFrames(t *testing.T) {
	ears := []float64{0.35, 0.35, 0.20, 0.20, 0.35, 0.35}
	frames, engine := framesAndEngine(ears, staticNoses(len(ears)))
	// Second frame yields no detection and must be skipped, leaving
	// five valid frames, still enough for the temporal checks.
	engine.regions[1] = nil

	result := CheckLiveness(engine, frames, LivenessOptions{RequireBlink: true})
	if !result.Blink.Passed {
		t.Errorf("blink should still be detected across skipped frames, details %v", result.Blink.Details)
	}
}
