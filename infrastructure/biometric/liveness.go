package biometric

import (
	"fmt"
	"image"
	"math"

	"lifex.health/infrastructure/biometric/types"
)

const (
	// MinLivenessFrames is the smallest usable frame sequence; fewer
	// valid frames fails the temporal checks explicitly rather than
	// false-passing.
	MinLivenessFrames = 5
	// MaxLivenessFrames bounds upload size.
	MaxLivenessFrames = 60

	blinkEARThreshold  = 0.25
	blinkEARRange      = 0.05
	blinkTransitionMin = 2

	movementRangePx = 20.0

	textureScoreMin    = 0.5
	moireFractionMax   = 0.01
	sharpnessMin       = 100.0
	glareValueCutoff   = 240.0
	glareFractionMax   = 0.05
)

// 68-point landmark layout: left eye 36-41, right eye 42-47, nose tip 30.
const (
	leftEyeStart  = 36
	rightEyeStart = 42
	noseTipIndex  = 30
	landmarkCount = 68
)

type LivenessOptions struct {
	RequireBlink     bool
	RequireMovement  bool
	CheckPhotoAttack bool
}

// CheckLiveness runs blink, head-movement and photo-attack analysis
// over a frame sequence and aggregates them. It always returns a
// composite result; per-check pipeline failures are captured into the
// failing check's details rather than propagated.
func CheckLiveness(engine FaceEngine, frames []image.Image, opts LivenessOptions) types.LivenessResult {
	ears, noses := collectFrameSignals(engine, frames)

	result := types.LivenessResult{
		Blink:       runCheck(func() types.CheckResult { return blinkCheck(ears) }),
		Movement:    runCheck(func() types.CheckResult { return movementCheck(noses) }),
		PhotoAttack: runCheck(func() types.CheckResult { return photoAttackCheck(frames) }),
	}

	var required, passed int
	if opts.RequireBlink {
		required++
		if result.Blink.Passed {
			passed++
		}
	}
	if opts.RequireMovement {
		required++
		if result.Movement.Passed {
			passed++
		}
	}
	if opts.CheckPhotoAttack {
		required++
		if result.PhotoAttack.Passed {
			passed++
		}
	}

	if required == 0 {
		result.Confidence = 1.0
	} else {
		result.Confidence = float64(passed) / float64(required)
	}
	result.IsLive = result.Confidence == 1.0
	return result
}

// runCheck converts a panicking check pipeline into a failed result so
// the composite is always returned.
func runCheck(check func() types.CheckResult) (result types.CheckResult) {
	defer func() {
		if r := recover(); r != nil {
			result = types.CheckResult{
				Passed:  false,
				Details: map[string]any{"error": fmt.Sprintf("%v", r)},
			}
		}
	}()
	return check()
}

// collectFrameSignals detects landmarks per frame and extracts the EAR
// series and nose-tip track. Frames where detection fails or does not
// yield exactly one face with full landmarks are skipped.
func collectFrameSignals(engine FaceEngine, frames []image.Image) ([]float64, []image.Point) {
	var ears []float64
	var noses []image.Point
	for _, frame := range frames {
		regions, err := engine.DetectFaces(frame)
		if err != nil || len(regions) != 1 {
			continue
		}
		landmarks := regions[0].Landmarks
		if len(landmarks) < landmarkCount {
			continue
		}
		left := eyeAspectRatio(landmarks[leftEyeStart : leftEyeStart+6])
		right := eyeAspectRatio(landmarks[rightEyeStart : rightEyeStart+6])
		ears = append(ears, (left+right)/2)
		noses = append(noses, landmarks[noseTipIndex])
	}
	return ears, noses
}

// eyeAspectRatio is (||p2-p6|| + ||p3-p5||) / (2*||p1-p4||) over one
// eye's six contour landmarks. It collapses toward zero as the eye
// closes.
func eyeAspectRatio(eye []image.Point) float64 {
	vertical1 := pointDistance(eye[1], eye[5])
	vertical2 := pointDistance(eye[2], eye[4])
	horizontal := pointDistance(eye[0], eye[3])
	if horizontal == 0 {
		return 0
	}
	return (vertical1 + vertical2) / (2 * horizontal)
}

func pointDistance(a, b image.Point) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

// blinkCheck detects a full open-closed-open cycle in the EAR series:
// the range must exceed blinkEARRange and the below-threshold boolean
// series must flip at least twice. A one-directional drift is not a
// blink.
func blinkCheck(ears []float64) types.CheckResult {
	if len(ears) < MinLivenessFrames {
		return types.CheckResult{
			Passed: false,
			Details: map[string]any{
				"error": fmt.Sprintf("insufficient valid frames for blink analysis: %d of %d required", len(ears), MinLivenessFrames),
			},
		}
	}

	minEAR, maxEAR := ears[0], ears[0]
	for _, ear := range ears {
		if ear < minEAR {
			minEAR = ear
		}
		if ear > maxEAR {
			maxEAR = ear
		}
	}

	transitions := 0
	for i := 1; i < len(ears); i++ {
		if (ears[i] < blinkEARThreshold) != (ears[i-1] < blinkEARThreshold) {
			transitions++
		}
	}

	detected := (maxEAR-minEAR) >= blinkEARRange && transitions >= blinkTransitionMin
	return types.CheckResult{
		Passed: detected,
		Details: map[string]any{
			"ear_min":     minEAR,
			"ear_max":     maxEAR,
			"ear_range":   maxEAR - minEAR,
			"transitions": transitions,
			"frames":      len(ears),
		},
	}
}

// movementCheck tracks the nose tip across frames; either axis moving
// more than movementRangePx counts as genuine head movement.
func movementCheck(noses []image.Point) types.CheckResult {
	if len(noses) < MinLivenessFrames {
		return types.CheckResult{
			Passed: false,
			Details: map[string]any{
				"error": fmt.Sprintf("insufficient valid frames for movement analysis: %d of %d required", len(noses), MinLivenessFrames),
			},
		}
	}

	minX, maxX := noses[0].X, noses[0].X
	minY, maxY := noses[0].Y, noses[0].Y
	for _, nose := range noses {
		if nose.X < minX {
			minX = nose.X
		}
		if nose.X > maxX {
			maxX = nose.X
		}
		if nose.Y < minY {
			minY = nose.Y
		}
		if nose.Y > maxY {
			maxY = nose.Y
		}
	}

	xRange := float64(maxX - minX)
	yRange := float64(maxY - minY)
	detected := xRange > movementRangePx || yRange > movementRangePx
	return types.CheckResult{
		Passed: detected,
		Details: map[string]any{
			"x_range": xRange,
			"y_range": yRange,
			"frames":  len(noses),
		},
	}
}

// photoAttackCheck samples the first, middle and last frames and runs
// texture, moire, sharpness and glare analysis on each. A frame is
// judged real only when all four pass; the three samples majority-vote
// the aggregate.
func photoAttackCheck(frames []image.Image) types.CheckResult {
	if len(frames) == 0 {
		return types.CheckResult{
			Passed:  false,
			Details: map[string]any{"error": "no frames supplied for photo attack analysis"},
		}
	}

	samples := []image.Image{frames[0], frames[len(frames)/2], frames[len(frames)-1]}

	var realVotes int
	frameDetails := make([]map[string]any, 0, len(samples))
	for _, sample := range samples {
		gray := grayscale(sample)

		texture := sobelMeanMagnitude(gray) / 255.0
		moire := moireFraction(gray)
		sharpness := laplacianVariance(gray)
		glare := glareFraction(sample, glareValueCutoff)

		judgedReal := texture > textureScoreMin &&
			moire <= moireFractionMax &&
			sharpness > sharpnessMin &&
			glare <= glareFractionMax
		if judgedReal {
			realVotes++
		}

		frameDetails = append(frameDetails, map[string]any{
			"texture_score":  texture,
			"moire_fraction": moire,
			"sharpness":      sharpness,
			"glare_fraction": glare,
			"judged_real":    judgedReal,
		})
	}

	passed := realVotes > len(samples)/2
	return types.CheckResult{
		Passed: passed,
		Details: map[string]any{
			"real_votes":     realVotes,
			"sampled_frames": len(samples),
			"frame_analysis": frameDetails,
		},
	}
}
