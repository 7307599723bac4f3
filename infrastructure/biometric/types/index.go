package types

import (
	"errors"
	"image"
)

type ConfidenceTier string

const (
	ConfidenceVeryHigh ConfidenceTier = "VERY_HIGH"
	ConfidenceHigh     ConfidenceTier = "HIGH"
	ConfidenceMedium   ConfidenceTier = "MEDIUM"
	ConfidenceLow      ConfidenceTier = "LOW"
	ConfidenceVeryLow  ConfidenceTier = "VERY_LOW"
)

// MatchResult is the outcome of a 1:1 encoding comparison.
type MatchResult struct {
	IsMatch              bool           `json:"is_match"`
	Distance             float64        `json:"distance"`
	ConfidenceTier       ConfidenceTier `json:"confidence_tier"`
	ConfidencePercentage float64        `json:"confidence_percentage"`
}

// CheckResult is the outcome of a single liveness check. Pipeline
// failures inside a check land in Details["error"] with Passed false
// instead of propagating.
type CheckResult struct {
	Passed  bool           `json:"passed"`
	Details map[string]any `json:"details"`
}

type LivenessResult struct {
	IsLive      bool        `json:"is_live"`
	Confidence  float64     `json:"confidence"`
	Blink       CheckResult `json:"blink"`
	Movement    CheckResult `json:"movement"`
	PhotoAttack CheckResult `json:"photo_attack"`
}

type DetectionStatus int

const (
	DetectionFound DetectionStatus = iota
	DetectionNoFace
	DetectionMultipleFaces
)

// DetectionResult is the variant outcome of single-face detection so
// callers branch on status rather than on error kinds.
type DetectionResult struct {
	Status   DetectionStatus
	Encoding FaceEncoding
	Region   Region
}

// AsError surfaces the failure arms as a FaceDetectionError. Both
// zero-face and multiple-face share the error kind and differ only in
// message.
func (result DetectionResult) AsError() error {
	switch result.Status {
	case DetectionNoFace:
		return &FaceDetectionError{Message: "No face detected in the image. Please provide a clear photo of your face."}
	case DetectionMultipleFaces:
		return &FaceDetectionError{Message: "Multiple faces detected in the image. Please provide a photo with only your face."}
	default:
		return nil
	}
}

type IdentifyStatus string

const (
	IdentifySuccess     IdentifyStatus = "SUCCESS"
	IdentifyAmbiguous   IdentifyStatus = "AMBIGUOUS"
	IdentifyNoMatch     IdentifyStatus = "NO_MATCH"
	IdentifyRateLimited IdentifyStatus = "RATE_LIMITED"
	IdentifyError       IdentifyStatus = "ERROR"
)

type Candidate struct {
	UserID     string  `json:"user_id"`
	Distance   float64 `json:"distance"`
	Confidence float64 `json:"confidence"`
}

// IdentifyResult always carries the best distance and up to three
// ranked candidates regardless of status.
type IdentifyResult struct {
	Status       IdentifyStatus `json:"status"`
	UserID       *string        `json:"user_id"`
	BestDistance float64        `json:"best_distance"`
	Candidates   []Candidate    `json:"candidates"`
}

// EnrolledFace is one gallery entry for 1:N identification.
type EnrolledFace struct {
	UserID   string
	Encoding FaceEncoding
}

// Region is a detected face: bounding rectangle plus the 68-point
// landmark set when the detector provides one.
type Region struct {
	Rect      image.Rectangle
	Landmarks []image.Point
}

type FaceDetectionError struct {
	Message string
}

func (err *FaceDetectionError) Error() string {
	return err.Message
}

type FaceQualityError struct {
	Issues []string
}

func (err *FaceQualityError) Error() string {
	if len(err.Issues) == 0 {
		return "face quality validation failed"
	}
	return err.Issues[0]
}

var (
	ErrSessionExpired   = errors.New("identification session expired or not found")
	ErrInvalidSelection = errors.New("selected user is not part of the identification session")
	ErrRateLimited      = errors.New("too many identification attempts, slow down")
)
