package biometric_usecases

import (
	"errors"
	"image"

	apperrors "lifex.health/application/appErrors"
	"lifex.health/application/constants"
	"lifex.health/application/controller/dto"
	"lifex.health/application/utils"
	"lifex.health/infrastructure/biometric"
	"lifex.health/infrastructure/biometric/types"
)

type LiveVerificationResult struct {
	Liveness types.LivenessResult `json:"liveness"`
	Match    *types.MatchResult   `json:"match,omitempty"`
}

// VerifyWithLivenessUseCase runs the anti-spoofing checks over a frame
// sequence, then 1:1 verifies the middle frame against the claimed
// identity. A failed liveness check is a structured rejection, not an
// error.
func VerifyWithLivenessUseCase(ctx any, payload *dto.VerifyLiveDTO) (*LiveVerificationResult, error) {
	profile, err := fetchProfile(ctx, payload.UserID)
	if err != nil {
		return nil, err
	}

	frames := make([]image.Image, 0, len(payload.Frames))
	for _, raw := range payload.Frames {
		frame, err := utils.DecodeImagePayload(raw)
		if err != nil {
			apperrors.ErrorProcessingPayload(ctx)
			return nil, err
		}
		frames = append(frames, frame)
	}

	liveness := biometric.CheckLiveness(biometric.DefaultEngine, frames, biometric.LivenessOptions{
		RequireBlink:     payload.RequireBlink,
		RequireMovement:  payload.RequireMovement,
		CheckPhotoAttack: true,
	})

	result := &LiveVerificationResult{Liveness: liveness}

	logAudit(&payload.UserID, "liveness_check", "BiometricProfile", profile.ID, map[string]any{
		"is_live":    liveness.IsLive,
		"confidence": liveness.Confidence,
	})

	if !liveness.IsLive {
		apperrors.CustomError(ctx, "Liveness verification failed", &constants.LIVENESS_REJECTED)
		return result, errors.New("")
	}

	probe, err := encodeProbe(ctx, frames[len(frames)/2], biometric.LoginBlurThreshold)
	if err != nil {
		return result, err
	}

	stored, err := types.EncodingFromJSON(profile.LiveFaceEncoding)
	if err != nil {
		apperrors.UnknownError(ctx, err, nil)
		return result, err
	}

	match, err := biometric.CompareEncodings(probe, stored, biometric.DefaultTolerance)
	if err != nil {
		apperrors.UnknownError(ctx, err, nil)
		return result, err
	}
	result.Match = &match

	logAudit(&payload.UserID, "live_face_verification", "BiometricProfile", profile.ID, map[string]any{
		"is_match": match.IsMatch,
		"distance": match.Distance,
	})
	return result, nil
}
