package biometric_usecases

import (
	"errors"
	"image"

	apperrors "lifex.health/application/appErrors"
	"lifex.health/application/controller/dto"
	"lifex.health/application/repository"
	"lifex.health/application/utils"
	"lifex.health/entities"
	"lifex.health/infrastructure/biometric"
	"lifex.health/infrastructure/biometric/types"
)

// VerifyFaceUseCase runs a 1:1 verification of a probe image against
// the claimed user's stored live encoding. Login uses the strict blur
// threshold so poor spoof material is rejected up front.
func VerifyFaceUseCase(ctx any, payload *dto.VerifyFaceDTO) (*types.MatchResult, error) {
	profile, err := fetchProfile(ctx, payload.UserID)
	if err != nil {
		return nil, err
	}

	img, err := utils.DecodeImagePayload(payload.Image)
	if err != nil {
		apperrors.ErrorProcessingPayload(ctx)
		return nil, err
	}

	probe, err := encodeProbe(ctx, img, biometric.LoginBlurThreshold)
	if err != nil {
		return nil, err
	}

	stored, err := types.EncodingFromJSON(profile.LiveFaceEncoding)
	if err != nil {
		apperrors.UnknownError(ctx, err, nil)
		return nil, err
	}

	tolerance := biometric.DefaultTolerance
	if profile.FaceMatchThreshold > 0 {
		tolerance = profile.FaceMatchThreshold
	}

	match, err := biometric.CompareEncodings(probe, stored, tolerance)
	if err != nil {
		apperrors.UnknownError(ctx, err, nil)
		return nil, err
	}

	logAudit(&payload.UserID, "face_verification", "BiometricProfile", profile.ID, map[string]any{
		"is_match":        match.IsMatch,
		"distance":        match.Distance,
		"confidence_tier": match.ConfidenceTier,
	})
	return &match, nil
}

func fetchProfile(ctx any, userID string) (*entities.BiometricProfile, error) {
	profile, err := repository.BiometricProfileRepo().FindOneByFilter(map[string]interface{}{
		"userID": userID,
	})
	if err != nil {
		apperrors.UnknownError(ctx, err, nil)
		return nil, err
	}
	if profile == nil {
		apperrors.NotFoundError(ctx, "no biometric profile found for this user")
		return nil, errors.New("")
	}
	return profile, nil
}

// encodeProbe validates quality and encodes exactly one face,
// responding to the client on every failure arm.
func encodeProbe(ctx any, img image.Image, blurThreshold float64) (types.FaceEncoding, error) {
	valid, issues, err := biometric.ValidateQuality(biometric.DefaultEngine, img, blurThreshold)
	if err != nil {
		apperrors.UnknownError(ctx, err, nil)
		return nil, err
	}
	if !valid {
		issueErrs := make([]error, 0, len(issues))
		for _, issue := range issues {
			issueErrs = append(issueErrs, errors.New(issue))
		}
		apperrors.ClientError(ctx, "The photo did not pass quality checks", issueErrs, nil)
		return nil, &types.FaceQualityError{Issues: issues}
	}

	detection, err := biometric.DetectAndEncode(biometric.DefaultEngine, img)
	if err != nil {
		apperrors.UnknownError(ctx, err, nil)
		return nil, err
	}
	if detection.Status != types.DetectionFound {
		respondDetectionFailure(ctx, detection)
		return nil, detection.AsError()
	}
	return detection.Encoding, nil
}
