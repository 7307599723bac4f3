package auth_usecases

import (
	apperrors "lifex.health/application/appErrors"
	"lifex.health/application/repository"
)

type FaceLoginStats struct {
	EnrolledProfiles int64 `json:"enrolled_profiles"`
	VerifiedProfiles int64 `json:"verified_profiles"`
	FaceLoginEnabled int64 `json:"face_login_enabled"`
}

func FaceLoginStatsUseCase(ctx any) (*FaceLoginStats, error) {
	profileRepo := repository.BiometricProfileRepo()

	enrolled, err := profileRepo.CountDocs(map[string]interface{}{})
	if err != nil {
		apperrors.UnknownError(ctx, err, nil)
		return nil, err
	}
	verified, err := profileRepo.CountDocs(map[string]interface{}{
		"isFaceVerified": true,
	})
	if err != nil {
		apperrors.UnknownError(ctx, err, nil)
		return nil, err
	}
	enabled, err := profileRepo.CountDocs(map[string]interface{}{
		"faceRecognitionEnabled": true,
		"isFaceVerified":         true,
	})
	if err != nil {
		apperrors.UnknownError(ctx, err, nil)
		return nil, err
	}

	return &FaceLoginStats{
		EnrolledProfiles: enrolled,
		VerifiedProfiles: verified,
		FaceLoginEnabled: enabled,
	}, nil
}
