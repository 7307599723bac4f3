package biometric_usecases

import (
	"errors"

	apperrors "lifex.health/application/appErrors"
	"lifex.health/application/repository"
	"lifex.health/entities"
)

// faceLoginToggleAllowed gates the toggle. Enabling requires a
// verified profile; disabling is always allowed.
func faceLoginToggleAllowed(profile *entities.BiometricProfile, enable bool) bool {
	return !enable || profile.IsFaceVerified
}

// ToggleFaceLoginUseCase flips face-login eligibility. There is no
// code path that turns on face recognition for an unverified face.
func ToggleFaceLoginUseCase(ctx any, userID string, enable bool) (bool, error) {
	profile, err := fetchProfile(ctx, userID)
	if err != nil {
		return false, err
	}

	if !faceLoginToggleAllowed(profile, enable) {
		apperrors.ClientError(ctx, "Face login cannot be enabled before the profile is verified", nil, nil)
		return false, errors.New("")
	}

	_, err = repository.BiometricProfileRepo().UpdatePartialByID(profile.ID, map[string]any{
		"faceRecognitionEnabled": enable,
	})
	if err != nil {
		apperrors.UnknownError(ctx, err, nil)
		return false, err
	}

	logAudit(&userID, "face_login_toggled", "BiometricProfile", profile.ID, map[string]any{
		"enabled": enable,
	})
	return enable, nil
}
