package biometric_usecases

import (
	apperrors "lifex.health/application/appErrors"
	"lifex.health/application/controller/dto"
	"lifex.health/application/repository"
)

// staffReviewUpdate builds the profile changes for a review decision.
// Rejection also revokes face login, so an unverified face can never
// stay eligible for face login.
func staffReviewUpdate(staffUserID string, payload *dto.StaffVerifyDTO) map[string]any {
	update := map[string]any{
		"isFaceVerified": payload.Approve,
		"verifiedBy":     staffUserID,
	}
	if payload.Notes != nil {
		update["verificationNotes"] = *payload.Notes
	}
	if !payload.Approve {
		update["faceRecognitionEnabled"] = false
	}
	return update
}

// StaffVerifyProfileUseCase records a staff member's review of a
// pending biometric profile.
func StaffVerifyProfileUseCase(ctx any, staffUserID string, payload *dto.StaffVerifyDTO) error {
	profile, err := fetchProfile(ctx, payload.UserID)
	if err != nil {
		return err
	}

	_, err = repository.BiometricProfileRepo().UpdatePartialByID(profile.ID, staffReviewUpdate(staffUserID, payload))
	if err != nil {
		apperrors.UnknownError(ctx, err, nil)
		return err
	}

	logAudit(&staffUserID, "staff_profile_review", "BiometricProfile", profile.ID, map[string]any{
		"target_user": payload.UserID,
		"approved":    payload.Approve,
	})
	return nil
}
