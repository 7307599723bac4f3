package controller

import (
	"net/http"

	apperrors "lifex.health/application/appErrors"
	"lifex.health/application/controller/dto"
	"lifex.health/application/interfaces"
	biometric_usecases "lifex.health/application/usecases/biometric"
	server_response "lifex.health/infrastructure/serverResponse"
	"lifex.health/infrastructure/validator"
)

// EnrollBiometricProfile registers a user's live face and optional ID
// card face for later verification and face login.
func EnrollBiometricProfile(ctx *interfaces.ApplicationContext[dto.EnrollBiometricDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	profile, err := biometric_usecases.EnrollBiometricProfileUseCase(ctx.Ctx, ctx.Body)
	if err != nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "Biometric profile created", profile, nil, nil)
}

// VerifyFace runs a 1:1 check of the uploaded photo against the
// claimed user's stored encoding.
func VerifyFace(ctx *interfaces.ApplicationContext[dto.VerifyFaceDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	match, err := biometric_usecases.VerifyFaceUseCase(ctx.Ctx, ctx.Body)
	if err != nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "Face verification completed", match, nil, nil)
}

// VerifyFaceWithLiveness runs anti-spoofing over a frame sequence
// before the 1:1 match.
func VerifyFaceWithLiveness(ctx *interfaces.ApplicationContext[dto.VerifyLiveDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	result, err := biometric_usecases.VerifyWithLivenessUseCase(ctx.Ctx, ctx.Body)
	if err != nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "Live face verification completed", result, nil, nil)
}

// ToggleFaceLogin enables or disables face login for the requesting
// user.
func ToggleFaceLogin(ctx *interfaces.ApplicationContext[dto.ToggleFaceLoginDTO]) {
	enabled, err := biometric_usecases.ToggleFaceLoginUseCase(ctx.Ctx, ctx.GetStringContextData("UserID"), ctx.Body.Enable)
	if err != nil {
		return
	}

	message := "Face login disabled"
	if enabled {
		message = "Face login enabled"
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, message, map[string]any{
		"face_recognition_enabled": enabled,
	}, nil, nil)
}

// StaffVerifyProfile lets staff approve or reject a pending profile.
func StaffVerifyProfile(ctx *interfaces.ApplicationContext[dto.StaffVerifyDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	err := biometric_usecases.StaffVerifyProfileUseCase(ctx.Ctx, ctx.GetStringContextData("UserID"), ctx.Body)
	if err != nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "Profile review recorded", nil, nil, nil)
}

// CheckProfileIntegrity reports whether the stored biometric material
// still matches its registered ledger hash.
func CheckProfileIntegrity(ctx *interfaces.ApplicationContext[any]) {
	report, err := biometric_usecases.CheckProfileIntegrityUseCase(ctx.Ctx, ctx.GetStringParameter("userID"))
	if err != nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "Integrity check completed", report, nil, nil)
}
