package controller

import (
	"net/http"

	apperrors "lifex.health/application/appErrors"
	"lifex.health/application/constants"
	"lifex.health/application/controller/dto"
	"lifex.health/application/interfaces"
	auth_usecases "lifex.health/application/usecases/auth"
	"lifex.health/infrastructure/biometric/types"
	server_response "lifex.health/infrastructure/serverResponse"
	"lifex.health/infrastructure/validator"
)

// IdentifyByFace starts the two-step face identification flow.
func IdentifyByFace(ctx *interfaces.ApplicationContext[dto.IdentifyByFaceDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	response := auth_usecases.IdentifyByFaceUseCase(ctx.Ctx, ctx.Body, ctx.SourceIP)
	server_response.Responder.Respond(ctx.Ctx, identifyStatusCode(response.Status), response.Message, response, nil, identifyResponseCode(response.Status))
}

// ConfirmIdentity resolves a minted identification session.
func ConfirmIdentity(ctx *interfaces.ApplicationContext[dto.ConfirmIdentityDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	result, err := auth_usecases.ConfirmIdentityUseCase(ctx.Ctx, ctx.Body, ctx.SourceIP)
	if err != nil {
		return
	}

	message := "Identity confirmed"
	if result.Tokens == nil {
		message = "Identification rejected"
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, message, result, nil, nil)
}

// QuickFaceLogin is the single-step login variant.
func QuickFaceLogin(ctx *interfaces.ApplicationContext[dto.QuickFaceLoginDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	result := auth_usecases.QuickFaceLoginUseCase(ctx.Ctx, ctx.Body, ctx.SourceIP)
	server_response.Responder.Respond(ctx.Ctx, identifyStatusCode(result.Status), result.Message, result, nil, identifyResponseCode(result.Status))
}

// FaceLoginStats reports enrollment and face-login adoption counts.
func FaceLoginStats(ctx *interfaces.ApplicationContext[any]) {
	stats, err := auth_usecases.FaceLoginStatsUseCase(ctx.Ctx)
	if err != nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "Face login statistics", stats, nil, nil)
}

func identifyStatusCode(status string) int {
	switch types.IdentifyStatus(status) {
	case types.IdentifySuccess, types.IdentifyAmbiguous:
		return http.StatusOK
	case types.IdentifyRateLimited:
		return http.StatusTooManyRequests
	case types.IdentifyNoMatch:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

func identifyResponseCode(status string) *uint {
	switch types.IdentifyStatus(status) {
	case types.IdentifyAmbiguous:
		return &constants.IDENTIFY_AMBIGUOUS
	case types.IdentifyNoMatch:
		return &constants.IDENTIFY_NO_MATCH
	case types.IdentifyRateLimited:
		return &constants.RATE_LIMITED
	default:
		return nil
	}
}
