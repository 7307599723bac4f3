package auth_usecases

import (
	"context"
	"fmt"

	"lifex.health/application/controller/dto"
	"lifex.health/application/repository"
	"lifex.health/application/utils"
	"lifex.health/entities"
	"lifex.health/infrastructure/biometric"
	"lifex.health/infrastructure/biometric/types"
	"lifex.health/infrastructure/logger"
	"lifex.health/infrastructure/ratelimit"
)

// IdentifyByFaceUseCase answers "who is this face?" and, when the
// scan resolves or narrows to a short candidate list, mints a
// single-use session for the confirm step. Every outcome maps to a
// deterministic status; an internal panic degrades to ERROR rather
// than leaking.
func IdentifyByFaceUseCase(ctx any, payload *dto.IdentifyByFaceDTO, sourceIP string) (response *dto.IdentifyResponse) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("unexpected failure during face identification", logger.LoggerOptions{
				Key:  "panic",
				Data: fmt.Sprintf("%v", r),
			})
			logAudit(nil, "face_identify_error", sourceIP, map[string]any{"detail": fmt.Sprintf("%v", r)})
			response = &dto.IdentifyResponse{
				Status:  string(types.IdentifyError),
				Message: "Identification could not be completed. Please try again.",
			}
		}
	}()

	if !ratelimit.FaceAttempts.CheckAndIncrement(sourceIP) {
		logAudit(nil, "face_identify_rate_limited", sourceIP, nil)
		return &dto.IdentifyResponse{
			Status:  string(types.IdentifyRateLimited),
			Message: "Too many identification attempts. Please wait a minute and try again.",
		}
	}

	img, err := utils.DecodeImagePayload(payload.Image)
	if err != nil {
		return &dto.IdentifyResponse{
			Status:  string(types.IdentifyError),
			Message: "The uploaded image could not be read.",
		}
	}

	identifier := &biometric.Identifier{
		Engine:  biometric.DefaultEngine,
		Gallery: &repository.ProfileGallery{},
	}
	result, err := identifier.Identify(context.TODO(), img)
	if err != nil {
		if detectionErr, ok := err.(*types.FaceDetectionError); ok {
			return &dto.IdentifyResponse{
				Status:  string(types.IdentifyError),
				Message: detectionErr.Message,
			}
		}
		logger.Error("face identification failed", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return &dto.IdentifyResponse{
			Status:  string(types.IdentifyError),
			Message: "Identification could not be completed. Please try again.",
		}
	}

	switch result.Status {
	case types.IdentifySuccess, types.IdentifyAmbiguous:
		token, err := biometric.Sessions.Create(result.Candidates)
		if err != nil {
			logger.Error("failed to mint identification session", logger.LoggerOptions{
				Key:  "error",
				Data: err,
			})
			return &dto.IdentifyResponse{
				Status:  string(types.IdentifyError),
				Message: "Identification could not be completed. Please try again.",
			}
		}

		previews := candidatePreviews(result.Candidates)
		logAudit(result.UserID, "face_identify_"+statusAuditSuffix(result.Status), sourceIP, map[string]any{
			"best_distance": result.BestDistance,
			"candidates":    len(result.Candidates),
		})

		message := "Match found. Please confirm your identity."
		if result.Status == types.IdentifyAmbiguous {
			message = "Multiple possible matches found. Please select your account."
		}
		return &dto.IdentifyResponse{
			Status:       string(result.Status),
			SessionToken: &token,
			Candidates:   previews,
			Message:      message,
		}
	default:
		logAudit(nil, "face_identify_no_match", sourceIP, map[string]any{
			"best_distance": result.BestDistance,
		})
		return &dto.IdentifyResponse{
			Status:  string(types.IdentifyNoMatch),
			Message: "No matching account was found. Try password login or enroll your face first.",
		}
	}
}

// candidatePreviews exposes only what a person needs to recognise
// their own account. Raw encodings never leave the store.
func candidatePreviews(candidates []types.Candidate) []dto.CandidatePreview {
	previews := make([]dto.CandidatePreview, 0, len(candidates))
	for _, candidate := range candidates {
		user, err := repository.UserRepo().FindByID(candidate.UserID)
		if err != nil || user == nil {
			continue
		}
		previews = append(previews, dto.CandidatePreview{
			UserID:      user.ID,
			FullName:    user.FullName(),
			MaskedEmail: utils.MaskEmail(user.Email),
			Role:        string(user.Role),
			Confidence:  candidate.Confidence,
		})
	}
	return previews
}

func statusAuditSuffix(status types.IdentifyStatus) string {
	if status == types.IdentifyAmbiguous {
		return "ambiguous"
	}
	return "success"
}

func logAudit(userID *string, action string, sourceIP string, details map[string]any) {
	_, err := repository.AuditLogRepo().CreateOne(context.TODO(), entities.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: "FaceIdentification",
		IPAddress:    sourceIP,
		Details:      details,
	})
	if err != nil {
		logger.Error("failed to write identification audit entry", logger.LoggerOptions{
			Key:  "action",
			Data: action,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	}
}
