package auth_usecases

import (
	"context"
	"time"

	"lifex.health/application/controller/dto"
	"lifex.health/application/repository"
	"lifex.health/application/utils"
	"lifex.health/infrastructure/auth"
	"lifex.health/infrastructure/biometric"
	"lifex.health/infrastructure/biometric/types"
	"lifex.health/infrastructure/logger"
	"lifex.health/infrastructure/ratelimit"
)

type QuickLoginResult struct {
	Status     string                 `json:"status"`
	Tokens     *auth.TokenPair        `json:"tokens,omitempty"`
	Candidates []dto.CandidatePreview `json:"candidates,omitempty"`
	Message    string                 `json:"message"`
}

// QuickFaceLoginUseCase is the single-step login variant: an
// unambiguous match issues credentials immediately, skipping the
// confirm round trip. Ambiguity still falls back to the candidate
// picker.
func QuickFaceLoginUseCase(ctx any, payload *dto.QuickFaceLoginDTO, sourceIP string) *QuickLoginResult {
	if !ratelimit.FaceAttempts.CheckAndIncrement(sourceIP) {
		logAudit(nil, "quick_face_login_rate_limited", sourceIP, nil)
		return &QuickLoginResult{
			Status:  string(types.IdentifyRateLimited),
			Message: "Too many login attempts. Please wait a minute and try again.",
		}
	}

	img, err := utils.DecodeImagePayload(payload.Image)
	if err != nil {
		return &QuickLoginResult{
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
			return &QuickLoginResult{
				Status:  string(types.IdentifyError),
				Message: detectionErr.Message,
			}
		}
		logger.Error("quick face login failed", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return &QuickLoginResult{
			Status:  string(types.IdentifyError),
			Message: "Login could not be completed. Please try again.",
		}
	}

	switch result.Status {
	case types.IdentifySuccess:
		user, err := repository.UserRepo().FindByID(*result.UserID)
		if err != nil || user == nil {
			return &QuickLoginResult{
				Status:  string(types.IdentifyError),
				Message: "Login could not be completed. Please try again.",
			}
		}

		tokens, err := auth.IssueTokenPair(user)
		if err != nil {
			return &QuickLoginResult{
				Status:  string(types.IdentifyError),
				Message: "Login could not be completed. Please try again.",
			}
		}

		repository.UserRepo().UpdatePartialByID(user.ID, map[string]any{
			"lastLogin": time.Now(),
		})
		ratelimit.FaceAttempts.Reset(sourceIP)

		logAudit(&user.ID, "quick_face_login_success", sourceIP, map[string]any{
			"best_distance": result.BestDistance,
		})
		return &QuickLoginResult{
			Status:  string(types.IdentifySuccess),
			Tokens:  tokens,
			Message: "Welcome back, " + user.FirstName + ".",
		}
	case types.IdentifyAmbiguous:
		logAudit(nil, "quick_face_login_ambiguous", sourceIP, map[string]any{
			"candidates": len(result.Candidates),
		})
		return &QuickLoginResult{
			Status:     string(types.IdentifyAmbiguous),
			Candidates: candidatePreviews(result.Candidates),
			Message:    "Multiple possible matches found. Use the two-step identification flow instead.",
		}
	default:
		logAudit(nil, "quick_face_login_no_match", sourceIP, map[string]any{
			"best_distance": result.BestDistance,
		})
		return &QuickLoginResult{
			Status:  string(types.IdentifyNoMatch),
			Message: "No matching account was found. Try password login or enroll your face first.",
		}
	}
}
