package auth_usecases

import (
	"errors"
	"time"

	apperrors "lifex.health/application/appErrors"
	"lifex.health/application/constants"
	"lifex.health/application/controller/dto"
	"lifex.health/application/repository"
	"lifex.health/infrastructure/auth"
	"lifex.health/infrastructure/biometric"
	"lifex.health/infrastructure/biometric/types"
)

type ConfirmResult struct {
	Outcome string          `json:"outcome"`
	Tokens  *auth.TokenPair `json:"tokens,omitempty"`
}

// ConfirmIdentityUseCase resolves an identification session. The
// token is consumed on first use whatever the outcome; only an
// explicit confirm mints credentials.
func ConfirmIdentityUseCase(ctx any, payload *dto.ConfirmIdentityDTO, sourceIP string) (*ConfirmResult, error) {
	outcome, err := biometric.Sessions.Consume(payload.SessionToken, payload.UserID, payload.Confirmed)
	if err != nil {
		if errors.Is(err, types.ErrSessionExpired) {
			apperrors.CustomError(ctx, "Your identification session has expired. Please start again.", &constants.SESSION_EXPIRED)
			return nil, err
		}
		if errors.Is(err, types.ErrInvalidSelection) {
			// security relevant: the caller confirmed a user that was
			// never in the candidate set
			logAudit(&payload.UserID, "face_confirm_invalid_selection", sourceIP, map[string]any{
				"claimed_user": payload.UserID,
			})
			apperrors.AuthenticationError(ctx, "The selected account does not match this identification session.")
			return nil, err
		}
		apperrors.UnknownError(ctx, err, nil)
		return nil, err
	}

	if outcome.State == biometric.SessionRejected {
		logAudit(&payload.UserID, "face_confirm_rejected", sourceIP, nil)
		return &ConfirmResult{Outcome: string(biometric.SessionRejected)}, nil
	}

	user, err := repository.UserRepo().FindByID(outcome.UserID)
	if err != nil {
		apperrors.UnknownError(ctx, err, nil)
		return nil, err
	}
	if user == nil {
		apperrors.NotFoundError(ctx, "account not found")
		return nil, errors.New("")
	}

	tokens, err := auth.IssueTokenPair(user)
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, err
	}

	now := time.Now()
	repository.UserRepo().UpdatePartialByID(user.ID, map[string]any{
		"lastLogin": now,
	})

	logAudit(&user.ID, "face_confirm_success", sourceIP, map[string]any{
		"confidence": outcome.Confidence,
	})
	return &ConfirmResult{
		Outcome: string(biometric.SessionConfirmed),
		Tokens:  tokens,
	}, nil
}
