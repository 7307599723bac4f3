package biometric_usecases

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	apperrors "lifex.health/application/appErrors"
	"lifex.health/application/constants"
	"lifex.health/application/controller/dto"
	"lifex.health/application/repository"
	"lifex.health/application/utils"
	"lifex.health/entities"
	"lifex.health/infrastructure/biometric"
	"lifex.health/infrastructure/biometric/types"
	"lifex.health/infrastructure/ledger"
	"lifex.health/infrastructure/logger"
	messagequeue "lifex.health/infrastructure/message_queue"
	queue_tasks "lifex.health/infrastructure/message_queue/tasks"
	mq_types "lifex.health/infrastructure/message_queue/types"
)

// EnrollBiometricProfileUseCase creates a user's biometric profile
// from a live capture and an optional ID card image. Ledger
// registration failures never fail the enrollment; the profile is
// flagged and reconciled by the task queue.
func EnrollBiometricProfileUseCase(ctx any, payload *dto.EnrollBiometricDTO) (*entities.BiometricProfile, error) {
	userRepo := repository.UserRepo()
	user, err := userRepo.FindByID(payload.UserID)
	if err != nil {
		apperrors.UnknownError(ctx, err, nil)
		return nil, err
	}
	if user == nil {
		apperrors.NotFoundError(ctx, "user not found")
		return nil, errors.New("")
	}

	profileRepo := repository.BiometricProfileRepo()
	exists, err := profileRepo.CountDocs(map[string]interface{}{
		"userID": payload.UserID,
	})
	if err != nil {
		apperrors.UnknownError(ctx, err, nil)
		return nil, err
	}
	if exists != 0 {
		apperrors.EntityAlreadyExistsError(ctx, "A biometric profile already exists for this user")
		return nil, errors.New("")
	}

	liveImage, err := utils.DecodeImagePayload(payload.LiveImage)
	if err != nil {
		apperrors.ErrorProcessingPayload(ctx)
		return nil, err
	}

	valid, issues, err := biometric.ValidateQuality(biometric.DefaultEngine, liveImage, biometric.RegistrationBlurThreshold)
	if err != nil {
		apperrors.UnknownError(ctx, err, nil)
		return nil, err
	}
	if !valid {
		issueErrs := make([]error, 0, len(issues))
		for _, issue := range issues {
			issueErrs = append(issueErrs, errors.New(issue))
		}
		apperrors.ClientError(ctx, "The photo did not pass quality checks", issueErrs, &constants.FACE_QUALITY_REJECTED)
		return nil, &types.FaceQualityError{Issues: issues}
	}

	liveDetection, err := biometric.DetectAndEncode(biometric.DefaultEngine, liveImage)
	if err != nil {
		apperrors.UnknownError(ctx, err, nil)
		return nil, err
	}
	if liveDetection.Status != types.DetectionFound {
		respondDetectionFailure(ctx, liveDetection)
		return nil, liveDetection.AsError()
	}

	profile := entities.BiometricProfile{
		UserID:           payload.UserID,
		LiveFaceEncoding: liveDetection.Encoding.ToJSON(),
	}
	if payload.IDCardType != nil {
		profile.IDCardType = entities.IDCardType(*payload.IDCardType)
	}
	if payload.IDCardNumber != nil {
		profile.IDNumber = *payload.IDCardNumber
	}

	if payload.IDCardImage != nil {
		idImage, err := utils.DecodeImagePayload(*payload.IDCardImage)
		if err != nil {
			apperrors.ErrorProcessingPayload(ctx)
			return nil, err
		}
		idDetection, err := biometric.DetectAndEncode(biometric.DefaultEngine, idImage)
		if err != nil {
			apperrors.UnknownError(ctx, err, nil)
			return nil, err
		}
		if idDetection.Status != types.DetectionFound {
			respondDetectionFailure(ctx, idDetection)
			return nil, idDetection.AsError()
		}

		match, err := biometric.CompareEncodings(liveDetection.Encoding, idDetection.Encoding, biometric.DefaultTolerance)
		if err != nil {
			apperrors.UnknownError(ctx, err, nil)
			return nil, err
		}

		profile.IDFaceEncoding = idDetection.Encoding.ToJSON()
		profile.FaceMatchScore = match.Distance
		profile.FaceMatchThreshold = biometric.DefaultTolerance
		profile.IsFaceVerified = match.IsMatch
	}

	created, err := profileRepo.CreateOne(context.TODO(), profile)
	if err != nil {
		apperrors.UnknownError(ctx, err, nil)
		return nil, err
	}

	contentHash := ComputeContentHash(created.BiometricID, created.LiveFaceEncoding, created.IDFaceEncoding)
	profileRepo.UpdatePartialByID(created.ID, map[string]any{
		"contentHash": contentHash,
	})
	created.ContentHash = contentHash

	recordOnLedger(created)

	logAudit(&payload.UserID, "biometric_enrollment", "BiometricProfile", created.ID, map[string]any{
		"biometric_id":     created.BiometricID,
		"is_face_verified": created.IsFaceVerified,
	})
	return created, nil
}

func respondDetectionFailure(ctx any, detection types.DetectionResult) {
	detectionErr := detection.AsError()
	code := &constants.FACE_NOT_DETECTED
	if detection.Status == types.DetectionMultipleFaces {
		code = &constants.MULTIPLE_FACES_DETECTED
	}
	apperrors.ClientError(ctx, detectionErr.Error(), nil, code)
}

// recordOnLedger registers the content hash with the chain node. On
// failure the profile keeps LedgerFailed and a reconciliation task is
// enqueued; enrollment itself succeeds either way.
func recordOnLedger(profile *entities.BiometricProfile) {
	profileRepo := repository.BiometricProfileRepo()

	receipt, err := ledger.LedgerService.Record(profile.BiometricID, profile.ContentHash)
	if err != nil {
		logger.Error("ledger registration failed during enrollment", logger.LoggerOptions{
			Key:  "biometricID",
			Data: profile.BiometricID,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		profileRepo.UpdatePartialByID(profile.ID, map[string]any{
			"ledgerStatus": entities.LedgerFailed,
		})
		profile.LedgerStatus = entities.LedgerFailed

		taskPayload, _ := json.Marshal(queue_tasks.LedgerRecordPayload{
			ProfileID:   profile.ID,
			BiometricID: profile.BiometricID,
			ContentHash: profile.ContentHash,
		})
		messagequeue.TaskQueue.Enqueue(mq_types.QueueTask{
			Name:      queue_tasks.HandleLedgerRecordTaskName,
			Payload:   taskPayload,
			Priority:  mq_types.Low,
			ProcessIn: time.Duration(60),
		})
		return
	}

	profileRepo.UpdatePartialByID(profile.ID, map[string]any{
		"ledgerReference":  receipt.ReferenceID,
		"ledgerBlock":      receipt.BlockNumber,
		"ledgerStatus":     entities.LedgerConfirmed,
		"isLedgerVerified": receipt.Confirmed,
	})
	profile.LedgerReference = receipt.ReferenceID
	profile.LedgerStatus = entities.LedgerConfirmed
	profile.IsLedgerVerified = receipt.Confirmed
}

func logAudit(userID *string, action string, resourceType string, resourceID string, details map[string]any) {
	_, err := repository.AuditLogRepo().CreateOne(context.TODO(), entities.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      details,
	})
	if err != nil {
		logger.Error("failed to write audit log entry", logger.LoggerOptions{
			Key:  "action",
			Data: action,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	}
}
