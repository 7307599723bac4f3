package queue_tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"lifex.health/application/repository"
	"lifex.health/entities"
	"lifex.health/infrastructure/ledger"
	"lifex.health/infrastructure/logger"
	mq_types "lifex.health/infrastructure/message_queue/types"
)

var HandleLedgerRecordTaskName mq_types.Queues = "ledger_record"

// LedgerRecordPayload retries a hash registration that failed during
// enrollment so the profile eventually reconciles with the chain node.
type LedgerRecordPayload struct {
	ProfileID   string
	BiometricID string
	ContentHash string
}

func HandleLedgerRecordTask(ctx context.Context, t *asynq.Task) error {
	var payload LedgerRecordPayload
	err := json.Unmarshal(t.Payload(), &payload)
	if err != nil {
		logger.Error("an error occured while unmarshalling ledger record queue payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return err
	}

	receipt, err := ledger.LedgerService.Record(payload.BiometricID, payload.ContentHash)
	if err != nil {
		logger.Error("ledger reconciliation attempt failed", logger.LoggerOptions{
			Key:  "biometricID",
			Data: payload.BiometricID,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return fmt.Errorf("ledger record retry failed for %s", payload.BiometricID)
	}

	_, err = repository.BiometricProfileRepo().UpdatePartialByID(payload.ProfileID, map[string]any{
		"ledgerReference":  receipt.ReferenceID,
		"ledgerBlock":      receipt.BlockNumber,
		"ledgerStatus":     entities.LedgerConfirmed,
		"isLedgerVerified": receipt.Confirmed,
	})
	if err != nil {
		return err
	}

	logger.Info("ledger registration reconciled", logger.LoggerOptions{
		Key:  "biometricID",
		Data: payload.BiometricID,
	})
	return nil
}
