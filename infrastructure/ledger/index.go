package ledger

import (
	"encoding/json"
	"fmt"
	"os"

	"lifex.health/infrastructure/logger"
	"lifex.health/infrastructure/network"
)

// Receipt is the chain node's acknowledgement of a recorded hash.
type Receipt struct {
	ReferenceID string `json:"reference_id"`
	BlockNumber int64  `json:"block_number"`
	Confirmed   bool   `json:"confirmed"`
}

// Service is the narrow audit-ledger surface the biometric flows
// depend on. Failures are non-fatal to enrollment; callers flag the
// profile and reconcile later.
type Service interface {
	Record(subjectID string, contentHash string) (*Receipt, error)
	Verify(subjectID string, contentHash string) (bool, error)
}

// LedgerService is set during startup.
var LedgerService Service

type ChainNodeService struct {
	Network *network.NetworkController
	APIKey  string
}

func InitialiseLedgerService() {
	LedgerService = &ChainNodeService{
		Network: &network.NetworkController{
			BaseUrl: os.Getenv("CHAIN_NODE_URL"),
		},
		APIKey: os.Getenv("CHAIN_NODE_API_KEY"),
	}
}

func (service *ChainNodeService) headers() *map[string]string {
	return &map[string]string{
		"x-api-key": service.APIKey,
	}
}

func (service *ChainNodeService) Record(subjectID string, contentHash string) (*Receipt, error) {
	response, statusCode, err := service.Network.Post("/ledger/records", service.headers(), map[string]any{
		"subject_id":   subjectID,
		"content_hash": contentHash,
	})
	if err != nil {
		logger.Error("error recording hash on chain node", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "subjectID",
			Data: subjectID,
		})
		return nil, err
	}
	if statusCode == nil || *statusCode >= 400 {
		err = fmt.Errorf("chain node rejected record request")
		logger.Error(err.Error(), logger.LoggerOptions{
			Key:  "statusCode",
			Data: statusCode,
		})
		return nil, err
	}

	var receipt Receipt
	if err := json.Unmarshal(*response, &receipt); err != nil {
		logger.Error("error parsing chain node record response", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}

	logger.Info("hash recorded on chain node", logger.LoggerOptions{
		Key:  "reference",
		Data: receipt.ReferenceID,
	})
	return &receipt, nil
}

func (service *ChainNodeService) Verify(subjectID string, contentHash string) (bool, error) {
	response, statusCode, err := service.Network.Post("/ledger/verify", service.headers(), map[string]any{
		"subject_id":   subjectID,
		"content_hash": contentHash,
	})
	if err != nil {
		logger.Error("error verifying hash on chain node", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "subjectID",
			Data: subjectID,
		})
		return false, err
	}
	if statusCode == nil || *statusCode >= 400 {
		return false, fmt.Errorf("chain node rejected verify request")
	}

	var body struct {
		Valid bool `json:"valid"`
	}
	if err := json.Unmarshal(*response, &body); err != nil {
		return false, err
	}
	return body.Valid, nil
}
