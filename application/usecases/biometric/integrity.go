package biometric_usecases

import (
	"lifex.health/application/repository"
	"lifex.health/infrastructure/ledger"
	"lifex.health/infrastructure/logger"
)

type IntegrityReport struct {
	BiometricID    string `json:"biometric_id"`
	HashMatches    bool   `json:"hash_matches"`
	LedgerVerified bool   `json:"ledger_verified"`
	Tampered       bool   `json:"tampered"`
}

// CheckProfileIntegrityUseCase recomputes the content hash over the
// stored encodings and checks it against both the persisted hash and
// the audit ledger. A mismatch on either side flags tampering.
func CheckProfileIntegrityUseCase(ctx any, userID string) (*IntegrityReport, error) {
	profile, err := fetchProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	recomputed := ComputeContentHash(profile.BiometricID, profile.LiveFaceEncoding, profile.IDFaceEncoding)
	hashMatches := recomputed == profile.ContentHash

	ledgerVerified := false
	if hashMatches {
		ledgerVerified, err = ledger.LedgerService.Verify(profile.BiometricID, profile.ContentHash)
		if err != nil {
			logger.Warning("ledger verification unavailable during integrity check", logger.LoggerOptions{
				Key:  "biometricID",
				Data: profile.BiometricID,
			}, logger.LoggerOptions{
				Key:  "error",
				Data: err,
			})
		}
	}

	report := &IntegrityReport{
		BiometricID:    profile.BiometricID,
		HashMatches:    hashMatches,
		LedgerVerified: ledgerVerified,
		Tampered:       !hashMatches,
	}

	if !hashMatches {
		repository.BiometricProfileRepo().UpdatePartialByID(profile.ID, map[string]any{
			"isLedgerVerified": false,
		})
	}

	logAudit(&userID, "integrity_check", "BiometricProfile", profile.ID, map[string]any{
		"hash_matches":    hashMatches,
		"ledger_verified": ledgerVerified,
	})
	return report, nil
}
