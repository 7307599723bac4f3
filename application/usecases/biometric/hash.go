package biometric_usecases

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// ComputeContentHash produces the SHA-256 fingerprint registered on
// the audit ledger. It covers both encodings so tampering with either
// is detectable.
func ComputeContentHash(biometricID string, liveEncoding []float64, idEncoding []float64) string {
	payload, _ := json.Marshal(map[string]any{
		"biometric_id":     biometricID,
		"live_encoding":    liveEncoding,
		"id_face_encoding": idEncoding,
	})
	digest := sha256.Sum256(payload)
	return hex.EncodeToString(digest[:])
}
