package entities

import (
	"time"

	"lifex.health/application/utils"
)

type LedgerStatus string

const (
	LedgerPending   LedgerStatus = "PENDING"
	LedgerConfirmed LedgerStatus = "CONFIRMED"
	LedgerFailed    LedgerStatus = "FAILED"
)

type IDCardType string

const (
	IDCardNationalID     IDCardType = "NATIONAL_ID"
	IDCardDriversLicense IDCardType = "DRIVERS_LICENSE"
	IDCardPhilHealth     IDCardType = "PHILHEALTH_ID"
)

// BiometricProfile stores the enrolled face material for exactly one user.
// LiveFaceEncoding is required; IDFaceEncoding is present only when a face
// could be extracted from the uploaded ID card.
//
// Invariant: FaceRecognitionEnabled may only be true while IsFaceVerified is
// true. Every mutation path goes through the toggle/verify usecases which
// enforce this; the entity carries no setter that bypasses them.
type BiometricProfile struct {
	UserID string `bson:"userID" json:"userID"`

	IDCardType       IDCardType `bson:"idCardType" json:"idCardType"`
	IDNumber         string     `bson:"idNumber" json:"idNumber"`
	IDFullName       string     `bson:"idFullName" json:"idFullName"`
	IDAddress        string     `bson:"idAddress" json:"idAddress"`
	IDFaceEncoding   []float64  `bson:"idFaceEncoding" json:"-"`
	LiveFaceEncoding []float64  `bson:"liveFaceEncoding" json:"-"`

	FaceMatchScore         float64 `bson:"faceMatchScore" json:"faceMatchScore"`
	FaceMatchThreshold     float64 `bson:"faceMatchThreshold" json:"faceMatchThreshold"`
	IsFaceVerified         bool    `bson:"isFaceVerified" json:"isFaceVerified"`
	FaceRecognitionEnabled bool    `bson:"faceRecognitionEnabled" json:"faceRecognitionEnabled"`

	BiometricID      string       `bson:"biometricID" json:"biometricID"`
	ContentHash      string       `bson:"contentHash" json:"contentHash"`
	LedgerReference  string       `bson:"ledgerReference" json:"ledgerReference"`
	LedgerBlock      *int64       `bson:"ledgerBlock" json:"ledgerBlock"`
	LedgerStatus     LedgerStatus `bson:"ledgerStatus" json:"ledgerStatus"`
	IsLedgerVerified bool         `bson:"isLedgerVerified" json:"isLedgerVerified"`

	VerifiedBy        *string `bson:"verifiedBy" json:"verifiedBy,omitempty"`
	VerificationNotes string  `bson:"verificationNotes" json:"verificationNotes,omitempty"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (model BiometricProfile) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		if model.ID == "" {
			model.ID = utils.GenerateULIDString()
		}
		if model.BiometricID == "" {
			model.BiometricID = utils.GenerateBiometricID()
		}
		if model.LedgerStatus == "" {
			model.LedgerStatus = LedgerPending
		}
	}
	model.UpdatedAt = now
	return &model
}
