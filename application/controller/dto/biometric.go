package dto

// EnrollBiometricDTO is the enrollment request: a live face capture
// plus an optional ID card image whose face region is matched 1:1
// against the live capture.
type EnrollBiometricDTO struct {
	UserID       string  `json:"user_id" validate:"required"`
	LiveImage    string  `json:"live_image" validate:"required"` // Base64 encoded image
	IDCardImage  *string `json:"id_card_image,omitempty"`        // Base64 encoded image
	IDCardType   *string `json:"id_card_type,omitempty" validate:"omitempty,oneof=NATIONAL_ID DRIVERS_LICENSE PHILHEALTH_ID"`
	IDCardNumber *string `json:"id_card_number,omitempty"`
}

// VerifyFaceDTO is a 1:1 verification request against a claimed
// identity's stored encoding.
type VerifyFaceDTO struct {
	UserID string `json:"user_id" validate:"required"`
	Image  string `json:"image" validate:"required"` // Base64 encoded image
}

// VerifyLiveDTO carries a frame sequence for liveness analysis plus
// 1:1 verification of the claimed identity.
type VerifyLiveDTO struct {
	UserID          string   `json:"user_id" validate:"required"`
	Frames          []string `json:"frames" validate:"required,frame_count"` // Base64 encoded frames, ordered
	RequireBlink    bool     `json:"require_blink"`
	RequireMovement bool     `json:"require_movement"`
}

type ToggleFaceLoginDTO struct {
	Enable bool `json:"enable"`
}

// StaffVerifyDTO is the staff review action over a pending profile.
type StaffVerifyDTO struct {
	UserID  string  `json:"user_id" validate:"required"`
	Approve bool    `json:"approve"`
	Notes   *string `json:"notes,omitempty"`
}
