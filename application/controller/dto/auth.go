package dto

// IdentifyByFaceDTO starts a 1:N identification: who is this face?
type IdentifyByFaceDTO struct {
	Image string `json:"image" validate:"required"` // Base64 encoded image
}

// ConfirmIdentityDTO resolves a previously minted identification
// session.
type ConfirmIdentityDTO struct {
	SessionToken string `json:"session_token" validate:"required"`
	UserID       string `json:"user_id" validate:"required"`
	Confirmed    bool   `json:"confirmed"`
}

// QuickFaceLoginDTO is the single-step variant: an unambiguous match
// logs in immediately without the confirm round trip.
type QuickFaceLoginDTO struct {
	Image string `json:"image" validate:"required"` // Base64 encoded image
}

// CandidatePreview is what identification exposes about a candidate:
// enough for "is this me?", never the stored encoding.
type CandidatePreview struct {
	UserID      string  `json:"user_id"`
	FullName    string  `json:"full_name"`
	MaskedEmail string  `json:"masked_email"`
	Role        string  `json:"role"`
	Confidence  float64 `json:"confidence"`
}

type IdentifyResponse struct {
	Status       string             `json:"status"`
	SessionToken *string            `json:"session_token,omitempty"`
	Candidates   []CandidatePreview `json:"candidates,omitempty"`
	Message      string             `json:"message"`
}
