package biometric_usecases

import (
	"testing"

	"lifex.health/application/controller/dto"
	"lifex.health/entities"
)

func TestFaceLoginToggleAllowed(t *testing.T) {
	tests := []struct {
		name     string
		verified bool
		enable   bool
		want     bool
	}{
		{
			name:     "enable on unverified profile rejected",
			verified: false,
			enable:   true,
			want:     false,
		},
		{
			name:     "enable on verified profile allowed",
			verified: true,
			enable:   true,
			want:     true,
		},
		{
			name:     "disable always allowed",
			verified: false,
			enable:   false,
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := &entities.BiometricProfile{IsFaceVerified: tt.verified}
			if got := faceLoginToggleAllowed(profile, tt.enable); got != tt.want {
				t.Errorf("faceLoginToggleAllowed(verified=%v, enable=%v) = %v, want %v", tt.verified, tt.enable, got, tt.want)
			}
		})
	}
}

func TestStaffReviewUpdateRejectionRevokesFaceLogin(t *testing.T) {
	update := staffReviewUpdate("staff-1", &dto.StaffVerifyDTO{
		UserID:  "user-1",
		Approve: false,
	})

	if update["isFaceVerified"] != false {
		t.Errorf("isFaceVerified = %v, want false", update["isFaceVerified"])
	}
	if update["faceRecognitionEnabled"] != false {
		t.Errorf("faceRecognitionEnabled = %v, want false on rejection", update["faceRecognitionEnabled"])
	}
	if update["verifiedBy"] != "staff-1" {
		t.Errorf("verifiedBy = %v, want staff-1", update["verifiedBy"])
	}
}

func TestStaffReviewUpdateApprovalLeavesTogglePreference(t *testing.T) {
	notes := "clear well lit capture"
	update := staffReviewUpdate("staff-2", &dto.StaffVerifyDTO{
		UserID:  "user-2",
		Approve: true,
		Notes:   &notes,
	})

	if update["isFaceVerified"] != true {
		t.Errorf("isFaceVerified = %v, want true", update["isFaceVerified"])
	}
	if _, present := update["faceRecognitionEnabled"]; present {
		t.Error("approval must not touch faceRecognitionEnabled")
	}
	if update["verificationNotes"] != notes {
		t.Errorf("verificationNotes = %v, want %q", update["verificationNotes"], notes)
	}
}
