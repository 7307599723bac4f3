package validator

import (
	"strings"
	"testing"

	"lifex.health/application/controller/dto"
)

func TestValidateStructReportsSnakeCaseFields(t *testing.T) {
	payload := dto.ConfirmIdentityDTO{}
	errs := ValidatorInstance.ValidateStruct(payload)
	if errs == nil {
		t.Fatal("expected validation errors for an empty payload")
	}
	found := false
	for _, err := range *errs {
		if strings.Contains(err.Error(), "session_token") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected session_token in errors, got %v", *errs)
	}
}

func TestFrameCountRule(t *testing.T) {
	tests := []struct {
		name    string
		frames  int
		wantErr bool
	}{
		{"below minimum", 3, true},
		{"at minimum", 5, false},
		{"typical clip", 30, false},
		{"at maximum", 60, false},
		{"above maximum", 61, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := dto.VerifyLiveDTO{
				UserID: "user-1",
				Frames: make([]string, tt.frames),
			}
			for i := range payload.Frames {
				payload.Frames[i] = "frame"
			}
			errs := ValidatorInstance.ValidateStruct(payload)
			if tt.wantErr && errs == nil {
				t.Fatalf("expected validation failure for %d frames", tt.frames)
			}
			if !tt.wantErr && errs != nil {
				t.Fatalf("unexpected errors for %d frames: %v", tt.frames, *errs)
			}
		})
	}
}
