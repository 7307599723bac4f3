package utils

import (
	"strings"
	"testing"
)

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"john.doe@example.com", "joh***@example.com"},
		{"al@example.com", "al***@example.com"},
		{"a@example.com", "a***@example.com"},
		{"not-an-email", "***"},
		{"@example.com", "***"},
	}
	for _, tt := range tests {
		if got := MaskEmail(tt.email); got != tt.want {
			t.Errorf("MaskEmail(%q) = %q, want %q", tt.email, got, tt.want)
		}
	}
}

func TestGenerateULIDString(t *testing.T) {
	first := GenerateULIDString()
	second := GenerateULIDString()
	if len(first) != 26 {
		t.Errorf("ULID length = %d, want 26", len(first))
	}
	if first == second {
		t.Error("consecutive ULIDs should differ")
	}
}

func TestDecodeBase64Image(t *testing.T) {
	raw, err := DecodeBase64Image("aGVsbG8=")
	if err != nil {
		t.Fatalf("plain base64 failed: %v", err)
	}
	if string(raw) != "hello" {
		t.Errorf("decoded %q, want %q", raw, "hello")
	}

	raw, err = DecodeBase64Image("data:image/png;base64,aGVsbG8=")
	if err != nil {
		t.Fatalf("data URI failed: %v", err)
	}
	if string(raw) != "hello" {
		t.Errorf("decoded %q, want %q", raw, "hello")
	}

	if _, err := DecodeBase64Image("!!not base64!!"); err == nil {
		t.Error("expected error for invalid payload")
	}
}

func TestDecodeImagePayloadRejectsNonImages(t *testing.T) {
	if _, err := DecodeImagePayload("aGVsbG8="); err == nil {
		t.Error("expected error decoding non-image bytes")
	}
}

func TestGenerateBiometricID(t *testing.T) {
	id := GenerateBiometricID()
	if !strings.HasPrefix(id, "BIO_") {
		t.Errorf("biometric id %q missing prefix", id)
	}
}
