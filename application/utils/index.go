package utils

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

func GenerateULIDString() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulid.DefaultEntropy()).String()
}

// GenerateBiometricID returns an identifier of the form BIO_YYYYMMDD_XXXXXXXX
// used as the subject reference on the audit ledger.
func GenerateBiometricID() string {
	return fmt.Sprintf("BIO_%s_%s", time.Now().Format("20060102"), GenerateULIDString()[:8])
}

// MaskEmail hides most of the local part of an address before it is shown
// in an identification preview. "john.doe@example.com" -> "joh***@example.com"
func MaskEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return "***"
	}
	visible := 3
	if at < visible {
		visible = at
	}
	return email[:visible] + "***@" + email[at+1:]
}

// DecodeBase64Image strips an optional data URI prefix and decodes the payload.
func DecodeBase64Image(data string) ([]byte, error) {
	if idx := strings.Index(data, ","); idx != -1 {
		data = data[idx+1:]
	}
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image payload: %w", err)
	}
	return decoded, nil
}

// DecodeImagePayload turns a base64 (optionally data-URI) payload into
// a decoded image.
func DecodeImagePayload(data string) (image.Image, error) {
	raw, err := DecodeBase64Image(data)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("could not decode image: %w", err)
	}
	return img, nil
}
