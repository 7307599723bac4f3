package types

import (
	"math"
	"testing"
)

func TestEncodingRoundTrip(t *testing.T) {
	original := make(FaceEncoding, Dimensions)
	for i := range original {
		original[i] = math.Sin(float64(i)) * 0.5
	}

	wire := original.ToJSON()
	decoded, err := EncodingFromJSON(wire)
	if err != nil {
		t.Fatalf("EncodingFromJSON failed: %v", err)
	}
	for i := range original {
		if math.Abs(decoded[i]-original[i]) > 1e-12 {
			t.Fatalf("component %d changed in round trip: %v vs %v", i, decoded[i], original[i])
		}
	}
}

func TestToJSONReturnsCopy(t *testing.T) {
	encoding := make(FaceEncoding, Dimensions)
	encoding[0] = 0.5

	wire := encoding.ToJSON()
	wire[0] = 99

	if encoding[0] != 0.5 {
		t.Fatal("mutating the wire representation changed the stored encoding")
	}
}

func TestEncodingFromJSONRejectsWrongDimensions(t *testing.T) {
	for _, n := range []int{0, 1, Dimensions - 1, Dimensions + 1} {
		if _, err := EncodingFromJSON(make([]float64, n)); err == nil {
			t.Errorf("expected error for %d-dimension input", n)
		}
	}
}
