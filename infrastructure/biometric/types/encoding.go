package types

import "fmt"

// Dimensions is the embedding length produced by the recognition model.
const Dimensions = 128

// FaceEncoding is an immutable fixed-length face embedding.
type FaceEncoding []float64

// ToJSON returns the transport representation: an ordered list of
// floats. The copy keeps callers from mutating the stored encoding.
func (encoding FaceEncoding) ToJSON() []float64 {
	out := make([]float64, len(encoding))
	copy(out, encoding)
	return out
}

// EncodingFromJSON decodes the wire representation back into a typed
// encoding, enforcing the dimension invariant. Round-trips exactly.
func EncodingFromJSON(values []float64) (FaceEncoding, error) {
	if len(values) != Dimensions {
		return nil, fmt.Errorf("face encoding must have %d dimensions, got %d", Dimensions, len(values))
	}
	encoding := make(FaceEncoding, Dimensions)
	copy(encoding, values)
	return encoding, nil
}
