package biometric

import (
	"context"
	"image"
	"sort"

	"lifex.health/infrastructure/biometric/types"
)

// ambiguityMargin is the minimum distance gap between the best and
// second-best candidate before the identifier will auto-resolve. Two
// candidates inside the margin force an AMBIGUOUS outcome instead of a
// risky auto-login.
const ambiguityMargin = 0.1

const maxRankedCandidates = 3

// Gallery supplies the enrolled population eligible for 1:N
// identification: verified profiles with face login enabled.
type Gallery interface {
	EligibleProfiles(ctx context.Context) ([]types.EnrolledFace, error)
}

type Identifier struct {
	Engine  FaceEngine
	Gallery Gallery
	// ThresholdOverride replaces the population-adaptive threshold
	// when set.
	ThresholdOverride *float64
}

// Identify encodes the probe once, scans the eligible population and
// decides SUCCESS, AMBIGUOUS or NO_MATCH. The ranked top candidates
// and best distance are returned on every outcome.
func (identifier *Identifier) Identify(ctx context.Context, probe image.Image) (types.IdentifyResult, error) {
	detection, err := DetectAndEncode(identifier.Engine, probe)
	if err != nil {
		return types.IdentifyResult{Status: types.IdentifyError}, err
	}
	if detection.Status != types.DetectionFound {
		return types.IdentifyResult{Status: types.IdentifyError}, detection.AsError()
	}

	population, err := identifier.Gallery.EligibleProfiles(ctx)
	if err != nil {
		return types.IdentifyResult{Status: types.IdentifyError}, err
	}

	return identifier.rank(detection.Encoding, population)
}

// IdentifyEncoding runs the decision rule over an already-produced
// probe encoding.
func (identifier *Identifier) IdentifyEncoding(ctx context.Context, probe types.FaceEncoding) (types.IdentifyResult, error) {
	population, err := identifier.Gallery.EligibleProfiles(ctx)
	if err != nil {
		return types.IdentifyResult{Status: types.IdentifyError}, err
	}
	return identifier.rank(probe, population)
}

func (identifier *Identifier) rank(probe types.FaceEncoding, population []types.EnrolledFace) (types.IdentifyResult, error) {
	if len(population) == 0 {
		return types.IdentifyResult{Status: types.IdentifyNoMatch}, nil
	}

	candidates := make([]types.Candidate, 0, len(population))
	for _, enrolled := range population {
		match, err := CompareEncodings(probe, enrolled.Encoding, DefaultTolerance)
		if err != nil {
			return types.IdentifyResult{Status: types.IdentifyError}, err
		}
		candidates = append(candidates, types.Candidate{
			UserID:     enrolled.UserID,
			Distance:   match.Distance,
			Confidence: match.ConfidencePercentage,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Distance < candidates[j].Distance
	})

	threshold := AdaptiveThreshold(len(population))
	if identifier.ThresholdOverride != nil {
		threshold = *identifier.ThresholdOverride
	}

	top := candidates
	if len(top) > maxRankedCandidates {
		top = top[:maxRankedCandidates]
	}

	best := candidates[0]
	result := types.IdentifyResult{
		BestDistance: best.Distance,
		Candidates:   top,
	}

	switch {
	case best.Distance > threshold:
		result.Status = types.IdentifyNoMatch
	case len(candidates) > 1 && candidates[1].Distance < best.Distance+ambiguityMargin:
		result.Status = types.IdentifyAmbiguous
	default:
		result.Status = types.IdentifySuccess
		result.UserID = &best.UserID
	}
	return result, nil
}
