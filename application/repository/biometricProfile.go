package repository

import (
	"context"
	"sync"

	"lifex.health/entities"
	biometric_types "lifex.health/infrastructure/biometric/types"
	"lifex.health/infrastructure/database/connection/datastore"
	"lifex.health/infrastructure/database/repository/mongo"
)

var biometricProfileOnce = sync.Once{}

var biometricProfileRepository mongo.MongoRepository[entities.BiometricProfile]

func BiometricProfileRepo() *mongo.MongoRepository[entities.BiometricProfile] {
	biometricProfileOnce.Do(func() {
		biometricProfileRepository = mongo.MongoRepository[entities.BiometricProfile]{Model: datastore.BiometricProfileModel}
	})
	return &biometricProfileRepository
}

// ProfileGallery adapts the profile collection to the identifier's
// gallery interface: only verified profiles with face login enabled
// are eligible for 1:N scans.
type ProfileGallery struct{}

func (gallery *ProfileGallery) EligibleProfiles(ctx context.Context) ([]biometric_types.EnrolledFace, error) {
	profiles, err := BiometricProfileRepo().FindMany(map[string]interface{}{
		"faceRecognitionEnabled": true,
		"isFaceVerified":         true,
	})
	if err != nil {
		return nil, err
	}

	population := make([]biometric_types.EnrolledFace, 0, len(*profiles))
	for _, profile := range *profiles {
		encoding, err := biometric_types.EncodingFromJSON(profile.LiveFaceEncoding)
		if err != nil {
			continue
		}
		population = append(population, biometric_types.EnrolledFace{
			UserID:   profile.UserID,
			Encoding: encoding,
		})
	}
	return population, nil
}
