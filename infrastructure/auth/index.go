package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt"
	"lifex.health/entities"
	"lifex.health/infrastructure/logger"
)

const (
	accessTokenLifetime  = 15 * time.Minute
	refreshTokenLifetime = 7 * 24 * time.Hour
)

func GenerateAuthToken(claimsData ClaimsData) (*string, error) {
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss":       os.Getenv("JWT_ISSUER"),
		"userID":    claimsData.UserID,
		"exp":       claimsData.ExpiresAt,
		"email":     claimsData.Email,
		"firstName": claimsData.FirstName,
		"lastName":  claimsData.LastName,
		"role":      claimsData.Role,
		"iat":       claimsData.IssuedAt,
		"tokenType": claimsData.TokenType,
	}).SignedString([]byte(os.Getenv("JWT_SIGNING_KEY")))
	if err != nil {
		return nil, err
	}
	return &tokenString, nil
}

// IssueTokenPair mints the access and refresh tokens handed out after
// a confirmed identification or a direct 1:1 match.
func IssueTokenPair(user *entities.User) (*TokenPair, error) {
	now := time.Now()

	accessToken, err := GenerateAuthToken(ClaimsData{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      string(user.Role),
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(accessTokenLifetime).Unix(),
		TokenType: "access",
	})
	if err != nil {
		logger.Error("error generating access token", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}

	refreshToken, err := GenerateAuthToken(ClaimsData{
		UserID:    user.ID,
		Role:      string(user.Role),
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(refreshTokenLifetime).Unix(),
		TokenType: "refresh",
	})
	if err != nil {
		logger.Error("error generating refresh token", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}

	return &TokenPair{
		AccessToken:  *accessToken,
		RefreshToken: *refreshToken,
	}, nil
}

func DecodeAuthToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SIGNING_KEY")), nil
	})
	if err != nil {
		if err == jwt.ErrSignatureInvalid {
			err = errors.New("invalid token signature used")
			return nil, err
		}
		logger.Error("error decoding jwt", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	if !token.Valid {
		err := errors.New("invalid token used")
		logger.Error(err.Error())
		return nil, err
	}
	return token, nil
}
