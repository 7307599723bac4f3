package middlewares

import (
	"github.com/golang-jwt/jwt"
	apperrors "lifex.health/application/appErrors"
	"lifex.health/application/interfaces"
	"lifex.health/infrastructure/auth"
)

func UserAuthenticationMiddleware(ctx *interfaces.ApplicationContext[any], authToken string, allowedRoles []string) (*interfaces.ApplicationContext[any], bool) {
	if authToken == "" {
		apperrors.AuthenticationError(ctx.Ctx, "provide an auth token")
		return nil, false
	}
	token, err := auth.DecodeAuthToken(authToken)
	if err != nil {
		apperrors.AuthenticationError(ctx.Ctx, "invalid or expired auth token")
		return nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		apperrors.AuthenticationError(ctx.Ctx, "invalid or expired auth token")
		return nil, false
	}
	if tokenType, _ := claims["tokenType"].(string); tokenType != "access" {
		apperrors.AuthenticationError(ctx.Ctx, "access token required")
		return nil, false
	}
	role, _ := claims["role"].(string)
	if len(allowedRoles) != 0 {
		permitted := false
		for _, allowed := range allowedRoles {
			if allowed == role {
				permitted = true
				break
			}
		}
		if !permitted {
			apperrors.AuthenticationError(ctx.Ctx, "you do not have permission to perform this action")
			return nil, false
		}
	}
	userID, _ := claims["userID"].(string)
	email, _ := claims["email"].(string)
	ctx.SetContextData("UserID", userID)
	ctx.SetContextData("Email", email)
	ctx.SetContextData("Role", role)
	return ctx, true
}
