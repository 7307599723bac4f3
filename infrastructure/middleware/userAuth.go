package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
	"lifex.health/application/interfaces"
	"lifex.health/application/middlewares"
)

func UserAuthenticationMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		savedCtx := (ctx.MustGet("AppContext")).(*interfaces.ApplicationContext[any])
		authToken := strings.TrimPrefix(ctx.GetHeader("Authorization"), "Bearer ")
		appContext, next := middlewares.UserAuthenticationMiddleware(&interfaces.ApplicationContext[any]{
			Ctx:       ctx,
			Keys:      savedCtx.Keys,
			UserAgent: savedCtx.UserAgent,
			SourceIP:  savedCtx.SourceIP,
		}, authToken, allowedRoles)
		if next {
			ctx.Set("AppContext", appContext)
			ctx.Next()
		}
	}
}
