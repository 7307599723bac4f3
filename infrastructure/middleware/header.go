package middlewares

import (
	"github.com/gin-gonic/gin"
	"lifex.health/application/interfaces"
	"lifex.health/application/middlewares"
)

func UserAgentMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		appContext, next := middlewares.UserAgentMiddleware(&interfaces.ApplicationContext[any]{
			Ctx:  ctx,
			Keys: ctx.Keys,
		}, ctx.Request.UserAgent(), ctx.ClientIP())
		if next {
			ctx.Set("AppContext", appContext)
			ctx.Next()
		}
	}
}
