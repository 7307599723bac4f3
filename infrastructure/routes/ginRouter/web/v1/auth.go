package routev1

import (
	"github.com/gin-gonic/gin"
	apperrors "lifex.health/application/appErrors"
	"lifex.health/application/controller"
	"lifex.health/application/controller/dto"
	"lifex.health/application/interfaces"
	"lifex.health/entities"
	middlewares "lifex.health/infrastructure/middleware"
)

func AuthRouter(router *gin.RouterGroup) {
	authRouter := router.Group("/auth")
	{
		authRouter.POST("/face/identify", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.IdentifyByFaceDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.IdentifyByFace(&interfaces.ApplicationContext[dto.IdentifyByFaceDTO]{
				Ctx:       ctx,
				Body:      &body,
				UserAgent: appContext.UserAgent,
				SourceIP:  appContext.SourceIP,
			})
		})

		authRouter.POST("/face/confirm", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.ConfirmIdentityDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.ConfirmIdentity(&interfaces.ApplicationContext[dto.ConfirmIdentityDTO]{
				Ctx:       ctx,
				Body:      &body,
				UserAgent: appContext.UserAgent,
				SourceIP:  appContext.SourceIP,
			})
		})

		authRouter.POST("/face/login", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.QuickFaceLoginDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.QuickFaceLogin(&interfaces.ApplicationContext[dto.QuickFaceLoginDTO]{
				Ctx:       ctx,
				Body:      &body,
				UserAgent: appContext.UserAgent,
				SourceIP:  appContext.SourceIP,
			})
		})

		authRouter.GET("/face/stats", middlewares.UserAuthenticationMiddleware(string(entities.RoleAdmin)), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.FaceLoginStats(&interfaces.ApplicationContext[any]{
				Ctx:  ctx,
				Keys: appContext.Keys,
			})
		})
	}
}
