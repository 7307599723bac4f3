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

func BiometricRouter(router *gin.RouterGroup) {
	biometricRouter := router.Group("/biometric")
	{
		biometricRouter.POST("/enroll", middlewares.UserAuthenticationMiddleware(string(entities.RoleAdmin), string(entities.RoleReceptionist), string(entities.RoleNurse), string(entities.RoleDoctor)), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.EnrollBiometricDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.EnrollBiometricProfile(&interfaces.ApplicationContext[dto.EnrollBiometricDTO]{
				Ctx:       ctx,
				Body:      &body,
				Keys:      appContext.Keys,
				UserAgent: appContext.UserAgent,
				SourceIP:  appContext.SourceIP,
			})
		})

		biometricRouter.POST("/verify", middlewares.UserAuthenticationMiddleware(), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.VerifyFaceDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.VerifyFace(&interfaces.ApplicationContext[dto.VerifyFaceDTO]{
				Ctx:       ctx,
				Body:      &body,
				Keys:      appContext.Keys,
				UserAgent: appContext.UserAgent,
				SourceIP:  appContext.SourceIP,
			})
		})

		biometricRouter.POST("/verify/live", middlewares.UserAuthenticationMiddleware(), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.VerifyLiveDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.VerifyFaceWithLiveness(&interfaces.ApplicationContext[dto.VerifyLiveDTO]{
				Ctx:       ctx,
				Body:      &body,
				Keys:      appContext.Keys,
				UserAgent: appContext.UserAgent,
				SourceIP:  appContext.SourceIP,
			})
		})

		biometricRouter.POST("/face-login/toggle", middlewares.UserAuthenticationMiddleware(), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.ToggleFaceLoginDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.ToggleFaceLogin(&interfaces.ApplicationContext[dto.ToggleFaceLoginDTO]{
				Ctx:  ctx,
				Body: &body,
				Keys: appContext.Keys,
			})
		})

		biometricRouter.POST("/staff/review", middlewares.UserAuthenticationMiddleware(string(entities.RoleAdmin), string(entities.RoleDoctor), string(entities.RoleNurse)), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.StaffVerifyDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.StaffVerifyProfile(&interfaces.ApplicationContext[dto.StaffVerifyDTO]{
				Ctx:  ctx,
				Body: &body,
				Keys: appContext.Keys,
			})
		})

		biometricRouter.GET("/integrity/:userID", middlewares.UserAuthenticationMiddleware(string(entities.RoleAdmin)), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.CheckProfileIntegrity(&interfaces.ApplicationContext[any]{
				Ctx:  ctx,
				Keys: appContext.Keys,
				Params: map[string]string{
					"userID": ctx.Param("userID"),
				},
			})
		})
	}
}
