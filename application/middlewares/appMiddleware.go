package middlewares

import (
	"errors"

	apperrors "lifex.health/application/appErrors"
	"lifex.health/application/interfaces"
	"lifex.health/infrastructure/useragent"
)

func UserAgentMiddleware(ctx *interfaces.ApplicationContext[any], agent string, clientIP string) (*interfaces.ApplicationContext[any], bool) {
	if agent == "" {
		apperrors.ClientError(ctx.Ctx, "user agent header missing", []error{errors.New("user agent header missing")}, nil)
		return nil, false
	}
	agentDetails := useragent.ParseUserAgent(agent)
	ctx.UserAgent = agent
	ctx.SourceIP = clientIP
	ctx.SetContextData("DeviceName", agentDetails.Name)
	ctx.SetContextData("DeviceOS", agentDetails.OS)
	return ctx, true
}
