package routes

import (
	"crm_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts all HTTP routes under /api/v1. authMW is the
// access-token middleware shared by the protected groups.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	authMW gin.HandlerFunc,
) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.HealthHandler.RegisterRoutes(api)
		appHandlers.AuthHandler.RegisterRoutes(api, authMW)
		appHandlers.UserHandler.RegisterRoutes(api, authMW)
		appHandlers.CustomerHandler.RegisterRoutes(api, authMW)
		appHandlers.LeadHandler.RegisterRoutes(api, authMW)
	}
}
