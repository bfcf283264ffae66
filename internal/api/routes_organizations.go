package api

import (
	"github.com/gin-gonic/gin"

	"github.com/orgdesk/orgdesk/internal/handlers"
)

func registerOrganizationRoutes(api *gin.RouterGroup, orgHandler *handlers.OrganizationHandler, userHandler *handlers.UserHandler) {
	orgs := api.Group("/organizations")
	{
		orgs.GET("", orgHandler.List)
		orgs.GET("/:id", orgHandler.Get)
		orgs.POST("", orgHandler.Create)
		orgs.PUT("/:id", orgHandler.Update)
		orgs.DELETE("/:id", orgHandler.Delete)

		// Organization-scoped user management
		orgs.GET("/:id/users", userHandler.ListByOrganization)
		orgs.POST("/:id/users", userHandler.CreateInOrganization)
	}
}
