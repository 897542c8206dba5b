package routes

import (
	"github.com/labstack/echo/v4"

	"gearguard/internal/controllers"
	"gearguard/internal/entities"
	"gearguard/pkg/middleware"
)

func runTeamRouter(secureGroup *echo.Group, ctrl *controllers.TeamController, authMW *middleware.AuthMiddleware) {
	managers := authMW.RequireRoles(string(entities.RoleAdmin), string(entities.RoleManager))

	g := secureGroup.Group("/teams")
	g.GET("", ctrl.GetTeams)
	g.GET("/:id", ctrl.FindTeam)
	g.POST("", ctrl.CreateTeam, managers)
	g.PUT("/:id", ctrl.UpdateTeam, managers)
	g.DELETE("/:id", ctrl.DeleteTeam, managers)
}
