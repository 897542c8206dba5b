package routes

import (
	"github.com/labstack/echo/v4"

	"gearguard/internal/controllers"
	"gearguard/internal/entities"
	"gearguard/pkg/middleware"
)

func runReportRouter(secureGroup *echo.Group, ctrl *controllers.ReportController, authMW *middleware.AuthMiddleware) {
	managers := authMW.RequireRoles(string(entities.RoleAdmin), string(entities.RoleManager))

	secureGroup.GET("/reports/summary", ctrl.GetSummary, managers)
	secureGroup.GET("/reports/requests", ctrl.GetRequests, managers)
}
