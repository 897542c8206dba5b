package routes

import (
	"github.com/labstack/echo/v4"

	"gearguard/internal/controllers"
	"gearguard/internal/entities"
	"gearguard/pkg/middleware"
)

func runRequestRouter(secureGroup *echo.Group, ctrl *controllers.RequestController, authMW *middleware.AuthMiddleware) {
	managers := authMW.RequireRoles(string(entities.RoleAdmin), string(entities.RoleManager))

	requests := secureGroup.Group("/requests")
	requests.GET("", ctrl.GetRequests)
	requests.GET("/:id", ctrl.FindRequest)
	requests.POST("", ctrl.CreateRequest)
	requests.PUT("/:id", ctrl.UpdateRequest)
	requests.PUT("/:id/assign", ctrl.AssignRequest, managers)
	requests.PUT("/:id/stage", ctrl.TransitionStage)
	requests.DELETE("/:id", ctrl.DeleteRequest, managers)

	secureGroup.GET("/tracking-logs", ctrl.GetTrackingLogs)
	secureGroup.POST("/tracking-logs", ctrl.CreateTrackingLog)

	secureGroup.GET("/requirements", ctrl.GetRequirements)
	secureGroup.POST("/requirements", ctrl.SubmitRequirement)
	secureGroup.PUT("/requirements/:id", ctrl.ReviewRequirement, managers)
}
