package routes

import (
	"github.com/labstack/echo/v4"

	"gearguard/internal/controllers"
	"gearguard/internal/entities"
	"gearguard/pkg/middleware"
)

func runEquipmentRouter(secureGroup *echo.Group, ctrl *controllers.EquipmentController, authMW *middleware.AuthMiddleware) {
	managers := authMW.RequireRoles(string(entities.RoleAdmin), string(entities.RoleManager))

	g := secureGroup.Group("/equipment")
	g.GET("", ctrl.GetEquipments)
	g.GET("/:id", ctrl.FindEquipment)
	g.GET("/:id/history", ctrl.GetHistory)
	g.POST("/:id/requests", ctrl.CreateRequest)
	g.POST("", ctrl.CreateEquipment, managers)
	g.POST("/import", ctrl.Import, managers)
	g.PUT("/:id", ctrl.UpdateEquipment, managers)
	g.DELETE("/:id", ctrl.DeleteEquipment, managers)
}
