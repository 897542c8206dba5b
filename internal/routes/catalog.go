package routes

import (
	"github.com/labstack/echo/v4"

	"gearguard/internal/controllers"
	"gearguard/internal/entities"
	"gearguard/pkg/middleware"
)

// runCatalogRouter serves the reference data: equipment categories and work centers.
func runCatalogRouter(
	secureGroup *echo.Group,
	categoryCtrl *controllers.CategoryController,
	workCenterCtrl *controllers.WorkCenterController,
	authMW *middleware.AuthMiddleware,
) {
	managers := authMW.RequireRoles(string(entities.RoleAdmin), string(entities.RoleManager))

	categories := secureGroup.Group("/categories")
	categories.GET("", categoryCtrl.GetCategories)
	categories.GET("/:id", categoryCtrl.FindCategory)
	categories.POST("", categoryCtrl.CreateCategory, managers)
	categories.PUT("/:id", categoryCtrl.UpdateCategory, managers)
	categories.DELETE("/:id", categoryCtrl.DeleteCategory, managers)

	workCenters := secureGroup.Group("/work-centers")
	workCenters.GET("", workCenterCtrl.GetWorkCenters)
	workCenters.GET("/:id", workCenterCtrl.FindWorkCenter)
	workCenters.POST("", workCenterCtrl.CreateWorkCenter, managers)
	workCenters.PUT("/:id", workCenterCtrl.UpdateWorkCenter, managers)
	workCenters.DELETE("/:id", workCenterCtrl.DeleteWorkCenter, managers)
}
