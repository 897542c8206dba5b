package routes

import (
	"github.com/labstack/echo/v4"

	"gearguard/internal/controllers"
	"gearguard/internal/entities"
	"gearguard/pkg/middleware"
)

func runUserRouter(secureGroup *echo.Group, ctrl *controllers.UserController, authMW *middleware.AuthMiddleware) {
	admins := authMW.RequireRoles(string(entities.RoleAdmin))
	managers := authMW.RequireRoles(string(entities.RoleAdmin), string(entities.RoleManager))

	g := secureGroup.Group("/users")
	g.GET("", ctrl.GetUsers)
	g.GET("/:id", ctrl.FindUser)
	g.POST("", ctrl.CreateUser, managers)
	g.PUT("/:id", ctrl.UpdateUser, managers)
	g.DELETE("/:id", ctrl.DeleteUser, admins)
}
