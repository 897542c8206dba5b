package routes

import (
	"github.com/labstack/echo/v4"

	"gearguard/internal/controllers"
	"gearguard/internal/entities"
	"gearguard/pkg/middleware"
)

func runNotificationRouter(secureGroup *echo.Group, ctrl *controllers.NotificationController, authMW *middleware.AuthMiddleware) {
	g := secureGroup.Group("/notifications")
	g.GET("", ctrl.GetNotifications)
	g.GET("/unread-count", ctrl.UnreadCount)
	g.POST("", ctrl.CreateNotification, authMW.RequireRoles(string(entities.RoleAdmin)))
	g.PUT("/read-all", ctrl.MarkAllRead)
	g.PUT("/:id/read", ctrl.MarkRead)
	g.DELETE("/:id", ctrl.DeleteNotification)
}
