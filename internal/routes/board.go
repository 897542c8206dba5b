package routes

import (
	"github.com/labstack/echo/v4"

	"gearguard/internal/controllers"
)

func runBoardRouter(secureGroup *echo.Group, ctrl *controllers.BoardController) {
	secureGroup.GET("/kanban", ctrl.GetKanban)
	secureGroup.PUT("/kanban/move", ctrl.MoveCard)
	secureGroup.GET("/calendar", ctrl.GetCalendar)
	secureGroup.POST("/calendar", ctrl.ScheduleMaintenance)
}
