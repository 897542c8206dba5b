package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/services"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"
)

// BoardController serves the kanban and calendar views of maintenance requests.
type BoardController struct {
	boardService services.BoardServiceInterface
	logger       *zap.Logger
}

func NewBoardController(boardService services.BoardServiceInterface, logger *zap.Logger) *BoardController {
	return &BoardController{boardService: boardService, logger: logger}
}

func (c *BoardController) GetKanban(ctx echo.Context) error {
	res, err := c.boardService.Kanban(ctx.Request().Context(), ctx.QueryParam("teamId"), ctx.QueryParam("userId"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Kanban board", http.StatusOK)
}

func (c *BoardController) MoveCard(ctx echo.Context) error {
	var payload dto.KanbanMoveDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.boardService.MoveCard(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Card moved", http.StatusOK)
}

func (c *BoardController) GetCalendar(ctx echo.Context) error {
	res, err := c.boardService.Calendar(ctx.Request().Context(),
		ctx.QueryParam("teamId"),
		ctx.QueryParam("userId"),
		ctx.QueryParam("startDate"),
		ctx.QueryParam("endDate"),
	)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Calendar events", http.StatusOK)
}

func (c *BoardController) ScheduleMaintenance(ctx echo.Context) error {
	var payload dto.CreateRequestDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil), c.logger)
	}
	// the calendar form does not send a type
	if payload.Type == "" {
		payload.Type = string(entities.RequestPreventive)
	}
	payload.RequestedByUserID = actingUserID(ctx, payload.RequestedByUserID)
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.boardService.ScheduleMaintenance(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Maintenance scheduled", http.StatusCreated)
}
