package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/services"
	"gearguard/pkg/utils"
)

type NotificationController struct {
	service services.NotificationServiceInterface
	logger  *zap.Logger
}

func NewNotificationController(service services.NotificationServiceInterface, logger *zap.Logger) *NotificationController {
	return &NotificationController{service: service, logger: logger}
}

func (c *NotificationController) GetNotifications(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	res, total, err := c.service.List(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Notifications fetched", http.StatusOK, total)
}

func (c *NotificationController) UnreadCount(ctx echo.Context) error {
	userID := ctx.QueryParam("userId")
	count, err := c.service.UnreadCount(ctx.Request().Context(), userID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if userID == "" {
		userID = currentUserID(ctx)
	}
	return utils.SuccessResponse(ctx, dto.UnreadCountDTO{UserID: userID, Count: count}, "Unread count", http.StatusOK)
}

func (c *NotificationController) CreateNotification(ctx echo.Context) error {
	var payload dto.CreateNotificationDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.service.CreateFromDTO(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Notification created", http.StatusCreated)
}

func (c *NotificationController) MarkRead(ctx echo.Context) error {
	id, err := requireParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.service.MarkRead(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Notification marked as read", http.StatusOK)
}

func (c *NotificationController) MarkAllRead(ctx echo.Context) error {
	n, err := c.service.MarkAllRead(ctx.Request().Context(), ctx.QueryParam("userId"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, map[string]int64{"updated": n}, "Notifications marked as read", http.StatusOK)
}

func (c *NotificationController) DeleteNotification(ctx echo.Context) error {
	id, err := requireParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.service.Delete(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Notification deleted", http.StatusOK)
}
