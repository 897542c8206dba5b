package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/services"
	"gearguard/pkg/utils"
)

type RequestController struct {
	lifecycle services.RequestLifecycleInterface
	logger    *zap.Logger
}

func NewRequestController(lifecycle services.RequestLifecycleInterface, logger *zap.Logger) *RequestController {
	return &RequestController{lifecycle: lifecycle, logger: logger}
}

func (c *RequestController) GetRequests(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	res, total, err := c.lifecycle.ListRequests(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Requests fetched", http.StatusOK, total)
}

func (c *RequestController) FindRequest(ctx echo.Context) error {
	id, err := requireParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.lifecycle.GetRequest(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Request found", http.StatusOK)
}

func (c *RequestController) CreateRequest(ctx echo.Context) error {
	var payload dto.CreateRequestDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	payload.RequestedByUserID = actingUserID(ctx, payload.RequestedByUserID)
	res, err := c.lifecycle.CreateRequest(ctx.Request().Context(), payload, services.CreateRequestOptions{})
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Request created", http.StatusCreated)
}

func (c *RequestController) UpdateRequest(ctx echo.Context) error {
	id, err := requireParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateRequestDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.lifecycle.UpdateRequest(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Request updated", http.StatusOK)
}

func (c *RequestController) AssignRequest(ctx echo.Context) error {
	id, err := requireParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.AssignRequestDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.lifecycle.AssignTechnician(ctx.Request().Context(), id, payload.UserID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Request assigned", http.StatusOK)
}

func (c *RequestController) TransitionStage(ctx echo.Context) error {
	id, err := requireParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.TransitionStageDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.lifecycle.TransitionStage(ctx.Request().Context(), id, entities.RequestStage(payload.Stage))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Stage changed", http.StatusOK)
}

func (c *RequestController) DeleteRequest(ctx echo.Context) error {
	id, err := requireParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.lifecycle.DeleteRequest(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Request deleted", http.StatusOK)
}

func (c *RequestController) GetTrackingLogs(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	res, total, err := c.lifecycle.ListTrackingLogs(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Tracking logs fetched", http.StatusOK, total)
}

func (c *RequestController) CreateTrackingLog(ctx echo.Context) error {
	var payload dto.CreateTrackingLogDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	payload.CreatedBy = actingUserID(ctx, payload.CreatedBy)
	res, err := c.lifecycle.AddTrackingLog(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Tracking log added", http.StatusCreated)
}

func (c *RequestController) GetRequirements(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	res, total, err := c.lifecycle.ListRequirements(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Requirements fetched", http.StatusOK, total)
}

func (c *RequestController) SubmitRequirement(ctx echo.Context) error {
	var payload dto.SubmitRequirementDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	payload.SubmittedBy = actingUserID(ctx, payload.SubmittedBy)
	res, err := c.lifecycle.SubmitRequirement(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Requirements submitted", http.StatusCreated)
}

func (c *RequestController) ReviewRequirement(ctx echo.Context) error {
	id, err := requireParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.ReviewRequirementDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.lifecycle.ReviewRequirement(ctx.Request().Context(), id, entities.RequirementStatus(payload.Status))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Requirement reviewed", http.StatusOK)
}
