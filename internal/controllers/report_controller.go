package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/services"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

func (c *ReportController) parseFilter(ctx echo.Context) (entities.ReportFilter, string, error) {
	var query dto.ReportQueryDTO
	if err := (&echo.DefaultBinder{}).BindQueryParams(ctx, &query); err != nil {
		return entities.ReportFilter{}, "", apperrors.NewHttpError(http.StatusBadRequest, "invalid query", err, nil)
	}
	if err := ctx.Validate(&query); err != nil {
		return entities.ReportFilter{}, "", err
	}

	filter := entities.ReportFilter{TeamID: query.TeamID, Type: entities.RequestType(query.Type)}
	if query.DateFrom != "" {
		t, err := utils.ParseDate(query.DateFrom)
		if err != nil {
			return filter, "", apperrors.NewValidationError("dateFrom", "%v", err)
		}
		filter.DateFrom = null.TimeFrom(t)
	}
	if query.DateTo != "" {
		t, err := utils.ParseDate(query.DateTo)
		if err != nil {
			return filter, "", apperrors.NewValidationError("dateTo", "%v", err)
		}
		filter.DateTo = null.TimeFrom(t)
	}
	return filter, strings.ToLower(query.Format), nil
}

func (c *ReportController) GetSummary(ctx echo.Context) error {
	filter, _, err := c.parseFilter(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.reportService.Summary(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Request summary", http.StatusOK)
}

func (c *ReportController) GetRequests(ctx echo.Context) error {
	filter, format, err := c.parseFilter(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if format == "xlsx" {
		return c.respondWithXLSX(ctx, filter)
	}
	rows, err := c.reportService.Rows(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, rows, "Request report", http.StatusOK, uint64(len(rows)))
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, filter entities.ReportFilter) error {
	var buf bytes.Buffer
	if err := c.reportService.WriteXLSX(ctx.Request().Context(), filter, &buf); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	fileName := fmt.Sprintf("maintenance_requests_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	return ctx.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}
