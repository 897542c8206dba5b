package services

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"
)

type ReportServiceInterface interface {
	Summary(ctx context.Context, filter entities.ReportFilter) (types.RequestSummary, error)
	Rows(ctx context.Context, filter entities.ReportFilter) ([]entities.ReportRow, error)
	WriteXLSX(ctx context.Context, filter entities.ReportFilter, w io.Writer) error
}

type ReportService struct {
	*BaseService
	reportRepo repositories.ReportRepositoryInterface
}

func NewReportService(base *BaseService, reportRepo repositories.ReportRepositoryInterface) *ReportService {
	return &ReportService{BaseService: base, reportRepo: reportRepo}
}

func (s *ReportService) Summary(ctx context.Context, filter entities.ReportFilter) (types.RequestSummary, error) {
	return s.reportRepo.Summary(ctx, filter, s.now())
}

func (s *ReportService) Rows(ctx context.Context, filter entities.ReportFilter) ([]entities.ReportRow, error) {
	return s.reportRepo.Rows(ctx, filter, s.now())
}

const reportSheet = "Requests"

var reportHeaders = []string{
	"ID", "Subject", "Type", "Stage", "Priority", "Equipment", "Team", "Assignee", "Requested by",
	"Scheduled", "Completed", "Duration (h)", "Created", "Overdue",
}

func reportRowToSlice(item entities.ReportRow) []interface{} {
	var scheduled, completed, duration string
	if item.ScheduledDate.Valid {
		scheduled = item.ScheduledDate.Time.Format(utils.DateLayout)
	}
	if item.CompletedDate.Valid {
		completed = item.CompletedDate.Time.Format(utils.DateLayout)
	}
	if item.DurationHours.Valid {
		duration = fmt.Sprintf("%.2f", item.DurationHours.Float64)
	}
	overdue := "no"
	if item.IsOverdue {
		overdue = "yes"
	}
	return []interface{}{
		item.ID, item.Subject, string(item.Type), string(item.Stage), string(item.Priority),
		item.EquipmentName.String, item.TeamName.String, item.AssigneeName.String, item.RequesterName.String,
		scheduled, completed, duration, item.CreatedAt.Format("2006-01-02 15:04"), overdue,
	}
}

// BuildRequestsWorkbook lays rows out on a single sheet with a bold header.
func BuildRequestsWorkbook(rows []entities.ReportRow) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(reportSheet, "A1", &reportHeaders); err != nil {
		return nil, err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(reportHeaders), 1)
	if err := f.SetCellStyle(reportSheet, "A1", lastHeader, style); err != nil {
		return nil, err
	}

	for i, item := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := reportRowToSlice(item)
		if err := f.SetSheetRow(reportSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(reportSheet, "A", "A", 38)
	_ = f.SetColWidth(reportSheet, "B", "B", 40)
	_ = f.SetColWidth(reportSheet, "F", "I", 22)
	return f, nil
}

func (s *ReportService) WriteXLSX(ctx context.Context, filter entities.ReportFilter, w io.Writer) error {
	rows, err := s.Rows(ctx, filter)
	if err != nil {
		return err
	}
	f, err := BuildRequestsWorkbook(rows)
	if err != nil {
		return fmt.Errorf("build workbook: %w", err)
	}
	defer f.Close()
	s.logger.Info("requests report exported", zap.Int("rows", len(rows)))
	return f.Write(w)
}
