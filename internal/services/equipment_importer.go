package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/pkg/utils"
)

// ImportResult summarises an equipment spreadsheet import.
type ImportResult struct {
	Created int           `json:"created"`
	Skipped int           `json:"skipped"`
	Errors  []ImportIssue `json:"errors"`
}

type ImportIssue struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type EquipmentImporterInterface interface {
	Import(ctx context.Context, r io.Reader) (*ImportResult, error)
}

// EquipmentImporter creates equipment from the first sheet of an xlsx file that has a header row
// with at least "name" and "serial" columns.
type EquipmentImporter struct {
	equipment EquipmentServiceInterface
	logger    *zap.Logger
}

func NewEquipmentImporter(equipment EquipmentServiceInterface, logger *zap.Logger) *EquipmentImporter {
	return &EquipmentImporter{equipment: equipment, logger: logger}
}

type importColumns struct {
	name, serial, category, department, location, team, purchase, warranty, notes int
}

func detectColumns(header []string) (importColumns, bool) {
	cols := importColumns{-1, -1, -1, -1, -1, -1, -1, -1, -1}
	for i, raw := range header {
		h := strings.ToLower(strings.TrimSpace(raw))
		switch {
		case strings.Contains(h, "serial"):
			cols.serial = i
		case strings.Contains(h, "category"):
			cols.category = i
		case strings.Contains(h, "department"):
			cols.department = i
		case strings.Contains(h, "location"):
			cols.location = i
		case strings.Contains(h, "team"):
			cols.team = i
		case strings.Contains(h, "purchase"):
			cols.purchase = i
		case strings.Contains(h, "warranty"):
			cols.warranty = i
		case strings.Contains(h, "note"):
			cols.notes = i
		case strings.Contains(h, "name"):
			cols.name = i
		}
	}
	return cols, cols.name != -1 && cols.serial != -1
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func optionalCell(row []string, idx int) *string {
	v := cellAt(row, idx)
	if v == "" {
		return nil
	}
	return utils.ToPtr(v)
}

func (im *EquipmentImporter) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}

	headerRow := -1
	var cols importColumns
	for i, row := range rows {
		if c, ok := detectColumns(row); ok {
			headerRow, cols = i, c
			break
		}
	}
	if headerRow == -1 {
		return nil, fmt.Errorf("no header row with name and serial columns")
	}

	result := &ImportResult{Errors: []ImportIssue{}}
	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		name := cellAt(row, cols.name)
		if name == "" {
			result.Skipped++
			continue
		}
		payload := dto.CreateEquipmentDTO{
			Name:              name,
			SerialNumber:      cellAt(row, cols.serial),
			Category:          cellAt(row, cols.category),
			DepartmentID:      cellAt(row, cols.department),
			Location:          cellAt(row, cols.location),
			MaintenanceTeamID: cellAt(row, cols.team),
			PurchaseDate:      optionalCell(row, cols.purchase),
			WarrantyExpiry:    optionalCell(row, cols.warranty),
			Notes:             optionalCell(row, cols.notes),
		}
		if _, err := im.equipment.CreateEquipment(ctx, payload); err != nil {
			result.Errors = append(result.Errors, ImportIssue{Row: i + 1, Message: err.Error()})
			continue
		}
		result.Created++
	}

	im.logger.Info("equipment import finished",
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", len(result.Errors)),
	)
	return result, nil
}
