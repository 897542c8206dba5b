package dto

// ReportQueryDTO is bound from the query string of /api/reports/*.
type ReportQueryDTO struct {
	TeamID   string `query:"teamId"`
	Type     string `query:"type" validate:"omitempty,request_type"`
	DateFrom string `query:"dateFrom" validate:"omitempty,iso_date"`
	DateTo   string `query:"dateTo" validate:"omitempty,iso_date"`
	Format   string `query:"format" validate:"omitempty,oneof=json xlsx"`
}
