package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// ReportFilter narrows the requests covered by a report. Zero values mean "no restriction".
type ReportFilter struct {
	TeamID   string
	Type     RequestType
	DateFrom null.Time
	DateTo   null.Time
}

// ReportRow is one request flattened with the names of the records it references.
type ReportRow struct {
	ID            string       `json:"id"`
	Subject       string       `json:"subject"`
	Type          RequestType  `json:"type"`
	Stage         RequestStage `json:"stage"`
	Priority      Priority     `json:"priority"`
	EquipmentName null.String  `json:"equipmentName"`
	TeamName      null.String  `json:"teamName"`
	AssigneeName  null.String  `json:"assigneeName"`
	RequesterName null.String  `json:"requesterName"`
	ScheduledDate null.Time    `json:"scheduledDate"`
	CompletedDate null.Time    `json:"completedDate"`
	DurationHours null.Float64 `json:"durationHours"`
	CreatedAt     time.Time    `json:"createdAt"`
	IsOverdue     bool         `json:"isOverdue"`
}
