package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// MaintenanceRequest is a corrective or preventive job against a piece of equipment.
type MaintenanceRequest struct {
	ID                string       `json:"id"`
	Subject           string       `json:"subject"`
	Description       null.String  `json:"description"`
	Type              RequestType  `json:"type"`
	EquipmentID       string       `json:"equipmentId"`
	RequestedByUserID string       `json:"requestedByUserId"`
	AssignedToUserID  null.String  `json:"assignedToUserId"`
	TeamID            string       `json:"teamId"`
	Stage             RequestStage `json:"stage"`
	Priority          Priority     `json:"priority"`
	Category          string       `json:"category"`
	WorkCenterID      null.String  `json:"workCenterId"`
	ScheduledDate     null.Time    `json:"scheduledDate"`
	CompletedDate     null.Time    `json:"completedDate"`
	AcceptedAt        null.Time    `json:"acceptedAt"`
	DurationHours     null.Float64 `json:"durationHours"`
	Notes             string       `json:"notes"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`

	// IsOverdue is derived on every read and never stored.
	IsOverdue bool `json:"isOverdue" db:"-"`
}

// Overdue reports whether the request is scheduled in the past and still open at now.
func (r *MaintenanceRequest) Overdue(now time.Time) bool {
	if !r.ScheduledDate.Valid || r.Stage.IsTerminal() {
		return false
	}
	return r.ScheduledDate.Time.Before(now)
}

// RefreshOverdue recomputes IsOverdue against now and returns the request for chaining.
func (r *MaintenanceRequest) RefreshOverdue(now time.Time) *MaintenanceRequest {
	r.IsOverdue = r.Overdue(now)
	return r
}

// StatusRecipient is the user told about generic stage changes: the assignee when there is one,
// otherwise the requester.
func (r *MaintenanceRequest) StatusRecipient() string {
	if r.AssignedToUserID.Valid && r.AssignedToUserID.String != "" {
		return r.AssignedToUserID.String
	}
	return r.RequestedByUserID
}

// TargetsEquipment is true when the request is attached to a piece of equipment.
func (r *MaintenanceRequest) TargetsEquipment() bool {
	return r.EquipmentID != ""
}
