package dto

import "gearguard/internal/entities"

// CreateRequestDTO is the body of POST /api/requests. RequestedByUserID is the authenticated
// user unless an admin or manager names someone else.
type CreateRequestDTO struct {
	Subject           string   `json:"subject" validate:"required"`
	Description       *string  `json:"description,omitempty"`
	Type              string   `json:"type" validate:"required,request_type"`
	EquipmentID       string   `json:"equipmentId"`
	RequestedByUserID string   `json:"requestedByUserId"`
	AssignedToUserID  *string  `json:"assignedToUserId,omitempty"`
	TeamID            string   `json:"teamId"`
	ScheduledDate     *string  `json:"scheduledDate,omitempty" validate:"omitempty,iso_date"`
	Priority          string   `json:"priority" validate:"omitempty,priority"`
	Category          string   `json:"category"`
	WorkCenterID      *string  `json:"workCenterId,omitempty"`
	DurationHours     *float64 `json:"durationHours,omitempty" validate:"omitempty,gte=0"`
	Notes             string   `json:"notes"`
}

// UpdateRequestDTO replaces every non-nil field. An empty string clears an optional field.
type UpdateRequestDTO struct {
	Subject           *string  `json:"subject,omitempty" validate:"omitempty,min=1"`
	Description       *string  `json:"description,omitempty"`
	Type              *string  `json:"type,omitempty" validate:"omitempty,request_type"`
	EquipmentID       *string  `json:"equipmentId,omitempty"`
	RequestedByUserID *string  `json:"requestedByUserId,omitempty"`
	AssignedToUserID  *string  `json:"assignedToUserId,omitempty"`
	TeamID            *string  `json:"teamId,omitempty"`
	Stage             *string  `json:"stage,omitempty" validate:"omitempty,request_stage"`
	Priority          *string  `json:"priority,omitempty" validate:"omitempty,priority"`
	Category          *string  `json:"category,omitempty"`
	WorkCenterID      *string  `json:"workCenterId,omitempty"`
	ScheduledDate     *string  `json:"scheduledDate,omitempty" validate:"omitempty,iso_date"`
	CompletedDate     *string  `json:"completedDate,omitempty" validate:"omitempty,iso_date"`
	DurationHours     *float64 `json:"durationHours,omitempty" validate:"omitempty,gte=0"`
	Notes             *string  `json:"notes,omitempty"`
}

type AssignRequestDTO struct {
	// Empty unassigns.
	UserID string `json:"userId"`
}

type TransitionStageDTO struct {
	Stage string `json:"stage" validate:"required"`
}

// KanbanMoveDTO is the body of PUT /api/kanban.
type KanbanMoveDTO struct {
	RequestID        string  `json:"requestId" validate:"required"`
	NewStage         string  `json:"newStage" validate:"required"`
	AssignedToUserID *string `json:"assignedToUserId,omitempty"`
}

// KanbanBoardDTO groups requests by stage.
type KanbanBoardDTO struct {
	New        []entities.MaintenanceRequest `json:"new"`
	InProgress []entities.MaintenanceRequest `json:"inProgress"`
	Repaired   []entities.MaintenanceRequest `json:"repaired"`
	Scrap      []entities.MaintenanceRequest `json:"scrap"`
}

// CalendarEventDTO is one preventive request placed on the calendar as an all-day event.
type CalendarEventDTO struct {
	ID               string                `json:"id"`
	Title            string                `json:"title"`
	Start            string                `json:"start"`
	End              string                `json:"end"`
	AllDay           bool                  `json:"allDay"`
	Stage            entities.RequestStage `json:"stage"`
	Type             entities.RequestType  `json:"type"`
	EquipmentID      string                `json:"equipmentId"`
	TeamID           string                `json:"teamId"`
	AssignedToUserID *string               `json:"assignedToUserId"`
	Priority         entities.Priority     `json:"priority"`
	IsOverdue        bool                  `json:"isOverdue"`
}
