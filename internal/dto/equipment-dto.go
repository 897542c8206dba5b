package dto

import "gearguard/internal/entities"

type CreateEquipmentDTO struct {
	Name              string  `json:"name" validate:"required"`
	SerialNumber      string  `json:"serialNumber" validate:"required"`
	Category          string  `json:"category"`
	DepartmentID      string  `json:"departmentId"`
	AssignedToUserID  *string `json:"assignedToUserId,omitempty"`
	PurchaseDate      *string `json:"purchaseDate,omitempty" validate:"omitempty,iso_date"`
	WarrantyExpiry    *string `json:"warrantyExpiry,omitempty" validate:"omitempty,iso_date"`
	Location          string  `json:"location"`
	MaintenanceTeamID string  `json:"maintenanceTeamId"`
	Status            string  `json:"status" validate:"omitempty,equipment_status"`
	Notes             *string `json:"notes,omitempty"`
}

type UpdateEquipmentDTO struct {
	Name              *string `json:"name,omitempty" validate:"omitempty,min=1"`
	SerialNumber      *string `json:"serialNumber,omitempty" validate:"omitempty,min=1"`
	Category          *string `json:"category,omitempty"`
	DepartmentID      *string `json:"departmentId,omitempty"`
	AssignedToUserID  *string `json:"assignedToUserId,omitempty"`
	PurchaseDate      *string `json:"purchaseDate,omitempty" validate:"omitempty,iso_date"`
	WarrantyExpiry    *string `json:"warrantyExpiry,omitempty" validate:"omitempty,iso_date"`
	Location          *string `json:"location,omitempty"`
	MaintenanceTeamID *string `json:"maintenanceTeamId,omitempty"`
	Status            *string `json:"status,omitempty" validate:"omitempty,equipment_status"`
	Notes             *string `json:"notes,omitempty"`
}

// EquipmentHistoryDTO is everything known about one piece of equipment.
type EquipmentHistoryDTO struct {
	Equipment             *entities.Equipment           `json:"equipment"`
	Requests              []entities.MaintenanceRequest `json:"requests"`
	TrackingLogs          []entities.TrackingLog        `json:"trackingLogs"`
	Requirements          []entities.Requirement        `json:"requirements"`
	OpenIssues            int                           `json:"openIssues"`
	TotalMaintenanceCount int                           `json:"totalMaintenanceCount"`
	LastMaintenanceDate   *string                       `json:"lastMaintenanceDate"`
}
