package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

type Equipment struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	SerialNumber      string          `json:"serialNumber"`
	Category          string          `json:"category"`
	DepartmentID      string          `json:"departmentId"`
	AssignedToUserID  null.String     `json:"assignedToUserId"`
	PurchaseDate      null.Time       `json:"purchaseDate"`
	WarrantyExpiry    null.Time       `json:"warrantyExpiry"`
	Location          string          `json:"location"`
	MaintenanceTeamID string          `json:"maintenanceTeamId"`
	Status            EquipmentStatus `json:"status"`
	Notes             null.String     `json:"notes"`
	ScrapDate         null.Time       `json:"scrapDate"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

func (e *Equipment) IsScrapped() bool {
	return e.Status == EquipmentScrapped
}
