package dto

import "github.com/shopspring/decimal"

type CreateWorkCenterDTO struct {
	Name              string           `json:"name" validate:"required"`
	Cost              *decimal.Decimal `json:"cost,omitempty"`
	CostPerHour       *decimal.Decimal `json:"costPerHour,omitempty"`
	AllocatedManHours *float64         `json:"allocatedManHours,omitempty" validate:"omitempty,gte=0"`
	Description       *string          `json:"description,omitempty"`
}

type UpdateWorkCenterDTO struct {
	Name              *string          `json:"name,omitempty" validate:"omitempty,min=1"`
	Cost              *decimal.Decimal `json:"cost,omitempty"`
	CostPerHour       *decimal.Decimal `json:"costPerHour,omitempty"`
	AllocatedManHours *float64         `json:"allocatedManHours,omitempty" validate:"omitempty,gte=0"`
	Description       *string          `json:"description,omitempty"`
}
