package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/shopspring/decimal"
)

type WorkCenter struct {
	ID                string              `json:"id"`
	Name              string              `json:"name"`
	Cost              decimal.NullDecimal `json:"cost"`
	CostPerHour       decimal.NullDecimal `json:"costPerHour"`
	AllocatedManHours null.Float64        `json:"allocatedManHours"`
	Description       null.String         `json:"description"`
	CreatedAt         time.Time           `json:"createdAt"`
}
