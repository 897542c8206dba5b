package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

type EquipmentCategory struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description null.String `json:"description"`
	Responsible null.String `json:"responsible"`
	CreatedAt   time.Time   `json:"createdAt"`
}
