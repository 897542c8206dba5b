package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/shopspring/decimal"
)

// Requirement is a technician's parts and cost submission for a request.
type Requirement struct {
	ID          string              `json:"id"`
	RequestID   string              `json:"requestId"`
	SubmittedBy string              `json:"submittedBy"`
	Pricing     decimal.NullDecimal `json:"pricing"`
	Products    []string            `json:"products"`
	Notes       string              `json:"notes"`
	Status      RequirementStatus   `json:"status"`
	SubmittedAt time.Time           `json:"submittedAt"`
	ApprovedAt  null.Time           `json:"approvedAt"`
}
