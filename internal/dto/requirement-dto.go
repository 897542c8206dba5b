package dto

import "github.com/shopspring/decimal"

type SubmitRequirementDTO struct {
	RequestID   string           `json:"requestId" validate:"required"`
	SubmittedBy string           `json:"submittedBy"`
	Products    []string         `json:"products" validate:"required,min=1,dive,required"`
	Pricing     *decimal.Decimal `json:"pricing,omitempty"`
	Notes       string           `json:"notes"`
}

type ReviewRequirementDTO struct {
	Status string `json:"status" validate:"required,requirement_status"`
}
