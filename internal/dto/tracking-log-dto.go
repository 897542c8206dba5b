package dto

// CreateTrackingLogDTO is the body of POST /api/tracking-logs. CreatedBy is the authenticated
// user unless an admin or manager names someone else.
type CreateTrackingLogDTO struct {
	RequestID   string `json:"requestId" validate:"required"`
	Description string `json:"description" validate:"required"`
	CreatedBy   string `json:"createdBy"`
}
