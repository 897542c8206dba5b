package entities

import "time"

// TrackingLog is an append-only progress note on a request.
type TrackingLog struct {
	ID          string    `json:"id"`
	RequestID   string    `json:"requestId"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
}
