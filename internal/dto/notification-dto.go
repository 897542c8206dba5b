package dto

// CreateNotificationDTO lets an administrator post a notification by hand, typically a system_alert.
type CreateNotificationDTO struct {
	UserID      string `json:"userId" validate:"required"`
	Type        string `json:"type" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Message     string `json:"message" validate:"required"`
	RelatedID   string `json:"relatedId"`
	RelatedType string `json:"relatedType" validate:"omitempty,oneof=request equipment user"`
}

type UnreadCountDTO struct {
	UserID string `json:"userId"`
	Count  int    `json:"count"`
}
