package events

import "gearguard/internal/entities"

const NotificationCreated = "notification.created"

// NotificationCreatedEvent is published after a notification has been stored.
type NotificationCreatedEvent struct {
	Notification entities.Notification
}

// Name implements eventbus.Event.
func (e NotificationCreatedEvent) Name() string {
	return NotificationCreated
}
