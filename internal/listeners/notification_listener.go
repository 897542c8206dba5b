package listeners

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"gearguard/internal/events"
	"gearguard/internal/services"
	"gearguard/pkg/eventbus"
	"gearguard/pkg/metrics"
	"gearguard/pkg/websocket"
)

// NotificationListener pushes stored notifications to the recipient's open websocket sessions.
type NotificationListener struct {
	wsNotificationService services.WebSocketNotificationServiceInterface
	logger                *zap.Logger
}

func NewNotificationListener(
	wsNotificationService services.WebSocketNotificationServiceInterface,
	logger *zap.Logger,
) *NotificationListener {
	return &NotificationListener{
		wsNotificationService: wsNotificationService,
		logger:                logger,
	}
}

func (l *NotificationListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.NotificationCreated, l.handleNotificationCreated)
	l.logger.Info("NotificationListener subscribed", zap.String("event", events.NotificationCreated))
}

func (l *NotificationListener) handleNotificationCreated(ctx context.Context, e eventbus.Event) error {
	event, ok := e.(events.NotificationCreatedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", e)
	}
	n := event.Notification

	delivered, err := l.wsNotificationService.SendNotification(n.UserID, n, websocket.MessageTypeNotification)
	if err != nil {
		metrics.NotificationPush("error")
		return fmt.Errorf("push notification %s: %w", n.ID, err)
	}
	if delivered == 0 {
		metrics.NotificationPush("offline")
		return nil
	}
	metrics.NotificationPush("delivered")
	l.logger.Debug("notification pushed",
		zap.String("notificationId", n.ID),
		zap.String("userId", n.UserID),
		zap.Int("sessions", delivered),
	)
	return nil
}
