package services

import (
	"go.uber.org/zap"

	"gearguard/pkg/websocket"
)

type WebSocketNotificationServiceInterface interface {
	// SendNotification pushes payload to every open connection of userID and returns how many got it.
	SendNotification(userID string, payload interface{}, messageType string) (int, error)
}

type WebSocketNotificationService struct {
	hub    *websocket.Hub
	logger *zap.Logger
}

func NewWebSocketNotificationService(hub *websocket.Hub, logger *zap.Logger) WebSocketNotificationServiceInterface {
	return &WebSocketNotificationService{
		hub:    hub,
		logger: logger,
	}
}

func (s *WebSocketNotificationService) SendNotification(userID string, payload interface{}, messageType string) (int, error) {
	s.logger.Debug("websocket push",
		zap.String("userId", userID),
		zap.String("type", messageType),
	)
	return s.hub.SendMessageToUser(userID, payload, messageType)
}
