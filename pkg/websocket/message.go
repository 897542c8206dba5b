package websocket

import "time"

// Envelope wraps every message sent to the browser; Type tells the dashboard how to read Payload.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

const MessageTypeNotification = "notification"
