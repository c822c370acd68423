// Package notify delivers offline push notifications when a message recipient
// is not present in the room at send time.
package notify

import (
	"context"

	"duetchat/backend/internal/models"
)

// Notifier sends a single push notification. Implementations never retry;
// a failure is terminal for that one delivery attempt.
type Notifier interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}

// fallbackSenderName is used as the notification title when the sender's
// profile cannot be resolved.
const fallbackSenderName = "Partner"

// Media messages push a fixed placeholder instead of their content, which for
// media is a storage URL.
func summaryFor(msgType models.MessageType, content string) string {
	switch msgType {
	case models.MessageTypeImage:
		return "📷 Sent a photo"
	case models.MessageTypeVideo:
		return "🎥 Sent a video"
	case models.MessageTypeAudio:
		return "🎤 Sent a voice message"
	default:
		return content
	}
}
