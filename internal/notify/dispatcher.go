package notify

import (
	"context"
	"log"
	"time"

	"duetchat/backend/internal/models"
)

// Directory resolves couple members; satisfied by storage.Store.
type Directory interface {
	GetPartner(coupleID, excludeUserID string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
}

const dispatchTimeout = 10 * time.Second

// Dispatcher is the offline-notification fallback path. Every failure inside
// Dispatch is logged and swallowed: by the time it runs the message is already
// persisted and broadcast, so notification trouble must not surface to the
// sender.
type Dispatcher struct {
	Directory Directory
	Notifier  Notifier
}

func NewDispatcher(dir Directory, notifier Notifier) *Dispatcher {
	return &Dispatcher{Directory: dir, Notifier: notifier}
}

// Dispatch resolves the sender's partner and pushes a type-specific summary to
// their registered device. A partner without a push token is a silent no-op.
func (d *Dispatcher) Dispatch(coupleID, senderID string, msgType models.MessageType, content string) {
	partner, err := d.Directory.GetPartner(coupleID, senderID)
	if err != nil {
		log.Printf("Failed to resolve partner for couple %s: %v", coupleID, err)
		return
	}
	if partner == nil || partner.FcmToken == "" {
		return
	}

	title := fallbackSenderName
	if sender, err := d.Directory.GetUserByID(senderID); err != nil {
		log.Printf("Failed to resolve sender %s: %v", senderID, err)
	} else if sender != nil && sender.FullName != "" {
		title = sender.FullName
	}

	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	body := summaryFor(msgType, content)
	data := map[string]string{
		"type":     string(msgType),
		"senderId": senderID,
		"coupleId": coupleID,
	}
	if err := d.Notifier.Send(ctx, partner.FcmToken, title, body, data); err != nil {
		log.Printf("Failed to send offline notification for couple %s: %v", coupleID, err)
	}
}
