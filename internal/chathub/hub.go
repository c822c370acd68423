// Package chathub is the presence and realtime broadcast gateway. It tracks
// which connections belong to which couple room, fans events out to room
// members, and decides when a message has to fall back to a push notification.
package chathub

import (
	"errors"
	"fmt"
	"log"

	"duetchat/backend/internal/models"
	"duetchat/backend/internal/storage"
)

// Dispatcher is the offline-notification fallback, satisfied by
// notify.Dispatcher. Implementations swallow their own errors.
type Dispatcher interface {
	Dispatch(coupleID, senderID string, msgType models.MessageType, content string)
}

// ErrInvalidPayload rejects malformed client events (missing coupleId/userId)
// before they touch storage or the room.
var ErrInvalidPayload = errors.New("coupleId and userId are required")

// placeholderPartnerID identifies the partner in a status answer when no
// partner session has ever been seen for the room.
const placeholderPartnerID = "partner"

// Hub wires the session registry, the message store and the fallback
// dispatcher together. Handlers run on the calling connection's goroutine;
// all shared state lives behind the registry's lock.
type Hub struct {
	registry   *Registry
	store      storage.Store
	dispatcher Dispatcher
}

func NewHub(store storage.Store, dispatcher Dispatcher) *Hub {
	return &Hub{
		registry:   NewRegistry(),
		store:      store,
		dispatcher: dispatcher,
	}
}

// Register makes a freshly upgraded connection known to the hub.
func (h *Hub) Register(c Client) {
	h.registry.Register(c)
	log.Printf("Client connected: %s", c.ID())
}

// HandleDisconnect tears the connection down. If it held the user's last
// session in a room, the remaining member sees the user go offline.
func (h *Hub) HandleDisconnect(c Client) {
	sess, wentOffline, had := h.registry.Leave(c.ID())
	h.registry.Unregister(c.ID())
	c.Close()

	if had && wentOffline {
		h.broadcast(sess.CoupleID, models.ServerEvent{
			Event: models.EventPartnerStatus,
			Data:  models.PartnerStatusPayload{UserID: sess.UserID, Status: models.StatusOffline},
		})
	}
	log.Printf("Client disconnected: %s", c.ID())
}

// HandleJoin places the connection into its couple's room. Re-joining the same
// room is idempotent; joining a different room first releases the old session.
func (h *Hub) HandleJoin(c Client, p models.JoinRoomPayload) error {
	if p.CoupleID == "" || p.UserID == "" {
		return ErrInvalidPayload
	}

	if prev, ok := h.registry.SessionOf(c.ID()); ok {
		if prev.UserID == p.UserID && prev.CoupleID == p.CoupleID {
			return nil
		}
		old, wentOffline, _ := h.registry.Leave(c.ID())
		if wentOffline {
			h.broadcast(old.CoupleID, models.ServerEvent{
				Event: models.EventPartnerStatus,
				Data:  models.PartnerStatusPayload{UserID: old.UserID, Status: models.StatusOffline},
			})
		}
	}

	cameOnline, ok := h.registry.Join(c.ID(), p.UserID, p.CoupleID)
	if !ok {
		return errors.New("connection is not registered")
	}
	if cameOnline {
		h.broadcast(p.CoupleID, models.ServerEvent{
			Event: models.EventPartnerStatus,
			Data:  models.PartnerStatusPayload{UserID: p.UserID, Status: models.StatusOnline},
		})
	}
	log.Printf("User %s joined room %s", p.UserID, p.CoupleID)
	return nil
}

// HandleSend is the message ingress pipeline: persist, touch room activity,
// broadcast, then fall back to a push notification when the recipient is not
// reachable in-room. Persistence failure aborts before anything is broadcast.
func (h *Hub) HandleSend(p models.SendMessagePayload) (*models.Message, error) {
	if p.CoupleID == "" || p.SenderID == "" {
		return nil, ErrInvalidPayload
	}

	msg := &models.Message{
		CoupleID:        p.CoupleID,
		SenderID:        p.SenderID,
		Content:         p.Content,
		Type:            p.Type,
		ReplyToID:       p.ReplyToID,
		ReplyToContent:  p.ReplyToContent,
		ReplyToSenderID: p.ReplyToSenderID,
		ReplyToType:     p.ReplyToType,
	}
	if err := h.store.CreateMessage(msg); err != nil {
		return nil, fmt.Errorf("persist message: %w", err)
	}
	if err := h.store.TouchCouple(p.CoupleID, msg.CreatedAt); err != nil {
		log.Printf("Failed to update last activity for couple %s: %v", p.CoupleID, err)
	}

	h.publish(p.CoupleID, msg)
	return msg, nil
}

// publish broadcasts a persisted message and applies the offline fallback.
// Both members present means the partner already received the broadcast;
// anything less falls back to a push. This is a heuristic: it assumes a
// two-member couple and cannot see a backgrounded app.
func (h *Hub) publish(coupleID string, msg *models.Message) {
	h.broadcast(coupleID, models.ServerEvent{Event: models.EventNewMessage, Data: msg})

	if len(h.registry.OnlineUsers(coupleID)) < 2 {
		log.Printf("Partner offline in couple %s, dispatching push fallback", coupleID)
		h.dispatcher.Dispatch(coupleID, msg.SenderID, msg.Type, msg.Content)
	}
}

// HandleMarkRead applies a read receipt: every partner message up to and
// including lastMessageId becomes READ, then the room learns about it. An
// unresolvable lastMessageId is a silent no-op.
func (h *Hub) HandleMarkRead(p models.MarkAsReadPayload) error {
	if p.CoupleID == "" || p.UserID == "" {
		return ErrInvalidPayload
	}

	anchor, err := h.store.FindMessageByID(p.LastMessageID)
	if err != nil {
		return fmt.Errorf("resolve message %d: %w", p.LastMessageID, err)
	}
	if anchor == nil || anchor.CoupleID != p.CoupleID {
		return nil
	}

	if _, err := h.store.MarkMessagesRead(p.CoupleID, p.UserID, anchor.CreatedAt); err != nil {
		return fmt.Errorf("mark messages read: %w", err)
	}

	h.broadcast(p.CoupleID, models.ServerEvent{
		Event: models.EventMessagesRead,
		Data:  models.MessagesReadPayload{UserID: p.UserID, LastMessageID: p.LastMessageID},
	})
	return nil
}

// HandleTyping relays a typing indicator to everyone in the room except the
// connection that produced it.
func (h *Hub) HandleTyping(connID string, p models.TypingPayload, isTyping bool) {
	if p.CoupleID == "" || p.UserID == "" {
		return
	}
	h.broadcastExcept(p.CoupleID, models.ServerEvent{
		Event: models.EventPartnerTyping,
		Data:  models.PartnerTypingPayload{UserID: p.UserID, IsTyping: isTyping},
	}, connID)
}

// HandlePartnerStatus answers a point-in-time presence query on the asking
// connection only.
func (h *Hub) HandlePartnerStatus(connID string, p models.JoinRoomPayload) {
	status := models.PartnerStatusPayload{
		UserID: placeholderPartnerID,
		Status: models.StatusOffline,
	}
	for _, userID := range h.registry.OnlineUsers(p.CoupleID) {
		if userID != p.UserID {
			status = models.PartnerStatusPayload{UserID: userID, Status: models.StatusOnline}
			break
		}
	}
	h.emitTo(connID, models.ServerEvent{Event: models.EventPartnerStatus, Data: status})
}

// BroadcastNewMessage pushes an already-persisted message into the room. Used
// by the media upload endpoint, which persists through its own path; the
// offline fallback applies exactly as it does for realtime sends.
func (h *Hub) BroadcastNewMessage(coupleID string, msg *models.Message) {
	h.publish(coupleID, msg)
}

// BroadcastTheme re-broadcasts a theme change injected by the theme endpoint.
func (h *Hub) BroadcastTheme(coupleID string, theme *models.ThemeTemplate) {
	h.broadcast(coupleID, models.ServerEvent{Event: models.EventThemeChanged, Data: theme})
}

// OnlineUsers exposes the room's online set for handlers outside the hub.
func (h *Hub) OnlineUsers(coupleID string) []string {
	return h.registry.OnlineUsers(coupleID)
}

// broadcast delivers an event to every live connection in the room. A room
// with no members is a silent no-op. Delivery is fire-and-forget per target: a
// connection that is closed or has a saturated buffer is skipped, never
// waited on.
func (h *Hub) broadcast(coupleID string, ev models.ServerEvent) {
	for _, c := range h.registry.RoomClients(coupleID) {
		h.deliver(c, ev)
	}
}

func (h *Hub) broadcastExcept(coupleID string, ev models.ServerEvent, excludeConnID string) {
	for _, c := range h.registry.RoomClients(coupleID) {
		if c.ID() == excludeConnID {
			continue
		}
		h.deliver(c, ev)
	}
}

func (h *Hub) emitTo(connID string, ev models.ServerEvent) {
	if c, ok := h.registry.ClientByID(connID); ok {
		h.deliver(c, ev)
	}
}

func (h *Hub) deliver(c Client, ev models.ServerEvent) {
	if !c.Enqueue(ev) {
		log.Printf("Dropping %s event for unreachable client %s", ev.Event, c.ID())
	}
}
