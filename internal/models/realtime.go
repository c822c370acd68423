package models

import "encoding/json"

// Inbound event names, sent by clients over the websocket.
const (
	EventJoinRoom         = "joinRoom"
	EventSendMessage      = "sendMessage"
	EventTyping           = "typing"
	EventStopTyping       = "stopTyping"
	EventMarkAsRead       = "markAsRead"
	EventGetPartnerStatus = "getPartnerStatus"
)

// Outbound event names, emitted to clients.
const (
	EventNewMessage    = "newMessage"
	EventPartnerStatus = "partnerStatus"
	EventPartnerTyping = "partnerTyping"
	EventMessagesRead  = "messagesRead"
	EventThemeChanged  = "themeChanged"

	// EventError reports a failed inbound operation back to the connection
	// that issued it, with a {"message": string} payload. Never broadcast.
	EventError = "error"
)

// Presence states carried by partnerStatus events.
const (
	StatusOnline  = "ONLINE"
	StatusOffline = "OFFLINE"
)

// ClientEvent is the inbound websocket envelope. Data is decoded per event.
type ClientEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ServerEvent is the outbound websocket envelope.
type ServerEvent struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type JoinRoomPayload struct {
	CoupleID string `json:"coupleId"`
	UserID   string `json:"userId"`
}

type SendMessagePayload struct {
	CoupleID string      `json:"coupleId"`
	SenderID string      `json:"senderId"`
	Content  string      `json:"content"`
	Type     MessageType `json:"type"`

	ReplyToID       *uint   `json:"replyToId,omitempty"`
	ReplyToContent  *string `json:"replyToContent,omitempty"`
	ReplyToSenderID *string `json:"replyToSenderId,omitempty"`
	ReplyToType     *string `json:"replyToType,omitempty"`
}

type TypingPayload struct {
	CoupleID string `json:"coupleId"`
	UserID   string `json:"userId"`
}

type MarkAsReadPayload struct {
	CoupleID      string `json:"coupleId"`
	UserID        string `json:"userId"`
	LastMessageID uint   `json:"lastMessageId"`
}

type PartnerStatusPayload struct {
	UserID string `json:"userId"`
	Status string `json:"status"`
}

type PartnerTypingPayload struct {
	UserID   string `json:"userId"`
	IsTyping bool   `json:"isTyping"`
}

type MessagesReadPayload struct {
	UserID        string `json:"userId"`
	LastMessageID uint   `json:"lastMessageId"`
}
