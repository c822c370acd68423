package models

import "gorm.io/gorm"

// MessageType distinguishes text messages from the media kinds that carry an
// uploaded file behind Content.
type MessageType string

const (
	MessageTypeText  MessageType = "TEXT"
	MessageTypeImage MessageType = "IMAGE"
	MessageTypeVideo MessageType = "VIDEO"
	MessageTypeAudio MessageType = "AUDIO"
)

// MessageStatus tracks delivery state. A message is SENT on creation and moves
// to READ exactly once, through a read receipt from the other member.
type MessageStatus string

const (
	MessageStatusSent MessageStatus = "SENT"
	MessageStatusRead MessageStatus = "READ"
)

// Message is a persisted chat message. The embedded gorm.Model supplies the
// numeric ID and CreatedAt used for read-receipt ordering.
type Message struct {
	gorm.Model

	CoupleID string        `gorm:"type:uuid;not null;index:idx_couple_msg" json:"coupleId"`
	SenderID string        `gorm:"type:uuid;not null;index:idx_couple_msg" json:"senderId"`
	Content  string        `gorm:"type:text;not null" json:"content"`
	Type     MessageType   `gorm:"type:text;not null;default:TEXT" json:"type"`
	Status   MessageStatus `gorm:"type:text;not null;default:SENT" json:"status"`

	// DriveFileID references the stored object for media messages.
	DriveFileID *string `gorm:"type:text" json:"driveFileId,omitempty"`

	// Denormalized reply reference, carried on the message itself so history
	// pages render replies without extra lookups.
	ReplyToID       *uint   `gorm:"index" json:"replyToId,omitempty"`
	ReplyToContent  *string `gorm:"type:text" json:"replyToContent,omitempty"`
	ReplyToSenderID *string `gorm:"type:uuid" json:"replyToSenderId,omitempty"`
	ReplyToType     *string `gorm:"type:text" json:"replyToType,omitempty"`
}
