package models

import "gorm.io/gorm"

// ThemeTemplate is a stock chat theme a couple can apply to their room.
// Background is one of a flat color, a two-stop gradient, or an image.
type ThemeTemplate struct {
	gorm.Model

	Name           string `gorm:"uniqueIndex;not null" json:"name"`
	BackgroundType string `gorm:"type:text;not null" json:"backgroundType"` // COLOR, GRADIENT, IMAGE

	BackgroundColor    string `gorm:"type:text" json:"backgroundColor,omitempty"`
	BackgroundImageURL string `gorm:"type:text" json:"backgroundImageUrl,omitempty"`
	GradientStartColor string `gorm:"type:text" json:"gradientStartColor,omitempty"`
	GradientEndColor   string `gorm:"type:text" json:"gradientEndColor,omitempty"`
	GradientAngle      int    `json:"gradientAngle,omitempty"`

	SenderBubbleColor   string `gorm:"type:text" json:"senderBubbleColor"`
	ReceiverBubbleColor string `gorm:"type:text" json:"receiverBubbleColor"`
	SenderTextColor     string `gorm:"type:text" json:"senderTextColor"`
	ReceiverTextColor   string `gorm:"type:text" json:"receiverTextColor"`
	AccentColor         string `gorm:"type:text" json:"accentColor"`
}
