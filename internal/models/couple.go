package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Couple is the pairing of exactly two users. Its ID doubles as the realtime
// room identifier: every broadcast is scoped to one CoupleID.
type Couple struct {
	ID            string     `gorm:"primaryKey" json:"id"`
	LastMessageAt *time.Time `json:"lastMessageAt"`

	ThemeID *uint          `json:"themeId"`
	Theme   *ThemeTemplate `gorm:"foreignKey:ThemeID" json:"theme,omitempty"`
	Users   []User         `gorm:"foreignKey:CoupleID" json:"users,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func (c *Couple) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}
