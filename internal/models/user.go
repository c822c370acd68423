package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered account. A user belongs to at most one couple;
// CoupleID stays nil until pairing completes.
type User struct {
	ID         string  `gorm:"primaryKey" json:"id"`
	Email      string  `gorm:"uniqueIndex;not null" json:"email"`
	FullName   string  `gorm:"type:text" json:"fullName"`
	CoupleID   *string `gorm:"type:uuid;index" json:"coupleId"`
	FcmToken   string  `gorm:"type:text" json:"-"`
	ProfilePic string  `gorm:"type:text" json:"profilePic"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

// BeforeCreate is a GORM hook that assigns a fresh UUID when the ID is unset.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
