package model

import (
	"time"

	"gorm.io/gorm"
)

// User is a family member. Members are created by the seed command from the
// allowlist, never through the API, and the API only ever mutates AvatarURL.
type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"` // stored lowercase
	Name      string         `gorm:"not null" json:"name"`
	AvatarURL *string        `json:"avatar_url"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Wishes []Wish `gorm:"foreignKey:UserID" json:"wishes,omitempty"`
}

func (User) TableName() string {
	return "users"
}
