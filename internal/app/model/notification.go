package model

import (
	"time"

	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationTypeNewWish NotificationType = "new_wish"
)

// Notification is one row per member per event, marked read per member.
type Notification struct {
	ID        uint             `gorm:"primarykey" json:"id"`
	UserID    uint             `gorm:"not null;index" json:"user_id"`
	Type      NotificationType `gorm:"type:varchar(50);not null;index" json:"type"`
	Title     string           `gorm:"type:text;not null" json:"title"`
	Message   string           `gorm:"type:text;not null" json:"message"`
	Link      *string          `gorm:"type:text" json:"link"`
	ReadAt    *time.Time       `gorm:"index" json:"read_at"`
	CreatedAt time.Time        `json:"created_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}

// UserPreferences holds per-member settings. The row is created lazily with
// defaults the first time settings are read.
type UserPreferences struct {
	ID                        uint      `gorm:"primarykey" json:"id"`
	UserID                    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	EmailNotificationsEnabled bool      `gorm:"default:true" json:"email_notifications_enabled"`
	CreatedAt                 time.Time `json:"created_at"`
	UpdatedAt                 time.Time `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (UserPreferences) TableName() string {
	return "user_preferences"
}
