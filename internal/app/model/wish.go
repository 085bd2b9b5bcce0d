package model

import (
	"time"

	"gorm.io/gorm"
)

type WishPriority int

const (
	PriorityLow    WishPriority = 1
	PriorityMedium WishPriority = 2
	PriorityHigh   WishPriority = 3
)

type Wish struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"` // owner
	Title       string         `gorm:"not null" json:"title"`
	Description *string        `json:"description"`
	URL         *string        `json:"url"`
	Priority    WishPriority   `gorm:"not null;default:2" json:"priority"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	User       *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Assignment *Assignment `gorm:"foreignKey:WishID" json:"assignment,omitempty"`
}

func (Wish) TableName() string {
	return "wishes"
}

// AnnotatedWish is a wish decorated with its claim state for a specific
// viewer. It is what the family page renders its buttons from.
type AnnotatedWish struct {
	Wish
	IsAssigned           bool `json:"is_assigned"`
	AssignedByMe         bool `json:"assigned_by_me"`
	IsExternalAssignment bool `json:"is_external_assignment"`
}
