package model

import (
	"time"
)

// Assignment is a claim on a wish. The unique index on WishID is what makes
// "at most one claim per wish" hold under concurrent requests; everything
// above it only decides which error to report.
//
// AssignedBy is nullable: a NULL claimer records a gift promised by someone
// outside the app (a grandparent without an account). An external claim has
// no owner, so unclaim never matches it; it only goes away with the wish.
type Assignment struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	WishID     uint      `gorm:"not null;uniqueIndex:idx_assignments_wish_id" json:"wish_id"`
	AssignedBy *uint     `gorm:"index" json:"assigned_by"`
	CreatedAt  time.Time `json:"created_at"`

	Wish    *Wish `gorm:"foreignKey:WishID" json:"wish,omitempty"`
	Claimer *User `gorm:"foreignKey:AssignedBy" json:"claimer,omitempty"`
}

func (Assignment) TableName() string {
	return "assignments"
}

// IsExternal reports whether the claim was recorded on behalf of someone
// outside the app.
func (a *Assignment) IsExternal() bool {
	return a.AssignedBy == nil
}
