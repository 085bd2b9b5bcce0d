package model

import (
	"time"
)

// SurpriseGift is a gift commitment that is not tied to any wish. It is
// visible to the whole family except the recipient.
type SurpriseGift struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	GiverID     uint      `gorm:"not null;index" json:"giver_id"`
	RecipientID uint      `gorm:"not null;index" json:"recipient_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description *string   `json:"description"`
	URL         *string   `json:"url"`
	CreatedAt   time.Time `json:"created_at"`

	Giver     *User `gorm:"foreignKey:GiverID" json:"giver,omitempty"`
	Recipient *User `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}

func (SurpriseGift) TableName() string {
	return "surprise_gifts"
}
