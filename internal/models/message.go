package models

import (
	"time"
)

// Sender carries the user fields exposed on chat history responses
type Sender struct {
	ID   string `json:"_id"`
	Name string `json:"name,omitempty"`
}

// Message represents one durable chat message scoped to a booking.
// Messages are never mutated or deleted by this subsystem.
type Message struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	BookingID  string    `json:"booking" gorm:"column:booking_id;index;not null"`
	SenderID   string    `json:"-" gorm:"column:sender_id;not null"`
	ReceiverID string    `json:"-" gorm:"column:receiver_id;not null"`
	Sender     Sender    `json:"sender" gorm:"-"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt" gorm:"index"`
}

// TableName specifies the table name for Message Model
func (Message) TableName() string {
	return "messages"
}
