package models

import (
	"time"

	"gorm.io/gorm"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusRejected  BookingStatus = "rejected"
	StatusCompleted BookingStatus = "completed"
)

// Participant carries the user fields exposed on booking responses
type Participant struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Booking represents a scheduled mentorship session between one mentor and one mentee
type Booking struct {
	ID              string        `json:"id" gorm:"primaryKey"`
	MenteeID        string        `json:"-" gorm:"column:mentee_id;index;not null"`
	MentorID        string        `json:"-" gorm:"column:mentor_id;index;not null"`
	Mentee          Participant   `json:"mentee" gorm:"-"`
	Mentor          Participant   `json:"mentor" gorm:"-"`
	SessionDate     time.Time     `json:"sessionDate" gorm:"column:session_date;not null"`
	SessionTimeSlot string        `json:"sessionTimeSlot" gorm:"column:session_time_slot;not null"`
	Status          BookingStatus `json:"status" gorm:"not null;default:'pending'"`
	UserMessage     string        `json:"userMessage" gorm:"column:user_message"`
	HasBeenReviewed bool          `json:"hasBeenReviewed" gorm:"column:has_been_reviewed;default:false"`
	gorm.Model
}

// TableName specifies the table name for Booking Model
func (Booking) TableName() string {
	return "bookings"
}

// IsParticipant reports whether the given user is the mentor or the mentee of this booking.
func (b *Booking) IsParticipant(userID string) bool {
	return userID == b.MenteeID || userID == b.MentorID
}
