package models

import (
	"gorm.io/gorm"
)

// Reviewer carries the mentee fields exposed on review listings
type Reviewer struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Review represents a mentee's rating of a completed booking
type Review struct {
	ID        string   `json:"id" gorm:"primaryKey"`
	BookingID string   `json:"booking" gorm:"column:booking_id;index;not null"`
	MentorID  string   `json:"mentor" gorm:"column:mentor_id;index;not null"`
	MenteeID  string   `json:"-" gorm:"column:mentee_id;not null"`
	Mentee    Reviewer `json:"mentee" gorm:"-"`
	Rating    int      `json:"rating" gorm:"not null"`
	Comment   string   `json:"comment"`
	gorm.Model
}

// TableName specifies the table name for Review Model
func (Review) TableName() string {
	return "reviews"
}
