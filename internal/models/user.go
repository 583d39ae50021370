package models

import (
	"gorm.io/gorm"
)

// UserRole represents the marketplace role of an account
type UserRole string

const (
	RoleMentee UserRole = "mentee"
	RoleMentor UserRole = "mentor"
)

// AuthProvider represents how the account was created
type AuthProvider string

const (
	ProviderCredentials AuthProvider = "credentials"
	ProviderGoogle      AuthProvider = "google"
	ProviderGithub      AuthProvider = "github"
)

// SocialLinks holds optional profile links
type SocialLinks struct {
	LinkedIn string `json:"linkedIn"`
	Twitter  string `json:"twitter"`
	Github   string `json:"github"`
}

// TimeSlot is a single availability window, e.g. {start: "10:00", end: "10:30"}
type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AvailabilityDay lists a mentor's open slots for one weekday
type AvailabilityDay struct {
	Day   string     `json:"day"`
	Slots []TimeSlot `json:"slots"`
}

// User represents an account in the system (mentor or mentee)
type User struct {
	ID            string            `json:"id" gorm:"primaryKey"`
	Name          string            `json:"name" gorm:"not null"`
	Email         string            `json:"email" gorm:"unique;not null;index"`
	Password      string            `json:"-"`
	AuthProvider  AuthProvider      `json:"authProvider" gorm:"column:auth_provider;default:'credentials'"`
	ProviderID    string            `json:"-" gorm:"column:provider_id"`
	Role          UserRole          `json:"role" gorm:"default:'mentee';index"`
	Avatar        string            `json:"avatar"`
	Bio           string            `json:"bio"`
	Title         string            `json:"title"`
	SocialLinks   SocialLinks       `json:"socialLinks" gorm:"column:social_links;serializer:json"`
	LearningGoals []string          `json:"learningGoals" gorm:"column:learning_goals;serializer:json"`
	Expertise     []string          `json:"expertise" gorm:"serializer:json"`
	Availability  []AvailabilityDay `json:"availability" gorm:"serializer:json"`
	gorm.Model
}

// TableName specifies the table name for User Model
func (User) TableName() string {
	return "users"
}
