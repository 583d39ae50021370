package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"skillsync-api/internal/database"
	"skillsync-api/internal/middleware"
	"skillsync-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateBookingRequest represents the request payload for a new session request
type CreateBookingRequest struct {
	MentorID        string    `json:"mentorId" binding:"required"`
	SessionDate     time.Time `json:"sessionDate" binding:"required"`
	SessionTimeSlot string    `json:"sessionTimeSlot" binding:"required"`
	UserMessage     string    `json:"userMessage"`
}

// UpdateBookingStatusRequest represents a status change request
type UpdateBookingStatusRequest struct {
	Status models.BookingStatus `json:"status" binding:"required,oneof=pending confirmed rejected completed"`
}

// enrichParticipants fills the mentee/mentor response fields from the users table.
func enrichParticipants(db *gorm.DB, bookings []models.Booking) {
	ids := make([]string, 0, len(bookings)*2)
	for _, b := range bookings {
		ids = append(ids, b.MenteeID, b.MentorID)
	}

	var users []models.User
	if err := db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return
	}
	userByID := make(map[string]models.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}

	for i := range bookings {
		if u, ok := userByID[bookings[i].MenteeID]; ok {
			bookings[i].Mentee = models.Participant{ID: u.ID, Name: u.Name, Email: u.Email}
		}
		if u, ok := userByID[bookings[i].MentorID]; ok {
			bookings[i].Mentor = models.Participant{ID: u.ID, Name: u.Name, Email: u.Email}
		}
	}
}

// CreateBooking handles POST /api/bookings
// Creates a session request from the authenticated mentee to a mentor, then
// notifies the mentor's live connection if they are online. The notification
// is best-effort; the booking itself is always retrievable over HTTP.
func CreateBooking(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking := models.Booking{
		ID:              uuid.NewString(),
		MenteeID:        user.ID,
		MentorID:        req.MentorID,
		SessionDate:     req.SessionDate,
		SessionTimeSlot: req.SessionTimeSlot,
		Status:          models.StatusPending,
		UserMessage:     req.UserMessage,
	}

	if err := database.GetDB().Create(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}

	booking.Mentee = models.Participant{ID: user.ID, Name: user.Name, Email: user.Email}

	evt := map[string]any{
		"type":    "newBookingRequest",
		"message": "You have a new session request from " + user.Name,
		"booking": booking,
	}
	if bytes, err := json.Marshal(evt); err == nil {
		Hub.SendToUser(req.MentorID, bytes)
	}

	c.JSON(http.StatusCreated, booking)
}

// GetMyBookings handles GET /api/bookings
// Returns bookings where the authenticated user is the mentee or the mentor
func GetMyBookings(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	db := database.GetDB()
	var bookings []models.Booking
	result := db.Where("mentee_id = ? OR mentor_id = ?", userID, userID).
		Order("created_at desc").
		Find(&bookings)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	enrichParticipants(db, bookings)

	c.JSON(http.StatusOK, bookings)
}

// UpdateBookingStatus handles PUT /api/bookings/:id
// Moves a booking through its lifecycle (confirm/reject/complete). Either
// participant may update; everyone else gets 401.
func UpdateBookingStatus(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	bookingID := c.Param("id")
	if bookingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Booking ID is required"})
		return
	}

	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := database.GetDB()
	var booking models.Booking
	result := db.Where("id = ?", bookingID).First(&booking)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch booking"})
		}
		return
	}

	if !booking.IsParticipant(userID) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authorized to update this booking"})
		return
	}

	booking.Status = req.Status
	if err := db.Model(&booking).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	enriched := []models.Booking{booking}
	enrichParticipants(db, enriched)

	c.JSON(http.StatusOK, enriched[0])
}
