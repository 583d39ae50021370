package handlers

import (
	"net/http"

	"skillsync-api/internal/database"
	"skillsync-api/internal/models"

	"github.com/gin-gonic/gin"
)

// GetMessages handles GET /api/chat/:bookingId
// Returns the booking's message history, oldest first, to match live-append
// order on the client.
func GetMessages(c *gin.Context) {
	bookingID := c.Param("bookingId")
	if bookingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Booking ID is required"})
		return
	}

	db := database.GetDB()
	var messages []models.Message
	result := db.Where("booking_id = ?", bookingID).
		Order("created_at asc").
		Find(&messages)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	// Enrich sender names for display
	senderIDs := make([]string, 0, len(messages))
	for _, m := range messages {
		senderIDs = append(senderIDs, m.SenderID)
	}
	var users []models.User
	if err := db.Where("id IN ?", senderIDs).Find(&users).Error; err == nil {
		nameByID := make(map[string]string, len(users))
		for _, u := range users {
			nameByID[u.ID] = u.Name
		}
		for i := range messages {
			messages[i].Sender = models.Sender{
				ID:   messages[i].SenderID,
				Name: nameByID[messages[i].SenderID],
			}
		}
	}

	c.JSON(http.StatusOK, messages)
}
