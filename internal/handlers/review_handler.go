package handlers

import (
	"errors"
	"net/http"

	"skillsync-api/internal/database"
	"skillsync-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateReviewRequest represents the review submission payload
type CreateReviewRequest struct {
	BookingID string `json:"bookingId" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

// CreateReview handles POST /api/reviews
// A mentee rates a completed booking exactly once.
func CreateReview(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := database.GetDB()
	var booking models.Booking
	if err := db.Where("id = ?", req.BookingID).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch booking"})
		}
		return
	}

	if booking.MenteeID != userID {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authorized to review this booking"})
		return
	}
	if booking.Status != models.StatusCompleted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Booking is not completed yet"})
		return
	}
	if booking.HasBeenReviewed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Booking has already been reviewed"})
		return
	}

	review := models.Review{
		ID:        uuid.NewString(),
		BookingID: booking.ID,
		MentorID:  booking.MentorID,
		MenteeID:  userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if err := db.Create(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	if err := db.Model(&booking).Update("has_been_reviewed", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark booking reviewed"})
		return
	}

	c.JSON(http.StatusCreated, review)
}

// GetReviewsForMentor handles GET /api/reviews/mentor/:mentorId
// Public listing of a mentor's reviews with mentee name and avatar
func GetReviewsForMentor(c *gin.Context) {
	mentorID := c.Param("mentorId")
	if mentorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mentor ID is required"})
		return
	}

	db := database.GetDB()
	var reviews []models.Review
	if err := db.Where("mentor_id = ?", mentorID).Order("created_at desc").Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	// Enrich mentee display fields
	menteeIDs := make([]string, 0, len(reviews))
	for _, r := range reviews {
		menteeIDs = append(menteeIDs, r.MenteeID)
	}
	var mentees []models.User
	if err := db.Where("id IN ?", menteeIDs).Find(&mentees).Error; err == nil {
		menteeByID := make(map[string]models.User, len(mentees))
		for _, m := range mentees {
			menteeByID[m.ID] = m
		}
		for i := range reviews {
			if m, ok := menteeByID[reviews[i].MenteeID]; ok {
				reviews[i].Mentee = models.Reviewer{ID: m.ID, Name: m.Name, Avatar: m.Avatar}
			}
		}
	}

	c.JSON(http.StatusOK, reviews)
}
