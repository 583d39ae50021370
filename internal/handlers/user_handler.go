package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"skillsync-api/internal/cache"
	"skillsync-api/internal/database"
	"skillsync-api/internal/middleware"
	"skillsync-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// mentorCache holds recently served mentor profiles keyed by ID. Entries are
// dropped when the mentor edits their profile.
var mentorCache = cache.New[string, models.User]()

const mentorCacheTTL = 5 * time.Minute

// UpdateProfileRequest represents the profile merge-update payload.
// Empty fields leave the stored value unchanged.
type UpdateProfileRequest struct {
	Name          string                   `json:"name"`
	Title         string                   `json:"title"`
	Bio           string                   `json:"bio"`
	Avatar        string                   `json:"avatar"`
	SocialLinks   *models.SocialLinks      `json:"socialLinks"`
	Expertise     []string                 `json:"expertise"`
	Availability  []models.AvailabilityDay `json:"availability"`
	LearningGoals []string                 `json:"learningGoals"`
}

// MentorCard represents the fields shown on mentor listing cards
type MentorCard struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Expertise []string `json:"expertise"`
	Title     string   `json:"title"`
	Bio       string   `json:"bio"`
	Avatar    string   `json:"avatar"`
}

// GetProfile handles GET /api/users/profile
// Returns the authenticated user's account
func GetProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile handles PUT /api/users/profile
// Merge-updates the authenticated user's account: provided fields override,
// omitted fields keep their stored value. Mentors maintain expertise and
// availability; mentees maintain learning goals.
func UpdateProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Title != "" {
		user.Title = req.Title
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}
	if req.SocialLinks != nil {
		if req.SocialLinks.LinkedIn != "" {
			user.SocialLinks.LinkedIn = req.SocialLinks.LinkedIn
		}
		if req.SocialLinks.Twitter != "" {
			user.SocialLinks.Twitter = req.SocialLinks.Twitter
		}
		if req.SocialLinks.Github != "" {
			user.SocialLinks.Github = req.SocialLinks.Github
		}
	}

	if user.Role == models.RoleMentor {
		if req.Expertise != nil {
			user.Expertise = req.Expertise
		}
		if req.Availability != nil {
			user.Availability = req.Availability
		}
	} else {
		if req.LearningGoals != nil {
			user.LearningGoals = req.LearningGoals
		}
	}

	if err := database.GetDB().Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	// Drop any cached copy so the next mentor-detail fetch sees the edit
	mentorCache.Delete(user.ID)

	c.JSON(http.StatusOK, user)
}

// GetMentors handles GET /api/users/mentors
// Paginated mentor listing with optional name search and skill filter.
// Query params: page (default 1), limit (default 9), search, skill.
func GetMentors(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "9"))
	if err != nil || limit < 1 {
		limit = 9
	}
	if limit > 100 {
		limit = 100
	}
	offset := (page - 1) * limit

	search := c.Query("search")
	skill := c.Query("skill")

	db := database.GetDB()
	query := db.Model(&models.User{}).Where("role = ?", models.RoleMentor)
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if skill != "" {
		// Expertise is stored as a JSON list; a substring match gives the
		// same case-insensitive contains semantics the UI expects
		query = query.Where("expertise LIKE ?", "%"+skill+"%")
	}

	// Total count based on the filtered query (for correct pagination)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count mentors"})
		return
	}

	var mentors []models.User
	result := query.Session(&gorm.Session{}).Order("created_at desc").Limit(limit).Offset(offset).Find(&mentors)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch mentors"})
		return
	}

	cards := lo.Map(mentors, func(m models.User, _ int) MentorCard {
		return MentorCard{
			ID:        m.ID,
			Name:      m.Name,
			Email:     m.Email,
			Expertise: m.Expertise,
			Title:     m.Title,
			Bio:       m.Bio,
			Avatar:    m.Avatar,
		}
	})

	totalPages := (total + int64(limit) - 1) / int64(limit)

	c.JSON(http.StatusOK, gin.H{
		"mentors":      cards,
		"totalPages":   totalPages,
		"currentPage":  page,
		"totalMentors": total,
	})
}

// GetMentorByID handles GET /api/users/mentors/:id
// Returns a single mentor profile, served from a short-lived cache
func GetMentorByID(c *gin.Context) {
	mentorID := c.Param("id")
	if mentorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mentor ID is required"})
		return
	}

	if mentor, ok := mentorCache.Get(mentorID); ok {
		c.JSON(http.StatusOK, mentor)
		return
	}

	var mentor models.User
	err := database.GetDB().Where("id = ?", mentorID).First(&mentor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Mentor not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch mentor"})
		}
		return
	}
	if mentor.Role != models.RoleMentor {
		c.JSON(http.StatusNotFound, gin.H{"error": "Mentor not found"})
		return
	}

	mentorCache.Set(mentorID, mentor, mentorCacheTTL)
	c.JSON(http.StatusOK, mentor)
}
