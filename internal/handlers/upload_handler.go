package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// UploadAvatarHandler handles POST /api/upload/avatar
// Accepts a multipart "avatar" image and passes it through to the storage
// provider; the returned URL is what the client saves on the profile.
func UploadAvatarHandler(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded or file type invalid"})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	switch ext {
	case ".jpeg", ".jpg", ".png":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded or file type invalid"})
		return
	}

	if UploadAvatar == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Avatar upload is not configured"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	imageURL, err := UploadAvatar(c.Request.Context(), file, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload avatar"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Avatar uploaded successfully",
		"imageUrl": imageURL,
	})
}
