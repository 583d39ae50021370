package routes

import (
	"skillsync-api/internal/handlers"
	"skillsync-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes() *gin.Engine {
	// Create a new GIN Router
	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "SkillSync API is running",
		})
	})

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		api.POST("/auth/register", handlers.Register)
		api.POST("/auth/login", handlers.Login)
		api.POST("/auth/google", handlers.GoogleLogin)
		api.GET("/reviews/mentor/:mentorId", handlers.GetReviewsForMentor)
	}

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware())
	{
		// Profile and mentor discovery
		protectedRoutes.GET("/users/profile", handlers.GetProfile)
		protectedRoutes.PUT("/users/profile", handlers.UpdateProfile)
		protectedRoutes.GET("/users/mentors", handlers.GetMentors)
		protectedRoutes.GET("/users/mentors/:id", handlers.GetMentorByID)
		// Booking lifecycle
		protectedRoutes.POST("/bookings", handlers.CreateBooking)
		protectedRoutes.GET("/bookings", handlers.GetMyBookings)
		protectedRoutes.PUT("/bookings/:id", handlers.UpdateBookingStatus)
		// Chat history
		protectedRoutes.GET("/chat/:bookingId", handlers.GetMessages)
		// Reviews
		protectedRoutes.POST("/reviews", handlers.CreateReview)
		// Avatar upload and AI summarization
		protectedRoutes.POST("/upload/avatar", handlers.UploadAvatarHandler)
		protectedRoutes.POST("/ai/summarize", handlers.SummarizeSession)
		// Realtime channel (token via query param)
		protectedRoutes.GET("/ws", handlers.WebSocketHandler)
	}

	return ginRouter
}
