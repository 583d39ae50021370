package main

import (
	"log"

	"skillsync-api/internal/config"
	"skillsync-api/internal/database"
	"skillsync-api/internal/handlers"
	"skillsync-api/internal/routes"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present, then process the environment
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	// Init database
	database.InitDB(cfg.DBPath)

	// Wire outbound clients (OpenAI, Cloudinary)
	if err := handlers.Setup(cfg); err != nil {
		log.Fatal("Failed to set up external clients: ", err)
	}

	// Setup the routes (public and protected routes)
	ginRoutes := routes.SetupRoutes()

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Server starting on port %s", addr)
	log.Println("API endpoints:")
	log.Println("  POST   /api/auth/register")
	log.Println("  POST   /api/auth/login")
	log.Println("  POST   /api/auth/google")
	log.Println("  GET    /api/users/profile")
	log.Println("  PUT    /api/users/profile")
	log.Println("  GET    /api/users/mentors")
	log.Println("  GET    /api/users/mentors/:id")
	log.Println("  POST   /api/bookings")
	log.Println("  GET    /api/bookings")
	log.Println("  PUT    /api/bookings/:id")
	log.Println("  GET    /api/chat/:bookingId")
	log.Println("  POST   /api/reviews")
	log.Println("  GET    /api/reviews/mentor/:mentorId")
	log.Println("  POST   /api/upload/avatar")
	log.Println("  POST   /api/ai/summarize")
	log.Println("  GET    /api/ws")
	log.Println("  GET    /health")

	if err := ginRoutes.Run(addr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
