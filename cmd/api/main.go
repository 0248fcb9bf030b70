package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/applytrack/applytrack/internal/auth"
	"github.com/applytrack/applytrack/internal/database"
	"github.com/applytrack/applytrack/internal/handlers"
	"github.com/applytrack/applytrack/internal/store"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	// 2. Database Connection
	db := database.Connect()

	// 3. Initialize Identity Provider & Record Store
	provider := auth.NewProvider(db)
	recordStore := store.New(db, auth.ContextIdentity{})

	// 4. Setup Router
	r := handlers.NewRouter(provider, recordStore)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("Server starting on port " + port + "...")
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
