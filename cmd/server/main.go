package main

import (
	"log"
	"os"

	"miniblog/internal/db"
	"miniblog/internal/router"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// Initialize Database
	database, err := db.Open(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	r := router.New(database, "./web/templates")

	// Static Assets
	r.Static("/static", "./web/static")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("miniblog server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
