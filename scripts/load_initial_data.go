package main

import (
	"errors"
	"log"
	"os"

	"task-manager-backend/internal/auth"
	"task-manager-backend/internal/config"
	"task-manager-backend/internal/database"
	"task-manager-backend/internal/database/models"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// Seeds the initial admin account. Idempotent: an existing admin with the
// same email is left untouched.
//
// Usage: go run scripts/load_initial_data.go
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.Initialize(cfg.DatabaseURL, nil)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	email := getenvDefault("ADMIN_EMAIL", "admin@example.com")
	password := getenvDefault("ADMIN_PASSWORD", "ChangeMe123!")
	name := getenvDefault("ADMIN_NAME", "Administrator")

	var existing models.User
	err = db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Printf("admin user %s already exists, nothing to do", email)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("failed to check existing admin: %v", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash admin password: %v", err)
	}

	admin := &models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		IsAdmin:  true,
	}
	if err := db.Create(admin).Error; err != nil {
		log.Fatalf("failed to create admin user: %v", err)
	}

	log.Printf("created admin user %s (%s)", admin.Email, admin.ID)
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
