// Bootstrap script to create the first admin account
// cmd/create-admin/main.go
package main

import (
	"flag"
	"log"
	"time"

	"journal-submission-api/config"
	"journal-submission-api/models"
	"journal-submission-api/utils"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	name := flag.String("name", "", "Full name of the admin")
	email := flag.String("email", "", "Email address of the admin")
	password := flag.String("password", "", "Initial password (min 8 characters)")
	flag.Parse()

	if *name == "" || *email == "" || *password == "" {
		log.Fatal("Usage: create-admin -name NAME -email EMAIL -password PASSWORD")
	}
	if !utils.ValidateEmail(*email) {
		log.Fatal("Invalid email address")
	}
	if ok, reason := utils.ValidatePassword(*password); !ok {
		log.Fatal(reason)
	}

	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	config.InitDB()

	var count int64
	if err := config.DB.Model(&models.User{}).Where("email = ?", *email).Count(&count).Error; err != nil {
		log.Fatal("Failed to check existing users:", err)
	}
	if count > 0 {
		log.Fatalf("A user with email %s already exists", *email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	now := time.Now()
	admin := models.User{
		Name:         *name,
		Email:        *email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		ConsentGiven: true,
		ConsentAt:    &now,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin user:", err)
	}

	log.Printf("Admin account created for %s (user_id=%d)", admin.Email, admin.UserID)
}
