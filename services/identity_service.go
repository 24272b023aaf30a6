package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"journal-submission-api/models"
	"journal-submission-api/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// IdentityService provisions reviewer accounts for the lifecycle service.
// Assignment by email may target someone without an account yet; the account
// is created with a generated password inside the assignment's transaction.
type IdentityService struct {
	db *gorm.DB
}

func NewIdentityService(db *gorm.DB) *IdentityService {
	return &IdentityService{db: db}
}

// EnsureReviewer returns the user for the given email, creating a reviewer
// account when none exists. The second return value is the generated plain
// password for a freshly provisioned account, empty otherwise.
func (s *IdentityService) EnsureReviewer(tx *gorm.DB, email string) (*models.User, string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if !utils.ValidateEmail(normalized) {
		return nil, "", invalidState(CodeInvalidDecision, "reviewer email is not a valid address")
	}

	var user models.User
	err := tx.Where("email = ?", normalized).First(&user).Error
	if err == nil {
		return &user, "", nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", storageUnavailable(err)
	}

	password, err := utils.GeneratePassword(12)
	if err != nil {
		return nil, "", storageUnavailable(err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", storageUnavailable(err)
	}

	now := time.Now()
	user = models.User{
		// Use the email prefix as a placeholder name until first login.
		Name:         normalized[:strings.Index(normalized, "@")],
		Email:        normalized,
		PasswordHash: string(hash),
		Role:         models.RoleReviewer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := tx.Create(&user).Error; err != nil {
		return nil, "", storageUnavailable(err)
	}

	return &user, password, nil
}

// Anonymize scrubs the account's personal data in place. The row survives so
// submissions and reviews keep their foreign keys; the random password makes
// the account unusable without a reset.
func (s *IdentityService) Anonymize(user *models.User) error {
	placeholder, err := utils.GeneratePassword(24)
	if err != nil {
		return storageUnavailable(err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(placeholder), bcrypt.DefaultCost)
	if err != nil {
		return storageUnavailable(err)
	}

	updates := map[string]interface{}{
		"name":              "Deleted User",
		"email":             fmt.Sprintf("deleted_%d@anonymized.invalid", user.UserID),
		"password_hash":     string(hash),
		"institution":       nil,
		"bio":               nil,
		"consent_given":     false,
		"consent_timestamp": nil,
	}
	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return storageUnavailable(err)
	}
	return nil
}
