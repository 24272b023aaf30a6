package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"journal-submission-api/models"

	"gorm.io/gorm"
)

// NotificationService writes in-app notifications. It doubles as a transition
// observer: registered on the hook registry at startup, it notifies the
// author whenever their submission changes status. Notification writes happen
// after the transition commits and are best effort.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Create inserts a notification row for the user.
func (s *NotificationService) Create(userID int, title, message, notificationType string, submissionID *int) error {
	notification := models.Notification{
		UserID:    uint(userID),
		Title:     title,
		Message:   message,
		Type:      notificationType,
		CreatedAt: time.Now(),
	}
	if submissionID != nil {
		related := uint(*submissionID)
		notification.RelatedSubmissionID = &related
	}
	if err := s.db.Create(&notification).Error; err != nil {
		return storageUnavailable(err)
	}
	return nil
}

var transitionMessages = map[string]struct {
	title string
	kind  string
}{
	models.StatusUnderReview:       {"Submission under review", "info"},
	models.StatusReviewed:          {"Review completed", "info"},
	models.StatusAccepted:          {"Submission accepted", "success"},
	models.StatusRejected:          {"Submission rejected", "warning"},
	models.StatusRevisions:         {"Revisions requested", "warning"},
	models.StatusRevisionSubmitted: {"Revision received", "info"},
	models.StatusWithdrawn:         {"Submission withdrawn", "info"},
}

// SubmissionTransition implements TransitionObserver.
func (s *NotificationService) SubmissionTransition(event TransitionEvent) {
	template, ok := transitionMessages[event.NewStatus]
	if !ok {
		return
	}

	var submission models.Submission
	if err := s.db.Where("submission_id = ?", event.SubmissionID).First(&submission).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("notification: failed to load submission %d: %v", event.SubmissionID, err)
		}
		return
	}

	message := fmt.Sprintf("%q moved from %s to %s.", submission.Title, event.OldStatus, event.NewStatus)
	submissionID := event.SubmissionID
	if err := s.Create(submission.AuthorID, template.title, message, template.kind, &submissionID); err != nil {
		log.Printf("notification: failed to notify user %d: %v", submission.AuthorID, err)
	}
}
