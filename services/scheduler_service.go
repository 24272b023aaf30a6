package services

import (
	"errors"
	"time"

	"journal-submission-api/models"

	"gorm.io/gorm"
)

// SchedulerService moves accepted submissions into issues and governs the
// published/unpublished toggle. It writes Publication.Status only; the
// submission's own status is never touched here.
type SchedulerService struct {
	db *gorm.DB
}

func NewSchedulerService(db *gorm.DB) *SchedulerService {
	return &SchedulerService{db: db}
}

// AssignToIssueInput carries the scheduling parameters.
type AssignToIssueInput struct {
	SubmissionID int
	IssueID      int
	PageStart    *int
	PageEnd      *int
}

// AssignToIssue schedules an accepted submission into an issue. A submission
// can be linked to at most one issue; the unique index on submission_id backs
// the check at the storage layer.
func (s *SchedulerService) AssignToIssue(editor *models.User, in AssignToIssueInput) (*models.Publication, error) {
	if !editor.Can(models.CapManageIssues) {
		return nil, forbidden(CodeForbidden, "only editors can schedule publications")
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, storageUnavailable(tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	submission, err := loadSubmission(tx, in.SubmissionID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if submission.Status != models.StatusAccepted {
		tx.Rollback()
		return nil, invalidState(CodeNotAccepted, "only accepted submissions can be scheduled")
	}

	var issue models.Issue
	if err := tx.Where("issue_id = ?", in.IssueID).First(&issue).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("issue not found")
		}
		return nil, storageUnavailable(err)
	}

	var existing int64
	if err := tx.Model(&models.Publication{}).
		Where("submission_id = ?", submission.SubmissionID).
		Count(&existing).Error; err != nil {
		tx.Rollback()
		return nil, storageUnavailable(err)
	}
	if existing > 0 {
		tx.Rollback()
		return nil, conflict(CodeAlreadyScheduled, "this submission is already assigned to an issue")
	}

	publication := models.Publication{
		SubmissionID: submission.SubmissionID,
		IssueID:      issue.IssueID,
		PageStart:    in.PageStart,
		PageEnd:      in.PageEnd,
		Status:       models.PublicationScheduled,
		CreatedAt:    time.Now(),
	}
	if err := tx.Create(&publication).Error; err != nil {
		tx.Rollback()
		// The unique index on submission_id closes the race between
		// concurrent scheduling checks.
		if isDuplicateKey(err) {
			return nil, conflict(CodeAlreadyScheduled, "this submission is already scheduled into an issue")
		}
		return nil, storageUnavailable(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, storageUnavailable(err)
	}

	return &publication, nil
}

// Publish marks a scheduled publication as published and stamps published_at.
// Re-invocation fails; the original timestamp is preserved.
func (s *SchedulerService) Publish(editor *models.User, publicationID int) (*models.Publication, error) {
	if !editor.Can(models.CapManageIssues) {
		return nil, forbidden(CodeForbidden, "only editors can publish")
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, storageUnavailable(tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	publication, err := loadPublication(tx, publicationID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	switch publication.Status {
	case models.PublicationScheduled:
	case models.PublicationPublished:
		tx.Rollback()
		return nil, conflict(CodeAlreadyPublished, "this publication is already published")
	default:
		tx.Rollback()
		return nil, invalidState(CodeNotScheduled, "only scheduled publications can be published")
	}

	now := time.Now()
	if err := tx.Model(&models.Publication{}).
		Where("publication_id = ?", publication.PublicationID).
		Updates(map[string]interface{}{
			"status":       models.PublicationPublished,
			"published_at": now,
		}).Error; err != nil {
		tx.Rollback()
		return nil, storageUnavailable(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, storageUnavailable(err)
	}

	publication.Status = models.PublicationPublished
	publication.PublishedAt = &now
	return publication, nil
}

// Unpublish takes a published publication offline. The row and its
// published_at timestamp are kept as the audit trail, and the submission's
// own status is not reverted.
func (s *SchedulerService) Unpublish(editor *models.User, publicationID int) (*models.Publication, error) {
	if !editor.Can(models.CapManageIssues) {
		return nil, forbidden(CodeForbidden, "only editors can unpublish")
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, storageUnavailable(tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	publication, err := loadPublication(tx, publicationID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if publication.Status != models.PublicationPublished {
		tx.Rollback()
		return nil, invalidState(CodeNotPublished, "only published publications can be unpublished")
	}

	if err := tx.Model(&models.Publication{}).
		Where("publication_id = ?", publication.PublicationID).
		Update("status", models.PublicationUnpublished).Error; err != nil {
		tx.Rollback()
		return nil, storageUnavailable(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, storageUnavailable(err)
	}

	publication.Status = models.PublicationUnpublished
	return publication, nil
}

func loadPublication(tx *gorm.DB, publicationID int) (*models.Publication, error) {
	var publication models.Publication
	if err := tx.Where("publication_id = ?", publicationID).First(&publication).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("publication not found")
		}
		return nil, storageUnavailable(err)
	}
	return &publication, nil
}
