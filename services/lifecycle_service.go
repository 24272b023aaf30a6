package services

import (
	"errors"
	"time"

	"journal-submission-api/models"

	"gorm.io/gorm"
)

// DefaultReviewPeriod is the review due-date window applied when the editor
// does not pick one.
const DefaultReviewPeriod = 30 * 24 * time.Hour

// lifecycleTransitions is the full transition relation for Submission.Status.
// The self-loop on under_review covers assigning further reviewers before any
// review completes. accepted -> reviewed is the decision revert. published is
// part of the enum but unreachable: published state lives on the Publication.
var lifecycleTransitions = map[string][]string{
	models.StatusSubmitted:         {models.StatusUnderReview, models.StatusWithdrawn},
	models.StatusUnderReview:       {models.StatusUnderReview, models.StatusReviewed, models.StatusWithdrawn},
	models.StatusReviewed:          {models.StatusAccepted, models.StatusRejected, models.StatusRevisions},
	models.StatusAccepted:          {models.StatusReviewed},
	models.StatusRejected:          {},
	models.StatusRevisions:         {models.StatusRevisionSubmitted},
	models.StatusRevisionSubmitted: {models.StatusReviewed, models.StatusWithdrawn},
	models.StatusWithdrawn:         {},
	models.StatusPublished:         {},
}

// CanTransition reports whether the lifecycle permits moving a submission
// from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range lifecycleTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// DecisionTargetStatus maps an editorial decision to the submission status it
// produces. The reverted decision is excluded; it is written only by
// RevertDecision.
func DecisionTargetStatus(decision string) (string, bool) {
	switch decision {
	case models.DecisionAccept:
		return models.StatusAccepted, true
	case models.DecisionReject:
		return models.StatusRejected, true
	case models.DecisionRevisions:
		return models.StatusRevisions, true
	}
	return "", false
}

// LifecycleService is the sole authority for changing Submission.Status and
// for creating the Review, EditorDecision and Revision rows that accompany
// each change. Every operation runs in a single transaction; the status
// mutation and its side-effect rows commit together or not at all.
type LifecycleService struct {
	db       *gorm.DB
	identity *IdentityService
	hooks    *HookRegistry
}

func NewLifecycleService(db *gorm.DB, identity *IdentityService, hooks *HookRegistry) *LifecycleService {
	return &LifecycleService{db: db, identity: identity, hooks: hooks}
}

// AssignReviewerInput carries the parameters of a reviewer assignment.
type AssignReviewerInput struct {
	SubmissionID  int
	ReviewerEmail string
	DueDate       *time.Time
}

// AssignReviewerResult reports the created assignment. InitialPassword is set
// only when a reviewer account was provisioned and is never persisted in
// plain text.
type AssignReviewerResult struct {
	Review          *models.Review
	Reviewer        *models.User
	CreatedAccount  bool
	InitialPassword string
}

// AssignReviewer creates a Review assignment for the submission and moves it
// to under_review. Unknown reviewer emails are provisioned as new reviewer
// accounts. The author can never be assigned, and a reviewer cannot be
// assigned twice to the same submission.
func (s *LifecycleService) AssignReviewer(editor *models.User, in AssignReviewerInput) (*AssignReviewerResult, error) {
	if !editor.Can(models.CapAssignReviewers) {
		return nil, forbidden(CodeForbidden, "only editors can assign reviewers")
	}

	now := time.Now()
	dueDate := now.Add(DefaultReviewPeriod)
	if in.DueDate != nil {
		dueDate = *in.DueDate
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

	if submission.Status != models.StatusSubmitted && submission.Status != models.StatusUnderReview {
		tx.Rollback()
		return nil, invalidState(CodeNotReadyForDecision, "submission is not open for reviewer assignment")
	}

	reviewer, initialPassword, err := s.identity.EnsureReviewer(tx, in.ReviewerEmail)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if reviewer.UserID == submission.AuthorID {
		tx.Rollback()
		return nil, forbidden(CodeSelfReviewForbidden, "the author cannot review their own submission")
	}

	var existing int64
	if err := tx.Model(&models.Review{}).
		Where("submission_id = ? AND reviewer_id = ?", submission.SubmissionID, reviewer.UserID).
		Count(&existing).Error; err != nil {
		tx.Rollback()
		return nil, storageUnavailable(err)
	}
	if existing > 0 {
		tx.Rollback()
		return nil, conflict(CodeDuplicateAssignment, "this reviewer is already assigned to this submission")
	}

	review := models.Review{
		SubmissionID: submission.SubmissionID,
		ReviewerID:   reviewer.UserID,
		EditorID:     editor.UserID,
		Status:       models.ReviewStatusAssigned,
		AssignedAt:   now,
		DueDate:      dueDate,
	}
	if err := tx.Create(&review).Error; err != nil {
		tx.Rollback()
		// The unique index on (submission_id, reviewer_id) closes the race
		// between concurrent duplicate checks.
		if isDuplicateKey(err) {
			return nil, conflict(CodeDuplicateAssignment, "this reviewer is already assigned to this submission")
		}
		return nil, storageUnavailable(err)
	}

	events, err := s.changeStatus(tx, submission, models.StatusUnderReview, editor.UserID, nil, now)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, storageUnavailable(err)
	}
	s.emit(events)

	return &AssignReviewerResult{
		Review:          &review,
		Reviewer:        reviewer,
		CreatedAccount:  initialPassword != "",
		InitialPassword: initialPassword,
	}, nil
}

// CompleteReview records the reviewer's content and recommendation and marks
// the review completed. The submission becomes reviewed as soon as its first
// review completes; editors act on completed reviews without waiting for the
// rest of the panel.
func (s *LifecycleService) CompleteReview(reviewer *models.User, reviewID int, content, decision string) (*models.Review, error) {
	if !models.ValidRecommendation(decision) {
		return nil, invalidState(CodeInvalidDecision, "recommendation must be accept, reject or revisions")
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

	var review models.Review
	if err := tx.Where("review_id = ?", reviewID).First(&review).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("review not found")
		}
		return nil, storageUnavailable(err)
	}

	if !reviewer.Can(models.CapReview) || reviewer.UserID != review.ReviewerID {
		tx.Rollback()
		return nil, forbidden(CodeForbidden, "only the assigned reviewer can complete this review")
	}

	if review.Status == models.ReviewStatusCompleted {
		tx.Rollback()
		return nil, conflict(CodeAlreadyCompleted, "this review has already been completed")
	}

	submission, err := loadSubmission(tx, review.SubmissionID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	now := time.Now()
	if err := tx.Model(&models.Review{}).
		Where("review_id = ?", review.ReviewID).
		Updates(map[string]interface{}{
			"content":      content,
			"decision":     decision,
			"status":       models.ReviewStatusCompleted,
			"completed_at": now,
		}).Error; err != nil {
		tx.Rollback()
		return nil, storageUnavailable(err)
	}
	review.Content = &content
	review.Decision = &decision
	review.Status = models.ReviewStatusCompleted
	review.CompletedAt = &now

	// Only an in-review submission moves forward; a straggler review finishing
	// after a decision must not drag the submission back to reviewed.
	var events []TransitionEvent
	if submission.Status == models.StatusUnderReview {
		events, err = s.changeStatus(tx, submission, models.StatusReviewed, reviewer.UserID, nil, now)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, storageUnavailable(err)
	}
	s.emit(events)

	return &review, nil
}

// MakeDecision appends an EditorDecision and moves the submission to the
// status the decision dictates. Only reviewed or revision_submitted
// submissions are eligible.
func (s *LifecycleService) MakeDecision(editor *models.User, submissionID int, decision, comments string) (*models.EditorDecision, error) {
	if !editor.Can(models.CapDecide) {
		return nil, forbidden(CodeForbidden, "only editors can make editorial decisions")
	}

	targetStatus, ok := DecisionTargetStatus(decision)
	if !ok {
		return nil, invalidState(CodeInvalidDecision, "decision must be accept, reject or revisions")
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

	submission, err := loadSubmission(tx, submissionID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if submission.Status != models.StatusReviewed && submission.Status != models.StatusRevisionSubmitted {
		tx.Rollback()
		return nil, invalidState(CodeNotReadyForDecision, "this submission is not ready for a decision")
	}

	now := time.Now()
	record := models.EditorDecision{
		SubmissionID: submission.SubmissionID,
		EditorID:     editor.UserID,
		Decision:     decision,
		CreatedAt:    now,
	}
	if comments != "" {
		record.Comments = &comments
	}
	if err := tx.Create(&record).Error; err != nil {
		tx.Rollback()
		return nil, storageUnavailable(err)
	}

	events, err := s.changeStatus(tx, submission, targetStatus, editor.UserID, record.Comments, now)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, storageUnavailable(err)
	}
	s.emit(events)

	return &record, nil
}

// SubmitRevisionInput carries a new manuscript version from the author.
type SubmitRevisionInput struct {
	SubmissionID int
	FilePath     string
	CoverLetter  string
}

// SubmitRevision records a revision round for a submission in the revisions
// status. The round counter is one plus the number of prior revisions, and the
// revision references the latest revisions decision.
func (s *LifecycleService) SubmitRevision(author *models.User, in SubmitRevisionInput) (*models.Revision, error) {
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

	if author.UserID != submission.AuthorID {
		tx.Rollback()
		return nil, forbidden(CodeForbidden, "only the submitting author can revise this submission")
	}

	if submission.Status != models.StatusRevisions {
		tx.Rollback()
		return nil, invalidState(CodeNotOpenForRevision, "this submission is not open for revisions")
	}

	var latestDecision models.EditorDecision
	var decisionID *int
	err = tx.Where("submission_id = ? AND decision = ?", submission.SubmissionID, models.DecisionRevisions).
		Order("created_at DESC, decision_id DESC").
		First(&latestDecision).Error
	switch {
	case err == nil:
		decisionID = &latestDecision.DecisionID
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Legacy rows may predate decision tracking; the revision still counts.
	default:
		tx.Rollback()
		return nil, storageUnavailable(err)
	}

	var priorRevisions int64
	if err := tx.Model(&models.Revision{}).
		Where("submission_id = ?", submission.SubmissionID).
		Count(&priorRevisions).Error; err != nil {
		tx.Rollback()
		return nil, storageUnavailable(err)
	}

	now := time.Now()
	revision := models.Revision{
		SubmissionID: submission.SubmissionID,
		Round:        int(priorRevisions) + 1,
		DecisionID:   decisionID,
		FilePath:     in.FilePath,
		CreatedAt:    now,
	}
	if in.CoverLetter != "" {
		letter := in.CoverLetter
		revision.CoverLetter = &letter
	}
	if err := tx.Create(&revision).Error; err != nil {
		tx.Rollback()
		return nil, storageUnavailable(err)
	}

	events, err := s.changeStatus(tx, submission, models.StatusRevisionSubmitted, author.UserID, nil, now)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, storageUnavailable(err)
	}
	s.emit(events)

	return &revision, nil
}

// Withdraw moves a submission to the terminal withdrawn status. Allowed for
// the owning author and for admins, and only before a decision is reached.
func (s *LifecycleService) Withdraw(actor *models.User, submissionID int) (*models.Submission, error) {
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

	submission, err := loadSubmission(tx, submissionID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if actor.UserID != submission.AuthorID && !actor.Can(models.CapWithdrawAny) {
		tx.Rollback()
		return nil, forbidden(CodeForbidden, "you cannot withdraw this submission")
	}

	switch submission.Status {
	case models.StatusSubmitted, models.StatusUnderReview, models.StatusRevisionSubmitted:
	default:
		tx.Rollback()
		return nil, invalidState(CodeCannotWithdraw, "this submission cannot be withdrawn at its current stage")
	}

	events, err := s.changeStatus(tx, submission, models.StatusWithdrawn, actor.UserID, nil, time.Now())
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, storageUnavailable(err)
	}
	s.emit(events)

	return submission, nil
}

// RevertDecision retracts an acceptance before scheduling: it appends a
// reverted EditorDecision and moves the submission back to reviewed. Once a
// Publication exists the acceptance can no longer be reverted.
func (s *LifecycleService) RevertDecision(editor *models.User, submissionID int, comments string) (*models.EditorDecision, error) {
	if !editor.Can(models.CapDecide) {
		return nil, forbidden(CodeForbidden, "only editors can revert decisions")
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

	submission, err := loadSubmission(tx, submissionID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if submission.Status != models.StatusAccepted {
		tx.Rollback()
		return nil, invalidState(CodeCannotRevert, "only accepted submissions can be reverted")
	}

	var publications int64
	if err := tx.Model(&models.Publication{}).
		Where("submission_id = ?", submission.SubmissionID).
		Count(&publications).Error; err != nil {
		tx.Rollback()
		return nil, storageUnavailable(err)
	}
	if publications > 0 {
		tx.Rollback()
		return nil, conflict(CodeCannotRevert, "this submission is already scheduled for publication")
	}

	now := time.Now()
	record := models.EditorDecision{
		SubmissionID: submission.SubmissionID,
		EditorID:     editor.UserID,
		Decision:     models.DecisionReverted,
		CreatedAt:    now,
	}
	if comments != "" {
		record.Comments = &comments
	}
	if err := tx.Create(&record).Error; err != nil {
		tx.Rollback()
		return nil, storageUnavailable(err)
	}

	events, err := s.changeStatus(tx, submission, models.StatusReviewed, editor.UserID, record.Comments, now)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, storageUnavailable(err)
	}
	s.emit(events)

	return &record, nil
}

// changeStatus applies a guarded status transition inside the caller's
// transaction and records the matching history row. A same-status call is a
// no-op so idempotent re-entries do not pollute the history.
func (s *LifecycleService) changeStatus(tx *gorm.DB, submission *models.Submission, newStatus string, actorID int, reason *string, now time.Time) ([]TransitionEvent, error) {
	if submission.Status == newStatus {
		return nil, nil
	}
	if !CanTransition(submission.Status, newStatus) {
		return nil, invalidState(CodeIllegalTransition, "illegal status transition")
	}

	if err := tx.Model(&models.Submission{}).
		Where("submission_id = ?", submission.SubmissionID).
		Updates(map[string]interface{}{
			"status":     newStatus,
			"updated_at": now,
		}).Error; err != nil {
		return nil, storageUnavailable(err)
	}

	oldStatus := submission.Status
	history := models.SubmissionStatusHistory{
		SubmissionID: submission.SubmissionID,
		OldStatus:    &oldStatus,
		NewStatus:    newStatus,
		ChangedBy:    actorID,
		Reason:       reason,
		CreatedAt:    now,
	}
	if err := tx.Create(&history).Error; err != nil {
		return nil, storageUnavailable(err)
	}

	submission.Status = newStatus
	submission.UpdatedAt = now

	return []TransitionEvent{{
		SubmissionID: submission.SubmissionID,
		OldStatus:    oldStatus,
		NewStatus:    newStatus,
		ActorID:      actorID,
		OccurredAt:   now,
	}}, nil
}

func (s *LifecycleService) emit(events []TransitionEvent) {
	for _, event := range events {
		s.hooks.EmitTransition(event)
	}
}

func loadSubmission(tx *gorm.DB, submissionID int) (*models.Submission, error) {
	var submission models.Submission
	if err := tx.Where("submission_id = ?", submissionID).First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("submission not found")
		}
		return nil, storageUnavailable(err)
	}
	return &submission, nil
}
