package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"journal-submission-api/config"
	"journal-submission-api/models"
	"journal-submission-api/services"

	"github.com/gin-gonic/gin"
)

// GetEditorDashboard lists submissions bucketed by workflow stage.
func GetEditorDashboard(c *gin.Context) {
	buckets := map[string]string{
		"new_submissions":    models.StatusSubmitted,
		"in_review":          models.StatusUnderReview,
		"ready_for_decision": models.StatusReviewed,
		"recently_revised":   models.StatusRevisionSubmitted,
	}

	result := gin.H{"success": true}
	for key, status := range buckets {
		var submissions []models.Submission
		query := config.DB.Preload("Author").Where("status = ?", status)
		if status == models.StatusSubmitted || status == models.StatusUnderReview {
			query = query.Order("submitted_at ASC")
		} else {
			query = query.Order("updated_at ASC")
		}
		if err := query.Find(&submissions).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
			return
		}
		result[key] = submissions
	}

	c.JSON(http.StatusOK, result)
}

type AssignReviewerRequest struct {
	ReviewerEmail string     `json:"reviewer_email" binding:"required,email"`
	DueDate       *time.Time `json:"due_date"`
}

// AssignReviewer assigns a reviewer (by email) to a submission. Unknown
// emails get a provisioned reviewer account and an invitation mail.
func AssignReviewer(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	var req AssignReviewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := lifecycleService.AssignReviewer(user, services.AssignReviewerInput{
		SubmissionID:  submissionID,
		ReviewerEmail: req.ReviewerEmail,
		DueDate:       req.DueDate,
	})
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	message := "Reviewer successfully assigned"
	if result.CreatedAccount {
		message = fmt.Sprintf("Created new reviewer account for %s and assigned the review", result.Reviewer.Email)
		sendReviewerInvitation(result)
	}

	if err := notificationService.Create(result.Reviewer.UserID,
		"New review assignment",
		fmt.Sprintf("You have been assigned a review due %s.", result.Review.DueDate.Format("2006-01-02")),
		"info", &submissionID); err != nil {
		log.Printf("Warning: failed to notify reviewer %d: %v", result.Reviewer.UserID, err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":         true,
		"review":          result.Review,
		"reviewer":        result.Reviewer,
		"created_account": result.CreatedAccount,
		"message":         message,
	})
}

// sendReviewerInvitation mails the provisioned account credentials. Delivery
// is best effort; the assignment has already committed.
func sendReviewerInvitation(result *services.AssignReviewerResult) {
	subject := "You have been invited to review a manuscript"
	body := fmt.Sprintf(
		"<p>An editor has assigned you a peer review.</p>"+
			"<p>A reviewer account has been created for you:</p>"+
			"<p>Email: %s<br>Temporary password: %s</p>"+
			"<p>Please sign in and change your password.</p>",
		result.Reviewer.Email, result.InitialPassword,
	)
	if err := config.SendMail([]string{result.Reviewer.Email}, subject, body); err != nil {
		log.Printf("Warning: failed to send reviewer invitation to %s: %v", result.Reviewer.Email, err)
	}
}

// GetMyReviews lists the reviewer's pending and completed assignments with an
// overdue flag on pending ones.
func GetMyReviews(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var pending []models.Review
	if err := config.DB.Preload("Submission").
		Where("reviewer_id = ? AND status = ?", user.UserID, models.ReviewStatusAssigned).
		Order("due_date ASC").
		Find(&pending).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	var completed []models.Review
	if err := config.DB.Preload("Submission").
		Where("reviewer_id = ? AND status = ?", user.UserID, models.ReviewStatusCompleted).
		Order("completed_at DESC").
		Find(&completed).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	now := time.Now()
	type pendingReview struct {
		models.Review
		Overdue bool `json:"overdue"`
	}
	pendingOut := make([]pendingReview, 0, len(pending))
	for _, review := range pending {
		pendingOut = append(pendingOut, pendingReview{Review: review, Overdue: review.IsOverdueAt(now)})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"pending":   pendingOut,
		"completed": completed,
	})
}

type CompleteReviewRequest struct {
	Content  string `json:"content" binding:"required"`
	Decision string `json:"decision" binding:"required,oneof=accept reject revisions"`
}

// CompleteReview records the reviewer's recommendation.
func CompleteReview(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	reviewID, err := strconv.Atoi(c.Param("id"))
	if err != nil || reviewID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	var req CompleteReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	review, err := lifecycleService.CompleteReview(user, reviewID, req.Content, req.Decision)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"review":  review,
		"message": "Your review has been submitted successfully",
	})
}

type DecisionRequest struct {
	Decision string `json:"decision" binding:"required,oneof=accept reject revisions"`
	Comments string `json:"comments"`
}

// MakeDecision records an editorial decision on a reviewed submission.
func MakeDecision(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	decision, err := lifecycleService.MakeDecision(user, submissionID, req.Decision, req.Comments)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"decision": decision,
		"message":  "Your decision has been recorded",
	})
}

type RevertDecisionRequest struct {
	Comments string `json:"comments"`
}

// RevertDecision retracts an acceptance that has not been scheduled yet.
func RevertDecision(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	var req RevertDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	decision, err := lifecycleService.RevertDecision(user, submissionID, req.Comments)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"decision": decision,
		"message":  "The acceptance has been reverted",
	})
}
