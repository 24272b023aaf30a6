package controllers

import (
	"log"
	"net/http"
	"strconv"

	"journal-submission-api/config"
	"journal-submission-api/models"
	"journal-submission-api/services"

	"github.com/gin-gonic/gin"
)

// notifySubmissionAuthor writes an in-app notification for the submission's
// author. Scheduling endpoints keep working even if the notification fails.
func notifySubmissionAuthor(submissionID int, title, message, notificationType string) {
	var submission models.Submission
	if err := config.DB.First(&submission, submissionID).Error; err != nil {
		log.Printf("Warning: failed to load submission %d for notification: %v", submissionID, err)
		return
	}
	if err := notificationService.Create(submission.AuthorID, title, message, notificationType, &submissionID); err != nil {
		log.Printf("Warning: failed to notify author %d: %v", submission.AuthorID, err)
	}
}

// GetIssuePublications lists an issue's table of contents plus accepted
// submissions still waiting for a slot.
func GetIssuePublications(c *gin.Context) {
	issueID, err := strconv.Atoi(c.Param("id"))
	if err != nil || issueID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	var issue models.Issue
	if err := config.DB.First(&issue, issueID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		return
	}

	var publications []models.Publication
	if err := config.DB.Where("issue_id = ?", issueID).
		Order("page_start ASC, publication_id ASC").
		Find(&publications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch publications"})
		return
	}

	// Accepted submissions that have no publication row yet can still be
	// scheduled into this issue.
	var available []models.Submission
	if err := config.DB.Preload("Author").
		Where("status = ?", models.StatusAccepted).
		Where("submission_id NOT IN (?)",
			config.DB.Model(&models.Publication{}).Select("submission_id")).
		Order("updated_at ASC").
		Find(&available).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch available submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":               true,
		"issue":                 issue,
		"publications":          publications,
		"available_submissions": available,
	})
}

type AssignToIssueRequest struct {
	SubmissionID int  `json:"submission_id" binding:"required,min=1"`
	PageStart    *int `json:"page_start"`
	PageEnd      *int `json:"page_end"`
}

// AssignToIssue schedules an accepted submission into an issue.
func AssignToIssue(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	issueID, err := strconv.Atoi(c.Param("id"))
	if err != nil || issueID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	var req AssignToIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	publication, err := schedulerService.AssignToIssue(user, services.AssignToIssueInput{
		SubmissionID: req.SubmissionID,
		IssueID:      issueID,
		PageStart:    req.PageStart,
		PageEnd:      req.PageEnd,
	})
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	notifySubmissionAuthor(publication.SubmissionID, "Scheduled for publication",
		"Your accepted manuscript has been scheduled into an upcoming issue.", "success")

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"publication": publication,
		"message":     "Submission scheduled for publication",
	})
}

// PublishArticle marks a scheduled publication as published.
func PublishArticle(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	publicationID, err := strconv.Atoi(c.Param("id"))
	if err != nil || publicationID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid publication ID"})
		return
	}

	publication, err := schedulerService.Publish(user, publicationID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	notifySubmissionAuthor(publication.SubmissionID, "Article published",
		"Your article has been published.", "success")

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"publication": publication,
		"message":     "Article published",
	})
}

// UnpublishArticle retracts a published article. The published_at timestamp
// is kept for the record.
func UnpublishArticle(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	publicationID, err := strconv.Atoi(c.Param("id"))
	if err != nil || publicationID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid publication ID"})
		return
	}

	publication, err := schedulerService.Unpublish(user, publicationID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"publication": publication,
		"message":     "Article unpublished",
	})
}

// RemoveFromIssue deletes a scheduled publication, returning the submission
// to the available pool. Published articles must be unpublished first.
func RemoveFromIssue(c *gin.Context) {
	publicationID, err := strconv.Atoi(c.Param("id"))
	if err != nil || publicationID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid publication ID"})
		return
	}

	var publication models.Publication
	if err := config.DB.First(&publication, publicationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Publication not found"})
		return
	}
	if publication.Status == models.PublicationPublished {
		c.JSON(http.StatusConflict, gin.H{"error": "Unpublish the article before removing it from the issue"})
		return
	}

	if err := config.DB.Delete(&publication).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove publication"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Submission removed from issue"})
}
