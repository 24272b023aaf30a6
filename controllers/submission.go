package controllers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"journal-submission-api/config"
	"journal-submission-api/models"
	"journal-submission-api/services"
	"journal-submission-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func uploadPath() string {
	path := os.Getenv("UPLOAD_PATH")
	if path == "" {
		path = "./uploads"
	}
	return path
}

// discardUpload removes a stored manuscript file after the database rejected
// the record it was written for, so rejected requests do not accumulate
// orphaned files under the upload directory.
func discardUpload(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to remove orphaned upload %s: %v", path, err)
	}
}

// CreateSubmission handles a new manuscript submission (multipart form).
func CreateSubmission(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if !user.Can(models.CapSubmit) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only authors can submit manuscripts"})
		return
	}

	title := utils.SanitizeInput(c.PostForm("title"))
	authors := utils.SanitizeInput(c.PostForm("authors"))
	abstract := utils.SanitizeInput(c.PostForm("abstract"))
	category := utils.SanitizeInput(c.PostForm("category"))
	if title == "" || authors == "" || abstract == "" || category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title, authors, abstract and category are required"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Manuscript file is required"})
		return
	}
	if !utils.AllowedManuscriptFile(file.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Please upload a PDF, DOC, DOCX, TXT, or RTF file."})
		return
	}

	storedName := utils.StoredFilename(user.UserID, 0, file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(uploadPath(), storedName)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store manuscript file"})
		return
	}

	now := time.Now()
	submission := models.Submission{
		Title:       title,
		Authors:     authors,
		Abstract:    abstract,
		Category:    category,
		FilePath:    storedName,
		Status:      models.StatusSubmitted,
		AuthorID:    user.UserID,
		SubmittedAt: now,
		UpdatedAt:   now,
	}
	if keywords := utils.SanitizeInput(c.PostForm("keywords")); keywords != "" {
		submission.Keywords = &keywords
	}
	if coverLetter := utils.SanitizeInput(c.PostForm("cover_letter")); coverLetter != "" {
		submission.CoverLetter = &coverLetter
	}

	if err := config.DB.Create(&submission).Error; err != nil {
		discardUpload(filepath.Join(uploadPath(), storedName))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create submission"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"submission": submission,
		"message":    "Your submission has been received successfully",
	})
}

// GetMySubmissions lists the author's own submissions with filters, sorting
// and pagination.
func GetMySubmissions(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	query := config.DB.Model(&models.Submission{}).Where("author_id = ?", user.UserID)

	if statuses := c.QueryArray("status"); len(statuses) > 0 {
		for _, status := range statuses {
			if !models.ValidSubmissionStatus(status) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
				return
			}
		}
		query = query.Where("status IN ?", statuses)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	switch c.DefaultQuery("sort", "submitted_desc") {
	case "submitted_desc":
		query = query.Order("submitted_at DESC")
	case "submitted_asc":
		query = query.Order("submitted_at ASC")
	case "title_asc":
		query = query.Order("title ASC")
	case "title_desc":
		query = query.Order("title DESC")
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sort option"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	var submissions []models.Submission
	if err := query.Offset((page - 1) * perPage).Limit(perPage).Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"submissions": submissions,
		"total":       total,
		"page":        page,
		"per_page":    perPage,
	})
}

// GetSubmission returns one submission with its reviews, decisions, revisions
// and publication. Visible to admins, editors, the owning author and the
// submission's reviewers.
func GetSubmission(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	var submission models.Submission
	if err := config.DB.Preload("Author").
		Preload("Reviews.Reviewer").
		Preload("Decisions.Editor").
		Preload("Revisions").
		Preload("Publication.Issue").
		Where("submission_id = ?", submissionID).
		First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load submission"})
		return
	}

	allowed := user.IsAdmin() || user.IsEditor() || user.UserID == submission.AuthorID
	if !allowed {
		for _, review := range submission.Reviews {
			if review.ReviewerID == user.UserID {
				allowed = true
				break
			}
		}
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to view this submission"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"submission": submission,
	})
}

// SubmitRevision uploads a new manuscript version for a submission in the
// revisions status.
func SubmitRevision(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Revised manuscript file is required"})
		return
	}
	if !utils.AllowedManuscriptFile(file.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Please upload a PDF, DOC, DOCX, TXT, or RTF file."})
		return
	}

	// Round in the stored name is a display hint; the authoritative round is
	// assigned inside the revision transaction.
	var priorRevisions int64
	config.DB.Model(&models.Revision{}).Where("submission_id = ?", submissionID).Count(&priorRevisions)

	storedName := utils.StoredFilename(user.UserID, int(priorRevisions)+1, file.Filename)
	dest := filepath.Join(uploadPath(), storedName)
	if err := c.SaveUploadedFile(file, dest); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store manuscript file"})
		return
	}

	revision, err := lifecycleService.SubmitRevision(user, services.SubmitRevisionInput{
		SubmissionID: submissionID,
		FilePath:     storedName,
		CoverLetter:  utils.SanitizeInput(c.PostForm("cover_letter")),
	})
	if err != nil {
		discardUpload(dest)
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"revision": revision,
		"message":  "Your revision has been submitted successfully",
	})
}

// WithdrawSubmission withdraws a submission from consideration.
func WithdrawSubmission(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	submission, err := lifecycleService.Withdraw(user, submissionID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"submission": submission,
		"message":    "Your submission has been withdrawn",
	})
}
