package controllers

import (
	"net/http"
	"strconv"
	"time"

	"journal-submission-api/config"
	"journal-submission-api/models"
	"journal-submission-api/utils"

	"github.com/gin-gonic/gin"
)

// GetIssues lists all journal issues, newest volume first.
func GetIssues(c *gin.Context) {
	var issues []models.Issue
	query := config.DB.Order("volume DESC, issue_number DESC")
	if status := c.Query("status"); status != "" {
		if !models.ValidIssueStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue status"})
			return
		}
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&issues).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch issues"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "issues": issues})
}

type CreateIssueRequest struct {
	Volume      int    `json:"volume" binding:"required,min=1"`
	IssueNumber int    `json:"issue_number" binding:"required,min=1"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// CreateIssue creates a new issue. Volume and issue number together must be
// unique.
func CreateIssue(c *gin.Context) {
	var req CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var count int64
	if err := config.DB.Model(&models.Issue{}).
		Where("volume = ? AND issue_number = ?", req.Volume, req.IssueNumber).
		Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing issues"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "An issue with this volume and number already exists"})
		return
	}

	issue := models.Issue{
		Volume:      req.Volume,
		IssueNumber: req.IssueNumber,
		Title:       utils.SanitizeInput(req.Title),
		Status:      models.IssueStatusPlanned,
		CreatedAt:   time.Now(),
	}
	if req.Description != "" {
		description := utils.SanitizeInput(req.Description)
		issue.Description = &description
	}
	if err := config.DB.Create(&issue).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create issue"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"issue":   issue,
		"message": "Issue created successfully",
	})
}

type UpdateIssueRequest struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	Status          *string    `json:"status"`
	PublicationDate *time.Time `json:"publication_date"`
}

// UpdateIssue updates an issue's title, description, status or publication
// date.
func UpdateIssue(c *gin.Context) {
	issueID, err := strconv.Atoi(c.Param("id"))
	if err != nil || issueID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	var req UpdateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var issue models.Issue
	if err := config.DB.First(&issue, issueID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = utils.SanitizeInput(*req.Title)
	}
	if req.Description != nil {
		updates["description"] = utils.SanitizeInput(*req.Description)
	}
	if req.Status != nil {
		if !models.ValidIssueStatus(*req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue status"})
			return
		}
		updates["status"] = *req.Status
	}
	if req.PublicationDate != nil {
		updates["publication_date"] = *req.PublicationDate
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	if err := config.DB.Model(&issue).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update issue"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "issue": issue, "message": "Issue updated successfully"})
}

// DeleteIssue removes an issue and its scheduled publications. Issues with
// published articles cannot be deleted.
func DeleteIssue(c *gin.Context) {
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

	var publishedCount int64
	if err := config.DB.Model(&models.Publication{}).
		Where("issue_id = ? AND status = ?", issueID, models.PublicationPublished).
		Count(&publishedCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check publications"})
		return
	}
	if publishedCount > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Cannot delete an issue with published articles"})
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("issue_id = ?", issueID).Delete(&models.Publication{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete issue"})
		return
	}
	if err := tx.Delete(&issue).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete issue"})
		return
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete issue"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Issue deleted successfully"})
}
