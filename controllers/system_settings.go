package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetSystemSettings returns all system settings from the cache.
func GetSystemSettings(c *gin.Context) {
	settings, err := settingsService.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "settings": settings})
}

type UpdateSettingsRequest struct {
	Settings map[string]string `json:"settings" binding:"required"`
}

// UpdateSystemSettings upserts the given keys and invalidates the cache.
func UpdateSystemSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Settings) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	for key, value := range req.Settings {
		if key == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Setting keys must not be empty"})
			return
		}
		if err := settingsService.Set(key, value); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
			return
		}
	}

	settings, err := settingsService.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"settings": settings,
		"message":  "Settings updated successfully",
	})
}

// DOIHealthCheck queries the configured registration agency for the
// journal's DOI records and reports metadata problems.
func DOIHealthCheck(c *gin.Context) {
	organizationID := c.Query("organization_id")
	if organizationID == "" {
		organizationID, _ = settingsService.Get("doi_organization_id", "")
	}
	if organizationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No DOI organization configured"})
		return
	}

	service := c.DefaultQuery("service", "crossref")
	if service != "crossref" && service != "datacite" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Service must be crossref or datacite"})
		return
	}

	report, err := doiService.HealthReport(c.Request.Context(), organizationID, service)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "DOI registry lookup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "report": report})
}
