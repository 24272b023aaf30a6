package controllers

import (
	"net/http"

	"journal-submission-api/models"

	"github.com/gin-gonic/gin"
)

// currentUser returns the authenticated user stashed by AuthMiddleware. On a
// missing context it writes the error response and returns false.
func currentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get("currentUser")
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return nil, false
	}
	user, ok := value.(*models.User)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user context"})
		return nil, false
	}
	return user, true
}
