package controllers

import (
	"errors"
	"net/http"

	"journal-submission-api/services"

	"github.com/gin-gonic/gin"
)

// respondWorkflowError translates a typed workflow failure into an HTTP
// response. The kind picks the status code; the code field lets clients
// branch without parsing messages.
func respondWorkflowError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch services.KindOf(err) {
	case services.KindForbidden:
		status = http.StatusForbidden
	case services.KindInvalidState:
		status = http.StatusUnprocessableEntity
	case services.KindConflict:
		status = http.StatusConflict
	case services.KindNotFound:
		status = http.StatusNotFound
	}

	message := "Internal server error"
	var wf *services.WorkflowError
	if errors.As(err, &wf) && wf.Kind != services.KindStorage {
		message = wf.Message
	}

	c.JSON(status, gin.H{
		"error": message,
		"code":  services.CodeOf(err),
	})
}
