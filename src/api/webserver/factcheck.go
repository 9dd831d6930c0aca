package webserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/truthlens/truthlens-backend/src/factcheck"
	"github.com/truthlens/truthlens-backend/src/logging"
)

type FactCheck struct {
	checker Checker
}

func NewFactCheck(checker Checker) *FactCheck {
	return &FactCheck{checker: checker}
}

type reqFactCheck struct {
	Text *string `json:"text" binding:"required"`
}

func (h *FactCheck) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": apiTitle + " is running", "version": apiVersion})
}

func (h *FactCheck) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (h *FactCheck) Check(c *gin.Context) {
	var req reqFactCheck
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"detail": "Request body too large"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Request body must be JSON with a string field \"text\""})
		return
	}

	ctx := c.Request.Context()
	resp, err := h.checker.Check(ctx, *req.Text)
	if err != nil {
		logging.FromContext(ctx).Error("fact-check failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": internalErrorDetail(err)})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// internalErrorDetail names the failed stage without leaking upstream error text.
func internalErrorDetail(err error) string {
	var stageErr *factcheck.StageError
	if errors.As(err, &stageErr) {
		return "Internal server error: " + string(stageErr.Stage) + " failed"
	}
	return "Internal server error: unexpected failure"
}
