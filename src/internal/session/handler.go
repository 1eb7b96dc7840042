package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"kennelhub-session-svc/src/internal/config"
	"kennelhub-session-svc/src/internal/models"
)

type Handler interface {
	HandleSession(c *gin.Context)
}

type handler struct {
	config  *config.Configuration
	service Service
}

func NewHandler(cfg *config.Configuration, service Service) Handler {
	return &handler{
		config:  cfg,
		service: service,
	}
}

// HandleSession is the single inbound trigger: a normal call acquires a
// session, a call with cleanup=true invalidates expired records.
func (h *handler) HandleSession(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
	defer cancel()

	if c.Query("cleanup") == "true" {
		h.handleCleanup(ctx, c)
		return
	}

	if err := h.config.Validate(); err != nil {
		logrus.WithError(err).Error("Session request rejected, configuration incomplete")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	record, err := h.service.Acquire(ctx)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, models.ErrLoginFailed) {
			status = http.StatusBadRequest
		}

		logrus.WithError(err).Error("Failed to acquire session")
		c.JSON(status, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"sessionId":   record.SessionID,
		"expiresAt":   record.ExpiresAt.Format(time.RFC3339),
		"loginMethod": record.LoginMethod,
	})
}

func (h *handler) handleCleanup(ctx context.Context, c *gin.Context) {
	invalidated, err := h.service.Cleanup(ctx)
	if err != nil {
		logrus.WithError(err).Error("Cleanup failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("invalidated %d expired sessions", invalidated),
	})
}
