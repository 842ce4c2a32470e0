package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/prysmhq/prysm_backend/internal/logging"
	"github.com/prysmhq/prysm_backend/internal/models"
)

// GlobalController is the error-log sink: clients report failures once, the
// backend records them and echoes them to the structured log.
type GlobalController struct {
	DB  *gorm.DB
	Log logging.Logger
}

type errorReportRequest struct {
	Level   string `json:"level" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Message string `json:"message" binding:"required"`
	Stack   string `json:"stack"`
	Context string `json:"context"`
}

func (g *GlobalController) LogError(c *gin.Context) {
	var req errorReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry := models.ErrorLog{
		Level:   req.Level,
		Name:    req.Name,
		Message: req.Message,
		Stack:   req.Stack,
		Context: req.Context,
	}

	g.Log.Error(c.Request.Context(), "client error report",
		"level", req.Level, "name", req.Name, "message", req.Message, "context", req.Context)

	if err := g.DB.WithContext(c.Request.Context()).Create(&entry).Error; err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service temporarily unavailable"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Error logged successfully"})
}
