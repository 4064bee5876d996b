package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tawhidislam22/business-management/internal/database"
	"github.com/tawhidislam22/business-management/internal/models"
)

// ListAuditLogs returns the most recent audit entries. HR only.
func ListAuditLogs(c *gin.Context) {
	var logs []models.AuditLog
	if err := database.DB.
		Order("created_at desc").
		Limit(200).
		Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load audit log"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
