package run

import (
	"errors"
	"machineguard/compliance"
	"machineguard/middleware"
	"machineguard/model"
	"machineguard/services"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RunController(router *gin.Engine, db *gorm.DB) {
	routes := router.Group("/run", middleware.AccessTokenMiddleware())
	{
		routes.GET("/all", func(c *gin.Context) {
			ReadAllRuns(c, db)
		})
		routes.GET("/:runid", func(c *gin.Context) {
			ReadRun(c, db)
		})
	}
}

func ReadAllRuns(c *gin.Context, db *gorm.DB) {
	query := db.Model(&model.ChecklistRun{})
	if machineID := c.Query("machine_id"); machineID != "" {
		query = query.Where("machine_id = ?", machineID)
	}
	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var runs []model.ChecklistRun
	if err := query.Order("started_at DESC").Find(&runs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch runs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

// ReadRun returns one run with its live score and compliance snapshot
// attached. Both are computed on the way out and never persisted.
func ReadRun(c *gin.Context, db *gorm.DB) {
	runID, err := strconv.Atoi(c.Param("runid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid run ID"})
		return
	}

	run, err := services.GetRunData(db, runID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Run not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch run"})
		return
	}

	score, err := services.ScoreRunByID(db, run)
	if err != nil {
		if errors.Is(err, compliance.ErrTemplateNotFound) {
			c.JSON(http.StatusConflict, gin.H{"error": "Run references a missing template version and cannot be scored"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to score run"})
		return
	}

	lifecycle := run.Status
	if run.Status == compliance.RunCompleted {
		lifecycle = compliance.StatusCompleted
	}
	status, daysOverdue := compliance.Classify(time.Now(), run.DueDate, lifecycle)

	c.JSON(http.StatusOK, gin.H{
		"run":   run,
		"score": score,
		"compliance": gin.H{
			"compliance_status": status,
			"days_overdue":      daysOverdue,
		},
	})
}
