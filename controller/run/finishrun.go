package run

import (
	"errors"
	"machineguard/compliance"
	"machineguard/dto"
	"machineguard/middleware"
	"machineguard/services"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func FinishRunController(router *gin.Engine, db *gorm.DB) {
	routes := router.Group("/run", middleware.AccessTokenMiddleware())
	{
		routes.PUT("/finish/:runid", func(c *gin.Context) {
			CompleteRun(c, db)
		})
		routes.PUT("/abort/:runid", func(c *gin.Context) {
			AbortRun(c, db)
		})
	}
}

// CompleteRun closes a run as completed. Transitions only move forward, so a
// closed run can never be reopened. The scorer reports critical failures and
// this handler enforces them: completion with an unacknowledged critical
// failure is rejected.
func CompleteRun(c *gin.Context, db *gorm.DB) {
	userID := c.MustGet("userId").(uint)

	runID, err := strconv.Atoi(c.Param("runid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid run ID"})
		return
	}

	// body is optional; absent means no acknowledgement
	var req dto.FinishRunRequest
	_ = c.ShouldBindJSON(&req)

	run, err := services.GetRunData(db, runID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Run not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch run"})
		return
	}

	if run.UserID != int(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the operator who started a run can finish it"})
		return
	}
	if run.Status != compliance.RunInProgress {
		c.JSON(http.StatusConflict, gin.H{"error": "Run is already closed"})
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

	if score.CriticalFailure && !req.AcknowledgeCritical {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Run has a critical failure and cannot be completed without acknowledgement",
			"score": score,
		})
		return
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":       compliance.RunCompleted,
		"completed_at": now,
	}
	if err := db.Model(run).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete run"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Run completed successfully",
		"run_id":  runID,
		"score":   score,
	})
}

func AbortRun(c *gin.Context, db *gorm.DB) {
	userID := c.MustGet("userId").(uint)

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

	if run.UserID != int(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the operator who started a run can abort it"})
		return
	}
	if run.Status != compliance.RunInProgress {
		c.JSON(http.StatusConflict, gin.H{"error": "Run is already closed"})
		return
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":       compliance.RunAborted,
		"completed_at": now,
	}
	if err := db.Model(run).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to abort run"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Run aborted",
		"run_id":  runID,
	})
}
