package maintenance

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

func CompleteTaskController(router *gin.Engine, db *gorm.DB) {
	routes := router.Group("/maintenance", middleware.AccessTokenMiddleware())
	{
		routes.PUT("/complete/:taskid", func(c *gin.Context) {
			CompleteTask(c, db)
		})
	}
}

// CompleteTask records a completion event. Preventative tasks re-arm: the
// completion anchors the schedule, the engine computes the next due date and
// the cycle counter is snapshotted for the usage component. Corrective tasks
// are one-shot and go terminal.
func CompleteTask(c *gin.Context, db *gorm.DB) {
	taskID, err := strconv.Atoi(c.Param("taskid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	// body is optional; completed_at defaults to now
	var req dto.CompleteTaskRequest
	_ = c.ShouldBindJSON(&req)

	completedAt := time.Now()
	if req.CompletedAt != nil {
		parsed, err := time.Parse(time.RFC3339, *req.CompletedAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid completed_at, want RFC 3339"})
			return
		}
		completedAt = parsed
	}

	task, err := services.GetTaskData(db, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		return
	}

	if task.Status == compliance.TaskCompleted || task.Status == compliance.TaskCancelled {
		c.JSON(http.StatusConflict, gin.H{"error": "Task is already closed"})
		return
	}

	machine, err := services.GetMachineData(db, task.MachineID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch machine"})
		return
	}

	updates := map[string]interface{}{
		"last_completed_at":     completedAt,
		"last_completed_cycles": machine.CycleCount,
	}

	if task.Type == "preventative" {
		// a fresh completion resets the usage delta to zero
		next, err := compliance.ComputeNextDue(services.TaskSchedule(task), completedAt, 0)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Stored schedule is invalid", "details": err.Error()})
			return
		}
		status, _ := compliance.Classify(time.Now(), next.DueAt, "")
		updates["due_at"] = next.DueAt
		updates["status"] = compliance.TaskStatus(status)
	} else {
		updates["status"] = compliance.TaskCompleted
		updates["due_at"] = nil
	}

	if err := db.Model(task).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record completion"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Completion recorded",
		"task_id": taskID,
		"due_at":  updates["due_at"],
		"status":  updates["status"],
	})
}
