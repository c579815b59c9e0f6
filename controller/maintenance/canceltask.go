package maintenance

import (
	"errors"
	"machineguard/compliance"
	"machineguard/middleware"
	"machineguard/services"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func CancelTaskController(router *gin.Engine, db *gorm.DB) {
	routes := router.Group("/maintenance", middleware.AccessTokenMiddleware(), middleware.SupervisorMiddleware())
	{
		routes.PUT("/cancel/:taskid", func(c *gin.Context) {
			CancelTask(c, db)
		})
	}
}

func CancelTask(c *gin.Context, db *gorm.DB) {
	taskID, err := strconv.Atoi(c.Param("taskid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
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

	// cancelled is terminal; no amount of date math reopens it
	if err := db.Model(task).Update("status", compliance.TaskCancelled).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task cancelled", "task_id": taskID})
}
