package maintenance

import (
	"errors"
	"machineguard/compliance"
	"machineguard/dto"
	"machineguard/middleware"
	"machineguard/model"
	"machineguard/services"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func CreateTaskController(router *gin.Engine, db *gorm.DB) {
	routes := router.Group("/maintenance", middleware.AccessTokenMiddleware(), middleware.SupervisorMiddleware())
	{
		routes.POST("/create", func(c *gin.Context) {
			CreateTask(c, db)
		})
	}
}

// CreateTask validates the schedule at this boundary: a zero or negative
// interval never reaches storage, it is rejected loudly here because a
// silently wrong due date on a safety task is worse than an error.
func CreateTask(c *gin.Context, db *gorm.DB) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	machine, err := services.GetMachineData(db, req.MachineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Machine not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch machine"})
		return
	}

	schedule := compliance.Schedule{Type: req.ScheduleType}
	if req.IntervalDays != nil {
		schedule.IntervalDays = *req.IntervalDays
	}
	if req.IntervalCycles != nil {
		schedule.IntervalCycles = *req.IntervalCycles
	}

	// the task has never been completed, so creation time anchors the schedule
	now := time.Now()
	next, err := compliance.ComputeNextDue(schedule, now, 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule", "details": err.Error()})
		return
	}

	cyclesAtCreation := machine.CycleCount
	task := model.MaintenanceTask{
		MachineID:           req.MachineID,
		Name:                req.Name,
		Description:         req.Description,
		Type:                req.Type,
		ScheduleType:        req.ScheduleType,
		IntervalDays:        req.IntervalDays,
		IntervalCycles:      req.IntervalCycles,
		DueAt:               next.DueAt,
		LastCompletedCycles: &cyclesAtCreation,
		Status:              "upcoming",
	}

	if err := db.Create(&task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task created successfully",
		"task_id": task.TaskID,
		"due_at":  task.DueAt,
	})
}
