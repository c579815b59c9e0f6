package maintenance

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

func MaintenanceController(router *gin.Engine, db *gorm.DB) {
	routes := router.Group("/maintenance", middleware.AccessTokenMiddleware())
	{
		routes.GET("/all", func(c *gin.Context) {
			ReadAllTasks(c, db)
		})
		routes.GET("/:taskid", func(c *gin.Context) {
			ReadTask(c, db)
		})
	}
}

// ReadAllTasks lists maintenance tasks with their derived compliance
// snapshot. The stored status is refreshed lazily here — there is no
// background job — and completed/cancelled stay as they are.
func ReadAllTasks(c *gin.Context, db *gorm.DB) {
	query := db.Model(&model.MaintenanceTask{})
	if machineID := c.Query("machine_id"); machineID != "" {
		query = query.Where("machine_id = ?", machineID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var tasks []model.MaintenanceTask
	if err := query.Order("due_at IS NULL, due_at ASC").Find(&tasks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	cycles, err := machineCycles(db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch machine counters"})
		return
	}

	now := time.Now()
	snapshots := make([]services.TaskSnapshot, 0, len(tasks))
	for i := range tasks {
		task := &tasks[i]
		snapshot := services.SnapshotTask(task, cycles[task.MachineID], now)
		refreshStoredStatus(db, task, snapshot.Status)
		snapshots = append(snapshots, snapshot)
	}

	c.JSON(http.StatusOK, gin.H{"tasks": snapshots})
}

func ReadTask(c *gin.Context, db *gorm.DB) {
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

	machine, err := services.GetMachineData(db, task.MachineID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch machine"})
		return
	}

	snapshot := services.SnapshotTask(task, machine.CycleCount, time.Now())
	refreshStoredStatus(db, task, snapshot.Status)

	c.JSON(http.StatusOK, gin.H{"task": task, "snapshot": snapshot})
}

// refreshStoredStatus persists the derived upcoming/due/overdue transition
// when the classifier moved it. Terminal statuses never change here.
func refreshStoredStatus(db *gorm.DB, task *model.MaintenanceTask, derived string) {
	if task.Status == compliance.TaskCompleted || task.Status == compliance.TaskCancelled {
		return
	}
	if derived == task.Status {
		return
	}
	if err := db.Model(task).Update("status", derived).Error; err == nil {
		task.Status = derived
	}
}

func machineCycles(db *gorm.DB) (map[int]int, error) {
	var machines []model.Machine
	if err := db.Select("machine_id", "cycle_count").Find(&machines).Error; err != nil {
		return nil, err
	}
	cycles := make(map[int]int, len(machines))
	for _, machine := range machines {
		cycles[machine.MachineID] = machine.CycleCount
	}
	return cycles, nil
}
