// controller/report/report.go
package report

import (
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

func ReportController(router *gin.Engine, db *gorm.DB) {
	routes := router.Group("/report", middleware.AccessTokenMiddleware(), middleware.SupervisorMiddleware())
	{
		routes.GET("/dashboard", func(c *gin.Context) {
			ReadDashboard(c, db)
		})
		routes.GET("/compliance", func(c *gin.Context) {
			ReadCompliance(c, db)
		})
	}
}

// ReadDashboard aggregates run history into the dashboard payload. The
// engine is pure, so this handler only fetches records and hands them over;
// identical data yields an identical report.
func ReadDashboard(c *gin.Context, db *gorm.DB) {
	windowDays := compliance.DefaultWindowDays
	if days := c.Query("days"); days != "" {
		parsed, err := strconv.Atoi(days)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
			return
		}
		windowDays = parsed
	}

	now := time.Now()

	// fetch far enough back to cover both the day window and the
	// 6-calendar-month monthly series
	since := now.AddDate(0, 0, -windowDays)
	monthlySince := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -5, 0)
	if monthlySince.Before(since) {
		since = monthlySince
	}

	runs, err := services.FetchRunRecords(db, since)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch runs"})
		return
	}

	failedAnswers, err := services.CollectFailedAnswers(db, runs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to score runs"})
		return
	}

	report := compliance.AggregateReport(runs, failedAnswers, windowDays, now)
	c.JSON(http.StatusOK, gin.H{"report": report, "window_days": windowDays})
}

// ReadCompliance returns the derived compliance snapshot of every open
// maintenance task. Snapshots are computed per request and never stored, so
// they cannot go stale.
func ReadCompliance(c *gin.Context, db *gorm.DB) {
	var tasks []model.MaintenanceTask
	if err := db.Where("status NOT IN ?", []string{
		compliance.TaskCompleted, compliance.TaskCancelled,
	}).Order("due_at IS NULL, due_at ASC").Find(&tasks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	var machines []model.Machine
	if err := db.Select("machine_id", "cycle_count").Find(&machines).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch machine counters"})
		return
	}
	cycles := make(map[int]int, len(machines))
	for _, machine := range machines {
		cycles[machine.MachineID] = machine.CycleCount
	}

	now := time.Now()
	snapshots := make([]services.TaskSnapshot, 0, len(tasks))
	overdue := 0
	for i := range tasks {
		snapshot := services.SnapshotTask(&tasks[i], cycles[tasks[i].MachineID], now)
		if snapshot.ComplianceStatus == compliance.StatusOverdue {
			overdue++
		}
		snapshots = append(snapshots, snapshot)
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks":   snapshots,
		"overdue": overdue,
	})
}
