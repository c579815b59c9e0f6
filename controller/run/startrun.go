package run

import (
	"errors"
	"machineguard/dto"
	"machineguard/middleware"
	"machineguard/model"
	"machineguard/services"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func StartRunController(router *gin.Engine, db *gorm.DB) {
	routes := router.Group("/run", middleware.AccessTokenMiddleware())
	{
		routes.POST("/start", func(c *gin.Context) {
			StartRun(c, db)
		})
	}
}

func StartRun(c *gin.Context, db *gorm.DB) {
	userID := c.MustGet("userId").(uint)

	var req dto.StartRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	var template model.ChecklistTemplate
	if err := db.Where("template_id = ?", req.TemplateID).First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch template"})
		return
	}
	if template.Status != "active" {
		c.JSON(http.StatusConflict, gin.H{"error": "Runs can only be started from an active template"})
		return
	}

	if _, err := services.GetMachineData(db, req.MachineID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Machine not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch machine"})
		return
	}

	run := model.ChecklistRun{
		TemplateID: req.TemplateID,
		MachineID:  req.MachineID,
		UserID:     int(userID),
		Status:     "in_progress",
		StartedAt:  time.Now(),
	}

	if req.DueDate != nil {
		dueDate, err := time.Parse(time.RFC3339, *req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid due_date, want RFC 3339"})
			return
		}
		run.DueDate = &dueDate
	}

	if err := db.Create(&run).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start run"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Run started successfully",
		"run_id":  run.RunID,
	})
}
