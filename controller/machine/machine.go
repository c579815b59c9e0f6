package machine

import (
	"errors"
	"machineguard/dto"
	"machineguard/middleware"
	"machineguard/model"
	"machineguard/services"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func MachineController(router *gin.Engine, db *gorm.DB) {
	routes := router.Group("/machine", middleware.AccessTokenMiddleware())
	{
		routes.GET("/all", func(c *gin.Context) {
			ReadAllMachines(c, db)
		})
		routes.GET("/:machineid", func(c *gin.Context) {
			ReadMachine(c, db)
		})
		routes.POST("/create", middleware.SupervisorMiddleware(), func(c *gin.Context) {
			CreateMachine(c, db)
		})
		routes.PUT("/cycles/:machineid", func(c *gin.Context) {
			UpdateCycles(c, db)
		})
	}
}

func ReadAllMachines(c *gin.Context, db *gorm.DB) {
	var machines []model.Machine
	if err := db.Order("name ASC").Find(&machines).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch machines"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"machines": machines})
}

func ReadMachine(c *gin.Context, db *gorm.DB) {
	machineID, err := strconv.Atoi(c.Param("machineid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid machine ID"})
		return
	}

	machine, err := services.GetMachineData(db, machineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Machine not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch machine"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"machine": machine})
}

func CreateMachine(c *gin.Context, db *gorm.DB) {
	var req dto.CreateMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	machine := model.Machine{
		Name:     req.Name,
		Location: req.Location,
		Status:   "active",
	}
	if err := db.Create(&machine).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create machine"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Machine created successfully", "machine_id": machine.MachineID})
}

// UpdateCycles records the machine's usage counter as reported by the shop
// floor. The counter is monotonic; a lower reading than the stored one is a
// reporting error, not a rollback.
func UpdateCycles(c *gin.Context, db *gorm.DB) {
	machineID, err := strconv.Atoi(c.Param("machineid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid machine ID"})
		return
	}

	var req dto.UpdateCyclesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	machine, err := services.GetMachineData(db, machineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Machine not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch machine"})
		return
	}

	if req.CycleCount < machine.CycleCount {
		c.JSON(http.StatusConflict, gin.H{
			"error": "cycle_count is below the stored counter; the counter only moves forward",
		})
		return
	}

	if err := db.Model(machine).Update("cycle_count", req.CycleCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cycle counter"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Cycle counter updated",
		"machine_id":  machineID,
		"cycle_count": req.CycleCount,
	})
}
