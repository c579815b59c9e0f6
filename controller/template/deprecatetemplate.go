package template

import (
	"errors"
	"machineguard/middleware"
	"machineguard/model"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func DeprecateTemplateController(router *gin.Engine, db *gorm.DB) {
	routes := router.Group("/template", middleware.AccessTokenMiddleware(), middleware.SupervisorMiddleware())
	{
		routes.PUT("/deprecate/:templateid", func(c *gin.Context) {
			DeprecateTemplate(c, db)
		})
	}
}

// DeprecateTemplate retires a version. The row stays behind so historical
// runs remain scoreable against the exact definition they ran with.
func DeprecateTemplate(c *gin.Context, db *gorm.DB) {
	templateID, err := strconv.Atoi(c.Param("templateid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
		return
	}

	var template model.ChecklistTemplate
	if err := db.Where("template_id = ?", templateID).First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch template"})
		return
	}

	if template.Status == "deprecated" {
		c.JSON(http.StatusOK, gin.H{"message": "Template already deprecated", "template_id": templateID})
		return
	}

	if err := db.Model(&template).Update("status", "deprecated").Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deprecate template"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Template deprecated successfully", "template_id": templateID})
}
