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

func TemplateController(router *gin.Engine, db *gorm.DB) {
	routes := router.Group("/template", middleware.AccessTokenMiddleware())
	{
		routes.GET("/all", func(c *gin.Context) {
			ReadAllTemplates(c, db)
		})
		routes.GET("/:templateid", func(c *gin.Context) {
			ReadTemplate(c, db)
		})
	}
}

func ReadAllTemplates(c *gin.Context, db *gorm.DB) {
	query := db.Model(&model.ChecklistTemplate{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var templates []model.ChecklistTemplate
	if err := query.Order("name ASC, version DESC").Find(&templates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch templates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

func ReadTemplate(c *gin.Context, db *gorm.DB) {
	templateID, err := strconv.Atoi(c.Param("templateid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
		return
	}

	var template model.ChecklistTemplate
	if err := db.Preload("Sections", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Preload("Sections.Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("template_id = ?", templateID).First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch template"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"template": template})
}
