package template

import (
	"errors"
	"machineguard/dto"
	"machineguard/middleware"
	"machineguard/model"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func CreateTemplateController(router *gin.Engine, db *gorm.DB) {
	routes := router.Group("/template", middleware.AccessTokenMiddleware(), middleware.SupervisorMiddleware())
	{
		routes.POST("/create", func(c *gin.Context) {
			CreateTemplate(c, db)
		})
		routes.PUT("/activate/:templateid", func(c *gin.Context) {
			ActivateTemplate(c, db)
		})
	}
}

func CreateTemplate(c *gin.Context, db *gorm.DB) {
	var req dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	if err := validateItems(req.Sections); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx := db.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	template := model.ChecklistTemplate{
		Name:      req.Name,
		Type:      req.Type,
		Status:    "draft",
		Version:   1,
		Frequency: req.Frequency,
	}
	if err := tx.Create(&template).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create template"})
		return
	}

	if err := createSections(tx, template.TemplateID, req.Sections); err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create template items"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Template created successfully",
		"template_id": template.TemplateID,
		"version":     template.Version,
	})
}

// ActivateTemplate promotes a draft version. Any previously active version
// of the same checklist is deprecated in the same transaction, so exactly one
// version of a template is ever active.
func ActivateTemplate(c *gin.Context, db *gorm.DB) {
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

	if template.Status != "draft" {
		c.JSON(http.StatusConflict, gin.H{"error": "Only draft templates can be activated"})
		return
	}

	tx := db.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}

	if err := tx.Model(&model.ChecklistTemplate{}).
		Where("name = ? AND status = ?", template.Name, "active").
		Update("status", "deprecated").Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deprecate previous version"})
		return
	}

	if err := tx.Model(&template).Update("status", "active").Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to activate template"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Template activated successfully",
		"template_id": template.TemplateID,
		"version":     template.Version,
	})
}

func validateItems(sections []dto.CreateSectionRequest) error {
	for _, section := range sections {
		for _, item := range section.Items {
			if item.Kind == "numeric" && item.MinValue != nil && item.MaxValue != nil && *item.MinValue > *item.MaxValue {
				return errors.New("min_value must not exceed max_value")
			}
			if item.Kind == "selection" && (item.Options == nil || *item.Options == "") {
				return errors.New("selection items require options")
			}
		}
	}
	return nil
}

func createSections(tx *gorm.DB, templateID int, sections []dto.CreateSectionRequest) error {
	for position, sectionReq := range sections {
		section := model.TemplateSection{
			TemplateID: templateID,
			Title:      sectionReq.Title,
			Position:   position,
		}
		if err := tx.Create(&section).Error; err != nil {
			return err
		}
		for itemPosition, itemReq := range sectionReq.Items {
			item := model.TemplateItem{
				SectionID: section.SectionID,
				Label:     itemReq.Label,
				Kind:      itemReq.Kind,
				Required:  itemReq.Required,
				Critical:  itemReq.Critical,
				MinValue:  itemReq.MinValue,
				MaxValue:  itemReq.MaxValue,
				Options:   itemReq.Options,
				Position:  itemPosition,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
