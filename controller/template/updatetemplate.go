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

func UpdateTemplateController(router *gin.Engine, db *gorm.DB) {
	routes := router.Group("/template", middleware.AccessTokenMiddleware(), middleware.SupervisorMiddleware())
	{
		routes.PUT("/update/:templateid", func(c *gin.Context) {
			UpdateTemplate(c, db)
		})
	}
}

// UpdateTemplate edits a template definition. Drafts are rewritten in place.
// An active template is never mutated: its history is append-only, so the
// edit is saved as a brand new draft version that takes over once activated.
func UpdateTemplate(c *gin.Context, db *gorm.DB) {
	templateID, err := strconv.Atoi(c.Param("templateid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
		return
	}

	var req dto.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	if err := validateItems(req.Sections); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var current model.ChecklistTemplate
	if err := db.Where("template_id = ?", templateID).First(&current).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch template"})
		return
	}

	switch current.Status {
	case "draft":
		updateDraftInPlace(c, db, &current, req)
	case "active":
		cloneNewVersion(c, db, &current, req)
	default:
		c.JSON(http.StatusConflict, gin.H{"error": "Deprecated templates cannot be edited"})
	}
}

func updateDraftInPlace(c *gin.Context, db *gorm.DB, current *model.ChecklistTemplate, req dto.UpdateTemplateRequest) {
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

	updates := map[string]interface{}{
		"name":      req.Name,
		"type":      req.Type,
		"frequency": req.Frequency,
	}
	if err := tx.Model(current).Updates(updates).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update template"})
		return
	}

	if err := replaceSections(tx, current.TemplateID, req.Sections); err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update template items"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Template updated successfully",
		"template_id": current.TemplateID,
		"version":     current.Version,
	})
}

func cloneNewVersion(c *gin.Context, db *gorm.DB, current *model.ChecklistTemplate, req dto.UpdateTemplateRequest) {
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

	var latestVersion int
	if err := tx.Model(&model.ChecklistTemplate{}).
		Where("name = ?", current.Name).
		Select("COALESCE(MAX(version), 0)").
		Scan(&latestVersion).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve latest version"})
		return
	}

	next := model.ChecklistTemplate{
		Name:      req.Name,
		Type:      req.Type,
		Status:    "draft",
		Version:   latestVersion + 1,
		Frequency: req.Frequency,
	}
	if err := tx.Create(&next).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create new version"})
		return
	}

	if err := createSections(tx, next.TemplateID, req.Sections); err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create template items"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "New template version created; activate it to take over",
		"template_id": next.TemplateID,
		"version":     next.Version,
	})
}

func replaceSections(tx *gorm.DB, templateID int, sections []dto.CreateSectionRequest) error {
	var sectionIDs []int
	if err := tx.Model(&model.TemplateSection{}).
		Where("template_id = ?", templateID).
		Pluck("section_id", &sectionIDs).Error; err != nil {
		return err
	}
	if len(sectionIDs) > 0 {
		if err := tx.Where("section_id IN ?", sectionIDs).Delete(&model.TemplateItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("template_id = ?", templateID).Delete(&model.TemplateSection{}).Error; err != nil {
			return err
		}
	}
	return createSections(tx, templateID, sections)
}
