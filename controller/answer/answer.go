package answer

import (
	"errors"
	"machineguard/compliance"
	"machineguard/dto"
	"machineguard/middleware"
	"machineguard/model"
	"machineguard/services"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func AnswerController(router *gin.Engine, db *gorm.DB) {
	routes := router.Group("/answer", middleware.AccessTokenMiddleware())
	{
		routes.POST("/:runid", func(c *gin.Context) {
			SubmitAnswer(c, db)
		})
		routes.GET("/:runid", func(c *gin.Context) {
			ReadAnswers(c, db)
		})
	}
}

// SubmitAnswer upserts the answer for one item: at most one row per
// (run, item), so a resubmission overwrites rather than duplicates. Writes
// are only accepted while the run is in progress; answers freeze the moment
// the run closes.
func SubmitAnswer(c *gin.Context, db *gorm.DB) {
	userID := c.MustGet("userId").(uint)

	runID, err := strconv.Atoi(c.Param("runid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid run ID"})
		return
	}

	var req dto.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	run, err := services.GetRunData(db, runID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Run not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch run"})
		return
	}

	if run.UserID != int(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the operator who started a run can answer it"})
		return
	}
	if run.Status != compliance.RunInProgress {
		c.JSON(http.StatusConflict, gin.H{"error": "Run is closed; answers are immutable"})
		return
	}

	var item model.TemplateItem
	if err := db.Where("item_id = ? AND section_id = ?", req.ItemID, req.SectionID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in this section"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch item"})
		return
	}

	if msg := valueMatchesKind(item.Kind, req); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	var existing model.ChecklistAnswer
	err = db.Where("run_id = ? AND item_id = ?", runID, req.ItemID).First(&existing).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"bool_value":   req.BoolValue,
			"number_value": req.NumberValue,
			"text_value":   req.TextValue,
			"comment":      req.Comment,
			"photo_url":    req.PhotoURL,
		}
		if err := db.Model(&existing).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update answer"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Answer updated", "answer_id": existing.AnswerID})

	case errors.Is(err, gorm.ErrRecordNotFound):
		answer := model.ChecklistAnswer{
			RunID:       runID,
			SectionID:   req.SectionID,
			ItemID:      req.ItemID,
			BoolValue:   req.BoolValue,
			NumberValue: req.NumberValue,
			TextValue:   req.TextValue,
			Comment:     req.Comment,
			PhotoURL:    req.PhotoURL,
		}
		if err := db.Create(&answer).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save answer"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Answer saved", "answer_id": answer.AnswerID})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch answer"})
	}
}

func ReadAnswers(c *gin.Context, db *gorm.DB) {
	runID, err := strconv.Atoi(c.Param("runid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid run ID"})
		return
	}

	var answers []model.ChecklistAnswer
	if err := db.Where("run_id = ?", runID).Order("item_id ASC").Find(&answers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch answers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"answers": answers})
}

// valueMatchesKind enforces the tagged-variant boundary: the value must
// arrive in the one typed field matching the item kind.
func valueMatchesKind(kind string, req dto.SubmitAnswerRequest) string {
	switch kind {
	case compliance.ItemYesNo:
		if req.BoolValue == nil {
			return "yes_no items require bool_value"
		}
		if req.NumberValue != nil || req.TextValue != nil {
			return "yes_no items accept only bool_value"
		}
	case compliance.ItemNumeric:
		if req.NumberValue == nil {
			return "numeric items require number_value"
		}
		if req.BoolValue != nil || req.TextValue != nil {
			return "numeric items accept only number_value"
		}
	case compliance.ItemText, compliance.ItemSelection:
		if req.TextValue == nil {
			return "text and selection items require text_value"
		}
		if req.BoolValue != nil || req.NumberValue != nil {
			return "text and selection items accept only text_value"
		}
	}
	return ""
}
