package services

import (
	"errors"
	"machineguard/compliance"
	"machineguard/model"

	"gorm.io/gorm"
)

// LoadTemplateDefinition fetches one template version with its section/item
// tree and maps it into the engine's normalised shape. A missing version is
// reported as compliance.ErrTemplateNotFound so callers treat the run as
// unscoreable instead of guessing zero items.
func LoadTemplateDefinition(db *gorm.DB, templateID int) (compliance.TemplateDefinition, error) {
	var template model.ChecklistTemplate
	err := db.Preload("Sections", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Preload("Sections.Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("template_id = ?", templateID).First(&template).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return compliance.TemplateDefinition{}, compliance.ErrTemplateNotFound
		}
		return compliance.TemplateDefinition{}, err
	}

	def := compliance.TemplateDefinition{
		TemplateID: template.TemplateID,
		Name:       template.Name,
		Version:    template.Version,
	}
	for _, section := range template.Sections {
		sectionDef := compliance.SectionDefinition{
			SectionID: section.SectionID,
			Title:     section.Title,
		}
		for _, item := range section.Items {
			sectionDef.Items = append(sectionDef.Items, compliance.ItemDefinition{
				ItemID:   item.ItemID,
				Label:    item.Label,
				Kind:     item.Kind,
				Required: item.Required,
				Critical: item.Critical,
				MinValue: item.MinValue,
				MaxValue: item.MaxValue,
			})
		}
		def.Sections = append(def.Sections, sectionDef)
	}
	return def, nil
}
