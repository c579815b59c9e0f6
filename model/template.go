// model/template.go
package model

import (
	"time"
)

// ChecklistTemplate is one version of a checklist definition. Once a version
// is active its items are frozen; edits clone a new version row instead of
// mutating in place.
type ChecklistTemplate struct {
	TemplateID int    `gorm:"column:template_id;primaryKey;autoIncrement"`
	Name       string `gorm:"column:name;type:varchar(255);not null"`
	Type       string `gorm:"column:type;type:enum('safety','quality','startup','shutdown');default:'safety';not null"`
	Status     string `gorm:"column:status;type:enum('draft','active','deprecated');default:'draft';not null"`
	Version    int    `gorm:"column:version;default:1;not null"`
	Frequency  string `gorm:"column:frequency;type:varchar(50)"`
	CreateAt   time.Time `gorm:"column:create_at;autoCreateTime"`

	// Relations
	Sections []TemplateSection `gorm:"foreignKey:TemplateID;references:TemplateID"`
}

func (ChecklistTemplate) TableName() string {
	return "checklist_templates"
}

type TemplateSection struct {
	SectionID  int    `gorm:"column:section_id;primaryKey;autoIncrement"`
	TemplateID int    `gorm:"column:template_id;not null;index"`
	Title      string `gorm:"column:title;type:varchar(255);not null"`
	Position   int    `gorm:"column:position;default:0;not null"`

	// Relations
	Items []TemplateItem `gorm:"foreignKey:SectionID;references:SectionID"`
}

func (TemplateSection) TableName() string {
	return "template_sections"
}

type TemplateItem struct {
	ItemID    int      `gorm:"column:item_id;primaryKey;autoIncrement"`
	SectionID int      `gorm:"column:section_id;not null;index"`
	Label     string   `gorm:"column:label;type:varchar(500);not null"`
	Kind      string   `gorm:"column:kind;type:enum('yes_no','numeric','text','selection');not null"`
	Required  bool     `gorm:"column:required;default:false;not null"`
	Critical  bool     `gorm:"column:critical;default:false;not null"`
	MinValue  *float64 `gorm:"column:min_value"`
	MaxValue  *float64 `gorm:"column:max_value"`
	Options   *string  `gorm:"column:options;type:text"` // JSON array for selection items
	Position  int      `gorm:"column:position;default:0;not null"`
}

func (TemplateItem) TableName() string {
	return "template_items"
}
