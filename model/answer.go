// model/answer.go
package model

import (
	"time"
)

// ChecklistAnswer holds at most one answer per (run, item); writes go through
// an upsert keyed on that pair. Rows are frozen once the run closes.
type ChecklistAnswer struct {
	AnswerID  int `gorm:"column:answer_id;primaryKey;autoIncrement"`
	RunID     int `gorm:"column:run_id;not null;uniqueIndex:idx_run_item"`
	SectionID int `gorm:"column:section_id;not null"`
	ItemID    int `gorm:"column:item_id;not null;uniqueIndex:idx_run_item"`

	// exactly one of the value columns is set, matching the item kind
	BoolValue   *bool    `gorm:"column:bool_value"`
	NumberValue *float64 `gorm:"column:number_value"`
	TextValue   *string  `gorm:"column:text_value;type:text"`

	Comment   *string   `gorm:"column:comment;type:text"`
	PhotoURL  *string   `gorm:"column:photo_url;type:varchar(500)"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Relations
	Run ChecklistRun `gorm:"foreignKey:RunID;references:RunID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE"`
}

func (ChecklistAnswer) TableName() string {
	return "checklist_answers"
}
