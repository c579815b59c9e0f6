package services

import (
	"machineguard/compliance"
	"machineguard/model"

	"gorm.io/gorm"
)

// ScoreRunByID loads a run's template definition and answers and evaluates
// them. Returns compliance.ErrTemplateNotFound when the run references a
// template version that no longer exists.
func ScoreRunByID(db *gorm.DB, run *model.ChecklistRun) (compliance.Score, error) {
	def, err := LoadTemplateDefinition(db, run.TemplateID)
	if err != nil {
		return compliance.Score{}, err
	}

	var rows []model.ChecklistAnswer
	if err := db.Where("run_id = ?", run.RunID).Find(&rows).Error; err != nil {
		return compliance.Score{}, err
	}

	return compliance.ScoreRun(def, mapAnswers(rows)), nil
}

func mapAnswers(rows []model.ChecklistAnswer) []compliance.Answer {
	answers := make([]compliance.Answer, 0, len(rows))
	for _, row := range rows {
		answers = append(answers, compliance.Answer{
			ItemID:      row.ItemID,
			BoolValue:   row.BoolValue,
			NumberValue: row.NumberValue,
			TextValue:   row.TextValue,
			WrittenAt:   row.UpdatedAt,
		})
	}
	return answers
}
