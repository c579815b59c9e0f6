package services

import (
	"errors"
	"machineguard/compliance"
	"machineguard/model"
	"time"

	"gorm.io/gorm"
)

// FetchRunRecords loads runs started at or after since, with user, machine
// and template labels joined in, shaped for the aggregation engine.
func FetchRunRecords(db *gorm.DB, since time.Time) ([]compliance.RunRecord, error) {
	var rows []struct {
		RunID        int        `gorm:"column:run_id"`
		TemplateID   int        `gorm:"column:template_id"`
		TemplateName string     `gorm:"column:template_name"`
		MachineID    int        `gorm:"column:machine_id"`
		MachineName  string     `gorm:"column:machine_name"`
		UserID       int        `gorm:"column:user_id"`
		UserName     string     `gorm:"column:user_name"`
		Status       string     `gorm:"column:status"`
		StartedAt    time.Time  `gorm:"column:started_at"`
		CompletedAt  *time.Time `gorm:"column:completed_at"`
	}

	err := db.Table("checklist_runs").
		Select("checklist_runs.run_id, checklist_runs.template_id, checklist_templates.name AS template_name, "+
			"checklist_runs.machine_id, machines.name AS machine_name, "+
			"checklist_runs.user_id, users.name AS user_name, "+
			"checklist_runs.status, checklist_runs.started_at, checklist_runs.completed_at").
		Joins("JOIN checklist_templates ON checklist_templates.template_id = checklist_runs.template_id").
		Joins("JOIN machines ON machines.machine_id = checklist_runs.machine_id").
		Joins("JOIN users ON users.user_id = checklist_runs.user_id").
		Where("checklist_runs.started_at >= ?", since).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	records := make([]compliance.RunRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, compliance.RunRecord{
			RunID:        row.RunID,
			TemplateID:   row.TemplateID,
			TemplateName: row.TemplateName,
			MachineID:    row.MachineID,
			MachineName:  row.MachineName,
			UserID:       row.UserID,
			UserName:     row.UserName,
			Status:       row.Status,
			StartedAt:    row.StartedAt,
			CompletedAt:  row.CompletedAt,
		})
	}
	return records, nil
}

// CollectFailedAnswers scores every supplied run and returns its failed
// checks. Runs whose template version has since disappeared are skipped as
// unscoreable rather than guessed at; the report still renders.
func CollectFailedAnswers(db *gorm.DB, runs []compliance.RunRecord) ([]compliance.FailedAnswer, error) {
	if len(runs) == 0 {
		return nil, nil
	}

	runIDs := make([]int, 0, len(runs))
	for _, run := range runs {
		runIDs = append(runIDs, run.RunID)
	}

	var rows []model.ChecklistAnswer
	if err := db.Where("run_id IN ?", runIDs).Find(&rows).Error; err != nil {
		return nil, err
	}

	byRun := make(map[int][]model.ChecklistAnswer)
	for _, row := range rows {
		byRun[row.RunID] = append(byRun[row.RunID], row)
	}

	defs := make(map[int]*compliance.TemplateDefinition)
	var failed []compliance.FailedAnswer
	for _, run := range runs {
		def, ok := defs[run.TemplateID]
		if !ok {
			loaded, err := LoadTemplateDefinition(db, run.TemplateID)
			if err != nil {
				if errors.Is(err, compliance.ErrTemplateNotFound) {
					defs[run.TemplateID] = nil
					continue
				}
				return nil, err
			}
			def = &loaded
			defs[run.TemplateID] = def
		}
		if def == nil {
			continue
		}

		score := compliance.ScoreRun(*def, mapAnswers(byRun[run.RunID]))
		for _, outcome := range score.PerItem {
			if outcome.Outcome == compliance.OutcomeFail {
				failed = append(failed, compliance.FailedAnswer{RunID: run.RunID, ItemID: outcome.ItemID})
			}
		}
	}
	return failed, nil
}
