package scheduler

import (
	"errors"
	"log"
	"machineguard/compliance"
	"machineguard/model"
	"machineguard/services"
	"time"

	"gorm.io/gorm"
)

// RemindDueTasksJob writes one pending notification row per task that is due
// soon or overdue. Delivery (email, push) is someone else's job: an external
// worker polls these rows and flips is_send. At most one unsent reminder
// exists per task and status, so a task sitting overdue for a week does not
// pile up rows.
func RemindDueTasksJob(db *gorm.DB) {
	var tasks []model.MaintenanceTask
	if err := db.Where("status NOT IN ?", []string{
		compliance.TaskCompleted, compliance.TaskCancelled,
	}).Find(&tasks).Error; err != nil {
		log.Printf("reminder job: failed to fetch tasks: %v", err)
		return
	}

	var machines []model.Machine
	if err := db.Select("machine_id", "cycle_count").Find(&machines).Error; err != nil {
		log.Printf("reminder job: failed to fetch machines: %v", err)
		return
	}
	cycles := make(map[int]int, len(machines))
	for _, machine := range machines {
		cycles[machine.MachineID] = machine.CycleCount
	}

	now := time.Now()
	created := 0
	for i := range tasks {
		task := &tasks[i]
		snapshot := services.SnapshotTask(task, cycles[task.MachineID], now)

		var status string
		switch snapshot.ComplianceStatus {
		case compliance.StatusOverdue:
			status = "overdue"
		case compliance.StatusDueSoon:
			status = "due"
		default:
			continue
		}

		var existing model.Notification
		err := db.Where("task_id = ? AND status = ? AND is_send = ?", task.TaskID, status, "0").
			First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("reminder job: failed to check task %d: %v", task.TaskID, err)
			continue
		}

		notification := model.Notification{
			TaskID:      task.TaskID,
			Status:      status,
			DueAt:       task.DueAt,
			DaysOverdue: snapshot.DaysOverdue,
		}
		if err := db.Create(&notification).Error; err != nil {
			log.Printf("reminder job: failed to create notification for task %d: %v", task.TaskID, err)
			continue
		}
		created++
	}

	log.Printf("Reminder job finished, %d notification(s) created", created)
}
