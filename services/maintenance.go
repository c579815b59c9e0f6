package services

import (
	"machineguard/compliance"
	"machineguard/model"
	"time"
)

// TaskSnapshot is the derived compliance view of one maintenance task. It is
// computed per request and never stored, so it cannot go stale.
type TaskSnapshot struct {
	TaskID           int        `json:"task_id"`
	Name             string     `json:"name"`
	MachineID        int        `json:"machine_id"`
	Status           string     `json:"status"`
	DueAt            *time.Time `json:"due_at"`
	ComplianceStatus string     `json:"compliance_status"`
	DaysOverdue      int        `json:"days_overdue"`
	UsageDue         bool       `json:"usage_due"`
}

// SnapshotTask classifies a task against now and the machine's current cycle
// counter. Terminal tasks skip the classifier entirely: completed maps to the
// completed compliance status and cancelled keeps its own label.
//
// For usage_based and mixed schedules the usage component fires on the cycle
// delta since the last completion. A fired usage component with no (or a
// still-comfortable) date means the task is due now, so the snapshot is
// raised to due_soon at minimum.
func SnapshotTask(task *model.MaintenanceTask, machineCycles int, now time.Time) TaskSnapshot {
	snapshot := TaskSnapshot{
		TaskID:    task.TaskID,
		Name:      task.Name,
		MachineID: task.MachineID,
		Status:    task.Status,
		DueAt:     task.DueAt,
	}

	switch task.Status {
	case compliance.TaskCompleted:
		snapshot.ComplianceStatus = compliance.StatusCompleted
		return snapshot
	case compliance.TaskCancelled:
		snapshot.ComplianceStatus = compliance.TaskCancelled
		return snapshot
	}

	status, overdue := compliance.Classify(now, task.DueAt, task.Status)
	snapshot.ComplianceStatus = status
	snapshot.DaysOverdue = overdue

	if task.ScheduleType == compliance.ScheduleUsageBased || task.ScheduleType == compliance.ScheduleMixed {
		snapshot.UsageDue = usageFired(task, machineCycles)
		if snapshot.UsageDue && status == compliance.StatusOnTime {
			snapshot.ComplianceStatus = compliance.StatusDueSoon
		}
	}

	snapshot.Status = derivedTaskStatus(snapshot)
	return snapshot
}

// DeriveTaskStatus returns the stored status a non-terminal task should carry
// right now. Read paths persist the result when it differs from the stored
// value; there is no background job doing this.
func DeriveTaskStatus(task *model.MaintenanceTask, machineCycles int, now time.Time) string {
	if task.Status == compliance.TaskCompleted || task.Status == compliance.TaskCancelled {
		return task.Status
	}
	return SnapshotTask(task, machineCycles, now).Status
}

func derivedTaskStatus(snapshot TaskSnapshot) string {
	status := compliance.TaskStatus(snapshot.ComplianceStatus)
	if snapshot.UsageDue && status == compliance.TaskUpcoming {
		status = compliance.TaskDue
	}
	return status
}

func usageFired(task *model.MaintenanceTask, machineCycles int) bool {
	if task.IntervalCycles == nil || *task.IntervalCycles <= 0 {
		return false
	}
	baseline := 0
	if task.LastCompletedCycles != nil {
		baseline = *task.LastCompletedCycles
	}
	return machineCycles-baseline >= *task.IntervalCycles
}

// TaskSchedule maps a task's stored interval columns into the engine's
// schedule shape.
func TaskSchedule(task *model.MaintenanceTask) compliance.Schedule {
	schedule := compliance.Schedule{Type: task.ScheduleType}
	if task.IntervalDays != nil {
		schedule.IntervalDays = *task.IntervalDays
	}
	if task.IntervalCycles != nil {
		schedule.IntervalCycles = *task.IntervalCycles
	}
	return schedule
}
