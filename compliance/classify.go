package compliance

import "time"

// Compliance statuses returned by Classify.
const (
	StatusOnTime    = "on_time"
	StatusDueSoon   = "due_soon"
	StatusOverdue   = "overdue"
	StatusCompleted = "completed"
)

// Maintenance task statuses derived from a classification. completed and
// cancelled are terminal, set by explicit user action, and never derived.
const (
	TaskUpcoming  = "upcoming"
	TaskDue       = "due"
	TaskOverdue   = "overdue"
	TaskCompleted = "completed"
	TaskCancelled = "cancelled"
)

// DueSoonHorizonDays is the fixed policy window: anything due within this
// many days is flagged due_soon. Not configurable per entity.
const DueSoonHorizonDays = 3

// Classify maps a due date against the current time onto a compliance status
// and a days-overdue count.
//
// A completed lifecycle status short-circuits everything else. A nil due date
// means the entity has no schedule and is never flagged. Otherwise the day
// difference due_at - now is rounded away from zero on any partial day, so a
// task due in 2h counts as due today (1 day remaining) and a task 1 second
// past due is already 1 day overdue. This is the single canonical rounding
// rule; nothing else in the repository recomputes it.
func Classify(now time.Time, dueAt *time.Time, lifecycleStatus string) (string, int) {
	if lifecycleStatus == StatusCompleted {
		return StatusCompleted, 0
	}
	if dueAt == nil {
		return StatusOnTime, 0
	}

	days := diffDays(now, *dueAt)
	switch {
	case days < 0:
		return StatusOverdue, -days
	case days <= DueSoonHorizonDays:
		return StatusDueSoon, 0
	default:
		return StatusOnTime, 0
	}
}

// TaskStatus maps a non-terminal classification onto the stored maintenance
// task status. Callers keep completed/cancelled sticky and must not call this
// for terminal tasks.
func TaskStatus(complianceStatus string) string {
	switch complianceStatus {
	case StatusOverdue:
		return TaskOverdue
	case StatusDueSoon:
		return TaskDue
	default:
		return TaskUpcoming
	}
}

// diffDays counts whole calendar days from now until due, rounding any
// partial day away from zero. Integer duration math on purpose: float
// division here caused off-by-one classifications at exact day boundaries.
func diffDays(now, due time.Time) int {
	d := due.Sub(now)
	days := int(d / (24 * time.Hour))
	switch {
	case d%(24*time.Hour) > 0:
		days++
	case d%(24*time.Hour) < 0:
		days--
	}
	return days
}
