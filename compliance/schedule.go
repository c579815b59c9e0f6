// Package compliance implements the scheduling, classification, scoring and
// aggregation rules for machine checklists and maintenance tasks. Every
// function is pure: data comes in as parameters, results go out as return
// values, and callers persist whatever needs persisting.
package compliance

import (
	"fmt"
	"time"
)

// Schedule types supported by maintenance tasks.
const (
	ScheduleTimeBased  = "time_based"
	ScheduleUsageBased = "usage_based"
	ScheduleMixed      = "mixed"
)

// Schedule is a maintenance task's interval policy.
type Schedule struct {
	// Type is one of time_based, usage_based or mixed.
	Type string

	// IntervalDays is the calendar-day interval for time_based and mixed
	// schedules. Must be positive for those types.
	IntervalDays int

	// IntervalCycles is the usage interval for usage_based and mixed
	// schedules, expressed in machine cycles. Must be positive for those types.
	IntervalCycles int
}

// NextDue is the result of evaluating a schedule against the most recent
// completion event.
type NextDue struct {
	// DueAt is the next due timestamp. Nil for pure usage_based schedules,
	// which produce no date.
	DueAt *time.Time

	// UsageDue reports whether the usage component has fired, i.e. the
	// machine's cycle counter advanced by at least IntervalCycles since the
	// last completion. Always false for pure time_based schedules.
	UsageDue bool
}

// ComputeNextDue evaluates a schedule after a completion event.
//
// anchor is the last completion time, or the task creation time if the task
// has never been completed. usageSinceCompletion is the machine cycle counter
// delta since that event; the engine never reads the counter itself, it is an
// external input. For mixed schedules whichever component fires first wins.
//
// The due date is computed in calendar days, so a task completed today is due
// at the same wall-clock time interval_days later even across a DST change.
func ComputeNextDue(schedule Schedule, anchor time.Time, usageSinceCompletion int) (NextDue, error) {
	switch schedule.Type {
	case ScheduleTimeBased:
		due, err := timeDue(schedule, anchor)
		if err != nil {
			return NextDue{}, err
		}
		return NextDue{DueAt: &due}, nil

	case ScheduleUsageBased:
		usageDue, err := usageDue(schedule, usageSinceCompletion)
		if err != nil {
			return NextDue{}, err
		}
		return NextDue{UsageDue: usageDue}, nil

	case ScheduleMixed:
		due, err := timeDue(schedule, anchor)
		if err != nil {
			return NextDue{}, err
		}
		usageDue, err := usageDue(schedule, usageSinceCompletion)
		if err != nil {
			return NextDue{}, err
		}
		return NextDue{DueAt: &due, UsageDue: usageDue}, nil

	default:
		return NextDue{}, fmt.Errorf("%w: unknown schedule type %q", ErrInvalidSchedule, schedule.Type)
	}
}

func timeDue(schedule Schedule, anchor time.Time) (time.Time, error) {
	if schedule.IntervalDays <= 0 {
		return time.Time{}, fmt.Errorf("%w: interval_days must be positive, got %d", ErrInvalidSchedule, schedule.IntervalDays)
	}
	return anchor.AddDate(0, 0, schedule.IntervalDays), nil
}

func usageDue(schedule Schedule, usageSinceCompletion int) (bool, error) {
	if schedule.IntervalCycles <= 0 {
		return false, fmt.Errorf("%w: interval_cycles must be positive, got %d", ErrInvalidSchedule, schedule.IntervalCycles)
	}
	return usageSinceCompletion >= schedule.IntervalCycles, nil
}
