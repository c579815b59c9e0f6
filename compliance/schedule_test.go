package compliance

import (
	"errors"
	"testing"
	"time"
)

func TestComputeNextDue_TimeBased(t *testing.T) {
	anchor := time.Date(2026, 1, 10, 8, 30, 0, 0, time.UTC)

	got, err := ComputeNextDue(Schedule{Type: ScheduleTimeBased, IntervalDays: 30}, anchor, 0)
	if err != nil {
		t.Fatalf("ComputeNextDue: %v", err)
	}
	if got.DueAt == nil {
		t.Fatal("DueAt is nil, want a date")
	}
	want := time.Date(2026, 2, 9, 8, 30, 0, 0, time.UTC)
	if !got.DueAt.Equal(want) {
		t.Errorf("DueAt = %v, want %v", got.DueAt, want)
	}
	if got.UsageDue {
		t.Error("UsageDue = true for a time_based schedule")
	}
}

func TestComputeNextDue_CalendarDaysAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// 30 calendar days starting before the spring-forward transition
	anchor := time.Date(2026, 3, 1, 15, 0, 0, 0, loc)
	got, err := ComputeNextDue(Schedule{Type: ScheduleTimeBased, IntervalDays: 30}, anchor, 0)
	if err != nil {
		t.Fatalf("ComputeNextDue: %v", err)
	}

	due := *got.DueAt
	if due.Year() != 2026 || due.Month() != time.March || due.Day() != 31 {
		t.Errorf("due date = %v, want 2026-03-31", due)
	}
	if due.Hour() != 15 || due.Minute() != 0 {
		t.Errorf("due wall-clock = %02d:%02d, want 15:00 preserved across DST", due.Hour(), due.Minute())
	}
}

func TestComputeNextDue_UsageBased(t *testing.T) {
	anchor := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	schedule := Schedule{Type: ScheduleUsageBased, IntervalCycles: 500}

	tests := []struct {
		name   string
		cycles int
		due    bool
	}{
		{"below interval", 499, false},
		{"exactly at interval", 500, true},
		{"past interval", 501, true},
		{"no usage yet", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeNextDue(schedule, anchor, tt.cycles)
			if err != nil {
				t.Fatalf("ComputeNextDue: %v", err)
			}
			if got.UsageDue != tt.due {
				t.Errorf("UsageDue = %v, want %v", got.UsageDue, tt.due)
			}
			if got.DueAt != nil {
				t.Errorf("DueAt = %v, want nil (usage_based schedules produce no date)", got.DueAt)
			}
		})
	}
}

func TestComputeNextDue_Mixed(t *testing.T) {
	anchor := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	schedule := Schedule{Type: ScheduleMixed, IntervalDays: 90, IntervalCycles: 1000}

	got, err := ComputeNextDue(schedule, anchor, 1200)
	if err != nil {
		t.Fatalf("ComputeNextDue: %v", err)
	}
	if got.DueAt == nil {
		t.Fatal("DueAt is nil, want a date from the time component")
	}
	if !got.DueAt.Equal(anchor.AddDate(0, 0, 90)) {
		t.Errorf("DueAt = %v, want anchor+90d", got.DueAt)
	}
	if !got.UsageDue {
		t.Error("UsageDue = false, want true (usage component fired first)")
	}
}

func TestComputeNextDue_InvalidSchedules(t *testing.T) {
	anchor := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		schedule Schedule
	}{
		{"zero interval days", Schedule{Type: ScheduleTimeBased, IntervalDays: 0}},
		{"negative interval days", Schedule{Type: ScheduleTimeBased, IntervalDays: -7}},
		{"zero interval cycles", Schedule{Type: ScheduleUsageBased, IntervalCycles: 0}},
		{"negative interval cycles", Schedule{Type: ScheduleUsageBased, IntervalCycles: -100}},
		{"mixed with bad days", Schedule{Type: ScheduleMixed, IntervalDays: 0, IntervalCycles: 100}},
		{"mixed with bad cycles", Schedule{Type: ScheduleMixed, IntervalDays: 30, IntervalCycles: 0}},
		{"unknown type", Schedule{Type: "lunar", IntervalDays: 30}},
		{"empty type", Schedule{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeNextDue(tt.schedule, anchor, 0)
			if !errors.Is(err, ErrInvalidSchedule) {
				t.Errorf("error = %v, want ErrInvalidSchedule", err)
			}
		})
	}
}
