package compliance

import (
	"testing"
	"time"
)

func tp(t time.Time) *time.Time { return &t }

func TestClassify_Boundaries(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		due         *time.Time
		lifecycle   string
		wantStatus  string
		wantOverdue int
	}{
		{"no schedule", nil, RunInProgress, StatusOnTime, 0},
		{"completed short-circuits", tp(now.Add(-240 * time.Hour)), StatusCompleted, StatusCompleted, 0},
		{"exactly 3 days out", tp(now.Add(72 * time.Hour)), RunInProgress, StatusDueSoon, 0},
		{"3 days 1 second out", tp(now.Add(72*time.Hour + time.Second)), RunInProgress, StatusOnTime, 0},
		{"due this instant", tp(now), RunInProgress, StatusDueSoon, 0},
		{"2h10m out counts as due today", tp(now.Add(2*time.Hour + 10*time.Minute)), RunInProgress, StatusDueSoon, 0},
		{"1 second past due", tp(now.Add(-time.Second)), RunInProgress, StatusOverdue, 1},
		{"exactly 1 day past due", tp(now.Add(-24 * time.Hour)), RunInProgress, StatusOverdue, 1},
		{"25 hours past due", tp(now.Add(-25 * time.Hour)), RunInProgress, StatusOverdue, 2},
		{"10 days past due", tp(now.Add(-240 * time.Hour)), RunInProgress, StatusOverdue, 10},
		{"well in the future", tp(now.Add(30 * 24 * time.Hour)), RunInProgress, StatusOnTime, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, overdue := Classify(now, tt.due, tt.lifecycle)
			if status != tt.wantStatus {
				t.Errorf("status = %q, want %q", status, tt.wantStatus)
			}
			if overdue != tt.wantOverdue {
				t.Errorf("daysOverdue = %d, want %d", overdue, tt.wantOverdue)
			}
		})
	}
}

func TestClassify_Monotonic(t *testing.T) {
	// moving now earlier against a fixed due date must never worsen the
	// classification from on_time toward overdue
	due := time.Date(2026, 6, 20, 9, 0, 0, 0, time.UTC)

	rank := map[string]int{StatusOnTime: 0, StatusDueSoon: 1, StatusOverdue: 2}

	prev := -1
	for hoursAfterDue := 96; hoursAfterDue >= -96; hoursAfterDue -= 6 {
		now := due.Add(time.Duration(hoursAfterDue) * time.Hour)
		status, _ := Classify(now, &due, RunInProgress)
		r, ok := rank[status]
		if !ok {
			t.Fatalf("unexpected status %q at now=%v", status, now)
		}
		if prev != -1 && r > prev {
			t.Fatalf("classification worsened from rank %d to %d as now moved earlier (now=%v)", prev, r, now)
		}
		prev = r
	}
}

func TestClassify_HorizonConstant(t *testing.T) {
	// the 3-day due-soon horizon is a pinned policy value
	if DueSoonHorizonDays != 3 {
		t.Fatalf("DueSoonHorizonDays = %d, want 3", DueSoonHorizonDays)
	}
}

func TestTaskStatus(t *testing.T) {
	tests := []struct {
		classification string
		want           string
	}{
		{StatusOverdue, TaskOverdue},
		{StatusDueSoon, TaskDue},
		{StatusOnTime, TaskUpcoming},
	}
	for _, tt := range tests {
		if got := TaskStatus(tt.classification); got != tt.want {
			t.Errorf("TaskStatus(%q) = %q, want %q", tt.classification, got, tt.want)
		}
	}
}
