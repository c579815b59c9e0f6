package compliance

import (
	"testing"
	"time"
)

func mkRun(id, machineID, userID int, status string, startedAt time.Time) RunRecord {
	r := RunRecord{
		RunID:        id,
		TemplateID:   1,
		TemplateName: "Daily safety check",
		MachineID:    machineID,
		MachineName:  "Press",
		UserID:       userID,
		UserName:     "operator",
		Status:       status,
		StartedAt:    startedAt,
	}
	if status == RunCompleted || status == RunAborted {
		done := startedAt.Add(20 * time.Minute)
		r.CompletedAt = &done
	}
	return r
}

func TestAggregateReport_MachineCompliance(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	inWindow := now.Add(-48 * time.Hour)

	runs := []RunRecord{
		mkRun(1, 1, 1, RunCompleted, inWindow),
		mkRun(2, 1, 1, RunCompleted, inWindow),
		mkRun(3, 1, 1, RunCompleted, inWindow),
		mkRun(4, 1, 1, RunInProgress, inWindow),
		// machine 2's only run is far outside the window: it must still
		// appear, vacuously compliant
		mkRun(5, 2, 2, RunCompleted, now.AddDate(0, 0, -90)),
	}

	report := AggregateReport(runs, nil, 30, now)

	stats := map[int]MachineStats{}
	for _, m := range report.MachineStats {
		stats[m.MachineID] = m
	}

	m1 := stats[1]
	if m1.TotalRuns != 4 || m1.CompletedChecklists != 3 {
		t.Fatalf("machine 1 = %+v, want 4 runs / 3 completed", m1)
	}
	if m1.Compliance != 75 {
		t.Errorf("machine 1 compliance = %d, want 75", m1.Compliance)
	}

	m2 := stats[2]
	if m2.TotalRuns != 0 {
		t.Fatalf("machine 2 TotalRuns = %d, want 0 (run outside window)", m2.TotalRuns)
	}
	if m2.Compliance != 100 {
		t.Errorf("machine 2 compliance = %d, want 100 (no runs is vacuously compliant)", m2.Compliance)
	}
}

func TestAggregateReport_UserStats(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	early := now.Add(-72 * time.Hour)
	late := now.Add(-24 * time.Hour)

	runs := []RunRecord{
		mkRun(1, 1, 1, RunCompleted, early),
		mkRun(2, 1, 1, RunCompleted, late),
		mkRun(3, 1, 1, RunInProgress, late),
		mkRun(4, 1, 2, RunCompleted, early),
		mkRun(5, 1, 2, RunAborted, early),
	}
	failed := []FailedAnswer{
		{RunID: 1, ItemID: 10},
		{RunID: 1, ItemID: 11},
		{RunID: 4, ItemID: 10},
		{RunID: 99, ItemID: 10}, // orphan, must be ignored
	}

	report := AggregateReport(runs, failed, 30, now)

	if len(report.UserStats) != 2 {
		t.Fatalf("len(UserStats) = %d, want 2", len(report.UserStats))
	}
	// sorted descending by completed checklists
	if report.UserStats[0].UserID != 1 {
		t.Fatalf("top user = %d, want user 1", report.UserStats[0].UserID)
	}

	u1 := report.UserStats[0]
	if u1.CompletedChecklists != 2 || u1.InProgressChecklists != 1 || u1.FailedChecks != 2 {
		t.Errorf("user 1 = %+v, want 2 completed / 1 in progress / 2 failed checks", u1)
	}
	if u1.LastActive == nil || !u1.LastActive.Equal(late.Add(20*time.Minute)) {
		t.Errorf("user 1 LastActive = %v, want completion time of run 2", u1.LastActive)
	}

	if report.TotalChecklists != 5 || report.CompletedChecklists != 3 || report.InProgress != 1 {
		t.Errorf("totals = %d/%d/%d, want 5 total, 3 completed, 1 in progress",
			report.TotalChecklists, report.CompletedChecklists, report.InProgress)
	}
	if report.FailedChecks != 3 {
		t.Errorf("FailedChecks = %d, want 3 (orphan ignored)", report.FailedChecks)
	}
}

func TestAggregateReport_MonthlySeries(t *testing.T) {
	now := time.Date(2026, 6, 20, 12, 0, 0, 0, time.UTC)

	var runs []RunRecord
	monthStart := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		status := RunCompleted
		if i >= 6 {
			status = RunAborted
		}
		runs = append(runs, mkRun(i+1, 1, 1, status, monthStart.Add(time.Duration(i)*24*time.Hour)))
	}

	report := AggregateReport(runs, nil, 30, now)

	if len(report.MonthlyData) != 6 {
		t.Fatalf("len(MonthlyData) = %d, want 6", len(report.MonthlyData))
	}
	// oldest first
	if report.MonthlyData[0].Month != "2026-01" {
		t.Errorf("first month = %q, want 2026-01", report.MonthlyData[0].Month)
	}

	current := report.MonthlyData[5]
	if current.Month != "2026-06" {
		t.Fatalf("last month = %q, want 2026-06", current.Month)
	}
	if current.Total != 10 || current.Completed != 6 || current.Rate != 60 {
		t.Errorf("June bucket = %+v, want total:10 completed:6 rate:60", current)
	}

	// untouched months degrade to zero, not an error
	if report.MonthlyData[0].Total != 0 || report.MonthlyData[0].Rate != 0 {
		t.Errorf("empty month = %+v, want zeroes", report.MonthlyData[0])
	}
}

func TestAggregateReport_MonthlyBucketsByStartTime(t *testing.T) {
	now := time.Date(2026, 6, 3, 12, 0, 0, 0, time.UTC)

	// started in May, completed in June: must land in May's bucket
	started := time.Date(2026, 5, 31, 23, 0, 0, 0, time.UTC)
	run := mkRun(1, 1, 1, RunCompleted, started)
	completed := time.Date(2026, 6, 1, 0, 30, 0, 0, time.UTC)
	run.CompletedAt = &completed

	report := AggregateReport([]RunRecord{run}, nil, 30, now)

	var may, june MonthlyCount
	for _, m := range report.MonthlyData {
		switch m.Month {
		case "2026-05":
			may = m
		case "2026-06":
			june = m
		}
	}
	if may.Total != 1 || may.Completed != 1 {
		t.Errorf("May bucket = %+v, want the run counted there", may)
	}
	if june.Total != 0 {
		t.Errorf("June bucket = %+v, want empty", june)
	}
}

func TestAggregateReport_RecentActivity(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	var runs []RunRecord
	for i := 0; i < 25; i++ {
		runs = append(runs, mkRun(i+1, 1, 1, RunInProgress, now.Add(-time.Duration(i)*time.Hour)))
	}
	runs[0].Status = RunCompleted
	done := runs[0].StartedAt.Add(15 * time.Minute)
	runs[0].CompletedAt = &done
	runs[1].Status = RunAborted
	aborted := runs[1].StartedAt.Add(5 * time.Minute)
	runs[1].CompletedAt = &aborted

	report := AggregateReport(runs, nil, 30, now)

	if len(report.RecentActivity) != 20 {
		t.Fatalf("len(RecentActivity) = %d, want 20", len(report.RecentActivity))
	}
	feed := report.RecentActivity
	if feed[0].Event != EventChecklistCompleted {
		t.Errorf("feed[0].Event = %q, want checklist_completed", feed[0].Event)
	}
	if !feed[0].Timestamp.Equal(done) {
		t.Errorf("feed[0].Timestamp = %v, want completion time", feed[0].Timestamp)
	}
	if feed[1].Event != EventChecklistAborted {
		t.Errorf("feed[1].Event = %q, want checklist_aborted", feed[1].Event)
	}
	if feed[2].Event != EventChecklistStarted {
		t.Errorf("feed[2].Event = %q, want checklist_started", feed[2].Event)
	}
	if !feed[2].Timestamp.Equal(runs[2].StartedAt) {
		t.Errorf("feed[2].Timestamp = %v, want start time %v", feed[2].Timestamp, runs[2].StartedAt)
	}
}

func TestAggregateReport_EmptyInput(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	report := AggregateReport(nil, nil, 0, now)

	if report.TotalChecklists != 0 || report.FailedChecks != 0 {
		t.Errorf("empty report totals = %+v, want zeroes", report)
	}
	if len(report.MonthlyData) != 6 {
		t.Errorf("len(MonthlyData) = %d, want 6 even with no runs", len(report.MonthlyData))
	}
	if len(report.UserStats) != 0 || len(report.MachineStats) != 0 {
		t.Error("expected no user or machine entries for empty input")
	}
	if len(report.RecentActivity) != 0 {
		t.Error("expected an empty activity feed")
	}
}

func TestAggregateReport_Deterministic(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	runs := []RunRecord{
		mkRun(1, 3, 5, RunCompleted, now.Add(-24*time.Hour)),
		mkRun(2, 1, 4, RunCompleted, now.Add(-48*time.Hour)),
		mkRun(3, 2, 6, RunAborted, now.Add(-12*time.Hour)),
	}
	failed := []FailedAnswer{{RunID: 2, ItemID: 1}}

	first := AggregateReport(runs, failed, 30, now)
	for i := 0; i < 10; i++ {
		again := AggregateReport(runs, failed, 30, now)
		if len(again.UserStats) != len(first.UserStats) {
			t.Fatal("user stats length changed between identical invocations")
		}
		for j := range again.UserStats {
			if again.UserStats[j].UserID != first.UserStats[j].UserID {
				t.Fatalf("user ordering changed between identical invocations: %v vs %v",
					again.UserStats[j].UserID, first.UserStats[j].UserID)
			}
		}
		for j := range again.MachineStats {
			if again.MachineStats[j].MachineID != first.MachineStats[j].MachineID {
				t.Fatal("machine ordering changed between identical invocations")
			}
		}
	}
}
