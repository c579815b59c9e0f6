package compliance

import (
	"math"
	"sort"
	"time"
)

// Checklist run lifecycle statuses. Transitions only move forward:
// in_progress -> completed or aborted, never back.
const (
	RunInProgress = "in_progress"
	RunCompleted  = "completed"
	RunAborted    = "aborted"
)

// Activity event labels for the recent-activity feed.
const (
	EventChecklistStarted   = "checklist_started"
	EventChecklistCompleted = "checklist_completed"
	EventChecklistAborted   = "checklist_aborted"
)

// DefaultWindowDays is the trailing window used when the caller does not
// supply one.
const DefaultWindowDays = 30

// monthlySeriesMonths is how many trailing calendar months the monthly
// completion-rate series covers.
const monthlySeriesMonths = 6

// RunRecord is one checklist run with its user/machine/template labels
// already joined in by the storage layer.
type RunRecord struct {
	RunID        int
	TemplateID   int
	TemplateName string
	MachineID    int
	MachineName  string
	UserID       int
	UserName     string
	Status       string
	StartedAt    time.Time
	CompletedAt  *time.Time
}

// FailedAnswer identifies one failed check; it is attributed to a user and
// machine through its parent run.
type FailedAnswer struct {
	RunID  int
	ItemID int
}

type UserStats struct {
	UserID               int        `json:"user_id"`
	Name                 string     `json:"name"`
	CompletedChecklists  int        `json:"completed_checklists"`
	InProgressChecklists int        `json:"in_progress_checklists"`
	FailedChecks         int        `json:"failed_checks"`
	LastActive           *time.Time `json:"last_active"`
}

type MachineStats struct {
	MachineID           int    `json:"machine_id"`
	Name                string `json:"name"`
	TotalRuns           int    `json:"total_runs"`
	CompletedChecklists int    `json:"completed_checklists"`
	FailedChecks        int    `json:"failed_checks"`

	// Compliance is round(completed/total*100). A machine with no runs in
	// the window is vacuously compliant at 100, never penalised to zero.
	Compliance int `json:"compliance"`
}

type MonthlyCount struct {
	Month     string `json:"month"` // formatted 2006-01
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
	Rate      int    `json:"rate"`
}

type Activity struct {
	RunID        int       `json:"run_id"`
	Event        string    `json:"event"`
	TemplateName string    `json:"template_name"`
	MachineName  string    `json:"machine_name"`
	UserName     string    `json:"user_name"`
	Timestamp    time.Time `json:"timestamp"`
}

// Report is the aggregated dashboard payload.
type Report struct {
	TotalChecklists     int            `json:"total_checklists"`
	CompletedChecklists int            `json:"completed_checklists"`
	FailedChecks        int            `json:"failed_checks"`
	InProgress          int            `json:"in_progress"`
	UserStats           []UserStats    `json:"user_stats"`
	MachineStats        []MachineStats `json:"machine_stats"`
	MonthlyData         []MonthlyCount `json:"monthly_data"`
	RecentActivity      []Activity     `json:"recent_activity"`
}

// AggregateReport folds runs and failed answers into per-user and per-machine
// statistics over a trailing window of windowDays days ending at now, plus a
// trailing-6-calendar-month completion series and a 20-entry activity feed.
//
// The fold is deterministic: same records, same window, same now — same
// report. now is an explicit parameter precisely so there is no hidden
// wall-clock dependence.
//
// Group entries are seeded from every run supplied while counts only
// accumulate for runs started inside the window, so a machine whose runs all
// fall outside the window still shows up — with zero totals and 100%
// compliance. The monthly series buckets every supplied run by its start
// month regardless of the day window; month boundaries are calendar months,
// not rolling 30-day slices.
func AggregateReport(runs []RunRecord, failedAnswers []FailedAnswer, windowDays int, now time.Time) Report {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	windowStart := now.AddDate(0, 0, -windowDays)

	users := make(map[int]*UserStats)
	machines := make(map[int]*MachineStats)
	runIndex := make(map[int]RunRecord, len(runs))
	lastActive := make(map[int]time.Time)

	var report Report
	for _, r := range runs {
		runIndex[r.RunID] = r

		if _, ok := users[r.UserID]; !ok {
			users[r.UserID] = &UserStats{UserID: r.UserID, Name: r.UserName}
		}
		if _, ok := machines[r.MachineID]; !ok {
			machines[r.MachineID] = &MachineStats{MachineID: r.MachineID, Name: r.MachineName}
		}

		if r.StartedAt.Before(windowStart) || r.StartedAt.After(now) {
			continue
		}

		report.TotalChecklists++
		machines[r.MachineID].TotalRuns++

		switch r.Status {
		case RunCompleted:
			report.CompletedChecklists++
			users[r.UserID].CompletedChecklists++
			machines[r.MachineID].CompletedChecklists++
		case RunInProgress:
			report.InProgress++
			users[r.UserID].InProgressChecklists++
		}

		active := r.StartedAt
		if r.CompletedAt != nil && r.CompletedAt.After(active) {
			active = *r.CompletedAt
		}
		if active.After(lastActive[r.UserID]) {
			lastActive[r.UserID] = active
		}
	}

	for _, fa := range failedAnswers {
		r, ok := runIndex[fa.RunID]
		if !ok || r.StartedAt.Before(windowStart) || r.StartedAt.After(now) {
			continue
		}
		report.FailedChecks++
		users[r.UserID].FailedChecks++
		machines[r.MachineID].FailedChecks++
	}

	for id, t := range lastActive {
		when := t
		users[id].LastActive = &when
	}
	for _, m := range machines {
		if m.TotalRuns == 0 {
			m.Compliance = 100
		} else {
			m.Compliance = roundRate(m.CompletedChecklists, m.TotalRuns)
		}
	}

	report.UserStats = sortedUserStats(users)
	report.MachineStats = sortedMachineStats(machines)
	report.MonthlyData = monthlySeries(runs, now)
	report.RecentActivity = recentActivity(runs)
	return report
}

func roundRate(part, total int) int {
	return int(math.Round(float64(part) / float64(total) * 100))
}

func sortedUserStats(users map[int]*UserStats) []UserStats {
	out := make([]UserStats, 0, len(users))
	for _, u := range users {
		out = append(out, *u)
	}
	// sort by id first so equal completion counts still order deterministically
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	sort.SliceStable(out, func(i, j int) bool { return out[i].CompletedChecklists > out[j].CompletedChecklists })
	return out
}

func sortedMachineStats(machines map[int]*MachineStats) []MachineStats {
	out := make([]MachineStats, 0, len(machines))
	for _, m := range machines {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MachineID < out[j].MachineID })
	sort.SliceStable(out, func(i, j int) bool { return out[i].CompletedChecklists > out[j].CompletedChecklists })
	return out
}

func monthlySeries(runs []RunRecord, now time.Time) []MonthlyCount {
	series := make([]MonthlyCount, monthlySeriesMonths)
	index := make(map[string]int, monthlySeriesMonths)

	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := 0; i < monthlySeriesMonths; i++ {
		month := first.AddDate(0, i-monthlySeriesMonths+1, 0)
		key := month.Format("2006-01")
		series[i] = MonthlyCount{Month: key}
		index[key] = i
	}

	for _, r := range runs {
		// buckets use the start timestamp, never completion
		i, ok := index[r.StartedAt.Format("2006-01")]
		if !ok {
			continue
		}
		series[i].Total++
		if r.Status == RunCompleted {
			series[i].Completed++
		}
	}

	for i := range series {
		if series[i].Total > 0 {
			series[i].Rate = roundRate(series[i].Completed, series[i].Total)
		}
	}
	return series
}

func recentActivity(runs []RunRecord) []Activity {
	sorted := make([]RunRecord, len(runs))
	copy(sorted, runs)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].StartedAt.Equal(sorted[j].StartedAt) {
			return sorted[i].StartedAt.After(sorted[j].StartedAt)
		}
		return sorted[i].RunID > sorted[j].RunID
	})
	if len(sorted) > 20 {
		sorted = sorted[:20]
	}

	feed := make([]Activity, 0, len(sorted))
	for _, r := range sorted {
		event := EventChecklistStarted
		switch r.Status {
		case RunCompleted:
			event = EventChecklistCompleted
		case RunAborted:
			event = EventChecklistAborted
		}
		when := r.StartedAt
		if r.CompletedAt != nil {
			when = *r.CompletedAt
		}
		feed = append(feed, Activity{
			RunID:        r.RunID,
			Event:        event,
			TemplateName: r.TemplateName,
			MachineName:  r.MachineName,
			UserName:     r.UserName,
			Timestamp:    when,
		})
	}
	return feed
}
