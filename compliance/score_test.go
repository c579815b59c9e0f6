package compliance

import (
	"reflect"
	"testing"
	"time"
)

func bp(b bool) *bool       { return &b }
func fp(f float64) *float64 { return &f }
func sp(s string) *string   { return &s }

func safetyTemplate() TemplateDefinition {
	return TemplateDefinition{
		TemplateID: 7,
		Name:       "Press 12 daily safety check",
		Version:    2,
		Sections: []SectionDefinition{
			{
				SectionID: 1,
				Title:     "Guards",
				Items: []ItemDefinition{
					{ItemID: 10, Kind: ItemYesNo, Critical: true, Required: true},
					{ItemID: 11, Kind: ItemNumeric, MinValue: fp(4.0), MaxValue: fp(6.5)},
					{ItemID: 12, Kind: ItemText},
				},
			},
			{
				SectionID: 2,
				Title:     "Hydraulics",
				Items: []ItemDefinition{
					{ItemID: 20, Kind: ItemYesNo, Critical: true, Required: true},
					{ItemID: 21, Kind: ItemNumeric, MinValue: fp(100)},
					{ItemID: 22, Kind: ItemSelection},
				},
			},
		},
	}
}

func TestScoreRun_CriticalFailureScenario(t *testing.T) {
	def := safetyTemplate()
	written := time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)

	// 5 of 6 items answered; the critical guard check in section 1 failed
	answers := []Answer{
		{ItemID: 10, BoolValue: bp(false), WrittenAt: written},
		{ItemID: 11, NumberValue: fp(5.2), WrittenAt: written},
		{ItemID: 12, TextValue: sp("light scoring on upper guard"), WrittenAt: written},
		{ItemID: 20, BoolValue: bp(true), WrittenAt: written},
		{ItemID: 21, NumberValue: fp(140), WrittenAt: written},
	}

	score := ScoreRun(def, answers)

	if score.TotalItems != 6 {
		t.Errorf("TotalItems = %d, want 6", score.TotalItems)
	}
	if score.AnsweredItems != 5 {
		t.Errorf("AnsweredItems = %d, want 5", score.AnsweredItems)
	}
	if score.FailedItems != 1 {
		t.Errorf("FailedItems = %d, want 1", score.FailedItems)
	}
	if !score.CriticalFailure {
		t.Error("CriticalFailure = false, want true")
	}

	outcomes := map[int]string{}
	for _, o := range score.PerItem {
		outcomes[o.ItemID] = o.Outcome
	}
	if outcomes[10] != OutcomeFail {
		t.Errorf("item 10 outcome = %q, want fail", outcomes[10])
	}
	if outcomes[22] != OutcomeUnanswered {
		t.Errorf("item 22 outcome = %q, want unanswered", outcomes[22])
	}
}

func TestScoreRun_NumericBounds(t *testing.T) {
	def := TemplateDefinition{Sections: []SectionDefinition{{
		SectionID: 1,
		Items: []ItemDefinition{
			{ItemID: 1, Kind: ItemNumeric, MinValue: fp(4.0), MaxValue: fp(6.5)},
			{ItemID: 2, Kind: ItemNumeric, MinValue: fp(100)},         // no upper bound
			{ItemID: 3, Kind: ItemNumeric, MaxValue: fp(80)},          // no lower bound
			{ItemID: 4, Kind: ItemNumeric},                            // unconstrained
			{ItemID: 5, Kind: ItemNumeric, MinValue: fp(0), MaxValue: fp(10)},
		},
	}}}

	written := time.Now()
	tests := []struct {
		name    string
		answers []Answer
		itemID  int
		want    string
	}{
		{"at lower bound passes", []Answer{{ItemID: 1, NumberValue: fp(4.0), WrittenAt: written}}, 1, OutcomePass},
		{"at upper bound passes", []Answer{{ItemID: 1, NumberValue: fp(6.5), WrittenAt: written}}, 1, OutcomePass},
		{"below lower bound fails", []Answer{{ItemID: 1, NumberValue: fp(3.9), WrittenAt: written}}, 1, OutcomeFail},
		{"above upper bound fails", []Answer{{ItemID: 1, NumberValue: fp(6.6), WrittenAt: written}}, 1, OutcomeFail},
		{"open upper side", []Answer{{ItemID: 2, NumberValue: fp(100000), WrittenAt: written}}, 2, OutcomePass},
		{"open lower side", []Answer{{ItemID: 3, NumberValue: fp(-40), WrittenAt: written}}, 3, OutcomePass},
		{"unconstrained passes anything", []Answer{{ItemID: 4, NumberValue: fp(-1), WrittenAt: written}}, 4, OutcomePass},
		{"missing value unanswered", nil, 5, OutcomeUnanswered},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := ScoreRun(def, tt.answers)
			for _, o := range score.PerItem {
				if o.ItemID == tt.itemID && o.Outcome != tt.want {
					t.Errorf("item %d outcome = %q, want %q", tt.itemID, o.Outcome, tt.want)
				}
			}
		})
	}
}

func TestScoreRun_YesNoLegacyText(t *testing.T) {
	def := TemplateDefinition{Sections: []SectionDefinition{{
		Items: []ItemDefinition{{ItemID: 1, Kind: ItemYesNo}},
	}}}
	written := time.Now()

	tests := []struct {
		name   string
		answer Answer
		want   string
	}{
		{"text yes passes", Answer{ItemID: 1, TextValue: sp("yes"), WrittenAt: written}, OutcomePass},
		{"text no fails", Answer{ItemID: 1, TextValue: sp("no"), WrittenAt: written}, OutcomeFail},
		{"garbage text unanswered", Answer{ItemID: 1, TextValue: sp("maybe"), WrittenAt: written}, OutcomeUnanswered},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := ScoreRun(def, []Answer{tt.answer})
			if got := score.PerItem[0].Outcome; got != tt.want {
				t.Errorf("outcome = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScoreRun_Idempotent(t *testing.T) {
	def := safetyTemplate()
	written := time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)
	answers := []Answer{
		{ItemID: 10, BoolValue: bp(true), WrittenAt: written},
		{ItemID: 11, NumberValue: fp(5.0), WrittenAt: written},
	}

	first := ScoreRun(def, answers)
	second := ScoreRun(def, answers)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("scoring is not idempotent:\nfirst  = %+v\nsecond = %+v", first, second)
	}
}

func TestScoreRun_DuplicateAnswerMostRecentWins(t *testing.T) {
	def := TemplateDefinition{Sections: []SectionDefinition{{
		Items: []ItemDefinition{{ItemID: 1, Kind: ItemYesNo, Critical: true}},
	}}}

	earlier := time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)
	later := earlier.Add(5 * time.Minute)

	pass := Answer{ItemID: 1, BoolValue: bp(true), WrittenAt: earlier}
	fail := Answer{ItemID: 1, BoolValue: bp(false), WrittenAt: later}

	// order of the slice must not matter, only the write timestamps
	for name, answers := range map[string][]Answer{
		"newest last":  {pass, fail},
		"newest first": {fail, pass},
	} {
		score := ScoreRun(def, answers)
		if score.PerItem[0].Outcome != OutcomeFail {
			t.Errorf("%s: outcome = %q, want fail (later write wins)", name, score.PerItem[0].Outcome)
		}
		if !score.CriticalFailure {
			t.Errorf("%s: CriticalFailure = false, want true", name)
		}
	}

	// a duplicate that is not strictly more recent changes nothing
	stale := Answer{ItemID: 1, BoolValue: bp(false), WrittenAt: earlier}
	score := ScoreRun(def, []Answer{pass, stale})
	if score.PerItem[0].Outcome != OutcomePass {
		t.Errorf("outcome = %q, want pass (equal timestamp does not replace)", score.PerItem[0].Outcome)
	}
}

func TestScoreRun_EmptyAnswers(t *testing.T) {
	score := ScoreRun(safetyTemplate(), nil)
	if score.TotalItems != 6 || score.AnsweredItems != 0 || score.FailedItems != 0 {
		t.Errorf("empty score = %+v, want 6 total and zero answered/failed", score)
	}
	if score.CriticalFailure {
		t.Error("CriticalFailure = true on an unanswered run")
	}
}
