package compliance

import "time"

// Checklist item kinds.
const (
	ItemYesNo     = "yes_no"
	ItemNumeric   = "numeric"
	ItemText      = "text"
	ItemSelection = "selection"
)

// Per-item scoring outcomes.
const (
	OutcomePass       = "pass"
	OutcomeFail       = "fail"
	OutcomeUnanswered = "unanswered"
)

// TemplateDefinition is the section/item tree of one template version,
// already normalised by the loading layer (one canonical field per concept,
// no legacy aliases).
type TemplateDefinition struct {
	TemplateID int
	Name       string
	Version    int
	Sections   []SectionDefinition
}

type SectionDefinition struct {
	SectionID int
	Title     string
	Items     []ItemDefinition
}

type ItemDefinition struct {
	ItemID   int
	Label    string
	Kind     string
	Required bool
	Critical bool

	// MinValue/MaxValue bound numeric items. A nil bound means no
	// constraint on that side.
	MinValue *float64
	MaxValue *float64
}

// Answer is one recorded answer with its value already dispatched into the
// typed field matching the item kind. Exactly one of the value fields is
// expected to be set; the scorer never inspects raw dynamic shapes.
type Answer struct {
	ItemID      int
	BoolValue   *bool
	NumberValue *float64
	TextValue   *string
	WrittenAt   time.Time
}

type ItemOutcome struct {
	ItemID  int    `json:"item_id"`
	Outcome string `json:"outcome"`
}

// Score is the result of evaluating one run's answers against its template.
type Score struct {
	TotalItems    int `json:"total_items"`
	AnsweredItems int `json:"answered_items"`
	FailedItems   int `json:"failed_items"`

	// CriticalFailure is true when any critical item failed. The scorer only
	// reports it; gating run completion on it is the caller's job.
	CriticalFailure bool `json:"critical_failure"`

	PerItem []ItemOutcome `json:"per_item"`
}

// ScoreRun evaluates a run's answers against a template version. It is a
// read-side projection: no inputs are mutated and calling it twice with the
// same inputs yields the same score.
//
// At most one answer per item is expected. Should duplicates exist anyway
// (benign concurrent upserts), the most recently written one wins; that is
// policy, not an accident.
func ScoreRun(def TemplateDefinition, answers []Answer) Score {
	latest := make(map[int]Answer, len(answers))
	for _, a := range answers {
		cur, ok := latest[a.ItemID]
		if !ok || a.WrittenAt.After(cur.WrittenAt) {
			latest[a.ItemID] = a
		}
	}

	var score Score
	for _, section := range def.Sections {
		for _, item := range section.Items {
			score.TotalItems++

			answer, ok := latest[item.ItemID]
			if ok && answered(answer) {
				score.AnsweredItems++
			}

			outcome := scoreItem(item, answer, ok)
			if outcome == OutcomeFail {
				score.FailedItems++
				if item.Critical {
					score.CriticalFailure = true
				}
			}
			score.PerItem = append(score.PerItem, ItemOutcome{ItemID: item.ItemID, Outcome: outcome})
		}
	}
	return score
}

func answered(a Answer) bool {
	return a.BoolValue != nil || a.NumberValue != nil || a.TextValue != nil
}

func scoreItem(item ItemDefinition, answer Answer, present bool) string {
	if !present {
		return OutcomeUnanswered
	}

	switch item.Kind {
	case ItemYesNo:
		if answer.BoolValue != nil {
			if *answer.BoolValue {
				return OutcomePass
			}
			return OutcomeFail
		}
		// legacy rows stored yes/no as text
		if answer.TextValue != nil {
			switch *answer.TextValue {
			case "yes":
				return OutcomePass
			case "no":
				return OutcomeFail
			}
		}
		return OutcomeUnanswered

	case ItemNumeric:
		if answer.NumberValue == nil {
			return OutcomeUnanswered
		}
		v := *answer.NumberValue
		if item.MinValue != nil && v < *item.MinValue {
			return OutcomeFail
		}
		if item.MaxValue != nil && v > *item.MaxValue {
			return OutcomeFail
		}
		return OutcomePass

	case ItemText, ItemSelection:
		// these kinds carry no fail state; required-but-unanswered is a
		// submission-time concern, not a scoring one
		if answer.TextValue != nil && *answer.TextValue != "" {
			return OutcomePass
		}
		return OutcomeUnanswered

	default:
		return OutcomeUnanswered
	}
}
