package compliance

import "errors"

var (
	// ErrInvalidSchedule is returned when a schedule has a non-positive
	// interval or an unknown schedule type. A silently wrong due date is a
	// safety-relevant bug, so the calculator refuses instead of defaulting.
	ErrInvalidSchedule = errors.New("invalid maintenance schedule")

	// ErrTemplateNotFound is returned when a run references a template
	// version that does not exist. Runs without a template are unscoreable.
	ErrTemplateNotFound = errors.New("checklist template not found")
)
