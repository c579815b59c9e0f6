package dto

type CreateTaskRequest struct {
	MachineID   int     `json:"machine_id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Type        string  `json:"type" binding:"required,oneof=preventative corrective"`

	ScheduleType   string `json:"schedule_type" binding:"required,oneof=time_based usage_based mixed"`
	IntervalDays   *int   `json:"interval_days"`
	IntervalCycles *int   `json:"interval_cycles"`
}

type CompleteTaskRequest struct {
	// CompletedAt overrides the completion timestamp (RFC 3339); defaults to now.
	CompletedAt *string `json:"completed_at"`
}
