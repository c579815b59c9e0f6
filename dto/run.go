package dto

type StartRunRequest struct {
	TemplateID int     `json:"template_id" binding:"required"`
	MachineID  int     `json:"machine_id" binding:"required"`
	DueDate    *string `json:"due_date"` // RFC 3339, optional
}

type FinishRunRequest struct {
	// AcknowledgeCritical lets a supervisor complete a run that carries a
	// critical failure; without it completion is rejected.
	AcknowledgeCritical bool `json:"acknowledge_critical"`
}
