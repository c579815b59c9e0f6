package dto

type CreateMachineRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
}

type UpdateCyclesRequest struct {
	// CycleCount is the machine's current usage counter. It is monotonic;
	// a value below the stored one is rejected.
	CycleCount int `json:"cycle_count" binding:"required"`
}
