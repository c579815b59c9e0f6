package dto

type CreateTemplateRequest struct {
	Name      string                 `json:"name" binding:"required"`
	Type      string                 `json:"type" binding:"required,oneof=safety quality startup shutdown"`
	Frequency string                 `json:"frequency"`
	Sections  []CreateSectionRequest `json:"sections" binding:"required,min=1,dive"`
}

type CreateSectionRequest struct {
	Title string              `json:"title" binding:"required"`
	Items []CreateItemRequest `json:"items" binding:"required,min=1,dive"`
}

type CreateItemRequest struct {
	Label    string   `json:"label" binding:"required"`
	Kind     string   `json:"kind" binding:"required,oneof=yes_no numeric text selection"`
	Required bool     `json:"required"`
	Critical bool     `json:"critical"`
	MinValue *float64 `json:"min_value"`
	MaxValue *float64 `json:"max_value"`
	Options  *string  `json:"options"`
}

type UpdateTemplateRequest struct {
	Name      string                 `json:"name" binding:"required"`
	Type      string                 `json:"type" binding:"required,oneof=safety quality startup shutdown"`
	Frequency string                 `json:"frequency"`
	Sections  []CreateSectionRequest `json:"sections" binding:"required,min=1,dive"`
}
