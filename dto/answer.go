package dto

// SubmitAnswerRequest carries the answer value in the typed field matching
// the item kind; the others stay null. This is the tagged-variant boundary —
// nothing downstream inspects loose dynamic values.
type SubmitAnswerRequest struct {
	SectionID int `json:"section_id" binding:"required"`
	ItemID    int `json:"item_id" binding:"required"`

	BoolValue   *bool    `json:"bool_value"`
	NumberValue *float64 `json:"number_value"`
	TextValue   *string  `json:"text_value"`

	Comment  *string `json:"comment"`
	PhotoURL *string `json:"photo_url"`
}
