package dto

// EnhanceDescriptionRequest payload.
type EnhanceDescriptionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// EnhanceDescriptionResponse carries the rewritten (or substituted) text.
type EnhanceDescriptionResponse struct {
	Description string `json:"description"`
}

// GenerateSubtasksRequest payload.
type GenerateSubtasksRequest struct {
	Title string `json:"title"`
}
