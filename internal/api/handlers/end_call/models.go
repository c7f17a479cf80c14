package end_call

// EndCallRequest HTTP request model
type EndCallRequest struct {
	DurationSeconds int `json:"durationSeconds"`
}
