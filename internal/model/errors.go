package model

// ValidationError is returned when a field value breaks a model rule.
// Handlers translate it into an HTTP 400 response.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
