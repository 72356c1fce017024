package models

// ErrorResponse describes an error with an HTTP status code and a message.
type ErrorResponse struct {
	StatusCode int    `json:"-"`
	Message    string `json:"reason"`
}

// NewErrorResponse creates a new error with a status code and a message.
func NewErrorResponse(statusCode int, message string) *ErrorResponse {
	return &ErrorResponse{
		StatusCode: statusCode,
		Message:    message}
}

// Error satisfies the error interface.
func (e *ErrorResponse) Error() string {
	return e.Message
}
