package handler

// Swagger type definitions for API documentation.

// ErrorResponseBody is the envelope sent for every failed request.
type ErrorResponseBody struct {
	Success bool     `json:"success" example:"false"`
	Error   APIError `json:"error"`
}
