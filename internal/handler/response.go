package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dealerops/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrNoVINsFound):
		return http.StatusUnprocessableEntity, "NO_VINS_FOUND", "no valid VINs found"
	case errors.Is(err, domain.ErrInvalidVIN):
		return http.StatusBadRequest, "INVALID_VIN", "one or more VINs are not valid 17-character VINs"
	case errors.Is(err, domain.ErrDuplicateVIN):
		return http.StatusConflict, "DUPLICATE_VIN", "vehicle with this VIN already exists"
	case errors.Is(err, domain.ErrEmptyBatch):
		return http.StatusBadRequest, "EMPTY_BATCH", "no records to commit"
	case errors.Is(err, domain.ErrDocumentEmpty):
		return http.StatusBadRequest, "DOCUMENT_EMPTY", "document text is empty"
	case errors.Is(err, domain.ErrDocumentLarge):
		return http.StatusRequestEntityTooLarge, "DOCUMENT_TOO_LARGE", "document exceeds maximum allowed size"
	case errors.Is(err, domain.ErrUnsupportedDoc):
		return http.StatusBadRequest, "UNSUPPORTED_DOCUMENT", "unsupported document type; allowed: text/plain, text/csv"
	case errors.Is(err, domain.ErrFieldTooLong):
		return http.StatusBadRequest, "FIELD_TOO_LONG", err.Error()
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "document upload to storage failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// ErrorResponder writes mapped domain errors, logging the ones that end in a 5xx.
type ErrorResponder struct {
	logger *zap.Logger
}

// NewErrorResponder creates an ErrorResponder. A nil logger discards output.
func NewErrorResponder(logger *zap.Logger) *ErrorResponder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorResponder{logger: logger}
}

// HandleError maps a domain error and sends the appropriate error response.
func (r *ErrorResponder) HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		r.logger.Error("internal error",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}
	RespondError(c, status, code, msg)
}
