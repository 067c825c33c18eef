package handler

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"dealerops/internal/csvexport"
	"dealerops/internal/domain"
	"dealerops/internal/service"
)

// IntakeHandler handles manifest intake endpoints.
type IntakeHandler struct {
	intakeService service.IntakeService
	errs          *ErrorResponder
}

// NewIntakeHandler creates a new IntakeHandler.
func NewIntakeHandler(intakeService service.IntakeService, errs *ErrorResponder) *IntakeHandler {
	if errs == nil {
		errs = NewErrorResponder(nil)
	}
	return &IntakeHandler{intakeService: intakeService, errs: errs}
}

// ExtractRequest is the body of POST /api/v1/intake/extract.
type ExtractRequest struct {
	Text            string          `json:"text" binding:"required"`
	DefaultCategory domain.Category `json:"default_category"`
}

// CommitRequest is the body of POST /api/v1/intake/commit.
type CommitRequest struct {
	Records     []domain.DraftVehicleRecord  `json:"records" binding:"required"`
	Shipment    domain.GlobalShipmentContext `json:"shipment"`
	DocumentKey string                       `json:"document_key"`
}

// ExportRequest is the body of POST /api/v1/intake/export.
type ExportRequest struct {
	Name     string                       `json:"name"`
	Records  []domain.DraftVehicleRecord  `json:"records" binding:"required"`
	Shipment domain.GlobalShipmentContext `json:"shipment"`
}

// Extract handles POST /api/v1/intake/extract
// @Summary Extract draft vehicles from manifest text
// @Description Find VINs in pasted manifest text and infer brand, model, year, color and shipment details
// @Tags intake
// @Accept json
// @Produce json
// @Param request body ExtractRequest true "Manifest text"
// @Success 200 {object} APIResponse{data=extract.Batch} "Extracted batch"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 413 {object} ErrorResponseBody "Manifest too large"
// @Failure 422 {object} ErrorResponseBody "No valid VINs found"
// @Security BearerAuth
// @Router /intake/extract [post]
func (h *IntakeHandler) Extract(c *gin.Context) {
	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "text is required")
		return
	}

	batch, err := h.intakeService.Extract(c.Request.Context(), service.ExtractInput{
		Text:            req.Text,
		DefaultCategory: req.DefaultCategory,
	})
	if err != nil {
		h.errs.HandleError(c, err)
		return
	}
	RespondOK(c, batch)
}

// Upload handles POST /api/v1/intake/upload. The manifest is sent as the
// multipart field "file"; "default_category" is an optional form field.
// @Summary Upload and extract a manifest document
// @Tags intake
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Manifest document (.txt, .csv, .tsv)"
// @Param default_category formData string false "Category for records without one"
// @Success 201 {object} APIResponse{data=service.UploadResult} "Extracted batch and archived document key"
// @Failure 400 {object} ErrorResponseBody "Missing or unsupported file"
// @Failure 413 {object} ErrorResponseBody "Manifest too large"
// @Failure 422 {object} ErrorResponseBody "No valid VINs found"
// @Security BearerAuth
// @Router /intake/upload [post]
func (h *IntakeHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.intakeService.Upload(c.Request.Context(), service.ManifestUploadInput{
		Body:            file,
		Filename:        header.Filename,
		Size:            header.Size,
		DefaultCategory: domain.Category(c.PostForm("default_category")),
	})
	if err != nil {
		h.errs.HandleError(c, err)
		return
	}
	RespondCreated(c, result)
}

// Commit handles POST /api/v1/intake/commit
// @Summary Commit reviewed drafts as inventory
// @Tags intake
// @Accept json
// @Produce json
// @Param request body CommitRequest true "Reviewed drafts"
// @Success 201 {object} APIResponse{data=[]domain.Car} "Created cars"
// @Failure 400 {object} ErrorResponseBody "Invalid VIN, empty batch or over-long field"
// @Failure 409 {object} ErrorResponseBody "VIN already in inventory"
// @Security BearerAuth
// @Router /intake/commit [post]
func (h *IntakeHandler) Commit(c *gin.Context) {
	var req CommitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "records are required")
		return
	}

	cars, err := h.intakeService.Commit(c.Request.Context(), service.CommitInput{
		Records:     req.Records,
		Shipment:    req.Shipment,
		DocumentKey: req.DocumentKey,
	})
	if err != nil {
		h.errs.HandleError(c, err)
		return
	}
	RespondCreated(c, cars)
}

// Export handles POST /api/v1/intake/export and streams the drafts as CSV.
// @Summary Export drafts as CSV
// @Tags intake
// @Accept json
// @Produce text/csv
// @Param request body ExportRequest true "Drafts to export"
// @Success 200 {file} file "CSV spreadsheet"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Security BearerAuth
// @Router /intake/export [post]
func (h *IntakeHandler) Export(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "records are required")
		return
	}

	// Buffered so a failure can still be reported as JSON.
	var buf bytes.Buffer
	if err := h.intakeService.ExportCSV(c.Request.Context(), &buf, req.Records, req.Shipment); err != nil {
		h.errs.HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename(req.Name, time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// DocumentURL handles GET /api/v1/intake/documents/*key
func (h *IntakeHandler) DocumentURL(c *gin.Context) {
	url, err := h.intakeService.DocumentURL(c.Request.Context(), documentKeyParam(c))
	if err != nil {
		h.errs.HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"download_url": url})
}

// DiscardDocument handles DELETE /api/v1/intake/documents/*key
func (h *IntakeHandler) DiscardDocument(c *gin.Context) {
	if err := h.intakeService.DiscardDocument(c.Request.Context(), documentKeyParam(c)); err != nil {
		h.errs.HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "document discarded"})
}

func documentKeyParam(c *gin.Context) string {
	return strings.TrimPrefix(c.Param("key"), "/")
}
