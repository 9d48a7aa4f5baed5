package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nivgrinberg/receipt-export-service/internal/model"
	"github.com/nivgrinberg/receipt-export-service/internal/service"
)

// ExportHandler handles HTTP requests for receipt export operations
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// GenerateExport handles the POST /exports endpoint
// @Summary Generate a receipt document
// @Description Normalize a pasted POS payload and render it as a standalone HTML document
// @Tags exports
// @Accept json
// @Produce json
// @Param request body model.ExportRequest true "Payload text and design settings"
// @Success 200 {object} model.ExportResponse "Generated document"
// @Failure 400 {object} model.ErrorResponse "Malformed request or payload text"
// @Failure 422 {object} model.ErrorResponse "Payload is not a renderable receipt"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/exports [post]
func (h *ExportHandler) GenerateExport(c *gin.Context) {
	request, ok := h.bindExportRequest(c)
	if !ok {
		return
	}

	result, err := h.exportService.Export(c.Request.Context(), request.Payload, request.Settings)
	if err != nil {
		h.respondExportError(c, err)
		return
	}

	respondOK(c, model.ExportResponse{
		HTML:     result.HTML,
		Warnings: result.Warnings,
	})
}

// PreviewModel handles the POST /exports/preview endpoint
// @Summary Preview the normalized receipt model
// @Description Parse and normalize a pasted POS payload without rendering, surfacing warnings
// @Tags exports
// @Accept json
// @Produce json
// @Param request body model.ExportRequest true "Payload text (settings ignored)"
// @Success 200 {object} model.PreviewResponse "Normalized model and warnings"
// @Failure 400 {object} model.ErrorResponse "Malformed request or payload text"
// @Failure 422 {object} model.ErrorResponse "Payload is not a renderable receipt"
// @Router /v1/exports/preview [post]
func (h *ExportHandler) PreviewModel(c *gin.Context) {
	request, ok := h.bindExportRequest(c)
	if !ok {
		return
	}

	result, err := h.exportService.BuildModel(c.Request.Context(), request.Payload)
	if err != nil {
		h.respondExportError(c, err)
		return
	}
	if !result.OK() {
		respondUnprocessableEntity(c, ErrNotAReceipt, newErrorDetail("payload", result.Error))
		return
	}

	respondOK(c, model.PreviewResponse{
		Model:    result.Model,
		Warnings: result.Warnings,
	})
}

// DownloadExport handles the POST /exports/download endpoint
// @Summary Download a receipt document
// @Description Generate the document and return it as an HTML file attachment
// @Tags exports
// @Accept json
// @Produce html
// @Param request body model.ExportRequest true "Payload text and design settings"
// @Success 200 {string} string "Generated document"
// @Failure 400 {object} model.ErrorResponse "Malformed request or payload text"
// @Failure 422 {object} model.ErrorResponse "Payload is not a renderable receipt"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/exports/download [post]
func (h *ExportHandler) DownloadExport(c *gin.Context) {
	request, ok := h.bindExportRequest(c)
	if !ok {
		return
	}

	result, err := h.exportService.Export(c.Request.Context(), request.Payload, request.Settings)
	if err != nil {
		h.respondExportError(c, err)
		return
	}

	filename := sanitizeFilename(result.Model.ReceiptNumber)
	if filename == "" {
		filename = "export"
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="invoice-%s.html"`, filename))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(result.HTML))
}

// sanitizeFilename drops characters that would break the quoted
// Content-Disposition filename parameter.
func sanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		if r == '"' || r == '\\' || r < 0x20 {
			return -1
		}
		return r
	}, name)
}

// bindExportRequest parses and minimally validates the request body.
func (h *ExportHandler) bindExportRequest(c *gin.Context) (*model.ExportRequest, bool) {
	var request model.ExportRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondBadRequest(c, ErrInvalidInput, newErrorDetail("payload", "Payload text is required"))
		return nil, false
	}
	return &request, true
}

// respondExportError maps pipeline errors onto HTTP statuses: unparseable
// payload text is a caller mistake, a fatal build error means the payload is
// valid JSON but not a receipt, anything else is on us.
func (h *ExportHandler) respondExportError(c *gin.Context, err error) {
	var buildErr *service.BuildError
	switch {
	case errors.Is(err, service.ErrInvalidJSON):
		respondBadRequest(c, ErrInvalidPayload, newErrorDetail("payload", err.Error()))
	case errors.As(err, &buildErr):
		respondUnprocessableEntity(c, ErrNotAReceipt, newErrorDetail("payload", buildErr.Message))
	default:
		respondInternalServerError(c, ErrInternalServer)
	}
}

// RegisterRoutes registers the API routes for the export handler
func (h *ExportHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/v1")

	exports := api.Group("/exports")
	{
		exports.POST("", h.GenerateExport)
		exports.POST("/preview", h.PreviewModel)
		exports.POST("/download", h.DownloadExport)
	}
}
