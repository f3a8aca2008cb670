package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"invoicepad/internal/domain"
	"invoicepad/internal/service"
)

// ExportHandler handles invoice export and email delivery endpoints.
type ExportHandler struct {
	exports service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exports service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

type emailRequest struct {
	ToEmail string `json:"to_email" binding:"required,email"`
	ToName  string `json:"to_name"`
}

// Export handles GET /api/v1/sessions/:id/export/:format
// Streams the rendered document as an attachment.
func (h *ExportHandler) Export(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	format := domain.ExportFormat(c.Param("format"))
	switch format {
	case domain.ExportFormatPDF, domain.ExportFormatCSV, domain.ExportFormatXLSX:
	default:
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be one of: pdf, csv, xlsx")
		return
	}

	export, err := h.exports.Export(c.Request.Context(), id, format)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	c.Data(http.StatusOK, export.ContentType, export.Data)
}

// Email handles POST /api/v1/sessions/:id/email
func (h *ExportHandler) Email(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "to_email must be a valid email address")
		return
	}

	if err := h.exports.EmailPDF(c.Request.Context(), id, req.ToEmail, req.ToName); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"sent": true})
}
