package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invoicepad/internal/service"
)

// LogoHandler handles logo image upload endpoints.
type LogoHandler struct {
	logos service.LogoService
}

// NewLogoHandler creates a new LogoHandler.
func NewLogoHandler(logos service.LogoService) *LogoHandler {
	return &LogoHandler{logos: logos}
}

// Upload handles POST /api/v1/sessions/:id/logo
// Accepts a multipart "logo" file (jpg or png) and attaches the stored
// image URL to the session's invoice.
func (h *LogoHandler) Upload(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "logo file field is required")
		return
	}

	result, err := h.logos.Upload(c.Request.Context(), id, fileHeader)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, result)
}
