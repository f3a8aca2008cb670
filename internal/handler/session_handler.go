package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"invoicepad/internal/domain"
	"invoicepad/internal/service"
)

// SessionHandler handles invoice editing session endpoints.
type SessionHandler struct {
	sessions service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessions service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// editFieldRequest is the body for header field edits. Value is `any`
// because logo_width carries a number while every other field is a string.
type editFieldRequest struct {
	Name  string `json:"name" binding:"required"`
	Value any    `json:"value"`
}

// editLineFieldRequest is the body for line item field edits.
type editLineFieldRequest struct {
	Name  string `json:"name" binding:"required"`
	Value string `json:"value"`
}

// Create handles POST /api/v1/sessions
// An optional invoice body seeds the session; an empty body starts from the
// default template.
func (h *SessionHandler) Create(c *gin.Context) {
	var initial *domain.Invoice
	if c.Request.ContentLength > 0 {
		initial = &domain.Invoice{}
		if err := c.ShouldBindJSON(initial); err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid invoice body: "+err.Error())
			return
		}
	}

	view, err := h.sessions.Create(c.Request.Context(), initial)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, view)
}

// Get handles GET /api/v1/sessions/:id
func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	view, err := h.sessions.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// Delete handles DELETE /api/v1/sessions/:id
func (h *SessionHandler) Delete(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	if err := h.sessions.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// EditField handles PUT /api/v1/sessions/:id/fields
func (h *SessionHandler) EditField(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req editFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "name is required")
		return
	}

	view, err := h.sessions.EditField(c.Request.Context(), id, req.Name, req.Value)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// EditLineField handles PUT /api/v1/sessions/:id/lines/:index
func (h *SessionHandler) EditLineField(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	index, ok := lineIndex(c)
	if !ok {
		return
	}

	var req editLineFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "name is required")
		return
	}

	view, err := h.sessions.EditLineField(c.Request.Context(), id, index, req.Name, req.Value)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// AddLine handles POST /api/v1/sessions/:id/lines
func (h *SessionHandler) AddLine(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	view, err := h.sessions.AddLine(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, view)
}

// RemoveLine handles DELETE /api/v1/sessions/:id/lines/:index
func (h *SessionHandler) RemoveLine(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	index, ok := lineIndex(c)
	if !ok {
		return
	}

	view, err := h.sessions.RemoveLine(c.Request.Context(), id, index)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// sessionID parses the :id path parameter. On failure it writes the error
// response and returns false.
func sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_SESSION_ID", "session id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

// lineIndex parses the :index path parameter.
func lineIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_LINE_INDEX", "line index must be an integer")
		return 0, false
	}
	return index, true
}
