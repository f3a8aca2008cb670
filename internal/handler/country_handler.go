package handler

import (
	"github.com/gin-gonic/gin"

	"invoicepad/internal/countries"
)

// CountryHandler serves the country list backing the address pickers.
type CountryHandler struct{}

// NewCountryHandler creates a new CountryHandler.
func NewCountryHandler() *CountryHandler {
	return &CountryHandler{}
}

// List handles GET /api/v1/countries
func (h *CountryHandler) List(c *gin.Context) {
	RespondOK(c, countries.All())
}
