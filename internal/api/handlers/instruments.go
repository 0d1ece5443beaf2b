package handlers

import (
	"net/http"

	"github.com/ndewijer/Trading-Journal-Backend/internal/api/response"
	"github.com/ndewijer/Trading-Journal-Backend/internal/model"
)

// InstrumentCatalogue lists the configured instruments.
type InstrumentCatalogue interface {
	All() []model.Instrument
}

// InstrumentHandler serves the configured instrument catalogue.
type InstrumentHandler struct {
	instruments InstrumentCatalogue
}

// NewInstrumentHandler creates a new InstrumentHandler.
func NewInstrumentHandler(instruments InstrumentCatalogue) *InstrumentHandler {
	return &InstrumentHandler{instruments: instruments}
}

// Instruments handles GET requests for the instrument catalogue: names, types,
// lot sizes and reference prices.
//
// Endpoint: GET /api/instrument
// Response: 200 OK with array of Instrument
func (h *InstrumentHandler) Instruments(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.instruments.All())
}
