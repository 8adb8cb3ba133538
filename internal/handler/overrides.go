package handler

import (
	"errors"
	"net/http"

	"github.com/neisdata/neis/internal/model"
	"github.com/neisdata/neis/internal/service"
)

// OverrideHandler serves manual emissions submissions.
type OverrideHandler struct {
	overrides *service.OverrideStore
}

// NewOverrideHandler creates an OverrideHandler.
func NewOverrideHandler(overrides *service.OverrideStore) *OverrideHandler {
	return &OverrideHandler{overrides: overrides}
}

// setOverrideRequest is the expected payload for SetManualEmissions.
type setOverrideRequest struct {
	Scope string  `json:"scope"`
	Value float64 `json:"value"`
}

// SetManualEmissions records a manual emissions value for a scope ("national"
// or a region name, matched exactly). The scope is deliberately not checked
// against known regions; an override for an unknown scope is stored and stays
// inert. Negative values are a 400 and nothing is stored.
// POST /api/energy/emissions/manual
func (h *OverrideHandler) SetManualEmissions(w http.ResponseWriter, r *http.Request) {
	var req setOverrideRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Scope == "" {
		writeError(w, http.StatusBadRequest, "Scope is required")
		return
	}

	if err := h.overrides.Set(req.Scope, req.Value); err != nil {
		if errors.Is(err, service.ErrNegativeValue) {
			writeError(w, http.StatusBadRequest, "Emissions value must be non-negative")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to store override: "+err.Error())
		return
	}

	writeData(w, http.StatusOK, model.OverrideReceipt{Scope: req.Scope, Value: req.Value})
}
