package handler

import (
	"net/http"
	"time"

	"github.com/neisdata/neis/internal/dataset"
)

// AdminHandler serves the operator-only maintenance endpoints.
type AdminHandler struct {
	provider *dataset.Provider
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(provider *dataset.Provider) *AdminHandler {
	return &AdminHandler{provider: provider}
}

// reloadResponse reports the state of the dataset after a reload.
type reloadResponse struct {
	GenerationRows int    `json:"generation_rows"`
	EmissionsRows  int    `json:"emissions_rows"`
	LoadedAt       string `json:"loaded_at"`
}

// ReloadDataset re-runs all dataset sources and swaps in the new snapshot.
// In-flight requests keep reading the snapshot they started with.
// POST /api/admin/reload
func (h *AdminHandler) ReloadDataset(w http.ResponseWriter, r *http.Request) {
	if err := h.provider.Reload(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Dataset reload failed: "+err.Error())
		return
	}

	snap := h.provider.Snapshot()
	writeData(w, http.StatusOK, reloadResponse{
		GenerationRows: len(snap.Generation),
		EmissionsRows:  len(snap.Emissions),
		LoadedAt:       snap.LoadedAt.Format(time.RFC3339),
	})
}
