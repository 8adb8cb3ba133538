package handler

import (
	"net/http"
	"time"

	"github.com/neisdata/neis/internal/model"
	"github.com/neisdata/neis/internal/service"
)

// KeyHandler serves access-token issuance.
type KeyHandler struct {
	authority *service.TokenAuthority
}

// NewKeyHandler creates a KeyHandler.
func NewKeyHandler(authority *service.TokenAuthority) *KeyHandler {
	return &KeyHandler{authority: authority}
}

// GenerateKey issues a fresh access token. Anyone may call this; the token
// is the sole credential for the energy endpoints and expires after the
// configured TTL.
// GET /api/generate-key
func (h *KeyHandler) GenerateKey(w http.ResponseWriter, r *http.Request) {
	value, expiresAt := h.authority.Issue()
	writeJSON(w, http.StatusOK, model.KeyGrant{
		APIKey:    value,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	})
}
