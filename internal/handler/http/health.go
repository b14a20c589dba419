package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-directory-bot/internal/logger"
)

// healthResponse reports the bot's directory and access-registry state.
type healthResponse struct {
	Status          string `json:"status"`
	Records         int    `json:"records"`
	AuthorizedChats int    `json:"authorizedChats"`
}

// health reports "ok" while the directory index holds records and
// "degraded" while it is empty, which covers a missing, unreadable or
// undecryptable blob. The process stays alive either way; degraded only
// means searches answer with no matches.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if h.services.DirectoryService.Degraded() {
		status = "degraded"
	}

	resp := healthResponse{
		Status:          status,
		Records:         h.services.DirectoryService.Size(),
		AuthorizedChats: h.registry.Size(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.FromRequest(r).Err(err).Msg("encode health response")
	}
}
