package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/arogyahealth/triage-server/internal/domain/repositories"
)

const defaultHistoryLimit = 20

// HistoryHandler serves a patient's past triage outcomes.
type HistoryHandler struct {
	repo repositories.HistoryRepository
}

// NewHistoryHandler creates a new history handler. repo may be nil when
// persistence is not configured.
func NewHistoryHandler(repo repositories.HistoryRepository) *HistoryHandler {
	return &HistoryHandler{repo: repo}
}

// GetHistory handles GET /api/history/{uid}
func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		respondWithError(w, http.StatusServiceUnavailable, "triage history is not configured")
		return
	}

	uid := strings.TrimSpace(r.PathValue("uid"))
	if uid == "" {
		respondWithError(w, http.StatusBadRequest, "uid is required")
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 100 {
			respondWithError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = parsed
	}

	records, err := h.repo.RecentByUID(r.Context(), uid, limit)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"history": records,
		"count":   len(records),
	})
}
