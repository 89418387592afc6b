package handler

import (
	"log/slog"
	"net/http"

	"github.com/dontbanhemp/action-server/internal/service"
)

// CampaignHandler serves the landing-page widgets: participation counters,
// the ban countdown, and the featured lawmakers list. All three are
// read-only and unauthenticated.
type CampaignHandler struct {
	stats     *service.StatsPoller
	countdown *service.Countdown
	curation  *service.CurationService
	logger    *slog.Logger
}

// NewCampaignHandler creates a CampaignHandler.
func NewCampaignHandler(
	stats *service.StatsPoller,
	countdown *service.Countdown,
	curation *service.CurationService,
	logger *slog.Logger,
) *CampaignHandler {
	return &CampaignHandler{
		stats:     stats,
		countdown: countdown,
		curation:  curation,
		logger:    logger,
	}
}

// HandleStats returns the cached campaign counters.
//
// HTTP: GET /api/stats
// RESPONSE: {"totalUsers": 42, "totalEmails": 117, "updatedAt": "...", "stale": false}
//
// This reads the poller's snapshot, never storage — the landing page polls
// this endpoint from every open browser tab, and none of that traffic
// should reach the database.
func (h *CampaignHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.stats.Snapshot())
}

// HandleCountdown returns the time remaining until the ban takes effect.
//
// HTTP: GET /api/countdown
// RESPONSE: {"days": 73, "hours": 4, "minutes": 12, "seconds": 9, "total": 6322329}
func (h *CampaignHandler) HandleCountdown(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.countdown.Remaining())
}

// HandleFeatured returns the staff-curated featured lawmakers.
//
// HTTP: GET /api/lawmakers/featured
func (h *CampaignHandler) HandleFeatured(w http.ResponseWriter, r *http.Request) {
	lawmakers, err := h.curation.Featured(r.Context())
	if err != nil {
		h.logger.Error("listing featured lawmakers failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lawmakers)
}
