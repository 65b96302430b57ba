package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ghuser/stockroom/pkg/auth"
	"github.com/ghuser/stockroom/pkg/cache"
	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/pkg/httpx"
	"github.com/ghuser/stockroom/pkg/logger"
	"github.com/ghuser/stockroom/services/inventory/application/aggregate"
	appsvcs "github.com/ghuser/stockroom/services/inventory/application/services"
)

// cacheWarmTimeout bounds the synchronous snapshot cache write so a slow
// Redis cannot stall the response.
const cacheWarmTimeout = 2 * time.Second

// GetStatsHandler handles GET /stats requests. It serves the org's dashboard
// from the Redis snapshot cache when present; on a miss it reads the live
// aggregator and warms the cache before responding. The worker invalidates
// the cached snapshot on every change event, so a hit is never staler than
// the last observed change.
type GetStatsHandler struct {
	svc *appsvcs.Services
	log logger.Logger
}

// NewGetStatsHandler returns a GetStatsHandler backed by the given services.
func NewGetStatsHandler(svc *appsvcs.Services, log logger.Logger) *GetStatsHandler {
	return &GetStatsHandler{svc: svc, log: log}
}

// Execute returns the organization's aggregated inventory dashboard.
//
//	@Summary		Inventory stats
//	@Description	Returns folder groupings, category stats, low-stock subsets, totals, and recent edits
//	@Tags			stats
//	@Produce		json
//	@Success		200	{object}	object
//	@Failure		401	{object}	ErrorResponse
//	@Router			/stats [get]
func (h *GetStatsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orgID, err := auth.OrgIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	if h.svc.SnapCache != nil {
		var cached aggregate.Snapshot
		switch err := h.svc.SnapCache.Get(r.Context(), orgID, &cached); {
		case err == nil:
			httpx.JSON(w, http.StatusOK, cached)
			return
		case !errors.Is(err, cache.ErrMiss):
			// A broken cache degrades to a live read, never to an error.
			h.log.WarnContext(r.Context(), "stats cache read failed", "org_id", orgID, "error", err)
		}
	}

	agg, err := h.svc.Stats.ForOrg(orgID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	snap := agg.Snapshot()

	if h.svc.SnapCache != nil {
		warmCtx, cancel := context.WithTimeout(r.Context(), cacheWarmTimeout)
		if err := h.svc.SnapCache.Set(warmCtx, orgID, snap); err != nil {
			h.log.WarnContext(r.Context(), "stats cache warm failed", "org_id", orgID, "error", err)
		}
		cancel()
	}

	httpx.JSON(w, http.StatusOK, snap)
}
