package handlers

import (
	"net/http"

	"github.com/ghuser/stockroom/pkg/auth"
	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/pkg/httpx"
	appsvcs "github.com/ghuser/stockroom/services/inventory/application/services"
)

// GetLocationsHandler handles GET /locations requests.
type GetLocationsHandler struct {
	svc *appsvcs.Services
}

// NewGetLocationsHandler returns a GetLocationsHandler backed by the given services.
func NewGetLocationsHandler(svc *appsvcs.Services) *GetLocationsHandler {
	return &GetLocationsHandler{svc: svc}
}

// LocationListResponse lists the organization's locations.
type LocationListResponse struct {
	Locations []LocationResponse `json:"itemLocations"`
} // @name LocationListResponse

// Execute lists the organization's locations.
//
//	@Summary		List locations
//	@Description	Returns every location defined for the session's organization
//	@Tags			locations
//	@Produce		json
//	@Success		200	{object}	LocationListResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/locations [get]
func (h *GetLocationsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orgID, err := auth.OrgIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	locs, err := h.svc.Location.List(r.Context(), orgID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	out := make([]LocationResponse, len(locs))
	for i, loc := range locs {
		out[i] = toLocationResponse(loc)
	}

	httpx.JSON(w, http.StatusOK, LocationListResponse{Locations: out})
}
