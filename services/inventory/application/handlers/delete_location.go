package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/stockroom/pkg/auth"
	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/pkg/httpx"
	appsvcs "github.com/ghuser/stockroom/services/inventory/application/services"
)

// DeleteLocationHandler handles DELETE /locations/{name} requests.
type DeleteLocationHandler struct {
	svc *appsvcs.Services
}

// NewDeleteLocationHandler returns a DeleteLocationHandler backed by the given services.
func NewDeleteLocationHandler(svc *appsvcs.Services) *DeleteLocationHandler {
	return &DeleteLocationHandler{svc: svc}
}

// Execute removes a location by name.
//
//	@Summary		Remove location
//	@Description	Deletes the named location from the session's organization
//	@Tags			locations
//	@Produce		json
//	@Param			name	path	string	true	"Location name"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/locations/{name} [delete]
func (h *DeleteLocationHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orgID, err := auth.OrgIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil || name == "" {
		httpx.JSONError(w, http.StatusBadRequest, "invalid location name")
		return
	}

	if err := h.svc.Location.Remove(r.Context(), orgID, name); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
