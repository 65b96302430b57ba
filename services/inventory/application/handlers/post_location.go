package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/stockroom/pkg/auth"
	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/pkg/httpx"
	pkgvalidator "github.com/ghuser/stockroom/pkg/validator"
	appsvcs "github.com/ghuser/stockroom/services/inventory/application/services"
	"github.com/ghuser/stockroom/services/inventory/domain/models"
)

// PostLocationHandler handles POST /locations requests.
type PostLocationHandler struct {
	svc *appsvcs.Services
}

// NewPostLocationHandler returns a PostLocationHandler backed by the given services.
func NewPostLocationHandler(svc *appsvcs.Services) *PostLocationHandler {
	return &PostLocationHandler{svc: svc}
}

// LocationRequest is the request body for adding a location.
type LocationRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255" example:"Warehouse"`
} // @name LocationRequest

// LocationResponse is the location representation returned by location endpoints.
type LocationResponse struct {
	ID        uuid.UUID `json:"id"`
	OrgID     uuid.UUID `json:"orgId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
} // @name LocationResponse

func toLocationResponse(loc *models.ItemLocation) LocationResponse {
	return LocationResponse{
		ID:        loc.ID,
		OrgID:     loc.OrgID,
		Name:      loc.Name,
		CreatedAt: loc.CreatedAt,
	}
}

// Execute adds a named location to the organization.
//
//	@Summary		Add location
//	@Description	Creates a location; fails when another location already uses the name
//	@Tags			locations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LocationRequest	true	"Location name"
//	@Success		201		{object}	LocationResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/locations [post]
func (h *PostLocationHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orgID, err := auth.OrgIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	req, ok := pkgvalidator.ValidateRequest[LocationRequest](w, r)
	if !ok {
		return
	}

	loc, err := h.svc.Location.Add(r.Context(), orgID, req.Name)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toLocationResponse(loc))
}
