package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/stockroom/pkg/auth"
	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/pkg/httpx"
	appsvcs "github.com/ghuser/stockroom/services/inventory/application/services"
	"github.com/ghuser/stockroom/services/inventory/domain/models"
)

// GetItemHistoryHandler handles GET /items/{itemID}/history requests.
type GetItemHistoryHandler struct {
	svc *appsvcs.Services
}

// NewGetItemHistoryHandler returns a GetItemHistoryHandler backed by the given services.
func NewGetItemHistoryHandler(svc *appsvcs.Services) *GetItemHistoryHandler {
	return &GetItemHistoryHandler{svc: svc}
}

// ItemHistoryResponse lists an item's edit snapshots, newest first.
type ItemHistoryResponse struct {
	Snapshots []*models.ItemSnapshot `json:"snapshots"`
} // @name ItemHistoryResponse

// Execute returns the edit history for an item.
//
//	@Summary		Item history
//	@Description	Returns the immutable edit snapshots for an item, newest first
//	@Tags			items
//	@Produce		json
//	@Param			itemID	path		string	true	"Item ID"
//	@Success		200		{object}	ItemHistoryResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Router			/items/{itemID}/history [get]
func (h *GetItemHistoryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orgID, err := auth.OrgIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	snaps, err := h.svc.Item.History(r.Context(), orgID, itemID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, ItemHistoryResponse{Snapshots: snaps})
}
