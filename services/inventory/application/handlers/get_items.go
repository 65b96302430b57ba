package handlers

import (
	"net/http"

	"github.com/ghuser/stockroom/pkg/auth"
	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/pkg/httpx"
	appsvcs "github.com/ghuser/stockroom/services/inventory/application/services"
	"github.com/ghuser/stockroom/services/inventory/domain/stats"
)

// GetItemsHandler handles GET /items requests.
type GetItemsHandler struct {
	svc *appsvcs.Services
}

// NewGetItemsHandler returns a GetItemsHandler backed by the given services.
func NewGetItemsHandler(svc *appsvcs.Services) *GetItemsHandler {
	return &GetItemsHandler{svc: svc}
}

// ItemListResponse returns the full item list plus its folder grouping.
type ItemListResponse struct {
	Items         []ItemResponse            `json:"items"`
	Folders       []string                  `json:"folders"`
	ItemsByFolder map[string][]ItemResponse `json:"itemsByFolder"`
} // @name ItemListResponse

// Execute lists the organization's items grouped by folder.
//
//	@Summary		List items
//	@Description	Returns all items with their category/folder grouping
//	@Tags			items
//	@Produce		json
//	@Success		200	{object}	ItemListResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/items [get]
func (h *GetItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orgID, err := auth.OrgIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	items, err := h.svc.Item.List(r.Context(), orgID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	folders, byFolder := stats.GroupByFolder(items)
	grouped := make(map[string][]ItemResponse, len(byFolder))
	for folder, folderItems := range byFolder {
		grouped[folder] = toItemResponses(folderItems)
	}

	httpx.JSON(w, http.StatusOK, ItemListResponse{
		Items:         toItemResponses(items),
		Folders:       folders,
		ItemsByFolder: grouped,
	})
}
