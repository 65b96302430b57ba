package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/stockroom/pkg/auth"
	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/pkg/httpx"
	pkgvalidator "github.com/ghuser/stockroom/pkg/validator"
	appsvcs "github.com/ghuser/stockroom/services/inventory/application/services"
)

// PutItemHandler handles PUT /items/{itemID} requests.
type PutItemHandler struct {
	svc *appsvcs.Services
}

// NewPutItemHandler returns a PutItemHandler backed by the given services.
func NewPutItemHandler(svc *appsvcs.Services) *PutItemHandler {
	return &PutItemHandler{svc: svc}
}

// EditItemResponse wraps the item with whether the edit actually changed it.
// Changed is false when every submitted field matched the stored item; no
// write and no history snapshot happened in that case.
type EditItemResponse struct {
	Item    ItemResponse `json:"item"`
	Changed bool         `json:"changed"`
} // @name EditItemResponse

// Execute edits an existing item, recording a history snapshot when any
// tracked field changed.
//
//	@Summary		Edit item
//	@Description	Updates an item and records a field-level history snapshot
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			itemID	path		string		true	"Item ID"
//	@Param			request	body		ItemRequest	true	"Item fields"
//	@Success		200		{object}	EditItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/items/{itemID} [put]
func (h *PutItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
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

	req, ok := pkgvalidator.ValidateRequest[ItemRequest](w, r)
	if !ok {
		return
	}

	user := auth.UserFromCtx(r.Context())
	item, changed, err := h.svc.Item.Edit(r.Context(), orgID, itemID, itemInput(req),
		appsvcs.Editor{Name: user.Name, Email: user.Email})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, EditItemResponse{
		Item:    toItemResponse(item),
		Changed: changed,
	})
}
