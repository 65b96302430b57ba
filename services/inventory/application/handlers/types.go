package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/stockroom/services/inventory/domain/models"
)

// ItemRequest is the request body for item create and edit.
type ItemRequest struct {
	Name       string   `json:"name" validate:"required,min=1,max=255" example:"Cordless Drill"`
	Category   string   `json:"category" validate:"max=255" example:"Tools"`
	Tags       []string `json:"tags" validate:"dive,max=64"`
	MinLevel   int      `json:"minLevel" validate:"gte=0" example:"5"`
	Quantity   int      `json:"quantity" validate:"gte=0" example:"12"`
	Price      float64  `json:"price" validate:"gte=0" example:"89.99"`
	TotalValue float64  `json:"totalValue" validate:"gte=0" example:"1079.88"`
	Location   string   `json:"location" validate:"max=255" example:"Warehouse"`
	QRValue    string   `json:"qrValue" validate:"max=512"`
} // @name ItemRequest

// ItemResponse is the item representation returned by all item endpoints.
type ItemResponse struct {
	ID         uuid.UUID  `json:"id"`
	OrgID      uuid.UUID  `json:"orgId"`
	Name       string     `json:"name"`
	Category   string     `json:"category"`
	Tags       []string   `json:"tags"`
	MinLevel   int        `json:"minLevel"`
	Quantity   int        `json:"quantity"`
	Price      float64    `json:"price"`
	TotalValue float64    `json:"totalValue"`
	Location   string     `json:"location"`
	QRValue    string     `json:"qrValue"`
	CreatedAt  time.Time  `json:"createdAt"`
	EditedAt   *time.Time `json:"editedAt,omitempty"`
} // @name ItemResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"item not found"`
} // @name ErrorResponse

func toItemResponse(item *models.Item) ItemResponse {
	return ItemResponse{
		ID:         item.ID,
		OrgID:      item.OrgID,
		Name:       item.Name,
		Category:   item.Category,
		Tags:       item.Tags,
		MinLevel:   item.MinLevel,
		Quantity:   item.Quantity,
		Price:      item.Price,
		TotalValue: item.TotalValue,
		Location:   item.Location,
		QRValue:    item.QRValue,
		CreatedAt:  item.CreatedAt,
		EditedAt:   item.EditedAt,
	}
}

func toItemResponses(items []*models.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, item := range items {
		out[i] = toItemResponse(item)
	}
	return out
}
