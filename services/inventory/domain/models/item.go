package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultCategory is the folder items with a blank category are grouped under.
const DefaultCategory = "Uncategorized"

// Item is the core aggregate for the inventory bounded context.
// The database row is the authoritative state; in-memory copies held by the
// stats aggregator are caches invalidated by the next change notification.
type Item struct {
	ID       uuid.UUID `json:"id" db:"id"`
	OrgID    uuid.UUID `json:"orgId" db:"org_id"` // tenant scope; always filter by this in queries
	Name     string    `json:"name" db:"name"`
	Category string    `json:"category" db:"category"` // free text; blank groups under DefaultCategory
	Tags     []string  `json:"tags" db:"tags"`
	MinLevel int       `json:"minLevel" db:"min_level"`
	Quantity int       `json:"quantity" db:"quantity"`
	Price    float64   `json:"price" db:"price"`
	// TotalValue is stored as entered, not derived from Quantity*Price.
	TotalValue float64 `json:"totalValue" db:"total_value"`
	// Location is a name reference into the org's location set, not a foreign key.
	Location  string     `json:"location" db:"location"`
	QRValue   string     `json:"qrValue" db:"qr_value"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	EditedAt  *time.Time `json:"editedAt" db:"edited_at"`
}

// NewItem constructs an Item with generated ID and current timestamp.
// Only the structural invariants are checked here; business rules live in
// the domain services package.
func NewItem(orgID uuid.UUID, name string) (*Item, error) {
	if name == "" {
		return nil, fmt.Errorf("item name must not be empty")
	}
	if orgID == uuid.Nil {
		return nil, fmt.Errorf("org_id must be set")
	}
	return &Item{
		ID:        uuid.New(),
		OrgID:     orgID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Folder returns the category the item groups under, normalizing a blank
// category to DefaultCategory.
func (i *Item) Folder() string {
	if i.Category == "" {
		return DefaultCategory
	}
	return i.Category
}

// LowStock reports whether the item's quantity is strictly below its
// configured minimum level.
func (i *Item) LowStock() bool {
	return i.Quantity < i.MinLevel
}
