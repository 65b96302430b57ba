package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/stockroom/services/inventory/domain/models"
)

// ItemRepository is the persistence interface for the Item aggregate.
// The domain layer owns this interface; infrastructure implements it.
//
// Implementations publish a change-feed event for every successful write, in
// the same transaction as the write itself, so watchers are woken exactly when
// the store state changed.
type ItemRepository interface {
	Save(ctx context.Context, item *models.Item) error
	GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Item, error)

	// ListByOrgID retrieves all items for the given org in creation order.
	// The watcher and aggregator consume the full list on every change.
	ListByOrgID(ctx context.Context, orgID uuid.UUID) ([]*models.Item, error)

	// Update persists changes to an existing Item and records the given
	// edit snapshot in the same transaction.
	Update(ctx context.Context, item *models.Item, snap *models.ItemSnapshot) error

	// Delete removes an item by ID scoped to the given org.
	Delete(ctx context.Context, orgID, id uuid.UUID) error

	// Exists reports whether an item with the given ID exists for the given org.
	Exists(ctx context.Context, orgID, id uuid.UUID) (bool, error)
}
