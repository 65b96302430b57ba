package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/stockroom/services/inventory/domain/models"
)

// SnapshotRepository reads the immutable edit-history snapshots.
// Snapshots are written by ItemRepository.Update inside the edit transaction;
// this interface deliberately has no update or delete operations.
type SnapshotRepository interface {
	// ListByItemID returns an item's snapshots, newest first.
	ListByItemID(ctx context.Context, orgID, itemID uuid.UUID) ([]*models.ItemSnapshot, error)
}
