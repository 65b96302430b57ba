package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/stockroom/services/inventory/domain/models"
)

// LocationRepository is the persistence interface for ItemLocations.
type LocationRepository interface {
	Save(ctx context.Context, loc *models.ItemLocation) error

	// FindByName returns all locations matching name within the org. Under
	// the uniqueness policy this is zero or one, but a write race can leave
	// duplicates, so callers must handle a multi-element result.
	FindByName(ctx context.Context, orgID uuid.UUID, name string) ([]*models.ItemLocation, error)

	// ListByOrgID retrieves all locations for the given org in creation order.
	ListByOrgID(ctx context.Context, orgID uuid.UUID) ([]*models.ItemLocation, error)

	// DeleteByName removes every location matching name within the org and
	// returns how many rows were deleted.
	DeleteByName(ctx context.Context, orgID uuid.UUID, name string) (int, error)
}
