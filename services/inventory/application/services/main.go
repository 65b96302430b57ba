package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/stockroom/pkg/app"
	"github.com/ghuser/stockroom/pkg/cache"
	"github.com/ghuser/stockroom/services/inventory/application/aggregate"
	"github.com/ghuser/stockroom/services/inventory/infrastructure/persistence/postgres"
)

// StatsCache is the slice of the snapshot cache the stats read path needs.
// *cache.SnapshotCache satisfies it; Get reports a missing key as
// cache.ErrMiss.
type StatsCache interface {
	Get(ctx context.Context, orgID uuid.UUID, dest any) error
	Set(ctx context.Context, orgID uuid.UUID, snap any) error
}

// Services is the application-layer service container for the inventory
// bounded context. It wires domain services with their infrastructure
// implementations and owns the per-org aggregator registry.
type Services struct {
	Item      *ItemService
	Location  *LocationService
	Stats     *aggregate.Registry
	SnapCache StatsCache
}

// New wires all inventory application services with infrastructure from the
// Application container.
func New(a *app.Application) *Services {
	itemRepo := postgres.NewItemRepository(a.Db, a.EventBus)
	locRepo := postgres.NewLocationRepository(a.Db, a.EventBus)
	snapRepo := postgres.NewSnapshotRepository(a.Db)

	return &Services{
		Item:      NewItemService(itemRepo, snapRepo),
		Location:  NewLocationService(locRepo),
		Stats:     aggregate.NewRegistry(a.EventBus, itemRepo, locRepo, a.Logger),
		SnapCache: cache.NewSnapshotCache(a.Redis),
	}
}

// Close releases long-lived resources: all live aggregator subscriptions.
func (s *Services) Close() {
	s.Stats.Close()
}
