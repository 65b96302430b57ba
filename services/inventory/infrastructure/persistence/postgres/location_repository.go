package postgres

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/google/uuid"

	"github.com/ghuser/stockroom/pkg/database"
	"github.com/ghuser/stockroom/pkg/events"
	invevents "github.com/ghuser/stockroom/services/inventory/domain/events"
	"github.com/ghuser/stockroom/services/inventory/domain/models"
)

// LocationRepository implements repositories.LocationRepository against
// PostgreSQL. Name uniqueness is a policy enforced by the service layer's
// pre-write check, not a database constraint, so FindByName and DeleteByName
// both tolerate multiple rows per name.
type LocationRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewLocationRepository returns a LocationRepository backed by the given
// connection pool and event bus.
func NewLocationRepository(db *database.Database, bus *events.EventBus) *LocationRepository {
	return &LocationRepository{db: db, bus: bus}
}

// Save persists a new ItemLocation and publishes a created event within the
// same transaction.
func (r *LocationRepository) Save(ctx context.Context, loc *models.ItemLocation) error {
	query, args, err := psql.Insert("item_locations").
		Columns("id", "org_id", "name", "created_at").
		Values(loc.ID, loc.OrgID, loc.Name, loc.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return classifyError("insert location", err)
		}
		if err := publishChange(r.bus, tx, invevents.TopicLocationsChanged,
			loc.OrgID, loc.ID, invevents.ActionCreated); err != nil {
			return fmt.Errorf("publish location created: %w", err)
		}
		return nil
	})
}

// FindByName returns all locations matching name within the org.
func (r *LocationRepository) FindByName(ctx context.Context, orgID uuid.UUID, name string) ([]*models.ItemLocation, error) {
	query, args, err := psql.Select("id", "org_id", "name", "created_at").
		From("item_locations").
		Where(sq.Eq{"org_id": orgID, "name": name}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var locs []*models.ItemLocation
	if err := sqlscan.Select(ctx, r.db.DB(), &locs, query, args...); err != nil {
		return nil, classifyError("query locations by name", err)
	}
	return locs, nil
}

// ListByOrgID retrieves all locations for the given org in creation order.
func (r *LocationRepository) ListByOrgID(ctx context.Context, orgID uuid.UUID) ([]*models.ItemLocation, error) {
	query, args, err := psql.Select("id", "org_id", "name", "created_at").
		From("item_locations").
		Where(sq.Eq{"org_id": orgID}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var locs []*models.ItemLocation
	if err := sqlscan.Select(ctx, r.db.DB(), &locs, query, args...); err != nil {
		return nil, classifyError("query locations", err)
	}
	return locs, nil
}

// DeleteByName removes every location matching name within the org, publishes
// one deleted event per removed row, and returns the delete count.
func (r *LocationRepository) DeleteByName(ctx context.Context, orgID uuid.UUID, name string) (int, error) {
	query, args, err := psql.Delete("item_locations").
		Where(sq.Eq{"org_id": orgID, "name": name}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	var deleted int
	err = r.db.WithTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return classifyError("delete locations", err)
		}
		defer rows.Close() //nolint:errcheck

		var ids []uuid.UUID
		for rows.Next() {
			var id uuid.UUID
			if err := rows.Scan(&id); err != nil {
				return fmt.Errorf("scan deleted id: %w", err)
			}
			ids = append(ids, id)
		}
		if err := rows.Err(); err != nil {
			return classifyError("iterate deleted locations", err)
		}

		for _, id := range ids {
			if err := publishChange(r.bus, tx, invevents.TopicLocationsChanged,
				orgID, id, invevents.ActionDeleted); err != nil {
				return fmt.Errorf("publish location deleted: %w", err)
			}
		}
		deleted = len(ids)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
