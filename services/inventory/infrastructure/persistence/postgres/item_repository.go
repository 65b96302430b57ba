package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/ghuser/stockroom/pkg/database"
	"github.com/ghuser/stockroom/pkg/events"
	invdomain "github.com/ghuser/stockroom/services/inventory/domain"
	invevents "github.com/ghuser/stockroom/services/inventory/domain/events"
	"github.com/ghuser/stockroom/services/inventory/domain/models"
)

const itemColumns = "id, org_id, name, category, tags, min_level, quantity, price, total_value, location, qr_value, created_at, edited_at"

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
// Every write publishes a change-feed event in the same transaction.
type ItemRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewItemRepository returns an ItemRepository backed by the given connection
// pool and event bus.
func NewItemRepository(db *database.Database, bus *events.EventBus) *ItemRepository {
	return &ItemRepository{db: db, bus: bus}
}

// Save persists a new Item and publishes a created event within the same transaction.
func (r *ItemRepository) Save(ctx context.Context, item *models.Item) error {
	tags, err := json.Marshal(item.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	query, args, err := psql.Insert("items").
		Columns("id", "org_id", "name", "category", "tags", "min_level", "quantity",
			"price", "total_value", "location", "qr_value", "created_at").
		Values(item.ID, item.OrgID, item.Name, item.Category, tags, item.MinLevel,
			item.Quantity, item.Price, item.TotalValue, item.Location, item.QRValue, item.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return classifyError("insert item", err)
		}
		if err := publishChange(r.bus, tx, invevents.TopicItemsChanged,
			item.OrgID, item.ID, invevents.ActionCreated); err != nil {
			return fmt.Errorf("publish item created: %w", err)
		}
		return nil
	})
}

// GetByID retrieves an Item by ID scoped to the given org.
// Returns ErrItemNotFound if not found.
func (r *ItemRepository) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Item, error) {
	query, args, err := psql.Select(itemColumns).
		From("items").
		Where(sq.Eq{"id": id, "org_id": orgID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	item, err := scanItem(r.db.DB().QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invdomain.ErrItemNotFound
		}
		return nil, classifyError("query item", err)
	}
	return item, nil
}

// ListByOrgID retrieves all items for the given org in creation order.
func (r *ItemRepository) ListByOrgID(ctx context.Context, orgID uuid.UUID) ([]*models.Item, error) {
	query, args, err := psql.Select(itemColumns).
		From("items").
		Where(sq.Eq{"org_id": orgID}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classifyError("query items", err)
	}
	defer rows.Close() //nolint:errcheck

	var items []*models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError("iterate items", err)
	}
	return items, nil
}

// Update persists an edited Item, records its history snapshot, and publishes
// an updated event — all in one transaction. The item's EditedAt is set to the
// write time. Returns ErrItemNotFound when no row matches.
func (r *ItemRepository) Update(ctx context.Context, item *models.Item, snap *models.ItemSnapshot) error {
	now := time.Now().UTC()
	item.EditedAt = &now

	tags, err := json.Marshal(item.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	query, args, err := psql.Update("items").
		Set("name", item.Name).
		Set("category", item.Category).
		Set("tags", tags).
		Set("min_level", item.MinLevel).
		Set("quantity", item.Quantity).
		Set("price", item.Price).
		Set("total_value", item.TotalValue).
		Set("location", item.Location).
		Set("qr_value", item.QRValue).
		Set("edited_at", now).
		Where(sq.Eq{"id": item.ID, "org_id": item.OrgID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return classifyError("update item", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return invdomain.ErrItemNotFound
		}

		if snap != nil {
			if err := insertSnapshot(ctx, tx, snap, now); err != nil {
				return err
			}
		}

		if err := publishChange(r.bus, tx, invevents.TopicItemsChanged,
			item.OrgID, item.ID, invevents.ActionUpdated); err != nil {
			return fmt.Errorf("publish item updated: %w", err)
		}
		return nil
	})
}

// Delete removes an item by ID scoped to the given org and publishes a
// deleted event. Returns ErrItemNotFound when no row matches.
func (r *ItemRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	query, args, err := psql.Delete("items").
		Where(sq.Eq{"id": id, "org_id": orgID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return classifyError("delete item", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return invdomain.ErrItemNotFound
		}
		if err := publishChange(r.bus, tx, invevents.TopicItemsChanged,
			orgID, id, invevents.ActionDeleted); err != nil {
			return fmt.Errorf("publish item deleted: %w", err)
		}
		return nil
	})
}

// Exists reports whether an item with the given ID exists for the given org.
func (r *ItemRepository) Exists(ctx context.Context, orgID, id uuid.UUID) (bool, error) {
	query, args, err := psql.Select("1").
		From("items").
		Where(sq.Eq{"id": id, "org_id": orgID}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var exists bool
	if err := r.db.DB().QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, classifyError("check item exists", err)
	}
	return exists, nil
}

// ListOrgIDs returns every org that owns at least one item. Used by the
// low-stock digest to enumerate tenants.
func (r *ItemRepository) ListOrgIDs(ctx context.Context) ([]uuid.UUID, error) {
	query, _, err := psql.Select("DISTINCT org_id").From("items").OrderBy("org_id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, classifyError("query org ids", err)
	}
	defer rows.Close() //nolint:errcheck

	var orgIDs []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan org id: %w", err)
		}
		orgIDs = append(orgIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError("iterate org ids", err)
	}
	return orgIDs, nil
}

// insertSnapshot writes the immutable edit-history record inside the edit
// transaction.
func insertSnapshot(ctx context.Context, tx *sql.Tx, snap *models.ItemSnapshot, now time.Time) error {
	changes, err := json.Marshal(snap.Changes)
	if err != nil {
		return fmt.Errorf("marshal changes: %w", err)
	}
	if snap.ID == uuid.Nil {
		snap.ID = uuid.New()
	}
	snap.CreatedAt = now

	query, args, err := psql.Insert("item_snapshots").
		Columns("id", "org_id", "item_id", "changes", "description",
			"editor_name", "editor_email", "created_at").
		Values(snap.ID, snap.OrgID, snap.ItemID, changes, snap.Description,
			snap.EditorName, snap.EditorEmail, snap.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build snapshot insert: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return classifyError("insert snapshot", err)
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanItem reads one item row, decoding the tags JSON column.
func scanItem(row rowScanner) (*models.Item, error) {
	var (
		item models.Item
		tags []byte
	)
	if err := row.Scan(
		&item.ID, &item.OrgID, &item.Name, &item.Category, &tags,
		&item.MinLevel, &item.Quantity, &item.Price, &item.TotalValue,
		&item.Location, &item.QRValue, &item.CreatedAt, &item.EditedAt,
	); err != nil {
		return nil, err
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &item.Tags); err != nil {
			return nil, fmt.Errorf("unmarshal tags: %w", err)
		}
	}
	return &item, nil
}
