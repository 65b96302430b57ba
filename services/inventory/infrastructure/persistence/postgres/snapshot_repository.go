package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/ghuser/stockroom/pkg/database"
	"github.com/ghuser/stockroom/services/inventory/domain/models"
)

// SnapshotRepository reads the immutable edit-history snapshots written by
// ItemRepository.Update. Read-only: snapshots are never updated or deleted.
type SnapshotRepository struct {
	db *database.Database
}

// NewSnapshotRepository returns a SnapshotRepository backed by the given pool.
func NewSnapshotRepository(db *database.Database) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// ListByItemID returns an item's snapshots, newest first.
func (r *SnapshotRepository) ListByItemID(ctx context.Context, orgID, itemID uuid.UUID) ([]*models.ItemSnapshot, error) {
	query, args, err := psql.Select("id", "org_id", "item_id", "changes",
		"description", "editor_name", "editor_email", "created_at").
		From("item_snapshots").
		Where(sq.Eq{"org_id": orgID, "item_id": itemID}).
		OrderBy("created_at DESC", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classifyError("query snapshots", err)
	}
	defer rows.Close() //nolint:errcheck

	var snaps []*models.ItemSnapshot
	for rows.Next() {
		var (
			snap    models.ItemSnapshot
			changes []byte
		)
		if err := rows.Scan(
			&snap.ID, &snap.OrgID, &snap.ItemID, &changes,
			&snap.Description, &snap.EditorName, &snap.EditorEmail, &snap.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		if len(changes) > 0 {
			if err := json.Unmarshal(changes, &snap.Changes); err != nil {
				return nil, fmt.Errorf("unmarshal changes: %w", err)
			}
		}
		snaps = append(snaps, &snap)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError("iterate snapshots", err)
	}
	return snaps, nil
}
