package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	invdomain "github.com/ghuser/stockroom/services/inventory/domain"
	"github.com/ghuser/stockroom/services/inventory/domain/history"
	"github.com/ghuser/stockroom/services/inventory/domain/models"
	"github.com/ghuser/stockroom/services/inventory/domain/repositories"
	domainsvcs "github.com/ghuser/stockroom/services/inventory/domain/services"
)

// ItemInput carries the caller-editable item fields for create and edit.
type ItemInput struct {
	Name       string
	Category   string
	Tags       []string
	MinLevel   int
	Quantity   int
	Price      float64
	TotalValue float64
	Location   string
	QRValue    string
}

// Editor identifies who performed an edit, recorded as snapshot provenance.
// Supplied by the identity layer, never derived here.
type Editor struct {
	Name  string
	Email string
}

// ItemService orchestrates item writes. Change-feed publishing and history
// snapshots are handled by the repository layer inside the write transaction.
type ItemService struct {
	repo  repositories.ItemRepository
	snaps repositories.SnapshotRepository
}

// NewItemService returns an ItemService wired with the given repositories.
func NewItemService(repo repositories.ItemRepository, snaps repositories.SnapshotRepository) *ItemService {
	return &ItemService{repo: repo, snaps: snaps}
}

// Create validates and persists a new Item.
func (s *ItemService) Create(ctx context.Context, orgID uuid.UUID, in ItemInput) (*models.Item, error) {
	item, err := models.NewItem(orgID, in.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", invdomain.ErrInvalidItem, err)
	}
	applyInput(item, in)

	if err := domainsvcs.ValidateItemForWrite(item); err != nil {
		return nil, fmt.Errorf("%w: %w", invdomain.ErrInvalidItem, err)
	}

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}

	return item, nil
}

// Edit applies in to the stored item. When at least one tracked field
// differs, the update and its history snapshot are persisted together and
// changed is true. When nothing differs, Edit short-circuits without writing:
// no empty history entry is ever recorded.
func (s *ItemService) Edit(ctx context.Context, orgID, itemID uuid.UUID, in ItemInput, editor Editor) (item *models.Item, changed bool, err error) {
	original, err := s.repo.GetByID(ctx, orgID, itemID)
	if err != nil {
		return nil, false, fmt.Errorf("get item: %w", err)
	}

	updated := *original
	applyInput(&updated, in)

	if err := domainsvcs.ValidateItemForWrite(&updated); err != nil {
		return nil, false, fmt.Errorf("%w: %w", invdomain.ErrInvalidItem, err)
	}

	changes := history.Diff(original, &updated)
	if len(changes) == 0 {
		return original, false, nil
	}

	snap := &models.ItemSnapshot{
		OrgID:       orgID,
		ItemID:      itemID,
		Changes:     changes,
		Description: history.Describe(original, &updated),
		EditorName:  editor.Name,
		EditorEmail: editor.Email,
	}

	if err := s.repo.Update(ctx, &updated, snap); err != nil {
		return nil, false, fmt.Errorf("update item: %w", err)
	}
	return &updated, true, nil
}

// Delete removes an item by ID scoped to the given org.
// Returns ErrItemNotFound if no matching item exists.
func (s *ItemService) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	exists, err := s.repo.Exists(ctx, orgID, id)
	if err != nil {
		return fmt.Errorf("check item: %w", err)
	}
	if !exists {
		return invdomain.ErrItemNotFound
	}
	if err := s.repo.Delete(ctx, orgID, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// List returns all items for the org.
func (s *ItemService) List(ctx context.Context, orgID uuid.UUID) ([]*models.Item, error) {
	items, err := s.repo.ListByOrgID(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// History returns an item's edit snapshots, newest first.
func (s *ItemService) History(ctx context.Context, orgID, itemID uuid.UUID) ([]*models.ItemSnapshot, error) {
	snaps, err := s.snaps.ListByItemID(ctx, orgID, itemID)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return snaps, nil
}

// applyInput copies the editable fields onto item, leaving identity and
// bookkeeping fields untouched.
func applyInput(item *models.Item, in ItemInput) {
	item.Name = in.Name
	item.Category = in.Category
	item.Tags = in.Tags
	item.MinLevel = in.MinLevel
	item.Quantity = in.Quantity
	item.Price = in.Price
	item.TotalValue = in.TotalValue
	item.Location = in.Location
	item.QRValue = in.QRValue
}
