package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	invdomain "github.com/ghuser/stockroom/services/inventory/domain"
	"github.com/ghuser/stockroom/services/inventory/domain/models"
)

// stubItemRepo records writes and serves a single stored item.
type stubItemRepo struct {
	stored      *models.Item
	savedItem   *models.Item
	updatedItem *models.Item
	updatedSnap *models.ItemSnapshot
	deleted     bool
}

func (r *stubItemRepo) Save(_ context.Context, item *models.Item) error {
	r.savedItem = item
	return nil
}

func (r *stubItemRepo) GetByID(_ context.Context, orgID, id uuid.UUID) (*models.Item, error) {
	if r.stored == nil || r.stored.ID != id || r.stored.OrgID != orgID {
		return nil, invdomain.ErrItemNotFound
	}
	copied := *r.stored
	return &copied, nil
}

func (r *stubItemRepo) ListByOrgID(context.Context, uuid.UUID) ([]*models.Item, error) {
	if r.stored == nil {
		return nil, nil
	}
	return []*models.Item{r.stored}, nil
}

func (r *stubItemRepo) Update(_ context.Context, item *models.Item, snap *models.ItemSnapshot) error {
	r.updatedItem = item
	r.updatedSnap = snap
	return nil
}

func (r *stubItemRepo) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	r.deleted = true
	return nil
}

func (r *stubItemRepo) Exists(_ context.Context, orgID, id uuid.UUID) (bool, error) {
	return r.stored != nil && r.stored.ID == id && r.stored.OrgID == orgID, nil
}

type stubSnapshotRepo struct {
	snaps []*models.ItemSnapshot
}

func (r *stubSnapshotRepo) ListByItemID(context.Context, uuid.UUID, uuid.UUID) ([]*models.ItemSnapshot, error) {
	return r.snaps, nil
}

func storedItem(orgID uuid.UUID) *models.Item {
	return &models.Item{
		ID:       uuid.New(),
		OrgID:    orgID,
		Name:     "Hammer",
		Category: "Tools",
		Quantity: 5,
		MinLevel: 2,
		Price:    9.5,
	}
}

func inputFrom(item *models.Item) ItemInput {
	return ItemInput{
		Name:       item.Name,
		Category:   item.Category,
		Tags:       item.Tags,
		MinLevel:   item.MinLevel,
		Quantity:   item.Quantity,
		Price:      item.Price,
		TotalValue: item.TotalValue,
		Location:   item.Location,
		QRValue:    item.QRValue,
	}
}

func TestItemService_Create(t *testing.T) {
	t.Run("valid input persists", func(t *testing.T) {
		repo := &stubItemRepo{}
		svc := NewItemService(repo, &stubSnapshotRepo{})

		item, err := svc.Create(context.Background(), uuid.New(), ItemInput{Name: "Hammer", Quantity: 3})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.savedItem == nil || repo.savedItem.ID != item.ID {
			t.Fatal("item was not saved")
		}
		if item.ID == uuid.Nil || item.CreatedAt.IsZero() {
			t.Fatal("constructor must assign id and timestamp")
		}
	})

	t.Run("invalid name maps to ErrInvalidItem", func(t *testing.T) {
		svc := NewItemService(&stubItemRepo{}, &stubSnapshotRepo{})
		_, err := svc.Create(context.Background(), uuid.New(), ItemInput{Name: " bad"})
		if !errors.Is(err, invdomain.ErrInvalidItem) {
			t.Fatalf("expected ErrInvalidItem, got %v", err)
		}
	})

	t.Run("negative quantity maps to ErrInvalidItem", func(t *testing.T) {
		svc := NewItemService(&stubItemRepo{}, &stubSnapshotRepo{})
		_, err := svc.Create(context.Background(), uuid.New(), ItemInput{Name: "ok", Quantity: -1})
		if !errors.Is(err, invdomain.ErrInvalidItem) {
			t.Fatalf("expected ErrInvalidItem, got %v", err)
		}
	})
}

func TestItemService_Edit(t *testing.T) {
	t.Run("no-op edit writes nothing and records no snapshot", func(t *testing.T) {
		orgID := uuid.New()
		repo := &stubItemRepo{stored: storedItem(orgID)}
		svc := NewItemService(repo, &stubSnapshotRepo{})

		item, changed, err := svc.Edit(context.Background(), orgID, repo.stored.ID,
			inputFrom(repo.stored), Editor{Name: "Sam"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if changed {
			t.Fatal("identical input must report changed=false")
		}
		if repo.updatedItem != nil || repo.updatedSnap != nil {
			t.Fatal("no write or snapshot may happen on a no-op edit")
		}
		if item.Name != "Hammer" {
			t.Fatalf("expected the stored item back, got %+v", item)
		}
	})

	t.Run("real change persists item and snapshot together", func(t *testing.T) {
		orgID := uuid.New()
		repo := &stubItemRepo{stored: storedItem(orgID)}
		svc := NewItemService(repo, &stubSnapshotRepo{})

		in := inputFrom(repo.stored)
		in.Quantity = 8

		item, changed, err := svc.Edit(context.Background(), orgID, repo.stored.ID,
			in, Editor{Name: "Sam", Email: "sam@example.com"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !changed {
			t.Fatal("expected changed=true")
		}
		if item.Quantity != 8 {
			t.Fatalf("Quantity = %d, want 8", item.Quantity)
		}
		if repo.updatedSnap == nil {
			t.Fatal("expected a history snapshot")
		}
		if _, ok := repo.updatedSnap.Changes["quantity"]; !ok {
			t.Fatalf("snapshot changes = %v, want quantity key", repo.updatedSnap.Changes)
		}
		if repo.updatedSnap.Description != "Changed quantity field from 5 to 8." {
			t.Fatalf("description = %q", repo.updatedSnap.Description)
		}
		if repo.updatedSnap.EditorName != "Sam" || repo.updatedSnap.EditorEmail != "sam@example.com" {
			t.Fatalf("editor provenance = %q/%q", repo.updatedSnap.EditorName, repo.updatedSnap.EditorEmail)
		}
	})

	t.Run("missing item surfaces ErrItemNotFound", func(t *testing.T) {
		svc := NewItemService(&stubItemRepo{}, &stubSnapshotRepo{})
		_, _, err := svc.Edit(context.Background(), uuid.New(), uuid.New(), ItemInput{Name: "x"}, Editor{})
		if !errors.Is(err, invdomain.ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
	})

	t.Run("invalid edit rejected before any write", func(t *testing.T) {
		orgID := uuid.New()
		repo := &stubItemRepo{stored: storedItem(orgID)}
		svc := NewItemService(repo, &stubSnapshotRepo{})

		in := inputFrom(repo.stored)
		in.Quantity = -4

		_, _, err := svc.Edit(context.Background(), orgID, repo.stored.ID, in, Editor{})
		if !errors.Is(err, invdomain.ErrInvalidItem) {
			t.Fatalf("expected ErrInvalidItem, got %v", err)
		}
		if repo.updatedItem != nil {
			t.Fatal("invalid edit must not reach the repository")
		}
	})
}

func TestItemService_Delete(t *testing.T) {
	t.Run("missing item surfaces ErrItemNotFound", func(t *testing.T) {
		repo := &stubItemRepo{}
		svc := NewItemService(repo, &stubSnapshotRepo{})

		err := svc.Delete(context.Background(), uuid.New(), uuid.New())
		if !errors.Is(err, invdomain.ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
		if repo.deleted {
			t.Fatal("delete must not run for a missing item")
		}
	})

	t.Run("existing item is deleted", func(t *testing.T) {
		orgID := uuid.New()
		repo := &stubItemRepo{stored: storedItem(orgID)}
		svc := NewItemService(repo, &stubSnapshotRepo{})

		if err := svc.Delete(context.Background(), orgID, repo.stored.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !repo.deleted {
			t.Fatal("expected repository delete")
		}
	})
}
