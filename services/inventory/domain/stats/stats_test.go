package stats

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/stockroom/services/inventory/domain/models"
)

func makeItem(name, category string, quantity, minLevel int, price float64) *models.Item {
	return &models.Item{
		ID:       uuid.New(),
		OrgID:    uuid.New(),
		Name:     name,
		Category: category,
		Quantity: quantity,
		MinLevel: minLevel,
		Price:    price,
	}
}

func TestGroupByFolder(t *testing.T) {
	t.Run("every item lands in exactly one folder", func(t *testing.T) {
		items := []*models.Item{
			makeItem("a", "Tools", 1, 0, 0),
			makeItem("b", "", 1, 0, 0),
			makeItem("c", "Tools", 1, 0, 0),
			makeItem("d", "Paint", 1, 0, 0),
		}

		folders, byFolder := GroupByFolder(items)

		total := 0
		for _, fi := range byFolder {
			total += len(fi)
		}
		if total != len(items) {
			t.Fatalf("partition lost or duplicated items: got %d, want %d", total, len(items))
		}
		if len(folders) != len(byFolder) {
			t.Fatalf("folder list and map out of sync: %d vs %d", len(folders), len(byFolder))
		}
	})

	t.Run("blank category groups under Uncategorized", func(t *testing.T) {
		_, byFolder := GroupByFolder([]*models.Item{makeItem("a", "", 1, 0, 0)})
		if len(byFolder[models.DefaultCategory]) != 1 {
			t.Fatalf("expected item under %q, got %v", models.DefaultCategory, byFolder)
		}
	})

	t.Run("folder order follows first occurrence", func(t *testing.T) {
		items := []*models.Item{
			makeItem("a", "Paint", 1, 0, 0),
			makeItem("b", "Tools", 1, 0, 0),
			makeItem("c", "Paint", 1, 0, 0),
			makeItem("d", "", 1, 0, 0),
		}
		folders, _ := GroupByFolder(items)
		want := []string{"Paint", "Tools", models.DefaultCategory}
		if len(folders) != len(want) {
			t.Fatalf("folders = %v, want %v", folders, want)
		}
		for i := range want {
			if folders[i] != want[i] {
				t.Fatalf("folders = %v, want %v", folders, want)
			}
		}
	})

	t.Run("empty input yields no folders", func(t *testing.T) {
		folders, byFolder := GroupByFolder(nil)
		if len(folders) != 0 || len(byFolder) != 0 {
			t.Fatalf("expected empty result, got %v / %v", folders, byFolder)
		}
	})
}

func TestCategoryStats(t *testing.T) {
	// Tools: A qty 2 price 5 (low: min 3), B qty 10 price 6.
	itemA := makeItem("A", "Tools", 2, 3, 5)
	itemB := makeItem("B", "Tools", 10, 1, 6)
	items := []*models.Item{itemA, itemB}

	_, byFolder := GroupByFolder(items)
	cats := CategoryStats(byFolder)

	t.Run("single category with summed quantity and value", func(t *testing.T) {
		if len(cats) != 1 {
			t.Fatalf("expected 1 category, got %d", len(cats))
		}
		tools := cats["Tools"]
		if tools.TotalQuantity != 12 {
			t.Errorf("TotalQuantity = %d, want 12", tools.TotalQuantity)
		}
		if tools.TotalValue != 70 {
			t.Errorf("TotalValue = %v, want 70", tools.TotalValue)
		}
	})

	t.Run("value uses quantity times price, not stored total value", func(t *testing.T) {
		item := makeItem("C", "Paint", 4, 0, 2.5)
		item.TotalValue = 999
		_, byFolder := GroupByFolder([]*models.Item{item})
		got := CategoryStats(byFolder)["Paint"]
		if got.TotalValue != 10 {
			t.Errorf("TotalValue = %v, want 10", got.TotalValue)
		}
	})

	t.Run("recomputing from the same input gives identical totals", func(t *testing.T) {
		again := CategoryStats(byFolder)
		if again["Tools"] != cats["Tools"] {
			t.Fatalf("recompute diverged: %+v vs %+v", again["Tools"], cats["Tools"])
		}
	})
}

func TestLowStockByFolder(t *testing.T) {
	itemA := makeItem("A", "Tools", 2, 3, 5)  // low: 2 < 3
	itemB := makeItem("B", "Tools", 10, 1, 6) // fine
	itemC := makeItem("C", "Paint", 5, 5, 1)  // boundary: 5 < 5 is false

	_, byFolder := GroupByFolder([]*models.Item{itemA, itemB, itemC})
	low := LowStockByFolder(byFolder)

	t.Run("strictly below minimum qualifies", func(t *testing.T) {
		tools := low["Tools"]
		if len(tools) != 1 || tools[0].Name != "A" {
			t.Fatalf("low stock Tools = %v, want [A]", tools)
		}
	})

	t.Run("quantity equal to minimum is not low", func(t *testing.T) {
		if _, ok := low["Paint"]; ok {
			t.Fatal("Paint must be omitted: item at exactly min level is not low stock")
		}
	})

	t.Run("folders with no low items are absent, never empty", func(t *testing.T) {
		for folder, items := range low {
			if len(items) == 0 {
				t.Fatalf("folder %q present with empty list", folder)
			}
		}
	})
}

func TestGrandTotals(t *testing.T) {
	items := []*models.Item{
		makeItem("A", "Tools", 2, 3, 5),
		makeItem("B", "Tools", 10, 1, 6),
		makeItem("C", "", 1, 0, 3),
	}

	got := GrandTotals(items)

	if got.TotalItems != 3 {
		t.Errorf("TotalItems = %d, want 3", got.TotalItems)
	}
	if got.TotalCategories != 2 {
		t.Errorf("TotalCategories = %d, want 2 (Tools + Uncategorized)", got.TotalCategories)
	}
	if got.TotalQuantity != 13 {
		t.Errorf("TotalQuantity = %d, want 13", got.TotalQuantity)
	}
	if got.TotalValue != 73 {
		t.Errorf("TotalValue = %v, want 73", got.TotalValue)
	}

	t.Run("empty list yields zero totals", func(t *testing.T) {
		if zero := GrandTotals(nil); zero != (Totals{}) {
			t.Fatalf("GrandTotals(nil) = %+v, want zero", zero)
		}
	})
}

func TestRecentlyEdited(t *testing.T) {
	at := func(h int) *time.Time {
		ts := time.Date(2026, 3, 1, h, 0, 0, 0, time.UTC)
		return &ts
	}

	older := makeItem("older", "", 1, 0, 0)
	older.EditedAt = at(9)
	newer := makeItem("newer", "", 1, 0, 0)
	newer.EditedAt = at(17)
	never := makeItem("never", "", 1, 0, 0)

	t.Run("orders by edit time descending with unedited last", func(t *testing.T) {
		got := RecentlyEdited([]*models.Item{never, older, newer}, 20)
		want := []string{"newer", "older", "never"}
		if len(got) != len(want) {
			t.Fatalf("got %d items, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i].Name != want[i] {
				t.Fatalf("position %d: got %q, want %q", i, got[i].Name, want[i])
			}
		}
	})

	t.Run("truncates to limit", func(t *testing.T) {
		got := RecentlyEdited([]*models.Item{never, older, newer}, 2)
		if len(got) != 2 {
			t.Fatalf("got %d items, want 2", len(got))
		}
		if got[0].Name != "newer" || got[1].Name != "older" {
			t.Fatalf("got %q, %q", got[0].Name, got[1].Name)
		}
	})

	t.Run("does not modify the input slice", func(t *testing.T) {
		in := []*models.Item{never, older, newer}
		RecentlyEdited(in, 20)
		if in[0].Name != "never" || in[1].Name != "older" || in[2].Name != "newer" {
			t.Fatal("input slice was reordered")
		}
	})
}

func TestLocationNames(t *testing.T) {
	locs := []*models.ItemLocation{
		{ID: uuid.New(), Name: "Warehouse"},
		{ID: uuid.New(), Name: "Van"},
	}
	names := LocationNames(locs)
	if len(names) != 2 || names[0] != "Warehouse" || names[1] != "Van" {
		t.Fatalf("names = %v", names)
	}
}
