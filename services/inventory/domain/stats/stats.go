// Package stats contains the pure derivation functions over the raw item and
// location lists: folder grouping, per-category totals, low-stock subsets,
// grand totals, and recency ordering. Every function is a pure fold over its
// input; calling it twice with the same input yields the same output.
package stats

import (
	"sort"

	"github.com/ghuser/stockroom/services/inventory/domain/models"
)

// CategoryTotals holds the per-category quantity and value sums.
type CategoryTotals struct {
	TotalQuantity int     `json:"totalQuantity"`
	TotalValue    float64 `json:"totalValue"`
}

// Totals holds the grand totals over the full item list.
type Totals struct {
	TotalCategories int     `json:"totalCategories"`
	TotalItems      int     `json:"totalItems"`
	TotalQuantity   int     `json:"totalQuantity"`
	TotalValue      float64 `json:"totalValue"`
}

// GroupByFolder partitions items by normalized category. Every item appears in
// exactly one folder's list. Folder order is the insertion order of first
// occurrence, so the result is deterministic for a given input order.
func GroupByFolder(items []*models.Item) (folders []string, itemsByFolder map[string][]*models.Item) {
	itemsByFolder = make(map[string][]*models.Item)
	for _, item := range items {
		folder := item.Folder()
		if _, seen := itemsByFolder[folder]; !seen {
			folders = append(folders, folder)
		}
		itemsByFolder[folder] = append(itemsByFolder[folder], item)
	}
	return folders, itemsByFolder
}

// CategoryStats folds itemsByFolder into per-category quantity and value
// totals. Value is quantity times price, not the stored totalValue field.
func CategoryStats(itemsByFolder map[string][]*models.Item) map[string]CategoryTotals {
	out := make(map[string]CategoryTotals, len(itemsByFolder))
	for folder, items := range itemsByFolder {
		var t CategoryTotals
		for _, item := range items {
			t.TotalQuantity += item.Quantity
			t.TotalValue += float64(item.Quantity) * item.Price
		}
		out[folder] = t
	}
	return out
}

// LowStockByFolder returns the subset of itemsByFolder whose items have
// quantity strictly below their minimum level. Folders with no qualifying
// items are omitted entirely, never present with an empty list.
func LowStockByFolder(itemsByFolder map[string][]*models.Item) map[string][]*models.Item {
	out := make(map[string][]*models.Item)
	for folder, items := range itemsByFolder {
		var low []*models.Item
		for _, item := range items {
			if item.LowStock() {
				low = append(low, item)
			}
		}
		if len(low) > 0 {
			out[folder] = low
		}
	}
	return out
}

// GrandTotals folds the full item list into the dashboard scalars. Recomputed
// fresh on every call; there are no running counters to drift.
func GrandTotals(items []*models.Item) Totals {
	seen := make(map[string]struct{})
	t := Totals{TotalItems: len(items)}
	for _, item := range items {
		seen[item.Folder()] = struct{}{}
		t.TotalQuantity += item.Quantity
		t.TotalValue += float64(item.Quantity) * item.Price
	}
	t.TotalCategories = len(seen)
	return t
}

// RecentlyEdited returns up to limit items ordered by EditedAt descending.
// Items that were never edited sort last. The input slice is not modified.
func RecentlyEdited(items []*models.Item, limit int) []*models.Item {
	edited := make([]*models.Item, 0, len(items))
	edited = append(edited, items...)
	sort.SliceStable(edited, func(i, j int) bool {
		a, b := edited[i].EditedAt, edited[j].EditedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
	if limit > 0 && len(edited) > limit {
		edited = edited[:limit]
	}
	return edited
}

// LocationNames returns the location names in list order.
func LocationNames(locations []*models.ItemLocation) []string {
	names := make([]string, len(locations))
	for i, loc := range locations {
		names[i] = loc.Name
	}
	return names
}
