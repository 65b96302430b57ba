// Package history computes field-level diffs between item versions and the
// human-readable change descriptions persisted with every edit snapshot.
package history

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/ghuser/stockroom/services/inventory/domain/models"
)

// Tracked field keys, in the item's field order. Describe emits sentences in
// this order; bookkeeping fields (id, orgId, createdAt, editedAt) are not
// tracked.
const (
	FieldName       = "name"
	FieldCategory   = "category"
	FieldTags       = "tags"
	FieldMinLevel   = "minLevel"
	FieldQuantity   = "quantity"
	FieldPrice      = "price"
	FieldTotalValue = "totalValue"
	FieldLocation   = "location"
	FieldQRValue    = "qrValue"
)

// fieldOrder fixes the sentence order used by Describe.
var fieldOrder = []string{
	FieldName,
	FieldCategory,
	FieldTags,
	FieldMinLevel,
	FieldQuantity,
	FieldPrice,
	FieldTotalValue,
	FieldLocation,
	FieldQRValue,
}

// Diff returns the tracked fields whose value differs between old and new,
// mapped to their before/after values. An unchanged item yields an empty map.
//
// Tags compare element-wise and order-sensitively: a reordered tag list is
// reported as a change even when the element set is identical.
func Diff(oldItem, newItem *models.Item) map[string]models.FieldChange {
	changes := make(map[string]models.FieldChange)

	if oldItem.Name != newItem.Name {
		changes[FieldName] = models.FieldChange{From: oldItem.Name, To: newItem.Name}
	}
	if oldItem.Category != newItem.Category {
		changes[FieldCategory] = models.FieldChange{From: oldItem.Category, To: newItem.Category}
	}
	if !slices.Equal(oldItem.Tags, newItem.Tags) {
		changes[FieldTags] = models.FieldChange{From: oldItem.Tags, To: newItem.Tags}
	}
	if oldItem.MinLevel != newItem.MinLevel {
		changes[FieldMinLevel] = models.FieldChange{From: oldItem.MinLevel, To: newItem.MinLevel}
	}
	if oldItem.Quantity != newItem.Quantity {
		changes[FieldQuantity] = models.FieldChange{From: oldItem.Quantity, To: newItem.Quantity}
	}
	if oldItem.Price != newItem.Price {
		changes[FieldPrice] = models.FieldChange{From: oldItem.Price, To: newItem.Price}
	}
	if oldItem.TotalValue != newItem.TotalValue {
		changes[FieldTotalValue] = models.FieldChange{From: oldItem.TotalValue, To: newItem.TotalValue}
	}
	if oldItem.Location != newItem.Location {
		changes[FieldLocation] = models.FieldChange{From: oldItem.Location, To: newItem.Location}
	}
	if oldItem.QRValue != newItem.QRValue {
		changes[FieldQRValue] = models.FieldChange{From: oldItem.QRValue, To: newItem.QRValue}
	}

	return changes
}

// Describe builds the prose description for an edit. A name change gets a
// dedicated leading sentence; every other changed field gets one sentence in
// the item's field order. Sentences are joined with single spaces. An empty
// diff yields an empty string.
func Describe(oldItem, newItem *models.Item) string {
	changes := Diff(oldItem, newItem)
	if len(changes) == 0 {
		return ""
	}

	var sentences []string
	if c, ok := changes[FieldName]; ok {
		sentences = append(sentences, fmt.Sprintf("Changed name of %s to %s.",
			formatValue(c.From), formatValue(c.To)))
	}
	for _, field := range fieldOrder {
		if field == FieldName {
			continue
		}
		c, ok := changes[field]
		if !ok {
			continue
		}
		sentences = append(sentences, fmt.Sprintf("Changed %s field from %s to %s.",
			field, formatValue(c.From), formatValue(c.To)))
	}

	return strings.Join(sentences, " ")
}

// formatValue renders a field value for a description sentence.
func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []string:
		return strings.Join(t, ", ")
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}
