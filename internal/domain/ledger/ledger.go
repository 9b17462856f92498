// Package ledger implements the quotation line item list of a vendor
// onboarding session: an ordered Bill of Quantities with derived per-item
// and grand totals. Pure computation, no I/O.
package ledger

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// LineItem is one row of the Bill of Quantities. TotalPrice is derived
// from Quantity and UnitPrice and is never independently settable.
type LineItem struct {
	ID          string   `json:"id"`
	Code        string   `json:"code"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Unit        Unit     `json:"unit"`
	Quantity    float64  `json:"quantity"`
	UnitPrice   float64  `json:"unit_price"`
	TotalPrice  float64  `json:"total_price"`
}

// Ledger owns the ordered line item list. All mutation happens through
// AddItem, RemoveItem and UpdateItem so the TotalPrice invariant holds
// after every call.
type Ledger struct {
	items  []LineItem
	nextID int
}

// New creates a ledger seeded with one default row.
func New() *Ledger {
	l := &Ledger{}
	l.AddItem()
	return l
}

// AddItem appends a new line item with an auto-generated code derived from
// its 1-based position, default category/unit, quantity 1 and zero prices.
func (l *Ledger) AddItem() LineItem {
	l.nextID++
	item := LineItem{
		ID:       strconv.Itoa(l.nextID),
		Code:     fmt.Sprintf("ITEM-%03d", len(l.items)+1),
		Category: DefaultCategory,
		Unit:     DefaultUnit,
		Quantity: DefaultQuantity,
	}
	item.TotalPrice = item.Quantity * item.UnitPrice
	l.items = append(l.items, item)
	return item
}

// RemoveItem removes the item with the given id. Removing an absent id is
// a no-op. The list may shrink to zero; the completion gate then blocks.
func (l *Ledger) RemoveItem(id string) bool {
	for i, item := range l.items {
		if item.ID == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateItem sets one field of the item with the given id. Quantity and
// unit price writes recompute TotalPrice in the same call, so no
// intermediate inconsistent state is observable. Unknown ids, unknown
// field names and invalid enum values leave the ledger untouched.
func (l *Ledger) UpdateItem(id, field, value string) bool {
	idx := -1
	for i := range l.items {
		if l.items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	item := &l.items[idx]
	switch field {
	case FieldCode:
		item.Code = value
	case FieldDescription:
		item.Description = value
	case FieldCategory:
		category := Category(strings.ToUpper(value))
		if !category.IsValid() {
			return false
		}
		item.Category = category
	case FieldUnit:
		unit := Unit(strings.ToUpper(value))
		if !unit.IsValid() {
			return false
		}
		item.Unit = unit
	case FieldQuantity:
		item.Quantity = coerceAmount(value)
		item.TotalPrice = item.Quantity * item.UnitPrice
	case FieldUnitPrice:
		item.UnitPrice = coerceAmount(value)
		item.TotalPrice = item.Quantity * item.UnitPrice
	default:
		return false
	}
	return true
}

// Item returns the item with the given id.
func (l *Ledger) Item(id string) (LineItem, bool) {
	for _, item := range l.items {
		if item.ID == id {
			return item, true
		}
	}
	return LineItem{}, false
}

// Items returns a copy of the ordered line item list.
func (l *Ledger) Items() []LineItem {
	out := make([]LineItem, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of line items.
func (l *Ledger) Len() int {
	return len(l.items)
}

// GrandTotal folds the per-item totals. Computed on demand so it always
// reflects the latest item state.
func (l *Ledger) GrandTotal() float64 {
	var total float64
	for _, item := range l.items {
		total += item.TotalPrice
	}
	return total
}

// IsComplete reports whether the ledger satisfies the completion gate:
// at least one item, and every item has a description and quantity > 0.
func (l *Ledger) IsComplete() bool {
	if len(l.items) == 0 {
		return false
	}
	for _, item := range l.items {
		if strings.TrimSpace(item.Description) == "" || item.Quantity <= 0 {
			return false
		}
	}
	return true
}

// coerceAmount maps raw numeric input to a safe non-negative amount.
// Non-numeric input coerces to 0 and negative input clamps to 0. ParseFloat
// accepts "NaN" and "Inf" spellings, so non-finite results are rejected
// too; the ledger never holds an unrepresentable quantity or price.
func coerceAmount(value string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
