package models

// InventorySummary is the market wide quantity of one item and the vendors holding it.
type InventorySummary struct {
	Item     Item
	Quantity int
	Vendors  []*Vendor
}

// TotalInventory maps items to their summaries, remembering first encounter order.
type TotalInventory struct {
	order   []ItemKey
	entries map[ItemKey]*InventorySummary
}

func newTotalInventory() *TotalInventory {
	return &TotalInventory{entries: make(map[ItemKey]*InventorySummary)}
}

func (t *TotalInventory) getOrInsert(item Item) *InventorySummary {
	key := item.Key()
	if summary, ok := t.entries[key]; ok {
		return summary
	}
	summary := &InventorySummary{Item: item}
	t.entries[key] = summary
	t.order = append(t.order, key)
	return summary
}

// Lookup returns the summary for item.
func (t *TotalInventory) Lookup(item Item) (InventorySummary, bool) {
	summary, ok := t.entries[item.Key()]
	if !ok {
		return InventorySummary{}, false
	}
	return *summary, true
}

// Entries returns the summaries in first encounter order.
func (t *TotalInventory) Entries() []InventorySummary {
	entries := make([]InventorySummary, 0, len(t.order))
	for _, key := range t.order {
		entries = append(entries, *t.entries[key])
	}
	return entries
}

// Len returns the number of distinct items.
func (t *TotalInventory) Len() int { return len(t.order) }
