package models

import (
	"sort"
	"time"
)

const (
	// DateLayout formats the market creation date as DD/MM/YYYY.
	DateLayout = "02/01/2006"

	// OverstockThreshold is the quantity a single vendor must exceed for an item
	// sold by several vendors to be reported as overstocked.
	OverstockThreshold = 50
)

// Market aggregates the inventories of its vendors. It keeps references only, so
// every report reflects the current vendor state.
type Market struct {
	name    string
	date    string
	vendors []*Vendor
}

// NewMarket creates a market dated with the provided clock. A nil clock uses time.Now.
func NewMarket(name string, now func() time.Time) *Market {
	if now == nil {
		now = time.Now
	}
	return &Market{
		name: name,
		date: FormatDate(now()),
	}
}

// FormatDate renders t with DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Name returns the market name.
func (m *Market) Name() string { return m.name }

// Date returns the creation date fixed at construction.
func (m *Market) Date() string { return m.date }

// Vendors returns the vendors in the order they were added.
func (m *Market) Vendors() []*Vendor {
	vendors := make([]*Vendor, len(m.vendors))
	copy(vendors, m.vendors)
	return vendors
}

// AddVendor appends vendor. The same vendor may be added more than once.
func (m *Market) AddVendor(vendor *Vendor) {
	m.vendors = append(m.vendors, vendor)
}

// Vendor returns the first vendor registered under name.
func (m *Market) Vendor(name string) (*Vendor, bool) {
	for _, vendor := range m.vendors {
		if vendor.Name() == name {
			return vendor, true
		}
	}
	return nil, false
}

// VendorNames lists vendor names in add order.
func (m *Market) VendorNames() []string {
	names := make([]string, 0, len(m.vendors))
	for _, vendor := range m.vendors {
		names = append(names, vendor.Name())
	}
	return names
}

// VendorsThatSell returns, in add order, the vendors whose inventory holds item.
func (m *Market) VendorsThatSell(item Item) []*Vendor {
	var sellers []*Vendor
	for _, vendor := range m.vendors {
		if vendor.Carries(item) {
			sellers = append(sellers, vendor)
		}
	}
	return sellers
}

// TotalInventory folds every vendor inventory into per item totals.
func (m *Market) TotalInventory() *TotalInventory {
	total := newTotalInventory()
	for _, vendor := range m.vendors {
		for _, entry := range vendor.Inventory() {
			summary := total.getOrInsert(entry.Item)
			summary.Quantity += entry.Quantity
			summary.Vendors = append(summary.Vendors, vendor)
		}
	}
	return total
}

// OverstockedItems lists items held above OverstockThreshold by a vendor while also
// sold by at least one other vendor. An item appears once per vendor crossing the
// threshold, so duplicates are expected.
func (m *Market) OverstockedItems() []Item {
	var overstocked []Item
	for _, vendor := range m.vendors {
		for _, entry := range vendor.Inventory() {
			if entry.Quantity > OverstockThreshold && len(m.VendorsThatSell(entry.Item)) > 1 {
				overstocked = append(overstocked, entry.Item)
			}
		}
	}
	return overstocked
}

// SortedItemList returns the distinct item names across all vendors, ascending.
func (m *Market) SortedItemList() []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, vendor := range m.vendors {
		for _, entry := range vendor.Inventory() {
			name := entry.Item.Name()
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
