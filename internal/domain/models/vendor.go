package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// StockEntry is one line of a vendor inventory.
type StockEntry struct {
	Item     Item
	Quantity int
}

// Vendor holds the quantities of items it has stocked. Items are kept in the
// order they were first stocked.
type Vendor struct {
	name       string
	quantities map[ItemKey]int
	items      []Item
}

// NewVendor creates a vendor with an empty inventory.
func NewVendor(name string) *Vendor {
	return &Vendor{
		name:       name,
		quantities: make(map[ItemKey]int),
	}
}

// Name returns the vendor name.
func (v *Vendor) Name() string { return v.name }

// Stock adds quantity units of item to the inventory.
func (v *Vendor) Stock(item Item, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: negative quantity %d for %s", ErrInvalidArgument, quantity, item.Name())
	}

	key := item.Key()
	if _, exists := v.quantities[key]; !exists {
		v.items = append(v.items, item)
	}
	v.quantities[key] += quantity

	return nil
}

// CheckStock returns the stocked quantity of item, 0 when it was never stocked.
func (v *Vendor) CheckStock(item Item) int {
	return v.quantities[item.Key()]
}

// Carries reports whether item is present in the inventory, regardless of quantity.
func (v *Vendor) Carries(item Item) bool {
	_, ok := v.quantities[item.Key()]
	return ok
}

// Inventory returns a copy of the inventory in first-stocked order.
func (v *Vendor) Inventory() []StockEntry {
	entries := make([]StockEntry, 0, len(v.items))
	for _, item := range v.items {
		entries = append(entries, StockEntry{Item: item, Quantity: v.quantities[item.Key()]})
	}
	return entries
}

// PotentialRevenue is the sum of quantity times price over the inventory.
func (v *Vendor) PotentialRevenue() decimal.Decimal {
	total := decimal.Zero
	for _, item := range v.items {
		total = total.Add(item.Price().Mul(decimal.NewFromInt(int64(v.quantities[item.Key()]))))
	}
	return total
}
