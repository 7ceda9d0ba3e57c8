package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Item is an immutable product offered by vendors. Two items with the same name and
// price are the same item; compare them with Equal or Key, Item itself does not
// support ==.
type Item struct {
	_     [0]func()
	name  string
	price decimal.Decimal
}

// ItemKey is the comparable identity of an Item, usable as a map key.
type ItemKey struct {
	Name  string
	Price string
}

// NewItem builds an Item from a currency formatted price such as "$0.75".
func NewItem(name, price string) (Item, error) {
	amount, err := ParsePrice(price)
	if err != nil {
		return Item{}, err
	}
	return Item{name: name, price: amount}, nil
}

// MustItem is a helper that panics when the item cannot be created.
func MustItem(name, price string) Item {
	item, err := NewItem(name, price)
	if err != nil {
		panic(err)
	}
	return item
}

// ParsePrice converts "$1,234.50", "0.75" or " $5 " into a decimal amount.
func ParsePrice(value string) (decimal.Decimal, error) {
	normalized := strings.TrimSpace(value)
	normalized = strings.TrimPrefix(normalized, "$")
	normalized = strings.ReplaceAll(normalized, ",", "")

	if normalized == "" {
		return decimal.Zero, fmt.Errorf("%w: empty price %q", ErrInvalidFormat, value)
	}
	if !isPlainAmount(normalized) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidFormat, value)
	}

	amount, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidFormat, value)
	}
	return amount, nil
}

// isPlainAmount accepts digits with an optional fractional part, such as "12" or "0.75".
func isPlainAmount(s string) bool {
	whole, fraction, hasPoint := strings.Cut(s, ".")
	if whole == "" || !allDigits(whole) {
		return false
	}
	if hasPoint {
		return fraction != "" && allDigits(fraction)
	}
	return true
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Name returns the item name.
func (i Item) Name() string { return i.name }

// Price returns the unit price.
func (i Item) Price() decimal.Decimal { return i.price }

// Key returns the value identity of the item.
func (i Item) Key() ItemKey {
	return ItemKey{Name: i.name, Price: i.price.String()}
}

// Equal reports whether both items share name and price.
func (i Item) Equal(other Item) bool {
	return i.Key() == other.Key()
}

// String renders the item as "Peach ($0.75)".
func (i Item) String() string {
	return fmt.Sprintf("%s ($%s)", i.name, i.price.StringFixed(2))
}
