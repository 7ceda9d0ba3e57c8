package models

import (
	"errors"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	peach, err := NewItem("Peach", "$0.75")
	require.NoError(t, err)
	tomato, err := NewItem("Tomato", "$0.50")
	require.NoError(t, err)

	assert.Equal(t, "Tomato", tomato.Name())
	assert.True(t, tomato.Price().Equal(decimal.RequireFromString("0.5")))
	assert.True(t, peach.Price().Equal(decimal.RequireFromString("0.75")))
	assert.Equal(t, "Peach ($0.75)", peach.String())
}

func TestParsePrice(t *testing.T) {
	amount, err := ParsePrice(" $1,234.50 ")
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.RequireFromString("1234.5")))

	amount, err = ParsePrice("5")
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(5)))

	for _, bad := range []string{"", "$", "abc", "$-1.00", "-0.25", "1.2.3", "1e3", "+5", ".5", "5.", "0x10"} {
		_, err := ParsePrice(bad)
		assert.True(t, errors.Is(err, ErrInvalidFormat), "price %q should be rejected", bad)
	}
}

func TestItemEqualityUsesNameAndPrice(t *testing.T) {
	a := MustItem("Peach", "$0.75")
	b := MustItem("Peach", "0.750")
	c := MustItem("Peach", "$0.80")

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Key(), b.Key())
	assert.False(t, a.Equal(c))

	assert.False(t, reflect.TypeOf(a).Comparable())

	quantities := map[ItemKey]int{a.Key(): 1}
	quantities[b.Key()]++
	assert.Equal(t, 2, quantities[a.Key()])
	assert.Len(t, quantities, 1)
}
