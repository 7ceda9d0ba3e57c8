package market

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/market/internal/domain/models"
)

func newTestService() *Service {
	clock := func() time.Time { return time.Date(2023, time.August, 8, 10, 0, 0, 0, time.UTC) }
	return NewService(models.NewMarket("South Pearl Street Farmers Market", clock), nil)
}

func seed(t *testing.T, svc *Service) {
	t.Helper()
	for _, name := range []string{"Rocky Mountain Fresh", "Ba-Nom-a-Nom", "Palisade Peach Shack"} {
		require.NoError(t, svc.AddVendor(name))
	}
	stock := []struct {
		vendor, item, price string
		qty                 int
	}{
		{"Rocky Mountain Fresh", "Peach", "$0.75", 35},
		{"Rocky Mountain Fresh", "Tomato", "$0.50", 7},
		{"Ba-Nom-a-Nom", "Banana Nice Cream", "$4.25", 50},
		{"Ba-Nom-a-Nom", "Peach-Raspberry Nice Cream", "$5.30", 25},
		{"Palisade Peach Shack", "Peach", "$0.75", 65},
	}
	for _, s := range stock {
		_, err := svc.Stock(s.vendor, s.item, s.price, s.qty)
		require.NoError(t, err)
	}
}

func TestServiceReports(t *testing.T) {
	svc := newTestService()
	seed(t, svc)

	assert.Equal(t, "08/08/2023", svc.Date())
	assert.Equal(t, []string{"Rocky Mountain Fresh", "Ba-Nom-a-Nom", "Palisade Peach Shack"}, svc.VendorNames())

	sellers, err := svc.VendorsThatSell("Peach", "$0.75")
	require.NoError(t, err)
	assert.Equal(t, []string{"Rocky Mountain Fresh", "Palisade Peach Shack"}, sellers)

	inventory := svc.TotalInventory()
	require.Len(t, inventory, 4)
	assert.Equal(t, models.InventoryLine{
		Item:     "Peach",
		Price:    "0.75",
		Quantity: 100,
		Vendors:  []string{"Rocky Mountain Fresh", "Palisade Peach Shack"},
	}, inventory[0])

	overstocked := svc.OverstockedItems()
	require.Len(t, overstocked, 1)
	assert.Equal(t, "Peach", overstocked[0].Name())

	assert.Equal(t, []string{"Banana Nice Cream", "Peach", "Peach-Raspberry Nice Cream", "Tomato"}, svc.SortedItemList())
}

func TestServiceStockAccumulates(t *testing.T) {
	svc := newTestService()
	require.NoError(t, svc.AddVendor("Rocky Mountain Fresh"))

	qty, err := svc.Stock("Rocky Mountain Fresh", "Peach", "$0.75", 30)
	require.NoError(t, err)
	assert.Equal(t, 30, qty)

	qty, err = svc.Stock("Rocky Mountain Fresh", "Peach", "0.75", 25)
	require.NoError(t, err)
	assert.Equal(t, 55, qty)

	qty, err = svc.CheckStock("Rocky Mountain Fresh", "Peach", "$0.75")
	require.NoError(t, err)
	assert.Equal(t, 55, qty)
}

func TestServiceErrors(t *testing.T) {
	svc := newTestService()
	require.NoError(t, svc.AddVendor("Rocky Mountain Fresh"))

	assert.ErrorIs(t, svc.AddVendor("Rocky Mountain Fresh"), ErrVendorExists)

	_, err := svc.Stock("Nobody", "Peach", "$0.75", 1)
	assert.ErrorIs(t, err, ErrVendorNotFound)

	_, err = svc.Stock("Rocky Mountain Fresh", "Peach", "free", 1)
	assert.ErrorIs(t, err, models.ErrInvalidFormat)

	_, err = svc.Stock("Rocky Mountain Fresh", "Peach", "$0.75", -3)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	_, err = svc.CheckStock("Nobody", "Peach", "$0.75")
	assert.ErrorIs(t, err, ErrVendorNotFound)

	_, err = svc.VendorsThatSell("Peach", "-1")
	assert.ErrorIs(t, err, models.ErrInvalidFormat)
}

func TestServiceImportRows(t *testing.T) {
	svc := newTestService()
	require.NoError(t, svc.AddVendor("Rocky Mountain Fresh"))

	imported := svc.ImportRows([]models.StockRow{
		{Vendor: "Rocky Mountain Fresh", Item: "Peach", Price: "$0.75", Quantity: 35},
		{Vendor: "Palisade Peach Shack", Item: "Peach", Price: "$0.75", Quantity: 65},
		{Vendor: "Palisade Peach Shack", Item: "Plum", Price: "n/a", Quantity: 3},
		{Vendor: "Ghost Farm", Item: "Plum", Price: "$1.00", Quantity: -3},
		{Vendor: "Rocky Mountain Fresh", Item: "Peach", Price: "$0.75", Quantity: 5},
	})

	assert.Equal(t, 3, imported)
	assert.Equal(t, []string{"Rocky Mountain Fresh", "Palisade Peach Shack"}, svc.VendorNames())

	qty, err := svc.CheckStock("Rocky Mountain Fresh", "Peach", "$0.75")
	require.NoError(t, err)
	assert.Equal(t, 40, qty)
}

func TestServiceConcurrentAccess(t *testing.T) {
	svc := newTestService()
	require.NoError(t, svc.AddVendor("Rocky Mountain Fresh"))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = svc.Stock("Rocky Mountain Fresh", "Peach", "$0.75", 1)
		}()
		go func() {
			defer wg.Done()
			_ = svc.TotalInventory()
		}()
	}
	wg.Wait()

	qty, err := svc.CheckStock("Rocky Mountain Fresh", "Peach", "$0.75")
	require.NoError(t, err)
	assert.Equal(t, 20, qty)
}

func TestSnapshot(t *testing.T) {
	svc := newTestService()
	seed(t, svc)

	var revenue string
	svc.Snapshot(func(m *models.Market) {
		vendor, ok := m.Vendor("Ba-Nom-a-Nom")
		require.True(t, ok)
		revenue = vendor.PotentialRevenue().StringFixed(2)
	})
	assert.Equal(t, "345.00", revenue)
}
