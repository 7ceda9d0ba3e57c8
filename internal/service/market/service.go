package market

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/mamadbah2/market/internal/domain/models"
)

// ErrVendorNotFound indicates no vendor is registered under the requested name.
var ErrVendorNotFound = errors.New("vendor not found")

// ErrVendorExists indicates a vendor with the same name was already registered.
var ErrVendorExists = errors.New("vendor already exists")

// Service guards a single market for concurrent HTTP and scheduler access.
type Service struct {
	mu     sync.RWMutex
	market *models.Market
	logger *zap.Logger
}

// NewService wraps market.
func NewService(market *models.Market, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{market: market, logger: logger}
}

// Snapshot runs fn while holding the read lock. fn must not retain the market.
func (s *Service) Snapshot(fn func(market *models.Market)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.market)
}

// Name returns the market name.
func (s *Service) Name() string {
	return s.market.Name()
}

// Date returns the market creation date.
func (s *Service) Date() string {
	return s.market.Date()
}

// AddVendor registers a new empty vendor.
func (s *Service) AddVendor(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.market.Vendor(name); exists {
		return fmt.Errorf("%w: %s", ErrVendorExists, name)
	}

	s.market.AddVendor(models.NewVendor(name))
	s.logger.Info("vendor added", zap.String("vendor", name))
	return nil
}

// Stock adds quantity units of the item to the named vendor.
func (s *Service) Stock(vendorName, itemName, price string, quantity int) (int, error) {
	item, err := models.NewItem(itemName, price)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	vendor, ok := s.market.Vendor(vendorName)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrVendorNotFound, vendorName)
	}

	if err := vendor.Stock(item, quantity); err != nil {
		return 0, err
	}

	stocked := vendor.CheckStock(item)
	s.logger.Debug("item stocked",
		zap.String("vendor", vendorName),
		zap.String("item", item.String()),
		zap.Int("added", quantity),
		zap.Int("quantity", stocked))
	return stocked, nil
}

// CheckStock returns the vendor's quantity of the item.
func (s *Service) CheckStock(vendorName, itemName, price string) (int, error) {
	item, err := models.NewItem(itemName, price)
	if err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	vendor, ok := s.market.Vendor(vendorName)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrVendorNotFound, vendorName)
	}
	return vendor.CheckStock(item), nil
}

// VendorNames lists vendor names in add order.
func (s *Service) VendorNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.market.VendorNames()
}

// VendorsThatSell lists, in add order, the names of the vendors carrying the item.
func (s *Service) VendorsThatSell(itemName, price string) ([]string, error) {
	item, err := models.NewItem(itemName, price)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sellers := s.market.VendorsThatSell(item)
	names := make([]string, 0, len(sellers))
	for _, vendor := range sellers {
		names = append(names, vendor.Name())
	}
	return names, nil
}

// TotalInventory returns the market wide inventory as report lines.
func (s *Service) TotalInventory() []models.InventoryLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return InventoryLines(s.market.TotalInventory())
}

// OverstockedItems returns the overstocked items, duplicates included.
func (s *Service) OverstockedItems() []models.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.market.OverstockedItems()
}

// SortedItemList returns the distinct item names, ascending.
func (s *Service) SortedItemList() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.market.SortedItemList()
}

// ImportRows stocks every row, creating vendors on first sight. Rows that cannot be
// stocked are skipped and logged. It returns the number of rows applied.
func (s *Service) ImportRows(rows []models.StockRow) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	imported := 0
	for _, row := range rows {
		item, err := models.NewItem(row.Item, row.Price)
		if err != nil {
			s.logger.Warn("skip stock row with invalid price", zap.String("vendor", row.Vendor), zap.String("item", row.Item), zap.Error(err))
			continue
		}

		if row.Quantity < 0 {
			s.logger.Warn("skip stock row with negative quantity", zap.String("vendor", row.Vendor), zap.String("item", row.Item), zap.Int("quantity", row.Quantity))
			continue
		}

		vendor, ok := s.market.Vendor(row.Vendor)
		if !ok {
			vendor = models.NewVendor(row.Vendor)
			s.market.AddVendor(vendor)
		}

		if err := vendor.Stock(item, row.Quantity); err != nil {
			s.logger.Warn("skip stock row", zap.String("vendor", row.Vendor), zap.String("item", row.Item), zap.Error(err))
			continue
		}
		imported++
	}

	s.logger.Info("stock imported", zap.Int("rows", len(rows)), zap.Int("imported", imported))
	return imported
}

// InventoryLines converts a total inventory into report lines in encounter order.
func InventoryLines(total *models.TotalInventory) []models.InventoryLine {
	entries := total.Entries()
	lines := make([]models.InventoryLine, 0, len(entries))
	for _, summary := range entries {
		vendors := make([]string, 0, len(summary.Vendors))
		for _, vendor := range summary.Vendors {
			vendors = append(vendors, vendor.Name())
		}
		lines = append(lines, models.InventoryLine{
			Item:     summary.Item.Name(),
			Price:    summary.Item.Price().StringFixed(2),
			Quantity: summary.Quantity,
			Vendors:  vendors,
		})
	}
	return lines
}
