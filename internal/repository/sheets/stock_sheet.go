package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/market/internal/domain/models"
)

// StockSheet reads vendor stock lines laid out as vendor | item | price | quantity.
type StockSheet struct {
	repo       Repository
	sheetRange string
	logger     *zap.Logger
}

// NewStockSheet wires a stock reader over the given range.
func NewStockSheet(repo Repository, sheetRange string, logger *zap.Logger) *StockSheet {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockSheet{repo: repo, sheetRange: sheetRange, logger: logger}
}

// ReadStockRows loads and parses every usable stock line. Header and malformed rows
// are skipped.
func (s *StockSheet) ReadStockRows(ctx context.Context) ([]models.StockRow, error) {
	rows, err := s.repo.ReadRange(ctx, s.sheetRange)
	if err != nil {
		return nil, fmt.Errorf("load stock range: %w", err)
	}

	stock := make([]models.StockRow, 0, len(rows))
	for i, row := range rows {
		parsed, err := ParseStockRow(row)
		if err != nil {
			s.logger.Debug("skip stock row", zap.Int("row", i+1), zap.Any("value", row), zap.Error(err))
			continue
		}
		stock = append(stock, parsed)
	}

	return stock, nil
}

// ParseStockRow converts raw sheet cells into a StockRow.
func ParseStockRow(row []interface{}) (models.StockRow, error) {
	if len(row) < 4 {
		return models.StockRow{}, fmt.Errorf("expected 4 cells, got %d", len(row))
	}

	vendor := cell(row[0])
	item := cell(row[1])
	if vendor == "" || item == "" {
		return models.StockRow{}, fmt.Errorf("vendor and item must not be empty")
	}

	quantity, err := strconv.Atoi(cell(row[3]))
	if err != nil {
		return models.StockRow{}, fmt.Errorf("parse quantity: %w", err)
	}

	return models.StockRow{
		Vendor:   vendor,
		Item:     item,
		Price:    cell(row[2]),
		Quantity: quantity,
	}, nil
}

func cell(value interface{}) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(value))
}
