package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/market/internal/domain/models"
	"github.com/mamadbah2/market/internal/repository/mongodb"
	"github.com/mamadbah2/market/internal/repository/sheets"
	marketsvc "github.com/mamadbah2/market/internal/service/market"
)

const reportsWriteRange = "Reports!A:F"

// MarketSource gives read access to the live market.
type MarketSource interface {
	Snapshot(fn func(market *models.Market))
}

// Service produces market reports, stores them and renders text summaries.
type Service struct {
	market MarketSource
	store  mongodb.Repository
	sheet  sheets.Repository
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewService wires a new reporting service instance. sheet may be nil when no
// spreadsheet is configured.
func NewService(market MarketSource, store mongodb.Repository, sheet sheets.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		market: market,
		store:  store,
		sheet:  sheet,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Generate builds a report from the current market state, persists it and returns it
// with its text summary.
func (s *Service) Generate(ctx context.Context) (models.MarketReport, string, error) {
	var report models.MarketReport
	s.market.Snapshot(func(market *models.Market) {
		report = BuildReport(market, s.now().UTC(), s.newID())
	})

	if err := s.store.SaveMarketReport(ctx, report); err != nil {
		return models.MarketReport{}, "", fmt.Errorf("save market report: %w", err)
	}

	if s.sheet != nil {
		if err := s.sheet.AppendRows(ctx, reportsWriteRange, sheetRows(report)); err != nil {
			s.logger.Warn("failed to append report rows", zap.String("report_id", report.ID), zap.Error(err))
		}
	}

	s.logger.Info("market report generated",
		zap.String("report_id", report.ID),
		zap.Int("vendors", len(report.Vendors)),
		zap.Int("items", len(report.Inventory)),
		zap.Int("overstocked", len(report.Overstocked)))

	return report, Summary(report), nil
}

// Latest returns the most recent stored report for this market.
func (s *Service) Latest(ctx context.Context) (models.MarketReport, error) {
	var name string
	s.market.Snapshot(func(market *models.Market) { name = market.Name() })

	report, err := s.store.LatestMarketReport(ctx, name)
	if err != nil {
		return models.MarketReport{}, fmt.Errorf("load latest report: %w", err)
	}
	return report, nil
}

// BuildReport captures every market report in one document.
func BuildReport(market *models.Market, generatedAt time.Time, id string) models.MarketReport {
	total := decimal.Zero
	vendors := make([]models.VendorReport, 0, len(market.Vendors()))
	for _, vendor := range market.Vendors() {
		revenue := vendor.PotentialRevenue()
		total = total.Add(revenue)

		inventory := vendor.Inventory()
		items := make([]models.InventoryLine, 0, len(inventory))
		for _, entry := range inventory {
			items = append(items, models.InventoryLine{
				Item:     entry.Item.Name(),
				Price:    entry.Item.Price().StringFixed(2),
				Quantity: entry.Quantity,
			})
		}

		vendors = append(vendors, models.VendorReport{
			Name:             vendor.Name(),
			PotentialRevenue: revenue.StringFixed(2),
			Items:            items,
		})
	}

	overstocked := make([]string, 0)
	for _, item := range market.OverstockedItems() {
		overstocked = append(overstocked, item.String())
	}

	return models.MarketReport{
		ID:           id,
		MarketName:   market.Name(),
		MarketDate:   market.Date(),
		Vendors:      vendors,
		Inventory:    marketsvc.InventoryLines(market.TotalInventory()),
		Overstocked:  overstocked,
		Catalog:      market.SortedItemList(),
		TotalRevenue: total.StringFixed(2),
		GeneratedAt:  generatedAt,
	}
}

func sheetRows(report models.MarketReport) [][]interface{} {
	generated := report.GeneratedAt.Format(time.RFC3339)
	rows := make([][]interface{}, 0, len(report.Inventory))
	for _, line := range report.Inventory {
		rows = append(rows, []interface{}{
			generated,
			report.MarketName,
			line.Item,
			line.Price,
			line.Quantity,
			strings.Join(line.Vendors, ", "),
		})
	}
	return rows
}

// Summary renders a report as a short message.
func Summary(report models.MarketReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s (%s)\n", report.MarketName, report.MarketDate)
	fmt.Fprintf(&b, "Vendors: %d, potential revenue $%s\n", len(report.Vendors), report.TotalRevenue)

	if len(report.Catalog) == 0 {
		b.WriteString("No items stocked yet.")
		return b.String()
	}

	fmt.Fprintf(&b, "Catalog: %s\n", strings.Join(report.Catalog, ", "))

	if len(report.Overstocked) > 0 {
		fmt.Fprintf(&b, "Overstocked: %s\n", strings.Join(report.Overstocked, ", "))
	} else {
		b.WriteString("Overstocked: none\n")
	}

	b.WriteString("Inventory:")
	for _, line := range report.Inventory {
		fmt.Fprintf(&b, "\n- %s $%s x%d (%s)", line.Item, line.Price, line.Quantity, strings.Join(line.Vendors, ", "))
	}

	return b.String()
}
