package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/market/internal/domain/models"
	"github.com/mamadbah2/market/internal/repository/mongodb"
	marketsvc "github.com/mamadbah2/market/internal/service/market"
)

// MarketService is the market API used by the HTTP layer.
type MarketService interface {
	Name() string
	Date() string
	VendorNames() []string
	AddVendor(name string) error
	Stock(vendorName, itemName, price string, quantity int) (int, error)
	CheckStock(vendorName, itemName, price string) (int, error)
	VendorsThatSell(itemName, price string) ([]string, error)
	TotalInventory() []models.InventoryLine
	OverstockedItems() []models.Item
	SortedItemList() []string
}

// ReportService generates and loads stored market reports.
type ReportService interface {
	Generate(ctx context.Context) (models.MarketReport, string, error)
	Latest(ctx context.Context) (models.MarketReport, error)
}

// MarketHandler exposes the market reports over HTTP.
type MarketHandler struct {
	market  MarketService
	reports ReportService
	logger  *zap.Logger
}

// NewMarketHandler constructs the HTTP handler adapter.
func NewMarketHandler(market MarketService, reports ReportService, logger *zap.Logger) *MarketHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MarketHandler{market: market, reports: reports, logger: logger}
}

type addVendorRequest struct {
	Name string `json:"name" binding:"required"`
}

type stockRequest struct {
	Item     string `json:"item" binding:"required"`
	Price    string `json:"price" binding:"required"`
	Quantity *int   `json:"quantity" binding:"required"`
}

type itemResponse struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

// GetMarket returns the market name, date and vendor names.
func (h *MarketHandler) GetMarket(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    h.market.Name(),
		"date":    h.market.Date(),
		"vendors": h.market.VendorNames(),
	})
}

// AddVendor registers an empty vendor.
func (h *MarketHandler) AddVendor(c *gin.Context) {
	var req addVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid vendor payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.market.AddVendor(req.Name); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"name": req.Name})
}

// Stock adds stock to a vendor.
func (h *MarketHandler) Stock(c *gin.Context) {
	var req stockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid stock payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	vendor := c.Param("name")
	quantity, err := h.market.Stock(vendor, req.Item, req.Price, *req.Quantity)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"vendor": vendor, "item": req.Item, "quantity": quantity})
}

// CheckStock returns a vendor's quantity of an item.
func (h *MarketHandler) CheckStock(c *gin.Context) {
	vendor := c.Param("name")
	item := c.Query("item")

	quantity, err := h.market.CheckStock(vendor, item, c.Query("price"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"vendor": vendor, "item": item, "quantity": quantity})
}

// VendorsThatSell lists the vendors carrying an item.
func (h *MarketHandler) VendorsThatSell(c *gin.Context) {
	vendors, err := h.market.VendorsThatSell(c.Query("item"), c.Query("price"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"vendors": vendors})
}

// TotalInventory returns the market wide inventory.
func (h *MarketHandler) TotalInventory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"inventory": h.market.TotalInventory()})
}

// OverstockedItems returns the overstocked items, duplicates included.
func (h *MarketHandler) OverstockedItems(c *gin.Context) {
	items := h.market.OverstockedItems()
	resp := make([]itemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, itemResponse{Name: item.Name(), Price: item.Price().StringFixed(2)})
	}
	c.JSON(http.StatusOK, gin.H{"items": resp})
}

// SortedItemList returns the distinct item names.
func (h *MarketHandler) SortedItemList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.market.SortedItemList()})
}

// GenerateReport builds and stores a report immediately.
func (h *MarketHandler) GenerateReport(c *gin.Context) {
	report, summary, err := h.reports.Generate(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"report": report, "summary": summary})
}

// LatestReport returns the last stored report.
func (h *MarketHandler) LatestReport(c *gin.Context) {
	report, err := h.reports.Latest(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *MarketHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidFormat), errors.Is(err, models.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, marketsvc.ErrVendorNotFound), errors.Is(err, mongodb.ErrReportNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, marketsvc.ErrVendorExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
