package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/market/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(handler *handlers.MarketHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/market", handler.GetMarket)
	r.POST("/vendors", handler.AddVendor)
	r.GET("/vendors/:name/stock", handler.CheckStock)
	r.POST("/vendors/:name/stock", handler.Stock)
	r.GET("/items", handler.SortedItemList)
	r.GET("/items/vendors", handler.VendorsThatSell)
	r.GET("/inventory", handler.TotalInventory)
	r.GET("/overstocked", handler.OverstockedItems)
	r.POST("/reports", handler.GenerateReport)
	r.GET("/reports/latest", handler.LatestReport)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
