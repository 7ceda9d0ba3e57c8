package models

import "time"

// MarketReport is the aggregated market snapshot stored in MongoDB.
type MarketReport struct {
	ID           string          `bson:"_id" json:"id"`
	MarketName   string          `bson:"market_name" json:"market_name"`
	MarketDate   string          `bson:"market_date" json:"market_date"`
	Vendors      []VendorReport  `bson:"vendors" json:"vendors"`
	Inventory    []InventoryLine `bson:"inventory" json:"inventory"`
	Overstocked  []string        `bson:"overstocked" json:"overstocked"`
	Catalog      []string        `bson:"catalog" json:"catalog"`
	TotalRevenue string          `bson:"total_revenue" json:"total_revenue"`
	GeneratedAt  time.Time       `bson:"generated_at" json:"generated_at"`
}

// VendorReport captures one vendor's stock and potential revenue.
type VendorReport struct {
	Name             string          `bson:"name" json:"name"`
	PotentialRevenue string          `bson:"potential_revenue" json:"potential_revenue"`
	Items            []InventoryLine `bson:"items" json:"items"`
}

// InventoryLine is one item line, optionally listing the vendors holding it.
type InventoryLine struct {
	Item     string   `bson:"item" json:"item"`
	Price    string   `bson:"price" json:"price"`
	Quantity int      `bson:"quantity" json:"quantity"`
	Vendors  []string `bson:"vendors,omitempty" json:"vendors,omitempty"`
}
