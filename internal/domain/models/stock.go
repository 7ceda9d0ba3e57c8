package models

// StockRow is one vendor stock line imported from the stock sheet.
type StockRow struct {
	Vendor   string
	Item     string
	Price    string
	Quantity int
}
