package enums

// StockStatus classifies a product's remaining inventory.
type StockStatus string

const (
	StockStatusOut StockStatus = "out of stock"
	StockStatusLow StockStatus = "low stock"
	StockStatusIn  StockStatus = "in stock"
)

// String implements fmt.Stringer.
func (s StockStatus) String() string {
	return string(s)
}
