package warehouses

// Warehouse represents a storage location. ProductCount is derived from the
// products table and never stored.
type Warehouse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	ProductCount int64  `json:"product_count"`
}
