package products

import "time"

// Product represents an inventory item. StockTotal only changes through
// receipt or adjustment application; WarehouseID only through transfer
// completion or the explicit update-warehouse endpoint.
type Product struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	SKU           *string   `json:"sku"`
	Category      *string   `json:"category"`
	UOM           *string   `json:"uom"`
	StockTotal    int64     `json:"stock_total"`
	WarehouseID   *int64    `json:"warehouse"`
	WarehouseName *string   `json:"warehouse_name"`
	CreatedAt     time.Time `json:"created_at"`
}
