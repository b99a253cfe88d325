package products

// CreateProductRequest is the POST /products body. StockTotal seeds the
// initial stock; later changes must go through receipts or adjustments.
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	SKU         *string `json:"sku"`
	Category    *string `json:"category"`
	UOM         *string `json:"uom"`
	StockTotal  int64   `json:"stock_total" validate:"gte=0"`
	WarehouseID *int64  `json:"warehouse" validate:"omitempty,gt=0"`
}

// UpdateWarehouseRequest is the PATCH /products/{id}/update-warehouse body.
type UpdateWarehouseRequest struct {
	WarehouseID int64 `json:"warehouse" validate:"required,gt=0"`
}
