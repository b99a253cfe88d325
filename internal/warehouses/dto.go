package warehouses

// CreateWarehouseRequest is the POST /warehouses body.
type CreateWarehouseRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
}
