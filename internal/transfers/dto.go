package transfers

// CreateTransferRequest carries the payload for creating a transfer.
type CreateTransferRequest struct {
	FromLocation int64   `json:"from_location" validate:"required,gt=0"`
	ToLocation   int64   `json:"to_location" validate:"required,gt=0"`
	Description  *string `json:"description"`
	ProductID    *int64  `json:"prod_id" validate:"omitempty,gt=0"`
	Status       string  `json:"status" validate:"omitempty,oneof=draft waiting ready done cancelled"`
}

// UpdateStatusRequest carries the payload for a status transition.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft waiting ready done cancelled"`
}
