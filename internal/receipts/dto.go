package receipts

// CreateReceiptRequest is the POST /receipts body. The product is addressed
// by name, matched case- and whitespace-insensitively.
type CreateReceiptRequest struct {
	SupplierName string `json:"supplier_name" validate:"required"`
	ProductName  string `json:"product_name" validate:"required"`
	Quantity     int64  `json:"quantity" validate:"required,gt=0"`
}

// CreateReceiptResponse mirrors the legacy response shape.
type CreateReceiptResponse struct {
	Message       string `json:"message"`
	ReceiptID     int64  `json:"receipt_id"`
	ReceiptNumber string `json:"receipt_number"`
}
