package receipts

import "time"

// StatusDone is the single terminal receipt status. Receipts have no
// workflow: they are posted as done at creation.
const StatusDone = "Done"

// Receipt models a goods receipt. The product is resolved from the
// name-based request contract and stored as an explicit foreign key.
type Receipt struct {
	ID            int64     `json:"id"`
	ReceiptNumber string    `json:"receipt_number"`
	SupplierName  string    `json:"supplier_name"`
	Status        string    `json:"status"`
	TotalItems    int64     `json:"total_items"`
	TotalQuantity int64     `json:"total_quantity"`
	ProductID     *int64    `json:"product_id"`
	CreatedAt     time.Time `json:"created_at"`
}
