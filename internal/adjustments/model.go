package adjustments

import "time"

// Adjustment types. The label always agrees with the sign of the amount:
// it is derived when omitted and validated when supplied.
const (
	TypeGain = "Gain"
	TypeLoss = "Loss"
)

// Adjustment models a manual stock correction. ProductName and CurrentStock
// are joined from the product row at read time.
type Adjustment struct {
	ID           int64     `json:"id"`
	ProductID    int64     `json:"product_id"`
	Amount       int64     `json:"amount"`
	Reason       string    `json:"reason"`
	Type         string    `json:"type"`
	Date         time.Time `json:"date"`
	ProductName  string    `json:"product_name"`
	CurrentStock int64     `json:"current_stock"`
}
