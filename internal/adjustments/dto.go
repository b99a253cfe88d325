package adjustments

// CreateAdjustmentRequest carries the payload for posting an adjustment.
// Type is optional; when present it must match the sign of Amount.
type CreateAdjustmentRequest struct {
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	Amount    int64  `json:"amount" validate:"required"`
	Reason    string `json:"reason"`
	Type      string `json:"type" validate:"omitempty,oneof=Gain Loss"`
}
