package transfers

import "time"

// Status is the transfer workflow state.
type Status string

// Workflow states. Done and Cancelled are terminal.
const (
	StatusDraft     Status = "draft"
	StatusWaiting   Status = "waiting"
	StatusReady     Status = "ready"
	StatusDone      Status = "done"
	StatusCancelled Status = "cancelled"
)

// ParseStatus validates a raw status string.
func ParseStatus(raw string) (Status, bool) {
	switch Status(raw) {
	case StatusDraft, StatusWaiting, StatusReady, StatusDone, StatusCancelled:
		return Status(raw), true
	}
	return "", false
}

// CanTransition reports whether a transfer may move from one state to the
// next. The workflow advances one step at a time; any non-terminal state may
// be cancelled.
func CanTransition(from, to Status) bool {
	if from == StatusDone || from == StatusCancelled {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	switch from {
	case StatusDraft:
		return to == StatusWaiting
	case StatusWaiting:
		return to == StatusReady
	case StatusReady:
		return to == StatusDone
	}
	return false
}

// Transfer models a warehouse-to-warehouse move. ProductName is joined from
// the product row at read time.
type Transfer struct {
	ID           int64     `json:"id"`
	FromLocation int64     `json:"from_location"`
	ToLocation   int64     `json:"to_location"`
	Description  *string   `json:"description"`
	ProductID    *int64    `json:"prod_id"`
	Status       Status    `json:"status"`
	TransferDate time.Time `json:"transfer_date"`
	CreatedAt    time.Time `json:"created_at"`
	ProductName  *string   `json:"product_name"`
}
