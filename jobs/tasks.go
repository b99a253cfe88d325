package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskStockIntegrity triggers the nightly stock ledger reconciliation.
	TaskStockIntegrity = "stock:integrity"
	// TaskLowStockScan triggers the periodic low-stock scan.
	TaskLowStockScan = "stock:low_scan"
)

// StockIntegrityPayload carries scheduling metadata.
type StockIntegrityPayload struct {
	ScheduledFor time.Time `json:"scheduled_for"`
}

// LowStockScanPayload configures the low-stock scan.
type LowStockScanPayload struct {
	Threshold int64 `json:"threshold"`
}

// NewStockIntegrityTask constructs an Asynq task for the integrity sweep.
func NewStockIntegrityTask(at time.Time) (*asynq.Task, error) {
	body, err := json.Marshal(StockIntegrityPayload{ScheduledFor: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskStockIntegrity, body, asynq.Queue(QueueDefault)), nil
}

// NewLowStockScanTask constructs an Asynq task for the low-stock scan.
func NewLowStockScanTask(threshold int64) (*asynq.Task, error) {
	body, err := json.Marshal(LowStockScanPayload{Threshold: threshold})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLowStockScan, body, asynq.Queue(QueueDefault)), nil
}
