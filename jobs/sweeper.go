package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

// Sweeper runs background checks over the stock ledger.
type Sweeper struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewSweeper constructs a Sweeper.
func NewSweeper(pool *pgxpool.Pool, logger *slog.Logger) *Sweeper {
	return &Sweeper{pool: pool, logger: logger}
}

// HandleStockIntegrity reconciles each product's stock total against its
// movement history: initial stock plus posted receipts plus adjustments.
// Drift is logged, never repaired, so an operator decides what to do.
func (s *Sweeper) HandleStockIntegrity(ctx context.Context, t *asynq.Task) error {
	var payload StockIntegrityPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	rows, err := s.pool.Query(ctx, `SELECT id, name, stock_total, initial_stock FROM products ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	type productRow struct {
		id      int64
		name    string
		total   int64
		initial int64
	}
	var productRows []productRow
	for rows.Next() {
		var p productRow
		if err := rows.Scan(&p.id, &p.name, &p.total, &p.initial); err != nil {
			return err
		}
		productRows = append(productRows, p)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(4)
	for _, p := range productRows {
		group.Go(func() error {
			var received, adjusted int64
			err := s.pool.QueryRow(ctx,
				`SELECT COALESCE(SUM(total_quantity), 0) FROM receipts WHERE product_id = $1`, p.id).Scan(&received)
			if err != nil {
				return err
			}
			err = s.pool.QueryRow(ctx,
				`SELECT COALESCE(SUM(amount), 0) FROM adjustments WHERE product_id = $1`, p.id).Scan(&adjusted)
			if err != nil {
				return err
			}
			expected := p.initial + received + adjusted
			if expected != p.total {
				s.logger.Warn("stock drift detected",
					slog.Int64("product_id", p.id),
					slog.String("name", p.name),
					slog.Int64("stock_total", p.total),
					slog.Int64("expected", expected))
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	s.logger.Info("stock integrity sweep finished", slog.Int("products", len(productRows)))
	return nil
}

// HandleLowStockScan reports products at or below the configured threshold.
func (s *Sweeper) HandleLowStockScan(ctx context.Context, t *asynq.Task) error {
	var payload LowStockScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	threshold := payload.Threshold
	if threshold <= 0 {
		threshold = 10
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, name, stock_total FROM products WHERE stock_total <= $1 ORDER BY stock_total`, threshold)
	if err != nil {
		return err
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var id, total int64
		var name string
		if err := rows.Scan(&id, &name, &total); err != nil {
			return err
		}
		count++
		s.logger.Warn("low stock",
			slog.Int64("product_id", id),
			slog.String("name", name),
			slog.Int64("stock_total", total),
			slog.Int64("threshold", threshold))
	}
	if err := rows.Err(); err != nil {
		return err
	}

	s.logger.Info("low stock scan finished", slog.Int("flagged", count))
	return nil
}
