package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/stockpile-wms/stockpile/internal/adjustments"
	"github.com/stockpile-wms/stockpile/internal/auth"
	"github.com/stockpile-wms/stockpile/internal/observability"
	"github.com/stockpile-wms/stockpile/internal/products"
	"github.com/stockpile-wms/stockpile/internal/receipts"
	"github.com/stockpile-wms/stockpile/internal/shared"
	"github.com/stockpile-wms/stockpile/internal/transfers"
	"github.com/stockpile-wms/stockpile/internal/warehouses"
	"github.com/stockpile-wms/stockpile/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	Tokens             *shared.TokenStore
	AuthHandler        *auth.Handler
	ProductsHandler    *products.Handler
	WarehousesHandler  *warehouses.Handler
	ReceiptsHandler    *receipts.Handler
	AdjustmentsHandler *adjustments.Handler
	TransfersHandler   *transfers.Handler
	JobsHandler        *jobs.Handler
	Metrics            *observability.Metrics
}

// NewRouter constructs the chi.Router with Stockpile defaults. Auth, health
// and metrics endpoints are open; everything else requires a bearer token.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(params.Tokens, params.Logger))

		r.Route("/products", params.ProductsHandler.MountRoutes)
		r.Route("/warehouses", params.WarehousesHandler.MountRoutes)
		r.Route("/receipts", params.ReceiptsHandler.MountRoutes)
		r.Route("/adjustments", params.AdjustmentsHandler.MountRoutes)
		r.Route("/transfers", params.TransfersHandler.MountRoutes)
		if params.JobsHandler != nil {
			r.Route("/jobs", params.JobsHandler.MountRoutes)
		}
	})

	return r
}
