package adjustments

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/stockpile-wms/stockpile/internal/observability"
)

func newAdjustmentsRouter(t *testing.T, repo *memoryRepo) (chi.Router, *observability.Metrics) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := observability.NewMetrics()
	handler := NewHandler(logger, NewService(repo, nil, nil), metrics)

	r := chi.NewRouter()
	r.Route("/adjustments", handler.MountRoutes)
	return r, metrics
}

func TestCreateAdjustmentRespondsOK(t *testing.T) {
	repo := newMemoryRepo()
	repo.addProduct(7, "Steel Rods", 50)
	router, metrics := newAdjustmentsRouter(t, repo)

	req := httptest.NewRequest(http.MethodPost, "/adjustments",
		strings.NewReader(`{"product_id":7,"amount":-3,"reason":"Damaged","type":"Loss"}`))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	var body Adjustment
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	require.Equal(t, int64(47), body.CurrentStock)

	metricsRes := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(metricsRes, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Contains(t, metricsRes.Body.String(), `stockpile_stock_mutations_total{source="adjustment"} 1`)
}

func TestCreateAdjustmentFailureCountsNothing(t *testing.T) {
	router, metrics := newAdjustmentsRouter(t, newMemoryRepo())

	req := httptest.NewRequest(http.MethodPost, "/adjustments",
		strings.NewReader(`{"product_id":99,"amount":5}`))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusNotFound, res.Code)

	metricsRes := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(metricsRes, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NotContains(t, metricsRes.Body.String(), `source="adjustment"`)
}
