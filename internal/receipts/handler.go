package receipts

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/stockpile-wms/stockpile/internal/observability"
	"github.com/stockpile-wms/stockpile/internal/platform/httpx"
)

// Handler wires HTTP endpoints for the receipts module.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	metrics  *observability.Metrics
	validate *validator.Validate
}

// NewHandler constructs a receipts handler.
func NewHandler(logger *slog.Logger, service *Service, metrics *observability.Metrics) *Handler {
	return &Handler{logger: logger, service: service, metrics: metrics, validate: validator.New()}
}

// MountRoutes registers receipt routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list receipts failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateReceiptRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "supplier name, product name and a positive quantity are required")
		return
	}
	created, err := h.service.CreateReceipt(r.Context(), req)
	if err != nil {
		h.logger.Error("create receipt failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	h.metrics.CountStockMutation("receipt")
	httpx.JSON(w, http.StatusOK, CreateReceiptResponse{
		Message:       "Receipt created & stock updated successfully",
		ReceiptID:     created.ID,
		ReceiptNumber: created.ReceiptNumber,
	})
}
