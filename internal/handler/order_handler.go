package handler

import (
	"net/http"

	"voucher-api/internal/model"
	"voucher-api/internal/service"
	"voucher-api/internal/validation"

	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service   service.OrderService
	validator *validation.Validator
	logger    zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, validator *validation.Validator, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("handler", "order").Logger(),
	}
}

// ApplyDiscount handles POST /api/orders/apply-discount requests.
// Rejected codes and invalid items answer 400. A store failure while pricing
// or persisting the order answers 500 "Failed to apply discount" with the
// cause in details, and no usage is consumed.
func (h *OrderHandler) ApplyDiscount(w http.ResponseWriter, r *http.Request) {
	var req model.OrderRequest
	if !decodeAndValidate(w, r, &req, h.validator, h.logger) {
		return
	}

	order, err := h.service.PriceOrder(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, "Failed to apply discount", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, h.logger)
	if !ok {
		return
	}

	order, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "Failed to retrieve order", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}
