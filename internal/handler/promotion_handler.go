package handler

import (
	"net/http"

	"voucher-api/internal/model"
	"voucher-api/internal/service"
	"voucher-api/internal/validation"

	"github.com/rs/zerolog"
)

// PromotionHandler handles promotion administration requests.
type PromotionHandler struct {
	service   service.PromotionService
	validator *validation.Validator
	logger    zerolog.Logger
}

// NewPromotionHandler creates a new promotion handler.
func NewPromotionHandler(service service.PromotionService, validator *validation.Validator, logger zerolog.Logger) *PromotionHandler {
	return &PromotionHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("handler", "promotion").Logger(),
	}
}

// Create handles POST /api/promotions requests.
func (h *PromotionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreatePromotionRequest
	if !decodeAndValidate(w, r, &req, h.validator, h.logger) {
		return
	}

	promotion, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, "Failed to create promotion", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, promotion)
}

// List handles GET /api/promotions requests.
func (h *PromotionHandler) List(w http.ResponseWriter, r *http.Request) {
	promotions, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "Failed to fetch promotions", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, promotions)
}

// Update handles PUT /api/promotions/{id} requests.
func (h *PromotionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, h.logger)
	if !ok {
		return
	}

	var req model.UpdatePromotionRequest
	if !decodeAndValidate(w, r, &req, h.validator, h.logger) {
		return
	}

	promotion, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err, "Failed to update promotion", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, promotion)
}

// Delete handles DELETE /api/promotions/{id} requests.
func (h *PromotionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "Failed to delete promotion", h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
