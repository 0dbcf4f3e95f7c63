package handler

import (
	"net/http"

	"voucher-api/internal/model"
	"voucher-api/internal/service"
	"voucher-api/internal/validation"

	"github.com/rs/zerolog"
)

// VoucherHandler handles voucher administration requests.
type VoucherHandler struct {
	service   service.VoucherService
	validator *validation.Validator
	logger    zerolog.Logger
}

// NewVoucherHandler creates a new voucher handler.
func NewVoucherHandler(service service.VoucherService, validator *validation.Validator, logger zerolog.Logger) *VoucherHandler {
	return &VoucherHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("handler", "voucher").Logger(),
	}
}

// Create handles POST /api/vouchers requests.
func (h *VoucherHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateVoucherRequest
	if !decodeAndValidate(w, r, &req, h.validator, h.logger) {
		return
	}

	voucher, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, "Failed to create voucher", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, voucher)
}

// List handles GET /api/vouchers requests.
func (h *VoucherHandler) List(w http.ResponseWriter, r *http.Request) {
	vouchers, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "Failed to fetch vouchers", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, vouchers)
}

// Update handles PUT /api/vouchers/{id} requests.
func (h *VoucherHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, h.logger)
	if !ok {
		return
	}

	var req model.UpdateVoucherRequest
	if !decodeAndValidate(w, r, &req, h.validator, h.logger) {
		return
	}

	voucher, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err, "Failed to update voucher", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, voucher)
}

// Delete handles DELETE /api/vouchers/{id} requests.
func (h *VoucherHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "Failed to delete voucher", h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
