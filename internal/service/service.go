package service

import (
	"context"

	"voucher-api/internal/model"

	"github.com/google/uuid"
)

// VoucherService defines operations for voucher management.
type VoucherService interface {
	// Create stores a new voucher with a zero usage count.
	Create(ctx context.Context, req *model.CreateVoucherRequest) (*model.Voucher, error)

	// List retrieves every voucher.
	List(ctx context.Context) ([]model.Voucher, error)

	// Update applies a partial update to the voucher with the given ID.
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateVoucherRequest) (*model.Voucher, error)

	// Delete removes the voucher with the given ID.
	Delete(ctx context.Context, id uuid.UUID) error
}

// PromotionService defines operations for promotion management.
type PromotionService interface {
	// Create stores a new promotion with a zero usage count.
	Create(ctx context.Context, req *model.CreatePromotionRequest) (*model.Promotion, error)

	// List retrieves every promotion.
	List(ctx context.Context) ([]model.Promotion, error)

	// Update applies a partial update to the promotion with the given ID.
	Update(ctx context.Context, id uuid.UUID, req *model.UpdatePromotionRequest) (*model.Promotion, error)

	// Delete removes the promotion with the given ID.
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderService defines operations for order pricing.
type OrderService interface {
	// PriceOrder applies at most one discount code to the order, persists it
	// and consumes one use of the code.
	PriceOrder(ctx context.Context, req *model.OrderRequest) (*model.Order, error)

	// GetByID retrieves a previously priced order.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
}
