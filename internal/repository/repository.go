package repository

import (
	"context"

	"voucher-api/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// VoucherRepository defines the interface for voucher data access operations.
type VoucherRepository interface {
	// Create inserts a new voucher. A taken code yields model.ErrVoucherCodeExists.
	Create(ctx context.Context, voucher *model.Voucher) error

	// List retrieves every voucher ordered by creation time.
	List(ctx context.Context) ([]model.Voucher, error)

	// GetByID retrieves a voucher by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Voucher, error)

	// GetByCode retrieves a voucher by its code. Returns nil when absent.
	GetByCode(ctx context.Context, code string) (*model.Voucher, error)

	// Update writes the admin-editable fields of voucher. The usage count is
	// never written here.
	Update(ctx context.Context, voucher *model.Voucher) error

	// Delete removes a voucher. Past orders keep their code reference.
	Delete(ctx context.Context, id uuid.UUID) error

	// IncrementUsage consumes one use within tx, failing with
	// model.ErrVoucherUsageExceeded when none are left.
	IncrementUsage(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
}

// PromotionRepository defines the interface for promotion data access operations.
type PromotionRepository interface {
	// Create inserts a new promotion. A taken code yields model.ErrPromotionCodeExists.
	Create(ctx context.Context, promotion *model.Promotion) error

	// List retrieves every promotion ordered by creation time.
	List(ctx context.Context) ([]model.Promotion, error)

	// GetByID retrieves a promotion by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Promotion, error)

	// GetByCode retrieves a promotion by its code. Returns nil when absent.
	GetByCode(ctx context.Context, code string) (*model.Promotion, error)

	// Update writes the admin-editable fields of promotion.
	Update(ctx context.Context, promotion *model.Promotion) error

	// Delete removes a promotion.
	Delete(ctx context.Context, id uuid.UUID) error

	// IncrementUsage consumes one use within tx, failing with
	// model.ErrPromotionUsageExceeded when none are left.
	IncrementUsage(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// GetByID retrieves an order by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
}
