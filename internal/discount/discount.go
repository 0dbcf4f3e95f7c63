// Package discount decides whether a voucher or promotion applies to an order
// and how much it takes off.
package discount

import (
	"context"
	"time"

	"voucher-api/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxDiscountPercent is the largest share of the discount base any single
// discount may remove.
const MaxDiscountPercent = 50

var (
	hundred     = decimal.NewFromInt(100)
	maxFraction = decimal.NewFromInt(MaxDiscountPercent).Div(hundred)
)

// VoucherResult is the outcome of a successful voucher check.
type VoucherResult struct {
	Discount  decimal.Decimal
	VoucherID uuid.UUID
}

// PromotionResult is the outcome of a successful promotion check.
type PromotionResult struct {
	Discount       decimal.Decimal
	EligibleAmount decimal.Decimal
	PromotionID    uuid.UUID
}

// VoucherValidator checks a voucher code against an order total.
type VoucherValidator interface {
	// Apply looks up code and returns the capped discount for totalAmount.
	// It never changes the voucher's usage count.
	Apply(ctx context.Context, code string, totalAmount decimal.Decimal) (*VoucherResult, error)
}

// PromotionValidator checks a promotion code against the order's line items.
type PromotionValidator interface {
	// Apply looks up code and returns the capped discount computed over the
	// items whose category the promotion targets.
	Apply(ctx context.Context, code string, items []model.Item) (*PromotionResult, error)
}

// VoucherLookup finds a voucher by code. A missing code yields (nil, nil).
type VoucherLookup interface {
	GetByCode(ctx context.Context, code string) (*model.Voucher, error)
}

// PromotionLookup finds a promotion by code. A missing code yields (nil, nil).
type PromotionLookup interface {
	GetByCode(ctx context.Context, code string) (*model.Promotion, error)
}

// Clock returns the current time.
type Clock func() time.Time

// Compute returns the uncapped discount of the given type and value over base.
func Compute(discountType model.DiscountType, value, base decimal.Decimal) decimal.Decimal {
	if discountType == model.DiscountPercentage {
		return base.Mul(value).Div(hundred)
	}
	return value
}

// Cap clamps amount to MaxDiscountPercent of base.
func Cap(amount, base decimal.Decimal) decimal.Decimal {
	limit := base.Mul(maxFraction)
	if amount.GreaterThan(limit) {
		return limit
	}
	return amount
}

// expired reports whether now is strictly after expiresAt.
func expired(now, expiresAt time.Time) bool {
	return now.After(expiresAt)
}

// exhausted reports whether every allowed use has been consumed.
func exhausted(usedCount, usageLimit int) bool {
	return usedCount >= usageLimit
}
