package discount

import (
	"context"
	"fmt"
	"time"

	"voucher-api/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type voucherValidator struct {
	vouchers VoucherLookup
	now      Clock
	logger   zerolog.Logger
}

// NewVoucherValidator creates a VoucherValidator. A nil clock means time.Now.
func NewVoucherValidator(vouchers VoucherLookup, now Clock, logger zerolog.Logger) VoucherValidator {
	if now == nil {
		now = time.Now
	}
	return &voucherValidator{
		vouchers: vouchers,
		now:      now,
		logger:   logger.With().Str("component", "voucher-validator").Logger(),
	}
}

func (v *voucherValidator) Apply(ctx context.Context, code string, totalAmount decimal.Decimal) (*VoucherResult, error) {
	voucher, err := v.vouchers.GetByCode(ctx, code)
	if err != nil {
		v.logger.Error().Err(err).Str("code", code).Msg("voucher lookup failed")
		return nil, fmt.Errorf("failed to look up voucher: %w", err)
	}
	if voucher == nil {
		return nil, model.ErrInvalidVoucherCode
	}

	if expired(v.now(), voucher.ExpirationDate) {
		return nil, model.ErrVoucherExpired
	}

	if exhausted(voucher.UsedCount, voucher.UsageLimit) {
		return nil, model.ErrVoucherUsageExceeded
	}

	if voucher.MinOrderValue != nil && totalAmount.LessThan(*voucher.MinOrderValue) {
		return nil, model.NewMinimumOrderError(*voucher.MinOrderValue)
	}

	amount := Cap(Compute(voucher.DiscountType, voucher.DiscountValue, totalAmount), totalAmount)

	v.logger.Debug().
		Str("code", code).
		Str("total_amount", totalAmount.String()).
		Str("discount", amount.String()).
		Msg("voucher applied")

	return &VoucherResult{
		Discount:  amount,
		VoucherID: voucher.ID,
	}, nil
}
