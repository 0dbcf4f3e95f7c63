package discount

import (
	"context"
	"fmt"
	"time"

	"voucher-api/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type promotionValidator struct {
	promotions PromotionLookup
	now        Clock
	logger     zerolog.Logger
}

// NewPromotionValidator creates a PromotionValidator. A nil clock means time.Now.
func NewPromotionValidator(promotions PromotionLookup, now Clock, logger zerolog.Logger) PromotionValidator {
	if now == nil {
		now = time.Now
	}
	return &promotionValidator{
		promotions: promotions,
		now:        now,
		logger:     logger.With().Str("component", "promotion-validator").Logger(),
	}
}

func (v *promotionValidator) Apply(ctx context.Context, code string, items []model.Item) (*PromotionResult, error) {
	promotion, err := v.promotions.GetByCode(ctx, code)
	if err != nil {
		v.logger.Error().Err(err).Str("code", code).Msg("promotion lookup failed")
		return nil, fmt.Errorf("failed to look up promotion: %w", err)
	}
	if promotion == nil {
		return nil, model.ErrInvalidPromotionCode
	}

	if expired(v.now(), promotion.ExpirationDate) {
		return nil, model.ErrPromotionExpired
	}

	if exhausted(promotion.UsedCount, promotion.UsageLimit) {
		return nil, model.ErrPromotionUsageExceeded
	}

	categories := NewCategorySet(promotion.EligibleCategories)
	eligibleAmount, matched := EligibleAmount(categories, items)
	if matched == 0 {
		v.logger.Debug().Str("code", code).Int("categories", categories.Size()).Msg("no eligible items")
		return nil, model.ErrNoEligibleItems
	}

	amount := Cap(Compute(promotion.DiscountType, promotion.DiscountValue, eligibleAmount), eligibleAmount)

	v.logger.Debug().
		Str("code", code).
		Int("categories", categories.Size()).
		Int("eligible_items", matched).
		Str("eligible_amount", eligibleAmount.String()).
		Str("discount", amount.String()).
		Msg("promotion applied")

	return &PromotionResult{
		Discount:       amount,
		EligibleAmount: eligibleAmount,
		PromotionID:    promotion.ID,
	}, nil
}

// EligibleAmount sums the prices of items whose category is in set and
// reports how many items matched.
func EligibleAmount(set CategorySet, items []model.Item) (decimal.Decimal, int) {
	sum := decimal.Zero
	matched := 0
	for _, item := range items {
		if set.Contains(item.Category) {
			sum = sum.Add(item.Price)
			matched++
		}
	}
	return sum, matched
}
