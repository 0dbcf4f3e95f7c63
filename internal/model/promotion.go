package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Promotion is a category-targeted discount code.
type Promotion struct {
	ID                 uuid.UUID       `json:"id" db:"id"`
	Code               string          `json:"code" db:"code"`
	DiscountType       DiscountType    `json:"discountType" db:"discount_type"`
	DiscountValue      decimal.Decimal `json:"discountValue" db:"discount_value"`
	ExpirationDate     time.Time       `json:"expirationDate" db:"expiration_date"`
	UsageLimit         int             `json:"usageLimit" db:"usage_limit"`
	UsedCount          int             `json:"usedCount" db:"used_count"`
	EligibleCategories []string        `json:"eligibleCategories" db:"eligible_categories"`
	CreatedAt          time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time       `json:"updatedAt" db:"updated_at"`
}

// CreatePromotionRequest represents the request payload for creating a promotion.
type CreatePromotionRequest struct {
	Code               string          `json:"code" validate:"required,min=3,max=50"`
	DiscountType       DiscountType    `json:"discountType" validate:"required,oneof=PERCENTAGE FIXED"`
	DiscountValue      decimal.Decimal `json:"discountValue" validate:"positive"`
	ExpirationDate     string          `json:"expirationDate" validate:"required,date"`
	UsageLimit         int             `json:"usageLimit" validate:"required,gt=0"`
	EligibleCategories []string        `json:"eligibleCategories" validate:"required,min=1,dive,required"`
}

// UpdatePromotionRequest represents a partial promotion update.
type UpdatePromotionRequest struct {
	Code               *string          `json:"code,omitempty" validate:"omitempty,min=3,max=50"`
	DiscountType       *DiscountType    `json:"discountType,omitempty" validate:"omitempty,oneof=PERCENTAGE FIXED"`
	DiscountValue      *decimal.Decimal `json:"discountValue,omitempty" validate:"omitempty,positive"`
	ExpirationDate     *string          `json:"expirationDate,omitempty" validate:"omitempty,date"`
	UsageLimit         *int             `json:"usageLimit,omitempty" validate:"omitempty,gt=0"`
	EligibleCategories []string         `json:"eligibleCategories,omitempty" validate:"omitempty,min=1,dive,required"`
}

// Apply merges the non-nil fields of the request into p.
func (r *UpdatePromotionRequest) Apply(p *Promotion) error {
	if r.Code != nil {
		p.Code = *r.Code
	}
	if r.DiscountType != nil {
		p.DiscountType = *r.DiscountType
	}
	if r.DiscountValue != nil {
		p.DiscountValue = *r.DiscountValue
	}
	if r.ExpirationDate != nil {
		expires, err := ParseDate(*r.ExpirationDate)
		if err != nil {
			return err
		}
		p.ExpirationDate = expires
	}
	if r.UsageLimit != nil {
		p.UsageLimit = *r.UsageLimit
	}
	if r.EligibleCategories != nil {
		p.EligibleCategories = r.EligibleCategories
	}
	return nil
}
