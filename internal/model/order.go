package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order represents a priced customer order. Orders are immutable once stored.
type Order struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	Items           []Item          `json:"items" db:"items"`
	TotalAmount     decimal.Decimal `json:"totalAmount" db:"total_amount"`
	DiscountApplied decimal.Decimal `json:"discountApplied" db:"discount_applied"`
	FinalAmount     decimal.Decimal `json:"finalAmount" db:"final_amount"`
	VoucherCode     *string         `json:"voucherCode" db:"voucher_code"`
	PromotionCode   *string         `json:"promotionCode" db:"promotion_code"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
}

// Item represents a line item in an order.
type Item struct {
	ProductID string          `json:"productId" validate:"required"`
	Price     decimal.Decimal `json:"price" validate:"positive"`
	Category  string          `json:"category" validate:"required"`
}

// OrderRequest represents the request payload for pricing an order.
type OrderRequest struct {
	Items         []Item  `json:"items" validate:"dive"`
	VoucherCode   *string `json:"voucherCode,omitempty"`
	PromotionCode *string `json:"promotionCode,omitempty"`
}

// SumPrices returns the exact sum of item prices.
func SumPrices(items []Item) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Price)
	}
	return sum
}
