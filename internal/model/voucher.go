package model

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Voucher is a user-presented discount code gated by expiry, usage and a
// minimum order value.
type Voucher struct {
	ID             uuid.UUID        `json:"id" db:"id"`
	Code           string           `json:"code" db:"code"`
	DiscountType   DiscountType     `json:"discountType" db:"discount_type"`
	DiscountValue  decimal.Decimal  `json:"discountValue" db:"discount_value"`
	ExpirationDate time.Time        `json:"expirationDate" db:"expiration_date"`
	UsageLimit     int              `json:"usageLimit" db:"usage_limit"`
	UsedCount      int              `json:"usedCount" db:"used_count"`
	MinOrderValue  *decimal.Decimal `json:"minOrderValue" db:"min_order_value"`
	CreatedAt      time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time        `json:"updatedAt" db:"updated_at"`
}

// CreateVoucherRequest represents the request payload for creating a voucher.
type CreateVoucherRequest struct {
	Code           string           `json:"code" validate:"required,min=3,max=50"`
	DiscountType   DiscountType     `json:"discountType" validate:"required,oneof=PERCENTAGE FIXED"`
	DiscountValue  decimal.Decimal  `json:"discountValue" validate:"positive"`
	ExpirationDate string           `json:"expirationDate" validate:"required,date"`
	UsageLimit     int              `json:"usageLimit" validate:"required,gt=0"`
	MinOrderValue  *decimal.Decimal `json:"minOrderValue,omitempty" validate:"omitempty,positive"`
}

// UpdateVoucherRequest represents a partial voucher update. Nil fields are
// left untouched; usedCount is owned by order pricing and cannot be set here.
// An explicit "minOrderValue": null removes the minimum.
type UpdateVoucherRequest struct {
	Code           *string          `json:"code,omitempty" validate:"omitempty,min=3,max=50"`
	DiscountType   *DiscountType    `json:"discountType,omitempty" validate:"omitempty,oneof=PERCENTAGE FIXED"`
	DiscountValue  *decimal.Decimal `json:"discountValue,omitempty" validate:"omitempty,positive"`
	ExpirationDate *string          `json:"expirationDate,omitempty" validate:"omitempty,date"`
	UsageLimit     *int             `json:"usageLimit,omitempty" validate:"omitempty,gt=0"`
	MinOrderValue  *decimal.Decimal `json:"minOrderValue,omitempty" validate:"omitempty,positive"`

	ClearMinOrderValue bool `json:"-"`
}

// UnmarshalJSON decodes the update and records an explicit null minOrderValue.
func (r *UpdateVoucherRequest) UnmarshalJSON(data []byte) error {
	type plain UpdateVoucherRequest
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	raw, ok := fields["minOrderValue"]
	decoded.ClearMinOrderValue = ok && bytes.Equal(bytes.TrimSpace(raw), []byte("null"))

	*r = UpdateVoucherRequest(decoded)
	return nil
}

// Apply merges the non-nil fields of the request into v.
func (r *UpdateVoucherRequest) Apply(v *Voucher) error {
	if r.Code != nil {
		v.Code = *r.Code
	}
	if r.DiscountType != nil {
		v.DiscountType = *r.DiscountType
	}
	if r.DiscountValue != nil {
		v.DiscountValue = *r.DiscountValue
	}
	if r.ExpirationDate != nil {
		expires, err := ParseDate(*r.ExpirationDate)
		if err != nil {
			return err
		}
		v.ExpirationDate = expires
	}
	if r.UsageLimit != nil {
		v.UsageLimit = *r.UsageLimit
	}
	switch {
	case r.MinOrderValue != nil:
		v.MinOrderValue = r.MinOrderValue
	case r.ClearMinOrderValue:
		v.MinOrderValue = nil
	}
	return nil
}
