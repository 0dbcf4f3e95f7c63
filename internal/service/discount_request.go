package service

import (
	"voucher-api/internal/metrics"
	"voucher-api/internal/model"
)

// DiscountRequest is the discount an order asks for: NoCode, VoucherCode or
// PromotionCode.
type DiscountRequest interface {
	kind() string
}

// NoCode requests no discount.
type NoCode struct{}

// VoucherCode requests the voucher with this code.
type VoucherCode string

// PromotionCode requests the promotion with this code.
type PromotionCode string

func (NoCode) kind() string        { return metrics.KindNone }
func (VoucherCode) kind() string   { return metrics.KindVoucher }
func (PromotionCode) kind() string { return metrics.KindPromotion }

// NewDiscountRequest builds the requested discount from the optional request
// fields. Empty strings count as absent. Supplying both codes fails with
// model.ErrBothCodesProvided.
func NewDiscountRequest(voucherCode, promotionCode *string) (DiscountRequest, error) {
	hasVoucher := voucherCode != nil && *voucherCode != ""
	hasPromotion := promotionCode != nil && *promotionCode != ""

	switch {
	case hasVoucher && hasPromotion:
		return nil, model.ErrBothCodesProvided
	case hasVoucher:
		return VoucherCode(*voucherCode), nil
	case hasPromotion:
		return PromotionCode(*promotionCode), nil
	default:
		return NoCode{}, nil
	}
}
