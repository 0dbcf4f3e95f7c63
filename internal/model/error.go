package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// FieldError describes a single request field that failed schema validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Standard error codes for domain failures
const (
	ErrCodeValidationFailed   = "VALIDATION_FAILED"
	ErrCodeCodeNotFound       = "CODE_NOT_FOUND"
	ErrCodeExpired            = "EXPIRED"
	ErrCodeUsageLimitExceeded = "USAGE_LIMIT_EXCEEDED"
	ErrCodeMinimumOrderNotMet = "MINIMUM_ORDER_NOT_MET"
	ErrCodeNoEligibleItems    = "NO_ELIGIBLE_ITEMS"
	ErrCodeMutualExclusion    = "MUTUAL_EXCLUSION_VIOLATION"
	ErrCodeEmptyItems         = "EMPTY_ITEMS"
	ErrCodeDuplicateCode      = "DUPLICATE_CODE"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches any DomainError carrying the same code, so errors built by
// constructors such as NewMinimumOrderError compare equal to their kind.
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code && (other.Message == "" || e.Message == other.Message)
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewMinimumOrderError reports the minimum order value a voucher requires.
func NewMinimumOrderError(minOrderValue decimal.Decimal) *DomainError {
	return NewDomainError(ErrCodeMinimumOrderNotMet,
		fmt.Sprintf("Minimum order value of %s required", minOrderValue.String()))
}

// AsDomainError unwraps err into a DomainError if it carries one.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// Common domain errors
var (
	ErrInvalidVoucherCode     = NewDomainError(ErrCodeCodeNotFound, "Invalid voucher code")
	ErrVoucherExpired         = NewDomainError(ErrCodeExpired, "Voucher expired")
	ErrVoucherUsageExceeded   = NewDomainError(ErrCodeUsageLimitExceeded, "Voucher usage limit exceeded")
	ErrInvalidPromotionCode   = NewDomainError(ErrCodeCodeNotFound, "Invalid promotion code")
	ErrPromotionExpired       = NewDomainError(ErrCodeExpired, "Promotion expired")
	ErrPromotionUsageExceeded = NewDomainError(ErrCodeUsageLimitExceeded, "Promotion usage limit exceeded")
	ErrNoEligibleItems        = NewDomainError(ErrCodeNoEligibleItems, "No eligible items for this promotion")
	ErrBothCodesProvided      = NewDomainError(ErrCodeMutualExclusion, "Cannot apply both voucher and promotion")
	ErrEmptyItems             = NewDomainError(ErrCodeEmptyItems, "Items are required and must be an array")
	ErrVoucherCodeExists      = NewDomainError(ErrCodeDuplicateCode, "Voucher code already exists")
	ErrPromotionCodeExists    = NewDomainError(ErrCodeDuplicateCode, "Promotion code already exists")
	ErrVoucherNotFound        = NewDomainError(ErrCodeNotFound, "Voucher not found")
	ErrPromotionNotFound      = NewDomainError(ErrCodeNotFound, "Promotion not found")
	ErrOrderNotFound          = NewDomainError(ErrCodeNotFound, "Order not found")

	// ErrMinimumOrderNotMet matches every error built by NewMinimumOrderError.
	ErrMinimumOrderNotMet = &DomainError{Code: ErrCodeMinimumOrderNotMet}
)
