package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_Is(t *testing.T) {
	minErr := NewMinimumOrderError(decimal.NewFromInt(100))

	assert.Equal(t, "Minimum order value of 100 required", minErr.Error())
	assert.ErrorIs(t, minErr, ErrMinimumOrderNotMet)
	assert.ErrorIs(t, fmt.Errorf("wrapped: %w", ErrVoucherExpired), ErrVoucherExpired)

	assert.NotErrorIs(t, ErrVoucherExpired, ErrPromotionExpired, "same code, different message")
	assert.NotErrorIs(t, ErrVoucherExpired, ErrVoucherUsageExceeded)
	assert.NotErrorIs(t, errors.New("Voucher expired"), ErrVoucherExpired)
}

func TestAsDomainError(t *testing.T) {
	de, ok := AsDomainError(fmt.Errorf("pricing: %w", ErrNoEligibleItems))
	require.True(t, ok)
	assert.Equal(t, ErrCodeNoEligibleItems, de.Code)

	_, ok = AsDomainError(errors.New("connection refused"))
	assert.False(t, ok)
}

func TestUpdateVoucherRequest_Apply(t *testing.T) {
	original := Voucher{
		Code:           "SAVE10",
		DiscountType:   DiscountPercentage,
		DiscountValue:  decimal.NewFromInt(10),
		ExpirationDate: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		UsageLimit:     5,
		UsedCount:      3,
	}

	t.Run("empty update changes nothing", func(t *testing.T) {
		v := original
		require.NoError(t, (&UpdateVoucherRequest{}).Apply(&v))
		assert.Equal(t, original, v)
	})

	t.Run("set fields are merged", func(t *testing.T) {
		v := original
		code, limit, date := "SAVE20", 50, "2031-06-30"
		value, minOrder := decimal.NewFromInt(20), decimal.NewFromInt(75)
		fixed := DiscountFixed

		err := (&UpdateVoucherRequest{
			Code:           &code,
			DiscountType:   &fixed,
			DiscountValue:  &value,
			ExpirationDate: &date,
			UsageLimit:     &limit,
			MinOrderValue:  &minOrder,
		}).Apply(&v)
		require.NoError(t, err)

		assert.Equal(t, "SAVE20", v.Code)
		assert.Equal(t, DiscountFixed, v.DiscountType)
		assert.True(t, value.Equal(v.DiscountValue))
		assert.Equal(t, time.Date(2031, 6, 30, 0, 0, 0, 0, time.UTC), v.ExpirationDate)
		assert.Equal(t, 50, v.UsageLimit)
		assert.Equal(t, 3, v.UsedCount, "usage is never written by updates")
		require.NotNil(t, v.MinOrderValue)
		assert.True(t, minOrder.Equal(*v.MinOrderValue))
	})

	t.Run("bad date", func(t *testing.T) {
		v := original
		date := "someday"
		assert.Error(t, (&UpdateVoucherRequest{ExpirationDate: &date}).Apply(&v))
	})
}

func TestUpdateVoucherRequest_MinOrderValueNull(t *testing.T) {
	minOrder := decimal.NewFromInt(100)

	tests := []struct {
		name    string
		body    string
		wantMin *decimal.Decimal
	}{
		{name: "explicit null clears", body: `{"minOrderValue": null}`, wantMin: nil},
		{name: "absent keeps", body: `{"usageLimit": 7}`, wantMin: &minOrder},
		{name: "value replaces", body: `{"minOrderValue": 40}`, wantMin: decimalPtr(decimal.NewFromInt(40))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateVoucherRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			v := Voucher{Code: "SAVE10", UsageLimit: 5, MinOrderValue: &minOrder}
			require.NoError(t, req.Apply(&v))

			if tt.wantMin == nil {
				assert.Nil(t, v.MinOrderValue)
				return
			}
			require.NotNil(t, v.MinOrderValue)
			assert.True(t, tt.wantMin.Equal(*v.MinOrderValue))
		})
	}
}

func TestUpdateVoucherRequest_UnmarshalKeepsFields(t *testing.T) {
	var req UpdateVoucherRequest
	require.NoError(t, json.Unmarshal([]byte(`{"code":"SAVE20","discountType":"FIXED","minOrderValue":null}`), &req))

	require.NotNil(t, req.Code)
	assert.Equal(t, "SAVE20", *req.Code)
	require.NotNil(t, req.DiscountType)
	assert.Equal(t, DiscountFixed, *req.DiscountType)
	assert.Nil(t, req.MinOrderValue)
	assert.True(t, req.ClearMinOrderValue)

	assert.Error(t, json.Unmarshal([]byte(`{"usageLimit": "many"}`), &req))
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal { return &d }

func TestUpdatePromotionRequest_Apply(t *testing.T) {
	p := Promotion{
		Code:               "TECH20",
		DiscountType:       DiscountPercentage,
		DiscountValue:      decimal.NewFromInt(20),
		UsageLimit:         5,
		EligibleCategories: []string{"electronics"},
	}

	limit := 10
	require.NoError(t, (&UpdatePromotionRequest{
		UsageLimit:         &limit,
		EligibleCategories: []string{"books", "toys"},
	}).Apply(&p))

	assert.Equal(t, "TECH20", p.Code)
	assert.Equal(t, 10, p.UsageLimit)
	assert.Equal(t, []string{"books", "toys"}, p.EligibleCategories)
}
