package service

import (
	"context"
	"errors"
	"testing"

	"voucher-api/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPromotionService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Created", func(t *testing.T) {
		repo := new(MockPromotionRepository)
		svc := NewPromotionService(repo, zerolog.Nop())
		repo.On("Create", ctx, mock.AnythingOfType("*model.Promotion")).Return(nil)

		promotion, err := svc.Create(ctx, &model.CreatePromotionRequest{
			Code:               "ELEC10",
			DiscountType:       model.DiscountPercentage,
			DiscountValue:      dec("10"),
			ExpirationDate:     "2030-06-30T23:59:59Z",
			UsageLimit:         100,
			EligibleCategories: []string{"electronics"},
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"electronics"}, promotion.EligibleCategories)
		assert.Equal(t, 0, promotion.UsedCount)
		repo.AssertExpectations(t)
	})

	t.Run("Duplicate code", func(t *testing.T) {
		repo := new(MockPromotionRepository)
		svc := NewPromotionService(repo, zerolog.Nop())
		repo.On("Create", ctx, mock.Anything).Return(model.ErrPromotionCodeExists)

		_, err := svc.Create(ctx, &model.CreatePromotionRequest{
			Code:               "ELEC10",
			DiscountType:       model.DiscountFixed,
			DiscountValue:      dec("5"),
			ExpirationDate:     "2030-06-30",
			UsageLimit:         1,
			EligibleCategories: []string{"electronics"},
		})

		assert.ErrorIs(t, err, model.ErrPromotionCodeExists)
		assert.Equal(t, "Promotion code already exists", err.Error())
	})

	t.Run("Unparseable date", func(t *testing.T) {
		repo := new(MockPromotionRepository)
		svc := NewPromotionService(repo, zerolog.Nop())

		_, err := svc.Create(ctx, &model.CreatePromotionRequest{Code: "BAD", ExpirationDate: "soon"})

		de, ok := model.AsDomainError(err)
		require.True(t, ok)
		assert.Equal(t, model.ErrCodeValidationFailed, de.Code)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestPromotionService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Replaces categories", func(t *testing.T) {
		repo := new(MockPromotionRepository)
		svc := NewPromotionService(repo, zerolog.Nop())
		existing := &model.Promotion{ID: id, Code: "CATS", EligibleCategories: []string{"toys"}}
		repo.On("GetByID", ctx, id).Return(existing, nil)
		repo.On("Update", ctx, existing).Return(nil)

		promotion, err := svc.Update(ctx, id, &model.UpdatePromotionRequest{
			EligibleCategories: []string{"toys", "games"},
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"toys", "games"}, promotion.EligibleCategories)
	})

	t.Run("Lookup failure", func(t *testing.T) {
		repo := new(MockPromotionRepository)
		svc := NewPromotionService(repo, zerolog.Nop())
		repo.On("GetByID", ctx, id).Return(nil, errors.New("boom"))

		_, err := svc.Update(ctx, id, &model.UpdatePromotionRequest{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get promotion")
	})

	t.Run("Delete unknown", func(t *testing.T) {
		repo := new(MockPromotionRepository)
		svc := NewPromotionService(repo, zerolog.Nop())
		repo.On("Delete", ctx, id).Return(model.ErrPromotionNotFound)

		assert.ErrorIs(t, svc.Delete(ctx, id), model.ErrPromotionNotFound)
	})

	t.Run("List", func(t *testing.T) {
		repo := new(MockPromotionRepository)
		svc := NewPromotionService(repo, zerolog.Nop())
		repo.On("List", ctx).Return([]model.Promotion{{Code: "A"}}, nil)

		promotions, err := svc.List(ctx)

		require.NoError(t, err)
		assert.Len(t, promotions, 1)
	})
}
