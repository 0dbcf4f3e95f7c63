package service

import (
	"context"
	"errors"
	"fmt"

	"voucher-api/internal/model"
	"voucher-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// promotionService implements PromotionService.
type promotionService struct {
	repo   repository.PromotionRepository
	logger zerolog.Logger
}

// NewPromotionService creates a new promotion service.
func NewPromotionService(repo repository.PromotionRepository, logger zerolog.Logger) PromotionService {
	return &promotionService{
		repo:   repo,
		logger: logger.With().Str("service", "promotion").Logger(),
	}
}

// Create stores a new promotion with a zero usage count.
func (s *promotionService) Create(ctx context.Context, req *model.CreatePromotionRequest) (*model.Promotion, error) {
	expires, err := model.ParseDate(req.ExpirationDate)
	if err != nil {
		return nil, model.NewDomainError(model.ErrCodeValidationFailed, err.Error())
	}

	promotion := &model.Promotion{
		ID:                 uuid.New(),
		Code:               req.Code,
		DiscountType:       req.DiscountType,
		DiscountValue:      req.DiscountValue,
		ExpirationDate:     expires,
		UsageLimit:         req.UsageLimit,
		UsedCount:          0,
		EligibleCategories: req.EligibleCategories,
	}

	if err := s.repo.Create(ctx, promotion); err != nil {
		if errors.Is(err, model.ErrPromotionCodeExists) {
			s.logger.Warn().Str("code", req.Code).Msg("promotion code already exists")
			return nil, err
		}
		return nil, fmt.Errorf("failed to create promotion: %w", err)
	}

	s.logger.Info().
		Str("promotion_id", promotion.ID.String()).
		Str("code", promotion.Code).
		Strs("eligible_categories", promotion.EligibleCategories).
		Msg("promotion created")

	return promotion, nil
}

// List retrieves every promotion.
func (s *promotionService) List(ctx context.Context) ([]model.Promotion, error) {
	promotions, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list promotions: %w", err)
	}
	return promotions, nil
}

// Update applies a partial update to the promotion with the given ID.
func (s *promotionService) Update(ctx context.Context, id uuid.UUID, req *model.UpdatePromotionRequest) (*model.Promotion, error) {
	promotion, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get promotion: %w", err)
	}
	if promotion == nil {
		return nil, model.ErrPromotionNotFound
	}

	if err := req.Apply(promotion); err != nil {
		return nil, model.NewDomainError(model.ErrCodeValidationFailed, err.Error())
	}

	if err := s.repo.Update(ctx, promotion); err != nil {
		if _, ok := model.AsDomainError(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update promotion: %w", err)
	}

	s.logger.Info().Str("promotion_id", id.String()).Msg("promotion updated")

	return promotion, nil
}

// Delete removes the promotion with the given ID.
func (s *promotionService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if _, ok := model.AsDomainError(err); ok {
			return err
		}
		return fmt.Errorf("failed to delete promotion: %w", err)
	}

	s.logger.Info().Str("promotion_id", id.String()).Msg("promotion deleted")

	return nil
}
