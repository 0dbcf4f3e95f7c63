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

// voucherService implements VoucherService.
type voucherService struct {
	repo   repository.VoucherRepository
	logger zerolog.Logger
}

// NewVoucherService creates a new voucher service.
func NewVoucherService(repo repository.VoucherRepository, logger zerolog.Logger) VoucherService {
	return &voucherService{
		repo:   repo,
		logger: logger.With().Str("service", "voucher").Logger(),
	}
}

// Create stores a new voucher with a zero usage count.
func (s *voucherService) Create(ctx context.Context, req *model.CreateVoucherRequest) (*model.Voucher, error) {
	expires, err := model.ParseDate(req.ExpirationDate)
	if err != nil {
		return nil, model.NewDomainError(model.ErrCodeValidationFailed, err.Error())
	}

	voucher := &model.Voucher{
		ID:             uuid.New(),
		Code:           req.Code,
		DiscountType:   req.DiscountType,
		DiscountValue:  req.DiscountValue,
		ExpirationDate: expires,
		UsageLimit:     req.UsageLimit,
		UsedCount:      0,
		MinOrderValue:  req.MinOrderValue,
	}

	if err := s.repo.Create(ctx, voucher); err != nil {
		if errors.Is(err, model.ErrVoucherCodeExists) {
			s.logger.Warn().Str("code", req.Code).Msg("voucher code already exists")
			return nil, err
		}
		return nil, fmt.Errorf("failed to create voucher: %w", err)
	}

	s.logger.Info().
		Str("voucher_id", voucher.ID.String()).
		Str("code", voucher.Code).
		Msg("voucher created")

	return voucher, nil
}

// List retrieves every voucher.
func (s *voucherService) List(ctx context.Context) ([]model.Voucher, error) {
	vouchers, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}
	return vouchers, nil
}

// Update applies a partial update to the voucher with the given ID.
func (s *voucherService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateVoucherRequest) (*model.Voucher, error) {
	voucher, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get voucher: %w", err)
	}
	if voucher == nil {
		return nil, model.ErrVoucherNotFound
	}

	if err := req.Apply(voucher); err != nil {
		return nil, model.NewDomainError(model.ErrCodeValidationFailed, err.Error())
	}

	if err := s.repo.Update(ctx, voucher); err != nil {
		if _, ok := model.AsDomainError(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update voucher: %w", err)
	}

	s.logger.Info().Str("voucher_id", id.String()).Msg("voucher updated")

	return voucher, nil
}

// Delete removes the voucher with the given ID.
func (s *voucherService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if _, ok := model.AsDomainError(err); ok {
			return err
		}
		return fmt.Errorf("failed to delete voucher: %w", err)
	}

	s.logger.Info().Str("voucher_id", id.String()).Msg("voucher deleted")

	return nil
}
