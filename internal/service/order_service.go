package service

import (
	"context"
	"fmt"
	"time"

	"voucher-api/internal/discount"
	"voucher-api/internal/metrics"
	"voucher-api/internal/model"
	"voucher-api/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo     repository.OrderRepository
	voucherRepo   repository.VoucherRepository
	promotionRepo repository.PromotionRepository
	vouchers      discount.VoucherValidator
	promotions    discount.PromotionValidator
	metrics       *metrics.Metrics
	now           func() time.Time
	logger        zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	voucherRepo repository.VoucherRepository,
	promotionRepo repository.PromotionRepository,
	vouchers discount.VoucherValidator,
	promotions discount.PromotionValidator,
	m *metrics.Metrics,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:     orderRepo,
		voucherRepo:   voucherRepo,
		promotionRepo: promotionRepo,
		vouchers:      vouchers,
		promotions:    promotions,
		metrics:       m,
		now:           time.Now,
		logger:        logger.With().Str("service", "order").Logger(),
	}
}

// consumeFunc consumes one use of the applied code inside the order transaction.
type consumeFunc func(ctx context.Context, tx pgx.Tx) error

// PriceOrder applies at most one discount code to the order, persists it and
// consumes one use of the code.
func (s *orderService) PriceOrder(ctx context.Context, req *model.OrderRequest) (order *model.Order, err error) {
	kind := metrics.KindNone
	amount := decimal.Zero
	defer func() {
		s.observe(kind, amount, err)
	}()

	requested, err := NewDiscountRequest(req.VoucherCode, req.PromotionCode)
	if err != nil {
		s.logger.Warn().Msg("both voucher and promotion supplied")
		return nil, err
	}
	kind = requested.kind()

	if len(req.Items) == 0 {
		return nil, model.ErrEmptyItems
	}

	total := model.SumPrices(req.Items)

	order = &model.Order{
		ID:          uuid.New(),
		Items:       req.Items,
		TotalAmount: total,
	}

	var consume consumeFunc

	switch code := requested.(type) {
	case VoucherCode:
		result, err := s.vouchers.Apply(ctx, string(code), total)
		if err != nil {
			s.logger.Warn().Err(err).Str("voucher_code", string(code)).Msg("voucher rejected")
			return nil, err
		}
		amount = result.Discount
		order.VoucherCode = stringPtr(string(code))
		consume = func(ctx context.Context, tx pgx.Tx) error {
			return s.voucherRepo.IncrementUsage(ctx, tx, result.VoucherID)
		}

	case PromotionCode:
		result, err := s.promotions.Apply(ctx, string(code), req.Items)
		if err != nil {
			s.logger.Warn().Err(err).Str("promotion_code", string(code)).Msg("promotion rejected")
			return nil, err
		}
		amount = result.Discount
		order.PromotionCode = stringPtr(string(code))
		consume = func(ctx context.Context, tx pgx.Tx) error {
			return s.promotionRepo.IncrementUsage(ctx, tx, result.PromotionID)
		}
	}

	order.DiscountApplied = amount
	order.FinalAmount = decimal.Max(decimal.Zero, total.Sub(amount))
	order.CreatedAt = s.now().UTC()

	if err = s.persist(ctx, order, consume); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("total_amount", order.TotalAmount.String()).
		Str("discount_applied", order.DiscountApplied.String()).
		Str("final_amount", order.FinalAmount.String()).
		Msg("order priced")

	return order, nil
}

// persist stores the order and consumes the code's usage in one transaction.
func (s *orderService) persist(ctx context.Context, order *model.Order, consume consumeFunc) (err error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	if consume != nil {
		if err = consume(ctx, tx); err != nil {
			if _, ok := model.AsDomainError(err); ok {
				s.logger.Warn().Err(err).Str("order_id", order.ID.String()).Msg("code no longer usable")
				return err
			}
			return fmt.Errorf("failed to record code usage: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

func (s *orderService) observe(kind string, amount decimal.Decimal, err error) {
	if s.metrics == nil {
		return
	}
	if err == nil {
		s.metrics.ObserveDiscount(kind, metrics.OutcomeApplied, amount.InexactFloat64())
		return
	}
	outcome := model.ErrCodeInternalError
	if de, ok := model.AsDomainError(err); ok {
		outcome = de.Code
	}
	s.metrics.ObserveDiscount(kind, outcome, 0)
}

// GetByID retrieves a previously priced order.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

func stringPtr(s string) *string {
	return &s
}
