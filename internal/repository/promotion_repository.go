package repository

import (
	"context"
	"errors"
	"fmt"

	"voucher-api/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const promotionColumns = `id, code, discount_type, discount_value, expiration_date,
	usage_limit, used_count, eligible_categories, created_at, updated_at`

// promotionRepository implements the PromotionRepository interface using PostgreSQL.
type promotionRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPromotionRepository creates a new PostgreSQL-backed promotion repository.
func NewPromotionRepository(pool *pgxpool.Pool, logger zerolog.Logger) PromotionRepository {
	return &promotionRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "promotion").Logger(),
	}
}

func scanPromotion(row pgx.Row) (*model.Promotion, error) {
	var p model.Promotion
	err := row.Scan(
		&p.ID,
		&p.Code,
		&p.DiscountType,
		&p.DiscountValue,
		&p.ExpirationDate,
		&p.UsageLimit,
		&p.UsedCount,
		&p.EligibleCategories,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new promotion.
func (r *promotionRepository) Create(ctx context.Context, p *model.Promotion) error {
	query := `
		INSERT INTO promotions (id, code, discount_type, discount_value, expiration_date,
			usage_limit, used_count, eligible_categories)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		p.ID, p.Code, p.DiscountType, p.DiscountValue, p.ExpirationDate,
		p.UsageLimit, p.UsedCount, p.EligibleCategories,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Debug().Str("code", p.Code).Msg("promotion code already exists")
			return model.ErrPromotionCodeExists
		}
		r.logger.Error().Err(err).Str("code", p.Code).Msg("failed to create promotion")
		return fmt.Errorf("failed to create promotion: %w", err)
	}

	r.logger.Debug().
		Str("promotion_id", p.ID.String()).
		Str("code", p.Code).
		Msg("promotion created successfully")

	return nil
}

// List retrieves every promotion ordered by creation time.
func (r *promotionRepository) List(ctx context.Context) ([]model.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query promotions")
		return nil, fmt.Errorf("failed to query promotions: %w", err)
	}
	defer rows.Close()

	promotions := make([]model.Promotion, 0)
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan promotion row")
			return nil, fmt.Errorf("failed to scan promotion: %w", err)
		}
		promotions = append(promotions, *p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating promotion rows")
		return nil, fmt.Errorf("error iterating promotions: %w", err)
	}

	return promotions, nil
}

// GetByID retrieves a promotion by its ID.
func (r *promotionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions WHERE id = $1`

	p, err := scanPromotion(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("promotion_id", id.String()).Msg("promotion not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("promotion_id", id.String()).Msg("failed to query promotion")
		return nil, fmt.Errorf("failed to query promotion: %w", err)
	}

	return p, nil
}

// GetByCode retrieves a promotion by its code.
func (r *promotionRepository) GetByCode(ctx context.Context, code string) (*model.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions WHERE code = $1`

	p, err := scanPromotion(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("code", code).Msg("promotion code not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("code", code).Msg("failed to query promotion by code")
		return nil, fmt.Errorf("failed to query promotion: %w", err)
	}

	return p, nil
}

// Update writes the admin-editable fields of the promotion.
func (r *promotionRepository) Update(ctx context.Context, p *model.Promotion) error {
	query := `
		UPDATE promotions
		SET code = $2, discount_type = $3, discount_value = $4, expiration_date = $5,
			usage_limit = $6, eligible_categories = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING used_count, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		p.ID, p.Code, p.DiscountType, p.DiscountValue, p.ExpirationDate,
		p.UsageLimit, p.EligibleCategories,
	).Scan(&p.UsedCount, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrPromotionNotFound
		}
		if isUniqueViolation(err) {
			return model.ErrPromotionCodeExists
		}
		r.logger.Error().Err(err).Str("promotion_id", p.ID.String()).Msg("failed to update promotion")
		return fmt.Errorf("failed to update promotion: %w", err)
	}

	return nil
}

// Delete removes a promotion.
func (r *promotionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM promotions WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("promotion_id", id.String()).Msg("failed to delete promotion")
		return fmt.Errorf("failed to delete promotion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPromotionNotFound
	}
	return nil
}

// IncrementUsage consumes one use of the promotion within tx. The check and the
// increment happen in a single statement so concurrent orders cannot overrun
// the limit.
func (r *promotionRepository) IncrementUsage(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	query := `
		UPDATE promotions
		SET used_count = used_count + 1, updated_at = NOW()
		WHERE id = $1 AND used_count < usage_limit
	`

	tag, err := tx.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Str("promotion_id", id.String()).Msg("failed to increment promotion usage")
		return fmt.Errorf("failed to increment promotion usage: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM promotions WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check promotion: %w", err)
	}
	if !exists {
		return model.ErrInvalidPromotionCode
	}

	r.logger.Debug().Str("promotion_id", id.String()).Msg("promotion usage limit reached")
	return model.ErrPromotionUsageExceeded
}
