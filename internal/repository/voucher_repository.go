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

const voucherColumns = `id, code, discount_type, discount_value, expiration_date,
	usage_limit, used_count, min_order_value, created_at, updated_at`

// voucherRepository implements the VoucherRepository interface using PostgreSQL.
type voucherRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewVoucherRepository creates a new PostgreSQL-backed voucher repository.
func NewVoucherRepository(pool *pgxpool.Pool, logger zerolog.Logger) VoucherRepository {
	return &voucherRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "voucher").Logger(),
	}
}

func scanVoucher(row pgx.Row) (*model.Voucher, error) {
	var v model.Voucher
	err := row.Scan(
		&v.ID,
		&v.Code,
		&v.DiscountType,
		&v.DiscountValue,
		&v.ExpirationDate,
		&v.UsageLimit,
		&v.UsedCount,
		&v.MinOrderValue,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create inserts a new voucher.
func (r *voucherRepository) Create(ctx context.Context, v *model.Voucher) error {
	query := `
		INSERT INTO vouchers (id, code, discount_type, discount_value, expiration_date,
			usage_limit, used_count, min_order_value)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		v.ID, v.Code, v.DiscountType, v.DiscountValue, v.ExpirationDate,
		v.UsageLimit, v.UsedCount, v.MinOrderValue,
	).Scan(&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Debug().Str("code", v.Code).Msg("voucher code already exists")
			return model.ErrVoucherCodeExists
		}
		r.logger.Error().Err(err).Str("code", v.Code).Msg("failed to create voucher")
		return fmt.Errorf("failed to create voucher: %w", err)
	}

	r.logger.Debug().
		Str("voucher_id", v.ID.String()).
		Str("code", v.Code).
		Msg("voucher created successfully")

	return nil
}

// List retrieves every voucher ordered by creation time.
func (r *voucherRepository) List(ctx context.Context) ([]model.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query vouchers")
		return nil, fmt.Errorf("failed to query vouchers: %w", err)
	}
	defer rows.Close()

	vouchers := make([]model.Voucher, 0)
	for rows.Next() {
		v, err := scanVoucher(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan voucher row")
			return nil, fmt.Errorf("failed to scan voucher: %w", err)
		}
		vouchers = append(vouchers, *v)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating voucher rows")
		return nil, fmt.Errorf("error iterating vouchers: %w", err)
	}

	return vouchers, nil
}

// GetByID retrieves a voucher by its ID.
func (r *voucherRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE id = $1`

	v, err := scanVoucher(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("voucher_id", id.String()).Msg("voucher not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("voucher_id", id.String()).Msg("failed to query voucher")
		return nil, fmt.Errorf("failed to query voucher: %w", err)
	}

	return v, nil
}

// GetByCode retrieves a voucher by its code.
func (r *voucherRepository) GetByCode(ctx context.Context, code string) (*model.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE code = $1`

	v, err := scanVoucher(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("code", code).Msg("voucher code not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("code", code).Msg("failed to query voucher by code")
		return nil, fmt.Errorf("failed to query voucher: %w", err)
	}

	return v, nil
}

// Update writes the admin-editable fields of the voucher.
func (r *voucherRepository) Update(ctx context.Context, v *model.Voucher) error {
	query := `
		UPDATE vouchers
		SET code = $2, discount_type = $3, discount_value = $4, expiration_date = $5,
			usage_limit = $6, min_order_value = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING used_count, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		v.ID, v.Code, v.DiscountType, v.DiscountValue, v.ExpirationDate,
		v.UsageLimit, v.MinOrderValue,
	).Scan(&v.UsedCount, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrVoucherNotFound
		}
		if isUniqueViolation(err) {
			return model.ErrVoucherCodeExists
		}
		r.logger.Error().Err(err).Str("voucher_id", v.ID.String()).Msg("failed to update voucher")
		return fmt.Errorf("failed to update voucher: %w", err)
	}

	return nil
}

// Delete removes a voucher.
func (r *voucherRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM vouchers WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("voucher_id", id.String()).Msg("failed to delete voucher")
		return fmt.Errorf("failed to delete voucher: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrVoucherNotFound
	}
	return nil
}

// IncrementUsage consumes one use of the voucher within tx. The check and the
// increment happen in a single statement so concurrent orders cannot overrun
// the limit.
func (r *voucherRepository) IncrementUsage(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	query := `
		UPDATE vouchers
		SET used_count = used_count + 1, updated_at = NOW()
		WHERE id = $1 AND used_count < usage_limit
	`

	tag, err := tx.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Str("voucher_id", id.String()).Msg("failed to increment voucher usage")
		return fmt.Errorf("failed to increment voucher usage: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM vouchers WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check voucher: %w", err)
	}
	if !exists {
		return model.ErrInvalidVoucherCode
	}

	r.logger.Debug().Str("voucher_id", id.String()).Msg("voucher usage limit reached")
	return model.ErrVoucherUsageExceeded
}
