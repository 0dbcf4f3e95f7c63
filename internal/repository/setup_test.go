package repository

import (
	"context"
	"testing"
	"time"

	"voucher-api/internal/database"
	"voucher-api/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer with the application schema
// and returns a connection pool.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	if testing.Short() {
		t.Skip("skipping repository test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := database.Open(ctx, connStr, nil)
	require.NoError(t, err)

	require.NoError(t, database.Migrate(ctx, pool, zerolog.Nop()))

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newTestVoucher(code string) *model.Voucher {
	minOrder := dec("100")
	return &model.Voucher{
		ID:             uuid.New(),
		Code:           code,
		DiscountType:   model.DiscountPercentage,
		DiscountValue:  dec("25"),
		ExpirationDate: time.Now().Add(24 * time.Hour).UTC().Truncate(time.Microsecond),
		UsageLimit:     2,
		MinOrderValue:  &minOrder,
	}
}

func newTestPromotion(code string, categories ...string) *model.Promotion {
	return &model.Promotion{
		ID:                 uuid.New(),
		Code:               code,
		DiscountType:       model.DiscountFixed,
		DiscountValue:      dec("10.50"),
		ExpirationDate:     time.Now().Add(24 * time.Hour).UTC().Truncate(time.Microsecond),
		UsageLimit:         1,
		EligibleCategories: categories,
	}
}
