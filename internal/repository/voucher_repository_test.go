package repository

import (
	"context"
	"sync"
	"testing"

	"voucher-api/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoucherRepository_CreateAndGet(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewVoucherRepository(pool, zerolog.Nop())
	ctx := context.Background()

	voucher := newTestVoucher("SAVE25")
	require.NoError(t, repo.Create(ctx, voucher))
	assert.False(t, voucher.CreatedAt.IsZero())

	byCode, err := repo.GetByCode(ctx, "SAVE25")
	require.NoError(t, err)
	require.NotNil(t, byCode)
	assert.Equal(t, voucher.ID, byCode.ID)
	assert.True(t, dec("25").Equal(byCode.DiscountValue))
	require.NotNil(t, byCode.MinOrderValue)
	assert.True(t, dec("100").Equal(*byCode.MinOrderValue))
	assert.True(t, voucher.ExpirationDate.Equal(byCode.ExpirationDate))
	assert.Equal(t, 0, byCode.UsedCount)

	byID, err := repo.GetByID(ctx, voucher.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "SAVE25", byID.Code)
}

func TestVoucherRepository_NullMinOrderValue(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewVoucherRepository(pool, zerolog.Nop())
	ctx := context.Background()

	voucher := newTestVoucher("NOMIN")
	voucher.MinOrderValue = nil
	require.NoError(t, repo.Create(ctx, voucher))

	got, err := repo.GetByCode(ctx, "NOMIN")
	require.NoError(t, err)
	assert.Nil(t, got.MinOrderValue)
}

func TestVoucherRepository_NotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewVoucherRepository(pool, zerolog.Nop())
	ctx := context.Background()

	byCode, err := repo.GetByCode(ctx, "MISSING")
	assert.NoError(t, err)
	assert.Nil(t, byCode)

	byID, err := repo.GetByID(ctx, uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, byID)

	err = repo.Update(ctx, newTestVoucher("GHOST"))
	assert.ErrorIs(t, err, model.ErrVoucherNotFound)

	err = repo.Delete(ctx, uuid.New())
	assert.ErrorIs(t, err, model.ErrVoucherNotFound)
}

func TestVoucherRepository_DuplicateCode(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewVoucherRepository(pool, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestVoucher("DUP")))

	err := repo.Create(ctx, newTestVoucher("DUP"))
	assert.ErrorIs(t, err, model.ErrVoucherCodeExists)

	other := newTestVoucher("OTHER")
	require.NoError(t, repo.Create(ctx, other))
	other.Code = "DUP"
	assert.ErrorIs(t, repo.Update(ctx, other), model.ErrVoucherCodeExists)
}

func TestVoucherRepository_ListOrderedByCreation(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewVoucherRepository(pool, zerolog.Nop())
	ctx := context.Background()

	empty, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, code := range []string{"FIRST", "SECOND", "THIRD"} {
		require.NoError(t, repo.Create(ctx, newTestVoucher(code)))
	}

	vouchers, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, vouchers, 3)
	assert.Equal(t, "FIRST", vouchers[0].Code)
	assert.Equal(t, "THIRD", vouchers[2].Code)
}

func TestVoucherRepository_UpdateKeepsUsedCount(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewVoucherRepository(pool, zerolog.Nop())
	ctx := context.Background()

	voucher := newTestVoucher("KEEP")
	require.NoError(t, repo.Create(ctx, voucher))

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.IncrementUsage(ctx, tx, voucher.ID))
	require.NoError(t, tx.Commit(ctx))

	voucher.UsedCount = 0
	voucher.DiscountValue = dec("30")
	require.NoError(t, repo.Update(ctx, voucher))
	assert.Equal(t, 1, voucher.UsedCount)

	got, err := repo.GetByID(ctx, voucher.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.UsedCount)
	assert.True(t, dec("30").Equal(got.DiscountValue))
}

func TestVoucherRepository_IncrementUsage(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewVoucherRepository(pool, zerolog.Nop())
	ctx := context.Background()

	voucher := newTestVoucher("LIMITED")
	require.NoError(t, repo.Create(ctx, voucher))

	for i := 0; i < voucher.UsageLimit; i++ {
		tx, err := pool.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, repo.IncrementUsage(ctx, tx, voucher.ID))
		require.NoError(t, tx.Commit(ctx))
	}

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	err = repo.IncrementUsage(ctx, tx, voucher.ID)
	assert.ErrorIs(t, err, model.ErrVoucherUsageExceeded)
	require.NoError(t, tx.Rollback(ctx))

	tx, err = pool.Begin(ctx)
	require.NoError(t, err)
	err = repo.IncrementUsage(ctx, tx, uuid.New())
	assert.ErrorIs(t, err, model.ErrInvalidVoucherCode)
	require.NoError(t, tx.Rollback(ctx))
}

func TestVoucherRepository_IncrementUsage_Concurrent(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewVoucherRepository(pool, zerolog.Nop())
	ctx := context.Background()

	voucher := newTestVoucher("RACE")
	voucher.UsageLimit = 3
	require.NoError(t, repo.Create(ctx, voucher))

	const workers = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			tx, err := pool.Begin(ctx)
			if err != nil {
				return
			}
			if err := repo.IncrementUsage(ctx, tx, voucher.ID); err != nil {
				_ = tx.Rollback(ctx)
				return
			}
			if tx.Commit(ctx) == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, succeeded)

	got, err := repo.GetByID(ctx, voucher.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.UsedCount)
}

func TestVoucherRepository_Delete(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewVoucherRepository(pool, zerolog.Nop())
	ctx := context.Background()

	voucher := newTestVoucher("GONE")
	require.NoError(t, repo.Create(ctx, voucher))
	require.NoError(t, repo.Delete(ctx, voucher.ID))

	got, err := repo.GetByCode(ctx, "GONE")
	require.NoError(t, err)
	assert.Nil(t, got)
}
