package seed

import (
	"context"
	"errors"
	"fmt"

	"voucher-api/internal/metrics"
	"voucher-api/internal/model"
	"voucher-api/internal/validation"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Import results recorded per record.
const (
	ResultImported = "imported"
	ResultSkipped  = "skipped"
	ResultInvalid  = "invalid"
)

// VoucherCreator stores new vouchers.
type VoucherCreator interface {
	Create(ctx context.Context, req *model.CreateVoucherRequest) (*model.Voucher, error)
}

// PromotionCreator stores new promotions.
type PromotionCreator interface {
	Create(ctx context.Context, req *model.CreatePromotionRequest) (*model.Promotion, error)
}

// Summary counts the outcome of an import run.
type Summary struct {
	Imported int
	Skipped  int
	Invalid  int
}

// Importer loads catalog files and creates the records they describe.
type Importer struct {
	loader     Loader
	vouchers   VoucherCreator
	promotions PromotionCreator
	validator  *validation.Validator
	metrics    *metrics.Metrics
	logger     zerolog.Logger
}

// NewImporter creates an Importer. m may be nil.
func NewImporter(
	loader Loader,
	vouchers VoucherCreator,
	promotions PromotionCreator,
	validator *validation.Validator,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *Importer {
	return &Importer{
		loader:     loader,
		vouchers:   vouchers,
		promotions: promotions,
		validator:  validator,
		metrics:    m,
		logger:     logger.With().Str("component", "catalog-importer").Logger(),
	}
}

// Run loads every file concurrently, then imports the records sequentially
// in file order. Records whose code already exists are skipped and never
// overwritten; records failing validation are skipped and logged.
func (i *Importer) Run(ctx context.Context, files []string) (Summary, error) {
	catalogs, err := i.loadAll(ctx, files)
	if err != nil {
		return Summary{}, err
	}

	records := 0
	for _, catalog := range catalogs {
		records += catalog.Size()
	}
	i.logger.Info().Int("files", len(files)).Int("records", records).Msg("importing catalog")

	var summary Summary
	for _, catalog := range catalogs {
		for idx := range catalog.Vouchers {
			req := &catalog.Vouchers[idx]
			result, err := i.importRecord(ctx, TypeVoucher, req.Code, req, func() error {
				_, err := i.vouchers.Create(ctx, req)
				return err
			})
			if err != nil {
				return summary, err
			}
			summary.add(result)
		}
		for idx := range catalog.Promotions {
			req := &catalog.Promotions[idx]
			result, err := i.importRecord(ctx, TypePromotion, req.Code, req, func() error {
				_, err := i.promotions.Create(ctx, req)
				return err
			})
			if err != nil {
				return summary, err
			}
			summary.add(result)
		}
	}

	i.logger.Info().
		Int("files", len(files)).
		Int("imported", summary.Imported).
		Int("skipped", summary.Skipped).
		Int("invalid", summary.Invalid).
		Msg("catalog import completed")

	return summary, nil
}

func (i *Importer) loadAll(ctx context.Context, files []string) ([]*Catalog, error) {
	catalogs := make([]*Catalog, len(files))

	g, gctx := errgroup.WithContext(ctx)
	for idx, file := range files {
		g.Go(func() error {
			catalog, err := i.loader.Load(gctx, file)
			if err != nil {
				return fmt.Errorf("failed to load catalog %s: %w", file, err)
			}
			catalogs[idx] = catalog
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		i.logger.Error().Err(err).Msg("failed to load catalog files")
		return nil, err
	}

	return catalogs, nil
}

func (i *Importer) importRecord(ctx context.Context, recordType, code string, req any, create func() error) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	result := ResultImported
	if err := i.validator.Struct(req); err != nil {
		i.logger.Warn().Err(err).Str("type", recordType).Str("code", code).Msg("skipping invalid catalog record")
		result = ResultInvalid
	} else if err := create(); err != nil {
		if !errors.Is(err, model.ErrVoucherCodeExists) && !errors.Is(err, model.ErrPromotionCodeExists) {
			return "", fmt.Errorf("failed to import %s %s: %w", recordType, code, err)
		}
		i.logger.Debug().Str("type", recordType).Str("code", code).Msg("code already exists, skipping")
		result = ResultSkipped
	}

	if i.metrics != nil {
		i.metrics.ObserveSeed(recordType, result)
	}
	return result, nil
}

func (s *Summary) add(result string) {
	switch result {
	case ResultImported:
		s.Imported++
	case ResultSkipped:
		s.Skipped++
	case ResultInvalid:
		s.Invalid++
	}
}
