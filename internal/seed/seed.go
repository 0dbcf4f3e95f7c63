// Package seed imports voucher and promotion catalogs from gzip compressed
// JSON-lines files stored on local disk or in S3.
package seed

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"voucher-api/internal/model"

	"github.com/klauspost/pgzip"
)

// Record types accepted in a catalog file.
const (
	TypeVoucher   = "voucher"
	TypePromotion = "promotion"
)

// Record is one line of a catalog file.
type Record struct {
	Type      string                        `json:"type"`
	Voucher   *model.CreateVoucherRequest   `json:"voucher,omitempty"`
	Promotion *model.CreatePromotionRequest `json:"promotion,omitempty"`
}

// Catalog holds the records read from one or more files, in file order.
type Catalog struct {
	Vouchers   []model.CreateVoucherRequest
	Promotions []model.CreatePromotionRequest
}

// Size returns the number of records in the catalog.
func (c *Catalog) Size() int {
	return len(c.Vouchers) + len(c.Promotions)
}

// Loader defines the interface for reading a catalog file.
type Loader interface {
	// Load reads the catalog stored at path.
	Load(ctx context.Context, path string) (*Catalog, error)
}

// ctxCheckInterval is how many lines are read between cancellation checks.
const ctxCheckInterval = 10_000

// decode reads gzip compressed JSON-lines from r. Blank lines are ignored.
func decode(ctx context.Context, r io.Reader) (*Catalog, error) {
	gz, err := pgzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gz.Close()

	catalog := &Catalog{}

	scanner := bufio.NewScanner(gz)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("line %d: invalid record: %w", lineNo, err)
		}

		switch rec.Type {
		case TypeVoucher:
			if rec.Voucher == nil {
				return nil, fmt.Errorf("line %d: voucher record without voucher body", lineNo)
			}
			catalog.Vouchers = append(catalog.Vouchers, *rec.Voucher)
		case TypePromotion:
			if rec.Promotion == nil {
				return nil, fmt.Errorf("line %d: promotion record without promotion body", lineNo)
			}
			catalog.Promotions = append(catalog.Promotions, *rec.Promotion)
		default:
			return nil, fmt.Errorf("line %d: unknown record type %q", lineNo, rec.Type)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	return catalog, nil
}
