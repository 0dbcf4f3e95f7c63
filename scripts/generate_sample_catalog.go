package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"voucher-api/internal/model"
	"voucher-api/internal/seed"

	"github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
)

// generateSampleCatalog writes a gzipped JSON-lines catalog for local seeding:
//
//	SAVE10      10% voucher, no minimum
//	FLAT15      15.00 off orders of at least 100
//	BIGSPENDER  60% voucher, capped to 50% of the order
//	EXPIRED5    voucher that expired in 2020
//	TECH20      20% off electronics
//	BOOKS5      5.00 off books and stationery
func main() {
	dataDir := "data/catalog"

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	minOrder := decimal.NewFromInt(100)

	records := []seed.Record{
		voucher(model.CreateVoucherRequest{
			Code: "SAVE10", DiscountType: model.DiscountPercentage, DiscountValue: decimal.NewFromInt(10),
			ExpirationDate: "2099-12-31", UsageLimit: 1000,
		}),
		voucher(model.CreateVoucherRequest{
			Code: "FLAT15", DiscountType: model.DiscountFixed, DiscountValue: decimal.NewFromInt(15),
			ExpirationDate: "2099-12-31", UsageLimit: 500, MinOrderValue: &minOrder,
		}),
		voucher(model.CreateVoucherRequest{
			Code: "BIGSPENDER", DiscountType: model.DiscountPercentage, DiscountValue: decimal.NewFromInt(60),
			ExpirationDate: "2099-12-31", UsageLimit: 10,
		}),
		voucher(model.CreateVoucherRequest{
			Code: "EXPIRED5", DiscountType: model.DiscountFixed, DiscountValue: decimal.NewFromInt(5),
			ExpirationDate: "2020-01-01", UsageLimit: 100,
		}),
		promotion(model.CreatePromotionRequest{
			Code: "TECH20", DiscountType: model.DiscountPercentage, DiscountValue: decimal.NewFromInt(20),
			ExpirationDate: "2099-12-31", UsageLimit: 1000, EligibleCategories: []string{"electronics"},
		}),
		promotion(model.CreatePromotionRequest{
			Code: "BOOKS5", DiscountType: model.DiscountFixed, DiscountValue: decimal.NewFromInt(5),
			ExpirationDate: "2099-12-31", UsageLimit: 1000, EligibleCategories: []string{"books", "stationery"},
		}),
	}

	filePath := filepath.Join(dataDir, "catalog.jsonl.gz")
	if err := writeCatalog(filePath, records); err != nil {
		log.Fatalf("Failed to create %s: %v", filePath, err)
	}

	fmt.Printf("Created %s with %d records\n", filePath, len(records))
	fmt.Println("\nSeed it with: SEED_ENABLED=true SEED_FILES=" + filePath)
}

func voucher(req model.CreateVoucherRequest) seed.Record {
	return seed.Record{Type: seed.TypeVoucher, Voucher: &req}
}

func promotion(req model.CreatePromotionRequest) seed.Record {
	return seed.Record{Type: seed.TypePromotion, Promotion: &req}
}

func writeCatalog(filePath string, records []seed.Record) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gz := pgzip.NewWriter(file)
	enc := json.NewEncoder(gz)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("failed to write record %s: %w", rec.Type, err)
		}
	}

	return gz.Close()
}
