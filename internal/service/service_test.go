package service

import (
	"testing"
	"time"

	"github.com/Akhileshkolipakula/soda-business-manager/internal/migrations"
	"github.com/Akhileshkolipakula/soda-business-manager/internal/model"
	"github.com/Akhileshkolipakula/soda-business-manager/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupDB opens an in-memory store and applies the full migration
// sequence, so tests exercise the same schema the server runs on.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// A single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := migrations.Run(db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return db
}

type testEnv struct {
	db      *gorm.DB
	ledger  LedgerService
	reports ReportService
	auth    AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := setupDB(t)
	return &testEnv{
		db: db,
		ledger: NewLedgerService(
			repository.NewFlavorRepo(db),
			repository.NewProductRepo(db),
			repository.NewCustomerRepo(db),
			db,
			nil, // no websocket hub in tests
		),
		reports: NewReportService(repository.NewReportRepo(db)),
		auth:    NewAuthService(repository.NewUserRepo(db)),
	}
}

// newProduct creates a flavor and a product under it.
func (e *testEnv) newProduct(t *testing.T, flavorName string, costPrice, sellingPrice int64, initialStock int) *model.Product {
	t.Helper()

	flavor, err := e.ledger.AddFlavor(flavorName, "tester")
	if err != nil {
		t.Fatalf("add flavor %s: %v", flavorName, err)
	}

	product := &model.Product{
		FlavorID:     &flavor.ID,
		CostPrice:    costPrice,
		SellingPrice: sellingPrice,
		Stock:        initialStock,
	}
	if err := e.ledger.AddProduct(product, "tester"); err != nil {
		t.Fatalf("add product for %s: %v", flavorName, err)
	}
	return product
}

func (e *testEnv) productStock(t *testing.T, product *model.Product) int {
	t.Helper()
	var stored model.Product
	if err := e.db.First(&stored, "id = ?", product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	return stored.Stock
}

func (e *testEnv) count(t *testing.T, value interface{}) int64 {
	t.Helper()
	var count int64
	if err := e.db.Model(value).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return count
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}
