package database

import (
	"fmt"
	"log"

	"github.com/sparesdesk/sparesdesk-api/internal/config"
	"github.com/sparesdesk/sparesdesk-api/internal/domain/entity"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New opens the database selected by configuration. Sqlite is the default:
// the shop runs a single process and the whole dataset fits in one file.
// Postgres is available for deployments that already run one.
func New(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	switch cfg.Driver {
	case "postgres":
		return newPostgresDB(cfg)
	case "sqlite", "":
		return NewSqliteDB(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// NewSqliteDB opens a sqlite database at the given path. ":memory:" gives a
// throwaway database, used by the test suites.
func NewSqliteDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// A single writer connection sidesteps SQLITE_BUSY under concurrent
	// checkouts; the core is single-operator anyway.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

func newPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.Product{},
		&entity.Invoice{},
		&entity.InvoiceSequence{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// SeedDefaultProducts loads the starter catalogue on an empty database so a
// fresh install has something to bill against. Skipped once any product
// exists.
func SeedDefaultProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []entity.Product{
		{Name: "Brake Pad Set", Brand: "Maruti Swift", Code: "BP-MS-001", HSNCode: "8708", Stock: 25, PurchasePrice: 45000, SellingPrice: 65000, GSTRate: 28},
		{Name: "Air Filter", Brand: "Hyundai i20", Code: "AF-HI-002", HSNCode: "8708", Stock: 15, PurchasePrice: 25000, SellingPrice: 40000, GSTRate: 28},
		{Name: "Oil Filter", Brand: "Tata Nexon", Code: "OF-TN-003", HSNCode: "8708", Stock: 30, PurchasePrice: 18000, SellingPrice: 30000, GSTRate: 28},
		{Name: "Headlight Bulb", Brand: "Maruti Alto", Code: "HB-MA-004", HSNCode: "8708", Stock: 50, PurchasePrice: 8000, SellingPrice: 15000, GSTRate: 18},
		{Name: "Wiper Blade", Brand: "Honda City", Code: "WB-HC-005", HSNCode: "8708", Stock: 20, PurchasePrice: 20000, SellingPrice: 35000, GSTRate: 28},
	}

	if err := db.Create(&defaults).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}
	log.Printf("Seeded %d default products", len(defaults))
	return nil
}
