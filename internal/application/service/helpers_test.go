package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sparesdesk/sparesdesk-api/internal/application/service"
	"github.com/sparesdesk/sparesdesk-api/internal/domain/entity"
	"github.com/sparesdesk/sparesdesk-api/internal/domain/repository"
	"github.com/sparesdesk/sparesdesk-api/internal/infrastructure/database"
	infraRepo "github.com/sparesdesk/sparesdesk-api/internal/infrastructure/repository"
	"gorm.io/gorm"
)

type testEnv struct {
	db       *gorm.DB
	products repository.ProductRepository
	invoices repository.InvoiceRepository
	billing  *service.BillingService
	catalog  *service.ProductService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.NewSqliteDB(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	products := infraRepo.NewProductRepository(db)
	invoices := infraRepo.NewInvoiceRepository(db)
	sequences := infraRepo.NewSequenceRepository(db)

	return &testEnv{
		db:       db,
		products: products,
		invoices: invoices,
		billing:  service.NewBillingService(products, invoices, sequences, "INV", "Walk-in Customer"),
		catalog:  service.NewProductService(products),
	}
}

func (e *testEnv) mustCreateProduct(t *testing.T, name, code string, stock int, sellingPrice float64, gstRate int) *entity.Product {
	t.Helper()

	product, err := e.catalog.CreateProduct(context.Background(), &service.CreateProductInput{
		Name:         name,
		Code:         code,
		Stock:        stock,
		SellingPrice: sellingPrice,
		GSTRate:      gstRate,
	})
	require.NoError(t, err)
	return product
}

func (e *testEnv) stockOf(t *testing.T, id uint) int {
	t.Helper()

	product, err := e.products.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, product)
	return product.Stock
}

func (e *testEnv) invoiceCount(t *testing.T) int64 {
	t.Helper()

	count, err := e.invoices.Count(context.Background())
	require.NoError(t, err)
	return count
}
