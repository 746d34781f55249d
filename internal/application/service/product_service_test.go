package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sparesdesk/sparesdesk-api/internal/application/service"
	"github.com/sparesdesk/sparesdesk-api/internal/domain/repository"
	"github.com/sparesdesk/sparesdesk-api/pkg/apperror"
	"github.com/sparesdesk/sparesdesk-api/pkg/pagination"
)

func TestCreateProductAssignsIncreasingIDs(t *testing.T) {
	env := newTestEnv(t)

	first := env.mustCreateProduct(t, "Brake Pad Set", "BP-MS-001", 25, 650, 28)
	second := env.mustCreateProduct(t, "Air Filter", "AF-HI-002", 15, 400, 28)

	assert.Greater(t, second.ID, first.ID)
	assert.Equal(t, int64(65000), first.SellingPrice)
}

func TestCreateProductGeneratesCodeWhenBlank(t *testing.T) {
	env := newTestEnv(t)

	product, err := env.catalog.CreateProduct(context.Background(), &service.CreateProductInput{
		Name:         "Spark Plug",
		SellingPrice: 120,
		GSTRate:      18,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(product.Code, "PROD-"))
}

func TestCreateProductValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.catalog.CreateProduct(context.Background(), &service.CreateProductInput{
		Name:    "",
		Stock:   -1,
		GSTRate: 150,
	})
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, 422, appErr.Code)
	assert.Len(t, appErr.Errors, 3)
}

func TestCreateProductDuplicateCodeConflict(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreateProduct(t, "Brake Pad Set", "BP-MS-001", 25, 650, 28)

	_, err := env.catalog.CreateProduct(context.Background(), &service.CreateProductInput{
		Name:         "Brake Pad Set (rear)",
		Code:         "BP-MS-001",
		SellingPrice: 700,
		GSTRate:      28,
	})
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestCreateProductReusesDeletedCode(t *testing.T) {
	env := newTestEnv(t)
	product := env.mustCreateProduct(t, "Brake Pad Set", "BP-MS-001", 25, 650, 28)
	require.NoError(t, env.catalog.DeleteProduct(context.Background(), product.ID))

	// A deleted product frees its SKU for reuse
	recreated, err := env.catalog.CreateProduct(context.Background(), &service.CreateProductInput{
		Name:         "Brake Pad Set",
		Code:         "BP-MS-001",
		Stock:        10,
		SellingPrice: 700,
		GSTRate:      28,
	})
	require.NoError(t, err)
	assert.Equal(t, "BP-MS-001", recreated.Code)
	assert.Greater(t, recreated.ID, product.ID)
}

func TestUpdateProductPatchesOnlyProvidedFields(t *testing.T) {
	env := newTestEnv(t)
	product := env.mustCreateProduct(t, "Air Filter", "AF-HI-002", 15, 400, 28)

	stock := 40
	updated, err := env.catalog.UpdateProduct(context.Background(), product.ID, &service.UpdateProductInput{
		Stock: &stock,
	})
	require.NoError(t, err)

	assert.Equal(t, 40, updated.Stock)
	assert.Equal(t, "Air Filter", updated.Name)
	assert.Equal(t, "AF-HI-002", updated.Code)
	assert.Equal(t, int64(40000), updated.SellingPrice)
}

func TestUpdateProductRejectsInvalidPatch(t *testing.T) {
	env := newTestEnv(t)
	product := env.mustCreateProduct(t, "Oil Filter", "OF-TN-003", 30, 300, 28)

	badRate := 101
	_, err := env.catalog.UpdateProduct(context.Background(), product.ID, &service.UpdateProductInput{
		GSTRate: &badRate,
	})
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)

	// Record unchanged
	assert.Equal(t, 30, env.stockOf(t, product.ID))
}

func TestUpdateProductNotFound(t *testing.T) {
	env := newTestEnv(t)

	name := "anything"
	_, err := env.catalog.UpdateProduct(context.Background(), 9999, &service.UpdateProductInput{
		Name: &name,
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestDeleteProductIdempotent(t *testing.T) {
	env := newTestEnv(t)
	product := env.mustCreateProduct(t, "Wiper Blade", "WB-HC-005", 20, 350, 28)

	require.NoError(t, env.catalog.DeleteProduct(context.Background(), product.ID))
	// Second delete of the same id is a no-op, not an error
	require.NoError(t, env.catalog.DeleteProduct(context.Background(), product.ID))

	_, err := env.catalog.GetProduct(context.Background(), product.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestListProductsInsertionOrder(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreateProduct(t, "Wiper Blade", "WB-HC-005", 20, 350, 28)
	env.mustCreateProduct(t, "Air Filter", "AF-HI-002", 15, 400, 28)
	env.mustCreateProduct(t, "Brake Pad Set", "BP-MS-001", 25, 650, 28)

	result, err := env.catalog.ListProducts(context.Background(), &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 10},
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 3)

	assert.Equal(t, "Wiper Blade", result.Items[0].Name)
	assert.Equal(t, "Air Filter", result.Items[1].Name)
	assert.Equal(t, "Brake Pad Set", result.Items[2].Name)
}

func TestListProductsSearch(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreateProduct(t, "Brake Pad Set", "BP-MS-001", 25, 650, 28)
	env.mustCreateProduct(t, "Air Filter", "AF-HI-002", 15, 400, 28)

	result, err := env.catalog.ListProducts(context.Background(), &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 10},
		Search:     "brake",
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Brake Pad Set", result.Items[0].Name)
}

func TestGetLowStock(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreateProduct(t, "Brake Pad Set", "BP-MS-001", 25, 650, 28)
	low := env.mustCreateProduct(t, "Headlight Bulb", "HB-MA-004", 2, 150, 18)

	products, err := env.catalog.GetLowStock(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, low.ID, products[0].ID)
}
