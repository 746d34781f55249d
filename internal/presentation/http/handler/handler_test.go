package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sparesdesk/sparesdesk-api/internal/application/service"
	"github.com/sparesdesk/sparesdesk-api/internal/config"
	"github.com/sparesdesk/sparesdesk-api/internal/infrastructure/database"
	"github.com/sparesdesk/sparesdesk-api/internal/infrastructure/repository"
	"github.com/sparesdesk/sparesdesk-api/internal/presentation/http/handler"
	"github.com/sparesdesk/sparesdesk-api/internal/presentation/http/routes"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewSqliteDB(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	productRepo := repository.NewProductRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	productService := service.NewProductService(productRepo)
	billingService := service.NewBillingService(productRepo, invoiceRepo, sequenceRepo, "INV", "Walk-in Customer")

	cfg := &config.Config{
		App:       config.AppConfig{Name: "sparesdesk-api", Env: "test"},
		Billing:   config.BillingConfig{InvoicePrefix: "INV", DefaultCustomer: "Walk-in Customer", LowStockAlert: 5},
		RateLimit: config.RateLimitConfig{Requests: 1000, Duration: 1},
	}

	return routes.Setup(&routes.Handlers{
		Product: handler.NewProductHandler(productService, cfg.Billing.LowStockAlert),
		Invoice: handler.NewInvoiceHandler(billingService),
	}, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func createProduct(t *testing.T, router *gin.Engine, name, code string, stock int, sellingPrice float64, gstRate int) uint {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/v1/products", gin.H{
		"name":          name,
		"code":          code,
		"stock":         stock,
		"selling_price": sellingPrice,
		"gst_rate":      gstRate,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var product struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &product))
	return product.ID
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestProductLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	id := createProduct(t, router, "Brake Pad Set", "BP-MS-001", 25, 650, 28)

	// Read back: prices are exposed as decimals, paise stay internal
	w := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/products/%d", id), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var product struct {
		Name         string  `json:"name"`
		Code         string  `json:"code"`
		Stock        int     `json:"stock"`
		SellingPrice float64 `json:"selling_price"`
		GSTRate      int     `json:"gst_rate"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &product))
	assert.Equal(t, "Brake Pad Set", product.Name)
	assert.Equal(t, "BP-MS-001", product.Code)
	assert.Equal(t, 25, product.Stock)
	assert.Equal(t, 650.0, product.SellingPrice)
	assert.Equal(t, 28, product.GSTRate)

	// Partial update leaves the other fields alone
	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/v1/products/%d", id), gin.H{"stock": 40}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &product))
	assert.Equal(t, 40, product.Stock)
	assert.Equal(t, 650.0, product.SellingPrice)

	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/products/%d", id), nil, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/products/%d", id), nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductValidationOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/products", gin.H{
		"name": "x",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/products/abc", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	id := createProduct(t, router, "Brake Pad Set", "BP-MS-001", 25, 650, 28)

	w := doJSON(t, router, http.MethodPost, "/api/v1/invoices", gin.H{
		"customer_name":  "Ramesh",
		"customer_phone": "9876543210",
		"items": []gin.H{
			{"product_id": id, "quantity": 2, "unit_price": 650, "gst_rate": 28},
		},
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var invoice struct {
		InvoiceNo  string  `json:"invoice_no"`
		Subtotal   float64 `json:"subtotal"`
		GSTAmount  float64 `json:"gst_amount"`
		GrandTotal float64 `json:"grand_total"`
		Items      []struct {
			Name      string  `json:"name"`
			Quantity  int     `json:"quantity"`
			UnitPrice float64 `json:"unit_price"`
			Amount    float64 `json:"amount"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &invoice))

	period := time.Now().Format("2006")
	assert.Equal(t, fmt.Sprintf("INV-%s-0001", period), invoice.InvoiceNo)
	assert.Equal(t, 1300.0, invoice.GrandTotal)
	assert.Equal(t, 284.38, invoice.GSTAmount)
	assert.Equal(t, 1015.62, invoice.Subtotal)
	require.Len(t, invoice.Items, 1)
	assert.Equal(t, 650.0, invoice.Items[0].UnitPrice)
	assert.Equal(t, 1300.0, invoice.Items[0].Amount)

	// Stock went down on the live product
	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/products/%d", id), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var product struct {
		Stock int `json:"stock"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &product))
	assert.Equal(t, 23, product.Stock)
}

func TestCheckoutEmptyCartOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/invoices", gin.H{
		"items": []gin.H{},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutInsufficientStockOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	id := createProduct(t, router, "Headlight Bulb", "HB-MA-004", 1, 150, 18)

	w := doJSON(t, router, http.MethodPost, "/api/v1/invoices", gin.H{
		"items": []gin.H{
			{"product_id": id, "quantity": 2, "unit_price": 150, "gst_rate": 18},
		},
	}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Headlight Bulb")
}

func TestCheckoutIdempotencyKeyReplaysResponse(t *testing.T) {
	router := newTestRouter(t)
	id := createProduct(t, router, "Air Filter", "AF-HI-002", 10, 400, 28)

	body := gin.H{
		"items": []gin.H{
			{"product_id": id, "quantity": 1, "unit_price": 400, "gst_rate": 28},
		},
	}
	headers := map[string]string{"Idempotency-Key": "cart-7f3a"}

	first := doJSON(t, router, http.MethodPost, "/api/v1/invoices", body, headers)
	require.Equal(t, http.StatusCreated, first.Code)

	second := doJSON(t, router, http.MethodPost, "/api/v1/invoices", body, headers)
	require.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, first.Body.String(), second.Body.String())

	// Only the first submission consumed stock
	w := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/products/%d", id), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var product struct {
		Stock int `json:"stock"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &product))
	assert.Equal(t, 9, product.Stock)

	// A fresh key is a fresh sale
	third := doJSON(t, router, http.MethodPost, "/api/v1/invoices", body, map[string]string{"Idempotency-Key": "cart-9c21"})
	assert.Equal(t, http.StatusCreated, third.Code)
	assert.NotEqual(t, first.Body.String(), third.Body.String())
}

func TestListInvoicesOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	id := createProduct(t, router, "Oil Filter", "OF-TN-003", 10, 300, 28)

	for i := 0; i < 2; i++ {
		w := doJSON(t, router, http.MethodPost, "/api/v1/invoices", gin.H{
			"items": []gin.H{
				{"product_id": id, "quantity": 1, "unit_price": 300, "gst_rate": 28},
			},
		}, nil)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, router, http.MethodGet, "/api/v1/invoices?page=1&per_page=10", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result struct {
		Items []struct {
			InvoiceNo string `json:"invoice_no"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &result))
	require.Len(t, result.Items, 2)

	period := time.Now().Format("2006")
	assert.Equal(t, fmt.Sprintf("INV-%s-0002", period), result.Items[0].InvoiceNo)
	assert.Equal(t, fmt.Sprintf("INV-%s-0001", period), result.Items[1].InvoiceNo)
}

func TestLowStockOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	createProduct(t, router, "Brake Pad Set", "BP-MS-001", 25, 650, 28)
	createProduct(t, router, "Wiper Blade", "WB-HC-005", 2, 350, 28)

	w := doJSON(t, router, http.MethodGet, "/api/v1/products/low-stock", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var products []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Wiper Blade", products[0].Name)
}
