package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sparesdesk/sparesdesk-api/internal/application/service"
)

func TestComputeTotalsBacksTaxOutOfInclusivePrice(t *testing.T) {
	// Two brake pad sets at Rs 650.00 inclusive, 28% GST:
	// gross 1300.00, embedded tax 1300 * 28/128 = 284.375 -> 284.38
	totals := service.ComputeTotals([]service.TaxLine{
		{Quantity: 2, UnitPrice: 65000, GSTRate: 28},
	})

	assert.Equal(t, int64(130000), totals.GrandTotal)
	assert.Equal(t, int64(28438), totals.GSTAmount)
	assert.Equal(t, int64(101562), totals.Subtotal)
	assert.Equal(t, totals.GrandTotal, totals.Subtotal+totals.GSTAmount)
}

func TestComputeTotalsZeroRate(t *testing.T) {
	totals := service.ComputeTotals([]service.TaxLine{
		{Quantity: 3, UnitPrice: 10000, GSTRate: 0},
	})

	assert.Equal(t, int64(30000), totals.GrandTotal)
	assert.Equal(t, int64(0), totals.GSTAmount)
	assert.Equal(t, int64(30000), totals.Subtotal)
}

func TestComputeTotalsEmptyCart(t *testing.T) {
	totals := service.ComputeTotals(nil)

	assert.Equal(t, int64(0), totals.GrandTotal)
	assert.Equal(t, int64(0), totals.GSTAmount)
	assert.Equal(t, int64(0), totals.Subtotal)
}

func TestComputeTotalsMixedRatesReconcile(t *testing.T) {
	lines := []service.TaxLine{
		{Quantity: 2, UnitPrice: 65000, GSTRate: 28},
		{Quantity: 1, UnitPrice: 15000, GSTRate: 18},
		{Quantity: 5, UnitPrice: 9999, GSTRate: 12},
		{Quantity: 1, UnitPrice: 50, GSTRate: 5},
		{Quantity: 4, UnitPrice: 12500, GSTRate: 0},
	}

	totals := service.ComputeTotals(lines)

	var grand int64
	for _, l := range lines {
		grand += l.Gross()
	}
	assert.Equal(t, grand, totals.GrandTotal)
	assert.Equal(t, totals.GrandTotal, totals.Subtotal+totals.GSTAmount)
	assert.GreaterOrEqual(t, totals.Subtotal, int64(0))
	assert.GreaterOrEqual(t, totals.GSTAmount, int64(0))
}

func TestTaxLineRoundTrip(t *testing.T) {
	// For every line, taxable + tax must equal gross within one paisa
	for rate := 0; rate <= 100; rate += 7 {
		line := service.TaxLine{Quantity: 3, UnitPrice: 33333, GSTRate: rate}
		gross := float64(line.Gross())
		tax := line.Tax()
		taxable := gross - tax
		assert.InDelta(t, gross, taxable+tax, 1.0, "rate %d", rate)
	}
}
