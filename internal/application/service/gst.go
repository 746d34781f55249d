package service

import "math"

// TaxLine is one cart line as seen by the calculator: a quantity at a
// GST-inclusive unit price (paise) with a percentage rate.
type TaxLine struct {
	Quantity  int
	UnitPrice int64 // Paise, inclusive of GST
	GSTRate   int   // Percent, 0-100
}

// TaxTotals is the GST breakdown for a cart, in paise.
// Subtotal + GSTAmount == GrandTotal always holds exactly.
type TaxTotals struct {
	Subtotal   int64
	GSTAmount  int64
	GrandTotal int64
}

// Gross returns the line total (quantity * unit price) in paise
func (l TaxLine) Gross() int64 {
	return int64(l.Quantity) * l.UnitPrice
}

// Tax returns the GST embedded in the line's gross amount, unrounded. The
// selling price already contains the tax, so the gross is (100+rate)% of the
// pre-tax base and the embedded tax is gross * rate / (100 + rate).
func (l TaxLine) Tax() float64 {
	if l.GSTRate <= 0 {
		return 0
	}
	return float64(l.Gross()) * float64(l.GSTRate) / float64(100+l.GSTRate)
}

// ComputeTotals aggregates the GST breakdown across cart lines. Gross amounts
// are exact integer paise; embedded tax is accumulated at full precision and
// rounded to a paisa once, at the end, so per-line rounding error cannot
// compound. The subtotal is derived from the other two, which keeps the
// breakdown reconciling exactly.
func ComputeTotals(lines []TaxLine) TaxTotals {
	var grand int64
	var tax float64

	for _, l := range lines {
		grand += l.Gross()
		tax += l.Tax()
	}

	gst := int64(math.Round(tax))
	return TaxTotals{
		Subtotal:   grand - gst,
		GSTAmount:  gst,
		GrandTotal: grand,
	}
}
