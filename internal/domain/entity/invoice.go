package entity

import (
	"encoding/json"
	"math"
	"time"
)

// Invoice is an immutable record of a completed sale. Line items are frozen
// snapshots taken at checkout time; later product edits or deletions do not
// touch them. Invoices have no update or delete operations.
type Invoice struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	InvoiceNo     string        `gorm:"size:100;unique;not null" json:"invoice_no"`
	CustomerName  string        `gorm:"size:255" json:"customer_name"`
	CustomerPhone string        `gorm:"size:50" json:"customer_phone"`
	Items         []InvoiceItem `gorm:"serializer:json" json:"items"`
	Subtotal      int64         `gorm:"not null" json:"-"` // Stored in paise, excluded from JSON
	GSTAmount     int64         `gorm:"column:gst_amount;not null" json:"-"`
	GrandTotal    int64         `gorm:"not null" json:"-"`
	CreatedAt     time.Time     `json:"created_at"`
}

// InvoiceItem captures one sold line: product identity and the price terms it
// was sold under, independent of the live product record.
type InvoiceItem struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"` // Paise, inclusive of GST
	GSTRate   int    `json:"gst_rate"`
	Amount    int64  `json:"amount"` // Paise, quantity * unit price
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// MarshalJSON custom marshaler to convert paise to decimal for API responses
func (i Invoice) MarshalJSON() ([]byte, error) {
	type Alias Invoice
	return json.Marshal(&struct {
		Alias
		Subtotal   float64 `json:"subtotal"`
		GSTAmount  float64 `json:"gst_amount"`
		GrandTotal float64 `json:"grand_total"`
	}{
		Alias:      Alias(i),
		Subtotal:   float64(i.Subtotal) / 100,
		GSTAmount:  float64(i.GSTAmount) / 100,
		GrandTotal: float64(i.GrandTotal) / 100,
	})
}

// MarshalJSON converts item amounts from paise to decimal. Used both for API
// responses and by the database JSON serializer that freezes items onto the
// invoice row.
func (it InvoiceItem) MarshalJSON() ([]byte, error) {
	type Alias InvoiceItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Amount    float64 `json:"amount"`
	}{
		Alias:     Alias(it),
		UnitPrice: float64(it.UnitPrice) / 100,
		Amount:    float64(it.Amount) / 100,
	})
}

// UnmarshalJSON is the inverse of MarshalJSON: decimal amounts read back from
// a stored invoice row are converted to paise.
func (it *InvoiceItem) UnmarshalJSON(data []byte) error {
	type Alias InvoiceItem
	aux := struct {
		*Alias
		UnitPrice float64 `json:"unit_price"`
		Amount    float64 `json:"amount"`
	}{Alias: (*Alias)(it)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	it.UnitPrice = int64(math.Round(aux.UnitPrice * 100))
	it.Amount = int64(math.Round(aux.Amount * 100))
	return nil
}
