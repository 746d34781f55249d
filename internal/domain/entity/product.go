package entity

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Product represents a spare part held in inventory. Prices are stored in
// paise; the selling price is inclusive of GST.
type Product struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Brand         string         `gorm:"size:255" json:"brand"`
	Code          string         `gorm:"size:100;not null;uniqueIndex:idx_products_code,where:deleted_at IS NULL" json:"code"`
	HSNCode       string         `gorm:"column:hsn_code;size:20" json:"hsn_code"`
	Stock         int            `gorm:"default:0" json:"stock"`
	PurchasePrice int64          `gorm:"default:0" json:"-"` // Stored in paise, excluded from JSON
	SellingPrice  int64          `gorm:"default:0" json:"-"` // Stored in paise, excluded from JSON
	GSTRate       int            `gorm:"column:gst_rate;default:0" json:"gst_rate"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// MarshalJSON custom marshaler to convert paise to decimal for API responses
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		PurchasePrice float64 `json:"purchase_price"`
		SellingPrice  float64 `json:"selling_price"`
	}{
		Alias:         Alias(p),
		PurchasePrice: p.GetPurchasePriceDecimal(),
		SellingPrice:  p.GetSellingPriceDecimal(),
	})
}

// GetPurchasePriceDecimal returns the purchase price as a decimal (for display)
func (p *Product) GetPurchasePriceDecimal() float64 {
	return float64(p.PurchasePrice) / 100
}

// GetSellingPriceDecimal returns the selling price as a decimal (for display)
func (p *Product) GetSellingPriceDecimal() float64 {
	return float64(p.SellingPrice) / 100
}

// SetPurchasePriceFromDecimal sets the purchase price from a decimal value
func (p *Product) SetPurchasePriceFromDecimal(price float64) {
	p.PurchasePrice = PaiseFromDecimal(price)
}

// SetSellingPriceFromDecimal sets the selling price from a decimal value
func (p *Product) SetSellingPriceFromDecimal(price float64) {
	p.SellingPrice = PaiseFromDecimal(price)
}
