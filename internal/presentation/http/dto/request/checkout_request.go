package request

// CheckoutItemRequest is one cart line. Price and GST rate are the snapshot
// the cart was built with, not live product values.
type CheckoutItemRequest struct {
	ProductID uint    `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" binding:"min=0"`
	GSTRate   int     `json:"gst_rate" binding:"min=0,max=100"`
}

// CheckoutRequest represents a checkout (invoice creation) request
type CheckoutRequest struct {
	CustomerName  string                `json:"customer_name" binding:"omitempty,max=255"`
	CustomerPhone string                `json:"customer_phone" binding:"omitempty,max=50"`
	Items         []CheckoutItemRequest `json:"items" binding:"required,min=1,dive"`
}

// InvoiceFilterRequest represents invoice list parameters
type InvoiceFilterRequest struct {
	Page    int `form:"page"`
	PerPage int `form:"per_page"`
}
