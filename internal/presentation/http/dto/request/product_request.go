package request

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name          string  `json:"name" binding:"required,min=2,max=255"`
	Brand         string  `json:"brand" binding:"omitempty,max=255"`
	Code          string  `json:"code" binding:"omitempty,max=100"`
	HSNCode       string  `json:"hsn_code" binding:"omitempty,max=20"`
	Stock         int     `json:"stock" binding:"min=0"`
	PurchasePrice float64 `json:"purchase_price" binding:"min=0"`
	SellingPrice  float64 `json:"selling_price" binding:"min=0"`
	GSTRate       int     `json:"gst_rate" binding:"min=0,max=100"`
}

// UpdateProductRequest represents a product patch; absent fields are left
// untouched
type UpdateProductRequest struct {
	Name          *string  `json:"name" binding:"omitempty,min=2,max=255"`
	Brand         *string  `json:"brand" binding:"omitempty,max=255"`
	Code          *string  `json:"code" binding:"omitempty,min=1,max=100"`
	HSNCode       *string  `json:"hsn_code" binding:"omitempty,max=20"`
	Stock         *int     `json:"stock" binding:"omitempty,min=0"`
	PurchasePrice *float64 `json:"purchase_price" binding:"omitempty,min=0"`
	SellingPrice  *float64 `json:"selling_price" binding:"omitempty,min=0"`
	GSTRate       *int     `json:"gst_rate" binding:"omitempty,min=0,max=100"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search  string `form:"search"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
