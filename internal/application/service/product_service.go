package service

import (
	"context"

	"github.com/sparesdesk/sparesdesk-api/internal/domain/entity"
	"github.com/sparesdesk/sparesdesk-api/internal/domain/repository"
	"github.com/sparesdesk/sparesdesk-api/pkg/apperror"
	"github.com/sparesdesk/sparesdesk-api/pkg/pagination"
	"github.com/sparesdesk/sparesdesk-api/pkg/utils"
)

// ProductService handles product-related operations
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProductInput represents the create product input. Prices are decimal
// rupees as entered by the operator.
type CreateProductInput struct {
	Name          string
	Brand         string
	Code          string
	HSNCode       string
	Stock         int
	PurchasePrice float64
	SellingPrice  float64
	GSTRate       int
}

// UpdateProductInput is an explicit patch: only non-nil fields are applied,
// each validated on its own. There is no generic field merge.
type UpdateProductInput struct {
	Name          *string
	Brand         *string
	Code          *string
	HSNCode       *string
	Stock         *int
	PurchasePrice *float64
	SellingPrice  *float64
	GSTRate       *int
}

// CreateProduct validates and stores a new product. The code (SKU) is
// auto-generated when blank and must not collide with an existing product.
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	var fieldErrs []apperror.FieldError
	if input.Name == "" {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "name", Message: "name is required"})
	}
	if input.Stock < 0 {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "stock", Message: "stock cannot be negative"})
	}
	if input.GSTRate < 0 || input.GSTRate > 100 {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "gst_rate", Message: "gst_rate must be between 0 and 100"})
	}
	if input.PurchasePrice < 0 {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "purchase_price", Message: "purchase_price cannot be negative"})
	}
	if input.SellingPrice < 0 {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "selling_price", Message: "selling_price cannot be negative"})
	}
	if len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	code := input.Code
	if code == "" {
		code = utils.GenerateProductCode()
	}

	existing, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Product code already exists")
	}

	product := &entity.Product{
		Name:    input.Name,
		Brand:   input.Brand,
		Code:    code,
		HSNCode: input.HSNCode,
		Stock:   input.Stock,
		GSTRate: input.GSTRate,
	}
	product.SetPurchasePriceFromDecimal(input.PurchasePrice)
	product.SetSellingPriceFromDecimal(input.SellingPrice)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uint) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProduct applies a field-by-field patch to an existing product
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	var fieldErrs []apperror.FieldError
	if input.Name != nil {
		if *input.Name == "" {
			fieldErrs = append(fieldErrs, apperror.FieldError{Field: "name", Message: "name cannot be empty"})
		} else {
			product.Name = *input.Name
		}
	}
	if input.Brand != nil {
		product.Brand = *input.Brand
	}
	if input.Code != nil && *input.Code != product.Code {
		if *input.Code == "" {
			fieldErrs = append(fieldErrs, apperror.FieldError{Field: "code", Message: "code cannot be empty"})
		} else {
			existing, err := s.productRepo.GetByCode(ctx, *input.Code)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, apperror.NewConflictError("Product code already exists")
			}
			product.Code = *input.Code
		}
	}
	if input.HSNCode != nil {
		product.HSNCode = *input.HSNCode
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			fieldErrs = append(fieldErrs, apperror.FieldError{Field: "stock", Message: "stock cannot be negative"})
		} else {
			product.Stock = *input.Stock
		}
	}
	if input.PurchasePrice != nil {
		if *input.PurchasePrice < 0 {
			fieldErrs = append(fieldErrs, apperror.FieldError{Field: "purchase_price", Message: "purchase_price cannot be negative"})
		} else {
			product.SetPurchasePriceFromDecimal(*input.PurchasePrice)
		}
	}
	if input.SellingPrice != nil {
		if *input.SellingPrice < 0 {
			fieldErrs = append(fieldErrs, apperror.FieldError{Field: "selling_price", Message: "selling_price cannot be negative"})
		} else {
			product.SetSellingPriceFromDecimal(*input.SellingPrice)
		}
	}
	if input.GSTRate != nil {
		if *input.GSTRate < 0 || *input.GSTRate > 100 {
			fieldErrs = append(fieldErrs, apperror.FieldError{Field: "gst_rate", Message: "gst_rate must be between 0 and 100"})
		} else {
			product.GSTRate = *input.GSTRate
		}
	}
	if len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, id)
}

// DeleteProduct removes a product. Deleting a product that does not exist is
// not an error.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	return s.productRepo.Delete(ctx, id)
}

// ListProducts lists products in insertion order
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// GetLowStock returns products at or below the stock alert threshold
func (s *ProductService) GetLowStock(ctx context.Context, threshold int) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx, threshold)
}
