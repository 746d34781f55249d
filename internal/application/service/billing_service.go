package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sparesdesk/sparesdesk-api/internal/domain/entity"
	"github.com/sparesdesk/sparesdesk-api/internal/domain/repository"
	"github.com/sparesdesk/sparesdesk-api/pkg/apperror"
	"github.com/sparesdesk/sparesdesk-api/pkg/pagination"
)

// BillingService orchestrates checkout: it prices the cart, draws an invoice
// number, and commits the invoice together with the matching stock
// decrements.
type BillingService struct {
	productRepo  repository.ProductRepository
	invoiceRepo  repository.InvoiceRepository
	sequenceRepo repository.SequenceRepository

	invoicePrefix   string
	defaultCustomer string
}

// NewBillingService creates a new billing service
func NewBillingService(
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
	sequenceRepo repository.SequenceRepository,
	invoicePrefix string,
	defaultCustomer string,
) *BillingService {
	if invoicePrefix == "" {
		invoicePrefix = "INV"
	}
	if defaultCustomer == "" {
		defaultCustomer = "Walk-in Customer"
	}
	return &BillingService{
		productRepo:     productRepo,
		invoiceRepo:     invoiceRepo,
		sequenceRepo:    sequenceRepo,
		invoicePrefix:   invoicePrefix,
		defaultCustomer: defaultCustomer,
	}
}

// CartLineInput is one cart line at checkout. Price and rate are the values
// shown to the customer when the line was added; they are deliberately not
// re-read from the store, so editing a product mid-sale cannot change an
// in-progress cart.
type CartLineInput struct {
	ProductID uint
	Quantity  int
	UnitPrice float64 // Decimal rupees, inclusive of GST
	GSTRate   int
}

// CheckoutInput represents a checkout request
type CheckoutInput struct {
	CustomerName  string
	CustomerPhone string
	Items         []CartLineInput
}

// Checkout turns a cart into a committed invoice.
//
// The cart is validated first (non-empty, positive quantities, every product
// exists) with no side effects on failure. Totals come from the cart's price
// snapshots. The invoice number is drawn from the per-period sequence before
// anything is written, so an attempt that fails later burns its number and
// the sequence never repeats. Stock is then decremented atomically across all
// lines; a line whose stock cannot cover the sale aborts the whole checkout
// before any invoice exists. If the invoice write itself fails the decrements
// are rolled back by a compensating increment.
func (s *BillingService) Checkout(ctx context.Context, input *CheckoutInput) (*entity.Invoice, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "items", Message: "cart cannot be empty"},
		})
	}

	var fieldErrs []apperror.FieldError
	productIDs := make([]uint, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			fieldErrs = append(fieldErrs, apperror.FieldError{
				Field: "quantity", Message: fmt.Sprintf("quantity for product %d must be positive", item.ProductID),
			})
		}
		if item.UnitPrice < 0 {
			fieldErrs = append(fieldErrs, apperror.FieldError{
				Field: "unit_price", Message: fmt.Sprintf("unit_price for product %d cannot be negative", item.ProductID),
			})
		}
		if item.GSTRate < 0 || item.GSTRate > 100 {
			fieldErrs = append(fieldErrs, apperror.FieldError{
				Field: "gst_rate", Message: fmt.Sprintf("gst_rate for product %d must be between 0 and 100", item.ProductID),
			})
		}
		productIDs = append(productIDs, item.ProductID)
	}
	if len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uint]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}
	for _, item := range input.Items {
		if _, exists := productMap[item.ProductID]; !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %d", item.ProductID))
		}
	}

	// Price the cart from its snapshots
	taxLines := make([]TaxLine, len(input.Items))
	items := make([]entity.InvoiceItem, len(input.Items))
	stockDecrements := make(map[uint]int, len(input.Items))
	for i, item := range input.Items {
		product := productMap[item.ProductID]
		unitPrice := entity.PaiseFromDecimal(item.UnitPrice)

		taxLines[i] = TaxLine{Quantity: item.Quantity, UnitPrice: unitPrice, GSTRate: item.GSTRate}
		items[i] = entity.InvoiceItem{
			ProductID: product.ID,
			Name:      product.Name,
			Code:      product.Code,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
			GSTRate:   item.GSTRate,
			Amount:    taxLines[i].Gross(),
		}
		stockDecrements[product.ID] += item.Quantity
	}
	totals := ComputeTotals(taxLines)

	// Reserve the invoice number
	period := time.Now().Format("2006")
	seq, err := s.sequenceRepo.Next(ctx, period)
	if err != nil {
		return nil, err
	}
	invoiceNo := fmt.Sprintf("%s-%s-%04d", s.invoicePrefix, period, seq)

	// Decrement stock before persisting; all lines succeed or none do
	failedIDs, err := s.productRepo.AtomicDecrementBatch(ctx, stockDecrements)
	if err != nil {
		return nil, err
	}
	if len(failedIDs) > 0 {
		names := make([]string, 0, len(failedIDs))
		for _, id := range failedIDs {
			if product, exists := productMap[id]; exists {
				names = append(names, product.Name)
			}
		}
		return nil, apperror.NewInsufficientStockError(names)
	}

	customerName := input.CustomerName
	if customerName == "" {
		customerName = s.defaultCustomer
	}
	customerPhone := input.CustomerPhone
	if customerPhone == "" {
		customerPhone = "-"
	}

	invoice := &entity.Invoice{
		InvoiceNo:     invoiceNo,
		CustomerName:  customerName,
		CustomerPhone: customerPhone,
		Items:         items,
		Subtotal:      totals.Subtotal,
		GSTAmount:     totals.GSTAmount,
		GrandTotal:    totals.GrandTotal,
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		// Stock was already decremented; restore it so the failed attempt
		// leaves no trace beyond the burned invoice number
		if restoreErr := s.productRepo.AtomicIncrementBatch(ctx, stockDecrements); restoreErr != nil {
			log.Printf("Failed to restore stock after invoice write failure: %v", restoreErr)
		}
		return nil, err
	}

	return s.invoiceRepo.GetByID(ctx, invoice.ID)
}

// GetInvoice retrieves an invoice by ID
func (s *BillingService) GetInvoice(ctx context.Context, id uint) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices lists invoices, newest first
func (s *BillingService) ListInvoices(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}
