package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sparesdesk/sparesdesk-api/internal/application/service"
	"github.com/sparesdesk/sparesdesk-api/internal/presentation/http/dto/request"
	"github.com/sparesdesk/sparesdesk-api/internal/presentation/http/dto/response"
	"github.com/sparesdesk/sparesdesk-api/pkg/pagination"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	billingService *service.BillingService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(billingService *service.BillingService) *InvoiceHandler {
	return &InvoiceHandler{billingService: billingService}
}

// Checkout handles turning a cart into an invoice
func (h *InvoiceHandler) Checkout(c *gin.Context) {
	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	items := make([]service.CartLineInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.CartLineInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			GSTRate:   item.GSTRate,
		}
	}

	invoice, err := h.billingService.Checkout(c.Request.Context(), &service.CheckoutInput{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Items:         items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

// Get handles getting a single invoice
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	invoice, err := h.billingService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// List handles listing invoices, newest first
func (h *InvoiceHandler) List(c *gin.Context) {
	var filter request.InvoiceFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &pagination.PaginationParams{
		Page:    filter.Page,
		PerPage: filter.PerPage,
	}

	result, err := h.billingService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}
