package repository

import (
	"context"

	"github.com/sparesdesk/sparesdesk-api/internal/domain/entity"
	"github.com/sparesdesk/sparesdesk-api/pkg/pagination"
)

// InvoiceRepository defines invoice persistence. Invoices are append-only:
// there is deliberately no update or delete operation.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uint) (*entity.Invoice, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Invoice, int64, error)
	Count(ctx context.Context) (int64, error)
}
