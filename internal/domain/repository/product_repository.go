package repository

import (
	"context"

	"github.com/sparesdesk/sparesdesk-api/internal/domain/entity"
	"github.com/sparesdesk/sparesdesk-api/pkg/pagination"
)

// ProductFilterParams holds filtering parameters for listing products
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
}

// ProductRepository defines product persistence. List returns products in
// insertion order (ascending id).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uint) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []uint) ([]entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	GetLowStock(ctx context.Context, threshold int) ([]entity.Product, error)

	// AtomicDecrementBatch decrements stock for every product in one
	// transaction, guarded by stock >= amount. It returns the ids whose
	// guard failed; any failure rolls back the whole batch.
	AtomicDecrementBatch(ctx context.Context, decrements map[uint]int) ([]uint, error)
	// AtomicIncrementBatch restores stock (compensation for a checkout whose
	// invoice write failed after stock was already decremented).
	AtomicIncrementBatch(ctx context.Context, increments map[uint]int) error
}
