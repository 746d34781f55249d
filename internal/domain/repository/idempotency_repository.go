package repository

import (
	"context"

	"github.com/sparesdesk/sparesdesk-api/internal/domain/entity"
)

// IdempotencyRepository stores processed request keys with cached responses
type IdempotencyRepository interface {
	GetByKey(ctx context.Context, key string) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, key *entity.IdempotencyKey) error
	DeleteExpired(ctx context.Context) error
}
