package repository

import "context"

// SequenceRepository issues invoice sequence numbers scoped to a billing
// period. Next commits its increment in its own transaction, so a number
// handed out to a checkout that later fails is burned, never reissued.
type SequenceRepository interface {
	Next(ctx context.Context, period string) (int64, error)
	Current(ctx context.Context, period string) (int64, error)
}
