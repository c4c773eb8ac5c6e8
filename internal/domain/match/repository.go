package match

import "context"

type Repository interface {
	// ReplaceAll swaps the whole registry in one transaction; reruns are
	// idempotent because nothing is ever appended.
	ReplaceAll(ctx context.Context, rows []Match) error
	Count(ctx context.Context) (int64, error)
}
