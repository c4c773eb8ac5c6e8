package minutes

import "context"

type Repository interface {
	ReplaceAll(ctx context.Context, rows []PlayingInterval) error
	// MinutesRange reports min/max/avg of minutes played for run summaries.
	MinutesRange(ctx context.Context) (min, max, avg float64, err error)
}
