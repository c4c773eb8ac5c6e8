package stats

import "context"

type Repository interface {
	ReplaceStats(ctx context.Context, rows []PlayerMatchStat) error
	ReplaceFeatures(ctx context.Context, rows []PlayerMatchFeature) error
}
