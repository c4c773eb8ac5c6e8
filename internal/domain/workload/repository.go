package workload

import "context"

type Repository interface {
	ReplaceLoadFeatures(ctx context.Context, rows []LoadFeature) error
	ReplaceFormFeatures(ctx context.Context, rows []FormFeature) error
	ReplaceACWR(ctx context.Context, rows []ACWRRow) error
	ReplaceDataset(ctx context.Context, rows []DatasetRow) error
	ReplacePredictiveDataset(ctx context.Context, rows []PredictiveRow) error
	// ACWRRange reports min/max/avg of defined ratios for run summaries.
	ACWRRange(ctx context.Context) (min, max, avg float64, err error)
}
