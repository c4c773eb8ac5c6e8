package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/sourcegraph/conc/pool"

	"github.com/statlake/pitchload/internal/domain/risk"
	"github.com/statlake/pitchload/internal/domain/rolling"
	"github.com/statlake/pitchload/internal/domain/stats"
	"github.com/statlake/pitchload/internal/domain/workload"
	"github.com/statlake/pitchload/internal/platform/logging"
)

// WorkloadService computes rolling load and form windows over the feature
// rows, derives the acute:chronic ratio and assembles the modeling datasets.
type WorkloadService struct {
	repo    workload.Repository
	logger  *logging.Logger
	scheme  rolling.Scheme
	variant risk.Variant
	workers int
}

func NewWorkloadService(
	repo workload.Repository,
	logger *logging.Logger,
	scheme rolling.Scheme,
	variant risk.Variant,
	workers int,
) *WorkloadService {
	if logger == nil {
		logger = logging.NewNop()
	}
	if !scheme.Valid() {
		scheme = rolling.SchemePlayerSeason
	}
	if !variant.Valid() {
		variant = risk.VariantCoupled
	}
	if workers <= 0 {
		workers = 1
	}
	return &WorkloadService{
		repo:    repo,
		logger:  logger,
		scheme:  scheme,
		variant: variant,
		workers: workers,
	}
}

// WorkloadResult summarizes one workload run.
type WorkloadResult struct {
	LoadRows       int
	FormRows       int
	ACWRRows       int
	DatasetRows    int
	PredictiveRows int
	HighRiskRows   int
	MinACWR        float64
	MaxACWR        float64
	AvgACWR        float64
}

// rowWindows carries every per-row window value, indexed by the feature
// row's position so partition workers write to disjoint slots.
type rowWindows struct {
	minutes7d    []float64
	minutes14d   []float64
	minutes28d   []float64
	minutesLast5 []float64
	xgLast5      []float64
	shotsLast5   []float64
	progLast5    []float64
	trendXG      []*float64
	acwr         []*float64
}

// Run computes all windows in memory and replaces the five output tables.
// Load and risk windows follow the configured partition scheme; form
// windows always restart at season boundaries, as does the next-match
// label shift.
func (s *WorkloadService) Run(ctx context.Context, features []stats.PlayerMatchFeature) (WorkloadResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WorkloadService.Run")
	defer span.End()

	if len(features) == 0 {
		return WorkloadResult{}, fmt.Errorf("%w: no feature rows", ErrInvalidInput)
	}

	windows := newRowWindows(len(features))

	loadParts := partitionIndices(features, s.scheme)
	formParts := partitionIndices(features, rolling.SchemePlayerSeason)

	workers := pool.New().WithMaxGoroutines(s.workers)
	for _, indices := range loadParts {
		indices := indices
		workers.Go(func() {
			s.computeLoadWindows(features, indices, windows)
		})
	}
	for _, indices := range formParts {
		indices := indices
		workers.Go(func() {
			computeFormWindows(features, indices, windows)
		})
	}
	workers.Wait()

	loadRows := make([]workload.LoadFeature, 0, len(features))
	formRows := make([]workload.FormFeature, 0, len(features))
	acwrRows := make([]workload.ACWRRow, 0, len(features))
	datasetRows := make([]workload.DatasetRow, 0, len(features))
	highRisk := 0
	for i, f := range features {
		loadRows = append(loadRows, workload.LoadFeature{
			PlayerID:       f.PlayerID,
			CompetitionID:  f.CompetitionID,
			SeasonID:       f.SeasonID,
			MatchID:        f.MatchID,
			MatchDate:      f.MatchDate,
			Minutes:        f.Minutes,
			MinutesLast7d:  windows.minutes7d[i],
			MinutesLast14d: windows.minutes14d[i],
			MinutesLast28d: windows.minutes28d[i],
			MinutesLast5:   windows.minutesLast5[i],
		})
		formRows = append(formRows, workload.FormFeature{
			PlayerID:         f.PlayerID,
			CompetitionID:    f.CompetitionID,
			SeasonID:         f.SeasonID,
			MatchID:          f.MatchID,
			MatchDate:        f.MatchDate,
			XG:               f.XG,
			Shots:            f.Shots,
			ProgressiveX:     f.ProgressiveX,
			XGLast5:          windows.xgLast5[i],
			ShotsLast5:       windows.shotsLast5[i],
			ProgressiveLast5: windows.progLast5[i],
			TrendXG3v3:       windows.trendXG[i],
		})
		acwrRows = append(acwrRows, workload.ACWRRow{
			PlayerID:       f.PlayerID,
			CompetitionID:  f.CompetitionID,
			SeasonID:       f.SeasonID,
			MatchID:        f.MatchID,
			MatchDate:      f.MatchDate,
			Minutes:        f.Minutes,
			MinutesLast7d:  windows.minutes7d[i],
			MinutesLast28d: windows.minutes28d[i],
			ACWR:           windows.acwr[i],
		})

		flagged := risk.HighRisk(windows.acwr[i])
		if flagged {
			highRisk++
		}
		datasetRows = append(datasetRows, workload.DatasetRow{
			PlayerID:         f.PlayerID,
			CompetitionID:    f.CompetitionID,
			SeasonID:         f.SeasonID,
			MatchID:          f.MatchID,
			MatchDate:        f.MatchDate,
			Team:             f.Team,
			Minutes:          f.Minutes,
			ShotsPer90:       f.ShotsPer90,
			XGPer90:          f.XGPer90,
			PassesPer90:      f.PassesPer90,
			CarriesPer90:     f.CarriesPer90,
			ProgressivePer90: f.ProgressivePer90,
			XGLast5:          windows.xgLast5[i],
			ShotsLast5:       windows.shotsLast5[i],
			ProgressiveLast5: windows.progLast5[i],
			TrendXG3v3:       windows.trendXG[i],
			MinutesLast7d:    windows.minutes7d[i],
			MinutesLast14d:   windows.minutes14d[i],
			MinutesLast28d:   windows.minutes28d[i],
			MinutesLast5:     windows.minutesLast5[i],
			ACWR:             windows.acwr[i],
			HighRisk:         flagged,
		})
	}

	predictiveRows := buildPredictive(datasetRows)

	if err := s.repo.ReplaceLoadFeatures(ctx, loadRows); err != nil {
		return WorkloadResult{}, fmt.Errorf("replace load features: %w", err)
	}
	if err := s.repo.ReplaceFormFeatures(ctx, formRows); err != nil {
		return WorkloadResult{}, fmt.Errorf("replace form features: %w", err)
	}
	if err := s.repo.ReplaceACWR(ctx, acwrRows); err != nil {
		return WorkloadResult{}, fmt.Errorf("replace acwr: %w", err)
	}
	if err := s.repo.ReplaceDataset(ctx, datasetRows); err != nil {
		return WorkloadResult{}, fmt.Errorf("replace dataset: %w", err)
	}
	if err := s.repo.ReplacePredictiveDataset(ctx, predictiveRows); err != nil {
		return WorkloadResult{}, fmt.Errorf("replace predictive dataset: %w", err)
	}

	result := WorkloadResult{
		LoadRows:       len(loadRows),
		FormRows:       len(formRows),
		ACWRRows:       len(acwrRows),
		DatasetRows:    len(datasetRows),
		PredictiveRows: len(predictiveRows),
		HighRiskRows:   highRisk,
	}

	var err error
	result.MinACWR, result.MaxACWR, result.AvgACWR, err = s.repo.ACWRRange(ctx)
	if err != nil {
		return WorkloadResult{}, fmt.Errorf("summarize acwr: %w", err)
	}

	s.logger.InfoContext(ctx, "workload run finished",
		"scheme", string(s.scheme),
		"variant", string(s.variant),
		"dataset_rows", result.DatasetRows,
		"predictive_rows", result.PredictiveRows,
		"high_risk_rows", result.HighRiskRows,
		"min_acwr", result.MinACWR,
		"max_acwr", result.MaxACWR,
		"avg_acwr", result.AvgACWR,
	)

	return result, nil
}

func newRowWindows(n int) *rowWindows {
	return &rowWindows{
		minutes7d:    make([]float64, n),
		minutes14d:   make([]float64, n),
		minutes28d:   make([]float64, n),
		minutesLast5: make([]float64, n),
		xgLast5:      make([]float64, n),
		shotsLast5:   make([]float64, n),
		progLast5:    make([]float64, n),
		trendXG:      make([]*float64, n),
		acwr:         make([]*float64, n),
	}
}

// partitionIndices groups feature row positions by partition key, each group
// sorted by date with ingestion order breaking ties.
func partitionIndices(features []stats.PlayerMatchFeature, scheme rolling.Scheme) map[rolling.PartitionKey][]int {
	out := make(map[rolling.PartitionKey][]int)
	for i, f := range features {
		key := rolling.Key(scheme, f.PlayerID, f.SeasonID)
		out[key] = append(out[key], i)
	}
	for _, indices := range out {
		sort.SliceStable(indices, func(a, b int) bool {
			fa, fb := features[indices[a]], features[indices[b]]
			if !fa.MatchDate.Equal(fb.MatchDate) {
				return fa.MatchDate.Before(fb.MatchDate)
			}
			return indices[a] < indices[b]
		})
	}
	return out
}

func (s *WorkloadService) computeLoadWindows(features []stats.PlayerMatchFeature, indices []int, windows *rowWindows) {
	rows := make([]rolling.Row, len(indices))
	for i, idx := range indices {
		rows[i] = rolling.Row{
			Date:  features[idx].MatchDate,
			Order: i,
			Value: float64(features[idx].Minutes),
		}
	}

	sum7 := rolling.CalendarSum(rows, 7)
	sum14 := rolling.CalendarSum(rows, 14)
	sum28 := rolling.CalendarSum(rows, 28)
	last5 := rolling.RowSum(rows, 5)

	for i, idx := range indices {
		windows.minutes7d[idx] = sum7[i]
		windows.minutes14d[idx] = sum14[i]
		windows.minutes28d[idx] = sum28[i]
		windows.minutesLast5[idx] = last5[i]
		windows.acwr[idx] = risk.ACWR(sum7[i], sum28[i], s.variant)
	}
}

func computeFormWindows(features []stats.PlayerMatchFeature, indices []int, windows *rowWindows) {
	xg := make([]rolling.Row, len(indices))
	shots := make([]rolling.Row, len(indices))
	prog := make([]rolling.Row, len(indices))
	for i, idx := range indices {
		f := features[idx]
		xg[i] = rolling.Row{Date: f.MatchDate, Order: i, Value: f.XG}
		shots[i] = rolling.Row{Date: f.MatchDate, Order: i, Value: float64(f.Shots)}
		prog[i] = rolling.Row{Date: f.MatchDate, Order: i, Value: f.ProgressiveX}
	}

	xgLast5 := rolling.RowSum(xg, 5)
	shotsLast5 := rolling.RowSum(shots, 5)
	progLast5 := rolling.RowSum(prog, 5)
	trend := rolling.Trend3v3(xg)

	for i, idx := range indices {
		windows.xgLast5[idx] = xgLast5[i]
		windows.shotsLast5[idx] = shotsLast5[i]
		windows.progLast5[idx] = progLast5[i]
		windows.trendXG[idx] = trend[i]
	}
}

// buildPredictive shifts the high-risk label one match forward inside each
// (player, season) sequence. The final match of a sequence has no next
// label and is left out entirely.
func buildPredictive(dataset []workload.DatasetRow) []workload.PredictiveRow {
	type seqKey struct {
		playerID int64
		seasonID int64
	}
	groups := make(map[seqKey][]int)
	for i, row := range dataset {
		key := seqKey{playerID: row.PlayerID, seasonID: row.SeasonID}
		groups[key] = append(groups[key], i)
	}

	keys := make([]seqKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].playerID != keys[j].playerID {
			return keys[i].playerID < keys[j].playerID
		}
		return keys[i].seasonID < keys[j].seasonID
	})

	out := make([]workload.PredictiveRow, 0, len(dataset))
	for _, key := range keys {
		indices := groups[key]
		sort.SliceStable(indices, func(a, b int) bool {
			ra, rb := dataset[indices[a]], dataset[indices[b]]
			if !ra.MatchDate.Equal(rb.MatchDate) {
				return ra.MatchDate.Before(rb.MatchDate)
			}
			return indices[a] < indices[b]
		})

		labels := make([]bool, len(indices))
		for i, idx := range indices {
			labels[i] = dataset[idx].HighRisk
		}
		next := risk.ShiftNextLabel(labels)

		for i, idx := range indices {
			if next[i] == nil {
				continue
			}
			out = append(out, workload.PredictiveRow{
				DatasetRow:   dataset[idx],
				HighRiskNext: *next[i],
			})
		}
	}
	return out
}
