package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/statlake/pitchload/internal/domain/event"
	"github.com/statlake/pitchload/internal/domain/match"
	"github.com/statlake/pitchload/internal/domain/minutes"
	"github.com/statlake/pitchload/internal/domain/stats"
	"github.com/statlake/pitchload/internal/platform/logging"
)

// FeatureService tallies per-player match stats from the flat event stream
// and joins them with reconstructed minutes into per-90 feature rows.
type FeatureService struct {
	source matchEventReader
	repo   stats.Repository
	logger *logging.Logger
}

func NewFeatureService(source matchEventReader, repo stats.Repository, logger *logging.Logger) *FeatureService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &FeatureService{source: source, repo: repo, logger: logger}
}

// FeatureResult summarizes one feature run.
type FeatureResult struct {
	StatRows    int
	FeatureRows int
	NoStatRows  int
}

type playerMatchKey struct {
	matchID  int64
	playerID int64
}

// Run re-reads each match's events so only one match sits decoded in memory
// at a time, replaces the stats table, then builds one feature row per
// playing interval. Intervals without any attributed events keep zero
// tallies and zero rates.
func (s *FeatureService) Run(
	ctx context.Context,
	matches []match.Match,
	intervals []minutes.PlayingInterval,
) ([]stats.PlayerMatchFeature, FeatureResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeatureService.Run")
	defer span.End()

	if len(intervals) == 0 {
		return nil, FeatureResult{}, fmt.Errorf("%w: no playing intervals", ErrInvalidInput)
	}

	dates := make(map[int64]time.Time, len(matches))
	acc := stats.NewAccumulator()
	for _, m := range matches {
		dates[m.MatchID] = m.Date
		if !m.HasEvents {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, FeatureResult{}, err
		}

		events, err := s.source.ReadMatchEvents(m.MatchID)
		if err != nil {
			return nil, FeatureResult{}, fmt.Errorf("read events for match %d: %w", m.MatchID, err)
		}
		acc.Add(event.Flatten(event.MatchKey(m.Key()), events))
	}

	statRows := acc.Rows()
	if err := s.repo.ReplaceStats(ctx, statRows); err != nil {
		return nil, FeatureResult{}, fmt.Errorf("replace stats table: %w", err)
	}

	index := make(map[playerMatchKey]*stats.PlayerMatchStat, len(statRows))
	for i := range statRows {
		row := &statRows[i]
		index[playerMatchKey{matchID: row.MatchID, playerID: row.PlayerID}] = row
	}

	result := FeatureResult{StatRows: len(statRows)}
	features := make([]stats.PlayerMatchFeature, 0, len(intervals))
	for _, itv := range intervals {
		stat := index[playerMatchKey{matchID: itv.MatchID, playerID: itv.PlayerID}]
		if stat == nil {
			result.NoStatRows++
		}
		features = append(features, stats.BuildFeature(itv, stat, dates[itv.MatchID]))
	}
	result.FeatureRows = len(features)

	if err := s.repo.ReplaceFeatures(ctx, features); err != nil {
		return nil, FeatureResult{}, fmt.Errorf("replace features table: %w", err)
	}

	s.logger.InfoContext(ctx, "feature run finished",
		"stat_rows", result.StatRows,
		"feature_rows", result.FeatureRows,
		"intervals_without_stats", result.NoStatRows,
	)

	return features, result, nil
}
