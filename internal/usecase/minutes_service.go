package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/statlake/pitchload/internal/domain/event"
	"github.com/statlake/pitchload/internal/domain/match"
	"github.com/statlake/pitchload/internal/domain/minutes"
	"github.com/statlake/pitchload/internal/platform/logging"
)

type matchEventReader interface {
	ReadMatchEvents(matchID int64) ([]event.RawEvent, error)
}

type minutesWriter interface {
	WriteMinutes(part match.Partition, rows []minutes.PlayingInterval) error
	WriteApproxMinutes(part match.Partition, rows []minutes.ApproxMinutes) error
}

// MinutesService reconstructs per-player playing intervals for every match
// in the registry and persists them as the canonical minutes source.
type MinutesService struct {
	source  matchEventReader
	sink    minutesWriter
	repo    minutes.Repository
	logger  *logging.Logger
	workers int
	variant minutes.Source
}

func NewMinutesService(
	source matchEventReader,
	sink minutesWriter,
	repo minutes.Repository,
	logger *logging.Logger,
	workers int,
	variant minutes.Source,
) *MinutesService {
	if logger == nil {
		logger = logging.NewNop()
	}
	if workers <= 0 {
		workers = 1
	}
	if !variant.Valid() {
		variant = minutes.SourceReconstructed
	}
	return &MinutesService{
		source:  source,
		sink:    sink,
		repo:    repo,
		logger:  logger,
		workers: workers,
		variant: variant,
	}
}

// MinutesResult summarizes one minutes run.
type MinutesResult struct {
	MatchesProcessed int
	SkippedNoLineup  int
	Intervals        int
	ClampedIntervals int
	MinMinutes       float64
	MaxMinutes       float64
	AvgMinutes       float64
}

type matchMinutes struct {
	key       match.Key
	intervals []minutes.PlayingInterval
	approx    []minutes.ApproxMinutes
	err       error
}

// Run fans matches out over a worker pool, reassembles the results in
// deterministic match order and replaces the consolidated minutes table.
// Matches with no lineup declaration are skipped and counted, not fatal.
func (s *MinutesService) Run(ctx context.Context, matches []match.Match) ([]minutes.PlayingInterval, MinutesResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MinutesService.Run")
	defer span.End()

	withEvents := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		if m.HasEvents {
			withEvents = append(withEvents, m)
		}
	}
	if len(withEvents) == 0 {
		return nil, MinutesResult{}, ErrEmptyCorpus
	}

	results := make(chan matchMinutes, len(withEvents))

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return nil, MinutesResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, m := range withEvents {
		m := m
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			results <- s.reconstructMatch(m)
		}); err != nil {
			workers.Done()
			return nil, MinutesResult{}, fmt.Errorf("submit match to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	skippedNoLineup := 0
	rows := make([]matchMinutes, 0, len(withEvents))
	for row := range results {
		if row.err != nil {
			if errors.Is(row.err, minutes.ErrNoStartingLineup) {
				skippedNoLineup++
				continue
			}
			return nil, MinutesResult{}, fmt.Errorf("reconstruct match %d: %w", row.key.MatchID, row.err)
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].key, rows[j].key
		if a.CompetitionID != b.CompetitionID {
			return a.CompetitionID < b.CompetitionID
		}
		if a.SeasonID != b.SeasonID {
			return a.SeasonID < b.SeasonID
		}
		return a.MatchID < b.MatchID
	})

	all := make([]minutes.PlayingInterval, 0, len(rows)*14)
	byPartition := make(map[match.Partition]*partitionMinutes)
	order := make([]match.Partition, 0)
	for _, row := range rows {
		part := match.Partition{CompetitionID: row.key.CompetitionID, SeasonID: row.key.SeasonID}
		group, ok := byPartition[part]
		if !ok {
			group = &partitionMinutes{}
			byPartition[part] = group
			order = append(order, part)
		}
		group.intervals = append(group.intervals, row.intervals...)
		group.approx = append(group.approx, row.approx...)
		all = append(all, row.intervals...)
	}

	for _, part := range order {
		group := byPartition[part]
		if err := s.sink.WriteMinutes(part, group.intervals); err != nil {
			return nil, MinutesResult{}, fmt.Errorf("write minutes partition: %w", err)
		}
		if err := s.sink.WriteApproxMinutes(part, group.approx); err != nil {
			return nil, MinutesResult{}, fmt.Errorf("write approx minutes partition: %w", err)
		}
	}

	if err := s.repo.ReplaceAll(ctx, all); err != nil {
		return nil, MinutesResult{}, fmt.Errorf("replace minutes table: %w", err)
	}

	result := MinutesResult{
		MatchesProcessed: len(rows),
		SkippedNoLineup:  skippedNoLineup,
		Intervals:        len(all),
	}
	for _, itv := range all {
		// A card or substitution before a late entry can invert the window;
		// minutes are already clamped to zero, the inversion is only counted.
		if itv.EndMinute < itv.StartMinute {
			result.ClampedIntervals++
		}
	}
	result.MinMinutes, result.MaxMinutes, result.AvgMinutes, err = s.repo.MinutesRange(ctx)
	if err != nil {
		return nil, MinutesResult{}, fmt.Errorf("summarize minutes: %w", err)
	}

	s.logger.InfoContext(ctx, "minutes run finished",
		"source", string(s.variant),
		"matches", result.MatchesProcessed,
		"skipped_no_lineup", result.SkippedNoLineup,
		"intervals", result.Intervals,
		"clamped_intervals", result.ClampedIntervals,
		"min_minutes", result.MinMinutes,
		"max_minutes", result.MaxMinutes,
		"avg_minutes", result.AvgMinutes,
	)

	return all, result, nil
}

type partitionMinutes struct {
	intervals []minutes.PlayingInterval
	approx    []minutes.ApproxMinutes
}

func (s *MinutesService) reconstructMatch(m match.Match) matchMinutes {
	out := matchMinutes{key: m.Key()}

	events, err := s.source.ReadMatchEvents(m.MatchID)
	if err != nil {
		out.err = err
		return out
	}

	key := event.MatchKey(m.Key())
	out.approx = minutes.Approximate(key, events)

	if s.variant == minutes.SourceApprox {
		out.intervals = approxAsIntervals(key, events, out.approx)
		return out
	}

	out.intervals, out.err = minutes.Reconstruct(key, events)
	return out
}

// approxAsIntervals reshapes first-to-last-event estimates into interval
// rows so the rest of the pipeline is source-agnostic. Team and name come
// from the player's first attributed event.
func approxAsIntervals(key event.MatchKey, events []event.RawEvent, approx []minutes.ApproxMinutes) []minutes.PlayingInterval {
	type attribution struct {
		team string
		name *string
	}
	seen := make(map[int64]attribution)
	for _, e := range events {
		if e.Player == nil || e.Player.ID == nil {
			continue
		}
		if _, ok := seen[*e.Player.ID]; ok {
			continue
		}
		seen[*e.Player.ID] = attribution{team: e.TeamName(), name: e.Player.Name}
	}

	out := make([]minutes.PlayingInterval, 0, len(approx))
	for _, row := range approx {
		attr := seen[row.PlayerID]
		out = append(out, minutes.PlayingInterval{
			CompetitionID:  key.CompetitionID,
			SeasonID:       key.SeasonID,
			MatchID:        key.MatchID,
			Team:           attr.team,
			PlayerID:       row.PlayerID,
			Player:         attr.name,
			StartMinute:    row.FirstMinute,
			EndMinute:      row.LastMinute,
			MinutesPlayed:  row.Minutes,
			MatchMaxMinute: row.MatchMaxMinute,
		})
	}
	return out
}
