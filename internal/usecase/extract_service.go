package usecase

import (
	"context"
	"fmt"

	"github.com/statlake/pitchload/internal/domain/event"
	"github.com/statlake/pitchload/internal/domain/match"
	"github.com/statlake/pitchload/internal/platform/logging"
)

type rawEventSource interface {
	BuildManifest() (match.Manifest, error)
	ReadMatchEvents(matchID int64) ([]event.RawEvent, error)
}

type flatEventWriter interface {
	WriteEventBatch(part match.Partition, batch int, rows []event.FlatEvent) error
}

// ExtractService scans the raw data tree, flattens every match's event log
// into the bronze layer and rebuilds the match registry.
type ExtractService struct {
	source    rawEventSource
	sink      flatEventWriter
	matchRepo match.Repository
	logger    *logging.Logger
	batchSize int
}

func NewExtractService(
	source rawEventSource,
	sink flatEventWriter,
	matchRepo match.Repository,
	logger *logging.Logger,
	batchSize int,
) *ExtractService {
	if logger == nil {
		logger = logging.NewNop()
	}
	if batchSize <= 0 {
		batchSize = 200
	}
	return &ExtractService{
		source:    source,
		sink:      sink,
		matchRepo: matchRepo,
		logger:    logger,
		batchSize: batchSize,
	}
}

// ExtractResult summarizes one extraction run.
type ExtractResult struct {
	Manifest       match.Manifest
	Partitions     int
	Batches        int
	EventRows      int64
	MissingEvents  int
	MatchesFlatten int
}

// Run walks the manifest in partition order, flattening matches into
// numbered batch files so a partition never has to fit in memory whole.
// Matches without an event payload are skipped and counted.
func (s *ExtractService) Run(ctx context.Context) (ExtractResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExtractService.Run")
	defer span.End()

	manifest, err := s.source.BuildManifest()
	if err != nil {
		return ExtractResult{}, fmt.Errorf("build manifest: %w", err)
	}
	if len(manifest.Matches) == 0 {
		return ExtractResult{}, ErrEmptyCorpus
	}

	result := ExtractResult{Manifest: manifest}

	var (
		current     match.Partition
		buffered    []event.FlatEvent
		buffMatches int
		batch       int
	)

	flush := func() error {
		if len(buffered) == 0 {
			return nil
		}
		if err := s.sink.WriteEventBatch(current, batch, buffered); err != nil {
			return fmt.Errorf("write event batch %d: %w", batch, err)
		}
		result.Batches++
		batch++
		buffered = buffered[:0]
		buffMatches = 0
		return nil
	}

	for i, m := range manifest.Matches {
		if err := ctx.Err(); err != nil {
			return ExtractResult{}, err
		}

		if part := m.Partition(); i == 0 || part != current {
			if err := flush(); err != nil {
				return ExtractResult{}, err
			}
			current = part
			batch = 0
			result.Partitions++
		}

		if !m.HasEvents {
			result.MissingEvents++
			continue
		}

		events, err := s.source.ReadMatchEvents(m.MatchID)
		if err != nil {
			return ExtractResult{}, fmt.Errorf("read events for match %d: %w", m.MatchID, err)
		}

		flat := event.Flatten(event.MatchKey(m.Key()), events)
		buffered = append(buffered, flat...)
		buffMatches++
		result.EventRows += int64(len(flat))
		result.MatchesFlatten++

		if buffMatches >= s.batchSize {
			if err := flush(); err != nil {
				return ExtractResult{}, err
			}
		}
	}
	if err := flush(); err != nil {
		return ExtractResult{}, err
	}

	if err := s.matchRepo.ReplaceAll(ctx, manifest.Matches); err != nil {
		return ExtractResult{}, fmt.Errorf("replace match registry: %w", err)
	}

	s.logger.InfoContext(ctx, "extraction finished",
		"matches", len(manifest.Matches),
		"flattened", result.MatchesFlatten,
		"event_rows", result.EventRows,
		"partitions", result.Partitions,
		"batches", result.Batches,
		"missing_events", result.MissingEvents,
		"missing_match_lists", manifest.MissingMatches,
		"unparseable_dates", manifest.MissingDates,
	)

	return result, nil
}
