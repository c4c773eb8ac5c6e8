package usecase

import (
	"context"
	"io/fs"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/statlake/pitchload/internal/domain/event"
	"github.com/statlake/pitchload/internal/domain/match"
	"github.com/statlake/pitchload/internal/domain/minutes"
	"github.com/statlake/pitchload/internal/domain/stats"
	"github.com/statlake/pitchload/internal/domain/workload"
)

func i64p(v int64) *int64     { return &v }
func f64p(v float64) *float64 { return &v }

func testMatch(t *testing.T, comp, season, id int64, date string, hasEvents bool) match.Match {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("parse date %q: %v", date, err)
	}
	return match.Match{
		CompetitionID: comp,
		SeasonID:      season,
		MatchID:       id,
		Date:          parsed,
		HasEvents:     hasEvents,
	}
}

func startingXI(team string, playerIDs ...int64) event.RawEvent {
	lineup := make([]event.LineupEntry, 0, len(playerIDs))
	for _, id := range playerIDs {
		lineup = append(lineup, event.LineupEntry{Player: &event.PlayerRef{ID: i64p(id)}})
	}
	return event.RawEvent{
		Minute:  i64p(0),
		Second:  i64p(0),
		Type:    &event.NameRef{Name: event.TypeStartingXI},
		Team:    &event.NameRef{Name: team},
		Tactics: &event.Tactics{Lineup: lineup},
	}
}

func substitution(team string, minute, offID, onID int64) event.RawEvent {
	return event.RawEvent{
		Minute: i64p(minute),
		Second: i64p(0),
		Type:   &event.NameRef{Name: event.TypeSubstitution},
		Team:   &event.NameRef{Name: team},
		Player: &event.PlayerRef{ID: i64p(offID)},
		Substitution: &event.SubstitutionDetail{
			Replacement: &event.PlayerRef{ID: i64p(onID)},
		},
	}
}

func shotEvent(team string, playerID, minute int64, xg float64) event.RawEvent {
	return event.RawEvent{
		Minute: i64p(minute),
		Second: i64p(0),
		Type:   &event.NameRef{Name: event.TypeShot},
		Team:   &event.NameRef{Name: team},
		Player: &event.PlayerRef{ID: i64p(playerID)},
		Shot:   &event.ShotDetail{StatsbombXG: f64p(xg)},
	}
}

func closingEvent(team string, minute int64) event.RawEvent {
	return event.RawEvent{
		Minute: i64p(minute),
		Second: i64p(0),
		Type:   &event.NameRef{Name: "Half End"},
		Team:   &event.NameRef{Name: team},
	}
}

type fakeBronze struct {
	manifest     match.Manifest
	events       map[int64][]event.RawEvent
	eventBatches map[match.Partition]map[int][]event.FlatEvent
	minutesParts map[match.Partition][]minutes.PlayingInterval
	approxParts  map[match.Partition][]minutes.ApproxMinutes
}

func newFakeBronze() *fakeBronze {
	return &fakeBronze{
		events:       make(map[int64][]event.RawEvent),
		eventBatches: make(map[match.Partition]map[int][]event.FlatEvent),
		minutesParts: make(map[match.Partition][]minutes.PlayingInterval),
		approxParts:  make(map[match.Partition][]minutes.ApproxMinutes),
	}
}

func (f *fakeBronze) BuildManifest() (match.Manifest, error) {
	return f.manifest, nil
}

func (f *fakeBronze) ReadMatchEvents(matchID int64) ([]event.RawEvent, error) {
	events, ok := f.events[matchID]
	if !ok {
		return nil, crerr.Wrapf(fs.ErrNotExist, "read events for match %d", matchID)
	}
	return events, nil
}

func (f *fakeBronze) WriteEventBatch(part match.Partition, batch int, rows []event.FlatEvent) error {
	if f.eventBatches[part] == nil {
		f.eventBatches[part] = make(map[int][]event.FlatEvent)
	}
	f.eventBatches[part][batch] = append([]event.FlatEvent(nil), rows...)
	return nil
}

func (f *fakeBronze) WriteMinutes(part match.Partition, rows []minutes.PlayingInterval) error {
	f.minutesParts[part] = append([]minutes.PlayingInterval(nil), rows...)
	return nil
}

func (f *fakeBronze) WriteApproxMinutes(part match.Partition, rows []minutes.ApproxMinutes) error {
	f.approxParts[part] = append([]minutes.ApproxMinutes(nil), rows...)
	return nil
}

type fakeMatchRepo struct {
	rows []match.Match
}

func (f *fakeMatchRepo) ReplaceAll(_ context.Context, rows []match.Match) error {
	f.rows = rows
	return nil
}

func (f *fakeMatchRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.rows)), nil
}

type fakeMinutesRepo struct {
	rows []minutes.PlayingInterval
}

func (f *fakeMinutesRepo) ReplaceAll(_ context.Context, rows []minutes.PlayingInterval) error {
	f.rows = rows
	return nil
}

func (f *fakeMinutesRepo) MinutesRange(_ context.Context) (float64, float64, float64, error) {
	if len(f.rows) == 0 {
		return 0, 0, 0, nil
	}
	minV := float64(f.rows[0].MinutesPlayed)
	maxV := minV
	var sum float64
	for _, row := range f.rows {
		v := float64(row.MinutesPlayed)
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
		sum += v
	}
	return minV, maxV, sum / float64(len(f.rows)), nil
}

type fakeStatsRepo struct {
	stats    []stats.PlayerMatchStat
	features []stats.PlayerMatchFeature
}

func (f *fakeStatsRepo) ReplaceStats(_ context.Context, rows []stats.PlayerMatchStat) error {
	f.stats = rows
	return nil
}

func (f *fakeStatsRepo) ReplaceFeatures(_ context.Context, rows []stats.PlayerMatchFeature) error {
	f.features = rows
	return nil
}

type fakeWorkloadRepo struct {
	loads      []workload.LoadFeature
	forms      []workload.FormFeature
	acwr       []workload.ACWRRow
	dataset    []workload.DatasetRow
	predictive []workload.PredictiveRow
}

func (f *fakeWorkloadRepo) ReplaceLoadFeatures(_ context.Context, rows []workload.LoadFeature) error {
	f.loads = rows
	return nil
}

func (f *fakeWorkloadRepo) ReplaceFormFeatures(_ context.Context, rows []workload.FormFeature) error {
	f.forms = rows
	return nil
}

func (f *fakeWorkloadRepo) ReplaceACWR(_ context.Context, rows []workload.ACWRRow) error {
	f.acwr = rows
	return nil
}

func (f *fakeWorkloadRepo) ReplaceDataset(_ context.Context, rows []workload.DatasetRow) error {
	f.dataset = rows
	return nil
}

func (f *fakeWorkloadRepo) ReplacePredictiveDataset(_ context.Context, rows []workload.PredictiveRow) error {
	f.predictive = rows
	return nil
}

func (f *fakeWorkloadRepo) ACWRRange(_ context.Context) (float64, float64, float64, error) {
	var defined []float64
	for _, row := range f.acwr {
		if row.ACWR != nil {
			defined = append(defined, *row.ACWR)
		}
	}
	if len(defined) == 0 {
		return 0, 0, 0, nil
	}
	minV, maxV, sum := defined[0], defined[0], 0.0
	for _, v := range defined {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
		sum += v
	}
	return minV, maxV, sum / float64(len(defined)), nil
}
