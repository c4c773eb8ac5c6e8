package stats

import (
	"sort"
	"time"

	"github.com/statlake/pitchload/internal/domain/event"
	"github.com/statlake/pitchload/internal/domain/minutes"
)

type statKey struct {
	competitionID int64
	seasonID      int64
	matchID       int64
	playerID      int64
	team          string
}

// Accumulator folds flat events match by match into per-player tallies so the
// whole event corpus never has to sit in memory at once. Events without an
// attributed player carry no stats downstream and are not tallied.
type Accumulator struct {
	groups map[statKey]*PlayerMatchStat
}

func NewAccumulator() *Accumulator {
	return &Accumulator{groups: make(map[statKey]*PlayerMatchStat)}
}

func (a *Accumulator) Add(rows []event.FlatEvent) {
	for _, row := range rows {
		if row.PlayerID == nil {
			continue
		}

		key := statKey{
			competitionID: row.CompetitionID,
			seasonID:      row.SeasonID,
			matchID:       row.MatchID,
			playerID:      *row.PlayerID,
		}
		if row.Team != nil {
			key.team = *row.Team
		}

		group, ok := a.groups[key]
		if !ok {
			group = &PlayerMatchStat{
				CompetitionID: row.CompetitionID,
				SeasonID:      row.SeasonID,
				MatchID:       row.MatchID,
				PlayerID:      *row.PlayerID,
				Player:        row.Player,
				Team:          key.team,
			}
			a.groups[key] = group
		}

		group.EventsCount++
		switch typeName(row.Type) {
		case event.TypeShot:
			group.Shots++
			if row.ShotXG != nil {
				group.XG += *row.ShotXG
			}
		case event.TypePass:
			group.Passes++
		case event.TypeCarry:
			group.Carries++
		}
		if row.PassLength != nil {
			group.TotalPassLength += *row.PassLength
		}
		// Net forward progression; rows missing either coordinate add 0.
		if row.EndX != nil && row.X != nil {
			group.ProgressiveX += *row.EndX - *row.X
		}
	}
}

// Rows returns the accumulated tallies in a deterministic order.
func (a *Accumulator) Rows() []PlayerMatchStat {
	out := make([]PlayerMatchStat, 0, len(a.groups))
	for _, group := range a.groups {
		out = append(out, *group)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MatchID != out[j].MatchID {
			return out[i].MatchID < out[j].MatchID
		}
		if out[i].Team != out[j].Team {
			return out[i].Team < out[j].Team
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}

// BuildFeature joins one playing interval with its stat tallies (nil when the
// player had no qualifying events) and the match date. Counting columns
// zero-fill; per-90 rates divide only when minutes were actually played.
func BuildFeature(itv minutes.PlayingInterval, stat *PlayerMatchStat, matchDate time.Time) PlayerMatchFeature {
	feature := PlayerMatchFeature{
		CompetitionID:  itv.CompetitionID,
		SeasonID:       itv.SeasonID,
		MatchID:        itv.MatchID,
		MatchMaxMinute: itv.MatchMaxMinute,
		MatchDate:      matchDate,
		Team:           itv.Team,
		PlayerID:       itv.PlayerID,
		Player:         itv.Player,
		Minutes:        itv.MinutesPlayed,
	}

	if stat != nil {
		feature.EventsCount = stat.EventsCount
		feature.Shots = stat.Shots
		feature.XG = stat.XG
		feature.Passes = stat.Passes
		feature.TotalPassLength = stat.TotalPassLength
		feature.Carries = stat.Carries
		feature.ProgressiveX = stat.ProgressiveX
	}

	feature.ShotsPer90 = Per90(float64(feature.Shots), feature.Minutes)
	feature.XGPer90 = Per90(feature.XG, feature.Minutes)
	feature.PassesPer90 = Per90(float64(feature.Passes), feature.Minutes)
	feature.CarriesPer90 = Per90(float64(feature.Carries), feature.Minutes)
	feature.ProgressivePer90 = Per90(feature.ProgressiveX, feature.Minutes)

	return feature
}

// Per90 scales a per-match quantity to a 90-minute rate. Zero minutes yields
// exactly zero, never a division error.
func Per90(value float64, minutesPlayed int64) float64 {
	if minutesPlayed <= 0 {
		return 0
	}
	return value * 90.0 / float64(minutesPlayed)
}

func typeName(t *string) string {
	if t == nil {
		return ""
	}
	return *t
}
