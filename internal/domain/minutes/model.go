package minutes

import "errors"

// ErrNoStartingLineup marks a match whose event log carries no Starting XI
// declaration. Such matches are skipped and counted, never aborted on.
var ErrNoStartingLineup = errors.New("match has no starting lineup event")

// MaxMatchMinute caps the observed match length; raw feeds occasionally carry
// garbage timestamps far beyond extra time.
const MaxMatchMinute = 130

// PlayingInterval is the reconstructed on-pitch window for one player in one
// match. A player is modeled with at most one interval per match: a player
// substituted on and later off again keeps a single clipped window, the same
// simplification the source dataset uses.
type PlayingInterval struct {
	CompetitionID  int64   `parquet:"competition_id" db:"competition_id"`
	SeasonID       int64   `parquet:"season_id" db:"season_id"`
	MatchID        int64   `parquet:"match_id" db:"match_id"`
	Team           string  `parquet:"team" db:"team"`
	PlayerID       int64   `parquet:"player_id" db:"player_id"`
	Player         *string `parquet:"player,optional" db:"player"`
	StartMinute    int64   `parquet:"start_minute" db:"start_minute"`
	EndMinute      int64   `parquet:"end_minute" db:"end_minute"`
	MinutesPlayed  int64   `parquet:"minutes_played" db:"minutes_played"`
	MatchMaxMinute int64   `parquet:"match_max_minute" db:"match_max_minute"`
}

// ApproxMinutes is the superseded first-to-last-event estimator, retained as
// an alternate minute source for comparison runs.
type ApproxMinutes struct {
	CompetitionID  int64 `parquet:"competition_id" db:"competition_id"`
	SeasonID       int64 `parquet:"season_id" db:"season_id"`
	MatchID        int64 `parquet:"match_id" db:"match_id"`
	PlayerID       int64 `parquet:"player_id" db:"player_id"`
	FirstMinute    int64 `parquet:"first_minute" db:"first_minute"`
	LastMinute     int64 `parquet:"last_minute" db:"last_minute"`
	Minutes        int64 `parquet:"approx_minutes" db:"approx_minutes"`
	MatchMaxMinute int64 `parquet:"match_minutes_cap" db:"match_minutes_cap"`
}

// Source selects which minutes estimator feeds the feature tables.
type Source string

const (
	// SourceReconstructed derives intervals from lineups, substitutions and
	// cards. Canonical.
	SourceReconstructed Source = "reconstructed"
	// SourceApprox derives minutes from a player's first and last event.
	SourceApprox Source = "approx"
)

func (s Source) Valid() bool {
	return s == SourceReconstructed || s == SourceApprox
}
