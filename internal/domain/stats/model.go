package stats

import "time"

// PlayerMatchStat holds one player's raw event tallies for one match.
type PlayerMatchStat struct {
	CompetitionID   int64   `db:"competition_id"`
	SeasonID        int64   `db:"season_id"`
	MatchID         int64   `db:"match_id"`
	PlayerID        int64   `db:"player_id"`
	Player          *string `db:"player"`
	Team            string  `db:"team"`
	EventsCount     int64   `db:"events_count"`
	Shots           int64   `db:"shots"`
	XG              float64 `db:"xg"`
	Passes          int64   `db:"passes"`
	TotalPassLength float64 `db:"total_pass_length"`
	Carries         int64   `db:"carries"`
	ProgressiveX    float64 `db:"progressive_x"`
}

// PlayerMatchFeature is a stat row joined with reconstructed minutes and the
// match calendar date, carrying per-90 rates. Rates are exactly zero when the
// player logged no minutes.
type PlayerMatchFeature struct {
	CompetitionID    int64     `db:"competition_id"`
	SeasonID         int64     `db:"season_id"`
	MatchID          int64     `db:"match_id"`
	MatchMaxMinute   int64     `db:"match_max_minute"`
	MatchDate        time.Time `db:"match_date"`
	Team             string    `db:"team"`
	PlayerID         int64     `db:"player_id"`
	Player           *string   `db:"player"`
	Minutes          int64     `db:"minutes"`
	EventsCount      int64     `db:"events_count"`
	Shots            int64     `db:"shots"`
	XG               float64   `db:"xg"`
	Passes           int64     `db:"passes"`
	TotalPassLength  float64   `db:"total_pass_length"`
	Carries          int64     `db:"carries"`
	ProgressiveX     float64   `db:"progressive_x"`
	ShotsPer90       float64   `db:"shots_per90"`
	XGPer90          float64   `db:"xg_per90"`
	PassesPer90      float64   `db:"passes_per90"`
	CarriesPer90     float64   `db:"carries_per90"`
	ProgressivePer90 float64   `db:"progressive_x_per90"`
}
