package workload

import "time"

// LoadFeature carries the rolling minute sums for one (player, match) row.
type LoadFeature struct {
	PlayerID       int64     `db:"player_id"`
	CompetitionID  int64     `db:"competition_id"`
	SeasonID       int64     `db:"season_id"`
	MatchID        int64     `db:"match_id"`
	MatchDate      time.Time `db:"match_date"`
	Minutes        int64     `db:"minutes"`
	MinutesLast7d  float64   `db:"minutes_last_7d"`
	MinutesLast14d float64   `db:"minutes_last_14d"`
	MinutesLast28d float64   `db:"minutes_last_28d"`
	MinutesLast5   float64   `db:"minutes_last_5_matches"`
}

// FormFeature carries the rolling attacking-output sums for one row.
type FormFeature struct {
	PlayerID         int64     `db:"player_id"`
	CompetitionID    int64     `db:"competition_id"`
	SeasonID         int64     `db:"season_id"`
	MatchID          int64     `db:"match_id"`
	MatchDate        time.Time `db:"match_date"`
	XG               float64   `db:"xg"`
	Shots            int64     `db:"shots"`
	ProgressiveX     float64   `db:"progressive_x"`
	XGLast5          float64   `db:"xg_last_5"`
	ShotsLast5       float64   `db:"shots_last_5"`
	ProgressiveLast5 float64   `db:"progressive_last_5"`
	TrendXG3v3       *float64  `db:"trend_xg_3v3"`
}

// ACWRRow is the acute:chronic ratio for one row; ACWR stays nil below the
// chronic-sample gate.
type ACWRRow struct {
	PlayerID       int64     `db:"player_id"`
	CompetitionID  int64     `db:"competition_id"`
	SeasonID       int64     `db:"season_id"`
	MatchID        int64     `db:"match_id"`
	MatchDate      time.Time `db:"match_date"`
	Minutes        int64     `db:"minutes"`
	MinutesLast7d  float64   `db:"minutes_last_7d"`
	MinutesLast28d float64   `db:"minutes_last_28d"`
	ACWR           *float64  `db:"acwr"`
}

// DatasetRow is the assembled modeling row: per-90 performance, rolling form,
// rolling load, the risk ratio and its binarized label.
type DatasetRow struct {
	PlayerID         int64     `db:"player_id"`
	CompetitionID    int64     `db:"competition_id"`
	SeasonID         int64     `db:"season_id"`
	MatchID          int64     `db:"match_id"`
	MatchDate        time.Time `db:"match_date"`
	Team             string    `db:"team"`
	Minutes          int64     `db:"minutes"`
	ShotsPer90       float64   `db:"shots_per90"`
	XGPer90          float64   `db:"xg_per90"`
	PassesPer90      float64   `db:"passes_per90"`
	CarriesPer90     float64   `db:"carries_per90"`
	ProgressivePer90 float64   `db:"progressive_x_per90"`
	XGLast5          float64   `db:"xg_last_5"`
	ShotsLast5       float64   `db:"shots_last_5"`
	ProgressiveLast5 float64   `db:"progressive_last_5"`
	TrendXG3v3       *float64  `db:"trend_xg_3v3"`
	MinutesLast7d    float64   `db:"minutes_last_7d"`
	MinutesLast14d   float64   `db:"minutes_last_14d"`
	MinutesLast28d   float64   `db:"minutes_last_28d"`
	MinutesLast5     float64   `db:"minutes_last_5_matches"`
	ACWR             *float64  `db:"acwr"`
	HighRisk         bool      `db:"high_risk"`
}

// PredictiveRow shifts the label one match forward: HighRiskNext is the
// label of the player's following match in the same season. Rows without a
// following match never make it into the predictive table.
type PredictiveRow struct {
	DatasetRow
	HighRiskNext bool `db:"high_risk_next"`
}
