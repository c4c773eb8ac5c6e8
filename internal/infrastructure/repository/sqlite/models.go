package sqlite

import (
	"database/sql"
	"time"

	"github.com/statlake/pitchload/internal/domain/match"
	"github.com/statlake/pitchload/internal/domain/minutes"
	"github.com/statlake/pitchload/internal/domain/stats"
	"github.com/statlake/pitchload/internal/domain/workload"
)

// Dates are stored as ISO text so range queries sort correctly.
const dateColumnLayout = "2006-01-02"

func dateText(t time.Time) string {
	return t.Format(dateColumnLayout)
}

func nullStr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

type matchInsertModel struct {
	CompetitionID int64  `db:"competition_id"`
	SeasonID      int64  `db:"season_id"`
	MatchID       int64  `db:"match_id"`
	MatchDate     string `db:"match_date"`
	HasEvents     bool   `db:"has_events"`
	HasLineups    bool   `db:"has_lineups"`
}

func matchToRow(m match.Match) matchInsertModel {
	return matchInsertModel{
		CompetitionID: m.CompetitionID,
		SeasonID:      m.SeasonID,
		MatchID:       m.MatchID,
		MatchDate:     dateText(m.Date),
		HasEvents:     m.HasEvents,
		HasLineups:    m.HasLineups,
	}
}

type minutesInsertModel struct {
	CompetitionID  int64          `db:"competition_id"`
	SeasonID       int64          `db:"season_id"`
	MatchID        int64          `db:"match_id"`
	Team           string         `db:"team"`
	PlayerID       int64          `db:"player_id"`
	Player         sql.NullString `db:"player"`
	StartMinute    int64          `db:"start_minute"`
	EndMinute      int64          `db:"end_minute"`
	MinutesPlayed  int64          `db:"minutes_played"`
	MatchMaxMinute int64          `db:"match_max_minute"`
}

func intervalToRow(itv minutes.PlayingInterval) minutesInsertModel {
	return minutesInsertModel{
		CompetitionID:  itv.CompetitionID,
		SeasonID:       itv.SeasonID,
		MatchID:        itv.MatchID,
		Team:           itv.Team,
		PlayerID:       itv.PlayerID,
		Player:         nullStr(itv.Player),
		StartMinute:    itv.StartMinute,
		EndMinute:      itv.EndMinute,
		MinutesPlayed:  itv.MinutesPlayed,
		MatchMaxMinute: itv.MatchMaxMinute,
	}
}

type statInsertModel struct {
	CompetitionID   int64          `db:"competition_id"`
	SeasonID        int64          `db:"season_id"`
	MatchID         int64          `db:"match_id"`
	PlayerID        int64          `db:"player_id"`
	Player          sql.NullString `db:"player"`
	Team            string         `db:"team"`
	EventsCount     int64          `db:"events_count"`
	Shots           int64          `db:"shots"`
	XG              float64        `db:"xg"`
	Passes          int64          `db:"passes"`
	TotalPassLength float64        `db:"total_pass_length"`
	Carries         int64          `db:"carries"`
	ProgressiveX    float64        `db:"progressive_x"`
}

func statToRow(s stats.PlayerMatchStat) statInsertModel {
	return statInsertModel{
		CompetitionID:   s.CompetitionID,
		SeasonID:        s.SeasonID,
		MatchID:         s.MatchID,
		PlayerID:        s.PlayerID,
		Player:          nullStr(s.Player),
		Team:            s.Team,
		EventsCount:     s.EventsCount,
		Shots:           s.Shots,
		XG:              s.XG,
		Passes:          s.Passes,
		TotalPassLength: s.TotalPassLength,
		Carries:         s.Carries,
		ProgressiveX:    s.ProgressiveX,
	}
}

type featureInsertModel struct {
	CompetitionID    int64          `db:"competition_id"`
	SeasonID         int64          `db:"season_id"`
	MatchID          int64          `db:"match_id"`
	MatchMaxMinute   int64          `db:"match_max_minute"`
	MatchDate        string         `db:"match_date"`
	Team             string         `db:"team"`
	PlayerID         int64          `db:"player_id"`
	Player           sql.NullString `db:"player"`
	Minutes          int64          `db:"minutes"`
	EventsCount      int64          `db:"events_count"`
	Shots            int64          `db:"shots"`
	XG               float64        `db:"xg"`
	Passes           int64          `db:"passes"`
	TotalPassLength  float64        `db:"total_pass_length"`
	Carries          int64          `db:"carries"`
	ProgressiveX     float64        `db:"progressive_x"`
	ShotsPer90       float64        `db:"shots_per90"`
	XGPer90          float64        `db:"xg_per90"`
	PassesPer90      float64        `db:"passes_per90"`
	CarriesPer90     float64        `db:"carries_per90"`
	ProgressivePer90 float64        `db:"progressive_x_per90"`
}

func featureToRow(f stats.PlayerMatchFeature) featureInsertModel {
	return featureInsertModel{
		CompetitionID:    f.CompetitionID,
		SeasonID:         f.SeasonID,
		MatchID:          f.MatchID,
		MatchMaxMinute:   f.MatchMaxMinute,
		MatchDate:        dateText(f.MatchDate),
		Team:             f.Team,
		PlayerID:         f.PlayerID,
		Player:           nullStr(f.Player),
		Minutes:          f.Minutes,
		EventsCount:      f.EventsCount,
		Shots:            f.Shots,
		XG:               f.XG,
		Passes:           f.Passes,
		TotalPassLength:  f.TotalPassLength,
		Carries:          f.Carries,
		ProgressiveX:     f.ProgressiveX,
		ShotsPer90:       f.ShotsPer90,
		XGPer90:          f.XGPer90,
		PassesPer90:      f.PassesPer90,
		CarriesPer90:     f.CarriesPer90,
		ProgressivePer90: f.ProgressivePer90,
	}
}

type loadInsertModel struct {
	PlayerID       int64   `db:"player_id"`
	CompetitionID  int64   `db:"competition_id"`
	SeasonID       int64   `db:"season_id"`
	MatchID        int64   `db:"match_id"`
	MatchDate      string  `db:"match_date"`
	Minutes        int64   `db:"minutes"`
	MinutesLast7d  float64 `db:"minutes_last_7d"`
	MinutesLast14d float64 `db:"minutes_last_14d"`
	MinutesLast28d float64 `db:"minutes_last_28d"`
	MinutesLast5   float64 `db:"minutes_last_5_matches"`
}

func loadToRow(l workload.LoadFeature) loadInsertModel {
	return loadInsertModel{
		PlayerID:       l.PlayerID,
		CompetitionID:  l.CompetitionID,
		SeasonID:       l.SeasonID,
		MatchID:        l.MatchID,
		MatchDate:      dateText(l.MatchDate),
		Minutes:        l.Minutes,
		MinutesLast7d:  l.MinutesLast7d,
		MinutesLast14d: l.MinutesLast14d,
		MinutesLast28d: l.MinutesLast28d,
		MinutesLast5:   l.MinutesLast5,
	}
}

type formInsertModel struct {
	PlayerID         int64           `db:"player_id"`
	CompetitionID    int64           `db:"competition_id"`
	SeasonID         int64           `db:"season_id"`
	MatchID          int64           `db:"match_id"`
	MatchDate        string          `db:"match_date"`
	XG               float64         `db:"xg"`
	Shots            int64           `db:"shots"`
	ProgressiveX     float64         `db:"progressive_x"`
	XGLast5          float64         `db:"xg_last_5"`
	ShotsLast5       float64         `db:"shots_last_5"`
	ProgressiveLast5 float64         `db:"progressive_last_5"`
	TrendXG3v3       sql.NullFloat64 `db:"trend_xg_3v3"`
}

func formToRow(f workload.FormFeature) formInsertModel {
	return formInsertModel{
		PlayerID:         f.PlayerID,
		CompetitionID:    f.CompetitionID,
		SeasonID:         f.SeasonID,
		MatchID:          f.MatchID,
		MatchDate:        dateText(f.MatchDate),
		XG:               f.XG,
		Shots:            f.Shots,
		ProgressiveX:     f.ProgressiveX,
		XGLast5:          f.XGLast5,
		ShotsLast5:       f.ShotsLast5,
		ProgressiveLast5: f.ProgressiveLast5,
		TrendXG3v3:       nullFloat(f.TrendXG3v3),
	}
}

type acwrInsertModel struct {
	PlayerID       int64           `db:"player_id"`
	CompetitionID  int64           `db:"competition_id"`
	SeasonID       int64           `db:"season_id"`
	MatchID        int64           `db:"match_id"`
	MatchDate      string          `db:"match_date"`
	Minutes        int64           `db:"minutes"`
	MinutesLast7d  float64         `db:"minutes_last_7d"`
	MinutesLast28d float64         `db:"minutes_last_28d"`
	ACWR           sql.NullFloat64 `db:"acwr"`
}

func acwrToRow(a workload.ACWRRow) acwrInsertModel {
	return acwrInsertModel{
		PlayerID:       a.PlayerID,
		CompetitionID:  a.CompetitionID,
		SeasonID:       a.SeasonID,
		MatchID:        a.MatchID,
		MatchDate:      dateText(a.MatchDate),
		Minutes:        a.Minutes,
		MinutesLast7d:  a.MinutesLast7d,
		MinutesLast28d: a.MinutesLast28d,
		ACWR:           nullFloat(a.ACWR),
	}
}

type datasetInsertModel struct {
	PlayerID         int64           `db:"player_id"`
	CompetitionID    int64           `db:"competition_id"`
	SeasonID         int64           `db:"season_id"`
	MatchID          int64           `db:"match_id"`
	MatchDate        string          `db:"match_date"`
	Team             string          `db:"team"`
	Minutes          int64           `db:"minutes"`
	ShotsPer90       float64         `db:"shots_per90"`
	XGPer90          float64         `db:"xg_per90"`
	PassesPer90      float64         `db:"passes_per90"`
	CarriesPer90     float64         `db:"carries_per90"`
	ProgressivePer90 float64         `db:"progressive_x_per90"`
	XGLast5          float64         `db:"xg_last_5"`
	ShotsLast5       float64         `db:"shots_last_5"`
	ProgressiveLast5 float64         `db:"progressive_last_5"`
	TrendXG3v3       sql.NullFloat64 `db:"trend_xg_3v3"`
	MinutesLast7d    float64         `db:"minutes_last_7d"`
	MinutesLast14d   float64         `db:"minutes_last_14d"`
	MinutesLast28d   float64         `db:"minutes_last_28d"`
	MinutesLast5     float64         `db:"minutes_last_5_matches"`
	ACWR             sql.NullFloat64 `db:"acwr"`
	HighRisk         bool            `db:"high_risk"`
}

func datasetToRow(d workload.DatasetRow) datasetInsertModel {
	return datasetInsertModel{
		PlayerID:         d.PlayerID,
		CompetitionID:    d.CompetitionID,
		SeasonID:         d.SeasonID,
		MatchID:          d.MatchID,
		MatchDate:        dateText(d.MatchDate),
		Team:             d.Team,
		Minutes:          d.Minutes,
		ShotsPer90:       d.ShotsPer90,
		XGPer90:          d.XGPer90,
		PassesPer90:      d.PassesPer90,
		CarriesPer90:     d.CarriesPer90,
		ProgressivePer90: d.ProgressivePer90,
		XGLast5:          d.XGLast5,
		ShotsLast5:       d.ShotsLast5,
		ProgressiveLast5: d.ProgressiveLast5,
		TrendXG3v3:       nullFloat(d.TrendXG3v3),
		MinutesLast7d:    d.MinutesLast7d,
		MinutesLast14d:   d.MinutesLast14d,
		MinutesLast28d:   d.MinutesLast28d,
		MinutesLast5:     d.MinutesLast5,
		ACWR:             nullFloat(d.ACWR),
		HighRisk:         d.HighRisk,
	}
}

type predictiveInsertModel struct {
	datasetInsertModel
	HighRiskNext bool `db:"high_risk_next"`
}

func predictiveToRow(p workload.PredictiveRow) predictiveInsertModel {
	return predictiveInsertModel{
		datasetInsertModel: datasetToRow(p.DatasetRow),
		HighRiskNext:       p.HighRiskNext,
	}
}
