package sqlite

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/statlake/pitchload/internal/domain/stats"
)

const insertStatQuery = `
	INSERT INTO player_match_stats (
		competition_id, season_id, match_id, player_id, player, team,
		events_count, shots, xg, passes, total_pass_length, carries, progressive_x
	) VALUES (
		:competition_id, :season_id, :match_id, :player_id, :player, :team,
		:events_count, :shots, :xg, :passes, :total_pass_length, :carries, :progressive_x
	)`

const insertFeatureQuery = `
	INSERT INTO player_match_features (
		competition_id, season_id, match_id, match_max_minute, match_date, team,
		player_id, player, minutes, events_count, shots, xg, passes,
		total_pass_length, carries, progressive_x,
		shots_per90, xg_per90, passes_per90, carries_per90, progressive_x_per90
	) VALUES (
		:competition_id, :season_id, :match_id, :match_max_minute, :match_date, :team,
		:player_id, :player, :minutes, :events_count, :shots, :xg, :passes,
		:total_pass_length, :carries, :progressive_x,
		:shots_per90, :xg_per90, :passes_per90, :carries_per90, :progressive_x_per90
	)`

type StatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) ReplaceStats(ctx context.Context, rows []stats.PlayerMatchStat) error {
	models := make([]statInsertModel, 0, len(rows))
	for _, s := range rows {
		models = append(models, statToRow(s))
	}
	return replaceAll(ctx, r.db, "player_match_stats", insertStatQuery, models)
}

func (r *StatsRepository) ReplaceFeatures(ctx context.Context, rows []stats.PlayerMatchFeature) error {
	models := make([]featureInsertModel, 0, len(rows))
	for _, f := range rows {
		models = append(models, featureToRow(f))
	}
	return replaceAll(ctx, r.db, "player_match_features", insertFeatureQuery, models)
}
