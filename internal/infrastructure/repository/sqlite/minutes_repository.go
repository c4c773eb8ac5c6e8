package sqlite

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/statlake/pitchload/internal/domain/minutes"
)

const insertMinutesQuery = `
	INSERT INTO player_match_minutes (
		competition_id, season_id, match_id, team, player_id, player,
		start_minute, end_minute, minutes_played, match_max_minute
	) VALUES (
		:competition_id, :season_id, :match_id, :team, :player_id, :player,
		:start_minute, :end_minute, :minutes_played, :match_max_minute
	)`

type MinutesRepository struct {
	db *sqlx.DB
}

func NewMinutesRepository(db *sqlx.DB) *MinutesRepository {
	return &MinutesRepository{db: db}
}

func (r *MinutesRepository) ReplaceAll(ctx context.Context, rows []minutes.PlayingInterval) error {
	models := make([]minutesInsertModel, 0, len(rows))
	for _, itv := range rows {
		models = append(models, intervalToRow(itv))
	}
	return replaceAll(ctx, r.db, "player_match_minutes", insertMinutesQuery, models)
}

func (r *MinutesRepository) MinutesRange(ctx context.Context) (float64, float64, float64, error) {
	return queryRange(ctx, r.db, `
		SELECT MIN(minutes_played) AS min_value,
		       MAX(minutes_played) AS max_value,
		       AVG(minutes_played) AS avg_value
		FROM player_match_minutes`)
}
