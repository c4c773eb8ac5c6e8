package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/statlake/pitchload/internal/domain/match"
)

const insertMatchQuery = `
	INSERT INTO matches (
		competition_id, season_id, match_id, match_date, has_events, has_lineups
	) VALUES (
		:competition_id, :season_id, :match_id, :match_date, :has_events, :has_lineups
	)`

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) ReplaceAll(ctx context.Context, rows []match.Match) error {
	models := make([]matchInsertModel, 0, len(rows))
	for _, m := range rows {
		models = append(models, matchToRow(m))
	}
	return replaceAll(ctx, r.db, "matches", insertMatchQuery, models)
}

func (r *MatchRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM matches"); err != nil {
		return 0, fmt.Errorf("count matches: %w", err)
	}
	return count, nil
}
