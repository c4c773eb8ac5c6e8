package sqlite

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/statlake/pitchload/internal/domain/workload"
)

const insertLoadQuery = `
	INSERT INTO player_load_features (
		player_id, competition_id, season_id, match_id, match_date, minutes,
		minutes_last_7d, minutes_last_14d, minutes_last_28d, minutes_last_5_matches
	) VALUES (
		:player_id, :competition_id, :season_id, :match_id, :match_date, :minutes,
		:minutes_last_7d, :minutes_last_14d, :minutes_last_28d, :minutes_last_5_matches
	)`

const insertFormQuery = `
	INSERT INTO player_form_features (
		player_id, competition_id, season_id, match_id, match_date,
		xg, shots, progressive_x, xg_last_5, shots_last_5, progressive_last_5, trend_xg_3v3
	) VALUES (
		:player_id, :competition_id, :season_id, :match_id, :match_date,
		:xg, :shots, :progressive_x, :xg_last_5, :shots_last_5, :progressive_last_5, :trend_xg_3v3
	)`

const insertACWRQuery = `
	INSERT INTO player_acwr (
		player_id, competition_id, season_id, match_id, match_date, minutes,
		minutes_last_7d, minutes_last_28d, acwr
	) VALUES (
		:player_id, :competition_id, :season_id, :match_id, :match_date, :minutes,
		:minutes_last_7d, :minutes_last_28d, :acwr
	)`

const datasetColumns = `
		player_id, competition_id, season_id, match_id, match_date, team, minutes,
		shots_per90, xg_per90, passes_per90, carries_per90, progressive_x_per90,
		xg_last_5, shots_last_5, progressive_last_5, trend_xg_3v3,
		minutes_last_7d, minutes_last_14d, minutes_last_28d, minutes_last_5_matches,
		acwr, high_risk`

const datasetBindings = `
		:player_id, :competition_id, :season_id, :match_id, :match_date, :team, :minutes,
		:shots_per90, :xg_per90, :passes_per90, :carries_per90, :progressive_x_per90,
		:xg_last_5, :shots_last_5, :progressive_last_5, :trend_xg_3v3,
		:minutes_last_7d, :minutes_last_14d, :minutes_last_28d, :minutes_last_5_matches,
		:acwr, :high_risk`

const insertDatasetQuery = `
	INSERT INTO player_dataset (` + datasetColumns + `
	) VALUES (` + datasetBindings + `
	)`

const insertPredictiveQuery = `
	INSERT INTO player_dataset_predictive (` + datasetColumns + `, high_risk_next
	) VALUES (` + datasetBindings + `, :high_risk_next
	)`

type WorkloadRepository struct {
	db *sqlx.DB
}

func NewWorkloadRepository(db *sqlx.DB) *WorkloadRepository {
	return &WorkloadRepository{db: db}
}

func (r *WorkloadRepository) ReplaceLoadFeatures(ctx context.Context, rows []workload.LoadFeature) error {
	models := make([]loadInsertModel, 0, len(rows))
	for _, l := range rows {
		models = append(models, loadToRow(l))
	}
	return replaceAll(ctx, r.db, "player_load_features", insertLoadQuery, models)
}

func (r *WorkloadRepository) ReplaceFormFeatures(ctx context.Context, rows []workload.FormFeature) error {
	models := make([]formInsertModel, 0, len(rows))
	for _, f := range rows {
		models = append(models, formToRow(f))
	}
	return replaceAll(ctx, r.db, "player_form_features", insertFormQuery, models)
}

func (r *WorkloadRepository) ReplaceACWR(ctx context.Context, rows []workload.ACWRRow) error {
	models := make([]acwrInsertModel, 0, len(rows))
	for _, a := range rows {
		models = append(models, acwrToRow(a))
	}
	return replaceAll(ctx, r.db, "player_acwr", insertACWRQuery, models)
}

func (r *WorkloadRepository) ReplaceDataset(ctx context.Context, rows []workload.DatasetRow) error {
	models := make([]datasetInsertModel, 0, len(rows))
	for _, d := range rows {
		models = append(models, datasetToRow(d))
	}
	return replaceAll(ctx, r.db, "player_dataset", insertDatasetQuery, models)
}

func (r *WorkloadRepository) ReplacePredictiveDataset(ctx context.Context, rows []workload.PredictiveRow) error {
	models := make([]predictiveInsertModel, 0, len(rows))
	for _, p := range rows {
		models = append(models, predictiveToRow(p))
	}
	return replaceAll(ctx, r.db, "player_dataset_predictive", insertPredictiveQuery, models)
}

// ACWRRange summarizes only defined ratios; NULL gate rows are excluded by
// the aggregate functions themselves.
func (r *WorkloadRepository) ACWRRange(ctx context.Context) (float64, float64, float64, error) {
	return queryRange(ctx, r.db, `
		SELECT MIN(acwr) AS min_value,
		       MAX(acwr) AS max_value,
		       AVG(acwr) AS avg_value
		FROM player_acwr`)
}
