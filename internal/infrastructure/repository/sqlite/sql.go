package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// insertChunkSize keeps multi-row named inserts comfortably inside the
// sqlite bound-parameter limit for the widest table.
const insertChunkSize = 200

func isNotFound(err error) bool {
	return err == sql.ErrNoRows
}

// replaceAll deletes a table's contents and bulk-inserts the new rows inside
// one transaction, the full-rebuild discipline every output table follows.
func replaceAll[T any](ctx context.Context, db *sqlx.DB, table, insertQuery string, rows []T) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace %s: %w", table, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}

	for _, chunk := range chunks(rows, insertChunkSize) {
		if _, err := tx.NamedExecContext(ctx, insertQuery, chunk); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace %s: %w", table, err)
	}
	return nil
}

func chunks[T any](rows []T, size int) [][]T {
	if len(rows) == 0 {
		return nil
	}
	out := make([][]T, 0, (len(rows)+size-1)/size)
	for start := 0; start < len(rows); start += size {
		end := start + size
		if end > len(rows) {
			end = len(rows)
		}
		out = append(out, rows[start:end])
	}
	return out
}

type rangeRow struct {
	Min sql.NullFloat64 `db:"min_value"`
	Max sql.NullFloat64 `db:"max_value"`
	Avg sql.NullFloat64 `db:"avg_value"`
}

func queryRange(ctx context.Context, db *sqlx.DB, query string) (float64, float64, float64, error) {
	var row rangeRow
	if err := db.GetContext(ctx, &row, query); err != nil {
		if isNotFound(err) {
			return 0, 0, 0, nil
		}
		return 0, 0, 0, err
	}
	return row.Min.Float64, row.Max.Float64, row.Avg.Float64, nil
}
