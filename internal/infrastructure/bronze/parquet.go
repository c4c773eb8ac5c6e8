package bronze

import (
	"fmt"
	"os"
	"path/filepath"

	crerr "github.com/cockroachdb/errors"
	"github.com/parquet-go/parquet-go"

	"github.com/statlake/pitchload/internal/domain/event"
	"github.com/statlake/pitchload/internal/domain/match"
	"github.com/statlake/pitchload/internal/domain/minutes"
)

func (s *Store) partitionDir(table string, part match.Partition) string {
	return filepath.Join(s.lakehouseRoot, "bronze", table,
		fmt.Sprintf("competition_id=%d", part.CompetitionID),
		fmt.Sprintf("season_id=%d", part.SeasonID))
}

// WriteEventBatch writes one flat-event batch file into its partition
// directory. Batches are numbered per partition starting at zero; batch
// zero clears the directory first so a rerun over smaller input does not
// leave batch files from a previous run behind.
func (s *Store) WriteEventBatch(part match.Partition, batch int, rows []event.FlatEvent) error {
	dir := s.partitionDir("events_flat", part)
	if batch == 0 {
		if err := os.RemoveAll(dir); err != nil {
			return crerr.Wrapf(err, "clear partition dir %s", dir)
		}
	}
	name := filepath.Join(dir, fmt.Sprintf("events_flat_%05d.parquet", batch))
	return writeParquet(name, rows)
}

// WriteMinutes replaces the minutes file for one partition.
func (s *Store) WriteMinutes(part match.Partition, rows []minutes.PlayingInterval) error {
	dir := s.partitionDir("player_match_minutes", part)
	return writeParquet(filepath.Join(dir, "player_match_minutes.parquet"), rows)
}

// WriteApproxMinutes replaces the alternate estimator's file for one
// partition, kept separate so the two sources never mix.
func (s *Store) WriteApproxMinutes(part match.Partition, rows []minutes.ApproxMinutes) error {
	dir := s.partitionDir("player_match_minutes_approx", part)
	return writeParquet(filepath.Join(dir, "player_match_minutes_approx.parquet"), rows)
}

func writeParquet[T any](path string, rows []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return crerr.Wrapf(err, "create partition dir for %s", path)
	}

	file, err := os.Create(path)
	if err != nil {
		return crerr.Wrapf(err, "create %s", path)
	}

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(rows); err != nil {
		_ = file.Close()
		return crerr.Wrapf(err, "write %s", path)
	}
	if err := writer.Close(); err != nil {
		_ = file.Close()
		return crerr.Wrapf(err, "flush %s", path)
	}

	return crerr.Wrapf(file.Close(), "close %s", path)
}
