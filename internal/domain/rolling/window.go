// Package rolling implements trailing-window sums over a player's matches.
//
// Two window families exist and they are not interchangeable: calendar
// windows cover an inclusive day range ending at the current row's date,
// while row windows count a fixed number of most recent matches regardless
// of how far apart they were played.
package rolling

import (
	"sort"
	"time"
)

// Scheme selects how rows are partitioned before windows are computed.
type Scheme string

const (
	// SchemePlayer partitions by player across the whole career.
	SchemePlayer Scheme = "player"
	// SchemePlayerSeason restarts every window at a season boundary.
	SchemePlayerSeason Scheme = "player_season"
)

func (s Scheme) Valid() bool {
	return s == SchemePlayer || s == SchemePlayerSeason
}

// PartitionKey identifies one window partition. SeasonID stays zero under
// SchemePlayer.
type PartitionKey struct {
	PlayerID int64
	SeasonID int64
}

// Row is one match observation inside a partition. Order preserves ingestion
// order and breaks date ties deterministically.
type Row struct {
	Date  time.Time
	Order int
	Value float64
}

// Key builds the partition key a row belongs to under the given scheme.
func Key(scheme Scheme, playerID, seasonID int64) PartitionKey {
	if scheme == SchemePlayerSeason {
		return PartitionKey{PlayerID: playerID, SeasonID: seasonID}
	}
	return PartitionKey{PlayerID: playerID}
}

// Sort orders a partition by date, stable on ingestion order, and must be
// applied before any window function below.
func Sort(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.Before(rows[j].Date)
		}
		return rows[i].Order < rows[j].Order
	})
}

// CalendarSum computes, for every row, the sum of values over the inclusive
// trailing day range [date-days, date]. Rows sharing the current row's date
// are peers and are always included, mirroring SQL RANGE framing, so results
// do not depend on tie order.
func CalendarSum(rows []Row, days int) []float64 {
	out := make([]float64, len(rows))
	for i, row := range rows {
		lo := row.Date.AddDate(0, 0, -days)
		var sum float64
		for _, other := range rows {
			if other.Date.Before(lo) || other.Date.After(row.Date) {
				continue
			}
			sum += other.Value
		}
		out[i] = sum
	}
	return out
}

// RowSum computes, for every row, the sum over the trailing window of that
// row and the window-1 rows before it.
func RowSum(rows []Row, window int) []float64 {
	out := make([]float64, len(rows))
	var running float64
	for i, row := range rows {
		running += row.Value
		if i >= window {
			running -= rows[i-window].Value
		}
		out[i] = running
	}
	return out
}

// Trend3v3 is the sum over the 3 most recent rows minus the sum over the 3
// rows before those, both counted in row units. The result is nil while the
// earlier frame is still empty, matching an empty-frame SQL SUM.
func Trend3v3(rows []Row) []*float64 {
	out := make([]*float64, len(rows))
	for i := range rows {
		recent := frameSum(rows, i-2, i)
		if i-3 < 0 {
			continue
		}
		earlier := frameSum(rows, i-5, i-3)
		trend := recent - earlier
		out[i] = &trend
	}
	return out
}

func frameSum(rows []Row, lo, hi int) float64 {
	if lo < 0 {
		lo = 0
	}
	var sum float64
	for i := lo; i <= hi; i++ {
		sum += rows[i].Value
	}
	return sum
}
