package match

import "time"

// Match is one registry entry: the identity of a match plus its calendar
// date and which raw artifacts exist for it on disk.
type Match struct {
	CompetitionID int64     `db:"competition_id"`
	SeasonID      int64     `db:"season_id"`
	MatchID       int64     `db:"match_id"`
	Date          time.Time `db:"match_date"`
	HasEvents     bool      `db:"has_events"`
	HasLineups    bool      `db:"has_lineups"`
}

// Key identifies a match without its metadata.
type Key struct {
	CompetitionID int64
	SeasonID      int64
	MatchID       int64
}

func (m Match) Key() Key {
	return Key{CompetitionID: m.CompetitionID, SeasonID: m.SeasonID, MatchID: m.MatchID}
}

// Partition is the competition/season slice a match belongs to. Bronze
// tables are laid out one directory per partition.
type Partition struct {
	CompetitionID int64
	SeasonID      int64
}

func (m Match) Partition() Partition {
	return Partition{CompetitionID: m.CompetitionID, SeasonID: m.SeasonID}
}

// Manifest is the result of scanning the raw data tree: the match registry
// plus counts of what was missing along the way.
type Manifest struct {
	Matches        []Match
	MissingMatches int
	MissingDates   int
}
