package event

// Event type names as they appear in the raw feeds.
const (
	TypeStartingXI    = "Starting XI"
	TypeSubstitution  = "Substitution"
	TypeFoulCommitted = "Foul Committed"
	TypeBadBehaviour  = "Bad Behaviour"
	TypeShot          = "Shot"
	TypePass          = "Pass"
	TypeCarry         = "Carry"
)

// Card names that end a player's participation.
const (
	CardRed          = "Red Card"
	CardSecondYellow = "Second Yellow"
)

// MatchKey identifies one match within the dataset.
type MatchKey struct {
	CompetitionID int64
	SeasonID      int64
	MatchID       int64
}

// NameRef is the ubiquitous {id, name} object of the raw feed.
type NameRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// PlayerRef is a player reference whose id may be absent on teamless events.
type PlayerRef struct {
	ID   *int64  `json:"id"`
	Name *string `json:"name"`
}

type LineupEntry struct {
	Player *PlayerRef `json:"player"`
}

type Tactics struct {
	Lineup []LineupEntry `json:"lineup"`
}

type PassDetail struct {
	EndLocation []float64 `json:"end_location"`
	Length      *float64  `json:"length"`
	Outcome     *NameRef  `json:"outcome"`
}

type ShotDetail struct {
	EndLocation []float64 `json:"end_location"`
	StatsbombXG *float64  `json:"statsbomb_xg"`
	Outcome     *NameRef  `json:"outcome"`
}

type CarryDetail struct {
	EndLocation []float64 `json:"end_location"`
}

type SubstitutionDetail struct {
	Replacement *PlayerRef `json:"replacement"`
	Outcome     *NameRef   `json:"outcome"`
}

type CardRef struct {
	Card *NameRef `json:"card"`
}

// RawEvent is one entry of a match's raw event log. Every nested object is
// optional; decoding tolerates whatever subset a given match carries.
type RawEvent struct {
	ID             string              `json:"id"`
	Index          int64               `json:"index"`
	Period         *int64              `json:"period"`
	Timestamp      *string             `json:"timestamp"`
	Minute         *int64              `json:"minute"`
	Second         *int64              `json:"second"`
	Type           *NameRef            `json:"type"`
	Possession     *int64              `json:"possession"`
	PossessionTeam *NameRef            `json:"possession_team"`
	PlayPattern    *NameRef            `json:"play_pattern"`
	Team           *NameRef            `json:"team"`
	Player         *PlayerRef          `json:"player"`
	Location       []float64           `json:"location"`
	Tactics        *Tactics            `json:"tactics"`
	Pass           *PassDetail         `json:"pass"`
	Shot           *ShotDetail         `json:"shot"`
	Carry          *CarryDetail        `json:"carry"`
	Substitution   *SubstitutionDetail `json:"substitution"`
	FoulCommitted  *CardRef            `json:"foul_committed"`
	BadBehaviour   *CardRef            `json:"bad_behaviour"`
}

// TypeName returns the event type name or "" when the type object is absent.
func (e RawEvent) TypeName() string {
	if e.Type == nil {
		return ""
	}
	return e.Type.Name
}

// TeamName returns the acting team name or "" when the team object is absent.
func (e RawEvent) TeamName() string {
	if e.Team == nil {
		return ""
	}
	return e.Team.Name
}

// MinuteOrZero treats an absent minute as 0, matching the source feeds where
// the field is only ever missing on malformed rows.
func (e RawEvent) MinuteOrZero() int64 {
	if e.Minute == nil {
		return 0
	}
	return *e.Minute
}

func (e RawEvent) SecondOrZero() int64 {
	if e.Second == nil {
		return 0
	}
	return *e.Second
}

// FlatEvent is the fixed superset schema for one normalized event row.
// Absent source fields stay nil rather than breaking the row.
type FlatEvent struct {
	CompetitionID  int64    `parquet:"competition_id" db:"competition_id"`
	SeasonID       int64    `parquet:"season_id" db:"season_id"`
	MatchID        int64    `parquet:"match_id" db:"match_id"`
	EventID        string   `parquet:"id" db:"event_id"`
	Index          int64    `parquet:"index" db:"event_index"`
	Period         *int64   `parquet:"period,optional" db:"period"`
	Timestamp      *string  `parquet:"timestamp,optional" db:"event_timestamp"`
	Minute         int64    `parquet:"minute" db:"minute"`
	Second         int64    `parquet:"second" db:"second"`
	Type           *string  `parquet:"type,optional" db:"event_type"`
	Possession     *int64   `parquet:"possession,optional" db:"possession"`
	PossessionTeam *string  `parquet:"possession_team,optional" db:"possession_team"`
	PlayPattern    *string  `parquet:"play_pattern,optional" db:"play_pattern"`
	Team           *string  `parquet:"team,optional" db:"team"`
	Player         *string  `parquet:"player,optional" db:"player"`
	PlayerID       *int64   `parquet:"player_id,optional" db:"player_id"`
	X              *float64 `parquet:"x,optional" db:"x"`
	Y              *float64 `parquet:"y,optional" db:"y"`
	EndX           *float64 `parquet:"end_x,optional" db:"end_x"`
	EndY           *float64 `parquet:"end_y,optional" db:"end_y"`
	PassOutcome    *string  `parquet:"pass_outcome,optional" db:"pass_outcome"`
	PassLength     *float64 `parquet:"pass_length,optional" db:"pass_length"`
	ShotOutcome    *string  `parquet:"shot_outcome,optional" db:"shot_outcome"`
	ShotXG         *float64 `parquet:"shot_statsbomb_xg,optional" db:"shot_statsbomb_xg"`
}
