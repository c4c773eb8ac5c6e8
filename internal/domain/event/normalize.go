package event

import "sort"

// Flatten normalizes a match's raw event log into flat rows. Every event
// yields exactly one row; nothing is dropped or deduplicated, and absent
// nested objects simply leave their columns nil.
func Flatten(key MatchKey, events []RawEvent) []FlatEvent {
	out := make([]FlatEvent, 0, len(events))
	for _, e := range events {
		out = append(out, flattenOne(key, e))
	}
	return out
}

func flattenOne(key MatchKey, e RawEvent) FlatEvent {
	row := FlatEvent{
		CompetitionID: key.CompetitionID,
		SeasonID:      key.SeasonID,
		MatchID:       key.MatchID,
		EventID:       e.ID,
		Index:         e.Index,
		Period:        e.Period,
		Timestamp:     e.Timestamp,
		Minute:        e.MinuteOrZero(),
		Second:        e.SecondOrZero(),
		Possession:    e.Possession,
	}

	if e.Type != nil {
		row.Type = strPtr(e.Type.Name)
	}
	if e.PossessionTeam != nil {
		row.PossessionTeam = strPtr(e.PossessionTeam.Name)
	}
	if e.PlayPattern != nil {
		row.PlayPattern = strPtr(e.PlayPattern.Name)
	}
	if e.Team != nil {
		row.Team = strPtr(e.Team.Name)
	}
	if e.Player != nil {
		row.Player = e.Player.Name
		row.PlayerID = e.Player.ID
	}

	row.X, row.Y = locationPair(e.Location)

	// End location comes from the pass when present, else the carry. Shots
	// keep their own outcome/xg columns but do not contribute end_x/end_y.
	var endLoc []float64
	if e.Pass != nil {
		endLoc = e.Pass.EndLocation
		if e.Pass.Outcome != nil {
			row.PassOutcome = strPtr(e.Pass.Outcome.Name)
		}
		row.PassLength = e.Pass.Length
	}
	if e.Carry != nil && endLoc == nil {
		endLoc = e.Carry.EndLocation
	}
	row.EndX, row.EndY = locationPair(endLoc)

	if e.Shot != nil {
		if e.Shot.Outcome != nil {
			row.ShotOutcome = strPtr(e.Shot.Outcome.Name)
		}
		row.ShotXG = e.Shot.StatsbombXG
	}

	return row
}

// locationPair degrades anything that is not a 2-element numeric pair to nil.
func locationPair(loc []float64) (*float64, *float64) {
	if len(loc) < 2 {
		return nil, nil
	}
	x, y := loc[0], loc[1]
	return &x, &y
}

// SortChronological orders events by (minute, second), keeping the original
// feed order for ties so reruns stay deterministic.
func SortChronological(events []RawEvent) []RawEvent {
	sorted := append([]RawEvent(nil), events...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].MinuteOrZero() != sorted[j].MinuteOrZero() {
			return sorted[i].MinuteOrZero() < sorted[j].MinuteOrZero()
		}
		return sorted[i].SecondOrZero() < sorted[j].SecondOrZero()
	})
	return sorted
}

func strPtr(s string) *string {
	return &s
}
