package minutes

import (
	"sort"

	"github.com/statlake/pitchload/internal/domain/event"
)

type intervalKey struct {
	team     string
	playerID int64
}

type intervalState struct {
	player *string
	start  int64
	end    int64
}

// Reconstruct derives one playing interval per (team, player) for a match
// from its raw event log.
//
// The reconstruction is best effort: starters are seeded with the full match
// window, substitutions clamp the outgoing player's end and open the incoming
// player's window, and red cards (direct or second yellow) clamp whatever
// window the offender had. It does not cross-check that eleven players remain
// on the pitch.
//
// Returns ErrNoStartingLineup when the log carries no Starting XI event.
func Reconstruct(key event.MatchKey, events []event.RawEvent) ([]PlayingInterval, error) {
	if len(events) == 0 {
		return nil, ErrNoStartingLineup
	}

	maxMinute := MatchCap(events)
	starters := startingLineups(events)
	if len(starters) == 0 {
		return nil, ErrNoStartingLineup
	}

	intervals := make(map[intervalKey]*intervalState)
	for k, name := range starters {
		intervals[k] = &intervalState{player: name, start: 0, end: maxMinute}
	}

	ordered := event.SortChronological(events)

	applySubstitutions(ordered, intervals, maxMinute)
	applyCards(ordered, intervals, maxMinute)

	return emit(key, intervals, maxMinute), nil
}

// MatchCap is the match length in minutes: the latest observed event minute,
// never above MaxMatchMinute.
func MatchCap(events []event.RawEvent) int64 {
	var max int64
	for _, e := range events {
		if m := e.MinuteOrZero(); m > max {
			max = m
		}
	}
	if max > MaxMatchMinute {
		return MaxMatchMinute
	}
	return max
}

// startingLineups collects the declared starters per team. Starting XI events
// without a team are unusable and skipped.
func startingLineups(events []event.RawEvent) map[intervalKey]*string {
	starters := make(map[intervalKey]*string)
	for _, e := range events {
		if e.TypeName() != event.TypeStartingXI || e.Team == nil || e.Tactics == nil {
			continue
		}
		for _, entry := range e.Tactics.Lineup {
			if entry.Player == nil || entry.Player.ID == nil {
				continue
			}
			starters[intervalKey{team: e.Team.Name, playerID: *entry.Player.ID}] = entry.Player.Name
		}
	}
	return starters
}

func applySubstitutions(ordered []event.RawEvent, intervals map[intervalKey]*intervalState, maxMinute int64) {
	for _, e := range ordered {
		if e.TypeName() != event.TypeSubstitution || e.Team == nil {
			continue
		}

		minute := clampMinute(e.MinuteOrZero(), maxMinute)

		// Outgoing player: clamp the end, keeping an earlier card clip.
		if e.Player != nil && e.Player.ID != nil {
			key := intervalKey{team: e.Team.Name, playerID: *e.Player.ID}
			if itv, ok := intervals[key]; ok {
				itv.end = min64(itv.end, minute)
			} else {
				// Edge case: a player leaves who never appeared in the
				// starting lineup; assume they were on since kickoff.
				intervals[key] = &intervalState{player: e.Player.Name, start: 0, end: minute}
			}
		}

		// Incoming player: open a window, or on re-entry raise the start.
		if e.Substitution != nil && e.Substitution.Replacement != nil && e.Substitution.Replacement.ID != nil {
			rep := e.Substitution.Replacement
			key := intervalKey{team: e.Team.Name, playerID: *rep.ID}
			if itv, ok := intervals[key]; ok {
				itv.start = max64(itv.start, minute)
			} else {
				intervals[key] = &intervalState{player: rep.Name, start: minute, end: maxMinute}
			}
		}
	}
}

func applyCards(ordered []event.RawEvent, intervals map[intervalKey]*intervalState, maxMinute int64) {
	for _, e := range ordered {
		name := cardName(e)
		if name != event.CardRed && name != event.CardSecondYellow {
			continue
		}
		if e.Team == nil || e.Player == nil || e.Player.ID == nil {
			continue
		}

		key := intervalKey{team: e.Team.Name, playerID: *e.Player.ID}
		itv, ok := intervals[key]
		if !ok {
			continue
		}
		itv.end = min64(itv.end, clampMinute(e.MinuteOrZero(), maxMinute))
	}
}

func cardName(e event.RawEvent) string {
	switch e.TypeName() {
	case event.TypeFoulCommitted:
		if e.FoulCommitted != nil && e.FoulCommitted.Card != nil {
			return e.FoulCommitted.Card.Name
		}
	case event.TypeBadBehaviour:
		if e.BadBehaviour != nil && e.BadBehaviour.Card != nil {
			return e.BadBehaviour.Card.Name
		}
	}
	return ""
}

func emit(key event.MatchKey, intervals map[intervalKey]*intervalState, maxMinute int64) []PlayingInterval {
	out := make([]PlayingInterval, 0, len(intervals))
	for k, itv := range intervals {
		out = append(out, PlayingInterval{
			CompetitionID:  key.CompetitionID,
			SeasonID:       key.SeasonID,
			MatchID:        key.MatchID,
			Team:           k.team,
			PlayerID:       k.playerID,
			Player:         itv.player,
			StartMinute:    itv.start,
			EndMinute:      itv.end,
			MinutesPlayed:  max64(0, itv.end-itv.start),
			MatchMaxMinute: maxMinute,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Team != out[j].Team {
			return out[i].Team < out[j].Team
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}

// Approximate computes the superseded first-to-last-event minute estimate for
// every player with at least one attributed event.
func Approximate(key event.MatchKey, events []event.RawEvent) []ApproxMinutes {
	maxMinute := MatchCap(events)

	type span struct{ first, last int64 }
	spans := make(map[int64]*span)
	for _, e := range events {
		if e.Player == nil || e.Player.ID == nil {
			continue
		}
		m := e.MinuteOrZero()
		s, ok := spans[*e.Player.ID]
		if !ok {
			spans[*e.Player.ID] = &span{first: m, last: m}
			continue
		}
		s.first = min64(s.first, m)
		s.last = max64(s.last, m)
	}

	out := make([]ApproxMinutes, 0, len(spans))
	for playerID, s := range spans {
		out = append(out, ApproxMinutes{
			CompetitionID:  key.CompetitionID,
			SeasonID:       key.SeasonID,
			MatchID:        key.MatchID,
			PlayerID:       playerID,
			FirstMinute:    s.first,
			LastMinute:     s.last,
			Minutes:        max64(0, min64(s.last, maxMinute)-max64(s.first, 0)),
			MatchMaxMinute: maxMinute,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out
}

func clampMinute(m, maxMinute int64) int64 {
	if m < 0 {
		return 0
	}
	if m > maxMinute {
		return maxMinute
	}
	return m
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
