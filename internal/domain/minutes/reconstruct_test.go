package minutes

import (
	"errors"
	"testing"

	"github.com/statlake/pitchload/internal/domain/event"
)

var testKey = event.MatchKey{CompetitionID: 11, SeasonID: 90, MatchID: 100}

func playerRef(id int64, name string) *event.PlayerRef {
	return &event.PlayerRef{ID: &id, Name: &name}
}

func startingXI(team string, ids ...int64) event.RawEvent {
	lineup := make([]event.LineupEntry, 0, len(ids))
	for _, id := range ids {
		lineup = append(lineup, event.LineupEntry{Player: playerRef(id, "p")})
	}
	return event.RawEvent{
		Type:    &event.NameRef{Name: event.TypeStartingXI},
		Team:    &event.NameRef{Name: team},
		Tactics: &event.Tactics{Lineup: lineup},
	}
}

func substitution(team string, minute, offID, onID int64) event.RawEvent {
	return event.RawEvent{
		Type:   &event.NameRef{Name: event.TypeSubstitution},
		Team:   &event.NameRef{Name: team},
		Minute: &minute,
		Player: playerRef(offID, "off"),
		Substitution: &event.SubstitutionDetail{
			Replacement: playerRef(onID, "on"),
		},
	}
}

func redCard(team string, minute, playerID int64) event.RawEvent {
	return event.RawEvent{
		Type:          &event.NameRef{Name: event.TypeFoulCommitted},
		Team:          &event.NameRef{Name: team},
		Minute:        &minute,
		Player:        playerRef(playerID, "carded"),
		FoulCommitted: &event.CardRef{Card: &event.NameRef{Name: event.CardRed}},
	}
}

func closingWhistle(minute int64) event.RawEvent {
	return event.RawEvent{Minute: &minute}
}

func findInterval(t *testing.T, intervals []PlayingInterval, playerID int64) PlayingInterval {
	t.Helper()
	for _, itv := range intervals {
		if itv.PlayerID == playerID {
			return itv
		}
	}
	t.Fatalf("no interval for player %d", playerID)
	return PlayingInterval{}
}

func TestReconstructStarterPlaysFullMatch(t *testing.T) {
	intervals, err := Reconstruct(testKey, []event.RawEvent{
		startingXI("Home", 1, 2),
		startingXI("Away", 11),
		closingWhistle(90),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	itv := findInterval(t, intervals, 1)
	if itv.StartMinute != 0 || itv.EndMinute != 90 || itv.MinutesPlayed != 90 {
		t.Fatalf("starter should span [0,90]: %+v", itv)
	}
	if itv.MatchMaxMinute != 90 {
		t.Fatalf("match cap should be 90, got %d", itv.MatchMaxMinute)
	}
}

func TestReconstructSubstitutionClampsAndOpens(t *testing.T) {
	intervals, err := Reconstruct(testKey, []event.RawEvent{
		startingXI("Home", 1),
		substitution("Home", 60, 1, 20),
		closingWhistle(90),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	off := findInterval(t, intervals, 1)
	if off.StartMinute != 0 || off.EndMinute != 60 || off.MinutesPlayed != 60 {
		t.Fatalf("outgoing starter should span [0,60]: %+v", off)
	}

	on := findInterval(t, intervals, 20)
	if on.StartMinute != 60 || on.EndMinute != 90 || on.MinutesPlayed != 30 {
		t.Fatalf("substitute should span [60,90]: %+v", on)
	}
}

func TestReconstructRedCardBeatsLaterSubstitution(t *testing.T) {
	intervals, err := Reconstruct(testKey, []event.RawEvent{
		startingXI("Home", 1),
		redCard("Home", 55, 1),
		substitution("Home", 70, 1, 20),
		closingWhistle(90),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	itv := findInterval(t, intervals, 1)
	if itv.EndMinute != 55 || itv.MinutesPlayed != 55 {
		t.Fatalf("card clip must survive the later substitution: %+v", itv)
	}
}

func TestReconstructSecondYellowViaBadBehaviour(t *testing.T) {
	minute := int64(77)
	intervals, err := Reconstruct(testKey, []event.RawEvent{
		startingXI("Away", 5),
		{
			Type:         &event.NameRef{Name: event.TypeBadBehaviour},
			Team:         &event.NameRef{Name: "Away"},
			Minute:       &minute,
			Player:       playerRef(5, "p"),
			BadBehaviour: &event.CardRef{Card: &event.NameRef{Name: event.CardSecondYellow}},
		},
		closingWhistle(93),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	itv := findInterval(t, intervals, 5)
	if itv.EndMinute != 77 || itv.MinutesPlayed != 77 {
		t.Fatalf("second yellow must clamp the interval: %+v", itv)
	}
}

func TestReconstructUnseenOutgoingPlayer(t *testing.T) {
	intervals, err := Reconstruct(testKey, []event.RawEvent{
		startingXI("Home", 1),
		substitution("Home", 40, 99, 20), // 99 never declared as starter
		closingWhistle(90),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	itv := findInterval(t, intervals, 99)
	if itv.StartMinute != 0 || itv.EndMinute != 40 {
		t.Fatalf("unseen outgoing player should span [0,40]: %+v", itv)
	}
}

func TestReconstructReentryRaisesStart(t *testing.T) {
	intervals, err := Reconstruct(testKey, []event.RawEvent{
		startingXI("Home", 1, 2),
		substitution("Home", 30, 1, 20),
		substitution("Home", 60, 20, 1), // player 1 comes back on
		closingWhistle(90),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Single-interval model: the re-entering starter keeps one window with a
	// raised start and the end already clipped by their earlier exit.
	reentered := findInterval(t, intervals, 1)
	if reentered.StartMinute != 60 {
		t.Fatalf("re-entry must raise the start to 60: %+v", reentered)
	}
	if reentered.MinutesPlayed != 0 {
		t.Fatalf("clipped re-entry window yields zero minutes, got %d", reentered.MinutesPlayed)
	}

	mid := findInterval(t, intervals, 20)
	if mid.StartMinute != 30 || mid.EndMinute != 60 || mid.MinutesPlayed != 30 {
		t.Fatalf("middle substitute should span [30,60]: %+v", mid)
	}
}

func TestReconstructNoStartingLineup(t *testing.T) {
	_, err := Reconstruct(testKey, []event.RawEvent{closingWhistle(90)})
	if !errors.Is(err, ErrNoStartingLineup) {
		t.Fatalf("expected ErrNoStartingLineup, got %v", err)
	}

	_, err = Reconstruct(testKey, nil)
	if !errors.Is(err, ErrNoStartingLineup) {
		t.Fatalf("expected ErrNoStartingLineup for empty log, got %v", err)
	}
}

func TestReconstructTeamlessEventsContributeNothing(t *testing.T) {
	minute := int64(50)
	intervals, err := Reconstruct(testKey, []event.RawEvent{
		startingXI("Home", 1),
		{
			Type:         &event.NameRef{Name: event.TypeSubstitution},
			Minute:       &minute,
			Player:       playerRef(1, "p"),
			Substitution: &event.SubstitutionDetail{Replacement: playerRef(20, "q")},
		},
		closingWhistle(90),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	itv := findInterval(t, intervals, 1)
	if itv.EndMinute != 90 {
		t.Fatalf("teamless substitution must be ignored: %+v", itv)
	}
	for _, row := range intervals {
		if row.PlayerID == 20 {
			t.Fatalf("teamless substitution must not open an interval")
		}
	}
}

func TestMatchCapRespectsUpperBound(t *testing.T) {
	if got := MatchCap([]event.RawEvent{closingWhistle(912)}); got != MaxMatchMinute {
		t.Fatalf("cap must top out at %d, got %d", MaxMatchMinute, got)
	}
	if got := MatchCap([]event.RawEvent{closingWhistle(97)}); got != 97 {
		t.Fatalf("cap should follow the last event, got %d", got)
	}
}

func TestReconstructInvariants(t *testing.T) {
	intervals, err := Reconstruct(testKey, []event.RawEvent{
		startingXI("Home", 1, 2, 3),
		startingXI("Away", 11, 12),
		substitution("Home", 58, 2, 21),
		redCard("Away", 83, 11),
		closingWhistle(95),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, itv := range intervals {
		if itv.StartMinute < 0 || itv.StartMinute > itv.EndMinute || itv.EndMinute > itv.MatchMaxMinute {
			t.Fatalf("interval out of bounds: %+v", itv)
		}
		if itv.MinutesPlayed != itv.EndMinute-itv.StartMinute {
			t.Fatalf("minutes must equal end-start: %+v", itv)
		}
	}
}

func TestApproximate(t *testing.T) {
	ten, eighty := int64(10), int64(80)
	id := int64(7)
	name := "p"
	rows := Approximate(testKey, []event.RawEvent{
		{Minute: &ten, Player: &event.PlayerRef{ID: &id, Name: &name}},
		{Minute: &eighty, Player: &event.PlayerRef{ID: &id, Name: &name}},
		closingWhistle(90),
	})

	if len(rows) != 1 {
		t.Fatalf("expected one span, got %d", len(rows))
	}
	if rows[0].FirstMinute != 10 || rows[0].LastMinute != 80 || rows[0].Minutes != 70 {
		t.Fatalf("unexpected approx span: %+v", rows[0])
	}
}
