package event

import "testing"

func int64Ptr(v int64) *int64 { return &v }

func float64Ptr(v float64) *float64 { return &v }

func TestFlattenKeepsEveryEvent(t *testing.T) {
	key := MatchKey{CompetitionID: 11, SeasonID: 90, MatchID: 3869685}
	events := []RawEvent{
		{ID: "a", Index: 1, Type: &NameRef{Name: TypePass}},
		{ID: "a", Index: 1, Type: &NameRef{Name: TypePass}}, // duplicate stays
		{ID: "b", Index: 2},
	}

	rows := Flatten(key, events)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.CompetitionID != 11 || row.SeasonID != 90 || row.MatchID != 3869685 {
			t.Fatalf("match key not propagated: %+v", row)
		}
	}
}

func TestFlattenOptionalSafety(t *testing.T) {
	rows := Flatten(MatchKey{MatchID: 1}, []RawEvent{{ID: "bare"}})
	row := rows[0]

	if row.Type != nil || row.Team != nil || row.Player != nil || row.PlayerID != nil {
		t.Fatalf("absent nested objects must yield nil columns: %+v", row)
	}
	if row.X != nil || row.EndX != nil || row.PassOutcome != nil || row.ShotXG != nil {
		t.Fatalf("absent detail objects must yield nil columns: %+v", row)
	}
	if row.Minute != 0 || row.Second != 0 {
		t.Fatalf("absent timing must default to zero, got %d:%d", row.Minute, row.Second)
	}
}

func TestFlattenMalformedLocationDegradesToNil(t *testing.T) {
	rows := Flatten(MatchKey{MatchID: 1}, []RawEvent{
		{ID: "short", Location: []float64{42.0}},
		{ID: "empty", Location: []float64{}},
		{ID: "ok", Location: []float64{42.0, 18.5}},
	})

	if rows[0].X != nil || rows[1].X != nil {
		t.Fatalf("malformed locations must degrade to nil")
	}
	if rows[2].X == nil || *rows[2].X != 42.0 || *rows[2].Y != 18.5 {
		t.Fatalf("valid location lost: %+v", rows[2])
	}
}

func TestFlattenEndLocationPassBeforeCarry(t *testing.T) {
	minute := int64Ptr(10)
	rows := Flatten(MatchKey{MatchID: 1}, []RawEvent{
		{
			ID:     "pass",
			Minute: minute,
			Type:   &NameRef{Name: TypePass},
			Pass: &PassDetail{
				EndLocation: []float64{60, 40},
				Length:      float64Ptr(22.5),
				Outcome:     &NameRef{Name: "Incomplete"},
			},
		},
		{
			ID:    "carry",
			Type:  &NameRef{Name: TypeCarry},
			Carry: &CarryDetail{EndLocation: []float64{70, 30}},
		},
		{
			ID:   "shot",
			Type: &NameRef{Name: TypeShot},
			Shot: &ShotDetail{StatsbombXG: float64Ptr(0.08), Outcome: &NameRef{Name: "Saved"}},
		},
	})

	if rows[0].EndX == nil || *rows[0].EndX != 60 {
		t.Fatalf("pass end location missing: %+v", rows[0])
	}
	if rows[0].PassOutcome == nil || *rows[0].PassOutcome != "Incomplete" || *rows[0].PassLength != 22.5 {
		t.Fatalf("pass detail columns missing: %+v", rows[0])
	}
	if rows[1].EndX == nil || *rows[1].EndX != 70 {
		t.Fatalf("carry end location missing: %+v", rows[1])
	}
	if rows[2].EndX != nil {
		t.Fatalf("shot must not contribute end location: %+v", rows[2])
	}
	if rows[2].ShotXG == nil || *rows[2].ShotXG != 0.08 || *rows[2].ShotOutcome != "Saved" {
		t.Fatalf("shot detail columns missing: %+v", rows[2])
	}
}

func TestSortChronologicalStableTies(t *testing.T) {
	events := []RawEvent{
		{ID: "late", Minute: int64Ptr(45), Second: int64Ptr(12)},
		{ID: "tie-first", Minute: int64Ptr(10), Second: int64Ptr(0)},
		{ID: "tie-second", Minute: int64Ptr(10), Second: int64Ptr(0)},
		{ID: "early"},
	}

	sorted := SortChronological(events)

	want := []string{"early", "tie-first", "tie-second", "late"}
	for i, id := range want {
		if sorted[i].ID != id {
			t.Fatalf("position %d: want %s got %s", i, id, sorted[i].ID)
		}
	}
	if events[0].ID != "late" {
		t.Fatalf("input slice must not be reordered")
	}
}
