package risk

import "testing"

func TestACWRCoupledExact(t *testing.T) {
	got := ACWR(210, 700, VariantCoupled)
	if got == nil {
		t.Fatal("gate passes at 700 chronic minutes")
	}
	// 210 / (700/4) must be exact, not approximate.
	if *got != 1.2 {
		t.Fatalf("expected exactly 1.2, got %v", *got)
	}
}

func TestACWRCoupledGate(t *testing.T) {
	if got := ACWR(90, 100, VariantCoupled); got != nil {
		t.Fatalf("chronic load below the 180-minute gate must be undefined, got %v", *got)
	}
	if got := ACWR(90, 180, VariantCoupled); got == nil {
		t.Fatal("the gate is inclusive at 180")
	}
	if HighRisk(ACWR(90, 100, VariantCoupled)) {
		t.Fatal("undefined ratio must never flag high risk")
	}
}

func TestACWRUncoupled(t *testing.T) {
	// 210 / ((480-210)/3) = 210/90
	got := ACWR(210, 480, VariantUncoupled)
	if got == nil {
		t.Fatal("positive remainder passes the uncoupled gate")
	}
	if want := 210.0 / 90.0; *got != want {
		t.Fatalf("expected %v, got %v", want, *got)
	}

	if got := ACWR(90, 90, VariantUncoupled); got != nil {
		t.Fatalf("zero remainder must be undefined, got %v", *got)
	}
}

func TestHighRisk(t *testing.T) {
	high := 1.6
	borderline := 1.5
	if !HighRisk(&high) {
		t.Fatal("1.6 is above the threshold")
	}
	if HighRisk(&borderline) {
		t.Fatal("the threshold itself is not high risk")
	}
	if HighRisk(nil) {
		t.Fatal("nil ratio is not high risk")
	}
}

func TestShiftNextLabel(t *testing.T) {
	shifted := ShiftNextLabel([]bool{false, true, false})

	if shifted[0] == nil || *shifted[0] != true {
		t.Fatalf("row 0 must receive row 1's label: %v", shifted[0])
	}
	if shifted[1] == nil || *shifted[1] != false {
		t.Fatalf("row 1 must receive row 2's label: %v", shifted[1])
	}
	if shifted[2] != nil {
		t.Fatal("the final match has no next label")
	}

	if got := ShiftNextLabel(nil); len(got) != 0 {
		t.Fatalf("empty partition yields no labels, got %v", got)
	}

	single := ShiftNextLabel([]bool{true})
	if single[0] != nil {
		t.Fatal("a single-match partition has nothing to predict")
	}
}
