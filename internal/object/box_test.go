package object

import "testing"

func TestBoxFallsAndStopsAtRestLine(t *testing.T) {
	b := NewBox(2, 100.5, 385, 0.0481, 12)
	b.Arm(true)
	b.SetDropPosition(0)
	if !b.IsAirborne() {
		t.Fatal("box at drop origin reported as settled")
	}
	if b.InFlight() {
		t.Fatal("box in flight before first release")
	}

	ticks := 0
	for b.IsAirborne() {
		prev := b.Y
		b.Release(1)
		if b.Y < prev {
			t.Fatalf("box moved up: %v -> %v", prev, b.Y)
		}
		if b.Y > b.RestY() {
			t.Fatalf("box overshot rest line: y = %v", b.Y)
		}
		ticks++
		if ticks > 10000 {
			t.Fatal("box never settled")
		}
	}
	if b.InFlight() {
		t.Fatal("settled box still in flight")
	}
	if b.X != 100.5 {
		t.Fatalf("box drifted sideways to %v", b.X)
	}
}

func TestBoxSpeedIsCapped(t *testing.T) {
	b := NewBox(0, 0, 1e6, 5, 3)
	b.SetDropPosition(0)
	for i := 0; i < 10; i++ {
		b.Release(1)
	}
	if b.VY != 3 {
		t.Fatalf("VY = %v, want capped at 3", b.VY)
	}
}

func TestSetDropPositionIsIdempotent(t *testing.T) {
	b := NewBox(0, 0, 385, 0.0481, 12)
	b.SetDropPosition(-40)
	b.Release(1)
	y := b.Y
	b.SetDropPosition(-200)
	if b.Y != y {
		t.Fatalf("second SetDropPosition moved the box from %v to %v", y, b.Y)
	}
}
