package physics

import (
	"math"
	"testing"

	"github.com/vovakirdan/downhill-drift/internal/core"
)

const frame = 1.0 / 60

func riderSpec(x, y float64) BodySpec {
	return BodySpec{
		Kind:     KindRider,
		Center:   core.V(x, y),
		Width:    40,
		Height:   20,
		Mass:     1,
		Friction: 0.05,
	}
}

func TestRiderLandsOnGround(t *testing.T) {
	s := New(600, 10, 1)
	s.AddStatic(KindGround, Box{Center: core.V(0, 100), Width: 1000, Height: 10, Friction: 0.1})
	rider := s.AddBody(riderSpec(0, 40))

	if s.Touching(rider, KindGround) {
		t.Fatal("rider should start in the air")
	}

	for i := 0; i < 180; i++ {
		s.Step(frame)
	}

	if !s.Touching(rider, KindGround) {
		t.Error("rider should rest on the ground")
	}
	// Ground top is at 95, rider half height is 10.
	if y := s.Position(rider).Y; math.Abs(y-85) > 1.5 {
		t.Errorf("rider rests at y=%f, expected about 85", y)
	}
}

func TestTokensAreSensors(t *testing.T) {
	s := New(0, 10, 1)
	rider := s.AddBody(riderSpec(0, 0))
	near := s.AddStatic(KindToken, Box{Center: core.V(10, 0), Width: 18, Height: 18})
	far := s.AddStatic(KindToken, Box{Center: core.V(500, 0), Width: 18, Height: 18})

	s.SetVelocity(rider, core.V(60, 0))
	s.Step(frame)

	hits := s.Overlaps(rider, KindToken)
	if len(hits) != 1 || hits[0] != near {
		t.Fatalf("Overlaps() = %v, expected [%d]", hits, near)
	}
	if v := s.Velocity(rider); math.Abs(v.X-60) > 1e-6 {
		t.Errorf("sensor should not slow the rider, velocity %v", v)
	}
	if ground := s.Overlaps(rider, KindGround); len(ground) != 0 {
		t.Errorf("Overlaps(ground) = %v, expected none", ground)
	}

	s.Translate(far, -490, 0)
	hits = s.Overlaps(rider, KindToken)
	if len(hits) != 2 || hits[0] != near || hits[1] != far {
		t.Errorf("after translate Overlaps() = %v, expected [%d %d]", hits, near, far)
	}
}

func TestRemoveAndCount(t *testing.T) {
	s := New(600, 10, 1)
	a := s.AddStatic(KindGround, Box{Center: core.V(0, 0), Width: 10, Height: 10})
	b := s.AddStatic(KindGround, Box{Center: core.V(20, 0), Width: 10, Height: 10})
	s.AddStatic(KindToken, Box{Center: core.V(40, 0), Width: 10, Height: 10})

	if a == b || a == 0 || b == 0 {
		t.Fatalf("handles must be distinct and non-zero: %d %d", a, b)
	}
	if got := s.Count(KindGround); got != 2 {
		t.Errorf("Count(ground) = %d, expected 2", got)
	}

	s.Remove(a)
	s.Remove(a)
	s.Remove(Handle(999))
	if got := s.Count(KindGround); got != 1 {
		t.Errorf("Count(ground) after remove = %d, expected 1", got)
	}
	if p := s.Position(a); p != (core.Vec{}) {
		t.Errorf("removed handle should report zero position, got %v", p)
	}

	s.Clear()
	if s.Count(KindGround)+s.Count(KindToken) != 0 {
		t.Error("Clear() should remove everything")
	}
}

func TestTranslateStatic(t *testing.T) {
	s := New(600, 10, 1)
	g := s.AddStatic(KindGround, Box{Center: core.V(1000, 100), Width: 200, Height: 10, Friction: 0.1})
	token := s.AddStatic(KindToken, Box{Center: core.V(1000, 60), Width: 18, Height: 18})

	s.Translate(g, -1000, 0)
	s.SetPosition(token, core.V(0, 80))

	if p := s.Position(g); math.Abs(p.X) > 1e-9 || math.Abs(p.Y-100) > 1e-9 {
		t.Errorf("translated position = %v, expected (0, 100)", p)
	}

	rider := s.AddBody(riderSpec(0, 80))
	if hits := s.Overlaps(rider, KindToken); len(hits) != 1 || hits[0] != token {
		t.Errorf("Overlaps() after move = %v, expected [%d]", hits, token)
	}

	for i := 0; i < 60; i++ {
		s.Step(frame)
	}
	if !s.Touching(rider, KindGround) {
		t.Errorf("rider at %v should rest on the moved ground", s.Position(rider))
	}
	if y := s.Position(rider).Y; math.Abs(y-85) > 1.5 {
		t.Errorf("rider rests at y=%f, expected about 85", y)
	}
}

func TestRotateStatic(t *testing.T) {
	s := New(0, 10, 1)
	g := s.AddStatic(KindGround, Box{Center: core.V(0, 0), Width: 200, Height: 10})
	s.SetAngle(g, math.Pi/2)

	if a := s.Angle(g); math.Abs(a-math.Pi/2) > 1e-9 {
		t.Errorf("angle = %f, expected pi/2", a)
	}
	// Upright, the box no longer reaches x=60.
	beside := s.AddBody(riderSpec(60, 0))
	if hits := s.Overlaps(beside, KindGround); len(hits) != 0 {
		t.Errorf("Overlaps() = %v, expected none after rotation", hits)
	}
	above := s.AddBody(riderSpec(0, -80))
	if hits := s.Overlaps(above, KindGround); len(hits) != 1 || hits[0] != g {
		t.Errorf("Overlaps() = %v, expected [%d] after rotation", hits, g)
	}
}

func TestSubstepsKeepFastBodyOnThinGround(t *testing.T) {
	tests := []struct {
		substeps int
		expected int
	}{
		{0, 1},
		{1, 1},
		{4, 4},
	}
	for _, tc := range tests {
		if got := New(600, 10, tc.substeps).Substeps(); got != tc.expected {
			t.Errorf("New(substeps=%d).Substeps() = %d, expected %d", tc.substeps, got, tc.expected)
		}
	}

	// 1200 u/s covers 20 units a frame, twice the floor thickness.
	s := New(0, 10, 4)
	s.AddStatic(KindGround, Box{Center: core.V(0, 100), Width: 1000, Height: 10})
	h := s.AddBody(riderSpec(0, 60))
	s.SetVelocity(h, core.V(0, 1200))
	for i := 0; i < 30; i++ {
		s.Step(frame)
	}
	if y := s.Position(h).Y; y > 95 {
		t.Errorf("body tunnelled through the floor to y=%f", y)
	}
}

func TestDamping(t *testing.T) {
	s := New(0, 10, 1)
	spec := riderSpec(0, 0)
	spec.Damping = 0.5
	h := s.AddBody(spec)

	s.SetVelocity(h, core.V(100, 0))
	s.Step(0.1)

	if v := s.Velocity(h); math.Abs(v.X-95) > 1e-9 {
		t.Errorf("velocity after damping = %f, expected 95", v.X)
	}
}

func TestLockRotation(t *testing.T) {
	s := New(600, 10, 1)
	s.AddStatic(KindGround, Box{Center: core.V(0, 100), Width: 1000, Height: 10, Angle: 0.4, Friction: 0.5})
	spec := riderSpec(0, 0)
	spec.LockRotation = true
	h := s.AddBody(spec)

	for i := 0; i < 120; i++ {
		s.Step(frame)
	}

	if a := s.Angle(h); a != 0 {
		t.Errorf("locked body rotated to %f", a)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindGround, "ground"},
		{KindToken, "token"},
		{KindRider, "rider"},
		{Kind(42), "unknown"},
	}
	for _, tc := range tests {
		if got := tc.kind.String(); got != tc.expected {
			t.Errorf("Kind(%d).String() = %q, expected %q", tc.kind, got, tc.expected)
		}
	}
}
