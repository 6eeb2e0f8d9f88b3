package drift

import (
	"math"
	"sort"
	"testing"

	"github.com/vovakirdan/downhill-drift/internal/audio"
	"github.com/vovakirdan/downhill-drift/internal/config"
	"github.com/vovakirdan/downhill-drift/internal/core"
	"github.com/vovakirdan/downhill-drift/internal/physics"
)

func TestStartLaysOutRound(t *testing.T) {
	h := newHarness()
	h.s.Start()

	if h.s.Phase() != PhasePlaying {
		t.Fatalf("phase = %v, expected playing", h.s.Phase())
	}
	if got := h.s.Segments(); len(got) != 2 || got[0] != 0 || got[1] != 2150 {
		t.Errorf("segments = %v, expected [0 2150]", got)
	}
	if got := h.s.Timer(); got != 20 {
		t.Errorf("timer = %d, expected 20", got)
	}
	if got := len(h.s.Tokens()); got != 6 {
		t.Errorf("tokens = %d, expected 3 per segment", got)
	}
	if got := h.eng.count(physics.KindGround); got != 2*(len(h.prof.Curve)-1) {
		t.Errorf("ground colliders = %d, expected %d", got, 2*(len(h.prof.Curve)-1))
	}

	pos, ok := h.s.RiderPosition()
	if !ok {
		t.Fatal("rider should exist")
	}
	if expected := h.prof.HeightAt(150) - 10 - 60; pos != core.V(150, expected) {
		t.Errorf("rider spawned at %v, expected (150, %f)", pos, expected)
	}
}

func TestScenarioRecycle(t *testing.T) {
	h := newHarness()
	h.s.Start()

	h.moveRider(2150 + 300 + 10)
	h.step(core.NewInputFrame())

	offsets := h.s.Segments()
	if offsets[0] != 4300 || offsets[1] != 2150 {
		t.Fatalf("segments = %v, expected [4300 2150]", offsets)
	}

	fresh := 0
	for _, tok := range h.s.Tokens() {
		if tok.Pos.X >= -50 && tok.Pos.X <= 2200 {
			t.Errorf("token at x=%f should have been cleared", tok.Pos.X)
		}
		if tok.Pos.X >= 4300+200 && tok.Pos.X <= 4300+1800 {
			fresh++
		}
	}
	if fresh != 3 {
		t.Errorf("expected 3 tokens spawned on the recycled segment, got %d", fresh)
	}
	if got := len(h.s.Tokens()); got != 6 {
		t.Errorf("token count = %d, expected 6", got)
	}
	if got := h.eng.count(physics.KindToken); got != 6 {
		t.Errorf("engine holds %d token sensors, expected 6", got)
	}
	if got := h.eng.count(physics.KindGround); got != 2*(len(h.prof.Curve)-1) {
		t.Errorf("recycle leaked colliders: %d", got)
	}
}

func TestScenarioTimeout(t *testing.T) {
	h := newHarness()
	h.s.Start()

	h.idle(1199)
	if h.s.Timer() != 1 || h.s.GameOver() {
		t.Fatalf("after 1199 frames timer = %d, game over = %v; expected 1, false", h.s.Timer(), h.s.GameOver())
	}

	h.idle(1)
	if h.s.Timer() != 0 {
		t.Errorf("timer = %d, expected 0", h.s.Timer())
	}
	if !h.s.GameOver() || h.s.Phase() != PhaseGameOver {
		t.Error("round should be over when the timer hits zero")
	}

	steps := h.eng.steps
	h.idle(10)
	if h.eng.steps != steps {
		t.Error("physics must not advance after game over")
	}
}

func TestScenarioFall(t *testing.T) {
	tests := []struct {
		name     string
		y        float64
		gameOver bool
	}{
		{"at the limit", 500 + 600, false},
		{"past the limit", 500 + 600 + 0.5, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness()
			h.s.Start()
			h.eng.SetPosition(h.s.rider, core.V(300, tc.y))

			h.step(core.NewInputFrame())

			if h.s.GameOver() != tc.gameOver {
				t.Errorf("game over = %v, expected %v", h.s.GameOver(), tc.gameOver)
			}
			if h.s.Timer() != 20 {
				t.Errorf("falling must not touch the timer, got %d", h.s.Timer())
			}
		})
	}
}

func TestScenarioPickup(t *testing.T) {
	h := newHarness()
	h.s.Start()

	pos, _ := h.s.RiderPosition()
	tok := h.s.tokens.place(pos)
	before := len(h.s.Tokens())

	h.step(core.NewInputFrame())

	if got := h.s.Timer(); got != 23 {
		t.Errorf("timer = %d, expected 23", got)
	}
	if got := len(h.s.Tokens()); got != before-1 {
		t.Errorf("tokens = %d, expected %d", got, before-1)
	}
	for _, other := range h.s.Tokens() {
		if other.ID == tok.ID {
			t.Error("collected token is still live")
		}
	}
	if h.sounds.plays[audio.SoundPickup] != 1 {
		t.Errorf("pickup sound played %d times, expected 1", h.sounds.plays[audio.SoundPickup])
	}
	if h.s.Result().Tokens != 1 {
		t.Errorf("result tokens = %d, expected 1", h.s.Result().Tokens)
	}

	// The same token cannot pay out twice.
	h.step(core.NewInputFrame())
	if got := h.s.Timer(); got != 23 {
		t.Errorf("timer after second frame = %d, expected 23", got)
	}
}

func TestRingInvariant(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5} {
		h := newHarness(func(c *config.DriftConfig) { c.Terrain.Segments = n })
		h.s.Start()
		tile := h.prof.TileWidth()

		x := 150.0
		for i := 0; i < 200; i++ {
			x += 377
			h.moveRider(x)
			h.step(core.NewInputFrame())
			pos, _ := h.s.RiderPosition()
			x = pos.X

			offsets := h.s.Segments()
			if len(offsets) != n {
				t.Fatalf("ring size %d became %d", n, len(offsets))
			}
			sort.Float64s(offsets)
			for j := 1; j < len(offsets); j++ {
				gap := offsets[j] - offsets[0]
				if gap == 0 || math.Mod(gap, tile) != 0 {
					t.Fatalf("ring %d step %d: offsets %v not distinct multiples of %f", n, i, offsets, tile)
				}
			}
		}
		if h.s.GameOver() {
			t.Errorf("ring %d: round ended unexpectedly", n)
		}
		if got := h.eng.count(physics.KindGround); got != n*(len(h.prof.Curve)-1) {
			t.Errorf("ring %d: %d ground colliders, expected %d", n, got, n*(len(h.prof.Curve)-1))
		}
	}
}

func TestRecenterPreservesLayout(t *testing.T) {
	h := newHarness()
	h.s.Start()
	tile := h.prof.TileWidth()

	h.moveRider(3*tile + 1)
	before := make(map[physics.Handle]core.Vec)
	for id, b := range h.eng.bodies {
		before[id] = b.box.Center
	}
	offsets := h.s.Segments()
	dist := h.s.Distance()

	h.s.recenter()

	for id, b := range h.eng.bodies {
		moved := b.box.Center.Sub(before[id])
		if math.Abs(moved.X+tile) > 1e-9 || moved.Y != 0 {
			t.Fatalf("body %d moved by %v, expected (-%f, 0)", id, moved, tile)
		}
	}
	for i, off := range h.s.Segments() {
		if off != offsets[i]-tile {
			t.Errorf("segment %d offset %f, expected %f", i, off, offsets[i]-tile)
		}
	}
	for _, tok := range h.s.Tokens() {
		if tok.Pos != h.eng.Position(tok.ID) {
			t.Errorf("token %d bookkeeping %v disagrees with engine %v", tok.ID, tok.Pos, h.eng.Position(tok.ID))
		}
	}
	if got := h.s.Distance(); got != dist {
		t.Errorf("distance changed across recenter: %f -> %f", dist, got)
	}

	// Below the threshold nothing moves.
	pos, _ := h.s.RiderPosition()
	h.s.recenter()
	if now, _ := h.s.RiderPosition(); now != pos {
		t.Error("recenter below the threshold moved the rider")
	}
}

func TestRecenterDuringPlay(t *testing.T) {
	h := newHarness()
	h.s.Start()
	tile := h.prof.TileWidth()

	h.moveRider(3*tile + 10)
	h.step(core.NewInputFrame())

	pos, _ := h.s.RiderPosition()
	if pos.X != 2*tile+10 {
		t.Errorf("rider x = %f, expected %f", pos.X, 2*tile+10)
	}
	if h.s.shifts != 1 {
		t.Errorf("shifts = %d, expected 1", h.s.shifts)
	}
	if d := h.s.Distance(); d != 3*tile+10-150 {
		t.Errorf("distance = %f, expected %f", d, 3*tile+10-150)
	}
}

func TestTokenLift(t *testing.T) {
	h := newHarness()
	h.s.Start()

	for i := 0; i < 10; i++ {
		h.s.tokens.Spawn(float64(i) * h.prof.TileWidth())
	}
	for _, tok := range h.s.Tokens() {
		if tok.Pos.Y != h.prof.HeightAt(tok.Pos.X)-40 {
			t.Errorf("token at x=%f has y=%f, expected %f", tok.Pos.X, tok.Pos.Y, h.prof.HeightAt(tok.Pos.X)-40)
		}
		local := h.prof.Local(tok.Pos.X)
		if local < 200 || local > 1800 {
			t.Errorf("token local x %f outside [200, 1800]", local)
		}
		if h.eng.Position(tok.ID) != tok.Pos {
			t.Errorf("token sensor not at token position")
		}
	}
}

func TestPhaseTransitions(t *testing.T) {
	h := newHarness()

	if h.s.Phase() != PhaseTitle {
		t.Fatalf("new session phase = %v, expected title", h.s.Phase())
	}
	if _, ok := h.s.RiderPosition(); ok {
		t.Error("title screen should have no rider")
	}

	// Controls popup swallows confirm until closed.
	h.step(core.InputOf(core.ActionControls))
	if !h.s.ControlsOpen() {
		t.Fatal("controls popup should open from the title")
	}
	h.step(core.InputOf(core.ActionConfirm))
	if h.s.Phase() != PhaseTitle {
		t.Error("confirm must not start a round behind the controls popup")
	}
	h.step(core.InputOf(core.ActionBack))
	if h.s.ControlsOpen() {
		t.Error("back should close the popup")
	}

	h.step(core.InputOf(core.ActionConfirm))
	if h.s.Phase() != PhasePlaying {
		t.Fatalf("confirm should start, phase = %v", h.s.Phase())
	}
	h.s.OpenControls()
	if h.s.ControlsOpen() {
		t.Error("controls popup is only reachable from the title")
	}

	// Move on, then fall.
	h.moveRider(2460)
	h.step(core.NewInputFrame())
	offsets := h.s.Segments()
	h.eng.SetPosition(h.s.rider, core.V(2460, 5000))
	h.step(core.NewInputFrame())
	if !h.s.GameOver() {
		t.Fatal("rider should have fallen")
	}

	h.step(core.InputOf(core.ActionTitle))
	if h.s.Phase() != PhaseTitle {
		t.Fatalf("title action should return to title, phase = %v", h.s.Phase())
	}
	if _, ok := h.s.RiderPosition(); ok || len(h.s.Tokens()) != 0 {
		t.Error("title should clear rider and tokens")
	}
	if h.eng.count(physics.KindRider)+h.eng.count(physics.KindToken) != 0 {
		t.Error("title left bodies in the engine")
	}
	if got := h.s.Segments(); got[0] != offsets[0] || got[1] != offsets[1] {
		t.Errorf("title must not rebuild the ring: %v -> %v", offsets, got)
	}
	if h.s.Timer() != 20 {
		t.Errorf("title should reset the timer, got %d", h.s.Timer())
	}

	h.s.ToggleControls()
	if !h.s.ControlsOpen() {
		t.Error("toggle should open the popup on the title")
	}
	h.s.ToggleControls()
	if h.s.ControlsOpen() {
		t.Error("toggle should close the popup")
	}
}

func TestRestart(t *testing.T) {
	h := newHarness()
	h.s.Start()
	h.moveRider(2460)
	h.step(core.NewInputFrame())
	h.eng.SetPosition(h.s.rider, core.V(2460, 5000))
	h.step(core.NewInputFrame())
	if !h.s.GameOver() {
		t.Fatal("rider should have fallen")
	}

	h.step(core.InputOf(core.ActionRestart))

	if h.s.Phase() != PhasePlaying || h.s.Timer() != 20 {
		t.Errorf("restart: phase %v timer %d", h.s.Phase(), h.s.Timer())
	}
	if got := h.s.Segments(); got[0] != 0 || got[1] != 2150 {
		t.Errorf("restart should rebuild the ring at the origin, got %v", got)
	}
	if h.eng.count(physics.KindRider) != 1 {
		t.Errorf("restart left %d riders", h.eng.count(physics.KindRider))
	}
	if got := len(h.s.Tokens()); got != 6 {
		t.Errorf("restart tokens = %d, expected 6", got)
	}
	if h.s.Result().Distance != 0 {
		t.Errorf("restart should reset distance, got %f", h.s.Result().Distance)
	}
}

func TestAirborneCue(t *testing.T) {
	h := newHarness()
	h.s.Start()

	h.step(core.NewInputFrame())
	if !h.s.Airborne() || !h.sounds.Playing(audio.SoundTrick) {
		t.Fatal("a rider dropped from above should start airborne with the trick sound")
	}

	h.step(core.NewInputFrame())
	if h.sounds.plays[audio.SoundTrick] != 1 {
		t.Errorf("trick sound restarted while still airborne: %d plays", h.sounds.plays[audio.SoundTrick])
	}

	h.eng.touching = true
	h.step(core.NewInputFrame())
	if h.s.Airborne() || h.sounds.Playing(audio.SoundTrick) {
		t.Error("landing should clear airborne and stop the trick sound")
	}

	h.eng.touching = false
	h.step(core.NewInputFrame())
	if !h.s.Airborne() || h.sounds.plays[audio.SoundTrick] != 2 {
		t.Error("leaving the ground again should restart the trick sound")
	}

	h.eng.SetPosition(h.s.rider, core.V(300, 5000))
	h.step(core.NewInputFrame())
	if h.sounds.Playing(audio.SoundTrick) {
		t.Error("game over should stop the trick sound")
	}
}

func TestSteering(t *testing.T) {
	h := newHarness()
	h.s.Start()

	h.step(core.InputOf(core.ActionRight))
	if v := h.eng.Velocity(h.s.rider); v.X != 540 {
		t.Errorf("right: vx = %f, expected 540", v.X)
	}

	h.step(core.InputOf(core.ActionLeft))
	if v := h.eng.Velocity(h.s.rider); v.X != -540 {
		t.Errorf("left: vx = %f, expected -540", v.X)
	}

	h.eng.SetVelocity(h.s.rider, core.V(100, 0))
	h.step(core.InputOf(core.ActionPush))
	v := h.eng.Velocity(h.s.rider)
	if v.X != 100 || math.Abs(v.Y-3600*frame.Seconds()) > 1e-9 {
		t.Errorf("push: velocity %v, expected (100, 60)", v)
	}
}

func TestTiltLimit(t *testing.T) {
	h := newHarness()
	h.s.Start()

	h.eng.SetAngle(h.s.rider, 1.2)
	h.step(core.NewInputFrame())
	if a := h.s.RiderAngle(); math.Abs(a-math.Pi/6) > 1e-12 {
		t.Errorf("angle = %f, expected %f", a, math.Pi/6)
	}

	h.eng.SetAngle(h.s.rider, -0.2)
	h.step(core.NewInputFrame())
	if a := h.s.RiderAngle(); a != -0.2 {
		t.Errorf("angle inside the limit changed to %f", a)
	}
}

func TestDaylightCycle(t *testing.T) {
	h := newHarness()
	h.s.Start()
	tile := h.prof.TileWidth()

	if d := h.s.Daylight(); d != 1 {
		t.Errorf("daylight at the start = %f, expected 1", d)
	}
	h.moveRider(150 + 3*tile)
	if d := h.s.Daylight(); math.Abs(d) > 1e-12 {
		t.Errorf("daylight half a cycle in = %f, expected 0", d)
	}
}
