package drift

import (
	"io"
	"math"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/downhill-drift/internal/audio"
	"github.com/vovakirdan/downhill-drift/internal/config"
	"github.com/vovakirdan/downhill-drift/internal/core"
	"github.com/vovakirdan/downhill-drift/internal/games/drift/terrain"
	"github.com/vovakirdan/downhill-drift/internal/physics"
)

const frame = time.Second / 60

type fakeBody struct {
	kind   physics.Kind
	box    physics.Box
	vel    core.Vec
	static bool
}

// fakeEngine moves bodies by their velocity and nothing else: no gravity,
// no collision response. Ground contact is whatever the test says.
type fakeEngine struct {
	bodies   map[physics.Handle]*fakeBody
	next     physics.Handle
	touching bool
	steps    int
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{bodies: make(map[physics.Handle]*fakeBody)}
}

func (e *fakeEngine) add(b *fakeBody) physics.Handle {
	e.next++
	e.bodies[e.next] = b
	return e.next
}

func (e *fakeEngine) AddStatic(kind physics.Kind, b physics.Box) physics.Handle {
	return e.add(&fakeBody{kind: kind, box: b, static: true})
}

func (e *fakeEngine) AddBody(spec physics.BodySpec) physics.Handle {
	return e.add(&fakeBody{kind: spec.Kind, box: physics.Box{
		Center: spec.Center,
		Width:  spec.Width,
		Height: spec.Height,
	}})
}

func (e *fakeEngine) Remove(h physics.Handle) { delete(e.bodies, h) }

func (e *fakeEngine) Translate(h physics.Handle, dx, dy float64) {
	if b, ok := e.bodies[h]; ok {
		b.box.Center = b.box.Center.Add(core.V(dx, dy))
	}
}

func (e *fakeEngine) Position(h physics.Handle) core.Vec {
	if b, ok := e.bodies[h]; ok {
		return b.box.Center
	}
	return core.Vec{}
}

func (e *fakeEngine) SetPosition(h physics.Handle, p core.Vec) {
	if b, ok := e.bodies[h]; ok {
		b.box.Center = p
	}
}

func (e *fakeEngine) Velocity(h physics.Handle) core.Vec {
	if b, ok := e.bodies[h]; ok {
		return b.vel
	}
	return core.Vec{}
}

func (e *fakeEngine) SetVelocity(h physics.Handle, v core.Vec) {
	if b, ok := e.bodies[h]; ok {
		b.vel = v
	}
}

func (e *fakeEngine) Angle(h physics.Handle) float64 {
	if b, ok := e.bodies[h]; ok {
		return b.box.Angle
	}
	return 0
}

func (e *fakeEngine) SetAngle(h physics.Handle, a float64) {
	if b, ok := e.bodies[h]; ok {
		b.box.Angle = a
	}
}

func (e *fakeEngine) Touching(h physics.Handle, kind physics.Kind) bool {
	return e.touching && kind == physics.KindGround
}

// Overlaps compares axis-aligned extents, ignoring rotation.
func (e *fakeEngine) Overlaps(h physics.Handle, kind physics.Kind) []physics.Handle {
	a, ok := e.bodies[h]
	if !ok {
		return nil
	}
	var hits []physics.Handle
	for id, b := range e.bodies {
		if id == h || b.kind != kind {
			continue
		}
		if math.Abs(a.box.Center.X-b.box.Center.X) < (a.box.Width+b.box.Width)/2 &&
			math.Abs(a.box.Center.Y-b.box.Center.Y) < (a.box.Height+b.box.Height)/2 {
			hits = append(hits, id)
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i] < hits[j] })
	return hits
}

func (e *fakeEngine) Step(dt float64) {
	e.steps++
	for _, b := range e.bodies {
		if !b.static {
			b.box.Center = b.box.Center.Add(b.vel.Scale(dt))
		}
	}
}

func (e *fakeEngine) count(kind physics.Kind) int {
	n := 0
	for _, b := range e.bodies {
		if b.kind == kind {
			n++
		}
	}
	return n
}

// fakeSounds records every call.
type fakeSounds struct {
	playing map[audio.Sound]bool
	plays   map[audio.Sound]int
}

func newFakeSounds() *fakeSounds {
	return &fakeSounds{playing: make(map[audio.Sound]bool), plays: make(map[audio.Sound]int)}
}

func (f *fakeSounds) Play(s audio.Sound) {
	f.playing[s] = true
	f.plays[s]++
}

func (f *fakeSounds) Stop(s audio.Sound) { f.playing[s] = false }

func (f *fakeSounds) Playing(s audio.Sound) bool { return f.playing[s] }

// flatProfile is a 2000 wide hill with a 150 gap: ground at y=300 except a
// ramp between x=1000 and x=1500 that drops to y=400.
func flatProfile() *terrain.Profile {
	var c terrain.Curve
	for x := 0.0; x <= 2000; x += 100 {
		y := 300.0
		switch {
		case x > 1000 && x < 1500:
			y = 300 + (x-1000)/5
		case x >= 1500:
			y = 400
		}
		c = append(c, terrain.Point{X: x, Y: y})
	}
	return &terrain.Profile{
		Curve:       c,
		HillWidth:   2000,
		GapWidth:    150,
		WorldHeight: 500,
		GapDepth:    200,
	}
}

type harness struct {
	s      *Session
	eng    *fakeEngine
	sounds *fakeSounds
	prof   *terrain.Profile
	cfg    config.DriftConfig
}

func newHarness(mutate ...func(*config.DriftConfig)) *harness {
	cfg := config.DefaultDriftConfig()
	for _, m := range mutate {
		m(&cfg)
	}
	h := &harness{
		eng:    newFakeEngine(),
		sounds: newFakeSounds(),
		prof:   flatProfile(),
		cfg:    cfg,
	}
	h.s = NewSession(cfg, h.prof, h.eng, h.sounds, log.New(io.Discard), 42)
	return h
}

func (h *harness) step(in core.InputFrame) {
	h.s.Step(in, frame)
}

func (h *harness) idle(n int) {
	for i := 0; i < n; i++ {
		h.step(core.NewInputFrame())
	}
}

// moveRider teleports the rider, keeping it well above the tokens' row.
func (h *harness) moveRider(x float64) {
	h.eng.SetPosition(h.s.rider, core.V(x, 200))
}
