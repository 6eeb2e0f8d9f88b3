// Package physics adapts Chipmunk2D to the small collider API the drift
// session needs: static boxes, one dynamic rider, contact and overlap queries.
//
// Every body lives in an arena keyed by Handle, so removal never depends on
// slice order and stale handles are simply ignored.
package physics

import (
	"math"
	"sort"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/downhill-drift/internal/core"
)

// Handle identifies a body added to a Space. The zero Handle is never issued.
type Handle uint64

// Kind labels a collider group.
type Kind int

const (
	KindGround Kind = iota // Solid terrain
	KindToken              // Sensor, detected but never collided with
	KindRider              // The player's board
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindGround:
		return "ground"
	case KindToken:
		return "token"
	case KindRider:
		return "rider"
	default:
		return "unknown"
	}
}

// Box describes a static rectangle centred at Center and rotated by Angle radians.
type Box struct {
	Center     core.Vec
	Width      float64
	Height     float64
	Angle      float64
	Friction   float64
	Elasticity float64
}

// BodySpec describes a dynamic box body.
type BodySpec struct {
	Kind         Kind
	Center       core.Vec
	Width        float64
	Height       float64
	Mass         float64
	Friction     float64
	Elasticity   float64
	Damping      float64 // Fraction of velocity lost per second
	LockRotation bool
}

type entry struct {
	kind    Kind
	body    *cp.Body
	shape   *cp.Shape
	static  bool
	damping float64
}

// Space is a Chipmunk space plus the handle arena.
// It is not safe for concurrent use; the frame loop owns it.
type Space struct {
	space    *cp.Space
	entries  map[Handle]*entry
	next     Handle
	substeps int
}

// New creates a space with gravity pointing along +y (screen down).
// Each Step is split into substeps solver steps; values below 1 mean one.
// Chipmunk has no continuous collision, so a fast rider needs several
// substeps to stay on thin colliders.
func New(gravity float64, iterations, substeps int) *Space {
	s := cp.NewSpace()
	s.SetGravity(cp.Vector{X: 0, Y: gravity})
	if iterations > 0 {
		s.Iterations = uint(iterations)
	}
	if substeps < 1 {
		substeps = 1
	}
	return &Space{
		space:    s,
		entries:  make(map[Handle]*entry),
		substeps: substeps,
	}
}

func (s *Space) issue(e *entry) Handle {
	s.next++
	h := s.next
	e.shape.UserData = h
	s.entries[h] = e
	return h
}

// AddStatic places a static box. Token boxes are sensors.
func (s *Space) AddStatic(kind Kind, b Box) Handle {
	body := cp.NewStaticBody()
	body.SetPosition(vec(b.Center))
	body.SetAngle(b.Angle)
	s.space.AddBody(body)

	shape := cp.NewBox(body, b.Width, b.Height, 0)
	shape.SetFriction(b.Friction)
	shape.SetElasticity(b.Elasticity)
	shape.SetSensor(kind == KindToken)
	s.space.AddShape(shape)

	return s.issue(&entry{kind: kind, body: body, shape: shape, static: true})
}

// AddBody places a dynamic box.
func (s *Space) AddBody(spec BodySpec) Handle {
	moment := cp.MomentForBox(spec.Mass, spec.Width, spec.Height)
	if spec.LockRotation {
		moment = math.Inf(1)
	}
	body := s.space.AddBody(cp.NewBody(spec.Mass, moment))
	body.SetPosition(vec(spec.Center))

	shape := s.space.AddShape(cp.NewBox(body, spec.Width, spec.Height, 0))
	shape.SetFriction(spec.Friction)
	shape.SetElasticity(spec.Elasticity)

	return s.issue(&entry{kind: spec.Kind, body: body, shape: shape, damping: spec.Damping})
}

// Remove destroys a body. Unknown handles are ignored.
func (s *Space) Remove(h Handle) {
	e, ok := s.entries[h]
	if !ok {
		return
	}
	s.space.RemoveShape(e.shape)
	s.space.RemoveBody(e.body)
	delete(s.entries, h)
}

// Translate moves a body by (dx, dy) without touching its velocity.
func (s *Space) Translate(h Handle, dx, dy float64) {
	e, ok := s.entries[h]
	if !ok {
		return
	}
	e.body.SetPosition(e.body.Position().Add(cp.Vector{X: dx, Y: dy}))
	if e.static {
		s.reindex(e)
	}
}

// Position returns the centre of a body.
func (s *Space) Position(h Handle) core.Vec {
	if e, ok := s.entries[h]; ok {
		return fromCP(e.body.Position())
	}
	return core.Vec{}
}

// SetPosition teleports a body.
func (s *Space) SetPosition(h Handle, p core.Vec) {
	e, ok := s.entries[h]
	if !ok {
		return
	}
	e.body.SetPosition(vec(p))
	if e.static {
		s.reindex(e)
	}
}

// Velocity returns the linear velocity of a body.
func (s *Space) Velocity(h Handle) core.Vec {
	if e, ok := s.entries[h]; ok {
		return fromCP(e.body.Velocity())
	}
	return core.Vec{}
}

// SetVelocity overwrites the linear velocity of a body.
func (s *Space) SetVelocity(h Handle, v core.Vec) {
	if e, ok := s.entries[h]; ok {
		e.body.SetVelocity(v.X, v.Y)
	}
}

// Angle returns the rotation of a body in radians.
func (s *Space) Angle(h Handle) float64 {
	if e, ok := s.entries[h]; ok {
		return e.body.Angle()
	}
	return 0
}

// SetAngle overwrites the rotation of a body.
func (s *Space) SetAngle(h Handle, a float64) {
	e, ok := s.entries[h]
	if !ok {
		return
	}
	e.body.SetAngle(a)
	if e.static {
		s.reindex(e)
	}
}

// reindex refreshes a static shape after its body moved. Chipmunk caches
// static vertices and bounds, and AddShape is what recomputes them.
func (s *Space) reindex(e *entry) {
	s.space.RemoveShape(e.shape)
	s.space.AddShape(e.shape)
}

// Touching reports whether h has an active contact with any collider of kind.
// Contacts are those resolved by the last Step.
func (s *Space) Touching(h Handle, kind Kind) bool {
	e, ok := s.entries[h]
	if !ok {
		return false
	}
	touching := false
	e.body.EachArbiter(func(arb *cp.Arbiter) {
		a, b := arb.Shapes()
		other := b
		if other == e.shape {
			other = a
		}
		if s.kindOf(other) == kind && !other.Sensor() {
			touching = true
		}
	})
	return touching
}

// Overlaps returns the handles of kind whose shapes overlap h, in ascending order.
func (s *Space) Overlaps(h Handle, kind Kind) []Handle {
	e, ok := s.entries[h]
	if !ok {
		return nil
	}
	var hits []Handle
	s.space.ShapeQuery(e.shape, func(shape *cp.Shape, _ *cp.ContactPointSet) {
		other, ok := shape.UserData.(Handle)
		if !ok || other == h {
			return
		}
		if oe, ok := s.entries[other]; ok && oe.kind == kind {
			hits = append(hits, other)
		}
	})
	sort.Slice(hits, func(i, j int) bool { return hits[i] < hits[j] })
	return hits
}

// Step advances the simulation by dt seconds in equal substeps, applying
// linear damping before each one.
func (s *Space) Step(dt float64) {
	if dt <= 0 {
		return
	}
	sub := dt / float64(s.substeps)
	for i := 0; i < s.substeps; i++ {
		for _, e := range s.entries {
			if e.static || e.damping <= 0 {
				continue
			}
			keep := math.Max(0, 1-e.damping*sub)
			e.body.SetVelocityVector(e.body.Velocity().Mult(keep))
		}
		s.space.Step(sub)
	}
}

// Substeps returns how many solver steps each Step takes.
func (s *Space) Substeps() int {
	return s.substeps
}

// Count returns how many live bodies have the given kind.
func (s *Space) Count(kind Kind) int {
	n := 0
	for _, e := range s.entries {
		if e.kind == kind {
			n++
		}
	}
	return n
}

// Clear removes every body.
func (s *Space) Clear() {
	for h := range s.entries {
		s.Remove(h)
	}
}

func (s *Space) kindOf(shape *cp.Shape) Kind {
	if h, ok := shape.UserData.(Handle); ok {
		if e, ok := s.entries[h]; ok {
			return e.kind
		}
	}
	return -1
}

func vec(v core.Vec) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func fromCP(v cp.Vector) core.Vec {
	return core.Vec{X: v.X, Y: v.Y}
}
