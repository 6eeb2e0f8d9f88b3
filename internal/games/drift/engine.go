package drift

import (
	"github.com/vovakirdan/downhill-drift/internal/audio"
	"github.com/vovakirdan/downhill-drift/internal/core"
	"github.com/vovakirdan/downhill-drift/internal/physics"
)

// Engine is the physics collaborator the session drives.
// *physics.Space satisfies it.
type Engine interface {
	AddStatic(kind physics.Kind, b physics.Box) physics.Handle
	AddBody(spec physics.BodySpec) physics.Handle
	Remove(h physics.Handle)
	Translate(h physics.Handle, dx, dy float64)

	Position(h physics.Handle) core.Vec
	SetPosition(h physics.Handle, p core.Vec)
	Velocity(h physics.Handle) core.Vec
	SetVelocity(h physics.Handle, v core.Vec)
	Angle(h physics.Handle) float64
	SetAngle(h physics.Handle, a float64)

	Touching(h physics.Handle, kind physics.Kind) bool
	Overlaps(h physics.Handle, kind physics.Kind) []physics.Handle
	Step(dt float64)
}

// Sounds is the audio collaborator. *audio.Effects and *audio.Nop satisfy it.
type Sounds interface {
	Play(s audio.Sound)
	Stop(s audio.Sound)
	Playing(s audio.Sound) bool
}

var (
	_ Engine = (*physics.Space)(nil)
	_ Sounds = (*audio.Effects)(nil)
	_ Sounds = (*audio.Nop)(nil)
)
