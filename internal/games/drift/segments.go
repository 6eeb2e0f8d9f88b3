package drift

import (
	"math"

	"github.com/vovakirdan/downhill-drift/internal/config"
	"github.com/vovakirdan/downhill-drift/internal/core"
	"github.com/vovakirdan/downhill-drift/internal/games/drift/terrain"
	"github.com/vovakirdan/downhill-drift/internal/physics"
)

// Segment is one tile of hill plus gap placed at Offset.
type Segment struct {
	Offset    float64
	colliders []physics.Handle
}

// Colliders returns the number of ground boxes the segment owns.
func (s *Segment) Colliders() int {
	return len(s.colliders)
}

// Span returns the world x range the tile covers.
func (s *Segment) Span(tileWidth float64) (lo, hi float64) {
	return s.Offset, s.Offset + tileWidth
}

// Ring owns a fixed number of segments laid end to end.
// Segments are never created or destroyed after NewRing, only moved.
type Ring struct {
	profile  *terrain.Profile
	eng      Engine
	cfg      config.ColliderConfig
	segments []*Segment
}

// NewRing lays out n segments at 0, T, 2T, ... and builds their colliders.
func NewRing(profile *terrain.Profile, eng Engine, cfg config.ColliderConfig, n int) *Ring {
	r := &Ring{
		profile:  profile,
		eng:      eng,
		cfg:      cfg,
		segments: make([]*Segment, max(n, 1)),
	}
	for i := range r.segments {
		r.segments[i] = &Segment{}
	}
	r.Reset()
	return r
}

// Reset moves every segment back to its starting slot and rebuilds colliders.
func (r *Ring) Reset() {
	tile := r.profile.TileWidth()
	for i, seg := range r.segments {
		seg.Offset = float64(i) * tile
		r.build(seg)
	}
}

// Segments returns the live segments in ring order.
func (r *Ring) Segments() []*Segment {
	return r.segments
}

// Offsets returns each segment's offset in ring order.
func (r *Ring) Offsets() []float64 {
	out := make([]float64, len(r.segments))
	for i, seg := range r.segments {
		out[i] = seg.Offset
	}
	return out
}

// Front returns the largest offset in the ring.
func (r *Ring) Front() float64 {
	front := r.segments[0].Offset
	for _, seg := range r.segments[1:] {
		front = math.Max(front, seg.Offset)
	}
	return front
}

// Due reports whether the rider has left seg far enough behind to move it.
func (r *Ring) Due(seg *Segment, riderX, margin float64) bool {
	return riderX > seg.Offset+r.profile.TileWidth()+margin
}

// Recycle moves seg one tile past the current front and rebuilds its
// colliders there. It returns the old offset.
func (r *Ring) Recycle(seg *Segment) float64 {
	old := seg.Offset
	seg.Offset = r.Front() + r.profile.TileWidth()
	r.build(seg)
	return old
}

// Shift translates every segment and collider by dx in place.
func (r *Ring) Shift(dx float64) {
	for _, seg := range r.segments {
		seg.Offset += dx
		for _, h := range seg.colliders {
			r.eng.Translate(h, dx, 0)
		}
	}
}

// Destroy removes every collider. The segments keep their offsets.
func (r *Ring) Destroy() {
	for _, seg := range r.segments {
		r.clear(seg)
	}
}

func (r *Ring) clear(seg *Segment) {
	for _, h := range seg.colliders {
		r.eng.Remove(h)
	}
	seg.colliders = seg.colliders[:0]
}

// build replaces seg's colliders with one box per pair of curve points.
func (r *Ring) build(seg *Segment) {
	r.clear(seg)
	curve := r.profile.Curve
	for i := 1; i < len(curve); i++ {
		box := ColliderBox(curve[i-1], curve[i], seg.Offset, r.cfg)
		seg.colliders = append(seg.colliders, r.eng.AddStatic(physics.KindGround, box))
	}
}

// ColliderBox returns the static box for the curve segment a→b shifted by
// offset. The box is rotated to the segment and pushed half its thickness
// into the ground, so its top edge lies on the curve.
func ColliderBox(a, b terrain.Point, offset float64, cfg config.ColliderConfig) physics.Box {
	p1 := core.V(a.X+offset, a.Y)
	p2 := core.V(b.X+offset, b.Y)
	d := p2.Sub(p1)
	angle := d.Angle()

	// Unit normal pointing down (+y) for a left-to-right segment.
	normal := core.V(-math.Sin(angle), math.Cos(angle))
	return physics.Box{
		Center:     p1.Mid(p2).Add(normal.Scale(cfg.Thickness / 2)),
		Width:      d.Len() + cfg.Padding,
		Height:     cfg.Thickness,
		Angle:      angle,
		Friction:   cfg.Friction,
		Elasticity: cfg.Bounciness,
	}
}
