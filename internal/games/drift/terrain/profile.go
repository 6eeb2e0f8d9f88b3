package terrain

import (
	"errors"
	"fmt"
	"image"

	"github.com/vovakirdan/downhill-drift/internal/core"
)

// ErrEmptyCurve reports a silhouette with too few opaque columns to form ground.
var ErrEmptyCurve = errors.New("terrain: silhouette has no ground")

// Options controls how a silhouette becomes a Profile.
type Options struct {
	Stride     int     // Column stride while scanning
	Scale      float64 // World units per pixel
	Threshold  uint8   // Alpha above this is ground
	Iterations int     // Smoothing passes
	GapWidth   float64 // Empty run after every hill
	GapDepth   float64 // Gap height below the world floor
}

// Profile is the shared, read-only description of one terrain tile.
//
// A tile spans [0, TileWidth) in local coordinates: the hill occupies
// [0, HillWidth) and the rest is gap.
type Profile struct {
	Curve       Curve
	HillWidth   float64
	GapWidth    float64
	WorldHeight float64
	GapDepth    float64
}

// Build extracts and smooths the curve of img and sizes the tile from the
// image dimensions. It never fails; check Validate for degenerate terrain.
func Build(img image.Image, opts Options) *Profile {
	raw := Extract(img, opts.Stride, opts.Scale, opts.Threshold)
	b := img.Bounds()
	return &Profile{
		Curve:       Smooth(raw, opts.Iterations),
		HillWidth:   float64(b.Dx()) * opts.Scale,
		GapWidth:    opts.GapWidth,
		WorldHeight: float64(b.Dy()) * opts.Scale,
		GapDepth:    opts.GapDepth,
	}
}

// Validate reports ErrEmptyCurve when the curve cannot carry colliders.
func (p *Profile) Validate() error {
	if len(p.Curve) < 2 {
		return fmt.Errorf("%w: %d sample(s)", ErrEmptyCurve, len(p.Curve))
	}
	return nil
}

// TileWidth is the repeat period of the terrain.
func (p *Profile) TileWidth() float64 {
	return p.HillWidth + p.GapWidth
}

// GapHeight is the sentinel height returned over gaps, below anything visible.
func (p *Profile) GapHeight() float64 {
	return p.WorldHeight + p.GapDepth
}

// Local folds a world x into [0, TileWidth).
func (p *Profile) Local(x float64) float64 {
	return core.Wrap(x, p.TileWidth())
}

// InGap reports whether world x falls in the empty part of its tile.
func (p *Profile) InGap(x float64) bool {
	return p.Local(x) >= p.HillWidth
}

// HeightAt returns the ground height under world x.
// Over a gap it returns GapHeight; with no curve at all it returns WorldHeight.
func (p *Profile) HeightAt(x float64) float64 {
	if len(p.Curve) == 0 {
		return p.WorldHeight
	}
	local := p.Local(x)
	if local >= p.HillWidth {
		return p.GapHeight()
	}
	return p.Curve.interpolate(local)
}
