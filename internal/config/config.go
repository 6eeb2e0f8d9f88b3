// Package config provides YAML-based game configuration loading and
// difficulty presets for Downhill Drift.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is returned when a configuration fails validation.
var ErrInvalid = errors.New("config: invalid")

// DriftConfig contains all configuration for the Downhill Drift game.
type DriftConfig struct {
	Terrain    TerrainConfig    `yaml:"terrain"`
	Silhouette SilhouetteConfig `yaml:"silhouette"`
	Colliders  ColliderConfig   `yaml:"colliders"`
	Tokens     TokenConfig      `yaml:"tokens"`
	Rider      RiderConfig      `yaml:"rider"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Timer      TimerConfig      `yaml:"timer"`
	View       ViewConfig       `yaml:"view"`
	Audio      AudioConfig      `yaml:"audio"`
}

// TerrainConfig controls curve extraction and the segment ring.
type TerrainConfig struct {
	MapScale         float64 `yaml:"map_scale"`         // World units per silhouette pixel
	SampleStride     int     `yaml:"sample_stride"`     // Column stride when scanning the silhouette
	AlphaThreshold   uint8   `yaml:"alpha_threshold"`   // Alpha above this counts as ground
	SmoothIterations int     `yaml:"smooth_iterations"` // Passes of the 5-tap mean filter
	GapWidth         float64 `yaml:"gap_width"`         // Empty space after each hill
	GapDepth         float64 `yaml:"gap_depth"`         // How far below the world the gap height sits
	Segments         int     `yaml:"segments"`          // Ring size
	RecycleMargin    float64 `yaml:"recycle_margin"`    // Distance past a segment's end before it moves ahead
	TokenClearMargin float64 `yaml:"token_clear_margin"`
	WrapTiles        float64 `yaml:"wrap_tiles"` // Recenter once the rider passes this many tile widths
}

// SilhouetteConfig selects the hill bitmap.
// An empty Path uses the built-in generated hill of Width×Height pixels.
type SilhouetteConfig struct {
	Path   string `yaml:"path"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// ColliderConfig shapes the static boxes laid along the curve.
type ColliderConfig struct {
	Thickness  float64 `yaml:"thickness"`
	Padding    float64 `yaml:"padding"`
	Friction   float64 `yaml:"friction"`
	Bounciness float64 `yaml:"bounciness"`
}

// TokenConfig controls helmet token placement.
type TokenConfig struct {
	PerSegment   int     `yaml:"per_segment"`
	EdgeMargin   float64 `yaml:"edge_margin"`   // Keeps tokens away from the hill ends
	Lift         float64 `yaml:"lift"`          // Height above the surface
	Size         float64 `yaml:"size"`          // Collider edge length
	BonusSeconds int     `yaml:"bonus_seconds"` // Time added per pickup
}

// RiderConfig defines the board.
type RiderConfig struct {
	StartX        float64 `yaml:"start_x"`
	SpawnLift     float64 `yaml:"spawn_lift"`
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Mass          float64 `yaml:"mass"`
	Friction      float64 `yaml:"friction"`
	Bounciness    float64 `yaml:"bounciness"`
	LinearDamping float64 `yaml:"linear_damping"`
	MaxTiltDeg    float64 `yaml:"max_tilt_deg"`
	Speed         float64 `yaml:"speed"`      // Horizontal speed while steering, units/s
	PushAccel     float64 `yaml:"push_accel"` // Downward acceleration while pushing, units/s²
}

// PhysicsConfig holds world-level physics parameters.
type PhysicsConfig struct {
	Gravity    float64 `yaml:"gravity"`
	FallMargin float64 `yaml:"fall_margin"` // Game over once the rider sinks this far below the world
	Iterations int     `yaml:"iterations"`
	Substeps   int     `yaml:"substeps"` // Solver steps per frame
}

// TimerConfig controls the countdown.
type TimerConfig struct {
	StartSeconds int           `yaml:"start_seconds"`
	Interval     time.Duration `yaml:"interval"`
}

// ViewConfig maps world space onto the terminal.
type ViewConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	CameraLead    float64 `yaml:"camera_lead"`
	DayCycleTiles float64 `yaml:"day_cycle_tiles"`
}

// AudioConfig toggles sound.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // Relative volume in beep's log2 scale, 0 = unchanged
}

// HillWidth returns the world width of one hill for a silhouette of the given pixel width.
func (c DriftConfig) HillWidth(pixels int) float64 {
	return float64(pixels) * c.Terrain.MapScale
}

// Validate checks that the configuration can drive a round.
func (c DriftConfig) Validate() error {
	switch {
	case c.Terrain.MapScale <= 0:
		return fmt.Errorf("%w: terrain.map_scale must be positive", ErrInvalid)
	case c.Terrain.SampleStride < 1:
		return fmt.Errorf("%w: terrain.sample_stride must be at least 1", ErrInvalid)
	case c.Terrain.SmoothIterations < 0:
		return fmt.Errorf("%w: terrain.smooth_iterations must not be negative", ErrInvalid)
	case c.Terrain.GapWidth < 0:
		return fmt.Errorf("%w: terrain.gap_width must not be negative", ErrInvalid)
	case c.Terrain.Segments < 1:
		return fmt.Errorf("%w: terrain.segments must be at least 1", ErrInvalid)
	case c.Terrain.WrapTiles < 1:
		return fmt.Errorf("%w: terrain.wrap_tiles must be at least 1", ErrInvalid)
	case c.Silhouette.Path == "" && (c.Silhouette.Width < 2 || c.Silhouette.Height < 2):
		return fmt.Errorf("%w: silhouette must be at least 2x2 pixels", ErrInvalid)
	case c.Tokens.PerSegment < 0:
		return fmt.Errorf("%w: tokens.per_segment must not be negative", ErrInvalid)
	case c.Rider.Width <= 0 || c.Rider.Height <= 0 || c.Rider.Mass <= 0:
		return fmt.Errorf("%w: rider dimensions and mass must be positive", ErrInvalid)
	case c.Physics.Substeps < 1:
		return fmt.Errorf("%w: physics.substeps must be at least 1", ErrInvalid)
	case c.Timer.StartSeconds < 1:
		return fmt.Errorf("%w: timer.start_seconds must be at least 1", ErrInvalid)
	case c.Timer.Interval <= 0:
		return fmt.Errorf("%w: timer.interval must be positive", ErrInvalid)
	case c.View.Width <= 0 || c.View.Height <= 0:
		return fmt.Errorf("%w: view dimensions must be positive", ErrInvalid)
	}

	if c.Silhouette.Path == "" {
		hill := c.HillWidth(c.Silhouette.Width)
		if 2*c.Tokens.EdgeMargin > hill {
			return fmt.Errorf("%w: tokens.edge_margin leaves no room on a %.0f wide hill", ErrInvalid, hill)
		}
	}
	return nil
}
