package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/drift.yaml
var defaultDriftYAML []byte

// DefaultDriftConfig returns the hard-coded Downhill Drift configuration.
// It mirrors defaults/drift.yaml and backs it up if the embedded file fails to parse.
func DefaultDriftConfig() DriftConfig {
	return DriftConfig{
		Terrain: TerrainConfig{
			MapScale:         4,
			SampleStride:     2,
			AlphaThreshold:   10,
			SmoothIterations: 4,
			GapWidth:         150,
			GapDepth:         200,
			Segments:         2,
			RecycleMargin:    300,
			TokenClearMargin: 50,
			WrapTiles:        3,
		},
		Silhouette: SilhouetteConfig{
			Width:  500,
			Height: 125,
		},
		Colliders: ColliderConfig{
			Thickness:  10,
			Padding:    2,
			Friction:   0.1,
			Bounciness: 0,
		},
		Tokens: TokenConfig{
			PerSegment:   3,
			EdgeMargin:   200,
			Lift:         40,
			Size:         18,
			BonusSeconds: 3,
		},
		Rider: RiderConfig{
			StartX:        150,
			SpawnLift:     60,
			Width:         40,
			Height:        20,
			Mass:          1,
			Friction:      0.05,
			Bounciness:    0,
			LinearDamping: 0.1,
			MaxTiltDeg:    30,
			Speed:         540,  // 9 units per frame at 60fps
			PushAccel:     3600, // +1 unit/frame of fall speed per frame
		},
		Physics: PhysicsConfig{
			Gravity:    600,
			FallMargin: 600,
			Iterations: 10,
			Substeps:   4,
		},
		Timer: TimerConfig{
			StartSeconds: 20,
			Interval:     time.Second,
		},
		View: ViewConfig{
			Width:         1500,
			Height:        500,
			CameraLead:    500,
			DayCycleTiles: 6,
		},
		Audio: AudioConfig{
			Enabled: true,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultDriftYAML
}
