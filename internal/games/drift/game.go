package drift

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/downhill-drift/internal/audio"
	"github.com/vovakirdan/downhill-drift/internal/config"
	"github.com/vovakirdan/downhill-drift/internal/core"
	"github.com/vovakirdan/downhill-drift/internal/games/drift/terrain"
	"github.com/vovakirdan/downhill-drift/internal/physics"
)

// Options configures a Game.
type Options struct {
	Config     config.DriftConfig
	Difficulty config.DifficultyPreset
	Profile    *terrain.Profile // Built from Config when nil
	Sounds     Sounds           // Silent when nil
	Logger     *log.Logger      // Discarded when nil
}

// Game adapts a Session to the platform's core.Game loop.
type Game struct {
	opts    Options
	runtime core.RuntimeConfig
	space   *physics.Space
	session *Session
}

// NewGame creates a game. Reset must be called before Step.
func NewGame(opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Game{opts: opts}
}

// LoadProfile builds the terrain for cfg: the configured silhouette file, or
// the generated hill when no path is set.
// A blank silhouette is not an error; the caller gets a profile with no curve.
func LoadProfile(cfg config.DriftConfig) (*terrain.Profile, error) {
	opts := profileOptions(cfg)
	if cfg.Silhouette.Path == "" {
		return terrain.Build(terrain.DefaultSilhouette(cfg.Silhouette.Width, cfg.Silhouette.Height), opts), nil
	}
	img, err := terrain.LoadSilhouette(cfg.Silhouette.Path)
	if err != nil {
		return nil, fmt.Errorf("drift: %w", err)
	}
	return terrain.Build(img, opts), nil
}

func profileOptions(cfg config.DriftConfig) terrain.Options {
	return terrain.Options{
		Stride:     cfg.Terrain.SampleStride,
		Scale:      cfg.Terrain.MapScale,
		Threshold:  cfg.Terrain.AlphaThreshold,
		Iterations: cfg.Terrain.SmoothIterations,
		GapWidth:   cfg.Terrain.GapWidth,
		GapDepth:   cfg.Terrain.GapDepth,
	}
}

// builtinProfile builds the generated default hill. It cannot fail, so it
// backs up a silhouette file that did not load.
func builtinProfile(cfg config.DriftConfig) *terrain.Profile {
	sil := config.DefaultDriftConfig().Silhouette
	return terrain.Build(terrain.DefaultSilhouette(sil.Width, sil.Height), profileOptions(cfg))
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "drift"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Downhill Drift"
}

// Reset builds a fresh physics space and session on the title screen.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if g.opts.Profile == nil {
		p, err := LoadProfile(g.opts.Config)
		if err != nil {
			g.opts.Logger.Warn("falling back to the built-in hill", "err", err)
			p = builtinProfile(g.opts.Config)
		}
		g.opts.Profile = p
	}

	if g.session != nil {
		g.session.sounds.Stop(audio.SoundTrick)
	}
	phys := g.opts.Config.Physics
	g.space = physics.New(phys.Gravity, phys.Iterations, phys.Substeps)
	g.session = NewSession(g.opts.Config, g.opts.Profile, g.space, g.opts.Sounds, g.opts.Logger, runtime.Seed)
}

// Step advances the game by one fixed tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	return g.Advance(in, g.runtime.FrameDuration())
}

// Advance advances the game by dt of real time.
func (g *Game) Advance(in core.InputFrame, dt time.Duration) core.StepResult {
	g.session.Step(in, dt)
	return core.StepResult{State: g.State()}
}

// Render draws the current frame.
func (g *Game) Render(dst *core.Screen) {
	Render(dst, g.session, g.opts.Config.View)
}

// State reports the score (distance in whole metres) and round flags.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    Metres(g.session.Result().Distance),
		GameOver: g.session.GameOver(),
		Started:  g.session.Phase() != PhaseTitle,
	}
}

// Result reports the current or last finished round.
func (g *Game) Result() Result {
	if g.session == nil {
		return Result{}
	}
	return g.session.Result()
}

// Session exposes the running session.
func (g *Game) Session() *Session {
	return g.session
}

// Difficulty returns the preset the game was configured with.
func (g *Game) Difficulty() config.DifficultyPreset {
	if g.opts.Difficulty == "" {
		return config.DifficultyNormal
	}
	return g.opts.Difficulty
}

// Metres converts world units to the whole metres shown to players.
func Metres(units float64) int {
	return int(units / unitsPerMetre)
}

const unitsPerMetre = 10
