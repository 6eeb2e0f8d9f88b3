// Package drift implements Downhill Drift: a rider descends an endlessly
// repeating hill, collects helmet tokens for bonus seconds and must not fall
// through the gaps or run out of time.
//
// A Session owns every piece of round state. The terrain ring, tokens and
// rider are advanced in one fixed order per frame; see Session.Step.
package drift

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/downhill-drift/internal/audio"
	"github.com/vovakirdan/downhill-drift/internal/config"
	"github.com/vovakirdan/downhill-drift/internal/core"
	"github.com/vovakirdan/downhill-drift/internal/games/drift/terrain"
	"github.com/vovakirdan/downhill-drift/internal/physics"
)

// Phase is the round state.
type Phase int

const (
	PhaseTitle    Phase = iota // Not started; title screen, optional controls popup
	PhasePlaying               // Round running
	PhaseGameOver              // Timer ran out or the rider fell
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseTitle:
		return "title"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Session is one game of Downhill Drift.
type Session struct {
	cfg     config.DriftConfig
	profile *terrain.Profile
	eng     Engine
	sounds  Sounds
	log     *log.Logger
	seed    int64

	ring   *Ring
	tokens *TokenSet

	rider    physics.Handle
	hasRider bool
	airborne bool

	phase    Phase
	controls bool
	timer    Countdown

	shifts    int           // Recenters since the round started
	best      float64       // Furthest distance reached
	collected int           // Tokens picked up
	elapsed   time.Duration // Time spent playing
}

// NewSession builds the terrain ring and waits on the title screen.
// A nil logger discards output.
func NewSession(cfg config.DriftConfig, profile *terrain.Profile, eng Engine, sounds Sounds, logger *log.Logger, seed int64) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if sounds == nil {
		sounds = audio.NewNop()
	}
	if err := profile.Validate(); err != nil {
		logger.Warn("degenerate terrain, the rider will fall", "err", err)
	}

	s := &Session{
		cfg:     cfg,
		profile: profile,
		eng:     eng,
		sounds:  sounds,
		log:     logger,
		seed:    seed,
		timer:   NewCountdown(cfg.Timer.StartSeconds, cfg.Timer.Interval),
	}
	s.ring = NewRing(profile, eng, cfg.Colliders, cfg.Terrain.Segments)
	s.tokens = NewTokenSet(profile, eng, cfg.Tokens, seed)
	return s
}

// Start begins a round: the ring returns to its starting slots, tokens are
// respawned and a fresh rider is dropped above the start of the hill.
func (s *Session) Start() {
	s.sounds.Stop(audio.SoundTrick)
	s.removeRider()
	s.tokens.Clear()

	s.ring.Reset()
	for _, seg := range s.ring.Segments() {
		s.tokens.Spawn(seg.Offset)
	}

	rc := s.cfg.Rider
	spawnY := s.profile.HeightAt(rc.StartX) - rc.Height/2 - rc.SpawnLift
	s.rider = s.eng.AddBody(physics.BodySpec{
		Kind:       physics.KindRider,
		Center:     core.V(rc.StartX, spawnY),
		Width:      rc.Width,
		Height:     rc.Height,
		Mass:       rc.Mass,
		Friction:   rc.Friction,
		Elasticity: rc.Bounciness,
		Damping:    rc.LinearDamping,
	})
	s.hasRider = true

	s.timer.Reset(s.cfg.Timer.StartSeconds)
	s.airborne = false
	s.shifts = 0
	s.best = 0
	s.collected = 0
	s.elapsed = 0
	s.controls = false
	s.phase = PhasePlaying
	s.log.Debug("round started", "seed", s.seed, "tokens", s.tokens.Len())
}

// BackToTitle clears the rider and tokens and resets the timer.
// The terrain ring is left where it is.
func (s *Session) BackToTitle() {
	s.sounds.Stop(audio.SoundTrick)
	s.removeRider()
	s.tokens.Clear()
	s.timer.Reset(s.cfg.Timer.StartSeconds)
	s.airborne = false
	s.controls = false
	s.phase = PhaseTitle
	s.log.Debug("back to title")
}

// OpenControls shows the controls popup. Only the title screen has one.
func (s *Session) OpenControls() {
	if s.phase == PhaseTitle {
		s.controls = true
	}
}

// CloseControls hides the controls popup.
func (s *Session) CloseControls() {
	s.controls = false
}

// ToggleControls flips the controls popup on the title screen.
func (s *Session) ToggleControls() {
	if s.controls {
		s.CloseControls()
		return
	}
	s.OpenControls()
}

func (s *Session) removeRider() {
	if s.hasRider {
		s.eng.Remove(s.rider)
		s.hasRider = false
	}
}

// Step runs one frame of dt.
//
// While playing the order is fixed: input, physics, ground contact, token
// pickup, timer, game-over checks, segment recycling, recentering.
func (s *Session) Step(in core.InputFrame, dt time.Duration) {
	switch s.phase {
	case PhaseTitle:
		s.stepTitle(in)
	case PhaseGameOver:
		if in.Has(core.ActionRestart) {
			s.Start()
		} else if in.Has(core.ActionTitle) {
			s.BackToTitle()
		}
	case PhasePlaying:
		s.stepPlaying(in, dt)
	}
}

func (s *Session) stepTitle(in core.InputFrame) {
	if s.controls {
		if in.Has(core.ActionBack) || in.Has(core.ActionControls) {
			s.CloseControls()
		}
		return
	}
	switch {
	case in.Has(core.ActionConfirm):
		s.Start()
	case in.Has(core.ActionControls):
		s.OpenControls()
	}
}

func (s *Session) stepPlaying(in core.InputFrame, dt time.Duration) {
	secs := dt.Seconds()

	s.steer(in, secs)
	s.eng.Step(secs)
	s.limitTilt()
	s.detectGround()
	s.collectTokens()
	s.best = math.Max(s.best, s.Distance())

	s.elapsed += dt
	expired := s.timer.Tick(dt)

	pos := s.eng.Position(s.rider)
	switch {
	case expired:
		s.endRound("time")
		return
	case pos.Y > s.profile.WorldHeight+s.cfg.Physics.FallMargin:
		s.endRound("fell")
		return
	}

	s.recycle(pos.X)
	s.recenter()
}

// steer applies held input to the rider's velocity.
func (s *Session) steer(in core.InputFrame, secs float64) {
	rc := s.cfg.Rider
	v := s.eng.Velocity(s.rider)
	switch {
	case in.Has(core.ActionLeft) && !in.Has(core.ActionRight):
		v.X = -rc.Speed
	case in.Has(core.ActionRight) && !in.Has(core.ActionLeft):
		v.X = rc.Speed
	}
	if in.Has(core.ActionPush) {
		v.Y += rc.PushAccel * secs
	}
	s.eng.SetVelocity(s.rider, v)
}

func (s *Session) limitTilt() {
	limit := s.cfg.Rider.MaxTiltDeg * math.Pi / 180
	if limit <= 0 {
		return
	}
	a := s.eng.Angle(s.rider)
	if clamped := core.ClampF(a, -limit, limit); clamped != a {
		s.eng.SetAngle(s.rider, clamped)
	}
}

// detectGround updates the airborne flag and the trick sound on its edges.
func (s *Session) detectGround() {
	grounded := s.eng.Touching(s.rider, physics.KindGround)
	switch {
	case !grounded && !s.airborne:
		s.airborne = true
		s.sounds.Play(audio.SoundTrick)
	case grounded && s.airborne:
		s.airborne = false
		s.sounds.Stop(audio.SoundTrick)
	}
}

func (s *Session) collectTokens() {
	for _, h := range s.eng.Overlaps(s.rider, physics.KindToken) {
		if !s.tokens.Collect(h) {
			continue
		}
		s.collected++
		s.timer.Add(s.cfg.Tokens.BonusSeconds)
		s.sounds.Play(audio.SoundPickup)
	}
}

func (s *Session) endRound(reason string) {
	s.phase = PhaseGameOver
	s.airborne = false
	s.sounds.Stop(audio.SoundTrick)
	s.log.Debug("round over", "reason", reason, "distance", int(s.best), "tokens", s.collected)
}

// recycle moves every segment the rider has left behind to the front of
// the ring and refreshes the tokens of the space it vacated.
func (s *Session) recycle(riderX float64) {
	tile := s.profile.TileWidth()
	margin := s.cfg.Terrain.TokenClearMargin
	for i, seg := range s.ring.Segments() {
		if !s.ring.Due(seg, riderX, s.cfg.Terrain.RecycleMargin) {
			continue
		}
		from := s.ring.Recycle(seg)
		removed := s.tokens.ClearRange(from-margin, from+tile+margin)
		spawned := s.tokens.Spawn(seg.Offset)
		s.log.Debug("segment recycled", "segment", i, "from", from, "to", seg.Offset, "removed", removed, "spawned", spawned)
	}
}

// recenter pulls everything back one tile once the rider passes the wrap
// threshold. All entities move together, so relative layout is unchanged.
func (s *Session) recenter() {
	tile := s.profile.TileWidth()
	if s.eng.Position(s.rider).X <= s.cfg.Terrain.WrapTiles*tile {
		return
	}
	s.eng.Translate(s.rider, -tile, 0)
	s.ring.Shift(-tile)
	s.tokens.Shift(-tile)
	s.shifts++
	s.log.Debug("world recentered", "shift", -tile, "shifts", s.shifts)
}

// Timer returns the seconds left on the countdown.
func (s *Session) Timer() int {
	return s.timer.Remaining()
}

// GameOver reports whether the round has ended.
func (s *Session) GameOver() bool {
	return s.phase == PhaseGameOver
}

// Phase returns the round state.
func (s *Session) Phase() Phase {
	return s.phase
}

// ControlsOpen reports whether the controls popup is showing.
func (s *Session) ControlsOpen() bool {
	return s.controls
}

// Airborne reports whether the rider left the ground.
func (s *Session) Airborne() bool {
	return s.airborne
}

// Tokens returns the live tokens.
func (s *Session) Tokens() []Token {
	return s.tokens.All()
}

// Segments returns the segment offsets in ring order.
func (s *Session) Segments() []float64 {
	return s.ring.Offsets()
}

// Profile returns the terrain the session runs on.
func (s *Session) Profile() *terrain.Profile {
	return s.profile
}

// RiderPosition returns the rider's centre and whether a rider exists.
func (s *Session) RiderPosition() (core.Vec, bool) {
	if !s.hasRider {
		return core.Vec{}, false
	}
	return s.eng.Position(s.rider), true
}

// RiderAngle returns the rider's rotation in radians.
func (s *Session) RiderAngle() float64 {
	if !s.hasRider {
		return 0
	}
	return s.eng.Angle(s.rider)
}

// Distance returns how far the rider is from the start, counting recenters.
func (s *Session) Distance() float64 {
	if !s.hasRider {
		return s.best
	}
	x := s.eng.Position(s.rider).X
	return x + float64(s.shifts)*s.profile.TileWidth() - s.cfg.Rider.StartX
}

// Daylight returns 1 at noon and 0 at midnight; a full day lasts
// DayCycleTiles tiles of travel.
func (s *Session) Daylight() float64 {
	period := s.cfg.View.DayCycleTiles * s.profile.TileWidth()
	if period <= 0 {
		return 1
	}
	return 0.5 + 0.5*math.Cos(2*math.Pi*math.Max(s.Distance(), 0)/period)
}

// Result summarises the round so far.
type Result struct {
	Distance float64
	Tokens   int
	Seconds  float64
	Seed     int64
}

// Result returns the current round summary.
func (s *Session) Result() Result {
	return Result{
		Distance: s.best,
		Tokens:   s.collected,
		Seconds:  s.elapsed.Seconds(),
		Seed:     s.seed,
	}
}
