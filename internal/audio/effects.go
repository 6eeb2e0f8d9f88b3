// Package audio plays the two drift sound effects through beep.
//
// Effects owns one mixer. Start hands it to the speaker; without a speaker the
// mixer can still be pulled directly and playing state is tracked either way.
package audio

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/downhill-drift/internal/config"
)

const (
	sampleRate   = beep.SampleRate(44100)
	pickupLength = 180 * time.Millisecond
	windCycle    = 1600 * time.Millisecond
)

// Sound names one of the effects.
type Sound int

const (
	SoundPickup Sound = iota // One-shot chime when a token is collected
	SoundTrick               // Looping whoosh while airborne
)

// String returns a human-readable name for the sound.
func (s Sound) String() string {
	switch s {
	case SoundPickup:
		return "pickup"
	case SoundTrick:
		return "trick"
	default:
		return "unknown"
	}
}

type voice struct {
	ctrl *beep.Ctrl
	done atomic.Bool
}

// Effects mixes the game's sounds.
type Effects struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	mixer   *beep.Mixer
	volume  *effects.Volume
	voices  map[Sound]*voice
	started bool
}

// New creates the effects. A disabled config produces a silent mixer that
// still tracks what is playing.
func New(cfg config.AudioConfig) *Effects {
	mixer := &beep.Mixer{}
	return &Effects{
		rate:   sampleRate,
		mixer:  mixer,
		volume: &effects.Volume{Streamer: mixer, Base: 2, Volume: cfg.Volume, Silent: !cfg.Enabled},
		voices: make(map[Sound]*voice),
	}
}

// Start opens the audio device and begins playback.
func (e *Effects) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.started {
		return nil
	}
	if err := speaker.Init(e.rate, e.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}
	speaker.Play(e.volume)
	e.started = true
	return nil
}

// Close stops every sound and releases the device.
func (e *Effects) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	speaker.Lock()
	for s, v := range e.voices {
		v.ctrl.Streamer = nil
		v.done.Store(true)
		delete(e.voices, s)
	}
	e.mixer.Clear()
	speaker.Unlock()

	if e.started {
		speaker.Close()
		e.started = false
	}
}

// Play starts a sound. The trick loop is left alone if it is already running;
// a pickup restarts the chime.
func (e *Effects) Play(s Sound) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if v, ok := e.voices[s]; ok && !v.done.Load() {
		if s == SoundTrick {
			return
		}
		e.halt(v)
	}

	v := &voice{}
	var src beep.Streamer
	switch s {
	case SoundPickup:
		src = beep.Seq(
			beep.Take(e.rate.N(pickupLength), NewChimeGenerator(e.rate)),
			beep.Callback(func() { v.done.Store(true) }),
		)
	case SoundTrick:
		src = NewWindGenerator(e.rate)
	default:
		return
	}
	v.ctrl = &beep.Ctrl{Streamer: src}
	e.voices[s] = v

	speaker.Lock()
	e.mixer.Add(v.ctrl)
	speaker.Unlock()
}

// Stop silences a sound. Stopping a sound that is not playing is a no-op.
func (e *Effects) Stop(s Sound) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if v, ok := e.voices[s]; ok {
		e.halt(v)
		delete(e.voices, s)
	}
}

// halt detaches a voice; the mixer drops it on its next pull.
func (e *Effects) halt(v *voice) {
	speaker.Lock()
	v.ctrl.Streamer = nil
	speaker.Unlock()
	v.done.Store(true)
}

// Playing reports whether a sound is still running.
func (e *Effects) Playing(s Sound) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	v, ok := e.voices[s]
	return ok && !v.done.Load()
}

// SetVolume changes the master volume on beep's log2 scale.
func (e *Effects) SetVolume(v float64) {
	speaker.Lock()
	e.volume.Volume = v
	speaker.Unlock()
}

// Stream pulls mixed samples without a speaker.
func (e *Effects) Stream(samples [][2]float64) (n int, ok bool) {
	speaker.Lock()
	defer speaker.Unlock()
	return e.volume.Stream(samples)
}

// Err always returns nil; the mixer never fails.
func (e *Effects) Err() error {
	return nil
}

// Nop tracks playing state without producing sound.
type Nop struct {
	playing map[Sound]bool
}

// NewNop creates a silent player.
func NewNop() *Nop {
	return &Nop{playing: make(map[Sound]bool)}
}

// Play marks the trick loop as running. The pickup chime finishes instantly.
func (n *Nop) Play(s Sound) {
	n.playing[s] = s == SoundTrick
}

// Stop marks a sound as stopped.
func (n *Nop) Stop(s Sound) {
	delete(n.playing, s)
}

// Playing reports whether a sound is running.
func (n *Nop) Playing(s Sound) bool {
	return n.playing[s]
}
