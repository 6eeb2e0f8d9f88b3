package audio

import (
	"math"

	"github.com/gopxl/beep"
)

// ChimeGenerator rings two rising notes with an exponential decay.
type ChimeGenerator struct {
	sr    beep.SampleRate
	pos   int
	split int
}

// NewChimeGenerator creates a pickup chime generator.
func NewChimeGenerator(sr beep.SampleRate) *ChimeGenerator {
	return &ChimeGenerator{
		sr:    sr,
		split: sr.N(pickupLength / 3),
	}
}

func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		freq := 880.0
		local := t
		if g.pos >= g.split {
			freq = 1320
			local = float64(g.pos-g.split) / float64(g.sr)
		}

		// Short attack keeps the note change from clicking.
		attack := math.Min(local/0.004, 1)
		env := attack * math.Exp(-local*18)
		sample := 0.3 * env * (math.Sin(2*math.Pi*freq*t) + 0.3*math.Sin(2*math.Pi*2*freq*t))

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChimeGenerator) Err() error {
	return nil
}

// WindGenerator produces an endless low whoosh for airborne tricks.
type WindGenerator struct {
	sr    beep.SampleRate
	pos   int
	cycle int
	seed  uint32
	lp    float64
}

// NewWindGenerator creates a wind generator with a fixed noise seed.
func NewWindGenerator(sr beep.SampleRate) *WindGenerator {
	return &WindGenerator{
		sr:    sr,
		cycle: sr.N(windCycle),
		seed:  0x2545f491,
	}
}

func (g *WindGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		cyclePos := float64(g.pos%g.cycle) / float64(g.cycle)

		// xorshift noise
		g.seed ^= g.seed << 13
		g.seed ^= g.seed >> 17
		g.seed ^= g.seed << 5
		noise := float64(g.seed)/float64(math.MaxUint32)*2 - 1

		// One-pole low-pass whose cutoff swells with the cycle.
		alpha := 0.02 + 0.08*(0.5+0.5*math.Sin(cyclePos*2*math.Pi))
		g.lp += alpha * (noise - g.lp)

		t := float64(g.pos) / float64(g.sr)
		hum := 0.05 * math.Sin(2*math.Pi*(90+40*math.Sin(cyclePos*math.Pi))*t)
		sample := 0.6*g.lp + hum

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *WindGenerator) Err() error {
	return nil
}
