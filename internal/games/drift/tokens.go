package drift

import (
	"math/rand"

	"github.com/vovakirdan/downhill-drift/internal/config"
	"github.com/vovakirdan/downhill-drift/internal/core"
	"github.com/vovakirdan/downhill-drift/internal/games/drift/terrain"
	"github.com/vovakirdan/downhill-drift/internal/physics"
)

// Token is a helmet pickup worth bonus seconds.
type Token struct {
	ID  physics.Handle
	Pos core.Vec
}

// TokenSet spawns and tracks the live tokens.
// Tokens belong to no segment once placed; recycling clears them by x range.
type TokenSet struct {
	profile *terrain.Profile
	eng     Engine
	cfg     config.TokenConfig
	rng     *rand.Rand
	tokens  []Token
}

// NewTokenSet creates an empty set with its own RNG.
func NewTokenSet(profile *terrain.Profile, eng Engine, cfg config.TokenConfig, seed int64) *TokenSet {
	return &TokenSet{
		profile: profile,
		eng:     eng,
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Spawn places PerSegment tokens uniformly over the hill of the tile at
// offset, lifted above the surface. Tokens may overlap each other.
func (ts *TokenSet) Spawn(offset float64) int {
	lo := ts.cfg.EdgeMargin
	span := ts.profile.HillWidth - 2*ts.cfg.EdgeMargin
	for i := 0; i < ts.cfg.PerSegment; i++ {
		x := offset + lo + ts.rng.Float64()*span
		ts.place(core.V(x, ts.profile.HeightAt(x)-ts.cfg.Lift))
	}
	return ts.cfg.PerSegment
}

func (ts *TokenSet) place(pos core.Vec) Token {
	t := Token{
		ID: ts.eng.AddStatic(physics.KindToken, physics.Box{
			Center: pos,
			Width:  ts.cfg.Size,
			Height: ts.cfg.Size,
		}),
		Pos: pos,
	}
	ts.tokens = append(ts.tokens, t)
	return t
}

// ClearRange removes every token with lo <= x <= hi and returns how many went.
func (ts *TokenSet) ClearRange(lo, hi float64) int {
	return ts.removeWhere(func(t Token) bool {
		return t.Pos.X >= lo && t.Pos.X <= hi
	})
}

// Collect removes the token with the given handle.
// It reports false when the handle is not a live token.
func (ts *TokenSet) Collect(id physics.Handle) bool {
	return ts.removeWhere(func(t Token) bool { return t.ID == id }) > 0
}

func (ts *TokenSet) removeWhere(match func(Token) bool) int {
	kept := ts.tokens[:0]
	removed := 0
	for _, t := range ts.tokens {
		if match(t) {
			ts.eng.Remove(t.ID)
			removed++
			continue
		}
		kept = append(kept, t)
	}
	ts.tokens = kept
	return removed
}

// Shift translates every token by dx.
func (ts *TokenSet) Shift(dx float64) {
	for i := range ts.tokens {
		ts.tokens[i].Pos.X += dx
		ts.eng.Translate(ts.tokens[i].ID, dx, 0)
	}
}

// Clear removes every token.
func (ts *TokenSet) Clear() {
	ts.removeWhere(func(Token) bool { return true })
}

// All returns a copy of the live tokens in spawn order.
func (ts *TokenSet) All() []Token {
	out := make([]Token, len(ts.tokens))
	copy(out, ts.tokens)
	return out
}

// Len returns the number of live tokens.
func (ts *TokenSet) Len() int {
	return len(ts.tokens)
}
