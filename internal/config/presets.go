package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a CLI value into a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q (want easy, normal or hard)", ErrInvalid, s)
	}
}

// ApplyDriftPreset modifies the config based on a difficulty preset.
// Normal leaves the loaded values untouched.
func ApplyDriftPreset(cfg *DriftConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Timer.StartSeconds = 30
		cfg.Terrain.GapWidth = 100
		cfg.Tokens.PerSegment = 4
	case DifficultyHard:
		cfg.Timer.StartSeconds = 15
		cfg.Terrain.GapWidth = 220
		cfg.Tokens.PerSegment = 2
	}
}
