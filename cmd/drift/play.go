package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/downhill-drift/internal/audio"
	"github.com/vovakirdan/downhill-drift/internal/config"
	"github.com/vovakirdan/downhill-drift/internal/core"
	"github.com/vovakirdan/downhill-drift/internal/games/drift"
	"github.com/vovakirdan/downhill-drift/internal/platform/tui"
	"github.com/vovakirdan/downhill-drift/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagHill       string
	flagMute       bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Ride straight away",
	Long: `Start a ride without the launcher menu.

Controls:
  Enter        - Start from the title screen
  C            - Show controls (Esc closes)
  A/Left       - Ride left
  D/Right      - Ride right
  Space/Down   - Push the board down
  R            - Restart (after game over)
  T            - Back to the title screen (after game over)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - 30 second timer, narrow gaps, 4 tokens per hill
  normal - 20 second timer, 150 unit gaps, 3 tokens per hill
  hard   - 15 second timer, wide gaps, 2 tokens per hill

Examples:
  drift play
  drift play --difficulty hard
  drift play --hill ./my-hill.png --mute
  drift play --config ./my-drift.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	addGameFlags(playCmd)
}

// addGameFlags registers the flags that shape a ride.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	cmd.Flags().StringVar(&flagHill, "hill", "", "PNG silhouette to build the hill from")
	cmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound effects")
}

func runPlay(_ *cobra.Command, _ []string) error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	logger, closeLog, err := newFileLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	return play(store, logger, runtimeConfig(), preset)
}

// play runs one game until the player quits.
func play(store *storage.Store, logger *log.Logger, rt core.RuntimeConfig, preset config.DifficultyPreset) error {
	cfg, err := loadConfig(preset)
	if err != nil {
		return err
	}

	sounds, closeSounds := openSounds(cfg.Audio, logger)
	defer closeSounds()

	game := drift.NewGame(drift.Options{
		Config:     cfg,
		Difficulty: preset,
		Sounds:     sounds,
		Logger:     logger,
	})
	game.Reset(rt)

	if err := tui.Run(game, store, logger, rt); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// loadConfig reads the game config and applies the command-line overrides.
func loadConfig(preset config.DifficultyPreset) (config.DriftConfig, error) {
	cfg, err := config.LoadDrift(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagHill != "" {
		cfg.Silhouette.Path = flagHill
	}
	if flagMute {
		cfg.Audio.Enabled = false
	}
	config.ApplyDriftPreset(&cfg, preset)
	return cfg, nil
}

// openSounds starts the speaker. Without a working device the effects stay
// silent but the game still tracks which sounds are playing.
func openSounds(cfg config.AudioConfig, logger *log.Logger) (drift.Sounds, func()) {
	if !cfg.Enabled {
		return audio.NewNop(), func() {}
	}
	fx := audio.New(cfg)
	if err := fx.Start(); err != nil {
		logger.Warn("audio unavailable, riding silently", "err", err)
	}
	return fx, fx.Close
}

// openStore opens the run history. Rides work without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run history: %v\n", err)
		logger.Warn("could not open run history", "err", err)
		return nil
	}
	return store
}

// runtimeConfig sizes the game to the terminal and picks the seed.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     nextSeed(),
	}
}

func nextSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
