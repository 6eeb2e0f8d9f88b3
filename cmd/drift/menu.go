package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/downhill-drift/internal/config"
	"github.com/vovakirdan/downhill-drift/internal/platform/tui"
)

// runMenu loops between the launcher, rides and the best-runs screen.
func runMenu(_ *cobra.Command, _ []string) error {
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

	rt := runtimeConfig()
	for {
		result, err := tui.RunMenu(store, rt, preset)
		if err != nil {
			return err
		}
		rt = result.Config
		preset = result.Difficulty

		switch result.Choice {
		case tui.MenuChoicePlay:
			rt.Seed = nextSeed()
			if err := play(store, logger, rt, preset); err != nil {
				return err
			}

		case tui.MenuChoiceScores:
			back, err := tui.RunScoreboard(store, rt.ScreenW, rt.ScreenH, preset)
			if err != nil {
				return err
			}
			if !back {
				return nil
			}

		default:
			return nil
		}
	}
}
