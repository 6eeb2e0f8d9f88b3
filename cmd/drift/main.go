// drift is an endless downhill ride in the terminal.
//
// Usage:
//
//	drift                  - Start the launcher menu
//	drift play             - Ride straight away
//	drift scores           - Show the best runs
//	drift serve            - Start SSH server for remote play
//	drift curve            - Inspect the terrain built from a silhouette
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible token layouts
//	--db <path>           - Set database path (default: ~/.drift/runs.db)
//	--log-level <level>   - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "drift",
	Short: "Downhill Drift - ride an endless hill in your terminal",
	Long: `Downhill Drift is an endless side-scrolling ride down a hill that
never ends. Collect tokens for extra seconds and keep going before
the timer runs out.

Available commands:
  play     - Ride straight away
  scores   - View the best runs
  serve    - Start SSH server for remote play
  curve    - Inspect the terrain built from a silhouette

Examples:
  drift
  drift play --difficulty hard
  drift play --hill ./my-hill.png
  drift serve --ssh :2222
  drift scores --difficulty easy`,
	SilenceUsage: true,
	RunE:         runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.drift/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	addGameFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(curveCmd)
}

// newLogger builds the CLI logger writing to w.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "drift",
		Level:           level,
	}), nil
}

// newFileLogger logs to ~/.drift/drift.log so records do not tear the
// alternate screen. It falls back to discarding when the file cannot be opened.
func newFileLogger() (*log.Logger, func(), error) {
	home, err := os.UserHomeDir()
	if err != nil {
		logger, lerr := newLogger(io.Discard)
		return logger, func() {}, lerr
	}
	dir := filepath.Join(home, ".drift")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger, lerr := newLogger(io.Discard)
		return logger, func() {}, lerr
	}
	f, err := os.OpenFile(filepath.Join(dir, "drift.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		logger, lerr := newLogger(io.Discard)
		return logger, func() {}, lerr
	}
	logger, err := newLogger(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}
