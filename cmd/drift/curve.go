package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/downhill-drift/internal/core"
	"github.com/vovakirdan/downhill-drift/internal/games/drift"
	"github.com/vovakirdan/downhill-drift/internal/games/drift/terrain"
)

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Inspect the terrain built from a silhouette",
	Long: `Build the base curve from a silhouette and print its statistics
together with an ASCII preview of one tile (hill plus gap).

Examples:
  drift curve
  drift curve --hill ./my-hill.png`,
	Args: cobra.NoArgs,
	RunE: runCurve,
}

func init() {
	curveCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	curveCmd.Flags().StringVar(&flagHill, "hill", "", "PNG silhouette to build the hill from")
}

func runCurve(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig("")
	if err != nil {
		return err
	}
	profile, err := drift.LoadProfile(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	source := cfg.Silhouette.Path
	if source == "" {
		source = fmt.Sprintf("built-in hill %dx%d", cfg.Silhouette.Width, cfg.Silhouette.Height)
	}
	fmt.Fprintf(out, "Silhouette:   %s\n", source)
	fmt.Fprintf(out, "Points:       %d\n", len(profile.Curve))
	fmt.Fprintf(out, "Hill width:   %.0f\n", profile.HillWidth)
	fmt.Fprintf(out, "Gap width:    %.0f\n", profile.GapWidth)
	fmt.Fprintf(out, "Tile width:   %.0f\n", profile.TileWidth())
	fmt.Fprintf(out, "World height: %.0f\n", profile.WorldHeight)

	if err := profile.Validate(); err != nil {
		fmt.Fprintf(out, "\n%v\n", err)
		return nil
	}

	top, bottom := math.Inf(1), math.Inf(-1)
	for _, p := range profile.Curve {
		top = math.Min(top, p.Y)
		bottom = math.Max(bottom, p.Y)
	}
	first, last := profile.Curve[0], profile.Curve[len(profile.Curve)-1]
	fmt.Fprintf(out, "Height range: %.0f .. %.0f (drop %.0f)\n", top, bottom, last.Y-first.Y)
	fmt.Fprintln(out)

	width, height := 80, 20
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 10 {
		width = w
	}
	fmt.Fprintln(out, previewTile(profile, width, height).String())
	return nil
}

// previewTile draws one tile with ground filled below the surface.
func previewTile(p *terrain.Profile, width, height int) *core.Screen {
	s := core.NewScreen(width, height)
	tile := p.TileWidth()
	for col := 0; col < width; col++ {
		x := (float64(col) + 0.5) / float64(width) * tile
		if p.InGap(x) {
			continue
		}
		row := int(p.HeightAt(x) / p.WorldHeight * float64(height))
		row = core.Clamp(row, 0, height-1)
		s.Set(col, row, '_')
		s.DrawVLine(col, row+1, height-row-1, '#', core.ColorDefault)
	}
	return s
}
