package drift

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/downhill-drift/internal/config"
	"github.com/vovakirdan/downhill-drift/internal/core"
)

// Visual characters for rendering
const (
	SurfaceFlat = '_'
	SurfaceDown = '\\'
	SurfaceUp   = '/'
	GroundFill  = '░'
	TokenChar   = 'H'
	BoardChar   = '='
	RiderChar   = '@'
	StarChar    = '.'
	SunChar     = 'O'
	MoonChar    = 'C'
)

const (
	nightCutoff  = 0.35 // Stars come out below this daylight
	starSparsity = 53
)

// view maps world coordinates onto screen cells.
type view struct {
	left   float64 // World x of the left screen edge
	scaleX float64 // World units per column
	scaleY float64 // World units per row
}

func (v view) cell(p core.Vec) (int, int) {
	return int(math.Floor((p.X - v.left) / v.scaleX)), int(math.Floor(p.Y / v.scaleY))
}

// Render draws the session: sky, terrain, tokens, rider, HUD and whichever
// overlay the phase calls for.
func Render(dst *core.Screen, s *Session, vc config.ViewConfig) {
	dst.Clear()
	w, h := dst.Width(), dst.Height()
	if w == 0 || h == 0 {
		return
	}

	focus := s.cfg.Rider.StartX
	rider, hasRider := s.RiderPosition()
	if hasRider {
		focus = rider.X
	}
	v := view{
		left:   focus + vc.CameraLead - vc.Width/2,
		scaleX: vc.Width / float64(w),
		scaleY: vc.Height / float64(h),
	}

	drawSky(dst, s.Daylight())
	drawTerrain(dst, s, v)
	for _, t := range s.Tokens() {
		x, y := v.cell(t.Pos)
		dst.SetColor(x, y, TokenChar, core.ColorBrightYellow)
	}
	if hasRider {
		drawRider(dst, v, rider, s.RiderAngle())
	}

	switch s.Phase() {
	case PhaseTitle:
		if s.ControlsOpen() {
			drawPanel(dst, core.ColorCyan,
				"CONTROLS",
				"",
				"←/→ or A/D   ride",
				"Space        push down",
				"R            restart",
				"T            title",
				"",
				"Esc  close",
			)
			return
		}
		drawPanel(dst, core.ColorBrightWhite,
			"DOWNHILL DRIFT",
			"",
			"Enter  start",
			"C      controls",
			"Q      quit",
		)
		return
	case PhaseGameOver:
		drawHUD(dst, s)
		res := s.Result()
		drawPanel(dst, core.ColorRed,
			"GAME OVER",
			"",
			fmt.Sprintf("Distance %d m   Tokens %d", Metres(res.Distance), res.Tokens),
			"",
			"R  restart   T  title",
		)
		return
	}
	drawHUD(dst, s)
}

func drawSky(dst *core.Screen, daylight float64) {
	w, h := dst.Width(), dst.Height()
	if daylight >= 0.5 {
		dst.SetColor(w-6, 1, SunChar, core.ColorBrightYellow)
		return
	}
	dst.SetColor(w-6, 1, MoonChar, core.ColorWhite)
	if daylight > nightCutoff {
		return
	}
	for y := 0; y < h/2; y++ {
		for x := 0; x < w; x++ {
			if (x*31+y*17)%starSparsity == 0 {
				dst.SetColor(x, y, StarChar, core.ColorGray)
			}
		}
	}
}

// drawTerrain fills every column from the surface down. Gaps stay empty.
func drawTerrain(dst *core.Screen, s *Session, v view) {
	p := s.Profile()
	if len(p.Curve) == 0 {
		return
	}
	h := dst.Height()
	for x := 0; x < dst.Width(); x++ {
		wx := v.left + (float64(x)+0.5)*v.scaleX
		if p.InGap(wx) {
			continue
		}
		top := int(math.Floor(p.HeightAt(wx) / v.scaleY))
		if top >= h {
			continue
		}

		glyph := SurfaceFlat
		dy := p.HeightAt(wx+v.scaleX/2) - p.HeightAt(wx-v.scaleX/2)
		switch {
		case dy > v.scaleY/2:
			glyph = SurfaceDown
		case dy < -v.scaleY/2:
			glyph = SurfaceUp
		}
		dst.SetColor(x, top, glyph, core.ColorBrightWhite)
		for y := max(top+1, 0); y < h; y++ {
			dst.SetColor(x, y, GroundFill, core.ColorBrown)
		}
	}
}

// drawRider draws the board tilted to the body angle with the rider on top.
func drawRider(dst *core.Screen, v view, pos core.Vec, angle float64) {
	cx, cy := v.cell(pos)
	slope := math.Tan(angle) * v.scaleX / v.scaleY
	for i := -1; i <= 1; i++ {
		dst.SetColor(cx+i, cy+int(math.Round(float64(i)*slope)), BoardChar, core.ColorCyan)
	}
	dst.SetColor(cx, cy-1, RiderChar, core.ColorOrange)
}

func drawHUD(dst *core.Screen, s *Session) {
	dst.DrawTextColor(1, 0, fmt.Sprintf("Timer: %d", s.Timer()), core.ColorBrightWhite)
	dist := fmt.Sprintf("%d m", Metres(s.Result().Distance))
	dst.DrawTextColor(dst.Width()-utf8.RuneCountInString(dist)-1, 0, dist, core.ColorWhite)
}

// drawPanel draws lines centred in a bordered box in the middle of the screen.
func drawPanel(dst *core.Screen, border core.Color, lines ...string) {
	width := 0
	for _, l := range lines {
		width = core.Max(width, utf8.RuneCountInString(l))
	}
	r := core.Centered(dst.Width(), dst.Height(), width+4, len(lines)+2)
	dst.DrawRect(r, ' ')
	dst.DrawBox(r, border)
	for i, l := range lines {
		x := r.X + (r.W-utf8.RuneCountInString(l))/2
		dst.DrawTextColor(x, r.Y+1+i, l, core.ColorBrightWhite)
	}
}
