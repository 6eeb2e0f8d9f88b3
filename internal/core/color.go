package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Palette used by the drift renderer.
const (
	ColorDefault Color = iota
	ColorGreen
	ColorBrightGreen
	ColorYellow
	ColorBrightYellow
	ColorCyan
	ColorBlue
	ColorWhite
	ColorBrightWhite
	ColorRed
	ColorOrange
	ColorBrown
	ColorGray
	ColorDarkGray
)
