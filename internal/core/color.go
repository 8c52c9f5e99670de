package core

// Color is the foreground color of a screen cell.
// The terminal platform maps it to ANSI 256-color codes.
type Color uint8

// Palette used by the terminal renderer and menus.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorMagenta
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightCyan
	ColorBrightWhite
	ColorGray
)
