package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Progress bar
const (
	BarWidth   = 50
	BarFilled  = "█"
	BarEmpty   = "-"
	ClearWidth = 80
)

// Unit conversion
const (
	BytesPerMB  = 1024 * 1024
	BitsPerByte = 8
)

// Text fragments
const (
	CarriageReturn   = "\r"
	UnknownTotalText = "- MB"
	SizeFormat       = "%.2f MB"
)

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ColorModes lists the accepted color modes
var ColorModes = []string{ColorAuto, ColorAlways, ColorNever}
