package render

import (
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const ellipsis = "…"

// MeasureString returns the advance width of s in pixels, kerning included
func MeasureString(face font.Face, s string) float64 {
	return fromFixed(font.MeasureString(face, s))
}

// TruncateToWidth shortens s rune by rune, appending an ellipsis, until it fits max.
// It returns "" when not even the ellipsis fits.
func TruncateToWidth(face font.Face, s string, max float64) string {
	if MeasureString(face, s) <= max {
		return s
	}
	runes := []rune(s)
	for n := len(runes) - 1; n >= 0; n-- {
		candidate := string(runes[:n]) + ellipsis
		if MeasureString(face, candidate) <= max {
			return candidate
		}
	}
	return ""
}

// middleBaseline returns the baseline that vertically centers a line of face on cy
func middleBaseline(face font.Face, cy float64) float64 {
	m := face.Metrics()
	return cy + (fromFixed(m.Ascent)-fromFixed(m.Descent))/2
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
