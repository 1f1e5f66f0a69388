package terminal

import (
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorMode256       ColorMode = iota // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

// Color cube values for the 6x6x6 palette (indices 16-231)
var cubeValues = [6]uint8{0, 95, 135, 175, 215, 255}

// palette256 holds indices 16-255 in Lab space for perceptual matching.
// The 16 system colors are skipped; their RGB values vary per terminal.
var palette256 [240]colorful.Color

// paletteRGB mirrors palette256 for exact-match short-circuiting
var paletteRGB [240]RGB

func init() {
	// 6x6x6 color cube, indices 16-231
	i := 0
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				c := RGB{cubeValues[r], cubeValues[g], cubeValues[b]}
				paletteRGB[i] = c
				palette256[i] = toColorful(c)
				i++
			}
		}
	}
	// Grayscale ramp, indices 232-255
	for g := 0; g < 24; g++ {
		v := uint8(8 + g*10)
		c := RGB{v, v, v}
		paletteRGB[i] = c
		palette256[i] = toColorful(c)
		i++
	}
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// RGBTo256 converts an RGB color to the nearest 256-color palette index.
// Nearest is perceptual (CIE-Lab distance) rather than channel-wise, so
// downsampled colors keep their hue on 256-color terminals.
func RGBTo256(c RGB) uint8 {
	target := toColorful(c)
	best := 0
	bestDist := palette256[0].DistanceLab(target)
	for i := 1; i < len(palette256); i++ {
		if paletteRGB[i] == c {
			return uint8(16 + i)
		}
		d := palette256[i].DistanceLab(target)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return uint8(16 + best)
}

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() ColorMode {
	// COLORTERM is the highest-priority signal, set by modern terminals
	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	if os.Getenv("KITTY_WINDOW_ID") != "" ||
		os.Getenv("KONSOLE_VERSION") != "" ||
		os.Getenv("ITERM_SESSION_ID") != "" ||
		os.Getenv("ALACRITTY_WINDOW_ID") != "" ||
		os.Getenv("WEZTERM_PANE") != "" {
		return ColorModeTrueColor
	}

	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "truecolor") ||
		strings.Contains(term, "24bit") ||
		strings.Contains(term, "direct") {
		return ColorModeTrueColor
	}

	return ColorMode256
}
