package terminal

import (
	"testing"
)

func TestRGBTo256ExactCubeEntries(t *testing.T) {
	tests := []struct {
		name string
		c    RGB
		want uint8
	}{
		{"Black", RGB{0, 0, 0}, 16},
		{"Red", RGB{255, 0, 0}, 196},
		{"Green", RGB{0, 255, 0}, 46},
		{"Blue", RGB{0, 0, 255}, 21},
		{"White", RGB{255, 255, 255}, 231},
		{"MidCube", RGB{135, 135, 135}, 16 + 2*36 + 2*6 + 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RGBTo256(tt.c); got != tt.want {
				t.Errorf("Expected index %d, got %d", tt.want, got)
			}
		})
	}
}

func TestRGBTo256GrayscaleRamp(t *testing.T) {
	// 128,128,128 sits closest to grayscale entry 8+12*10=128, index 244
	if got := RGBTo256(RGB{128, 128, 128}); got != 244 {
		t.Errorf("Expected grayscale index 244, got %d", got)
	}
}

func TestRGBTo256NearMiss(t *testing.T) {
	// Slightly off pure red must still land on the red cube entry
	if got := RGBTo256(RGB{250, 5, 5}); got != 196 {
		t.Errorf("Expected 196 for near-red, got %d", got)
	}
}

func TestDetectColorMode(t *testing.T) {
	clear := func(t *testing.T) {
		for _, v := range []string{
			"COLORTERM", "KITTY_WINDOW_ID", "KONSOLE_VERSION",
			"ITERM_SESSION_ID", "ALACRITTY_WINDOW_ID", "WEZTERM_PANE", "TERM",
		} {
			t.Setenv(v, "")
		}
	}

	t.Run("ColortermTruecolor", func(t *testing.T) {
		clear(t)
		t.Setenv("COLORTERM", "truecolor")
		if DetectColorMode() != ColorModeTrueColor {
			t.Error("Expected truecolor")
		}
	})

	t.Run("Kitty", func(t *testing.T) {
		clear(t)
		t.Setenv("KITTY_WINDOW_ID", "1")
		if DetectColorMode() != ColorModeTrueColor {
			t.Error("Expected truecolor")
		}
	})

	t.Run("TermDirect", func(t *testing.T) {
		clear(t)
		t.Setenv("TERM", "xterm-direct")
		if DetectColorMode() != ColorModeTrueColor {
			t.Error("Expected truecolor")
		}
	})

	t.Run("PlainXterm", func(t *testing.T) {
		clear(t)
		t.Setenv("TERM", "xterm-256color")
		if DetectColorMode() != ColorMode256 {
			t.Error("Expected 256-color fallback")
		}
	})
}
