package app

import (
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/lixenwraith/termcore/terminal"
)

// fileConfig mirrors the optional TOML configuration file. Every field
// is a pointer so absent keys keep their defaults.
type fileConfig struct {
	TickIntervalMs  *int    `toml:"tick_interval_ms"`
	EscapeTimeoutMs *int    `toml:"escape_timeout_ms"`
	Mouse           *bool   `toml:"mouse"`
	BracketedPaste  *bool   `toml:"bracketed_paste"`
	AltScreen       *bool   `toml:"alt_screen"`
	KittyKeyboard   *bool   `toml:"kitty_keyboard"`
	ColorMode       *string `toml:"color_mode"`
	LogPath         *string `toml:"log_path"`
}

// LoadOptions reads a TOML config file and merges it over the
// defaults. Unknown keys are rejected so typos surface early.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()

	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return opts, errors.Wrapf(err, "load config %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return opts, errors.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}

	if cfg.TickIntervalMs != nil {
		if *cfg.TickIntervalMs < 0 {
			return opts, errors.Errorf("config %s: tick_interval_ms must not be negative", path)
		}
		opts.TickInterval = time.Duration(*cfg.TickIntervalMs) * time.Millisecond
	}
	if cfg.EscapeTimeoutMs != nil {
		if *cfg.EscapeTimeoutMs <= 0 {
			return opts, errors.Errorf("config %s: escape_timeout_ms must be positive", path)
		}
		opts.EscapeTimeout = time.Duration(*cfg.EscapeTimeoutMs) * time.Millisecond
	}
	if cfg.Mouse != nil {
		opts.Mouse = *cfg.Mouse
	}
	if cfg.BracketedPaste != nil {
		opts.BracketedPaste = *cfg.BracketedPaste
	}
	if cfg.AltScreen != nil {
		opts.AltScreen = *cfg.AltScreen
	}
	if cfg.KittyKeyboard != nil {
		opts.KittyKeyboard = *cfg.KittyKeyboard
	}
	if cfg.ColorMode != nil && *cfg.ColorMode != "" {
		switch *cfg.ColorMode {
		case "256":
			opts.ColorMode = terminal.ColorMode256
		case "truecolor":
			opts.ColorMode = terminal.ColorModeTrueColor
		default:
			return opts, errors.Errorf("config %s: color_mode must be \"256\" or \"truecolor\"", path)
		}
		opts.ForceColorMode = true
	}
	if cfg.LogPath != nil {
		opts.LogPath = *cfg.LogPath
	}

	return opts, nil
}
