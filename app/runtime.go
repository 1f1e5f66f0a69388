package app

import (
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"github.com/lixenwraith/termcore/render"
	"github.com/lixenwraith/termcore/terminal"
)

// State tracks the runtime lifecycle
type State uint8

const (
	StateIdle State = iota
	StateRunning
	StateTerminating
)

// Runtime drives the engine: it owns the input parser, both frame
// buffers and the output writer, and calls the App's Update and View
// on a single goroutine. Terminal features enabled by Run are disabled
// in exact reverse order on every exit path, including panic.
type Runtime struct {
	app  App
	opts Options

	backend terminal.Backend
	parser  *terminal.Parser
	writer  *terminal.Writer

	current  *render.Buffer
	previous *render.Buffer

	resizeCh    chan [2]int
	syntheticCh chan terminal.Event
	stopCh      chan struct{}

	log    *slog.Logger
	state  State
	runErr error

	cleanups []cleanup
	unwound  bool
}

type cleanup struct {
	name string
	fn   func()
}

// New creates a runtime bound to the platform terminal backend
func New(a App, opts Options) *Runtime {
	return NewWithBackend(a, opts, terminal.NewBackend())
}

// NewWithBackend creates a runtime on an explicit backend; tests use
// this to drive the loop without a real terminal
func NewWithBackend(a App, opts Options, b terminal.Backend) *Runtime {
	if opts.EscapeTimeout <= 0 {
		opts.EscapeTimeout = DefaultOptions().EscapeTimeout
	}
	return &Runtime{
		app:         a,
		opts:        opts,
		backend:     b,
		parser:      terminal.NewParser(),
		resizeCh:    make(chan [2]int, 1),
		syntheticCh: make(chan terminal.Event, 16),
		stopCh:      make(chan struct{}),
	}
}

// State returns the current lifecycle state
func (r *Runtime) State() State {
	return r.state
}

// Post injects a synthetic event into the running loop
func (r *Runtime) Post(ev terminal.Event) {
	select {
	case r.syntheticCh <- ev:
	default:
		// Channel full, drop
	}
}

// Run enables the configured terminal features, enters the loop and
// blocks until Terminating. The returned error, if any, surfaces after
// terminal cleanup has executed.
func (r *Runtime) Run() error {
	if r.state != StateIdle {
		return &RunError{Kind: InitFailed, Err: errors.New("runtime already started")}
	}
	r.setupLog()

	// Cleanup must run even when Update or View panics; restore the
	// terminal first, then let the panic propagate
	defer func() {
		if rec := recover(); rec != nil {
			r.unwind()
			terminal.EmergencyReset(os.Stdout)
			panic(rec)
		}
	}()
	defer r.unwind()

	if err := r.backend.Init(); err != nil {
		return &RunError{Kind: InitFailed, Err: err}
	}
	r.push("raw_mode", r.backend.Fini)

	colorMode := r.opts.ColorMode
	if !r.opts.ForceColorMode {
		colorMode = terminal.DetectColorMode()
	}
	r.writer = terminal.NewWriter(r.backend, colorMode)

	type feature struct {
		name    string
		enable  func() error
		disable func() error
	}
	features := []feature{
		{"alt_screen", r.writer.EnterAltScreen, r.writer.ExitAltScreen},
		{"cursor_hidden", r.writer.HideCursor, r.writer.ShowCursor},
		{"auto_wrap_off", r.writer.DisableAutoWrap, r.writer.EnableAutoWrap},
		{"mouse", r.writer.EnableMouse, r.writer.DisableMouse},
		{"bracketed_paste", r.writer.EnableBracketedPaste, r.writer.DisableBracketedPaste},
		{"kitty_keyboard", r.writer.PushKittyKeyboard, r.writer.PopKittyKeyboard},
	}
	enabled := map[string]bool{
		"alt_screen":      r.opts.AltScreen,
		"cursor_hidden":   true,
		"auto_wrap_off":   true,
		"mouse":           r.opts.Mouse,
		"bracketed_paste": r.opts.BracketedPaste,
		"kitty_keyboard":  r.opts.KittyKeyboard,
	}
	for _, f := range features {
		if !enabled[f.name] {
			continue
		}
		if err := f.enable(); err != nil {
			return &RunError{Kind: InitFailed, Err: errors.Wrap(err, f.name)}
		}
		disable := f.disable
		r.push(f.name, func() { disable() })
	}

	if err := r.writer.Clear(); err != nil {
		return &RunError{Kind: InitFailed, Err: err}
	}

	w, h := r.backend.Size()
	r.current = render.NewBuffer(w, h)
	r.previous = render.NewBuffer(w, h)

	r.backend.SetResizeHandler(func(w, h int) {
		// Keep only the latest pending size
		select {
		case r.resizeCh <- [2]int{w, h}:
		default:
			select {
			case <-r.resizeCh:
			default:
			}
			select {
			case r.resizeCh <- [2]int{w, h}:
			default:
			}
		}
	})

	bytesCh := make(chan []byte, 8)
	errCh := make(chan error, 1)
	go r.readLoop(bytesCh, errCh)

	var tickCh <-chan time.Time
	if r.opts.TickInterval > 0 {
		ticker := time.NewTicker(r.opts.TickInterval)
		defer ticker.Stop()
		tickCh = ticker.C
	}

	interruptCh := make(chan os.Signal, 1)
	signal.Notify(interruptCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interruptCh)

	r.state = StateRunning
	r.log.Info("running", "width", w, "height", h, "color_mode", int(colorMode))

	if err := r.render(); err != nil {
		r.fail(err)
	}

	for r.state == StateRunning {
		select {
		case data := <-bytesCh:
			if len(data) == 0 {
				r.dispatch(r.parser.Timeout())
			} else {
				r.dispatch(r.parser.Feed(data))
			}
		case sz := <-r.resizeCh:
			r.handleResize(sz[0], sz[1])
		case <-tickCh:
			r.dispatch([]terminal.Event{{Type: terminal.EventTick}})
		case ev := <-r.syntheticCh:
			if ev.Type == terminal.EventResize {
				r.handleResize(ev.Width, ev.Height)
			} else {
				r.dispatch([]terminal.Event{ev})
			}
		case <-interruptCh:
			r.log.Info("interrupt")
			r.state = StateTerminating
		case err := <-errCh:
			ev := terminal.Event{Type: terminal.EventError, Err: err}
			if errors.Cause(err) == io.EOF {
				ev.Type = terminal.EventClosed
			}
			r.dispatch([]terminal.Event{ev})
		}
	}

	return r.runErr
}

// readLoop feeds raw input chunks to the main loop. A nil chunk marks
// a read timeout, which the loop uses to flush a pending lone ESC.
func (r *Runtime) readLoop(bytesCh chan<- []byte, errCh chan<- error) {
	for {
		select {
		case <-r.stopCh:
			return
		default:
		}

		data, err := r.backend.Read(r.stopCh, r.opts.EscapeTimeout)
		if err != nil {
			select {
			case errCh <- err:
			case <-r.stopCh:
			}
			return
		}

		select {
		case bytesCh <- data:
		case <-r.stopCh:
			return
		}
	}
}

// dispatch runs Update for each event in arrival order, then renders
// the frame. Quit skips the render for the iteration.
func (r *Runtime) dispatch(events []terminal.Event) {
	if len(events) == 0 {
		return
	}
	for _, ev := range events {
		if ev.Type == terminal.EventError || ev.Type == terminal.EventClosed {
			r.fail(ev.Err)
			return
		}
		action := r.app.Update(ev)
		switch action.Kind {
		case ActionQuit:
			r.log.Info("quit")
			r.state = StateTerminating
			return
		case ActionCommand:
			// Inert payload; execution is the caller's concern
			r.log.Debug("command returned", "payload", action.Cmd)
		}
	}
	if err := r.render(); err != nil {
		r.fail(err)
	}
}

// handleResize reallocates both frame buffers, clears the screen so
// the physical terminal matches the reset previous buffer, and feeds
// the resize event through the normal update path.
func (r *Runtime) handleResize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	r.log.Debug("resize", "width", w, "height", h)
	r.current.Resize(w, h)
	r.previous.Resize(w, h)
	if err := r.writer.Clear(); err != nil {
		r.fail(err)
		return
	}
	r.dispatch([]terminal.Event{terminal.ResizeEvent(w, h)})
}

// render produces the frame: View writes into the reset current
// buffer, the diff against the previous buffer goes out through the
// writer, and current becomes the new previous.
func (r *Runtime) render() error {
	r.current.Reset()
	r.app.View(r.current)

	updates := r.current.Diff(r.previous)
	if len(updates) > 0 {
		if err := r.writer.Apply(updates); err != nil {
			return err
		}
	}
	r.previous.CopyFrom(r.current)
	return nil
}

// fail records the first fatal error and terminates the loop
func (r *Runtime) fail(err error) {
	if err == nil {
		err = errors.New("input closed")
	}
	if r.runErr == nil {
		r.runErr = &RunError{Kind: IOFailed, Err: err}
	}
	r.log.Error("fatal", "err", err)
	r.state = StateTerminating
}

// push registers a cleanup to run during unwind, LIFO
func (r *Runtime) push(name string, fn func()) {
	r.cleanups = append(r.cleanups, cleanup{name: name, fn: fn})
}

// unwind disables everything enabled so far in exact reverse order.
// Idempotent; runs on normal return, error return and panic.
func (r *Runtime) unwind() {
	if r.unwound {
		return
	}
	r.unwound = true
	r.state = StateTerminating

	close(r.stopCh)
	for i := len(r.cleanups) - 1; i >= 0; i-- {
		c := r.cleanups[i]
		r.log.Debug("restore", "feature", c.name)
		c.fn()
	}
}

// setupLog opens the debug log sink, or discards when unconfigured
func (r *Runtime) setupLog() {
	if r.opts.LogPath == "" {
		r.log = slog.New(slog.NewTextHandler(io.Discard, nil))
		return
	}
	f, err := os.OpenFile(r.opts.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		r.log = slog.New(slog.NewTextHandler(io.Discard, nil))
		return
	}
	r.log = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r.push("log_file", func() { f.Close() })
}
