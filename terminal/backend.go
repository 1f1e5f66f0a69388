package terminal

import "time"

// Backend abstracts platform-specific terminal capabilities: raw mode,
// size queries, blocking reads and raw writes. The runtime loop and the
// tests provide their own implementations.
type Backend interface {
	// Init enters raw mode
	Init() error
	// Fini restores the previous terminal mode. Safe to call twice.
	Fini()

	// Size returns current terminal dimensions; implementations fall
	// back to conservative defaults when the query fails
	Size() (width, height int)

	// Write writes raw bytes to the terminal output
	Write(p []byte) (int, error)

	// Read blocks until input is available, the timeout elapses, the
	// stop channel is closed, or an error occurs. A nil slice with nil
	// error means timeout or stop; the caller uses timeouts to resolve
	// pending escape-sequence ambiguity. Closed input reports io.EOF.
	Read(stopCh <-chan struct{}, timeout time.Duration) ([]byte, error)

	// SetResizeHandler registers a callback for terminal resize events
	SetResizeHandler(handler func(width, height int))
}
