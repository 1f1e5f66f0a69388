package app

import "fmt"

// FailureKind classifies the fatal failures Run can return
type FailureKind uint8

const (
	// InitFailed: raw mode or a terminal feature could not be enabled;
	// Run aborts before entering the loop
	InitFailed FailureKind = iota
	// IOFailed: a read or write failed mid-loop; the loop terminates
	// after cleanup
	IOFailed
)

// String returns the failure class name
func (k FailureKind) String() string {
	switch k {
	case InitFailed:
		return "terminal init failed"
	case IOFailed:
		return "terminal i/o failed"
	}
	return "unknown failure"
}

// RunError is the failure result of Run, surfaced after terminal
// cleanup has already executed
type RunError struct {
	Kind FailureKind
	Err  error
}

// Error implements error
func (e *RunError) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

// Unwrap exposes the underlying cause
func (e *RunError) Unwrap() error {
	return e.Err
}
