// Package app provides the runtime loop tying terminal input, caller
// update/view logic and diffed output together, with guaranteed
// terminal restoration on every exit path.
package app

import (
	"github.com/lixenwraith/termcore/render"
	"github.com/lixenwraith/termcore/terminal"
)

// App is the caller-supplied logic driven by the runtime loop: Update
// receives every decoded event in arrival order and returns an action;
// View draws the new frame into the current buffer. Both run on the
// loop goroutine; View must not retain the buffer across calls.
type App interface {
	Update(ev terminal.Event) Action
	View(buf *render.Buffer)
}

// ActionKind discriminates the actions Update can return
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	ActionQuit
	ActionCommand
)

// Action is Update's verdict on an event. Command carries an opaque
// payload; the loop treats it as inert data and never executes it.
type Action struct {
	Kind ActionKind
	Cmd  any
}

// None continues the loop unchanged
func None() Action {
	return Action{}
}

// Quit transitions the runtime to Terminating; the render for the
// current iteration is skipped
func Quit() Action {
	return Action{Kind: ActionQuit}
}

// Command wraps an opaque payload for the caller's own dispatch
func Command(payload any) Action {
	return Action{Kind: ActionCommand, Cmd: payload}
}
