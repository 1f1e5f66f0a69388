// Package terminal provides direct ANSI terminal control.
//
// Features:
//   - True color (24-bit) and 256-color palette support
//   - Incremental escape-sequence input decoding (CSI, SS3, SGR/X10 mouse,
//     kitty keyboard protocol, bracketed paste)
//   - Cell-update output with cursor and SGR coalescing
//   - SIGWINCH resize detection
//   - Clean terminal restoration on exit/panic
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI
// sequences. Target environments: Linux, macOS, BSDs with xterm-compatible
// terminals.
package terminal
