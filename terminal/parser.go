package terminal

import (
	"bytes"
)

// pasteEnd terminates a bracketed paste region started by CSI 200~
var pasteEnd = []byte("\x1b[201~")

// maxSequenceLen bounds how many bytes a single escape sequence may
// span before it is treated as malformed and dropped.
const maxSequenceLen = 64

// Parser is an incremental terminal input decoder. Feed it raw bytes in
// chunks of any size, including chunks that split an escape sequence or
// a UTF-8 character; the emitted events are identical regardless of
// chunking. The only state carried between calls is a small buffer of
// unresolved bytes and the bracketed-paste flag.
//
// A Parser is owned by a single goroutine; it performs no locking.
type Parser struct {
	pending []byte
	inPaste bool
}

// NewParser creates a parser with an empty pending buffer
func NewParser() *Parser {
	return &Parser{pending: make([]byte, 0, 256)}
}

// Pending reports whether unresolved bytes are buffered. The caller
// uses this to arm the escape disambiguation timeout.
func (p *Parser) Pending() bool {
	return len(p.pending) > 0
}

// Feed consumes a chunk of raw input and returns the fully decoded
// events. Bytes that end mid-sequence are held until the next Feed or
// Timeout call.
func (p *Parser) Feed(data []byte) []Event {
	p.pending = append(p.pending, data...)

	var events []Event
	consumed := p.parse(p.pending, &events)

	if consumed > 0 {
		if consumed >= len(p.pending) {
			p.pending = p.pending[:0]
		} else {
			copy(p.pending, p.pending[consumed:])
			p.pending = p.pending[:len(p.pending)-consumed]
		}
	}
	return events
}

// Timeout resolves the ambiguity between a lone Escape keypress and the
// start of an escape sequence: called when no further bytes arrived
// within the configured timeout, it releases a pending lone ESC as a
// Key event. Incomplete multi-byte garbage that cannot grow into a
// sequence is discarded. Inside a paste region a held ESC may be the
// start of the split end marker, so it stays buffered until more bytes
// arrive.
func (p *Parser) Timeout() []Event {
	if len(p.pending) == 1 && p.pending[0] == 0x1b && !p.inPaste {
		p.pending = p.pending[:0]
		return []Event{KeyEvent(KeyEscape)}
	}
	if len(p.pending) > 0 && p.pending[0] != 0x1b && !p.inPaste {
		// Stalled partial UTF-8; drop and resync
		p.pending = p.pending[:0]
	}
	return nil
}

// parse decodes as much of data as possible, appending events, and
// returns the number of bytes consumed (stops at an incomplete tail).
func (p *Parser) parse(data []byte, events *[]Event) int {
	i := 0
	n := len(data)

	for i < n {
		if p.inPaste {
			adv, done := p.parsePaste(data[i:], events)
			i += adv
			if !done {
				return i
			}
			continue
		}

		b := data[i]

		// Fast path: printable ASCII
		if b >= 0x20 && b < 0x7f {
			*events = append(*events, RuneEvent(rune(b)))
			i++
			continue
		}

		// Escape sequence
		if b == 0x1b {
			if i+1 >= n {
				return i // Wait for more data or the timeout
			}
			consumed := p.parseEscape(data[i:], events)
			if consumed == 0 {
				return i // Incomplete sequence
			}
			i += consumed
			continue
		}

		// Control characters
		if b < 0x20 {
			*events = append(*events, controlEvent(b))
			i++
			continue
		}

		// DEL
		if b == 0x7f {
			*events = append(*events, KeyEvent(KeyBackspace))
			i++
			continue
		}

		// UTF-8 multibyte
		seqLen := utf8SeqLen(b)
		if seqLen == 0 {
			i++ // Invalid start byte, skip
			continue
		}
		if i+seqLen > n {
			return i // Incomplete UTF-8
		}
		rn, size := decodeRune(data[i:])
		*events = append(*events, RuneEvent(rn))
		i += size
	}
	return i
}

// parsePaste consumes paste-region bytes up to the end marker. Interior
// bytes become plain rune events with no escape interpretation. Returns
// bytes advanced and whether the paste region was closed; when the tail
// could be a split end marker or split UTF-8 it is left unconsumed.
func (p *Parser) parsePaste(data []byte, events *[]Event) (int, bool) {
	limit := len(data)
	closed := false

	if idx := bytes.Index(data, pasteEnd); idx >= 0 {
		limit = idx
		closed = true
	} else {
		// Hold back a tail that is a prefix of the end marker
		hold := markerPrefixLen(data, pasteEnd)
		limit = len(data) - hold
	}

	i := 0
	for i < limit {
		b := data[i]
		if b < 0x80 {
			*events = append(*events, RuneEvent(rune(b)))
			i++
			continue
		}
		seqLen := utf8SeqLen(b)
		if seqLen == 0 {
			i++
			continue
		}
		if i+seqLen > limit {
			if closed {
				i++ // Truncated UTF-8 against the marker, skip
				continue
			}
			return i, false
		}
		rn, size := decodeRune(data[i:])
		*events = append(*events, RuneEvent(rn))
		i += size
	}

	if closed {
		p.inPaste = false
		return limit + len(pasteEnd), true
	}
	return i, i == len(data)
}

// markerPrefixLen returns the length of the longest suffix of data that
// is a proper prefix of marker.
func markerPrefixLen(data, marker []byte) int {
	max := len(marker) - 1
	if max > len(data) {
		max = len(data)
	}
	for l := max; l > 0; l-- {
		if bytes.Equal(data[len(data)-l:], marker[:l]) {
			return l
		}
	}
	return 0
}

// parseEscape decodes one escape sequence, returning 0 on incomplete
func (p *Parser) parseEscape(data []byte, events *[]Event) int {
	if len(data) < 2 {
		return 0
	}

	// ESC ESC -> Alt+Escape
	if data[1] == 0x1b {
		*events = append(*events, Event{Type: EventKey, Key: KeyEscape, Modifiers: ModAlt})
		return 2
	}

	if data[1] == '[' {
		return p.parseCSI(data, events)
	}
	if data[1] == 'O' {
		return parseSS3(data, events)
	}

	// Alt+control character
	if data[1] < 0x20 {
		ev := controlEvent(data[1])
		ev.Modifiers |= ModAlt
		*events = append(*events, ev)
		return 2
	}

	// Alt+printable
	if data[1] >= 0x20 && data[1] < 0x7f {
		*events = append(*events, Event{Type: EventKey, Key: KeyRune, Rune: rune(data[1]), Modifiers: ModAlt})
		return 2
	}

	// ESC followed by an undecodable byte: drop both and resync
	return 2
}

// parseCSI decodes a CSI sequence (ESC [ ...), returning 0 on incomplete.
// Unknown but well-formed sequences are consumed silently.
func (p *Parser) parseCSI(data []byte, events *[]Event) int {
	if len(data) < 3 {
		return 0
	}

	// X10 mouse: ESC [ M followed by three raw bytes
	if data[2] == 'M' {
		return parseX10Mouse(data, events)
	}

	// SGR mouse: ESC [ < Btn ; X ; Y M/m
	if data[2] == '<' {
		return parseSGRMouse(data, events)
	}

	// Scan for the final byte (0x40-0x7e)
	end := 2
	maxScan := len(data)
	if maxScan > maxSequenceLen {
		maxScan = maxSequenceLen
	}
	for end < maxScan {
		b := data[end]
		if b >= 0x40 && b <= 0x7e {
			end++
			goto found
		}
		if b < 0x20 || b > 0x3f {
			// Not a valid parameter/intermediate byte: malformed,
			// drop everything scanned and resume after it
			return end + 1
		}
		end++
	}
	if end >= maxSequenceLen {
		return end // Overlong garbage, drop
	}
	return 0 // Incomplete

found:
	final := data[end-1]
	params := data[2 : end-1]

	switch {
	case final == '~':
		p.parseTilde(params, events)
	case final == 'u':
		parseKitty(params, events)
	default:
		parseCSIKey(params, final, events)
	}
	return end
}

// parseTilde handles `~`-terminated sequences: vt220 extended keys,
// xterm function keys and the bracketed paste delimiters.
func (p *Parser) parseTilde(params []byte, events *[]Event) {
	code, mod, ok := splitParams(params)
	if !ok {
		return
	}
	switch code {
	case 200:
		p.inPaste = true
	case 201:
		// Stray paste terminator, ignore
	default:
		if key, known := csiTildeKeys[code]; known {
			*events = append(*events, Event{Type: EventKey, Key: key, Modifiers: mod})
		}
	}
}

// parseCSIKey handles letter-terminated CSI key sequences, with or
// without a `1;modifier` parameter segment.
func parseCSIKey(params []byte, final byte, events *[]Event) {
	key, known := csiFinalKeys[final]
	if !known {
		return // Unknown but well-formed, swallow
	}
	mod := ModNone
	if len(params) > 0 {
		// Only the xterm `1;modifier` form carries parameters here
		code, m, ok := splitParams(params)
		if !ok || code != 1 {
			return
		}
		mod = m
	}
	if final == 'Z' {
		mod |= ModShift
	}
	*events = append(*events, Event{Type: EventKey, Key: key, Modifiers: mod})
}

// parseKitty handles kitty keyboard protocol reports: CSI code;mod:action u
// where action 1=press 2=repeat 3=release, defaulting to press.
func parseKitty(params []byte, events *[]Event) {
	fields := bytes.Split(params, []byte{';'})
	if len(fields) == 0 || len(fields[0]) == 0 {
		return
	}

	// First field: key code, optionally followed by :alternates
	codeField := fields[0]
	if idx := bytes.IndexByte(codeField, ':'); idx >= 0 {
		codeField = codeField[:idx]
	}
	code, ok := atoiBytes(codeField)
	if !ok {
		return
	}

	mod := ModNone
	action := KeyPress
	if len(fields) > 1 && len(fields[1]) > 0 {
		modField := fields[1]
		if idx := bytes.IndexByte(modField, ':'); idx >= 0 {
			if a, ok := atoiBytes(modField[idx+1:]); ok {
				switch a {
				case 2:
					action = KeyRepeat
				case 3:
					action = KeyRelease
				}
			}
			modField = modField[:idx]
		}
		if m, ok := atoiBytes(modField); ok {
			mod = modifierFromCode(m)
		}
	}

	ev := Event{Type: EventKey, Modifiers: mod, Action: action}
	if key, known := kittyKeys[code]; known {
		ev.Key = key
	} else {
		ev.Key = KeyRune
		ev.Rune = rune(code)
	}
	*events = append(*events, ev)
}

// parseSS3 decodes an SS3 sequence (ESC O x)
func parseSS3(data []byte, events *[]Event) int {
	if len(data) < 3 {
		return 0
	}
	if key, ok := ss3Keys[data[2]]; ok {
		*events = append(*events, KeyEvent(key))
	}
	return 3 // Unknown SS3 consumed silently
}

// parseX10Mouse decodes ESC [ M btn x y with all three payload bytes
// offset by 32 and coordinates 1-based.
func parseX10Mouse(data []byte, events *[]Event) int {
	if len(data) < 6 {
		return 0
	}
	btn := int(data[3]) - 32
	x := int(data[4]) - 32 - 1
	y := int(data[5]) - 32 - 1

	button, action, mod := decodeMouseButton(btn, true)
	*events = append(*events, Event{
		Type:        EventMouse,
		MouseX:      x,
		MouseY:      y,
		MouseBtn:    button,
		MouseAction: action,
		Modifiers:   mod,
	})
	return 6
}

// parseSGRMouse decodes ESC [ < Btn ; X ; Y M/m
func parseSGRMouse(data []byte, events *[]Event) int {
	// Find terminator M or m
	end := 3
	for end < len(data) && end < maxSequenceLen {
		b := data[end]
		if b == 'M' || b == 'm' {
			break
		}
		if (b < '0' || b > '9') && b != ';' {
			return end + 1 // Malformed, drop
		}
		end++
	}
	if end >= len(data) {
		return 0 // Incomplete
	}
	if data[end] != 'M' && data[end] != 'm' {
		return end // Overlong garbage, drop
	}

	btn, x, y, ok := parseSGRParams(data[3:end])
	if !ok {
		return end + 1
	}

	button, action, mod := decodeMouseButton(btn, data[end] == 'M')
	*events = append(*events, Event{
		Type:        EventMouse,
		MouseX:      x - 1, // Convert to 0-indexed
		MouseY:      y - 1,
		MouseBtn:    button,
		MouseAction: action,
		Modifiers:   mod,
	})
	return end + 1
}

// parseSGRParams extracts btn, x, y from "Btn;X;Y"
func parseSGRParams(data []byte) (btn, x, y int, ok bool) {
	state := 0 // 0=btn, 1=x, 2=y
	val := 0

	for _, b := range data {
		if b == ';' {
			switch state {
			case 0:
				btn = val
			case 1:
				x = val
			}
			state++
			val = 0
			if state > 2 {
				return 0, 0, 0, false
			}
		} else {
			val = val*10 + int(b-'0')
			if val > 9999 { // Sanity limit
				return 0, 0, 0, false
			}
		}
	}

	if state != 2 {
		return 0, 0, 0, false
	}
	y = val
	return btn, x, y, true
}

// splitParams parses "N" or "N;M" where M is a modifier code
func splitParams(params []byte) (code int, mod Modifier, ok bool) {
	idx := bytes.IndexByte(params, ';')
	if idx < 0 {
		code, ok = atoiBytes(params)
		return code, ModNone, ok
	}
	code, ok = atoiBytes(params[:idx])
	if !ok {
		return 0, ModNone, false
	}
	m, ok := atoiBytes(params[idx+1:])
	if !ok {
		return 0, ModNone, false
	}
	return code, modifierFromCode(m), true
}

// atoiBytes parses a small decimal without allocation
func atoiBytes(b []byte) (int, bool) {
	if len(b) == 0 {
		return 0, false
	}
	n := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
		if n > 1<<21 {
			return 0, false
		}
	}
	return n, true
}

// controlEvent maps C0 control characters to key events
func controlEvent(b byte) Event {
	switch b {
	case 0x00:
		return KeyEvent(KeyCtrlSpace)
	case 0x08: // Ctrl+H doubles as Backspace
		return KeyEvent(KeyBackspace)
	case 0x09:
		return KeyEvent(KeyTab)
	case 0x0a, 0x0d:
		return KeyEvent(KeyEnter)
	case 0x1b:
		return KeyEvent(KeyEscape)
	case 0x1c:
		return KeyEvent(KeyCtrlBackslash)
	case 0x1d:
		return KeyEvent(KeyCtrlBracketRight)
	case 0x1e:
		return KeyEvent(KeyCtrlCaret)
	case 0x1f:
		return KeyEvent(KeyCtrlUnderscore)
	}
	if b >= 0x01 && b <= 0x1a {
		return KeyEvent(KeyCtrlA + Key(b-0x01))
	}
	return KeyEvent(KeyNone)
}

// utf8SeqLen returns the expected UTF-8 sequence length from the start
// byte, 0 if invalid
func utf8SeqLen(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b&0xe0 == 0xc0:
		return 2
	case b&0xf0 == 0xe0:
		return 3
	case b&0xf8 == 0xf0:
		return 4
	}
	return 0
}

// decodeRune decodes the first UTF-8 rune from data
func decodeRune(data []byte) (rune, int) {
	if len(data) == 0 {
		return 0, 0
	}

	b := data[0]
	if b < 0x80 {
		return rune(b), 1
	}

	var size int
	var min rune
	var r rune

	switch {
	case b&0xe0 == 0xc0:
		size = 2
		min = 0x80
		r = rune(b & 0x1f)
	case b&0xf0 == 0xe0:
		size = 3
		min = 0x800
		r = rune(b & 0x0f)
	case b&0xf8 == 0xf0:
		size = 4
		min = 0x10000
		r = rune(b & 0x07)
	default:
		return 0xFFFD, 1
	}

	if len(data) < size {
		return 0xFFFD, 1
	}

	for i := 1; i < size; i++ {
		if data[i]&0xc0 != 0x80 {
			return 0xFFFD, 1
		}
		r = r<<6 | rune(data[i]&0x3f)
	}

	if r < min {
		return 0xFFFD, 1 // Overlong encoding
	}
	if r >= 0xD800 && r <= 0xDFFF {
		return 0xFFFD, 1 // UTF-16 surrogate half
	}
	if r > 0x10FFFF {
		return 0xFFFD, 1
	}

	return r, size
}
