package terminal

import (
	"testing"
)

func feedAll(p *Parser, chunks ...[]byte) []Event {
	var events []Event
	for _, c := range chunks {
		events = append(events, p.Feed(c)...)
	}
	return events
}

func TestParserPrintable(t *testing.T) {
	p := NewParser()
	events := p.Feed([]byte("abc"))

	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}
	for i, want := range []rune{'a', 'b', 'c'} {
		if events[i].Type != EventKey || events[i].Key != KeyRune || events[i].Rune != want {
			t.Errorf("Event %d: expected rune %q, got %+v", i, want, events[i])
		}
	}
}

func TestParserUTF8(t *testing.T) {
	p := NewParser()
	events := p.Feed([]byte("héllo→"))

	want := []rune{'h', 'é', 'l', 'l', 'o', '→'}
	if len(events) != len(want) {
		t.Fatalf("Expected %d events, got %d", len(want), len(events))
	}
	for i, r := range want {
		if events[i].Rune != r {
			t.Errorf("Event %d: expected %q, got %q", i, r, events[i].Rune)
		}
	}
}

func TestParserUTF8SplitAcrossChunks(t *testing.T) {
	// é is 0xC3 0xA9; split between the two bytes
	p := NewParser()
	events := p.Feed([]byte{0xC3})
	if len(events) != 0 {
		t.Fatalf("Expected no events on partial UTF-8, got %d", len(events))
	}
	if !p.Pending() {
		t.Error("Expected pending bytes after partial UTF-8")
	}
	events = p.Feed([]byte{0xA9})
	if len(events) != 1 || events[0].Rune != 'é' {
		t.Errorf("Expected é, got %+v", events)
	}
}

func TestParserCSIKeys(t *testing.T) {
	tests := []struct {
		name  string
		input string
		key   Key
		mod   Modifier
	}{
		{"Up", "\x1b[A", KeyUp, ModNone},
		{"Down", "\x1b[B", KeyDown, ModNone},
		{"Right", "\x1b[C", KeyRight, ModNone},
		{"Left", "\x1b[D", KeyLeft, ModNone},
		{"Home", "\x1b[H", KeyHome, ModNone},
		{"End", "\x1b[F", KeyEnd, ModNone},
		{"Backtab", "\x1b[Z", KeyBacktab, ModShift},
		{"CtrlUp", "\x1b[1;5A", KeyUp, ModCtrl},
		{"ShiftRight", "\x1b[1;2C", KeyRight, ModShift},
		{"AltShiftDown", "\x1b[1;4B", KeyDown, ModShift | ModAlt},
		{"Delete", "\x1b[3~", KeyDelete, ModNone},
		{"Insert", "\x1b[2~", KeyInsert, ModNone},
		{"PageUp", "\x1b[5~", KeyPageUp, ModNone},
		{"PageDown", "\x1b[6~", KeyPageDown, ModNone},
		{"F5", "\x1b[15~", KeyF5, ModNone},
		{"F12", "\x1b[24~", KeyF12, ModNone},
		{"CtrlDelete", "\x1b[3;5~", KeyDelete, ModCtrl},
		{"F1SS3", "\x1bOP", KeyF1, ModNone},
		{"F4SS3", "\x1bOS", KeyF4, ModNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser()
			events := p.Feed([]byte(tt.input))
			if len(events) != 1 {
				t.Fatalf("Expected 1 event, got %d: %+v", len(events), events)
			}
			if events[0].Key != tt.key {
				t.Errorf("Expected key %d, got %d", tt.key, events[0].Key)
			}
			if events[0].Modifiers != tt.mod {
				t.Errorf("Expected modifiers %d, got %d", tt.mod, events[0].Modifiers)
			}
		})
	}
}

func TestParserChunkInvariance(t *testing.T) {
	// The same byte stream must decode identically no matter how it is
	// split across Feed calls.
	input := []byte("a\x1b[1;5Ab\x1b[3~\x1b[<0;10;5Mc")

	whole := NewParser()
	want := whole.Feed(input)

	for split := 1; split < len(input); split++ {
		p := NewParser()
		got := feedAll(p, input[:split], input[split:])
		if len(got) != len(want) {
			t.Fatalf("Split at %d: expected %d events, got %d", split, len(want), len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Split at %d, event %d: expected %+v, got %+v", split, i, want[i], got[i])
			}
		}
	}
}

func TestParserByteAtATime(t *testing.T) {
	input := []byte("\x1b[A")
	p := NewParser()
	var events []Event
	for _, b := range input {
		events = append(events, p.Feed([]byte{b})...)
	}
	if len(events) != 1 || events[0].Key != KeyUp {
		t.Errorf("Expected single Up event, got %+v", events)
	}
}

func TestParserUnknownSequenceSwallowed(t *testing.T) {
	// An unknown but well-formed sequence produces nothing; the stream
	// stays usable afterwards.
	p := NewParser()
	events := p.Feed([]byte("\x1b[9999Za"))

	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d: %+v", len(events), events)
	}
	if events[0].Key != KeyRune || events[0].Rune != 'a' {
		t.Errorf("Expected rune a, got %+v", events[0])
	}
}

func TestParserOverlongSequenceDropped(t *testing.T) {
	input := []byte("\x1b[")
	for i := 0; i < 100; i++ {
		input = append(input, ';')
	}
	input = append(input, 'x')

	p := NewParser()
	events := p.Feed(input)
	events = append(events, p.Feed([]byte("a"))...)

	// No key events may come out of the garbage, and the stream must
	// stay usable afterwards.
	for _, ev := range events {
		if ev.Key != KeyRune {
			t.Errorf("Unexpected key event from garbage: %+v", ev)
		}
	}
	if len(events) == 0 || events[len(events)-1].Rune != 'a' {
		t.Errorf("Expected trailing rune a, got %+v", events)
	}
}

func TestParserEscapeTimeout(t *testing.T) {
	p := NewParser()
	events := p.Feed([]byte{0x1b})
	if len(events) != 0 {
		t.Fatalf("Lone ESC must wait for the timeout, got %+v", events)
	}
	if !p.Pending() {
		t.Fatal("Expected pending state after lone ESC")
	}

	events = p.Timeout()
	if len(events) != 1 || events[0].Key != KeyEscape {
		t.Errorf("Expected Escape on timeout, got %+v", events)
	}
	if p.Pending() {
		t.Error("Expected empty pending buffer after timeout")
	}
}

func TestParserEscapeCompletedBeforeTimeout(t *testing.T) {
	p := NewParser()
	p.Feed([]byte{0x1b})
	events := p.Feed([]byte("[A"))
	if len(events) != 1 || events[0].Key != KeyUp {
		t.Errorf("Expected Up, got %+v", events)
	}
}

func TestParserAltModified(t *testing.T) {
	tests := []struct {
		name  string
		input string
		key   Key
		r     rune
		mod   Modifier
	}{
		{"AltX", "\x1bx", KeyRune, 'x', ModAlt},
		{"AltEnter", "\x1b\r", KeyEnter, 0, ModAlt},
		{"AltEscape", "\x1b\x1b", KeyEscape, 0, ModAlt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser()
			events := p.Feed([]byte(tt.input))
			if len(events) != 1 {
				t.Fatalf("Expected 1 event, got %d", len(events))
			}
			ev := events[0]
			if ev.Key != tt.key || ev.Rune != tt.r || ev.Modifiers&ModAlt == 0 {
				t.Errorf("Expected key=%d rune=%q with Alt, got %+v", tt.key, tt.r, ev)
			}
		})
	}
}

func TestParserControlKeys(t *testing.T) {
	tests := []struct {
		name string
		b    byte
		key  Key
	}{
		{"CtrlA", 0x01, KeyCtrlA},
		{"CtrlC", 0x03, KeyCtrlC},
		{"CtrlZ", 0x1a, KeyCtrlZ},
		{"Tab", 0x09, KeyTab},
		{"Enter", 0x0d, KeyEnter},
		{"LineFeed", 0x0a, KeyEnter},
		{"Backspace", 0x7f, KeyBackspace},
		{"CtrlH", 0x08, KeyBackspace},
		{"CtrlSpace", 0x00, KeyCtrlSpace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser()
			events := p.Feed([]byte{tt.b})
			if len(events) != 1 || events[0].Key != tt.key {
				t.Errorf("Expected key %d, got %+v", tt.key, events)
			}
		})
	}
}

func TestParserKitty(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		key    Key
		r      rune
		mod    Modifier
		action KeyAction
	}{
		{"EscapePress", "\x1b[27u", KeyEscape, 0, ModNone, KeyPress},
		{"EnterPress", "\x1b[13u", KeyEnter, 0, ModNone, KeyPress},
		{"CtrlA", "\x1b[97;5u", KeyRune, 'a', ModCtrl, KeyPress},
		{"Repeat", "\x1b[97;1:2u", KeyRune, 'a', ModNone, KeyRepeat},
		{"Release", "\x1b[97;1:3u", KeyRune, 'a', ModNone, KeyRelease},
		{"CtrlRelease", "\x1b[98;5:3u", KeyRune, 'b', ModCtrl, KeyRelease},
		{"Alternates", "\x1b[97:65;2u", KeyRune, 'a', ModShift, KeyPress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser()
			events := p.Feed([]byte(tt.input))
			if len(events) != 1 {
				t.Fatalf("Expected 1 event, got %d: %+v", len(events), events)
			}
			ev := events[0]
			if ev.Key != tt.key || ev.Rune != tt.r || ev.Modifiers != tt.mod || ev.Action != tt.action {
				t.Errorf("Expected key=%d rune=%q mod=%d action=%v, got %+v",
					tt.key, tt.r, tt.mod, tt.action, ev)
			}
		})
	}
}

func TestParserSGRMouse(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		x, y   int
		btn    MouseButton
		action MouseAction
		mod    Modifier
	}{
		{"LeftPress", "\x1b[<0;10;5M", 9, 4, MouseBtnLeft, MouseActionPress, ModNone},
		{"LeftRelease", "\x1b[<0;10;5m", 9, 4, MouseBtnLeft, MouseActionRelease, ModNone},
		{"RightPress", "\x1b[<2;1;1M", 0, 0, MouseBtnRight, MouseActionPress, ModNone},
		{"CtrlClick", "\x1b[<16;3;7M", 2, 6, MouseBtnLeft, MouseActionPress, ModCtrl},
		{"ScrollUp", "\x1b[<64;8;2M", 7, 1, MouseBtnWheelUp, MouseActionScrollUp, ModNone},
		{"ScrollDown", "\x1b[<65;8;2M", 7, 1, MouseBtnWheelDown, MouseActionScrollDown, ModNone},
		{"Drag", "\x1b[<32;4;4M", 3, 3, MouseBtnLeft, MouseActionDrag, ModNone},
		{"Move", "\x1b[<35;4;4M", 3, 3, MouseBtnNone, MouseActionMove, ModNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser()
			events := p.Feed([]byte(tt.input))
			if len(events) != 1 {
				t.Fatalf("Expected 1 event, got %d", len(events))
			}
			ev := events[0]
			if ev.Type != EventMouse {
				t.Fatalf("Expected mouse event, got %+v", ev)
			}
			if ev.MouseX != tt.x || ev.MouseY != tt.y {
				t.Errorf("Expected position (%d,%d), got (%d,%d)", tt.x, tt.y, ev.MouseX, ev.MouseY)
			}
			if ev.MouseBtn != tt.btn || ev.MouseAction != tt.action {
				t.Errorf("Expected %v/%v, got %v/%v", tt.btn, tt.action, ev.MouseBtn, ev.MouseAction)
			}
			if ev.Modifiers != tt.mod {
				t.Errorf("Expected modifiers %d, got %d", tt.mod, ev.Modifiers)
			}
		})
	}
}

func TestParserX10Mouse(t *testing.T) {
	// ESC [ M btn x y, payload bytes offset by 32, coordinates 1-based
	p := NewParser()
	events := p.Feed([]byte{0x1b, '[', 'M', 32 + 0, 32 + 11, 32 + 6})

	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}
	ev := events[0]
	if ev.Type != EventMouse || ev.MouseBtn != MouseBtnLeft || ev.MouseAction != MouseActionPress {
		t.Errorf("Expected left press, got %+v", ev)
	}
	if ev.MouseX != 10 || ev.MouseY != 5 {
		t.Errorf("Expected (10,5), got (%d,%d)", ev.MouseX, ev.MouseY)
	}
}

func TestParserX10Release(t *testing.T) {
	p := NewParser()
	events := p.Feed([]byte{0x1b, '[', 'M', 32 + 3, 32 + 1, 32 + 1})
	if len(events) != 1 || events[0].MouseAction != MouseActionRelease {
		t.Errorf("Expected release, got %+v", events)
	}
}

func TestParserBracketedPaste(t *testing.T) {
	p := NewParser()
	events := p.Feed([]byte("\x1b[200~hi\x1b[A\x1b[201~x"))

	// Interior bytes come through as plain runes with no escape
	// interpretation, then the trailing x decodes normally.
	want := []rune{'h', 'i', 0x1b, '[', 'A', 'x'}
	if len(events) != len(want) {
		t.Fatalf("Expected %d events, got %d: %+v", len(want), len(events), events)
	}
	for i, r := range want {
		if events[i].Key != KeyRune || events[i].Rune != r {
			t.Errorf("Event %d: expected rune %q, got %+v", i, r, events[i])
		}
	}
}

func TestParserPasteSplitMarker(t *testing.T) {
	// The end marker split across chunks must not leak marker bytes as
	// paste content.
	p := NewParser()
	var events []Event
	events = append(events, p.Feed([]byte("\x1b[200~ab\x1b[20"))...)
	events = append(events, p.Feed([]byte("1~c"))...)

	want := []rune{'a', 'b', 'c'}
	if len(events) != len(want) {
		t.Fatalf("Expected %d events, got %d: %+v", len(want), len(events), events)
	}
	for i, r := range want {
		if events[i].Rune != r {
			t.Errorf("Event %d: expected %q, got %q", i, r, events[i].Rune)
		}
	}
}

func TestParserPasteTimeoutMidMarker(t *testing.T) {
	// A read timeout while the held tail is the ESC of a split end
	// marker must not release it as an Escape key; the region closes
	// normally when the rest of the marker arrives.
	p := NewParser()
	var events []Event
	events = append(events, p.Feed([]byte("\x1b[200~ab\x1b"))...)

	if timeoutEvents := p.Timeout(); len(timeoutEvents) != 0 {
		t.Fatalf("Timeout inside paste must emit nothing, got %+v", timeoutEvents)
	}
	if !p.Pending() {
		t.Fatal("Held marker byte must stay buffered across the timeout")
	}

	events = append(events, p.Feed([]byte("[201~x"))...)

	want := []rune{'a', 'b', 'x'}
	if len(events) != len(want) {
		t.Fatalf("Expected %d events, got %d: %+v", len(want), len(events), events)
	}
	for i, r := range want {
		if events[i].Key != KeyRune || events[i].Rune != r {
			t.Errorf("Event %d: expected rune %q, got %+v", i, r, events[i])
		}
	}
}

func TestParserPasteEscapeContent(t *testing.T) {
	// A held ESC inside a paste that turns out not to start the end
	// marker is delivered as paste content, not interpreted.
	p := NewParser()
	var events []Event
	events = append(events, p.Feed([]byte("\x1b[200~a\x1b"))...)
	events = append(events, p.Feed([]byte("z\x1b[201~"))...)

	want := []rune{'a', 0x1b, 'z'}
	if len(events) != len(want) {
		t.Fatalf("Expected %d events, got %d: %+v", len(want), len(events), events)
	}
	for i, r := range want {
		if events[i].Rune != r {
			t.Errorf("Event %d: expected %q, got %q", i, r, events[i].Rune)
		}
	}
}

func TestParserPasteUTF8(t *testing.T) {
	p := NewParser()
	events := p.Feed([]byte("\x1b[200~né\x1b[201~"))
	if len(events) != 2 || events[0].Rune != 'n' || events[1].Rune != 'é' {
		t.Errorf("Expected n é, got %+v", events)
	}
}

func TestParserInvalidUTF8Skipped(t *testing.T) {
	p := NewParser()
	events := p.Feed([]byte{0x80, 'a'}) // Stray continuation byte
	if len(events) != 1 || events[0].Rune != 'a' {
		t.Errorf("Expected only a, got %+v", events)
	}
}

func TestParserRejectsInvalidCodePoints(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"SurrogateHalf", []byte{0xED, 0xA0, 0x80, 'a'}},  // U+D800
		{"HighSurrogate", []byte{0xED, 0xBF, 0xBF, 'a'}},  // U+DFFF
		{"AboveMaxRune", []byte{0xF4, 0x90, 0x80, 0x80, 'a'}}, // U+110000
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser()
			events := p.Feed(tt.input)
			if len(events) == 0 {
				t.Fatal("Expected events")
			}
			if events[0].Rune != 0xFFFD {
				t.Errorf("Expected replacement character first, got %+v", events[0])
			}
			last := events[len(events)-1]
			if last.Rune != 'a' {
				t.Errorf("Expected trailing rune a, got %+v", last)
			}
			for _, ev := range events {
				if ev.Rune >= 0xD800 && ev.Rune <= 0xDFFF {
					t.Errorf("Surrogate leaked through: %+v", ev)
				}
				if ev.Rune > 0x10FFFF {
					t.Errorf("Out-of-range rune leaked through: %+v", ev)
				}
			}
		})
	}
}

func TestParserStalledPartialDropped(t *testing.T) {
	p := NewParser()
	p.Feed([]byte{0xC3}) // Partial UTF-8 that never completes
	events := p.Timeout()
	if len(events) != 0 {
		t.Errorf("Expected no events, got %+v", events)
	}
	if p.Pending() {
		t.Error("Expected pending buffer cleared after stall")
	}

	events = p.Feed([]byte("a"))
	if len(events) != 1 || events[0].Rune != 'a' {
		t.Errorf("Expected resync to rune a, got %+v", events)
	}
}

func TestModifierFromCode(t *testing.T) {
	tests := []struct {
		code int
		want Modifier
	}{
		{0, ModNone},
		{1, ModNone},
		{2, ModShift},
		{3, ModAlt},
		{4, ModShift | ModAlt},
		{5, ModCtrl},
		{6, ModShift | ModCtrl},
		{8, ModShift | ModAlt | ModCtrl},
	}
	for _, tt := range tests {
		if got := modifierFromCode(tt.code); got != tt.want {
			t.Errorf("Code %d: expected %d, got %d", tt.code, tt.want, got)
		}
	}
}
