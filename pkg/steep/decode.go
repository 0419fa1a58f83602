package steep

import (
	"bytes"
	"log/slog"
	"unicode/utf8"
)

// decodeStatus is the tri-state outcome of a single decode attempt.
type decodeStatus int

const (
	// decodedEvent: the consumed length is valid. The message is usually
	// non-nil; a nil message means the bytes decoded to nothing (an empty
	// paste).
	decodedEvent decodeStatus = iota
	// needMoreData: the buffer holds an incomplete sequence; wait for the
	// next chunk before deciding.
	needMoreData
	// noDecodableMatch: the leading bytes can never become an event, no
	// matter what arrives later.
	noDecodableMatch
)

const asciiEsc = 0x1b

var (
	legacyMouseIntro = []byte("\x1b[M")
	sgrMouseIntro    = []byte("\x1b[<")
	focusInSeq       = []byte("\x1b[I")
	focusOutSeq      = []byte("\x1b[O")
	pasteStartSeq    = []byte("\x1b[200~")
	pasteEndSeq      = []byte("\x1b[201~")
)

// controlKeys maps the single control bytes the runtime recognizes.
// Other control bytes fall through to generic rune decoding.
var controlKeys = map[byte]KeyKind{
	0x00: KeyNull,
	0x03: KeyBreak,
	0x09: KeyTab,
	0x0a: KeyLineFeed,
	0x0d: KeyEnter,
	0x1b: KeyEscape,
	0x7f: KeyBackspace,
}

// decodeOne attempts to decode a single event from the start of buf.
// eof reports that no further bytes will arrive, which turns "incomplete"
// prefixes into their shorter interpretations (a lone ESC becomes the
// escape key). Rules are tried in priority order: mouse, focus, bracketed
// paste, the fixed sequence table, alt+rune, single control bytes, and
// finally a generic UTF-8 scalar.
func decodeOne(buf []byte, eof bool) (Msg, int, decodeStatus) {
	if len(buf) == 0 {
		if eof {
			return nil, 0, noDecodableMatch
		}
		return nil, 0, needMoreData
	}

	if buf[0] == asciiEsc {
		if msg, n, st := decodeMouse(buf, eof); st != noDecodableMatch {
			return msg, n, st
		}
		if bytes.HasPrefix(buf, focusInSeq) {
			return FocusMsg{}, len(focusInSeq), decodedEvent
		}
		if bytes.HasPrefix(buf, focusOutSeq) {
			return BlurMsg{}, len(focusOutSeq), decodedEvent
		}
		if msg, n, st := decodePaste(buf, eof); st != noDecodableMatch {
			return msg, n, st
		}
		if msg, n, st := decodeSequence(buf, eof); st != noDecodableMatch {
			return msg, n, st
		}
		if msg, n, st := decodeAltRune(buf, eof); st != noDecodableMatch {
			return msg, n, st
		}
	}

	if kind, ok := controlKeys[buf[0]]; ok {
		return KeyMsg{Kind: kind}, 1, decodedEvent
	}

	return decodeRune(buf, eof)
}

// decodeMouse handles both the legacy fixed-width "ESC [ M" form and the
// variable-width SGR "ESC [ <" form.
func decodeMouse(buf []byte, eof bool) (Msg, int, decodeStatus) {
	if bytes.HasPrefix(buf, legacyMouseIntro) {
		if len(buf) < 6 {
			if eof {
				return nil, 0, noDecodableMatch
			}
			return nil, 0, needMoreData
		}
		return parseLegacyMouse(buf[:6]), 6, decodedEvent
	}
	if bytes.HasPrefix(buf, sgrMouseIntro) {
		for i := len(sgrMouseIntro); i < len(buf); i++ {
			switch c := buf[i]; {
			case c == 'M' || c == 'm':
				msg, ok := parseSGRMouse(buf[:i+1])
				if !ok {
					return nil, 0, noDecodableMatch
				}
				return msg, i + 1, decodedEvent
			case c != ';' && (c < '0' || c > '9'):
				return nil, 0, noDecodableMatch
			}
		}
		if eof {
			return nil, 0, noDecodableMatch
		}
		return nil, 0, needMoreData
	}
	return nil, 0, noDecodableMatch
}

// decodePaste handles bracketed paste. The payload is everything between
// the start and end markers; a paste is never emitted partially.
func decodePaste(buf []byte, eof bool) (Msg, int, decodeStatus) {
	if !bytes.HasPrefix(buf, pasteStartSeq) {
		// A strict prefix of the start marker may still grow into one.
		// Most such prefixes double as sequence-table prefixes, but
		// "\x1b[200" does not, so check here.
		if !eof && len(buf) < len(pasteStartSeq) && bytes.HasPrefix(pasteStartSeq, buf) {
			return nil, 0, needMoreData
		}
		return nil, 0, noDecodableMatch
	}
	idx := bytes.Index(buf[len(pasteStartSeq):], pasteEndSeq)
	if idx < 0 {
		if eof {
			return nil, 0, noDecodableMatch
		}
		return nil, 0, needMoreData
	}
	content := buf[len(pasteStartSeq) : len(pasteStartSeq)+idx]
	consumed := len(pasteStartSeq) + idx + len(pasteEndSeq)
	if len(content) == 0 {
		// Pasting nothing decodes to nothing; a runes key always carries
		// text.
		return nil, consumed, decodedEvent
	}
	return KeyMsg{Kind: KeyRunes, Text: string(content), Paste: true}, consumed, decodedEvent
}

// decodeSequence matches the fixed escape-sequence table, preferring any
// complete entry and reporting needMoreData while the buffer is still a
// strict prefix of some entry.
func decodeSequence(buf []byte, eof bool) (Msg, int, decodeStatus) {
	limit := min(len(buf), maxSequenceLen)
	for i := 2; i <= limit; i++ {
		if k, ok := sequences[string(buf[:i])]; ok {
			return KeyMsg(k), i, decodedEvent
		}
	}
	if !eof && len(buf) < maxSequenceLen && sequencePrefixes[string(buf)] {
		return nil, 0, needMoreData
	}
	return nil, 0, noDecodableMatch
}

// decodeAltRune handles ESC followed by a single decodable scalar: a rune
// key with the Alt flag, or the matching symbolic kind when the scalar is
// one of the recognized control bytes (alt+enter, alt+backspace, ...).
func decodeAltRune(buf []byte, eof bool) (Msg, int, decodeStatus) {
	if len(buf) < 2 {
		return nil, 0, noDecodableMatch
	}
	rest := buf[1:]
	if kind, ok := controlKeys[rest[0]]; ok {
		return KeyMsg{Kind: kind, Alt: true}, 2, decodedEvent
	}
	if !utf8.FullRune(rest) {
		if eof {
			return nil, 0, noDecodableMatch
		}
		return nil, 0, needMoreData
	}
	r, size := utf8.DecodeRune(rest)
	if r == utf8.RuneError && size == 1 {
		return nil, 0, noDecodableMatch
	}
	if r == ' ' {
		return KeyMsg{Kind: KeySpace, Alt: true}, 1 + size, decodedEvent
	}
	return KeyMsg{Kind: KeyRunes, Text: string(rest[:size]), Alt: true}, 1 + size, decodedEvent
}

// decodeRune decodes one UTF-8 scalar. Space is reported as its own kind.
func decodeRune(buf []byte, eof bool) (Msg, int, decodeStatus) {
	if !utf8.FullRune(buf) {
		if eof {
			return nil, 0, noDecodableMatch
		}
		return nil, 0, needMoreData
	}
	r, size := utf8.DecodeRune(buf)
	if r == utf8.RuneError && size == 1 {
		return nil, 0, noDecodableMatch
	}
	if r == ' ' {
		return KeyMsg{Kind: KeySpace}, size, decodedEvent
	}
	return KeyMsg{Kind: KeyRunes, Text: string(buf[:size])}, size, decodedEvent
}

// decoder accumulates raw terminal bytes and drains them into events.
// The unconsumed suffix (a possibly incomplete sequence) is carried over
// between feeds. It is owned by a single goroutine; the Program's input
// callback is the only caller.
type decoder struct {
	buf    []byte
	logger *slog.Logger
}

// feed appends a chunk and delivers every complete event in order.
func (d *decoder) feed(data []byte, deliver func(Msg)) {
	d.buf = append(d.buf, data...)
	d.drain(false, deliver)
}

// close drains whatever remains, treating the buffer as final so that a
// trailing lone ESC is delivered as the escape key.
func (d *decoder) close(deliver func(Msg)) {
	d.drain(true, deliver)
}

func (d *decoder) drain(eof bool, deliver func(Msg)) {
	for len(d.buf) > 0 {
		msg, n, status := decodeOne(d.buf, eof)
		switch status {
		case decodedEvent:
			d.buf = d.buf[n:]
			if msg != nil {
				deliver(msg)
			}
		case needMoreData:
			return
		case noDecodableMatch:
			// Drop one byte and retry so a junk byte cannot stall the
			// stream.
			if d.logger != nil {
				d.logger.Debug("dropping undecodable input byte",
					"byte", d.buf[0])
			}
			d.buf = d.buf[1:]
		}
	}
}
