package steep

// KeyKind identifies the key a KeyMsg reports. Printable input is KeyRunes
// (with the decoded text in Key.Text); everything else is a symbolic kind
// with an empty Text.
type KeyKind int

const (
	KeyRunes KeyKind = iota
	KeySpace

	// Single control bytes.
	KeyNull      // NUL
	KeyBreak     // ETX, the interrupt-style break byte
	KeyTab       // HT
	KeyEnter     // CR
	KeyLineFeed  // LF
	KeyEscape    // ESC
	KeyBackspace // DEL

	KeyUp
	KeyDown
	KeyRight
	KeyLeft

	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDown
	KeyInsert
	KeyDelete

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20

	KeyShiftTab

	KeyShiftUp
	KeyShiftDown
	KeyShiftRight
	KeyShiftLeft
	KeyCtrlUp
	KeyCtrlDown
	KeyCtrlRight
	KeyCtrlLeft
	KeyCtrlShiftUp
	KeyCtrlShiftDown
	KeyCtrlShiftRight
	KeyCtrlShiftLeft

	KeyShiftHome
	KeyShiftEnd
	KeyCtrlHome
	KeyCtrlEnd
	KeyCtrlShiftHome
	KeyCtrlShiftEnd
	KeyCtrlPgUp
	KeyCtrlPgDown
)

var keyNames = map[KeyKind]string{
	KeyRunes:     "runes",
	KeySpace:     "space",
	KeyNull:      "null",
	KeyBreak:     "break",
	KeyTab:       "tab",
	KeyEnter:     "enter",
	KeyLineFeed:  "linefeed",
	KeyEscape:    "esc",
	KeyBackspace: "backspace",

	KeyUp:    "up",
	KeyDown:  "down",
	KeyRight: "right",
	KeyLeft:  "left",

	KeyHome:   "home",
	KeyEnd:    "end",
	KeyPgUp:   "pgup",
	KeyPgDown: "pgdown",
	KeyInsert: "insert",
	KeyDelete: "delete",

	KeyF1:  "f1",
	KeyF2:  "f2",
	KeyF3:  "f3",
	KeyF4:  "f4",
	KeyF5:  "f5",
	KeyF6:  "f6",
	KeyF7:  "f7",
	KeyF8:  "f8",
	KeyF9:  "f9",
	KeyF10: "f10",
	KeyF11: "f11",
	KeyF12: "f12",
	KeyF13: "f13",
	KeyF14: "f14",
	KeyF15: "f15",
	KeyF16: "f16",
	KeyF17: "f17",
	KeyF18: "f18",
	KeyF19: "f19",
	KeyF20: "f20",

	KeyShiftTab: "shift+tab",

	KeyShiftUp:        "shift+up",
	KeyShiftDown:      "shift+down",
	KeyShiftRight:     "shift+right",
	KeyShiftLeft:      "shift+left",
	KeyCtrlUp:         "ctrl+up",
	KeyCtrlDown:       "ctrl+down",
	KeyCtrlRight:      "ctrl+right",
	KeyCtrlLeft:       "ctrl+left",
	KeyCtrlShiftUp:    "ctrl+shift+up",
	KeyCtrlShiftDown:  "ctrl+shift+down",
	KeyCtrlShiftRight: "ctrl+shift+right",
	KeyCtrlShiftLeft:  "ctrl+shift+left",

	KeyShiftHome:     "shift+home",
	KeyShiftEnd:      "shift+end",
	KeyCtrlHome:      "ctrl+home",
	KeyCtrlEnd:       "ctrl+end",
	KeyCtrlShiftHome: "ctrl+shift+home",
	KeyCtrlShiftEnd:  "ctrl+shift+end",
	KeyCtrlPgUp:      "ctrl+pgup",
	KeyCtrlPgDown:    "ctrl+pgdown",
}

// Key describes a single decoded keyboard event.
type Key struct {
	// Kind identifies the key. KeyRunes means Text holds decoded input.
	Kind KeyKind

	// Text holds the decoded text for KeyRunes events: one Unicode scalar
	// for typed input, or the whole pasted span when Paste is set. Empty
	// for every other kind.
	Text string

	// Alt reports that the key arrived with the Alt modifier.
	Alt bool

	// Paste reports that Text arrived via bracketed paste rather than
	// being typed.
	Paste bool
}

// KeyMsg is the message form of a decoded key event.
type KeyMsg Key

// String renders the key in a human-readable form ("q", "alt+left",
// "ctrl+shift+home"). Pasted text is bracketed to distinguish it from
// typed input.
func (k KeyMsg) String() string {
	var s string
	if k.Alt {
		s = "alt+"
	}
	if k.Kind == KeyRunes {
		if k.Paste {
			return s + "[" + k.Text + "]"
		}
		return s + k.Text
	}
	return s + keyNames[k.Kind]
}

// sequences maps complete escape sequences to the keys they encode.
// Populated at init; extended with xterm-style modifier variants.
var sequences = map[string]Key{
	// Arrows (ANSI and SS3 application-cursor forms).
	"\x1b[A": {Kind: KeyUp},
	"\x1b[B": {Kind: KeyDown},
	"\x1b[C": {Kind: KeyRight},
	"\x1b[D": {Kind: KeyLeft},
	"\x1bOA": {Kind: KeyUp},
	"\x1bOB": {Kind: KeyDown},
	"\x1bOC": {Kind: KeyRight},
	"\x1bOD": {Kind: KeyLeft},

	// Navigation block.
	"\x1b[H":  {Kind: KeyHome},
	"\x1b[F":  {Kind: KeyEnd},
	"\x1bOH":  {Kind: KeyHome},
	"\x1bOF":  {Kind: KeyEnd},
	"\x1b[1~": {Kind: KeyHome},
	"\x1b[4~": {Kind: KeyEnd},
	"\x1b[7~": {Kind: KeyHome},
	"\x1b[8~": {Kind: KeyEnd},
	"\x1b[2~": {Kind: KeyInsert},
	"\x1b[3~": {Kind: KeyDelete},
	"\x1b[5~": {Kind: KeyPgUp},
	"\x1b[6~": {Kind: KeyPgDown},

	"\x1b[Z": {Kind: KeyShiftTab},

	// Function keys: SS3, xterm tilde codes, and the linux console forms.
	"\x1bOP":   {Kind: KeyF1},
	"\x1bOQ":   {Kind: KeyF2},
	"\x1bOR":   {Kind: KeyF3},
	"\x1bOS":   {Kind: KeyF4},
	"\x1b[[A":  {Kind: KeyF1},
	"\x1b[[B":  {Kind: KeyF2},
	"\x1b[[C":  {Kind: KeyF3},
	"\x1b[[D":  {Kind: KeyF4},
	"\x1b[[E":  {Kind: KeyF5},
	"\x1b[11~": {Kind: KeyF1},
	"\x1b[12~": {Kind: KeyF2},
	"\x1b[13~": {Kind: KeyF3},
	"\x1b[14~": {Kind: KeyF4},
	"\x1b[15~": {Kind: KeyF5},
	"\x1b[17~": {Kind: KeyF6},
	"\x1b[18~": {Kind: KeyF7},
	"\x1b[19~": {Kind: KeyF8},
	"\x1b[20~": {Kind: KeyF9},
	"\x1b[21~": {Kind: KeyF10},
	"\x1b[23~": {Kind: KeyF11},
	"\x1b[24~": {Kind: KeyF12},
	"\x1b[25~": {Kind: KeyF13},
	"\x1b[26~": {Kind: KeyF14},
	"\x1b[28~": {Kind: KeyF15},
	"\x1b[29~": {Kind: KeyF16},
	"\x1b[31~": {Kind: KeyF17},
	"\x1b[32~": {Kind: KeyF18},
	"\x1b[33~": {Kind: KeyF19},
	"\x1b[34~": {Kind: KeyF20},
}

// modifiedKinds maps a base kind to its shift / ctrl / ctrl+shift variants.
// Kinds without a distinct variant keep the base kind and rely on the Alt
// flag alone.
var modifiedKinds = map[KeyKind][3]KeyKind{
	KeyUp:    {KeyShiftUp, KeyCtrlUp, KeyCtrlShiftUp},
	KeyDown:  {KeyShiftDown, KeyCtrlDown, KeyCtrlShiftDown},
	KeyRight: {KeyShiftRight, KeyCtrlRight, KeyCtrlShiftRight},
	KeyLeft:  {KeyShiftLeft, KeyCtrlLeft, KeyCtrlShiftLeft},
	KeyHome:  {KeyShiftHome, KeyCtrlHome, KeyCtrlShiftHome},
	KeyEnd:   {KeyShiftEnd, KeyCtrlEnd, KeyCtrlShiftEnd},
	KeyPgUp:  {KeyPgUp, KeyCtrlPgUp, KeyCtrlPgUp},
	KeyPgDown: {
		KeyPgDown, KeyCtrlPgDown, KeyCtrlPgDown,
	},
}

// sequencePrefixes holds every strict prefix of every table entry, so the
// decoder can tell "incomplete sequence" from "never going to match".
var sequencePrefixes = map[string]bool{}

// maxSequenceLen bounds the longest-match scan in the decoder.
var maxSequenceLen int

func init() {
	// xterm modified variants: CSI 1;<m><letter> for arrows and Home/End,
	// CSI <code>;<m>~ for the tilde block. Modifier code m-1 is a bitmask:
	// 1 shift, 2 alt, 4 ctrl.
	letterBase := map[byte]KeyKind{
		'A': KeyUp, 'B': KeyDown, 'C': KeyRight, 'D': KeyLeft,
		'H': KeyHome, 'F': KeyEnd,
	}
	tildeBase := map[byte]KeyKind{
		'2': KeyInsert, '3': KeyDelete, '5': KeyPgUp, '6': KeyPgDown,
	}
	for m := byte(2); m <= 8; m++ {
		bits := m - 1
		shift := bits&1 != 0
		alt := bits&2 != 0
		ctrl := bits&4 != 0
		for letter, base := range letterBase {
			seq := "\x1b[1;" + string('0'+m) + string(letter)
			sequences[seq] = Key{Kind: variantKind(base, shift, ctrl), Alt: alt}
		}
		for code, base := range tildeBase {
			seq := "\x1b[" + string(code) + ";" + string('0'+m) + "~"
			sequences[seq] = Key{Kind: variantKind(base, shift, ctrl), Alt: alt}
		}
	}

	for seq := range sequences {
		if len(seq) > maxSequenceLen {
			maxSequenceLen = len(seq)
		}
		for i := 1; i < len(seq); i++ {
			sequencePrefixes[seq[:i]] = true
		}
	}
}

func variantKind(base KeyKind, shift, ctrl bool) KeyKind {
	v, ok := modifiedKinds[base]
	if !ok {
		return base
	}
	switch {
	case shift && ctrl:
		return v[2]
	case ctrl:
		return v[1]
	case shift:
		return v[0]
	default:
		return base
	}
}
