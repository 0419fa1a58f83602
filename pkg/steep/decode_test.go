package steep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feedAll runs the chunks through a fresh decoder and collects every
// delivered message.
func feedAll(chunks ...[]byte) []Msg {
	d := &decoder{}
	var msgs []Msg
	for _, c := range chunks {
		d.feed(c, func(m Msg) { msgs = append(msgs, m) })
	}
	return msgs
}

func TestDecodePlainRunes(t *testing.T) {
	msgs := feedAll([]byte("ab"))
	require.Equal(t, []Msg{
		KeyMsg{Kind: KeyRunes, Text: "a"},
		KeyMsg{Kind: KeyRunes, Text: "b"},
	}, msgs)
}

func TestDecodeSpaceIsItsOwnKind(t *testing.T) {
	msgs := feedAll([]byte(" "))
	require.Equal(t, []Msg{KeyMsg{Kind: KeySpace}}, msgs)
}

func TestDecodeControlBytes(t *testing.T) {
	msgs := feedAll([]byte{0x03, '\t', '\r', 0x7f})
	require.Equal(t, []Msg{
		KeyMsg{Kind: KeyBreak},
		KeyMsg{Kind: KeyTab},
		KeyMsg{Kind: KeyEnter},
		KeyMsg{Kind: KeyBackspace},
	}, msgs)
}

func TestDecodeMultibyteRuneSplitAcrossChunks(t *testing.T) {
	smile := []byte("🙂")
	msgs := feedAll(smile[:2], smile[2:])
	require.Equal(t, []Msg{KeyMsg{Kind: KeyRunes, Text: "🙂"}}, msgs)
}

func TestDecodeSequenceTable(t *testing.T) {
	cases := map[string]Key{
		"\x1b[A":    {Kind: KeyUp},
		"\x1bOB":    {Kind: KeyDown},
		"\x1b[Z":    {Kind: KeyShiftTab},
		"\x1b[3~":   {Kind: KeyDelete},
		"\x1b[7~":   {Kind: KeyHome},
		"\x1bOP":    {Kind: KeyF1},
		"\x1b[[E":   {Kind: KeyF5},
		"\x1b[21~":  {Kind: KeyF10},
		"\x1b[34~":  {Kind: KeyF20},
		"\x1b[1;5A": {Kind: KeyCtrlUp},
		"\x1b[1;2H": {Kind: KeyShiftHome},
		"\x1b[1;3C": {Kind: KeyRight, Alt: true},
		"\x1b[1;8D": {Kind: KeyCtrlShiftLeft},
		"\x1b[5;5~": {Kind: KeyCtrlPgUp},
		"\x1b[3;2~": {Kind: KeyDelete}, // no distinct shift variant
	}
	for seq, want := range cases {
		msgs := feedAll([]byte(seq))
		require.Equal(t, []Msg{KeyMsg(want)}, msgs, "sequence %q", seq)
	}
}

// Every table entry must decode identically no matter where the chunk
// boundary falls inside it.
func TestDecodeSequenceChunkSafety(t *testing.T) {
	for seq, want := range sequences {
		for i := 1; i < len(seq); i++ {
			msgs := feedAll([]byte(seq[:i]), []byte(seq[i:]))
			require.Equal(t, []Msg{KeyMsg(want)}, msgs,
				"sequence %q split at %d", seq, i)
		}
	}
}

// A whole multi-event stream must decode to the same messages regardless
// of where it is split into chunks.
func TestDecodeStreamSplitInvariance(t *testing.T) {
	stream := []byte("\x1bOP" + "\x1b[I" + "ab" + " " +
		"\x1b[<0;3;4M" + "\x1b[200~hi\x1b[201~" + "é" + "\x1b[1;5A")
	want := feedAll(stream)
	require.Len(t, want, 9)

	for i := 1; i < len(stream); i++ {
		msgs := feedAll(stream[:i], stream[i:])
		require.Equal(t, want, msgs, "stream split at %d", i)
	}
}

func TestDecodeAltRune(t *testing.T) {
	msgs := feedAll([]byte("\x1bq"))
	require.Equal(t, []Msg{KeyMsg{Kind: KeyRunes, Text: "q", Alt: true}}, msgs)

	msgs = feedAll([]byte("\x1b "))
	require.Equal(t, []Msg{KeyMsg{Kind: KeySpace, Alt: true}}, msgs)

	// Alt plus a recognized control byte keeps the symbolic kind.
	msgs = feedAll([]byte("\x1b\r"))
	require.Equal(t, []Msg{KeyMsg{Kind: KeyEnter, Alt: true}}, msgs)
}

// Two sequences arriving as separate writes decode independently; the
// second must not be misread as a continuation of the first.
func TestDecodeBackToBackWrites(t *testing.T) {
	d := &decoder{}
	var msgs []Msg
	deliver := func(m Msg) { msgs = append(msgs, m) }

	d.feed([]byte("\x1bOP"), deliver)
	d.feed([]byte("\x1b[I"), deliver)

	require.Equal(t, []Msg{KeyMsg{Kind: KeyF1}, FocusMsg{}}, msgs)
}

func TestDecodeFocusReports(t *testing.T) {
	msgs := feedAll([]byte("\x1b[I\x1b[O"))
	require.Equal(t, []Msg{FocusMsg{}, BlurMsg{}}, msgs)
}

func TestDecodePasteIsAtomic(t *testing.T) {
	// The payload arrives split across chunks; exactly one message comes
	// out, and only once the end marker is complete.
	d := &decoder{}
	var msgs []Msg
	deliver := func(m Msg) { msgs = append(msgs, m) }

	d.feed([]byte("\x1b[200~he"), deliver)
	require.Empty(t, msgs)
	d.feed([]byte("llo wor"), deliver)
	require.Empty(t, msgs)
	d.feed([]byte("ld\x1b[201"), deliver)
	require.Empty(t, msgs)
	d.feed([]byte("~"), deliver)
	require.Equal(t, []Msg{
		KeyMsg{Kind: KeyRunes, Text: "hello world", Paste: true},
	}, msgs)
}

func TestDecodePastePayloadKeepsEscapes(t *testing.T) {
	// Sequences inside a paste are payload, not keys.
	msgs := feedAll([]byte("\x1b[200~a\x1b[Ab\x1b[201~"))
	require.Equal(t, []Msg{
		KeyMsg{Kind: KeyRunes, Text: "a\x1b[Ab", Paste: true},
	}, msgs)
}

func TestDecodeLegacyMouse(t *testing.T) {
	// Button byte 32 is a left press; x/y are offset by 33 on the wire.
	msgs := feedAll([]byte{0x1b, '[', 'M', 32, 33 + 2, 33 + 4})
	require.Equal(t, []Msg{MouseMsg{
		X: 2, Y: 4, Action: MouseActionPress, Button: MouseButtonLeft,
	}}, msgs)

	// 32+3 is the legacy release marker.
	msgs = feedAll([]byte{0x1b, '[', 'M', 32 + 3, 33, 33})
	require.Equal(t, []Msg{MouseMsg{
		Action: MouseActionRelease, Button: MouseButtonNone,
	}}, msgs)

	// 32+64 selects the wheel pair.
	msgs = feedAll([]byte{0x1b, '[', 'M', 32 + 64, 33, 33})
	require.Equal(t, []Msg{MouseMsg{
		Action: MouseActionPress, Button: MouseButtonWheelUp,
	}}, msgs)

	// 32+128 alone selects the extra buttons.
	msgs = feedAll([]byte{0x1b, '[', 'M', 32 + 128 + 1, 33, 33})
	require.Equal(t, []Msg{MouseMsg{
		Action: MouseActionPress, Button: MouseButtonForward,
	}}, msgs)
}

func TestDecodeMouseExtraButtons(t *testing.T) {
	// Buttons 8-11 are encoded by adding 128 alone; the wheel bit stays
	// clear.
	cases := map[string]MouseButton{
		"\x1b[<128;1;1M": MouseButtonBackward,
		"\x1b[<129;1;1M": MouseButtonForward,
		"\x1b[<130;1;1M": MouseButton10,
		"\x1b[<131;1;1M": MouseButton11,
	}
	for seq, want := range cases {
		msgs := feedAll([]byte(seq))
		require.Equal(t, []Msg{MouseMsg{
			Action: MouseActionPress, Button: want,
		}}, msgs, "sequence %q", seq)
	}
}

func TestDecodeSGRMouse(t *testing.T) {
	msgs := feedAll([]byte("\x1b[<0;5;9M"))
	require.Equal(t, []Msg{MouseMsg{
		X: 4, Y: 8, Action: MouseActionPress, Button: MouseButtonLeft,
	}}, msgs)

	// 'm' terminator means release.
	msgs = feedAll([]byte("\x1b[<0;5;9m"))
	require.Equal(t, []Msg{MouseMsg{
		X: 4, Y: 8, Action: MouseActionRelease, Button: MouseButtonLeft,
	}}, msgs)

	// 35 is buttonless motion (all-motion mode).
	msgs = feedAll([]byte("\x1b[<35;1;1M"))
	require.Equal(t, []Msg{MouseMsg{
		Action: MouseActionMotion, Button: MouseButtonNone,
	}}, msgs)

	// Modifier bits.
	msgs = feedAll([]byte("\x1b[<20;2;3M"))
	require.Equal(t, []Msg{MouseMsg{
		X: 1, Y: 2, Action: MouseActionPress, Button: MouseButtonLeft, Ctrl: true,
	}}, msgs)
}

func TestDecodeSGRMouseRejectsOversizedButton(t *testing.T) {
	// A button parameter beyond a byte must not wrap into a bogus button.
	msgs := feedAll([]byte("\x1b[<1000;1;1M"))
	for _, m := range msgs {
		_, ok := m.(MouseMsg)
		assert.False(t, ok, "got mouse event %v from an invalid report", m)
	}
}

func TestDecodeEmptyPasteEmitsNothing(t *testing.T) {
	// Pasting nothing produces no message; the stream continues cleanly.
	msgs := feedAll([]byte("\x1b[200~\x1b[201~a"))
	require.Equal(t, []Msg{KeyMsg{Kind: KeyRunes, Text: "a"}}, msgs)
}

func TestDecodeDropsUndecodableByte(t *testing.T) {
	// A stray invalid byte is dropped and the stream resumes.
	msgs := feedAll([]byte{0xff, 'a'})
	require.Equal(t, []Msg{KeyMsg{Kind: KeyRunes, Text: "a"}}, msgs)
}

func TestDecodeLoneEscapeOnClose(t *testing.T) {
	d := &decoder{}
	var msgs []Msg
	deliver := func(m Msg) { msgs = append(msgs, m) }

	// A lone ESC could still be the start of a sequence, so nothing is
	// delivered until close declares the stream final.
	d.feed([]byte{0x1b}, deliver)
	require.Empty(t, msgs)
	d.close(deliver)
	require.Equal(t, []Msg{KeyMsg{Kind: KeyEscape}}, msgs)
}

func TestKeyMsgString(t *testing.T) {
	assert.Equal(t, "q", KeyMsg{Kind: KeyRunes, Text: "q"}.String())
	assert.Equal(t, "alt+left", KeyMsg{Kind: KeyLeft, Alt: true}.String())
	assert.Equal(t, "ctrl+shift+home", KeyMsg{Kind: KeyCtrlShiftHome}.String())
	assert.Equal(t, "[hi]", KeyMsg{Kind: KeyRunes, Text: "hi", Paste: true}.String())
}

func TestMouseMsgString(t *testing.T) {
	assert.Equal(t, "left press (3,7)", MouseMsg{
		X: 3, Y: 7, Action: MouseActionPress, Button: MouseButtonLeft,
	}.String())
	assert.Equal(t, "ctrl+wheel up press (0,0)", MouseMsg{
		Action: MouseActionPress, Button: MouseButtonWheelUp, Ctrl: true,
	}.String())
	assert.Equal(t, "motion (1,1)", MouseMsg{
		X: 1, Y: 1, Action: MouseActionMotion,
	}.String())
}
