package steep

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gotest.tools/v3/golden"
)

func TestRendererClampsFPS(t *testing.T) {
	term := newMockTerminal(80, 24)
	assert.Equal(t, defaultFPS, newRenderer(term, 0).fps)
	assert.Equal(t, 1, newRenderer(term, -5).fps)
	assert.Equal(t, 1, newRenderer(term, 1).fps)
	assert.Equal(t, 30, newRenderer(term, 30).fps)
	assert.Equal(t, maxFPS, newRenderer(term, 500).fps)
}

func TestRendererPaintsWholeFrame(t *testing.T) {
	term := newMockTerminal(80, 24)
	r := newRenderer(term, 60)

	r.write("hello")
	r.flush()

	assert.Equal(t, seqClearScreen+"hello", term.output())
}

func TestRendererSkipsUnchangedFrame(t *testing.T) {
	term := newMockTerminal(80, 24)
	r := newRenderer(term, 60)

	r.write("same")
	r.flush()
	before := term.output()

	// Same content again: nothing new is written.
	r.write("same")
	r.flush()
	assert.Equal(t, before, term.output())

	// Different content repaints in full.
	r.write("changed")
	r.flush()
	assert.Equal(t, before+seqClearScreen+"changed", term.output())
}

func TestRendererRepaintForcesRedraw(t *testing.T) {
	term := newMockTerminal(80, 24)
	r := newRenderer(term, 60)

	r.write("frame")
	r.flush()
	r.repaint()
	r.flush()

	assert.Equal(t, 2, strings.Count(term.output(), "frame"))
}

func TestRendererExpandsNewlines(t *testing.T) {
	// Raw mode disables output postprocessing, so LF alone would not
	// return the carriage.
	term := newMockTerminal(80, 24)
	r := newRenderer(term, 60)

	r.write("one\ntwo\nthree")
	r.flush()

	assert.Contains(t, term.output(), "one\r\ntwo\r\nthree")
	assert.NotContains(t, strings.ReplaceAll(term.output(), "\r\n", ""), "\n")
}

func TestRendererStopFlushesFinalFrame(t *testing.T) {
	term := newMockTerminal(80, 24)
	r := newRenderer(term, 60)
	r.start()

	r.write("goodbye")
	r.stop()

	assert.Contains(t, term.output(), "goodbye")

	// stop is idempotent.
	r.stop()
	assert.Equal(t, 1, strings.Count(term.output(), "goodbye"))
}

func TestRendererFrameBytes(t *testing.T) {
	term := newMockTerminal(80, 24)
	r := newRenderer(term, 60)

	r.write("alpha\nbeta")
	r.flush()

	golden.Assert(t, term.output(), "frame.golden")
}
