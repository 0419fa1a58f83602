package steep

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordModel appends every message it sees to a shared slice. onMsg, when
// set, produces the command to return for a message.
type recordModel struct {
	msgs  *[]Msg
	init  Cmd
	onMsg func(Msg) Cmd
	view  string
}

func (m recordModel) Init() Cmd { return m.init }

func (m recordModel) Update(msg Msg) (Model, Cmd) {
	*m.msgs = append(*m.msgs, msg)
	var cmd Cmd
	if m.onMsg != nil {
		cmd = m.onMsg(msg)
	}
	return m, cmd
}

func (m recordModel) View() string { return m.view }

// panicModel panics on the first message it receives.
type panicModel struct{}

func (m panicModel) Init() Cmd               { return nil }
func (m panicModel) Update(Msg) (Model, Cmd) { panic("model exploded") }
func (m panicModel) View() string            { return "" }

// newLoopProgram builds a Program around a mock terminal, flipped into the
// running state without going through Run. Sends then drain synchronously
// on the caller, which is what makes these tests deterministic.
func newLoopProgram(model Model) (*Program, *mockTerminal) {
	term := newMockTerminal(80, 24)
	p := New(model, WithTerminal(term), WithSignalSource(newMockSignals()))
	p.running.Store(true)
	return p, term
}

func TestLoopDeliversFIFO(t *testing.T) {
	// Sends issued from inside Update are queued behind the message being
	// processed, not handled recursively.
	var msgs []Msg
	var p *Program
	model := recordModel{
		msgs: &msgs,
		onMsg: func(m Msg) Cmd {
			if m == "A" {
				p.Send("B")
				p.Send("C")
			}
			return nil
		},
	}
	p, _ = newLoopProgram(model)

	p.Send("A")
	assert.Equal(t, []Msg{"A", "B", "C"}, msgs)
}

func TestLoopInterceptsQuit(t *testing.T) {
	var msgs []Msg
	p, _ := newLoopProgram(recordModel{msgs: &msgs})

	p.Send(QuitMsg{})

	assert.Empty(t, msgs, "QuitMsg must not reach the model")
	select {
	case <-p.done:
	default:
		t.Fatal("program did not finish")
	}
	assert.NoError(t, p.err)
}

func TestLoopInterceptsInterrupt(t *testing.T) {
	var msgs []Msg
	p, _ := newLoopProgram(recordModel{msgs: &msgs})

	p.Send(InterruptMsg{})

	assert.Empty(t, msgs)
	assert.ErrorIs(t, p.err, ErrInterrupted)
}

func TestLoopForwardsWindowSize(t *testing.T) {
	var msgs []Msg
	p, _ := newLoopProgram(recordModel{msgs: &msgs})

	p.Send(WindowSizeMsg{Width: 100, Height: 40})

	assert.Equal(t, []Msg{WindowSizeMsg{Width: 100, Height: 40}}, msgs)
}

func TestLoopDropsMessagesAfterQuit(t *testing.T) {
	// A quit in the middle of the queue stops processing; later messages
	// are dropped, not delivered.
	var msgs []Msg
	var p *Program
	model := recordModel{
		msgs: &msgs,
		onMsg: func(m Msg) Cmd {
			if m == "A" {
				p.Send(QuitMsg{})
				p.Send("X")
			}
			return nil
		},
	}
	p, _ = newLoopProgram(model)

	p.Send("A")
	assert.Equal(t, []Msg{"A"}, msgs)
}

func TestLoopQuitIsIdempotent(t *testing.T) {
	p, _ := newLoopProgram(recordModel{msgs: &[]Msg{}})

	p.Send(QuitMsg{})
	p.Send(QuitMsg{})
	p.Kill() // too late to change the outcome

	assert.NoError(t, p.err)
}

func TestLoopSuspendResumeAreNoops(t *testing.T) {
	var msgs []Msg
	p, _ := newLoopProgram(recordModel{msgs: &msgs})

	p.Send(SuspendMsg{})
	p.Send(ResumeMsg{})

	assert.Empty(t, msgs)
	select {
	case <-p.done:
		t.Fatal("suspend must not finish the program")
	default:
	}
}

func TestLoopRunsReturnedCommand(t *testing.T) {
	var msgs []Msg
	model := recordModel{
		msgs: &msgs,
		onMsg: func(m Msg) Cmd {
			if m == "go" {
				return func() Msg { return "done" }
			}
			return nil
		},
	}
	p, _ := newLoopProgram(model)

	p.Send("go")
	p.exec.wait()

	assert.Equal(t, []Msg{"go", "done"}, msgs)
}

func TestLoopUpdatePanicFinishesProgram(t *testing.T) {
	p, _ := newLoopProgram(panicModel{})

	p.Send("anything")

	require.Error(t, p.err)
	assert.Contains(t, p.err.Error(), "panic in update")

	// The loop must still be usable as a terminal state: later sends are
	// dropped rather than deadlocking or re-panicking.
	p.Send("more")
}

func TestLoopScreenMessages(t *testing.T) {
	var msgs []Msg
	p, term := newLoopProgram(recordModel{msgs: &msgs})

	p.Send(enterAltScreenMsg{})
	assert.Contains(t, term.output(), "\x1b[?1049h")
	assert.Empty(t, msgs, "screen messages must not reach the model")

	// Entering twice writes the sequence once.
	p.Send(enterAltScreenMsg{})
	assert.Equal(t, 1, strings.Count(term.output(), "\x1b[?1049h"))

	p.Send(exitAltScreenMsg{})
	assert.Contains(t, term.output(), "\x1b[?1049l")

	p.Send(SetWindowTitle("hello")())
	assert.Contains(t, term.output(), "\x1b]0;hello\a")

	p.Send(disableMouseMsg{})
	assert.Contains(t, term.output(), "\x1b[?1002l\x1b[?1003l\x1b[?1006l")
}
