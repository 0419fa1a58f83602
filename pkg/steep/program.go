// Package steep is an Elm-architecture runtime for full-screen terminal
// applications. Applications supply a Model with Init, Update and View;
// the runtime owns the terminal, decodes raw input bytes into typed
// key/mouse/focus/paste messages, executes commands concurrently while
// guaranteeing Update is never re-entered, repaints frames at a fixed
// cadence, and restores the terminal on every exit path.
package steep

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/steeptui/steep/pkg/ioctx"
)

// Model is the application's state plus its Elm contract. The dispatcher
// exclusively owns the current Model; Update is called with one message at
// a time and its returned Model replaces the stored one wholesale.
type Model interface {
	// Init returns the command to run when the program starts, or nil.
	Init() Cmd

	// Update reacts to a message and returns the next model and a command
	// to run, which may be nil.
	Update(Msg) (Model, Cmd)

	// View renders the model as the full frame to display.
	View() string
}

var (
	// ErrKilled is returned by Run after Kill, or when the program's
	// context was cancelled.
	ErrKilled = errors.New("program was killed")

	// ErrInterrupted is returned by Run when the program was shut down by
	// an interrupt (SIGINT or the Interrupt command).
	ErrInterrupted = errors.New("program was interrupted")
)

// MouseMode selects the terminal's mouse reporting mode at startup.
type MouseMode int

const (
	MouseDisabled MouseMode = iota
	MouseCellMotion
	MouseAllMotion
)

// Program wires a terminal to the decoder, executor, dispatcher and
// renderer, and manages startup and shutdown.
type Program struct {
	id    uuid.UUID
	ctx   context.Context
	model Model

	terminal Terminal
	signals  SignalSource
	logger   *slog.Logger

	renderer *renderer
	exec     *executor
	loop     *eventLoop
	dec      decoder

	// startup configuration
	fps            int
	altScreen      bool
	mouseMode      MouseMode
	reportFocus    bool
	bracketedPaste bool

	// mu guards altScreenActive and the model reference, which Run reads
	// while the dispatcher may still be replacing it.
	mu              sync.Mutex
	altScreenActive bool

	running    atomic.Bool
	finishOnce sync.Once
	done       chan struct{}
	err        error
}

// New creates a Program for the given model. Options configure the
// terminal modes, frame rate and collaborators; the defaults are the
// process terminal, 60 frames per second, bracketed paste on, and
// everything else off.
func New(model Model, opts ...Option) *Program {
	p := &Program{
		id:             uuid.New(),
		ctx:            context.Background(),
		model:          model,
		fps:            defaultFPS,
		bracketedPaste: true,
		done:           make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.terminal == nil {
		p.terminal = NewProcessTerminal()
	}
	if p.signals == nil {
		p.signals = newProcessSignals()
	}
	if p.logger == nil {
		// ioctx carries io.Discard unless the caller put a writer in the
		// context, so a TUI never logs over its own screen by accident.
		p.logger = slog.New(slog.NewTextHandler(ioctx.StderrFromContext(p.ctx), nil))
	}
	p.exec = &executor{send: p.Send, logger: p.logger}
	p.loop = &eventLoop{prog: p}
	p.renderer = newRenderer(p.terminal, p.fps)
	p.dec.logger = p.logger
	return p
}

// Run starts the program and blocks until it finishes. It returns the
// final model and a nil error on graceful quit, ErrInterrupted on
// interrupt, ErrKilled after Kill or context cancellation, or the error
// recovered from a panicking Update/View. Whatever the exit path, the
// terminal is restored: mouse reporting, focus reporting and bracketed
// paste off, cursor shown, alternate screen exited, raw mode disabled.
func (p *Program) Run() (Model, error) {
	p.running.Store(true)
	// Init and the first paint go through the dispatcher, which owns the
	// model. Seeding the queue before the terminal starts guarantees no
	// decoded input is updated ahead of them.
	p.loop.seed(initMsg{})
	if err := p.terminal.Start(p.handleInput, p.handleResize); err != nil {
		p.running.Store(false)
		return p.model, errors.Wrap(err, "start terminal")
	}
	defer p.teardown()
	p.logger.Debug("program starting", "id", p.id, "fps", p.fps)

	p.terminal.WriteString(seqHideCursor)
	if p.altScreen {
		p.enterAltScreen()
	}
	switch p.mouseMode {
	case MouseCellMotion:
		p.terminal.WriteString(seqEnableMouseCellMotion + seqEnableMouseSGR)
	case MouseAllMotion:
		p.terminal.WriteString(seqEnableMouseAllMotion + seqEnableMouseSGR)
	}
	if p.bracketedPaste {
		p.terminal.WriteString(seqEnableBracketedPaste)
	}
	if p.reportFocus {
		p.terminal.WriteString(seqEnableFocusReports)
	}

	p.renderer.start()

	p.signals.Start(
		func() { p.Send(InterruptMsg{}) },
		func() { p.Send(QuitMsg{}) },
	)

	p.Send(WindowSizeMsg{Width: p.terminal.Columns(), Height: p.terminal.Rows()})

	select {
	case <-p.done:
	case <-p.ctx.Done():
		p.finish(ErrKilled)
	}
	p.mu.Lock()
	model := p.model
	p.mu.Unlock()
	return model, p.err
}

// Send delivers a message to the program from any goroutine. Messages
// sent after the program has finished are dropped.
func (p *Program) Send(msg Msg) {
	p.loop.send(msg)
}

// Quit requests a graceful shutdown, equivalent to the Quit command.
func (p *Program) Quit() {
	p.Send(QuitMsg{})
}

// Kill stops the program immediately; Run returns ErrKilled. In-flight
// commands are not cancelled, but their results are dropped.
func (p *Program) Kill() {
	p.finish(ErrKilled)
}

// finish flips the program out of its running state exactly once and
// releases Run. Later calls, including further quit messages, are no-ops.
func (p *Program) finish(err error) {
	p.finishOnce.Do(func() {
		p.err = err
		p.running.Store(false)
		close(p.done)
	})
}

// teardown restores the terminal. It runs on every exit path, in a fixed
// order: final frame flush, mouse off, focus and paste reporting off,
// cursor shown, alternate screen exited if entered, raw mode restored,
// signal listeners stopped.
func (p *Program) teardown() {
	p.renderer.stop()
	p.terminal.WriteString(seqDisableMouseCellMotion + seqDisableMouseAllMotion + seqDisableMouseSGR)
	p.terminal.WriteString(seqDisableFocusReports)
	p.terminal.WriteString(seqDisableBracketedPaste)
	p.terminal.WriteString(seqShowCursor)
	p.mu.Lock()
	wasAlt := p.altScreenActive
	p.altScreenActive = false
	p.mu.Unlock()
	if wasAlt {
		p.terminal.WriteString(seqExitAltScreen)
	}
	p.terminal.Stop()
	p.signals.Stop()
	p.logger.Debug("program stopped", "id", p.id, "err", p.err)
}

// handleInput receives raw byte chunks from the terminal. The decoder
// keeps any incomplete trailing sequence buffered for the next chunk. A
// nil chunk means the input stream ended: the buffered tail is decoded
// as final, so a lone trailing ESC becomes the escape key.
func (p *Program) handleInput(data []byte) {
	if data == nil {
		p.dec.close(p.Send)
		return
	}
	p.dec.feed(data, p.Send)
}

func (p *Program) handleResize() {
	p.Send(WindowSizeMsg{Width: p.terminal.Columns(), Height: p.terminal.Rows()})
}
