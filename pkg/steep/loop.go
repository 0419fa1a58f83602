package steep

import (
	"sync"

	"github.com/pkg/errors"
)

// initMsg is the dispatcher's startup step. Run seeds it as the first
// queue entry, so the model's init command and the first paint happen
// before any input or resize message can reach Update.
type initMsg struct{}

// eventLoop serializes all model mutation. It is a two-state machine (idle
// and draining) over a FIFO queue: send appends, and whichever goroutine
// tips the loop from idle into draining processes messages until the queue
// empties. Update is therefore never re-entered, no matter how many
// command goroutines are in flight.
type eventLoop struct {
	prog *Program

	mu       sync.Mutex
	queue    []Msg
	draining bool
}

// seed enqueues a message before any producer goroutine exists, so it is
// guaranteed to be processed ahead of everything else. Must not be called
// once producers are running.
func (l *eventLoop) seed(msg Msg) {
	l.queue = append(l.queue, msg)
}

// send appends a message and drains the queue if no other goroutine is
// already doing so. Messages sent after the program stopped running are
// dropped; late results from in-flight commands land here.
func (l *eventLoop) send(msg Msg) {
	l.mu.Lock()
	if !l.prog.running.Load() {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, msg)
	if l.draining {
		l.mu.Unlock()
		return
	}
	l.draining = true
	l.mu.Unlock()
	l.drain()
}

// drain processes messages in FIFO order until the queue is empty or the
// program stops. A panic out of the user's Update or View is not an effect
// error: it is recorded as the program's outcome and shuts it down, with
// terminal teardown left to Run.
func (l *eventLoop) drain() {
	defer func() {
		if r := recover(); r != nil {
			l.mu.Lock()
			l.draining = false
			l.mu.Unlock()
			l.prog.finish(errors.Errorf("panic in update: %v", r))
		}
	}()
	for {
		l.mu.Lock()
		if !l.prog.running.Load() || len(l.queue) == 0 {
			l.draining = false
			l.mu.Unlock()
			return
		}
		msg := l.queue[0]
		l.queue = l.queue[1:]
		l.mu.Unlock()

		l.process(msg)
	}
}

// process intercepts the runtime-reserved messages and forwards the rest
// to the user model. WindowSizeMsg is both handled internally and
// forwarded, since applications need it for layout.
func (l *eventLoop) process(msg Msg) {
	p := l.prog
	switch msg := msg.(type) {
	case initMsg:
		p.exec.run(p.model.Init())
		p.renderer.write(p.model.View())
		p.renderer.flush()
	case QuitMsg:
		p.finish(nil)
	case InterruptMsg:
		p.finish(ErrInterrupted)
	case SuspendMsg, ResumeMsg:
		// Reserved extension points; no-ops at this layer.
	case WindowSizeMsg:
		p.renderer.repaint()
		l.update(msg)
	case enterAltScreenMsg, exitAltScreenMsg,
		enableMouseCellMotionMsg, enableMouseAllMotionMsg, disableMouseMsg,
		showCursorMsg, hideCursorMsg, clearScreenMsg, setWindowTitleMsg,
		enableBracketedPasteMsg, disableBracketedPasteMsg,
		enableReportFocusMsg, disableReportFocusMsg:
		p.handleScreenMsg(msg)
	default:
		l.update(msg)
	}
}

// update runs one step of the Elm loop: the returned model replaces the
// stored one wholesale, its command goes to the executor, and the new view
// becomes the renderer's pending frame. The replacement takes the program
// mutex so Run can read the final model while a drain is still in flight.
func (l *eventLoop) update(msg Msg) {
	p := l.prog
	model, cmd := p.model.Update(msg)
	p.mu.Lock()
	p.model = model
	p.mu.Unlock()
	p.exec.run(cmd)
	p.renderer.write(model.View())
}
