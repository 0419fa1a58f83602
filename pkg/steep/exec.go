package steep

import (
	"log/slog"
	"sync"
)

// executor invokes commands and funnels their results into the dispatcher.
// Every top-level command runs on its own goroutine, so effects never block
// the update loop; their messages re-enter through the single send funnel.
//
// A panic inside a command is an effect error: it is logged and swallowed
// so one failing command cannot corrupt the loop.
type executor struct {
	send   func(Msg)
	logger *slog.Logger
	wg     sync.WaitGroup
}

// run invokes cmd's effect exactly once, asynchronously. Nil commands are
// ignored.
func (e *executor) run(cmd Cmd) {
	if cmd == nil {
		return
	}
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		defer e.recoverPanic()
		e.exec(cmd)
	}()
}

// exec evaluates one command and delivers its messages. Batch and Sequence
// carriers are expanded here rather than entering the queue.
func (e *executor) exec(cmd Cmd) {
	switch msg := cmd().(type) {
	case nil:
		// No result.
	case batchMsg:
		// Run all branches concurrently but hold delivery until every
		// branch settles, so the aggregate keeps argument order.
		results := make([][]Msg, len(msg))
		var wg sync.WaitGroup
		for i, sub := range msg {
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer e.recoverPanic()
				results[i] = e.collect(sub)
			}()
		}
		wg.Wait()
		for _, msgs := range results {
			for _, m := range msgs {
				e.send(m)
			}
		}
	case sequenceMsg:
		// Steps run strictly one after another; each step's output is
		// delivered as soon as that step resolves.
		for _, sub := range msg {
			for _, m := range e.collect(sub) {
				e.send(m)
			}
		}
	default:
		e.send(msg)
	}
}

// collect evaluates cmd synchronously and returns every message it
// produces, flattening nested Batch/Sequence carriers.
func (e *executor) collect(cmd Cmd) []Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case nil:
		return nil
	case batchMsg:
		results := make([][]Msg, len(msg))
		var wg sync.WaitGroup
		for i, sub := range msg {
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer e.recoverPanic()
				results[i] = e.collect(sub)
			}()
		}
		wg.Wait()
		var out []Msg
		for _, msgs := range results {
			out = append(out, msgs...)
		}
		return out
	case sequenceMsg:
		var out []Msg
		for _, sub := range msg {
			out = append(out, e.collect(sub)...)
		}
		return out
	default:
		return []Msg{msg}
	}
}

// wait blocks until every in-flight command goroutine has finished.
// Used by tests; shutdown does not wait, it drops late results instead.
func (e *executor) wait() {
	e.wg.Wait()
}

func (e *executor) recoverPanic() {
	if r := recover(); r != nil {
		if e.logger != nil {
			e.logger.Error("command panicked", "panic", r)
		}
	}
}
