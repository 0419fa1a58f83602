package steep

import "time"

// Cmd is a deferred side effect. It is a description, not a running task:
// nothing happens until the runtime invokes it, and invoking it twice runs
// the effect twice. A Cmd returns the message to deliver, or nil for none.
//
// Commands still in flight when the program quits are not cancelled; their
// eventual results are silently dropped.
type Cmd func() Msg

// batchMsg and sequenceMsg are the internal carriers produced by Batch and
// Sequence. The executor expands them; they never reach the dispatcher.
type batchMsg []Cmd

type sequenceMsg []Cmd

// Batch runs the given commands concurrently. The aggregate result is the
// concatenation of each command's messages in argument order, delivered
// only after every sub-command has settled — position order, not
// completion order. Nil commands contribute nothing.
func Batch(cmds ...Cmd) Cmd {
	cmds = compact(cmds)
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	}
	return func() Msg { return batchMsg(cmds) }
}

// Sequence runs the given commands one at a time, waiting for each effect
// to resolve before starting the next. Each step's messages are delivered
// as the step completes, so the overall result is the ordered
// concatenation of the steps' output.
func Sequence(cmds ...Cmd) Cmd {
	cmds = compact(cmds)
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	}
	return func() Msg { return sequenceMsg(cmds) }
}

// Tick waits for the given duration and then resolves with fn applied to
// the current time.
func Tick(d time.Duration, fn func(time.Time) Msg) Cmd {
	return func() Msg {
		time.Sleep(d)
		return fn(time.Now())
	}
}

// Every waits until the next wall-clock instant aligned to the given
// interval (the next whole second for time.Second) and resolves with fn
// applied to that instant. Reissue it from Update to get a repeating,
// drift-free cadence.
func Every(interval time.Duration, fn func(time.Time) Msg) Cmd {
	return func() Msg {
		time.Sleep(time.Until(nextAligned(time.Now(), interval)))
		return fn(time.Now())
	}
}

// nextAligned returns the first instant after now that falls on a multiple
// of interval.
func nextAligned(now time.Time, interval time.Duration) time.Time {
	return now.Truncate(interval).Add(interval)
}

func compact(cmds []Cmd) []Cmd {
	out := cmds[:0]
	for _, c := range cmds {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}
