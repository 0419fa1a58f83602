package steep

import (
	"strings"
	"sync"
	"time"
)

const (
	defaultFPS = 60
	maxFPS     = 120
)

// renderer decouples update frequency from paint frequency. The dispatcher
// hands it a pending frame after every update (cheap); a ticker at the
// configured rate decides whether anything actually gets written. Frames
// are compared as whole strings: an unchanged frame costs nothing, a
// changed one is repainted in full (clear, home, write) — no cell-level
// diffing.
type renderer struct {
	term Terminal
	fps  int

	mu       sync.Mutex
	pending  string
	last     string
	painted  bool // false forces the next flush to repaint
	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
}

func newRenderer(term Terminal, fps int) *renderer {
	if fps == 0 {
		fps = defaultFPS
	}
	if fps < 1 {
		fps = 1
	}
	if fps > maxFPS {
		fps = maxFPS
	}
	return &renderer{term: term, fps: fps}
}

// start begins the paint ticker.
func (r *renderer) start() {
	r.mu.Lock()
	r.ticker = time.NewTicker(time.Second / time.Duration(r.fps))
	r.done = make(chan struct{})
	r.mu.Unlock()
	go func() {
		for {
			select {
			case <-r.ticker.C:
				r.flush()
			case <-r.done:
				return
			}
		}
	}()
}

// stop halts the ticker after one final flush, so the last frame written
// before shutdown is not lost. Safe to call more than once.
func (r *renderer) stop() {
	r.stopOnce.Do(func() {
		r.mu.Lock()
		ticker, done := r.ticker, r.done
		r.mu.Unlock()
		if ticker != nil {
			ticker.Stop()
		}
		if done != nil {
			close(done)
		}
		r.flush()
	})
}

// write records the frame to paint on the next tick. Called synchronously
// from the dispatcher after every update.
func (r *renderer) write(frame string) {
	r.mu.Lock()
	r.pending = frame
	r.mu.Unlock()
}

// repaint forgets the last painted frame so the next flush redraws even if
// the content is textually unchanged. Used after alt-screen transitions.
func (r *renderer) repaint() {
	r.mu.Lock()
	r.painted = false
	r.mu.Unlock()
}

// flush writes the pending frame if it differs from the last painted one.
// The terminal is in raw mode, so newlines are expanded to CRLF.
func (r *renderer) flush() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.painted && r.pending == r.last {
		return
	}
	r.term.WriteString(seqClearScreen + strings.ReplaceAll(r.pending, "\n", "\r\n"))
	r.last = r.pending
	r.painted = true
}
