package steep

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/muesli/cancelreader"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
)

// Terminal abstracts terminal I/O so the runtime can be tested with a fake
// terminal.
type Terminal interface {
	// Start puts the terminal into raw mode and begins listening for input
	// and resize events. onInput receives raw bytes from stdin; a nil
	// slice signals that the input stream ended. onResize is called when
	// the terminal dimensions change.
	Start(onInput func([]byte), onResize func()) error

	// Stop restores the terminal to its original state and stops the
	// listeners. Safe to call after a failed Start.
	Stop()

	// Write sends raw bytes to the terminal.
	Write(p []byte)

	// WriteString sends a string to the terminal.
	WriteString(s string)

	// Columns returns the current terminal width.
	Columns() int

	// Rows returns the current terminal height.
	Rows() int

	// IsTTY reports whether this terminal is backed by a real tty.
	IsTTY() bool
}

// SignalSource abstracts process signal delivery so interrupt handling can
// be tested without raising real signals.
type SignalSource interface {
	// Start begins listening; onInterrupt corresponds to SIGINT and
	// onTerminate to SIGTERM.
	Start(onInterrupt, onTerminate func())

	// Stop stops listening.
	Stop()
}

// ProcessTerminal is a Terminal backed by os.Stdin / os.Stdout. Terminal
// dimensions are cached and refreshed on SIGWINCH to avoid repeated ioctl
// syscalls during rendering. Stdin is read through a cancelable reader so
// Stop can interrupt a blocked read.
type ProcessTerminal struct {
	origTermios *unix.Termios
	reader      cancelreader.CancelReader
	sigCh       chan os.Signal
	sigDone     chan struct{}
	group       *errgroup.Group

	sizeMu sync.RWMutex
	cols   int
	rows   int
}

func NewProcessTerminal() *ProcessTerminal {
	return &ProcessTerminal{}
}

func (t *ProcessTerminal) Start(onInput func([]byte), onResize func()) error {
	// Save and set raw mode.
	fd := int(os.Stdin.Fd())
	orig, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return fmt.Errorf("get termios: %w", err)
	}
	t.origTermios = orig

	raw := *orig
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, ioctlWriteTermios, &raw); err != nil {
		return fmt.Errorf("set raw: %w", err)
	}

	t.refreshSize()

	reader, err := cancelreader.NewReader(os.Stdin)
	if err != nil {
		_ = unix.IoctlSetTermios(fd, ioctlWriteTermios, orig)
		return fmt.Errorf("stdin reader: %w", err)
	}
	t.reader = reader

	t.sigCh = make(chan os.Signal, 1)
	t.sigDone = make(chan struct{})
	signal.Notify(t.sigCh, syscall.SIGWINCH)

	g := new(errgroup.Group)
	g.Go(func() error {
		buf := make([]byte, 4096)
		for {
			n, err := t.reader.Read(buf)
			if n > 0 {
				// Copy so the callback can keep the slice.
				data := make([]byte, n)
				copy(data, buf[:n])
				onInput(data)
			}
			if err != nil {
				if err == cancelreader.ErrCanceled {
					return nil
				}
				// The stream ended on its own (EOF, closed pty). Let the
				// program flush whatever prefix the decoder still holds.
				onInput(nil)
				if err == io.EOF {
					return nil
				}
				return err
			}
		}
	})
	g.Go(func() error {
		for {
			select {
			case <-t.sigCh:
				t.refreshSize()
				if onResize != nil {
					onResize()
				}
			case <-t.sigDone:
				return nil
			}
		}
	})
	t.group = g

	return nil
}

func (t *ProcessTerminal) Stop() {
	if t.reader != nil {
		t.reader.Cancel()
	}
	if t.sigCh != nil {
		signal.Stop(t.sigCh)
	}
	if t.sigDone != nil {
		close(t.sigDone)
		t.sigDone = nil
	}
	if t.group != nil {
		_ = t.group.Wait()
		t.group = nil
	}
	if t.reader != nil {
		_ = t.reader.Close()
		t.reader = nil
	}
	if t.origTermios != nil {
		fd := int(os.Stdin.Fd())
		_ = unix.IoctlSetTermios(fd, ioctlWriteTermios, t.origTermios)
		t.origTermios = nil
	}
}

func (t *ProcessTerminal) Write(p []byte) {
	_, _ = os.Stdout.Write(p)
}

func (t *ProcessTerminal) WriteString(s string) {
	_, _ = os.Stdout.WriteString(s)
}

func (t *ProcessTerminal) Columns() int {
	t.sizeMu.RLock()
	c := t.cols
	t.sizeMu.RUnlock()
	if c == 0 {
		return 80
	}
	return c
}

func (t *ProcessTerminal) Rows() int {
	t.sizeMu.RLock()
	r := t.rows
	t.sizeMu.RUnlock()
	if r == 0 {
		return 24
	}
	return r
}

func (t *ProcessTerminal) IsTTY() bool {
	_, err := unix.IoctlGetTermios(int(os.Stdin.Fd()), ioctlReadTermios)
	return err == nil
}

// refreshSize queries the kernel for current terminal dimensions and
// caches them. Called once at Start and on every SIGWINCH.
func (t *ProcessTerminal) refreshSize() {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return
	}
	t.sizeMu.Lock()
	if ws.Col > 0 {
		t.cols = int(ws.Col)
	}
	if ws.Row > 0 {
		t.rows = int(ws.Row)
	}
	t.sizeMu.Unlock()
}

// processSignals delivers SIGINT and SIGTERM to the program.
type processSignals struct {
	ch   chan os.Signal
	done chan struct{}
}

func newProcessSignals() *processSignals {
	return &processSignals{}
}

func (s *processSignals) Start(onInterrupt, onTerminate func()) {
	s.ch = make(chan os.Signal, 1)
	s.done = make(chan struct{})
	signal.Notify(s.ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		for {
			select {
			case sig := <-s.ch:
				if sig == syscall.SIGINT {
					onInterrupt()
				} else {
					onTerminate()
				}
			case <-s.done:
				return
			}
		}
	}()
}

func (s *processSignals) Stop() {
	if s.ch != nil {
		signal.Stop(s.ch)
	}
	if s.done != nil {
		close(s.done)
		s.done = nil
	}
}
