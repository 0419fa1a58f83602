package steep

import (
	"context"
	"log/slog"
)

// Option configures a Program at construction time.
type Option func(*Program)

// WithAltScreen starts the program on the terminal's alternate screen
// buffer, so the application doesn't scroll the user's shell history.
func WithAltScreen() Option {
	return func(p *Program) { p.altScreen = true }
}

// WithMouseCellMotion enables mouse press, release, wheel and drag
// reporting at startup.
func WithMouseCellMotion() Option {
	return func(p *Program) { p.mouseMode = MouseCellMotion }
}

// WithMouseAllMotion enables full mouse reporting at startup, including
// motion with no button held.
func WithMouseAllMotion() Option {
	return func(p *Program) { p.mouseMode = MouseAllMotion }
}

// WithFPS sets the paint rate. Values are clamped to 1-120; zero means
// the default of 60.
func WithFPS(fps int) Option {
	return func(p *Program) { p.fps = fps }
}

// WithReportFocus enables focus/blur reporting at startup; the model
// receives FocusMsg and BlurMsg.
func WithReportFocus() Option {
	return func(p *Program) { p.reportFocus = true }
}

// WithoutBracketedPaste disables bracketed paste, which is otherwise on
// by default. Pasted text then arrives as ordinary key events.
func WithoutBracketedPaste() Option {
	return func(p *Program) { p.bracketedPaste = false }
}

// WithTerminal substitutes the terminal implementation. Used by tests and
// by embedders with their own I/O.
func WithTerminal(t Terminal) Option {
	return func(p *Program) { p.terminal = t }
}

// WithSignalSource substitutes the signal source.
func WithSignalSource(s SignalSource) Option {
	return func(p *Program) { p.signals = s }
}

// WithContext attaches a context; when it is cancelled the program stops
// and Run returns ErrKilled. The context also carries the default log
// sink (see pkg/ioctx).
func WithContext(ctx context.Context) Option {
	return func(p *Program) { p.ctx = ctx }
}

// WithLogger sets the logger used for effect errors and decode anomalies.
func WithLogger(l *slog.Logger) Option {
	return func(p *Program) { p.logger = l }
}
