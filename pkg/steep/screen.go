package steep

// Control sequences written to the terminal. The values matter for
// terminal compatibility; the behavior lives in the Program.
const (
	seqShowCursor = "\x1b[?25h"
	seqHideCursor = "\x1b[?25l"

	seqClearScreen = "\x1b[2J\x1b[H" // clear screen, cursor home

	seqEnterAltScreen = "\x1b[?1049h"
	seqExitAltScreen  = "\x1b[?1049l"

	seqEnableMouseCellMotion  = "\x1b[?1002h"
	seqDisableMouseCellMotion = "\x1b[?1002l"
	seqEnableMouseAllMotion   = "\x1b[?1003h"
	seqDisableMouseAllMotion  = "\x1b[?1003l"
	seqEnableMouseSGR         = "\x1b[?1006h"
	seqDisableMouseSGR        = "\x1b[?1006l"

	seqEnableBracketedPaste  = "\x1b[?2004h"
	seqDisableBracketedPaste = "\x1b[?2004l"

	seqEnableFocusReports  = "\x1b[?1004h"
	seqDisableFocusReports = "\x1b[?1004l"
)

func setWindowTitleSeq(title string) string {
	return "\x1b]0;" + title + "\a"
}

// Screen-control messages. They are intercepted by the dispatcher and
// translated into terminal writes; user models never see them.
type (
	enterAltScreenMsg        struct{}
	exitAltScreenMsg         struct{}
	enableMouseCellMotionMsg struct{}
	enableMouseAllMotionMsg  struct{}
	disableMouseMsg          struct{}
	showCursorMsg            struct{}
	hideCursorMsg            struct{}
	clearScreenMsg           struct{}
	setWindowTitleMsg        string
	enableBracketedPasteMsg  struct{}
	disableBracketedPasteMsg struct{}
	enableReportFocusMsg     struct{}
	disableReportFocusMsg    struct{}
)

// EnterAltScreen is a command that switches to the terminal's alternate
// screen buffer. The next frame is repainted in full.
func EnterAltScreen() Msg { return enterAltScreenMsg{} }

// ExitAltScreen is a command that returns to the primary screen buffer.
func ExitAltScreen() Msg { return exitAltScreenMsg{} }

// EnableMouseCellMotion is a command that enables mouse press, release,
// wheel and drag reporting.
func EnableMouseCellMotion() Msg { return enableMouseCellMotionMsg{} }

// EnableMouseAllMotion is a command that additionally reports motion with
// no button held.
func EnableMouseAllMotion() Msg { return enableMouseAllMotionMsg{} }

// DisableMouse is a command that turns all mouse reporting off.
func DisableMouse() Msg { return disableMouseMsg{} }

// ShowCursor is a command that shows the hardware cursor.
func ShowCursor() Msg { return showCursorMsg{} }

// HideCursor is a command that hides the hardware cursor.
func HideCursor() Msg { return hideCursorMsg{} }

// ClearScreen is a command that clears the screen and forces the next
// frame to repaint.
func ClearScreen() Msg { return clearScreenMsg{} }

// SetWindowTitle returns a command that sets the terminal window title.
func SetWindowTitle(title string) Cmd {
	return func() Msg { return setWindowTitleMsg(title) }
}

// EnableBracketedPaste is a command that turns bracketed paste on.
// It is on by default; see WithoutBracketedPaste.
func EnableBracketedPaste() Msg { return enableBracketedPasteMsg{} }

// DisableBracketedPaste is a command that turns bracketed paste off.
func DisableBracketedPaste() Msg { return disableBracketedPasteMsg{} }

// EnableReportFocus is a command that turns focus/blur reporting on.
func EnableReportFocus() Msg { return enableReportFocusMsg{} }

// DisableReportFocus is a command that turns focus/blur reporting off.
func DisableReportFocus() Msg { return disableReportFocusMsg{} }

// handleScreenMsg translates one intercepted screen-control message into
// terminal writes and mode bookkeeping. Runs on the dispatcher.
func (p *Program) handleScreenMsg(msg Msg) {
	switch msg := msg.(type) {
	case enterAltScreenMsg:
		p.enterAltScreen()
	case exitAltScreenMsg:
		p.exitAltScreen()
	case enableMouseCellMotionMsg:
		p.terminal.WriteString(seqEnableMouseCellMotion + seqEnableMouseSGR)
	case enableMouseAllMotionMsg:
		p.terminal.WriteString(seqEnableMouseAllMotion + seqEnableMouseSGR)
	case disableMouseMsg:
		p.terminal.WriteString(seqDisableMouseCellMotion + seqDisableMouseAllMotion + seqDisableMouseSGR)
	case showCursorMsg:
		p.terminal.WriteString(seqShowCursor)
	case hideCursorMsg:
		p.terminal.WriteString(seqHideCursor)
	case clearScreenMsg:
		p.terminal.WriteString(seqClearScreen)
		p.renderer.repaint()
	case setWindowTitleMsg:
		p.terminal.WriteString(setWindowTitleSeq(string(msg)))
	case enableBracketedPasteMsg:
		p.terminal.WriteString(seqEnableBracketedPaste)
	case disableBracketedPasteMsg:
		p.terminal.WriteString(seqDisableBracketedPaste)
	case enableReportFocusMsg:
		p.terminal.WriteString(seqEnableFocusReports)
	case disableReportFocusMsg:
		p.terminal.WriteString(seqDisableFocusReports)
	}
}

func (p *Program) enterAltScreen() {
	p.mu.Lock()
	if p.altScreenActive {
		p.mu.Unlock()
		return
	}
	p.altScreenActive = true
	p.mu.Unlock()
	p.terminal.WriteString(seqEnterAltScreen)
	p.renderer.repaint()
}

func (p *Program) exitAltScreen() {
	p.mu.Lock()
	if !p.altScreenActive {
		p.mu.Unlock()
		return
	}
	p.altScreenActive = false
	p.mu.Unlock()
	p.terminal.WriteString(seqExitAltScreen)
	p.renderer.repaint()
}
