package steep

// Msg is a message delivered to a Model's Update. The runtime reserves a
// small set of message types (quit, interrupt, resize, screen control) that
// the dispatcher intercepts before user code sees them; everything else is
// owned by the application.
type Msg any

// QuitMsg signals a graceful shutdown. Applications usually produce it via
// the Quit command rather than constructing it directly.
type QuitMsg struct{}

// InterruptMsg signals shutdown due to an interrupt (Ctrl+C at the process
// level, SIGINT, or the Interrupt command). Run returns ErrInterrupted.
type InterruptMsg struct{}

// SuspendMsg is reserved for process-level suspend (Ctrl+Z) semantics.
// The runtime currently treats it as a no-op extension point.
type SuspendMsg struct{}

// ResumeMsg is the counterpart of SuspendMsg. Also a no-op at this layer.
type ResumeMsg struct{}

// WindowSizeMsg reports the terminal dimensions in cells. One is sent when
// the program starts and another on every resize. Unlike the other reserved
// messages it is also forwarded to the user model, since applications
// commonly need it for layout.
type WindowSizeMsg struct {
	Width  int
	Height int
}

// FocusMsg reports that the terminal window gained focus. Only delivered
// when focus reporting is enabled (WithReportFocus or EnableReportFocus).
type FocusMsg struct{}

// BlurMsg reports that the terminal window lost focus.
type BlurMsg struct{}

// Quit is a command that shuts the program down gracefully.
func Quit() Msg { return QuitMsg{} }

// Interrupt is a command that shuts the program down as if interrupted.
func Interrupt() Msg { return InterruptMsg{} }

// Suspend is a command that delivers SuspendMsg. Reserved; currently a
// no-op at the runtime layer.
func Suspend() Msg { return SuspendMsg{} }
