package main

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/steeptui/steep/pkg/steep"
)

const eventLogSize = 8

// clockMsg carries the aligned wall-clock tick.
type clockMsg time.Time

// unflashMsg clears the counter highlight after a short delay.
type unflashMsg struct{}

// demoModel shows off the runtime: a clock driven by Every, a counter
// bound to the arrow keys, and a rolling log of decoded input events.
type demoModel struct {
	now      time.Time
	counter  int
	flash    bool
	focused  bool
	width    int
	height   int
	events   []string
	received int
}

func newDemoModel() demoModel {
	return demoModel{
		focused: true,
		width:   80,
		height:  24,
	}
}

func tickClock() steep.Cmd {
	return steep.Every(time.Second, func(t time.Time) steep.Msg {
		return clockMsg(t)
	})
}

func unflash() steep.Cmd {
	return steep.Tick(500*time.Millisecond, func(time.Time) steep.Msg {
		return unflashMsg{}
	})
}

func (m demoModel) Init() steep.Cmd {
	return steep.Batch(
		tickClock(),
		steep.SetWindowTitle("steep demo"),
	)
}

func (m demoModel) Update(msg steep.Msg) (steep.Model, steep.Cmd) {
	switch msg := msg.(type) {
	case clockMsg:
		m.now = time.Time(msg)
		return m, tickClock()

	case unflashMsg:
		m.flash = false
		return m, nil

	case steep.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case steep.FocusMsg:
		m.focused = true
		m.logEvent("focus gained")
		return m, nil

	case steep.BlurMsg:
		m.focused = false
		m.logEvent("focus lost")
		return m, nil

	case steep.MouseMsg:
		m.logEvent(fmt.Sprintf("mouse: %s", msg))
		return m, nil

	case steep.KeyMsg:
		m.logEvent(fmt.Sprintf("key: %s", msg))

		if msg.Paste {
			return m, nil
		}
		switch msg.Kind {
		case steep.KeyBreak, steep.KeyEscape:
			return m, steep.Quit
		case steep.KeyUp:
			m.counter++
			m.flash = true
			return m, unflash()
		case steep.KeyDown:
			m.counter--
			m.flash = true
			return m, unflash()
		case steep.KeyRunes:
			if msg.Text == "q" {
				return m, steep.Quit
			}
		}
		return m, nil
	}

	return m, nil
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("117"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("249"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	blurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

func (m demoModel) View() string {
	var b strings.Builder

	title := titleStyle.Render("steep demo")
	if !m.focused {
		title = blurredStyle.Render("steep demo (unfocused)")
	}
	b.WriteString(title)
	b.WriteString("\n\n")

	clock := "--:--:--"
	if !m.now.IsZero() {
		clock = m.now.Format("15:04:05")
	}
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("clock:"), valueStyle.Render(clock))
	counterStyle := valueStyle
	if m.flash {
		counterStyle = titleStyle
	}
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("counter:"), counterStyle.Render(fmt.Sprintf("%d", m.counter)))
	fmt.Fprintf(&b, "%s %s\n\n", labelStyle.Render("size:"), valueStyle.Render(fmt.Sprintf("%dx%d", m.width, m.height)))

	b.WriteString(labelStyle.Render(fmt.Sprintf("events (%d total):", m.received)))
	b.WriteString("\n")
	if len(m.events) == 0 {
		b.WriteString(dimStyle.Render("  (none yet)"))
		b.WriteString("\n")
	}
	for _, ev := range m.events {
		b.WriteString("  ")
		b.WriteString(steep.Truncate(valueStyle.Render(ev), m.width-2, "…"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("up/down: counter · q or ctrl+c: quit"))
	return b.String()
}

func (m *demoModel) logEvent(ev string) {
	m.received++
	m.events = append(m.events, ev)
	if len(m.events) > eventLogSize {
		m.events = m.events[len(m.events)-eventLogSize:]
	}
}
