package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harrisonrobin/studydesk/pkg/render"
	"github.com/harrisonrobin/studydesk/pkg/timer"
)

// TickInterval is how often the countdown is redrawn while running.
const TickInterval = 100 * time.Millisecond

var (
	clockStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Padding(0, 2)
	doneStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	kindStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	stoppedNote = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Session is one finished or interrupted countdown.
type Session struct {
	Kind      timer.Kind
	Elapsed   time.Duration
	Completed bool
}

// TimerModel drives a timer.Timer from a bubbletea program.
type TimerModel struct {
	timer    *timer.Timer
	kind     timer.Kind
	duration time.Duration
	breakLen time.Duration
	now      func() time.Time

	reading  timer.Reading
	message  string
	sessions []Session
	ticking  bool
}

func NewTimerModel(t *timer.Timer, kind timer.Kind, d, breakLen time.Duration, now func() time.Time) TimerModel {
	return TimerModel{
		timer:    t,
		kind:     kind,
		duration: d,
		breakLen: breakLen,
		now:      now,
	}
}

func (m TimerModel) Init() tea.Cmd {
	return func() tea.Msg { return startMsg{kind: m.kind, d: m.duration} }
}

type startMsg struct {
	kind timer.Kind
	d    time.Duration
}

// Sessions lists the countdowns run during the program.
func (m TimerModel) Sessions() []Session {
	return m.sessions
}

func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case startMsg:
		return m.start(msg.kind, msg.d)

	case tickMsg:
		m.reading = m.timer.Tick(m.now())
		if m.reading.Completed {
			m.complete()
		}
		if m.timer.State() != timer.Running {
			m.ticking = false
			return m, nil
		}
		return m, tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.stop()
			return m, tea.Quit
		case "s":
			m.stop()
			return m, nil
		case "r":
			return m.start(m.kind, m.duration)
		case "b":
			return m.start(timer.Break, m.breakLen)
		}
	}
	return m, nil
}

func (m TimerModel) start(kind timer.Kind, d time.Duration) (tea.Model, tea.Cmd) {
	if err := m.timer.Start(kind, d, m.now()); err != nil {
		m.message = err.Error()
		return m, nil
	}
	m.reading = m.timer.Tick(m.now())
	m.message = ""
	// One tick loop at a time; a restart reuses the running loop.
	if m.ticking {
		return m, nil
	}
	m.ticking = true
	return m, tick()
}

func (m *TimerModel) stop() {
	elapsed, err := m.timer.Stop(m.now())
	if err != nil {
		return
	}
	m.reading = m.timer.Tick(m.now())
	if m.reading.Completed {
		m.complete()
		return
	}
	m.sessions = append(m.sessions, Session{Kind: m.timer.Kind(), Elapsed: elapsed})
	m.message = fmt.Sprintf("Stopped after %s.", shortDuration(elapsed))
}

func (m *TimerModel) complete() {
	m.sessions = append(m.sessions, Session{Kind: m.reading.Kind, Elapsed: m.reading.Duration, Completed: true})
	if m.reading.Kind == timer.Break {
		m.message = "Break over. Press r to start another pomodoro."
	} else {
		m.message = fmt.Sprintf("Time's up! Take a %s break (press b).", shortDuration(m.breakLen))
	}
}

func (m TimerModel) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n\n", kindStyle.Render(string(m.reading.Kind)), helpStyle.Render(m.reading.State.String()))
	fmt.Fprintf(&b, "%s\n", clockStyle.Render(m.reading.Clock()))
	fmt.Fprintf(&b, "%s\n\n", render.ProgressBar(m.reading.Progress, 30))

	switch m.reading.State {
	case timer.Expired:
		fmt.Fprintf(&b, "%s\n", doneStyle.Render(m.message))
	case timer.Stopped:
		fmt.Fprintf(&b, "%s\n", stoppedNote.Render(m.message))
	default:
		if m.message != "" {
			fmt.Fprintf(&b, "%s\n", m.message)
		}
	}
	b.WriteString(helpStyle.Render("s stop • r restart • b break • q quit"))
	b.WriteString("\n")
	return b.String()
}

func shortDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d%time.Minute == 0 {
		return fmt.Sprintf("%d min", int(d/time.Minute))
	}
	return d.String()
}
