package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harrisonrobin/studydesk/pkg/timer"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestTimerModelCompletesOnce(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)}
	var m tea.Model = NewTimerModel(timer.New(), timer.Pomodoro, timer.PomodoroDuration, timer.BreakDuration, clock.now)

	m, cmd := m.Update(startMsg{kind: timer.Pomodoro, d: timer.PomodoroDuration})
	if cmd == nil {
		t.Fatal("expected a tick command after start")
	}
	if !strings.Contains(m.View(), "25:00") {
		t.Fatalf("expected full clock, got:\n%s", m.View())
	}

	clock.t = clock.t.Add(timer.PomodoroDuration)
	m, cmd = m.Update(tickMsg(clock.t))
	if cmd != nil {
		t.Fatal("ticking should stop once expired")
	}
	clock.t = clock.t.Add(time.Second)
	m, _ = m.Update(tickMsg(clock.t))

	sessions := m.(TimerModel).Sessions()
	if len(sessions) != 1 || !sessions[0].Completed || sessions[0].Elapsed != timer.PomodoroDuration {
		t.Fatalf("unexpected sessions %+v", sessions)
	}
	if !strings.Contains(m.View(), "5 min break") {
		t.Fatalf("expected break prompt, got:\n%s", m.View())
	}
}

func TestTimerModelStop(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)}
	var m tea.Model = NewTimerModel(timer.New(), timer.Custom, 10*time.Minute, timer.BreakDuration, clock.now)
	m, _ = m.Update(startMsg{kind: timer.Custom, d: 10 * time.Minute})

	clock.t = clock.t.Add(2 * time.Minute)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})

	sessions := m.(TimerModel).Sessions()
	if len(sessions) != 1 || sessions[0].Completed || sessions[0].Elapsed != 2*time.Minute {
		t.Fatalf("unexpected sessions %+v", sessions)
	}
	if !strings.Contains(m.View(), "Stopped after 2 min.") {
		t.Fatalf("unexpected view:\n%s", m.View())
	}
}

func TestTimerModelStopAfterRunOut(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)}
	var m tea.Model = NewTimerModel(timer.New(), timer.Custom, 10*time.Minute, timer.BreakDuration, clock.now)
	m, _ = m.Update(startMsg{kind: timer.Custom, d: 10 * time.Minute})

	clock.t = clock.t.Add(20 * time.Minute)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})

	sessions := m.(TimerModel).Sessions()
	if len(sessions) != 1 || !sessions[0].Completed || sessions[0].Elapsed != 10*time.Minute {
		t.Fatalf("unexpected sessions %+v", sessions)
	}
	if !strings.Contains(m.View(), "Time's up!") {
		t.Fatalf("expected the time's up message, got:\n%s", m.View())
	}
}
