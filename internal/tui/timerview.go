package tui

import (
	"fmt"
	"strings"

	"focusflow/internal/model"
	"focusflow/internal/timer"
	"focusflow/internal/tracker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// timerModel drives the interval timer session engine and shows today's
// progress against its targets.
type timerModel struct {
	tracker *tracker.Tracker
	engine  *timer.Engine
	width   int
	height  int
}

func newTimerModel(tr *tracker.Tracker, eng *timer.Engine) timerModel {
	return timerModel{tracker: tr, engine: eng}
}

func (t *timerModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

func (t timerModel) update(msg tea.Msg) (timerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		ev, expired := t.engine.Tick()
		if !expired {
			return t, nil
		}
		return t, t.sessionCompleted(ev)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.StartPause):
			t.engine.Toggle()
			return t, nil
		case key.Matches(msg, keys.Reset):
			t.engine.Reset()
			return t, func() tea.Msg {
				return statusMsg{text: "Timer reset — fresh set"}
			}
		case key.Matches(msg, keys.Skip):
			t.engine.Skip()
			return t, func() tea.Msg {
				return statusMsg{text: "Skipped to " + t.engine.Session().String()}
			}
		}
	}
	return t, nil
}

// sessionCompleted runs the aggregation side effect of a natural expiry:
// a finished work session counts toward today's log and the active task.
// Break completions only announce themselves.
func (t timerModel) sessionCompleted(ev timer.Event) tea.Cmd {
	return func() tea.Msg {
		if ev.Session != timer.Work {
			return statusMsg{text: "Break over — back to work! \a"}
		}
		if err := t.tracker.RecordWorkSessionComplete(); err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return statusMsg{text: "Work session complete — break time! \a"}
	}
}

func (t timerModel) view() string {
	w := t.width - 4

	sessionLabel, sessionStyle := t.sessionDisplay()
	clock := sessionStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(formatClock(t.engine.Remaining()))

	state := warningStyle.Render("paused")
	if t.engine.Running() {
		state = successStyle.Render("running")
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("Focus Timer"),
		"",
		clock,
		sessionLabel+"  "+state,
		"",
		t.renderBar(min(w-10, 48)),
		t.renderSetDots(),
		"",
		t.renderToday(),
	)

	controls := mutedStyle.Render("space: start/pause  s: skip  r: reset")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, content, "", controls),
	)
}

func (t timerModel) sessionDisplay() (string, lipgloss.Style) {
	switch t.engine.Session() {
	case timer.ShortBreak:
		return successStyle.Bold(true).Render("SHORT BREAK"), successStyle
	case timer.LongBreak:
		return highlightStyle.Bold(true).Render("LONG BREAK"), highlightStyle
	default:
		if task, ok := t.tracker.ActiveTask(); ok {
			return accentStyle.Bold(true).Render("FOCUS: " + task.Name), clockStyle
		}
		return accentStyle.Bold(true).Render("WORK"), clockStyle
	}
}

// renderBar draws the elapsed fraction of the current session.
func (t timerModel) renderBar(width int) string {
	if width < 4 {
		width = 4
	}
	filled := int(t.engine.Progress() * float64(width))
	if filled > width {
		filled = width
	}
	bar := successStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", width-filled))
	return bar
}

// renderSetDots shows progress through the current set of work sessions.
func (t timerModel) renderSetDots() string {
	perSet := t.engine.Settings().PomodorosPerSet
	done := t.engine.CompletedInSet() % perSet
	if done == 0 && t.engine.CompletedInSet() > 0 && t.engine.Session() == timer.LongBreak {
		done = perSet // the set that just earned this long break
	}

	var parts []string
	for i := 0; i < perSet; i++ {
		switch {
		case i < done:
			parts = append(parts, successStyle.Render("●"))
		case i == done && t.engine.Session() == timer.Work:
			parts = append(parts, accentStyle.Render("◐"))
		default:
			parts = append(parts, mutedStyle.Render("○"))
		}
	}
	counter := mutedStyle.Render(fmt.Sprintf("  %d in set", t.engine.CompletedInSet()))
	return strings.Join(parts, " ") + counter
}

func (t timerModel) renderToday() string {
	log := t.tracker.LogFor(model.Today())
	return mutedStyle.Render(fmt.Sprintf("today: %d/%d pomodoros  ·  %d/%d tasks",
		log.PomodorosCompleted, log.PomodorosTarget,
		log.TasksCompleted, log.TasksTarget,
	))
}
