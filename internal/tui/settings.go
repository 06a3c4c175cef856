package tui

import (
	"fmt"
	"strconv"

	"focusflow/internal/model"
	"focusflow/internal/tracker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// settingsModel shows the timer configuration and today's targets, both
// edited through a single form. Durations are clamped on save, so out of
// range input degrades to the floor instead of erroring.
type settingsModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	formActive bool
	form       *huh.Form

	formWork      *string
	formShort     *string
	formLong      *string
	formPerSet    *string
	formPomTarget *string
	formTaskGoal  *string
}

func newSettingsModel(tr *tracker.Tracker) settingsModel {
	work, short, long, perSet := "", "", "", ""
	pomTarget, taskGoal := "", ""
	return settingsModel{
		tracker:       tr,
		formWork:      &work,
		formShort:     &short,
		formLong:      &long,
		formPerSet:    &perSet,
		formPomTarget: &pomTarget,
		formTaskGoal:  &taskGoal,
	}
}

func (m *settingsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Edit), key.Matches(msg, keys.Enter):
			return m.showForm()
		}
	}
	return m, nil
}

func (m settingsModel) showForm() (settingsModel, tea.Cmd) {
	s := m.tracker.Settings()
	today := m.tracker.LogFor(model.Today())

	*m.formWork = strconv.Itoa(s.WorkDuration)
	*m.formShort = strconv.Itoa(s.ShortBreakDuration)
	*m.formLong = strconv.Itoa(s.LongBreakDuration)
	*m.formPerSet = strconv.Itoa(s.PomodorosPerSet)
	*m.formPomTarget = strconv.Itoa(today.PomodorosTarget)
	*m.formTaskGoal = strconv.Itoa(today.TasksTarget)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Work Minutes").Value(m.formWork),
			huh.NewInput().Title("Short Break Minutes").Value(m.formShort),
			huh.NewInput().Title("Long Break Minutes").Value(m.formLong),
			huh.NewInput().Title("Pomodoros Per Set").Value(m.formPerSet),
		).Title("Timer"),
		huh.NewGroup(
			huh.NewInput().Title("Pomodoros Target").Value(m.formPomTarget),
			huh.NewInput().Title("Tasks Target").Value(m.formTaskGoal),
		).Title("Today's Targets"),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false

		work, _ := strconv.Atoi(*m.formWork)
		short, _ := strconv.Atoi(*m.formShort)
		long, _ := strconv.Atoi(*m.formLong)
		perSet, _ := strconv.Atoi(*m.formPerSet)
		pomTarget, _ := strconv.Atoi(*m.formPomTarget)
		taskTarget, _ := strconv.Atoi(*m.formTaskGoal)

		return m, func() tea.Msg {
			if err := m.tracker.SaveSettings(model.Settings{
				WorkDuration:       work,
				ShortBreakDuration: short,
				LongBreakDuration:  long,
				PomodorosPerSet:    perSet,
			}); err != nil {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
			if err := m.tracker.SetTargets(model.Today(), pomTarget, taskTarget); err != nil {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
			return statusMsg{text: "Settings saved — timer paused with new durations"}
		}
	}

	return m, cmd
}

func (m settingsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Settings"), "", m.form.View()),
		)
	}

	s := m.tracker.Settings()
	today := m.tracker.LogFor(model.Today())

	rows := []string{
		titleStyle.Render("Settings"),
		"",
		highlightStyle.Render(" Timer"),
		m.renderRow("Work", fmt.Sprintf("%d min", s.WorkDuration)),
		m.renderRow("Short break", fmt.Sprintf("%d min", s.ShortBreakDuration)),
		m.renderRow("Long break", fmt.Sprintf("%d min", s.LongBreakDuration)),
		m.renderRow("Pomodoros per set", strconv.Itoa(s.PomodorosPerSet)),
		"",
		highlightStyle.Render(" Today's Targets"),
		m.renderRow("Pomodoros", strconv.Itoa(today.PomodorosTarget)),
		m.renderRow("Tasks", strconv.Itoa(today.TasksTarget)),
		"",
		mutedStyle.Render("  e/enter: edit"),
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m settingsModel) renderRow(label, value string) string {
	return fmt.Sprintf("  %s %s", mutedStyle.Render(fmt.Sprintf("%-20s", label)), normalItemStyle.Render(value))
}
