package tui

import (
	"fmt"

	"focusflow/internal/model"
	"focusflow/internal/tracker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// goalsModel manages the goal list. Deleting a goal releases its tasks into
// the unassigned scope; it never deletes them.
type goalsModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	goals  []model.Goal
	cursor int

	formActive bool
	form       *huh.Form
	formType   string // "goal", "edit_goal"

	formName        *string
	formDescription *string

	editingID string
}

func newGoalsModel(tr *tracker.Tracker) goalsModel {
	name, description := "", ""
	m := goalsModel{
		tracker:         tr,
		formName:        &name,
		formDescription: &description,
	}
	m.reload()
	return m
}

func (m *goalsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *goalsModel) reload() {
	m.goals = m.tracker.GoalsSorted()
	if m.cursor >= len(m.goals) {
		m.cursor = max(0, len(m.goals)-1)
	}
}

func (m goalsModel) update(msg tea.Msg) (goalsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case storeChangedMsg:
		m.reload()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.goals)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			return m.showGoalForm(model.Goal{}, "goal")
		case key.Matches(msg, keys.Edit):
			if m.cursor < len(m.goals) {
				return m.showGoalForm(m.goals[m.cursor], "edit_goal")
			}
		case key.Matches(msg, keys.Complete):
			if m.cursor < len(m.goals) {
				id := m.goals[m.cursor].ID
				return m, m.mutate(func() error { return m.tracker.ToggleGoal(id) }, "")
			}
		case key.Matches(msg, keys.Delete):
			if m.cursor < len(m.goals) {
				id := m.goals[m.cursor].ID
				return m, m.mutate(func() error { return m.tracker.DeleteGoal(id) }, "Goal deleted — tasks kept")
			}
		case key.Matches(msg, keys.MoveUp):
			if m.cursor < len(m.goals) {
				id := m.goals[m.cursor].ID
				return m, m.mutate(func() error { return m.tracker.MoveGoal(id, tracker.MoveUp) }, "")
			}
		case key.Matches(msg, keys.MoveDown):
			if m.cursor < len(m.goals) {
				id := m.goals[m.cursor].ID
				return m, m.mutate(func() error { return m.tracker.MoveGoal(id, tracker.MoveDown) }, "")
			}
		}
	}
	return m, nil
}

func (m goalsModel) mutate(fn func() error, okText string) tea.Cmd {
	return func() tea.Msg {
		if err := fn(); err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		if okText == "" {
			return nil
		}
		return statusMsg{text: okText}
	}
}

func (m goalsModel) showGoalForm(goal model.Goal, formType string) (goalsModel, tea.Cmd) {
	*m.formName = goal.Name
	*m.formDescription = goal.Description
	m.formType = formType
	m.editingID = goal.ID

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Goal Name").Value(m.formName),
			huh.NewText().Title("Description").Value(m.formDescription),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m goalsModel) updateForm(msg tea.Msg) (goalsModel, tea.Cmd) {
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

		switch m.formType {
		case "goal":
			return m, m.mutate(func() error {
				_, err := m.tracker.AddGoal(*m.formName, *m.formDescription)
				return err
			}, "Goal added")
		case "edit_goal":
			id := m.editingID
			return m, m.mutate(func() error {
				for _, g := range m.tracker.GoalsSorted() {
					if g.ID == id {
						g.Name = *m.formName
						g.Description = *m.formDescription
						return m.tracker.UpdateGoal(g)
					}
				}
				return tracker.ErrNotFound
			}, "Goal updated")
		}
	}

	return m, cmd
}

func (m goalsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Goal"), "", m.form.View()),
		)
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Goals"))
	rows = append(rows, "")

	if len(m.goals) == 0 {
		rows = append(rows, mutedStyle.Render("  No goals yet — press n to add one"))
	}

	for i, g := range m.goals {
		rows = append(rows, m.renderGoal(g, i == m.cursor))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  c: toggle  d: delete  K/J: move"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m goalsModel) renderGoal(g model.Goal, selected bool) string {
	cursor := "  "
	style := normalItemStyle
	if selected {
		cursor = "> "
		style = selectedItemStyle
	}
	if g.IsCompleted {
		style = doneItemStyle
	}

	check := "[ ]"
	if g.IsCompleted {
		check = "[x]"
	}

	tasks := m.tracker.TasksInScope(g.ID)
	done := 0
	for _, t := range tasks {
		if t.IsCompleted {
			done++
		}
	}
	count := mutedStyle.Render(fmt.Sprintf(" %d/%d tasks", done, len(tasks)))

	line := fmt.Sprintf("  %s%s %s%s", cursor, check, style.Render(truncate(g.Name, m.width-24)), count)
	if g.Description != "" && selected {
		line += "\n" + mutedStyle.Render("       "+truncate(g.Description, m.width-10))
	}
	return line
}
