package tui

import (
	"fmt"
	"strconv"
	"strings"

	"focusflow/internal/model"
	"focusflow/internal/tracker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// tasksModel lists every task grouped by goal scope, with a flat cursor.
type tasksModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	rows   []taskRow
	cursor int

	formActive bool
	form       *huh.Form
	formType   string // "task", "edit_task"

	// Form field pointers (survive value copies)
	formName     *string
	formEstimate *string
	formGoalID   *string

	editingID string
}

// taskRow is one selectable line: either a scope header or a task.
type taskRow struct {
	header string
	task   model.Task
	isTask bool
}

func newTasksModel(tr *tracker.Tracker) tasksModel {
	name, estimate, goalID := "", "1", ""
	m := tasksModel{
		tracker:      tr,
		formName:     &name,
		formEstimate: &estimate,
		formGoalID:   &goalID,
	}
	m.reload()
	return m
}

func (m *tasksModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

// reload rebuilds the grouped rows from the store.
func (m *tasksModel) reload() {
	var rows []taskRow
	appendScope := func(header string, tasks []model.Task) {
		if len(tasks) == 0 {
			return
		}
		rows = append(rows, taskRow{header: header})
		for _, t := range tasks {
			rows = append(rows, taskRow{task: t, isTask: true})
		}
	}

	appendScope("Unassigned", m.tracker.TasksInScope(""))
	for _, g := range m.tracker.GoalsSorted() {
		appendScope(g.Name, m.tracker.TasksInScope(g.ID))
	}

	m.rows = rows
	if m.cursor >= len(m.rows) {
		m.cursor = max(0, len(m.rows)-1)
	}
	m.snapToTask(+1)
}

// snapToTask nudges the cursor off header rows in the given direction.
func (m *tasksModel) snapToTask(dir int) {
	for m.cursor >= 0 && m.cursor < len(m.rows) && !m.rows[m.cursor].isTask {
		m.cursor += dir
	}
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		m.cursor = 0
		for m.cursor < len(m.rows) && !m.rows[m.cursor].isTask {
			m.cursor++
		}
	}
}

func (m tasksModel) selected() (model.Task, bool) {
	if m.cursor >= 0 && m.cursor < len(m.rows) && m.rows[m.cursor].isTask {
		return m.rows[m.cursor].task, true
	}
	return model.Task{}, false
}

func (m tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
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
				m.snapToTask(-1)
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
				m.snapToTask(+1)
			}
		case key.Matches(msg, keys.New):
			return m.showTaskForm(model.Task{}, "task")
		case key.Matches(msg, keys.Edit):
			if task, ok := m.selected(); ok {
				return m.showTaskForm(task, "edit_task")
			}
		case key.Matches(msg, keys.Delete):
			if task, ok := m.selected(); ok {
				return m, m.mutate(func() error { return m.tracker.DeleteTask(task.ID) }, "Task deleted")
			}
		case key.Matches(msg, keys.Complete):
			if task, ok := m.selected(); ok {
				return m, func() tea.Msg {
					toggled, err := m.tracker.ToggleTask(task.ID)
					if err != nil {
						return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
					}
					if toggled.IsCompleted {
						return statusMsg{text: fmt.Sprintf("Done: %q", toggled.Name)}
					}
					return statusMsg{text: fmt.Sprintf("Reopened: %q", toggled.Name)}
				}
			}
		case key.Matches(msg, keys.Enter):
			if task, ok := m.selected(); ok {
				next := task.ID
				if m.tracker.ActiveTaskID() == task.ID {
					next = "" // selecting the active task clears it
				}
				return m, m.mutate(func() error { return m.tracker.SetActiveTask(next) }, "Active task updated")
			}
		case key.Matches(msg, keys.MoveUp):
			if task, ok := m.selected(); ok {
				return m, m.mutate(func() error { return m.tracker.MoveTask(task.ID, tracker.MoveUp) }, "")
			}
		case key.Matches(msg, keys.MoveDown):
			if task, ok := m.selected(); ok {
				return m, m.mutate(func() error { return m.tracker.MoveTask(task.ID, tracker.MoveDown) }, "")
			}
		}
	}
	return m, nil
}

// mutate wraps a tracker call into a command reporting errors on the status
// line. The store change notification triggers the reload.
func (m tasksModel) mutate(fn func() error, okText string) tea.Cmd {
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

func (m tasksModel) showTaskForm(task model.Task, formType string) (tasksModel, tea.Cmd) {
	*m.formName = task.Name
	*m.formEstimate = "1"
	if task.EstimatedPomodoros > 0 {
		*m.formEstimate = strconv.Itoa(task.EstimatedPomodoros)
	}
	*m.formGoalID = task.GoalID
	m.formType = formType
	m.editingID = task.ID

	goalOptions := []huh.Option[string]{huh.NewOption("(none)", "")}
	for _, g := range m.tracker.GoalsSorted() {
		goalOptions = append(goalOptions, huh.NewOption(g.Name, g.ID))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task Name").Value(m.formName),
			huh.NewInput().Title("Estimated Pomodoros").Value(m.formEstimate),
			huh.NewSelect[string]().Title("Goal").Options(goalOptions...).Value(m.formGoalID),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
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
		estimate, _ := strconv.Atoi(*m.formEstimate)

		switch m.formType {
		case "task":
			return m, m.mutate(func() error {
				_, err := m.tracker.AddTask(*m.formName, estimate, *m.formGoalID)
				return err
			}, "Task added")
		case "edit_task":
			id := m.editingID
			return m, m.mutate(func() error {
				for _, t := range m.tracker.Tasks() {
					if t.ID == id {
						t.Name = *m.formName
						t.EstimatedPomodoros = estimate
						t.GoalID = *m.formGoalID
						return m.tracker.UpdateTask(t)
					}
				}
				return tracker.ErrNotFound
			}, "Task updated")
		}
	}

	return m, cmd
}

func (m tasksModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Task"), "", m.form.View()),
		)
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Tasks"))
	rows = append(rows, "")

	if len(m.rows) == 0 {
		rows = append(rows, mutedStyle.Render("  No tasks yet — press n to add one"))
	}

	activeID := m.tracker.ActiveTaskID()
	for i, row := range m.rows {
		if !row.isTask {
			rows = append(rows, highlightStyle.Render(" "+row.header))
			continue
		}
		rows = append(rows, m.renderTask(row.task, i == m.cursor, row.task.ID == activeID))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  c: toggle  d: delete  enter: active  K/J: move"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m tasksModel) renderTask(t model.Task, selected, active bool) string {
	cursor := "  "
	style := normalItemStyle
	if selected {
		cursor = "> "
		style = selectedItemStyle
	}
	if t.IsCompleted {
		style = doneItemStyle
	}

	check := "[ ]"
	if t.IsCompleted {
		check = "[x]"
	}
	marker := " "
	if active {
		marker = accentStyle.Render("●")
	}

	progress := mutedStyle.Render(fmt.Sprintf(" %d/%d", t.CompletedPomodoros, t.EstimatedPomodoros))
	name := style.Render(truncate(t.Name, m.width-24))

	return fmt.Sprintf("  %s%s %s %s%s", cursor, check, marker, name, progress)
}

// truncate shortens s to limit runes; slicing bytes would split multi-byte
// characters mid-sequence.
func truncate(s string, limit int) string {
	if limit < 8 {
		limit = 8
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimSpace(string(runes[:limit-1])) + "…"
}
