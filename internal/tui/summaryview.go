package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"focusflow/internal/motivator"
	"focusflow/internal/summary"
	"focusflow/internal/tracker"
	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type summaryMode int

const (
	summaryWeekly summaryMode = iota
	summaryMonthly
)

// summaryModel is the read-side view over the daily logs plus the AI
// motivation hook. It never writes to the store.
type summaryModel struct {
	tracker   *tracker.Tracker
	generator motivator.Generator
	width     int
	height    int

	mode   summaryMode
	window summary.Window
	chart  barchart.Model

	motivation string
	fetching   bool
}

func newSummaryModel(tr *tracker.Tracker, gen motivator.Generator) summaryModel {
	m := summaryModel{
		tracker:   tr,
		generator: gen,
		chart:     barchart.New(60, 12),
	}
	m.reload()
	return m
}

func (m *summaryModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.buildChart()
}

func (m *summaryModel) reload() {
	logs := m.tracker.Logs()
	now := time.Now()
	if m.mode == summaryMonthly {
		m.window = summary.Monthly(logs, now)
	} else {
		m.window = summary.Weekly(logs, now)
	}
	m.buildChart()
}

func (m summaryModel) update(msg tea.Msg) (summaryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case storeChangedMsg:
		m.reload()
		return m, nil

	case motivationMsg:
		m.fetching = false
		if msg.err != nil {
			return m, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Motivation unavailable: %v — press m to retry", msg.err), isError: true}
			}
		}
		m.motivation = msg.text
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left), key.Matches(msg, keys.Right):
			if m.mode == summaryWeekly {
				m.mode = summaryMonthly
			} else {
				m.mode = summaryWeekly
			}
			m.reload()
			return m, nil
		case key.Matches(msg, keys.Motivate):
			if m.fetching {
				return m, nil
			}
			m.fetching = true
			return m, m.fetchMotivation()
		}
	}
	return m, nil
}

// fetchMotivation asks the external generator for a message. Failures stay
// in the status line; nothing durable is touched either way.
func (m summaryModel) fetchMotivation() tea.Cmd {
	input := summary.Weekly(m.tracker.Logs(), time.Now()).MotivatorInput()
	gen := m.generator
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		out, err := gen.Generate(ctx, input)
		if err != nil {
			return motivationMsg{err: err}
		}
		return motivationMsg{text: out.MotivationMessage}
	}
}

func (m *summaryModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if m.height > 30 {
		chartHeight = 14
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, log := range m.window.Logs {
		label := log.Date[5:] // MM-DD
		if m.mode == summaryMonthly {
			label = log.Date[8:] // DD
		}
		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{
				{Name: "pomodoros", Value: float64(log.PomodorosCompleted), Style: lipgloss.NewStyle().Foreground(colorPrimary)},
				{Name: "tasks", Value: float64(log.TasksCompleted), Style: lipgloss.NewStyle().Foreground(colorSuccess)},
			},
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m summaryModel) view() string {
	w := m.width - 4

	weeklyTab := inactiveTabStyle.Render("Weekly")
	monthlyTab := inactiveTabStyle.Render("Monthly")
	if m.mode == summaryWeekly {
		weeklyTab = activeTabStyle.Render("Weekly")
	} else {
		monthlyTab = activeTabStyle.Render("Monthly")
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Summary"), "  ", weeklyTab, monthlyTab, "  ",
		mutedStyle.Render(m.rangeLabel()),
	)

	legend := lipgloss.NewStyle().Foreground(colorPrimary).Render("● pomodoros") + "  " +
		successStyle.Render("● tasks")

	nav := mutedStyle.Render("  ←/→: weekly/monthly  m: motivate me")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", m.chart.View(), "", "  "+legend, "", m.renderTotals(), m.renderMotivation(w), "", nav,
		),
	)
}

func (m summaryModel) rangeLabel() string {
	if len(m.window.Logs) == 0 {
		return ""
	}
	return fmt.Sprintf("%s — %s", m.window.Logs[0].Date, m.window.Logs[len(m.window.Logs)-1].Date)
}

func (m summaryModel) renderTotals() string {
	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-20s %10s %10s", "", "Completed", "Target")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", 42)))
	rows = append(rows, fmt.Sprintf("  %-20s %10d %10d", "Pomodoros", m.window.PomodorosCompleted, m.window.PomodorosTarget))
	rows = append(rows, fmt.Sprintf("  %-20s %10d %10d", "Tasks", m.window.TasksCompleted, m.window.TasksTarget))
	return strings.Join(rows, "\n")
}

func (m summaryModel) renderMotivation(w int) string {
	switch {
	case m.fetching:
		return "\n" + mutedStyle.Render("  Thinking of something nice to say…")
	case m.motivation != "":
		return "\n" + highlightStyle.Width(w-6).Render("  “"+m.motivation+"”")
	default:
		return ""
	}
}
