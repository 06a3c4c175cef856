package tui

import (
	"fmt"
	"time"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTimer viewState = iota
	viewTasks
	viewGoals
	viewSummary
	viewSettings
)

var viewNames = []string{"Timer", "Tasks", "Goals", "Summary", "Settings"}

// --- Messages ---

type tickMsg time.Time

type statusMsg struct {
	text    string
	isError bool
}

// storeChangedMsg surfaces a store change (local or from another process)
// so every screen re-reads its data.
type storeChangedMsg struct {
	key string
}

type motivationMsg struct {
	text string
	err  error
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

// formatClock renders a countdown as mm:ss.
func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
