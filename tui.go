package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type fileStartMsg struct {
	Index int
	Count int
	File  string
}

type progressMsg struct {
	Elapsed float64
	Total   float64
}

type fileDoneMsg FileResult

type batchDoneMsg struct{}

var (
	tuiTitleStyle = lipgloss.NewStyle().Bold(true)
	tuiFileStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	tuiBarStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	tuiOKStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	tuiFailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// tuiModel renders the running batch: one line per finished file plus a
// progress bar for the file currently streaming through the engine.
type tuiModel struct {
	count    int
	index    int
	file     string
	elapsed  float64
	total    float64
	done     []FileResult
	finished bool
}

func newTUIProgram(count int) *tea.Program {
	return tea.NewProgram(tuiModel{count: count})
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fileStartMsg:
		m.index = msg.Index
		m.file = msg.File
		m.elapsed = 0
		m.total = 0
	case progressMsg:
		m.elapsed = msg.Elapsed
		m.total = msg.Total
	case fileDoneMsg:
		m.done = append(m.done, FileResult(msg))
	case batchDoneMsg:
		m.finished = true
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m tuiModel) View() string {
	var b strings.Builder
	b.WriteString(tuiTitleStyle.Render("vmdrop") + "\n\n")
	for _, r := range m.done {
		b.WriteString(fmt.Sprintf("%-28s ", r.File))
		if r.Status == "SUCCESS" {
			b.WriteString(tuiOKStyle.Render(fmt.Sprintf("%.2fs %s", r.Timestamp, r.Reason)))
		} else {
			b.WriteString(tuiFailStyle.Render("failed"))
		}
		b.WriteString("\n")
	}
	if !m.finished && m.file != "" {
		b.WriteString(tuiFileStyle.Render(fmt.Sprintf("[%d/%d] %s", m.index+1, m.count, m.file)) + "\n")
		b.WriteString(tuiBarStyle.Render(progressBar(m.elapsed, m.total, 30)) + "\n")
	}
	return b.String()
}

func progressBar(elapsed, total float64, width int) string {
	filled := 0
	if total > 0 {
		filled = int(elapsed / total * float64(width))
		if filled > width {
			filled = width
		}
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
