package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// progressMsg carries a completed-window count from the analysis goroutine.
type progressMsg struct {
	windowsDone int
	results     int
}

type doneMsg struct{}

type progressModel struct {
	totalWindows int
	windowsDone  int
	results      int
	start        time.Time
	finished     bool
}

func newProgressModel(totalWindows int) progressModel {
	return progressModel{
		totalWindows: totalWindows,
		start:        time.Now(),
	}
}

func (m progressModel) Init() tea.Cmd {
	return nil
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		m.windowsDone = msg.windowsDone
		m.results = msg.results
		return m, nil
	case doneMsg:
		m.finished = true
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m progressModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("groundscope analysis"))
	b.WriteString("\n\n")

	const width = 40
	frac := 0.0
	if m.totalWindows > 0 {
		frac = float64(m.windowsDone) / float64(m.totalWindows)
	}
	filled := int(frac * width)
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	b.WriteString(barStyle.Render(bar))
	b.WriteString(fmt.Sprintf(" %3.0f%%\n\n", frac*100))

	elapsed := time.Since(m.start).Round(time.Second)
	b.WriteString(fmt.Sprintf("Windows:  %d/%d\n", m.windowsDone, m.totalWindows))
	b.WriteString(fmt.Sprintf("Results:  %d\n", m.results))
	b.WriteString(fmt.Sprintf("Elapsed:  %v\n", elapsed))

	if m.finished {
		b.WriteString("\n" + titleStyle.Render("Complete"))
	} else {
		b.WriteString("\n" + dimStyle.Render("Press q to abort"))
	}
	b.WriteString("\n")

	return b.String()
}
