// Package tui is an interactive issue browser: discovered files on the
// left, the selected file's issues on the right, live-reloading as the
// validator publishes new passes.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rcpassos/rasalint/internal/rules"
	"github.com/rcpassos/rasalint/internal/validator"
	"github.com/sahilm/fuzzy"
)

type reportMsg struct {
	report *validator.Report
}

// Model is the bubbletea model for the issue browser.
type Model struct {
	root    string
	v       *validator.Validator
	reports <-chan *validator.Report

	report   *validator.Report
	paths    []string
	matches  []int
	cursor   int
	filter   textinput.Model
	filterOn bool
	keys     keyMap
	width    int
	height   int
}

// NewModel creates the issue browser. The reports channel carries every
// published validation pass.
func NewModel(root string, v *validator.Validator, reports <-chan *validator.Report) *Model {
	filter := textinput.New()
	filter.Placeholder = "filter files..."
	filter.Prompt = "/ "
	filter.CharLimit = 64
	return &Model{
		root:    root,
		v:       v,
		reports: reports,
		filter:  filter,
		keys:    defaultKeys(),
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.validateCmd(), m.waitForReport())
}

func (m *Model) validateCmd() tea.Cmd {
	return func() tea.Msg {
		m.v.Validate(context.Background())
		return nil
	}
}

func (m *Model) waitForReport() tea.Cmd {
	return func() tea.Msg {
		report, ok := <-m.reports
		if !ok {
			return nil
		}
		return reportMsg{report: report}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case reportMsg:
		m.setReport(msg.report)
		return m, m.waitForReport()

	case tea.KeyMsg:
		if m.filterOn {
			switch msg.String() {
			case "esc":
				m.filterOn = false
				m.filter.Reset()
				m.updateMatches()
				return m, nil
			case "enter":
				m.filterOn = false
				return m, nil
			}
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.updateMatches()
			return m, cmd
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Filter):
			m.filterOn = true
			return m, m.filter.Focus()
		case key.Matches(msg, m.keys.ClearFlt):
			m.filter.Reset()
			m.updateMatches()
		case key.Matches(msg, m.keys.Refresh):
			return m, m.validateCmd()
		}
	}
	return m, nil
}

func (m *Model) setReport(report *validator.Report) {
	m.report = report
	m.paths = m.paths[:0]
	for p := range report.ByFile {
		m.paths = append(m.paths, p)
	}
	sort.Strings(m.paths)
	m.updateMatches()
}

// updateMatches recomputes the visible file list from the filter input.
func (m *Model) updateMatches() {
	query := m.filter.Value()
	if query == "" {
		m.matches = make([]int, len(m.paths))
		for i := range m.paths {
			m.matches[i] = i
		}
	} else {
		rels := make([]string, len(m.paths))
		for i, p := range m.paths {
			rels[i] = m.rel(p)
		}
		found := fuzzy.Find(query, rels)
		m.matches = make([]int, len(found))
		for i, f := range found {
			m.matches[i] = f.Index
		}
	}
	if m.cursor >= len(m.matches) {
		m.cursor = 0
	}
}

func (m *Model) rel(path string) string {
	rel, err := filepath.Rel(m.root, path)
	if err != nil {
		return path
	}
	return rel
}

func (m *Model) selectedPath() string {
	if m.cursor < 0 || m.cursor >= len(m.matches) {
		return ""
	}
	return m.paths[m.matches[m.cursor]]
}

func (m *Model) View() string {
	if m.report == nil {
		return headerStyle.Render("rasalint") + "\n\nvalidating..."
	}

	header := headerStyle.Render(fmt.Sprintf("rasalint · %d issues (%d errors)",
		len(m.report.Issues), m.report.ErrorCount()))

	listWidth := m.width / 3
	if listWidth < 24 {
		listWidth = 24
	}
	detailWidth := m.width - listWidth - 6
	if detailWidth < 20 {
		detailWidth = 20
	}

	left := m.fileList(listWidth)
	right := m.issuePane(detailWidth)
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		paneFocusedStyle.Width(listWidth).Render(left),
		paneStyle.Width(detailWidth).Render(right))

	footer := footerStyle.Render("↑/↓ move · / filter · r revalidate · q quit")
	if m.filterOn {
		footer = footerStyle.Render(m.filter.View())
	}

	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) fileList(width int) string {
	if len(m.matches) == 0 {
		return mutedStyle.Render("no files with issues")
	}
	var b strings.Builder
	for i, idx := range m.matches {
		path := m.paths[idx]
		line := fmt.Sprintf("%s (%d)", m.rel(path), len(m.report.ByFile[path]))
		if len(line) > width {
			line = line[:width]
		}
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) issuePane(width int) string {
	path := m.selectedPath()
	if path == "" {
		return mutedStyle.Render("select a file")
	}
	var b strings.Builder
	for _, issue := range m.report.ByFile[path] {
		b.WriteString(renderIssue(issue, width))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderIssue(issue rules.Issue, width int) string {
	var label string
	switch issue.Severity {
	case rules.SeverityError:
		label = errorStyle.Render("error")
	case rules.SeverityWarning:
		label = warningStyle.Render("warning")
	default:
		label = infoStyle.Render("info")
	}
	msg := issue.Message
	if len(msg) > width-10 && width > 13 {
		msg = msg[:width-13] + "..."
	}
	return fmt.Sprintf("%s %s\n  %s", label, mutedStyle.Render(string(issue.Kind)), msg)
}
