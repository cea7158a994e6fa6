package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/orderdesk/internal/logtail"
)

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Refresh):
		return m, loadLogsCmd(m.logPath)
	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

func (m *Model) updateLogViewport() {
	if !m.ready {
		return
	}
	m.logViewport.Width = max(m.width-4, 1)
	m.logViewport.Height = max(m.height-5, 1)
	m.logViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))
	m.logViewport.SetContent(m.renderLogContent())
}

func (m Model) renderLogContent() string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)

	if m.logErr != nil {
		return bg.Render(m.logErr.Error(), styles.WarningText)
	}
	if len(m.logEntries) == 0 {
		return bg.Render("No log entries yet", styles.MutedText)
	}

	lines := make([]string, 0, len(m.logEntries))
	for _, e := range m.logEntries {
		lines = append(lines, m.renderLogEntry(e, styles, bg))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderLogEntry(e logtail.Entry, styles Styles, bg BgStyle) string {
	if e.Message == "" && e.Level == "" {
		return bg.Render(e.Raw, styles.Text)
	}

	ts := e.Time
	if len(ts) >= 19 {
		ts = strings.Replace(ts[:19], "T", " ", 1)
	}
	parts := []string{
		bg.Render(ts, styles.FaintText),
		bg.Render(padRight(e.Level, 5), m.levelStyle(e.Level, styles)),
	}
	if e.Logger != "" {
		parts = append(parts, bg.Render("["+e.Logger+"]", styles.AccentText))
	}
	parts = append(parts, bg.Render(e.Message, styles.Text))
	for _, f := range e.Fields {
		if f.Key == "app" {
			continue
		}
		parts = append(parts, bg.Render(f.Key+"="+f.Value, styles.MutedText))
	}
	return bg.Join(parts, " ")
}

func (m Model) levelStyle(level string, styles Styles) lipgloss.Style {
	switch level {
	case "ERROR", "DPANIC", "PANIC", "FATAL":
		return styles.DangerText
	case "WARN":
		return styles.WarningText
	case "DEBUG":
		return styles.InfoText
	default:
		return styles.SuccessText
	}
}

func (m Model) renderLogs(height int) string {
	title := "Logs"
	if m.logPath != "" {
		title += " · " + m.logPath
	}
	return m.renderTitledBox(title, m.logViewport.View(), m.width, height, true)
}
