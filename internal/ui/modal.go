package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is the interface for modal dialogs.
// Update returns the updated modal, a command, and whether the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// placeModal centers a bordered dialog on the screen.
func placeModal(theme Theme, title, body string, width, height, modalWidth int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(title))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", max(modalWidth-6, 1))))
	b.WriteString("\n\n")
	b.WriteString(body)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(modalWidth).
		Render(b.String())

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}

// confirmModal asks a yes/no question and runs onYes when accepted.
type confirmModal struct {
	title  string
	prompt string
	onYes  tea.Cmd
}

func newConfirm(title, prompt string, onYes tea.Cmd) *confirmModal {
	return &confirmModal{title: title, prompt: prompt, onYes: onYes}
}

func (c *confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case key.Matches(km, keys.Yes):
		return c, c.onYes, true
	case key.Matches(km, keys.No):
		return c, nil, true
	}
	return c, nil, false
}

func (c *confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	body := styles.Text.Render(c.prompt) + "\n\n" +
		styles.DangerText.Render("y") + styles.MutedText.Render(" confirm   ") +
		styles.AccentText.Render("n/esc") + styles.MutedText.Render(" cancel")
	return placeModal(theme, c.title, body, width, height, 50)
}
