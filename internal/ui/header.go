package ui

import (
	"strings"

	"github.com/five82/orderdesk/internal/api"
)

const offlineOrdersMessage = "Working in offline mode. Changes won't be saved to the server."

// renderMain stacks header, command bar, content and status line.
func (m Model) renderMain() string {
	contentHeight := max(m.height-3, 3)

	var content string
	switch m.currentView {
	case ViewEditor:
		if m.editor != nil {
			content = m.renderEditor(contentHeight)
		}
	case ViewProducts:
		content = m.renderProducts(contentHeight)
	case ViewLogs:
		content = m.renderLogs(contentHeight)
	default:
		content = m.renderOrders(contentHeight)
	}

	return m.renderHeader() + "\n" + m.renderCommandBar() + "\n" + content + "\n" + m.renderStatusLine()
}

// renderHeader shows the app name, data source, connection state and identity.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("orderdesk", styles.Logo)}

	if m.mode == api.ModeMock {
		parts = append(parts, bg.Render("MOCK DATA", styles.WarningText.Bold(true)))
	} else {
		parts = append(parts, bg.Render("REMOTE", styles.AccentText.Bold(true)))
	}

	switch {
	case m.orderSnap.Offline || m.productSnap.Offline:
		parts = append(parts, bg.Render("○ OFFLINE", styles.DangerText))
	default:
		parts = append(parts, bg.Render("● ONLINE", styles.SuccessText))
	}

	if m.loading() {
		parts = append(parts, bg.Render(m.spinner.View()+" loading", styles.MutedText))
	}

	if id, ok := m.prefs.Identity(); ok && id.Subject != "" {
		parts = append(parts, bg.Render("as "+id.Subject, styles.MutedText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewEditor:
		commands = []cmd{
			{"tab", "Field"},
			{"s", "Status"},
			{"a", "Add"},
			{"enter", "Edit"},
			{"x", "Remove"},
			{"ctrl+s", "Save"},
			{"esc", "Cancel"},
		}
	case ViewProducts:
		commands = []cmd{
			{"n", "New"},
			{"enter", "Edit"},
			{"d", "Delete"},
			{"r", "Reload"},
			{"o", "Orders"},
			{"l", "Logs"},
			{"?", "More"},
		}
	case ViewLogs:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"r", "Reload"},
			{"o", "Orders"},
			{"p", "Products"},
			{"?", "More"},
		}
	default:
		commands = []cmd{
			{"n", "New"},
			{"enter", "Open"},
			{"d", "Delete"},
			{"r", "Reload"},
			{"p", "Products"},
			{"l", "Logs"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

// connectionMessage mirrors the store state: orders first, then products.
func (m Model) connectionMessage() (string, flashKind, bool) {
	switch {
	case m.orderSnap.Offline:
		return offlineOrdersMessage, flashWarn, true
	case m.orderSnap.Error != "":
		return m.orderSnap.Error, flashDanger, true
	case m.productSnap.Offline:
		return m.productSnap.Error, flashWarn, true
	case m.productSnap.Error != "":
		return m.productSnap.Error, flashDanger, true
	}
	return "", flashInfo, false
}

// renderStatusLine shows the last action result, else the connection state.
func (m Model) renderStatusLine() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	text, kind := m.flash, m.flashKind
	if text == "" {
		var ok bool
		if text, kind, ok = m.connectionMessage(); !ok {
			return styles.Footer.Width(m.width).Render("")
		}
	}

	style := styles.MutedText
	switch kind {
	case flashWarn:
		style = styles.WarningText
	case flashDanger:
		style = styles.DangerText
	}
	return styles.Footer.Width(m.width).Render(bg.Render(truncate(text, m.width-2), style))
}
