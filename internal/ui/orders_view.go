package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/orderdesk/internal/draft"
	"github.com/five82/orderdesk/internal/format"
	"github.com/five82/orderdesk/internal/orders"
)

func (m Model) handleOrdersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.orderSnap.Items
	if row, moved := m.moveRow(msg, m.orderRow, len(items)); moved {
		m.orderRow = row
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshCmd()
	case key.Matches(msg, m.keys.New):
		m.openEditor(draft.New())
		return m, nil
	}

	if len(items) == 0 {
		return m, nil
	}
	selected := items[m.orderRow]

	switch {
	case key.Matches(msg, m.keys.Edit):
		m.openEditor(draft.FromOrder(selected))
		if selected.IsCompleted() {
			m.setFlash("Completed orders are read-only", flashWarn)
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		return m.requestDeleteOrder(selected)
	}
	return m, nil
}

// requestDeleteOrder refuses Completed orders before anything reaches the
// store, then asks for confirmation.
func (m Model) requestDeleteOrder(o orders.Order) (tea.Model, tea.Cmd) {
	if err := o.CanDelete(); err != nil {
		m.setFlash(fmt.Sprintf("Cannot delete %s: %v", o.OrderNumber, err), flashDanger)
		return m, nil
	}
	m.modal = newConfirm(
		"Delete Order",
		fmt.Sprintf("Delete order %s? This cannot be undone.", o.OrderNumber),
		m.deleteOrderCmd(o.ID),
	)
	return m, nil
}

func (m Model) deleteOrderCmd(id string) tea.Cmd {
	ctx, store, log := m.ctx, m.orders, m.log
	return func() tea.Msg {
		err := store.Delete(ctx, id)
		if err != nil {
			log.Warn("delete order", zap.String("id", id), zap.Error(err))
		}
		return orderDeletedMsg{id: id, err: err}
	}
}

// Column widths for the orders table.
const (
	colNumber = 12
	colDate   = 14
	colStatus = 13
	colItems  = 6
	colTotal  = 12
)

func (m Model) renderOrders(height int) string {
	styles := m.theme.Styles()
	title := fmt.Sprintf("Orders (%d)", len(m.orderSnap.Items))
	innerWidth := m.width - 2

	if len(m.orderSnap.Items) == 0 {
		msg := "No orders"
		if m.orderSnap.Loading {
			msg = "Loading orders..."
		} else if m.orderSnap.Error != "" {
			msg = m.orderSnap.Error
		}
		empty := lipgloss.Place(innerWidth, max(height-2, 1), lipgloss.Center, lipgloss.Center,
			styles.MutedText.Background(lipgloss.Color(m.theme.FocusBg)).Render(msg),
			lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.FocusBg)))
		return m.renderTitledBox(title, empty, m.width, height, true)
	}

	bg := NewBgStyle(m.theme.FocusBg)
	lines := []string{bg.Render(orderHeaderRow(), styles.FaintText.Bold(true))}
	for i, o := range m.orderSnap.Items {
		lines = append(lines, m.renderOrderRow(o, innerWidth, i == m.orderRow))
	}
	return m.renderTitledBox(title, strings.Join(lines, "\n"), m.width, height, true)
}

func orderHeaderRow() string {
	return padRight("Order #", colNumber) + " " +
		padRight("Date", colDate) + " " +
		padRight("Status", colStatus) + " " +
		padLeft("Items", colItems) + " " +
		padLeft("Total", colTotal)
}

func (m Model) renderOrderRow(o orders.Order, width int, selected bool) string {
	bgColor := m.theme.FocusBg
	if selected {
		bgColor = m.theme.SelectionBg
	}
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()

	textStyle, mutedStyle := styles.Text, styles.MutedText
	if selected {
		textStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		mutedStyle = textStyle
	}

	badge := styles.StatusStyle(o.Status).Render(padRight(o.Status.Label(), colStatus-2))

	row := bg.Render(padRight(o.OrderNumber, colNumber), textStyle.Bold(true)) + bg.Space() +
		bg.Render(padRight(format.Date(o.Date), colDate), mutedStyle) + bg.Space() +
		badge + bg.Space() +
		bg.Render(padLeft(strconv.Itoa(o.ProductCount), colItems), textStyle) + bg.Space() +
		bg.Render(padLeft(format.USD(o.FinalPrice), colTotal), textStyle)

	return bg.FillLine(row, width)
}
