package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/orderdesk/internal/draft"
	"github.com/five82/orderdesk/internal/format"
	"github.com/five82/orderdesk/internal/orders"
)

type editorFocus int

const (
	focusNumber editorFocus = iota
	focusLines
)

// editor is the order form: a draft plus the widgets that edit it.
type editor struct {
	draft  *draft.Draft
	number textinput.Model
	focus  editorFocus
	line   int
	saving bool
}

func newEditor(d *draft.Draft) *editor {
	ti := textinput.New()
	ti.Placeholder = "ORD-000"
	ti.CharLimit = 32
	ti.Prompt = ""
	ti.SetValue(d.OrderNumber())

	e := &editor{draft: d, number: ti}
	if d.Frozen() {
		e.focus = focusLines
	} else {
		e.number.Focus()
	}
	return e
}

func (e *editor) setFocus(f editorFocus) {
	if f == focusNumber && e.draft.Frozen() {
		f = focusLines
	}
	e.focus = f
	if f == focusNumber {
		e.number.Focus()
	} else {
		e.number.Blur()
	}
}

// updateInput feeds msg to the order-number field and mirrors the value into
// the draft.
func (e *editor) updateInput(msg tea.Msg) tea.Cmd {
	if e.focus != focusNumber {
		return nil
	}
	var cmd tea.Cmd
	e.number, cmd = e.number.Update(msg)
	if err := e.draft.SetOrderNumber(e.number.Value()); err != nil {
		e.number.SetValue(e.draft.OrderNumber())
	}
	return cmd
}

func (m *Model) openEditor(d *draft.Draft) {
	m.editor = newEditor(d)
	m.currentView = ViewEditor
	m.flash = ""
}

func (m *Model) closeEditor() {
	m.editor = nil
	m.currentView = ViewOrders
}

func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := m.editor
	if e == nil {
		m.currentView = ViewOrders
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		m.closeEditor()
		return m, nil
	case key.Matches(msg, m.keys.Save):
		return m.saveDraft()
	case key.Matches(msg, m.keys.NextField):
		if e.focus == focusNumber {
			e.setFocus(focusLines)
		} else {
			e.setFocus(focusNumber)
		}
		return m, nil
	}

	if e.focus == focusNumber {
		if key.Matches(msg, m.keys.Confirm) {
			e.setFocus(focusLines)
			return m, nil
		}
		return m, e.updateInput(msg)
	}

	lines := e.draft.Lines()
	if row, moved := m.moveRow(msg, e.line, len(lines)); moved {
		e.line = row
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.CycleStatus):
		m.reportDraftErr(e.draft.CycleStatus())
		if e.draft.Frozen() {
			e.setFocus(focusLines)
		}
		return m, nil
	case key.Matches(msg, m.keys.AddLine):
		if m.reportDraftErr(m.frozenErr()) {
			return m, nil
		}
		m.modal = newProductPicker("Add Product", -1, m.productSnap.Items, orders.LineItem{})
		return m, nil
	case key.Matches(msg, m.keys.Edit):
		if len(lines) == 0 || m.reportDraftErr(m.frozenErr()) {
			return m, nil
		}
		m.modal = newProductPicker("Edit Product", e.line, m.productSnap.Items, lines[e.line])
		return m, nil
	case key.Matches(msg, m.keys.RemoveLine):
		if len(lines) == 0 || m.reportDraftErr(m.frozenErr()) {
			return m, nil
		}
		idx := e.line
		m.modal = newConfirm(
			"Remove Product",
			"Are you sure you want to remove this product from the order?",
			func() tea.Msg { return removeLineMsg{index: idx} },
		)
		return m, nil
	}
	return m, nil
}

func (m Model) frozenErr() error {
	if m.editor != nil && m.editor.draft.Frozen() {
		return orders.ErrOrderCompleted
	}
	return nil
}

// reportDraftErr flashes err and reports whether there was one.
func (m *Model) reportDraftErr(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, orders.ErrOrderCompleted):
		m.setFlash("Completed orders cannot be changed", flashWarn)
	case errors.Is(err, draft.ErrOrderNumberRequired):
		m.setFlash("Order number is required", flashWarn)
	default:
		m.setFlash(err.Error(), flashDanger)
	}
	return true
}

type removeLineMsg struct{ index int }

type pickedMsg struct {
	line     int // -1 appends
	product  orders.Product
	quantity int
}

func (m *Model) applyPicked(msg pickedMsg) {
	if m.editor == nil {
		return
	}
	d := m.editor.draft
	if msg.line < 0 {
		if !m.reportDraftErr(d.AddLine(msg.product, msg.quantity)) {
			m.editor.line = d.ProductCount() - 1
		}
		return
	}
	m.reportDraftErr(d.SetLine(msg.line, msg.product, msg.quantity))
}

func (m *Model) applyRemoveLine(msg removeLineMsg) {
	if m.editor == nil {
		return
	}
	if !m.reportDraftErr(m.editor.draft.RemoveLine(msg.index)) {
		m.editor.line = clampRow(m.editor.line, m.editor.draft.ProductCount())
	}
}

func (m Model) saveDraft() (tea.Model, tea.Cmd) {
	e := m.editor
	if e.saving {
		return m, nil
	}
	in, err := e.draft.Input()
	if m.reportDraftErr(err) {
		return m, nil
	}
	e.saving = true

	ctx, store, log := m.ctx, m.orders, m.log
	created := e.draft.IsNew()
	return m, func() tea.Msg {
		var (
			saved orders.Order
			err   error
		)
		if created {
			saved, err = store.Add(ctx, in)
		} else {
			saved, err = store.Update(ctx, in)
		}
		if err != nil {
			log.Warn("save order", zap.String("order_number", in.OrderNumber), zap.Error(err))
		}
		return orderSavedMsg{order: saved, created: created, err: err}
	}
}

func (m Model) handleOrderSaved(msg orderSavedMsg) (tea.Model, tea.Cmd) {
	if m.editor != nil {
		m.editor.saving = false
	}
	if msg.err != nil {
		m.setFlash(m.orders.Snapshot().Error, flashDanger)
		return m, nil
	}
	if m.editor != nil {
		m.closeEditor()
	}
	verb := "updated"
	if msg.created {
		verb = "created"
	}
	m.setFlash(fmt.Sprintf("Order %s %s", msg.order.OrderNumber, verb), flashInfo)
	return m, nil
}

func (m Model) renderEditor(height int) string {
	e := m.editor
	d := e.draft
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)

	title := "Add Order"
	if !d.IsNew() {
		title = "Edit Order " + d.OrderNumber()
	}

	label := func(s string) string { return bg.Render(padRight(s, 15), styles.MutedText) }

	var b strings.Builder
	numberField := e.number.View()
	if d.Frozen() {
		numberField = bg.Render(d.OrderNumber(), styles.FaintText)
	}
	b.WriteString(label("Order number") + numberField + "\n")
	b.WriteString(label("Status") + m.theme.Styles().StatusStyle(d.Status()).Render(d.Status().Label()) +
		bg.Spaces(2) + bg.Render("s to change", styles.FaintText) + "\n")
	b.WriteString(label("Product count") + bg.Render(strconv.Itoa(d.ProductCount()), styles.Text) + "\n")
	b.WriteString(label("Final price") + bg.Render(format.USD(d.FinalPrice()), styles.Text.Bold(true)) + "\n")

	switch {
	case d.Locked():
		b.WriteString(bg.Render("This order is completed and read-only.", styles.WarningText) + "\n")
	case d.Frozen():
		b.WriteString(bg.Render("Completed: products and order number are frozen.", styles.WarningText) + "\n")
	default:
		b.WriteString("\n")
	}
	b.WriteString("\n")

	header := padRight("ID", 6) + " " + padRight("Name", 24) + " " +
		padLeft("Unit", 10) + " " + padLeft("Qty", 5) + " " + padLeft("Total", 12)
	b.WriteString(bg.Render(header, styles.FaintText.Bold(true)) + "\n")

	lines := d.Lines()
	if len(lines) == 0 {
		b.WriteString(bg.Render("No products yet. Press a to add one.", styles.MutedText))
	}
	for i, l := range lines {
		row := padRight(l.ID, 6) + " " + padRight(l.Name, 24) + " " +
			padLeft(format.USD(l.UnitPrice), 10) + " " + padLeft(strconv.Itoa(l.Quantity), 5) + " " +
			padLeft(format.USD(l.UnitPrice*float64(l.Quantity)), 12)
		if e.focus == focusLines && i == e.line {
			sel := NewBgStyle(m.theme.SelectionBg)
			b.WriteString(sel.FillLine(sel.Render(row,
				lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))), m.width-2))
		} else {
			b.WriteString(bg.Render(row, styles.Text))
		}
		b.WriteString("\n")
	}

	return m.renderTitledBox(title, b.String(), m.width, height, true)
}
