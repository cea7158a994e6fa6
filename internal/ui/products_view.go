package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/five82/orderdesk/internal/format"
	"github.com/five82/orderdesk/internal/orders"
)

func (m Model) handleProductsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.productSnap.Items
	if row, moved := m.moveRow(msg, m.productRow, len(items)); moved {
		m.productRow = row
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshCmd()
	case key.Matches(msg, m.keys.New):
		m.modal = newProductForm(orders.Product{}, true)
		return m, textinput.Blink
	}

	if len(items) == 0 {
		return m, nil
	}
	selected := items[m.productRow]

	switch {
	case key.Matches(msg, m.keys.Edit):
		m.modal = newProductForm(selected, false)
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Delete):
		m.modal = newConfirm(
			"Delete Product",
			fmt.Sprintf("Delete %s from the catalog? Existing orders keep their copy.", selected.Name),
			m.deleteProductCmd(selected.ID),
		)
		return m, nil
	}
	return m, nil
}

func (m Model) saveProductCmd(p orders.Product, isNew bool) tea.Cmd {
	ctx, store, log := m.ctx, m.products, m.log
	return func() tea.Msg {
		var (
			saved orders.Product
			err   error
		)
		if isNew {
			saved, err = store.Add(ctx, p)
		} else {
			saved, err = store.Update(ctx, p)
		}
		if err != nil {
			log.Warn("save product", zap.String("name", p.Name), zap.Error(err))
		}
		return productSavedMsg{product: saved, err: err}
	}
}

func (m Model) deleteProductCmd(id string) tea.Cmd {
	ctx, store, log := m.ctx, m.products, m.log
	return func() tea.Msg {
		err := store.Delete(ctx, id)
		if err != nil {
			log.Warn("delete product", zap.String("id", id), zap.Error(err))
		}
		return productDeletedMsg{id: id, err: err}
	}
}

func (m Model) renderProducts(height int) string {
	styles := m.theme.Styles()
	title := fmt.Sprintf("Products (%d)", len(m.productSnap.Items))
	if m.productSnap.Offline {
		title += " · offline"
	}
	innerWidth := m.width - 2
	bg := NewBgStyle(m.theme.FocusBg)

	if len(m.productSnap.Items) == 0 {
		msg := "No products"
		if m.productSnap.Loading {
			msg = "Loading products..."
		}
		return m.renderTitledBox(title, bg.Render(msg, styles.MutedText), m.width, height, true)
	}

	header := padRight("ID", 16) + " " + padRight("Name", 28) + " " + padLeft("Unit price", 12)
	lines := []string{bg.Render(header, styles.FaintText.Bold(true))}
	for i, p := range m.productSnap.Items {
		row := padRight(p.ID, 16) + " " + padRight(p.Name, 28) + " " + padLeft(format.USD(p.UnitPrice), 12)
		if i == m.productRow {
			sel := NewBgStyle(m.theme.SelectionBg)
			lines = append(lines, sel.FillLine(
				sel.Render(row, lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))), innerWidth))
			continue
		}
		lines = append(lines, bg.FillLine(bg.Render(row, styles.Text), innerWidth))
	}
	return m.renderTitledBox(title, strings.Join(lines, "\n"), m.width, height, true)
}

type productFormMsg struct {
	product orders.Product
	isNew   bool
}

// productForm edits a catalog entry's name and unit price.
type productForm struct {
	id     string
	isNew  bool
	inputs [2]textinput.Model // name, price
	focus  int
	err    string
}

func newProductForm(p orders.Product, isNew bool) *productForm {
	name := textinput.New()
	name.Placeholder = "Product name"
	name.CharLimit = 64
	name.SetValue(p.Name)
	name.Focus()

	price := textinput.New()
	price.Placeholder = "0.00"
	price.CharLimit = 12
	if !isNew {
		price.SetValue(decimal.NewFromFloat(p.UnitPrice).StringFixed(2))
	}

	return &productForm{id: p.ID, isNew: isNew, inputs: [2]textinput.Model{name, price}}
}

var (
	errNameRequired = errors.New("name is required")
	errBadPrice     = errors.New("unit price must be a non-negative amount")
)

// parseProduct validates the form. Prices are rounded to cents.
func parseProduct(id, name, price string) (orders.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return orders.Product{}, errNameRequired
	}
	amount, err := decimal.NewFromString(strings.TrimPrefix(strings.TrimSpace(price), "$"))
	if err != nil || amount.IsNegative() {
		return orders.Product{}, errBadPrice
	}
	return orders.Product{ID: id, Name: name, UnitPrice: amount.Round(2).InexactFloat64()}, nil
}

func (f *productForm) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
		return f, cmd, false
	}

	switch {
	case key.Matches(km, keys.Back):
		return f, nil, true
	case key.Matches(km, keys.NextField):
		f.inputs[f.focus].Blur()
		f.focus = (f.focus + 1) % len(f.inputs)
		return f, f.inputs[f.focus].Focus(), false
	case key.Matches(km, keys.Confirm):
		if f.focus == 0 {
			f.inputs[0].Blur()
			f.focus = 1
			return f, f.inputs[1].Focus(), false
		}
		p, err := parseProduct(f.id, f.inputs[0].Value(), f.inputs[1].Value())
		if err != nil {
			f.err = err.Error()
			return f, nil, false
		}
		out := productFormMsg{product: p, isNew: f.isNew}
		return f, func() tea.Msg { return out }, true
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	f.err = ""
	return f, cmd, false
}

func (f *productForm) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	title := "Edit Product"
	if f.isNew {
		title = "Add Product"
	}

	labels := [2]string{"Name", "Unit price"}
	var b strings.Builder
	for i, in := range f.inputs {
		labelStyle := styles.MutedText
		if i == f.focus {
			labelStyle = styles.AccentText
		}
		b.WriteString(labelStyle.Render(padRight(labels[i], 12)) + in.View() + "\n")
	}
	if f.err != "" {
		b.WriteString("\n" + styles.DangerText.Render(f.err) + "\n")
	}
	b.WriteString("\n" + styles.FaintText.Render("tab next field · enter save · esc cancel"))
	return placeModal(theme, title, b.String(), width, height, 50)
}
