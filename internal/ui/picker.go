package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/orderdesk/internal/format"
	"github.com/five82/orderdesk/internal/orders"
)

// productPicker chooses a catalog product and a quantity for one order line.
type productPicker struct {
	title    string
	line     int
	products []orders.Product
	cursor   int
	qty      textinput.Model
	qtyFocus bool
}

// newProductPicker preselects current when it is still in the catalog.
func newProductPicker(title string, line int, products []orders.Product, current orders.LineItem) *productPicker {
	qty := textinput.New()
	qty.Prompt = ""
	qty.CharLimit = 5
	qty.Width = 6
	qty.Validate = digitsOnly
	qty.SetValue("1")
	if current.Quantity > 0 {
		qty.SetValue(strconv.Itoa(current.Quantity))
	}

	p := &productPicker{title: title, line: line, products: products, qty: qty}
	for i, prod := range products {
		if prod.ID == current.ID {
			p.cursor = i
		}
	}
	return p
}

func digitsOnly(s string) error {
	if _, err := strconv.Atoi(s); s != "" && err != nil {
		return err
	}
	return nil
}

// quantity parses the input, clamping anything unusable to 1.
func (p *productPicker) quantity() int {
	n, err := strconv.Atoi(strings.TrimSpace(p.qty.Value()))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func (p *productPicker) toggleFocus() {
	p.qtyFocus = !p.qtyFocus
	if p.qtyFocus {
		p.qty.Focus()
	} else {
		p.qty.Blur()
	}
}

func (p *productPicker) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		p.qty, cmd = p.qty.Update(msg)
		return p, cmd, false
	}

	switch {
	case key.Matches(km, keys.Back):
		return p, nil, true
	case key.Matches(km, keys.NextField):
		p.toggleFocus()
		return p, nil, false
	case key.Matches(km, keys.Confirm):
		if len(p.products) == 0 {
			return p, nil, false
		}
		picked := pickedMsg{line: p.line, product: p.products[p.cursor], quantity: p.quantity()}
		return p, func() tea.Msg { return picked }, true
	}

	if p.qtyFocus {
		var cmd tea.Cmd
		p.qty, cmd = p.qty.Update(msg)
		return p, cmd, false
	}

	switch {
	case key.Matches(km, keys.Down):
		p.cursor = clampRow(p.cursor+1, len(p.products))
	case key.Matches(km, keys.Up):
		p.cursor = clampRow(p.cursor-1, len(p.products))
	case key.Matches(km, keys.Top):
		p.cursor = 0
	case key.Matches(km, keys.Bottom):
		p.cursor = clampRow(len(p.products)-1, len(p.products))
	}
	return p, nil, false
}

func (p *productPicker) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder

	if len(p.products) == 0 {
		b.WriteString(styles.MutedText.Render("The catalog is empty."))
	}
	for i, prod := range p.products {
		row := padRight(prod.Name, 24) + " " + padLeft(format.USD(prod.UnitPrice), 10)
		if i == p.cursor {
			sel := lipgloss.NewStyle().
				Background(lipgloss.Color(theme.SelectionBg)).
				Foreground(lipgloss.Color(theme.SelectionText))
			if p.qtyFocus {
				sel = styles.AccentText
			}
			b.WriteString(sel.Render("› " + row))
		} else {
			b.WriteString(styles.Text.Render("  " + row))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	qtyLabel := styles.MutedText
	if p.qtyFocus {
		qtyLabel = styles.AccentText
	}
	b.WriteString(qtyLabel.Render("Quantity ") + p.qty.View() + "\n\n")
	b.WriteString(styles.FaintText.Render("j/k choose · tab quantity · enter apply · esc cancel"))

	return placeModal(theme, p.title, b.String(), width, height, 50)
}
