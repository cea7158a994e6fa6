package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProduct(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		price   string
		want    float64
		wantErr error
	}{
		{name: "plain", label: "Milkshake", price: "4.5", want: 4.5},
		{name: "dollar sign", label: "Milkshake", price: "$4.50", want: 4.5},
		{name: "rounds to cents", label: "Tea", price: "1.999", want: 2},
		{name: "blank name", label: "  ", price: "1", wantErr: errNameRequired},
		{name: "negative", label: "Tea", price: "-1", wantErr: errBadPrice},
		{name: "garbage", label: "Tea", price: "cheap", wantErr: errBadPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := parseProduct("7", tt.label, tt.price)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "7", p.ID)
			assert.InDelta(t, tt.want, p.UnitPrice, 1e-9)
		})
	}
}

func TestAddProductThroughForm(t *testing.T) {
	f := newFixture(t)

	m, _ := press(t, f.model, runes("p"), runes("n"))
	require.IsType(t, &productForm{}, m.modal)

	m = typeText(t, m, "Milkshake")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = typeText(t, m, "4.25")
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, m.modal)
	require.NotNil(t, cmd)

	formMsg := cmd()
	require.IsType(t, productFormMsg{}, formMsg)
	next, saveCmd := m.Update(formMsg)
	m = next.(Model)
	require.NotNil(t, saveCmd)
	m = update(t, m, saveCmd())

	assert.Equal(t, "Product Milkshake saved", m.flash)
	assert.Len(t, f.products.Snapshot().Items, 6)
}
