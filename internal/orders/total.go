package orders

import "github.com/shopspring/decimal"

// Total sums unitPrice*quantity over the line items.
func Total(items []LineItem) float64 {
	sum := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.UnitPrice).Mul(decimal.NewFromInt(int64(item.Quantity)))
		sum = sum.Add(line)
	}
	return sum.InexactFloat64()
}

// WithTotals returns a copy of o with ProductCount and FinalPrice derived
// from its line items.
func WithTotals(o Order) Order {
	out := o.Clone()
	out.ProductCount = len(out.Products)
	out.FinalPrice = Total(out.Products)
	return out
}

// Resolve joins line references against a catalog. Unknown products keep
// their id, get no name, and contribute nothing to the total.
func Resolve(refs []LineRef, catalog []Product) []LineItem {
	byID := make(map[string]Product, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}
	items := make([]LineItem, 0, len(refs))
	for _, ref := range refs {
		p, ok := byID[ref.ID]
		if !ok {
			items = append(items, LineItem{ID: ref.ID, Quantity: ref.Quantity})
			continue
		}
		items = append(items, LineItem{ID: p.ID, Name: p.Name, UnitPrice: p.UnitPrice, Quantity: ref.Quantity})
	}
	return items
}
