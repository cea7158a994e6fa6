// Package draft holds the working copy of an order while it is edited.
//
// A draft loaded from a Completed order is locked and refuses every change.
// A draft whose working status is Completed refuses line and order-number
// edits but may still change status and be saved, which is how an order is
// marked complete.
package draft

import (
	"errors"
	"fmt"
	"strings"

	"github.com/five82/orderdesk/internal/orders"
)

// ErrOrderNumberRequired is returned by Input when the order number is blank.
var ErrOrderNumberRequired = errors.New("order number is required")

// ErrLineIndex is returned for a line index outside the draft.
var ErrLineIndex = errors.New("line index out of range")

// Draft is an order being created or edited.
type Draft struct {
	id          string
	orderNumber string
	status      orders.Status
	lines       []orders.LineItem
	locked      bool
}

// New returns an empty Pending draft.
func New() *Draft {
	return &Draft{status: orders.StatusPending}
}

// FromOrder starts a draft from an existing order.
func FromOrder(o orders.Order) *Draft {
	c := o.Clone()
	return &Draft{
		id:          c.ID,
		orderNumber: c.OrderNumber,
		status:      c.Status.Normalize(),
		lines:       c.Products,
		locked:      c.IsCompleted(),
	}
}

func (d *Draft) ID() string            { return d.id }
func (d *Draft) IsNew() bool           { return d.id == "" }
func (d *Draft) OrderNumber() string   { return d.orderNumber }
func (d *Draft) Status() orders.Status { return d.status }

// Locked reports whether the source order was already Completed.
func (d *Draft) Locked() bool { return d.locked }

// Frozen reports whether lines and the order number are read-only.
func (d *Draft) Frozen() bool {
	return d.locked || d.status == orders.StatusCompleted
}

// Lines returns a copy of the line items.
func (d *Draft) Lines() []orders.LineItem {
	if len(d.lines) == 0 {
		return nil
	}
	dup := make([]orders.LineItem, len(d.lines))
	copy(dup, d.lines)
	return dup
}

func (d *Draft) ProductCount() int { return len(d.lines) }

func (d *Draft) FinalPrice() float64 { return orders.Total(d.lines) }

func (d *Draft) SetOrderNumber(v string) error {
	if d.Frozen() {
		return orders.ErrOrderCompleted
	}
	d.orderNumber = v
	return nil
}

func (d *Draft) SetStatus(s orders.Status) error {
	if d.locked {
		return orders.ErrOrderCompleted
	}
	d.status = s.Normalize()
	return nil
}

// CycleStatus moves to the next status in display order.
func (d *Draft) CycleStatus() error {
	return d.SetStatus(d.status.Next())
}

// AddLine appends a snapshot of p. Adding the same product twice yields two
// lines.
func (d *Draft) AddLine(p orders.Product, quantity int) error {
	if d.Frozen() {
		return orders.ErrOrderCompleted
	}
	d.lines = append(d.lines, orders.LineFromProduct(p, quantity))
	return nil
}

// SetLine replaces line i with a fresh snapshot of p.
func (d *Draft) SetLine(i int, p orders.Product, quantity int) error {
	if d.Frozen() {
		return orders.ErrOrderCompleted
	}
	if i < 0 || i >= len(d.lines) {
		return fmt.Errorf("set line %d: %w", i, ErrLineIndex)
	}
	d.lines[i] = orders.LineFromProduct(p, quantity)
	return nil
}

func (d *Draft) RemoveLine(i int) error {
	if d.Frozen() {
		return orders.ErrOrderCompleted
	}
	if i < 0 || i >= len(d.lines) {
		return fmt.Errorf("remove line %d: %w", i, ErrLineIndex)
	}
	d.lines = append(d.lines[:i], d.lines[i+1:]...)
	return nil
}

// Input builds the create or update payload.
func (d *Draft) Input() (orders.OrderInput, error) {
	if d.locked {
		return orders.OrderInput{}, orders.ErrOrderCompleted
	}
	number := strings.TrimSpace(d.orderNumber)
	if number == "" {
		return orders.OrderInput{}, ErrOrderNumberRequired
	}
	refs := make([]orders.LineRef, 0, len(d.lines))
	for _, l := range d.lines {
		refs = append(refs, orders.LineRef{ID: l.ID, Quantity: l.Quantity})
	}
	return orders.OrderInput{
		ID:          d.id,
		OrderNumber: number,
		Status:      d.status,
		Products:    refs,
	}, nil
}
