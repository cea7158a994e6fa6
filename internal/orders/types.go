package orders

import (
	"errors"
	"strings"
	"time"
)

// ErrOrderCompleted is returned when a caller tries to change or delete a
// completed order.
var ErrOrderCompleted = errors.New("order is completed")

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "InProgress"
	StatusCompleted  Status = "Completed"
)

var statusOrder = []Status{StatusPending, StatusInProgress, StatusCompleted}

// Statuses returns every status in display order.
func Statuses() []Status {
	out := make([]Status, len(statusOrder))
	copy(out, statusOrder)
	return out
}

// Normalize maps empty or unknown-case values onto the canonical status,
// defaulting to Pending.
func (s Status) Normalize() Status {
	trimmed := strings.TrimSpace(string(s))
	for _, known := range statusOrder {
		if strings.EqualFold(trimmed, string(known)) {
			return known
		}
	}
	if strings.EqualFold(strings.ReplaceAll(trimmed, " ", ""), string(StatusInProgress)) {
		return StatusInProgress
	}
	return StatusPending
}

// Label returns the human readable form ("In Progress").
func (s Status) Label() string {
	if s.Normalize() == StatusInProgress {
		return "In Progress"
	}
	return string(s.Normalize())
}

// Next cycles Pending -> InProgress -> Completed -> Pending.
func (s Status) Next() Status {
	current := s.Normalize()
	for i, known := range statusOrder {
		if known == current {
			return statusOrder[(i+1)%len(statusOrder)]
		}
	}
	return StatusPending
}

// Product mirrors a catalog entry.
type Product struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
}

// LineItem is a product snapshot embedded in an order.
type LineItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

// LineFromProduct copies name and price out of the catalog entry.
func LineFromProduct(p Product, quantity int) LineItem {
	if quantity < 1 {
		quantity = 1
	}
	return LineItem{ID: p.ID, Name: p.Name, UnitPrice: p.UnitPrice, Quantity: quantity}
}

// Order is the transport and display shape of an order.
type Order struct {
	ID           string     `json:"id"`
	OrderNumber  string     `json:"orderNumber"`
	Date         string     `json:"date"`
	Status       Status     `json:"status"`
	Products     []LineItem `json:"products"`
	ProductCount int        `json:"productCount"`
	FinalPrice   float64    `json:"finalPrice"`
}

// IsCompleted reports whether the order is frozen.
func (o Order) IsCompleted() bool {
	return o.Status.Normalize() == StatusCompleted
}

// CanDelete returns ErrOrderCompleted for completed orders.
func (o Order) CanDelete() error {
	if o.IsCompleted() {
		return ErrOrderCompleted
	}
	return nil
}

// CanEdit returns ErrOrderCompleted for completed orders.
func (o Order) CanEdit() error {
	return o.CanDelete()
}

// ParsedDate returns the order date as time.Time when possible.
func (o Order) ParsedDate() time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, o.Date); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Clone returns a deep copy so callers can mutate line items freely.
func (o Order) Clone() Order {
	dup := o
	if o.Products != nil {
		dup.Products = make([]LineItem, len(o.Products))
		copy(dup.Products, o.Products)
	}
	return dup
}

// LineRef is the trimmed line item sent to the API.
type LineRef struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// OrderInput is the create/update payload. Names and prices are resolved on
// the server side.
type OrderInput struct {
	ID          string    `json:"id,omitempty"`
	OrderNumber string    `json:"orderNumber"`
	Status      Status    `json:"status"`
	Products    []LineRef `json:"products"`
}

// InputFromOrder trims an order down to its payload.
func InputFromOrder(o Order) OrderInput {
	refs := make([]LineRef, 0, len(o.Products))
	for _, item := range o.Products {
		refs = append(refs, LineRef{ID: item.ID, Quantity: item.Quantity})
	}
	return OrderInput{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		Status:      o.Status.Normalize(),
		Products:    refs,
	}
}
