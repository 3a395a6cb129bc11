// Package discount applies quantity-based discount tiers to cart and sale lines.
package discount

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// MaxQuantity is the largest number of identical items a single line may carry.
	MaxQuantity = 20
	// MinDiscountQuantity is the smallest quantity that earns any discount.
	MinDiscountQuantity = 4

	// Code identifies discount rejections for the HTTP layer.
	Code = "DiscountPercent"
)

var hundred = decimal.NewFromInt(100)

// LineItem is the part of a cart product or sale item the engine reads and writes.
type LineItem struct {
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	DiscountPercent decimal.Decimal `json:"discount"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
}

// Kind classifies a rejected quantity.
type Kind string

const (
	QuantityTooHigh     Kind = "QuantityTooHigh"
	NoDiscountEligible  Kind = "NoDiscountEligible"
	QuantityNotPositive Kind = "QuantityNotPositive"
)

// RejectionError is returned when a quantity violates the selling limits.
type RejectionError struct {
	Kind     Kind
	Code     string
	Reason   string
	Quantity int
}

func (e RejectionError) Error() string {
	return fmt.Sprintf("%s: %s (quantity=%d)", e.Code, e.Reason, e.Quantity)
}

type tier struct {
	name    string
	matches func(q int) bool
	percent decimal.Decimal
}

// tiers are evaluated in order; the first match wins.
var tiers = []tier{
	{
		name:    "ten_percent",
		matches: func(q int) bool { return q >= MinDiscountQuantity && q < 10 },
		percent: decimal.NewFromInt(10),
	},
	{
		name:    "twenty_percent",
		matches: func(q int) bool { return q >= 10 && q <= MaxQuantity },
		percent: decimal.NewFromInt(20),
	},
}

type rule struct {
	violated func(q int, hadDiscount bool) bool
	kind     Kind
	reason   string
}

// rules run only when no tier matched, in priority order.
var rules = []rule{
	{
		violated: func(q int, _ bool) bool { return q < 1 },
		kind:     QuantityNotPositive,
		reason:   "quantity must be at least 1",
	},
	{
		violated: func(q int, _ bool) bool { return q > MaxQuantity },
		kind:     QuantityTooHigh,
		reason:   "cannot sell more than 20 identical items",
	},
	{
		violated: func(q int, hadDiscount bool) bool { return q < MinDiscountQuantity && hadDiscount },
		kind:     NoDiscountEligible,
		reason:   "no discount allowed below 4 items",
	},
}

// classify returns the discount percentage earned by quantity q, or zero.
func classify(q int) decimal.Decimal {
	for _, t := range tiers {
		if t.matches(q) {
			return t.percent
		}
	}
	return decimal.Zero
}

// Apply recomputes the discount fields of item for its current quantity.
//
// The fields are reset before anything else, so a rejected item never keeps
// a previous discount. A quantity below 1 is always rejected. A quantity
// below MinDiscountQuantity is only rejected when the item carried a positive
// discount when Apply was called; otherwise it is a plain undiscounted line.
func Apply(item *LineItem) error {
	if item == nil {
		return nil
	}
	hadDiscount := item.DiscountPercent.IsPositive()

	item.DiscountPercent = decimal.Zero
	item.TotalAmount = decimal.Zero

	q := item.Quantity
	if pct := classify(q); pct.IsPositive() {
		item.DiscountPercent = pct
		item.TotalAmount = Total(item.UnitPrice, q, pct)
		return nil
	}

	for _, r := range rules {
		if r.violated(q, hadDiscount) {
			return RejectionError{Kind: r.kind, Code: Code, Reason: r.reason, Quantity: q}
		}
	}

	item.TotalAmount = Total(item.UnitPrice, q, decimal.Zero)
	return nil
}

// Total computes unitPrice * quantity * (1 - percent/100).
func Total(unitPrice decimal.Decimal, quantity int, percent decimal.Decimal) decimal.Decimal {
	gross := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	factor := hundred.Sub(percent).Div(hundred)
	return gross.Mul(factor)
}
