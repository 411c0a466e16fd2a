// Package checkout implements the pricing and validation engine behind the
// storefront's order form. Everything in this package is pure: the handlers
// pass in a draft snapshot and get values back, never errors.
package checkout

import "github.com/shopspring/decimal"

// Pricing constants for the single product this store sells. The unit price
// does not vary by color or payment method, and shipping is a one-threshold
// step function: orders of two or more bottles ship free.
var (
	UnitPrice   = decimal.NewFromInt(35)
	ShippingFee = decimal.NewFromInt(5)
)

const (
	MinQuantity        = 1
	MaxQuantity        = 10
	FreeShippingMinQty = 2
)

// Totals is the priced summary derived from a draft.
type Totals struct {
	UnitPrice               decimal.Decimal
	Subtotal                decimal.Decimal
	ShippingCost            decimal.Decimal
	ShippingDiscountApplied bool
	Total                   decimal.Decimal
}

// ClampQuantity pins q to the orderable range. Moving past either bound is a
// no-op, not an error; the form's steppers rely on that.
func ClampQuantity(q int) int {
	if q < MinQuantity {
		return MinQuantity
	}
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}

// ComputeTotals prices a draft. The caller clamps quantity first; this
// function trusts that invariant and is total over its input.
func ComputeTotals(d Draft) Totals {
	qty := decimal.NewFromInt(int64(d.Quantity))
	subtotal := UnitPrice.Mul(qty)

	shipping := ShippingFee
	discount := d.Quantity >= FreeShippingMinQty
	if discount {
		shipping = decimal.Zero
	}

	return Totals{
		UnitPrice:               UnitPrice,
		Subtotal:                subtotal,
		ShippingCost:            shipping,
		ShippingDiscountApplied: discount,
		Total:                   subtotal.Add(shipping),
	}
}
