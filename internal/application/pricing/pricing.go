package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sokoerp/pos-api/internal/domain/enum"
)

// Line is one cart line carrying the unit price and tax rate frozen from the
// catalog when the line was added.
type Line struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
	TaxRate   decimal.Decimal // percentage, e.g. 16 for 16%
	Discount  decimal.Decimal // per-line amount
}

// Cart is a by-value cart. Pricing is pure computation: nothing here touches
// storage, so the same cart always prices the same.
type Cart struct {
	Lines        []Line
	Discount     decimal.Decimal // order-level; amount or percent per DiscountType
	DiscountType enum.DiscountType
}

// Totals is the priced result. All figures are rounded to 2dp, which is what
// gets persisted on the committed sale.
type Totals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
	LineTotals     []decimal.Decimal
}

var oneHundred = decimal.NewFromInt(100)

// Compute prices a cart.
//
//	line total = qty x unit price - line discount (floored at zero)
//	subtotal   = sum of line totals
//	tax        = sum of line total x (rate / 100)
//	total      = subtotal - order discount + tax
func Compute(cart Cart) Totals {
	subtotal := decimal.Zero
	tax := decimal.Zero
	lineTotals := make([]decimal.Decimal, 0, len(cart.Lines))

	for _, line := range cart.Lines {
		qty := decimal.NewFromInt(int64(line.Quantity))
		lineSubtotal := qty.Mul(line.UnitPrice).Sub(line.Discount)
		if lineSubtotal.IsNegative() {
			lineSubtotal = decimal.Zero
		}
		lineSubtotal = lineSubtotal.Round(2)

		lineTotals = append(lineTotals, lineSubtotal)
		subtotal = subtotal.Add(lineSubtotal)
		tax = tax.Add(lineSubtotal.Mul(line.TaxRate.Div(oneHundred)))
	}

	discount := cart.Discount
	if cart.DiscountType == enum.DiscountTypePercentage {
		discount = subtotal.Mul(cart.Discount.Div(oneHundred))
	}
	discount = discount.Round(2)

	subtotal = subtotal.Round(2)
	tax = tax.Round(2)
	total := subtotal.Sub(discount).Add(tax).Round(2)

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxAmount:      tax,
		Total:          total,
		LineTotals:     lineTotals,
	}
}
