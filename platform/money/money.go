// Package money holds the decimal arithmetic shared by quoting and orders.
package money

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxRate is the flat sales tax applied to quotes and delivery orders.
var TaxRate = decimal.RequireFromString("0.08")

// Zero is a convenience zero amount.
var Zero = decimal.Zero

// Round2 rounds half away from zero to cents.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Tax returns subtotal × TaxRate rounded to cents.
func Tax(subtotal decimal.Decimal) decimal.Decimal {
	return Round2(subtotal.Mul(TaxRate))
}

// LineTotal returns unitPrice × quantity.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// Fixed renders d with exactly two decimals, e.g. for NUMERIC columns.
func Fixed(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Parse reads a decimal string, treating blank or malformed input as zero.
func Parse(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Dollars formats d with a dollar sign and two decimals, e.g. "$2430.00".
func Dollars(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// Amount is a decimal that serializes as a JSON number with two decimals
// and accepts either numbers or numeric strings on input.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps d.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// MarshalJSON renders the amount as a bare number, e.g. 2430.00.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.StringFixed(2)), nil
}

// UnmarshalJSON accepts 12.5, "12.50" and null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		a.Decimal = decimal.Zero
		return nil
	}
	data = bytes.Trim(data, `"`)
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("money: invalid amount %q: %w", string(data), err)
	}
	a.Decimal = d
	return nil
}
