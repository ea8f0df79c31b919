package services

import (
	"strings"

	"github.com/shopspring/decimal"
)

// GST rates. Intra-state Indian sales (Gujarat, where the business is
// registered) split into SGST + CGST at 9% each; inter-state Indian sales
// carry 18% IGST; exports carry no GST.
var (
	intraStateRate = decimal.NewFromFloat(0.09)
	interStateRate = decimal.NewFromFloat(0.18)
)

const (
	homeCountry = "INDIA"
	homeState   = "GUJARAT"
)

// TaxBreakdown holds the GST components computed for a quotation
type TaxBreakdown struct {
	SGST decimal.Decimal
	CGST decimal.Decimal
	IGST decimal.Decimal
}

// CalculateTaxes computes the GST breakdown for a subtotal given the
// customer's country and state. Comparison is case-insensitive. Amounts
// are rounded to two decimal places.
func CalculateTaxes(country, state string, subtotal decimal.Decimal) TaxBreakdown {
	breakdown := TaxBreakdown{
		SGST: decimal.Zero,
		CGST: decimal.Zero,
		IGST: decimal.Zero,
	}

	if !strings.EqualFold(strings.TrimSpace(country), homeCountry) {
		return breakdown
	}

	if strings.EqualFold(strings.TrimSpace(state), homeState) {
		breakdown.SGST = subtotal.Mul(intraStateRate).Round(2)
		breakdown.CGST = subtotal.Mul(intraStateRate).Round(2)
		return breakdown
	}

	breakdown.IGST = subtotal.Mul(interStateRate).Round(2)
	return breakdown
}

// Total returns subtotal plus all tax components
func (t TaxBreakdown) Total(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Add(t.SGST).Add(t.CGST).Add(t.IGST)
}
