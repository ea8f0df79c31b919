package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateTaxes(t *testing.T) {
	tests := []struct {
		name     string
		country  string
		state    string
		subtotal string
		sgst     string
		cgst     string
		igst     string
	}{
		{
			name:     "Gujarat customer gets SGST and CGST at 9 percent each",
			country:  "India",
			state:    "Gujarat",
			subtotal: "25.00",
			sgst:     "2.25",
			cgst:     "2.25",
			igst:     "0",
		},
		{
			name:     "comparison is case-insensitive",
			country:  "INDIA",
			state:    "gujarat",
			subtotal: "100",
			sgst:     "9",
			cgst:     "9",
			igst:     "0",
		},
		{
			name:     "other Indian state gets IGST at 18 percent",
			country:  "India",
			state:    "Kerala",
			subtotal: "25.00",
			sgst:     "0",
			cgst:     "0",
			igst:     "4.50",
		},
		{
			name:     "India with empty state gets IGST",
			country:  "India",
			state:    "",
			subtotal: "100",
			sgst:     "0",
			cgst:     "0",
			igst:     "18",
		},
		{
			name:     "foreign customer pays no GST",
			country:  "Germany",
			state:    "Bavaria",
			subtotal: "25.00",
			sgst:     "0",
			cgst:     "0",
			igst:     "0",
		},
		{
			name:     "empty country pays no GST",
			country:  "",
			state:    "Gujarat",
			subtotal: "25.00",
			sgst:     "0",
			cgst:     "0",
			igst:     "0",
		},
		{
			name:     "zero subtotal yields zero taxes",
			country:  "India",
			state:    "Gujarat",
			subtotal: "0",
			sgst:     "0",
			cgst:     "0",
			igst:     "0",
		},
		{
			name:     "amounts are rounded to two decimal places",
			country:  "India",
			state:    "Gujarat",
			subtotal: "10.01",
			sgst:     "0.90",
			cgst:     "0.90",
			igst:     "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subtotal := decimal.RequireFromString(tt.subtotal)
			breakdown := CalculateTaxes(tt.country, tt.state, subtotal)

			assert.True(t, breakdown.SGST.Equal(decimal.RequireFromString(tt.sgst)),
				"sgst: got %s, want %s", breakdown.SGST, tt.sgst)
			assert.True(t, breakdown.CGST.Equal(decimal.RequireFromString(tt.cgst)),
				"cgst: got %s, want %s", breakdown.CGST, tt.cgst)
			assert.True(t, breakdown.IGST.Equal(decimal.RequireFromString(tt.igst)),
				"igst: got %s, want %s", breakdown.IGST, tt.igst)
		})
	}
}

func TestTaxBreakdownTotal(t *testing.T) {
	subtotal := decimal.RequireFromString("25.00")
	breakdown := CalculateTaxes("India", "Gujarat", subtotal)

	total := breakdown.Total(subtotal)
	assert.True(t, total.Equal(decimal.RequireFromString("29.50")),
		"total: got %s, want 29.50", total)

	// Total must always equal subtotal + sgst + cgst + igst
	sum := subtotal.Add(breakdown.SGST).Add(breakdown.CGST).Add(breakdown.IGST)
	assert.True(t, total.Equal(sum))
}
