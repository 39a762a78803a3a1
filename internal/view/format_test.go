package view

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"750", "750"},
		{"1000", "1\u00a0000"},
		{"12500", "12\u00a0500"},
		{"1450000", "1\u00a0450\u00a0000"},
		{"2500.5", "2\u00a0500,5"},
		{"-1000", "-1\u00a0000"},
		{"0.75", "0,75"},
		{"-0.5", "-0,5"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "Бесценно", FormatPrice(decimal.NullDecimal{}))
	assert.Equal(t, "2\u00a0200 синапсов", FormatPrice(decimal.NewNullDecimal(decimal.NewFromInt(2200))))
}
