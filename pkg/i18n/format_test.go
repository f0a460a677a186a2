package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatEUR(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"zero", 0, "0,00 €"},
		{"small", 620, "620,00 €"},
		{"thousands", 7440, "7.440,00 €"},
		{"fraction", 1234.5, "1.234,50 €"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatEUR(tt.amount))
		})
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "1.234,5", FormatNumber(1234.5))
	assert.Equal(t, "0", FormatNumber(0))
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "65 Std.", FormatHours(65))
	assert.Equal(t, "12,5 Std.", FormatHours(12.5))
}
