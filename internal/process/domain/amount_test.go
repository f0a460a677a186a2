package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"number", `12.5`, 12.5},
		{"integer", `40`, 40},
		{"numeric string", `"99.9"`, 99.9},
		{"german decimal comma", `"1,5"`, 1.5},
		{"null", `null`, 0},
		{"empty string", `""`, 0},
		{"garbage string", `"abc"`, 0},
		{"boolean", `true`, 0},
		{"object", `{"x":1}`, 0},
		{"negative", `-3.25`, -3.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount
			require.NoError(t, json.Unmarshal([]byte(tt.input), &a))
			assert.Equal(t, tt.want, a.Float())
		})
	}
}

func TestAmountUnmarshal_MissingFieldDefaultsToZero(t *testing.T) {
	var costs IstCosts
	require.NoError(t, json.Unmarshal([]byte(`{"hourly_rate":"50"}`), &costs))

	assert.Equal(t, 0.0, costs.PersonnelHours.Float())
	assert.Equal(t, 50.0, costs.HourlyRate.Float())
}

func TestAmountMarshal_NonFiniteBecomesZero(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		data, err := json.Marshal(Amount(v))
		require.NoError(t, err)
		assert.Equal(t, "0", string(data))
	}
}

func TestAmountMarshal_Roundtrip(t *testing.T) {
	data, err := json.Marshal(Amount(1234.5))
	require.NoError(t, err)
	assert.Equal(t, "1234.5", string(data))
}
