package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidCurrency(t *testing.T) {
	assert.True(t, ValidCurrency(CurrencyUSD))
	assert.True(t, ValidCurrency(CurrencyEUR))
	assert.True(t, ValidCurrency(CurrencyAUD))
	assert.False(t, ValidCurrency("GBP"))
	assert.False(t, ValidCurrency(""))
}

func TestConvertPrice(t *testing.T) {
	v, err := ConvertPrice(100, CurrencyUSD)
	require.NoError(t, err)
	assert.InDelta(t, 100, v, 0.001)

	v, err = ConvertPrice(100, CurrencyEUR)
	require.NoError(t, err)
	assert.InDelta(t, 92, v, 0.001)

	v, err = ConvertPrice(100, CurrencyAUD)
	require.NoError(t, err)
	assert.InDelta(t, 152, v, 0.001)

	_, err = ConvertPrice(100, "GBP")
	assert.Error(t, err)
}
