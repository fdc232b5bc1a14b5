package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliveryInfo(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantTime     string
		wantDistance string
	}{
		{"two parts", "25 mins • 3 km", "25 mins", "3 km"},
		{"no-break spaces", "25 mins\u00a0•\u00a02.4 km", "25 mins", "2.4 km"},
		{"surrounding whitespace", "  40 mins   •   7.1 km  ", "40 mins", "7.1 km"},
		{"mojibake separator", "30 mins â€¢ 1.2 km", "30 mins", "1.2 km"},
		{"empty", "", "0 min", "0 km"},
		{"no separator", "25 mins 3 km", "0 min", "0 km"},
		{"too many separators", "25 mins • 3 km • open", "0 min", "0 km"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotTime, gotDistance := DeliveryInfo(tt.input)
			assert.Equal(t, tt.wantTime, gotTime)
			assert.Equal(t, tt.wantDistance, gotDistance)
		})
	}
}

func TestDeliveryFee(t *testing.T) {
	fee, err := DeliveryFee("3 km")
	require.NoError(t, err)
	assert.Equal(t, 15.0, fee)

	fee, err = DeliveryFee("2.4 km")
	require.NoError(t, err)
	assert.InDelta(t, 12.0, fee, 1e-9)

	fee, err = DeliveryFee("0 km")
	require.NoError(t, err)
	assert.Equal(t, 0.0, fee)

	fee, err = DeliveryFee("")
	require.NoError(t, err)
	assert.Equal(t, 0.0, fee)
}

func TestDeliveryFee_Malformed(t *testing.T) {
	for _, distance := range []string{"far km", "inf km", "Infinity km", "-inf km", "NaN km", "1e308 km"} {
		_, err := DeliveryFee(distance)
		require.Error(t, err, distance)
		assert.True(t, errors.Is(err, ErrMalformedDistance), distance)
	}
}
