package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in   string
		want Money
	}{
		{"150.00", 15000},
		{"150", 15000},
		{"0.5", 50},
		{"16.67", 1667},
		{"100.0000", 10000},
		{"-2.25", -225},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMoney(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseMoney("1.234")
	assert.ErrorIs(t, err, ErrInvalidMoney)

	_, err = ParseMoney("")
	assert.ErrorIs(t, err, ErrInvalidMoney)
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "150.00", Money(15000).String())
	assert.Equal(t, "0.05", Money(5).String())
	assert.Equal(t, "-1.50", Money(-150).String())
}

func TestMoney_Scan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan([]byte("1000.50")))
	assert.Equal(t, Money(100050), m)

	require.NoError(t, m.Scan(int64(12)))
	assert.Equal(t, Money(1200), m)

	v, err := Money(5000).Value()
	require.NoError(t, err)
	assert.Equal(t, "50.00", v)
}

func TestMulDivHalfEven(t *testing.T) {
	// 1000 * 1 / 600 = 1.666.. -> 2
	assert.Equal(t, int64(2), MulDivHalfEven(1000, 1, 600))
	// 5 / 2 = 2.5 -> 2 (округление к чётному)
	assert.Equal(t, int64(2), MulDivHalfEven(5, 1, 2))
	// 7 / 2 = 3.5 -> 4
	assert.Equal(t, int64(4), MulDivHalfEven(7, 1, 2))
	assert.Equal(t, int64(150), MulDivHalfEven(90, 100, 60))
}
