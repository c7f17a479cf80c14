package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Arunkino/MindHaven-Backend/pkg/types"
)

func TestCalculateAmount(t *testing.T) {
	rate := types.NewMoney(100, 0)
	minimum := types.Money(DefaultMinimumChargeMinor)

	tests := []struct {
		name     string
		duration int
		rate     types.Money
		want     string
	}{
		{"90 minutes at 100/hr", 90 * 60, rate, "150.00"},
		{"10 minutes is floored to minimum", 10 * 60, rate, "50.00"},
		{"zero duration", 0, rate, "50.00"},
		{"rounds to minor units", 3601, types.NewMoney(1000, 0), "1000.28"},
		{"one hour at 1499.99", 3600, types.NewMoney(1499, 99), "1499.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateAmount(tt.duration, tt.rate, minimum).String())
		})
	}
}

func TestCalculateAmount_HalfEven(t *testing.T) {
	// 0.5 минорной единицы округляется к 0, 1.5 - к 2
	assert.Equal(t, "0.00", CalculateAmount(1, types.Money(1800), 0).String())
	assert.Equal(t, "0.02", CalculateAmount(3, types.Money(1800), 0).String())
}

func TestCalculateAmount_Deterministic(t *testing.T) {
	rate := types.NewMoney(750, 50)
	first := CalculateAmount(2345, rate, 0)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, CalculateAmount(2345, rate, 0))
	}
}
