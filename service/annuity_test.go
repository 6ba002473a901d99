package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnnuityPayment_WithRate(t *testing.T) {

	rate := MonthlyRate(0.035)
	payment := AnnuityPayment(7_000_000, rate, 360)

	assert.InDelta(t, 31_218.92, payment, 0.01)
}

func TestAnnuityPayment_ZeroRateStraightLine(t *testing.T) {

	assert.Equal(t, 100.0, AnnuityPayment(1200, 0, 12))
}

func TestAnnuityFutureValue_ZeroRateIsPlainSum(t *testing.T) {

	assert.Equal(t, 1200.0, AnnuityFutureValue(100, 0, 12))
}

func TestAnnuityFutureValue_RecurrenceAgreement(t *testing.T) {

	// The closed form must match the step-by-step recurrence it stands for.
	const rate = 0.005
	balance := 0.0
	for i := 0; i < 240; i++ {
		balance = balance*(1+rate) + 250
	}

	assert.InDelta(t, balance, AnnuityFutureValue(250, rate, 240), 1e-5)
}

func TestMonthlyRate_Zero(t *testing.T) {

	assert.Equal(t, 0.0, MonthlyRate(0))
	assert.Equal(t, 1.0, MonthlyGrowthFactor(0))
}
