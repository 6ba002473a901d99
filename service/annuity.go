package service

import "math"

// AnnuityPayment returns the level payment that fully repays principal over
// n periods at periodic rate r. A zero rate degrades to straight-line
// principal/n instead of dividing by zero.
func AnnuityPayment(principal, r float64, n int) float64 {
	if r == 0 {
		return principal / float64(n)
	}
	return principal * r / (1 - math.Pow(1+r, -float64(n)))
}

// AnnuityFutureValue returns the balance after n end-of-period deposits of
// amount, each compounding at periodic rate r until the horizon.
func AnnuityFutureValue(amount, r float64, n int) float64 {
	if r == 0 {
		return amount * float64(n)
	}
	return amount * (math.Pow(1+r, float64(n)) - 1) / r
}

// MonthlyRate converts an annual rate into its geometric monthly
// equivalent, (1+annual)^(1/12) - 1.
func MonthlyRate(annual float64) float64 {
	return math.Pow(1+annual, 1.0/float64(MonthsPerYear)) - 1
}

// MonthlyGrowthFactor converts an annual growth rate into the factor
// applied each month, (1+annual)^(1/12).
func MonthlyGrowthFactor(annual float64) float64 {
	return math.Pow(1+annual, 1.0/float64(MonthsPerYear))
}
