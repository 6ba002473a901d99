package service

import "rentvsbuy/domain"

const (
	MaxHouseSizeSqft = 1_000_000.0 // sanity cap, not a real-world bound
	MaxPricePerSqft  = 10_000_000.0
	MaxRentPerSqft   = 100_000.0
	MaxMortgageYears = 50 // 600 payments
	MaxHorizonYears  = 100

	MonthsPerYear = 12
)

// DefaultParameters returns the reference Hong Kong scenario: a 500 sqft
// flat at 20,000/sqft, renting at 50/sqft, 30% down on a 30-year 3.5%
// mortgage, compared over a 30-year horizon.
func DefaultParameters() domain.SimulationParameters {
	return domain.SimulationParameters{
		HouseSizeSqft:           500,
		HousePricePerSqft:       20_000,
		MonthlyRentPerSqft:      50,
		DownPaymentPct:          0.30,
		MortgageRateAnnual:      0.035,
		MortgageYears:           30,
		InvestmentReturnAnnual:  0.07,
		HouseAppreciationAnnual: 0.01,
		RentIncreaseAnnual:      0.02,
		GovRatePctOfRentAnnual:  0.05,   // approx for HK Rates
		MgmtFeePctOfValueAnnual: 0.0015, // 0.15% p.a. of valuation
		BuyClosingCostPct:       0.05,   // stamp duty + agent + legal
		SellClosingCostPct:      0.01,
		HorizonYears:            30,
		InvestMonthlyDiffs:      true,
	}
}
