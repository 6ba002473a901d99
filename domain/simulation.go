package domain

import (
	"fmt"
	"time"
)

// SimulationParameters is the full input set for one rent-vs-buy comparison.
// All rate and fraction fields are decimal fractions (0.035, not 3.5).
type SimulationParameters struct {
	HouseSizeSqft           float64 `json:"house_size_sqft"`
	HousePricePerSqft       float64 `json:"house_price_per_sqft"`
	MonthlyRentPerSqft      float64 `json:"monthly_rent_per_sqft"`
	DownPaymentPct          float64 `json:"down_payment_pct"`
	MortgageRateAnnual      float64 `json:"mortgage_rate_annual"`
	MortgageYears           int     `json:"mortgage_years"`
	InvestmentReturnAnnual  float64 `json:"investment_return_annual"`
	HouseAppreciationAnnual float64 `json:"house_appreciation_annual"`
	RentIncreaseAnnual      float64 `json:"rent_increase_annual"`
	GovRatePctOfRentAnnual  float64 `json:"gov_rate_pct_of_rent_annual"`
	MgmtFeePctOfValueAnnual float64 `json:"mgmt_fee_pct_of_value_annual"`
	BuyClosingCostPct       float64 `json:"buy_closing_cost_pct"`
	SellClosingCostPct      float64 `json:"sell_closing_cost_pct"`
	HorizonYears            int     `json:"horizon_years"`
	InvestMonthlyDiffs      bool    `json:"invest_monthly_diffs"`

	// IncludeSchedule adds the per-month snapshot rows to the result.
	IncludeSchedule bool `json:"include_schedule,omitempty"`
}

// EchoedParameters is the parameter set as it appears in a result: sizes
// collapsed into derived money amounts, rates echoed as given.
type EchoedParameters struct {
	HousePrice              float64 `json:"house_price"`
	MonthlyRent             float64 `json:"monthly_rent"`
	DownPaymentPct          float64 `json:"down_payment_pct"`
	MortgageRateAnnual      float64 `json:"mortgage_rate_annual"`
	MortgageYears           int     `json:"mortgage_years"`
	InvestmentReturnAnnual  float64 `json:"investment_return_annual"`
	HouseAppreciationAnnual float64 `json:"house_appreciation_annual"`
	RentIncreaseAnnual      float64 `json:"rent_increase_annual"`
	GovRatePctOfRentAnnual  float64 `json:"gov_rate_pct_of_rent_annual"`
	MgmtFeePctOfValueAnnual float64 `json:"mgmt_fee_pct_of_value_annual"`
	BuyClosingCostPct       float64 `json:"buy_closing_cost_pct"`
	SellClosingCostPct      float64 `json:"sell_closing_cost_pct"`
	HorizonYears            int     `json:"horizon_years"`
	InvestMonthlyDiffs      bool    `json:"invest_monthly_diffs"`
}

// SimulationDetails carries every terminal diagnostic. None of these feed
// the buy/rent comparison; they exist for reporting and regression checks.
type SimulationDetails struct {
	DownPayment              float64 `json:"down_payment"`
	LoanPrincipal            float64 `json:"loan_principal"`
	BuyClosingCost           float64 `json:"buy_closing_cost"`
	MonthlyMortgagePayment   float64 `json:"monthly_mortgage_payment"`
	PriceToRentRatio         float64 `json:"price_to_rent_ratio"`
	RemainingMortgageBalance float64 `json:"remaining_mortgage_balance"`
	PropertyValueEnd         float64 `json:"property_value_end"`
	MonthlyRentEnd           float64 `json:"monthly_rent_end"`
	SaleClosingCost          float64 `json:"sale_closing_cost"`
	OwnerEquityRealized      float64 `json:"owner_equity_realized"`
	OwnerSideInvestEnd       float64 `json:"owner_side_invest_end"`
	RenterInvestEnd          float64 `json:"renter_invest_end"`
	TotalOwnerCashOut        float64 `json:"total_owner_cash_out"`
	TotalRenterCashOut       float64 `json:"total_renter_cash_out"`
}

// MonthlySnapshot is one row of the optional month-by-month schedule,
// captured at the end of each simulated month.
type MonthlySnapshot struct {
	Month            int     `json:"month"`
	RemainingBalance float64 `json:"remaining_balance"`
	PropertyValue    float64 `json:"property_value"`
	MarketRent       float64 `json:"market_rent"`
	OwnerCost        float64 `json:"owner_cost"`
	RenterCost       float64 `json:"renter_cost"`
	OwnerSideInvest  float64 `json:"owner_side_invest"`
	RenterInvest     float64 `json:"renter_invest"`
}

// SimulationResult is the end-of-horizon comparison. NetAdvantageBuy is
// positive when buying wins, negative when renting wins.
type SimulationResult struct {
	Params          EchoedParameters  `json:"params"`
	Months          int               `json:"months"`
	BuyNetWorth     float64           `json:"buy_net_worth"`
	RentNetWorth    float64           `json:"rent_net_worth"`
	NetAdvantageBuy float64           `json:"net_advantage_buy"`
	Details         SimulationDetails `json:"details"`
	Schedule        []MonthlySnapshot `json:"schedule,omitempty"`
}

// SimulationRecord pairs a simulation request with its result in the run
// history.
type SimulationRecord struct {
	Params    SimulationParameters `json:"params"`
	Result    SimulationResult     `json:"result"`
	CreatedAt time.Time            `json:"created_at"`
}

// Verdict formats the comparison outcome for display.
func (r SimulationResult) Verdict() string {
	switch {
	case r.NetAdvantageBuy > 0:
		return fmt.Sprintf("BUY better by $%.0f", r.NetAdvantageBuy)
	case r.NetAdvantageBuy < 0:
		return fmt.Sprintf("RENT better by $%.0f", -r.NetAdvantageBuy)
	default:
		return "Exact tie between buying and renting"
	}
}
