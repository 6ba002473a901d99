package service

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"rentvsbuy/domain"
	"rentvsbuy/repository"
)

type SimulationService struct {
	repo  repository.SimulationRepository
	cache repository.CacheRepository
	log   zerolog.Logger
}

// NewSimulationService creates a new SimulationService with the given
// history repository and result cache.
func NewSimulationService(
	repo repository.SimulationRepository,
	cache repository.CacheRepository,
	log zerolog.Logger,
) *SimulationService {
	return &SimulationService{
		repo:  repo,
		cache: cache,
		log:   log.With().Str("component", "simulation").Logger(),
	}
}

// derivedInputs holds the normalized quantities feeding the monthly loop.
type derivedInputs struct {
	housePrice     float64
	monthlyRent    float64
	downPayment    float64
	loanPrincipal  float64
	mortgageRate   float64 // geometric monthly rate
	payments       int
	payment        float64 // level monthly mortgage payment
	houseGrowth    float64 // monthly factor
	rentGrowth     float64 // monthly factor
	investRate     float64 // monthly rate
	buyClosingCost float64
}

// simulationState is the loop-owned mutable state. One instance lives for
// the duration of a single run and is discarded after settlement.
type simulationState struct {
	remainingBalance   float64
	propertyValue      float64
	marketRent         float64
	ownerSideInvest    float64
	renterInvest       float64
	totalOwnerCashOut  float64
	totalRenterCashOut float64
}

// Simulate projects both strategies month by month over the horizon and
// returns the end-of-horizon net worth comparison. The computation is pure:
// identical parameters always produce identical results, which is what
// makes the result cache safe.
func (s *SimulationService) Simulate(
	params domain.SimulationParameters,
) (domain.SimulationResult, error) {

	if err := validateParameters(params); err != nil {
		return domain.SimulationResult{}, err
	}

	key, err := cacheKey(params)
	if err == nil {
		if cached, ok := s.cache.Get(key); ok {
			var result domain.SimulationResult
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				return result, nil
			}
			s.log.Warn().Str("key", key).Msg("discarding undecodable cache entry")
		}
	}

	d := normalize(params)
	result := run(params, d)

	if key != "" {
		if encoded, err := json.Marshal(result); err == nil {
			if err := s.cache.Set(key, string(encoded)); err != nil {
				s.log.Warn().Err(err).Msg("failed to cache simulation result")
			}
		}
	}

	// Record the run (no es crítico si falla)
	if err := s.repo.Save(params, result); err != nil {
		s.log.Warn().Err(err).Msg("failed to save simulation run")
	}

	return result, nil
}

// History returns the most recent recorded runs, newest first.
func (s *SimulationService) History(limit int) []domain.SimulationRecord {
	return s.repo.Recent(limit)
}

func validateParameters(p domain.SimulationParameters) error {
	// Validar entrada
	if p.HouseSizeSqft <= 0 {
		return errors.New("invalid house size")
	}
	if p.HouseSizeSqft > MaxHouseSizeSqft {
		return fmt.Errorf("house size exceeds maximum of %.0f sqft", MaxHouseSizeSqft)
	}
	if p.HousePricePerSqft <= 0 {
		return errors.New("invalid price per sqft")
	}
	if p.HousePricePerSqft > MaxPricePerSqft {
		return fmt.Errorf("price per sqft exceeds maximum of %.0f", MaxPricePerSqft)
	}
	if p.MonthlyRentPerSqft <= 0 {
		return errors.New("invalid rent per sqft")
	}
	if p.MonthlyRentPerSqft > MaxRentPerSqft {
		return fmt.Errorf("rent per sqft exceeds maximum of %.0f", MaxRentPerSqft)
	}
	if p.DownPaymentPct < 0 || p.DownPaymentPct > 1 {
		return errors.New("down payment fraction must be between 0 and 1")
	}
	if p.MortgageYears <= 0 {
		return errors.New("invalid mortgage term")
	}
	if p.MortgageYears > MaxMortgageYears {
		return fmt.Errorf("mortgage term exceeds maximum of %d years", MaxMortgageYears)
	}
	if p.HorizonYears <= 0 {
		return errors.New("invalid horizon")
	}
	if p.HorizonYears > MaxHorizonYears {
		return fmt.Errorf("horizon exceeds maximum of %d years", MaxHorizonYears)
	}
	// Annual rates below -100% have no real monthly equivalent.
	for _, rate := range []float64{
		p.MortgageRateAnnual,
		p.InvestmentReturnAnnual,
		p.HouseAppreciationAnnual,
		p.RentIncreaseAnnual,
	} {
		if rate <= -1 {
			return errors.New("annual rate must be greater than -100%")
		}
	}
	for _, frac := range []float64{
		p.GovRatePctOfRentAnnual,
		p.MgmtFeePctOfValueAnnual,
		p.BuyClosingCostPct,
		p.SellClosingCostPct,
	} {
		if frac < 0 {
			return errors.New("fee and closing cost fractions must be non-negative")
		}
	}
	for _, v := range []float64{
		p.HouseSizeSqft, p.HousePricePerSqft, p.MonthlyRentPerSqft,
		p.DownPaymentPct, p.MortgageRateAnnual, p.InvestmentReturnAnnual,
		p.HouseAppreciationAnnual, p.RentIncreaseAnnual,
		p.GovRatePctOfRentAnnual, p.MgmtFeePctOfValueAnnual,
		p.BuyClosingCostPct, p.SellClosingCostPct,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New("parameters must be finite")
		}
	}
	return nil
}

// normalize converts annual rates and one-time inputs into the monthly
// factors and derived money amounts the loop runs on.
func normalize(p domain.SimulationParameters) derivedInputs {
	housePrice := p.HouseSizeSqft * p.HousePricePerSqft
	monthlyRent := p.HouseSizeSqft * p.MonthlyRentPerSqft
	downPayment := housePrice * p.DownPaymentPct
	loanPrincipal := housePrice - downPayment

	mortgageRate := MonthlyRate(p.MortgageRateAnnual)
	payments := p.MortgageYears * MonthsPerYear

	return derivedInputs{
		housePrice:     housePrice,
		monthlyRent:    monthlyRent,
		downPayment:    downPayment,
		loanPrincipal:  loanPrincipal,
		mortgageRate:   mortgageRate,
		payments:       payments,
		payment:        AnnuityPayment(loanPrincipal, mortgageRate, payments),
		houseGrowth:    MonthlyGrowthFactor(p.HouseAppreciationAnnual),
		rentGrowth:     MonthlyGrowthFactor(p.RentIncreaseAnnual),
		investRate:     MonthlyRate(p.InvestmentReturnAnnual),
		buyClosingCost: housePrice * p.BuyClosingCostPct,
	}
}

// run executes the monthly loop and settles the comparison at the horizon.
func run(p domain.SimulationParameters, d derivedInputs) domain.SimulationResult {
	months := p.HorizonYears * MonthsPerYear

	st := simulationState{
		remainingBalance: d.loanPrincipal,
		propertyValue:    d.housePrice,
		marketRent:       d.monthlyRent,
		// The renter keeps the cash the buyer spends upfront.
		renterInvest:      d.downPayment + d.buyClosingCost,
		totalOwnerCashOut: d.downPayment + d.buyClosingCost,
	}

	var schedule []domain.MonthlySnapshot
	if p.IncludeSchedule {
		schedule = make([]domain.MonthlySnapshot, 0, months)
	}

	for m := 0; m < months; m++ {
		// Mortgage service. Scheduled payments continue at the level
		// amount past payoff; the floors pin everything at zero.
		interest := st.remainingBalance * d.mortgageRate
		principal := math.Max(d.payment-interest, 0)
		st.remainingBalance = math.Max(st.remainingBalance-principal, 0)

		mgmtFee := st.propertyValue * p.MgmtFeePctOfValueAnnual / MonthsPerYear
		// Rates charge the full annual fraction against each month's
		// rent, not annual/12. Intentional, see DESIGN.md.
		govRates := st.marketRent * p.GovRatePctOfRentAnnual

		ownerMonthlyCost := d.payment + mgmtFee + govRates
		renterMonthlyCost := st.marketRent

		// Compound the carried-in balances before any new contribution.
		st.ownerSideInvest *= 1 + d.investRate
		st.renterInvest *= 1 + d.investRate

		if p.InvestMonthlyDiffs {
			diff := ownerMonthlyCost - renterMonthlyCost
			if diff > 0 {
				// Renting is cheaper this month.
				st.renterInvest += diff
			} else {
				st.ownerSideInvest += -diff
			}
		}

		st.totalOwnerCashOut += ownerMonthlyCost
		st.totalRenterCashOut += renterMonthlyCost

		if p.IncludeSchedule {
			schedule = append(schedule, domain.MonthlySnapshot{
				Month:            m + 1,
				RemainingBalance: st.remainingBalance,
				PropertyValue:    st.propertyValue,
				MarketRent:       st.marketRent,
				OwnerCost:        ownerMonthlyCost,
				RenterCost:       renterMonthlyCost,
				OwnerSideInvest:  st.ownerSideInvest,
				RenterInvest:     st.renterInvest,
			})
		}

		// Growth lands after this month's costs, visible next month.
		st.propertyValue *= d.houseGrowth
		st.marketRent *= d.rentGrowth
	}

	// Settlement: owner sells, pays selling costs, clears the loan.
	saleProceeds := st.propertyValue
	saleClosingCost := saleProceeds * p.SellClosingCostPct
	ownerEquity := math.Max(saleProceeds-saleClosingCost-st.remainingBalance, 0)

	buyNetWorth := ownerEquity + st.ownerSideInvest
	rentNetWorth := st.renterInvest

	return domain.SimulationResult{
		Params: domain.EchoedParameters{
			HousePrice:              d.housePrice,
			MonthlyRent:             d.monthlyRent,
			DownPaymentPct:          p.DownPaymentPct,
			MortgageRateAnnual:      p.MortgageRateAnnual,
			MortgageYears:           p.MortgageYears,
			InvestmentReturnAnnual:  p.InvestmentReturnAnnual,
			HouseAppreciationAnnual: p.HouseAppreciationAnnual,
			RentIncreaseAnnual:      p.RentIncreaseAnnual,
			GovRatePctOfRentAnnual:  p.GovRatePctOfRentAnnual,
			MgmtFeePctOfValueAnnual: p.MgmtFeePctOfValueAnnual,
			BuyClosingCostPct:       p.BuyClosingCostPct,
			SellClosingCostPct:      p.SellClosingCostPct,
			HorizonYears:            p.HorizonYears,
			InvestMonthlyDiffs:      p.InvestMonthlyDiffs,
		},
		Months:          months,
		BuyNetWorth:     buyNetWorth,
		RentNetWorth:    rentNetWorth,
		NetAdvantageBuy: buyNetWorth - rentNetWorth,
		Details: domain.SimulationDetails{
			DownPayment:              d.downPayment,
			LoanPrincipal:            d.loanPrincipal,
			BuyClosingCost:           d.buyClosingCost,
			MonthlyMortgagePayment:   d.payment,
			PriceToRentRatio:         d.housePrice / (d.monthlyRent * MonthsPerYear),
			RemainingMortgageBalance: st.remainingBalance,
			PropertyValueEnd:         st.propertyValue,
			MonthlyRentEnd:           st.marketRent,
			SaleClosingCost:          saleClosingCost,
			OwnerEquityRealized:      ownerEquity,
			OwnerSideInvestEnd:       st.ownerSideInvest,
			RenterInvestEnd:          st.renterInvest,
			TotalOwnerCashOut:        st.totalOwnerCashOut,
			TotalRenterCashOut:       st.totalRenterCashOut,
		},
		Schedule: schedule,
	}
}

// cacheKey derives a stable key from the canonical JSON of the parameters.
func cacheKey(p domain.SimulationParameters) (string, error) {
	encoded, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(encoded)
	return "rentvsbuy:sim:" + hex.EncodeToString(sum[:]), nil
}
