package mortgage

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/loans"
	"github.com/iwvelando/mortgage-calculator/pkg/mathutil"
)

// Granularity selects monthly periods or yearly buckets of twelve periods.
type Granularity string

const (
	PerMonth Granularity = "per_month"
	PerYear  Granularity = "per_year"
)

// ParseGranularity accepts per_month/per_year and the short forms
// months/years.
func ParseGranularity(value string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "per_month", "months", "month":
		return PerMonth, nil
	case "per_year", "years", "year":
		return PerYear, nil
	}
	return "", invalidParameter("granularity", 0,
		fmt.Sprintf("expected %s or %s, got %q", PerMonth, PerYear, value))
}

// ResolvedLoan is a loan whose monthly payment is already known.
type ResolvedLoan struct {
	Principal      float64 `json:"principal"`
	MonthlyRate    float64 `json:"monthly_rate"`
	Periods        int     `json:"periods"`
	MonthlyPayment float64 `json:"monthly_payment"`
}

// ResolveLoan extracts the resolved loan behind a solved record.
func ResolveLoan(record ScheduleRecord) ResolvedLoan {
	return ResolvedLoan{
		Principal:      record.Principal,
		MonthlyRate:    loans.MonthlyRate(record.InterestRatePercent),
		Periods:        loans.TermMonths(record.Years),
		MonthlyPayment: record.MonthlyPayment,
	}
}

// PeriodBreakdown is the interest/principal split of one month, or of one
// year when aggregated.
type PeriodBreakdown struct {
	PeriodIndex           int     `json:"period_index"`
	PrincipalPortion      float64 `json:"principal_portion"`
	InterestPortion       float64 `json:"interest_portion"`
	RemainingBalanceAfter float64 `json:"remaining_balance_after"`
}

// Payment is the amount paid over the period.
func (b PeriodBreakdown) Payment() float64 {
	return b.PrincipalPortion + b.InterestPortion
}

// InterestShare is the fraction of the period's payment that is interest.
func (b PeriodBreakdown) InterestShare() float64 {
	return mathutil.SafeRatio(b.InterestPortion, b.Payment())
}

func (l ResolvedLoan) validate() error {
	if !(l.Principal > 0) || math.IsInf(l.Principal, 0) {
		return invalidParameter("principal", l.Principal, "must be a finite value > 0")
	}
	if math.IsNaN(l.MonthlyRate) || math.IsInf(l.MonthlyRate, 0) || l.MonthlyRate < 0 {
		return numericDomain("monthly_rate", l.MonthlyRate, "must be a finite value >= 0")
	}
	if l.Periods < 1 {
		return numericDomain("periods", float64(l.Periods), "must be at least 1")
	}
	if l.Periods > constants.MaxTermMonths {
		return numericDomain("periods", float64(l.Periods),
			fmt.Sprintf("must not exceed %d", constants.MaxTermMonths))
	}
	if !(l.MonthlyPayment > 0) || math.IsInf(l.MonthlyPayment, 0) {
		return invalidParameter("monthly_payment", l.MonthlyPayment, "must be a finite value > 0")
	}
	return nil
}

// Decompose splits every period of loan into interest and principal and
// returns the per-month split, or per-year sums when g is PerYear. A final
// partial year is kept as its own bucket.
//
// The balance after period k is the present value of the n-k payments still
// due, so rounding does not compound from one period to the next.
func Decompose(loan ResolvedLoan, g Granularity) ([]PeriodBreakdown, error) {
	if g != PerMonth && g != PerYear {
		return nil, invalidParameter("granularity", 0, fmt.Sprintf("unknown granularity %q", g))
	}
	if err := loan.validate(); err != nil {
		return nil, err
	}

	repaid := loan.MonthlyPayment * loans.AnnuityFactor(loan.MonthlyRate, loan.Periods)
	if !mathutil.IsFinite(repaid) {
		return nil, numericDomain("periods", float64(loan.Periods),
			"present value of the payments is not finite")
	}
	tolerance := math.Max(constants.ToleranceForComparison, constants.RelativeTolerance*loan.Principal)
	if !mathutil.WithinTolerance(repaid, loan.Principal, tolerance) {
		return nil, invalidParameter("monthly_payment", loan.MonthlyPayment,
			fmt.Sprintf("does not repay the principal over %d periods (repays %.2f of %.2f)",
				loan.Periods, repaid, loan.Principal))
	}

	months := make([]PeriodBreakdown, 0, loan.Periods)
	balance := loan.Principal
	for k := 1; k <= loan.Periods; k++ {
		remaining := 0.0
		if k < loan.Periods {
			remaining = loan.MonthlyPayment * loans.AnnuityFactor(loan.MonthlyRate, loan.Periods-k)
		}
		interest := loans.CalculateInterestPayment(balance, loan.MonthlyRate)
		principalPart := balance - remaining
		if !mathutil.AllFinite(interest, principalPart, remaining) {
			return nil, numericDomain("periods", float64(loan.Periods),
				fmt.Sprintf("value became non-finite at period %d", k))
		}
		months = append(months, PeriodBreakdown{
			PeriodIndex:           k,
			PrincipalPortion:      principalPart,
			InterestPortion:       interest,
			RemainingBalanceAfter: remaining,
		})
		balance = remaining
	}

	if g == PerMonth {
		return months, nil
	}
	return bucketByYear(months), nil
}

func bucketByYear(months []PeriodBreakdown) []PeriodBreakdown {
	years := make([]PeriodBreakdown, 0, (len(months)+constants.MonthsPerYear-1)/constants.MonthsPerYear)
	for start := 0; start < len(months); start += constants.MonthsPerYear {
		end := start + constants.MonthsPerYear
		if end > len(months) {
			end = len(months)
		}
		bucket := PeriodBreakdown{PeriodIndex: len(years) + 1}
		for _, month := range months[start:end] {
			bucket.PrincipalPortion += month.PrincipalPortion
			bucket.InterestPortion += month.InterestPortion
		}
		bucket.RemainingBalanceAfter = months[end-1].RemainingBalanceAfter
		years = append(years, bucket)
	}
	return years
}
