// Package mortgage is the fixed-rate annuity engine: it solves a loan scenario
// for one term, sweeps it across a range of terms, decomposes a solved loan
// into per-period interest and principal, and re-solves a sweep under
// alternate conditions. Every function is pure; nothing is retained between
// calls.
package mortgage

import (
	"fmt"

	"github.com/iwvelando/mortgage-calculator/pkg/loans"
	"github.com/iwvelando/mortgage-calculator/pkg/mathutil"
)

// Solve derives the unknown quantity of p for a term of termYears and fills
// in the summary figures.
func Solve(p Params, termYears int) (ScheduleRecord, error) {
	if err := p.Validate(); err != nil {
		return ScheduleRecord{}, err
	}
	if termYears < 1 {
		return ScheduleRecord{}, invalidParameter("term_years", float64(termYears), "must be at least 1")
	}

	n := loans.TermMonths(termYears)
	var principal, monthlyPayment float64
	switch m := p.Mode.(type) {
	case ByMonthlyPayment:
		monthlyPayment = m.MonthlyPayment
		principal = loans.CalculatePrincipal(monthlyPayment, p.InterestRatePercent, n)
	case ByPropertyValue:
		principal = m.PropertyValue - p.InitialPayment
		monthlyPayment = loans.CalculateMonthlyPayment(principal, p.InterestRatePercent, n)
	}

	// Sum of the scheduled monthly payments. At zero rate this is the
	// principal itself, which keeps the overpayment exactly zero.
	repaid := principal
	if p.InterestRatePercent != 0 {
		repaid = monthlyPayment * float64(n)
	}

	if !mathutil.AllFinite(principal, monthlyPayment, repaid) {
		return ScheduleRecord{}, numericDomain("term_years", float64(termYears),
			fmt.Sprintf("annuity factor is not finite at %g%% over %d months", p.InterestRatePercent, n))
	}

	totalPayment := repaid
	if p.Convention == TotalIncludesInitialPayment {
		totalPayment += p.InitialPayment
	}
	overpayment := repaid - principal

	return ScheduleRecord{
		Years:                       termYears,
		InterestRatePercent:         p.InterestRatePercent,
		Principal:                   principal,
		InitialPayment:              p.InitialPayment,
		PropertyValue:               principal + p.InitialPayment,
		MonthlyPayment:              monthlyPayment,
		TotalPayment:                totalPayment,
		Overpayment:                 overpayment,
		OverpaymentPercentage:       mathutil.SafeRatio(overpayment, principal),
		MinInitialPaymentPercentage: p.MinInitialPaymentPercentage,
	}, nil
}
