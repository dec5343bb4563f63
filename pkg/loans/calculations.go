// Package loans provides the fixed-rate annuity formulas shared by the
// mortgage engine.
package loans

import (
	"math"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
)

// MonthlyRate converts an annual nominal rate in percent to the periodic
// (monthly) rate.
func MonthlyRate(annualInterestRate float64) float64 {
	return annualInterestRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// TermMonths converts a term in whole years to the number of monthly periods.
func TermMonths(years int) int {
	return years * constants.MonthsPerYear
}

// AnnuityFactor is the present value of termMonths unit payments at the
// periodic rate monthlyRate, i.e. (1 - (1+r)^-n) / r, or n at a zero rate.
// It is evaluated through Log1p and Expm1 so that rates too small to change
// 1+r still converge to n.
func AnnuityFactor(monthlyRate float64, termMonths int) float64 {
	if monthlyRate == 0 {
		return float64(termMonths)
	}
	return -math.Expm1(-float64(termMonths)*math.Log1p(monthlyRate)) / monthlyRate
}

// CalculateMonthlyPayment calculates the monthly payment for a loan using the standard amortization formula.
func CalculateMonthlyPayment(principal, annualInterestRate float64, termMonths int) float64 {
	if annualInterestRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(termMonths)
	}
	return principal / AnnuityFactor(MonthlyRate(annualInterestRate), termMonths)
}

// CalculatePrincipal inverts the annuity formula: the loan amount that a
// given monthly payment repays over termMonths.
func CalculatePrincipal(monthlyPayment, annualInterestRate float64, termMonths int) float64 {
	return monthlyPayment * AnnuityFactor(MonthlyRate(annualInterestRate), termMonths)
}

// CalculateInterestPayment calculates the interest portion of a payment
// given the periodic rate.
func CalculateInterestPayment(remainingPrincipal, monthlyRate float64) float64 {
	return remainingPrincipal * monthlyRate
}
