package mortgage

import (
	"fmt"
	"math"
	"strings"
)

// ModeKind tags which of the two mutually exclusive quantities is known.
type ModeKind string

const (
	ModeByMonthlyPayment ModeKind = "by_monthly_payment"
	ModeByPropertyValue  ModeKind = "by_property_value"
)

// Mode is the known quantity of a scenario. It is implemented only by
// ByMonthlyPayment and ByPropertyValue, so a scenario always carries exactly
// one of them.
type Mode interface {
	Kind() ModeKind
	Value() float64
	sealed()
}

// ByMonthlyPayment fixes the monthly payment and solves for the principal.
type ByMonthlyPayment struct {
	MonthlyPayment float64
}

func (ByMonthlyPayment) Kind() ModeKind   { return ModeByMonthlyPayment }
func (m ByMonthlyPayment) Value() float64 { return m.MonthlyPayment }
func (ByMonthlyPayment) sealed()          {}

// ByPropertyValue fixes the property value and solves for the monthly payment.
type ByPropertyValue struct {
	PropertyValue float64
}

func (ByPropertyValue) Kind() ModeKind   { return ModeByPropertyValue }
func (m ByPropertyValue) Value() float64 { return m.PropertyValue }
func (ByPropertyValue) sealed()          {}

// ParseModeKind accepts the wire tag of a mode.
func ParseModeKind(value string) (ModeKind, error) {
	switch ModeKind(strings.ToLower(strings.TrimSpace(value))) {
	case ModeByMonthlyPayment:
		return ModeByMonthlyPayment, nil
	case ModeByPropertyValue:
		return ModeByPropertyValue, nil
	}
	return "", invalidParameter("mode", 0,
		fmt.Sprintf("expected %s or %s, got %q", ModeByMonthlyPayment, ModeByPropertyValue, value))
}

// NewMode builds the variant for kind.
func NewMode(kind ModeKind, value float64) (Mode, error) {
	switch kind {
	case ModeByMonthlyPayment:
		return ByMonthlyPayment{MonthlyPayment: value}, nil
	case ModeByPropertyValue:
		return ByPropertyValue{PropertyValue: value}, nil
	}
	return nil, invalidParameter("mode", 0, fmt.Sprintf("unknown mode %q", kind))
}

// TotalConvention selects whether total_payment counts the initial payment.
type TotalConvention int

const (
	// TotalIncludesInitialPayment is the default convention.
	TotalIncludesInitialPayment TotalConvention = iota
	TotalExcludesInitialPayment
)

// Params describes one loan scenario independent of its term.
type Params struct {
	InterestRatePercent         float64
	InitialPayment              float64
	MinInitialPaymentPercentage float64
	Mode                        Mode
	Convention                  TotalConvention
}

// Validate reports the first offending field of p.
func (p Params) Validate() error {
	if math.IsNaN(p.InterestRatePercent) || math.IsInf(p.InterestRatePercent, 0) || p.InterestRatePercent < 0 {
		return invalidParameter("interest_rate_percent", p.InterestRatePercent, "must be a finite value >= 0")
	}
	if math.IsNaN(p.InitialPayment) || math.IsInf(p.InitialPayment, 0) || p.InitialPayment < 0 {
		return invalidParameter("initial_payment", p.InitialPayment, "must be a finite value >= 0")
	}
	if math.IsNaN(p.MinInitialPaymentPercentage) || p.MinInitialPaymentPercentage < 0 || p.MinInitialPaymentPercentage > 100 {
		return invalidParameter("min_initial_payment_percentage", p.MinInitialPaymentPercentage, "must be between 0 and 100")
	}
	if p.Convention != TotalIncludesInitialPayment && p.Convention != TotalExcludesInitialPayment {
		return invalidParameter("convention", float64(p.Convention), "unknown total payment convention")
	}

	switch m := p.Mode.(type) {
	case nil:
		return invalidParameter("mode", 0, "exactly one of monthly_payment or property_value is required")
	case ByMonthlyPayment:
		if !(m.MonthlyPayment > 0) || math.IsInf(m.MonthlyPayment, 0) {
			return invalidParameter("monthly_payment", m.MonthlyPayment, "must be a finite value > 0")
		}
	case ByPropertyValue:
		if !(m.PropertyValue > 0) || math.IsInf(m.PropertyValue, 0) {
			return invalidParameter("property_value", m.PropertyValue, "must be a finite value > 0")
		}
		if p.InitialPayment > m.PropertyValue {
			return invalidParameter("initial_payment", p.InitialPayment, "exceeds property_value")
		}
	}
	return nil
}
