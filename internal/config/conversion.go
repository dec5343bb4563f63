package config

import (
	"fmt"

	"github.com/iwvelando/mortgage-calculator/internal/calculation"
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
)

// ToParams converts the scenario to engine parameters. The mode tag is
// resolved here so the engine only ever sees one of the two variants.
func (s Scenario) ToParams() (mortgage.Params, error) {
	kind, err := s.modeKind()
	if err != nil {
		return mortgage.Params{}, err
	}

	value := s.MonthlyPayment
	if kind == mortgage.ModeByPropertyValue {
		value = s.PropertyValue
	}
	mode, err := mortgage.NewMode(kind, value)
	if err != nil {
		return mortgage.Params{}, err
	}

	convention := mortgage.TotalIncludesInitialPayment
	if s.ExcludeInitialPayment {
		convention = mortgage.TotalExcludesInitialPayment
	}

	return mortgage.Params{
		InterestRatePercent:         s.InterestRate,
		InitialPayment:              s.InitialPayment,
		MinInitialPaymentPercentage: s.minInitialPaymentPercentage(),
		Mode:                        mode,
		Convention:                  convention,
	}, nil
}

// modeKind returns the explicit mode, or infers it when exactly one of the
// two quantities is set. Setting both without a mode is ambiguous.
func (s Scenario) modeKind() (mortgage.ModeKind, error) {
	if s.Mode != "" {
		return mortgage.ParseModeKind(s.Mode)
	}
	switch {
	case s.MonthlyPayment != 0 && s.PropertyValue == 0:
		return mortgage.ModeByMonthlyPayment, nil
	case s.PropertyValue != 0 && s.MonthlyPayment == 0:
		return mortgage.ModeByPropertyValue, nil
	}
	// Reuse the engine's error for a missing mode.
	return "", mortgage.Params{}.Validate()
}

func (s Scenario) minInitialPaymentPercentage() float64 {
	if s.MinInitialPaymentPercentage == nil {
		return constants.DefaultMinInitialPaymentPercentage
	}
	return *s.MinInitialPaymentPercentage
}

// TermRange returns the sweep bounds of the calculation.
func (c Calculation) TermRange() mortgage.TermRange {
	return mortgage.TermRange{MinYears: c.MinYears, MaxYears: c.MaxYears}
}

// ToRequest converts the whole configuration into a calculation request.
func (c *Configuration) ToRequest() (calculation.Request, error) {
	params, err := c.Calculation.ToParams()
	if err != nil {
		return calculation.Request{}, fmt.Errorf("calculation: %w", err)
	}

	req := calculation.Request{
		Params: params,
		Range:  c.Calculation.TermRange(),
	}

	if c.Alternate != nil {
		alternate, err := c.Alternate.ToParams()
		if err != nil {
			return calculation.Request{}, fmt.Errorf("alternate: %w", err)
		}
		req.Alternate = &alternate
	}

	if c.Breakdown != nil {
		breakdown := &calculation.BreakdownRequest{Years: c.Breakdown.Years}
		if c.Breakdown.Granularity != "" {
			granularity, err := mortgage.ParseGranularity(c.Breakdown.Granularity)
			if err != nil {
				return calculation.Request{}, fmt.Errorf("breakdown: %w", err)
			}
			breakdown.Granularity = granularity
		}
		req.Breakdown = breakdown
	}

	return req, nil
}
