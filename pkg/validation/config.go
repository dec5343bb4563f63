// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/mortgage-calculator/pkg/mathutil"
)

// LongTermYears is the term above which a sweep is reported as unusual.
const LongTermYears = 40

// ValidateInitialPaymentShare reports when the down payment is below the
// advisory minimum share of the property value. An empty string means no
// warning.
func ValidateInitialPaymentShare(scenarioName string, initialPayment, propertyValue, minPercentage float64) string {
	if propertyValue <= 0 {
		return ""
	}
	share := mathutil.CalculatePercentage(initialPayment, propertyValue)
	if share < minPercentage {
		return fmt.Sprintf("%s initial payment is %.1f%% of the property value, below the minimum of %.1f%% (%.0f)",
			scenarioName, share, minPercentage, mathutil.ApplyPercentage(propertyValue, minPercentage))
	}
	return ""
}

// ValidateTermRange checks the sweep bounds for values that solve fine but
// are unlikely to be intended.
func ValidateTermRange(minYears, maxYears int) []string {
	var warnings []string

	if maxYears > LongTermYears {
		warnings = append(warnings, fmt.Sprintf("Maximum term of %d years exceeds %d years", maxYears, LongTermYears))
	}
	if minYears == maxYears {
		warnings = append(warnings, fmt.Sprintf("Term range contains a single term of %d years", minYears))
	}

	return warnings
}

// ConfigValidator collects the advisory checks for a calculation.
type ConfigValidator struct {
	MinYears  int
	MaxYears  int
	Scenarios []ScenarioConfig
}

// ScenarioConfig is the subset of a scenario the advisory checks need.
// PropertyValue is zero when the scenario is fixed by monthly payment.
type ScenarioConfig struct {
	Name                        string
	InterestRate                float64
	InitialPayment              float64
	PropertyValue               float64
	MinInitialPaymentPercentage float64
}

// ValidateAll validates the entire configuration and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	warnings := ValidateTermRange(cv.MinYears, cv.MaxYears)

	for _, scenario := range cv.Scenarios {
		if warning := ValidateInitialPaymentShare(scenario.Name, scenario.InitialPayment,
			scenario.PropertyValue, scenario.MinInitialPaymentPercentage); warning != "" {
			warnings = append(warnings, warning)
		}
		if mathutil.IsZero(scenario.InterestRate) {
			warnings = append(warnings, fmt.Sprintf("%s has a zero interest rate, overpayment will be 0", scenario.Name))
		}
	}

	return warnings
}
