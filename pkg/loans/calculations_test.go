package loans

import (
	"math"
	"testing"
)

func TestMonthlyRate(t *testing.T) {
	tests := []struct {
		name     string
		rate     float64
		expected float64
	}{
		{"Six percent", 6.0, 0.005},
		{"Twelve percent", 12.0, 0.01},
		{"Zero", 0.0, 0.0},
		{"Sixteen and a half", 16.5, 0.01375},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthlyRate(tt.rate); math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("MonthlyRate(%v) = %v, expected %v", tt.rate, got, tt.expected)
			}
		})
	}
}

func TestTermMonths(t *testing.T) {
	if got := TermMonths(20); got != 240 {
		t.Errorf("TermMonths(20) = %d, expected 240", got)
	}
	if got := TermMonths(1); got != 12 {
		t.Errorf("TermMonths(1) = %d, expected 12", got)
	}
}

func TestCalculateMonthlyPayment(t *testing.T) {
	tests := []struct {
		name               string
		principal          float64
		annualInterestRate float64
		termMonths         int
		expectedRange      []float64 // [min, max] expected range
	}{
		{
			name:               "Standard 30-year mortgage",
			principal:          240000,
			annualInterestRate: 6.0,
			termMonths:         360,
			expectedRange:      []float64{1438, 1440}, // Around $1438.92
		},
		{
			name:               "5-year car loan",
			principal:          20000,
			annualInterestRate: 4.0,
			termMonths:         60,
			expectedRange:      []float64{360, 380}, // Around $368
		},
		{
			name:               "Zero interest loan",
			principal:          10000,
			annualInterestRate: 0.0,
			termMonths:         60,
			expectedRange:      []float64{166, 167}, // Exactly $166.67
		},
		{
			name:               "Nothing borrowed",
			principal:          0,
			annualInterestRate: 5.0,
			termMonths:         60,
			expectedRange:      []float64{0, 0},
		},
		{
			name:               "Reference loan",
			principal:          175000,
			annualInterestRate: 4.5,
			termMonths:         360,
			expectedRange:      []float64{886.69, 886.71},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateMonthlyPayment(tt.principal, tt.annualInterestRate, tt.termMonths)

			if result < tt.expectedRange[0] || result > tt.expectedRange[1] {
				t.Errorf("CalculateMonthlyPayment() = %.2f, expected range [%.2f, %.2f]",
					result, tt.expectedRange[0], tt.expectedRange[1])
			}
		})
	}
}

func TestCalculatePrincipalInvertsPayment(t *testing.T) {
	tests := []struct {
		name       string
		principal  float64
		rate       float64
		termMonths int
	}{
		{"Ten years at six percent", 7000000, 6.0, 120},
		{"Twenty years at sixteen and a half", 5000000, 16.5, 240},
		{"One year at one percent", 100000, 1.0, 12},
		{"Zero rate", 4800000, 0.0, 240},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payment := CalculateMonthlyPayment(tt.principal, tt.rate, tt.termMonths)
			got := CalculatePrincipal(payment, tt.rate, tt.termMonths)
			if math.Abs(got-tt.principal) > 1e-6 {
				t.Errorf("CalculatePrincipal(%v) = %.6f, expected %.6f", payment, got, tt.principal)
			}
		})
	}
}

func TestCalculatePrincipalZeroRateIsExact(t *testing.T) {
	got := CalculatePrincipal(300000, 0, 240)
	if got != 72000000 {
		t.Errorf("CalculatePrincipal() = %v, expected exactly 72000000", got)
	}
}

func TestCalculateInterestPayment(t *testing.T) {
	tests := []struct {
		name               string
		remainingPrincipal float64
		monthlyRate        float64
		expected           float64
	}{
		{"Standard mortgage interest", 200000, 0.005, 1000.0},
		{"Car loan interest", 15000, 0.00375, 56.25},
		{"Zero interest", 10000, 0.0, 0.0},
		{"Very small principal", 100, 0.005, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateInterestPayment(tt.remainingPrincipal, tt.monthlyRate)

			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("CalculateInterestPayment() = %.2f, expected %.2f", result, tt.expected)
			}
		})
	}
}

func TestAnnuityFactor(t *testing.T) {
	tests := []struct {
		name        string
		monthlyRate float64
		termMonths  int
		expected    float64
		tolerance   float64
	}{
		{"Zero rate", 0, 240, 240, 0},
		{"Half percent over ten years", 0.005, 120, (1 - math.Pow(1.005, -120)) / 0.005, 1e-9},
		{"Rate lost in one plus r", 1e-17, 120, 120, 1e-9},
		{"Tiny rate", 1e-12, 120, 120, 1e-6},
		{"Huge rate tends to one over r", 1e6, 480, 1e-6, 1e-18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnnuityFactor(tt.monthlyRate, tt.termMonths)
			if math.Abs(got-tt.expected) > tt.tolerance {
				t.Errorf("AnnuityFactor(%v, %d) = %v, expected %v", tt.monthlyRate, tt.termMonths, got, tt.expected)
			}
		})
	}
}

func TestTinyRatesConvergeToZeroRate(t *testing.T) {
	zeroPayment := CalculateMonthlyPayment(120000, 0, 120)
	zeroPrincipal := CalculatePrincipal(1000, 0, 120)

	for _, rate := range []float64{1e-13, 1e-10, 1e-8} {
		payment := CalculateMonthlyPayment(120000, rate, 120)
		if math.IsNaN(payment) || math.Abs(payment-zeroPayment) > 1e-4 {
			t.Errorf("CalculateMonthlyPayment at %v%% = %v, expected close to %v", rate, payment, zeroPayment)
		}

		principal := CalculatePrincipal(1000, rate, 120)
		if math.Abs(principal-zeroPrincipal) > 1e-3 {
			t.Errorf("CalculatePrincipal at %v%% = %v, expected close to %v", rate, principal, zeroPrincipal)
		}
	}
}
