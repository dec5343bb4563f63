package mortgage

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveByPropertyValue(t *testing.T) {
	params := Params{
		InterestRatePercent:         6.0,
		InitialPayment:              3000000,
		MinInitialPaymentPercentage: 20,
		Mode:                        ByPropertyValue{PropertyValue: 10000000},
	}

	record, err := Solve(params, 10)
	require.NoError(t, err)

	power := math.Pow(1.005, 120)
	expectedPayment := 7000000 * 0.005 * power / (power - 1)

	assert.Equal(t, 10, record.Years)
	assert.Equal(t, 7000000.0, record.Principal)
	assert.InDelta(t, expectedPayment, record.MonthlyPayment, 1e-6)
	assert.Equal(t, 10000000.0, record.PropertyValue)
	assert.InDelta(t, 3000000+expectedPayment*120, record.TotalPayment, 1e-4)
	assert.InDelta(t, expectedPayment*120-7000000, record.Overpayment, 1e-4)
	assert.InDelta(t, record.Overpayment/record.Principal, record.OverpaymentPercentage, 1e-12)
	assert.Equal(t, 20.0, record.MinInitialPaymentPercentage)
}

func TestSolveZeroRateByPropertyValue(t *testing.T) {
	params := Params{
		InterestRatePercent: 0,
		InitialPayment:      1200000,
		Mode:                ByPropertyValue{PropertyValue: 6000000},
	}

	record, err := Solve(params, 20)
	require.NoError(t, err)

	assert.Equal(t, 4800000.0, record.Principal)
	assert.Equal(t, 20000.0, record.MonthlyPayment)
	assert.Equal(t, 0.0, record.Overpayment)
	assert.Equal(t, 0.0, record.OverpaymentPercentage)
	assert.Equal(t, 6000000.0, record.TotalPayment)
}

func TestSolveZeroRateByMonthlyPayment(t *testing.T) {
	tests := []struct {
		name    string
		payment float64
		years   int
	}{
		{"Round numbers", 300000, 20},
		{"Fractional payment", 1234.56, 7},
		{"Single year", 0.1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := Params{InitialPayment: 5000000, Mode: ByMonthlyPayment{MonthlyPayment: tt.payment}}
			record, err := Solve(params, tt.years)
			require.NoError(t, err)

			assert.Equal(t, tt.payment*float64(tt.years*12), record.Principal)
			assert.Equal(t, 0.0, record.Overpayment)
			assert.Equal(t, record.Principal+record.InitialPayment, record.PropertyValue)
		})
	}
}

func TestSolveRoundTrip(t *testing.T) {
	tests := []struct {
		name          string
		rate          float64
		propertyValue float64
		initial       float64
		years         int
	}{
		{"Scenario from the calculator", 6.0, 10000000, 3000000, 10},
		{"High rate long term", 16.5, 25000000, 5000000, 30},
		{"Low rate short term", 0.5, 800000, 0, 1},
		{"Forty years", 9.75, 12000000, 2400000, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forward, err := Solve(Params{
				InterestRatePercent: tt.rate,
				InitialPayment:      tt.initial,
				Mode:                ByPropertyValue{PropertyValue: tt.propertyValue},
			}, tt.years)
			require.NoError(t, err)

			back, err := Solve(Params{
				InterestRatePercent: tt.rate,
				InitialPayment:      tt.initial,
				Mode:                ByMonthlyPayment{MonthlyPayment: forward.MonthlyPayment},
			}, tt.years)
			require.NoError(t, err)

			assert.InDelta(t, tt.propertyValue, back.PropertyValue, 1e-6*tt.propertyValue)
			assert.InDelta(t, forward.Overpayment, back.Overpayment, 1e-3)
		})
	}
}

func TestSolveExcludingInitialPayment(t *testing.T) {
	base := Params{
		InterestRatePercent: 16.5,
		InitialPayment:      5000000,
		Mode:                ByMonthlyPayment{MonthlyPayment: 300000},
	}
	excluded := base
	excluded.Convention = TotalExcludesInitialPayment

	withInitial, err := Solve(base, 15)
	require.NoError(t, err)
	withoutInitial, err := Solve(excluded, 15)
	require.NoError(t, err)

	assert.InDelta(t, 300000*180.0, withoutInitial.TotalPayment, 1e-6)
	assert.InDelta(t, withInitial.TotalPayment-5000000, withoutInitial.TotalPayment, 1e-6)
	assert.Equal(t, withInitial.Overpayment, withoutInitial.Overpayment)
	assert.Equal(t, withInitial.PropertyValue, withoutInitial.PropertyValue)
}

func TestSolveInvalidParameters(t *testing.T) {
	valid := Params{
		InterestRatePercent:         6,
		InitialPayment:              1000000,
		MinInitialPaymentPercentage: 20,
		Mode:                        ByPropertyValue{PropertyValue: 5000000},
	}

	tests := []struct {
		name   string
		mutate func(p *Params)
		years  int
		field  string
	}{
		{"Negative rate", func(p *Params) { p.InterestRatePercent = -0.1 }, 10, "interest_rate_percent"},
		{"NaN rate", func(p *Params) { p.InterestRatePercent = math.NaN() }, 10, "interest_rate_percent"},
		{"Negative initial payment", func(p *Params) { p.InitialPayment = -1 }, 10, "initial_payment"},
		{"Threshold above 100", func(p *Params) { p.MinInitialPaymentPercentage = 120 }, 10, "min_initial_payment_percentage"},
		{"Missing mode", func(p *Params) { p.Mode = nil }, 10, "mode"},
		{"Zero monthly payment", func(p *Params) { p.Mode = ByMonthlyPayment{} }, 10, "monthly_payment"},
		{"Negative property value", func(p *Params) { p.Mode = ByPropertyValue{PropertyValue: -5} }, 10, "property_value"},
		{"Initial payment above property value", func(p *Params) { p.InitialPayment = 6000000 }, 10, "initial_payment"},
		{"Unknown convention", func(p *Params) { p.Convention = TotalConvention(7) }, 10, "convention"},
		{"Zero term", func(p *Params) {}, 0, "term_years"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := valid
			tt.mutate(&params)

			_, err := Solve(params, tt.years)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidParameter)
			assert.Equal(t, tt.field, FieldOf(err))
			assert.Equal(t, "InvalidParameter", KindName(err))
		})
	}
}

func TestSolveWholePropertyPaidUpfront(t *testing.T) {
	record, err := Solve(Params{
		InterestRatePercent: 7,
		InitialPayment:      3000000,
		Mode:                ByPropertyValue{PropertyValue: 3000000},
	}, 5)
	require.NoError(t, err)

	assert.Equal(t, 0.0, record.Principal)
	assert.Equal(t, 0.0, record.MonthlyPayment)
	assert.Equal(t, 0.0, record.OverpaymentPercentage)
}

func TestSolveOverflowIsNumericDomain(t *testing.T) {
	_, err := Solve(Params{
		InterestRatePercent: 1e306,
		Mode:                ByPropertyValue{PropertyValue: 1000000},
	}, 40)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNumericDomain)
	assert.Equal(t, "term_years", FieldOf(err))
}

func TestSolveHighRateStaysFinite(t *testing.T) {
	record, err := Solve(Params{
		InterestRatePercent: 100000,
		Mode:                ByPropertyValue{PropertyValue: 1000000},
	}, 40)
	require.NoError(t, err)

	// The payment tends to the interest on the principal.
	assert.InDelta(t, 1000000*100000.0/1200, record.MonthlyPayment, 1e-3)
}

func TestSolveTinyRateConvergesToZeroRate(t *testing.T) {
	for _, rate := range []float64{1e-13, 1e-10, 1e-7} {
		byPayment, err := Solve(Params{InterestRatePercent: rate, Mode: ByMonthlyPayment{MonthlyPayment: 1000}}, 10)
		require.NoError(t, err)
		assert.InDelta(t, 120000.0, byPayment.Principal, 1e-3, "rate %v", rate)
		assert.InDelta(t, 120000.0, byPayment.PropertyValue, 1e-3, "rate %v", rate)
		assert.GreaterOrEqual(t, byPayment.Overpayment, 0.0)
		assert.Less(t, byPayment.Overpayment, 1e-3)

		byValue, err := Solve(Params{InterestRatePercent: rate, Mode: ByPropertyValue{PropertyValue: 120000}}, 10)
		require.NoError(t, err)
		assert.InDelta(t, 1000.0, byValue.MonthlyPayment, 1e-4, "rate %v", rate)
		assert.Less(t, byValue.Overpayment, 1e-3)
	}
}

func TestParseModeKind(t *testing.T) {
	kind, err := ParseModeKind(" BY_MONTHLY_PAYMENT ")
	require.NoError(t, err)
	assert.Equal(t, ModeByMonthlyPayment, kind)

	kind, err = ParseModeKind("by_property_value")
	require.NoError(t, err)
	assert.Equal(t, ModeByPropertyValue, kind)

	_, err = ParseModeKind("by_salary")
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestNewMode(t *testing.T) {
	mode, err := NewMode(ModeByPropertyValue, 42)
	require.NoError(t, err)
	assert.Equal(t, ByPropertyValue{PropertyValue: 42}, mode)
	assert.Equal(t, 42.0, mode.Value())

	mode, err = NewMode(ModeByMonthlyPayment, 7)
	require.NoError(t, err)
	assert.Equal(t, ModeByMonthlyPayment, mode.Kind())

	_, err = NewMode("", 1)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
