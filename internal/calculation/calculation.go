// Package calculation runs a complete mortgage calculation: the term sweep,
// an optional comparison against alternate conditions and an optional
// payment breakdown for one term.
package calculation

import (
	"fmt"

	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"github.com/iwvelando/mortgage-calculator/pkg/validation"
	"go.uber.org/zap"
)

// Request describes one calculation.
type Request struct {
	Params    mortgage.Params
	Range     mortgage.TermRange
	Alternate *mortgage.Params
	Breakdown *BreakdownRequest
}

// BreakdownRequest asks for the payment split of one term. A zero Years
// selects the term with the lowest overpayment.
type BreakdownRequest struct {
	Years       int
	Granularity mortgage.Granularity
}

// Breakdown is the payment split of one term.
type Breakdown struct {
	Years       int                        `json:"years"`
	Granularity mortgage.Granularity       `json:"granularity"`
	Loan        mortgage.ResolvedLoan      `json:"loan"`
	Periods     []mortgage.PeriodBreakdown `json:"periods"`
}

// Report is the result of Run.
type Report struct {
	Params           mortgage.Params
	Range            mortgage.TermRange
	Records          []mortgage.ScheduleRecord
	Optimal          *mortgage.ScheduleRecord
	AlternateParams  *mortgage.Params
	AlternateRecords []mortgage.ScheduleRecord
	Comparison       []mortgage.ComparisonRow
	Breakdown        *Breakdown
	Warnings         []string
}

// Run executes req. Engine errors are returned wrapped so errors.Is and
// errors.As still reach the mortgage error kinds.
func Run(logger *zap.Logger, req Request) (*Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	logger.Debug("starting calculation",
		zap.String("op", "calculation.Run"),
		zap.String("mode", modeName(req.Params)),
		zap.Float64("interest_rate", req.Params.InterestRatePercent),
		zap.Int("min_years", req.Range.MinYears),
		zap.Int("max_years", req.Range.MaxYears),
	)

	records, err := mortgage.Sweep(req.Params, req.Range)
	if err != nil {
		return nil, fmt.Errorf("baseline sweep: %w", err)
	}

	report := &Report{
		Params:  req.Params,
		Range:   req.Range,
		Records: records,
	}
	if optimal, ok := mortgage.Optimal(records); ok {
		report.Optimal = &optimal
	}

	if req.Alternate != nil {
		alternate, err := mortgage.Compare(records, *req.Alternate)
		if err != nil {
			return nil, fmt.Errorf("alternate comparison: %w", err)
		}
		alt := *req.Alternate
		report.AlternateParams = &alt
		report.AlternateRecords = alternate
		report.Comparison = mortgage.Pair(records, alternate)
		logger.Debug("compared alternate scenario",
			zap.String("op", "calculation.Run"),
			zap.String("mode", modeName(alt)),
			zap.Int("records", len(alternate)),
		)
	}

	if req.Breakdown != nil {
		breakdown, err := breakdownFor(req.Params, req.Breakdown, report.Optimal)
		if err != nil {
			return nil, fmt.Errorf("payment breakdown: %w", err)
		}
		report.Breakdown = breakdown
	}

	report.Warnings = Warnings(report)
	for _, warning := range report.Warnings {
		logger.Warn("Calculation warning: "+warning,
			zap.String("op", "calculation.Run"),
		)
	}

	logger.Info("calculation complete",
		zap.String("op", "calculation.Run"),
		zap.Int("records", len(records)),
		zap.Bool("alternate", report.AlternateParams != nil),
		zap.Bool("breakdown", report.Breakdown != nil),
	)

	return report, nil
}

func breakdownFor(p mortgage.Params, req *BreakdownRequest, optimal *mortgage.ScheduleRecord) (*Breakdown, error) {
	granularity := req.Granularity
	if granularity == "" {
		granularity = mortgage.PerMonth
	}

	var record mortgage.ScheduleRecord
	switch {
	case req.Years > 0:
		solved, err := mortgage.Solve(p, req.Years)
		if err != nil {
			return nil, err
		}
		record = solved
	case optimal != nil:
		record = *optimal
	default:
		return nil, fmt.Errorf("no term to break down")
	}

	loan := mortgage.ResolveLoan(record)
	periods, err := mortgage.Decompose(loan, granularity)
	if err != nil {
		return nil, err
	}
	return &Breakdown{
		Years:       record.Years,
		Granularity: granularity,
		Loan:        loan,
		Periods:     periods,
	}, nil
}

// Warnings lists the advisory findings for a report. Scenarios fixed by
// monthly payment are checked against their largest property value.
func Warnings(report *Report) []string {
	cv := &validation.ConfigValidator{
		MinYears:  report.Range.MinYears,
		MaxYears:  report.Range.MaxYears,
		Scenarios: []validation.ScenarioConfig{scenarioConfig("Baseline", report.Params, report.Records)},
	}
	if report.AlternateParams != nil {
		cv.Scenarios = append(cv.Scenarios, scenarioConfig("Alternate", *report.AlternateParams, report.AlternateRecords))
	}
	return cv.ValidateAll()
}

func scenarioConfig(name string, p mortgage.Params, records []mortgage.ScheduleRecord) validation.ScenarioConfig {
	sc := validation.ScenarioConfig{
		Name:                        name,
		InterestRate:                p.InterestRatePercent,
		InitialPayment:              p.InitialPayment,
		MinInitialPaymentPercentage: p.MinInitialPaymentPercentage,
	}
	for _, record := range records {
		if record.PropertyValue > sc.PropertyValue {
			sc.PropertyValue = record.PropertyValue
		}
	}
	return sc
}

func modeName(p mortgage.Params) string {
	if p.Mode == nil {
		return ""
	}
	return string(p.Mode.Kind())
}
