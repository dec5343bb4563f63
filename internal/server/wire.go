package server

import (
	"fmt"

	"github.com/iwvelando/mortgage-calculator/internal/calculation"
	"github.com/iwvelando/mortgage-calculator/internal/config"
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/mathutil"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"github.com/iwvelando/mortgage-calculator/pkg/output"
)

// scenarioPayload is the wire form of mortgage.Params. Exactly one of
// MonthlyPayment and PropertyValue is present, matching Mode.
type scenarioPayload struct {
	Mode                        string   `json:"mode"`
	InterestRate                float64  `json:"interest_rate"`
	MonthlyPayment              *float64 `json:"monthly_payment,omitempty"`
	PropertyValue               *float64 `json:"property_value,omitempty"`
	InitialPayment              float64  `json:"initial_payment"`
	MinInitialPaymentPercentage *float64 `json:"min_initial_payment_percentage,omitempty"`
	ExcludeInitialPayment       bool     `json:"exclude_initial_payment,omitempty"`
}

// toParams decodes the payload. The mode tag is mandatory and the quantity
// belonging to the other mode must be absent.
func (s scenarioPayload) toParams() (mortgage.Params, error) {
	kind, err := mortgage.ParseModeKind(s.Mode)
	if err != nil {
		return mortgage.Params{}, err
	}

	var value *float64
	switch kind {
	case mortgage.ModeByMonthlyPayment:
		if s.PropertyValue != nil {
			return mortgage.Params{}, &mortgage.Error{Kind: mortgage.ErrInvalidParameter, Field: "property_value",
				Value: *s.PropertyValue, Reason: "not allowed with mode " + string(kind)}
		}
		value = s.MonthlyPayment
	case mortgage.ModeByPropertyValue:
		if s.MonthlyPayment != nil {
			return mortgage.Params{}, &mortgage.Error{Kind: mortgage.ErrInvalidParameter, Field: "monthly_payment",
				Value: *s.MonthlyPayment, Reason: "not allowed with mode " + string(kind)}
		}
		value = s.PropertyValue
	}

	var amount float64
	if value != nil {
		amount = *value
	}
	mode, err := mortgage.NewMode(kind, amount)
	if err != nil {
		return mortgage.Params{}, err
	}

	minimum := constants.DefaultMinInitialPaymentPercentage
	if s.MinInitialPaymentPercentage != nil {
		minimum = *s.MinInitialPaymentPercentage
	}
	convention := mortgage.TotalIncludesInitialPayment
	if s.ExcludeInitialPayment {
		convention = mortgage.TotalExcludesInitialPayment
	}

	p := mortgage.Params{
		InterestRatePercent:         s.InterestRate,
		InitialPayment:              s.InitialPayment,
		MinInitialPaymentPercentage: minimum,
		Mode:                        mode,
		Convention:                  convention,
	}
	return p, p.Validate()
}

// encodeParams is the inverse of toParams. Each variant emits only its own
// quantity.
func encodeParams(p mortgage.Params) scenarioPayload {
	minimum := p.MinInitialPaymentPercentage
	payload := scenarioPayload{
		InterestRate:                p.InterestRatePercent,
		InitialPayment:              p.InitialPayment,
		MinInitialPaymentPercentage: &minimum,
		ExcludeInitialPayment:       p.Convention == mortgage.TotalExcludesInitialPayment,
	}
	switch m := p.Mode.(type) {
	case mortgage.ByMonthlyPayment:
		payload.Mode = string(mortgage.ModeByMonthlyPayment)
		payload.MonthlyPayment = &m.MonthlyPayment
	case mortgage.ByPropertyValue:
		payload.Mode = string(mortgage.ModeByPropertyValue)
		payload.PropertyValue = &m.PropertyValue
	}
	return payload
}

// toScenario converts the payload to the YAML configuration form.
func (s scenarioPayload) toScenario() config.Scenario {
	scenario := config.Scenario{
		Mode:                        s.Mode,
		InterestRate:                s.InterestRate,
		InitialPayment:              s.InitialPayment,
		MinInitialPaymentPercentage: s.MinInitialPaymentPercentage,
		ExcludeInitialPayment:       s.ExcludeInitialPayment,
	}
	if s.MonthlyPayment != nil {
		scenario.MonthlyPayment = *s.MonthlyPayment
	}
	if s.PropertyValue != nil {
		scenario.PropertyValue = *s.PropertyValue
	}
	return scenario
}

type breakdownPayload struct {
	Years       int    `json:"years,omitempty"`
	Granularity string `json:"granularity,omitempty"`
}

type calculateRequest struct {
	scenarioPayload
	MinYears  int               `json:"min_years"`
	MaxYears  int               `json:"max_years"`
	Alternate *scenarioPayload  `json:"alternate,omitempty"`
	Breakdown *breakdownPayload `json:"breakdown,omitempty"`
}

// toRequest decodes the payload and enforces the server's term cap.
func (c calculateRequest) toRequest(maxTermYears int) (calculation.Request, error) {
	params, err := c.scenarioPayload.toParams()
	if err != nil {
		return calculation.Request{}, err
	}

	r := mortgage.TermRange{MinYears: c.MinYears, MaxYears: c.MaxYears}
	if err := r.Validate(); err != nil {
		return calculation.Request{}, err
	}

	req := calculation.Request{Params: params, Range: r}

	if c.Alternate != nil {
		alternate, err := c.Alternate.toParams()
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
				return calculation.Request{}, err
			}
			breakdown.Granularity = granularity
		}
		req.Breakdown = breakdown
	}

	if err := checkTermCap(req, maxTermYears); err != nil {
		return calculation.Request{}, err
	}
	return req, nil
}

// checkTermCap rejects a request whose sweep or breakdown term exceeds
// maxTermYears. A cap of 0 disables the check.
func checkTermCap(req calculation.Request, maxTermYears int) error {
	if maxTermYears <= 0 {
		return nil
	}
	if req.Range.MaxYears > maxTermYears {
		return termCapError("max_years", req.Range.MaxYears, maxTermYears)
	}
	if req.Breakdown != nil && req.Breakdown.Years > maxTermYears {
		return termCapError("breakdown.years", req.Breakdown.Years, maxTermYears)
	}
	return nil
}

func termCapError(field string, value, limit int) error {
	return &mortgage.Error{Kind: mortgage.ErrRange, Field: field,
		Value: float64(value), Reason: fmt.Sprintf("must not exceed %d", limit)}
}

// toConfiguration converts the payload to a YAML configuration document.
func (c calculateRequest) toConfiguration() config.Configuration {
	conf := config.Configuration{
		Calculation: config.Calculation{
			Scenario: c.scenarioPayload.toScenario(),
			MinYears: c.MinYears,
			MaxYears: c.MaxYears,
		},
	}
	if c.Alternate != nil {
		alternate := c.Alternate.toScenario()
		conf.Alternate = &alternate
	}
	if c.Breakdown != nil {
		conf.Breakdown = &config.Breakdown{Years: c.Breakdown.Years, Granularity: c.Breakdown.Granularity}
	}
	return conf
}

type recordView struct {
	mortgage.ScheduleRecord
	InitialPaymentPercentage   float64 `json:"initial_payment_percentage"`
	BelowMinimumInitialPayment bool    `json:"below_minimum_initial_payment"`
}

func recordViews(records []mortgage.ScheduleRecord) []recordView {
	views := make([]recordView, len(records))
	for i, record := range records {
		views[i] = recordView{
			ScheduleRecord:             record,
			InitialPaymentPercentage:   mathutil.Round(record.InitialPaymentPercentage()),
			BelowMinimumInitialPayment: record.BelowMinimumInitialPayment(),
		}
	}
	return views
}

type comparisonRowView struct {
	Years              int        `json:"years"`
	Baseline           recordView `json:"baseline"`
	Alternate          recordView `json:"alternate"`
	PropertyValueDelta float64    `json:"property_value_delta"`
	OverpaymentDelta   float64    `json:"overpayment_delta"`
}

func comparisonViews(rows []mortgage.ComparisonRow) []comparisonRowView {
	if rows == nil {
		return nil
	}
	views := make([]comparisonRowView, len(rows))
	for i, row := range rows {
		pair := recordViews([]mortgage.ScheduleRecord{row.Baseline, row.Alternate})
		views[i] = comparisonRowView{
			Years:              row.Years,
			Baseline:           pair[0],
			Alternate:          pair[1],
			PropertyValueDelta: row.PropertyValueDelta(),
			OverpaymentDelta:   row.OverpaymentDelta(),
		}
	}
	return views
}

type periodView struct {
	mortgage.PeriodBreakdown
	Payment       float64 `json:"payment"`
	InterestShare float64 `json:"interest_share"`
}

type breakdownView struct {
	Years       int                   `json:"years"`
	Granularity mortgage.Granularity  `json:"granularity"`
	Loan        mortgage.ResolvedLoan `json:"loan"`
	Periods     []periodView          `json:"periods"`
}

func newBreakdownView(years int, granularity mortgage.Granularity, loan mortgage.ResolvedLoan, periods []mortgage.PeriodBreakdown) *breakdownView {
	views := make([]periodView, len(periods))
	for i, period := range periods {
		views[i] = periodView{
			PeriodBreakdown: period,
			Payment:         period.Payment(),
			InterestShare:   period.InterestShare(),
		}
	}
	return &breakdownView{Years: years, Granularity: granularity, Loan: loan, Periods: views}
}

type alternateView struct {
	Params  scenarioPayload `json:"params"`
	Records []recordView    `json:"records"`
}

type calculateResponse struct {
	RequestID      string              `json:"request_id,omitempty"`
	Params         scenarioPayload     `json:"params"`
	Range          mortgage.TermRange  `json:"range"`
	Records        []recordView        `json:"records"`
	DisplayYears   []int               `json:"display_years"`
	DisplayRecords []recordView        `json:"display_records"`
	Optimal        *recordView         `json:"optimal,omitempty"`
	Alternate      *alternateView      `json:"alternate,omitempty"`
	Comparison     []comparisonRowView `json:"comparison,omitempty"`
	Breakdown      *breakdownView      `json:"breakdown,omitempty"`
	Warnings       []string            `json:"warnings,omitempty"`
	Duration       string              `json:"duration"`
}

func newCalculateResponse(report *calculation.Report) calculateResponse {
	resp := calculateResponse{
		Params:         encodeParams(report.Params),
		Range:          report.Range,
		Records:        recordViews(report.Records),
		DisplayYears:   output.ThinYears(report.Range.MinYears, report.Range.MaxYears),
		DisplayRecords: recordViews(output.ThinTerms(report.Records)),
		Comparison:     comparisonViews(report.Comparison),
		Warnings:       report.Warnings,
	}
	if report.Optimal != nil {
		optimal := recordViews([]mortgage.ScheduleRecord{*report.Optimal})[0]
		resp.Optimal = &optimal
	}
	if report.AlternateParams != nil {
		resp.Alternate = &alternateView{
			Params:  encodeParams(*report.AlternateParams),
			Records: recordViews(report.AlternateRecords),
		}
	}
	if b := report.Breakdown; b != nil {
		resp.Breakdown = newBreakdownView(b.Years, b.Granularity, b.Loan, b.Periods)
	}
	return resp
}

// annuityRequest carries either a resolved loan or scenario parameters plus
// the term to solve first.
type annuityRequest struct {
	Loan *mortgage.ResolvedLoan `json:"loan,omitempty"`
	scenarioPayload
	Years       int    `json:"years,omitempty"`
	Granularity string `json:"granularity"`
}

type compareRequest struct {
	Baseline  []mortgage.ScheduleRecord `json:"baseline,omitempty"`
	Terms     []int                     `json:"terms,omitempty"`
	Alternate *scenarioPayload          `json:"alternate"`
}

type compareResponse struct {
	RequestID  string              `json:"request_id,omitempty"`
	Params     scenarioPayload     `json:"params"`
	Records    []recordView        `json:"records"`
	Comparison []comparisonRowView `json:"comparison,omitempty"`
}
