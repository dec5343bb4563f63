package mortgage

// Compare re-solves the terms of baseline under alt. The result is aligned
// index for index with baseline. A down payment below alt's advisory
// threshold is not rejected; it is only carried on each record.
func Compare(baseline []ScheduleRecord, alt Params) ([]ScheduleRecord, error) {
	return CompareTerms(TermsOf(baseline), alt)
}

// CompareTerms is Compare for a bare term list.
func CompareTerms(terms []int, alt Params) ([]ScheduleRecord, error) {
	if err := alt.Validate(); err != nil {
		return nil, err
	}
	for _, years := range terms {
		if years < 1 {
			return nil, rangeError("years", float64(years), "baseline term must be at least 1")
		}
	}
	return solveTerms(alt, terms)
}

// ComparisonRow pairs a baseline record with its alternate for the same term.
type ComparisonRow struct {
	Years     int            `json:"years"`
	Baseline  ScheduleRecord `json:"baseline"`
	Alternate ScheduleRecord `json:"alternate"`
}

// PropertyValueDelta is the alternate property value minus the baseline's.
func (c ComparisonRow) PropertyValueDelta() float64 {
	return c.Alternate.PropertyValue - c.Baseline.PropertyValue
}

// OverpaymentDelta is the alternate overpayment minus the baseline's.
func (c ComparisonRow) OverpaymentDelta() float64 {
	return c.Alternate.Overpayment - c.Baseline.Overpayment
}

// Pair zips two aligned sequences as produced by Compare. It stops at the
// shorter of the two.
func Pair(baseline, alternate []ScheduleRecord) []ComparisonRow {
	n := len(baseline)
	if len(alternate) < n {
		n = len(alternate)
	}
	rows := make([]ComparisonRow, n)
	for i := 0; i < n; i++ {
		rows[i] = ComparisonRow{Years: baseline[i].Years, Baseline: baseline[i], Alternate: alternate[i]}
	}
	return rows
}
