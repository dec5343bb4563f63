package mortgage

// TermRange is an inclusive range of whole-year loan terms.
type TermRange struct {
	MinYears int `json:"min_years"`
	MaxYears int `json:"max_years"`
}

// Validate checks both bounds are at least one year and ordered.
func (r TermRange) Validate() error {
	if r.MinYears < 1 {
		return rangeError("min_years", float64(r.MinYears), "must be at least 1")
	}
	if r.MaxYears < 1 {
		return rangeError("max_years", float64(r.MaxYears), "must be at least 1")
	}
	if r.MaxYears < r.MinYears {
		return rangeError("max_years", float64(r.MaxYears), "must not be less than min_years")
	}
	return nil
}

// Len is the number of terms in the range; zero for an invalid range.
func (r TermRange) Len() int {
	if r.Validate() != nil {
		return 0
	}
	return r.MaxYears - r.MinYears + 1
}

// Terms generates every whole year from MinYears to MaxYears, ascending.
func Terms(r TermRange) ([]int, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	terms := make([]int, 0, r.Len())
	for years := r.MinYears; years <= r.MaxYears; years++ {
		terms = append(terms, years)
	}
	return terms, nil
}
