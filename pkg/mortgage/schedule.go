package mortgage

import "fmt"

// Sweep solves p for every term in r. Either every term succeeds or no
// records are returned.
func Sweep(p Params, r TermRange) ([]ScheduleRecord, error) {
	terms, err := Terms(r)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return solveTerms(p, terms)
}

func solveTerms(p Params, terms []int) ([]ScheduleRecord, error) {
	records := make([]ScheduleRecord, 0, len(terms))
	for _, years := range terms {
		record, err := Solve(p, years)
		if err != nil {
			return nil, fmt.Errorf("term of %d years: %w", years, err)
		}
		records = append(records, record)
	}
	return records, nil
}
