package output

import "github.com/iwvelando/mortgage-calculator/pkg/mortgage"

// ThinYears returns the year labels to display for [minYears, maxYears].
// The step widens to 2 above a 7 year span and to 3 above 13. When the last
// label falls short of maxYears one more step is appended past it.
func ThinYears(minYears, maxYears int) []int {
	step := 1
	switch span := maxYears - minYears; {
	case span > 13:
		step = 3
	case span > 7:
		step = 2
	}

	var years []int
	for year := minYears; year <= maxYears; year += step {
		years = append(years, year)
	}
	if len(years) > 0 && years[len(years)-1] < maxYears {
		years = append(years, years[len(years)-1]+step)
	}
	return years
}

// ThinTerms keeps the records whose term is one of the displayed labels for
// the span of records. The input is not modified.
func ThinTerms(records []mortgage.ScheduleRecord) []mortgage.ScheduleRecord {
	if len(records) == 0 {
		return records
	}

	minYears, maxYears := records[0].Years, records[0].Years
	for _, record := range records[1:] {
		if record.Years < minYears {
			minYears = record.Years
		}
		if record.Years > maxYears {
			maxYears = record.Years
		}
	}

	keep := make(map[int]bool)
	for _, year := range ThinYears(minYears, maxYears) {
		keep[year] = true
	}

	thinned := make([]mortgage.ScheduleRecord, 0, len(keep))
	for _, record := range records {
		if keep[record.Years] {
			thinned = append(thinned, record)
		}
	}
	return thinned
}
