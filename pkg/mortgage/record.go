package mortgage

import (
	"github.com/iwvelando/mortgage-calculator/pkg/mathutil"
)

// ScheduleRecord is the solved scenario for one loan term.
type ScheduleRecord struct {
	Years                       int     `json:"years"`
	InterestRatePercent         float64 `json:"interest_rate"`
	Principal                   float64 `json:"principal"`
	InitialPayment              float64 `json:"initial_payment"`
	PropertyValue               float64 `json:"property_value"`
	MonthlyPayment              float64 `json:"monthly_payment"`
	TotalPayment                float64 `json:"total_payment"`
	Overpayment                 float64 `json:"overpayment"`
	OverpaymentPercentage       float64 `json:"overpayment_percentage"`
	MinInitialPaymentPercentage float64 `json:"min_initial_payment_percentage"`
}

// InitialPaymentPercentage is the share of the property value paid upfront,
// in percent.
func (r ScheduleRecord) InitialPaymentPercentage() float64 {
	return mathutil.CalculatePercentage(r.InitialPayment, r.PropertyValue)
}

// BelowMinimumInitialPayment flags records whose down payment share is under
// the advisory threshold. The record itself stays valid.
func (r ScheduleRecord) BelowMinimumInitialPayment() bool {
	return r.InitialPaymentPercentage() < r.MinInitialPaymentPercentage
}

// TermsOf returns the term list of records in order.
func TermsOf(records []ScheduleRecord) []int {
	terms := make([]int, len(records))
	for i, record := range records {
		terms[i] = record.Years
	}
	return terms
}

// Optimal returns the record with the lowest overpayment. Ties keep the
// earliest record.
func Optimal(records []ScheduleRecord) (ScheduleRecord, bool) {
	if len(records) == 0 {
		return ScheduleRecord{}, false
	}
	best := records[0]
	for _, record := range records[1:] {
		if record.Overpayment < best.Overpayment {
			best = record
		}
	}
	return best, true
}
