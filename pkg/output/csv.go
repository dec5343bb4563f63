package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"github.com/shopspring/decimal"
)

// RecordCsvHeader is the header row written by CsvString.
var RecordCsvHeader = []string{
	"years",
	"total_payment",
	"initial_payment",
	"principal",
	"property_value",
	"overpayment",
	"overpayment_percentage",
}

// BreakdownCsvHeader is the header row written by BreakdownCsvString.
var BreakdownCsvHeader = []string{
	"period",
	"principal_portion",
	"interest_portion",
	"remaining_balance_after",
}

// CsvString renders records as CSV. Amounts are rounded to whole currency
// units and the overpayment percentage to a whole percent.
func CsvString(records []mortgage.ScheduleRecord) (string, error) {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, RecordCsvHeader)
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Years),
			wholeUnits(record.TotalPayment),
			wholeUnits(record.InitialPayment),
			wholeUnits(record.Principal),
			wholeUnits(record.PropertyValue),
			wholeUnits(record.Overpayment),
			wholeUnits(record.OverpaymentPercentage * constants.PercentageMultiplier),
		})
	}
	return writeRows(rows)
}

// BreakdownCsvString renders a decomposition as CSV with amounts rounded to
// whole currency units.
func BreakdownCsvString(periods []mortgage.PeriodBreakdown) (string, error) {
	rows := make([][]string, 0, len(periods)+1)
	rows = append(rows, BreakdownCsvHeader)
	for _, period := range periods {
		rows = append(rows, []string{
			strconv.Itoa(period.PeriodIndex),
			wholeUnits(period.PrincipalPortion),
			wholeUnits(period.InterestPortion),
			wholeUnits(period.RemainingBalanceAfter),
		})
	}
	return writeRows(rows)
}

func wholeUnits(value float64) string {
	return decimal.NewFromFloat(value).Round(0).String()
}

func writeRows(rows [][]string) (string, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.WriteAll(rows); err != nil {
		return "", err
	}
	return buf.String(), nil
}
