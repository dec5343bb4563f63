// Package output provides utilities for formatting and displaying calculation results.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/mortgage-calculator/internal/calculation"
	"github.com/iwvelando/mortgage-calculator/pkg/format"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// WritePretty renders report as aligned tables.
func WritePretty(w io.Writer, report *calculation.Report) {
	p := message.NewPrinter(language.English)

	_, _ = fmt.Fprintf(w, "--- Results for %s at %.2f%% ---\n", describeMode(report.Params), report.Params.InterestRatePercent)
	writeRecordTable(w, p, report.Records)

	if report.Optimal != nil {
		_, _ = fmt.Fprintf(w, "Lowest overpayment: %d years, %s (%s) at %s per month\n",
			report.Optimal.Years, format.Decimal(report.Optimal.Overpayment),
			format.Percent(report.Optimal.OverpaymentPercentage), format.Decimal(report.Optimal.MonthlyPayment))
	}

	if len(report.Comparison) > 0 {
		_, _ = fmt.Fprintf(w, "\n--- Alternate %s at %.2f%% ---\n", describeMode(*report.AlternateParams), report.AlternateParams.InterestRatePercent)
		_, _ = fmt.Fprintf(w, "Years | Property value (base) | Property value (alt) | Overpayment (base) | Overpayment (alt) | Overpayment delta\n")
		_, _ = fmt.Fprintf(w, "_____ | _____________________ | ____________________ | __________________ | _________________ | _________________\n")
		for _, row := range report.Comparison {
			_, _ = p.Fprintf(w, "%5d | %21.0f | %20.0f | %18.0f | %17.0f | %17s\n",
				row.Years, row.Baseline.PropertyValue, row.Alternate.PropertyValue,
				row.Baseline.Overpayment, row.Alternate.Overpayment, format.Millions(row.OverpaymentDelta()))
		}
	}

	if report.Breakdown != nil {
		b := report.Breakdown
		_, _ = fmt.Fprintf(w, "\n--- Payments over %d years (%s) ---\n", b.Years, b.Granularity)
		_, _ = fmt.Fprintf(w, "Period | Principal      | Interest       | Interest share | Balance\n")
		_, _ = fmt.Fprintf(w, "______ | ______________ | ______________ | ______________ | _______________\n")
		for _, period := range b.Periods {
			_, _ = p.Fprintf(w, "%6d | %14.2f | %14.2f | %14s | %15.2f\n",
				period.PeriodIndex, period.PrincipalPortion, period.InterestPortion,
				format.Percent(period.InterestShare()), period.RemainingBalanceAfter)
		}
	}
}

func writeRecordTable(w io.Writer, p *message.Printer, records []mortgage.ScheduleRecord) {
	_, _ = fmt.Fprintf(w, "Years | Monthly payment | Principal       | Property value  | Total payment   | Overpayment     | %%    | Notes\n")
	_, _ = fmt.Fprintf(w, "_____ | _______________ | _______________ | _______________ | _______________ | _______________ | _____ | _____\n")
	for _, record := range records {
		notes := ""
		if record.BelowMinimumInitialPayment() {
			notes = fmt.Sprintf("initial payment %.1f%% < %.1f%%", record.InitialPaymentPercentage(), record.MinInitialPaymentPercentage)
		}
		_, _ = p.Fprintf(w, "%5d | %15.2f | %15.0f | %15.0f | %15.0f | %15.0f | %5s | %s\n",
			record.Years, record.MonthlyPayment, record.Principal, record.PropertyValue,
			record.TotalPayment, record.Overpayment, format.Percent(record.OverpaymentPercentage), notes)
	}
}

func describeMode(p mortgage.Params) string {
	if p.Mode == nil {
		return "unknown mode"
	}
	switch p.Mode.Kind() {
	case mortgage.ModeByMonthlyPayment:
		return "monthly payment " + format.Amount(p.Mode.Value())
	case mortgage.ModeByPropertyValue:
		return "property value " + format.Amount(p.Mode.Value())
	}
	return strings.ReplaceAll(string(p.Mode.Kind()), "_", " ")
}

// WriteCsv writes the baseline records, then the alternate records and the
// breakdown when present, each as its own CSV block separated by a blank line.
func WriteCsv(w io.Writer, report *calculation.Report) error {
	blocks := make([]string, 0, 3)

	baseline, err := CsvString(report.Records)
	if err != nil {
		return err
	}
	blocks = append(blocks, baseline)

	if report.AlternateRecords != nil {
		alternate, err := CsvString(report.AlternateRecords)
		if err != nil {
			return err
		}
		blocks = append(blocks, alternate)
	}

	if report.Breakdown != nil {
		breakdown, err := BreakdownCsvString(report.Breakdown.Periods)
		if err != nil {
			return err
		}
		blocks = append(blocks, breakdown)
	}

	_, err = io.WriteString(w, strings.Join(blocks, "\n"))
	return err
}
