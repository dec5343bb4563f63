package output

import (
	"fmt"
	"io"

	"github.com/iwvelando/mortgage-calculator/internal/calculation"
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
)

// Format selects how a report is rendered.
type Format string

const (
	FormatPretty Format = constants.OutputFormatPretty
	FormatCSV    Format = constants.OutputFormatCSV
)

// ParseFormat resolves an output format name. An empty name selects the
// pretty tables, any other name must match exactly.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case "":
		return FormatPretty, nil
	case FormatPretty, FormatCSV:
		return Format(name), nil
	}
	return "", fmt.Errorf("expected output format of %s or %s, got %s",
		constants.OutputFormatPretty, constants.OutputFormatCSV, name)
}

// Write renders report to w in format f.
func Write(w io.Writer, f Format, report *calculation.Report) error {
	switch f {
	case FormatPretty:
		WritePretty(w, report)
		return nil
	case FormatCSV:
		return WriteCsv(w, report)
	}
	return fmt.Errorf("unsupported output format %q", string(f))
}
