// Package output provides utilities for formatting and displaying calculation results.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/calc-engine/internal/engine"
	"github.com/iwvelando/calc-engine/pkg/constants"
	"github.com/iwvelando/calc-engine/pkg/loans"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Options controls optional sections of the output.
type Options struct {
	// ShowSchedule includes loan amortization schedules.
	ShowSchedule bool
}

// Write renders results in the named format (pretty, csv or json).
func Write(w io.Writer, format string, results []engine.Result, opts Options) error {
	switch format {
	case constants.OutputFormatPretty, "":
		PrettyFormat(w, results, opts)
		return nil
	case constants.OutputFormatCSV:
		return CsvFormat(w, results, opts)
	case constants.OutputFormatJSON:
		return JSONFormat(w, results)
	default:
		return fmt.Errorf("invalid output format %q", format)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, results []engine.Result, opts Options) {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		if result.Name != "" {
			_, _ = fmt.Fprintf(w, "--- Results for %s calculation %s ---\n", result.Type, result.Name)
		} else {
			_, _ = fmt.Fprintf(w, "--- Results for %s calculation ---\n", result.Type)
		}

		width := 0
		for _, line := range result.Summary {
			if len(line.Label) > width {
				width = len(line.Label)
			}
		}
		for _, line := range result.Summary {
			_, _ = fmt.Fprintf(w, "%-*s | %s\n", width, line.Label, line.Value)
		}

		if schedule := scheduleOf(result); opts.ShowSchedule && len(schedule) > 0 {
			_, _ = fmt.Fprintf(w, "\nPeriod | Payment | Principal | Interest | Balance\n")
			_, _ = fmt.Fprintf(w, "______ | _______ | _________ | ________ | _______\n")
			for _, row := range schedule {
				_, _ = p.Fprintf(w, "%d | $%.2f | $%.2f | $%.2f | $%.2f\n",
					row.Period, row.Payment, row.Principal, row.Interest, row.Balance)
			}
		}

		if i < len(results)-1 {
			_, _ = fmt.Fprintf(w, "\n")
		}
	}
}

// CsvFormat outputs one row per summary line in comma-separated value format.
// Loan schedules follow as a second table when requested.
func CsvFormat(w io.Writer, results []engine.Result, opts Options) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "type", "label", "value"}); err != nil {
		return err
	}
	for _, result := range results {
		for _, line := range result.Summary {
			if err := cw.Write([]string{result.Name, result.Type, line.Label, line.Value}); err != nil {
				return err
			}
		}
	}

	if opts.ShowSchedule {
		header := false
		for _, result := range results {
			for _, row := range scheduleOf(result) {
				if !header {
					cw.Flush()
					if _, err := io.WriteString(w, "\n"); err != nil {
						return err
					}
					if err := cw.Write([]string{"name", "period", "payment", "principal", "interest", "balance"}); err != nil {
						return err
					}
					header = true
				}
				if err := cw.Write([]string{
					result.Name,
					strconv.Itoa(row.Period),
					money(row.Payment),
					money(row.Principal),
					money(row.Interest),
					money(row.Balance),
				}); err != nil {
					return err
				}
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// CsvString returns the CSV output as a string.
func CsvString(results []engine.Result, opts Options) string {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, results, opts); err != nil {
		return ""
	}
	return buf.String()
}

// JSONFormat outputs the full result records as indented JSON.
func JSONFormat(w io.Writer, results []engine.Result) error {
	if results == nil {
		results = []engine.Result{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func scheduleOf(result engine.Result) []loans.Payment {
	switch out := result.Output.(type) {
	case loans.Results:
		return out.AmortizationSchedule
	case *loans.Results:
		return out.AmortizationSchedule
	default:
		return nil
	}
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', constants.CurrencyPlaces, 64)
}
