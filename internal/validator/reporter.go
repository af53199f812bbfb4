package validator

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
)

// Format specifies the output format for reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// Reporter writes results in one format.
type Reporter struct {
	out    io.Writer
	format Format
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{out: out, format: format}
}

// Report writes result to the output.
func (r *Reporter) Report(result *Result) error {
	if result == nil {
		result = &Result{}
	}
	if r.format == FormatJSON {
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(result), "encoding JSON report")
	}
	r.reportText(result)
	return nil
}

var sections = []struct {
	severity Severity
	title    string
	color    color.Attribute
}{
	{SeverityError, "Errors", color.FgRed},
	{SeverityWarning, "Warnings", color.FgYellow},
	{SeverityInfo, "Notes", color.FgCyan},
}

func (r *Reporter) reportText(result *Result) {
	if result.Source != "" {
		fmt.Fprintf(r.out, "%s\n", color.New(color.FgHiBlack).Sprint(result.Source))
	}

	errs := len(result.Filter(SeverityError))
	warns := len(result.Filter(SeverityWarning))
	switch {
	case errs > 0:
		fmt.Fprintf(r.out, "%s, %d warning(s)\n", color.RedString("Invalid: %d error(s)", errs), warns)
	case warns > 0:
		fmt.Fprintln(r.out, color.YellowString("Valid with %d warning(s)", warns))
	default:
		fmt.Fprintln(r.out, color.GreenString("✓ Configuration is valid"))
	}

	for _, sec := range sections {
		issues := result.Filter(sec.severity)
		if len(issues) == 0 {
			continue
		}
		fmt.Fprintf(r.out, "\n%s:\n", sec.title)
		field := color.New(sec.color).SprintFunc()
		for _, i := range issues {
			line := "  • "
			if i.Field != "" {
				line += field(i.Field) + ": "
			}
			line += i.Message
			if i.Value != nil {
				v := fmt.Sprintf("%v", i.Value)
				if len(v) > 50 {
					v = v[:47] + "..."
				}
				line += color.New(color.FgHiBlack).Sprintf(" [%s]", v)
			}
			fmt.Fprintln(r.out, line)
		}
	}
}
