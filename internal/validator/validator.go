package validator

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Severity represents the impact of an issue.
type Severity int

const (
	// SeverityError makes the configuration unusable.
	SeverityError Severity = iota
	// SeverityWarning is accepted but probably not what was meant.
	SeverityWarning
	// SeverityInfo is a note about effective behavior.
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	default:
		return errors.Newf("unknown severity %q", text)
	}
	return nil
}

// Issue is a single finding about one configuration key.
type Issue struct {
	Severity Severity `json:"severity"`
	// Field is the dotted config key, if the issue concerns one.
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// Error implements the error interface.
func (i Issue) Error() string {
	var sb strings.Builder
	sb.WriteString(i.Severity.String())
	sb.WriteString(": ")
	if i.Field != "" {
		sb.WriteString(i.Field)
		sb.WriteString(": ")
	}
	sb.WriteString(i.Message)
	if i.Value != nil {
		fmt.Fprintf(&sb, " (got %v)", i.Value)
	}
	return sb.String()
}

// Result aggregates issues in the order they were found.
type Result struct {
	Source string  `json:"source,omitempty"`
	Issues []Issue `json:"issues"`
}

func (r *Result) add(s Severity, field, message string, value any) {
	r.Issues = append(r.Issues, Issue{Severity: s, Field: field, Message: message, Value: value})
}

// AddError records a blocking issue.
func (r *Result) AddError(field, message string, value any) {
	r.add(SeverityError, field, message, value)
}

// AddWarning records a non-blocking issue.
func (r *Result) AddWarning(field, message string, value any) {
	r.add(SeverityWarning, field, message, value)
}

// AddInfo records a note.
func (r *Result) AddInfo(field, message string, value any) {
	r.add(SeverityInfo, field, message, value)
}

// HasErrors reports whether any issue is an error.
func (r *Result) HasErrors() bool {
	return len(r.Filter(SeverityError)) > 0
}

// Filter returns the issues with severity s.
func (r *Result) Filter(s Severity) []Issue {
	if r == nil {
		return nil
	}
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity == s {
			out = append(out, i)
		}
	}
	return out
}

// Err returns nil when there are no errors, otherwise an error listing them.
func (r *Result) Err() error {
	errs := r.Filter(SeverityError)
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return errors.Newf("%d configuration error(s): %s", len(errs), strings.Join(msgs, "; "))
}
