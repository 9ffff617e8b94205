package structdown

import (
	"errors"
	"fmt"
	"strings"
)

// Diagnostic codes (exported consts for IDE completion and type safety by convention)
const (
	CodeUnsupportedInTable     = "unsupported-in-table"
	CodeDictionaryNotSupported = "dictionary-not-supported"
	CodeUnsupportedShape       = "unsupported-shape"
	CodeEmptyRecord            = "empty-record"
	CodeUnknownType            = "unknown-type"
)

// Severity expresses the severity level for diagnostics.
type Severity int

const (
	// severityUnset is the zero value. Option structs rely on it to tell
	// "caller said nothing" apart from an explicit Ignore.
	severityUnset Severity = iota
	Ignore
	Warn
	Error
)

// String returns the lower-case severity name.
func (s Severity) String() string {
	switch s {
	case Ignore:
		return "ignore"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Diagnostic reports that a field's rendering kind is unsafe for the context
// it is used in. Diagnostics are data-driven and never abort classification.
type Diagnostic struct {
	Type     string   // Owning type name.
	Field    string   // Offending field name ("" for type-level diagnostics).
	Code     string   // One of the codes listed above.
	Severity Severity
	Shape    string // Human-readable description of the offending shape.
	Message  string
	// Params carries structured parameters (e.g., {"element":"Order"}) for
	// i18n and observability.
	Params map[string]any
}

// SameSite reports whether two diagnostics refer to the same (type, field,
// code) site. Identity is on the site, not on the message text, so
// re-classification is idempotent.
func (d Diagnostic) SameSite(o Diagnostic) bool {
	return d.Type == o.Type && d.Field == o.Field && d.Code == o.Code
}

// Diagnostics is a collection of shape diagnostics that implements error.
type Diagnostics []Diagnostic

// Error summarizes the first few diagnostics.
func (ds Diagnostics) Error() string {
	if len(ds) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(ds)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := ds[i]
		// e.g. unsupported-in-table at Order.Lines
		fmt.Fprintf(b, "%s at %s.%s", it.Code, it.Type, it.Field)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// HasErrors reports whether any diagnostic carries Error severity.
func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// AppendDiagnostics appends diagnostics to the destination, replacing an
// existing entry at the same site so repeated classification stays idempotent.
func AppendDiagnostics(dst Diagnostics, more ...Diagnostic) Diagnostics {
	if dst == nil {
		dst = Diagnostics{}
	}
outer:
	for _, m := range more {
		for i := range dst {
			if dst[i].SameSite(m) {
				dst[i] = m
				continue outer
			}
		}
		dst = append(dst, m)
	}
	return dst
}

// AsDiagnostics extracts Diagnostics from an error using errors.As internally.
func AsDiagnostics(err error) (Diagnostics, bool) {
	if err == nil {
		return nil, false
	}
	var ds Diagnostics
	if errors.As(err, &ds) {
		return ds, true
	}
	return nil, false
}

// DiagnosticAt creates a Diagnostic at the given site with the provided code,
// severity, message and params map. Convenience for call sites with many
// parameters.
func DiagnosticAt(typeName, field, code string, sev Severity, msg string, params map[string]any) Diagnostic {
	return Diagnostic{Type: typeName, Field: field, Code: code, Severity: sev, Message: msg, Params: params}
}
