package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"ezcfg/internal/common"
)

// Diagnostic codes reported by the binder.
const (
	CodeTarget          = "target"
	CodeFieldUnexported = "field_unexported"
	CodeInvalidPath     = "invalid_path"
	CodeFieldRead       = "field_read"
	CodeFieldAssign     = "field_assign"
	CodeStoreWrite      = "store_write"
	CodeUnknownKind     = "unknown_kind"
	CodeKindMismatch    = "kind_mismatch"
	CodeDuplicate       = "duplicate"
	CodeCopy            = "copy"
	CodeComment         = "comment"
	CodeBackfill        = "backfill"
	CodeUpdate          = "update"
)

// Diagnostics holds everything one reconciliation pass had to report.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Field is the qualified Go field, Settings.Port.
	Field string
	// Path is the store path of the field (if any).
	Path string
	// Cause is the underlying error (if any).
	Cause error
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// New returns empty diagnostics.
func New() *Diagnostics {
	return &Diagnostics{}
}

func (d *Diagnostics) add(list *[]Diagnostic, sev DiagnosticSeverity, code, message, field, path string, cause error) {
	*list = append(*list, Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  message,
		Field:    field,
		Path:     path,
		Cause:    cause,
	})
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, field, path string, cause error) {
	d.add(&d.Errors, DiagnosticError, code, message, field, path, cause)
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, field, path string, cause error) {
	d.add(&d.Warnings, DiagnosticWarning, code, message, field, path, cause)
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, field, path string) {
	d.add(&d.Infos, DiagnosticInfo, code, message, field, path, nil)
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// HasWarnings returns true if there are any warning diagnostics.
func (d *Diagnostics) HasWarnings() bool {
	return len(d.Warnings) > 0
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Codes returns the codes of all warnings and errors in report order.
func (d *Diagnostics) Codes() []string {
	codes := make([]string, 0, len(d.Warnings)+len(d.Errors))
	for _, w := range d.Warnings {
		codes = append(codes, w.Code)
	}
	for _, e := range d.Errors {
		codes = append(codes, e.Code)
	}

	return codes
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var errs []error
	for _, e := range d.Errors {
		errs = append(errs, e)
	}

	return errors.Join(errs...)
}

// Error makes a diagnostic usable as an error wrapping its cause.
func (d Diagnostic) Error() string {
	return d.String()
}

func (d Diagnostic) Unwrap() error {
	return d.Cause
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Field != "" {
		prefix = append(prefix, d.Field)
	}

	if d.Path != "" {
		prefix = append(prefix, "("+d.Path+")")
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if d.Cause != nil {
		msg += ": " + d.Cause.Error()
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
