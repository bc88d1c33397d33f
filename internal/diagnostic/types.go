package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"sheet-mapper/internal/common"
)

// Diagnostic codes.
const (
	CodeOptionalPruned = "optional_pruned"
	CodeBlankHeader    = "blank_header"
	CodeGap            = "gap"
	CodeRenamed        = "renamed"
	CodeUnnamed        = "unnamed"
	CodeHeaderMismatch = "header_mismatch"
	CodeNothingLeft    = "nothing_left"
)

// Diagnostics holds all diagnostic information from a binding or inference run.
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
	// Cell is the A1 name of the cell this relates to (if any).
	Cell string
	// Key is the dotted output key of the node this relates to (if any).
	Key string
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

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, cell, key string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  message,
		Cell:     cell,
		Key:      key,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, cell, key string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  message,
		Cell:     cell,
		Key:      key,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, cell, key string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		Cell:     cell,
		Key:      key,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// All returns every diagnostic, errors first.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Cell != "" {
		prefix = append(prefix, "["+d.Cell+"]")
	}

	if d.Key != "" {
		prefix = append(prefix, d.Key)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
