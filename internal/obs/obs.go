// Package obs holds the shared vocabulary for decoded weather report
// values: numeric measures with range/quantifier semantics, availability
// checks for slash-filled groups, and the error types used across the
// decode and encode pipelines.
package obs

import (
	"fmt"
	"strings"
)

// Quantifier values attached to measures whose code maps to an open or
// inexact interval.
const (
	IsGreater        = "isGreater"
	IsGreaterOrEqual = "isGreaterOrEqual"
	IsLess           = "isLess"
)

// DecodeError is a fatal decoding failure. Recoverable problems are
// reported as warnings instead.
type DecodeError struct {
	Msg string
}

func (e *DecodeError) Error() string { return e.Msg }

// Decodef builds a DecodeError from a format string.
func Decodef(format string, args ...any) *DecodeError {
	return &DecodeError{Msg: fmt.Sprintf(format, args...)}
}

// EncodeError is a fatal encoding failure, such as a required field
// missing from a report.
type EncodeError struct {
	Msg string
}

func (e *EncodeError) Error() string { return "encoding error: " + e.Msg }

// Encodef builds an EncodeError from a format string.
func Encodef(format string, args ...any) *EncodeError {
	return &EncodeError{Msg: fmt.Sprintf(format, args...)}
}

// InvalidCode reports a code value outside its table. Callers normally
// downgrade it to a warning and omit the field.
type InvalidCode struct {
	Value string
	Desc  string
}

func (e *InvalidCode) Error() string {
	return fmt.Sprintf("%s is not a valid code for %s", e.Value, e.Desc)
}

// Invalid builds an InvalidCode error.
func Invalid(value, desc string) *InvalidCode {
	return &InvalidCode{Value: value, Desc: desc}
}

// Measure is a decoded numeric quantity. Code tables map a raw code to
// either a single value or a min/max interval; open intervals carry a
// quantifier. Code keeps the raw table code so re-encoding is exact.
type Measure struct {
	Value      *float64 `json:"value,omitempty"`
	Min        *float64 `json:"min,omitempty"`
	Max        *float64 `json:"max,omitempty"`
	Quantifier string   `json:"quantifier,omitempty"`
	Unknown    bool     `json:"unknown,omitempty"`
	Unit       string   `json:"unit,omitempty"`
	Table      string   `json:"_table,omitempty"`
	Code       *int     `json:"_code,omitempty"`
}

// Warnings collects non-fatal problems found while decoding a report.
type Warnings struct {
	list []string
}

// Addf appends a formatted warning.
func (w *Warnings) Addf(format string, args ...any) {
	if w == nil {
		return
	}
	w.list = append(w.list, fmt.Sprintf(format, args...))
}

// Add appends the message of an error as a warning.
func (w *Warnings) Add(err error) {
	if w == nil || err == nil {
		return
	}
	w.list = append(w.list, err.Error())
}

// List returns the collected warnings.
func (w *Warnings) List() []string {
	if w == nil {
		return nil
	}
	return w.list
}

// IsAvailable reports whether a raw group carries a value. A group
// consisting entirely of slashes means the value was not observed.
func IsAvailable(raw string) bool {
	if raw == "" {
		return false
	}
	return strings.Count(raw, "/") != len(raw)
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to i.
func Int(i int) *int { return &i }

// String returns a pointer to s.
func String(s string) *string { return &s }

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }
