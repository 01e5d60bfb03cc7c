// Package codetables implements the WMO code tables used by FM-12
// reports. Each table maps a raw code to a decoded value and back.
// Decoded values keep the raw code so that re-encoding a decoded report
// reproduces the original figure even when several codes share a value.
package codetables

import (
	"fmt"
	"strconv"

	"synop_parser/internal/obs"
)

// Lookup is a decoded value from an enumerated code table.
type Lookup struct {
	Value string `json:"value"`
	Unit  string `json:"unit,omitempty"`
	Table string `json:"_table,omitempty"`
	Code  *int   `json:"_code,omitempty"`
}

// Simple is a decoded value from a table whose codes carry no further
// structure than the figure itself.
type Simple struct {
	Value *int   `json:"value"`
	Table string `json:"_table,omitempty"`
}

func parseCode(raw, table string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, obs.Invalid(raw, "code table "+table)
	}
	return n, nil
}

func fmtCode(code, width int) string {
	return fmt.Sprintf("%0*d", width, code)
}

// LookupTable is an enumerated code table. An empty string marks an
// unused index.
type LookupTable struct {
	Table  string
	Unit   string
	Width  int
	Values []string
}

// Decode maps a raw code to its table entry.
func (t *LookupTable) Decode(raw string) (*Lookup, error) {
	code, err := parseCode(raw, t.Table)
	if err != nil {
		return nil, err
	}
	if code < 0 || code >= len(t.Values) || t.Values[code] == "" {
		return nil, obs.Invalid(raw, "code table "+t.Table)
	}
	return &Lookup{
		Value: t.Values[code],
		Unit:  t.Unit,
		Table: t.Table,
		Code:  obs.Int(code),
	}, nil
}

// Encode maps a decoded entry back to its code.
func (t *LookupTable) Encode(v *Lookup) (string, error) {
	if v == nil {
		return "", obs.Encodef("no value for code table %s", t.Table)
	}
	if v.Code != nil {
		return fmtCode(*v.Code, t.Width), nil
	}
	for i, val := range t.Values {
		if val != "" && val == v.Value {
			return fmtCode(i, t.Width), nil
		}
	}
	return "", obs.Encodef("%q is not a value in code table %s", v.Value, t.Table)
}

// NumericLookupTable is an enumerated table whose entries are numbers.
type NumericLookupTable struct {
	Table  string
	Unit   string
	Width  int
	Values []*float64
}

// Decode maps a raw code to its numeric entry.
func (t *NumericLookupTable) Decode(raw string) (*obs.Measure, error) {
	code, err := parseCode(raw, t.Table)
	if err != nil {
		return nil, err
	}
	if code < 0 || code >= len(t.Values) || t.Values[code] == nil {
		return nil, obs.Invalid(raw, "code table "+t.Table)
	}
	return &obs.Measure{
		Value: obs.Float(*t.Values[code]),
		Unit:  t.Unit,
		Table: t.Table,
		Code:  obs.Int(code),
	}, nil
}

// Encode maps a decoded numeric entry back to its code.
func (t *NumericLookupTable) Encode(v *obs.Measure) (string, error) {
	if v == nil {
		return "", obs.Encodef("no value for code table %s", t.Table)
	}
	if v.Code != nil {
		return fmtCode(*v.Code, t.Width), nil
	}
	for i, val := range t.Values {
		if val != nil && v.Value != nil && *val == *v.Value {
			return fmtCode(i, t.Width), nil
		}
	}
	return "", obs.Encodef("no code for value in code table %s", t.Table)
}

// SimpleTable is a pass-through table with a validity range.
type SimpleTable struct {
	Table    string
	Width    int
	Min, Max int
}

// Decode parses and range-checks a raw code.
func (t *SimpleTable) Decode(raw string) (*Simple, error) {
	code, err := parseCode(raw, t.Table)
	if err != nil {
		return nil, err
	}
	if code < t.Min || code > t.Max {
		return nil, obs.Invalid(raw, "code table "+t.Table)
	}
	return &Simple{Value: obs.Int(code), Table: t.Table}, nil
}

// Encode formats a decoded code figure.
func (t *SimpleTable) Encode(v *Simple) (string, error) {
	if v == nil || v.Value == nil {
		return "", obs.Encodef("no value for code table %s", t.Table)
	}
	return fmtCode(*v.Value, t.Width), nil
}

// Range is one interval of a range table. A nil Max marks an open
// interval.
type Range struct {
	Min float64
	Max *float64
}

// RangeTable maps each code to an interval. Codes mapping to the open
// final interval decode with OpenQuantifier set.
type RangeTable struct {
	Table          string
	Unit           string
	Width          int
	OpenQuantifier string
	Ranges         []Range
}

// Decode maps a raw code to its interval.
func (t *RangeTable) Decode(raw string) (*obs.Measure, error) {
	code, err := parseCode(raw, t.Table)
	if err != nil {
		return nil, err
	}
	if code < 0 || code >= len(t.Ranges) {
		return nil, obs.Invalid(raw, "code table "+t.Table)
	}
	r := t.Ranges[code]
	m := &obs.Measure{
		Min:   obs.Float(r.Min),
		Max:   r.Max,
		Unit:  t.Unit,
		Table: t.Table,
		Code:  obs.Int(code),
	}
	if r.Max == nil {
		m.Quantifier = t.OpenQuantifier
	}
	return m, nil
}

// Encode maps an interval, or a value falling inside one, back to its
// code.
func (t *RangeTable) Encode(v *obs.Measure) (string, error) {
	if v == nil {
		return "", obs.Encodef("no value for code table %s", t.Table)
	}
	if v.Code != nil {
		return fmtCode(*v.Code, t.Width), nil
	}
	if v.Value != nil {
		for i, r := range t.Ranges {
			if r.Min <= *v.Value && (r.Max == nil || *v.Value <= *r.Max) {
				return fmtCode(i, t.Width), nil
			}
		}
	}
	if v.Min != nil {
		for i, r := range t.Ranges {
			if r.Min != *v.Min {
				continue
			}
			if r.Max == nil && v.Max == nil {
				return fmtCode(i, t.Width), nil
			}
			if r.Max != nil && v.Max != nil && *r.Max == *v.Max {
				return fmtCode(i, t.Width), nil
			}
		}
	}
	return "", obs.Encodef("no code for value in code table %s", t.Table)
}
