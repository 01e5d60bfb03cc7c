package codetables

import (
	"math"

	"synop_parser/internal/obs"
)

// PrecipAmount is an amount of precipitation (code tables 3590 and
// 3590 for 24 hour totals). Code 990 or 9999 reports a trace.
type PrecipAmount struct {
	Value      *float64 `json:"value"`
	Quantifier string   `json:"quantifier,omitempty"`
	Trace      bool     `json:"trace"`
	Unit       string   `json:"unit,omitempty"`
	Table      string   `json:"_table,omitempty"`
	Code       *int     `json:"_code,omitempty"`
}

// DecodePrecip3590 decodes a three figure precipitation amount in mm.
func DecodePrecip3590(raw string) (*PrecipAmount, error) {
	code, err := parseCode(raw, "3590")
	if err != nil {
		return nil, err
	}
	p := &PrecipAmount{Unit: "mm", Table: "3590", Code: obs.Int(code)}
	switch {
	case code <= 988:
		p.Value = obs.Float(float64(code))
	case code == 989:
		p.Value = obs.Float(float64(code))
		p.Quantifier = obs.IsGreaterOrEqual
	case code == 990:
		p.Value = obs.Float(0)
		p.Trace = true
	case 991 <= code && code <= 999:
		p.Value = obs.Float(float64(code-990) / 10)
	default:
		return nil, obs.Decodef("%s is not a valid precipitation code for code table 3590", raw)
	}
	return p, nil
}

// EncodePrecip3590 encodes a three figure precipitation amount.
func EncodePrecip3590(p *PrecipAmount) (string, error) {
	if p == nil {
		return "", obs.Encodef("no value for code table 3590")
	}
	if p.Code != nil {
		return fmtCode(*p.Code, 3), nil
	}
	if p.Value == nil {
		return "", obs.Encodef("no code for precipitation in code table 3590")
	}
	val := *p.Value
	if val < 1 {
		return fmtCode(int(val*10)+990, 3), nil
	}
	return fmtCode(int(val), 3), nil
}

// DecodePrecip24h3590 decodes a four figure 24 hour precipitation
// amount in tenths of mm.
func DecodePrecip24h3590(raw string) (*PrecipAmount, error) {
	code, err := parseCode(raw, "3590")
	if err != nil {
		return nil, err
	}
	p := &PrecipAmount{Unit: "mm", Table: "3590", Code: obs.Int(code)}
	switch {
	case code <= 9998:
		p.Value = obs.Float(float64(code) / 10)
	case code == 9999:
		p.Value = obs.Float(0)
		p.Trace = true
	default:
		return nil, obs.Decodef("%s is not a valid precipitation code for code table 3590", raw)
	}
	return p, nil
}

// EncodePrecip24h3590 encodes a four figure 24 hour precipitation
// amount.
func EncodePrecip24h3590(p *PrecipAmount) (string, error) {
	if p == nil {
		return "", obs.Encodef("no value for code table 3590")
	}
	if p.Code != nil {
		return fmtCode(*p.Code, 4), nil
	}
	if p.Trace {
		return "9999", nil
	}
	if p.Value == nil {
		return "", obs.Encodef("no code for precipitation in code table 3590")
	}
	return fmtCode(int(math.Round(*p.Value*10)), 4), nil
}

var precipDuration0833 = []Range{
	{0, obs.Float(1)}, {1, obs.Float(3)}, {3, obs.Float(6)}, {6, nil},
}

// DecodePrecipDuration0833 decodes the duration and character of
// precipitation. The table is decode only.
func DecodePrecipDuration0833(raw string) (*obs.Measure, error) {
	code, err := parseCode(raw, "0833")
	if err != nil {
		return nil, err
	}
	if code < 0 || code > 9 || code == 8 {
		return nil, obs.Invalid(raw, "code table 0833")
	}
	m := &obs.Measure{Unit: "h", Table: "0833", Code: obs.Int(code)}
	if code == 9 {
		m.Unknown = true
		return m, nil
	}
	r := precipDuration0833[code%4]
	m.Min = obs.Float(r.Min)
	m.Max = r.Max
	if r.Max == nil {
		m.Quantifier = obs.IsGreater
	}
	return m, nil
}

var precipTime3552 = []Range{
	{}, {0, obs.Float(1)}, {1, obs.Float(2)}, {2, obs.Float(3)}, {3, obs.Float(4)},
	{4, obs.Float(5)}, {5, obs.Float(6)}, {6, obs.Float(12)}, {12, nil},
}

// DecodePrecipTime3552 decodes the time at which precipitation began or
// ended. Code 0 reports no precipitation and decodes to nil. The table
// is decode only.
func DecodePrecipTime3552(raw string) (*obs.Measure, error) {
	code, err := parseCode(raw, "3552")
	if err != nil {
		return nil, err
	}
	if code < 0 || code > 9 {
		return nil, obs.Invalid(raw, "code table 3552")
	}
	if code == 0 {
		return nil, nil
	}
	m := &obs.Measure{Unit: "h", Table: "3552", Code: obs.Int(code)}
	if code == 9 {
		m.Unknown = true
		return m, nil
	}
	r := precipTime3552[code]
	m.Min = obs.Float(r.Min)
	m.Max = r.Max
	if r.Max == nil {
		m.Quantifier = obs.IsGreater
	}
	return m, nil
}

var precipTime168 = []Range{
	{}, {0, obs.Float(1)}, {1, obs.Float(2)}, {2, obs.Float(3)}, {3, obs.Float(4)},
	{4, obs.Float(5)}, {5, obs.Float(6)}, {6, obs.Float(8)}, {8, obs.Float(10)}, {10, nil},
}

// DecodePrecipTime168 decodes the time of beginning or end of
// precipitation (Region I). The table is decode only.
func DecodePrecipTime168(raw string) (*obs.Measure, error) {
	code, err := parseCode(raw, "168")
	if err != nil {
		return nil, err
	}
	if code < 0 || code > 9 {
		return nil, obs.Invalid(raw, "code table 168")
	}
	m := &obs.Measure{Table: "168", Code: obs.Int(code)}
	if code == 0 {
		return m, nil
	}
	m.Unit = "h"
	r := precipTime168[code]
	m.Min = obs.Float(r.Min)
	m.Max = r.Max
	if r.Max == nil {
		m.Quantifier = obs.IsGreater
	}
	return m, nil
}

// DepositDiameter is the amount of precipitation, water equivalent of
// solid precipitation or diameter of solid deposit (code table 3570).
// The table is decode only.
type DepositDiameter struct {
	Value         *float64 `json:"value"`
	NonMeasurable bool     `json:"non_measurable"`
	Quantifier    string   `json:"quantifier,omitempty"`
	Impossible    bool     `json:"impossible"`
	Unit          string   `json:"unit,omitempty"`
	Table         string   `json:"_table,omitempty"`
	Code          *int     `json:"_code,omitempty"`
}

// DecodeDeposit3570 decodes a two figure deposit diameter in mm.
func DecodeDeposit3570(raw string) (*DepositDiameter, error) {
	code, err := parseCode(raw, "3570")
	if err != nil {
		return nil, err
	}
	d := &DepositDiameter{Unit: "mm", Table: "3570", Code: obs.Int(code)}
	switch {
	case 0 <= code && code <= 55:
		d.Value = obs.Float(float64(code))
	case 56 <= code && code <= 90:
		d.Value = obs.Float(float64(code-50) * 10)
	case 91 <= code && code <= 96:
		d.Value = obs.Float(float64(code-90) / 10)
	case code == 97 || code == 99:
		d.NonMeasurable = true
	case code == 98:
		d.Value = obs.Float(400)
		d.Quantifier = obs.IsGreater
	default:
		return nil, obs.Invalid(raw, "code table 3570")
	}
	return d, nil
}

// SnowFallAmount is the depth of newly fallen snow (code table 3870).
// The table is decode only.
type SnowFallAmount struct {
	Value      *float64 `json:"value"`
	Quantifier string   `json:"quantifier,omitempty"`
	Inaccurate bool     `json:"inaccurate"`
	Unit       string   `json:"unit,omitempty"`
	Table      string   `json:"_table,omitempty"`
	Code       *int     `json:"_code,omitempty"`
}

// DecodeSnowFall3870 decodes the depth of newly fallen snow in mm.
func DecodeSnowFall3870(raw string) (*SnowFallAmount, error) {
	code, err := parseCode(raw, "3870")
	if err != nil {
		return nil, err
	}
	s := &SnowFallAmount{Unit: "mm", Table: "3870", Code: obs.Int(code)}
	switch {
	case 0 <= code && code <= 55:
		s.Value = obs.Float(float64(code) * 10)
	case 56 <= code && code <= 90:
		s.Value = obs.Float(float64(code-50) * 100)
	case 91 <= code && code <= 96:
		s.Value = obs.Float(float64(code - 90))
	case code == 97:
		s.Value = obs.Float(1)
		s.Quantifier = obs.IsLess
	case code == 98:
		s.Value = obs.Float(4000)
		s.Quantifier = obs.IsGreater
	case code == 99:
		s.Inaccurate = true
	default:
		return nil, obs.Invalid(raw, "code table 3870")
	}
	return s, nil
}

// SnowDepth is the total depth of snow (code table 3889). Code 998
// reports patchy cover, code 999 a measurement made impossible by
// drifting.
type SnowDepth struct {
	Depth      *float64 `json:"depth"`
	Quantifier string   `json:"quantifier,omitempty"`
	Continuous bool     `json:"continuous"`
	Impossible bool     `json:"impossible"`
	Unit       string   `json:"unit,omitempty"`
	Table      string   `json:"_table,omitempty"`
	Code       *int     `json:"_code,omitempty"`
}

// DecodeSnowDepth3889 decodes the total depth of snow in cm.
func DecodeSnowDepth3889(raw string) (*SnowDepth, error) {
	code, err := parseCode(raw, "3889")
	if err != nil {
		return nil, err
	}
	if code == 0 {
		return nil, obs.Invalid(raw, "code table 3889")
	}
	d := &SnowDepth{Continuous: true, Unit: "cm", Table: "3889", Code: obs.Int(code)}
	switch code {
	case 997:
		d.Depth = obs.Float(0.5)
		d.Quantifier = obs.IsLess
	case 998:
		d.Continuous = false
	case 999:
		d.Impossible = true
	default:
		d.Depth = obs.Float(float64(code))
	}
	return d, nil
}

// EncodeSnowDepth3889 encodes the total depth of snow.
func EncodeSnowDepth3889(d *SnowDepth) (string, error) {
	if d == nil {
		return "", obs.Encodef("no value for code table 3889")
	}
	if d.Code != nil {
		return fmtCode(*d.Code, 3), nil
	}
	switch {
	case d.Depth != nil && *d.Depth == 0.5:
		return "997", nil
	case d.Depth != nil:
		return fmtCode(int(*d.Depth), 3), nil
	case !d.Continuous:
		return "998", nil
	case d.Impossible:
		return "999", nil
	}
	return "", obs.Encodef("no code for snow depth in code table 3889")
}
