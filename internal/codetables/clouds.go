package codetables

import "synop_parser/internal/obs"

// CloudCover is total or partial cloud cover in oktas (code table
// 2700). Code 9 means the sky was obscured.
type CloudCover struct {
	Value    *int   `json:"value"`
	Obscured bool   `json:"obscured"`
	Unit     string `json:"unit,omitempty"`
	Table    string `json:"_table,omitempty"`
	Code     *int   `json:"_code,omitempty"`
}

// DecodeCloudCover2700 decodes cloud cover in oktas.
func DecodeCloudCover2700(raw string) (*CloudCover, error) {
	code, err := parseCode(raw, "2700")
	if err != nil {
		return nil, err
	}
	if code < 0 || code > 9 {
		return nil, obs.Invalid(raw, "code table 2700")
	}
	c := &CloudCover{Unit: "okta", Table: "2700", Code: obs.Int(code)}
	if code == 9 {
		c.Obscured = true
	} else {
		c.Value = obs.Int(code)
	}
	return c, nil
}

// EncodeCloudCover2700 encodes cloud cover in oktas.
func EncodeCloudCover2700(c *CloudCover) (string, error) {
	if c == nil {
		return "", obs.Encodef("no value for code table 2700")
	}
	if c.Code != nil {
		return fmtCode(*c.Code, 1), nil
	}
	if c.Value == nil {
		if c.Obscured {
			return "9", nil
		}
		return "", obs.Encodef("no code for cloud cover in code table 2700")
	}
	return fmtCode(*c.Value, 1), nil
}

// cloud height fine bands for codes 90-98 (regulation 12.2.1.3.2)
var cloudHeight90 = []Range{
	{0, obs.Float(50)}, {50, obs.Float(100)}, {100, obs.Float(200)},
	{200, obs.Float(300)}, {300, obs.Float(600)}, {600, obs.Float(1000)},
	{1000, obs.Float(1500)}, {1500, obs.Float(2000)}, {2000, obs.Float(2500)},
}

// DecodeCloudHeight1677 decodes the height of the base of a cloud
// layer. Codes 51-55 are not used.
func DecodeCloudHeight1677(raw string) (*obs.Measure, error) {
	code, err := parseCode(raw, "1677")
	if err != nil {
		return nil, err
	}
	m := &obs.Measure{Table: "1677", Code: obs.Int(code)}
	switch {
	case code == 0:
		m.Value = obs.Float(30)
		m.Quantifier = obs.IsLess
	case 1 <= code && code <= 50:
		m.Value = obs.Float(float64(code) * 30)
	case 51 <= code && code <= 55:
		return nil, obs.Invalid(raw, "code table 1677")
	case 56 <= code && code <= 80:
		m.Value = obs.Float(float64(code-50) * 300)
	case 81 <= code && code <= 88:
		m.Value = obs.Float(float64(code-80)*1500 + 9000)
	case code == 89:
		m.Value = obs.Float(21000)
		m.Quantifier = obs.IsGreater
	case 90 <= code && code <= 98:
		r := cloudHeight90[code-90]
		m.Min = obs.Float(r.Min)
		m.Max = r.Max
	case code == 99:
		m.Value = obs.Float(2500)
		m.Quantifier = obs.IsGreater
	default:
		return nil, obs.Invalid(raw, "code table 1677")
	}
	return m, nil
}

// EncodeCloudHeight1677 encodes the height of the base of a cloud
// layer. With use90 set, the 90-99 fine band codes are used instead of
// the standard scale.
func EncodeCloudHeight1677(m *obs.Measure, use90 bool) (string, error) {
	if m == nil {
		return "", obs.Encodef("no value for code table 1677")
	}
	if m.Code != nil {
		return fmtCode(*m.Code, 2), nil
	}
	if m.Value == nil {
		return "", obs.Encodef("no code for cloud height in code table 1677")
	}
	value := *m.Value
	if use90 {
		for i, r := range cloudHeight90 {
			if r.Min <= value && value < *r.Max {
				return fmtCode(i+90, 2), nil
			}
		}
		if value >= 2500 {
			return "99", nil
		}
		return "", obs.Encodef("cannot encode cloud height %v", value)
	}
	var code int
	switch {
	case value < 30:
		code = 0
	case value <= 1500:
		code = int(value / 300)
	case value <= 9000:
		code = int(value/300) + 50
	case value <= 21000:
		code = int((value-9000)/1500) + 80
	default:
		code = 89
	}
	return fmtCode(code, 2), nil
}

// ElevationAngle is the elevation angle of a cloud top or phenomenon
// above the horizon (code table 1004). Code 0 means the summit is not
// visible.
type ElevationAngle struct {
	Value      *float64 `json:"value"`
	Quantifier string   `json:"quantifier,omitempty"`
	Visible    bool     `json:"visible"`
	Table      string   `json:"_table,omitempty"`
	Code       *int     `json:"_code,omitempty"`
}

var elevationAngles = []*float64{nil, obs.Float(45), obs.Float(30), obs.Float(20),
	obs.Float(15), obs.Float(12), obs.Float(9), obs.Float(7), obs.Float(6), obs.Float(5)}

// DecodeElevationAngle1004 decodes an elevation angle above the
// horizon.
func DecodeElevationAngle1004(raw string) (*ElevationAngle, error) {
	code, err := parseCode(raw, "1004")
	if err != nil {
		return nil, err
	}
	if code < 0 || code > 9 {
		return nil, obs.Invalid(raw, "code table 1004")
	}
	a := &ElevationAngle{Visible: code != 0, Table: "1004", Code: obs.Int(code)}
	if elevationAngles[code] != nil {
		a.Value = obs.Float(*elevationAngles[code])
	}
	switch code {
	case 1:
		a.Quantifier = obs.IsGreater
	case 9:
		a.Quantifier = obs.IsLess
	}
	return a, nil
}

// EncodeElevationAngle1004 encodes an elevation angle above the
// horizon.
func EncodeElevationAngle1004(a *ElevationAngle) (string, error) {
	if a == nil {
		return "", obs.Encodef("no value for code table 1004")
	}
	if a.Code != nil {
		return fmtCode(*a.Code, 1), nil
	}
	return "", obs.Encodef("no code for elevation angle in code table 1004")
}
