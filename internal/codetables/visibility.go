package codetables

import "synop_parser/internal/obs"

// Visibility is horizontal visibility at the surface (code table 4377).
// Use90 records whether the raw code came from the 90-99 coarse scale
// used by sea stations, so re-encoding picks the same scale.
type Visibility struct {
	Value      *float64 `json:"value"`
	Quantifier string   `json:"quantifier,omitempty"`
	Use90      bool     `json:"use90"`
	Unit       string   `json:"unit,omitempty"`
	Table      string   `json:"_table,omitempty"`
	Code       *int     `json:"_code,omitempty"`
}

var visibility90 = []Range{
	{0, obs.Float(50)}, {50, obs.Float(200)}, {200, obs.Float(500)},
	{500, obs.Float(1000)}, {1000, obs.Float(2000)}, {2000, obs.Float(4000)},
	{4000, obs.Float(10000)}, {10000, obs.Float(20000)}, {20000, obs.Float(50000)},
}

// DecodeVisibility4377 decodes horizontal visibility in metres. Codes
// 51-55 are not used.
func DecodeVisibility4377(raw string) (*Visibility, error) {
	code, err := parseCode(raw, "4377")
	if err != nil {
		return nil, err
	}
	v := &Visibility{Unit: "m", Table: "4377", Code: obs.Int(code), Use90: code >= 90}
	switch {
	case 51 <= code && code <= 55:
		return nil, obs.Invalid(raw, "code table 4377")
	case code == 0:
		v.Value = obs.Float(100)
		v.Quantifier = obs.IsLess
	case code <= 50:
		v.Value = obs.Float(float64(code) * 100)
	case code <= 80:
		v.Value = obs.Float(float64(code-50) * 1000)
	case code <= 88:
		v.Value = obs.Float(float64(code-74) * 5000)
	case code == 89:
		v.Value = obs.Float(70000)
		v.Quantifier = obs.IsGreater
	case code == 90:
		v.Value = obs.Float(50)
		v.Quantifier = obs.IsLess
	case code <= 98:
		v.Value = obs.Float(visibility90[code-90].Min)
	case code == 99:
		v.Value = obs.Float(50000)
		v.Quantifier = obs.IsGreaterOrEqual
	default:
		return nil, obs.Invalid(raw, "code table 4377")
	}
	return v, nil
}

// EncodeVisibility4377 encodes horizontal visibility. With use90 set,
// the 90-99 coarse scale is used instead of the standard scale.
func EncodeVisibility4377(v *Visibility, use90 bool) (string, error) {
	if v == nil {
		return "", obs.Encodef("no value for code table 4377")
	}
	if v.Code != nil {
		return fmtCode(*v.Code, 2), nil
	}
	if v.Value == nil {
		return "", obs.Encodef("no code for visibility in code table 4377")
	}
	value := *v.Value
	if use90 {
		for i, r := range visibility90 {
			if r.Min <= value && value < *r.Max {
				return fmtCode(i+90, 2), nil
			}
		}
		if value >= 50000 {
			return "99", nil
		}
		return "", obs.Encodef("cannot encode visibility %v", value)
	}
	var code int
	switch {
	case value < 100:
		code = 0
	case value <= 5000:
		code = int(value / 100)
	case value <= 30000:
		code = int(value/1000) + 50
	case value <= 70000 && v.Quantifier == "":
		code = int(value/5000) + 74
	default:
		code = 89
	}
	return fmtCode(code, 2), nil
}
