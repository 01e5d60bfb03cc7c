package codetables

import (
	"regexp"

	"synop_parser/internal/obs"
)

// Figures reserved in code table 4687 (present weather phenomenon not
// specified in 4677).
var weather4687NotUsed = map[int]bool{
	0: true, 1: true, 2: true, 3: true, 5: true, 12: true, 14: true, 15: true,
	16: true, 28: true, 29: true, 31: true, 32: true, 33: true, 34: true,
	35: true, 36: true, 37: true, 38: true, 40: true, 58: true, 68: true,
	69: true, 94: true, 95: true, 96: true, 97: true, 98: true, 99: true,
}

// DecodeWeather4687 decodes a present weather phenomenon figure from
// code table 4687.
func DecodeWeather4687(raw string) (*Simple, error) {
	code, err := parseCode(raw, "4687")
	if err != nil {
		return nil, err
	}
	if code < 0 || code > 99 || weather4687NotUsed[code] {
		return nil, obs.Invalid(raw, "code table 4687")
	}
	return &Simple{Value: obs.Int(code), Table: "4687"}, nil
}

var regionPrefixes = regexp.MustCompile(`^(1[1-7]|2[1-6]|3[1-4]|4[1-8]|5[1-6]|6[1-6]|7[1-4])`)

// Region is the WMO region a station index belongs to (code table
// 0161).
type Region struct {
	Value string `json:"value"`
	Table string `json:"_table,omitempty"`
}

// DecodeRegion0161 determines the WMO region from a station index.
func DecodeRegion0161(raw string) (*Region, error) {
	m := regionPrefixes.FindString(raw)
	if m == "" {
		return nil, obs.Invalid(raw, "code table 0161")
	}
	regions := []string{"", "I", "II", "III", "IV", "V", "VI", "Antarctic"}
	return &Region{Value: regions[int(m[0]-'0')], Table: "0161"}, nil
}

// TemperatureChange is a temperature change reported in group 54g0sndT
// (code table 0822).
type TemperatureChange struct {
	Value      *float64 `json:"value,omitempty"`
	Quantifier string   `json:"quantifier,omitempty"`
	Unit       string   `json:"unit,omitempty"`
	Table      string   `json:"_table,omitempty"`
	Code       *int     `json:"_code,omitempty"`
}

// DecodeTemperatureChange0822 decodes a temperature change. sign is the
// s figure preceding the change figure (0 positive, 1 negative).
func DecodeTemperatureChange0822(raw string, sign int) (*TemperatureChange, error) {
	code, err := parseCode(raw, "0822")
	if err != nil {
		return nil, err
	}
	if code < 0 || code > 9 {
		return nil, obs.Invalid(raw, "code table 0822")
	}
	mult := 1.0
	if sign == 1 {
		mult = -1
	} else if sign != 0 {
		return nil, obs.Invalid(raw, "code table 0822")
	}
	t := &TemperatureChange{Unit: "Cel", Table: "0822", Code: obs.Int(code)}
	if code <= 4 {
		val := float64(code+10) * mult
		t.Value = obs.Float(val)
		if code == 4 {
			t.Quantifier = obs.IsGreaterOrEqual
		}
	} else {
		t.Value = obs.Float(float64(code) * mult)
	}
	return t, nil
}

// EncodeTemperatureChange0822 encodes the magnitude of a temperature
// change. The sign figure is encoded separately by the caller.
func EncodeTemperatureChange0822(t *TemperatureChange) (string, error) {
	if t == nil {
		return "", obs.Encodef("no value for code table 0822")
	}
	if t.Code != nil {
		return fmtCode(*t.Code, 1), nil
	}
	if t.Value == nil {
		return "", obs.Encodef("no value for code table 0822")
	}
	val := *t.Value
	if val < 0 {
		val = -val
	}
	switch {
	case val >= 14:
		return "4", nil
	case val >= 10:
		return fmtCode(int(val)-10, 1), nil
	case val >= 5:
		return fmtCode(int(val), 1), nil
	}
	return "", obs.Encodef("cannot encode temperature change %v in code table 0822", *t.Value)
}

// TimeBeforeObs is an elapsed time before the observation (code table
// 4077, reported in units of six minutes up to six hours).
type TimeBeforeObs struct {
	Value *float64 `json:"value,omitempty"`
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
	Unit  string   `json:"unit,omitempty"`
	Table string   `json:"_table,omitempty"`
	Code  *int     `json:"_code,omitempty"`
}

// DecodeTimeBeforeObs4077 decodes the time of commencement of a
// phenomenon before the hour of observation.
func DecodeTimeBeforeObs4077(raw string) (*TimeBeforeObs, error) {
	if !obs.IsAvailable(raw) {
		return nil, nil
	}
	code, err := parseCode(raw, "4077")
	if err != nil {
		return nil, err
	}
	t := &TimeBeforeObs{Table: "4077", Code: obs.Int(code)}
	switch {
	case code <= 60:
		t.Value = obs.Float(float64(code * 6))
		t.Unit = "min"
	case code <= 66:
		t.Min = obs.Float(float64(code - 55))
		t.Max = obs.Float(float64(code - 54))
		t.Unit = "h"
	default:
		return nil, obs.Invalid(raw, "code table 4077")
	}
	return t, nil
}

// DecodeVariabilityTime4077 decodes the zi figure combining time before
// observation with visibility variability (codes 76 and up).
func DecodeVariabilityTime4077(raw string) (*TimeBeforeObs, error) {
	if !obs.IsAvailable(raw) {
		return nil, nil
	}
	code, err := parseCode(raw, "4077")
	if err != nil {
		return nil, err
	}
	if code < 76 || code > 99 {
		return nil, obs.Invalid(raw, "code table 4077")
	}
	return &TimeBeforeObs{
		Value: obs.Float(float64(code)),
		Table: "4077",
		Code:  obs.Int(code),
	}, nil
}

// EncodeTimeBeforeObs4077 encodes an elapsed time before observation.
func EncodeTimeBeforeObs4077(t *TimeBeforeObs) (string, error) {
	if t == nil {
		return "", obs.Encodef("no value for code table 4077")
	}
	if t.Code != nil {
		return fmtCode(*t.Code, 2), nil
	}
	if t.Value != nil && t.Unit == "min" {
		return fmtCode(int(*t.Value)/6, 2), nil
	}
	if t.Min != nil && t.Unit == "h" {
		return fmtCode(int(*t.Min)+55, 2), nil
	}
	return "", obs.Encodef("no code for time before observation in code table 4077")
}

// EvaporationInstrument is the instrumentation for evaporation
// measurement or the crop type for evapotranspiration (code table
// 1806).
type EvaporationInstrument struct {
	Value *int   `json:"value"`
	Type  string `json:"type,omitempty"`
	Table string `json:"_table,omitempty"`
}

// DecodeEvaporationInstrument1806 decodes the iE figure of group 5EEEiE.
func DecodeEvaporationInstrument1806(raw string) (*EvaporationInstrument, error) {
	if !obs.IsAvailable(raw) {
		return nil, nil
	}
	code, err := parseCode(raw, "1806")
	if err != nil {
		return nil, err
	}
	if code < 0 || code > 9 {
		return nil, obs.Invalid(raw, "code table 1806")
	}
	typ := "evaporation"
	if code >= 5 {
		typ = "evapotranspiration"
	}
	return &EvaporationInstrument{Value: obs.Int(code), Type: typ, Table: "1806"}, nil
}

// EncodeEvaporationInstrument1806 encodes the iE figure.
func EncodeEvaporationInstrument1806(e *EvaporationInstrument) (string, error) {
	if e == nil || e.Value == nil {
		return "/", nil
	}
	return fmtCode(*e.Value, 1), nil
}
