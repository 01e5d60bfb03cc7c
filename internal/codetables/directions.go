package codetables

import "synop_parser/internal/obs"

var compassPoints = []string{"", "NE", "E", "SE", "S", "SW", "W", "NW", "N", ""}

// Cardinal is a direction or bearing in one figure (code table 0700).
// Code 0 stands for calm or stationary, code 9 for all directions.
type Cardinal struct {
	Value              *string `json:"value"`
	IsCalmOrStationary *bool   `json:"isCalmOrStationary"`
	AllDirections      *bool   `json:"allDirections"`
	Table              string  `json:"_table,omitempty"`
	Code               *int    `json:"_code,omitempty"`
}

// DecodeCardinal0700 decodes a one figure direction.
func DecodeCardinal0700(raw string) (*Cardinal, error) {
	if raw == "/" {
		return &Cardinal{Table: "0700"}, nil
	}
	code, err := parseCode(raw, "0700")
	if err != nil {
		return nil, err
	}
	if code < 0 || code > 9 {
		return nil, obs.Invalid(raw, "code table 0700")
	}
	c := &Cardinal{
		IsCalmOrStationary: obs.Bool(code == 0),
		AllDirections:      obs.Bool(code == 9),
		Table:              "0700",
		Code:               obs.Int(code),
	}
	if dir := compassPoints[code]; dir != "" {
		c.Value = obs.String(dir)
	}
	return c, nil
}

// EncodeCardinal0700 encodes a one figure direction.
func EncodeCardinal0700(c *Cardinal) (string, error) {
	if c == nil {
		return "", obs.Encodef("no value for code table 0700")
	}
	if c.Code != nil {
		return fmtCode(*c.Code, 1), nil
	}
	if c.Value != nil {
		for i, dir := range compassPoints {
			if dir != "" && dir == *c.Value {
				return fmtCode(i, 1), nil
			}
		}
	}
	if c.IsCalmOrStationary != nil && *c.IsCalmOrStationary {
		return "0", nil
	}
	if c.AllDirections != nil && *c.AllDirections {
		return "9", nil
	}
	return "", obs.Encodef("no code for direction in code table 0700")
}

// Direction is a true direction in tens of degrees (code table 0877).
// Code 0 stands for calm, code 99 for variable, all directions or
// unknown.
type Direction struct {
	Value         *float64 `json:"value"`
	VarAllUnknown bool     `json:"varAllUnknown"`
	Calm          bool     `json:"calm"`
	Unit          string   `json:"unit,omitempty"`
	Table         string   `json:"_table,omitempty"`
	Code          *int     `json:"_code,omitempty"`
}

// DecodeDirection0877 decodes a direction in tens of degrees.
func DecodeDirection0877(raw string) (*Direction, error) {
	code, err := parseCode(raw, "0877")
	if err != nil {
		return nil, err
	}
	d := &Direction{Unit: "deg", Table: "0877", Code: obs.Int(code)}
	switch {
	case code == 0:
		d.Calm = true
	case code == 99:
		d.VarAllUnknown = true
	case 1 <= code && code <= 36:
		d.Value = obs.Float(float64(code) * 10)
	default:
		return nil, obs.Invalid(raw, "code table 0877")
	}
	return d, nil
}

// EncodeDirection0877 encodes a direction to tens of degrees, rounding
// to the nearest code.
func EncodeDirection0877(d *Direction) (string, error) {
	if d == nil {
		return "", obs.Encodef("no value for code table 0877")
	}
	if d.Code != nil {
		return fmtCode(*d.Code, 2), nil
	}
	switch {
	case d.Calm:
		return "00", nil
	case d.VarAllUnknown:
		return "99", nil
	case d.Value != nil:
		val := int(*d.Value)
		code := val / 10
		if val%10 >= 5 {
			code++
		}
		return fmtCode(code, 2), nil
	}
	return "", obs.Encodef("no code for direction in code table 0877")
}

// IceBearing is the true bearing of the principal ice edge (code table
// 0739). Code 0 means the ship is in shore, code 9 that it is in ice.
type IceBearing struct {
	Value   *string `json:"value"`
	InShore bool    `json:"in_shore"`
	InIce   bool    `json:"in_ice"`
	Table   string  `json:"_table,omitempty"`
	Code    *int    `json:"_code,omitempty"`
}

// DecodeIceBearing0739 decodes the bearing of the principal ice edge.
func DecodeIceBearing0739(raw string) (*IceBearing, error) {
	if raw == "/" {
		return &IceBearing{Table: "0739"}, nil
	}
	code, err := parseCode(raw, "0739")
	if err != nil {
		return nil, err
	}
	if code < 0 || code > 9 {
		return nil, obs.Invalid(raw, "code table 0739")
	}
	b := &IceBearing{
		InShore: code == 0,
		InIce:   code == 9,
		Table:   "0739",
		Code:    obs.Int(code),
	}
	if dir := compassPoints[code]; dir != "" {
		b.Value = obs.String(dir)
	}
	return b, nil
}

// EncodeIceBearing0739 encodes the bearing of the principal ice edge.
func EncodeIceBearing0739(b *IceBearing) (string, error) {
	if b == nil {
		return "", obs.Encodef("no value for code table 0739")
	}
	if b.Code != nil {
		return fmtCode(*b.Code, 1), nil
	}
	if b.Value != nil {
		for i, dir := range compassPoints {
			if dir != "" && dir == *b.Value {
				return fmtCode(i, 1), nil
			}
		}
	}
	if b.InShore {
		return "0", nil
	}
	if b.InIce {
		return "9", nil
	}
	return "", obs.Encodef("no code for bearing in code table 0739")
}
