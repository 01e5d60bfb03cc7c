package observations

import (
	"fmt"

	"synop_parser/internal/codetables"
	"synop_parser/internal/obs"
)

// DecodePressure decodes a PPPP pressure group in tenths of an hPa.
// Values at or below 5000 are above the 1000 hPa fold.
func DecodePressure(raw string) (*obs.Measure, error) {
	n, err := decodeInt(raw, "pressure")
	if err != nil || n == nil {
		return nil, err
	}
	val := float64(*n) / 10
	if *n <= 5000 {
		val += 1000
	}
	return &obs.Measure{Value: obs.Float(val), Unit: "hPa"}, nil
}

// EncodePressure encodes a pressure as PPPP.
func EncodePressure(m *obs.Measure) (string, error) {
	if m == nil || m.Value == nil {
		return "////", nil
	}
	val := int(abs(*m.Value)*10 + 0.5)
	if *m.Value >= 1000 {
		val -= 10000
	}
	return fmt.Sprintf("%04d", val), nil
}

// PressureTendency is the three hour pressure tendency and change.
type PressureTendency struct {
	Tendency *codetables.Simple `json:"tendency"`
	Change   *obs.Measure       `json:"change"`
}

// DecodePressureTendency decodes the 5appp group.
func DecodePressureTendency(group string) (*PressureTendency, error) {
	out := &PressureTendency{}
	var err error
	if obs.IsAvailable(group[1:2]) {
		if out.Tendency, err = codetables.PressureTendency0200.Decode(group[1:2]); err != nil {
			return nil, err
		}
	}
	tendency := out.Tendency
	ppp, err := decodeInt(group[2:5], "pressure change")
	if err != nil {
		return nil, err
	}
	if ppp != nil && tendency != nil && tendency.Value != nil {
		val := float64(*ppp) / 10
		if *tendency.Value >= 5 {
			val = -val
		}
		out.Change = &obs.Measure{Value: obs.Float(val), Unit: "hPa"}
	}
	return out, nil
}

// EncodePressureTendency encodes the appp figures.
func EncodePressureTendency(t *PressureTendency) (string, error) {
	if t == nil {
		return "", obs.Encodef("no pressure tendency to encode")
	}
	a := "/"
	if t.Tendency != nil {
		enc, err := codetables.PressureTendency0200.Encode(t.Tendency)
		if err != nil {
			return "", err
		}
		a = enc
	}
	if t.Change == nil || t.Change.Value == nil {
		return a + "///", nil
	}
	return fmt.Sprintf("%s%03d", a, int(abs(*t.Change.Value)*10+0.5)), nil
}

// DecodePressureChange decodes the 24 hour surface pressure change
// group 5[89]ppp.
func DecodePressureChange(group string) (*obs.Measure, error) {
	sign := group[1]
	if sign != '8' && sign != '9' {
		return nil, nil
	}
	ppp, err := decodeInt(group[2:5], "pressure change")
	if err != nil || ppp == nil {
		return nil, err
	}
	val := float64(*ppp) / 10
	if sign == '9' {
		val = -val
	}
	return &obs.Measure{Value: obs.Float(val), Unit: "hPa"}, nil
}

// EncodePressureChange encodes the 24 hour change as sppp.
func EncodePressureChange(m *obs.Measure) (string, error) {
	if m == nil || m.Value == nil {
		return "", obs.Encodef("no pressure change to encode")
	}
	sign := 8
	if *m.Value < 0 {
		sign = 9
	}
	return fmt.Sprintf("%d%03d", sign, int(abs(*m.Value)*10+0.5)), nil
}

// Geopotential is the height of an agreed isobaric surface.
type Geopotential struct {
	Surface *obs.Measure `json:"surface"`
	Height  *obs.Measure `json:"height"`
}

// DecodeGeopotential decodes the 4ahhh group. The height figures fold
// depending on the isobaric surface.
func DecodeGeopotential(group string) (*Geopotential, error) {
	surface, err := codetables.IsobaricSurface0264.Decode(group[1:2])
	if err != nil {
		return nil, err
	}
	out := &Geopotential{Surface: surface}
	hhh, err := decodeInt(group[2:5], "geopotential height")
	if err != nil {
		return nil, err
	}
	if hhh != nil && surface != nil && surface.Code != nil {
		val := *hhh
		switch *surface.Code {
		case 2:
			if val < 300 {
				val += 1000
			}
		case 7:
			if val < 500 {
				val += 3000
			} else {
				val += 2000
			}
		case 8:
			val += 1000
		}
		out.Height = &obs.Measure{Value: obs.Float(float64(val)), Unit: "gpm"}
	}
	return out, nil
}

// EncodeGeopotential encodes the ahhh figures.
func EncodeGeopotential(g *Geopotential) (string, error) {
	if g == nil {
		return "", obs.Encodef("no geopotential to encode")
	}
	a, err := codetables.IsobaricSurface0264.Encode(g.Surface)
	if err != nil {
		return "", err
	}
	if g.Height == nil || g.Height.Value == nil {
		return a + "///", nil
	}
	if g.Surface == nil || g.Surface.Code == nil {
		return "", obs.Encodef("no isobaric surface for geopotential height")
	}
	val := int(*g.Height.Value)
	switch *g.Surface.Code {
	case 2:
		if val >= 1000 {
			val -= 1000
		}
	case 7:
		if val >= 3000 {
			val -= 3000
		} else {
			val -= 2000
		}
	case 8:
		val -= 1000
	}
	if val < 0 || val > 999 {
		return "", obs.Encodef("geopotential height %v out of range for surface", *g.Height.Value)
	}
	return fmt.Sprintf("%s%03d", a, val), nil
}
