package observations

import (
	"fmt"
	"strings"

	"synop_parser/internal/codetables"
	"synop_parser/internal/obs"
)

// ShipDisplacement is the ship's course and average speed made good
// (222Dsvs).
type ShipDisplacement struct {
	Direction *codetables.Cardinal  `json:"direction"`
	Speed     *codetables.DualSpeed `json:"speed"`
}

// DecodeShipDisplacement decodes the Dsvs figures of the 222 group. A
// stationary sea station (22200) decodes to nil.
func DecodeShipDisplacement(group string) (*ShipDisplacement, error) {
	d := group[3:4]
	v := group[4:5]
	if d == "0" && v == "0" {
		return nil, nil
	}
	out := &ShipDisplacement{}
	var err error
	if out.Direction, err = codetables.DecodeCardinal0700(d); err != nil {
		return nil, err
	}
	if out.Speed, err = codetables.DecodeShipSpeed4451(v); err != nil {
		return nil, err
	}
	return out, nil
}

// EncodeShipDisplacement encodes the Dsvs figures.
func EncodeShipDisplacement(s *ShipDisplacement) (string, error) {
	if s == nil {
		return "00", nil
	}
	d, err := encodeCardinal(s.Direction)
	if err != nil {
		return "", err
	}
	v := "/"
	if s.Speed != nil {
		enc, err := codetables.EncodeShipSpeed4451(s.Speed)
		if err != nil {
			return "", err
		}
		v = enc
	}
	return d + v, nil
}

// WindWaves is an instrumental or estimated wind wave report.
type WindWaves struct {
	Period       *obs.Measure `json:"period"`
	Height       *obs.Measure `json:"height"`
	Instrumental bool         `json:"instrumental"`
	Accurate     bool         `json:"accurate"`
	Confused     bool         `json:"confused"`
}

// DecodeWindWaves decodes a 1PPHH, 2PPHH or 70HHH group. Heights are
// in half metres except the accurate group 7 form, which reports
// tenths.
func DecodeWindWaves(group string, instrumental bool) (*WindWaves, error) {
	if group[0] == '7' {
		if !strings.HasPrefix(group, "70") {
			return nil, nil
		}
		hhh, err := decodeInt(group[2:5], "wave height")
		if err != nil {
			return nil, err
		}
		out := &WindWaves{Instrumental: true, Accurate: true}
		if hhh != nil {
			out.Height = &obs.Measure{Value: obs.Float(float64(*hhh) * 0.1), Unit: "m"}
		}
		return out, nil
	}

	pp, err := decodeInt(group[1:3], "wave period")
	if err != nil {
		return nil, err
	}
	hh, err := decodeInt(group[3:5], "wave height")
	if err != nil {
		return nil, err
	}
	out := &WindWaves{Instrumental: instrumental}
	if pp != nil {
		if *pp == 99 {
			out.Confused = true
		} else {
			out.Period = &obs.Measure{Value: obs.Float(float64(*pp)), Unit: "s"}
		}
	}
	if hh != nil {
		out.Height = &obs.Measure{Value: obs.Float(float64(*hh) * 0.5), Unit: "m"}
	}
	return out, nil
}

// EncodeWindWaves encodes the entry of a wave list matching the given
// group discriminator (1, 2 or 7), or "" when none matches.
func EncodeWindWaves(waves []*WindWaves, group string) (string, error) {
	for _, w := range waves {
		switch {
		case group == "1" && w.Instrumental:
		case group == "2" && !w.Instrumental:
		case group == "7" && w.Accurate:
			return fmt.Sprintf("%s0%s", group, encodeMeasure(w.Height, 10, 3)), nil
		default:
			continue
		}
		pp := "//"
		if w.Period != nil {
			pp = encodeMeasure(w.Period, 1, 2)
		} else if w.Confused {
			pp = "99"
		}
		return fmt.Sprintf("%s%s%s", group, pp, encodeMeasure(w.Height, 2, 2)), nil
	}
	return "", nil
}

// SwellWaves is one swell wave system, assembled from the 3dw1dw2
// direction group and its 4PPHH or 5PPHH data group.
type SwellWaves struct {
	Direction *codetables.Direction `json:"direction"`
	Period    *obs.Measure          `json:"period"`
	Height    *obs.Measure          `json:"height"`
}

// DecodeSwellWaves decodes a direction group and data group pair,
// separated by a space.
func DecodeSwellWaves(group string) (*SwellWaves, error) {
	parts := strings.Split(group, " ")
	if len(parts) != 2 {
		return nil, obs.Decodef("%s is not a valid swell wave group", group)
	}
	dirGroup, infoGroup := parts[0], parts[1]

	var dir string
	switch infoGroup[0] {
	case '4':
		dir = dirGroup[1:3]
	case '5':
		dir = dirGroup[3:5]
	default:
		return nil, obs.Decodef("%s is not a valid swell wave group", group)
	}

	out := &SwellWaves{}
	var err error
	if obs.IsAvailable(dir) {
		if out.Direction, err = codetables.DecodeDirection0877(dir); err != nil {
			return nil, err
		}
	}
	pp, err := decodeInt(infoGroup[1:3], "swell wave period")
	if err != nil {
		return nil, err
	}
	if pp != nil {
		out.Period = &obs.Measure{Value: obs.Float(float64(*pp)), Unit: "s"}
	}
	hh, err := decodeInt(infoGroup[3:5], "swell wave height")
	if err != nil {
		return nil, err
	}
	if hh != nil {
		out.Height = &obs.Measure{Value: obs.Float(float64(*hh) * 0.5), Unit: "m"}
	}
	return out, nil
}

// EncodeSwellWaves encodes up to two swell wave systems as the 3dw1dw2
// group followed by 4PPHH and 5PPHH groups.
func EncodeSwellWaves(waves []*SwellWaves) (string, error) {
	dirs := []string{"//", "//"}
	var data []string
	for i, w := range waves {
		if i >= 2 {
			break
		}
		if w.Direction != nil {
			enc, err := codetables.EncodeDirection0877(w.Direction)
			if err != nil {
				return "", err
			}
			dirs[i] = enc
		}
		data = append(data, fmt.Sprintf("%d%s%s",
			i+4, encodeMeasure(w.Period, 1, 2), encodeMeasure(w.Height, 2, 2)))
	}
	out := []string{"3" + dirs[0] + dirs[1]}
	out = append(out, data...)
	return strings.Join(out, " "), nil
}

// IceAccretion is ice accretion on ships (6IsEsEsRs).
type IceAccretion struct {
	Source    *codetables.IceAccretionSource `json:"source"`
	Thickness *obs.Measure                   `json:"thickness"`
	Rate      *codetables.Lookup             `json:"rate"`
}

// DecodeIceAccretion decodes a 6IsEsEsRs group.
func DecodeIceAccretion(group string) (*IceAccretion, error) {
	out := &IceAccretion{}
	var err error
	if obs.IsAvailable(group[1:2]) {
		if out.Source, err = codetables.DecodeIceAccretion1751(group[1:2]); err != nil {
			return nil, err
		}
	}
	ee, err := decodeInt(group[2:4], "ice thickness")
	if err != nil {
		return nil, err
	}
	if ee != nil {
		out.Thickness = &obs.Measure{Value: obs.Float(float64(*ee)), Unit: "cm"}
	}
	if obs.IsAvailable(group[4:5]) {
		if out.Rate, err = codetables.IceAccretionRate3551.Decode(group[4:5]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// EncodeIceAccretion encodes the IsEsEsRs figures.
func EncodeIceAccretion(a *IceAccretion) (string, error) {
	if a == nil {
		return "", obs.Encodef("no ice accretion to encode")
	}
	s := "/"
	if a.Source != nil {
		enc, err := codetables.EncodeIceAccretion1751(a.Source)
		if err != nil {
			return "", err
		}
		s = enc
	}
	r := "/"
	if a.Rate != nil {
		enc, err := codetables.IceAccretionRate3551.Encode(a.Rate)
		if err != nil {
			return "", err
		}
		r = enc
	}
	return s + encodeMeasure(a.Thickness, 1, 2) + r, nil
}

// SeaLandIce is sea and land ice information, either a structured
// cSbDz group or free text.
type SeaLandIce struct {
	Concentration  *codetables.Simple     `json:"concentration,omitempty"`
	Development    *codetables.Simple     `json:"development,omitempty"`
	LandOrigin     *codetables.Simple     `json:"land_origin,omitempty"`
	Direction      *codetables.IceBearing `json:"direction,omitempty"`
	ConditionTrend *codetables.Simple     `json:"condition_trend,omitempty"`
	Text           string                 `json:"text,omitempty"`
}

// DecodeSeaLandIce decodes the groups following the ICE marker. A
// single five figure group is decoded as cSbDz, anything else is kept
// as text.
func DecodeSeaLandIce(groups []string) (*SeaLandIce, error) {
	if len(groups) <= 1 {
		return nil, nil
	}
	iceGroups := groups[1:]
	if !obs.IsAvailable(iceGroups[0]) {
		return nil, nil
	}
	if len(iceGroups) == 1 && len(iceGroups[0]) == 5 {
		g := iceGroups[0]
		out := &SeaLandIce{}
		var err error
		if obs.IsAvailable(g[0:1]) {
			if out.Concentration, err = codetables.IceConcentration0639.Decode(g[0:1]); err != nil {
				return nil, err
			}
		}
		if obs.IsAvailable(g[1:2]) {
			if out.Development, err = codetables.IceDevelopment3739.Decode(g[1:2]); err != nil {
				return nil, err
			}
		}
		if obs.IsAvailable(g[2:3]) {
			if out.LandOrigin, err = codetables.IceLandOrigin0439.Decode(g[2:3]); err != nil {
				return nil, err
			}
		}
		if out.Direction, err = codetables.DecodeIceBearing0739(g[3:4]); err != nil {
			return nil, err
		}
		if obs.IsAvailable(g[4:5]) {
			if out.ConditionTrend, err = codetables.IceConditionTrend5239.Decode(g[4:5]); err != nil {
				return nil, err
			}
		}
		return out, nil
	}
	return &SeaLandIce{Text: strings.Join(iceGroups, " ")}, nil
}

// EncodeSeaLandIce encodes the ICE groups.
func EncodeSeaLandIce(i *SeaLandIce) (string, error) {
	if i == nil {
		return "ICE /////", nil
	}
	if i.Text != "" {
		return "ICE " + i.Text, nil
	}
	out := "ICE "
	for _, p := range []struct {
		t *codetables.SimpleTable
		v *codetables.Simple
	}{
		{codetables.IceConcentration0639, i.Concentration},
		{codetables.IceDevelopment3739, i.Development},
		{codetables.IceLandOrigin0439, i.LandOrigin},
	} {
		if p.v == nil {
			out += "/"
			continue
		}
		enc, err := p.t.Encode(p.v)
		if err != nil {
			return "", err
		}
		out += enc
	}
	if i.Direction == nil {
		out += "/"
	} else {
		enc, err := codetables.EncodeIceBearing0739(i.Direction)
		if err != nil {
			return "", err
		}
		out += enc
	}
	if i.ConditionTrend == nil {
		out += "/"
	} else {
		enc, err := codetables.IceConditionTrend5239.Encode(i.ConditionTrend)
		if err != nil {
			return "", err
		}
		out += enc
	}
	return out, nil
}

// DecodeSeaState decodes the S figure via code table 3700.
func DecodeSeaState(raw string) (*codetables.Lookup, error) {
	if !obs.IsAvailable(raw) {
		return nil, nil
	}
	return codetables.SeaState3700.Decode(raw)
}

// DecodeSeaVisibility decodes the V figure via code table 4300.
func DecodeSeaVisibility(raw string) (*obs.Measure, error) {
	if !obs.IsAvailable(raw) {
		return nil, nil
	}
	m, err := codetables.SeaVisibility4300.Decode(raw)
	if err != nil {
		return nil, err
	}
	m.Unit = "m"
	return m, nil
}

// EncodeSeaState encodes the S figure.
func EncodeSeaState(s *codetables.Lookup) (string, error) {
	if s == nil {
		return "/", nil
	}
	return codetables.SeaState3700.Encode(s)
}

// EncodeSeaVisibility encodes the V figure.
func EncodeSeaVisibility(m *obs.Measure) (string, error) {
	if m == nil {
		return "/", nil
	}
	return codetables.SeaVisibility4300.Encode(m)
}
