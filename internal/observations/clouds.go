package observations

import (
	"fmt"
	"strings"

	"synop_parser/internal/codetables"
	"synop_parser/internal/obs"
)

// DecodeLowestCloudBase decodes the h figure via code table 1600.
func DecodeLowestCloudBase(raw string) (*obs.Measure, error) {
	if !obs.IsAvailable(raw) {
		return nil, nil
	}
	m, err := codetables.LowestCloudBase1600.Decode(raw)
	if err != nil {
		return nil, err
	}
	m.Unit = "m"
	return m, nil
}

// EncodeLowestCloudBase encodes the h figure.
func EncodeLowestCloudBase(m *obs.Measure) (string, error) {
	if m == nil {
		return "/", nil
	}
	return codetables.LowestCloudBase1600.Encode(m)
}

// CloudTypes reports the types of low, middle and high cloud plus the
// amount attributed to the lowest reported layer (8NhCLCMCH).
type CloudTypes struct {
	LowCloudType      *codetables.Simple `json:"low_cloud_type"`
	MiddleCloudType   *codetables.Simple `json:"middle_cloud_type"`
	HighCloudType     *codetables.Simple `json:"high_cloud_type"`
	LowCloudAmount    *obs.Measure       `json:"low_cloud_amount,omitempty"`
	MiddleCloudAmount *obs.Measure       `json:"middle_cloud_amount,omitempty"`
	CloudAmount       *obs.Measure       `json:"cloud_amount,omitempty"`
}

// DecodeCloudTypes decodes the 8NhCLCMCH group. The Nh amount belongs
// to the low clouds when any are present, otherwise to the middle
// clouds.
func DecodeCloudTypes(group string, warnings *obs.Warnings) (*CloudTypes, error) {
	nh := group[1:2]
	cl := group[2:3]
	cm := group[3:4]
	ch := group[4:5]

	out := &CloudTypes{}
	var err error
	if obs.IsAvailable(cl) {
		if out.LowCloudType, err = codetables.LowCloudType0513.Decode(cl); err != nil {
			return nil, err
		}
	}
	if obs.IsAvailable(cm) {
		if out.MiddleCloudType, err = codetables.MiddleCloudType0515.Decode(cm); err != nil {
			return nil, err
		}
	}
	if obs.IsAvailable(ch) {
		if out.HighCloudType, err = codetables.HighCloudType0509.Decode(ch); err != nil {
			return nil, err
		}
	}

	if obs.IsAvailable(nh) {
		n, err := decodeIntRange(nh, "cloud amount", 0, 9)
		if err != nil {
			return nil, err
		}
		cover := &obs.Measure{Value: obs.Float(float64(*n)), Unit: "okta"}
		switch {
		case out.LowCloudType != nil && *out.LowCloudType.Value >= 1 && *out.LowCloudType.Value <= 9:
			out.LowCloudAmount = cover
		case out.MiddleCloudType != nil && *out.MiddleCloudType.Value >= 0 && *out.MiddleCloudType.Value <= 9:
			out.MiddleCloudAmount = cover
		default:
			warnings.Addf("cloud cover (Nh = %s) reported, but there are no low or middle clouds (CL = %s, CM = %s)", nh, cl, cm)
			out.CloudAmount = cover
		}
	}
	return out, nil
}

// EncodeCloudTypes encodes the NhCLCMCH figures.
func EncodeCloudTypes(c *CloudTypes) (string, error) {
	if c == nil {
		return "", obs.Encodef("no cloud types to encode")
	}
	amount := c.LowCloudAmount
	if amount == nil {
		amount = c.MiddleCloudAmount
	}
	if amount == nil {
		amount = c.CloudAmount
	}
	out := encodeMeasure(amount, 1, 1)
	for _, t := range []struct {
		table *codetables.SimpleTable
		val   *codetables.Simple
	}{
		{codetables.LowCloudType0513, c.LowCloudType},
		{codetables.MiddleCloudType0515, c.MiddleCloudType},
		{codetables.HighCloudType0509, c.HighCloudType},
	} {
		if t.val == nil {
			out += "/"
			continue
		}
		enc, err := t.table.Encode(t.val)
		if err != nil {
			return "", err
		}
		out += enc
	}
	return out, nil
}

// CloudLayer is one 8NsChshs group of section 3.
type CloudLayer struct {
	CloudCover  *codetables.CloudCover `json:"cloud_cover"`
	CloudGenus  *codetables.Lookup     `json:"cloud_genus"`
	CloudHeight *obs.Measure           `json:"cloud_height"`
}

// DecodeCloudLayer decodes an 8NsChshs group.
func DecodeCloudLayer(group string) (*CloudLayer, error) {
	out := &CloudLayer{}
	var err error
	if obs.IsAvailable(group[1:2]) {
		if out.CloudCover, err = codetables.DecodeCloudCover2700(group[1:2]); err != nil {
			return nil, err
		}
	}
	if obs.IsAvailable(group[2:3]) {
		if out.CloudGenus, err = codetables.CloudGenus0500.Decode(group[2:3]); err != nil {
			return nil, err
		}
	}
	if obs.IsAvailable(group[3:5]) {
		if out.CloudHeight, err = codetables.DecodeCloudHeight1677(group[3:5]); err != nil {
			return nil, err
		}
		if out.CloudHeight != nil {
			out.CloudHeight.Unit = "m"
		}
	}
	return out, nil
}

// EncodeCloudLayers encodes a list of cloud layers as 8NsChshs groups.
func EncodeCloudLayers(layers []*CloudLayer, use90 bool) (string, error) {
	var out []string
	for _, l := range layers {
		n := "/"
		if l.CloudCover != nil {
			enc, err := codetables.EncodeCloudCover2700(l.CloudCover)
			if err != nil {
				return "", err
			}
			n = enc
		}
		c := "/"
		if l.CloudGenus != nil {
			enc, err := codetables.CloudGenus0500.Encode(l.CloudGenus)
			if err != nil {
				return "", err
			}
			c = enc
		}
		hh := "//"
		if l.CloudHeight != nil {
			enc, err := codetables.EncodeCloudHeight1677(l.CloudHeight, use90)
			if err != nil {
				return "", err
			}
			hh = enc
		}
		out = append(out, "8"+n+c+hh)
	}
	return strings.Join(out, " "), nil
}

// CloudDriftDirection is the direction of drift of low, middle and
// high clouds (56DLDMDH).
type CloudDriftDirection struct {
	Low    *codetables.Cardinal `json:"low"`
	Middle *codetables.Cardinal `json:"middle"`
	High   *codetables.Cardinal `json:"high"`
}

// DecodeCloudDriftDirection decodes the DLDMDH figures of a 5 figure
// group.
func DecodeCloudDriftDirection(group string) (*CloudDriftDirection, error) {
	out := &CloudDriftDirection{}
	var err error
	if out.Low, err = codetables.DecodeCardinal0700(group[2:3]); err != nil {
		return nil, err
	}
	if out.Middle, err = codetables.DecodeCardinal0700(group[3:4]); err != nil {
		return nil, err
	}
	if out.High, err = codetables.DecodeCardinal0700(group[4:5]); err != nil {
		return nil, err
	}
	return out, nil
}

// EncodeCloudDriftDirection encodes the DLDMDH figures.
func EncodeCloudDriftDirection(d *CloudDriftDirection) (string, error) {
	if d == nil {
		return "///", nil
	}
	out := ""
	for _, c := range []*codetables.Cardinal{d.Low, d.Middle, d.High} {
		if c == nil {
			out += "/"
			continue
		}
		enc, err := codetables.EncodeCardinal0700(c)
		if err != nil {
			return "", err
		}
		out += enc
	}
	return out, nil
}

// CloudElevation is the direction and elevation angle of a cloud
// (57CDaeC).
type CloudElevation struct {
	Genus     *codetables.Lookup         `json:"genus"`
	Direction *codetables.Cardinal       `json:"direction"`
	Elevation *codetables.ElevationAngle `json:"elevation"`
}

// DecodeCloudElevation decodes the CDaeC figures.
func DecodeCloudElevation(group string) (*CloudElevation, error) {
	out := &CloudElevation{}
	var err error
	if obs.IsAvailable(group[2:3]) {
		if out.Genus, err = codetables.CloudGenus0500.Decode(group[2:3]); err != nil {
			return nil, err
		}
	}
	if out.Direction, err = codetables.DecodeCardinal0700(group[3:4]); err != nil {
		return nil, err
	}
	if obs.IsAvailable(group[4:5]) {
		if out.Elevation, err = codetables.DecodeElevationAngle1004(group[4:5]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// EncodeCloudElevation encodes the CDaeC figures.
func EncodeCloudElevation(c *CloudElevation) (string, error) {
	if c == nil {
		return "", obs.Encodef("no cloud elevation to encode")
	}
	g := "/"
	if c.Genus != nil {
		enc, err := codetables.CloudGenus0500.Encode(c.Genus)
		if err != nil {
			return "", err
		}
		g = enc
	}
	d := "/"
	if c.Direction != nil {
		enc, err := codetables.EncodeCardinal0700(c.Direction)
		if err != nil {
			return "", err
		}
		d = enc
	}
	e := "/"
	if c.Elevation != nil {
		enc, err := codetables.EncodeElevationAngle1004(c.Elevation)
		if err != nil {
			return "", err
		}
		e = enc
	}
	return g + d + e, nil
}

// CloudEvolution is the evolution of a cloud genus (940Cn3).
type CloudEvolution struct {
	Genus     *codetables.Lookup `json:"genus"`
	Evolution *codetables.Lookup `json:"evolution"`
}

// DecodeCloudEvolution decodes a 940Cn3 group.
func DecodeCloudEvolution(group string) (*CloudEvolution, error) {
	out := &CloudEvolution{}
	var err error
	if obs.IsAvailable(group[3:4]) {
		if out.Genus, err = codetables.CloudGenus0500.Decode(group[3:4]); err != nil {
			return nil, err
		}
	}
	if obs.IsAvailable(group[4:5]) {
		if out.Evolution, err = codetables.CloudEvolution2863.Decode(group[4:5]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// EncodeCloudEvolution encodes the Cn3 figures.
func EncodeCloudEvolution(c *CloudEvolution) (string, error) {
	if c == nil {
		return "", obs.Encodef("no cloud evolution to encode")
	}
	return encodeLookupPair(codetables.CloudGenus0500, c.Genus, codetables.CloudEvolution2863, c.Evolution)
}

// encodeLookupPair encodes two single figure lookups back to back,
// slash filling the absent ones.
func encodeLookupPair(t1 *codetables.LookupTable, v1 *codetables.Lookup, t2 *codetables.LookupTable, v2 *codetables.Lookup) (string, error) {
	out := ""
	for _, p := range []struct {
		t *codetables.LookupTable
		v *codetables.Lookup
	}{{t1, v1}, {t2, v2}} {
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
	return out, nil
}

// MaxLowCloudConcentration is the location of maximum concentration of
// low clouds (944CLDp).
type MaxLowCloudConcentration struct {
	CloudType *codetables.Simple   `json:"cloud_type"`
	Direction *codetables.Cardinal `json:"direction"`
}

// DecodeMaxLowCloudConcentration decodes a 944CLDp group.
func DecodeMaxLowCloudConcentration(group string) (*MaxLowCloudConcentration, error) {
	out := &MaxLowCloudConcentration{}
	var err error
	if obs.IsAvailable(group[3:4]) {
		if out.CloudType, err = codetables.LowCloudType0513.Decode(group[3:4]); err != nil {
			return nil, err
		}
	}
	if out.Direction, err = codetables.DecodeCardinal0700(group[4:5]); err != nil {
		return nil, err
	}
	return out, nil
}

// EncodeMaxLowCloudConcentration encodes the CLDp figures.
func EncodeMaxLowCloudConcentration(c *MaxLowCloudConcentration) (string, error) {
	if c == nil {
		return "", obs.Encodef("no low cloud concentration to encode")
	}
	t := "/"
	if c.CloudType != nil {
		enc, err := codetables.LowCloudType0513.Encode(c.CloudType)
		if err != nil {
			return "", err
		}
		t = enc
	}
	d, err := encodeCardinal(c.Direction)
	if err != nil {
		return "", err
	}
	return t + d, nil
}

func encodeCardinal(c *codetables.Cardinal) (string, error) {
	if c == nil {
		return "/", nil
	}
	return codetables.EncodeCardinal0700(c)
}

// SpecialClouds is a special cloud report (993CsDa).
type SpecialClouds struct {
	CloudType *codetables.Lookup   `json:"cloud_type"`
	Direction *codetables.Cardinal `json:"direction"`
}

// DecodeSpecialClouds decodes a 993CsDa group.
func DecodeSpecialClouds(group string) (*SpecialClouds, error) {
	out := &SpecialClouds{}
	var err error
	if obs.IsAvailable(group[3:4]) {
		if out.CloudType, err = codetables.SpecialCloud0521.Decode(group[3:4]); err != nil {
			return nil, err
		}
	}
	if out.Direction, err = codetables.DecodeCardinal0700(group[4:5]); err != nil {
		return nil, err
	}
	return out, nil
}

// EncodeSpecialClouds encodes the CsDa figures.
func EncodeSpecialClouds(c *SpecialClouds) (string, error) {
	if c == nil {
		return "", obs.Encodef("no special clouds to encode")
	}
	t := "/"
	if c.CloudType != nil {
		enc, err := codetables.SpecialCloud0521.Encode(c.CloudType)
		if err != nil {
			return "", err
		}
		t = enc
	}
	d, err := encodeCardinal(c.Direction)
	if err != nil {
		return "", err
	}
	return t + d, nil
}

// MountainCondition is cloud over mountains and passes (950Nmn3).
type MountainCondition struct {
	Condition *codetables.Simple `json:"condition"`
	Evolution *codetables.Lookup `json:"evolution"`
}

// DecodeMountainCondition decodes a 950Nmn3 group.
func DecodeMountainCondition(group string) (*MountainCondition, error) {
	out := &MountainCondition{}
	var err error
	if obs.IsAvailable(group[3:4]) {
		if out.Condition, err = codetables.MountainCondition2745.Decode(group[3:4]); err != nil {
			return nil, err
		}
	}
	if obs.IsAvailable(group[4:5]) {
		if out.Evolution, err = codetables.CloudEvolution2863.Decode(group[4:5]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// EncodeMountainCondition encodes the Nmn3 figures.
func EncodeMountainCondition(c *MountainCondition) (string, error) {
	if c == nil {
		return "", obs.Encodef("no mountain condition to encode")
	}
	n := "/"
	if c.Condition != nil {
		enc, err := codetables.MountainCondition2745.Encode(c.Condition)
		if err != nil {
			return "", err
		}
		n = enc
	}
	e := "/"
	if c.Evolution != nil {
		enc, err := codetables.CloudEvolution2863.Encode(c.Evolution)
		if err != nil {
			return "", err
		}
		e = enc
	}
	return n + e, nil
}

// ValleyClouds is fog, mist or low cloud in valleys or plains seen
// from above (951Nvn4).
type ValleyClouds struct {
	Condition *codetables.Lookup `json:"condition"`
	Evolution *codetables.Lookup `json:"evolution"`
}

// DecodeValleyClouds decodes a 951Nvn4 group.
func DecodeValleyClouds(group string) (*ValleyClouds, error) {
	out := &ValleyClouds{}
	var err error
	if obs.IsAvailable(group[3:4]) {
		if out.Condition, err = codetables.ValleyCondition2754.Decode(group[3:4]); err != nil {
			return nil, err
		}
	}
	if obs.IsAvailable(group[4:5]) {
		if out.Evolution, err = codetables.CloudEvolutionAbove2864.Decode(group[4:5]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// EncodeValleyClouds encodes the Nvn4 figures.
func EncodeValleyClouds(c *ValleyClouds) (string, error) {
	if c == nil {
		return "", obs.Encodef("no valley clouds to encode")
	}
	return encodeLookupPair(codetables.ValleyCondition2754, c.Condition, codetables.CloudEvolutionAbove2864, c.Evolution)
}

// CloudBaseBelowStation is one section 4 group describing cloud with
// tops below station level (N'C'H'H'Ct).
type CloudBaseBelowStation struct {
	CloudCover           *codetables.CloudCover `json:"cloud_cover"`
	Genus                *codetables.Lookup     `json:"genus"`
	UpperSurfaceAltitude *obs.Measure           `json:"upper_surface_altitude"`
	Description          *codetables.Lookup     `json:"description"`
}

// DecodeCloudBaseBelowStation decodes a section 4 group.
func DecodeCloudBaseBelowStation(group string) (*CloudBaseBelowStation, error) {
	out := &CloudBaseBelowStation{}
	var err error
	if obs.IsAvailable(group[0:1]) {
		if out.CloudCover, err = codetables.DecodeCloudCover2700(group[0:1]); err != nil {
			return nil, err
		}
	}
	if obs.IsAvailable(group[1:2]) {
		if out.Genus, err = codetables.CloudGenus0500.Decode(group[1:2]); err != nil {
			return nil, err
		}
	}
	hh, err := decodeInt(group[2:4], "cloud top altitude")
	if err != nil {
		return nil, err
	}
	if hh != nil {
		m := &obs.Measure{Value: obs.Float(float64(*hh) * 100), Unit: "m"}
		if *hh == 99 {
			m.Quantifier = obs.IsGreaterOrEqual
		}
		out.UpperSurfaceAltitude = m
	}
	if obs.IsAvailable(group[4:5]) {
		if out.Description, err = codetables.CloudTopDescription0552.Decode(group[4:5]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// EncodeCloudBaseBelowStation encodes a section 4 group.
func EncodeCloudBaseBelowStation(c *CloudBaseBelowStation) (string, error) {
	if c == nil {
		return "", obs.Encodef("no cloud base below station to encode")
	}
	n := "/"
	if c.CloudCover != nil {
		enc, err := codetables.EncodeCloudCover2700(c.CloudCover)
		if err != nil {
			return "", err
		}
		n = enc
	}
	g := "/"
	if c.Genus != nil {
		enc, err := codetables.CloudGenus0500.Encode(c.Genus)
		if err != nil {
			return "", err
		}
		g = enc
	}
	hh := "//"
	if c.UpperSurfaceAltitude != nil && c.UpperSurfaceAltitude.Value != nil {
		v := int(*c.UpperSurfaceAltitude.Value / 100)
		if v > 99 {
			v = 99
		}
		hh = fmt.Sprintf("%02d", v)
	}
	d := "/"
	if c.Description != nil {
		enc, err := codetables.CloudTopDescription0552.Encode(c.Description)
		if err != nil {
			return "", err
		}
		d = enc
	}
	return n + g + hh + d, nil
}
