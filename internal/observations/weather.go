package observations

import (
	"fmt"
	"strconv"

	"synop_parser/internal/codetables"
	"synop_parser/internal/obs"
)

// WeatherIndicator reports whether and how the weather groups were
// included (ix).
type WeatherIndicator struct {
	Value     *int `json:"value"`
	Automatic bool `json:"automatic"`
}

// DecodeWeatherIndicator decodes the ix figure.
func DecodeWeatherIndicator(raw string) (*WeatherIndicator, error) {
	if raw == "/" {
		return &WeatherIndicator{}, nil
	}
	n, err := decodeIntRange(raw, "weather indicator", 1, 7)
	if err != nil {
		return nil, err
	}
	return &WeatherIndicator{Value: n, Automatic: *n >= 3}, nil
}

// EncodeWeatherIndicator encodes the ix figure.
func EncodeWeatherIndicator(w *WeatherIndicator) (string, error) {
	if w == nil || w.Value == nil {
		return "/", nil
	}
	return strconv.Itoa(*w.Value), nil
}

// Weather is a present or past weather figure with the code table it
// was reported against. Location and movement may be attached from
// section 3 group 9 reports.
type Weather struct {
	Value         *int                      `json:"value"`
	Table         string                    `json:"_table,omitempty"`
	TimeBeforeObs *obs.Measure              `json:"time_before_obs,omitempty"`
	Location      *LocationMaxConcentration `json:"location,omitempty"`
	Movement      *PhenomSpeedDir           `json:"movement,omitempty"`
}

// presentWeatherTable selects the present weather code table from the
// weather indicator.
func presentWeatherTable(ix *int) string {
	if ix != nil && (*ix == 5 || *ix == 6 || *ix == 7) {
		return "4680"
	}
	return "4677"
}

// pastWeatherTable selects the past weather code table from the
// weather indicator.
func pastWeatherTable(ix *int) string {
	if ix != nil && (*ix == 5 || *ix == 6 || *ix == 7) {
		return "4531"
	}
	return "4561"
}

// DecodePresentWeather decodes a two figure present weather value.
func DecodePresentWeather(raw string, ix *int, timeBefore *obs.Measure) (*Weather, error) {
	n, err := decodeInt(raw, "present weather")
	if err != nil || n == nil {
		return nil, err
	}
	return &Weather{Value: n, Table: presentWeatherTable(ix), TimeBeforeObs: timeBefore}, nil
}

// DecodePastWeather decodes a single past weather figure.
func DecodePastWeather(raw string, ix *int) (*Weather, error) {
	n, err := decodeInt(raw, "past weather")
	if err != nil || n == nil {
		return nil, err
	}
	return &Weather{Value: n, Table: pastWeatherTable(ix)}, nil
}

// EncodePresentWeather encodes the ww figures.
func EncodePresentWeather(w *Weather) (string, error) {
	if w == nil || w.Value == nil {
		return "//", nil
	}
	return fmt.Sprintf("%02d", *w.Value), nil
}

// EncodePastWeather encodes the W1W2 figures from up to two past
// weather entries.
func EncodePastWeather(ws []*Weather) (string, error) {
	out := []byte("//")
	for i, w := range ws {
		if i >= 2 {
			break
		}
		if w != nil && w.Value != nil {
			out[i] = byte('0' + *w.Value)
		}
	}
	return string(out), nil
}

// ImportantWeather is an amplification of a weather phenomenon from a
// 96[45]ww group. The 965 form reports against code table 4687.
type ImportantWeather struct {
	Value         *int         `json:"value"`
	Table         string       `json:"_table,omitempty"`
	TimeBeforeObs *obs.Measure `json:"time_before_obs,omitempty"`
}

// DecodeImportantWeather decodes the ww figures of a 96[45]ww group.
func DecodeImportantWeather(raw string, ix *int, use4687 bool, timeBefore *obs.Measure) (*ImportantWeather, error) {
	if use4687 {
		s, err := codetables.DecodeWeather4687(raw)
		if err != nil {
			return nil, err
		}
		return &ImportantWeather{Value: s.Value, Table: s.Table, TimeBeforeObs: timeBefore}, nil
	}
	n, err := decodeInt(raw, "important weather")
	if err != nil || n == nil {
		return nil, err
	}
	return &ImportantWeather{Value: n, Table: presentWeatherTable(ix), TimeBeforeObs: timeBefore}, nil
}

// EncodeImportantWeather encodes the ww figures.
func EncodeImportantWeather(w *ImportantWeather) (string, error) {
	if w == nil || w.Value == nil {
		return "//", nil
	}
	return fmt.Sprintf("%02d", *w.Value), nil
}

// DecodeVisibility decodes the VV figures via code table 4377.
func DecodeVisibility(raw string) (*codetables.Visibility, error) {
	if !obs.IsAvailable(raw) {
		return nil, nil
	}
	v, err := codetables.DecodeVisibility4377(raw)
	if err != nil {
		return nil, err
	}
	v.Unit = "m"
	return v, nil
}

// EncodeVisibility encodes the VV figures.
func EncodeVisibility(v *codetables.Visibility, use90 bool) (string, error) {
	if v == nil {
		return "//", nil
	}
	return codetables.EncodeVisibility4377(v, use90)
}

// VisibilityDirection is visibility in a direction (98VVDv), or the
// variation of visibility when the direction figure is 9.
type VisibilityDirection struct {
	Direction  string                 `json:"direction"`
	Visibility *codetables.Visibility `json:"visibility,omitempty"`
	Variation  *codetables.Simple     `json:"variation,omitempty"`
}

// DecodeVisibilityDirection decodes a 98DvVV group.
func DecodeVisibilityDirection(group string, warnings *obs.Warnings) (*VisibilityDirection, error) {
	dir := group[2:3]
	vis := group[3:5]
	if dir == "/" {
		warnings.Addf("%s is not a valid code for visibility direction", dir)
		return nil, nil
	}

	if dir == "9" {
		cardinal, err := codetables.DecodeCardinal0700(vis[0:1])
		if err != nil {
			return nil, err
		}
		direction := "towardsSea"
		if cardinal != nil && cardinal.Value != nil {
			direction = *cardinal.Value
		}
		variation, err := codetables.VisibilityVariation4332.Decode(vis[1:2])
		if err != nil {
			return nil, err
		}
		return &VisibilityDirection{Direction: direction, Variation: variation}, nil
	}

	cardinal, err := codetables.DecodeCardinal0700(dir)
	if err != nil {
		return nil, err
	}
	direction := "towardsSea"
	if cardinal != nil && cardinal.Value != nil {
		direction = *cardinal.Value
	}
	visibility, err := DecodeVisibility(vis)
	if err != nil {
		return nil, err
	}
	return &VisibilityDirection{Direction: direction, Visibility: visibility}, nil
}

// EncodeVisibilityDirection encodes the DvVV figures.
func EncodeVisibilityDirection(v *VisibilityDirection) (string, error) {
	if v == nil {
		return "", obs.Encodef("no directional visibility to encode")
	}
	dir := "0"
	if v.Direction != "" && v.Direction != "towardsSea" {
		enc, err := codetables.EncodeCardinal0700(&codetables.Cardinal{Value: obs.String(v.Direction)})
		if err != nil {
			return "", err
		}
		dir = enc
	}
	if v.Variation != nil {
		variation, err := codetables.VisibilityVariation4332.Encode(v.Variation)
		if err != nil {
			return "", err
		}
		return "9" + dir + variation, nil
	}
	use90 := v.Visibility != nil && v.Visibility.Use90
	vv, err := EncodeVisibility(v.Visibility, use90)
	if err != nil {
		return "", err
	}
	return dir + vv, nil
}

// Sunshine is an amount of sunshine over 24 hours (55SSS) or the past
// hour (553SS).
type Sunshine struct {
	Amount   *obs.Measure `json:"amount"`
	Duration *obs.Measure `json:"duration"`
}

// DecodeSunshine decodes a 55SSS group.
func DecodeSunshine(group string) (*Sunshine, error) {
	var duration *obs.Measure
	switch group[2] {
	case '0', '1', '2':
		duration = &obs.Measure{Value: obs.Float(24), Unit: "h"}
	case '3':
		duration = &obs.Measure{Value: obs.Float(1), Unit: "h"}
	case '/':
		return nil, nil
	default:
		return nil, obs.Decodef("%c is not a valid value for sunshine group duration", group[2])
	}

	raw := group[2:5]
	if *duration.Value == 1 {
		raw = group[3:5]
	}
	n, err := decodeInt(raw, "sunshine amount")
	if err != nil {
		return nil, err
	}
	out := &Sunshine{Duration: duration}
	if n != nil {
		out.Amount = &obs.Measure{Value: obs.Float(float64(*n) / 10), Unit: "h"}
	}
	return out, nil
}

// EncodeSunshine encodes the SSS figures.
func EncodeSunshine(s *Sunshine) (string, error) {
	if s == nil {
		return "///", nil
	}
	if s.Duration != nil && s.Duration.Value != nil && *s.Duration.Value == 1 {
		return "3" + encodeMeasure(s.Amount, 10, 2), nil
	}
	return encodeMeasure(s.Amount, 10, 3), nil
}

// Radiation is one radiation amount with the unit and period implied
// by the preceding sunshine group.
type Radiation struct {
	Value         *int         `json:"value"`
	Unit          string       `json:"unit,omitempty"`
	TimeBeforeObs *obs.Measure `json:"time_before_obs,omitempty"`
}

// DecodeRadiation decodes the FFFF figures of a radiation group.
func DecodeRadiation(raw, unit string, timeBefore *obs.Measure) *Radiation {
	out := &Radiation{Unit: unit, TimeBeforeObs: timeBefore}
	if n, err := strconv.Atoi(raw); err == nil {
		out.Value = obs.Int(n)
	}
	return out
}

// EncodeRadiation encodes the FFFF figures.
func EncodeRadiation(r *Radiation) (string, error) {
	if r == nil || r.Value == nil {
		return "", obs.Encodef("no radiation value to encode")
	}
	return fmt.Sprintf("%04d", *r.Value), nil
}

// OpticalPhenomena is an optical phenomenon with its intensity
// (990Z0i).
type OpticalPhenomena struct {
	Phenomena *codetables.Lookup `json:"phenomena"`
	Intensity *codetables.Lookup `json:"intensity"`
}

// DecodeOpticalPhenomena decodes a 990Z0i group.
func DecodeOpticalPhenomena(group string) (*OpticalPhenomena, error) {
	out := &OpticalPhenomena{}
	var err error
	if obs.IsAvailable(group[3:4]) {
		if out.Phenomena, err = codetables.OpticalPhenomena5161.Decode(group[3:4]); err != nil {
			return nil, err
		}
	}
	if obs.IsAvailable(group[4:5]) {
		if out.Intensity, err = codetables.Intensity1861.Decode(group[4:5]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// EncodeOpticalPhenomena encodes the Z0i figures.
func EncodeOpticalPhenomena(p *OpticalPhenomena) (string, error) {
	if p == nil {
		return "", obs.Encodef("no optical phenomena to encode")
	}
	return encodeLookupPair(codetables.OpticalPhenomena5161, p.Phenomena, codetables.Intensity1861, p.Intensity)
}

// Mirage is a mirage report (991A3Da).
type Mirage struct {
	MirageType *codetables.Simple   `json:"mirage_type"`
	Direction  *codetables.Cardinal `json:"direction"`
}

// DecodeMirage decodes a 991A3Da group.
func DecodeMirage(group string) (*Mirage, error) {
	out := &Mirage{}
	var err error
	if obs.IsAvailable(group[3:4]) {
		if out.MirageType, err = codetables.MirageType0101.Decode(group[3:4]); err != nil {
			return nil, err
		}
	}
	if out.Direction, err = codetables.DecodeCardinal0700(group[4:5]); err != nil {
		return nil, err
	}
	return out, nil
}

// EncodeMirage encodes the A3Da figures.
func EncodeMirage(m *Mirage) (string, error) {
	if m == nil {
		return "", obs.Encodef("no mirage to encode")
	}
	t := "/"
	if m.MirageType != nil {
		enc, err := codetables.MirageType0101.Encode(m.MirageType)
		if err != nil {
			return "", err
		}
		t = enc
	}
	d, err := encodeCardinal(m.Direction)
	if err != nil {
		return "", err
	}
	return t + d, nil
}

// CondensationTrails is a condensation trail report (992Nttw).
type CondensationTrails struct {
	Trail *codetables.Lookup `json:"trail"`
	Time  *obs.Measure       `json:"time"`
}

// DecodeCondensationTrails decodes a 992Nttw group.
func DecodeCondensationTrails(group string) (*CondensationTrails, error) {
	out := &CondensationTrails{}
	var err error
	if obs.IsAvailable(group[3:4]) {
		if out.Trail, err = codetables.CondensationTrail2752.Decode(group[3:4]); err != nil {
			return nil, err
		}
	}
	if obs.IsAvailable(group[4:5]) {
		if out.Time, err = codetables.CommencementTime4055.Decode(group[4:5]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// EncodeCondensationTrails encodes the Nttw figures.
func EncodeCondensationTrails(c *CondensationTrails) (string, error) {
	if c == nil {
		return "", obs.Encodef("no condensation trails to encode")
	}
	t := "/"
	if c.Trail != nil {
		enc, err := codetables.CondensationTrail2752.Encode(c.Trail)
		if err != nil {
			return "", err
		}
		t = enc
	}
	tm := "/"
	if c.Time != nil {
		enc, err := codetables.CommencementTime4055.Encode(c.Time)
		if err != nil {
			return "", err
		}
		tm = enc
	}
	return t + tm, nil
}

// DayDarkness is darkness during daylight hours (994AhDl).
type DayDarkness struct {
	Darkness  *codetables.Lookup   `json:"darkness"`
	Direction *codetables.Cardinal `json:"direction"`
}

// DecodeDayDarkness decodes a 994AhDl group.
func DecodeDayDarkness(group string) (*DayDarkness, error) {
	out := &DayDarkness{}
	var err error
	if obs.IsAvailable(group[3:4]) {
		if out.Darkness, err = codetables.Darkness0163.Decode(group[3:4]); err != nil {
			return nil, err
		}
	}
	if out.Direction, err = codetables.DecodeCardinal0700(group[4:5]); err != nil {
		return nil, err
	}
	return out, nil
}

// EncodeDayDarkness encodes the AhDl figures.
func EncodeDayDarkness(d *DayDarkness) (string, error) {
	if d == nil {
		return "", obs.Encodef("no day darkness to encode")
	}
	a := "/"
	if d.Darkness != nil {
		enc, err := codetables.Darkness0163.Encode(d.Darkness)
		if err != nil {
			return "", err
		}
		a = enc
	}
	dir, err := encodeCardinal(d.Direction)
	if err != nil {
		return "", err
	}
	return a + dir, nil
}

// LocationMaxConcentration is the location of maximum concentration of
// a phenomenon (97[0-4]EhDa).
type LocationMaxConcentration struct {
	Elevation *codetables.Lookup   `json:"elevation"`
	Direction *codetables.Cardinal `json:"direction"`
}

// DecodeLocationMaxConcentration decodes the EhDa figures of a group.
func DecodeLocationMaxConcentration(group string) (*LocationMaxConcentration, error) {
	out := &LocationMaxConcentration{}
	var err error
	if obs.IsAvailable(group[3:4]) {
		if out.Elevation, err = codetables.AnvilElevation0938.Decode(group[3:4]); err != nil {
			return nil, err
		}
	}
	if out.Direction, err = codetables.DecodeCardinal0700(group[4:5]); err != nil {
		return nil, err
	}
	return out, nil
}

// EncodeLocationMaxConcentration encodes the EhDa figures.
func EncodeLocationMaxConcentration(l *LocationMaxConcentration) (string, error) {
	if l == nil {
		return "", obs.Encodef("no phenomenon location to encode")
	}
	e := "/"
	if l.Elevation != nil {
		enc, err := codetables.AnvilElevation0938.Encode(l.Elevation)
		if err != nil {
			return "", err
		}
		e = enc
	}
	d, err := encodeCardinal(l.Direction)
	if err != nil {
		return "", err
	}
	return e + d, nil
}

// PhenomSpeedDir is the forward speed and source direction of a
// phenomenon (97[5-9]VpDp).
type PhenomSpeedDir struct {
	Speed     *codetables.DualSpeed `json:"speed"`
	Direction *codetables.Cardinal  `json:"direction"`
}

// DecodePhenomSpeedDir decodes the VpDp figures of a group.
func DecodePhenomSpeedDir(group string) (*PhenomSpeedDir, error) {
	out := &PhenomSpeedDir{}
	var err error
	if out.Speed, err = codetables.DecodePhenomSpeed4448(group[3:4]); err != nil {
		return nil, err
	}
	if out.Direction, err = codetables.DecodeCardinal0700(group[4:5]); err != nil {
		return nil, err
	}
	return out, nil
}

// EncodePhenomSpeedDir encodes the VpDp figures.
func EncodePhenomSpeedDir(p *PhenomSpeedDir) (string, error) {
	if p == nil {
		return "", obs.Encodef("no phenomenon movement to encode")
	}
	s := "/"
	if p.Speed != nil {
		enc, err := codetables.EncodePhenomSpeed4448(p.Speed)
		if err != nil {
			return "", err
		}
		s = enc
	}
	d, err := encodeCardinal(p.Direction)
	if err != nil {
		return "", err
	}
	return s + d, nil
}

// DecodeTropicalSkyState decodes the Ds figure via code table 430.
func DecodeTropicalSkyState(raw string) (*codetables.Simple, error) {
	if !obs.IsAvailable(raw) {
		return nil, nil
	}
	return codetables.TropicalSkyState430.Decode(raw)
}

// WeatherInfo collects time and variability amplifications of the
// weather groups (900, 901 and 905 groups).
type WeatherInfo struct {
	TimeBeforeObs *obs.Measure `json:"time_before_obs,omitempty"`
	Variability   *obs.Measure `json:"variability,omitempty"`
	TimeOfEnding  *obs.Measure `json:"time_of_ending,omitempty"`
	NonPersistent *obs.Measure `json:"non_persistent,omitempty"`
}

// timeFromTable adapts a decoded 4077 entry to a measure.
func timeFromTable(t *codetables.TimeBeforeObs) *obs.Measure {
	if t == nil {
		return nil
	}
	return &obs.Measure{
		Value: t.Value,
		Min:   t.Min,
		Max:   t.Max,
		Unit:  t.Unit,
		Table: t.Table,
		Code:  t.Code,
	}
}

// DecodeTimeBeforeObs decodes a two figure elapsed time via code table
// 4077.
func DecodeTimeBeforeObs(raw string) (*obs.Measure, error) {
	t, err := codetables.DecodeTimeBeforeObs4077(raw)
	if err != nil {
		return nil, err
	}
	return timeFromTable(t), nil
}

// DecodeVariability decodes a variability, location or intensity
// figure pair via code table 4077.
func DecodeVariability(raw string) (*obs.Measure, error) {
	t, err := codetables.DecodeVariabilityTime4077(raw)
	if err != nil {
		return nil, err
	}
	return timeFromTable(t), nil
}

// EncodeTimeBeforeObs encodes a 4077 elapsed time.
func EncodeTimeBeforeObs(m *obs.Measure) (string, error) {
	if m == nil {
		return "//", nil
	}
	return codetables.EncodeTimeBeforeObs4077(measureToTime(m))
}
