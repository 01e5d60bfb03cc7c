package observations

import (
	"fmt"
	"strconv"

	"synop_parser/internal/codetables"
	"synop_parser/internal/obs"
)

// PrecipitationIndicator reports in which sections precipitation data
// appears. Codes 6, 7 and 8 are only valid for Russian stations.
type PrecipitationIndicator struct {
	Value    int  `json:"value"`
	InGroup1 bool `json:"in_group_1"`
	InGroup3 bool `json:"in_group_3"`
}

// DecodePrecipitationIndicator decodes the iR figure.
func DecodePrecipitationIndicator(raw, country string) (*PrecipitationIndicator, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, obs.Invalid(raw, "precipitation indicator")
	}
	valid := 0 <= n && n <= 4
	if country == "RU" && (n == 6 || n == 7 || n == 8) {
		valid = true
	}
	if !valid {
		return nil, obs.Invalid(raw, "precipitation indicator")
	}
	return &PrecipitationIndicator{
		Value:    n,
		InGroup1: n == 0 || n == 1 || (n == 6 && country == "RU"),
		InGroup3: n == 0 || n == 2 || (n == 7 && country == "RU"),
	}, nil
}

// EncodePrecipitationIndicator encodes the iR figure.
func EncodePrecipitationIndicator(p *PrecipitationIndicator) (string, error) {
	if p == nil {
		return "", obs.Encodef("no precipitation indicator to encode")
	}
	return strconv.Itoa(p.Value), nil
}

// Precipitation is a precipitation amount over a reference period
// (6RRRt and the 24 hour 7RRRR form).
type Precipitation struct {
	Amount        *codetables.PrecipAmount `json:"amount"`
	TimeBeforeObs *obs.Measure             `json:"time_before_obs"`
}

// DecodePrecipitation decodes a 6RRRt group.
func DecodePrecipitation(group string) (*Precipitation, error) {
	out := &Precipitation{}
	var err error
	if obs.IsAvailable(group[1:4]) {
		if out.Amount, err = codetables.DecodePrecip3590(group[1:4]); err != nil {
			return nil, err
		}
		if out.Amount != nil {
			out.Amount.Unit = "mm"
		}
	}
	if obs.IsAvailable(group[4:5]) {
		if out.TimeBeforeObs, err = codetables.PrecipReferencePeriod4019.Decode(group[4:5]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// DecodePrecipitation24h decodes a 7RRRR group reporting tenths of mm
// over the past 24 hours.
func DecodePrecipitation24h(group string) (*Precipitation, error) {
	out := &Precipitation{}
	var err error
	if obs.IsAvailable(group[1:5]) {
		if out.Amount, err = codetables.DecodePrecip24h3590(group[1:5]); err != nil {
			return nil, err
		}
		if out.Amount != nil {
			out.Amount.Unit = "mm"
		}
	}
	// The reference period of the 24 hour group is fixed
	if out.TimeBeforeObs, err = codetables.PrecipReferencePeriod4019.Decode("4"); err != nil {
		return nil, err
	}
	return out, nil
}

// EncodePrecipitation encodes the RRRt figures.
func EncodePrecipitation(p *Precipitation) (string, error) {
	if p == nil {
		return "", obs.Encodef("no precipitation to encode")
	}
	rrr := "///"
	if p.Amount != nil {
		enc, err := codetables.EncodePrecip3590(p.Amount)
		if err != nil {
			return "", err
		}
		rrr = enc
	}
	t := "/"
	if p.TimeBeforeObs != nil {
		enc, err := codetables.PrecipReferencePeriod4019.Encode(p.TimeBeforeObs)
		if err != nil {
			return "", err
		}
		t = enc
	}
	return rrr + t, nil
}

// EncodePrecipitation24h encodes the RRRR figures of the 24 hour group.
func EncodePrecipitation24h(p *Precipitation) (string, error) {
	if p == nil {
		return "", obs.Encodef("no precipitation to encode")
	}
	if p.Amount == nil {
		return "////", nil
	}
	return codetables.EncodePrecip24h3590(p.Amount)
}

// PrecipitationTime is the time and character of precipitation from a
// 909Rtdc group.
type PrecipitationTime struct {
	Time      *obs.Measure `json:"time"`
	Character *obs.Measure `json:"character"`
}

// DecodePrecipitationTime decodes a 909Rtdc group.
func DecodePrecipitationTime(group string) (*PrecipitationTime, error) {
	out := &PrecipitationTime{}
	var err error
	if obs.IsAvailable(group[3:4]) {
		if out.Time, err = codetables.DecodePrecipTime3552(group[3:4]); err != nil {
			return nil, err
		}
	}
	if obs.IsAvailable(group[4:5]) {
		if out.Character, err = codetables.DecodePrecipDuration0833(group[4:5]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// EncodePrecipitationTime encodes the Rtdc figures.
func EncodePrecipitationTime(p *PrecipitationTime) (string, error) {
	if p == nil {
		return "", obs.Encodef("no precipitation time to encode")
	}
	return encodeFromCode(p.Time) + encodeFromCode(p.Character), nil
}

// encodeFromCode re-emits a decode-only table figure from its stored
// code.
func encodeFromCode(m *obs.Measure) string {
	if m == nil || m.Code == nil {
		return "/"
	}
	return strconv.Itoa(*m.Code)
}

// LocalPrecipitation is the character and time of precipitation for
// region I (0 group, figures RsRt).
type LocalPrecipitation struct {
	Character *codetables.Lookup `json:"character"`
	Time      *obs.Measure       `json:"time"`
}

// DecodeLocalPrecipitation decodes the RsRt figures.
func DecodeLocalPrecipitation(raw string) (*LocalPrecipitation, error) {
	out := &LocalPrecipitation{}
	var err error
	if obs.IsAvailable(raw[0:1]) {
		if out.Character, err = codetables.PrecipCharacter167.Decode(raw[0:1]); err != nil {
			return nil, err
		}
	}
	if obs.IsAvailable(raw[1:2]) {
		if out.Time, err = codetables.DecodePrecipTime168(raw[1:2]); err != nil {
			return nil, err
		}
		if out.Time != nil {
			out.Time.Unit = "h"
		}
	}
	return out, nil
}

// EncodeLocalPrecipitation encodes the RsRt figures.
func EncodeLocalPrecipitation(p *LocalPrecipitation) (string, error) {
	if p == nil {
		return "//", nil
	}
	c := "/"
	if p.Character != nil {
		enc, err := codetables.PrecipCharacter167.Encode(p.Character)
		if err != nil {
			return "", err
		}
		c = enc
	}
	return c + encodeFromCode(p.Time), nil
}

// SnowFall is the depth of newly fallen snow (931ss).
type SnowFall struct {
	Amount        *codetables.SnowFallAmount `json:"amount"`
	TimeBeforeObs *obs.Measure               `json:"time_before_obs,omitempty"`
}

// DecodeSnowFall decodes a 931ss group.
func DecodeSnowFall(group string, timeBefore *obs.Measure) (*SnowFall, error) {
	out := &SnowFall{TimeBeforeObs: timeBefore}
	var err error
	if obs.IsAvailable(group[3:5]) {
		if out.Amount, err = codetables.DecodeSnowFall3870(group[3:5]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// EncodeSnowFall encodes the snow fall with a 907 time group when the
// report carried its own period.
func EncodeSnowFall(s *SnowFall) (string, error) {
	if s == nil {
		return "", obs.Encodef("no snow fall to encode")
	}
	ss := "//"
	if s.Amount != nil && s.Amount.Code != nil {
		ss = fmt.Sprintf("%02d", *s.Amount.Code)
	}
	if s.TimeBeforeObs != nil && s.TimeBeforeObs.Table == "4077" {
		tt, err := codetables.EncodeTimeBeforeObs4077(measureToTime(s.TimeBeforeObs))
		if err != nil {
			return "", err
		}
		return "907" + tt + " 931" + ss, nil
	}
	return "931" + ss, nil
}

// Evapotranspiration is the daily amount of evaporation or
// evapotranspiration (5EEEiE).
type Evapotranspiration struct {
	Amount *obs.Measure                      `json:"amount"`
	Type   *codetables.EvaporationInstrument `json:"type"`
}

// DecodeEvapotranspiration decodes a 5EEEiE group.
func DecodeEvapotranspiration(group string) (*Evapotranspiration, error) {
	out := &Evapotranspiration{}
	eee, err := decodeInt(group[1:4], "evapotranspiration")
	if err != nil {
		return nil, err
	}
	if eee != nil {
		out.Amount = &obs.Measure{Value: obs.Float(float64(*eee) / 10), Unit: "mm"}
	}
	if out.Type, err = codetables.DecodeEvaporationInstrument1806(group[4:5]); err != nil {
		return nil, err
	}
	return out, nil
}

// EncodeEvapotranspiration encodes the EEEiE figures.
func EncodeEvapotranspiration(e *Evapotranspiration) (string, error) {
	if e == nil {
		return "", obs.Encodef("no evapotranspiration to encode")
	}
	ie, err := codetables.EncodeEvaporationInstrument1806(e.Type)
	if err != nil {
		return "", err
	}
	return encodeMeasure(e.Amount, 10, 3) + ie, nil
}

// GroundState is the state of the ground without snow or measurable
// ice cover, with the associated temperature.
type GroundState struct {
	State       *codetables.Simple `json:"state"`
	Temperature *obs.Measure       `json:"temperature"`
}

// DecodeGroundState decodes a 3EsnTT group.
func DecodeGroundState(group string) (*GroundState, error) {
	out := &GroundState{}
	var err error
	if obs.IsAvailable(group[1:2]) {
		if out.State, err = codetables.GroundStateBare0901.Decode(group[1:2]); err != nil {
			return nil, err
		}
	}
	sign := group[2]
	if sign != '/' {
		if sign != '0' && sign != '1' {
			return nil, obs.Invalid(string(sign), "temperature sign")
		}
		tt, err := decodeInt(group[3:5], "ground temperature")
		if err != nil {
			return nil, err
		}
		if tt != nil {
			val := float64(*tt)
			if sign == '1' {
				val = -val
			}
			out.Temperature = &obs.Measure{Value: obs.Float(val), Unit: "Cel"}
		}
	}
	return out, nil
}

// EncodeGroundState encodes the EsnTT figures.
func EncodeGroundState(g *GroundState) (string, error) {
	if g == nil {
		return "", obs.Encodef("no ground state to encode")
	}
	e := "/"
	if g.State != nil {
		enc, err := codetables.GroundStateBare0901.Encode(g.State)
		if err != nil {
			return "", err
		}
		e = enc
	}
	if g.Temperature == nil || g.Temperature.Value == nil {
		return e + "///", nil
	}
	sign := 0
	if *g.Temperature.Value < 0 {
		sign = 1
	}
	return fmt.Sprintf("%s%d%02d", e, sign, int(abs(*g.Temperature.Value))), nil
}

// GroundStateSnow is the state of the ground with snow or measurable
// ice cover, with the total snow depth.
type GroundStateSnow struct {
	State *codetables.Simple    `json:"state"`
	Depth *codetables.SnowDepth `json:"depth"`
}

// DecodeGroundStateSnow decodes a 4Esss group.
func DecodeGroundStateSnow(group string) (*GroundStateSnow, error) {
	out := &GroundStateSnow{}
	var err error
	if obs.IsAvailable(group[1:2]) {
		if out.State, err = codetables.GroundStateSnow0975.Decode(group[1:2]); err != nil {
			return nil, err
		}
	}
	if obs.IsAvailable(group[2:5]) {
		if out.Depth, err = codetables.DecodeSnowDepth3889(group[2:5]); err != nil {
			return nil, err
		}
		if out.Depth != nil {
			out.Depth.Unit = "cm"
		}
	}
	return out, nil
}

// EncodeGroundStateSnow encodes the Esss figures.
func EncodeGroundStateSnow(g *GroundStateSnow) (string, error) {
	if g == nil {
		return "", obs.Encodef("no ground state to encode")
	}
	e := "/"
	if g.State != nil {
		enc, err := codetables.GroundStateSnow0975.Encode(g.State)
		if err != nil {
			return "", err
		}
		e = enc
	}
	if g.Depth == nil {
		return e + "///", nil
	}
	sss, err := codetables.EncodeSnowDepth3889(g.Depth)
	if err != nil {
		return "", err
	}
	return e + sss, nil
}

// SnowCoverRegularity is the character and regularity of snow cover
// (928S8S'8).
type SnowCoverRegularity struct {
	Cover      *codetables.Lookup `json:"cover"`
	Regularity *codetables.Lookup `json:"regularity"`
}

// DecodeSnowCoverRegularity decodes a 928S8S'8 group.
func DecodeSnowCoverRegularity(group string) (*SnowCoverRegularity, error) {
	out := &SnowCoverRegularity{}
	var err error
	if obs.IsAvailable(group[3:4]) {
		if out.Cover, err = codetables.SnowCoverCharacter3765.Decode(group[3:4]); err != nil {
			return nil, err
		}
	}
	if obs.IsAvailable(group[4:5]) {
		if out.Regularity, err = codetables.SnowCoverRegularity3775.Decode(group[4:5]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// EncodeSnowCoverRegularity encodes the S8S'8 figures.
func EncodeSnowCoverRegularity(s *SnowCoverRegularity) (string, error) {
	if s == nil {
		return "", obs.Encodef("no snow cover regularity to encode")
	}
	return encodeLookupPair(codetables.SnowCoverCharacter3765, s.Cover, codetables.SnowCoverRegularity3775, s.Regularity)
}

// DriftSnow is drift snow phenomena and their evolution (929S6S'7).
type DriftSnow struct {
	Phenomena *codetables.Simple `json:"phenomena"`
	Evolution *codetables.Simple `json:"evolution"`
}

// DecodeDriftSnow decodes a 929S6S'7 group.
func DecodeDriftSnow(group string) (*DriftSnow, error) {
	out := &DriftSnow{}
	var err error
	if obs.IsAvailable(group[3:4]) {
		if out.Phenomena, err = codetables.DriftSnowPhenomena3766.Decode(group[3:4]); err != nil {
			return nil, err
		}
	}
	if obs.IsAvailable(group[4:5]) {
		if out.Evolution, err = codetables.DriftSnowEvolution3776.Decode(group[4:5]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// EncodeDriftSnow encodes the S6S'7 figures.
func EncodeDriftSnow(d *DriftSnow) (string, error) {
	if d == nil {
		return "", obs.Encodef("no drift snow to encode")
	}
	p := "/"
	if d.Phenomena != nil {
		enc, err := codetables.DriftSnowPhenomena3766.Encode(d.Phenomena)
		if err != nil {
			return "", err
		}
		p = enc
	}
	e := "/"
	if d.Evolution != nil {
		enc, err := codetables.DriftSnowEvolution3776.Encode(d.Evolution)
		if err != nil {
			return "", err
		}
		e = enc
	}
	return p + e, nil
}

// FrozenDeposit is the type of frozen deposit and its time of
// variation (927STSp).
type FrozenDeposit struct {
	Deposit   *codetables.Lookup `json:"deposit"`
	Variation *codetables.Simple `json:"variation"`
}

// DecodeFrozenDeposit decodes a 927STSp group.
func DecodeFrozenDeposit(group string) (*FrozenDeposit, error) {
	out := &FrozenDeposit{}
	var err error
	if obs.IsAvailable(group[3:4]) {
		if out.Deposit, err = codetables.FrozenDepositType3764.Decode(group[3:4]); err != nil {
			return nil, err
		}
	}
	if obs.IsAvailable(group[4:5]) {
		if out.Variation, err = codetables.FrozenDepositTime3955.Decode(group[4:5]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// EncodeFrozenDeposit encodes the STSp figures.
func EncodeFrozenDeposit(f *FrozenDeposit) (string, error) {
	if f == nil {
		return "", obs.Encodef("no frozen deposit to encode")
	}
	d := "/"
	if f.Deposit != nil {
		enc, err := codetables.FrozenDepositType3764.Encode(f.Deposit)
		if err != nil {
			return "", err
		}
		d = enc
	}
	v := "/"
	if f.Variation != nil {
		enc, err := codetables.FrozenDepositTime3955.Encode(f.Variation)
		if err != nil {
			return "", err
		}
		v = enc
	}
	return d + v, nil
}

// Deposit type discriminators of the 93tRR groups.
var depositTypes = []string{"", "", "", "solid", "glaze", "rime", "compound", "wet_snow"}

// DepositDiameters maps deposit types to their measured diameters.
type DepositDiameters map[string]*codetables.DepositDiameter

// DecodeDepositDiameter decodes a 93tRR group into a single entry map
// keyed by deposit type.
func DecodeDepositDiameter(group string) (DepositDiameters, error) {
	t, err := strconv.Atoi(group[2:3])
	if err != nil || t < 3 || t > 7 {
		return nil, obs.Invalid(group[2:3], "deposit type")
	}
	out := DepositDiameters{}
	if obs.IsAvailable(group[3:5]) {
		d, err := codetables.DecodeDeposit3570(group[3:5])
		if err != nil {
			return nil, err
		}
		out[depositTypes[t]] = d
	} else {
		out[depositTypes[t]] = nil
	}
	return out, nil
}

// EncodeDepositDiameter encodes the tRR figures of one deposit entry.
func EncodeDepositDiameter(d DepositDiameters) (string, error) {
	for i, name := range depositTypes {
		if name == "" {
			continue
		}
		diameter, seen := d[name]
		if !seen {
			continue
		}
		rr := "//"
		if diameter != nil && diameter.Code != nil {
			rr = fmt.Sprintf("%02d", *diameter.Code)
		}
		return fmt.Sprintf("%d%s", i, rr), nil
	}
	return "", obs.Encodef("no deposit diameter to encode")
}
