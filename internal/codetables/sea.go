package codetables

import "synop_parser/internal/obs"

// IceAccretionSource describes the cause of ice accretion on ships
// (code table 1751).
type IceAccretionSource struct {
	Spray bool   `json:"spray"`
	Fog   bool   `json:"fog"`
	Rain  bool   `json:"rain"`
	Table string `json:"_table,omitempty"`
	Code  *int   `json:"_code,omitempty"`
}

var iceAccretionSources = []*IceAccretionSource{
	nil,
	{Spray: true},
	{Fog: true},
	{Spray: true, Fog: true},
	{Rain: true},
	{Spray: true, Rain: true},
}

// DecodeIceAccretion1751 decodes the cause of ice accretion.
func DecodeIceAccretion1751(raw string) (*IceAccretionSource, error) {
	code, err := parseCode(raw, "1751")
	if err != nil {
		return nil, err
	}
	if code < 1 || code >= len(iceAccretionSources) {
		return nil, obs.Invalid(raw, "code table 1751")
	}
	src := *iceAccretionSources[code]
	src.Table = "1751"
	src.Code = obs.Int(code)
	return &src, nil
}

// EncodeIceAccretion1751 encodes the cause of ice accretion.
func EncodeIceAccretion1751(s *IceAccretionSource) (string, error) {
	if s == nil {
		return "", obs.Encodef("no value for code table 1751")
	}
	if s.Code != nil {
		return fmtCode(*s.Code, 1), nil
	}
	for i, src := range iceAccretionSources {
		if src == nil {
			continue
		}
		if src.Spray == s.Spray && src.Fog == s.Fog && src.Rain == s.Rain {
			return fmtCode(i, 1), nil
		}
	}
	return "", obs.Encodef("no code for ice accretion source in code table 1751")
}

// SeaTempMethod is the method of sea surface temperature measurement
// (code table 3850). The sign of the reported temperature is carried in
// the same figure and returned separately by the decoder.
type SeaTempMethod struct {
	Value *string `json:"value"`
	Table string  `json:"_table,omitempty"`
	Code  *int    `json:"_code,omitempty"`
}

var seaTempMethods = []string{"Intake", "Bucket", "Hull contact sensor", "Other"}

// DecodeSeaTempMethod3850 decodes the measurement method. The second
// return value is the temperature sign figure (0 positive, 1
// negative).
func DecodeSeaTempMethod3850(raw string) (*SeaTempMethod, int, error) {
	if raw == "/" {
		return nil, 1, nil
	}
	code, err := parseCode(raw, "3850")
	if err != nil {
		return nil, 0, err
	}
	if code < 0 || code > 7 {
		return nil, 0, obs.Invalid(raw, "code table 3850")
	}
	return &SeaTempMethod{
		Value: obs.String(seaTempMethods[code>>1]),
		Table: "3850",
		Code:  obs.Int(code),
	}, code % 2, nil
}

// EncodeSeaTempMethod3850 encodes the measurement method with the
// temperature sign folded in.
func EncodeSeaTempMethod3850(m *SeaTempMethod, negative bool) (string, error) {
	if m == nil {
		return "", obs.Encodef("no value for code table 3850")
	}
	if m.Code != nil {
		return fmtCode(*m.Code, 1), nil
	}
	method := 3
	if m.Value != nil {
		for i, v := range seaTempMethods {
			if v == *m.Value {
				method = i
				break
			}
		}
	}
	code := 2 * method
	if negative {
		code++
	}
	return fmtCode(code, 1), nil
}

// WetBulbStatus is the sign and type of wet-bulb temperature reported
// (code table 3855).
type WetBulbStatus struct {
	Sign     *int  `json:"sign"`
	Measured *bool `json:"measured"`
	Iced     *bool `json:"iced"`
}

var wetBulbStatuses = []*WetBulbStatus{
	{Sign: obs.Int(1), Measured: obs.Bool(true), Iced: obs.Bool(false)},
	{Sign: obs.Int(-1), Measured: obs.Bool(true), Iced: obs.Bool(false)},
	{Measured: obs.Bool(true), Iced: obs.Bool(true)},
	nil,
	nil,
	{Sign: obs.Int(1), Measured: obs.Bool(false), Iced: obs.Bool(false)},
	{Sign: obs.Int(-1), Measured: obs.Bool(false), Iced: obs.Bool(false)},
	{Measured: obs.Bool(false), Iced: obs.Bool(true)},
}

// DecodeWetBulbStatus3855 decodes the wet-bulb sign and type figure.
func DecodeWetBulbStatus3855(raw string) (*WetBulbStatus, error) {
	if raw == "/" {
		return &WetBulbStatus{}, nil
	}
	code, err := parseCode(raw, "3855")
	if err != nil {
		return nil, err
	}
	if code < 0 || code >= len(wetBulbStatuses) || wetBulbStatuses[code] == nil {
		return nil, obs.Invalid(raw, "code table 3855")
	}
	st := *wetBulbStatuses[code]
	return &st, nil
}

// EncodeWetBulbStatus3855 encodes the wet-bulb sign and type figure.
func EncodeWetBulbStatus3855(s *WetBulbStatus) (string, error) {
	if s == nil {
		return "", obs.Encodef("no value for code table 3855")
	}
	for i, st := range wetBulbStatuses {
		if st == nil {
			continue
		}
		if s.Iced != nil && *s.Iced && st.Iced != nil && *st.Iced {
			if equalBoolPtr(s.Measured, st.Measured) {
				return fmtCode(i, 1), nil
			}
			continue
		}
		if equalIntPtr(s.Sign, st.Sign) && equalBoolPtr(s.Measured, st.Measured) {
			return fmtCode(i, 1), nil
		}
	}
	return "", obs.Encodef("no code for wet bulb status in code table 3855")
}

func equalBoolPtr(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// SpeedRange is one unit's interval of a dual unit speed table.
type SpeedRange struct {
	Min        *float64 `json:"min"`
	Max        *float64 `json:"max"`
	Quantifier string   `json:"quantifier,omitempty"`
	Unit       string   `json:"unit,omitempty"`
}

// DualSpeed is a decoded speed reported simultaneously in two units.
type DualSpeed struct {
	Value []SpeedRange `json:"value"`
	Table string       `json:"_table,omitempty"`
	Code  *int         `json:"_code,omitempty"`
}

var shipSpeedKT = []Range{
	{0, obs.Float(0)}, {1, obs.Float(5)}, {6, obs.Float(10)}, {11, obs.Float(15)},
	{16, obs.Float(20)}, {21, obs.Float(25)}, {26, obs.Float(30)}, {31, obs.Float(35)},
	{36, obs.Float(40)},
}

var shipSpeedKMH = []Range{
	{0, obs.Float(0)}, {1, obs.Float(10)}, {11, obs.Float(19)}, {20, obs.Float(28)},
	{29, obs.Float(37)}, {38, obs.Float(47)}, {48, obs.Float(56)}, {57, obs.Float(65)},
	{66, obs.Float(75)},
}

// DecodeShipSpeed4451 decodes the ship's average speed made good during
// the three hours preceding the observation.
func DecodeShipSpeed4451(raw string) (*DualSpeed, error) {
	if raw == "/" {
		return nil, nil
	}
	code, err := parseCode(raw, "4451")
	if err != nil {
		return nil, err
	}
	if code < 0 || code > 9 {
		return nil, obs.Invalid(raw, "code table 4451")
	}
	var kt, kmh SpeedRange
	switch {
	case code == 0:
		kt = SpeedRange{Min: obs.Float(0), Max: obs.Float(0)}
		kmh = SpeedRange{Min: obs.Float(0), Max: obs.Float(0)}
	case code == 9:
		kt = SpeedRange{Min: obs.Float(40), Quantifier: obs.IsGreater}
		kmh = SpeedRange{Min: obs.Float(75), Quantifier: obs.IsGreater}
	default:
		rkt := shipSpeedKT[code]
		rkmh := shipSpeedKMH[code]
		kt = SpeedRange{Min: obs.Float(rkt.Min), Max: rkt.Max}
		kmh = SpeedRange{Min: obs.Float(rkmh.Min), Max: rkmh.Max}
	}
	kt.Unit = "KT"
	kmh.Unit = "km/h"
	return &DualSpeed{Value: []SpeedRange{kt, kmh}, Table: "4451", Code: obs.Int(code)}, nil
}

// EncodeShipSpeed4451 encodes the ship's average speed made good.
func EncodeShipSpeed4451(s *DualSpeed) (string, error) {
	if s == nil {
		return "", obs.Encodef("no value for code table 4451")
	}
	if s.Code != nil {
		return fmtCode(*s.Code, 1), nil
	}
	if len(s.Value) == 0 {
		return "", obs.Encodef("no code for speed in code table 4451")
	}
	for _, v := range s.Value {
		ranges := shipSpeedKT
		if v.Unit == "km/h" {
			ranges = shipSpeedKMH
		}
		for i, r := range ranges {
			if v.Min != nil && r.Min == *v.Min && r.Max != nil && v.Max != nil && *r.Max == *v.Max {
				return fmtCode(i, 1), nil
			}
		}
		if v.Quantifier == obs.IsGreater {
			return "9", nil
		}
	}
	return "", obs.Encodef("no code for speed in code table 4451")
}

var phenomSpeedKT = []Range{
	{0, obs.Float(5)}, {5, obs.Float(14)}, {15, obs.Float(24)}, {25, obs.Float(34)},
	{35, obs.Float(44)}, {45, obs.Float(54)}, {55, obs.Float(64)}, {65, obs.Float(74)},
	{75, obs.Float(84)}, {85, nil},
}

var phenomSpeedKMH = []Range{
	{0, obs.Float(9)}, {10, obs.Float(25)}, {26, obs.Float(44)}, {45, obs.Float(62)},
	{63, obs.Float(81)}, {82, obs.Float(100)}, {101, obs.Float(118)}, {119, obs.Float(137)},
	{138, obs.Float(155)}, {156, nil},
}

// DecodePhenomSpeed4448 decodes the forward speed of a phenomenon. The
// table is decode only.
func DecodePhenomSpeed4448(raw string) (*DualSpeed, error) {
	if raw == "/" {
		return nil, nil
	}
	code, err := parseCode(raw, "4448")
	if err != nil {
		return nil, err
	}
	if code < 0 || code > 9 {
		return nil, obs.Invalid(raw, "code table 4448")
	}
	units := []string{"KT", "km/h"}
	var speeds []SpeedRange
	for i, ranges := range [][]Range{phenomSpeedKT, phenomSpeedKMH} {
		r := ranges[code]
		speeds = append(speeds, SpeedRange{
			Min:  obs.Float(r.Min),
			Max:  r.Max,
			Unit: units[i],
		})
	}
	return &DualSpeed{Value: speeds, Table: "4448", Code: obs.Int(code)}, nil
}

// EncodePhenomSpeed4448 encodes the forward speed of a phenomenon.
func EncodePhenomSpeed4448(s *DualSpeed) (string, error) {
	if s == nil {
		return "", obs.Encodef("no value for code table 4448")
	}
	if s.Code != nil {
		return fmtCode(*s.Code, 1), nil
	}
	return "", obs.Encodef("no code for speed in code table 4448")
}
