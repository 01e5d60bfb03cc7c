package observations

import (
	"fmt"
	"strconv"
	"strings"

	"synop_parser/internal/codetables"
	"synop_parser/internal/obs"
)

// decodeSignedTemperature decodes a temperature in tenths of a degree
// with a separate sign figure (0 positive, 1 negative). Unavailable
// values decode to nil.
func decodeSignedTemperature(ttt string, sign byte) (*obs.Measure, error) {
	if sign == '/' {
		return nil, nil
	}
	if sign != '0' && sign != '1' {
		return nil, obs.Invalid(string(sign), "temperature sign")
	}
	if !obs.IsAvailable(ttt) {
		return nil, nil
	}
	n, err := strconv.Atoi(ttt)
	if err != nil {
		return nil, obs.Invalid(ttt, "temperature")
	}
	val := float64(n) / 10
	if sign == '1' {
		val = -val
	}
	return &obs.Measure{Value: obs.Float(val), Unit: "Cel"}, nil
}

// encodeSignedTemperature encodes a temperature as snTTT.
func encodeSignedTemperature(t *obs.Measure) string {
	if t == nil || t.Value == nil {
		return "////"
	}
	sign := 0
	if *t.Value < 0 {
		sign = 1
	}
	return fmt.Sprintf("%d%03d", sign, int(abs(*t.Value)*10+0.5))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// DecodeTemperature decodes a whole temperature group (1snTTT, 2snTTT
// and the section 3 extremes). A trailing slash in TTT stands in for a
// zero tenths figure unless the whole value is unavailable.
func DecodeTemperature(group string, warnings *obs.Warnings) (*obs.Measure, error) {
	sn := group[1]
	ttt := group[2:5]
	if ttt != "///" && strings.HasSuffix(ttt, "/") {
		ttt = ttt[:2] + "0"
	}
	if sn != '0' && sn != '1' && sn != '/' {
		warnings.Addf("%s is an invalid temperature group", group)
		return nil, nil
	}
	return decodeSignedTemperature(ttt, sn)
}

// EncodeTemperature encodes a temperature group without its header
// figure.
func EncodeTemperature(t *obs.Measure) (string, error) {
	return encodeSignedTemperature(t), nil
}

// DecodeRelativeHumidity decodes the UUU figures of group 29UUU.
func DecodeRelativeHumidity(raw string) (*obs.Measure, error) {
	n, err := decodeIntRange(raw, "relative humidity", 0, 100)
	if err != nil || n == nil {
		return nil, err
	}
	return &obs.Measure{Value: obs.Float(float64(*n)), Unit: "%"}, nil
}

// EncodeRelativeHumidity encodes the UUU figures.
func EncodeRelativeHumidity(m *obs.Measure) (string, error) {
	return encodeMeasure(m, 1, 3), nil
}

// DecodeGroundMinimumTemperature decodes the grass minimum temperature
// of the preceding night in whole degrees (region I).
func DecodeGroundMinimumTemperature(raw string) (*obs.Measure, error) {
	n, err := decodeInt(raw, "ground minimum temperature")
	if err != nil || n == nil {
		return nil, err
	}
	val := *n
	if val >= 50 {
		val = 50 - val
	}
	return &obs.Measure{Value: obs.Float(float64(val)), Unit: "Cel"}, nil
}

// EncodeGroundMinimumTemperature encodes the grass minimum temperature.
func EncodeGroundMinimumTemperature(m *obs.Measure) (string, error) {
	if m == nil || m.Value == nil {
		return "//", nil
	}
	val := int(*m.Value)
	if val < 0 {
		val += 50
	}
	return fmt.Sprintf("%02d", val), nil
}

// WetBulbTemperature is the wet-bulb temperature with its sign and
// type status from code table 3855.
type WetBulbTemperature struct {
	Value    *float64 `json:"value"`
	Sign     *int     `json:"sign,omitempty"`
	Measured *bool    `json:"measured,omitempty"`
	Iced     *bool    `json:"iced,omitempty"`
	Unit     string   `json:"unit,omitempty"`
}

// DecodeWetBulbTemperature decodes the 8swTbTbTb group.
func DecodeWetBulbTemperature(group string) (*WetBulbTemperature, error) {
	status, err := codetables.DecodeWetBulbStatus3855(string(group[1]))
	if err != nil {
		return nil, err
	}
	ttt := group[2:5]
	if status == nil || status.Sign == nil || !obs.IsAvailable(ttt) {
		return nil, nil
	}
	n, err := strconv.Atoi(ttt)
	if err != nil {
		return nil, obs.Invalid(ttt, "wet bulb temperature")
	}
	val := float64(n) / 10 * float64(*status.Sign)
	return &WetBulbTemperature{
		Value:    obs.Float(val),
		Sign:     status.Sign,
		Measured: status.Measured,
		Iced:     status.Iced,
		Unit:     "Cel",
	}, nil
}

// EncodeWetBulbTemperature encodes the swTbTbTb figures.
func EncodeWetBulbTemperature(t *WetBulbTemperature) (string, error) {
	if t == nil {
		return "", obs.Encodef("no wet bulb temperature to encode")
	}
	s, err := codetables.EncodeWetBulbStatus3855(&codetables.WetBulbStatus{
		Sign:     t.Sign,
		Measured: t.Measured,
		Iced:     t.Iced,
	})
	if err != nil {
		return "", err
	}
	if t.Value == nil {
		return s + "///", nil
	}
	return fmt.Sprintf("%s%03d", s, int(abs(*t.Value)*10+0.5)), nil
}

// SeaSurfaceTemperature is the sea surface temperature with its
// measurement method.
type SeaSurfaceTemperature struct {
	Value           *float64                  `json:"value"`
	Unit            string                    `json:"unit,omitempty"`
	MeasurementType *codetables.SeaTempMethod `json:"measurement_type,omitempty"`
}

// DecodeSeaSurfaceTemperature decodes the 0ssTwTwTw group.
func DecodeSeaSurfaceTemperature(group string) (*SeaSurfaceTemperature, error) {
	method, sign, err := codetables.DecodeSeaTempMethod3850(string(group[1]))
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, nil
	}
	out := &SeaSurfaceTemperature{MeasurementType: method}
	signByte := byte('0')
	if sign == 1 {
		signByte = '1'
	}
	temp, err := decodeSignedTemperature(group[2:5], signByte)
	if err != nil {
		return nil, err
	}
	if temp != nil {
		out.Value = temp.Value
		out.Unit = temp.Unit
	}
	return out, nil
}

// EncodeSeaSurfaceTemperature encodes the ssTwTwTw figures.
func EncodeSeaSurfaceTemperature(t *SeaSurfaceTemperature) (string, error) {
	if t == nil {
		return "", obs.Encodef("no sea surface temperature to encode")
	}
	s, err := codetables.EncodeSeaTempMethod3850(t.MeasurementType, t.Value != nil && *t.Value < 0)
	if err != nil {
		return "", err
	}
	if t.Value == nil {
		return s + "///", nil
	}
	return fmt.Sprintf("%s%03d", s, int(abs(*t.Value)*10+0.5)), nil
}

// TemperatureChange is a temperature change over a period before the
// observation (group 54g0sndT).
type TemperatureChange struct {
	TimeBeforeObs *obs.Measure                  `json:"time_before_obs"`
	Change        *codetables.TemperatureChange `json:"change"`
}

// DecodeTemperatureChange decodes the g0sndT figures.
func DecodeTemperatureChange(raw string) (*TemperatureChange, error) {
	hours, err := decodeIntRange(raw[0:1], "time before observation", 0, 5)
	if err != nil {
		return nil, err
	}
	out := &TemperatureChange{}
	if hours != nil {
		out.TimeBeforeObs = &obs.Measure{Value: obs.Float(float64(*hours)), Unit: "h"}
	}
	sign, err := decodeIntRange(raw[1:2], "temperature change sign", 0, 1)
	if err != nil {
		return nil, err
	}
	if sign != nil {
		change, err := codetables.DecodeTemperatureChange0822(raw[2:3], *sign)
		if err != nil {
			return nil, err
		}
		out.Change = change
	}
	return out, nil
}

// EncodeTemperatureChange encodes the g0sndT figures.
func EncodeTemperatureChange(t *TemperatureChange) (string, error) {
	if t == nil {
		return "", obs.Encodef("no temperature change to encode")
	}
	g0 := "/"
	if t.TimeBeforeObs != nil && t.TimeBeforeObs.Value != nil {
		g0 = strconv.Itoa(int(*t.TimeBeforeObs.Value))
	}
	if t.Change == nil {
		return g0 + "//", nil
	}
	sn := "0"
	if t.Change.Value != nil && *t.Change.Value < 0 {
		sn = "1"
	}
	dt, err := codetables.EncodeTemperatureChange0822(t.Change)
	if err != nil {
		return "", err
	}
	return g0 + sn + dt, nil
}

// DecodeSuddenTemperatureChange decodes a sudden rise (996) or fall
// (997) in air temperature. raw holds the last three figures of the
// group including the discriminator.
func DecodeSuddenTemperatureChange(raw string) (*obs.Measure, error) {
	n, err := decodeInt(raw[1:3], "sudden temperature change")
	if err != nil || n == nil {
		return nil, err
	}
	val := float64(*n)
	if raw[0] != '6' {
		val = -val
	}
	return &obs.Measure{Value: obs.Float(val), Unit: "Cel"}, nil
}

// DecodeSuddenHumidityChange decodes a sudden rise (998) or fall (999)
// in relative humidity.
func DecodeSuddenHumidityChange(raw string) (*obs.Measure, error) {
	n, err := decodeInt(raw[1:3], "sudden humidity change")
	if err != nil || n == nil {
		return nil, err
	}
	val := float64(*n)
	if raw[0] != '8' {
		val = -val
	}
	return &obs.Measure{Value: obs.Float(val), Unit: "%"}, nil
}

// EncodeSuddenChange encodes the magnitude of a sudden temperature or
// humidity change. The group prefix carries the sign.
func EncodeSuddenChange(m *obs.Measure) (string, error) {
	if m == nil || m.Value == nil {
		return "//", nil
	}
	return fmt.Sprintf("%02d", int(abs(*m.Value))), nil
}
