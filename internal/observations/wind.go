package observations

import (
	"fmt"
	"strings"

	"synop_parser/internal/codetables"
	"synop_parser/internal/conversion"
	"synop_parser/internal/obs"
)

// SurfaceWind is the wind direction and speed from the Nddff group.
// The speed unit comes from the wind indicator and is attached by the
// caller.
type SurfaceWind struct {
	Direction *codetables.Direction `json:"direction"`
	Speed     *obs.Measure          `json:"speed"`
}

// DecodeSurfaceWind decodes the ddff figures.
func DecodeSurfaceWind(ddff string, warnings *obs.Warnings) (*SurfaceWind, error) {
	direction, err := codetables.DecodeDirection0877(ddff[0:2])
	if err != nil {
		return nil, err
	}
	speedN, err := decodeInt(ddff[2:4], "wind speed")
	if err != nil {
		return nil, err
	}
	var speed *obs.Measure
	if speedN != nil {
		speed = &obs.Measure{Value: obs.Float(float64(*speedN))}
	}
	if direction != nil && direction.Calm && speed != nil && *speed.Value > 0 {
		warnings.Addf("wind is calm, yet has a speed (dd: %s, ff: %s)", ddff[0:2], ddff[2:4])
		speed = nil
	}
	return &SurfaceWind{Direction: direction, Speed: speed}, nil
}

// EncodeSurfaceWind encodes the ddff figures. unit is the speed unit
// the wind indicator announces; a speed stored in a different unit is
// converted first. Speeds above 99 units spill into a 00fff group.
func EncodeSurfaceWind(w *SurfaceWind, unit string) (string, error) {
	if w == nil {
		return "", obs.Encodef("no surface wind to encode")
	}
	dd := "//"
	if w.Direction != nil {
		enc, err := codetables.EncodeDirection0877(w.Direction)
		if err != nil {
			return "", err
		}
		dd = enc
	}
	if w.Speed == nil || w.Speed.Value == nil {
		return dd + "//", nil
	}
	val, err := speedIn(w.Speed, unit)
	if err != nil {
		return "", err
	}
	speed := int(val + 0.5)
	if speed > 99 {
		return fmt.Sprintf("%s99 00%03d", dd, speed), nil
	}
	return fmt.Sprintf("%s%02d", dd, speed), nil
}

// speedIn returns the measure's value in the requested unit.
func speedIn(m *obs.Measure, unit string) (float64, error) {
	if m.Unit == "" || unit == "" || m.Unit == unit {
		return *m.Value, nil
	}
	val, err := conversion.Convert(*m.Value, m.Unit, unit, "speed")
	if err != nil {
		return 0, obs.Encodef("%v", err)
	}
	return val, nil
}

// HighestGust is a highest gust report from the 910/911 group family,
// optionally with a 915 direction group.
type HighestGust struct {
	Speed         *obs.Measure          `json:"speed"`
	Direction     *codetables.Direction `json:"direction,omitempty"`
	TimeBeforeObs *obs.Measure          `json:"time_before_obs,omitempty"`
	MeasurePeriod *obs.Measure          `json:"measure_period,omitempty"`
}

// DecodeHighestGust decodes a 91[01]ff group, with an optional
// trailing 915dd group for direction. unit is the wind indicator's
// speed unit.
func DecodeHighestGust(group, unit string, timeBefore, measurePeriod *obs.Measure) (*HighestGust, error) {
	parts := strings.Split(group, " ")
	ff := parts[0][3:5]
	speedN, err := decodeInt(ff, "gust speed")
	if err != nil {
		return nil, err
	}
	gust := &HighestGust{TimeBeforeObs: timeBefore, MeasurePeriod: measurePeriod}
	if speedN != nil {
		gust.Speed = &obs.Measure{Value: obs.Float(float64(*speedN)), Unit: unit}
	}
	if len(parts) > 1 {
		direction, err := codetables.DecodeDirection0877(parts[1][3:5])
		if err != nil {
			return nil, err
		}
		gust.Direction = direction
	}
	return gust, nil
}

// EncodeHighestGusts encodes a list of gust reports, emitting 907 time
// groups when a gust's period differs from the section's prevailing
// one. unit is the wind indicator's speed unit.
func EncodeHighestGusts(gusts []*HighestGust, timeBefore *obs.Measure, unit string) (string, error) {
	var out []string
	for _, g := range gusts {
		prefix := ""
		switch {
		case g.TimeBeforeObs != nil:
			if !sameMeasure(g.TimeBeforeObs, timeBefore) {
				// A default reference period carries no 4077 code and
				// is not reported as a 907 group.
				tt, err := codetables.EncodeTimeBeforeObs4077(measureToTime(g.TimeBeforeObs))
				if err == nil && tt != "//" {
					out = append(out, "907"+tt)
				}
			}
			prefix = "911"
		case g.MeasurePeriod != nil:
			if g.MeasurePeriod.Value == nil || *g.MeasurePeriod.Value != 10 || g.MeasurePeriod.Unit != "min" {
				return "", obs.Encodef("invalid value for measure_period")
			}
			prefix = "910"
		default:
			return "", obs.Encodef("gust requires a time before observation or measure period")
		}
		ff := "//"
		if g.Speed != nil && g.Speed.Value != nil {
			val, err := speedIn(g.Speed, unit)
			if err != nil {
				return "", err
			}
			ff = fmt.Sprintf("%02d", int(val+0.5))
		}
		out = append(out, prefix+ff)
		if g.Direction != nil {
			dd, err := codetables.EncodeDirection0877(g.Direction)
			if err != nil {
				return "", err
			}
			out = append(out, "915"+dd)
		}
	}
	return strings.Join(out, " "), nil
}

func sameMeasure(a, b *obs.Measure) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Value == nil || b.Value == nil {
		return a.Value == b.Value
	}
	return *a.Value == *b.Value && a.Unit == b.Unit
}

// measureToTime adapts a time-before-observation measure to the 4077
// representation for re-encoding.
func measureToTime(m *obs.Measure) *codetables.TimeBeforeObs {
	if m == nil {
		return nil
	}
	t := &codetables.TimeBeforeObs{
		Value: m.Value,
		Min:   m.Min,
		Max:   m.Max,
		Unit:  m.Unit,
		Table: m.Table,
		Code:  m.Code,
	}
	return t
}
