// Package conversion provides the unit conversions used when encoding
// observed values that were stored in a different unit than the code
// form requires.
package conversion

import (
	"fmt"
	"strings"
)

// ConversionError reports a conversion between incompatible units.
type ConversionError struct {
	Value    float64
	UnitFrom string
	UnitTo   string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert %v from %s to %s", e.Value, e.UnitFrom, e.UnitTo)
}

var timeFactors = map[string]float64{
	"s":   1,
	"min": 60,
	"h":   60 * 60,
	"day": 60 * 60 * 24,
}

var siPrefixes = map[string]int{
	"m":  -3,
	"c":  -2,
	"d":  -1,
	"":   0,
	"da": 1,
	"h":  2,
	"k":  3,
}

// Convert converts val between units of the named kind. Supported kinds
// are "time", "length", "pressure", "speed" and "temperature".
func Convert(val float64, unitFrom, unitTo, kind string) (float64, error) {
	switch kind {
	case "time":
		return convertTime(val, unitFrom, unitTo)
	case "length":
		return convertSI(val, unitFrom, unitTo, "m")
	case "pressure":
		return convertSI(val, unitFrom, unitTo, "Pa")
	case "speed":
		return convertSpeed(val, unitFrom, unitTo)
	case "temperature":
		return convertTemperature(val, unitFrom, unitTo)
	}
	return 0, fmt.Errorf("cannot convert unit type %q", kind)
}

func convertTime(val float64, unitFrom, unitTo string) (float64, error) {
	from, okFrom := timeFactors[unitFrom]
	to, okTo := timeFactors[unitTo]
	if !okFrom || !okTo {
		return 0, &ConversionError{Value: val, UnitFrom: unitFrom, UnitTo: unitTo}
	}
	return val * from / to, nil
}

func convertSI(val float64, unitFrom, unitTo, base string) (float64, error) {
	expFrom, err := siExponent(unitFrom, base)
	if err != nil {
		return 0, &ConversionError{Value: val, UnitFrom: unitFrom, UnitTo: unitTo}
	}
	expTo, err := siExponent(unitTo, base)
	if err != nil {
		return 0, &ConversionError{Value: val, UnitFrom: unitFrom, UnitTo: unitTo}
	}
	factor := 1.0
	for i := expTo; i < expFrom; i++ {
		factor *= 10
	}
	for i := expFrom; i < expTo; i++ {
		factor /= 10
	}
	return val * factor, nil
}

func siExponent(unit, base string) (int, error) {
	if !strings.HasSuffix(unit, base) {
		return 0, fmt.Errorf("%s is not a %s unit", unit, base)
	}
	prefix := strings.TrimSuffix(unit, base)
	exp, ok := siPrefixes[prefix]
	if !ok {
		return 0, fmt.Errorf("unknown SI prefix %q", prefix)
	}
	return exp, nil
}

func convertSpeed(val float64, unitFrom, unitTo string) (float64, error) {
	if unitFrom == unitTo {
		return val, nil
	}
	switch {
	case unitFrom == "m/s" && unitTo == "KT":
		return val * 1.94384, nil
	case unitFrom == "KT" && unitTo == "m/s":
		return val * 0.51444, nil
	}
	return 0, &ConversionError{Value: val, UnitFrom: unitFrom, UnitTo: unitTo}
}

func convertTemperature(val float64, unitFrom, unitTo string) (float64, error) {
	if unitFrom == unitTo {
		return val, nil
	}
	switch unitFrom {
	case "Cel":
		switch unitTo {
		case "degF":
			return val*9/5 + 32, nil
		case "K":
			return val + 273.15, nil
		}
	case "degF":
		switch unitTo {
		case "Cel":
			return (val - 32) * 5 / 9, nil
		case "K":
			return (val-32)*5/9 + 273.15, nil
		}
	case "K":
		switch unitTo {
		case "Cel":
			return val - 273.15, nil
		case "degF":
			return (val-273.15)*9/5 + 32, nil
		}
	}
	return 0, &ConversionError{Value: val, UnitFrom: unitFrom, UnitTo: unitTo}
}
