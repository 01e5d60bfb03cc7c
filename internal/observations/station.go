package observations

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"synop_parser/internal/codetables"
	"synop_parser/internal/obs"
)

var (
	stationTypeRe = regexp.MustCompile(`^(AA|BB|OO)XX$`)
	areaCallsign  = regexp.MustCompile(`^(1[1-7]|2[1-6]|3[1-4]|4[1-8]|5[1-6]|6[1-6]|7[1-4])\d{3}$`)
	shipCallsign  = regexp.MustCompile(`^[A-Za-z\d]{3,}`)
)

// DecodeStationType checks and returns the MMMM group.
func DecodeStationType(raw string) (string, error) {
	if !stationTypeRe.MatchString(raw) {
		return "", obs.Invalid(raw, "station type")
	}
	return raw, nil
}

// Callsign identifies a mobile station, either a ship's callsign or a
// WMO regional association area code.
type Callsign struct {
	Value  string             `json:"value"`
	Region *codetables.Region `json:"region,omitempty"`
}

// DecodeCallsign decodes the D...D or Abnnn group of a mobile station.
func DecodeCallsign(raw string) (*Callsign, error) {
	if areaCallsign.MatchString(raw) {
		region, err := codetables.DecodeRegion0161(raw[0:2])
		if err != nil {
			return nil, err
		}
		return &Callsign{Value: raw, Region: region}, nil
	}
	if shipCallsign.MatchString(raw) {
		return &Callsign{Value: strings.ToUpper(raw)}, nil
	}
	return nil, obs.Invalid(raw, "callsign")
}

// EncodeCallsign encodes the callsign group.
func EncodeCallsign(c *Callsign) (string, error) {
	if c == nil {
		return "", obs.Encodef("no callsign to encode")
	}
	if c.Region != nil {
		return c.Value, nil
	}
	return strings.ToUpper(c.Value), nil
}

// ObservationTime is the day and hour of the observation (YYGG).
type ObservationTime struct {
	Day  *int `json:"day"`
	Hour *int `json:"hour"`
}

// DecodeObservationTime decodes the YYGG figures.
func DecodeObservationTime(raw string) (*ObservationTime, error) {
	day, err := decodeIntRange(raw[0:2], "day of observation", 1, 31)
	if err != nil {
		return nil, err
	}
	hour, err := decodeIntRange(raw[2:4], "hour of observation", 0, 24)
	if err != nil {
		return nil, err
	}
	return &ObservationTime{Day: day, Hour: hour}, nil
}

// EncodeObservationTime encodes the YYGG figures.
func EncodeObservationTime(t *ObservationTime) (string, error) {
	if t == nil {
		return "", obs.Encodef("no observation time to encode")
	}
	return encodeInt(t.Day, 2) + encodeInt(t.Hour, 2), nil
}

// ExactObservationTime is the exact time of observation (9GGgg).
type ExactObservationTime struct {
	Hour   *int `json:"hour"`
	Minute *int `json:"minute"`
}

// DecodeExactObservationTime decodes the 9GGgg group.
func DecodeExactObservationTime(raw string) (*ExactObservationTime, error) {
	hour, err := decodeIntRange(raw[1:3], "hour of observation", 0, 24)
	if err != nil {
		return nil, err
	}
	minute, err := decodeIntRange(raw[3:5], "minute of observation", 0, 59)
	if err != nil {
		return nil, err
	}
	return &ExactObservationTime{Hour: hour, Minute: minute}, nil
}

// EncodeExactObservationTime encodes the GGgg figures.
func EncodeExactObservationTime(t *ExactObservationTime) (string, error) {
	if t == nil {
		return "", obs.Encodef("no exact observation time to encode")
	}
	return encodeInt(t.Hour, 2) + encodeInt(t.Minute, 2), nil
}

// WindIndicator describes how wind speeds in the report were obtained
// and the unit they are reported in.
type WindIndicator struct {
	Value     *int   `json:"value"`
	Unit      string `json:"unit,omitempty"`
	Estimated bool   `json:"estimated,omitempty"`
}

var windIndicatorRe = regexp.MustCompile(`^[0134/]$`)

// DecodeWindIndicator decodes the iw figure.
func DecodeWindIndicator(raw string) (*WindIndicator, error) {
	if !windIndicatorRe.MatchString(raw) {
		return nil, obs.Invalid(raw, "wind indicator")
	}
	if raw == "/" {
		return nil, nil
	}
	iw, _ := strconv.Atoi(raw)
	unit := "KT"
	if iw < 2 {
		unit = "m/s"
	}
	return &WindIndicator{
		Value:     obs.Int(iw),
		Unit:      unit,
		Estimated: iw == 0 || iw == 3,
	}, nil
}

// EncodeWindIndicator encodes the iw figure.
func EncodeWindIndicator(w *WindIndicator) (string, error) {
	if w == nil || w.Value == nil {
		return "/", nil
	}
	return strconv.Itoa(*w.Value), nil
}

// Station index blocks per WMO region, from the Manual on Codes
// section D.
var regionBlocks = []struct {
	region   string
	min, max int
}{
	{"I", 60000, 69998},
	{"II", 20000, 20099}, {"II", 20200, 21998}, {"II", 23001, 25998},
	{"II", 28001, 32998}, {"II", 35001, 36998}, {"II", 38001, 39998},
	{"II", 40350, 48599}, {"II", 48800, 49998}, {"II", 50001, 59998},
	{"III", 80001, 88998},
	{"IV", 70001, 79998},
	{"V", 48600, 48799}, {"V", 90001, 98998},
	{"VI", 1, 19998}, {"VI", 20100, 20199}, {"VI", 22001, 22998},
	{"VI", 26001, 27998}, {"VI", 33001, 34998}, {"VI", 37001, 37998},
	{"VI", 40001, 40349},
	{"Antarctic", 89001, 89998},
}

// RegionFromStationID determines the WMO region a station index
// belongs to.
func RegionFromStationID(id string) (string, error) {
	n, err := strconv.Atoi(id)
	if err != nil {
		return "", obs.Invalid(id, "region")
	}
	for _, b := range regionBlocks {
		if b.min <= n && n <= b.max {
			return b.region, nil
		}
	}
	return "", obs.Invalid(id, "region")
}

// CountryFromStationID returns the reporting country for station index
// blocks with country specific code forms.
func CountryFromStationID(id string) string {
	n, err := strconv.Atoi(id)
	if err != nil {
		return ""
	}
	if 20000 <= n && n <= 39999 {
		return "RU"
	}
	return ""
}

// StationPosition is the position of a sea or mobile land station. The
// Marsden square, elevation and confidence are only present for mobile
// land stations.
type StationPosition struct {
	Latitude      *float64     `json:"latitude"`
	Longitude     *float64     `json:"longitude"`
	MarsdenSquare *int         `json:"marsden_square,omitempty"`
	Elevation     *obs.Measure `json:"elevation,omitempty"`
	Confidence    string       `json:"confidence,omitempty"`
}

var positionUnavailableRe = regexp.MustCompile(`^99/// /////`)

var confidenceLevels = []string{"Poor", "Excellent", "Good", "Fair"}

// DecodeStationPosition decodes the 99LaLaLa QcLoLoLoLo groups, plus
// the MMMULaULo h0h0h0h0im groups for mobile land stations.
func DecodeStationPosition(raw string, warnings *obs.Warnings) (*StationPosition, error) {
	parts := strings.Split(raw, " ")
	if len(parts) != 2 && len(parts) != 4 {
		return nil, obs.Decodef("invalid groups for decoding station position (%s)", raw)
	}
	if positionUnavailableRe.MatchString(raw) {
		return nil, nil
	}

	lat := raw[2:5]
	q := raw[6:7]
	lon := raw[7:11]
	if q != "1" && q != "3" && q != "5" && q != "7" {
		return nil, obs.Invalid(q, "quadrant")
	}
	latN, err1 := strconv.Atoi(lat)
	lonN, err2 := strconv.Atoi(lon)
	if err1 != nil || err2 != nil {
		return nil, obs.Invalid(raw, "latitude/longitude")
	}

	pos := &StationPosition{}
	latVal := float64(latN) / 10
	if q == "3" || q == "5" {
		latVal = -latVal
	}
	lonVal := float64(lonN) / 10
	if q == "5" || q == "7" {
		lonVal = -lonVal
	}
	pos.Latitude = obs.Float(latVal)
	pos.Longitude = obs.Float(lonVal)

	if len(parts) == 4 {
		mmm := raw[12:15]
		ula := raw[15:16]
		ulo := raw[16:17]
		hhhh := raw[18:22]
		im := raw[22:23]

		if string(lat[1]) != ula {
			warnings.Addf("latitude unit digit does not match expected value (%c != %s)", lat[1], ula)
		}
		if string(lon[2]) != ulo {
			warnings.Addf("longitude unit digit does not match expected value (%c != %s)", lon[2], ulo)
		}

		square, err := decodeInt(mmm, "Marsden square")
		if err != nil {
			return nil, err
		}
		if square != nil {
			if (*square < 1 || *square > 623) && (*square < 901 || *square > 936) {
				return nil, obs.Invalid(mmm, "Marsden square")
			}
		}
		pos.MarsdenSquare = square

		imN, err := strconv.Atoi(im)
		if err != nil {
			return nil, obs.Invalid(im, "elevation indicator")
		}
		unit := "m"
		if imN > 4 {
			unit = "ft"
		}
		elev, err := decodeInt(hhhh, "elevation")
		if err != nil {
			return nil, err
		}
		if elev != nil {
			pos.Elevation = &obs.Measure{Value: obs.Float(float64(*elev)), Unit: unit}
		}
		pos.Confidence = confidenceLevels[imN%4]
	}
	return pos, nil
}

// EncodeStationPosition encodes the position groups. stationType
// controls the group count for unavailable positions.
func EncodeStationPosition(p *StationPosition, stationType string) (string, error) {
	if p == nil {
		switch stationType {
		case "BBXX":
			return "///// /////", nil
		case "OOXX":
			return "///// ///// ///// /////", nil
		}
		return "", obs.Encodef("%s is not a valid observation type", stationType)
	}
	if p.Latitude == nil || p.Longitude == nil {
		return "", obs.Encodef("station position requires latitude and longitude")
	}

	quadrant := "1"
	switch {
	case *p.Latitude < 0 && *p.Longitude < 0:
		quadrant = "5"
	case *p.Latitude < 0:
		quadrant = "3"
	case *p.Longitude < 0:
		quadrant = "7"
	}
	lat := int(*p.Latitude * 10)
	lon := int(*p.Longitude * 10)
	if quadrant == "3" || quadrant == "5" {
		lat = -lat
	}
	if quadrant == "5" || quadrant == "7" {
		lon = -lon
	}

	groups := []string{
		fmt.Sprintf("99%03d", lat),
		fmt.Sprintf("%s%04d", quadrant, lon),
	}
	if stationType == "OOXX" {
		g1 := groups[0]
		g2 := groups[1]
		groups = append(groups, fmt.Sprintf("%s%c%c",
			encodeInt(p.MarsdenSquare, 3), g1[len(g1)-2], g2[len(g2)-2]))
		im := 0
		if p.Elevation != nil {
			idx := 0
			for i, c := range confidenceLevels {
				if c == p.Confidence {
					idx = i
					break
				}
			}
			if idx == 0 {
				idx = 4
			}
			switch p.Elevation.Unit {
			case "m":
				im = idx
			case "ft":
				im = idx + 4
			default:
				return "", obs.Encodef("%s is not a valid unit for elevation", p.Elevation.Unit)
			}
		}
		groups = append(groups, fmt.Sprintf("%s%d", encodeMeasure(p.Elevation, 1, 4), im))
	}
	return strings.Join(groups, " "), nil
}
