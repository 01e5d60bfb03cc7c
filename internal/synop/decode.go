package synop

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"synop_parser/internal/codetables"
	"synop_parser/internal/observations"
	"synop_parser/internal/obs"
)

// errEndOfReport signals that the report ran out of groups. Reports
// normally end this way, so it triggers finalisation rather than
// failure.
var errEndOfReport = errors.New("end of report")

var (
	section1Marker = regexp.MustCompile(`^(222|333|444|555)`)
	section2Marker = regexp.MustCompile(`^(ICE|333|444|555)$`)
	windSpillGroup = regexp.MustCompile(`^00\d{3}`)
	radSpecialRe   = regexp.MustCompile(`^55[45]0([78])`)
)

// Decode decodes a SYNOP, SHIP or SYNOP MOBIL report.
func Decode(message string) (*Report, error) {
	d := &decoder{
		groups: strings.Fields(message),
		r:      &Report{},
	}
	if err := d.run(); err != nil {
		return nil, err
	}
	d.r.NotImplemented = d.notImplemented
	d.r.Warnings = d.warnings.List()
	return d.r, nil
}

type decoder struct {
	groups []string
	pos    int

	r        *Report
	warnings obs.Warnings

	// Default period of reference for fields reported without their
	// own time group, per regulations 12.2.6.6.1 and 12.2.6.7.1.
	defTime *obs.Measure

	notImplemented []string

	// Collected groups that are interpreted after the walk, since
	// their meaning depends on what follows them.
	iceGroups []string
	group9    []string
	msg5      []string
}

func (d *decoder) next() (string, error) {
	if d.pos >= len(d.groups) {
		return "", errEndOfReport
	}
	g := d.groups[d.pos]
	d.pos++
	return g, nil
}

// soft downgrades invalid code errors to warnings. It reports whether
// the decoded value is usable.
func (d *decoder) soft(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	var invalid *obs.InvalidCode
	if errors.As(err, &invalid) {
		d.warnings.Add(err)
		return false, nil
	}
	return false, err
}

func (d *decoder) run() error {
	err := d.walk()
	if err != nil && !errors.Is(err, errEndOfReport) {
		return err
	}
	return d.finalize()
}

// isValidGroup reports whether a group is five figures and slashes.
func isValidGroup(group string, allowSlashes bool) bool {
	if len(group) != 5 {
		return false
	}
	for _, c := range group {
		if c >= '0' && c <= '9' {
			continue
		}
		if allowSlashes && c == '/' {
			continue
		}
		return false
	}
	return true
}

// figs returns the indexed figures of a group, padding with slashes
// when the group is short.
func figs(g string, i, j int) string {
	for len(g) < j {
		g += "/"
	}
	return g[i:j]
}

func (d *decoder) walk() error {
	nilReport, err := d.section0()
	if err != nil || nilReport {
		return err
	}
	group, err := d.section1()
	if err != nil {
		return err
	}
	group, err = d.section2(group)
	if err != nil {
		return err
	}
	group, err = d.section3(group)
	if err != nil {
		return err
	}
	return d.sections4and5(group)
}

func (d *decoder) section0() (bool, error) {
	group, err := d.next()
	if err != nil {
		return false, err
	}
	stationType, err := observations.DecodeStationType(group)
	if err != nil {
		return false, err
	}
	d.r.StationType = stationType

	if stationType != "AAXX" {
		if group, err = d.next(); err != nil {
			return false, err
		}
		callsign, err := observations.DecodeCallsign(group)
		if ok, err := d.soft(err); err != nil {
			return false, err
		} else if ok {
			d.r.Callsign = callsign
		}
	}

	// Date, time and wind indicator
	if group, err = d.next(); err != nil {
		return false, err
	}
	if !isValidGroup(group, true) {
		d.warnings.Addf("%s is an invalid YYGGi group", group)
	}
	obsTime, err := observations.DecodeObservationTime(figs(group, 0, 4))
	if ok, err := d.soft(err); err != nil {
		return false, err
	} else if ok {
		d.r.ObsTime = obsTime
	}
	windIndicator, err := observations.DecodeWindIndicator(figs(group, 4, 5))
	if ok, err := d.soft(err); err != nil {
		return false, err
	} else if ok {
		d.r.WindIndicator = windIndicator
	}

	if d.r.ObsTime != nil && d.r.ObsTime.Hour != nil {
		switch *d.r.ObsTime.Hour {
		case 0, 6, 12, 18:
			d.defTime = &obs.Measure{Value: obs.Float(6), Unit: "h"}
		case 3, 9, 15, 21:
			d.defTime = &obs.Measure{Value: obs.Float(3), Unit: "h"}
		default:
			d.defTime = &obs.Measure{Value: obs.Float(1), Unit: "h"}
		}
	}

	// Station identification: index number for fixed land stations,
	// position for the rest
	switch stationType {
	case "AAXX":
		if group, err = d.next(); err != nil {
			return false, err
		}
		if !isValidGroup(group, false) {
			return false, obs.Decodef("%s is an invalid IIiii group", group)
		}
		d.r.StationID = obs.String(group)
		region, err := observations.RegionFromStationID(group)
		if ok, err := d.soft(err); err != nil {
			return false, err
		} else if ok {
			d.r.Region = region
		}
	case "BBXX":
		g1, err := d.next()
		if err != nil {
			return false, err
		}
		g2, err := d.next()
		if err != nil {
			return false, err
		}
		position, err := observations.DecodeStationPosition(g1+" "+g2, &d.warnings)
		if ok, err := d.soft(err); err != nil {
			return false, err
		} else if ok {
			d.r.StationPosition = position
		}
		if d.r.Callsign != nil && d.r.Callsign.Region != nil {
			d.r.Region = d.r.Callsign.Region.Value
		} else {
			d.r.Region = "SHIP"
		}
	default: // OOXX
		parts := make([]string, 4)
		for i := range parts {
			if parts[i], err = d.next(); err != nil {
				return false, err
			}
		}
		position, err := observations.DecodeStationPosition(strings.Join(parts, " "), &d.warnings)
		if ok, err := d.soft(err); err != nil {
			return false, err
		} else if ok {
			d.r.StationPosition = position
		}
	}

	// A NIL group here means an empty report
	if group, err = d.next(); err != nil {
		return false, err
	}
	if group == "NIL" {
		return true, nil
	}
	d.pos--
	return false, nil
}

func (d *decoder) section1() (string, error) {
	group, err := d.next()
	if err != nil {
		return "", err
	}

	// iihVV
	if !isValidGroup(group, true) {
		d.warnings.Addf("%s is an invalid iihVV group", group)
	} else {
		indicator, err := observations.DecodePrecipitationIndicator(group[0:1], d.r.country())
		if ok, err := d.soft(err); err != nil {
			return "", err
		} else if ok {
			d.r.PrecipitationIndicator = indicator
		}
		weatherIndicator, err := observations.DecodeWeatherIndicator(group[1:2])
		if ok, err := d.soft(err); err != nil {
			return "", err
		} else if ok {
			d.r.WeatherIndicator = weatherIndicator
		}
		cloudBase, err := observations.DecodeLowestCloudBase(group[2:3])
		if ok, err := d.soft(err); err != nil {
			return "", err
		} else if ok {
			d.r.LowestCloudBase = cloudBase
		}
		visibility, err := observations.DecodeVisibility(group[3:5])
		if ok, err := d.soft(err); err != nil {
			return "", err
		} else if ok {
			d.r.Visibility = visibility
		}
	}

	// Nddff
	if group, err = d.next(); err != nil {
		return "", err
	}
	if !isValidGroup(group, true) {
		d.warnings.Addf("%s is an invalid Nddff group", group)
	} else {
		cover, err := codetables.DecodeCloudCover2700(group[0:1])
		if ok, err := d.soft(err); err != nil {
			return "", err
		} else if ok {
			d.r.CloudCover = cover
		}
		wind, err := observations.DecodeSurfaceWind(group[1:5], &d.warnings)
		if ok, err := d.soft(err); err != nil {
			return "", err
		} else if ok {
			d.r.SurfaceWind = wind
			if wind != nil && wind.Speed != nil && d.r.WindIndicator != nil {
				wind.Speed.Unit = d.r.WindIndicator.Unit
			}
		}
	}

	// A raw wind speed of 99 units means the true speed follows in a
	// 00fff group
	if group, err = d.next(); err != nil {
		return "", err
	}
	if w := d.r.SurfaceWind; w != nil && w.Speed != nil && w.Speed.Value != nil && *w.Speed.Value == 99 {
		if windSpillGroup.MatchString(group) {
			speed, err := strconv.Atoi(group[2:5])
			if err != nil {
				return "", obs.Decodef("unable to decode wind speed group %s", group)
			}
			w.Speed.Value = obs.Float(float64(speed))
			if group, err = d.next(); err != nil {
				return "", err
			}
		}
	}

	for i := 1; i <= 9; i++ {
		header := -1
		if !section1Marker.MatchString(group) {
			h, convErr := strconv.Atoi(group[0:1])
			if convErr != nil {
				d.warnings.Addf("%s is not a valid section 1 group", group)
				if group, err = d.next(); err != nil {
					return "", err
				}
				continue
			}
			header = h
		}
		if header == i {
			if !isValidGroup(group, true) {
				d.warnings.Addf("%s is an invalid section 1 group", group)
				if group, err = d.next(); err != nil {
					return "", err
				}
				continue
			}
			if err := d.section1Group(i, group); err != nil {
				return "", err
			}
			if group, err = d.next(); err != nil {
				return "", err
			}
		} else if header != -1 && header < i {
			if group, err = d.next(); err != nil {
				return "", err
			}
		}
	}
	return group, nil
}

func (d *decoder) section1Group(i int, group string) error {
	switch i {
	case 1:
		t, err := observations.DecodeTemperature(group, &d.warnings)
		if ok, err := d.soft(err); err != nil {
			return err
		} else if ok {
			d.r.AirTemperature = t
		}
	case 2:
		if group[1] == '9' {
			rh, err := observations.DecodeRelativeHumidity(group[2:5])
			if ok, err := d.soft(err); err != nil {
				return err
			} else if ok {
				d.r.RelativeHumidity = rh
			}
		} else {
			t, err := observations.DecodeTemperature(group, &d.warnings)
			if ok, err := d.soft(err); err != nil {
				return err
			} else if ok {
				d.r.DewpointTemperature = t
			}
		}
	case 3:
		p, err := observations.DecodePressure(group[1:5])
		if ok, err := d.soft(err); err != nil {
			return err
		} else if ok {
			d.r.StationPressure = p
		}
	case 4:
		switch group[1] {
		case '0', '9', '/':
			p, err := observations.DecodePressure(group[1:5])
			if ok, err := d.soft(err); err != nil {
				return err
			} else if ok {
				d.r.SeaLevelPressure = p
			}
		case '1', '2', '5', '7', '8':
			g, err := observations.DecodeGeopotential(group)
			if ok, err := d.soft(err); err != nil {
				return err
			} else if ok {
				d.r.Geopotential = g
			}
		}
	case 5:
		t, err := observations.DecodePressureTendency(group)
		if ok, err := d.soft(err); err != nil {
			return err
		} else if ok {
			d.r.PressureTendency = t
		}
	case 6:
		if d.r.PrecipitationIndicator == nil || !d.r.PrecipitationIndicator.InGroup1 {
			d.warnings.Addf("unexpected precipitation group found in section 1")
			return nil
		}
		p, err := observations.DecodePrecipitation(group)
		if ok, err := d.soft(err); err != nil {
			return err
		} else if ok {
			d.r.PrecipitationS1 = p
		}
	case 7:
		var ix *int
		if d.r.WeatherIndicator != nil {
			ix = d.r.WeatherIndicator.Value
		}
		if ix != nil && *ix != 1 && *ix != 4 && *ix != 7 {
			d.warnings.Addf("group 7 codes found, despite reported as being omitted (ix = %d)", *ix)
		}
		present, err := observations.DecodePresentWeather(group[1:3], ix, d.defTime)
		if ok, err := d.soft(err); err != nil {
			return err
		} else if ok {
			d.r.PresentWeather = present
		}
		d.r.PastWeather = make([]*observations.Weather, 2)
		for n := 0; n < 2; n++ {
			past, err := observations.DecodePastWeather(group[3+n:4+n], ix)
			if ok, err := d.soft(err); err != nil {
				return err
			} else if ok {
				d.r.PastWeather[n] = past
			}
		}
	case 8:
		c, err := observations.DecodeCloudTypes(group, &d.warnings)
		if ok, err := d.soft(err); err != nil {
			return err
		} else if ok {
			d.r.CloudTypes = c
		}
	case 9:
		t, err := observations.DecodeExactObservationTime(group)
		if ok, err := d.soft(err); err != nil {
			return err
		} else if ok {
			d.r.ExactObsTime = t
		}
	}
	return nil
}

func (d *decoder) section2(group string) (string, error) {
	var err error
	if strings.HasPrefix(group, "222") {
		if !isValidGroup(group, true) {
			d.warnings.Addf("%s is an invalid 222Dv group", group)
			return d.next()
		}
		displacement, err := observations.DecodeShipDisplacement(group)
		if ok, err := d.soft(err); err != nil {
			return "", err
		} else if ok {
			d.r.Displacement = displacement
		}
		d.r.HasSection2 = true
		if group, err = d.next(); err != nil {
			return "", err
		}
	}
	if !d.r.HasSection2 {
		return group, nil
	}

	// Swell wave data groups need the direction group that precedes
	// them
	var swellDirs string

	for i := 0; i <= 8; i++ {
		header := -1
		if !section2Marker.MatchString(group) {
			h, convErr := strconv.Atoi(group[0:1])
			if convErr != nil {
				d.warnings.Addf("%s is not a valid section 2 group", group)
				if group, err = d.next(); err != nil {
					return "", err
				}
				continue
			}
			header = h
		}
		if header == i {
			if !isValidGroup(group, true) {
				d.warnings.Addf("%s is an invalid section 2 group", group)
				if group, err = d.next(); err != nil {
					return "", err
				}
				continue
			}
			if err := d.section2Group(i, group, &swellDirs); err != nil {
				return "", err
			}
			if group, err = d.next(); err != nil {
				return "", err
			}
		} else if header != -1 && header < i {
			if group, err = d.next(); err != nil {
				return "", err
			}
		}
	}

	// ICE groups run until the start of section 3
	if group == "ICE" {
		for !strings.HasPrefix(group, "333") {
			d.iceGroups = append(d.iceGroups, group)
			if group, err = d.next(); err != nil {
				return "", err
			}
		}
	}
	if len(d.iceGroups) > 0 {
		if err := d.decodeIceGroups(); err != nil {
			return "", err
		}
	}
	return group, nil
}

func (d *decoder) section2Group(i int, group string, swellDirs *string) error {
	switch i {
	case 0:
		t, err := observations.DecodeSeaSurfaceTemperature(group)
		if ok, err := d.soft(err); err != nil {
			return err
		} else if ok {
			d.r.SeaSurfaceTemperature = t
		}
	case 1, 2:
		w, err := observations.DecodeWindWaves(group, i == 1)
		if ok, err := d.soft(err); err != nil {
			return err
		} else if ok && w != nil {
			d.r.WindWaves = append(d.r.WindWaves, w)
		}
	case 3:
		*swellDirs = group
	case 4, 5:
		w, err := observations.DecodeSwellWaves(*swellDirs + " " + group)
		if ok, err := d.soft(err); err != nil {
			return err
		} else if ok && w != nil {
			d.r.SwellWaves = append(d.r.SwellWaves, w)
		}
	case 6:
		a, err := observations.DecodeIceAccretion(group)
		if ok, err := d.soft(err); err != nil {
			return err
		} else if ok {
			d.r.IceAccretion = a
		}
	case 7:
		// The 70HHH group refines the instrumental measurement from
		// group 1 to the nearest tenth of a metre
		var instrumental *observations.WindWaves
		for _, w := range d.r.WindWaves {
			if w.Instrumental {
				instrumental = w
				break
			}
		}
		if instrumental == nil {
			d.warnings.Addf("1PPHH group required if 70HHH group is specified")
			return nil
		}
		accurate, err := observations.DecodeWindWaves(group, false)
		if ok, err := d.soft(err); err != nil {
			return err
		} else if !ok || accurate == nil {
			return nil
		} else {
			if instrumental.Height != nil && accurate.Height != nil &&
				instrumental.Height.Value != nil && accurate.Height.Value != nil {
				diff := *accurate.Height.Value - *instrumental.Height.Value
				if diff < -0.5 || diff > 0.5 {
					d.warnings.Addf("differing heights for wind wave between group 1 and group 7")
				}
			}
			instrumental.Height = accurate.Height
			instrumental.Accurate = true
		}
	case 8:
		t, err := observations.DecodeWetBulbTemperature(group)
		if ok, err := d.soft(err); err != nil {
			return err
		} else if ok {
			d.r.WetBulbTemperature = t
		}
	}
	return nil
}

func (d *decoder) decodeIceGroups() error {
	ice, err := observations.DecodeSeaLandIce(d.iceGroups)
	if ok, err := d.soft(err); err != nil {
		return err
	} else if ok {
		d.r.SeaLandIce = ice
	}
	d.iceGroups = nil
	return nil
}

func (d *decoder) section3(group string) (string, error) {
	if group != "333" {
		return group, nil
	}
	group, err := d.next()
	if err != nil {
		return "", err
	}

	lastHeader := -1
	group5Seen := false
	for {
		if group == "444" || group == "555" {
			break
		}
		header := int(group[0] - '0')
		if header < 0 || header > 9 {
			d.warnings.Addf("%s is not a valid section 3 group", group)
			if group, err = d.next(); err != nil {
				return "", err
			}
			continue
		}
		if lastHeader != -1 && header < lastHeader && !group5Seen {
			break
		}

		if header <= 6 && group5Seen {
			// Sunshine and radiation groups are interpreted together
			// once the whole run has been collected
			d.msg5 = append(d.msg5, group)
		} else if len(group) != 5 {
			d.warnings.Addf("%s is not a valid section 3 group", group)
		} else {
			skip, err := d.section3Group(header, group, &group5Seen)
			if err != nil {
				return "", err
			}
			if skip {
				if group, err = d.next(); err != nil {
					return "", err
				}
				continue
			}
		}
		lastHeader = header
		if group, err = d.next(); err != nil {
			return "", err
		}
	}

	if len(d.group9) > 0 {
		if err := d.parseGroup9(); err != nil {
			return "", err
		}
	}
	return group, nil
}

// section3Group decodes one section 3 group. skip reports that the
// group did not count towards the header ordering.
func (d *decoder) section3Group(header int, group string, group5Seen *bool) (bool, error) {
	switch header {
	case 0:
		switch d.r.Region {
		case "":
			d.warnings.Addf("no region information found")
		case "Antarctic":
			wind, err := observations.DecodeSurfaceWind(group[1:5], &d.warnings)
			if ok, err := d.soft(err); err != nil {
				return false, err
			} else if ok {
				d.r.MaxWind = wind
				if wind != nil && wind.Speed != nil && d.r.WindIndicator != nil {
					wind.Speed.Unit = d.r.WindIndicator.Unit
				}
			}
		case "I":
			t, err := observations.DecodeGroundMinimumTemperature(group[1:3])
			if ok, err := d.soft(err); err != nil {
				return false, err
			} else if ok {
				d.r.GroundMinimumTemperature = t
			}
			p, err := observations.DecodeLocalPrecipitation(group[3:5])
			if ok, err := d.soft(err); err != nil {
				return false, err
			} else if ok {
				d.r.LocalPrecipitation = p
			}
		case "II":
			g, err := observations.DecodeGroundState(group)
			if ok, err := d.soft(err); err != nil {
				return false, err
			} else if ok {
				d.r.GroundStateGrass = g
			}
		case "IV":
			s, err := observations.DecodeTropicalSkyState(group[1:2])
			if ok, err := d.soft(err); err != nil {
				return false, err
			} else if ok {
				d.r.TropicalSkyState = s
			}
			c, err := observations.DecodeCloudDriftDirection(group)
			if ok, err := d.soft(err); err != nil {
				return false, err
			} else if ok {
				d.r.TropicalCloudDriftDirection = c
			}
		default:
			return false, obs.Decodef("0xxxx is not valid for region %s", d.r.Region)
		}
	case 1:
		t, err := observations.DecodeTemperature(group, &d.warnings)
		if ok, err := d.soft(err); err != nil {
			return false, err
		} else if ok {
			d.r.MaximumTemperature = t
		}
	case 2:
		t, err := observations.DecodeTemperature(group, &d.warnings)
		if ok, err := d.soft(err); err != nil {
			return false, err
		} else if ok {
			d.r.MinimumTemperature = t
		}
	case 3:
		switch d.r.Region {
		case "":
			d.warnings.Addf("no region information found")
		case "II", "III", "IV", "VI":
		default:
			d.warnings.Addf("ground state not measured in region %s", d.r.Region)
			return true, nil
		}
		g, err := observations.DecodeGroundState(group)
		if ok, err := d.soft(err); err != nil {
			return false, err
		} else if ok {
			d.r.GroundState = g
		}
	case 4:
		g, err := observations.DecodeGroundStateSnow(group)
		if ok, err := d.soft(err); err != nil {
			return false, err
		} else if ok {
			d.r.GroundStateSnow = g
		}
	case 5:
		return false, d.section3Group5(group, group5Seen)
	case 6:
		if d.r.PrecipitationIndicator == nil {
			d.warnings.Addf("no precipitation indicator information found")
		} else if d.r.PrecipitationIndicator.InGroup3 {
			p, err := observations.DecodePrecipitation(group)
			if ok, err := d.soft(err); err != nil {
				return false, err
			} else if ok {
				d.r.PrecipitationS3 = p
			}
		} else {
			d.warnings.Addf("unexpected precipitation group found in section 3")
		}
	case 7:
		if d.r.Region == "Antarctic" {
			w, err := codetables.DecodeCardinal0700(group[1:2])
			if ok, err := d.soft(err); err != nil {
				return false, err
			} else if ok {
				d.r.PrevailingWind = w
			}
			c, err := observations.DecodeCloudDriftDirection(group)
			if ok, err := d.soft(err); err != nil {
				return false, err
			} else if ok {
				d.r.CloudDriftDirection = c
			}
		} else {
			p, err := observations.DecodePrecipitation24h(group)
			if ok, err := d.soft(err); err != nil {
				return false, err
			} else if ok {
				d.r.Precipitation24h = p
			}
		}
	case 8:
		l, err := observations.DecodeCloudLayer(group)
		if ok, err := d.soft(err); err != nil {
			return false, err
		} else if ok {
			d.r.CloudLayer = append(d.r.CloudLayer, l)
		}
	case 9:
		if group[0] == '9' && len(group) == 5 {
			d.group9 = append(d.group9, group)
		}
	}
	return false, nil
}

func (d *decoder) section3Group5(group string, group5Seen *bool) error {
	switch j := group[1]; {
	case j >= '0' && j <= '3':
		e, err := observations.DecodeEvapotranspiration(group)
		if ok, err := d.soft(err); err != nil {
			return err
		} else if ok {
			d.r.Evapotranspiration = e
		}
	case j == '4':
		t, err := observations.DecodeTemperatureChange(group[2:5])
		if ok, err := d.soft(err); err != nil {
			return err
		} else if ok {
			d.r.TemperatureChange = t
		}
	case j == '5':
		switch j2 := group[2]; {
		case j2 >= '0' && j2 <= '3', j2 == '/':
		case j2 == '4', j2 == '5':
			if group[3:5] != "07" && group[3:5] != "08" {
				d.warnings.Addf("%s is not a valid 5jjjj group", group)
				return nil
			}
		default:
			d.warnings.Addf("%s is not a valid section 3 group 5", group)
			return nil
		}
		*group5Seen = true
		d.msg5 = append(d.msg5, group)
	case j == '6':
		c, err := observations.DecodeCloudDriftDirection(group)
		if ok, err := d.soft(err); err != nil {
			return err
		} else if ok {
			d.r.CloudDriftDirection = c
		}
	case j == '7':
		c, err := observations.DecodeCloudElevation(group)
		if ok, err := d.soft(err); err != nil {
			return err
		} else if ok {
			d.r.CloudElevation = c
		}
	case j == '8', j == '9':
		p, err := observations.DecodePressureChange(group)
		if ok, err := d.soft(err); err != nil {
			return err
		} else if ok {
			d.r.PressureChange = p
		}
	}
	return nil
}

func (d *decoder) sections4and5(group string) error {
	var err error
	if group == "444" {
		d.r.CloudBaseBelowStation = []*observations.CloudBaseBelowStation{}
		if group, err = d.next(); err != nil {
			return err
		}
		for group != "555" {
			c, err := observations.DecodeCloudBaseBelowStation(group)
			if ok, err := d.soft(err); err != nil {
				return err
			} else if ok {
				d.r.CloudBaseBelowStation = append(d.r.CloudBaseBelowStation, c)
			}
			if group, err = d.next(); err != nil {
				return err
			}
		}
	} else if group != "555" {
		d.warnings.Addf("%s is not a valid group", group)
		if group, err = d.next(); err != nil {
			return err
		}
	}

	if group == "555" {
		d.r.Section5 = []string{}
		for {
			if group, err = d.next(); err != nil {
				return err
			}
			d.r.Section5 = append(d.r.Section5, group)
		}
	}
	return nil
}

func (d *decoder) parseGroup9() error {
	timeBefore := d.defTime
	g9 := d.group9
	d.group9 = nil
	for idx := 0; idx < len(g9); idx++ {
		g := g9[idx]
		switch g[1] {
		case '0':
			if err := d.group90(g9, idx, g, &timeBefore); err != nil {
				return err
			}
		case '1':
			switch g[2] {
			case '0':
				gust, err := observations.DecodeHighestGust(g, d.windUnit(), nil,
					&obs.Measure{Value: obs.Float(10), Unit: "min"})
				if ok, err := d.soft(err); err != nil {
					return err
				} else if ok {
					d.r.HighestGust = append(d.r.HighestGust, gust)
				}
			case '1':
				parse := g
				if idx+1 < len(g9) && strings.HasPrefix(g9[idx+1], "915") {
					parse = g + " " + g9[idx+1]
					g9 = append(g9[:idx+1], g9[idx+2:]...)
				}
				gust, err := observations.DecodeHighestGust(parse, d.windUnit(), timeBefore, nil)
				if ok, err := d.soft(err); err != nil {
					return err
				} else if ok {
					d.r.HighestGust = append(d.r.HighestGust, gust)
				}
			default:
				d.notImplemented = append(d.notImplemented, g)
			}
		case '2':
			switch g[2] {
			case '4':
				s, err := observations.DecodeSeaState(g[3:4])
				if ok, err := d.soft(err); err != nil {
					return err
				} else if ok {
					d.r.SeaState = s
				}
				v, err := observations.DecodeSeaVisibility(g[4:5])
				if ok, err := d.soft(err); err != nil {
					return err
				} else if ok {
					d.r.SeaVisibility = v
				}
			case '7':
				f, err := observations.DecodeFrozenDeposit(g)
				if ok, err := d.soft(err); err != nil {
					return err
				} else if ok {
					d.r.FrozenDeposit = f
				}
			case '8':
				s, err := observations.DecodeSnowCoverRegularity(g)
				if ok, err := d.soft(err); err != nil {
					return err
				} else if ok {
					d.r.SnowCoverRegularity = s
				}
			case '9':
				s, err := observations.DecodeDriftSnow(g)
				if ok, err := d.soft(err); err != nil {
					return err
				} else if ok {
					d.r.DriftSnow = s
				}
			default:
				d.notImplemented = append(d.notImplemented, g)
			}
		case '3':
			switch g[2] {
			case '1':
				s, err := observations.DecodeSnowFall(g, timeBefore)
				if ok, err := d.soft(err); err != nil {
					return err
				} else if ok {
					d.r.SnowFall = s
				}
			case '3', '4', '5', '6', '7':
				dd, err := observations.DecodeDepositDiameter(g)
				if ok, err := d.soft(err); err != nil {
					return err
				} else if ok {
					d.r.DepositDiameter = append(d.r.DepositDiameter, dd)
				}
			default:
				d.notImplemented = append(d.notImplemented, g)
			}
		case '4':
			switch g[2] {
			case '0':
				c, err := observations.DecodeCloudEvolution(g)
				if ok, err := d.soft(err); err != nil {
					return err
				} else if ok {
					d.r.CloudEvolution = append(d.r.CloudEvolution, c)
				}
			case '4':
				c, err := observations.DecodeMaxLowCloudConcentration(g)
				if ok, err := d.soft(err); err != nil {
					return err
				} else if ok {
					d.r.MaxLowCloudConcentration = append(d.r.MaxLowCloudConcentration, c)
				}
			default:
				d.notImplemented = append(d.notImplemented, g)
			}
		case '5':
			switch g[2] {
			case '0':
				m, err := observations.DecodeMountainCondition(g)
				if ok, err := d.soft(err); err != nil {
					return err
				} else if ok {
					d.r.MountainCondition = m
				}
			case '1':
				v, err := observations.DecodeValleyClouds(g)
				if ok, err := d.soft(err); err != nil {
					return err
				} else if ok {
					d.r.ValleyClouds = v
				}
			case '2', '3', '4', '5', '6', '7':
				return obs.Decodef("%s is not a valid code", g)
			default:
				d.notImplemented = append(d.notImplemented, g)
			}
		case '6':
			var ix *int
			if d.r.WeatherIndicator != nil {
				ix = d.r.WeatherIndicator.Value
			}
			switch g[2] {
			case '0', '1':
				w, err := observations.DecodePresentWeather(g[3:5], ix, d.defTime)
				if ok, err := d.soft(err); err != nil {
					return err
				} else if ok {
					d.r.PresentWeatherAdditional = append(d.r.PresentWeatherAdditional, w)
				}
			case '4', '5':
				w, err := observations.DecodeImportantWeather(g[3:5], ix, g[2] == '5', d.defTime)
				if ok, err := d.soft(err); err != nil {
					return err
				} else if ok {
					d.r.ImportantWeather = append(d.r.ImportantWeather, w)
				}
			default:
				d.notImplemented = append(d.notImplemented, g)
			}
		case '7':
			if err := d.group97(g); err != nil {
				return err
			}
		case '8':
			v, err := observations.DecodeVisibilityDirection(g, &d.warnings)
			if ok, err := d.soft(err); err != nil {
				return err
			} else if ok && v != nil {
				d.r.VisibilityDirection = append(d.r.VisibilityDirection, v)
			}
		case '9':
			if err := d.group99(g); err != nil {
				return err
			}
		default:
			d.notImplemented = append(d.notImplemented, g)
		}
	}
	return nil
}

func (d *decoder) windUnit() string {
	if d.r.WindIndicator == nil {
		return ""
	}
	return d.r.WindIndicator.Unit
}

// group90 handles the 90[01579]xx time and variability groups.
func (d *decoder) group90(g9 []string, idx int, g string, timeBefore **obs.Measure) error {
	switch g[2] {
	case '0':
		tz := g[3:5]
		if tz == "//" {
			return nil
		}
		n, err := strconv.Atoi(tz)
		if err != nil {
			d.warnings.Addf("%s is not a valid 900tz group", g)
			return nil
		}
		if d.r.WeatherInfo == nil {
			d.r.WeatherInfo = &observations.WeatherInfo{}
		}
		if n <= 75 {
			t, err := observations.DecodeTimeBeforeObs(tz)
			if ok, err := d.soft(err); err != nil {
				return err
			} else if ok {
				d.r.WeatherInfo.TimeBeforeObs = t
			}
		} else {
			v, err := observations.DecodeVariability(tz)
			if ok, err := d.soft(err); err != nil {
				return err
			} else if ok {
				d.r.WeatherInfo.Variability = v
			}
		}
	case '1':
		t, err := observations.DecodeTimeBeforeObs(g[3:5])
		if ok, err := d.soft(err); err != nil {
			return err
		} else if ok {
			if d.r.WeatherInfo == nil {
				d.r.WeatherInfo = &observations.WeatherInfo{}
			}
			d.r.WeatherInfo.TimeOfEnding = t
		}
	case '5':
		t, err := observations.DecodeTimeBeforeObs(g[3:5])
		if ok, err := d.soft(err); err != nil {
			return err
		} else if ok {
			if d.r.WeatherInfo == nil {
				d.r.WeatherInfo = &observations.WeatherInfo{}
			}
			d.r.WeatherInfo.NonPersistent = t
		}
	case '7':
		// 907 sets the reference period for the groups that follow,
		// except a 910 gust group which carries a fixed period
		if idx+1 >= len(g9) || strings.HasPrefix(g9[idx+1], "910") {
			return nil
		}
		t, err := observations.DecodeTimeBeforeObs(g[3:5])
		if ok, err := d.soft(err); err != nil {
			return err
		} else if ok {
			*timeBefore = t
		}
	case '9':
		// Present weather of 50 or above means precipitation is in
		// progress, so the group reports its beginning
		begin := false
		if w := d.r.PresentWeather; w != nil && w.Value != nil && *w.Value >= 50 {
			begin = true
		}
		t, err := observations.DecodePrecipitationTime(g)
		if ok, err := d.soft(err); err != nil {
			return err
		} else if ok {
			if begin {
				d.r.PrecipitationBegin = t
			} else {
				d.r.PrecipitationEnd = t
			}
		}
	default:
		d.notImplemented = append(d.notImplemented, g)
	}
	return nil
}

// group97 attaches location and movement amplifications to the weather
// entries they refer to.
func (d *decoder) group97(g string) error {
	switch g[2] {
	case '0', '1', '2', '3', '4':
		loc, err := observations.DecodeLocationMaxConcentration(g)
		if ok, err := d.soft(err); err != nil {
			return err
		} else if !ok {
			return nil
		}
		switch g[2] {
		case '0':
			if d.r.PresentWeather == nil {
				d.warnings.Addf("cannot decode %s - present weather is missing", g)
				return nil
			}
			d.r.PresentWeather.Location = loc
		case '1', '2':
			n := int(g[2] - '1')
			if len(d.r.PresentWeatherAdditional) <= n {
				d.warnings.Addf("cannot decode %s - additional present weather is missing", g)
				return nil
			}
			d.r.PresentWeatherAdditional[n].Location = loc
		case '3', '4':
			n := int(g[2] - '3')
			if len(d.r.PastWeather) <= n || d.r.PastWeather[n] == nil {
				d.warnings.Addf("cannot decode %s - past weather is missing", g)
				return nil
			}
			d.r.PastWeather[n].Location = loc
		}
	case '5', '6', '7', '8', '9':
		movement, err := observations.DecodePhenomSpeedDir(g)
		if ok, err := d.soft(err); err != nil {
			return err
		} else if !ok {
			return nil
		}
		switch g[2] {
		case '5':
			if d.r.PresentWeather == nil {
				d.warnings.Addf("cannot decode %s - present weather is missing", g)
				return nil
			}
			d.r.PresentWeather.Movement = movement
		case '6', '7':
			n := int(g[2] - '6')
			if len(d.r.PresentWeatherAdditional) <= n {
				d.warnings.Addf("cannot decode %s - additional present weather is missing", g)
				return nil
			}
			d.r.PresentWeatherAdditional[n].Movement = movement
		case '8', '9':
			n := int(g[2] - '8')
			if len(d.r.PastWeather) <= n || d.r.PastWeather[n] == nil {
				d.warnings.Addf("cannot decode %s - past weather is missing", g)
				return nil
			}
			d.r.PastWeather[n].Movement = movement
		}
	}
	return nil
}

// group99 handles the 99x optical and atmospheric phenomena groups.
func (d *decoder) group99(g string) error {
	switch g[2] {
	case '0':
		p, err := observations.DecodeOpticalPhenomena(g)
		if ok, err := d.soft(err); err != nil {
			return err
		} else if ok {
			d.r.OpticalPhenomena = p
		}
	case '1':
		if g[3:5] == "90" {
			d.r.StElmosFire = true
			return nil
		}
		m, err := observations.DecodeMirage(g)
		if ok, err := d.soft(err); err != nil {
			return err
		} else if ok {
			d.r.Mirage = append(d.r.Mirage, m)
		}
	case '2':
		c, err := observations.DecodeCondensationTrails(g)
		if ok, err := d.soft(err); err != nil {
			return err
		} else if ok {
			d.r.CondensationTrails = c
		}
	case '3':
		c, err := observations.DecodeSpecialClouds(g)
		if ok, err := d.soft(err); err != nil {
			return err
		} else if ok {
			d.r.SpecialClouds = c
		}
	case '4':
		dd, err := observations.DecodeDayDarkness(g)
		if ok, err := d.soft(err); err != nil {
			return err
		} else if ok {
			d.r.DayDarkness = dd
		}
	case '6', '7':
		t, err := observations.DecodeSuddenTemperatureChange(g[2:5])
		if ok, err := d.soft(err); err != nil {
			return err
		} else if ok {
			d.r.SuddenTemperatureChange = t
		}
	case '8', '9':
		h, err := observations.DecodeSuddenHumidityChange(g[2:5])
		if ok, err := d.soft(err); err != nil {
			return err
		} else if ok {
			d.r.SuddenHumidityChange = h
		}
	default:
		d.notImplemented = append(d.notImplemented, g)
	}
	return nil
}

// finalize interprets the groups whose meaning only settles once the
// whole report has been read: pending ICE and 9-groups, and the
// sunshine, radiation and trailing precipitation run of section 3.
func (d *decoder) finalize() error {
	if len(d.iceGroups) > 0 {
		if err := d.decodeIceGroups(); err != nil {
			return err
		}
	}
	if len(d.group9) > 0 {
		if err := d.parseGroup9(); err != nil {
			return err
		}
	}

	var g5 string
	for _, m := range d.msg5 {
		if strings.HasPrefix(m, "55") {
			g5 = m
			s, err := observations.DecodeSunshine(m)
			if ok, err := d.soft(err); err != nil {
				return err
			} else if ok {
				// A 55/// group still takes a slot so the radiation
				// groups that follow keep their reference period.
				d.r.Sunshine = append(d.r.Sunshine, s)
			}
			continue
		}
		if g5 == "" {
			d.warnings.Addf("radiation group %s without a preceding 55 group", m)
			continue
		}
		var radTime *obs.Measure
		var radUnit string
		if g5[2] == '3' {
			radTime = &obs.Measure{Value: obs.Float(1), Unit: "h"}
			radUnit = "kJ/m2"
		} else {
			radTime = &obs.Measure{Value: obs.Float(24), Unit: "h"}
			radUnit = "J/cm2"
		}
		radiation := observations.DecodeRadiation(figs(m, 1, 5), radUnit, radTime)
		var radType string
		if match := radSpecialRe.FindStringSubmatch(g5); match != nil {
			if match[1] == "7" {
				radType = "net_short_wave"
			} else {
				radType = "direct_solar"
			}
		} else if m[0] >= '0' && m[0] <= '6' {
			radType = radiationTypes[m[0]-'0']
		}
		if radType == "" {
			d.notImplemented = append(d.notImplemented, m)
			continue
		}
		if d.r.Radiation == nil {
			d.r.Radiation = map[string][]*observations.Radiation{}
		}
		d.r.Radiation[radType] = append(d.r.Radiation[radType], radiation)
	}

	// A trailing 6-group in the run is a precipitation group, not a
	// short wave radiation amount
	if len(d.msg5) > 0 {
		last := d.msg5[len(d.msg5)-1]
		if strings.HasPrefix(last, "6") && len(last) == 5 &&
			d.r.PrecipitationIndicator != nil && d.r.PrecipitationIndicator.InGroup3 {
			p, err := observations.DecodePrecipitation(last)
			if ok, err := d.soft(err); err != nil {
				return err
			} else if ok {
				d.r.PrecipitationS3 = p
				if sw := d.r.Radiation["short_wave"]; len(sw) == 1 {
					delete(d.r.Radiation, "short_wave")
				} else if len(sw) > 1 {
					d.r.Radiation["short_wave"] = sw[:len(sw)-1]
				}
			}
		}
	}
	d.msg5 = nil
	return nil
}
