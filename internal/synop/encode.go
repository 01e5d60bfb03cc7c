package synop

import (
	"strconv"
	"strings"

	"synop_parser/internal/codetables"
	"synop_parser/internal/observations"
	"synop_parser/internal/obs"
)

// EncodeOptions select the coarse 90-99 code scales for values that
// carry no code provenance of their own.
type EncodeOptions struct {
	UseVis90   bool
	UseCloud90 bool
}

// Encode encodes a report back into its message form. A report
// produced by Decode encodes to the original message.
func Encode(r *Report) (string, error) {
	return EncodeWithOptions(r, EncodeOptions{})
}

// EncodeWithOptions encodes a report with explicit code-scale options
// for caller-built reports.
func EncodeWithOptions(r *Report, opts EncodeOptions) (string, error) {
	e := &encoder{r: r, opts: opts}
	if err := e.section0(); err != nil {
		return "", err
	}
	if err := e.section1(); err != nil {
		return "", err
	}
	if err := e.section2(); err != nil {
		return "", err
	}
	if err := e.section3(); err != nil {
		return "", err
	}
	if err := e.sections4and5(); err != nil {
		return "", err
	}
	return strings.Join(e.groups, " "), nil
}

type encoder struct {
	r      *Report
	opts   EncodeOptions
	groups []string
}

// windUnit is the speed unit the report's wind indicator announces.
// Wind speeds stored in another unit are converted to it on encode.
func windUnit(r *Report) string {
	if r.WindIndicator == nil {
		return ""
	}
	return r.WindIndicator.Unit
}

func (e *encoder) add(parts ...string) {
	e.groups = append(e.groups, strings.Join(parts, ""))
}

func (e *encoder) section0() error {
	r := e.r
	if r.StationType == "" {
		return obs.Encodef("no station type to encode")
	}
	e.add(r.StationType)

	if r.Callsign != nil {
		callsign, err := observations.EncodeCallsign(r.Callsign)
		if err != nil {
			return err
		}
		e.add(callsign)
	}

	if r.ObsTime != nil || r.WindIndicator != nil {
		obsTime := "////"
		if r.ObsTime != nil {
			t, err := observations.EncodeObservationTime(r.ObsTime)
			if err != nil {
				return err
			}
			obsTime = t
		}
		windIndicator, err := observations.EncodeWindIndicator(r.WindIndicator)
		if err != nil {
			return err
		}
		e.add(obsTime, windIndicator)
	}

	if r.StationID != nil {
		e.add(*r.StationID)
	}
	if r.StationType == "BBXX" || r.StationType == "OOXX" {
		position, err := observations.EncodeStationPosition(r.StationPosition, r.StationType)
		if err != nil {
			return err
		}
		e.add(position)
	}
	return nil
}

func (e *encoder) section1() error {
	r := e.r
	if r.PrecipitationIndicator == nil {
		e.add("NIL")
		return nil
	}

	// iihVV
	indicator, err := observations.EncodePrecipitationIndicator(r.PrecipitationIndicator)
	if err != nil {
		return err
	}
	weatherIndicator, err := observations.EncodeWeatherIndicator(r.WeatherIndicator)
	if err != nil {
		return err
	}
	cloudBase, err := observations.EncodeLowestCloudBase(r.LowestCloudBase)
	if err != nil {
		return err
	}
	use90 := e.opts.UseVis90 || (r.Visibility != nil && r.Visibility.Use90)
	visibility, err := observations.EncodeVisibility(r.Visibility, use90)
	if err != nil {
		return err
	}
	e.add(indicator, weatherIndicator, cloudBase, visibility)

	// Nddff
	cover := "/"
	if r.CloudCover != nil {
		if cover, err = codetables.EncodeCloudCover2700(r.CloudCover); err != nil {
			return err
		}
	}
	wind := "////"
	if r.SurfaceWind != nil {
		if wind, err = observations.EncodeSurfaceWind(r.SurfaceWind, windUnit(r)); err != nil {
			return err
		}
	}
	e.add(cover, wind)

	if r.AirTemperature != nil {
		t, err := observations.EncodeTemperature(r.AirTemperature)
		if err != nil {
			return err
		}
		e.add("1", t)
	}
	if r.DewpointTemperature != nil {
		t, err := observations.EncodeTemperature(r.DewpointTemperature)
		if err != nil {
			return err
		}
		e.add("2", t)
	}
	if r.RelativeHumidity != nil {
		rh, err := observations.EncodeRelativeHumidity(r.RelativeHumidity)
		if err != nil {
			return err
		}
		e.add("29", rh)
	}
	if r.StationPressure != nil {
		p, err := observations.EncodePressure(r.StationPressure)
		if err != nil {
			return err
		}
		e.add("3", p)
	}
	if r.SeaLevelPressure != nil {
		p, err := observations.EncodePressure(r.SeaLevelPressure)
		if err != nil {
			return err
		}
		e.add("4", p)
	}
	if r.Geopotential != nil {
		g, err := observations.EncodeGeopotential(r.Geopotential)
		if err != nil {
			return err
		}
		e.add("4", g)
	}
	if r.PressureTendency != nil {
		t, err := observations.EncodePressureTendency(r.PressureTendency)
		if err != nil {
			return err
		}
		e.add("5", t)
	}
	if r.PrecipitationS1 != nil {
		p, err := observations.EncodePrecipitation(r.PrecipitationS1)
		if err != nil {
			return err
		}
		e.add("6", p)
	}
	if r.PresentWeather != nil || len(r.PastWeather) > 0 {
		present, err := observations.EncodePresentWeather(r.PresentWeather)
		if err != nil {
			return err
		}
		past, err := observations.EncodePastWeather(r.PastWeather)
		if err != nil {
			return err
		}
		e.add("7", present, past)
	}
	if r.CloudTypes != nil {
		c, err := observations.EncodeCloudTypes(r.CloudTypes)
		if err != nil {
			return err
		}
		e.add("8", c)
	}
	if r.ExactObsTime != nil {
		t, err := observations.EncodeExactObservationTime(r.ExactObsTime)
		if err != nil {
			return err
		}
		e.add("9", t)
	}
	return nil
}

func (e *encoder) section2() error {
	r := e.r
	if !r.HasSection2 && r.Displacement == nil {
		return nil
	}
	displacement, err := observations.EncodeShipDisplacement(r.Displacement)
	if err != nil {
		return err
	}
	e.add("222", displacement)

	if r.SeaSurfaceTemperature != nil {
		t, err := observations.EncodeSeaSurfaceTemperature(r.SeaSurfaceTemperature)
		if err != nil {
			return err
		}
		e.add("0", t)
	}
	for _, g := range []string{"1", "2"} {
		waves, err := observations.EncodeWindWaves(r.WindWaves, g)
		if err != nil {
			return err
		}
		if waves != "" {
			e.add(waves)
		}
	}
	if len(r.SwellWaves) > 0 {
		waves, err := observations.EncodeSwellWaves(r.SwellWaves)
		if err != nil {
			return err
		}
		e.add(waves)
	}
	if r.IceAccretion != nil {
		a, err := observations.EncodeIceAccretion(r.IceAccretion)
		if err != nil {
			return err
		}
		e.add("6", a)
	}
	waves, err := observations.EncodeWindWaves(r.WindWaves, "7")
	if err != nil {
		return err
	}
	if waves != "" {
		e.add(waves)
	}
	if r.WetBulbTemperature != nil {
		t, err := observations.EncodeWetBulbTemperature(r.WetBulbTemperature)
		if err != nil {
			return err
		}
		e.add("8", t)
	}
	if r.SeaLandIce != nil {
		ice, err := observations.EncodeSeaLandIce(r.SeaLandIce)
		if err != nil {
			return err
		}
		e.add(ice)
	}
	return nil
}

func (e *encoder) section3() error {
	r := e.r
	var weatherTime *obs.Measure
	if r.PresentWeather != nil {
		weatherTime = r.PresentWeather.TimeBeforeObs
	}

	var s3 []string
	add := func(parts ...string) {
		s3 = append(s3, strings.Join(parts, ""))
	}

	if r.MaxWind != nil {
		if r.Region != "Antarctic" {
			return obs.Encodef("max wind not valid for region %s", r.Region)
		}
		wind, err := observations.EncodeSurfaceWind(r.MaxWind, windUnit(r))
		if err != nil {
			return err
		}
		add("0", wind)
	}
	if r.GroundMinimumTemperature != nil || r.LocalPrecipitation != nil {
		if r.Region != "I" {
			return obs.Encodef("ground minimum temperature and local precipitation not valid for region %s", r.Region)
		}
		t, err := observations.EncodeGroundMinimumTemperature(r.GroundMinimumTemperature)
		if err != nil {
			return err
		}
		p, err := observations.EncodeLocalPrecipitation(r.LocalPrecipitation)
		if err != nil {
			return err
		}
		add("0", t, p)
	}
	if r.GroundStateGrass != nil {
		if r.Region != "II" {
			return obs.Encodef("ground state (grass) not valid for region %s", r.Region)
		}
		g, err := observations.EncodeGroundState(r.GroundStateGrass)
		if err != nil {
			return err
		}
		add("0", g)
	}
	if r.TropicalSkyState != nil || r.TropicalCloudDriftDirection != nil {
		if r.Region != "IV" {
			return obs.Encodef("tropical sky state not valid for region %s", r.Region)
		}
		s := "/"
		if r.TropicalSkyState != nil {
			var err error
			if s, err = codetables.TropicalSkyState430.Encode(r.TropicalSkyState); err != nil {
				return err
			}
		}
		c, err := observations.EncodeCloudDriftDirection(r.TropicalCloudDriftDirection)
		if err != nil {
			return err
		}
		add("0", s, c)
	}
	if r.MaximumTemperature != nil {
		t, err := observations.EncodeTemperature(r.MaximumTemperature)
		if err != nil {
			return err
		}
		add("1", t)
	}
	if r.MinimumTemperature != nil {
		t, err := observations.EncodeTemperature(r.MinimumTemperature)
		if err != nil {
			return err
		}
		add("2", t)
	}
	if r.GroundState != nil {
		g, err := observations.EncodeGroundState(r.GroundState)
		if err != nil {
			return err
		}
		add("3", g)
	}
	if r.GroundStateSnow != nil {
		g, err := observations.EncodeGroundStateSnow(r.GroundStateSnow)
		if err != nil {
			return err
		}
		add("4", g)
	}
	if r.Evapotranspiration != nil {
		ev, err := observations.EncodeEvapotranspiration(r.Evapotranspiration)
		if err != nil {
			return err
		}
		add("5", ev)
	}
	if r.TemperatureChange != nil {
		t, err := observations.EncodeTemperatureChange(r.TemperatureChange)
		if err != nil {
			return err
		}
		add("54", t)
	}
	if err := e.sunshineRadiation(add); err != nil {
		return err
	}
	if r.CloudDriftDirection != nil && r.PrevailingWind == nil {
		c, err := observations.EncodeCloudDriftDirection(r.CloudDriftDirection)
		if err != nil {
			return err
		}
		add("56", c)
	}
	if r.CloudElevation != nil {
		c, err := observations.EncodeCloudElevation(r.CloudElevation)
		if err != nil {
			return err
		}
		add("57", c)
	}
	if r.PressureChange != nil {
		p, err := observations.EncodePressureChange(r.PressureChange)
		if err != nil {
			return err
		}
		add("5", p)
	}
	if r.PrecipitationS3 != nil {
		p, err := observations.EncodePrecipitation(r.PrecipitationS3)
		if err != nil {
			return err
		}
		add("6", p)
	}
	if r.Precipitation24h != nil {
		p, err := observations.EncodePrecipitation24h(r.Precipitation24h)
		if err != nil {
			return err
		}
		add("7", p)
	}
	if r.PrevailingWind != nil {
		wind, err := codetables.EncodeCardinal0700(r.PrevailingWind)
		if err != nil {
			return err
		}
		drift, err := observations.EncodeCloudDriftDirection(r.CloudDriftDirection)
		if err != nil {
			return err
		}
		add("7", wind, drift)
	}
	if len(r.CloudLayer) > 0 {
		layers, err := observations.EncodeCloudLayers(r.CloudLayer, e.opts.UseCloud90)
		if err != nil {
			return err
		}
		add(layers)
	}
	if r.WeatherInfo != nil {
		info := r.WeatherInfo
		if info.TimeBeforeObs != nil {
			t, err := observations.EncodeTimeBeforeObs(info.TimeBeforeObs)
			if err != nil {
				return err
			}
			add("900", t)
		}
		if info.Variability != nil {
			v, err := observations.EncodeTimeBeforeObs(info.Variability)
			if err != nil {
				return err
			}
			add("900", v)
		}
		if info.TimeOfEnding != nil {
			t, err := observations.EncodeTimeBeforeObs(info.TimeOfEnding)
			if err != nil {
				return err
			}
			add("901", t)
		}
		if info.NonPersistent != nil {
			t, err := observations.EncodeTimeBeforeObs(info.NonPersistent)
			if err != nil {
				return err
			}
			add("905", t)
		}
	}
	if r.PrecipitationBegin != nil {
		p, err := observations.EncodePrecipitationTime(r.PrecipitationBegin)
		if err != nil {
			return err
		}
		add("909", p)
	}
	if r.PrecipitationEnd != nil {
		p, err := observations.EncodePrecipitationTime(r.PrecipitationEnd)
		if err != nil {
			return err
		}
		add("909", p)
	}
	if len(r.HighestGust) > 0 {
		gusts, err := observations.EncodeHighestGusts(r.HighestGust, weatherTime, windUnit(r))
		if err != nil {
			return err
		}
		add(gusts)
	}
	if r.SnowFall != nil {
		s, err := observations.EncodeSnowFall(r.SnowFall)
		if err != nil {
			return err
		}
		add(s)
	}
	if r.SeaState != nil || r.SeaVisibility != nil {
		s, err := observations.EncodeSeaState(r.SeaState)
		if err != nil {
			return err
		}
		v, err := observations.EncodeSeaVisibility(r.SeaVisibility)
		if err != nil {
			return err
		}
		add("924", s, v)
	}
	if r.FrozenDeposit != nil {
		f, err := observations.EncodeFrozenDeposit(r.FrozenDeposit)
		if err != nil {
			return err
		}
		add("927", f)
	}
	if r.SnowCoverRegularity != nil {
		s, err := observations.EncodeSnowCoverRegularity(r.SnowCoverRegularity)
		if err != nil {
			return err
		}
		add("928", s)
	}
	if r.DriftSnow != nil {
		s, err := observations.EncodeDriftSnow(r.DriftSnow)
		if err != nil {
			return err
		}
		add("929", s)
	}
	for _, dd := range r.DepositDiameter {
		enc, err := observations.EncodeDepositDiameter(dd)
		if err != nil {
			return err
		}
		add("93", enc)
	}
	for _, c := range r.CloudEvolution {
		enc, err := observations.EncodeCloudEvolution(c)
		if err != nil {
			return err
		}
		add("940", enc)
	}
	for _, c := range r.MaxLowCloudConcentration {
		enc, err := observations.EncodeMaxLowCloudConcentration(c)
		if err != nil {
			return err
		}
		add("944", enc)
	}
	if r.MountainCondition != nil {
		m, err := observations.EncodeMountainCondition(r.MountainCondition)
		if err != nil {
			return err
		}
		add("950", m)
	}
	if r.ValleyClouds != nil {
		v, err := observations.EncodeValleyClouds(r.ValleyClouds)
		if err != nil {
			return err
		}
		add("951", v)
	}
	for idx, w := range r.PresentWeatherAdditional {
		if idx >= 2 {
			break
		}
		enc, err := observations.EncodePresentWeather(w)
		if err != nil {
			return err
		}
		add("96", strconv.Itoa(idx), enc)
	}
	for idx, w := range r.ImportantWeather {
		if idx >= 2 {
			break
		}
		enc, err := observations.EncodeImportantWeather(w)
		if err != nil {
			return err
		}
		add("96", strconv.Itoa(idx+4), enc)
	}
	if err := e.weatherAmplifications(add); err != nil {
		return err
	}
	for _, v := range r.VisibilityDirection {
		enc, err := observations.EncodeVisibilityDirection(v)
		if err != nil {
			return err
		}
		add("98", enc)
	}
	if r.OpticalPhenomena != nil {
		p, err := observations.EncodeOpticalPhenomena(r.OpticalPhenomena)
		if err != nil {
			return err
		}
		add("990", p)
	}
	for _, m := range r.Mirage {
		enc, err := observations.EncodeMirage(m)
		if err != nil {
			return err
		}
		add("991", enc)
	}
	if r.StElmosFire {
		add("99190")
	}
	if r.CondensationTrails != nil {
		c, err := observations.EncodeCondensationTrails(r.CondensationTrails)
		if err != nil {
			return err
		}
		add("992", c)
	}
	if r.SpecialClouds != nil {
		c, err := observations.EncodeSpecialClouds(r.SpecialClouds)
		if err != nil {
			return err
		}
		add("993", c)
	}
	if r.DayDarkness != nil {
		dd, err := observations.EncodeDayDarkness(r.DayDarkness)
		if err != nil {
			return err
		}
		add("994", dd)
	}
	if r.SuddenTemperatureChange != nil {
		enc, err := observations.EncodeSuddenChange(r.SuddenTemperatureChange)
		if err != nil {
			return err
		}
		prefix := "997"
		if r.SuddenTemperatureChange.Value != nil && *r.SuddenTemperatureChange.Value > 0 {
			prefix = "996"
		}
		add(prefix, enc)
	}
	if r.SuddenHumidityChange != nil {
		enc, err := observations.EncodeSuddenChange(r.SuddenHumidityChange)
		if err != nil {
			return err
		}
		prefix := "999"
		if r.SuddenHumidityChange.Value != nil && *r.SuddenHumidityChange.Value > 0 {
			prefix = "998"
		}
		add(prefix, enc)
	}

	if len(s3) > 0 {
		e.groups = append(e.groups, "333")
		e.groups = append(e.groups, s3...)
	}
	return nil
}

// sunshineRadiation emits the 55SSS sunshine groups with the radiation
// amounts that share their reference period, or the special 55[45]0[78]
// markers when radiation is reported without sunshine.
func (e *encoder) sunshineRadiation(add func(...string)) error {
	r := e.r
	for _, s := range r.Sunshine {
		sunshine, err := observations.EncodeSunshine(s)
		if err != nil {
			return err
		}
		add("55", sunshine)
		if r.Radiation == nil {
			continue
		}
		radTime := 24.0
		if sunshine[0] == '3' {
			radTime = 1.0
		}
		for ti, name := range radiationTypes {
			for _, rad := range r.Radiation[name] {
				if rad.TimeBeforeObs == nil || rad.TimeBeforeObs.Value == nil ||
					*rad.TimeBeforeObs.Value != radTime {
					continue
				}
				enc, err := observations.EncodeRadiation(rad)
				if err != nil {
					return err
				}
				add(strconv.Itoa(ti), enc)
			}
		}
	}
	if len(r.Radiation) > 0 && len(r.Sunshine) == 0 {
		for _, name := range []string{"net_short_wave", "direct_solar"} {
			suffix := "7"
			if name == "direct_solar" {
				suffix = "8"
			}
			for _, rad := range r.Radiation[name] {
				if rad.TimeBeforeObs == nil || rad.TimeBeforeObs.Value == nil {
					continue
				}
				var prefix string
				switch *rad.TimeBeforeObs.Value {
				case 1:
					prefix = "4"
				case 24:
					prefix = "5"
				default:
					continue
				}
				enc, err := observations.EncodeRadiation(rad)
				if err != nil {
					return err
				}
				add("55", prefix, "0", suffix)
				add(prefix, enc)
			}
		}
	}
	return nil
}

// weatherAmplifications emits the 97x location and movement groups for
// the present, additional and past weather entries.
func (e *encoder) weatherAmplifications(add func(...string)) error {
	r := e.r
	if r.PresentWeather != nil {
		if r.PresentWeather.Location != nil {
			enc, err := observations.EncodeLocationMaxConcentration(r.PresentWeather.Location)
			if err != nil {
				return err
			}
			add("970", enc)
		}
		if r.PresentWeather.Movement != nil {
			enc, err := observations.EncodePhenomSpeedDir(r.PresentWeather.Movement)
			if err != nil {
				return err
			}
			add("975", enc)
		}
	}
	for idx, w := range r.PresentWeatherAdditional {
		if idx >= 2 {
			break
		}
		if w.Location != nil {
			enc, err := observations.EncodeLocationMaxConcentration(w.Location)
			if err != nil {
				return err
			}
			add("97", strconv.Itoa(idx+1), enc)
		}
		if w.Movement != nil {
			enc, err := observations.EncodePhenomSpeedDir(w.Movement)
			if err != nil {
				return err
			}
			add("97", strconv.Itoa(idx+6), enc)
		}
	}
	for idx, w := range r.PastWeather {
		if w == nil {
			continue
		}
		if idx >= 2 {
			break
		}
		if w.Location != nil {
			enc, err := observations.EncodeLocationMaxConcentration(w.Location)
			if err != nil {
				return err
			}
			add("97", strconv.Itoa(idx+3), enc)
		}
		if w.Movement != nil {
			enc, err := observations.EncodePhenomSpeedDir(w.Movement)
			if err != nil {
				return err
			}
			add("97", strconv.Itoa(idx+8), enc)
		}
	}
	return nil
}

func (e *encoder) sections4and5() error {
	r := e.r
	if r.CloudBaseBelowStation != nil {
		e.add("444")
		for _, c := range r.CloudBaseBelowStation {
			enc, err := observations.EncodeCloudBaseBelowStation(c)
			if err != nil {
				return err
			}
			e.add(enc)
		}
	}
	if r.Section5 != nil {
		e.add("555")
		e.groups = append(e.groups, r.Section5...)
	}
	return nil
}
