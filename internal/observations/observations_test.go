package observations

import (
	"errors"
	"testing"

	"synop_parser/internal/obs"
)

func TestDecodeStationType(t *testing.T) {
	for _, tt := range []struct {
		raw  string
		want string
		ok   bool
	}{
		{"AAXX", "AAXX", true},
		{"BBXX", "BBXX", true},
		{"OOXX", "OOXX", true},
		{"ZZXX", "", false},
	} {
		got, err := DecodeStationType(tt.raw)
		if tt.ok && err != nil {
			t.Errorf("DecodeStationType(%q) error: %v", tt.raw, err)
			continue
		}
		if !tt.ok {
			if err == nil {
				t.Errorf("DecodeStationType(%q) expected error", tt.raw)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("DecodeStationType(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestObservationTime(t *testing.T) {
	got, err := DecodeObservationTime("2318")
	if err != nil {
		t.Fatalf("DecodeObservationTime error: %v", err)
	}
	if *got.Day != 23 || *got.Hour != 18 {
		t.Errorf("DecodeObservationTime = %d/%d, want 23/18", *got.Day, *got.Hour)
	}
	enc, err := EncodeObservationTime(got)
	if err != nil {
		t.Fatalf("EncodeObservationTime error: %v", err)
	}
	if enc != "2318" {
		t.Errorf("EncodeObservationTime = %q, want 2318", enc)
	}
	if _, err := DecodeObservationTime("3218"); err == nil {
		t.Error("DecodeObservationTime(3218) expected error for day 32")
	}
}

func TestWindIndicator(t *testing.T) {
	for _, tt := range []struct {
		raw       string
		unit      string
		estimated bool
	}{
		{"0", "m/s", true},
		{"1", "m/s", false},
		{"3", "KT", true},
		{"4", "KT", false},
	} {
		got, err := DecodeWindIndicator(tt.raw)
		if err != nil {
			t.Fatalf("DecodeWindIndicator(%q) error: %v", tt.raw, err)
		}
		if got.Unit != tt.unit || got.Estimated != tt.estimated {
			t.Errorf("DecodeWindIndicator(%q) = {%s %v}, want {%s %v}",
				tt.raw, got.Unit, got.Estimated, tt.unit, tt.estimated)
		}
	}
	got, err := DecodeWindIndicator("/")
	if err != nil {
		t.Fatalf("DecodeWindIndicator(/) error: %v", err)
	}
	if got != nil {
		t.Errorf("DecodeWindIndicator(/) = %+v, want nil", got)
	}
}

func TestStationPositionRoundTrip(t *testing.T) {
	var w obs.Warnings
	pos, err := DecodeStationPosition("99220 10520", &w)
	if err != nil {
		t.Fatalf("DecodeStationPosition error: %v", err)
	}
	if *pos.Latitude != 22.0 || *pos.Longitude != 52.0 {
		t.Errorf("position = %.1f/%.1f, want 22.0/52.0", *pos.Latitude, *pos.Longitude)
	}
	enc, err := EncodeStationPosition(pos, "BBXX")
	if err != nil {
		t.Fatalf("EncodeStationPosition error: %v", err)
	}
	if enc != "99220 10520" {
		t.Errorf("EncodeStationPosition = %q, want 99220 10520", enc)
	}

	// Southern and western quadrants negate
	pos, err = DecodeStationPosition("99335 50790", &w)
	if err != nil {
		t.Fatalf("DecodeStationPosition error: %v", err)
	}
	if *pos.Latitude != -33.5 || *pos.Longitude != -79.0 {
		t.Errorf("position = %.1f/%.1f, want -33.5/-79.0", *pos.Latitude, *pos.Longitude)
	}

	// Missing mobile station position
	pos, err = DecodeStationPosition("99/// /////", &w)
	if err != nil {
		t.Fatalf("DecodeStationPosition error: %v", err)
	}
	if pos != nil {
		t.Errorf("DecodeStationPosition(99/// /////) = %+v, want nil", pos)
	}
}

func TestRegionFromStationID(t *testing.T) {
	for _, tt := range []struct {
		id   string
		want string
	}{
		{"62378", "I"},
		{"28698", "II"},
		{"83106", "III"},
		{"72201", "IV"},
		{"94120", "V"},
		{"03772", "VI"},
		{"89022", "Antarctic"},
	} {
		got, err := RegionFromStationID(tt.id)
		if err != nil {
			t.Fatalf("RegionFromStationID(%s) error: %v", tt.id, err)
		}
		if got != tt.want {
			t.Errorf("RegionFromStationID(%s) = %s, want %s", tt.id, got, tt.want)
		}
	}
}

func TestDecodeTemperature(t *testing.T) {
	var w obs.Warnings
	for _, tt := range []struct {
		group string
		want  float64
	}{
		{"10267", 26.7},
		{"11023", -2.3},
		{"21000", -0.0},
		{"1026/", 26.0}, // trailing slash stands in for zero tenths
	} {
		got, err := DecodeTemperature(tt.group, &w)
		if err != nil {
			t.Fatalf("DecodeTemperature(%q) error: %v", tt.group, err)
		}
		if got == nil || *got.Value != tt.want {
			t.Errorf("DecodeTemperature(%q) = %v, want %.1f", tt.group, got, tt.want)
		}
	}

	got, err := DecodeTemperature("1////", &w)
	if err != nil {
		t.Fatalf("DecodeTemperature(1////) error: %v", err)
	}
	if got != nil {
		t.Errorf("DecodeTemperature(1////) = %v, want nil", *got.Value)
	}

	before := len(w.List())
	if got, _ := DecodeTemperature("17267", &w); got != nil {
		t.Errorf("DecodeTemperature(17267) = %v, want nil", *got.Value)
	}
	if len(w.List()) != before+1 {
		t.Error("DecodeTemperature(17267) expected a warning")
	}
}

func TestEncodeTemperature(t *testing.T) {
	for _, tt := range []struct {
		value float64
		want  string
	}{
		{26.7, "0267"},
		{-2.3, "1023"},
		{0, "0000"},
	} {
		got, err := EncodeTemperature(&obs.Measure{Value: obs.Float(tt.value), Unit: "Cel"})
		if err != nil {
			t.Fatalf("EncodeTemperature(%.1f) error: %v", tt.value, err)
		}
		if got != tt.want {
			t.Errorf("EncodeTemperature(%.1f) = %q, want %q", tt.value, got, tt.want)
		}
	}
	got, err := EncodeTemperature(nil)
	if err != nil {
		t.Fatalf("EncodeTemperature(nil) error: %v", err)
	}
	if got != "////" {
		t.Errorf("EncodeTemperature(nil) = %q, want ////", got)
	}
}

func TestGroundMinimumTemperature(t *testing.T) {
	for _, tt := range []struct {
		raw  string
		want float64
		enc  string
	}{
		{"04", 4, "04"},
		{"54", -4, "54"},
		{"00", 0, "00"},
	} {
		got, err := DecodeGroundMinimumTemperature(tt.raw)
		if err != nil {
			t.Fatalf("DecodeGroundMinimumTemperature(%q) error: %v", tt.raw, err)
		}
		if *got.Value != tt.want {
			t.Errorf("DecodeGroundMinimumTemperature(%q) = %.1f, want %.1f", tt.raw, *got.Value, tt.want)
		}
		enc, err := EncodeGroundMinimumTemperature(got)
		if err != nil {
			t.Fatalf("EncodeGroundMinimumTemperature error: %v", err)
		}
		if enc != tt.enc {
			t.Errorf("EncodeGroundMinimumTemperature = %q, want %q", enc, tt.enc)
		}
	}
}

func TestPressureRoundTrip(t *testing.T) {
	for _, tt := range []struct {
		raw  string
		want float64
	}{
		{"0157", 1015.7}, // values at or below 5000 fold over 1000 hPa
		{"9989", 998.9},
		{"0000", 1000.0},
	} {
		got, err := DecodePressure(tt.raw)
		if err != nil {
			t.Fatalf("DecodePressure(%q) error: %v", tt.raw, err)
		}
		if *got.Value != tt.want {
			t.Errorf("DecodePressure(%q) = %.1f, want %.1f", tt.raw, *got.Value, tt.want)
		}
		enc, err := EncodePressure(got)
		if err != nil {
			t.Fatalf("EncodePressure error: %v", err)
		}
		if enc != tt.raw {
			t.Errorf("EncodePressure(%.1f) = %q, want %q", tt.want, enc, tt.raw)
		}
	}
}

func TestPressureTendency(t *testing.T) {
	got, err := DecodePressureTendency("52035")
	if err != nil {
		t.Fatalf("DecodePressureTendency error: %v", err)
	}
	if *got.Tendency.Value != 2 {
		t.Errorf("tendency = %d, want 2", *got.Tendency.Value)
	}
	if *got.Change.Value != 3.5 {
		t.Errorf("change = %.1f, want 3.5", *got.Change.Value)
	}

	// Tendencies of 5 and above report a falling pressure
	got, err = DecodePressureTendency("57021")
	if err != nil {
		t.Fatalf("DecodePressureTendency error: %v", err)
	}
	if *got.Change.Value != -2.1 {
		t.Errorf("change = %.1f, want -2.1", *got.Change.Value)
	}
	enc, err := EncodePressureTendency(got)
	if err != nil {
		t.Fatalf("EncodePressureTendency error: %v", err)
	}
	if enc != "7021" {
		t.Errorf("EncodePressureTendency = %q, want 7021", enc)
	}
}

func TestGeopotential(t *testing.T) {
	for _, tt := range []struct {
		group   string
		surface float64
		height  float64
	}{
		{"42130", 925, 1130}, // heights below 300 gpm fold over 1000
		{"47742", 700, 2742},
		{"48528", 850, 1528},
		{"41988", 1000, 988},
	} {
		got, err := DecodeGeopotential(tt.group)
		if err != nil {
			t.Fatalf("DecodeGeopotential(%q) error: %v", tt.group, err)
		}
		if *got.Surface.Value != tt.surface {
			t.Errorf("DecodeGeopotential(%q) surface = %.0f, want %.0f", tt.group, *got.Surface.Value, tt.surface)
		}
		if *got.Height.Value != tt.height {
			t.Errorf("DecodeGeopotential(%q) height = %.0f, want %.0f", tt.group, *got.Height.Value, tt.height)
		}
		enc, err := EncodeGeopotential(got)
		if err != nil {
			t.Fatalf("EncodeGeopotential error: %v", err)
		}
		if enc != tt.group[1:] {
			t.Errorf("EncodeGeopotential = %q, want %q", enc, tt.group[1:])
		}
	}
}

func TestSurfaceWind(t *testing.T) {
	var w obs.Warnings
	got, err := DecodeSurfaceWind("2015", &w)
	if err != nil {
		t.Fatalf("DecodeSurfaceWind error: %v", err)
	}
	if *got.Direction.Value != 200 || *got.Speed.Value != 15 {
		t.Errorf("wind = %.0f at %.0f, want 15 at 200", *got.Speed.Value, *got.Direction.Value)
	}

	// A calm direction with a nonzero speed is inconsistent
	before := len(w.List())
	got, err = DecodeSurfaceWind("0005", &w)
	if err != nil {
		t.Fatalf("DecodeSurfaceWind error: %v", err)
	}
	if got.Speed != nil {
		t.Errorf("calm wind speed = %v, want nil", *got.Speed.Value)
	}
	if len(w.List()) != before+1 {
		t.Error("expected a warning for calm wind with speed")
	}
}

func TestEncodeSurfaceWindHighSpeed(t *testing.T) {
	wind := &SurfaceWind{
		Speed: &obs.Measure{Value: obs.Float(135), Unit: "KT"},
	}
	got, err := EncodeSurfaceWind(wind, "KT")
	if err != nil {
		t.Fatalf("EncodeSurfaceWind error: %v", err)
	}
	if got != "//99 00135" {
		t.Errorf("EncodeSurfaceWind = %q, want //99 00135", got)
	}
}

func TestEncodeSurfaceWindUnitConversion(t *testing.T) {
	wind := &SurfaceWind{
		Speed: &obs.Measure{Value: obs.Float(10), Unit: "m/s"},
	}
	got, err := EncodeSurfaceWind(wind, "KT")
	if err != nil {
		t.Fatalf("EncodeSurfaceWind error: %v", err)
	}
	if got != "//19" {
		t.Errorf("EncodeSurfaceWind = %q, want //19", got)
	}
}

func TestPrecipitationIndicator(t *testing.T) {
	for _, tt := range []struct {
		raw      string
		country  string
		ok       bool
		inGroup1 bool
		inGroup3 bool
	}{
		{"0", "", true, true, true},
		{"1", "", true, true, false},
		{"2", "", true, false, true},
		{"3", "", true, false, false},
		{"4", "", true, false, false},
		{"6", "RU", true, true, false},
		{"7", "RU", true, false, true},
		{"6", "", false, false, false},
		{"9", "", false, false, false},
	} {
		got, err := DecodePrecipitationIndicator(tt.raw, tt.country)
		if !tt.ok {
			if err == nil {
				t.Errorf("DecodePrecipitationIndicator(%q, %q) expected error", tt.raw, tt.country)
			}
			continue
		}
		if err != nil {
			t.Fatalf("DecodePrecipitationIndicator(%q, %q) error: %v", tt.raw, tt.country, err)
		}
		if got.InGroup1 != tt.inGroup1 || got.InGroup3 != tt.inGroup3 {
			t.Errorf("DecodePrecipitationIndicator(%q, %q) = {%v %v}, want {%v %v}",
				tt.raw, tt.country, got.InGroup1, got.InGroup3, tt.inGroup1, tt.inGroup3)
		}
	}
}

func TestDecodePrecipitation(t *testing.T) {
	got, err := DecodePrecipitation("60121")
	if err != nil {
		t.Fatalf("DecodePrecipitation error: %v", err)
	}
	if *got.Amount.Value != 12 {
		t.Errorf("amount = %.1f, want 12", *got.Amount.Value)
	}
	if *got.TimeBeforeObs.Value != 6 {
		t.Errorf("time before obs = %.0f, want 6", *got.TimeBeforeObs.Value)
	}
	enc, err := EncodePrecipitation(got)
	if err != nil {
		t.Fatalf("EncodePrecipitation error: %v", err)
	}
	if enc != "0121" {
		t.Errorf("EncodePrecipitation = %q, want 0121", enc)
	}
}

func TestPresentWeatherTable(t *testing.T) {
	manual, err := DecodePresentWeather("63", obs.Int(1), nil)
	if err != nil {
		t.Fatalf("DecodePresentWeather error: %v", err)
	}
	if manual.Table != "4677" {
		t.Errorf("manual station table = %s, want 4677", manual.Table)
	}
	auto, err := DecodePresentWeather("63", obs.Int(7), nil)
	if err != nil {
		t.Fatalf("DecodePresentWeather error: %v", err)
	}
	if auto.Table != "4680" {
		t.Errorf("automatic station table = %s, want 4680", auto.Table)
	}
	missing, err := DecodePresentWeather("//", obs.Int(1), nil)
	if err != nil {
		t.Fatalf("DecodePresentWeather(//) error: %v", err)
	}
	if missing != nil {
		t.Errorf("DecodePresentWeather(//) = %+v, want nil", missing)
	}
}

func TestEncodePastWeather(t *testing.T) {
	ws := []*Weather{
		{Value: obs.Int(6), Table: "4561"},
		{Value: obs.Int(2), Table: "4561"},
	}
	got, err := EncodePastWeather(ws)
	if err != nil {
		t.Fatalf("EncodePastWeather error: %v", err)
	}
	if got != "62" {
		t.Errorf("EncodePastWeather = %q, want 62", got)
	}
	got, err = EncodePastWeather([]*Weather{{Value: obs.Int(6)}, nil})
	if err != nil {
		t.Fatalf("EncodePastWeather error: %v", err)
	}
	if got != "6/" {
		t.Errorf("EncodePastWeather = %q, want 6/", got)
	}
}

func TestSunshine(t *testing.T) {
	got, err := DecodeSunshine("55073")
	if err != nil {
		t.Fatalf("DecodeSunshine error: %v", err)
	}
	if *got.Amount.Value != 7.3 || *got.Duration.Value != 24 {
		t.Errorf("sunshine = %.1f over %.0f h, want 7.3 over 24 h", *got.Amount.Value, *got.Duration.Value)
	}
	enc, err := EncodeSunshine(got)
	if err != nil {
		t.Fatalf("EncodeSunshine error: %v", err)
	}
	if enc != "073" {
		t.Errorf("EncodeSunshine = %q, want 073", enc)
	}

	got, err = DecodeSunshine("55308")
	if err != nil {
		t.Fatalf("DecodeSunshine error: %v", err)
	}
	if *got.Amount.Value != 0.8 || *got.Duration.Value != 1 {
		t.Errorf("sunshine = %.1f over %.0f h, want 0.8 over 1 h", *got.Amount.Value, *got.Duration.Value)
	}
	enc, err = EncodeSunshine(got)
	if err != nil {
		t.Fatalf("EncodeSunshine error: %v", err)
	}
	if enc != "308" {
		t.Errorf("EncodeSunshine = %q, want 308", enc)
	}
}

func TestVisibilityDirection(t *testing.T) {
	var w obs.Warnings
	got, err := DecodeVisibilityDirection("98662", &w)
	if err != nil {
		t.Fatalf("DecodeVisibilityDirection error: %v", err)
	}
	if got.Direction != "W" {
		t.Errorf("direction = %s, want W", got.Direction)
	}
	if *got.Visibility.Value != 12000 {
		t.Errorf("visibility = %.0f, want 12000", *got.Visibility.Value)
	}
	enc, err := EncodeVisibilityDirection(got)
	if err != nil {
		t.Fatalf("EncodeVisibilityDirection error: %v", err)
	}
	if enc != "662" {
		t.Errorf("EncodeVisibilityDirection = %q, want 662", enc)
	}
}

func TestWindWaves(t *testing.T) {
	got, err := DecodeWindWaves("20304", false)
	if err != nil {
		t.Fatalf("DecodeWindWaves error: %v", err)
	}
	if *got.Period.Value != 3 || *got.Height.Value != 2 {
		t.Errorf("waves = %.0f s / %.1f m, want 3 s / 2.0 m", *got.Period.Value, *got.Height.Value)
	}
	if got.Instrumental || got.Accurate {
		t.Error("manual wave report should not be instrumental or accurate")
	}

	// Instrumental measurements to the nearest tenth of a metre
	got, err = DecodeWindWaves("70021", true)
	if err != nil {
		t.Fatalf("DecodeWindWaves error: %v", err)
	}
	if *got.Height.Value != 2.1 || !got.Accurate {
		t.Errorf("accurate waves = %.1f m accurate=%v, want 2.1 m accurate", *got.Height.Value, got.Accurate)
	}

	// Confused seas report a period of 99
	got, err = DecodeWindWaves("19905", true)
	if err != nil {
		t.Fatalf("DecodeWindWaves error: %v", err)
	}
	if !got.Confused {
		t.Error("period 99 should mark confused waves")
	}
}

func TestSwellWavesRoundTrip(t *testing.T) {
	// Each system pairs the shared 3dw1dw2 direction group with its
	// own 4PPHH or 5PPHH data group.
	first, err := DecodeSwellWaves("31222 40506")
	if err != nil {
		t.Fatalf("DecodeSwellWaves error: %v", err)
	}
	second, err := DecodeSwellWaves("31222 51015")
	if err != nil {
		t.Fatalf("DecodeSwellWaves error: %v", err)
	}
	if *first.Direction.Value != 120 {
		t.Errorf("first system direction = %.0f, want 120", *first.Direction.Value)
	}
	if *first.Height.Value != 3 {
		t.Errorf("first system height = %.1f, want 3.0", *first.Height.Value)
	}
	if *second.Direction.Value != 220 {
		t.Errorf("second system direction = %.0f, want 220", *second.Direction.Value)
	}
	if *second.Period.Value != 10 {
		t.Errorf("second system period = %.0f, want 10", *second.Period.Value)
	}
	enc, err := EncodeSwellWaves([]*SwellWaves{first, second})
	if err != nil {
		t.Fatalf("EncodeSwellWaves error: %v", err)
	}
	if enc != "31222 40506 51015" {
		t.Errorf("EncodeSwellWaves = %q, want %q", enc, "31222 40506 51015")
	}
}

func TestShipDisplacement(t *testing.T) {
	got, err := DecodeShipDisplacement("22232")
	if err != nil {
		t.Fatalf("DecodeShipDisplacement error: %v", err)
	}
	if got == nil || got.Direction == nil || *got.Direction.Value != "SE" {
		t.Fatalf("DecodeShipDisplacement(22232) = %+v, want SE", got)
	}

	// A stationary ship reports all zeroes and decodes to nothing
	got, err = DecodeShipDisplacement("22200")
	if err != nil {
		t.Fatalf("DecodeShipDisplacement error: %v", err)
	}
	if got != nil {
		t.Errorf("DecodeShipDisplacement(22200) = %+v, want nil", got)
	}
}

func TestSeaLandIce(t *testing.T) {
	got, err := DecodeSeaLandIce([]string{"ICE", "51341"})
	if err != nil {
		t.Fatalf("DecodeSeaLandIce error: %v", err)
	}
	if *got.Concentration.Value != 5 || *got.Development.Value != 1 {
		t.Errorf("ice = %+v, want concentration 5 development 1", got)
	}
	enc, err := EncodeSeaLandIce(got)
	if err != nil {
		t.Fatalf("EncodeSeaLandIce error: %v", err)
	}
	if enc != "ICE 51341" {
		t.Errorf("EncodeSeaLandIce = %q, want ICE 51341", enc)
	}

	got, err = DecodeSeaLandIce([]string{"ICE", "icebergs", "in", "sight"})
	if err != nil {
		t.Fatalf("DecodeSeaLandIce error: %v", err)
	}
	if got.Text != "icebergs in sight" {
		t.Errorf("ice text = %q, want %q", got.Text, "icebergs in sight")
	}
}

func TestDecodeInvalidGroupIsTyped(t *testing.T) {
	_, err := DecodePressure("abcd")
	var invalid *obs.InvalidCode
	if !errors.As(err, &invalid) {
		t.Errorf("DecodePressure(abcd) error = %v, want InvalidCode", err)
	}
}
