package synop

import (
	"strings"
	"testing"
)

// Messages that decode and encode back to themselves byte for byte.
func TestRoundTrip(t *testing.T) {
	messages := []string{
		// Land station with section 1 and 3
		"AAXX 01004 88889 12782 61506 10094 20047 30111 40197 53007 60001 70102 81541 333 10178 21073 34101",
		// Ship report with waves, ice accretion and a 70HHH refinement
		"BBXX 51002 19001 99170 71577 46/// /0709 10267 20232 30132 40135 92350 22251 00268 10804 20604 310// 40802 61234 70021 80092 555 11102 22108 8//10 92344",
		// Ship with an empty displacement group and free text ice report
		"BBXX ZDLP 19004 99607 50455 41298 81307 10001 21004 49894 52012 70211 886// 22200 04019 20000 300// 40000 5//// 81001 ICE icy conditions",
		// Mobile land station
		"OOXX AAATN 18214 99759 50874 56057 12501 46/// /1219 11259 38338 49778 5//// 92100",
		// Wind speed above 99 units reported in a 00fff group
		"AAXX 20104 89646 46/// /2299 00113 29079 37708 42010 333 01268",
		// Region I ground minimum temperature and local precipitation
		"AAXX 20064 67005 12570 50402 60004 333 02434",
		"AAXX 25064 67243 11465 50604 333 01223",
		// Region II ground state
		"AAXX 25064 21998 11465 50604 333 00017",
		// Region IV tropical sky state
		"AAXX 25064 78962 11465 50604 333 00275",
		// Antarctic maximum wind
		"AAXX 25064 89022 11465 50604 333 02022",
		// Section 4 cloud below station level
		"AAXX 01004 89022 32782 61506 30111 333 10178 444 21053 34810",
		// Sunshine, radiation and section 3 precipitation combinations
		"AAXX 01004 89022 22782 61506 30111 333 55032 01234 60123",
		"AAXX 01004 89022 22782 61506 30111 333 55055 01234 10329 60123",
		"AAXX 01004 89022 22782 61506 30111 333 55055 01234 60329 60123",
		"AAXX 01004 89022 12782 61506 30111 333 55055 01234 60329",
		"AAXX 01004 89022 12782 61506 30111 333 55055 01234 30801",
		"AAXX 01004 89022 22782 61506 30111 333 55055 01234 60300 55301 00331 60001 60123",
		"AAXX 01004 89022 22782 61506 30111 333 55/// 20884 60192",
		// Cloud drift, pressure change and cloud layers after sunshine
		"AAXX 24121 80110 01565 79901 10173 20173 38512 60004 7052/ 81550 333 20167 30/// 55066 56990 59006 60007 81630",
		// 90x time and variability groups
		"AAXX 10034 89004 46/// /1312 11202 21292 38818 49879 51005 333 11155 21214 90047 90083 90101 90521 90973",
		// 91x gusts with a direction group
		"AAXX 10034 89004 46/// /1312 11202 21292 38818 49879 51005 333 11155 21214 91015 91103 91523",
		// 92x sea state and snow cover
		"AAXX 10034 89004 46/// /1312 11202 21292 38818 49879 51005 333 92416 92734 92882 92921",
		// 93x snow fall and deposit diameters
		"AAXX 10034 89004 46/// /1312 11202 21292 38818 49879 51005 333 93105 93349 93402 93509 93610 93704",
		// 94x cloud evolution
		"AAXX 10034 89004 46/// /1312 11202 21292 38818 49879 51005 333 94060 94072 94469 94478",
		// 95x mountain and valley conditions
		"AAXX 10034 89004 46/// /1312 11202 21292 38818 49879 51005 333 95095 95150",
		// 96x additional and important weather
		"AAXX 10034 89004 46/// /1312 11202 21292 38818 49879 51005 333 96010 96120 96447 96510",
		// 98x visibility towards a direction
		"AAXX 10034 89004 46/// /1312 11202 21292 38818 49879 51005 71322 333 98362 98732",
		// 99x optical phenomena
		"AAXX 10034 89004 46/// /1312 11202 21292 38818 49879 51005 71322 333 99050 99114 99115 99190 99273 99349 99429 99605 99918",
		// Section 5 directly after section 1
		"AAXX 25064 04018 42589 43120 555 3//32 84619",
		// Empty report
		"AAXX 01004 88889 NIL",
	}
	for _, message := range messages {
		name := strings.Join(strings.Fields(message)[:3], " ")
		t.Run(name, func(t *testing.T) {
			report, err := Decode(message)
			if err != nil {
				t.Fatalf("Decode(%q) error: %v", message, err)
			}
			got, err := Encode(report)
			if err != nil {
				t.Fatalf("Encode error: %v", err)
			}
			if got != message {
				t.Errorf("round trip mismatch\n got: %s\nwant: %s", got, message)
			}
		})
	}
}

func TestDecodeLandReport(t *testing.T) {
	report, err := Decode("AAXX 01004 88889 12782 61506 10094 20047 30111 40197 53007 60001 70102 81541 333 10178 21073 34101")
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if report.StationType != "AAXX" {
		t.Errorf("StationType = %q, want AAXX", report.StationType)
	}
	if report.StationID == nil || *report.StationID != "88889" {
		t.Errorf("StationID = %v, want 88889", report.StationID)
	}
	if report.Region != "III" {
		t.Errorf("Region = %q, want III", report.Region)
	}
	if report.ObsTime == nil || *report.ObsTime.Day != 1 || *report.ObsTime.Hour != 0 {
		t.Errorf("ObsTime = %+v, want day 1 hour 0", report.ObsTime)
	}
	if report.AirTemperature == nil || *report.AirTemperature.Value != 9.4 {
		t.Errorf("AirTemperature = %+v, want 9.4", report.AirTemperature)
	}
	if report.DewpointTemperature == nil || *report.DewpointTemperature.Value != 4.7 {
		t.Errorf("DewpointTemperature = %+v, want 4.7", report.DewpointTemperature)
	}
	if report.StationPressure == nil || *report.StationPressure.Value != 1011.1 {
		t.Errorf("StationPressure = %+v, want 1011.1", report.StationPressure)
	}
	if report.SeaLevelPressure == nil || *report.SeaLevelPressure.Value != 1019.7 {
		t.Errorf("SeaLevelPressure = %+v, want 1019.7", report.SeaLevelPressure)
	}
	if report.MaximumTemperature == nil || *report.MaximumTemperature.Value != 17.8 {
		t.Errorf("MaximumTemperature = %+v, want 17.8", report.MaximumTemperature)
	}
	if report.MinimumTemperature == nil || *report.MinimumTemperature.Value != -7.3 {
		t.Errorf("MinimumTemperature = %+v, want -7.3", report.MinimumTemperature)
	}
	if report.SurfaceWind == nil || report.SurfaceWind.Speed == nil || *report.SurfaceWind.Speed.Value != 6 {
		t.Errorf("SurfaceWind = %+v, want speed 6", report.SurfaceWind)
	}
}

func TestDecodeShipReport(t *testing.T) {
	report, err := Decode("BBXX 51002 19001 99170 71577 46/// /0709 10267 20232 30132 40135 92350 22251 00268 10804 20604 310// 40802 61234 70021 80092 333 91212 555 11102 22108 8//10 92344")
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if report.Callsign == nil || report.Callsign.Value != "51002" {
		t.Errorf("Callsign = %+v, want 51002", report.Callsign)
	}
	if report.Region != "V" {
		t.Errorf("Region = %q, want V", report.Region)
	}
	if report.StationPosition == nil {
		t.Fatal("StationPosition is nil")
	}
	if *report.StationPosition.Latitude != 17.0 || *report.StationPosition.Longitude != -157.7 {
		t.Errorf("position = %v, %v, want 17.0, -157.7",
			*report.StationPosition.Latitude, *report.StationPosition.Longitude)
	}
	if report.Visibility != nil || report.CloudCover != nil || report.LowestCloudBase != nil {
		t.Error("expected slashed iihVV fields to be absent")
	}
	if !report.HasSection2 {
		t.Error("HasSection2 = false, want true")
	}
	if len(report.WindWaves) != 2 {
		t.Fatalf("len(WindWaves) = %d, want 2", len(report.WindWaves))
	}
	instrumental := report.WindWaves[0]
	if !instrumental.Instrumental || !instrumental.Accurate {
		t.Errorf("first wave = %+v, want instrumental and accurate", instrumental)
	}
	if *instrumental.Height.Value != 2.1 {
		t.Errorf("instrumental wave height = %v, want 2.1 from the 70HHH group", *instrumental.Height.Value)
	}
	if len(report.SwellWaves) != 1 || *report.SwellWaves[0].Direction.Value != 100 {
		t.Errorf("SwellWaves = %+v, want one system from 100 deg", report.SwellWaves)
	}
	if report.IceAccretion == nil || *report.IceAccretion.Thickness.Value != 23 {
		t.Errorf("IceAccretion = %+v, want thickness 23", report.IceAccretion)
	}
	if len(report.NotImplemented) != 1 || report.NotImplemented[0] != "91212" {
		t.Errorf("NotImplemented = %v, want [91212]", report.NotImplemented)
	}
	want := []string{"11102", "22108", "8//10", "92344"}
	if len(report.Section5) != len(want) {
		t.Fatalf("Section5 = %v, want %v", report.Section5, want)
	}
	for i, g := range want {
		if report.Section5[i] != g {
			t.Errorf("Section5[%d] = %q, want %q", i, report.Section5[i], g)
		}
	}
}

func TestDecodeRadiation(t *testing.T) {
	report, err := Decode("AAXX 01004 89022 22782 61506 30111 333 55055 01234 60329 60123")
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if len(report.Sunshine) != 1 {
		t.Fatalf("len(Sunshine) = %d, want 1", len(report.Sunshine))
	}
	if *report.Sunshine[0].Amount.Value != 5.5 || *report.Sunshine[0].Duration.Value != 24 {
		t.Errorf("Sunshine = %+v, want 5.5 h over 24 h", report.Sunshine[0])
	}
	positive := report.Radiation["positive_net"]
	if len(positive) != 1 || *positive[0].Value != 1234 {
		t.Errorf("positive_net = %+v, want one entry of 1234", positive)
	}
	// The final 6-group is precipitation, not short wave radiation,
	// because the indicator says precipitation is reported in section 3
	short := report.Radiation["short_wave"]
	if len(short) != 1 || *short[0].Value != 329 {
		t.Errorf("short_wave = %+v, want one entry of 329", short)
	}
	if report.PrecipitationS3 == nil || *report.PrecipitationS3.Amount.Value != 12 {
		t.Errorf("PrecipitationS3 = %+v, want 12 mm", report.PrecipitationS3)
	}
}

func TestDecodeHighestGusts(t *testing.T) {
	report, err := Decode("AAXX 10034 89004 46/// /1312 11202 21292 38818 49879 51005 333 11155 21214 91015 91103 91523")
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if len(report.HighestGust) != 2 {
		t.Fatalf("len(HighestGust) = %d, want 2", len(report.HighestGust))
	}
	first := report.HighestGust[0]
	if *first.Speed.Value != 15 || first.Speed.Unit != "KT" {
		t.Errorf("first gust speed = %+v, want 15 KT", first.Speed)
	}
	if first.MeasurePeriod == nil || *first.MeasurePeriod.Value != 10 {
		t.Errorf("first gust measure period = %+v, want 10 min", first.MeasurePeriod)
	}
	second := report.HighestGust[1]
	if *second.Speed.Value != 3 {
		t.Errorf("second gust speed = %+v, want 3", second.Speed)
	}
	if second.Direction == nil || *second.Direction.Value != 230 {
		t.Errorf("second gust direction = %+v, want 230 deg", second.Direction)
	}
	if second.TimeBeforeObs == nil || *second.TimeBeforeObs.Value != 3 || second.TimeBeforeObs.Unit != "h" {
		t.Errorf("second gust time before obs = %+v, want 3 h", second.TimeBeforeObs)
	}
}

func TestDecodeNilReport(t *testing.T) {
	report, err := Decode("AAXX 01004 88889 NIL")
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if report.StationID == nil || *report.StationID != "88889" {
		t.Errorf("StationID = %v, want 88889", report.StationID)
	}
	if report.PrecipitationIndicator != nil || report.SurfaceWind != nil {
		t.Error("NIL report carries no section 1 data")
	}
}

func TestDecodeInvalidStationID(t *testing.T) {
	_, err := Decode("AAXX 27108 83/// /3502 11022 21042 39841 40025 52047")
	if err == nil {
		t.Fatal("expected error for slashed IIiii group")
	}
	if !strings.Contains(err.Error(), "invalid IIiii group") {
		t.Errorf("error = %v, want invalid IIiii group", err)
	}
}

func TestEncodeEmptyReport(t *testing.T) {
	if _, err := Encode(&Report{}); err == nil {
		t.Fatal("expected error for report without station type")
	}
}

func TestEncodeWithOptions(t *testing.T) {
	report, err := Decode("AAXX 20104 88889 42515 70200 333 83320")
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if report.Visibility == nil || report.CloudLayer[0].CloudHeight == nil {
		t.Fatal("visibility or cloud height missing")
	}
	// Drop the decoded code figures so the encoder has to derive them
	// from the metre values again.
	report.Visibility.Code = nil
	report.CloudLayer[0].CloudHeight.Code = nil

	plain, err := Encode(report)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if want := "AAXX 20104 88889 42515 70200 333 83302"; plain != want {
		t.Errorf("Encode = %q, want %q", plain, want)
	}

	coarse, err := EncodeWithOptions(report, EncodeOptions{UseVis90: true, UseCloud90: true})
	if err != nil {
		t.Fatalf("EncodeWithOptions error: %v", err)
	}
	if want := "AAXX 20104 88889 42594 70200 333 83395"; coarse != want {
		t.Errorf("EncodeWithOptions = %q, want %q", coarse, want)
	}
}

func TestDecodeWindSpeedAbove99(t *testing.T) {
	report, err := Decode("AAXX 20104 89646 46/// /2299 00113 29079 37708 42010 333 01268")
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if report.SurfaceWind == nil || report.SurfaceWind.Speed == nil {
		t.Fatal("SurfaceWind speed is nil")
	}
	if *report.SurfaceWind.Speed.Value != 113 {
		t.Errorf("speed = %v, want 113 from the 00fff group", *report.SurfaceWind.Speed.Value)
	}
	if report.MaxWind == nil || *report.MaxWind.Speed.Value != 68 {
		t.Errorf("MaxWind = %+v, want speed 68", report.MaxWind)
	}
	if report.Geopotential == nil || *report.Geopotential.Surface.Value != 925 || *report.Geopotential.Height.Value != 1010 {
		t.Errorf("Geopotential = %+v, want 925 hPa at 1010 gpm", report.Geopotential)
	}
}

func TestDecodeAntarcticRegionGroup(t *testing.T) {
	// A 0xxxx group is only defined for regions Antarctic, I, II and IV
	_, err := Decode("AAXX 25064 91000 11465 50604 333 02022")
	if err == nil {
		t.Fatal("expected error for 0xxxx group in region V")
	}
}
