package stations

import (
	"path/filepath"
	"strings"
	"testing"

	"synop_parser/internal/synop"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestStationCatalog(t *testing.T) {
	db := openTestDB(t)

	lat, lon, elev := 51.478, -0.449, 25.3
	err := db.UpsertStation(Station{
		Index:     "03772",
		Name:      "HEATHROW",
		Country:   "UK",
		Region:    "VI",
		Latitude:  &lat,
		Longitude: &lon,
		Elevation: &elev,
	})
	if err != nil {
		t.Fatalf("UpsertStation error: %v", err)
	}

	s, err := db.Lookup("03772")
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if s == nil {
		t.Fatal("Lookup returned nil for known station")
	}
	if s.Name != "HEATHROW" || s.Region != "VI" {
		t.Errorf("station = %+v, want HEATHROW in region VI", s)
	}
	if s.Latitude == nil || *s.Latitude != 51.478 {
		t.Errorf("latitude = %v, want 51.478", s.Latitude)
	}

	// Upsert replaces the existing row.
	if err := db.UpsertStation(Station{Index: "03772", Name: "LONDON HEATHROW"}); err != nil {
		t.Fatalf("second UpsertStation error: %v", err)
	}
	s, err = db.Lookup("03772")
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if s.Name != "LONDON HEATHROW" {
		t.Errorf("name after upsert = %q, want LONDON HEATHROW", s.Name)
	}

	s, err = db.Lookup("99999")
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if s != nil {
		t.Errorf("Lookup for unknown station = %+v, want nil", s)
	}
}

func TestImportStations(t *testing.T) {
	db := openTestDB(t)

	catalog := strings.Join([]string{
		"index,name,country,region,latitude,longitude,elevation",
		"03772,HEATHROW,UK,VI,51.478,-0.449,25.3",
		"89022,HALLEY,,Antarctic,-75.45,-26.217,30",
		"88889,MOUNT PLEASANT,FK,III,-51.822,-58.447,74",
	}, "\n")

	n, err := db.ImportStations(strings.NewReader(catalog))
	if err != nil {
		t.Fatalf("ImportStations error: %v", err)
	}
	if n != 3 {
		t.Errorf("imported %d stations, want 3", n)
	}

	s, err := db.Lookup("89022")
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if s == nil || s.Name != "HALLEY" || s.Region != "Antarctic" {
		t.Errorf("station = %+v, want HALLEY in Antarctic", s)
	}
	if s.Elevation == nil || *s.Elevation != 30 {
		t.Errorf("elevation = %v, want 30", s.Elevation)
	}
}

func TestReportArchive(t *testing.T) {
	db := openTestDB(t)

	messages := []string{
		"AAXX 01004 88889 12782 61506 10094 20047 30111 40197 53007 60001 70102 81541",
		"AAXX 20104 89646 46/// /2299 00113 29079 37708 42010 333 01268",
		"BBXX ZDLP 19004 99607 50455 41298 81307 10001 21004 49894 52012 70211 886//",
	}
	for _, m := range messages {
		report, err := synop.Decode(m)
		if err != nil {
			t.Fatalf("Decode(%q) error: %v", m, err)
		}
		if _, err := db.InsertReport(m, report); err != nil {
			t.Fatalf("InsertReport error: %v", err)
		}
	}

	got, err := db.QueryReports(QueryParams{StationID: "88889"})
	if err != nil {
		t.Fatalf("QueryReports error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len(reports) = %d, want 1", len(got))
	}
	if got[0].StationType != "AAXX" || got[0].Day != 1 || got[0].Hour != 0 {
		t.Errorf("report = %+v, want AAXX on day 1 hour 0", got[0])
	}
	if !strings.Contains(got[0].DecodedJSON, `"station_id":"88889"`) {
		t.Errorf("decoded JSON missing station id: %s", got[0].DecodedJSON)
	}

	got, err = db.QueryReports(QueryParams{Callsign: "ZDLP"})
	if err != nil {
		t.Fatalf("QueryReports error: %v", err)
	}
	if len(got) != 1 || got[0].StationType != "BBXX" {
		t.Errorf("callsign query = %+v, want one BBXX report", got)
	}

	got, err = db.QueryReports(QueryParams{FullText: "89646"})
	if err != nil {
		t.Fatalf("QueryReports error: %v", err)
	}
	if len(got) != 1 || got[0].Region != "Antarctic" {
		t.Errorf("full text query = %+v, want one Antarctic report", got)
	}

	stats, err := db.GetStats()
	if err != nil {
		t.Fatalf("GetStats error: %v", err)
	}
	if stats.TotalReports != 3 {
		t.Errorf("TotalReports = %d, want 3", stats.TotalReports)
	}
	if stats.ByStationType["AAXX"] != 2 || stats.ByStationType["BBXX"] != 1 {
		t.Errorf("ByStationType = %v, want 2 AAXX and 1 BBXX", stats.ByStationType)
	}
}
