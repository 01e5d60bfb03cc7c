// Package stations provides persistent storage for decoded surface
// reports and a catalog of WMO observing stations.
package stations

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"synop_parser/internal/synop"
)

// Station is one entry of the WMO station catalog.
type Station struct {
	Index     string   `json:"index"`
	Name      string   `json:"name,omitempty"`
	Country   string   `json:"country,omitempty"`
	Region    string   `json:"region,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Elevation *float64 `json:"elevation,omitempty"`
}

// StoredReport is a decoded report with its archive metadata.
type StoredReport struct {
	ID          int64
	Received    time.Time
	StationType string
	StationID   string
	Callsign    string
	Region      string
	Day         int
	Hour        int
	RawText     string
	DecodedJSON string
	Warnings    string
}

// DB wraps a SQLite database connection for report and station storage.
type DB struct {
	db *sql.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent access.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if err := createSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database tables and indices.
func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS stations (
		station_index TEXT PRIMARY KEY,
		name TEXT,
		country TEXT,
		region TEXT,
		latitude REAL,
		longitude REAL,
		elevation REAL
	);

	CREATE INDEX IF NOT EXISTS idx_stations_region ON stations(region);
	CREATE INDEX IF NOT EXISTS idx_stations_country ON stations(country);

	CREATE TABLE IF NOT EXISTS reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		received TEXT DEFAULT (datetime('now')),
		station_type TEXT NOT NULL,
		station_id TEXT,
		callsign TEXT,
		region TEXT,
		obs_day INTEGER,
		obs_hour INTEGER,
		raw_text TEXT NOT NULL,
		decoded_json TEXT NOT NULL,
		warnings TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_reports_station_id ON reports(station_id);
	CREATE INDEX IF NOT EXISTS idx_reports_station_type ON reports(station_type);
	CREATE INDEX IF NOT EXISTS idx_reports_region ON reports(region);
	CREATE INDEX IF NOT EXISTS idx_reports_received ON reports(received);

	-- FTS5 virtual table for full-text search on raw report text.
	CREATE VIRTUAL TABLE IF NOT EXISTS reports_fts USING fts5(
		raw_text,
		content='reports',
		content_rowid='id'
	);

	-- Triggers to keep FTS index in sync.
	CREATE TRIGGER IF NOT EXISTS reports_ai AFTER INSERT ON reports BEGIN
		INSERT INTO reports_fts(rowid, raw_text) VALUES (new.id, new.raw_text);
	END;

	CREATE TRIGGER IF NOT EXISTS reports_ad AFTER DELETE ON reports BEGIN
		INSERT INTO reports_fts(reports_fts, rowid, raw_text) VALUES('delete', old.id, old.raw_text);
	END;

	CREATE TRIGGER IF NOT EXISTS reports_au AFTER UPDATE ON reports BEGIN
		INSERT INTO reports_fts(reports_fts, rowid, raw_text) VALUES('delete', old.id, old.raw_text);
		INSERT INTO reports_fts(rowid, raw_text) VALUES (new.id, new.raw_text);
	END;
	`

	_, err := db.Exec(schema)
	return err
}

// UpsertStation inserts or replaces a station catalog entry.
func (d *DB) UpsertStation(s Station) error {
	if strings.TrimSpace(s.Index) == "" {
		return fmt.Errorf("station index is required")
	}
	_, err := d.db.Exec(`
		INSERT INTO stations (station_index, name, country, region, latitude, longitude, elevation)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(station_index) DO UPDATE SET
			name=excluded.name, country=excluded.country, region=excluded.region,
			latitude=excluded.latitude, longitude=excluded.longitude, elevation=excluded.elevation
	`, s.Index, s.Name, s.Country, s.Region, s.Latitude, s.Longitude, s.Elevation)
	if err != nil {
		return fmt.Errorf("upsert station: %w", err)
	}
	return nil
}

// ImportStations reads a station catalog in CSV form with columns
// index,name,country,region,latitude,longitude,elevation and stores
// every row. A header line is skipped when the first column is not
// numeric. It returns the number of stations imported.
func (d *DB) ImportStations(r io.Reader) (int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	tx, err := d.db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
		INSERT INTO stations (station_index, name, country, region, latitude, longitude, elevation)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(station_index) DO UPDATE SET
			name=excluded.name, country=excluded.country, region=excluded.region,
			latitude=excluded.latitude, longitude=excluded.longitude, elevation=excluded.elevation
	`)
	if err != nil {
		return 0, err
	}
	defer func() { _ = stmt.Close() }()

	count := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("read station record: %w", err)
		}
		if len(rec) < 1 || strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if _, err := strconv.Atoi(rec[0]); err != nil {
			// Header line.
			continue
		}
		field := func(i int) string {
			if i < len(rec) {
				return strings.TrimSpace(rec[i])
			}
			return ""
		}
		num := func(i int) *float64 {
			if v, err := strconv.ParseFloat(field(i), 64); err == nil {
				return &v
			}
			return nil
		}
		if _, err := stmt.Exec(field(0), field(1), field(2), field(3), num(4), num(5), num(6)); err != nil {
			return count, fmt.Errorf("import station %s: %w", rec[0], err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return count, err
	}
	return count, nil
}

// Lookup retrieves a station catalog entry by WMO index. It returns
// nil when the station is unknown.
func (d *DB) Lookup(index string) (*Station, error) {
	var s Station
	var name, country, region sql.NullString
	var lat, lon, elev sql.NullFloat64

	err := d.db.QueryRow(`
		SELECT station_index, name, country, region, latitude, longitude, elevation
		FROM stations WHERE station_index = ?
	`, index).Scan(&s.Index, &name, &country, &region, &lat, &lon, &elev)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	s.Name = name.String
	s.Country = country.String
	s.Region = region.String
	if lat.Valid {
		s.Latitude = &lat.Float64
	}
	if lon.Valid {
		s.Longitude = &lon.Float64
	}
	if elev.Valid {
		s.Elevation = &elev.Float64
	}
	return &s, nil
}

// InsertReport stores a decoded report together with its original text.
func (d *DB) InsertReport(raw string, r *synop.Report) (int64, error) {
	decoded, err := json.Marshal(r)
	if err != nil {
		return 0, fmt.Errorf("marshal report: %w", err)
	}

	var stationID, callsign string
	if r.StationID != nil {
		stationID = *r.StationID
	}
	if r.Callsign != nil {
		callsign = r.Callsign.Value
	}
	var day, hour interface{}
	if r.ObsTime != nil {
		if r.ObsTime.Day != nil {
			day = *r.ObsTime.Day
		}
		if r.ObsTime.Hour != nil {
			hour = *r.ObsTime.Hour
		}
	}
	warnings := strings.Join(r.Warnings, "; ")

	result, err := d.db.Exec(`
		INSERT INTO reports (station_type, station_id, callsign, region, obs_day, obs_hour, raw_text, decoded_json, warnings)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.StationType, stationID, callsign, r.Region, day, hour, raw, string(decoded), warnings)
	if err != nil {
		return 0, fmt.Errorf("insert report: %w", err)
	}

	return result.LastInsertId()
}

// QueryParams contains filtering options for querying stored reports.
type QueryParams struct {
	ID          int64  // Filter by specific report ID.
	StationType string // Filter by code form (exact match).
	StationID   string // Filter by station index (exact match).
	Callsign    string // Filter by ship callsign (LIKE match).
	Region      string // Filter by WMO region (exact match).
	HasWarnings bool   // Only show reports with decode warnings.
	FullText    string // FTS5 full-text search on raw_text.
	Limit       int    // Max results (default 100).
	Offset      int    // Pagination offset.
}

// QueryReports retrieves stored reports matching the given parameters.
func (d *DB) QueryReports(p QueryParams) ([]StoredReport, error) {
	var conditions []string
	var args []interface{}

	if p.ID != 0 {
		conditions = append(conditions, "id = ?")
		args = append(args, p.ID)
	}
	if p.StationType != "" {
		conditions = append(conditions, "station_type = ?")
		args = append(args, p.StationType)
	}
	if p.StationID != "" {
		conditions = append(conditions, "station_id = ?")
		args = append(args, p.StationID)
	}
	if p.Callsign != "" {
		conditions = append(conditions, "callsign LIKE ?")
		args = append(args, "%"+p.Callsign+"%")
	}
	if p.Region != "" {
		conditions = append(conditions, "region = ?")
		args = append(args, p.Region)
	}
	if p.HasWarnings {
		conditions = append(conditions, "warnings != '' AND warnings IS NOT NULL")
	}

	// FTS5 search requires a JOIN with the FTS table.
	var query string
	if p.FullText != "" {
		query = `SELECT r.id, r.received, r.station_type, r.station_id, r.callsign, r.region,
				r.obs_day, r.obs_hour, r.raw_text, r.decoded_json, r.warnings
				FROM reports r
				JOIN reports_fts fts ON r.id = fts.rowid
				WHERE reports_fts MATCH ?`
		args = append([]interface{}{p.FullText}, args...)
		if len(conditions) > 0 {
			query += " AND " + strings.Join(conditions, " AND ")
		}
	} else {
		query = `SELECT id, received, station_type, station_id, callsign, region,
				obs_day, obs_hour, raw_text, decoded_json, warnings
				FROM reports`
		if len(conditions) > 0 {
			query += " WHERE " + strings.Join(conditions, " AND ")
		}
	}

	limit := 100
	if p.Limit > 0 {
		limit = p.Limit
	}
	query += fmt.Sprintf(" ORDER BY id ASC LIMIT %d OFFSET %d", limit, p.Offset)

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var reports []StoredReport
	for rows.Next() {
		var r StoredReport
		var received, stationID, callsign, region, warnings sql.NullString
		var day, hour sql.NullInt64

		err := rows.Scan(&r.ID, &received, &r.StationType, &stationID, &callsign, &region,
			&day, &hour, &r.RawText, &r.DecodedJSON, &warnings)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		if received.Valid {
			r.Received, _ = time.Parse("2006-01-02 15:04:05", received.String)
		}
		r.StationID = stationID.String
		r.Callsign = callsign.String
		r.Region = region.String
		r.Warnings = warnings.String
		if day.Valid {
			r.Day = int(day.Int64)
		}
		if hour.Valid {
			r.Hour = int(hour.Int64)
		}

		reports = append(reports, r)
	}

	return reports, rows.Err()
}

// Stats holds aggregate statistics about stored reports.
type Stats struct {
	TotalReports  int
	TotalStations int
	ByStationType map[string]int
	ByRegion      map[string]int
	WithWarnings  int
}

// GetStats returns statistics about the stored reports and catalog.
func (d *DB) GetStats() (*Stats, error) {
	stats := &Stats{
		ByStationType: make(map[string]int),
		ByRegion:      make(map[string]int),
	}

	row := d.db.QueryRow("SELECT COUNT(*) FROM reports")
	if err := row.Scan(&stats.TotalReports); err != nil {
		return nil, err
	}

	row = d.db.QueryRow("SELECT COUNT(*) FROM stations")
	if err := row.Scan(&stats.TotalStations); err != nil {
		return nil, err
	}

	rows, err := d.db.Query("SELECT station_type, COUNT(*) FROM reports GROUP BY station_type ORDER BY COUNT(*) DESC")
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var typ string
		var count int
		if err := rows.Scan(&typ, &count); err != nil {
			_ = rows.Close()
			return nil, err
		}
		stats.ByStationType[typ] = count
	}
	_ = rows.Close()

	rows, err = d.db.Query("SELECT region, COUNT(*) FROM reports WHERE region != '' GROUP BY region ORDER BY COUNT(*) DESC")
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var region string
		var count int
		if err := rows.Scan(&region, &count); err != nil {
			_ = rows.Close()
			return nil, err
		}
		stats.ByRegion[region] = count
	}
	_ = rows.Close()

	row = d.db.QueryRow("SELECT COUNT(*) FROM reports WHERE warnings != '' AND warnings IS NOT NULL")
	if err := row.Scan(&stats.WithWarnings); err != nil {
		return nil, err
	}

	return stats, nil
}
