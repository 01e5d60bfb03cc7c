// Command-line entry point for the SYNOP report toolchain.
//
// Note about input formats
// ------------------------
// The decoder expects one report per line in the traditional FM-12/13/14
// alphanumeric form, e.g.
//
//	AAXX 01004 88889 12782 61506 10094 20047 ...
//
// In the real world bulletins arrive in two shapes:
//  1. Plain text: one report per line.
//  2. JSONL: {"text":"AAXX 01004 ..."} objects, one per line.
//
// This CLI autodetects both. Use -all to keep reports that failed to decode.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"synop_parser/internal/bulletin"
	"synop_parser/internal/stations"
	"synop_parser/internal/synop"
)

type DecodeOut struct {
	Message string            `json:"message"`
	Report  *synop.Report     `json:"report,omitempty"`
	Station *stations.Station `json:"station,omitempty"`
	Error   string            `json:"error,omitempty"`
}

type Stats struct {
	Lines    int
	Decoded  int
	Failed   int
	Warned   int
	Archived int
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "synop_parser - commands:")
	fmt.Fprintln(w, "  decode    - decode reports and output JSON")
	fmt.Fprintln(w, "  encode    - re-encode decoded JSON back into report text")
	fmt.Fprintln(w, "  roundtrip - decode, re-encode and compare against the input")
	fmt.Fprintln(w, "  stations  - manage the station catalog (import, lookup)")
	fmt.Fprintln(w, "  stats     - print archive statistics")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  synop_parser decode -input reports.txt [-output out.json] [-pretty] [-all] [-bulletin] [-db archive.db] [-stats]")
	fmt.Fprintln(w, "  synop_parser encode -input decoded.json [-output reports.txt]")
	fmt.Fprintln(w, "  synop_parser roundtrip -input reports.txt")
	fmt.Fprintln(w, "  synop_parser stations import -db archive.db -input catalog.csv")
	fmt.Fprintln(w, "  synop_parser stations lookup -db archive.db 03772")
	fmt.Fprintln(w, "  synop_parser stats -db archive.db")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - Input is one report per line, plain text or {\"text\":...} JSONL.")
	fmt.Fprintln(w, "  - With -bulletin, shared AAXX/BBXX headers and = terminators are handled.")
	fmt.Fprintln(w, "")
}

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}
	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "decode":
		runDecode(os.Args[2:])
	case "encode":
		runEncode(os.Args[2:])
	case "roundtrip":
		runRoundtrip(os.Args[2:])
	case "stations":
		runStations(os.Args[2:])
	case "stats":
		runStats(os.Args[2:])
	case "-h", "--help", "help":
		usage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage(os.Stderr)
		os.Exit(2)
	}
}

func runDecode(args []string) {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	inPath := fs.String("input", "", "Input file (default: stdin)")
	outPath := fs.String("output", "", "Output JSON file (default: stdout)")
	pretty := fs.Bool("pretty", false, "Pretty-print JSON output")
	includeAll := fs.Bool("all", false, "Include reports that failed to decode")
	dbPath := fs.String("db", "", "Archive decoded reports into this SQLite database")
	asBulletin := fs.Bool("bulletin", false, "Treat input as a WMO bulletin with shared headers and = terminators")
	showStats := fs.Bool("stats", false, "Print basic counters to stderr")
	_ = fs.Parse(args)

	var archive *stations.DB
	if *dbPath != "" {
		var err error
		archive, err = stations.Open(*dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open archive: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = archive.Close() }()
	}

	out := make([]DecodeOut, 0, 1024)
	st := &Stats{}

	err := eachReport(*inPath, *asBulletin, func(message string) error {
		st.Lines++
		report, err := synop.Decode(message)
		if err != nil {
			st.Failed++
			if *includeAll {
				out = append(out, DecodeOut{Message: message, Error: err.Error()})
			}
			return nil
		}
		st.Decoded++
		if len(report.Warnings) > 0 {
			st.Warned++
		}
		result := DecodeOut{Message: message, Report: report}
		if archive != nil {
			// Enrich land station reports with catalog metadata.
			if report.StationID != nil {
				station, err := archive.Lookup(*report.StationID)
				if err != nil {
					return fmt.Errorf("station lookup: %w", err)
				}
				result.Station = station
			}
			if _, err := archive.InsertReport(message, report); err != nil {
				return fmt.Errorf("archive report: %w", err)
			}
			st.Archived++
		}
		out = append(out, result)
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if err := writeJSON(*outPath, out, *pretty); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if *showStats {
		fmt.Fprintf(os.Stderr,
			"stats: lines=%d decoded=%d failed=%d with_warnings=%d archived=%d\n",
			st.Lines, st.Decoded, st.Failed, st.Warned, st.Archived,
		)
	}
}

func runEncode(args []string) {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	inPath := fs.String("input", "", "Input JSON file (default: stdin)")
	outPath := fs.String("output", "", "Output file (default: stdout)")
	_ = fs.Parse(args)

	var r io.Reader = os.Stdin
	if *inPath != "" {
		f, err := os.Open(*inPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open input: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Input read error: %v\n", err)
		os.Exit(1)
	}

	// Accept either a single report object or an array of decode results.
	var reports []*synop.Report
	var batch []DecodeOut
	if err := json.Unmarshal(data, &batch); err == nil {
		for _, item := range batch {
			if item.Report != nil {
				reports = append(reports, item.Report)
			}
		}
	} else {
		var single synop.Report
		if err := json.Unmarshal(data, &single); err != nil {
			fmt.Fprintf(os.Stderr, "JSON decode error: %v\n", err)
			os.Exit(1)
		}
		reports = append(reports, &single)
	}

	var wout io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create output: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()
		wout = f
	}

	for _, report := range reports {
		message, err := synop.Encode(report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Encode error: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintln(wout, message)
	}
}

func runRoundtrip(args []string) {
	fs := flag.NewFlagSet("roundtrip", flag.ExitOnError)
	inPath := fs.String("input", "", "Input file (default: stdin)")
	asBulletin := fs.Bool("bulletin", false, "Treat input as a WMO bulletin with shared headers and = terminators")
	_ = fs.Parse(args)

	var total, ok, mismatched, failed int
	err := eachReport(*inPath, *asBulletin, func(message string) error {
		total++
		report, err := synop.Decode(message)
		if err != nil {
			failed++
			fmt.Printf("FAIL   %s\n       %v\n", message, err)
			return nil
		}
		got, err := synop.Encode(report)
		if err != nil {
			failed++
			fmt.Printf("FAIL   %s\n       %v\n", message, err)
			return nil
		}
		if got != message {
			mismatched++
			fmt.Printf("DIFF   %s\n       %s\n", message, got)
			return nil
		}
		ok++
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	fmt.Printf("roundtrip: total=%d ok=%d mismatched=%d failed=%d\n", total, ok, mismatched, failed)
	if mismatched > 0 || failed > 0 {
		os.Exit(1)
	}
}

func runStations(args []string) {
	if len(args) < 1 {
		usage(os.Stderr)
		os.Exit(2)
	}
	sub := strings.ToLower(args[0])
	fs := flag.NewFlagSet("stations "+sub, flag.ExitOnError)
	dbPath := fs.String("db", "", "SQLite database path")
	inPath := fs.String("input", "", "Input CSV file (default: stdin)")
	_ = fs.Parse(args[1:])

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "stations: -db is required")
		os.Exit(2)
	}
	db, err := stations.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	switch sub {
	case "import":
		var r io.Reader = os.Stdin
		if *inPath != "" {
			f, err := os.Open(*inPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to open input: %v\n", err)
				os.Exit(1)
			}
			defer func() { _ = f.Close() }()
			r = f
		}
		n, err := db.ImportStations(r)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Import error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("imported %d stations\n", n)
	case "lookup":
		rest := fs.Args()
		if len(rest) < 1 {
			fmt.Fprintln(os.Stderr, "stations lookup: station index required")
			os.Exit(2)
		}
		s, err := db.Lookup(rest[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Lookup error: %v\n", err)
			os.Exit(1)
		}
		if s == nil {
			fmt.Fprintf(os.Stderr, "station %s not found\n", rest[0])
			os.Exit(1)
		}
		enc, _ := json.MarshalIndent(s, "", "  ")
		fmt.Println(string(enc))
	default:
		fmt.Fprintf(os.Stderr, "Unknown stations subcommand: %s\n", sub)
		os.Exit(2)
	}
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "stats: -db is required")
		os.Exit(2)
	}
	db, err := stations.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	st, err := db.GetStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Stats error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("reports:  %d (%d with warnings)\n", st.TotalReports, st.WithWarnings)
	fmt.Printf("stations: %d\n", st.TotalStations)
	for typ, count := range st.ByStationType {
		fmt.Printf("  %s: %d\n", typ, count)
	}
	for region, count := range st.ByRegion {
		fmt.Printf("  region %s: %d\n", region, count)
	}
}

// eachReport reads reports one per line, accepting both plain text and
// {"text":...} JSONL, and invokes fn for every non-empty report. In
// bulletin mode the whole input is split on shared headers and equals
// sign terminators instead.
func eachReport(path string, asBulletin bool, fn func(message string) error) error {
	var r io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	if asBulletin {
		data, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		for _, message := range bulletin.Split(string(data)) {
			if err := fn(message); err != nil {
				return err
			}
		}
		return nil
	}

	scanner := bufio.NewScanner(r)
	// Bulletin lines can be long; bump buffer (1MB).
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "{") {
			var obj struct {
				Text string `json:"text"`
			}
			if err := json.Unmarshal([]byte(line), &obj); err != nil || strings.TrimSpace(obj.Text) == "" {
				continue
			}
			line = strings.TrimSpace(obj.Text)
		}
		// Reports are often terminated with an equals sign in bulletins.
		line = strings.TrimSuffix(line, "=")
		line = strings.TrimSpace(line)
		if err := fn(line); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func writeJSON(path string, v any, pretty bool) error {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}
	var enc []byte
	var err error
	if pretty {
		enc, err = json.MarshalIndent(v, "", "  ")
	} else {
		enc, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("JSON encode error: %w", err)
	}
	if _, err := w.Write(enc); err != nil {
		return err
	}
	if w == os.Stdout {
		_, _ = w.Write([]byte("\n"))
	}
	return nil
}
