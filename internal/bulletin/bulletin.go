// Package bulletin splits raw meteorological bulletins into individual
// reports. Bulletins carry an abbreviated heading line, a shared
// MiMiMjMj group (AAXX with the day/hour line, or a bare BBXX/OOXX)
// and one report per line terminated by an equals sign.
package bulletin

import (
	"regexp"
	"strings"
)

// headingRe matches a WMO abbreviated heading, e.g. "SMUK01 EGRR 010000"
// with an optional BBB indicator such as "RRA".
var headingRe = regexp.MustCompile(`^[A-Z]{4}\d{2}\s+[A-Z]{4}\s+\d{6}(\s+[A-Z]{3})?$`)

// sharedHeaderRe matches a MiMiMjMj line that applies to all following
// reports: "AAXX" with its day/hour/wind indicator group, or a bare
// "BBXX"/"OOXX".
var sharedHeaderRe = regexp.MustCompile(`^(AAXX\s+\d{4}[\d/]|BBXX|OOXX)$`)

// reportStartRe matches a line that is a complete report on its own.
var reportStartRe = regexp.MustCompile(`^(AAXX|BBXX|OOXX)\s`)

// Split extracts the individual reports from a bulletin. Each returned
// report carries its code form prefix, with the shared AAXX day/hour
// group distributed over the station lines that follow it.
func Split(text string) []string {
	var reports []string
	header := ""
	var current []string

	flush := func() {
		if len(current) == 0 {
			return
		}
		report := strings.Join(current, " ")
		current = nil
		if header != "" && !reportStartRe.MatchString(report) {
			report = header + " " + report
		}
		if strings.TrimSpace(report) != "" {
			reports = append(reports, report)
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" {
			continue
		}
		if len(current) == 0 {
			if headingRe.MatchString(line) {
				continue
			}
			if sharedHeaderRe.MatchString(line) {
				header = normaliseSpace(line)
				continue
			}
		}

		// A line may close one or more reports with equals signs and
		// open the next one after the last terminator.
		for {
			i := strings.Index(line, "=")
			if i < 0 {
				break
			}
			if part := strings.TrimSpace(line[:i]); part != "" {
				current = append(current, normaliseSpace(part))
			}
			flush()
			line = strings.TrimSpace(line[i+1:])
		}
		if line != "" {
			current = append(current, normaliseSpace(line))
			// Without terminators every line is a report of its own.
			if reportStartRe.MatchString(line) && header == "" {
				flush()
			}
		}
	}
	flush()

	return reports
}

var spaceRe = regexp.MustCompile(`\s+`)

func normaliseSpace(s string) string {
	return spaceRe.ReplaceAllString(s, " ")
}
