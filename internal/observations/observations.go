// Package observations implements the field codecs of FM-12 reports.
// Each codec decodes one report group (or a fixed slice of one) into a
// typed value and encodes it back to the exact figures it came from.
package observations

import (
	"fmt"
	"strconv"
	"strings"

	"synop_parser/internal/obs"
)

// decodeInt parses a fixed width numeric field. All slashes decode to
// nil.
func decodeInt(raw, desc string) (*int, error) {
	if !obs.IsAvailable(raw) {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, obs.Invalid(raw, desc)
	}
	return obs.Int(n), nil
}

// decodeIntRange parses a numeric field and checks it against an
// inclusive range.
func decodeIntRange(raw, desc string, min, max int) (*int, error) {
	n, err := decodeInt(raw, desc)
	if err != nil || n == nil {
		return n, err
	}
	if *n < min || *n > max {
		return nil, obs.Invalid(raw, desc)
	}
	return n, nil
}

// encodeInt formats a value as width fixed digits, or slashes when the
// value is absent.
func encodeInt(v *int, width int) string {
	if v == nil {
		return strings.Repeat("/", width)
	}
	return fmt.Sprintf("%0*d", width, *v)
}

// encodeMeasure formats a measure's value as width fixed digits after
// applying scale, or slashes when absent.
func encodeMeasure(m *obs.Measure, scale float64, width int) string {
	if m == nil || m.Value == nil {
		return strings.Repeat("/", width)
	}
	return fmt.Sprintf("%0*d", width, int(*m.Value*scale))
}
