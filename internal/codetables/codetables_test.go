package codetables

import (
	"errors"
	"testing"

	"synop_parser/internal/obs"
)

func TestDecodeVisibility4377(t *testing.T) {
	tests := []struct {
		raw        string
		value      float64
		quantifier string
		use90      bool
	}{
		{"00", 100, obs.IsLess, false},
		{"05", 500, "", false},
		{"50", 5000, "", false},
		{"56", 6000, "", false},
		{"80", 30000, "", false},
		{"81", 35000, "", false},
		{"89", 70000, obs.IsGreater, false},
		{"90", 50, obs.IsLess, true},
		{"93", 500, "", true},
		{"94", 1000, "", true},
		{"99", 50000, obs.IsGreaterOrEqual, true},
	}
	for _, tt := range tests {
		v, err := DecodeVisibility4377(tt.raw)
		if err != nil {
			t.Errorf("DecodeVisibility4377(%q) error: %v", tt.raw, err)
			continue
		}
		if v.Value == nil {
			t.Errorf("DecodeVisibility4377(%q) value = nil, want %v", tt.raw, tt.value)
		} else if *v.Value != tt.value {
			t.Errorf("DecodeVisibility4377(%q) value = %v, want %v", tt.raw, *v.Value, tt.value)
		}
		if v.Quantifier != tt.quantifier {
			t.Errorf("DecodeVisibility4377(%q) quantifier = %q, want %q", tt.raw, v.Quantifier, tt.quantifier)
		}
		if v.Use90 != tt.use90 {
			t.Errorf("DecodeVisibility4377(%q) use90 = %v, want %v", tt.raw, v.Use90, tt.use90)
		}
	}
}

func TestDecodeVisibility4377Invalid(t *testing.T) {
	for _, raw := range []string{"51", "55", "xx"} {
		if _, err := DecodeVisibility4377(raw); err == nil {
			t.Errorf("DecodeVisibility4377(%q): expected error", raw)
		} else {
			var inv *obs.InvalidCode
			if !errors.As(err, &inv) {
				t.Errorf("DecodeVisibility4377(%q): error %v is not an InvalidCode", raw, err)
			}
		}
	}
}

func TestVisibilityRoundTrip(t *testing.T) {
	for _, raw := range []string{"00", "17", "50", "61", "83", "89", "90", "95", "99"} {
		v, err := DecodeVisibility4377(raw)
		if err != nil {
			t.Fatalf("DecodeVisibility4377(%q) error: %v", raw, err)
		}
		got, err := EncodeVisibility4377(v, v.Use90)
		if err != nil {
			t.Fatalf("EncodeVisibility4377(%q) error: %v", raw, err)
		}
		if got != raw {
			t.Errorf("round trip of %q = %q", raw, got)
		}
	}
}

func TestDecodeCloudHeight1677(t *testing.T) {
	tests := []struct {
		raw        string
		value      float64
		quantifier string
	}{
		{"00", 30, obs.IsLess},
		{"01", 30, ""},
		{"50", 1500, ""},
		{"56", 1800, ""},
		{"80", 9000, ""},
		{"81", 10500, ""},
		{"88", 21000, ""},
		{"89", 21000, obs.IsGreater},
		{"99", 2500, obs.IsGreater},
	}
	for _, tt := range tests {
		h, err := DecodeCloudHeight1677(tt.raw)
		if err != nil {
			t.Errorf("DecodeCloudHeight1677(%q) error: %v", tt.raw, err)
			continue
		}
		if h.Value == nil || *h.Value != tt.value {
			t.Errorf("DecodeCloudHeight1677(%q) value = %v, want %v", tt.raw, h.Value, tt.value)
		}
		if h.Quantifier != tt.quantifier {
			t.Errorf("DecodeCloudHeight1677(%q) quantifier = %q, want %q", tt.raw, h.Quantifier, tt.quantifier)
		}
	}
}

func TestDecodePrecip3590(t *testing.T) {
	tests := []struct {
		raw        string
		value      float64
		trace      bool
		quantifier string
	}{
		{"001", 1, false, ""},
		{"988", 988, false, ""},
		{"989", 989, false, obs.IsGreaterOrEqual},
		{"990", 0, true, ""},
		{"991", 0.1, false, ""},
		{"999", 0.9, false, ""},
	}
	for _, tt := range tests {
		p, err := DecodePrecip3590(tt.raw)
		if err != nil {
			t.Errorf("DecodePrecip3590(%q) error: %v", tt.raw, err)
			continue
		}
		if p.Value == nil || *p.Value != tt.value {
			t.Errorf("DecodePrecip3590(%q) value = %v, want %v", tt.raw, p.Value, tt.value)
		}
		if p.Trace != tt.trace {
			t.Errorf("DecodePrecip3590(%q) trace = %v, want %v", tt.raw, p.Trace, tt.trace)
		}
		if p.Quantifier != tt.quantifier {
			t.Errorf("DecodePrecip3590(%q) quantifier = %q, want %q", tt.raw, p.Quantifier, tt.quantifier)
		}
	}
}

func TestPrecip3590RoundTrip(t *testing.T) {
	for _, raw := range []string{"004", "120", "989", "990", "995"} {
		p, err := DecodePrecip3590(raw)
		if err != nil {
			t.Fatalf("DecodePrecip3590(%q) error: %v", raw, err)
		}
		got, err := EncodePrecip3590(p)
		if err != nil {
			t.Fatalf("EncodePrecip3590(%q) error: %v", raw, err)
		}
		if got != raw {
			t.Errorf("round trip of %q = %q", raw, got)
		}
	}
}

func TestCardinal0700(t *testing.T) {
	d, err := DecodeCardinal0700("3")
	if err != nil {
		t.Fatalf("DecodeCardinal0700 error: %v", err)
	}
	if d.Value == nil || *d.Value != "SE" {
		t.Errorf("DecodeCardinal0700(3) = %v, want SE", d.Value)
	}
	calm, err := DecodeCardinal0700("0")
	if err != nil {
		t.Fatalf("DecodeCardinal0700 error: %v", err)
	}
	if calm.IsCalmOrStationary == nil || !*calm.IsCalmOrStationary {
		t.Errorf("DecodeCardinal0700(0): expected calm or stationary")
	}
	for _, raw := range []string{"0", "4", "9"} {
		c, err := DecodeCardinal0700(raw)
		if err != nil {
			t.Fatalf("DecodeCardinal0700(%q) error: %v", raw, err)
		}
		got, err := EncodeCardinal0700(c)
		if err != nil {
			t.Fatalf("EncodeCardinal0700(%q) error: %v", raw, err)
		}
		if got != raw {
			t.Errorf("round trip of %q = %q", raw, got)
		}
	}
}

func TestDirection0877(t *testing.T) {
	d, err := DecodeDirection0877("18")
	if err != nil {
		t.Fatalf("DecodeDirection0877 error: %v", err)
	}
	if d.Value == nil || *d.Value != 180 {
		t.Errorf("DecodeDirection0877(18) = %v, want 180", d.Value)
	}
	got, err := EncodeDirection0877(&Direction{Value: obs.Float(185)})
	if err != nil {
		t.Fatalf("EncodeDirection0877 error: %v", err)
	}
	if got != "19" {
		t.Errorf("EncodeDirection0877(185) = %q, want 19", got)
	}
}

func TestTemperatureChange0822(t *testing.T) {
	tests := []struct {
		raw        string
		sign       int
		value      float64
		quantifier string
	}{
		{"0", 0, 10, ""},
		{"4", 0, 14, obs.IsGreaterOrEqual},
		{"4", 1, -14, obs.IsGreaterOrEqual},
		{"7", 1, -7, ""},
	}
	for _, tt := range tests {
		c, err := DecodeTemperatureChange0822(tt.raw, tt.sign)
		if err != nil {
			t.Errorf("DecodeTemperatureChange0822(%q, %d) error: %v", tt.raw, tt.sign, err)
			continue
		}
		if c.Value == nil || *c.Value != tt.value {
			t.Errorf("DecodeTemperatureChange0822(%q, %d) = %v, want %v", tt.raw, tt.sign, c.Value, tt.value)
		}
		if c.Quantifier != tt.quantifier {
			t.Errorf("DecodeTemperatureChange0822(%q, %d) quantifier = %q, want %q", tt.raw, tt.sign, c.Quantifier, tt.quantifier)
		}
	}
}

func TestShipSpeed4451(t *testing.T) {
	s, err := DecodeShipSpeed4451("3")
	if err != nil {
		t.Fatalf("DecodeShipSpeed4451 error: %v", err)
	}
	if len(s.Value) != 2 {
		t.Fatalf("DecodeShipSpeed4451(3) returned %d ranges, want 2", len(s.Value))
	}
	if *s.Value[0].Min != 11 || *s.Value[0].Max != 15 || s.Value[0].Unit != "KT" {
		t.Errorf("DecodeShipSpeed4451(3) knots = %+v", s.Value[0])
	}
	if *s.Value[1].Min != 20 || *s.Value[1].Max != 28 || s.Value[1].Unit != "km/h" {
		t.Errorf("DecodeShipSpeed4451(3) km/h = %+v", s.Value[1])
	}
	got, err := EncodeShipSpeed4451(s)
	if err != nil {
		t.Fatalf("EncodeShipSpeed4451 error: %v", err)
	}
	if got != "3" {
		t.Errorf("round trip of 3 = %q", got)
	}

	// A caller-built value need not carry both unit entries in table
	// order; every entry is consulted until one yields a code.
	kmhOnly := &DualSpeed{Value: []SpeedRange{
		{Unit: "KT"},
		{Min: obs.Float(20), Max: obs.Float(28), Unit: "km/h"},
	}}
	got, err = EncodeShipSpeed4451(kmhOnly)
	if err != nil {
		t.Fatalf("EncodeShipSpeed4451 error: %v", err)
	}
	if got != "3" {
		t.Errorf("EncodeShipSpeed4451(km/h 20-28) = %q, want 3", got)
	}
}

func TestSeaTempMethod3850(t *testing.T) {
	m, sign, err := DecodeSeaTempMethod3850("3")
	if err != nil {
		t.Fatalf("DecodeSeaTempMethod3850 error: %v", err)
	}
	if m.Value == nil || *m.Value != "Bucket" {
		t.Errorf("DecodeSeaTempMethod3850(3) method = %v, want Bucket", m.Value)
	}
	if sign != 1 {
		t.Errorf("DecodeSeaTempMethod3850(3) sign = %d, want 1", sign)
	}
	got, err := EncodeSeaTempMethod3850(m, true)
	if err != nil {
		t.Fatalf("EncodeSeaTempMethod3850 error: %v", err)
	}
	if got != "3" {
		t.Errorf("round trip of 3 = %q", got)
	}
}

func TestRegion0161(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"31495", "III"},
		{"71826", "Antarctic"},
		{"11520", "I"},
	}
	for _, tt := range tests {
		r, err := DecodeRegion0161(tt.raw)
		if err != nil {
			t.Errorf("DecodeRegion0161(%q) error: %v", tt.raw, err)
			continue
		}
		if r.Value != tt.want {
			t.Errorf("DecodeRegion0161(%q) = %q, want %q", tt.raw, r.Value, tt.want)
		}
	}
	if _, err := DecodeRegion0161("99999"); err == nil {
		t.Errorf("DecodeRegion0161(99999): expected error")
	}
}

func TestLowestCloudBase1600(t *testing.T) {
	l, err := LowestCloudBase1600.Decode("3")
	if err != nil {
		t.Fatalf("LowestCloudBase1600.Decode error: %v", err)
	}
	if l.Min == nil || *l.Min != 200 || l.Max == nil || *l.Max != 300 {
		t.Errorf("LowestCloudBase1600.Decode(3) = [%v, %v], want [200, 300]", l.Min, l.Max)
	}
	open, err := LowestCloudBase1600.Decode("9")
	if err != nil {
		t.Fatalf("LowestCloudBase1600.Decode error: %v", err)
	}
	if open.Quantifier != obs.IsGreaterOrEqual {
		t.Errorf("LowestCloudBase1600.Decode(9) quantifier = %q, want %q", open.Quantifier, obs.IsGreaterOrEqual)
	}
}

func TestSnowDepth3889(t *testing.T) {
	d, err := DecodeSnowDepth3889("014")
	if err != nil {
		t.Fatalf("DecodeSnowDepth3889 error: %v", err)
	}
	if d.Depth == nil || *d.Depth != 14 {
		t.Errorf("DecodeSnowDepth3889(014) = %v, want 14", d.Depth)
	}
	for _, raw := range []string{"014", "997", "998", "999"} {
		s, err := DecodeSnowDepth3889(raw)
		if err != nil {
			t.Fatalf("DecodeSnowDepth3889(%q) error: %v", raw, err)
		}
		got, err := EncodeSnowDepth3889(s)
		if err != nil {
			t.Fatalf("EncodeSnowDepth3889(%q) error: %v", raw, err)
		}
		if got != raw {
			t.Errorf("round trip of %q = %q", raw, got)
		}
	}
}
