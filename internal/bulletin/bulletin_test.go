package bulletin

import (
	"strings"
	"testing"
)

func TestSplitSharedHeader(t *testing.T) {
	text := strings.Join([]string{
		"SMUK01 EGRR 010000",
		"AAXX 01004",
		"88889 12782 61506 10094 20047 30111=",
		"03772 42589 43120=",
		"03808 NIL=",
	}, "\n")

	got := Split(text)
	want := []string{
		"AAXX 01004 88889 12782 61506 10094 20047 30111",
		"AAXX 01004 03772 42589 43120",
		"AAXX 01004 03808 NIL",
	}
	if len(got) != len(want) {
		t.Fatalf("Split returned %d reports, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("report %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSplitShipBulletin(t *testing.T) {
	text := strings.Join([]string{
		"SMVX01 AMMC 250600 RRA",
		"BBXX",
		"ZDLP 19004 99607 50455 41298 81307 10001=",
		"51002 19001 99170 71577 46///=",
	}, "\n")

	got := Split(text)
	want := []string{
		"BBXX ZDLP 19004 99607 50455 41298 81307 10001",
		"BBXX 51002 19001 99170 71577 46///",
	}
	if len(got) != len(want) {
		t.Fatalf("Split returned %d reports, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("report %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSplitMultiLineReport(t *testing.T) {
	text := strings.Join([]string{
		"AAXX 01004",
		"88889 12782 61506 10094 20047 30111 40197 53007",
		"60001 70102 81541 333 10178 21073 34101=",
	}, "\n")

	got := Split(text)
	if len(got) != 1 {
		t.Fatalf("Split returned %d reports, want 1: %v", len(got), got)
	}
	want := "AAXX 01004 88889 12782 61506 10094 20047 30111 40197 53007 60001 70102 81541 333 10178 21073 34101"
	if got[0] != want {
		t.Errorf("report = %q, want %q", got[0], want)
	}
}

func TestSplitPlainLines(t *testing.T) {
	text := strings.Join([]string{
		"AAXX 01004 88889 12782 61506 30111",
		"BBXX ZDLP 19004 99607 50455 41298",
	}, "\n")

	got := Split(text)
	if len(got) != 2 {
		t.Fatalf("Split returned %d reports, want 2: %v", len(got), got)
	}
	if got[0] != "AAXX 01004 88889 12782 61506 30111" {
		t.Errorf("first report = %q", got[0])
	}
	if got[1] != "BBXX ZDLP 19004 99607 50455 41298" {
		t.Errorf("second report = %q", got[1])
	}
}
