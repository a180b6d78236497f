package report

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"filmsim-engine/internal/session"
)

func TestSummarize(t *testing.T) {
	results := []session.Result{
		{Success: true, SimulatedEV: 10, AppliedISO: 50},
		{Success: true, SimulatedEV: 14, AppliedISO: 800, FlickerRisk: true},
		{Success: true, SimulatedEV: 12, AppliedISO: 200},
		{Success: false, Error: "decode failed"},
	}

	s := Summarize(results)
	if s.Shots != 4 || s.Succeeded != 3 {
		t.Errorf("counts = %d/%d, want 3/4", s.Succeeded, s.Shots)
	}
	if s.FlickerRisk != 1 {
		t.Errorf("flicker count = %d, want 1", s.FlickerRisk)
	}
	if math.Abs(s.MeanEV-12) > 1e-12 {
		t.Errorf("mean EV = %v, want 12", s.MeanEV)
	}
	if s.StdDevEV <= 0 {
		t.Errorf("stddev EV = %v, want > 0", s.StdDevEV)
	}
	if s.MinAppliedISO != 50 || s.MaxAppliedISO != 800 {
		t.Errorf("ISO range = [%v, %v], want [50, 800]", s.MinAppliedISO, s.MaxAppliedISO)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Shots != 0 || s.Succeeded != 0 || s.MeanEV != 0 {
		t.Errorf("empty summary = %+v", s)
	}

	var buf bytes.Buffer
	s.Print(&buf) // must not divide by zero or print stats
	if !strings.Contains(buf.String(), "Shots: 0") {
		t.Errorf("summary output = %q", buf.String())
	}
}

func TestWriteDofChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dof.html")
	if err := WriteDofChart(path, 50, 8, 0.03, 500, 20000, 40); err != nil {
		t.Fatalf("WriteDofChart: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read chart: %v", err)
	}
	html := string(data)
	if !strings.Contains(html, "near limit") || !strings.Contains(html, "far limit") {
		t.Error("chart missing series names")
	}
	if !strings.Contains(html, "Depth of Field") {
		t.Error("chart missing title")
	}
}
