package series

import (
	"bytes"
	"errors"
	"math"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fluxsonic/fluxsonic/logging"
	"github.com/fluxsonic/fluxsonic/pitchmap"
)

func TestMain(m *testing.M) {
	logging.SetGlobalLogger(&logging.NoOpLogger{})
	os.Exit(m.Run())
}

// TestNewDataTableDropsBadRows verifies NaN/Inf rows are filtered at load.
func TestNewDataTableDropsBadRows(t *testing.T) {
	times := []float64{0, 1, 2, 3, 4}
	values := []float64{10, math.NaN(), 12, math.Inf(1), 14}

	table, err := NewDataTable(times, values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Len() != 3 {
		t.Fatalf("expected 3 rows after filtering, got %d", table.Len())
	}
	wantTimes := []float64{0, 2, 4}
	wantValues := []float64{10, 12, 14}
	for i := range wantTimes {
		if table.Times[i] != wantTimes[i] || table.Values[i] != wantValues[i] {
			t.Errorf("row %d: got (%v, %v), expected (%v, %v)",
				i, table.Times[i], table.Values[i], wantTimes[i], wantValues[i])
		}
	}
}

// TestNewDataTableLengthMismatch verifies unequal columns are rejected.
func TestNewDataTableLengthMismatch(t *testing.T) {
	if _, err := NewDataTable([]float64{1, 2}, []float64{1}); err == nil {
		t.Error("expected error for mismatched column lengths")
	}
}

// TestReadCSV verifies header-based column selection and empty-cell handling.
func TestReadCSV(t *testing.T) {
	input := "time,flux\n0,100\n1,101.5\n2,\n3,99\n"

	table, err := ReadCSVFromReader(strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Len() != 3 {
		t.Fatalf("expected 3 rows (empty cell dropped), got %d", table.Len())
	}
	if table.Values[1] != 101.5 {
		t.Errorf("expected value 101.5, got %v", table.Values[1])
	}
}

// TestReadCSVCustomColumns verifies non-default column names and order.
func TestReadCSVCustomColumns(t *testing.T) {
	input := "mag,jd\n5.5,2459000\n5.6,2459001\n"
	opts := &CSVOptions{TimeColumn: "jd", ValueColumn: "mag", HasHeader: true, Delimiter: ','}

	table, err := ReadCSVFromReader(strings.NewReader(input), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Times[0] != 2459000 || table.Values[0] != 5.5 {
		t.Errorf("columns mis-assigned: times[0]=%v values[0]=%v", table.Times[0], table.Values[0])
	}
}

// TestReadCSVMissingColumn verifies unknown headers produce an error.
func TestReadCSVMissingColumn(t *testing.T) {
	input := "a,b\n1,2\n"
	if _, err := ReadCSVFromReader(strings.NewReader(input), nil); err == nil {
		t.Error("expected error for missing time/flux columns")
	}
}

// TestCSVRoundTrip verifies WriteCSVTo output parses back identically.
func TestCSVRoundTrip(t *testing.T) {
	table, err := NewDataTable([]float64{0, 1, 2}, []float64{100.25, 99, 101})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := table.WriteCSVTo(&buf, nil); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	back, err := ReadCSVFromReader(&buf, nil)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if back.Len() != table.Len() {
		t.Fatalf("round trip length %d, expected %d", back.Len(), table.Len())
	}
	for i := range table.Values {
		if back.Times[i] != table.Times[i] || back.Values[i] != table.Values[i] {
			t.Errorf("row %d: got (%v, %v), expected (%v, %v)",
				i, back.Times[i], back.Values[i], table.Times[i], table.Values[i])
		}
	}
}

// TestSonify verifies pitch and onset computation on evenly sampled data.
func TestSonify(t *testing.T) {
	table, err := NewDataTable(
		[]float64{0, 1, 2, 3, 4},
		[]float64{100, 101, 102, 101, 100},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := New(table)
	if err := s.Sonify(); err != nil {
		t.Fatalf("sonify failed: %v", err)
	}

	pitches := s.Pitches()
	if len(pitches) != 5 {
		t.Fatalf("expected 5 pitches, got %d", len(pitches))
	}
	cfg := s.Config()
	for i, p := range pitches {
		if p < cfg.PitchRange[0] || p > cfg.PitchRange[1] {
			t.Errorf("pitch[%d] = %v outside range", i, p)
		}
	}

	// Even sampling: onsets advance by exactly the note spacing.
	onsets := s.Onsets()
	spacing := DefaultNoteSpacing.Seconds()
	for i, o := range onsets {
		want := float64(i) * spacing
		if math.Abs(o-want) > 1e-12 {
			t.Errorf("onset[%d] = %v, expected %v", i, o, want)
		}
	}
}

// TestSonifyUnevenSampling verifies a gap in the time column stretches the
// corresponding onset gap.
func TestSonifyUnevenSampling(t *testing.T) {
	table, err := NewDataTable(
		[]float64{0, 1, 2, 5, 6},
		[]float64{1, 2, 3, 2, 1},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := New(table)
	s.NoteSpacing = 100 * time.Millisecond
	if err := s.Sonify(); err != nil {
		t.Fatalf("sonify failed: %v", err)
	}

	onsets := s.Onsets()
	// Median step is 1, so the 3-unit gap becomes 3 spacings.
	if math.Abs((onsets[3]-onsets[2])-0.3) > 1e-12 {
		t.Errorf("gap onset delta = %v, expected 0.3", onsets[3]-onsets[2])
	}
	if math.Abs((onsets[1]-onsets[0])-0.1) > 1e-12 {
		t.Errorf("unit onset delta = %v, expected 0.1", onsets[1]-onsets[0])
	}
}

// TestSonifyUnsortedTimes verifies rows out of time order get onsets
// measured from the earliest time, never negative.
func TestSonifyUnsortedTimes(t *testing.T) {
	table, err := NewDataTable(
		[]float64{3, 0, 1, 2},
		[]float64{4, 1, 2, 3},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := New(table)
	s.NoteSpacing = 100 * time.Millisecond
	if err := s.Sonify(); err != nil {
		t.Fatalf("sonify failed: %v", err)
	}

	// Median step over the sorted times is 1, so each row sounds at its
	// time value scaled by the spacing.
	want := []float64{0.3, 0, 0.1, 0.2}
	for i, o := range s.Onsets() {
		if o < 0 {
			t.Fatalf("onset[%d] = %v, must not be negative", i, o)
		}
		if math.Abs(o-want[i]) > 1e-12 {
			t.Errorf("onset[%d] = %v, expected %v", i, o, want[i])
		}
	}
}

// TestSonifyEmptyTable verifies sonifying an empty table fails cleanly.
func TestSonifyEmptyTable(t *testing.T) {
	table, err := NewDataTable(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := New(table).Sonify(); err == nil {
		t.Error("expected error for empty table")
	}
}

// TestSonifyConfigPropagation verifies mapper errors surface with their kind.
func TestSonifyConfigPropagation(t *testing.T) {
	table, err := NewDataTable([]float64{0, 1}, []float64{1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := New(table)
	cfg := pitchmap.DefaultConfig()
	cfg.PitchRange = [2]float64{500, 100}
	s.SetConfig(cfg)

	if err := s.Sonify(); !errors.Is(err, pitchmap.ErrConfig) {
		t.Errorf("expected wrapped ErrConfig, got %v", err)
	}
}

// TestSonifyCustomMapper verifies a substituted mapper drives the pitches.
func TestSonifyCustomMapper(t *testing.T) {
	table, err := NewDataTable([]float64{0, 1, 2}, []float64{7, 8, 9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := New(table)
	s.SetMapper(pitchmap.Func(func(data []float64, cfg pitchmap.Config) ([]float64, error) {
		out := make([]float64, len(data))
		for i := range out {
			out[i] = 1000
		}
		return out, nil
	}))

	if err := s.Sonify(); err != nil {
		t.Fatalf("sonify failed: %v", err)
	}
	for i, p := range s.Pitches() {
		if p != 1000 {
			t.Errorf("pitch[%d] = %v, expected 1000", i, p)
		}
	}
}
