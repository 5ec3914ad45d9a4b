// Package series drives the sonification of two-column (time, value) data:
// ingesting tables, mapping the value column to pitches, and scheduling
// note onsets from the time column.
package series

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/fluxsonic/fluxsonic/logging"
)

// DataTable holds an ordered (time, value) series. Rows with non-finite
// entries are dropped at construction; downstream mapping requires finite
// values and gaps in instrument data are common.
type DataTable struct {
	Times  []float64
	Values []float64
}

// NewDataTable builds a table from parallel slices, dropping rows where
// either entry is NaN or infinite.
func NewDataTable(times, values []float64) (*DataTable, error) {
	if len(times) != len(values) {
		return nil, fmt.Errorf("series: time and value columns must have the same length, got %d and %d",
			len(times), len(values))
	}

	t := &DataTable{
		Times:  make([]float64, 0, len(times)),
		Values: make([]float64, 0, len(values)),
	}
	dropped := 0
	for i := range times {
		if !finite(times[i]) || !finite(values[i]) {
			dropped++
			continue
		}
		t.Times = append(t.Times, times[i])
		t.Values = append(t.Values, values[i])
	}
	if dropped > 0 {
		logging.GetGlobalLogger().Debug("dropped non-finite rows", logging.Fields{
			"dropped": dropped,
			"kept":    len(t.Times),
		})
	}
	return t, nil
}

// Len returns the number of rows.
func (t *DataTable) Len() int {
	return len(t.Values)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	TimeColumn  string // Column name for times (default: "time")
	ValueColumn string // Column name for values (default: "flux")
	HasHeader   bool   // Whether the CSV has a header row (default: true)
	Delimiter   rune   // Field delimiter (default: ',')
}

// DefaultCSVOptions returns the default CSV loading options.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		TimeColumn:  "time",
		ValueColumn: "flux",
		HasHeader:   true,
		Delimiter:   ',',
	}
}

// ReadCSV loads a two-column table from a CSV file.
func ReadCSV(filename string, opts *CSVOptions) (*DataTable, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadCSVFromReader(file, opts)
}

// ReadCSVFromReader loads a two-column table from an io.Reader.
func ReadCSVFromReader(r io.Reader, opts *CSVOptions) (*DataTable, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true

	timeIdx, valueIdx := 0, 1
	if opts.HasHeader {
		header, err := reader.Read()
		if err != nil {
			return nil, err
		}
		timeIdx, valueIdx = -1, -1
		for i, h := range header {
			switch strings.TrimSpace(h) {
			case opts.TimeColumn:
				timeIdx = i
			case opts.ValueColumn:
				valueIdx = i
			}
		}
		if timeIdx == -1 || valueIdx == -1 {
			return nil, fmt.Errorf("series: columns %q and %q not found in header %v",
				opts.TimeColumn, opts.ValueColumn, header)
		}
	}

	var times, values []float64
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) <= timeIdx || len(record) <= valueIdx {
			return nil, fmt.Errorf("series: row %v too short", record)
		}

		tv, err := parseFloat(record[timeIdx])
		if err != nil {
			return nil, fmt.Errorf("series: bad time value %q: %w", record[timeIdx], err)
		}
		vv, err := parseFloat(record[valueIdx])
		if err != nil {
			return nil, fmt.Errorf("series: bad data value %q: %w", record[valueIdx], err)
		}
		times = append(times, tv)
		values = append(values, vv)
	}

	return NewDataTable(times, values)
}

// parseFloat reads a float, treating empty cells and literal nan/inf
// spellings as NaN so NewDataTable drops those rows.
func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

// WriteCSV writes the table with a header row, so it round-trips through
// ReadCSV with default options.
func (t *DataTable) WriteCSV(filename string, opts *CSVOptions) error {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return t.WriteCSVTo(file, opts)
}

// WriteCSVTo writes the table to an io.Writer.
func (t *DataTable) WriteCSVTo(w io.Writer, opts *CSVOptions) error {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	writer := csv.NewWriter(w)
	writer.Comma = opts.Delimiter

	if opts.HasHeader {
		if err := writer.Write([]string{opts.TimeColumn, opts.ValueColumn}); err != nil {
			return err
		}
	}
	for i := range t.Times {
		row := []string{
			strconv.FormatFloat(t.Times[i], 'g', -1, 64),
			strconv.FormatFloat(t.Values[i], 'g', -1, 64),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
