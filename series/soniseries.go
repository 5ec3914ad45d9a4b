package series

import (
	"fmt"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/fluxsonic/fluxsonic/logging"
	"github.com/fluxsonic/fluxsonic/pitchmap"
)

// Default note scheduling parameters.
const (
	DefaultNoteDuration = 500 * time.Millisecond
	DefaultNoteSpacing  = 10 * time.Millisecond
	DefaultGain         = 0.05
)

// SoniSeries sonifies a DataTable: the value column becomes pitches through
// a pitchmap.Mapper, the time column becomes note onsets. Results are held
// on the series for the audio layer to consume.
type SoniSeries struct {
	Table *DataTable

	// NoteDuration is the length of each individual note.
	NoteDuration time.Duration

	// NoteSpacing is the average spacing between note onsets; actual
	// onsets scale with the gaps in the time column.
	NoteSpacing time.Duration

	// Gain is the output amplitude multiplier, 0 to 1.
	Gain float64

	mapper pitchmap.Mapper
	config pitchmap.Config

	pitches []float64
	onsets  []float64
}

// New creates a sonified series over the table with default scheduling and
// the built-in pitch mapping engine under pitchmap.DefaultConfig.
func New(table *DataTable) *SoniSeries {
	return &SoniSeries{
		Table:        table,
		NoteDuration: DefaultNoteDuration,
		NoteSpacing:  DefaultNoteSpacing,
		Gain:         DefaultGain,
		mapper:       pitchmap.Func(pitchmap.DataToPitch),
		config:       pitchmap.DefaultConfig(),
	}
}

// SetConfig replaces the mapping configuration used on the next Sonify call.
func (s *SoniSeries) SetConfig(cfg pitchmap.Config) {
	s.config = cfg
}

// Config returns the current mapping configuration.
func (s *SoniSeries) Config() pitchmap.Config {
	return s.config
}

// SetMapper substitutes a custom pitch mapper for the built-in engine.
// A nil mapper restores the default.
func (s *SoniSeries) SetMapper(m pitchmap.Mapper) {
	if m == nil {
		m = pitchmap.Func(pitchmap.DataToPitch)
	}
	s.mapper = m
}

// Sonify maps the value column to pitches and computes note onsets in
// seconds from the earliest time in the table. Onsets scale each time gap
// by the note spacing over the median time step, so uneven sampling is
// audible as uneven rhythm. Rows out of time order keep their row position
// but sound at the moment their time value dictates; onsets are never
// negative.
func (s *SoniSeries) Sonify() error {
	if s.Table == nil || s.Table.Len() == 0 {
		return fmt.Errorf("series: no data to sonify")
	}

	pitches, err := s.mapper.MapToPitch(s.Table.Values, s.config)
	if err != nil {
		return fmt.Errorf("series: pitch mapping failed: %w", err)
	}
	if len(pitches) != s.Table.Len() {
		return fmt.Errorf("series: mapper returned %d pitches for %d values", len(pitches), s.Table.Len())
	}

	times := s.Table.Times
	start := floats.Min(times)
	step := medianStep(times)
	spacing := s.NoteSpacing.Seconds()

	onsets := make([]float64, len(times))
	for i, t := range times {
		if step > 0 {
			onsets[i] = (t - start) / step * spacing
		} else {
			onsets[i] = float64(i) * spacing
		}
	}

	s.pitches = pitches
	s.onsets = onsets

	logging.GetGlobalLogger().Debug("sonified series", logging.Fields{
		"notes":     len(pitches),
		"time_step": step,
		"duration":  s.NoteDuration,
		"spacing":   s.NoteSpacing,
	})
	return nil
}

// Pitches returns the mapped pitch series in Hz. Nil before Sonify.
func (s *SoniSeries) Pitches() []float64 {
	return s.pitches
}

// Onsets returns note start times in seconds from the first note.
// Nil before Sonify.
func (s *SoniSeries) Onsets() []float64 {
	return s.onsets
}

// medianStep returns the median gap between consecutive sorted times, or 0
// for series too short to have gaps. Sorting first makes the cadence
// independent of row order and keeps the step non-negative.
func medianStep(times []float64) float64 {
	if len(times) < 2 {
		return 0
	}
	sorted := make([]float64, len(times))
	copy(sorted, times)
	sort.Float64s(sorted)

	diffs := make([]float64, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		diffs[i-1] = sorted[i] - sorted[i-1]
	}
	sort.Float64s(diffs)

	mid := len(diffs) / 2
	if len(diffs)%2 == 1 {
		return diffs[mid]
	}
	return (diffs[mid-1] + diffs[mid]) / 2
}
