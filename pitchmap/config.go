package pitchmap

import (
	"math"
)

// Config holds the parameters of a mapping call. It is a value type: pass
// copies, never share a mutated instance between concurrent callers. Use
// DefaultConfig and adjust fields on the copy.
type Config struct {
	// PitchRange is the inclusive [min, max] output range in Hz.
	// Both bounds must be positive and min < max.
	PitchRange [2]float64

	// CenterPitch is the frequency the zero point maps to. Must lie
	// within PitchRange.
	CenterPitch float64

	// ZeroPoint selects the data value pinned to CenterPitch.
	ZeroPoint ZeroPoint

	// Stretch selects the nonlinear reshaping of the normalized data.
	Stretch Stretch

	// MinMaxPercent optionally clips the data to the [low, high]
	// percentile bounds (0 <= low < high <= 100) computed over the raw
	// data before normalization. Mutually exclusive with MinMaxValue.
	MinMaxPercent *[2]float64

	// MinMaxValue optionally clips the data to absolute [min, max]
	// bounds. Mutually exclusive with MinMaxPercent.
	MinMaxValue *[2]float64

	// Invert flips the pitch series so low data values become high
	// pitches. Applied after the stretch.
	Invert bool
}

// DefaultConfig returns the standard mapping configuration: pitches in
// [100, 10000] Hz centered at 440 Hz on the data median, linear stretch,
// no clipping, no inversion.
func DefaultConfig() Config {
	return Config{
		PitchRange:  [2]float64{100, 10000},
		CenterPitch: 440,
		ZeroPoint:   ZeroPointMedian(),
		Stretch:     StretchLinear,
	}
}

// Validate checks the configuration. All mapping entry points call this
// before touching the data.
func (c Config) Validate() error {
	lo, hi := c.PitchRange[0], c.PitchRange[1]
	if !isFinite(lo) || !isFinite(hi) {
		return configErrorf("pitch range bounds must be finite, got [%v, %v]", lo, hi)
	}
	if lo <= 0 {
		return configErrorf("pitch range minimum must be positive, got %v", lo)
	}
	if lo >= hi {
		return configErrorf("pitch range minimum %v must be below maximum %v", lo, hi)
	}
	if !isFinite(c.CenterPitch) || c.CenterPitch < lo || c.CenterPitch > hi {
		return configErrorf("center pitch %v outside pitch range [%v, %v]", c.CenterPitch, lo, hi)
	}
	if !c.Stretch.valid() {
		return configErrorf("stretch %d is not supported", int(c.Stretch))
	}
	if err := c.ZeroPoint.validate(); err != nil {
		return err
	}
	if c.MinMaxPercent != nil && c.MinMaxValue != nil {
		return configErrorf("minmax percent and minmax value are mutually exclusive")
	}
	if p := c.MinMaxPercent; p != nil {
		if !isFinite(p[0]) || !isFinite(p[1]) || p[0] < 0 || p[1] > 100 || p[0] >= p[1] {
			return configErrorf("minmax percent bounds must satisfy 0 <= low < high <= 100, got [%v, %v]", p[0], p[1])
		}
	}
	if v := c.MinMaxValue; v != nil {
		if !isFinite(v[0]) || !isFinite(v[1]) || v[0] >= v[1] {
			return configErrorf("minmax value bounds must be finite with min < max, got [%v, %v]", v[0], v[1])
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
