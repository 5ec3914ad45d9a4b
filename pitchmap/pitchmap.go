// Package pitchmap maps arbitrary data series to audible pitches.
//
// The mapping pins a configurable zero point of the data to a configurable
// center pitch and keeps every output value inside the requested frequency
// range, with optional outlier clipping, five monotonic stretch curves, and
// optional inversion. Each call is a pure function of its inputs; calls are
// safe to run concurrently as long as callers pass their own Config values.
package pitchmap

import (
	"gonum.org/v1/gonum/floats"

	"github.com/fluxsonic/fluxsonic/logging"
)

// Mapper turns a data series into a pitch series. The built-in engine is
// Func(DataToPitch); callers can substitute any function with the same
// contract.
type Mapper interface {
	MapToPitch(data []float64, cfg Config) ([]float64, error)
}

// Func adapts an ordinary function to the Mapper interface.
type Func func(data []float64, cfg Config) ([]float64, error)

func (f Func) MapToPitch(data []float64, cfg Config) ([]float64, error) {
	return f(data, cfg)
}

// DataToPitch maps data to pitch values in cfg.PitchRange such that the
// resolved zero point lands exactly on cfg.CenterPitch. The output has the
// same length and order as data. It either succeeds completely or returns
// an error wrapping ErrConfig or ErrData with no partial output.
func DataToPitch(data []float64, cfg Config) ([]float64, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, dataErrorf("data series is empty")
	}
	for i, v := range data {
		if !isFinite(v) {
			return nil, dataErrorf("non-finite value %v at index %d", v, i)
		}
	}

	work := preprocess(data, cfg)

	for i, v := range work {
		work[i] = cfg.Stretch.apply(v)
	}
	if cfg.Invert {
		for i, v := range work {
			work[i] = 1 - v
		}
	}

	return rangeMap(work, cfg), nil
}

// preprocess resolves the zero point, appends it to a copy of the data,
// clips, and normalizes the combined array to [0,1]. The zero point sits at
// index len(data) of the result.
func preprocess(data []float64, cfg Config) []float64 {
	zp := cfg.ZeroPoint.resolve(data)

	work := make([]float64, len(data)+1)
	copy(work, data)
	work[len(data)] = zp

	var lo, hi float64
	switch {
	case cfg.MinMaxValue != nil:
		lo, hi = cfg.MinMaxValue[0], cfg.MinMaxValue[1]
	case cfg.MinMaxPercent != nil:
		// Percentile bounds come from the data portion only; the
		// appended zero point must not shift them.
		lo = percentile(data, cfg.MinMaxPercent[0])
		hi = percentile(data, cfg.MinMaxPercent[1])
	default:
		lo, hi = floats.Min(work), floats.Max(work)
	}

	if hi <= lo {
		// Constant or fully clipped data carries no contrast; park
		// everything at mid scale so both anchor maps send it to the
		// center pitch.
		logging.GetGlobalLogger().Warn("degenerate input: no value spread after clipping", logging.Fields{
			"clip_low":  lo,
			"clip_high": hi,
		})
		for i := range work {
			work[i] = 0.5
		}
		return work
	}

	for i, v := range work {
		if v < lo {
			v = lo
		} else if v > hi {
			v = hi
		}
		work[i] = (v - lo) / (hi - lo)
	}
	return work
}

// rangeMap scales the stretched array onto the pitch range with a single
// linear map anchored on whichever side would otherwise overflow, then
// drops the appended zero point. With z the transformed zero point, the
// low-anchored map sends 0 to min and z to center; the high-anchored map
// sends z to center and 1 to max. The low map is used whenever its image
// of 1 stays within the range; otherwise the high map is in bounds for the
// whole array by construction.
func rangeMap(work []float64, cfg Config) []float64 {
	n := len(work) - 1
	z := work[n]
	minHz, maxHz := cfg.PitchRange[0], cfg.PitchRange[1]
	center := cfg.CenterPitch

	var scale, offset float64
	lowAnchored := z > 0 && (z >= 1 || (1/z)*(center-minHz)+minHz <= maxHz)
	if lowAnchored {
		scale = (center - minHz) / z
		offset = minHz
	} else {
		scale = (maxHz - center) / (1 - z)
		offset = center - scale*z
	}

	pitches := work[:n]
	for i, v := range pitches {
		pitches[i] = scale*v + offset
	}
	return pitches
}
