package pitchmap

import (
	"math"
	"strconv"
	"strings"
)

type zeroPointKind int

const (
	zeroPointMedian zeroPointKind = iota
	zeroPointMean
	zeroPointLiteral
)

// ZeroPoint specifies which data value is pinned to the center pitch: the
// median or mean of the raw series, or a literal value. The zero value of
// the type is the median, matching DefaultConfig.
type ZeroPoint struct {
	kind  zeroPointKind
	value float64
}

// ZeroPointMedian pins the median of the raw data to the center pitch.
func ZeroPointMedian() ZeroPoint { return ZeroPoint{kind: zeroPointMedian} }

// ZeroPointMean pins the mean of the raw data to the center pitch.
func ZeroPointMean() ZeroPoint { return ZeroPoint{kind: zeroPointMean} }

// ZeroPointValue pins a literal data value to the center pitch.
func ZeroPointValue(v float64) ZeroPoint {
	return ZeroPoint{kind: zeroPointLiteral, value: v}
}

// ParseZeroPoint reads a zero point specifier: "median"/"med", "mean"/
// "ave"/"average", or a numeric literal.
func ParseZeroPoint(s string) (ZeroPoint, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "median", "med":
		return ZeroPointMedian(), nil
	case "mean", "ave", "average":
		return ZeroPointMean(), nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return ZeroPoint{}, configErrorf("zero point %q is not median, mean, or a number", s)
	}
	return ZeroPointValue(v), nil
}

func (z ZeroPoint) String() string {
	switch z.kind {
	case zeroPointMean:
		return "mean"
	case zeroPointLiteral:
		return strconv.FormatFloat(z.value, 'g', -1, 64)
	default:
		return "median"
	}
}

func (z ZeroPoint) validate() error {
	if z.kind == zeroPointLiteral && (math.IsNaN(z.value) || math.IsInf(z.value, 0)) {
		return configErrorf("literal zero point must be finite, got %v", z.value)
	}
	return nil
}

// resolve computes the scalar zero point over the raw, unclipped data.
func (z ZeroPoint) resolve(data []float64) float64 {
	switch z.kind {
	case zeroPointMean:
		return mean(data)
	case zeroPointLiteral:
		return z.value
	default:
		return median(data)
	}
}
