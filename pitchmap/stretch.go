package pitchmap

import (
	"math"
	"strings"
)

// Stretch selects the monotonic reshaping applied to normalized data before
// it is scaled onto the pitch range. The set is closed: every variant maps
// 0 to 0 and 1 to 1 exactly, so the unit interval survives the stretch.
type Stretch int

const (
	// StretchLinear is the identity.
	StretchLinear Stretch = iota

	// StretchSqrt compresses the high end.
	StretchSqrt

	// StretchLog compresses the high end strongly.
	StretchLog

	// StretchSinh expands the extremes.
	StretchSinh

	// StretchAsinh compresses the extremes (inverse character of sinh).
	StretchAsinh
)

// Scale constants for the nonlinear stretches. These match the curve shapes
// the mapping has always used: log(1000x+1)/log(1001), sinh(3x)/sinh(3),
// asinh(10x)/asinh(10).
const (
	logStretchScale   = 1000.0
	sinhStretchScale  = 3.0
	asinhStretchScale = 10.0
)

func (s Stretch) String() string {
	switch s {
	case StretchLinear:
		return "linear"
	case StretchSqrt:
		return "sqrt"
	case StretchLog:
		return "log"
	case StretchSinh:
		return "sinh"
	case StretchAsinh:
		return "asinh"
	default:
		return "unknown"
	}
}

// Scale returns the shape parameter the stretch carries, or 0 for the
// parameterless variants.
func (s Stretch) Scale() float64 {
	switch s {
	case StretchLog:
		return logStretchScale
	case StretchSinh:
		return sinhStretchScale
	case StretchAsinh:
		return asinhStretchScale
	default:
		return 0
	}
}

// ParseStretch maps a stretch name to its variant.
func ParseStretch(name string) (Stretch, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linear":
		return StretchLinear, nil
	case "sqrt":
		return StretchSqrt, nil
	case "log":
		return StretchLog, nil
	case "sinh":
		return StretchSinh, nil
	case "asinh":
		return StretchAsinh, nil
	default:
		return 0, configErrorf("stretch %q is not supported", name)
	}
}

func (s Stretch) valid() bool {
	return s >= StretchLinear && s <= StretchAsinh
}

// apply evaluates the stretch at x. Inputs are expected in [0,1]; the
// boundary values pass through exactly.
func (s Stretch) apply(x float64) float64 {
	switch s {
	case StretchSqrt:
		return math.Sqrt(x)
	case StretchLog:
		return math.Log(logStretchScale*x+1) / math.Log(logStretchScale+1)
	case StretchSinh:
		return math.Sinh(sinhStretchScale*x) / math.Sinh(sinhStretchScale)
	case StretchAsinh:
		return math.Asinh(asinhStretchScale*x) / math.Asinh(asinhStretchScale)
	default:
		return x
	}
}
