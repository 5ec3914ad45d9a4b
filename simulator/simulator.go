// Package simulator generates synthetic light curves (flat, sine, transit,
// flare) for exercising the sonification pipeline with known signals.
package simulator

import (
	"fmt"

	"github.com/fluxsonic/fluxsonic/logging"
	"github.com/fluxsonic/fluxsonic/series"
)

// LCType names the signal added on top of the flat baseline.
type LCType string

const (
	Flat    LCType = "flat"
	Transit LCType = "transit"
	Sine    LCType = "sine"
	Flare   LCType = "flare"
)

// Config holds the light curve parameters. SimulatedLC fills zero values
// of Length, YOffset, and the per-signal shape parameters from
// DefaultConfig, so callers can set only what they need. Noise, Seed, and
// the positional fields (TransitStart, FlareTime) are used as given; zero
// is meaningful for those.
type Config struct {
	// Length is the number of flux samples.
	Length int

	// YOffset is the baseline flux level.
	YOffset float64

	// Noise is the standard deviation of the Gaussian noise added to
	// every sample; zero means no noise.
	Noise float64

	// Seed fixes the noise RNG when nonzero.
	Seed uint64

	// Transit parameters: depth as a percent of the baseline, period and
	// width in samples, start index of the first event.
	TransitDepth  float64
	TransitPeriod int
	TransitStart  int
	TransitWidth  int

	// Sine parameters: amplitude in flux units, period in samples.
	SineAmp    float64
	SinePeriod float64

	// Flare parameters: peak sample index, peak amplitude in flux units,
	// half-width in samples (the t_1/2 of the flare template).
	FlareTime      int
	FlareAmp       float64
	FlareHalfwidth float64
}

// DefaultConfig returns the standard simulated light curve parameters.
func DefaultConfig() Config {
	return Config{
		Length:         500,
		YOffset:        100,
		TransitDepth:   10,
		TransitPeriod:  50,
		TransitStart:   10,
		TransitWidth:   5,
		SineAmp:        1,
		SinePeriod:     25,
		FlareTime:      250,
		FlareAmp:       100,
		FlareHalfwidth: 5,
	}
}

// LightCurve is a simulated series: times are sample indices, Fluxes carry
// the noise, PureFluxes do not.
type LightCurve struct {
	Times      []float64
	Fluxes     []float64
	PureFluxes []float64
}

// Table converts the (noisy) light curve to a series.DataTable.
func (lc *LightCurve) Table() (*series.DataTable, error) {
	return series.NewDataTable(lc.Times, lc.Fluxes)
}

// SimulatedLC creates a light curve of the requested kind.
func SimulatedLC(kind LCType, cfg Config) (*LightCurve, error) {
	cfg = withDefaults(cfg)
	if cfg.Length < 1 {
		return nil, fmt.Errorf("simulator: light curve length must be positive, got %d", cfg.Length)
	}

	fluxes := make([]float64, cfg.Length)
	for i := range fluxes {
		fluxes[i] = cfg.YOffset
	}
	times := make([]float64, cfg.Length)
	for i := range times {
		times[i] = float64(i)
	}

	var err error
	switch kind {
	case Flat:
		// Baseline only.
	case Transit:
		if err = checkTransitParams(cfg); err != nil {
			return nil, err
		}
		addTransitSignal(fluxes, cfg)
	case Sine:
		if cfg.SinePeriod <= 0 {
			return nil, fmt.Errorf("simulator: sine period must be positive, got %v", cfg.SinePeriod)
		}
		addSineSignal(fluxes, cfg)
	case Flare:
		if err = checkFlareParams(cfg); err != nil {
			return nil, err
		}
		addFlareSignal(fluxes, cfg)
	default:
		return nil, fmt.Errorf("simulator: unknown light curve type %q", kind)
	}

	pure := make([]float64, len(fluxes))
	copy(pure, fluxes)
	addNoise(fluxes, cfg)

	logging.GetGlobalLogger().Debug("simulated light curve", logging.Fields{
		"type":   string(kind),
		"length": cfg.Length,
		"noise":  cfg.Noise,
	})
	return &LightCurve{Times: times, Fluxes: fluxes, PureFluxes: pure}, nil
}

// withDefaults fills zero-valued shape parameters from DefaultConfig.
// Noise, Seed, TransitStart, and FlareTime keep their zero values.
func withDefaults(cfg Config) Config {
	def := DefaultConfig()
	if cfg.Length == 0 {
		cfg.Length = def.Length
	}
	if cfg.YOffset == 0 {
		cfg.YOffset = def.YOffset
	}
	if cfg.TransitDepth == 0 {
		cfg.TransitDepth = def.TransitDepth
	}
	if cfg.TransitPeriod == 0 {
		cfg.TransitPeriod = def.TransitPeriod
	}
	if cfg.TransitWidth == 0 {
		cfg.TransitWidth = def.TransitWidth
	}
	if cfg.SineAmp == 0 {
		cfg.SineAmp = def.SineAmp
	}
	if cfg.SinePeriod == 0 {
		cfg.SinePeriod = def.SinePeriod
	}
	if cfg.FlareAmp == 0 {
		cfg.FlareAmp = def.FlareAmp
	}
	if cfg.FlareHalfwidth == 0 {
		cfg.FlareHalfwidth = def.FlareHalfwidth
	}
	return cfg
}

// checkTransitParams validates the transit parameters against the curve.
func checkTransitParams(cfg Config) error {
	if cfg.TransitPeriod <= 0 {
		return fmt.Errorf("simulator: transit period must be positive, got %d", cfg.TransitPeriod)
	}
	if cfg.TransitWidth <= 0 {
		return fmt.Errorf("simulator: transit width must be positive, got %d", cfg.TransitWidth)
	}
	if cfg.TransitStart < 0 {
		return fmt.Errorf("simulator: transit start must be non-negative, got %d", cfg.TransitStart)
	}
	if cfg.TransitStart > cfg.Length {
		return fmt.Errorf("simulator: transit start %d beyond light curve of %d fluxes",
			cfg.TransitStart, cfg.Length)
	}
	if cfg.TransitWidth >= cfg.TransitPeriod {
		return fmt.Errorf("simulator: transit width %d must be less than the period %d",
			cfg.TransitWidth, cfg.TransitPeriod)
	}
	return nil
}

// checkFlareParams validates the flare parameters against the curve.
func checkFlareParams(cfg Config) error {
	if cfg.FlareTime < 0 {
		return fmt.Errorf("simulator: flare time must be non-negative, got %d", cfg.FlareTime)
	}
	if cfg.FlareTime > cfg.Length {
		return fmt.Errorf("simulator: flare time %d beyond light curve of %d fluxes",
			cfg.FlareTime, cfg.Length)
	}
	if cfg.FlareAmp <= 0 {
		return fmt.Errorf("simulator: flare amplitude must be positive, got %v", cfg.FlareAmp)
	}
	if cfg.FlareHalfwidth <= 0 {
		return fmt.Errorf("simulator: flare half-width must be positive, got %v", cfg.FlareHalfwidth)
	}
	return nil
}
