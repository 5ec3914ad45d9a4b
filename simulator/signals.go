package simulator

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// addSineSignal adds amp*sin(2*pi*t/period) to the fluxes in place.
func addSineSignal(fluxes []float64, cfg Config) {
	for i := range fluxes {
		fluxes[i] += cfg.SineAmp * math.Sin(2*math.Pi*float64(i)/cfg.SinePeriod)
	}
}

// addTransitSignal dips the fluxes by the transit depth (a percent of the
// baseline) for each event window, repeating at the transit period.
func addTransitSignal(fluxes []float64, cfg Config) {
	depth := cfg.TransitDepth / 100 * cfg.YOffset
	for start := cfg.TransitStart; start < len(fluxes); start += cfg.TransitPeriod {
		for i := start; i < start+cfg.TransitWidth && i < len(fluxes); i++ {
			fluxes[i] -= depth
		}
	}
}

// Davenport et al. (2014) single-flare template coefficients in units of
// the flare half-width: a quartic rise over [-1, 0] and a double
// exponential decay.
var (
	flareRise  = [5]float64{1.0, 1.941, -0.175, -2.246, -1.125}
	flareDecay = [4]float64{0.6890, -1.600, 0.3030, -0.2783}
)

// addFlareSignal adds a flare peaking at FlareTime with the template shape
// scaled by FlareAmp.
func addFlareSignal(fluxes []float64, cfg Config) {
	for i := range fluxes {
		// Time relative to the peak, in half-width units.
		t := (float64(i) - float64(cfg.FlareTime)) / cfg.FlareHalfwidth

		var shape float64
		switch {
		case t >= -1 && t < 0:
			shape = flareRise[0] + t*(flareRise[1]+t*(flareRise[2]+t*(flareRise[3]+t*flareRise[4])))
		case t >= 0:
			shape = flareDecay[0]*math.Exp(flareDecay[1]*t) + flareDecay[2]*math.Exp(flareDecay[3]*t)
		}
		if shape > 0 {
			fluxes[i] += cfg.FlareAmp * shape
		}
	}
}

// addNoise draws Gaussian noise per sample in place. Noise of zero leaves
// the fluxes untouched.
func addNoise(fluxes []float64, cfg Config) {
	if cfg.Noise <= 0 {
		return
	}

	dist := distuv.Normal{Mu: 0, Sigma: cfg.Noise}
	if cfg.Seed != 0 {
		dist.Src = rand.NewSource(cfg.Seed)
	}
	for i := range fluxes {
		fluxes[i] += dist.Rand()
	}
}
