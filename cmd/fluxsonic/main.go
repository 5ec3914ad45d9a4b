package main

import (
	"fmt"
	"time"

	"github.com/alecthomas/kong"

	"github.com/fluxsonic/fluxsonic/audio"
	"github.com/fluxsonic/fluxsonic/logging"
	"github.com/fluxsonic/fluxsonic/pitchmap"
	"github.com/fluxsonic/fluxsonic/series"
	"github.com/fluxsonic/fluxsonic/simulator"
)

var version = "0.1.0"

// SimulateCmd generates a synthetic light curve and writes it as CSV.
type SimulateCmd struct {
	Type    string  `help:"Light curve type." default:"flat" enum:"flat,transit,sine,flare"`
	Length  int     `help:"Number of flux samples." default:"500"`
	YOffset float64 `help:"Baseline flux level." default:"100"`
	Noise   float64 `help:"Stddev of Gaussian noise; 0 disables." default:"0"`
	Seed    uint64  `help:"Fix the noise RNG seed (0 = random)." default:"0"`

	TransitDepth  float64 `help:"Transit depth as percent of baseline." default:"10"`
	TransitPeriod int     `help:"Samples between transit starts." default:"50"`
	TransitStart  int     `help:"Start index of the first transit." default:"10"`
	TransitWidth  int     `help:"Transit width in samples." default:"5"`

	SineAmp    float64 `help:"Sine amplitude in flux units." default:"1"`
	SinePeriod float64 `help:"Sine period in samples." default:"25"`

	FlareTime      int     `help:"Sample index of the flare peak." default:"250"`
	FlareAmp       float64 `help:"Flare peak amplitude in flux units." default:"100"`
	FlareHalfwidth float64 `help:"Flare half-width in samples." default:"5"`

	Output string `short:"o" required:"" help:"Output CSV path." type:"path"`
}

func (c *SimulateCmd) Run() error {
	cfg := simulator.Config{
		Length:         c.Length,
		YOffset:        c.YOffset,
		Noise:          c.Noise,
		Seed:           c.Seed,
		TransitDepth:   c.TransitDepth,
		TransitPeriod:  c.TransitPeriod,
		TransitStart:   c.TransitStart,
		TransitWidth:   c.TransitWidth,
		SineAmp:        c.SineAmp,
		SinePeriod:     c.SinePeriod,
		FlareTime:      c.FlareTime,
		FlareAmp:       c.FlareAmp,
		FlareHalfwidth: c.FlareHalfwidth,
	}

	lc, err := simulator.SimulatedLC(simulator.LCType(c.Type), cfg)
	if err != nil {
		return err
	}
	table, err := lc.Table()
	if err != nil {
		return err
	}
	if err := table.WriteCSV(c.Output, nil); err != nil {
		return err
	}

	logging.GetGlobalLogger().Info("wrote simulated light curve", logging.Fields{
		"type":   c.Type,
		"length": table.Len(),
		"path":   c.Output,
	})
	return nil
}

// SonifyCmd maps a CSV light curve to pitches and plays it or writes a WAV.
type SonifyCmd struct {
	Input       string `arg:"" help:"Input CSV file." type:"existingfile"`
	TimeColumn  string `help:"Time column name." default:"time"`
	ValueColumn string `help:"Value column name." default:"flux"`

	PitchMin      float64   `help:"Lower pitch bound in Hz." default:"100"`
	PitchMax      float64   `help:"Upper pitch bound in Hz." default:"10000"`
	CenterPitch   float64   `help:"Pitch the zero point maps to, in Hz." default:"440"`
	ZeroPoint     string    `help:"Zero point: median, mean, or a number." default:"median"`
	Stretch       string    `help:"Stretch: linear, sqrt, log, sinh, asinh." default:"linear"`
	Invert        bool      `help:"Flip low and high pitches."`
	MinmaxPercent []float64 `help:"Percentile clip bounds, e.g. 5,95." sep:","`
	MinmaxValue   []float64 `help:"Absolute clip bounds, e.g. 0,1." sep:","`

	Duration time.Duration `help:"Note duration." default:"500ms"`
	Spacing  time.Duration `help:"Average note spacing." default:"10ms"`
	Gain     float64       `help:"Output gain, 0 to 1." default:"0.05"`

	Output string `short:"o" help:"Output WAV path." type:"path"`
	Play   bool   `help:"Play through the speaker."`
}

func (c *SonifyCmd) Run() error {
	if c.Output == "" && !c.Play {
		return fmt.Errorf("nothing to do: pass --output and/or --play")
	}

	cfg, err := c.mapConfig()
	if err != nil {
		return err
	}

	opts := series.DefaultCSVOptions()
	opts.TimeColumn = c.TimeColumn
	opts.ValueColumn = c.ValueColumn
	table, err := series.ReadCSV(c.Input, opts)
	if err != nil {
		return err
	}

	s := series.New(table)
	s.SetConfig(cfg)
	s.NoteDuration = c.Duration
	s.NoteSpacing = c.Spacing
	s.Gain = c.Gain
	if err := s.Sonify(); err != nil {
		return err
	}

	notes, err := audio.BuildNotes(s.Pitches(), s.Onsets(), c.Duration.Seconds(), c.Gain)
	if err != nil {
		return err
	}

	if c.Output != "" {
		if err := audio.WriteWAV(c.Output, notes, audio.DefaultSampleRate); err != nil {
			return err
		}
	}
	if c.Play {
		player := audio.NewPlayer(audio.DefaultSampleRate)
		if err := player.Play(audio.RenderSequence(notes, audio.DefaultSampleRate)); err != nil {
			return err
		}
		player.Wait()
	}
	return nil
}

func (c *SonifyCmd) mapConfig() (pitchmap.Config, error) {
	cfg := pitchmap.DefaultConfig()
	cfg.PitchRange = [2]float64{c.PitchMin, c.PitchMax}
	cfg.CenterPitch = c.CenterPitch
	cfg.Invert = c.Invert

	zp, err := pitchmap.ParseZeroPoint(c.ZeroPoint)
	if err != nil {
		return cfg, err
	}
	cfg.ZeroPoint = zp

	stretch, err := pitchmap.ParseStretch(c.Stretch)
	if err != nil {
		return cfg, err
	}
	cfg.Stretch = stretch

	if len(c.MinmaxPercent) > 0 {
		if len(c.MinmaxPercent) != 2 {
			return cfg, fmt.Errorf("--minmax-percent needs exactly two values")
		}
		cfg.MinMaxPercent = &[2]float64{c.MinmaxPercent[0], c.MinmaxPercent[1]}
	}
	if len(c.MinmaxValue) > 0 {
		if len(c.MinmaxValue) != 2 {
			return cfg, fmt.Errorf("--minmax-value needs exactly two values")
		}
		cfg.MinMaxValue = &[2]float64{c.MinmaxValue[0], c.MinmaxValue[1]}
	}
	return cfg, nil
}

// CLI defines the command-line interface
type CLI struct {
	Debug bool `help:"Enable debug logging."`

	Simulate SimulateCmd `cmd:"" help:"Generate a synthetic light curve CSV."`
	Sonify   SonifyCmd   `cmd:"" help:"Sonify a light curve CSV to audio."`

	Version kong.VersionFlag `short:"v" help:"Show version information."`
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("fluxsonic"),
		kong.Description("Sonify time-series data: map values to pitches and render them as sound"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
	)

	if cli.Debug {
		logging.GetGlobalLogger().SetLevel(logging.DebugLevel)
	}

	ctx.FatalIfErrorf(ctx.Run())
}
