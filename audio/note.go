// Package audio renders a mapped pitch series as sound: enveloped sine
// notes mixed at their onsets, played through the speaker or written to a
// WAV file.
package audio

import (
	"fmt"
	"math"

	"github.com/gopxl/beep"
)

// DefaultSampleRate is the render rate used when callers do not pick one.
const DefaultSampleRate = beep.SampleRate(44100)

// Note is one scheduled tone: frequency in Hz, onset and duration in
// seconds, gain 0 to 1.
type Note struct {
	Freq     float64
	Onset    float64
	Duration float64
	Gain     float64
}

// BuildNotes pairs a pitch series with its onsets into notes sharing one
// duration and gain. Onsets are seconds from the start of the sequence and
// must be non-negative.
func BuildNotes(pitches, onsets []float64, duration, gain float64) ([]Note, error) {
	if len(pitches) != len(onsets) {
		return nil, fmt.Errorf("audio: %d pitches but %d onsets", len(pitches), len(onsets))
	}
	if duration <= 0 {
		return nil, fmt.Errorf("audio: note duration must be positive, got %v", duration)
	}
	if gain < 0 || gain > 1 {
		return nil, fmt.Errorf("audio: gain must be in [0, 1], got %v", gain)
	}
	for i, o := range onsets {
		if o < 0 {
			return nil, fmt.Errorf("audio: negative onset %v at index %d", o, i)
		}
	}

	notes := make([]Note, len(pitches))
	for i := range pitches {
		notes[i] = Note{
			Freq:     pitches[i],
			Onset:    onsets[i],
			Duration: duration,
			Gain:     gain,
		}
	}
	return notes, nil
}

// envelope is a piecewise-linear amplitude curve over note-relative time.
type envelope struct {
	times  []float64
	levels []float64
}

// noteEnvelope builds the standard note shape: 10 ms attack, sustain, a
// two-step release ending 5 ms before the note does. Breakpoints are
// clamped nondecreasing so very short notes still get a valid ramp.
func noteEnvelope(duration float64) envelope {
	times := []float64{0, 0.010, duration - 0.100, duration - 0.050, duration - 0.005}
	levels := []float64{0, 1, 1, 0.5, 0}

	for i := 1; i < len(times); i++ {
		if times[i] < times[i-1] {
			times[i] = times[i-1]
		}
	}
	return envelope{times: times, levels: levels}
}

// at evaluates the envelope at note-relative time t.
func (e envelope) at(t float64) float64 {
	if t <= e.times[0] {
		return e.levels[0]
	}
	for i := 1; i < len(e.times); i++ {
		if t <= e.times[i] {
			span := e.times[i] - e.times[i-1]
			if span == 0 {
				return e.levels[i]
			}
			frac := (t - e.times[i-1]) / span
			return e.levels[i-1] + frac*(e.levels[i]-e.levels[i-1])
		}
	}
	return e.levels[len(e.levels)-1]
}

// NoteStreamer streams one enveloped sine note.
type NoteStreamer struct {
	sr      beep.SampleRate
	note    Note
	env     envelope
	pos     int
	samples int
}

// NewNoteStreamer creates a streamer for a single note.
func NewNoteStreamer(note Note, sr beep.SampleRate) *NoteStreamer {
	return &NoteStreamer{
		sr:      sr,
		note:    note,
		env:     noteEnvelope(note.Duration),
		samples: int(note.Duration * float64(sr)),
	}
}

func (g *NoteStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.samples {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.samples {
			break
		}
		t := float64(g.pos) / float64(g.sr)
		sample := g.note.Gain * g.env.at(t) * math.Sin(2*math.Pi*g.note.Freq*t)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
		n++
	}
	return n, true
}

func (g *NoteStreamer) Err() error {
	return nil
}
