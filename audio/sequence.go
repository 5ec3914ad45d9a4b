package audio

import (
	"math"
	"os"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/fluxsonic/fluxsonic/logging"
)

// Sequence is a fully rendered note sequence backed by a sample buffer.
// Rendering offline keeps playback and WAV export identical.
type Sequence struct {
	sr  beep.SampleRate
	buf []float64 // mono; duplicated to both channels on stream
	pos int
}

// RenderSequence additively renders the notes at their onsets. The buffer
// runs to the end of the last note. Samples are clamped to [-1, 1] in case
// overlapping notes sum past full scale.
func RenderSequence(notes []Note, sr beep.SampleRate) *Sequence {
	end := 0.0
	for _, note := range notes {
		if off := note.Onset + note.Duration; off > end {
			end = off
		}
	}

	buf := make([]float64, int(math.Ceil(end*float64(sr))))
	for _, note := range notes {
		env := noteEnvelope(note.Duration)
		start := int(note.Onset * float64(sr))
		count := int(note.Duration * float64(sr))
		for i := 0; i < count; i++ {
			// A negative onset truncates the head of the note rather
			// than reaching before the buffer.
			idx := start + i
			if idx < 0 {
				continue
			}
			if idx >= len(buf) {
				break
			}
			t := float64(i) / float64(sr)
			buf[idx] += note.Gain * env.at(t) * math.Sin(2*math.Pi*note.Freq*t)
		}
	}
	for i, v := range buf {
		if v > 1 {
			buf[i] = 1
		} else if v < -1 {
			buf[i] = -1
		}
	}

	logging.GetGlobalLogger().Debug("rendered sequence", logging.Fields{
		"notes":       len(notes),
		"samples":     len(buf),
		"sample_rate": int(sr),
	})
	return &Sequence{sr: sr, buf: buf}
}

// SampleRate returns the render rate.
func (s *Sequence) SampleRate() beep.SampleRate {
	return s.sr
}

// Len returns the total number of samples.
func (s *Sequence) Len() int {
	return len(s.buf)
}

// Samples exposes the rendered mono buffer.
func (s *Sequence) Samples() []float64 {
	return s.buf
}

func (s *Sequence) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.buf) {
		return 0, false
	}
	for i := range samples {
		if s.pos >= len(s.buf) {
			break
		}
		v := s.buf[s.pos]
		samples[i][0] = v
		samples[i][1] = v
		s.pos++
		n++
	}
	return n, true
}

func (s *Sequence) Err() error {
	return nil
}

// WriteWAV renders the notes and writes a 16-bit stereo WAV file.
func WriteWAV(path string, notes []Note, sr beep.SampleRate) error {
	seq := RenderSequence(notes, sr)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	format := beep.Format{
		SampleRate:  sr,
		NumChannels: 2,
		Precision:   2,
	}
	if err := wav.Encode(f, seq, format); err != nil {
		return err
	}

	logging.GetGlobalLogger().Info("wrote WAV file", logging.Fields{
		"path":     path,
		"samples":  seq.Len(),
		"duration": float64(seq.Len()) / float64(sr),
	})
	return nil
}
