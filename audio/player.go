package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Player owns the speaker lifecycle for sequence playback. The speaker is
// initialized once per process; subsequent Play calls reuse it.
type Player struct {
	mu          sync.Mutex
	sr          beep.SampleRate
	initialized bool
	done        chan struct{}
	doneOnce    *sync.Once
}

// NewPlayer creates a player at the given sample rate.
func NewPlayer(sr beep.SampleRate) *Player {
	return &Player{sr: sr}
}

// Play starts the sequence on the speaker and returns immediately. Any
// previous playback is cleared first.
func (p *Player) Play(seq *Sequence) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if seq.SampleRate() != p.sr {
		return fmt.Errorf("audio: sequence rate %d does not match player rate %d",
			seq.SampleRate(), p.sr)
	}

	if !p.initialized {
		if err := speaker.Init(p.sr, p.sr.N(100*time.Millisecond)); err != nil {
			return fmt.Errorf("audio: speaker init failed: %w", err)
		}
		p.initialized = true
	}

	speaker.Clear()
	done := make(chan struct{})
	once := &sync.Once{}
	p.done = done
	p.doneOnce = once
	speaker.Play(beep.Seq(seq, beep.Callback(func() {
		once.Do(func() { close(done) })
	})))
	return nil
}

// Wait blocks until the current playback finishes. Returns immediately if
// nothing is playing.
func (p *Player) Wait() {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()

	if done != nil {
		<-done
	}
}

// Stop cuts playback off and releases any Wait callers.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		speaker.Clear()
	}
	if p.done != nil {
		done := p.done
		p.doneOnce.Do(func() { close(done) })
	}
}
