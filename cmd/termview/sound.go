package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

const (
	sampleRate = beep.SampleRate(44100)
	landTone   = 220
	landLength = 40 * time.Millisecond
)

// sound plays short cues on the speaker. A sound that failed to open the
// speaker stays silent.
type sound struct {
	enabled bool
}

func newSound(enabled bool, log *zap.Logger) *sound {
	s := &sound{}
	if !enabled {
		return s
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		// Non-fatal, the viewer runs without sound
		log.Warn("audio init failed", zap.Error(err))
		return s
	}
	s.enabled = true
	return s
}

func (s *sound) Land() {
	if !s.enabled {
		return
	}
	sine, err := generators.SineTone(sampleRate, landTone)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(landLength), sine))
}

func (s *sound) Close() {
	if s.enabled {
		speaker.Close()
		s.enabled = false
	}
}
