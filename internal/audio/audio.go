// Package audio plays short synthesized cues for session events.
package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/tomz197/catcher/internal/loop/session"
)

// SampleRate is the output rate for every cue.
const SampleRate = beep.SampleRate(44100)

const (
	chirpDuration = 70 * time.Millisecond
	chirpBaseHz   = 660.0
	chirpStepHz   = 6.0 // Pitch climbs with the score
	noteDuration  = 120 * time.Millisecond
)

// winNotes is a C major arpeggio.
var winNotes = []float64{523.25, 659.25, 783.99}

// Sink receives finished streamers.
type Sink interface {
	Play(s ...beep.Streamer)
}

type speakerSink struct{}

func (speakerSink) Play(s ...beep.Streamer) { speaker.Play(s...) }

// OpenSpeaker initializes the process-wide audio device.
func OpenSpeaker() (Sink, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return nil, err
	}
	return speakerSink{}, nil
}

// Cues turns session events into sounds. Events it has no sound for are ignored.
type Cues struct {
	session.NopListener
	sink Sink
	log  *zap.Logger
}

// NewCues creates a cue player writing to sink.
func NewCues(sink Sink, log *zap.Logger) *Cues {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cues{sink: sink, log: log}
}

// ScoreChanged plays a chirp for every point scored.
func (c *Cues) ScoreChanged(score int) {
	if score <= 0 {
		return
	}
	freq := chirpBaseHz + chirpStepHz*float64(score)
	c.sink.Play(NewChirp(SampleRate, freq, freq*1.5, chirpDuration))
}

// SessionWon plays the win arpeggio.
func (c *Cues) SessionWon() {
	notes := make([]beep.Streamer, 0, len(winNotes))
	for _, hz := range winNotes {
		tone, err := generators.SineTone(SampleRate, hz)
		if err != nil {
			c.log.Warn("skip win note", zap.Float64("hz", hz), zap.Error(err))
			continue
		}
		notes = append(notes, beep.Take(SampleRate.N(noteDuration), tone))
	}
	c.sink.Play(&effects.Volume{
		Streamer: beep.Seq(notes...),
		Base:     2,
		Volume:   -1.5,
	})
}

var _ session.Listener = (*Cues)(nil)
