package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// chirp is a sine sweep with a linear fade-out.
type chirp struct {
	rate     beep.SampleRate
	from, to float64 // Hz
	phase    float64 // [0, 1)
	position int
	total    int
}

// NewChirp creates a streamer sweeping from one frequency to another over d.
func NewChirp(rate beep.SampleRate, from, to float64, d time.Duration) beep.Streamer {
	return &chirp{
		rate:  rate,
		from:  from,
		to:    to,
		total: rate.N(d),
	}
}

func (c *chirp) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if c.position >= c.total {
			return i, i > 0
		}
		progress := float64(c.position) / float64(c.total)
		freq := c.from + (c.to-c.from)*progress
		val := math.Sin(2*math.Pi*c.phase) * (1 - progress) * 0.3

		samples[i][0] = val
		samples[i][1] = val

		c.phase += freq / float64(c.rate)
		c.phase -= math.Floor(c.phase)
		c.position++
	}
	return len(samples), true
}

func (c *chirp) Err() error { return nil }
