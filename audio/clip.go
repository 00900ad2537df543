// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"time"

	"github.com/ik5/audcue/utils"
)

const readChunk = 4096

// Clip is fully decoded audio held in memory. Samples are interleaved.
// A Clip is immutable once built; transformations return new clips.
type Clip struct {
	Samples    []float32
	SampleRate int
	Channels   int
}

// NewClip validates the layout and wraps samples without copying.
func NewClip(samples []float32, sampleRate, channels int) (*Clip, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if channels <= 0 {
		return nil, ErrInvalidChannels
	}
	if len(samples)%channels != 0 {
		return nil, ErrInvalidDstSize
	}

	return &Clip{Samples: samples, SampleRate: sampleRate, Channels: channels}, nil
}

// ReadClip drains src into a Clip and closes it.
func ReadClip(src Source) (*Clip, error) {
	defer src.Close()

	channels := src.Channels()
	if channels <= 0 {
		return nil, ErrInvalidChannels
	}

	buf := make([]float32, readChunk-readChunk%channels)
	var samples []float32
	for {
		n, err := src.ReadSamples(buf)
		samples = append(samples, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read samples: %w", err)
		}
		if n == 0 {
			// A source that returns nothing without EOF would spin forever.
			break
		}
	}

	if len(samples) == 0 {
		return nil, ErrEmptyClip
	}
	// Drop a trailing partial frame.
	samples = samples[:len(samples)-len(samples)%channels]

	return NewClip(samples, src.SampleRate(), channels)
}

// Frames is the number of sample frames (samples per channel).
func (c *Clip) Frames() int {
	if c == nil || c.Channels == 0 {
		return 0
	}
	return len(c.Samples) / c.Channels
}

func (c *Clip) Duration() time.Duration {
	if c == nil || c.SampleRate == 0 {
		return 0
	}
	return time.Duration(c.Frames()) * time.Second / time.Duration(c.SampleRate)
}

// Frame returns channel ch of frame i, clamping i to the clip bounds.
func (c *Clip) Frame(i, ch int) float32 {
	frames := c.Frames()
	if frames == 0 {
		return 0
	}
	if i < 0 {
		i = 0
	} else if i >= frames {
		i = frames - 1
	}
	return c.Samples[i*c.Channels+ch]
}

// Stereo returns a two-channel clip. Mono is duplicated to both sides;
// layouts wider than stereo keep the first two channels.
func (c *Clip) Stereo() *Clip {
	if c.Channels == 2 {
		return c
	}

	frames := c.Frames()
	out := make([]float32, frames*2)
	for f := range frames {
		l := c.Samples[f*c.Channels]
		r := l
		if c.Channels > 1 {
			r = c.Samples[f*c.Channels+1]
		}
		out[f*2] = l
		out[f*2+1] = r
	}

	return &Clip{Samples: out, SampleRate: c.SampleRate, Channels: 2}
}

// Resample converts the clip to rate using cubic interpolation.
func (c *Clip) Resample(rate int) (*Clip, error) {
	if rate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if rate == c.SampleRate {
		return c, nil
	}

	ratio := float64(c.SampleRate) / float64(rate)
	srcFrames := c.Frames()
	dstFrames := int(float64(srcFrames) / ratio)
	out := make([]float32, dstFrames*c.Channels)

	for f := range dstFrames {
		pos := float64(f) * ratio
		i := int(pos)
		x := float32(pos - float64(i))
		for ch := range c.Channels {
			out[f*c.Channels+ch] = utils.CubicInterpolate(
				c.Frame(i-1, ch), c.Frame(i, ch), c.Frame(i+1, ch), c.Frame(i+2, ch), x,
			)
		}
	}

	return &Clip{Samples: out, SampleRate: rate, Channels: c.Channels}, nil
}

// Prepare converts the clip into the layout an output engine expects:
// stereo at the given rate.
func (c *Clip) Prepare(rate int) (*Clip, error) {
	return c.Stereo().Resample(rate)
}
