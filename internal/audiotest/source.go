// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"
)

// Wave yields the value of channel ch at frame f.
type Wave func(f, ch int) float32

// Source is a synthetic audio.Source of a fixed number of frames.
type Source struct {
	rate     int
	channels int
	frames   int
	pos      int
	wave     Wave
	err      error

	// MaxRead caps the samples returned per ReadSamples call, to mimic
	// decoders that return short reads. Zero means no cap.
	MaxRead int

	closed int
}

func NewSource(rate, channels, frames int, wave Wave) *Source {
	return &Source{rate: rate, channels: channels, frames: frames, wave: wave}
}

func Constant(rate, channels, frames int, v float32) *Source {
	return NewSource(rate, channels, frames, func(int, int) float32 { return v })
}

func Sine(rate, channels, frames int, hz float64) *Source {
	return NewSource(rate, channels, frames, func(f, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * hz * float64(f) / float64(rate)))
	})
}

// Failing returns a source whose every read fails with err.
func Failing(rate, channels int, err error) *Source {
	s := Constant(rate, channels, 1, 0)
	s.err = err
	return s
}

func (s *Source) SampleRate() int { return s.rate }
func (s *Source) Channels() int   { return s.channels }

func (s *Source) Close() error {
	s.closed++
	return nil
}

// Closed counts Close calls.
func (s *Source) Closed() int { return s.closed }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	if s.MaxRead > 0 && len(dst) > s.MaxRead {
		dst = dst[:s.MaxRead]
	}

	n := min(len(dst)/s.channels, s.frames-s.pos)
	for f := range n {
		for ch := range s.channels {
			dst[f*s.channels+ch] = s.wave(s.pos+f, ch)
		}
	}
	s.pos += n

	if s.pos >= s.frames {
		return n * s.channels, io.EOF
	}
	return n * s.channels, nil
}
