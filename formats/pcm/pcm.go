// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts integer PCM readers from the go-audio family to
// audio.Source.
package pcm

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/audcue/utils"
)

// Reader is the subset of go-audio decoders (wav, aiff) used by IntSource.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// IntSource streams integer PCM as normalized float32.
type IntSource struct {
	dec      Reader
	format   *goaudio.Format
	bitDepth int
	unsigned bool
	buf      *goaudio.IntBuffer
}

// NewIntSource wraps dec. unsigned marks offset-binary samples (8-bit WAV).
func NewIntSource(dec Reader, format *goaudio.Format, bitDepth int, unsigned bool) *IntSource {
	return &IntSource{
		dec:      dec,
		format:   format,
		bitDepth: bitDepth,
		unsigned: unsigned,
	}
}

func (s *IntSource) SampleRate() int { return s.format.SampleRate }
func (s *IntSource) Channels() int   { return s.format.NumChannels }
func (s *IntSource) Close() error    { return nil }

func (s *IntSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.buf == nil || cap(s.buf.Data) < len(dst) {
		s.buf = &goaudio.IntBuffer{
			Data:           make([]int, len(dst)),
			Format:         s.format,
			SourceBitDepth: s.bitDepth,
		}
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.buf)
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("pcm read: %w", err)
	}
	if n == 0 {
		return 0, io.EOF
	}

	for i := range n {
		v := s.buf.Data[i]
		if s.unsigned {
			v -= 128
		}
		dst[i] = utils.IntToFloat32(v, s.bitDepth)
	}

	// go-audio signals the end of data with a short read.
	if n < len(dst) || err == io.EOF {
		return n, io.EOF
	}
	return n, nil
}

// ReadSeeker returns r as an io.ReadSeeker, buffering it in memory when it
// cannot seek. The go-audio decoders seek between chunks.
func ReadSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffer input: %w", err)
	}
	return bytes.NewReader(data), nil
}
