// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const writeChunk = 8192

var (
	ErrInvalidChannels = errors.New("channel count must be positive")

	// ErrTooLarge indicates more sample data than a RIFF size field can hold.
	ErrTooLarge = errors.New("WAV data exceeds 4 GiB")
)

// WriteWAV16 writes interleaved 16-bit PCM through the go-audio/wav encoder.
// The RIFF and data sizes are patched on close, hence the io.WriteSeeker.
func WriteWAV16(w io.WriteSeeker, sampleRate, channels int, samples []int16) error {
	if channels <= 0 {
		return ErrInvalidChannels
	}
	if uint64(len(samples))*2 > math.MaxUint32-36 {
		return ErrTooLarge
	}

	enc := wav.NewEncoder(w, sampleRate, 16, channels, formatPCM)
	format := &goaudio.Format{SampleRate: sampleRate, NumChannels: channels}
	buf := &goaudio.IntBuffer{
		Format:         format,
		Data:           make([]int, 0, min(len(samples), writeChunk)),
		SourceBitDepth: 16,
	}

	// One Write even for no samples, so the data chunk header exists.
	for i := 0; i == 0 || i < len(samples); i += writeChunk {
		buf.Data = buf.Data[:0]
		for _, s := range samples[i:min(i+writeChunk, len(samples))] {
			buf.Data = append(buf.Data, int(s))
		}
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("write samples: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize header: %w", err)
	}
	return nil
}
