// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

// mockOgg simulates oggvorbis.Reader
type mockOgg struct {
	rate     int
	channels int
	samples  []float32
	offset   int
	err      error
}

func (m *mockOgg) SampleRate() int { return m.rate }
func (m *mockOgg) Channels() int   { return m.channels }

func (m *mockOgg) Read(p []float32) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}
	n := copy(p, m.samples[m.offset:])
	m.offset += n
	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	if _, err := (Decoder{}).Decode(bytes.NewReader([]byte("OggS but not really"))); err == nil {
		t.Error("Decode() error = nil, want error")
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	src := &source{dec: &mockOgg{rate: 48000, channels: 2, samples: []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3}}}

	if src.SampleRate() != 48000 || src.Channels() != 2 {
		t.Errorf("layout = %d Hz / %d ch, want 48000 Hz / 2 ch", src.SampleRate(), src.Channels())
	}

	// Odd-sized buffer is trimmed to whole frames.
	dst := make([]float32, 5)
	n, err := src.ReadSamples(dst)
	if n != 4 || err != nil {
		t.Fatalf("ReadSamples() = %d, %v; want 4, nil", n, err)
	}
	if dst[3] != -0.2 {
		t.Errorf("dst[3] = %v, want -0.2", dst[3])
	}

	n, _ = src.ReadSamples(dst)
	if n != 2 {
		t.Errorf("second ReadSamples() n = %d, want 2", n)
	}
	if n, err := src.ReadSamples(dst); n != 0 || err != io.EOF {
		t.Errorf("final ReadSamples() = %d, %v; want 0, io.EOF", n, err)
	}
}

func TestSource_ReadSamples_TooSmall(t *testing.T) {
	t.Parallel()

	src := &source{dec: &mockOgg{rate: 48000, channels: 2, samples: []float32{1, 1}}}
	if n, err := src.ReadSamples(make([]float32, 1)); n != 0 || err != nil {
		t.Errorf("ReadSamples() = %d, %v; want 0, nil", n, err)
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	boom := errors.New("corrupt page")
	src := &source{dec: &mockOgg{rate: 48000, channels: 1, err: boom}}
	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want wrapped corrupt page", err)
	}
}
