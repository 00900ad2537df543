// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"encoding/binary"
	"io"
	"math"
	"slices"
	"sync"

	"github.com/ik5/audcue"
	"github.com/ik5/audcue/audio"
	"github.com/ik5/audcue/utils"
)

// Channels is the fixed output layout.
const Channels = 2

type unit struct {
	sound audcue.SoundHandle
	loop  bool
}

type voice struct {
	clip *audio.Clip
	loop bool

	pos     float64
	volume  float64
	panning float64
	rate    float64
	paused  bool
	ended   bool
}

// Voice is a snapshot of one instance.
type Voice struct {
	Position float64 // in frames
	Volume   float64
	Panning  float64
	Rate     float64
	Paused   bool
	Ended    bool
}

// Mixer implements audcue.Engine and audio.Source.
type Mixer struct {
	mtx sync.Mutex

	rate   int
	next   uint64
	closed bool

	sounds map[audcue.SoundHandle]*audio.Clip
	units  map[audcue.UnitHandle]unit
	voices map[audcue.InstanceHandle]*voice
	order  []audcue.InstanceHandle

	scratch []float32
}

var (
	_ audcue.Engine = (*Mixer)(nil)
	_ audio.Source  = (*Mixer)(nil)
	_ io.Reader     = (*Mixer)(nil)
)

func New(sampleRate int) (*Mixer, error) {
	if sampleRate <= 0 {
		return nil, audio.ErrInvalidSampleRate
	}

	return &Mixer{
		rate:   sampleRate,
		sounds: make(map[audcue.SoundHandle]*audio.Clip),
		units:  make(map[audcue.UnitHandle]unit),
		voices: make(map[audcue.InstanceHandle]*voice),
	}, nil
}

func (m *Mixer) id() uint64 {
	m.next++
	return m.next
}

// RegisterSound converts clip to the mixer layout and stores it.
func (m *Mixer) RegisterSound(clip *audio.Clip) (audcue.SoundHandle, error) {
	if clip == nil || clip.Frames() == 0 {
		return 0, audio.ErrEmptyClip
	}
	prepared, err := clip.Prepare(m.rate)
	if err != nil {
		return 0, err
	}
	if prepared.Frames() == 0 {
		return 0, audio.ErrEmptyClip
	}

	m.mtx.Lock()
	defer m.mtx.Unlock()

	if m.closed {
		return 0, ErrClosed
	}
	h := audcue.SoundHandle(m.id())
	m.sounds[h] = prepared
	return h, nil
}

func (m *Mixer) BuildOneShot(s audcue.SoundHandle) (audcue.UnitHandle, error) {
	return m.build(s, false)
}

func (m *Mixer) BuildLoop(s audcue.SoundHandle) (audcue.UnitHandle, error) {
	return m.build(s, true)
}

func (m *Mixer) build(s audcue.SoundHandle, loop bool) (audcue.UnitHandle, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if _, ok := m.sounds[s]; !ok {
		return 0, ErrUnknownSound
	}
	h := audcue.UnitHandle(m.id())
	m.units[h] = unit{sound: s, loop: loop}
	return h, nil
}

// Start adds a voice for u at full volume, centred, at normal speed.
func (m *Mixer) Start(u audcue.UnitHandle) (audcue.InstanceHandle, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if m.closed {
		return 0, ErrClosed
	}
	un, ok := m.units[u]
	if !ok {
		return 0, ErrUnknownUnit
	}

	h := audcue.InstanceHandle(m.id())
	m.voices[h] = &voice{
		clip:    m.sounds[un.sound],
		loop:    un.loop,
		volume:  1,
		panning: 0.5,
		rate:    1,
	}
	m.order = append(m.order, h)
	return h, nil
}

func (m *Mixer) Stop(i audcue.InstanceHandle) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if _, ok := m.voices[i]; !ok {
		return ErrUnknownInstance
	}
	delete(m.voices, i)
	m.order = slices.DeleteFunc(m.order, func(h audcue.InstanceHandle) bool { return h == i })
	return nil
}

func (m *Mixer) Pause(i audcue.InstanceHandle) error {
	return m.control(i, func(v *voice) { v.paused = true })
}

func (m *Mixer) Resume(i audcue.InstanceHandle) error {
	return m.control(i, func(v *voice) { v.paused = false })
}

// finite reports whether v is neither NaN nor infinite.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (m *Mixer) SetVolume(i audcue.InstanceHandle, val float64) error {
	if !finite(val) || val < 0 {
		return ErrInvalidValue
	}
	return m.control(i, func(v *voice) { v.volume = val })
}

func (m *Mixer) SetPanning(i audcue.InstanceHandle, val float64) error {
	if !finite(val) || val < 0 || val > 1 {
		return ErrInvalidValue
	}
	return m.control(i, func(v *voice) { v.panning = val })
}

func (m *Mixer) SetPlaybackRate(i audcue.InstanceHandle, val float64) error {
	if !finite(val) || val <= 0 {
		return ErrInvalidValue
	}
	return m.control(i, func(v *voice) { v.rate = val })
}

// control applies fn to a voice. Ended one-shots keep their handle, so
// settings applied to a whole channel never fail on them.
func (m *Mixer) control(i audcue.InstanceHandle, fn func(*voice)) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	v, ok := m.voices[i]
	if !ok {
		return ErrUnknownInstance
	}
	fn(v)
	return nil
}

// Voice returns a snapshot of instance i.
func (m *Mixer) Voice(i audcue.InstanceHandle) (Voice, bool) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	v, ok := m.voices[i]
	if !ok {
		return Voice{}, false
	}
	return Voice{
		Position: v.pos,
		Volume:   v.volume,
		Panning:  v.panning,
		Rate:     v.rate,
		Paused:   v.paused,
		Ended:    v.ended,
	}, true
}

// Active counts voices that are neither paused nor ended.
func (m *Mixer) Active() int {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	n := 0
	for _, v := range m.voices {
		if !v.paused && !v.ended {
			n++
		}
	}
	return n
}

func (m *Mixer) SampleRate() int { return m.rate }
func (m *Mixer) Channels() int   { return Channels }

// Close silences the mixer. Reads after Close return io.EOF.
func (m *Mixer) Close() error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.closed = true
	clear(m.voices)
	m.order = nil
	return nil
}

// ReadSamples mixes the next len(dst)/2 stereo frames. The mixer never runs
// dry: with no voices it produces silence.
func (m *Mixer) ReadSamples(dst []float32) (int, error) {
	dst = dst[:len(dst)-len(dst)%Channels]

	m.mtx.Lock()
	defer m.mtx.Unlock()

	if m.closed {
		return 0, io.EOF
	}

	clear(dst)
	for _, h := range m.order {
		m.voices[h].mix(dst)
	}
	for i, s := range dst {
		dst[i] = utils.ClampUnit(s)
	}
	return len(dst), nil
}

// Read implements io.Reader with signed 16-bit little-endian stereo PCM.
// Only whole frames are written; a non-empty p shorter than one frame gets
// io.ErrShortBuffer. Read reuses an internal buffer and must not be called
// concurrently with itself.
func (m *Mixer) Read(p []byte) (int, error) {
	samples := len(p) / 2
	samples -= samples % Channels
	if samples == 0 {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.ErrShortBuffer
	}

	if cap(m.scratch) < samples {
		m.scratch = make([]float32, samples)
	}
	buf := m.scratch[:samples]

	n, err := m.ReadSamples(buf)
	for i := range n {
		binary.LittleEndian.PutUint16(p[2*i:], uint16(utils.Float32ToInt16(buf[i])))
	}
	return n * 2, err
}

func (v *voice) mix(dst []float32) {
	if v.paused || v.ended {
		return
	}

	frames := float64(v.clip.Frames())
	left, right := gains(v.volume, v.panning)

	for f := 0; f < len(dst); f += Channels {
		i := int(v.pos)
		x := float32(v.pos - float64(i))
		next := i + 1
		if v.loop && float64(next) >= frames {
			next = 0
		}

		l := lerp(v.clip.Frame(i, 0), v.clip.Frame(next, 0), x)
		r := lerp(v.clip.Frame(i, 1), v.clip.Frame(next, 1), x)
		dst[f] += l * left
		dst[f+1] += r * right

		v.pos += v.rate
		if v.pos >= frames {
			if !v.loop {
				v.ended = true
				return
			}
			v.pos = math.Mod(v.pos, frames)
		}
	}
}

func gains(volume, panning float64) (float32, float32) {
	left := min(1, 2*(1-panning))
	right := min(1, 2*panning)
	return float32(volume * left), float32(volume * right)
}

func lerp(a, b, x float32) float32 {
	return a + (b-a)*x
}
