// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"sync"

	"github.com/ik5/audcue"
	"github.com/ik5/audcue/audio"
)

// Op names an engine operation for failure injection.
type Op int

const (
	OpRegister Op = iota
	OpBuild
	OpStart
	OpStop
	OpPause
	OpResume
	OpSetVolume
	OpSetPanning
	OpSetPlaybackRate
)

var ErrUnknownHandle = errors.New("audiotest: unknown handle")

type Unit struct {
	Sound  audcue.SoundHandle
	Looped bool
}

// Instance is the observable state of a started instance.
type Instance struct {
	Unit         audcue.UnitHandle
	Volume       float64
	Panning      float64
	PlaybackRate float64
	Paused       bool
	Stopped      bool
}

// Engine is an in-memory audcue.Engine that records every call.
type Engine struct {
	mtx sync.Mutex

	next      uint64
	sounds    map[audcue.SoundHandle]*audio.Clip
	units     map[audcue.UnitHandle]Unit
	instances map[audcue.InstanceHandle]*Instance
	order     []audcue.InstanceHandle

	opErrs   map[Op]error
	instErrs map[audcue.InstanceHandle]error
}

func NewEngine() *Engine {
	return &Engine{
		sounds:    make(map[audcue.SoundHandle]*audio.Clip),
		units:     make(map[audcue.UnitHandle]Unit),
		instances: make(map[audcue.InstanceHandle]*Instance),
		opErrs:    make(map[Op]error),
		instErrs:  make(map[audcue.InstanceHandle]error),
	}
}

// FailOp makes every call of op fail with err. A nil err clears it.
func (e *Engine) FailOp(op Op, err error) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if err == nil {
		delete(e.opErrs, op)
		return
	}
	e.opErrs[op] = err
}

// FailInstance makes every control call on i fail with err.
func (e *Engine) FailInstance(i audcue.InstanceHandle, err error) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	e.instErrs[i] = err
}

func (e *Engine) id() uint64 {
	e.next++
	return e.next
}

func (e *Engine) RegisterSound(clip *audio.Clip) (audcue.SoundHandle, error) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if err := e.opErrs[OpRegister]; err != nil {
		return 0, err
	}
	h := audcue.SoundHandle(e.id())
	e.sounds[h] = clip
	return h, nil
}

func (e *Engine) BuildOneShot(s audcue.SoundHandle) (audcue.UnitHandle, error) {
	return e.build(s, false)
}

func (e *Engine) BuildLoop(s audcue.SoundHandle) (audcue.UnitHandle, error) {
	return e.build(s, true)
}

func (e *Engine) build(s audcue.SoundHandle, looped bool) (audcue.UnitHandle, error) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if err := e.opErrs[OpBuild]; err != nil {
		return 0, err
	}
	if _, ok := e.sounds[s]; !ok {
		return 0, ErrUnknownHandle
	}
	h := audcue.UnitHandle(e.id())
	e.units[h] = Unit{Sound: s, Looped: looped}
	return h, nil
}

func (e *Engine) Start(u audcue.UnitHandle) (audcue.InstanceHandle, error) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if err := e.opErrs[OpStart]; err != nil {
		return 0, err
	}
	if _, ok := e.units[u]; !ok {
		return 0, ErrUnknownHandle
	}
	h := audcue.InstanceHandle(e.id())
	e.instances[h] = &Instance{Unit: u, Volume: 1, Panning: 0.5, PlaybackRate: 1}
	e.order = append(e.order, h)
	return h, nil
}

func (e *Engine) control(op Op, i audcue.InstanceHandle, fn func(*Instance)) error {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if err := e.opErrs[op]; err != nil {
		return err
	}
	if err := e.instErrs[i]; err != nil {
		return err
	}
	inst, ok := e.instances[i]
	if !ok {
		return ErrUnknownHandle
	}
	fn(inst)
	return nil
}

func (e *Engine) Stop(i audcue.InstanceHandle) error {
	return e.control(OpStop, i, func(in *Instance) { in.Stopped = true })
}

func (e *Engine) Pause(i audcue.InstanceHandle) error {
	return e.control(OpPause, i, func(in *Instance) { in.Paused = true })
}

func (e *Engine) Resume(i audcue.InstanceHandle) error {
	return e.control(OpResume, i, func(in *Instance) { in.Paused = false })
}

func (e *Engine) SetVolume(i audcue.InstanceHandle, v float64) error {
	return e.control(OpSetVolume, i, func(in *Instance) { in.Volume = v })
}

func (e *Engine) SetPanning(i audcue.InstanceHandle, v float64) error {
	return e.control(OpSetPanning, i, func(in *Instance) { in.Panning = v })
}

func (e *Engine) SetPlaybackRate(i audcue.InstanceHandle, v float64) error {
	return e.control(OpSetPlaybackRate, i, func(in *Instance) { in.PlaybackRate = v })
}

// Sounds is the number of RegisterSound calls that succeeded.
func (e *Engine) Sounds() int {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	return len(e.sounds)
}

// Units is the number of playable units built.
func (e *Engine) Units() int {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	return len(e.units)
}

// Unit returns the unit behind h.
func (e *Engine) Unit(h audcue.UnitHandle) (Unit, bool) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	u, ok := e.units[h]
	return u, ok
}

// Instance returns a snapshot of instance i.
func (e *Engine) Instance(i audcue.InstanceHandle) (Instance, bool) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	inst, ok := e.instances[i]
	if !ok {
		return Instance{}, false
	}
	return *inst, true
}

// Started lists every instance in start order.
func (e *Engine) Started() []audcue.InstanceHandle {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	return append([]audcue.InstanceHandle(nil), e.order...)
}
