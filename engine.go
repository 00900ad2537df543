// SPDX-License-Identifier: EPL-2.0

package audcue

import "github.com/ik5/audcue/audio"

// Handles issued by an Engine are small comparable values, so caches and the
// instance registry can hold them as cheap aliases of the engine's objects.
type (
	SoundHandle    uint64
	UnitHandle     uint64
	InstanceHandle uint64
)

// Engine is the low-level audio collaborator: it owns decoded sounds, the
// playable units built from them, and the running instances.
//
// Output calls an Engine from a single goroutine at a time.
type Engine interface {
	// RegisterSound loads decoded data into the engine.
	RegisterSound(clip *audio.Clip) (SoundHandle, error)
	// BuildOneShot and BuildLoop wrap a sound into a startable unit.
	BuildOneShot(s SoundHandle) (UnitHandle, error)
	BuildLoop(s SoundHandle) (UnitHandle, error)
	// Start begins a new, independent instance of u.
	Start(u UnitHandle) (InstanceHandle, error)

	Stop(i InstanceHandle) error
	Pause(i InstanceHandle) error
	Resume(i InstanceHandle) error

	SetVolume(i InstanceHandle, v float64) error
	SetPanning(i InstanceHandle, v float64) error
	SetPlaybackRate(i InstanceHandle, v float64) error
}

// EngineFactory creates an Engine on first use. See NewLazyOutput.
type EngineFactory func() (Engine, error)
