// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"sync"

	"github.com/ik5/audcue"
	"github.com/ik5/audcue/audio"
)

// Resolver is a scripted asset collaborator. Assets resolve once Load has
// been called for them.
type Resolver struct {
	mtx     sync.Mutex
	clips   map[audcue.AssetRef]*audio.Clip
	errs    map[audcue.AssetRef]error
	lookups map[audcue.AssetRef]int
}

func NewResolver() *Resolver {
	return &Resolver{
		clips:   make(map[audcue.AssetRef]*audio.Clip),
		errs:    make(map[audcue.AssetRef]error),
		lookups: make(map[audcue.AssetRef]int),
	}
}

func (r *Resolver) Load(ref audcue.AssetRef, clip *audio.Clip) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.clips[ref] = clip
	delete(r.errs, ref)
}

// Fail marks ref as permanently failed.
func (r *Resolver) Fail(ref audcue.AssetRef, err error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.errs[ref] = err
}

func (r *Resolver) Resolve(ref audcue.AssetRef) (*audio.Clip, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.lookups[ref]++
	clip, ok := r.clips[ref]
	return clip, ok
}

func (r *Resolver) Err(ref audcue.AssetRef) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	return r.errs[ref]
}

// Lookups counts Resolve calls for ref.
func (r *Resolver) Lookups(ref audcue.AssetRef) int {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	return r.lookups[ref]
}

// Clip returns a short stereo clip of silence.
func Clip() *audio.Clip {
	return &audio.Clip{Samples: make([]float32, 64), SampleRate: 44100, Channels: 2}
}
