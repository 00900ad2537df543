// SPDX-License-Identifier: EPL-2.0

package audcue

import (
	"fmt"

	"github.com/ik5/audcue/audio"
)

// unitCache registers each asset with the engine at most once and builds at
// most one playable unit per distinct PlaybackRequest.
type unitCache struct {
	sounds map[AssetRef]SoundHandle
	units  map[PlaybackRequest]UnitHandle
}

func newUnitCache() *unitCache {
	return &unitCache{
		sounds: make(map[AssetRef]SoundHandle),
		units:  make(map[PlaybackRequest]UnitHandle),
	}
}

func (c *unitCache) sound(e Engine, ref AssetRef, clip *audio.Clip) (SoundHandle, error) {
	if h, ok := c.sounds[ref]; ok {
		return h, nil
	}

	h, err := e.RegisterSound(clip)
	if err != nil {
		return 0, fmt.Errorf("register sound %s: %w", ref, err)
	}
	c.sounds[ref] = h
	return h, nil
}

// unit returns the cached unit for req, or builds one from s. cached reports
// whether the unit already existed.
func (c *unitCache) unit(e Engine, req PlaybackRequest, s SoundHandle) (u UnitHandle, cached bool, err error) {
	if h, ok := c.units[req]; ok {
		return h, true, nil
	}

	if req.Looped {
		u, err = e.BuildLoop(s)
	} else {
		u, err = e.BuildOneShot(s)
	}
	if err != nil {
		return 0, false, fmt.Errorf("build unit %s: %w", req, err)
	}
	c.units[req] = u
	return u, false, nil
}
