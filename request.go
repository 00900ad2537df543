// SPDX-License-Identifier: EPL-2.0

package audcue

import "fmt"

// PlaybackRequest describes a distinct kind of playback. It is a comparable
// value and doubles as the playable-unit cache key, so two requests are the
// same playback iff they are equal.
type PlaybackRequest struct {
	Asset  AssetRef
	Looped bool
}

func (r PlaybackRequest) String() string {
	if r.Looped {
		return fmt.Sprintf("%s (looped)", r.Asset)
	}
	return r.Asset.String()
}
