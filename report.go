// SPDX-License-Identifier: EPL-2.0

package audcue

import (
	"fmt"
	"strings"
)

// FailureKind classifies a failed engine operation.
type FailureKind uint8

const (
	FailRegister FailureKind = iota
	FailStart
	FailStop
	FailPause
	FailResume
	FailSetVolume
	FailSetPanning
	FailSetPlaybackRate
	FailAssetLoad

	numFailureKinds
)

func (k FailureKind) String() string {
	switch k {
	case FailRegister:
		return "register"
	case FailStart:
		return "start"
	case FailStop:
		return "stop"
	case FailPause:
		return "pause"
	case FailResume:
		return "resume"
	case FailSetVolume:
		return "set_volume"
	case FailSetPanning:
		return "set_panning"
	case FailSetPlaybackRate:
		return "set_playback_rate"
	case FailAssetLoad:
		return "asset_load"
	default:
		return fmt.Sprintf("FailureKind(%d)", uint8(k))
	}
}

// Report summarizes one reconciliation pass.
type Report struct {
	// Drained is the number of entries taken off the queue.
	Drained int
	// Deferred counts Play commands put back because their asset is not
	// ready.
	Deferred int
	// Started counts new instances; Reused is the subset started from a unit
	// that was already cached.
	Started int
	Reused  int
	// Stopped counts instances removed from the registry by Stop.
	Stopped int
	// Dropped counts Play commands abandoned because their asset failed to
	// load (only with WithDropFailedAssets).
	Dropped int

	Failures [numFailureKinds]int
}

// Failed is the total number of failures of all kinds.
func (r Report) Failed() int {
	n := 0
	for _, c := range r.Failures {
		n += c
	}
	return n
}

func (r *Report) fail(k FailureKind) {
	r.Failures[k]++
}

func (r *Report) add(o Report) {
	r.Drained += o.Drained
	r.Deferred += o.Deferred
	r.Started += o.Started
	r.Reused += o.Reused
	r.Stopped += o.Stopped
	r.Dropped += o.Dropped
	for k, c := range o.Failures {
		r.Failures[k] += c
	}
}

func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "drained=%d deferred=%d started=%d reused=%d stopped=%d dropped=%d",
		r.Drained, r.Deferred, r.Started, r.Reused, r.Stopped, r.Dropped)
	for k, c := range r.Failures {
		if c > 0 {
			fmt.Fprintf(&b, " fail.%s=%d", FailureKind(k), c)
		}
	}
	return b.String()
}
