// SPDX-License-Identifier: EPL-2.0

// Package audcue is a deferred command layer for audio playback.
//
// Application code never talks to the audio engine directly. It enqueues
// commands (play, stop, pause, resume, volume, panning, playback rate) tagged
// with a logical Channel, and once per tick an Output drains the queue and
// reconciles those commands against asset-loading state and per-channel
// mixing state.
//
// # Producers
//
// Audio is the producer facade. All of its methods are fire-and-forget and
// safe to call from any goroutine:
//
//	a := audcue.New()
//	music := audcue.Channel("music")
//	a.PlayLooped(music, audcue.NewAssetRef("music/theme.ogg"))
//	a.SetVolume(music, 0.6)
//
// # Reconciliation
//
// Output owns the engine collaborator, the playable-unit cache, the
// active-instance registry and the channel state table. Call Update once per
// tick, or let Run drive it from a ticker:
//
//	out := audcue.NewOutput(engine, assets)
//	report, err := out.Update(a.Queue())
//
// A Play whose asset has not resolved yet is put back on the queue and retried
// on the next Update. Identical requests (same asset, same looped flag) share
// one registered sound and one playable unit, but every Play starts a new
// instance. Channel parameters set with SetVolume, SetPanning and
// SetPlaybackRate apply to the instances already playing on the channel and
// to every instance started on it later.
//
// # Collaborators
//
// The Engine and Resolver interfaces keep the reconciler independent of any
// audio backend. Package mixer provides a software Engine that can feed a
// sound device, and package assets a Resolver that decodes files in the
// background with the decoders in package formats.
//
// # Errors
//
// Engine failures during reconciliation are logged through log/slog and
// counted in the Report returned by Update; they never reach producers and are
// never retried. Update only returns an error when the engine itself could
// not be created.
package audcue
