// SPDX-License-Identifier: EPL-2.0

// Package assets loads audio files in the background and serves the decoded
// clips to an audcue.Output.
//
// A Server implements both audcue.Resolver and audcue.FailureReporter. Load
// returns an audcue.AssetRef immediately; the file is opened, decoded through
// an audio.Registry and prepared (stereo, engine sample rate) on its own
// goroutine. Until that finishes Resolve reports false, which makes the
// Output defer any Play of the asset to a later tick.
//
//	srv := assets.NewServer(
//		assets.WithRoot("sounds"),
//		assets.WithRegistry(formats.Default()),
//		assets.WithSampleRate(48000),
//	)
//	defer srv.Close()
//
//	jump := srv.Load("sfx/jump.wav")
//	a.Play(sfx, jump)
//
// Watch adds hot reload: files that failed to load, or did not exist yet,
// are loaded again once they appear or change on disk.
package assets
