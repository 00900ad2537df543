// SPDX-License-Identifier: EPL-2.0

// Package mixer is a software audcue.Engine.
//
// Sounds are kept in memory as stereo clips at the mixer's sample rate. Every
// started instance becomes a voice with its own position, volume, panning and
// playback rate; ReadSamples sums the live voices into an interleaved stereo
// buffer. The Mixer is also an io.Reader producing signed 16-bit
// little-endian PCM, which is what an oto.Player consumes.
//
// Panning uses a linear law with unity gain at the centre: at 0.5 both sides
// play at full volume, at 0 only the left side plays.
//
// The Output goroutine and the audio device goroutine may call a Mixer
// concurrently.
package mixer
