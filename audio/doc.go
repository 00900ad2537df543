// SPDX-License-Identifier: EPL-2.0

// Package audio holds the decoded-audio model shared by asset loaders and
// output engines.
//
// # Sources and Decoders
//
// A Source streams interleaved float32 samples in [-1.0, 1.0]. Every format
// decoder under formats/ returns one:
//
//	dec := wav.Decoder{}
//	src, err := dec.Decode(file)
//
// # Clips
//
// Assets are played many times, so they are decoded once into a Clip and kept
// in memory:
//
//	clip, err := audio.ReadClip(src)
//	clip, err = clip.Prepare(44100) // stereo, 44.1kHz
//
// Resample uses Catmull-Rom cubic interpolation (see utils.CubicInterpolate).
// Stereo duplicates mono input to both sides.
//
// # Format Registry
//
// The Registry maps file extensions to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, err := registry.Lookup("sfx/jump.wav")
//
// Lookup fails with ErrNoExtension or ErrUnsupportedFormat.
//
// # Error Handling
//
// Sources return io.EOF when no more data is available. ReadClip treats
// io.EOF as normal completion and wraps any other error.
package audio
