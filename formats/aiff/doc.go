// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes Audio Interchange File Format files using
// github.com/go-audio/aiff.
//
// # Supported Formats
//
// Signed big-endian integer PCM at 8, 16, 24 and 32 bits, any channel count,
// any sample rate. The usual extensions are .aiff and .aif; formats.Default
// registers both.
//
// # Decoding
//
//	f, _ := os.Open("sfx/bell.aiff")
//	src, err := aiff.Decoder{}.Decode(f)
//	if err != nil {
//	    // ErrNotAiffFile, ErrUnsupportedBitDepth, ErrUnsupportedAiffLayout
//	}
//	clip, err := audio.ReadClip(src)
//
// The COMM chunk has to be read before the sound data, so input that is not
// seekable is buffered in memory first.
//
// # Output Format
//
// Samples are normalized to float32 in [-1.0, 1.0] and interleaved in file
// channel order. Use audio.Clip.Prepare to reach an engine's layout:
//
//	clip, err = clip.Prepare(48000) // stereo, 48 kHz
//
// # Limitations
//
// Markers, loops and instrument chunks are ignored; looping is decided by the
// play request, not the file.
package aiff
