// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files using github.com/jfreymuth/oggvorbis.
//
// # Supported Formats
//
// Ogg Vorbis I streams (.ogg, .oga) of any channel count and sample rate,
// including variable-bitrate files.
//
// # Decoding
//
//	f, _ := os.Open("music/theme.ogg")
//	src, err := vorbis.Decoder{}.Decode(f)
//	if err != nil {
//	    // the stream is not Ogg or the Vorbis headers are missing
//	}
//	clip, err := audio.ReadClip(src)
//
// # Output Format
//
// oggvorbis already produces float32 samples, so they are passed through
// untouched, interleaved in Vorbis channel order:
//
//	[L0, R0, L1, R1, ...]
//
// ReadSamples only ever returns whole frames: a destination buffer whose
// length is not a multiple of the channel count is trimmed before reading.
//
// # Limitations
//
// Comment headers (title, artist) are not exposed.
package vorbis
