// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files using github.com/hajimehoshi/go-mp3.
//
// # Supported Formats
//
// MPEG-1 and MPEG-2 Layer III at any bitrate, constant or variable.
//
// # Decoding
//
//	f, _ := os.Open("music/theme.mp3")
//	src, err := mp3.Decoder{}.Decode(f)
//	if err != nil {
//	    // the stream has no decodable frame header
//	}
//	clip, err := audio.ReadClip(src)
//
// # Output Format
//
// go-mp3 always produces 16-bit little-endian stereo, and mono files are
// upmixed by it, so Channels is always 2. The 16-bit values are converted to
// float32 with utils.Int16ToFloat32:
//
//	-32768 -> -1.0
//	 16384 ->  0.5
//
// The sample rate is the stream's own; use audio.Clip.Resample or Prepare to
// match an engine.
//
// # Errors
//
// Decode wraps go-mp3 errors with an "mp3 decode:" prefix. A corrupt frame in
// the middle of the stream surfaces from ReadSamples wrapped as "mp3 read:";
// the samples decoded up to that point are still returned.
package mp3
