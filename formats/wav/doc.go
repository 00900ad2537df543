// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and writes RIFF/WAVE files.
//
// Both directions are built on github.com/go-audio/wav; this package adapts
// them to audio.Source and to the int16 buffers the mixer renders.
//
// # Decoding
//
// Decoder accepts integer PCM (format tag 1, or WAVE_FORMAT_EXTENSIBLE) at 8,
// 16, 24 and 32 bits, with any channel count and sample rate:
//
//	f, _ := os.Open("sfx/jump.wav")
//	src, err := wav.Decoder{}.Decode(f)
//	if err != nil {
//	    // ErrNotWavFile, ErrOnlyPCMSupported or ErrUnsupportedBitDepth
//	}
//	clip, err := audio.ReadClip(src)
//
// Chunk walking is left to go-audio, so LIST, fact and other chunks in front
// of the data chunk are skipped. 8-bit data is unsigned in WAV and is
// recentred around zero.
//
// Input that is not an io.ReadSeeker (a network body, a pipe) is read into
// memory first, because the header has to be walked before the samples.
//
// # Output Format
//
// Samples come out as float32 in [-1.0, 1.0], interleaved:
//
//	[L0, R0, L1, R1, ...]
//
// # Writing
//
// WriteWAV16 writes interleaved 16-bit PCM. The encoder patches the RIFF and
// data chunk sizes when it finishes, so the destination must be seekable
// (normally an *os.File):
//
//	out, _ := os.Create("render.wav")
//	defer out.Close()
//	err := wav.WriteWAV16(out, 48000, 2, samples)
//
// Data larger than a 32-bit RIFF size can describe is refused with
// ErrTooLarge rather than written with a wrapped size field.
//
// # Limitations
//
//   - IEEE float and compressed (ADPCM, A-law, mu-law) files are rejected.
//   - RF64 / BW64 files over 4 GiB are not supported.
package wav
