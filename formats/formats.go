// SPDX-License-Identifier: EPL-2.0

// Package formats wires every bundled decoder into an audio.Registry.
package formats

import (
	"github.com/ik5/audcue/audio"
	"github.com/ik5/audcue/formats/aiff"
	"github.com/ik5/audcue/formats/mp3"
	"github.com/ik5/audcue/formats/vorbis"
	"github.com/ik5/audcue/formats/wav"
)

// Register adds the bundled decoders to reg under their common extensions.
func Register(reg *audio.Registry) {
	for _, ext := range []string{"wav", "wave"} {
		reg.Register(ext, wav.Decoder{})
	}
	for _, ext := range []string{"aiff", "aif"} {
		reg.Register(ext, aiff.Decoder{})
	}
	reg.Register("mp3", mp3.Decoder{})
	for _, ext := range []string{"ogg", "oga"} {
		reg.Register(ext, vorbis.Decoder{})
	}
}

// Default returns a registry with every bundled decoder.
func Default() *audio.Registry {
	reg := audio.NewRegistry()
	Register(reg)
	return reg
}
