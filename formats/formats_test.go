// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"slices"
	"testing"

	"github.com/ik5/audcue/formats/mp3"
	"github.com/ik5/audcue/formats/wav"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	reg := Default()

	want := []string{"aif", "aiff", "mp3", "oga", "ogg", "wav", "wave"}
	if got := reg.Formats(); !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}

	tests := []struct {
		path string
		want any
	}{
		{"sfx/jump.WAV", wav.Decoder{}},
		{"music/theme.mp3", mp3.Decoder{}},
	}
	for _, tt := range tests {
		got, err := reg.Lookup(tt.path)
		if err != nil {
			t.Errorf("Lookup(%q) error = %v", tt.path, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Lookup(%q) = %T, want %T", tt.path, got, tt.want)
		}
	}
}
