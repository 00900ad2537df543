// SPDX-License-Identifier: EPL-2.0

package mixer_test

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ik5/audcue"
	"github.com/ik5/audcue/audio"
	"github.com/ik5/audcue/mixer"
)

// The mixer plugs into an Output as its engine; the same value is then read
// by the audio device.
func Example() {
	m, err := mixer.New(8000)
	if err != nil {
		panic(err)
	}

	beep := audcue.NewAssetRef("beep")
	clip, _ := audio.NewClip([]float32{0.5, 0.5, 0.5, 0.5}, 8000, 1)
	resolver := audcue.ResolverFunc(func(ref audcue.AssetRef) (*audio.Clip, bool) {
		return clip, ref == beep
	})

	a := audcue.New()
	out := audcue.NewOutput(m, resolver,
		audcue.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	a.Play("sfx", beep)
	a.SetPanning("sfx", 0)
	if _, err := out.Update(a.Queue()); err != nil {
		panic(err)
	}

	frame := make([]float32, 2)
	m.ReadSamples(frame)
	fmt.Printf("active=%d left=%.2f right=%.2f\n", m.Active(), frame[0], frame[1])
	// Output: active=1 left=0.50 right=0.00
}
