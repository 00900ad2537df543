// SPDX-License-Identifier: EPL-2.0

//go:build !headless

package main

import (
	"github.com/ebitengine/oto/v3"
	"github.com/ik5/audcue/mixer"
)

// device plays a mixer on the default sound card.
type device struct {
	ctx    *oto.Context
	player *oto.Player
}

func openDevice(m *mixer.Mixer) (*device, error) {
	op := &oto.NewContextOptions{
		SampleRate:   m.SampleRate(),
		ChannelCount: mixer.Channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	d := &device{ctx: ctx, player: ctx.NewPlayer(m)}
	d.player.Play()
	return d, nil
}

func (d *device) Close() error {
	return d.player.Close()
}
