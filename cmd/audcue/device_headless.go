// SPDX-License-Identifier: EPL-2.0

//go:build headless

package main

import (
	"errors"

	"github.com/ik5/audcue/mixer"
)

type device struct{}

func openDevice(*mixer.Mixer) (*device, error) {
	return nil, errors.New("built without audio device support; use -render")
}

func (*device) Close() error { return nil }
