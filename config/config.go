// SPDX-License-Identifier: EPL-2.0

// Package config loads the YAML settings of the audcue player.
//
//	sample_rate: 48000
//	tick: 16ms
//	log_level: info
//	drop_failed_assets: false
//	assets:
//	  root: sounds
//	  watch: true
//	channels:
//	  music:
//	    volume: 0.6
//	  ui:
//	    panning: 0.5
//	    playback_rate: 1.0
//
// Channel presets are applied as ordinary commands, so they take effect on
// the first tick like any other producer request.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"math"
	"os"
	"slices"
	"time"

	"github.com/ik5/audcue"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

const (
	DefaultSampleRate = 48000
	DefaultTick       = 16 * time.Millisecond
)

type Config struct {
	SampleRate       int                      `yaml:"sample_rate"`
	Tick             time.Duration            `yaml:"tick"`
	LogLevel         string                   `yaml:"log_level"`
	DropFailedAssets bool                     `yaml:"drop_failed_assets"`
	Assets           Assets                   `yaml:"assets"`
	Channels         map[string]ChannelPreset `yaml:"channels"`
}

type Assets struct {
	Root  string `yaml:"root"`
	Watch bool   `yaml:"watch"`
}

// ChannelPreset holds initial settings for one channel. Nil fields keep the
// channel default.
type ChannelPreset struct {
	Volume       *float64 `yaml:"volume"`
	Panning      *float64 `yaml:"panning"`
	PlaybackRate *float64 `yaml:"playback_rate"`
}

func Default() *Config {
	return &Config{
		SampleRate: DefaultSampleRate,
		Tick:       DefaultTick,
		LogLevel:   "info",
		Assets:     Assets{Root: "."},
	}
}

func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", filename, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", filename, err)
	}
	return cfg, nil
}

// Parse decodes data over Default and validates the result. Unknown keys are
// rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample_rate %d", ErrInvalid, c.SampleRate)
	}
	if c.Tick <= 0 {
		return fmt.Errorf("%w: tick %v", ErrInvalid, c.Tick)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}

	for _, name := range c.channelNames() {
		p := c.Channels[name]
		for _, f := range []struct {
			key string
			v   *float64
		}{{"volume", p.Volume}, {"panning", p.Panning}, {"playback_rate", p.PlaybackRate}} {
			if f.v != nil && (math.IsNaN(*f.v) || math.IsInf(*f.v, 0)) {
				return fmt.Errorf("%w: channel %q %s %v", ErrInvalid, name, f.key, *f.v)
			}
		}
		if p.Volume != nil && *p.Volume < 0 {
			return fmt.Errorf("%w: channel %q volume %v", ErrInvalid, name, *p.Volume)
		}
		if p.Panning != nil && (*p.Panning < 0 || *p.Panning > 1) {
			return fmt.Errorf("%w: channel %q panning %v", ErrInvalid, name, *p.Panning)
		}
		if p.PlaybackRate != nil && *p.PlaybackRate <= 0 {
			return fmt.Errorf("%w: channel %q playback_rate %v", ErrInvalid, name, *p.PlaybackRate)
		}
	}
	return nil
}

// Level parses LogLevel ("debug", "info", "warn", "error").
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	err := l.UnmarshalText([]byte(c.LogLevel))
	return l, err
}

// Apply enqueues the channel presets on a, in channel name order.
func (c *Config) Apply(a *audcue.Audio) {
	for _, name := range c.channelNames() {
		ch := audcue.Channel(name)
		p := c.Channels[name]

		if p.Volume != nil {
			a.SetVolume(ch, *p.Volume)
		}
		if p.Panning != nil {
			a.SetPanning(ch, *p.Panning)
		}
		if p.PlaybackRate != nil {
			a.SetPlaybackRate(ch, *p.PlaybackRate)
		}
	}
}

func (c *Config) channelNames() []string {
	return slices.Sorted(maps.Keys(c.Channels))
}
