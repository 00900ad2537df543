// SPDX-License-Identifier: EPL-2.0

// Command audcue plays audio files through the deferred command queue.
//
//	audcue [flags] file...
//
// Every file is queued as a Play on -channel before the first tick. With
// -render the mix is written to a WAV file instead of the sound device.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/ik5/audcue"
	"github.com/ik5/audcue/assets"
	"github.com/ik5/audcue/config"
	"github.com/ik5/audcue/formats"
	"github.com/ik5/audcue/mixer"
)

type options struct {
	config   string
	root     string
	rate     int
	channel  string
	loop     bool
	render   string
	duration time.Duration
	files    []string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("audcue", flag.ContinueOnError)
	fs.SetOutput(stderr)

	o := &options{}
	fs.StringVar(&o.config, "config", "", "YAML config `file`")
	fs.StringVar(&o.root, "root", "", "asset root directory (overrides config)")
	fs.IntVar(&o.rate, "rate", 0, "output sample rate in Hz (overrides config)")
	fs.StringVar(&o.channel, "channel", string(audcue.DefaultChannel), "channel to play on")
	fs.BoolVar(&o.loop, "loop", false, "loop every file until interrupted")
	fs.StringVar(&o.render, "render", "", "write the mix to this WAV `file` instead of the device")
	fs.DurationVar(&o.duration, "duration", 0, "stop after this long (required with -render)")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: audcue [flags] file...")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	o.files = fs.Args()

	if len(o.files) == 0 {
		fs.Usage()
		return nil, errors.New("no input files")
	}
	if o.render != "" && o.duration <= 0 {
		return nil, errors.New("-render needs a positive -duration")
	}
	return o, nil
}

func loadConfig(o *options) (*config.Config, error) {
	cfg := config.Default()
	if o.config != "" {
		var err error
		if cfg, err = config.Load(o.config); err != nil {
			return nil, err
		}
	}

	if o.root != "" {
		cfg.Assets.Root = o.root
	}
	if o.rate > 0 {
		cfg.SampleRate = o.rate
	}
	return cfg, cfg.Validate()
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	srv := assets.NewServer(
		assets.WithRoot(cfg.Assets.Root),
		assets.WithRegistry(formats.Default()),
		assets.WithSampleRate(cfg.SampleRate),
		assets.WithLogger(logger),
	)
	defer srv.Close()

	if cfg.Assets.Watch {
		w, err := srv.Watch()
		if err != nil {
			return fmt.Errorf("watch %s: %w", cfg.Assets.Root, err)
		}
		defer w.Close()
	}

	m, err := mixer.New(cfg.SampleRate)
	if err != nil {
		return err
	}
	defer m.Close()

	a := audcue.New()
	cfg.Apply(a)

	ch := audcue.Channel(o.channel)
	for _, f := range o.files {
		ref := srv.Load(f)
		if o.loop {
			a.PlayLooped(ch, ref)
		} else {
			a.Play(ch, ref)
		}
	}

	outOpts := []audcue.Option{
		audcue.WithLogger(logger),
		audcue.WithDropFailedAssets(cfg.DropFailedAssets),
	}

	if o.render != "" {
		out := audcue.NewOutput(m, srv, outOpts...)
		return render(o.render, out, a.Queue(), m, srv, cfg.Tick, o.duration, logger)
	}

	var dev *device
	out := audcue.NewLazyOutput(func() (audcue.Engine, error) {
		var err error
		dev, err = openDevice(m)
		if err != nil {
			return nil, err
		}
		return m, nil
	}, srv, outOpts...)
	defer func() {
		if dev != nil {
			dev.Close()
		}
	}()

	if o.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.duration)
		defer cancel()
	}

	logger.Info("playing", "files", len(o.files), "channel", ch, "rate", cfg.SampleRate, "tick", cfg.Tick)
	err = out.Run(ctx, a.Queue(), cfg.Tick, func(rep audcue.Report) {
		if rep.Drained > 0 {
			logger.Debug("tick", "report", rep.String())
		}
	})
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		logger.Info("stopped", "totals", out.Totals().String())
		return nil
	}
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "audcue:", err)
		os.Exit(1)
	}
}
