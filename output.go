// SPDX-License-Identifier: EPL-2.0

package audcue

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// Output is the reconciliation engine. It owns the engine collaborator and
// all playback state; nothing else mutates that state.
//
// Update calls are serialized, so an Output may be ticked from any goroutine,
// but never runs two passes at once.
type Output struct {
	mtx sync.Mutex

	engine   Engine
	factory  EngineFactory
	initErr  error
	resolver Resolver

	logger     *slog.Logger
	dropFailed bool

	cache     *unitCache
	instances instanceRegistry
	channels  stateTable
	totals    Report
}

// Option configures an Output.
type Option func(*Output)

// WithLogger sets the logger for failures and deferrals. Default is
// slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *Output) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithDropFailedAssets makes Update abandon a Play whose asset reports a
// permanent load error (see FailureReporter) instead of retrying it forever.
func WithDropFailedAssets(drop bool) Option {
	return func(o *Output) {
		o.dropFailed = drop
	}
}

func NewOutput(engine Engine, resolver Resolver, opts ...Option) *Output {
	o := newOutput(resolver, opts)
	o.engine = engine
	return o
}

// NewLazyOutput defers engine creation to the first Update. A factory error
// is fatal: it is returned, wrapped in ErrEngineInit, from that Update and
// every later one, and the queue is left untouched.
func NewLazyOutput(factory EngineFactory, resolver Resolver, opts ...Option) *Output {
	o := newOutput(resolver, opts)
	o.factory = factory
	return o
}

func newOutput(resolver Resolver, opts []Option) *Output {
	o := &Output{
		resolver:  resolver,
		logger:    slog.Default(),
		cache:     newUnitCache(),
		instances: make(instanceRegistry),
		channels:  make(stateTable),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Output) ensureEngine() error {
	if o.engine != nil {
		return nil
	}
	if o.initErr != nil {
		return o.initErr
	}
	if o.factory == nil {
		return ErrNoEngine
	}

	e, err := o.factory()
	if err == nil && e == nil {
		err = ErrNoEngine
	}
	if err != nil {
		o.initErr = fmt.Errorf("%w: %w", ErrEngineInit, err)
		return o.initErr
	}
	o.engine = e
	return nil
}

// Update runs one reconciliation pass over q. Only the entries present when
// the pass starts are processed; Play commands whose asset is not ready are
// pushed back and seen again on the next Update.
func (o *Output) Update(q *Queue) (Report, error) {
	o.mtx.Lock()
	defer o.mtx.Unlock()

	if err := o.ensureEngine(); err != nil {
		return Report{}, err
	}

	entries := q.Drain()
	rep := Report{Drained: len(entries)}

	for _, e := range entries {
		switch e.Command.Kind {
		case CommandPlay:
			if o.play(e, &rep) {
				q.Push(e)
				rep.Deferred++
			}
		case CommandStop:
			o.stop(e.Channel, &rep)
		case CommandPause:
			o.each(e.Channel, FailPause, 0, func(i InstanceHandle) error { return o.engine.Pause(i) }, &rep)
		case CommandResume:
			o.each(e.Channel, FailResume, 0, func(i InstanceHandle) error { return o.engine.Resume(i) }, &rep)
		case CommandSetVolume:
			v := e.Command.Value
			o.each(e.Channel, FailSetVolume, v, func(i InstanceHandle) error { return o.engine.SetVolume(i, v) }, &rep)
			o.channels.upsert(e.Channel, func(s *ChannelState) { s.Volume = v })
		case CommandSetPanning:
			v := e.Command.Value
			o.each(e.Channel, FailSetPanning, v, func(i InstanceHandle) error { return o.engine.SetPanning(i, v) }, &rep)
			o.channels.upsert(e.Channel, func(s *ChannelState) { s.Panning = v })
		case CommandSetPlaybackRate:
			v := e.Command.Value
			o.each(e.Channel, FailSetPlaybackRate, v, func(i InstanceHandle) error { return o.engine.SetPlaybackRate(i, v) }, &rep)
			o.channels.upsert(e.Channel, func(s *ChannelState) { s.PlaybackRate = v })
		default:
			o.logger.Warn("audio: unknown command dropped", "kind", e.Command.Kind, "channel", e.Channel)
		}
	}

	o.totals.add(rep)
	return rep, nil
}

// play handles one Play entry and reports whether it must be re-queued.
func (o *Output) play(e Entry, rep *Report) bool {
	req := e.Command.Request

	clip, ok := o.resolver.Resolve(req.Asset)
	if !ok {
		if o.dropFailed {
			if fr, ok := o.resolver.(FailureReporter); ok {
				if err := fr.Err(req.Asset); err != nil {
					o.logger.Warn("audio: dropping play for failed asset",
						"asset", req.Asset, "channel", e.Channel, "err", err)
					rep.fail(FailAssetLoad)
					rep.Dropped++
					return false
				}
			}
		}
		o.logger.Debug("audio: asset not ready, deferring play", "asset", req.Asset, "channel", e.Channel)
		return true
	}

	sound, err := o.cache.sound(o.engine, req.Asset, clip)
	if err != nil {
		o.logger.Warn("audio: play abandoned", "op", "register", "channel", e.Channel, "err", err)
		rep.fail(FailRegister)
		return false
	}

	unit, cached, err := o.cache.unit(o.engine, req, sound)
	if err != nil {
		o.logger.Warn("audio: play abandoned", "op", "build", "channel", e.Channel, "err", err)
		rep.fail(FailRegister)
		return false
	}

	if o.start(unit, e.Channel, rep) && cached {
		rep.Reused++
	}
	return false
}

// start begins an instance of unit, seeds it with the channel's current mix
// and registers it under ch.
func (o *Output) start(unit UnitHandle, ch Channel, rep *Report) bool {
	inst, err := o.engine.Start(unit)
	if err != nil {
		o.logger.Warn("audio: play abandoned", "op", "start", "channel", ch, "unit", unit, "err", err)
		rep.fail(FailStart)
		return false
	}

	state := o.channels.effective(ch)
	if err := o.engine.SetVolume(inst, state.Volume); err != nil {
		o.instanceFailed(FailSetVolume, ch, inst, state.Volume, err, rep)
	}
	if err := o.engine.SetPlaybackRate(inst, state.PlaybackRate); err != nil {
		o.instanceFailed(FailSetPlaybackRate, ch, inst, state.PlaybackRate, err, rep)
	}
	if err := o.engine.SetPanning(inst, state.Panning); err != nil {
		o.instanceFailed(FailSetPanning, ch, inst, state.Panning, err, rep)
	}

	o.instances.add(ch, inst)
	rep.Started++
	return true
}

func (o *Output) stop(ch Channel, rep *Report) {
	for _, inst := range o.instances.take(ch) {
		if err := o.engine.Stop(inst); err != nil {
			o.instanceFailed(FailStop, ch, inst, 0, err, rep)
		}
		rep.Stopped++
	}
}

// each applies fn to every instance on ch. A failing instance is logged and
// skipped.
func (o *Output) each(ch Channel, kind FailureKind, value float64, fn func(InstanceHandle) error, rep *Report) {
	for _, inst := range o.instances.list(ch) {
		if err := fn(inst); err != nil {
			o.instanceFailed(kind, ch, inst, value, err, rep)
		}
	}
}

func (o *Output) instanceFailed(kind FailureKind, ch Channel, inst InstanceHandle, value float64, err error, rep *Report) {
	o.logger.Warn("audio: instance operation failed",
		"op", kind.String(), "channel", ch, "instance", inst, "value", value, "err", err)
	rep.fail(kind)
}

// ChannelState returns the stored mix of ch. ok is false until a SetX
// command has been processed for the channel.
func (o *Output) ChannelState(ch Channel) (state ChannelState, ok bool) {
	o.mtx.Lock()
	defer o.mtx.Unlock()

	return o.channels.get(ch)
}

// Instances returns a copy of the instances registered on ch.
func (o *Output) Instances(ch Channel) []InstanceHandle {
	o.mtx.Lock()
	defer o.mtx.Unlock()

	return slices.Clone(o.instances.list(ch))
}

// CacheSize reports how many sounds and playable units have been created.
func (o *Output) CacheSize() (sounds, units int) {
	o.mtx.Lock()
	defer o.mtx.Unlock()

	return len(o.cache.sounds), len(o.cache.units)
}

// Totals accumulates the reports of every Update so far.
func (o *Output) Totals() Report {
	o.mtx.Lock()
	defer o.mtx.Unlock()

	return o.totals
}
