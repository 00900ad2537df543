// SPDX-License-Identifier: EPL-2.0

package audcue_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/ik5/audcue"
	"github.com/ik5/audcue/internal/audiotest"
)

var (
	music = audcue.Channel("music")
	sfx   = audcue.Channel("sfx")

	themeRef = audcue.NewAssetRef("music/theme.ogg")
	jumpRef  = audcue.NewAssetRef("sfx/jump.wav")
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	audio    *audcue.Audio
	engine   *audiotest.Engine
	resolver *audiotest.Resolver
	output   *audcue.Output
}

func newFixture(t *testing.T, opts ...audcue.Option) *fixture {
	t.Helper()

	f := &fixture{
		audio:    audcue.New(),
		engine:   audiotest.NewEngine(),
		resolver: audiotest.NewResolver(),
	}
	opts = append([]audcue.Option{audcue.WithLogger(quietLogger())}, opts...)
	f.output = audcue.NewOutput(f.engine, f.resolver, opts...)
	return f
}

func (f *fixture) update(t *testing.T) audcue.Report {
	t.Helper()

	rep, err := f.output.Update(f.audio.Queue())
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	return rep
}

func (f *fixture) instance(t *testing.T, h audcue.InstanceHandle) audiotest.Instance {
	t.Helper()

	inst, ok := f.engine.Instance(h)
	if !ok {
		t.Fatalf("engine has no instance %d", h)
	}
	return inst
}

func TestOutput_DeferredPlayResolvesOnLaterTick(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.audio.PlayLooped(music, themeRef)

	rep := f.update(t)
	if rep.Drained != 1 || rep.Deferred != 1 || rep.Started != 0 {
		t.Fatalf("first Update() = %v, want 1 drained, 1 deferred, 0 started", rep)
	}
	if f.audio.Queue().Len() != 1 {
		t.Fatalf("queue length after deferral = %d, want 1", f.audio.Queue().Len())
	}

	f.resolver.Load(themeRef, audiotest.Clip())

	rep = f.update(t)
	if rep.Drained != 1 || rep.Deferred != 0 || rep.Started != 1 {
		t.Fatalf("second Update() = %v, want 1 drained, 0 deferred, 1 started", rep)
	}

	if sounds, units := f.output.CacheSize(); sounds != 1 || units != 1 {
		t.Errorf("CacheSize() = %d, %d; want 1, 1", sounds, units)
	}

	insts := f.output.Instances(music)
	if len(insts) != 1 {
		t.Fatalf("Instances(music) = %v, want 1 instance", insts)
	}
	inst := f.instance(t, insts[0])
	if inst.Volume != 1.0 || inst.Panning != 0.5 || inst.PlaybackRate != 1.0 {
		t.Errorf("instance mix = %+v, want defaults 1.0/0.5/1.0", inst)
	}
	if unit, _ := f.engine.Unit(inst.Unit); !unit.Looped {
		t.Error("instance unit is not looped")
	}
	if f.audio.Queue().Len() != 0 {
		t.Errorf("queue length after resolve = %d, want 0", f.audio.Queue().Len())
	}
}

func TestOutput_IdenticalRequestsShareUnit(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.resolver.Load(jumpRef, audiotest.Clip())

	f.audio.Play(sfx, jumpRef)
	f.audio.Play(sfx, jumpRef)
	rep := f.update(t)

	if rep.Started != 2 || rep.Reused != 1 {
		t.Errorf("Update() = %v, want 2 started, 1 reused", rep)
	}
	if f.engine.Sounds() != 1 || f.engine.Units() != 1 {
		t.Errorf("engine has %d sounds, %d units; want 1, 1", f.engine.Sounds(), f.engine.Units())
	}

	insts := f.output.Instances(sfx)
	if len(insts) != 2 || insts[0] == insts[1] {
		t.Fatalf("Instances(sfx) = %v, want two distinct instances", insts)
	}
	a, b := f.instance(t, insts[0]), f.instance(t, insts[1])
	if a.Unit != b.Unit {
		t.Errorf("instances use units %d and %d, want the same unit", a.Unit, b.Unit)
	}

	// A later tick still reuses the cached unit.
	f.audio.Play(sfx, jumpRef)
	f.update(t)
	if f.engine.Sounds() != 1 || f.engine.Units() != 1 {
		t.Errorf("after third play engine has %d sounds, %d units; want 1, 1", f.engine.Sounds(), f.engine.Units())
	}
}

func TestOutput_LoopedFlagIsPartOfCacheKey(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.resolver.Load(themeRef, audiotest.Clip())

	f.audio.Play(music, themeRef)
	f.audio.PlayLooped(music, themeRef)
	f.update(t)

	if f.engine.Sounds() != 1 {
		t.Errorf("engine has %d sounds, want 1", f.engine.Sounds())
	}
	if f.engine.Units() != 2 {
		t.Errorf("engine has %d units, want 2", f.engine.Units())
	}
}

func TestOutput_ChannelVolumeRetroactiveAndInherited(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.resolver.Load(jumpRef, audiotest.Clip())

	f.audio.Play(sfx, jumpRef)
	f.update(t)

	f.audio.SetVolume(sfx, 0.3)
	f.audio.Play(sfx, jumpRef)
	f.update(t)

	insts := f.output.Instances(sfx)
	if len(insts) != 2 {
		t.Fatalf("Instances(sfx) = %v, want 2", insts)
	}
	for _, h := range insts {
		if got := f.instance(t, h).Volume; got != 0.3 {
			t.Errorf("instance %d volume = %v, want 0.3", h, got)
		}
	}

	state, ok := f.output.ChannelState(sfx)
	want := audcue.ChannelState{Volume: 0.3, Panning: 0.5, PlaybackRate: 1.0}
	if !ok || state != want {
		t.Errorf("ChannelState(sfx) = %+v, %v; want %+v, true", state, ok, want)
	}
}

func TestOutput_ChannelStateDoesNotLeak(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.resolver.Load(themeRef, audiotest.Clip())

	f.audio.SetPlaybackRate(sfx, 2.0)
	f.audio.Play(music, themeRef)
	f.update(t)

	inst := f.instance(t, f.output.Instances(music)[0])
	if inst.PlaybackRate != 1.0 {
		t.Errorf("music instance rate = %v, want 1.0", inst.PlaybackRate)
	}
	if _, ok := f.output.ChannelState(music); ok {
		t.Error("ChannelState(music) exists without a SetX command")
	}
}

func TestOutput_PanningSetInSameDrain(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.resolver.Load(jumpRef, audiotest.Clip())

	f.audio.SetPanning(sfx, 0.2)
	f.audio.Play(sfx, jumpRef)
	f.update(t)

	insts := f.output.Instances(sfx)
	if len(insts) != 1 {
		t.Fatalf("Instances(sfx) = %v, want 1", insts)
	}
	if got := f.instance(t, insts[0]).Panning; got != 0.2 {
		t.Errorf("panning = %v, want 0.2", got)
	}
}

func TestOutput_StopEmptiesChannel(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.resolver.Load(jumpRef, audiotest.Clip())

	f.audio.Play(sfx, jumpRef)
	f.audio.Play(sfx, jumpRef)
	f.update(t)
	started := f.output.Instances(sfx)

	f.audio.Stop(sfx)
	rep := f.update(t)
	if rep.Stopped != 2 {
		t.Errorf("Update() stopped %d, want 2", rep.Stopped)
	}
	if got := f.output.Instances(sfx); len(got) != 0 {
		t.Errorf("Instances(sfx) after stop = %v, want empty", got)
	}
	for _, h := range started {
		if !f.instance(t, h).Stopped {
			t.Errorf("instance %d not stopped", h)
		}
	}

	f.audio.Pause(sfx)
	f.audio.Resume(sfx)
	rep = f.update(t)
	if rep.Failed() != 0 || rep.Drained != 2 {
		t.Errorf("pause/resume on empty channel = %v, want 2 drained, no failures", rep)
	}
}

func TestOutput_PauseResume(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.resolver.Load(themeRef, audiotest.Clip())

	f.audio.PlayLooped(music, themeRef)
	f.audio.Pause(music)
	f.update(t)

	h := f.output.Instances(music)[0]
	if !f.instance(t, h).Paused {
		t.Fatal("instance not paused")
	}
	if len(f.output.Instances(music)) != 1 {
		t.Error("pause removed the instance from the registry")
	}

	f.audio.Resume(music)
	f.update(t)
	if f.instance(t, h).Paused {
		t.Error("instance still paused after resume")
	}
}

func TestOutput_NeverResolvingAssetRetriesForever(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	missing := audcue.NewAssetRef("missing.wav")
	f.audio.Play(sfx, missing)

	const ticks = 50
	for i := range ticks {
		rep := f.update(t)
		if rep.Drained != 1 || rep.Deferred != 1 {
			t.Fatalf("tick %d: Update() = %v, want 1 drained, 1 deferred", i, rep)
		}
		if f.audio.Queue().Len() != 1 {
			t.Fatalf("tick %d: queue length = %d, want 1", i, f.audio.Queue().Len())
		}
	}

	if got := f.resolver.Lookups(missing); got != ticks {
		t.Errorf("Resolve called %d times, want %d (once per tick)", got, ticks)
	}
	if sounds, units := f.output.CacheSize(); sounds != 0 || units != 0 {
		t.Errorf("CacheSize() = %d, %d; want 0, 0", sounds, units)
	}
	if len(f.output.Instances(sfx)) != 0 {
		t.Error("instances registered for an unresolved asset")
	}
}

func TestOutput_DeferredPlayIsOvertaken(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.audio.Play(sfx, jumpRef)
	f.audio.SetVolume(sfx, 0.1)

	rep := f.update(t)
	if rep.Deferred != 1 {
		t.Fatalf("Update() = %v, want the play deferred", rep)
	}
	if state, ok := f.output.ChannelState(sfx); !ok || state.Volume != 0.1 {
		t.Fatalf("ChannelState(sfx) = %+v, %v; want volume 0.1 applied ahead of the play", state, ok)
	}

	f.resolver.Load(jumpRef, audiotest.Clip())
	f.update(t)

	insts := f.output.Instances(sfx)
	if len(insts) != 1 {
		t.Fatalf("Instances(sfx) = %v, want 1", insts)
	}
	if got := f.instance(t, insts[0]).Volume; got != 0.1 {
		t.Errorf("late instance volume = %v, want 0.1", got)
	}
}

func TestOutput_EnqueueDuringUpdateWaitsForNextTick(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.resolver.Load(jumpRef, audiotest.Clip())
	q := f.audio.Queue()

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				f.audio.Play(sfx, jumpRef)
			}
		}()
	}

	total := 0
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

loop:
	for {
		select {
		case <-done:
			break loop
		default:
			total += f.update(t).Started
		}
	}
	total += f.update(t).Started

	if total != 400 {
		t.Errorf("started %d instances, want 400", total)
	}
	if q.Len() != 0 {
		t.Errorf("queue length = %d, want 0", q.Len())
	}
	if f.engine.Units() != 1 {
		t.Errorf("engine built %d units, want 1", f.engine.Units())
	}
}

func TestOutput_InstanceFailureIsIsolated(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.resolver.Load(jumpRef, audiotest.Clip())

	f.audio.Play(sfx, jumpRef)
	f.audio.Play(sfx, jumpRef)
	f.update(t)
	insts := f.output.Instances(sfx)

	broken := errors.New("device lost")
	f.engine.FailInstance(insts[0], broken)

	f.audio.SetVolume(sfx, 0.7)
	f.audio.Pause(sfx)
	rep := f.update(t)

	if rep.Failures[audcue.FailSetVolume] != 1 || rep.Failures[audcue.FailPause] != 1 {
		t.Errorf("Update() failures = %v, want one set_volume and one pause", rep)
	}
	healthy := f.instance(t, insts[1])
	if healthy.Volume != 0.7 || !healthy.Paused {
		t.Errorf("sibling instance = %+v, want volume 0.7 and paused", healthy)
	}
	if state, _ := f.output.ChannelState(sfx); state.Volume != 0.7 {
		t.Errorf("channel volume = %v, want 0.7 despite failure", state.Volume)
	}
}

func TestOutput_StartFailureAbandonsCommand(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.resolver.Load(jumpRef, audiotest.Clip())
	f.engine.FailOp(audiotest.OpStart, errors.New("no voices left"))

	f.audio.Play(sfx, jumpRef)
	f.audio.SetVolume(sfx, 0.5)
	rep := f.update(t)

	if rep.Failures[audcue.FailStart] != 1 || rep.Started != 0 {
		t.Errorf("Update() = %v, want one start failure", rep)
	}
	if f.audio.Queue().Len() != 0 {
		t.Error("failed play was re-queued")
	}
	if _, ok := f.output.ChannelState(sfx); !ok {
		t.Error("command after failed play was not processed")
	}

	// The unit was cached before start failed, so a retry reuses it.
	f.engine.FailOp(audiotest.OpStart, nil)
	f.audio.Play(sfx, jumpRef)
	rep = f.update(t)
	if rep.Started != 1 || rep.Reused != 1 || f.engine.Units() != 1 {
		t.Errorf("retry Update() = %v with %d units, want reuse of the cached unit", rep, f.engine.Units())
	}
}

func TestOutput_RegisterFailure(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.resolver.Load(jumpRef, audiotest.Clip())
	f.engine.FailOp(audiotest.OpRegister, errors.New("out of memory"))

	f.audio.Play(sfx, jumpRef)
	rep := f.update(t)

	if rep.Failures[audcue.FailRegister] != 1 {
		t.Errorf("Update() = %v, want one register failure", rep)
	}
	if sounds, units := f.output.CacheSize(); sounds != 0 || units != 0 {
		t.Errorf("CacheSize() = %d, %d; want nothing cached", sounds, units)
	}
}

func TestOutput_FailedAssetPolicy(t *testing.T) {
	t.Parallel()

	loadErr := errors.New("corrupt header")

	tests := []struct {
		name        string
		drop        bool
		wantQueued  int
		wantDropped int
	}{
		{"retry by default", false, 1, 0},
		{"drop when enabled", true, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, audcue.WithDropFailedAssets(tt.drop))
			f.resolver.Fail(jumpRef, loadErr)

			f.audio.Play(sfx, jumpRef)
			rep := f.update(t)

			if rep.Dropped != tt.wantDropped {
				t.Errorf("Dropped = %d, want %d", rep.Dropped, tt.wantDropped)
			}
			if got := f.audio.Queue().Len(); got != tt.wantQueued {
				t.Errorf("queue length = %d, want %d", got, tt.wantQueued)
			}
		})
	}
}

func TestOutput_Totals(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.audio.Play(sfx, jumpRef)
	f.update(t)
	f.resolver.Load(jumpRef, audiotest.Clip())
	f.update(t)

	totals := f.output.Totals()
	if totals.Drained != 2 || totals.Deferred != 1 || totals.Started != 1 {
		t.Errorf("Totals() = %v, want 2 drained, 1 deferred, 1 started", totals)
	}
}

func TestOutput_NoEngine(t *testing.T) {
	t.Parallel()

	out := audcue.NewOutput(nil, audiotest.NewResolver(), audcue.WithLogger(quietLogger()))
	q := audcue.NewQueue()
	q.Enqueue(audcue.StopCommand(), sfx)

	if _, err := out.Update(q); !errors.Is(err, audcue.ErrNoEngine) {
		t.Errorf("Update() error = %v, want ErrNoEngine", err)
	}
	if q.Len() != 1 {
		t.Error("Update() without engine drained the queue")
	}
}

func TestLazyOutput_InitOnce(t *testing.T) {
	t.Parallel()

	calls := 0
	engine := audiotest.NewEngine()
	out := audcue.NewLazyOutput(func() (audcue.Engine, error) {
		calls++
		return engine, nil
	}, audiotest.NewResolver(), audcue.WithLogger(quietLogger()))

	q := audcue.NewQueue()
	for range 3 {
		if _, err := out.Update(q); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("factory called %d times, want 1", calls)
	}
}

func TestLazyOutput_InitFailureIsSticky(t *testing.T) {
	t.Parallel()

	calls := 0
	boom := errors.New("no audio device")
	out := audcue.NewLazyOutput(func() (audcue.Engine, error) {
		calls++
		return nil, boom
	}, audiotest.NewResolver(), audcue.WithLogger(quietLogger()))

	q := audcue.NewQueue()
	q.Enqueue(audcue.PauseCommand(), music)

	for range 2 {
		_, err := out.Update(q)
		if !errors.Is(err, audcue.ErrEngineInit) || !errors.Is(err, boom) {
			t.Fatalf("Update() error = %v, want ErrEngineInit wrapping boom", err)
		}
	}
	if calls != 1 {
		t.Errorf("factory called %d times, want 1", calls)
	}
	if q.Len() != 1 {
		t.Error("failed init drained the queue")
	}
}

func TestOutput_RunUntilCancelled(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.resolver.Load(jumpRef, audiotest.Clip())
	f.audio.Play(sfx, jumpRef)

	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})
	var once sync.Once

	errc := make(chan error, 1)
	go func() {
		errc <- f.output.Run(ctx, f.audio.Queue(), time.Millisecond, func(rep audcue.Report) {
			if rep.Started > 0 {
				once.Do(func() { close(started) })
			}
		})
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("Run() never started the queued play")
	}
	cancel()

	if err := <-errc; !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestReport_String(t *testing.T) {
	t.Parallel()

	rep := audcue.Report{Drained: 3, Started: 1}
	rep.Failures[audcue.FailPause] = 2

	want := "drained=3 deferred=0 started=1 reused=0 stopped=0 dropped=0 fail.pause=2"
	if got := rep.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if rep.Failed() != 2 {
		t.Errorf("Failed() = %d, want 2", rep.Failed())
	}
}
