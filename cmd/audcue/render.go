// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ik5/audcue"
	"github.com/ik5/audcue/formats/wav"
	"github.com/ik5/audcue/mixer"
	"github.com/ik5/audcue/utils"
)

type assetWaiter interface {
	Wait()
}

// render ticks out in simulated time and mixes tick-sized blocks until
// duration is covered, then writes a 16-bit stereo WAV. Pending loads are
// awaited first so the result does not depend on decode speed.
func render(path string, out *audcue.Output, q *audcue.Queue, m *mixer.Mixer, assets assetWaiter, tick, duration time.Duration, logger *slog.Logger) error {
	assets.Wait()

	rate := m.SampleRate()
	perTick := int(int64(rate) * int64(tick) / int64(time.Second))
	if perTick <= 0 {
		perTick = 1
	}
	total := int(int64(rate) * int64(duration) / int64(time.Second))

	buf := make([]float32, perTick*mixer.Channels)
	pcm := make([]int16, 0, total*mixer.Channels)

	for frames := 0; frames < total; frames += perTick {
		rep, err := out.Update(q)
		if err != nil {
			return err
		}
		if rep.Drained > 0 {
			logger.Debug("tick", "frame", frames, "report", rep.String())
		}

		n := min(perTick, total-frames) * mixer.Channels
		if _, err := m.ReadSamples(buf[:n]); err != nil {
			return fmt.Errorf("mix: %w", err)
		}
		for _, s := range buf[:n] {
			pcm = append(pcm, utils.Float32ToInt16(s))
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := wav.WriteWAV16(f, rate, mixer.Channels, pcm); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	logger.Info("rendered", "file", path, "frames", len(pcm)/mixer.Channels, "totals", out.Totals().String())
	return nil
}
