// SPDX-License-Identifier: EPL-2.0

package audcue

import (
	"context"
	"time"
)

// Run calls Update on every tick of interval until ctx is done. fn, when not
// nil, receives each report. Run returns ctx.Err() on cancellation, or the
// engine initialization error of a lazy Output.
func (o *Output) Run(ctx context.Context, q *Queue, interval time.Duration, fn func(Report)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			rep, err := o.Update(q)
			if err != nil {
				return err
			}
			if fn != nil {
				fn(rep)
			}
		}
	}
}
