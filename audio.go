// SPDX-License-Identifier: EPL-2.0

package audcue

// Audio is the producer-facing API. Every method only enqueues a command and
// returns immediately; effects happen on the next Output.Update.
type Audio struct {
	queue *Queue
}

func New() *Audio {
	return &Audio{queue: NewQueue()}
}

// Queue is what an Output drains.
func (a *Audio) Queue() *Queue { return a.queue }

// Play starts asset once on ch.
func (a *Audio) Play(ch Channel, asset AssetRef) {
	a.PlayRequest(ch, PlaybackRequest{Asset: asset})
}

// PlayLooped starts asset on ch and repeats it until stopped.
func (a *Audio) PlayLooped(ch Channel, asset AssetRef) {
	a.PlayRequest(ch, PlaybackRequest{Asset: asset, Looped: true})
}

func (a *Audio) PlayRequest(ch Channel, req PlaybackRequest) {
	a.queue.Enqueue(PlayCommand(req), ch)
}

// Stop stops every instance on ch.
func (a *Audio) Stop(ch Channel) { a.queue.Enqueue(StopCommand(), ch) }

func (a *Audio) Pause(ch Channel)  { a.queue.Enqueue(PauseCommand(), ch) }
func (a *Audio) Resume(ch Channel) { a.queue.Enqueue(ResumeCommand(), ch) }

// SetVolume sets the volume of ch, for playing and future instances.
func (a *Audio) SetVolume(ch Channel, v float64) {
	a.queue.Enqueue(SetVolumeCommand(v), ch)
}

// SetPanning sets the panning of ch; 0 is hard left, 0.5 centre, 1 hard right.
func (a *Audio) SetPanning(ch Channel, v float64) {
	a.queue.Enqueue(SetPanningCommand(v), ch)
}

func (a *Audio) SetPlaybackRate(ch Channel, v float64) {
	a.queue.Enqueue(SetPlaybackRateCommand(v), ch)
}
