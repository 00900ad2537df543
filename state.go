// SPDX-License-Identifier: EPL-2.0

package audcue

// ChannelState is the mix applied to every instance on a channel.
type ChannelState struct {
	Volume       float64
	Panning      float64
	PlaybackRate float64
}

// DefaultChannelState is full volume, centred, normal speed.
func DefaultChannelState() ChannelState {
	return ChannelState{Volume: 1.0, Panning: 0.5, PlaybackRate: 1.0}
}

// stateTable caches channel mixes. Entries are created lazily and never
// removed.
type stateTable map[Channel]*ChannelState

func (t stateTable) get(ch Channel) (ChannelState, bool) {
	s, ok := t[ch]
	if !ok {
		return ChannelState{}, false
	}
	return *s, true
}

// effective returns the stored state or the defaults.
func (t stateTable) effective(ch Channel) ChannelState {
	if s, ok := t.get(ch); ok {
		return s
	}
	return DefaultChannelState()
}

func (t stateTable) upsert(ch Channel, mutate func(*ChannelState)) {
	s, ok := t[ch]
	if !ok {
		d := DefaultChannelState()
		s = &d
		t[ch] = s
	}
	mutate(s)
}
