// SPDX-License-Identifier: EPL-2.0

package audcue

// instanceRegistry tracks the instances started on each channel. Stopping a
// channel empties its list; the key stays.
type instanceRegistry map[Channel][]InstanceHandle

func (r instanceRegistry) add(ch Channel, i InstanceHandle) {
	r[ch] = append(r[ch], i)
}

func (r instanceRegistry) list(ch Channel) []InstanceHandle {
	return r[ch]
}

// take removes and returns every instance on ch.
func (r instanceRegistry) take(ch Channel) []InstanceHandle {
	out, ok := r[ch]
	if !ok {
		return nil
	}
	r[ch] = out[:0:0]
	return out
}
