// SPDX-License-Identifier: EPL-2.0

package audcue

// Channel groups playback instances that are controlled together, such as
// "music" or "sfx".
type Channel string

// DefaultChannel is used by producers that do not care about grouping.
const DefaultChannel Channel = "default"

func (c Channel) String() string { return string(c) }
