// SPDX-License-Identifier: EPL-2.0

package audcue

import "fmt"

type CommandKind uint8

const (
	CommandPlay CommandKind = iota + 1
	CommandStop
	CommandPause
	CommandResume
	CommandSetVolume
	CommandSetPanning
	CommandSetPlaybackRate
)

func (k CommandKind) String() string {
	switch k {
	case CommandPlay:
		return "play"
	case CommandStop:
		return "stop"
	case CommandPause:
		return "pause"
	case CommandResume:
		return "resume"
	case CommandSetVolume:
		return "set_volume"
	case CommandSetPanning:
		return "set_panning"
	case CommandSetPlaybackRate:
		return "set_playback_rate"
	default:
		return fmt.Sprintf("CommandKind(%d)", uint8(k))
	}
}

// Command is an immutable playback instruction. Request is only meaningful
// for CommandPlay, Value only for the SetX kinds.
type Command struct {
	Kind    CommandKind
	Request PlaybackRequest
	Value   float64
}

func PlayCommand(req PlaybackRequest) Command {
	return Command{Kind: CommandPlay, Request: req}
}

func StopCommand() Command   { return Command{Kind: CommandStop} }
func PauseCommand() Command  { return Command{Kind: CommandPause} }
func ResumeCommand() Command { return Command{Kind: CommandResume} }

func SetVolumeCommand(v float64) Command {
	return Command{Kind: CommandSetVolume, Value: v}
}

func SetPanningCommand(v float64) Command {
	return Command{Kind: CommandSetPanning, Value: v}
}

func SetPlaybackRateCommand(v float64) Command {
	return Command{Kind: CommandSetPlaybackRate, Value: v}
}

func (c Command) String() string {
	switch c.Kind {
	case CommandPlay:
		return fmt.Sprintf("play %s", c.Request)
	case CommandSetVolume, CommandSetPanning, CommandSetPlaybackRate:
		return fmt.Sprintf("%s %g", c.Kind, c.Value)
	default:
		return c.Kind.String()
	}
}

// Entry is a command paired with the channel it targets.
type Entry struct {
	Command Command
	Channel Channel
}
