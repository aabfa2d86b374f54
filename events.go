// SPDX-License-Identifier: EPL-2.0

package syzgo

// EventType discriminates the payload carried by an Event, a public mirror
// of event.Type.
type EventType int

const (
	EventInvalid EventType = iota
	EventLooped
	EventFinished
)

func (t EventType) String() string {
	switch t {
	case EventLooped:
		return "looped"
	case EventFinished:
		return "finished"
	default:
		return "invalid"
	}
}

// Event is the payload delivered by Context.GetNextEvent.
type Event struct {
	Type    EventType
	Source  Handle
	Context Handle
}
