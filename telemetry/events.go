// Package telemetry provides joint-health tracking, bookmarking, and pose snapshots.
package telemetry

import "github.com/pthm-cable/tacodoll/ragdoll"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventDragStart EventType = iota
	EventDragEnd
	EventSing
	EventSingRejected
	EventDanceKick
	EventRebuild
)

func (t EventType) String() string {
	switch t {
	case EventDragStart:
		return "drag_start"
	case EventDragEnd:
		return "drag_end"
	case EventSing:
		return "sing"
	case EventSingRejected:
		return "sing_rejected"
	case EventDanceKick:
		return "dance_kick"
	case EventRebuild:
		return "rebuild"
	}
	return "unknown"
}

// Event represents a single telemetry event.
type Event struct {
	Type  EventType
	Tick  int64
	Label ragdoll.Label // body involved, NumLabels if none

	// Optional fields depending on event type
	Song string // for sing events
}

// NewDragEvent creates a drag start or end event for the given body.
func NewDragEvent(tick int64, label ragdoll.Label, start bool) Event {
	t := EventDragEnd
	if start {
		t = EventDragStart
	}
	return Event{Type: t, Tick: tick, Label: label}
}

// NewSingEvent creates a sing event. Rejected marks a call made while a
// sequence was already running.
func NewSingEvent(tick int64, song string, rejected bool) Event {
	t := EventSing
	if rejected {
		t = EventSingRejected
	}
	return Event{Type: t, Tick: tick, Label: ragdoll.Head, Song: song}
}

// NewKickEvent creates a dance kick event for the limb that was pushed.
func NewKickEvent(tick int64, limb ragdoll.Label) Event {
	return Event{Type: EventDanceKick, Tick: tick, Label: limb}
}

// NewRebuildEvent creates a rebuild event.
func NewRebuildEvent(tick int64) Event {
	return Event{Type: EventRebuild, Tick: tick, Label: ragdoll.NumLabels}
}

// EventSink receives events as they happen.
type EventSink interface {
	RecordEvent(Event)
}
