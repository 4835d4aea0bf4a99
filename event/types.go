package event

import "github.com/milk9111/platformer/locomotion"

const (
	EventStateChanged       = locomotion.TopicStateChanged
	EventDestinationReached = "platform.destination_reached"
	EventPlatformVanished   = "platform.vanished"
	EventPlatformRestored   = "platform.restored"
)

// StateChanged is published for every locomotion notification. Tick is the
// simulation step it happened on.
type StateChanged struct {
	Tick uint64
	From locomotion.State
	To   locomotion.State
}

type DestinationReached struct {
	Tick     uint64
	Platform uint64
	Name     string
}

type PlatformToggled struct {
	Tick     uint64
	Platform uint64
	Name     string
}

// LocomotionSink forwards state machine notifications to a Bus, tagged with
// the current tick.
type LocomotionSink struct {
	bus  *Bus
	tick func() uint64
}

func NewLocomotionSink(bus *Bus, tick func() uint64) *LocomotionSink {
	if tick == nil {
		tick = func() uint64 { return 0 }
	}
	return &LocomotionSink{bus: bus, tick: tick}
}

func (s *LocomotionSink) Notify(e locomotion.Event) {
	if s == nil || s.bus == nil {
		return
	}
	s.bus.Publish(e.Topic(), StateChanged{Tick: s.tick(), From: e.From, To: e.To})
}
