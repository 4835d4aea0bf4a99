package locomotion

// EventKind distinguishes the two notifications a transition produces.
type EventKind uint8

const (
	// EventStateChanged fires first on every transition.
	EventStateChanged EventKind = iota
	// EventEntered fires second, once, for the state just entered.
	EventEntered
)

// Event is a notification emitted by StateMachine.Advance.
type Event struct {
	Kind EventKind
	From State
	To   State
}

const (
	TopicStateChanged = "locomotion.state_changed"
	topicEnteredBase  = "locomotion.entered."
)

// Topic returns the bus topic for the event, e.g. "locomotion.entered.falling".
func (e Event) Topic() string {
	if e.Kind == EventStateChanged {
		return TopicStateChanged
	}
	return EnteredTopic(e.To)
}

// EnteredTopic returns the topic of the state-specific event for s.
func EnteredTopic(s State) string {
	return topicEnteredBase + s.String()
}

// Sink receives state machine notifications. Notify must not block.
type Sink interface {
	Notify(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) Notify(e Event) { f(e) }

// Transition is the tagged result of one Advance call.
type Transition struct {
	From    State
	To      State
	Changed bool
}

// StateMachine derives the locomotion state from probe results with a fixed
// priority: grounded, wall, ceiling, falling, death signal, otherwise unchanged.
//
// Dead is absorbing: once entered, Advance keeps returning Dead until Reset.
//
// The machine is driven from a single goroutine, once per fixed tick.
type StateMachine struct {
	state State
	death bool
	sinks []Sink
}

func NewStateMachine(sinks ...Sink) *StateMachine {
	m := &StateMachine{state: Locomoting}
	for _, s := range sinks {
		m.Subscribe(s)
	}
	return m
}

// State returns the current state.
func (m *StateMachine) State() State {
	if m == nil {
		return Locomoting
	}
	return m.state
}

// Subscribe appends a sink. Sinks are notified in subscription order.
func (m *StateMachine) Subscribe(s Sink) {
	if m == nil || s == nil {
		return
	}
	m.sinks = append(m.sinks, s)
}

// SignalDeath latches the external death signal. It stays raised until Dead
// is entered or Reset is called.
func (m *StateMachine) SignalDeath() {
	if m == nil {
		return
	}
	m.death = true
}

// DeathSignaled reports whether a death signal is pending.
func (m *StateMachine) DeathSignaled() bool {
	if m == nil {
		return false
	}
	return m.death
}

// Reset returns the machine to Locomoting and clears the death signal without
// emitting notifications.
func (m *StateMachine) Reset() {
	if m == nil {
		return
	}
	m.state = Locomoting
	m.death = false
}

// Advance applies the transition rule for one step. On a change it notifies
// every sink with EventStateChanged followed by EventEntered.
func (m *StateMachine) Advance(p ProbeResult) Transition {
	if m == nil {
		return Transition{}
	}

	from := m.state
	to := Next(from, p, m.death)
	if to == from {
		return Transition{From: from, To: to}
	}
	m.state = to
	if to == Dead {
		m.death = false
	}

	for _, s := range m.sinks {
		s.Notify(Event{Kind: EventStateChanged, From: from, To: to})
	}
	for _, s := range m.sinks {
		s.Notify(Event{Kind: EventEntered, From: from, To: to})
	}
	return Transition{From: from, To: to, Changed: true}
}

// Next is the pure transition function used by Advance.
func Next(current State, p ProbeResult, death bool) State {
	if current == Dead {
		return Dead
	}
	switch {
	case p.Grounded:
		return Locomoting
	case p.TouchingWall:
		return Wall
	case p.TouchingCeiling:
		return Hang
	case p.Falling:
		return Falling
	case death:
		return Dead
	}
	return current
}
