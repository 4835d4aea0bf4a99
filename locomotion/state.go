package locomotion

import (
	"fmt"
	"strings"
)

// State is the player's locomotion classification. Exactly one is active at a time.
type State uint8

const (
	Locomoting State = iota // idle/walking/running on ground
	Wall                    // temporarily interacting with a wall
	Hang                    // hanging from a ceiling
	Falling                 // airborne and subject to gravity
	Flying                  // airborne without gravity
	Dead                    // immobilized
)

var stateNames = [...]string{
	Locomoting: "locomoting",
	Wall:       "wall",
	Hang:       "hang",
	Falling:    "falling",
	Flying:     "flying",
	Dead:       "dead",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Valid reports whether s is one of the six defined states.
func (s State) Valid() bool {
	return int(s) < len(stateNames)
}

// ParseState resolves a state from its lower-case name.
func ParseState(name string) (State, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range stateNames {
		if s == n {
			return State(i), nil
		}
	}
	return Locomoting, fmt.Errorf("locomotion: unknown state %q", name)
}

// States lists every state in declaration order.
func States() []State {
	out := make([]State, len(stateNames))
	for i := range stateNames {
		out[i] = State(i)
	}
	return out
}
