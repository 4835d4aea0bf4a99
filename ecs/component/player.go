package component

import "github.com/milk9111/platformer/locomotion"

type Player struct {
	Tuning locomotion.Tuning
	Mass   float64
}

var PlayerComponent = NewComponent[Player]()
