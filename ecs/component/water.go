package component

import "github.com/milk9111/platformer/effects"

type Water struct {
	Wave   *effects.WaveField
	School *effects.School
	Time   float64
}

var WaterComponent = NewComponent[Water]()
