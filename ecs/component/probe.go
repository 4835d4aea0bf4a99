package component

import "github.com/milk9111/platformer/locomotion"

type Probe struct {
	Probe  *locomotion.EnvironmentProbe
	Result locomotion.ProbeResult
}

var ProbeComponent = NewComponent[Probe]()
